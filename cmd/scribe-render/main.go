// Command scribe-render renders a stored recording transcript from a file.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"scribe/pkg/pdf"
	"scribe/pkg/render"
	"scribe/pkg/transcript"
)

type options struct {
	view   string
	mode   string
	format string
	dark   bool
	locale string
	theme  string
	title  string
	output string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "scribe-render <file>",
		Short: "Render a recording transcript as HTML, text, WebVTT or PDF",
		Long: `Reads a recording JSON object with a "transcription" field, a JSON
array of utterances, or the transcript text as stored, and writes it in the
requested format. Use "-" to read from stdin.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.InOrStdin(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.view, "view", "detail", "view profile: detail, shared or strict")
	f.StringVar(&opts.mode, "mode", "", "layout for html: plain, simple or bubble (default depends on view)")
	f.StringVarP(&opts.format, "format", "f", "html", "output format: html, txt, dialogue, vtt or pdf")
	f.BoolVar(&opts.dark, "dark", false, "use dark mode colors")
	f.StringVar(&opts.locale, "locale", "", "message locale (default from $LANG, then vi)")
	f.StringVar(&opts.theme, "theme", "", "YAML theme file")
	f.StringVar(&opts.title, "title", "", "document title for pdf")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func run(stdin io.Reader, stdout io.Writer, path string, opts *options) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	profile, err := transcript.ProfileByName(opts.view)
	if err != nil {
		return err
	}

	in := loadInput(data)
	log.Printf("Loaded %s transcript from %s", in.Kind, path)

	t, err := transcript.Process(in, profile)
	if err != nil {
		return err
	}

	theme := render.ThemeFor(profile)
	if opts.theme != "" {
		if theme, err = render.LoadTheme(opts.theme); err != nil {
			return err
		}
	}
	locale := render.MatchLocale(opts.locale, os.Getenv("LANG"), "vi")

	var buf bytes.Buffer
	switch opts.format {
	case "html":
		mode, err := render.ParseMode(opts.mode, profile)
		if err != nil {
			return err
		}
		doc, err := render.Render(t, theme, render.Options{Mode: mode, Dark: opts.dark, Locale: locale})
		if err != nil {
			return err
		}
		buf.WriteString(string(doc.HTML))
		buf.WriteByte('\n')
	case "txt":
		buf.WriteString(t.CopyText())
		buf.WriteByte('\n')
	case "dialogue":
		buf.WriteString(t.DialogueText())
		buf.WriteByte('\n')
	case "vtt":
		if err := t.WebVTT(&buf); err != nil {
			return err
		}
	case "pdf":
		if err := pdf.TranscriptPDF(t, theme, opts.title, render.MessagesFor(locale), &buf); err != nil {
			return fmt.Errorf("generate pdf: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	if opts.output == "" {
		_, err = stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Printf("Wrote %d bytes to %s", buf.Len(), opts.output)
	return nil
}

// loadInput accepts a recording object, a bare utterance array, or the
// transcript text as stored. Anything that is not a recording with a
// transcription field goes to the lenient parser as text.
func loadInput(data []byte) transcript.Input {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return transcript.Input{Kind: transcript.KindEmpty}
	}

	switch trimmed[0] {
	case '{':
		var rec map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &rec); err == nil {
			if raw, ok := rec["transcription"]; ok {
				return transcript.FromJSON(raw)
			}
		}
	case '[':
		return transcript.FromJSON(trimmed)
	}
	return transcript.FromString(string(data))
}
