package pdf

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/russross/blackfriday/v2"

	"scribe/pkg/render"
	"scribe/pkg/transcript"
)

// TranscriptPDF writes the transcript as an A4 document: the speaker label
// in its palette color once per run, followed by the sentences.
func TranscriptPDF(t *transcript.Transcript, theme render.Theme, title string, msgs render.Messages, w io.Writer) error {
	if strings.TrimSpace(title) == "" {
		title = msgs.Untitled
	}

	pdf := newDocument()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(0, 10, tr(title), "", "", false)
	pdf.Ln(5)

	switch t.State {
	case transcript.StateDialogue, transcript.StateMonologue:
		for _, turn := range t.Turns {
			if turn.ShowSpeaker && turn.Speaker != "" {
				slot, _ := t.Speakers.ColorOf(turn.Speaker)
				r, g, b := hexRGB(string(theme.SpeakerColor(slot, false)))
				pdf.SetTextColor(r, g, b)
				pdf.SetFont("Arial", "B", 12)
				pdf.Ln(2)
				pdf.Cell(0, 7, tr(turn.Speaker))
				pdf.Ln(7)
			}
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Arial", "", 11)
			pdf.MultiCell(0, 6, tr(turn.Sentence), "", "", false)
		}
	case transcript.StateRawText:
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, tr(t.Text), "", "", false)
	default:
		pdf.SetFont("Arial", "I", 12)
		pdf.MultiCell(0, 6, tr(msgs.NoTranscription), "", "", false)
	}

	return pdf.Output(w)
}

// MarkdownToPDF converts summary markdown to PDF and writes to the provided writer
func MarkdownToPDF(markdown, title string, w io.Writer) error {
	// Parse markdown to HTML
	out := blackfriday.Run([]byte(render.NormalizeMarkdown(markdown)))

	pdf := newDocument()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(15)

	var paragraph []string
	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, 6, tr(strings.Join(paragraph, " ")), "", "", false)
		pdf.Ln(5)
		paragraph = nil
	}
	heading := func(line string, size float64, style string, gap float64) {
		flush()
		pdf.SetFont("Arial", style, size)
		pdf.Cell(0, 10, tr(stripTags(line)))
		pdf.Ln(gap)
	}

	for _, line := range strings.Split(string(out), "\n") {
		switch {
		case strings.Contains(line, "<h1>"):
			heading(line, 16, "B", 10)
		case strings.Contains(line, "<h2>"):
			heading(line, 14, "B", 8)
		case strings.Contains(line, "<h3>"):
			heading(line, 12, "BI", 8)
		case strings.Contains(line, "<li>"):
			flush()
			pdf.SetFont("Arial", "", 12)
			pdf.MultiCell(0, 6, tr("- "+stripTags(line)), "", "", false)
		case strings.TrimSpace(line) == "":
			flush()
		default:
			if text := stripTags(line); text != "" {
				paragraph = append(paragraph, text)
			}
		}
	}
	flush()

	return pdf.Output(w)
}

func newDocument() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return pdf
}

// hexRGB parses #rrggbb, falling back to black for anything else.
func hexRGB(color string) (int, int, int) {
	color = strings.TrimPrefix(strings.TrimSpace(color), "#")
	if len(color) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(color, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

// stripTags removes HTML tags from a string
func stripTags(s string) string {
	var buf bytes.Buffer
	var inTag bool

	for _, r := range s {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			continue
		}
		if !inTag {
			buf.WriteRune(r)
		}
	}

	return strings.TrimSpace(html.UnescapeString(buf.String()))
}
