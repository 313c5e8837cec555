package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"scribe/pkg/transcript"
)

// Mode selects the transcript layout.
type Mode string

const (
	// ModePlain shows every utterance with its speaker on a bordered row.
	ModePlain Mode = "plain"
	// ModeSimple shows the speaker label once per run.
	ModeSimple Mode = "simple"
	// ModeBubble shows chat bubbles, the owner's on the right.
	ModeBubble Mode = "bubble"
)

// DefaultMode is the layout a view opens with.
func DefaultMode(p transcript.Profile) Mode {
	if p.Name == transcript.SharedProfile.Name {
		return ModeSimple
	}
	return ModePlain
}

// ParseMode resolves a mode name, falling back to the default of p.
func ParseMode(s string, p transcript.Profile) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return DefaultMode(p), nil
	case ModePlain, ModeSimple, ModeBubble:
		return m, nil
	default:
		return "", fmt.Errorf("unknown render mode %q", s)
	}
}

// Options control a single Render call. Locale is matched against the
// supported message catalogs.
type Options struct {
	Mode   Mode
	Dark   bool
	Locale string
}

// Cue ties a rendered row (or bubble, in bubble mode) to the audio offset
// it starts at.
type Cue struct {
	Row   int     `json:"row"`
	Start float64 `json:"start"`
}

// Document is a rendered transcript fragment.
type Document struct {
	HTML template.HTML
	Cues []Cue
}

// Seeker moves an audio player to an offset and starts playback.
type Seeker interface {
	Seek(toSeconds float64)
}

// SeekRow seeks s to the start of row. It reports false when the row has
// no known start time.
func (d *Document) SeekRow(s Seeker, row int) bool {
	for _, c := range d.Cues {
		if c.Row == row {
			s.Seek(c.Start)
			return true
		}
	}
	return false
}

type lineView struct {
	Label      string
	Color      template.CSS
	ColorClass string
	Sentence   string
	Start      string
}

type bubbleView struct {
	Sentence string
	Start    string
}

type rowView struct {
	Label      string
	Color      template.CSS
	ColorClass string
	IsSelf     bool
	Bubbles    []bubbleView
}

type legendView struct {
	Name       string
	Color      template.CSS
	ColorClass string
}

type page struct {
	Text    template.CSS
	Border  template.CSS
	Msg     Messages
	Content string
	Lines   []lineView
	Rows    []rowView
	Legend  []legendView
}

var templates = template.Must(template.New("transcript").Parse(`
{{- define "empty"}}<p class="transcript-empty" style="color: {{.Text}}">{{.Msg.NoTranscription}}</p>{{end}}

{{- define "raw"}}<div class="transcript transcript-raw" style="white-space: pre-wrap; color: {{.Text}}">{{.Content}}</div>{{end}}

{{- define "plain"}}<div class="transcript transcript-plain" style="line-height: 1.8">
{{- range .Lines}}
<div class="transcript-row"{{with .Start}} data-start-time="{{.}}"{{end}} style="margin-bottom: 4px; padding: 6px 0; border-bottom: 1px solid {{$.Border}}; display: flex; align-items: flex-start; color: {{$.Text}}">
{{- if .Label}}<span class="speaker" style="font-weight: 700; color: {{.Color}}; margin-right: 12px; min-width: 110px; display: inline-block">{{.Label}}:</span>{{end -}}
<span class="sentence" style="color: {{$.Text}}; font-size: 16px">{{.Sentence}}</span></div>
{{- end}}
</div>{{end}}

{{- define "simple"}}<div class="transcript transcript-simple" style="color: {{.Text}}">
{{- range .Lines}}
<div class="speaker-segment"{{with .Start}} data-start-time="{{.}}"{{end}}>
{{- if .Label}}<span class="speaker {{.ColorClass}}" style="font-weight: bold; color: {{.Color}}">{{.Label}}</span> {{end -}}
<span class="sentence">{{.Sentence}}</span></div>
{{- end}}
</div>{{end}}

{{- define "bubble"}}<div class="transcript transcript-bubble" style="color: {{.Text}}">
{{- if .Legend}}
<div class="speaker-legend"><span class="legend-title">{{.Msg.Speakers}} ({{len .Legend}})</span>
{{- range .Legend}}<span class="legend-item {{.ColorClass}}" style="color: {{.Color}}">{{.Name}}</span>{{end -}}
</div>
{{- end}}
{{- range $row := .Rows}}
<div class="bubble-row{{if $row.IsSelf}} speaker-me{{end}}" style="display: flex; gap: 8px; justify-content: {{if $row.IsSelf}}flex-end{{else}}flex-start{{end}}">
{{- range $row.Bubbles}}<div class="speaker-bubble {{$row.ColorClass}}"{{with .Start}} data-start-time="{{.}}"{{end}} style="border: 1px solid {{$row.Color}}; border-radius: 6px; padding: 8px">{{.Sentence}}</div>{{end -}}
</div>
{{- end}}
</div>{{end}}`))

// Render turns a processed transcript into an HTML fragment. Transcripts
// without utterances render the localized empty-state message.
func Render(t *transcript.Transcript, theme Theme, opts Options) (*Document, error) {
	if t == nil {
		t = &transcript.Transcript{State: transcript.StateEmpty}
	}

	p := page{
		Text:   theme.TextColor(opts.Dark),
		Border: theme.BorderColor(opts.Dark),
		Msg:    MessagesFor(opts.Locale),
	}
	doc := &Document{}

	name := "empty"
	switch t.State {
	case transcript.StateRawText:
		name = "raw"
		p.Content = t.Text
	case transcript.StateDialogue, transcript.StateMonologue:
		mode := opts.Mode
		if mode == "" {
			mode = ModePlain
		}
		// Undiarized transcripts have no one to put in bubbles.
		if mode == ModeBubble && t.State == transcript.StateMonologue {
			mode = ModeSimple
		}

		switch mode {
		case ModePlain, ModeSimple:
			p.Lines, doc.Cues = lines(t, theme, opts.Dark, mode == ModeSimple)
		case ModeBubble:
			p.Rows, doc.Cues = bubbleRows(t, theme, opts.Dark)
			p.Legend = legend(t.Speakers, theme, opts.Dark)
		default:
			return nil, fmt.Errorf("unknown render mode %q", mode)
		}
		name = string(mode)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, p); err != nil {
		return nil, fmt.Errorf("render %s transcript: %w", name, err)
	}
	doc.HTML = template.HTML(buf.String())
	return doc, nil
}

func lines(t *transcript.Transcript, theme Theme, dark, labelOncePerRun bool) ([]lineView, []Cue) {
	views := make([]lineView, 0, len(t.Turns))
	var cues []Cue
	for i, turn := range t.Turns {
		slot, _ := t.Speakers.ColorOf(turn.Speaker)
		v := lineView{
			Color:      theme.SpeakerColor(slot, dark),
			ColorClass: colorClass(slot),
			Sentence:   turn.Sentence,
			Start:      formatStart(turn.StartTime),
		}
		if !labelOncePerRun || turn.ShowSpeaker {
			v.Label = turn.Speaker
		}
		if turn.StartTime != nil {
			cues = append(cues, Cue{Row: i, Start: *turn.StartTime})
		}
		views = append(views, v)
	}
	return views, cues
}

func bubbleRows(t *transcript.Transcript, theme Theme, dark bool) ([]rowView, []Cue) {
	views := make([]rowView, 0, len(t.Rows))
	var cues []Cue
	n := 0
	for _, row := range t.Rows {
		v := rowView{
			Label:      row.Speaker,
			Color:      theme.SpeakerColor(row.Color, dark),
			ColorClass: colorClass(row.Color),
			IsSelf:     row.IsSelf,
		}
		for _, b := range row.Bubbles {
			if b.StartTime != nil {
				cues = append(cues, Cue{Row: n, Start: *b.StartTime})
			}
			v.Bubbles = append(v.Bubbles, bubbleView{
				Sentence: b.Sentence,
				Start:    formatStart(b.StartTime),
			})
			n++
		}
		views = append(views, v)
	}
	return views, cues
}

func legend(speakers transcript.SpeakerSet, theme Theme, dark bool) []legendView {
	views := make([]legendView, 0, len(speakers))
	for _, sp := range speakers {
		views = append(views, legendView{
			Name:       sp.Name,
			Color:      theme.SpeakerColor(sp.Color, dark),
			ColorClass: colorClass(sp.Color),
		})
	}
	return views
}

func colorClass(slot int) string {
	if slot < 0 {
		return ""
	}
	return "speaker-color-" + strconv.Itoa(slot+1)
}

func formatStart(s *float64) string {
	if s == nil {
		return ""
	}
	return strconv.FormatFloat(*s, 'f', -1, 64)
}
