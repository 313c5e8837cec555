package transcript

import (
	"fmt"
	"html"
	"io"
	"math"
)

// vttTS converts seconds in the 00:00:00.000 format.
func vttTS(seconds float64) string {
	ts := int64(math.Round(seconds * 1000))
	if ts < 0 {
		ts = 0
	}

	sMs := int64(1000)
	mMs := 60 * sMs
	hMs := 60 * mMs

	h := ts / hMs
	m := (ts - (h * hMs)) / mMs
	s := ((ts - (h * hMs)) - m*mMs) / sMs
	ms := ((ts - (h * hMs)) - m*mMs) - s*sMs

	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// cueEnd picks the end of the cue for utterance i: its own end time, the
// start of the next timed utterance, or its own start.
func (t *Transcript) cueEnd(i int) float64 {
	u := t.Utterances[i]
	start := *u.StartTime
	if u.EndTime != nil && *u.EndTime >= start {
		return *u.EndTime
	}
	for _, next := range t.Utterances[i+1:] {
		if next.StartTime != nil && *next.StartTime >= start {
			return *next.StartTime
		}
	}
	return start
}

// WebVTT writes a cue for every utterance carrying a start time. Untimed
// utterances and raw-text transcripts produce no cues.
func (t *Transcript) WebVTT(w io.Writer) error {
	_, err := fmt.Fprintf(w, "WEBVTT\n")
	if err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}

	for i, u := range t.Utterances {
		if u.StartTime == nil {
			continue
		}
		_, err = fmt.Fprintf(w, "\n%s --> %s\n", vttTS(*u.StartTime), vttTS(t.cueEnd(i)))
		if err != nil {
			return fmt.Errorf("failed to write: %w", err)
		}

		text := html.EscapeString(u.Sentence)
		if u.Speaker != "" {
			_, err = fmt.Fprintf(w, "<v %s>%s\n", html.EscapeString(u.Speaker), text)
		} else {
			_, err = fmt.Fprintf(w, "%s\n", text)
		}
		if err != nil {
			return fmt.Errorf("failed to write: %w", err)
		}
	}

	return nil
}
