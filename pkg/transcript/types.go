package transcript

import (
	"bytes"
	"encoding/json"
)

// Utterance is one spoken segment of a recording transcript.
type Utterance struct {
	Speaker   string   `json:"speaker,omitempty"`
	Sentence  string   `json:"sentence"`
	StartTime *float64 `json:"start_time,omitempty"` // seconds
	EndTime   *float64 `json:"end_time,omitempty"`   // seconds
}

// UnmarshalJSON accepts both the snake_case timing keys written by the
// backend and the camelCase ones produced by older shared links. Non-string
// speakers keep their JSON text as the label.
func (u *Utterance) UnmarshalJSON(data []byte) error {
	var aux struct {
		Speaker        json.RawMessage `json:"speaker"`
		Sentence       string   `json:"sentence"`
		StartTime      *float64 `json:"start_time"`
		EndTime        *float64 `json:"end_time"`
		StartTimeCamel *float64 `json:"startTime"`
		EndTimeCamel   *float64 `json:"endTime"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	u.Speaker = speakerLabel(aux.Speaker)
	u.Sentence = aux.Sentence
	u.StartTime = firstSet(aux.StartTime, aux.StartTimeCamel)
	u.EndTime = firstSet(aux.EndTime, aux.EndTimeCamel)
	return nil
}

// speakerLabel accepts diarization ids written as numbers. Null, false and
// 0 mean no speaker.
func speakerLabel(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	switch string(raw) {
	case "", "null", "false", "0":
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func firstSet(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// Seconds returns a pointer to s, for building utterances with timing.
func Seconds(s float64) *float64 {
	return &s
}

// Turn is an utterance in flat display order, flagged when it opens a new
// run of the same speaker.
type Turn struct {
	Utterance
	ShowSpeaker bool `json:"show_speaker"`
}

// Bubble is a single sentence inside a chat-style row.
type Bubble struct {
	Sentence  string   `json:"sentence"`
	StartTime *float64 `json:"start_time,omitempty"`
}

// BubbleRow holds the sentences of one uninterrupted speaker run.
type BubbleRow struct {
	Speaker string   `json:"speaker"`
	Color   int      `json:"color"`
	IsSelf  bool     `json:"is_self"`
	Bubbles []Bubble `json:"bubbles"`
}

// State describes what a processed transcript can display.
type State string

const (
	StateEmpty     State = "empty"
	StateDialogue  State = "dialogue"
	StateMonologue State = "monologue"
	StateRawText   State = "raw_text"
)
