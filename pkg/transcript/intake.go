package transcript

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Kind tags the shape of a transcript value before parsing.
type Kind int

const (
	KindEmpty Kind = iota
	KindStructured
	KindRawText
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindStructured:
		return "structured"
	case KindRawText:
		return "raw-text"
	default:
		return "unknown"
	}
}

// Input is a transcript value classified at the boundary. Exactly one of
// Utterances (KindStructured) or Text (KindRawText) is meaningful.
type Input struct {
	Kind       Kind
	Utterances []Utterance
	Text       string
}

// FromJSON classifies the raw `transcription` field of a recording, which
// the backend stores as null, a string, or an array of utterances.
func FromJSON(raw json.RawMessage) Input {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Input{Kind: KindEmpty}
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return FromString(s)
		}
	case '[':
		var utts []Utterance
		if err := json.Unmarshal(trimmed, &utts); err == nil {
			return FromUtterances(utts)
		}
	}

	// Anything else is handed to the lenient parser as text.
	return Input{Kind: KindRawText, Text: string(trimmed)}
}

// FromString classifies a transcript stored as text. The text is kept as
// given so the raw fallback can show it verbatim.
func FromString(s string) Input {
	if strings.TrimSpace(s) == "" {
		return Input{Kind: KindEmpty}
	}
	return Input{Kind: KindRawText, Text: s}
}

// FromUtterances wraps an already structured transcript.
func FromUtterances(utts []Utterance) Input {
	if len(utts) == 0 {
		return Input{Kind: KindEmpty}
	}
	return Input{Kind: KindStructured, Utterances: utts}
}
