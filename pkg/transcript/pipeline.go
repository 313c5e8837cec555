package transcript

import (
	"fmt"
	"strings"
)

// MalformedPolicy decides what a view shows when a transcript string
// cannot be parsed.
type MalformedPolicy int

const (
	// ShowEmptyState replaces the transcript with the empty-state message.
	ShowEmptyState MalformedPolicy = iota
	// ShowRawText shows the stored text verbatim.
	ShowRawText
	// FailFast returns the parse error to the caller.
	FailFast
)

// Profile carries the settings that differ between the views rendering a
// transcript.
type Profile struct {
	Name        string
	PaletteSize int
	OnMalformed MalformedPolicy
}

var (
	// DetailProfile matches the recording detail panel.
	DetailProfile = Profile{Name: "detail", PaletteSize: 6, OnMalformed: ShowEmptyState}
	// SharedProfile matches the public shared-recording page.
	SharedProfile = Profile{Name: "shared", PaletteSize: 8, OnMalformed: ShowRawText}
	// StrictProfile is the detail panel without recovery: parse failures
	// are reported to the caller.
	StrictProfile = Profile{Name: "strict", PaletteSize: 6, OnMalformed: FailFast}
)

// ProfileByName resolves a view name. An empty name selects the detail view.
func ProfileByName(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DetailProfile.Name:
		return DetailProfile, nil
	case SharedProfile.Name:
		return SharedProfile, nil
	case StrictProfile.Name:
		return StrictProfile, nil
	default:
		return Profile{}, fmt.Errorf("unknown view %q", name)
	}
}

// Transcript is the render-ready derivation of one transcript value. It is
// rebuilt from scratch on every call to Process.
type Transcript struct {
	State      State       `json:"state"`
	Utterances []Utterance `json:"utterances,omitempty"`
	Speakers   SpeakerSet  `json:"speakers,omitempty"`
	Turns      []Turn      `json:"turns,omitempty"`
	Rows       []BubbleRow `json:"rows,omitempty"`
	Text       string      `json:"text,omitempty"`
}

// Process runs in through parsing, speaker assignment and grouping using
// the policy of p. An error is only returned under FailFast.
func Process(in Input, p Profile) (*Transcript, error) {
	utts := in.Utterances

	switch in.Kind {
	case KindEmpty:
		return &Transcript{State: StateEmpty}, nil
	case KindRawText:
		parsed, err := ParseLenient(in.Text)
		if err != nil {
			switch p.OnMalformed {
			case FailFast:
				return nil, fmt.Errorf("%s view: %w", p.Name, err)
			case ShowRawText:
				return &Transcript{State: StateRawText, Text: in.Text}, nil
			default:
				return &Transcript{State: StateEmpty}, nil
			}
		}
		utts = parsed
	}

	return build(utts, p.PaletteSize), nil
}

func build(utts []Utterance, paletteSize int) *Transcript {
	if len(utts) == 0 {
		return &Transcript{State: StateEmpty}
	}

	speakers := AssignSpeakers(utts, paletteSize)
	state := StateDialogue
	if len(speakers) == 0 {
		state = StateMonologue
	}

	return &Transcript{
		State:      state,
		Utterances: utts,
		Speakers:   speakers,
		Turns:      GroupTurns(utts),
		Rows:       GroupBubbles(utts, speakers),
	}
}
