package transcript

import "regexp"

// NoColor marks a row whose speaker is unnamed.
const NoColor = -1

// Speaker is a distinct speaker and the palette slot assigned to it.
type Speaker struct {
	Name  string `json:"name"`
	Color int    `json:"color"`
}

// SpeakerSet lists speakers in order of first appearance.
type SpeakerSet []Speaker

// AssignSpeakers gives every named speaker the next palette slot the first
// time it is seen, wrapping around once the palette is exhausted.
func AssignSpeakers(utts []Utterance, paletteSize int) SpeakerSet {
	if paletteSize <= 0 {
		paletteSize = 1
	}

	seen := make(map[string]struct{})
	var speakers SpeakerSet
	for _, u := range utts {
		if u.Speaker == "" {
			continue
		}
		if _, ok := seen[u.Speaker]; ok {
			continue
		}
		seen[u.Speaker] = struct{}{}
		speakers = append(speakers, Speaker{
			Name:  u.Speaker,
			Color: len(speakers) % paletteSize,
		})
	}
	return speakers
}

// ColorOf returns the palette slot of name.
func (s SpeakerSet) ColorOf(name string) (int, bool) {
	for _, sp := range s {
		if sp.Name == name {
			return sp.Color, true
		}
	}
	return NoColor, false
}

// Names returns the speaker names in order of first appearance.
func (s SpeakerSet) Names() []string {
	names := make([]string, 0, len(s))
	for _, sp := range s {
		names = append(names, sp.Name)
	}
	return names
}

var selfWord = regexp.MustCompile(`(?i)\bme\b`)

// IsSelf reports whether a speaker label looks like the recording owner:
// "me" as a word in any case, so "Me (host)" matches and "team member" does not.
func IsSelf(speaker string) bool {
	return selfWord.MatchString(speaker)
}
