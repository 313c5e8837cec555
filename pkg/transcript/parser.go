package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformed is returned when a transcript string cannot be recovered
// into a list of utterances.
var ErrMalformed = errors.New("malformed transcript")

// Unicode spaces and the BOM count as whitespace, as in browser regexps.
var whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)

// Repair rewrites an almost-JSON transcript string into JSON: whitespace is
// collapsed, missing enclosing brackets are added and every single quote
// becomes a double quote. The quote swap is blind, so apostrophes inside
// sentences are corrupted too.
func Repair(s string) string {
	cleaned := strings.ReplaceAll(s, "\n", " ")
	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if !strings.HasPrefix(cleaned, "[") {
		cleaned = "[" + cleaned
	}
	if !strings.HasSuffix(cleaned, "]") {
		cleaned += "]"
	}

	return strings.ReplaceAll(cleaned, "'", `"`)
}

// ParseLenient repairs s and decodes it as a list of utterances.
func ParseLenient(s string) ([]Utterance, error) {
	var utts []Utterance
	if err := json.Unmarshal([]byte(Repair(s)), &utts); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return utts, nil
}
