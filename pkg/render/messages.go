package render

import "golang.org/x/text/language"

// Messages are the user-visible strings of the transcript panel.
type Messages struct {
	NoTranscription string
	Speakers        string
	Untitled        string
}

// The first supported locale is the fallback, as in the web app routing.
var (
	supported = []language.Tag{language.Vietnamese, language.English}
	catalog   = []Messages{
		{
			NoTranscription: "Không có bản chép lời.",
			Speakers:        "Người nói",
			Untitled:        "Bản ghi không có tiêu đề",
		},
		{
			NoTranscription: "No transcription available.",
			Speakers:        "Speakers",
			Untitled:        "Untitled recording",
		},
	}
	matcher = language.NewMatcher(supported)
)

// MessagesFor picks the catalog best matching the given locales, which may
// be Accept-Language values. Earlier arguments take precedence.
func MessagesFor(locales ...string) Messages {
	return catalog[match(locales)]
}

// MatchLocale returns the supported locale best matching locales.
func MatchLocale(locales ...string) string {
	return supported[match(locales)].String()
}

func match(locales []string) int {
	_, idx := language.MatchStrings(matcher, locales...)
	if idx < 0 || idx >= len(catalog) {
		return 0
	}
	return idx
}
