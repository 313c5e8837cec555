package render

import (
	"fmt"
	"html/template"
	"os"

	"gopkg.in/yaml.v3"

	"scribe/pkg/transcript"
)

// Theme holds the colors a renderer needs. Values are CSS color strings
// and are trusted as-is, so CSS variables like var(--text-color-light) work.
type Theme struct {
	LightText      string   `yaml:"light_text"`
	DarkText       string   `yaml:"dark_text"`
	LightBorder    string   `yaml:"light_border"`
	DarkBorder     string   `yaml:"dark_border"`
	SpeakerPalette []string `yaml:"speaker_palette"`
}

// DefaultTheme is the detail-view theme with its six speaker colors.
func DefaultTheme() Theme {
	return Theme{
		LightText:   "#1a202c",
		DarkText:    "#f7fafc",
		LightBorder: "#e2e8f0",
		DarkBorder:  "#4a5568",
		SpeakerPalette: []string{
			"#0070f3",
			"#ff9800",
			"#43a047",
			"#d81b60",
			"#6d4cff",
			"#00897b",
		},
	}
}

// SharedTheme is the shared-page theme with eight speaker colors.
func SharedTheme() Theme {
	t := DefaultTheme()
	t.SpeakerPalette = append(t.SpeakerPalette, "#8d6e63", "#546e7a")
	return t
}

// ThemeFor returns the built-in theme matching a view profile.
func ThemeFor(p transcript.Profile) Theme {
	if p.PaletteSize > len(DefaultTheme().SpeakerPalette) {
		return SharedTheme()
	}
	return DefaultTheme()
}

// LoadTheme reads a YAML theme file. Keys left out keep their default.
func LoadTheme(path string) (Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return Theme{}, fmt.Errorf("open theme: %w", err)
	}
	defer f.Close()

	t := DefaultTheme()
	if err := yaml.NewDecoder(f).Decode(&t); err != nil {
		return Theme{}, fmt.Errorf("decode theme %s: %w", path, err)
	}
	if len(t.SpeakerPalette) == 0 {
		return Theme{}, fmt.Errorf("theme %s: speaker_palette cannot be empty", path)
	}
	return t, nil
}

// TextColor returns the text color for the color mode.
func (t Theme) TextColor(dark bool) template.CSS {
	if dark {
		return template.CSS(t.DarkText)
	}
	return template.CSS(t.LightText)
}

// BorderColor returns the row border color for the color mode.
func (t Theme) BorderColor(dark bool) template.CSS {
	if dark {
		return template.CSS(t.DarkBorder)
	}
	return template.CSS(t.LightBorder)
}

// SpeakerColor maps a palette slot to a color. Unnamed speakers fall back
// to the text color.
func (t Theme) SpeakerColor(slot int, dark bool) template.CSS {
	if slot < 0 || len(t.SpeakerPalette) == 0 {
		return t.TextColor(dark)
	}
	return template.CSS(t.SpeakerPalette[slot%len(t.SpeakerPalette)])
}
