package pdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"scribe/pkg/render"
	"scribe/pkg/transcript"
)

func TestTranscriptPDF(t *testing.T) {
	var utts []transcript.Utterance
	for i := 0; i < 200; i++ {
		speaker := "Alice"
		if i%3 == 0 {
			speaker = "Bob"
		}
		utts = append(utts, transcript.Utterance{Speaker: speaker, Sentence: strings.Repeat("Xin chào, café ", 8)})
	}

	tcs := []struct {
		name string
		in   transcript.Input
	}{
		{name: "dialogue", in: transcript.FromUtterances(utts)},
		{name: "monologue", in: transcript.FromUtterances([]transcript.Utterance{{Sentence: "one"}})},
		{name: "raw text", in: transcript.FromString("plain words")},
		{name: "empty", in: transcript.FromString("")},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := transcript.Process(tc.in, transcript.SharedProfile)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, TranscriptPDF(tr, render.SharedTheme(), "", render.MessagesFor("en"), &buf))
			require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		})
	}
}

func TestMarkdownToPDF(t *testing.T) {
	var buf bytes.Buffer
	md := `# Meeting summary\n\n## Decisions\n\n- ship it\n- write docs\n\nSome **bold** text & more.`
	require.NoError(t, MarkdownToPDF(md, "Summary", &buf))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestHexRGB(t *testing.T) {
	r, g, b := hexRGB("#0070f3")
	require.Equal(t, []int{0, 0x70, 0xf3}, []int{r, g, b})

	r, g, b = hexRGB("var(--speaker-1)")
	require.Equal(t, []int{0, 0, 0}, []int{r, g, b})

	r, g, b = hexRGB("#zzzzzz")
	require.Equal(t, []int{0, 0, 0}, []int{r, g, b})
}

func TestStripTags(t *testing.T) {
	require.Equal(t, "Tom & Jerry", stripTags("<p>Tom &amp; <em>Jerry</em></p>"))
	require.Equal(t, "", stripTags("<ul>"))
}
