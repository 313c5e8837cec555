package render

import (
	"html/template"
	"strings"

	"github.com/russross/blackfriday/v2"
)

// NormalizeMarkdown turns the literal "\n" escapes the summarizer sometimes
// returns into real line breaks.
func NormalizeMarkdown(md string) string {
	return strings.TrimSpace(strings.ReplaceAll(md, `\n`, "\n"))
}

// MarkdownHTML renders summary or notes markdown. Single newlines become
// <br>, raw HTML in the source is dropped and unsafe link targets such as
// javascript: are rendered as plain text.
func MarkdownHTML(md string) template.HTML {
	md = NormalizeMarkdown(md)
	if md == "" {
		return ""
	}

	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags | blackfriday.SkipHTML | blackfriday.Safelink |
			blackfriday.NofollowLinks | blackfriday.HrefTargetBlank,
	})
	out := blackfriday.Run([]byte(md),
		blackfriday.WithExtensions(blackfriday.CommonExtensions|blackfriday.HardLineBreak),
		blackfriday.WithRenderer(renderer),
	)
	return template.HTML(out)
}
