package units

import (
	"regexp"
	"strings"
)

// mojibakeReplacer repairs the common UTF-8-read-as-Windows-1252 sequences
// that arrive via copy-and-paste from word processors.
var mojibakeReplacer = strings.NewReplacer(
	"â", "'",
	"â", "'",
	"â", "“",
	"â", "”",
	"â", "–",
	"â", "—",
	"â¦", "…",
	"Â£", "£",
	"Ã©", "é",
	"Â°", "°",
	"Â ", " ",
)

var markdownLinkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)

// RepairText fixes mojibake sequences in free text.
func RepairText(text string) string {
	return mojibakeReplacer.Replace(text)
}

// FlattenMarkdownLinks replaces markdown links with their display text, so
// "[our site](https://example.org)" becomes "our site". The platform's
// upload format has no markdown rendering.
func FlattenMarkdownLinks(text string) string {
	return markdownLinkRe.ReplaceAllString(text, "$1")
}
