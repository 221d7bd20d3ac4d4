package format

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML escapes text for Telegram HTML parse mode.
// Telegram only requires &, < and > to be escaped inside HTML messages.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}
