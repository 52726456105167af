// Package render implements the content translation and composition engine:
// it walks block trees read from the document store and reassembles them
// into either a Telegram MarkdownV2 message body or a fresh block sequence
// for a newsletter page.
package render

import "strings"

// reservedMarkdownV2 is the full set of characters MarkdownV2 requires to be
// backslash-escaped in regular text.
// https://core.telegram.org/bots/api#markdownv2-style
const reservedMarkdownV2 = "_*[]()>~`#+-=|{}.!\\"

// EscapeMarkdownV2 backslash-escapes every MarkdownV2-reserved character in
// s. Escaping happens before any markup is wrapped around the text, and it
// is idempotent on text containing no reserved characters.
func EscapeMarkdownV2(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune(reservedMarkdownV2, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// restoreSpoilers undoes the escaping of "||" pairs so that spoiler markup
// written in the source survives translation.
func restoreSpoilers(s string) string {
	return strings.ReplaceAll(s, `\|\|`, "||")
}
