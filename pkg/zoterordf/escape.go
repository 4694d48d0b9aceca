package zoterordf

import "strings"

// StripInvalid removes every rune outside the character ranges allowed in
// XML 1.0 (tab, newline, carriage return, U+0020-U+D7FF, U+E000-U+FFFD).
func StripInvalid(str string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == 0x09 || r == 0x0a || r == 0x0d:
			return r
		case r >= 0x20 && r <= 0xd7ff:
			return r
		case r >= 0xe000 && r <= 0xfffd:
			return r
		}
		return -1
	}, str)
}

var entityReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

// Escape makes str safe for use as XML element content or attribute value.
// Disallowed characters are stripped before entity escaping. The replacer
// works in a single pass, ampersands produced by the other substitutions are
// never escaped twice.
func Escape(str string) string {
	return entityReplacer.Replace(StripInvalid(str))
}
