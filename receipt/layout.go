package receipt

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Column widths are counted in characters (runes), matching how thermal
// printers advance one cell per glyph.

// printable replaces control characters with spaces so a single value can
// neither break a line nor move the print head.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	s = printable(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// PadRight truncates s to n characters and left-aligns it in n columns.
func PadRight(s string, n int) string {
	s = truncate(s, n)
	return s + pad(n-utf8.RuneCountInString(s))
}

// PadLeft truncates s to n characters and right-aligns it in n columns.
func PadLeft(s string, n int) string {
	s = truncate(s, n)
	return pad(n-utf8.RuneCountInString(s)) + s
}

// Center truncates s to n characters and centers it, putting the odd
// leftover space on the right.
func Center(s string, n int) string {
	s = truncate(s, n)
	total := n - utf8.RuneCountInString(s)
	left := total / 2
	return pad(left) + s + pad(total-left)
}

// Divider is a rule of n copies of ch.
func Divider(n int, ch rune) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(string(ch), n)
}

// FormatLine puts label on the left and value flush against the right edge,
// separated by at least one space. An over-long label is cut, never wrapped;
// a value wider than the line is cut to leave room for the separator.
func FormatLine(label, value string, n int) string {
	value = truncate(value, n-1)
	return PadRight(label, n-utf8.RuneCountInString(value)-1) + " " + value
}
