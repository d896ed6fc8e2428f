package tprint

import (
	"regexp"
	"strings"

	"github.com/muesli/reflow/ansi"
)

const (
	ansiReset         = "\x1b[0m"
	ansiBold          = "\x1b[1m"
	ansiItalic        = "\x1b[3m"
	ansiUnderline     = "\x1b[4m"
	ansiStrikethrough = "\x1b[9m"
	ansiClearScreen   = "\x1b[2J\x1b[H"
)

var sgrPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// styleSGR returns the sequence that turns on every active style and color.
// Order is bold, italic, strikethrough, underline, color.
func styleSGR(st ScanState) string {
	var b strings.Builder
	if st.Bold {
		b.WriteString(ansiBold)
	}
	if st.Italic {
		b.WriteString(ansiItalic)
	}
	if st.Strikethrough {
		b.WriteString(ansiStrikethrough)
	}
	if st.Underline {
		b.WriteString(ansiUnderline)
	}
	b.WriteString(st.Color.SGR())
	return b.String()
}

// VisibleWidth returns the printable width of s, ignoring escape sequences.
func VisibleWidth(s string) int {
	return ansi.PrintableRuneWidth(s)
}

// StripANSI removes SGR sequences from s.
func StripANSI(s string) string {
	if !strings.Contains(s, "\x1b[") {
		return s
	}
	return sgrPattern.ReplaceAllString(s, "")
}
