package tprint

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// ScanState is the running style state of one scan.
type ScanState struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Color         ColorSpec
	// OpenBracket is the stream index of the unmatched '[', or -1.
	OpenBracket int
}

// Styled reports whether any style or color is active.
func (st ScanState) Styled() bool {
	return st.Bold || st.Italic || st.Underline || st.Strikethrough || st.Color.Kind != ColorNone
}

// Scanner turns markup into a tagged character stream.
// The zero value is not ready for use; call Reset first or use NewScanner.
type Scanner struct {
	state  ScanState
	stream []TaggedChar
	body   strings.Builder
}

// NewScanner returns a Scanner with a fresh state.
func NewScanner() *Scanner {
	s := &Scanner{}
	s.Reset()
	return s
}

// Reset clears the stream and the style state for reuse.
func (s *Scanner) Reset() {
	s.state = ScanState{OpenBracket: -1}
	s.stream = s.stream[:0]
	s.body.Reset()
}

// State returns the current style state.
func (s *Scanner) State() ScanState {
	return s.state
}

// Stream returns the characters scanned so far. The slice is reused by Reset.
func (s *Scanner) Stream() []TaggedChar {
	return s.stream
}

// Scan converts raw markup into a tagged character stream.
func Scan(raw string) []TaggedChar {
	s := NewScanner()
	s.WriteString(raw)
	s.Finish()
	return s.stream
}

// WriteString feeds raw markup one grapheme cluster at a time.
func (s *Scanner) WriteString(raw string) {
	g := uniseg.NewGraphemes(raw)
	for g.Next() {
		s.addChar(g.Str())
	}
}

// Finish terminates the stream, clearing any style left active.
func (s *Scanner) Finish() {
	if s.state.Styled() {
		s.appendText(ansiReset, charFormatting)
	}
	s.state.OpenBracket = -1
}

func (s *Scanner) addChar(c string) {
	if c == "]" && s.state.OpenBracket >= 0 {
		s.closeBracket()
		return
	}
	if c == "[" {
		// A second '[' abandons the first; its characters stay literal.
		s.state.OpenBracket = len(s.stream)
	}
	if isSpaceCluster(c) {
		s.stream = append(s.stream, TaggedChar{Char: " ", Kind: charSpace})
		return
	}
	s.stream = append(s.stream, TaggedChar{Char: c, Kind: charStandard})
}

func (s *Scanner) closeBracket() {
	open := s.state.OpenBracket
	s.state.OpenBracket = -1

	s.body.Reset()
	for _, tc := range s.stream[open+1:] {
		s.body.WriteString(tc.Char)
		if s.body.Len() > maxInstructionLen {
			break
		}
	}
	instr := ParseInstruction(s.body.String())

	var emit string
	kind := charFormatting
	switch instr.Kind {
	case instrLiteral:
		s.stream = append(s.stream, TaggedChar{Char: "]", Kind: charStandard})
		return
	case instrNewline:
		emit = newlineMarker
	case instrToggle:
		emit = s.toggle(instr.Style)
	case instrIndent, instrTab:
		emit = "[" + s.body.String() + "]"
		kind = charSpecialFormatting
	case instrColorClear:
		s.state.Color = ColorSpec{}
		emit = ansiReset + styleSGR(s.state)
	case instrColorSet:
		s.state.Color = instr.Color
		emit = instr.Color.SGR()
	case instrColorInvalid:
	}
	s.stream = s.stream[:open]
	s.appendText(emit, kind)
}

// toggle flips a style. Turning a style off resets and reapplies what remains.
func (s *Scanner) toggle(style byte) string {
	var flag *bool
	var on string
	switch style {
	case 'b':
		flag, on = &s.state.Bold, ansiBold
	case 'i':
		flag, on = &s.state.Italic, ansiItalic
	case 's':
		flag, on = &s.state.Strikethrough, ansiStrikethrough
	default:
		flag, on = &s.state.Underline, ansiUnderline
	}
	if !*flag {
		*flag = true
		return on
	}
	*flag = false
	return ansiReset + styleSGR(s.state)
}

func (s *Scanner) appendText(text string, kind charKind) {
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		s.stream = append(s.stream, TaggedChar{Char: text[i : i+size], Kind: kind})
		i += size
	}
}

func isSpaceCluster(c string) bool {
	r, _ := utf8.DecodeRuneInString(c)
	return unicode.IsSpace(r)
}
