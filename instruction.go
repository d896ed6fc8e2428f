package tprint

// maxInstructionLen bounds the text between brackets that is worth parsing:
// "c-" plus the longest color name. Longer runs are always literal text.
const maxInstructionLen = 22

type instructionKind uint8

// InstructionKind is the exported alias of instructionKind.
type InstructionKind = instructionKind

const (
	instrLiteral instructionKind = iota
	instrToggle
	instrNewline
	instrIndent
	instrTab
	instrColorClear
	instrColorSet
	instrColorInvalid
)

const (
	// LiteralBracketText means the bracket content matched no instruction and
	// stays in the output as typed.
	LiteralBracketText InstructionKind = instrLiteral
	// StyleToggle flips one of bold, italic, underline or strikethrough.
	StyleToggle InstructionKind = instrToggle
	// LineBreak forces a new line.
	LineBreak InstructionKind = instrNewline
	// IndentDelta adjusts the indent of following lines.
	IndentDelta InstructionKind = instrIndent
	// Tab inserts a fixed run of unsplittable spaces.
	Tab InstructionKind = instrTab
	// ColorClear removes the text color and keeps other styles.
	ColorClear InstructionKind = instrColorClear
	// ColorSet changes the text color.
	ColorSet InstructionKind = instrColorSet
	// ColorInvalid is a color instruction whose value is not a known color.
	// It is removed from the output without effect.
	ColorInvalid InstructionKind = instrColorInvalid
)

// Instruction is the parsed content of a bracketed markup token.
type Instruction struct {
	Kind InstructionKind
	// Style is one of 'b', 'i', 's', 'u' for StyleToggle.
	Style byte
	// Value is the two-digit argument of IndentDelta and Tab.
	Value int
	Color ColorSpec
}

// ParseInstruction classifies body, the text between '[' and ']'.
func ParseInstruction(body string) Instruction {
	if len(body) == 0 || len(body) > maxInstructionLen {
		return Instruction{Kind: instrLiteral}
	}
	if len(body) == 1 {
		switch body[0] {
		case 'n':
			return Instruction{Kind: instrNewline}
		case 'b', 'i', 's', 'u':
			return Instruction{Kind: instrToggle, Style: body[0]}
		}
		return Instruction{Kind: instrLiteral}
	}
	if len(body) == 3 && (body[0] == 'i' || body[0] == 't') && isDigit(body[1]) && isDigit(body[2]) {
		value := int(body[1]-'0')*10 + int(body[2]-'0')
		if body[0] == 'i' {
			return Instruction{Kind: instrIndent, Value: value}
		}
		return Instruction{Kind: instrTab, Value: value}
	}
	if body == "c-none" {
		return Instruction{Kind: instrColorClear}
	}
	if len(body) >= 5 && body[0] == 'c' && body[1] == '-' {
		color, ok := ParseColor(body[2:])
		if !ok {
			return Instruction{Kind: instrColorInvalid}
		}
		return Instruction{Kind: instrColorSet, Color: color}
	}
	return Instruction{Kind: instrLiteral}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
