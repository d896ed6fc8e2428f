package tprint

// TaggedChar is a single grapheme from the scanned markup with its layout class.
type TaggedChar struct {
	Char string
	Kind CharKind
}

type charKind uint8

// CharKind is the exported alias of charKind for tooling and tests.
type CharKind = charKind

const (
	charStandard charKind = iota
	charSpace
	charFormatting
	charSpecialFormatting
)

const (
	// Standard is printable text that occupies one column.
	Standard CharKind = charStandard
	// Space is whitespace that may be dropped or truncated at line boundaries.
	Space CharKind = charSpace
	// Formatting is a zero-width escape sequence byte, or the newline marker.
	Formatting CharKind = charFormatting
	// SpecialFormatting carries a deferred [ixx] or [txx] instruction.
	SpecialFormatting CharKind = charSpecialFormatting
)

// String returns the kind name.
func (k charKind) String() string {
	switch k {
	case charStandard:
		return "standard"
	case charSpace:
		return "space"
	case charFormatting:
		return "formatting"
	case charSpecialFormatting:
		return "special-formatting"
	default:
		return "unknown"
	}
}

// newlineMarker is the Formatting character emitted for [n].
const newlineMarker = "\n"
