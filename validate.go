package tprint

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports markup that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports markup that appears to be binary data.
	ErrBinaryInput = errors.New("binary input detected")
	// ErrRawEscape reports an ESC byte in markup. Styles and colors are
	// written as bracket instructions.
	ErrRawEscape = errors.New("raw escape sequence in markup, use bracket instructions instead")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns an error if src is not valid UTF-8, looks binary or
// carries raw escape sequences.
func ValidateInput(src []byte) error {
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	control := 0
	for _, b := range src {
		switch {
		case b == 0x00:
			return ErrBinaryInput
		case b == 0x1b:
			return ErrRawEscape
		case isControlByte(b):
			control++
		}
	}
	if len(src) >= minBinarySample && control*100 >= len(src)*maxControlPct {
		return ErrBinaryInput
	}
	return nil
}

func isControlByte(b byte) bool {
	switch {
	case b < 0x09:
		return true
	case b > 0x0D && b < 0x20:
		return true
	case b == 0x7F:
		return true
	}
	return false
}
