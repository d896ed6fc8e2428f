package tprint

import (
	"errors"
	"fmt"
	"sync"
)

// DefaultWidth is the paragraph width used when Format.Width is zero.
const DefaultWidth = 80

var (
	// ErrWidthTooSmall reports a negative paragraph width.
	ErrWidthTooSmall = errors.New("paragraph width must not be negative")
	// ErrIndentTooWide reports a text indent that leaves no room for text.
	ErrIndentTooWide = errors.New("text indent is greater than or equal to the paragraph width, leaving no space to print the text")
	// ErrIndentsTooWide reports text plus following-line indents that leave no room for text.
	ErrIndentsTooWide = errors.New("text indent plus following line indent is greater than or equal to the paragraph width, leaving no space to print the text")
)

// Format describes paragraph geometry for conversion.
type Format struct {
	// Width is the maximum number of printable columns per line.
	Width int
	// TextIndent is the number of spaces before every line.
	TextIndent int
	// FollowingIndent is added to TextIndent on every line after the first.
	FollowingIndent int
}

func (f Format) withDefaults() Format {
	if f.Width == 0 {
		f.Width = DefaultWidth
	}
	return f
}

// Validate reports whether f leaves room for text on every line.
func (f Format) Validate() error {
	f = f.withDefaults()
	if f.Width < 0 {
		return ErrWidthTooSmall
	}
	if f.Width <= f.TextIndent {
		return ErrIndentTooWide
	}
	if f.Width <= f.TextIndent+f.FollowingIndent {
		return ErrIndentsTooWide
	}
	return nil
}

var scannerPool = sync.Pool{
	New: func() any {
		return NewScanner()
	},
}

// Convert turns markup into printable lines with embedded ANSI sequences.
func Convert(text string, f Format) ([]string, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	s := scannerPool.Get().(*Scanner)
	s.Reset()
	s.WriteString(text)
	s.Finish()
	lines := Layout(s.stream, f)
	s.Reset()
	scannerPool.Put(s)
	return lines, nil
}
