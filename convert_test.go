package tprint

import (
	"errors"
	"strings"
	"testing"
)

func mustConvert(t *testing.T, text string, f Format) []string {
	t.Helper()
	lines, err := Convert(text, f)
	if err != nil {
		t.Fatalf("convert %q: %v", text, err)
	}
	return lines
}

func assertLines(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("unexpected line count: got %d want %d\n got: %q\nwant: %q", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d mismatch\n got: %q\nwant: %q", i, got[i], want[i])
		}
	}
}

func TestConvertWhitespaceOnlyIsEmpty(t *testing.T) {
	for _, text := range []string{"", " ", "   \t  ", "\n\n"} {
		if lines := mustConvert(t, text, Format{}); len(lines) != 0 {
			t.Fatalf("%q: expected no lines, got %q", text, lines)
		}
	}
}

func TestConvertSplitsLongRunsIntoCeilLines(t *testing.T) {
	cases := []struct {
		length int
		width  int
		want   []int
	}{
		{length: 50, width: 80, want: []int{50}},
		{length: 80, width: 80, want: []int{80}},
		{length: 160, width: 80, want: []int{80, 80}},
		{length: 200, width: 80, want: []int{80, 80, 40}},
		{length: 25, width: 10, want: []int{10, 10, 5}},
	}
	for _, tc := range cases {
		lines := mustConvert(t, strings.Repeat("a", tc.length), Format{Width: tc.width})
		if len(lines) != len(tc.want) {
			t.Fatalf("length %d width %d: got %d lines want %d", tc.length, tc.width, len(lines), len(tc.want))
		}
		for i, n := range tc.want {
			if len(lines[i]) != n {
				t.Fatalf("length %d width %d: line %d has %d chars, want %d", tc.length, tc.width, i, len(lines[i]), n)
			}
		}
	}
}

func TestConvertWrapsAtWordBoundaries(t *testing.T) {
	lines := mustConvert(t, "hello world again", Format{Width: 10})
	assertLines(t, lines, []string{"hello ", "world ", "again"})
}

func TestConvertSplitsAfterPartialLine(t *testing.T) {
	lines := mustConvert(t, "ab cdefghijklmnop", Format{Width: 10})
	assertLines(t, lines, []string{"ab cdefghi", "jklmnop"})
}

func TestConvertDropsSpacesAtStartOfWrappedLine(t *testing.T) {
	lines := mustConvert(t, "aaaaaaaaaa bbb", Format{Width: 10})
	assertLines(t, lines, []string{"aaaaaaaaaa", "bbb"})
}

func TestConvertKeepsLeadingSpacesOnFirstLine(t *testing.T) {
	lines := mustConvert(t, "  hi", Format{})
	assertLines(t, lines, []string{"  hi"})
}

func TestConvertTruncatesTrailingSpaces(t *testing.T) {
	lines := mustConvert(t, "abcdef    x", Format{Width: 8})
	assertLines(t, lines, []string{"abcdef  ", "x"})
}

func TestConvertNewline(t *testing.T) {
	assertLines(t, mustConvert(t, "Hello[n]World", Format{}), []string{"Hello", "World"})
	assertLines(t, mustConvert(t, "a[n][n]b", Format{}), []string{"a", "", "b"})
}

func TestConvertNewlineAfterStyleToggle(t *testing.T) {
	lines := mustConvert(t, "[b]a[b][n]b", Format{})
	assertLines(t, lines, []string{"\x1b[1ma\x1b[0m", "b"})
}

func TestConvertTextIndent(t *testing.T) {
	assertLines(t, mustConvert(t, "The quick brown fox.", Format{TextIndent: 3}), []string{"   The quick brown fox."})

	lines := mustConvert(t, "aaaa bbbb cccc", Format{Width: 12, TextIndent: 2, FollowingIndent: 2})
	assertLines(t, lines, []string{"  aaaa bbbb ", "    cccc"})
}

func TestConvertNegativeFollowingIndent(t *testing.T) {
	lines := mustConvert(t, "aaaa bbbb", Format{Width: 8, TextIndent: 4, FollowingIndent: -2})
	assertLines(t, lines, []string{"    aaaa", "  bbbb"})
}

func TestConvertIndentInstructions(t *testing.T) {
	assertLines(t, mustConvert(t, "a[i04][n]b", Format{}), []string{"a", "    b"})

	// [i00] returns to the text plus following indent.
	f := Format{Width: 80, TextIndent: 2, FollowingIndent: 3}
	assertLines(t, mustConvert(t, "a[i10][i20][i00][n]b", f), []string{"  a", "     b"})
}

func TestConvertIndentClampedToWidth(t *testing.T) {
	lines := mustConvert(t, "a[i99][n]bcd", Format{Width: 10})
	pad := strings.Repeat(" ", 9)
	assertLines(t, lines, []string{"a", pad + "b", pad + "c", pad + "d"})
}

func TestConvertTab(t *testing.T) {
	assertLines(t, mustConvert(t, "abc[t05]def", Format{}), []string{"abc     def"})
	assertLines(t, mustConvert(t, "[t04]abc", Format{}), []string{"    abc"})
}

func TestConvertTabTruncatedAtLineEnd(t *testing.T) {
	lines := mustConvert(t, "abcdefgh[t05]xyz", Format{Width: 10})
	assertLines(t, lines, []string{"abcdefgh  ", "xyz"})
}

func TestConvertAdjacentSpecialInstructions(t *testing.T) {
	lines := mustConvert(t, "a[t02][i03][n]b", Format{})
	assertLines(t, lines, []string{"a  ", "   b"})
}

func TestConvertColor(t *testing.T) {
	assertLines(t, mustConvert(t, "[c-red]Alert[c-none]", Format{}), []string{"\x1b[91mAlert\x1b[0m"})
	assertLines(t, mustConvert(t, "[c-notacolor]Text", Format{}), []string{"Text"})
}

func TestConvertStyles(t *testing.T) {
	assertLines(t, mustConvert(t, "[b]bold[b] text", Format{}), []string{"\x1b[1mbold\x1b[0m text"})
	assertLines(t, mustConvert(t, "[u]under", Format{}), []string{"\x1b[4munder\x1b[0m"})
}

func TestConvertLiteralBrackets(t *testing.T) {
	assertLines(t, mustConvert(t, "see [x] and [note]", Format{}), []string{"see [x] and [note]"})
}

func TestConvertEscapesDoNotCountTowardWidth(t *testing.T) {
	text := "[c-green]" + strings.Repeat("a", 10) + "[c-none]"
	lines := mustConvert(t, text, Format{Width: 10})
	assertLines(t, lines, []string{"\x1b[92m" + strings.Repeat("a", 10) + "\x1b[0m"})
	if got := VisibleWidth(lines[0]); got != 10 {
		t.Fatalf("unexpected visible width %d", got)
	}
}

func TestConvertLinesNeverExceedWidth(t *testing.T) {
	text := "[b]Lorem[b] ipsum dolor sit amet, [c-teal]consectetur[c-none] adipiscing elit. " +
		"Supercalifragilisticexpialidocious[t04]words and [i02]more [u]underlined[u] text[n]" +
		"with a second paragraph that keeps on going for a while."
	for _, width := range []int{5, 8, 13, 20, 33, 80} {
		for _, indent := range []int{0, 1, 3} {
			f := Format{Width: width, TextIndent: indent, FollowingIndent: 1}
			if f.Validate() != nil {
				continue
			}
			for i, line := range mustConvert(t, text, f) {
				if w := VisibleWidth(line); w > width {
					t.Fatalf("width %d indent %d: line %d is %d wide: %q", width, indent, i, w, line)
				}
			}
		}
	}
}

func TestConvertPreservesVisibleText(t *testing.T) {
	text := "one two three four five six seven eight nine ten"
	lines := mustConvert(t, text, Format{Width: 12})
	if got := strings.Join(lines, ""); got != text {
		t.Fatalf("visible text changed\n got: %q\nwant: %q", got, text)
	}
}

func TestConvertRejectsIndentsWiderThanWidth(t *testing.T) {
	cases := []struct {
		f    Format
		want error
	}{
		{Format{Width: 5, TextIndent: 5}, ErrIndentTooWide},
		{Format{Width: 5, TextIndent: 9}, ErrIndentTooWide},
		{Format{TextIndent: 80}, ErrIndentTooWide},
		{Format{Width: 10, TextIndent: 4, FollowingIndent: 6}, ErrIndentsTooWide},
		{Format{Width: -1, TextIndent: -5}, ErrWidthTooSmall},
		{Format{Width: -3, TextIndent: -5, FollowingIndent: -1}, ErrWidthTooSmall},
	}
	for _, tc := range cases {
		lines, err := Convert("text", tc.f)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%+v: expected %v, got %v", tc.f, tc.want, err)
		}
		if lines != nil {
			t.Fatalf("%+v: expected no lines, got %q", tc.f, lines)
		}
	}
}

func TestLayoutIgnoresInvalidFormat(t *testing.T) {
	stream := Scan("hello world")
	for _, f := range []Format{{Width: -1, TextIndent: -5}, {Width: 4, TextIndent: 4}} {
		if lines := Layout(stream, f); lines != nil {
			t.Fatalf("%+v: expected no lines, got %q", f, lines)
		}
	}
}

func TestConvertDefaultWidth(t *testing.T) {
	lines := mustConvert(t, strings.Repeat("a", DefaultWidth+1), Format{})
	if len(lines) != 2 || len(lines[0]) != DefaultWidth {
		t.Fatalf("expected default width %d, got %q", DefaultWidth, lines)
	}
}

func TestConvertSampleParagraphs(t *testing.T) {
	text := mustReadSample(t, "testdata/paragraphs.txt")
	for _, width := range []int{20, 40, 60, 80, 120} {
		lines := mustConvert(t, text, Format{Width: width, TextIndent: 2, FollowingIndent: 1})
		if len(lines) == 0 {
			t.Fatalf("width %d: no lines", width)
		}
		for i, line := range lines {
			if w := VisibleWidth(line); w > width {
				t.Fatalf("width %d: line %d is %d wide: %q", width, i, w, line)
			}
			if strings.Contains(line, "[c-") || strings.Contains(line, "[t0") {
				t.Fatalf("width %d: instruction leaked into line %d: %q", width, i, line)
			}
		}
		if !strings.Contains(lines[0], "\x1b[1m") {
			t.Fatalf("width %d: expected bold opening, got %q", width, lines[0])
		}
	}
}
