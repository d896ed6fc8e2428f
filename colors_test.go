package tprint

import (
	"sort"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		token string
		ok    bool
		sgr   string
	}{
		{"red", true, "\x1b[91m"},
		{"gray", true, "\x1b[90m"},
		{"white", true, "\x1b[97m"},
		{"navy", true, "\x1b[38;2;0;0;128m"},
		{"0;0;0", true, "\x1b[38;2;0;0;0m"},
		{"12;34;56", true, "\x1b[38;2;12;34;56m"},
		{"007;8;9", true, "\x1b[38;2;7;8;9m"},
		{"256;0;0", false, ""},
		{"1;2", false, ""},
		{"1;2;3;4", false, ""},
		{"1;;3", false, ""},
		{"a;b;c", false, ""},
		{"Red", false, ""},
		{"notacolor", false, ""},
		{"", false, ""},
	}
	for _, tc := range cases {
		c, ok := ParseColor(tc.token)
		if ok != tc.ok {
			t.Fatalf("%q: ok=%v want %v", tc.token, ok, tc.ok)
		}
		if got := c.SGR(); got != tc.sgr {
			t.Fatalf("%q: sgr %q want %q", tc.token, got, tc.sgr)
		}
	}
}

func TestBasicColorsWinOverExtended(t *testing.T) {
	for _, name := range BasicColors() {
		c, ok := ParseColor(name)
		if !ok {
			t.Fatalf("%s: not parsed", name)
		}
		if got, want := c.SGR(), "\x1b["+basicColorCodes[name]+"m"; got != want {
			t.Fatalf("%s: got %q want %q", name, got, want)
		}
	}
}

func TestColorsListsEveryName(t *testing.T) {
	names := Colors()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("color names are not sorted")
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			t.Fatalf("duplicate color %q", name)
		}
		seen[name] = true
		if _, ok := ParseColor(name); !ok {
			t.Fatalf("listed color %q does not parse", name)
		}
	}
	for _, name := range BasicColors() {
		if !seen[name] {
			t.Fatalf("basic color %q missing", name)
		}
	}
	if len(BasicColors()) != 8 {
		t.Fatalf("expected 8 basic colors, got %d", len(BasicColors()))
	}
}

func TestColorSpecString(t *testing.T) {
	if got := (ColorSpec{}).String(); got != "none" {
		t.Fatalf("unexpected zero color %q", got)
	}
	if got := RGBColor(1, 2, 3).String(); got != "1;2;3" {
		t.Fatalf("unexpected rgb color %q", got)
	}
	if got := (ColorSpec{}).SGR(); got != "" {
		t.Fatalf("zero color should have no sequence, got %q", got)
	}
}
