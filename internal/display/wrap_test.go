package display

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestWrapWidth(t *testing.T) {
	tests := map[string]struct {
		text  string
		width int
		exp   string
	}{
		"short line untouched": {
			text:  "Progression saved.",
			width: 40,
			exp:   "Progression saved.",
		},
		"wraps on spaces": {
			text:  "Unlocked items: copper lead graphite",
			width: 20,
			exp:   "Unlocked items:\ncopper lead graphite",
		},
		"keeps existing newlines": {
			text:  "Zones:\n  ground-zero",
			width: 40,
			exp:   "Zones:\n  ground-zero",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "wrapped", WrapWidth(tt.text, tt.width), tt.exp)
		})
	}
}

func TestWrapWidth_LongWord(t *testing.T) {
	got := WrapWidth(strings.Repeat("x", 25), 10)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 10 {
			t.Errorf("line %q longer than 10", line)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]struct {
		in  string
		exp string
	}{
		"empty": {in: "", exp: ""},
		"word":  {in: "reset", exp: "Reset"},
		"upper": {in: "Zone", exp: "Zone"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "capitalized", Capitalize(tt.in), tt.exp)
		})
	}
}
