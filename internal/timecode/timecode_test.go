package timecode

import (
	"regexp"
	"testing"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{59.999, "0:59"},
		{60, "1:00"},
		{65, "1:05"},
		{125.5, "2:05"},
		{600, "10:00"},
		{3725.9, "62:05"}, // minutes are unbounded, never rolled into hours
	}
	for _, tc := range cases {
		if got := Format(tc.seconds); got != tc.want {
			t.Errorf("Format(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatPrecise(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00.00"},
		{65.255, "1:05.25"}, // truncated, not rounded to .26
		{125.5, "2:05.50"},
		{12.349, "0:12.34"},
		{59.999, "0:59.99"},
	}
	for _, tc := range cases {
		if got := FormatPrecise(tc.seconds); got != tc.want {
			t.Errorf("FormatPrecise(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatShapes(t *testing.T) {
	coarse := regexp.MustCompile(`^\d+:\d{2}$`)
	precise := regexp.MustCompile(`^\d+:\d{2}\.\d{2}$`)
	for x := 0.0; x < 3600; x += 13.37 {
		if s := Format(x); !coarse.MatchString(s) {
			t.Fatalf("Format(%v) = %q does not match m:ss", x, s)
		}
		if s := FormatPrecise(x); !precise.MatchString(s) {
			t.Fatalf("FormatPrecise(%v) = %q does not match m:ss.cc", x, s)
		}
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"0:00", 0},
		{"1:05", 65},
		{"2:05.50", 125.5},
		{"10:00", 600},
		{"1:05.25", 65.25},
		{"bogus", 0},         // no colon at all
		{"1:2:3", 0},         // too many colons
		{"x:05", 5},          // bad minute component degrades to 0
		{"1:xx", 60},         // bad second component degrades to 0
		{"1:05.zz", 65},      // bad centisecond component degrades to 0
		{"", 0},
	}
	for _, tc := range cases {
		if got := Parse(tc.text); got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

// The codec is deliberately lossy: formatting truncates centiseconds, so a
// parse of the formatted text sits at or just below the true value. Edits
// that round-trip through the display accumulate that loss; asserting exact
// round-trip equality here would be wrong.
func TestParseFormatTruncationBias(t *testing.T) {
	for x := 0.0; x < 3600; x += 7.777 {
		y := Parse(FormatPrecise(x))
		diff := x - y
		if diff < 0 || diff >= 0.01 {
			t.Fatalf("Parse(FormatPrecise(%v)) = %v, loss %v outside [0, 0.01)", x, y, diff)
		}
	}
}
