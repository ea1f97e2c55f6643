// Package timecode converts between seconds-based float values and the
// m:ss / m:ss.cc text forms shown in the segment editor.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format renders seconds as "M:SS". Minutes are unpadded and unbounded,
// seconds are truncated to whole values, not rounded. Negative input is
// not clamped; the backend never produces negative times.
func Format(seconds float64) string {
	m := int(seconds / 60)
	s := int(seconds) - m*60
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatPrecise renders seconds as "M:SS.CC" with truncated centiseconds.
// Truncation biases the display low by up to 0.01s; Parse(FormatPrecise(x))
// is therefore not an exact inverse.
func FormatPrecise(seconds float64) string {
	cc := int(math.Floor(math.Mod(seconds, 1) * 100))
	return fmt.Sprintf("%s.%02d", Format(seconds), cc)
}

// Parse decodes "M:SS" or "M:SS.CC" back into seconds. Unparsable integer
// components degrade to 0 rather than failing, and input without exactly
// one ":" yields 0. Parse never reports an error.
func Parse(text string) float64 {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 2 {
		return 0
	}
	minutes := atoiOrZero(parts[0])

	sec := parts[1]
	var centis int
	if dot := strings.IndexByte(sec, '.'); dot >= 0 {
		centis = atoiOrZero(sec[dot+1:])
		sec = sec[:dot]
	}
	seconds := atoiOrZero(sec)

	return float64(minutes)*60 + float64(seconds) + float64(centis)/100
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
