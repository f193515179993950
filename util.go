package squeeze

import (
	"unicode/utf8"

	"golang.org/x/exp/constraints"
)

// saturatingAdd returns a+b, clamped to the maximum value of T.
func saturatingAdd[T constraints.Unsigned](a, b T) T {
	sum := a + b
	if sum < a {
		return ^T(0)
	}
	return sum
}

// DetectBinary reports whether data looks like binary rather than text: it
// contains a NUL byte or is not valid UTF-8.  The result is informational
// only and never changes how data is coded.
func DetectBinary(data []byte) bool {
	for _, b := range data {
		if b == 0 {
			return true
		}
	}
	return !utf8.Valid(data)
}
