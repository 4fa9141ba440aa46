package layout

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Codepoint is one decoded codepoint and its position in the input.
type Codepoint struct {
	Rune rune

	// Offset is the index of the first input unit: a byte for strings,
	// a code unit for UTF-16 input.
	Offset int

	// Width is the number of input units the codepoint occupies.
	Width int
}

// Decode splits a UTF-8 string into codepoints. Invalid bytes decode to
// utf8.RuneError one byte at a time.
func Decode(s string) []Codepoint {
	cps := make([]Codepoint, 0, len(s))
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		cps = append(cps, Codepoint{Rune: r, Offset: i, Width: n})
		i += n
	}
	return cps
}

// DecodeUTF16 splits UTF-16 code units into codepoints. A surrogate pair
// is one codepoint of width 2; an unpaired surrogate decodes to
// utf8.RuneError.
func DecodeUTF16(u []uint16) []Codepoint {
	cps := make([]Codepoint, 0, len(u))
	for i := 0; i < len(u); {
		r, n := rune(u[i]), 1
		if utf16.IsSurrogate(r) {
			r = utf8.RuneError
			if i+1 < len(u) {
				if d := utf16.DecodeRune(rune(u[i]), rune(u[i+1])); d != utf8.RuneError {
					r, n = d, 2
				}
			}
		}
		cps = append(cps, Codepoint{Rune: r, Offset: i, Width: n})
		i += n
	}
	return cps
}

// Normalize returns s in Unicode normalization form C, so that a base
// letter and its combining mark resolve to a single precomposed glyph
// when the font has one.
func Normalize(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}
