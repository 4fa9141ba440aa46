package font

import "errors"

// Sentinel errors for the font package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("font: empty font data")

	// ErrClosed is returned when a Font or Face is used after Close.
	ErrClosed = errors.New("font: use of closed font")

	// ErrInvalidMetrics is returned when a font reports a zero
	// ascender-to-descender height.
	ErrInvalidMetrics = errors.New("font: invalid vertical metrics")
)

// UnknownParserError is returned when a font is loaded with a parser name
// that was never registered.
type UnknownParserError struct {
	Name string
}

func (e *UnknownParserError) Error() string {
	return "font: unknown parser " + e.Name
}
