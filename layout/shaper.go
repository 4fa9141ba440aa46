package layout

import (
	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/fontstash/glyph"
)

// ShapingFace is a face that can be shaped with HarfBuzz. *font.Face
// implements it.
type ShapingFace interface {
	Typeface() (*gotext.Font, error)
	PPEM() float64
}

// Shaper measures text with HarfBuzz shaping, so ligatures and
// OpenType kerning are reflected in the advance.
//
// Shaper is not safe for concurrent use.
type Shaper struct {
	hb shaping.HarfbuzzShaper
}

// Advance returns the shaped advance of text set in face, in pixels.
func (s *Shaper) Advance(text string, face ShapingFace) (float64, error) {
	if text == "" {
		return 0, nil
	}
	tf, err := face.Typeface()
	if err != nil {
		return 0, err
	}

	runes := []rune(text)
	out := s.hb.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(tf),
		Size:      fixed.Int26_6(face.PPEM() * 64),
		Script:    scriptOf(runes),
		Language:  language.NewLanguage("en"),
	})
	return float64(out.Advance) / 64, nil
}

// scriptOf returns the script of the first non-space rune.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// MeasureRuns returns the total advance of runs, scaled horizontally.
// Runs set in a face that implements ShapingFace are shaped; the others
// are summed from glyph advances. Line breaks inside runs are not
// interpreted.
func (l *Layout) MeasureRuns(s *Shaper, runs []Run) (float64, error) {
	faces := l.glyphs.Faces()
	total := 0.0
	for _, run := range runs {
		if run.Font < len(faces) {
			if sf, ok := faces[run.Font].(ShapingFace); ok {
				glyph.MetricsAt(faces[run.Font], l.Size)
				adv, err := s.Advance(run.Text, sf)
				if err != nil {
					return 0, err
				}
				total += adv
				continue
			}
		}
		total += l.advance(run.Text)
	}
	sx, _ := l.scale()
	return total * sx, nil
}

// advance sums the glyph advances of text set on one line.
func (l *Layout) advance(text string) float64 {
	x := 0.0
	var prev *glyph.Glyph
	for _, r := range text {
		g := l.glyphs.Resolve(l.Size, r)
		if g == nil {
			prev = nil
			continue
		}
		l.quad(g, prev, &x, 0)
		prev = g
	}
	return x
}
