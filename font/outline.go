package font

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// SegmentOp is the type of an outline segment.
type SegmentOp uint8

// Outline segment operations.
const (
	SegmentMoveTo SegmentOp = iota
	SegmentLineTo
	SegmentQuadTo
	SegmentCubeTo
)

// String returns the operation name.
func (op SegmentOp) String() string {
	switch op {
	case SegmentMoveTo:
		return "MoveTo"
	case SegmentLineTo:
		return "LineTo"
	case SegmentQuadTo:
		return "QuadTo"
	case SegmentCubeTo:
		return "CubeTo"
	default:
		return "Unknown"
	}
}

// Point is a 2D point in pixels, y pointing down.
type Point struct {
	X, Y float64
}

// Segment is one outline command. MoveTo and LineTo use Args[0], QuadTo
// uses Args[0:2] and CubeTo uses Args[0:3].
type Segment struct {
	Op   SegmentOp
	Args [3]Point
}

// coverage is the opaque source color painted by the rasterizers.
var coverage = color.Alpha{A: 0xff}

// scratchFor returns a cleared width×height view of buf, growing it if
// needed. The rasterizer writes w*h bytes contiguously when the target is
// its whole clip rectangle, so it only ever draws into dense images.
func scratchFor(buf **image.Alpha, width, height int) *image.Alpha {
	cur := image.Point{}
	if *buf != nil {
		cur = (*buf).Rect.Size()
	}
	if width > cur.X || height > cur.Y {
		*buf = image.NewAlpha(image.Rect(0, 0, max(width, cur.X), max(height, cur.Y)))
	}
	m := &image.Alpha{
		Pix:    (*buf).Pix[:width*height],
		Stride: width,
		Rect:   image.Rect(0, 0, width, height),
	}
	clear(m.Pix)
	return m
}

// blit copies the dense coverage of src into dst rows stride bytes apart.
func blit(dst []byte, stride int, src *image.Alpha) {
	w := src.Rect.Dx()
	for y := 0; y < src.Rect.Dy(); y++ {
		copy(dst[y*stride:y*stride+w], src.Pix[y*w:(y+1)*w])
	}
}

// fillOutline rasterizes segs into img, translating every point by
// (dx, dy).
func fillOutline(img *image.Alpha, segs []Segment, dx, dy float64) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetColor(coverage)
	addPath(filler, segs, dx, dy)
	filler.Draw()
}

// strokeOutline paints the outline fill plus a round-joined stroke of the
// given radius around it.
func strokeOutline(img *image.Alpha, segs []Segment, dx, dy, radius float64) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())

	stroker := rasterx.NewStroker(w, h, scanner)
	stroker.SetStroke(toFixed(2*radius), 4<<6, rasterx.RoundCap, nil, rasterx.RoundGap, rasterx.Round)
	stroker.SetColor(coverage)
	addPath(stroker, segs, dx, dy)
	stroker.Draw()
	stroker.Clear()

	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetColor(coverage)
	addPath(filler, segs, dx, dy)
	filler.Draw()
}

// addPath feeds segments into a rasterx path consumer.
func addPath(p rasterx.Adder, segs []Segment, dx, dy float64) {
	at := func(pt Point) fixed.Point26_6 {
		return rasterx.ToFixedP(pt.X+dx, pt.Y+dy)
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case SegmentMoveTo:
			if open {
				p.Stop(true)
			}
			p.Start(at(s.Args[0]))
			open = true
		case SegmentLineTo:
			p.Line(at(s.Args[0]))
		case SegmentQuadTo:
			p.QuadBezier(at(s.Args[0]), at(s.Args[1]))
		case SegmentCubeTo:
			p.CubeBezier(at(s.Args[0]), at(s.Args[1]), at(s.Args[2]))
		}
	}
	if open {
		p.Stop(true)
	}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
