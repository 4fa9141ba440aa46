// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlas

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
)

// Sentinel errors for the atlas package.
var (
	// ErrRegionOutOfBounds is returned when a glyph region does not lie
	// inside the atlas canvas.
	ErrRegionOutOfBounds = errors.New("atlas: region out of bounds")

	// ErrTextureNotUpdatable is returned when an existing texture accepts
	// neither region nor full updates.
	ErrTextureNotUpdatable = errors.New("atlas: texture cannot be updated")
)

// MaxEffectRadius is the largest accepted blur or stroke radius.
const MaxEffectRadius = 20

// Source renders the coverage of one glyph into a caller-owned region.
type Source interface {
	RenderGlyph(dst []byte, width, height, stride int) error
}

// StrokeSource is implemented by sources that can stroke the glyph outline.
// The glyph box origin maps to (radius, radius) inside the region.
type StrokeSource interface {
	StrokeGlyph(dst []byte, width, height, stride int, radius float64) error
}

// PadFromBlur returns the padding kept around a glyph for an effect radius.
func PadFromBlur(radius int) int {
	return radius + 2
}

// Pad returns the padding kept on every side of a glyph rendered with the
// given blur and stroke radii.
func Pad(blur, stroke int) int {
	return max(PadFromBlur(blur), PadFromBlur(stroke))
}

var atlasIDs atomic.Uint64

// Atlas is one fixed-size coverage canvas plus its packer.
//
// Coverage is kept on the CPU as 8-bit alpha and mirrored to a GPU texture
// on Upload. Rectangles handed out by Reserve are never reused. Once Close
// is called the atlas accepts no new reservations but stays valid for the
// glyphs already placed in it.
type Atlas struct {
	id     uint64
	width  int
	height int
	itw    float64
	ith    float64

	packer *Packer
	pix    *image.Alpha
	closed bool

	// dirty is the union of regions written since the last upload.
	dirty   image.Rectangle
	texture gpucontext.Texture
	// staging is reused across uploads, grown never shrunk.
	staging []byte
}

// New creates an empty width×height atlas.
func New(width, height int) *Atlas {
	return &Atlas{
		id:     atlasIDs.Add(1),
		width:  width,
		height: height,
		itw:    1 / float64(width),
		ith:    1 / float64(height),
		packer: NewPacker(width, height),
		pix:    image.NewAlpha(image.Rect(0, 0, width, height)),
	}
}

// ID returns a process-unique identifier for the atlas.
func (a *Atlas) ID() uint64 { return a.id }

// Width returns the canvas width in texels.
func (a *Atlas) Width() int { return a.width }

// Height returns the canvas height in texels.
func (a *Atlas) Height() int { return a.height }

// InvWidth returns 1/width, used to map texels to texture coordinates.
func (a *Atlas) InvWidth() float64 { return a.itw }

// InvHeight returns 1/height, used to map texels to texture coordinates.
func (a *Atlas) InvHeight() float64 { return a.ith }

// Packer returns the rectangle packer of the atlas.
func (a *Atlas) Packer() *Packer { return a.packer }

// Closed reports whether the atlas has been superseded.
func (a *Atlas) Closed() bool { return a.closed }

// Close marks the atlas closed to new reservations.
func (a *Atlas) Close() { a.closed = true }

// Reserve allocates a w×h region. It reports false when the atlas is
// exhausted or closed; it never retries.
func (a *Atlas) Reserve(w, h int) (x, y int, ok bool) {
	if a.closed {
		return -1, -1, false
	}
	return a.packer.TryAllocate(w, h)
}

// WriteGlyph renders src into the reserved region r. The glyph box sits
// Pad(blur, stroke) texels in from every edge of r. Blur and stroke are
// applied inside r only; callers validate that at most one is non-zero.
func (a *Atlas) WriteGlyph(r image.Rectangle, src Source, blur, stroke int) error {
	if !r.In(a.pix.Rect) {
		return fmt.Errorf("%w: %v in %v", ErrRegionOutOfBounds, r, a.pix.Rect)
	}
	pad := Pad(blur, stroke)
	gw, gh := r.Dx()-2*pad, r.Dy()-2*pad

	if gw > 0 && gh > 0 {
		var err error
		if ss, ok := src.(StrokeSource); ok && stroke > 0 {
			inset := pad - stroke
			off := a.pix.PixOffset(r.Min.X+inset, r.Min.Y+inset)
			err = ss.StrokeGlyph(a.pix.Pix[off:], gw+2*stroke, gh+2*stroke, a.pix.Stride, float64(stroke))
		} else {
			off := a.pix.PixOffset(r.Min.X+pad, r.Min.Y+pad)
			err = src.RenderGlyph(a.pix.Pix[off:], gw, gh, a.pix.Stride)
			if err == nil && stroke > 0 {
				dilate(a.pix, r, stroke)
			}
		}
		if err != nil {
			return err
		}
		if blur > 0 {
			blurRegion(a.pix, r, blur)
		}
	}

	a.dirty = a.dirty.Union(r)
	return nil
}

// Image returns the coverage canvas. The image is owned by the atlas.
func (a *Atlas) Image() *image.Alpha { return a.pix }

// Dirty returns the region written since the last upload.
func (a *Atlas) Dirty() image.Rectangle { return a.dirty }

// Reset discards all placements and coverage. The atlas reopens.
func (a *Atlas) Reset() {
	a.packer.Reset()
	clear(a.pix.Pix)
	a.closed = false
	a.dirty = a.pix.Rect
}
