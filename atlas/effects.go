// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlas

import (
	"image"
	"math"
)

// Fixed-point precision of the exponential blur.
const (
	blurAlphaPrec = 16
	blurZPrec     = 7
)

// blurRegion applies a two-pass recursive exponential blur to region r of
// img. The region border is forced to zero so no coverage leaks into the
// neighbouring glyph.
func blurRegion(img *image.Alpha, r image.Rectangle, radius int) {
	if radius < 1 || r.Empty() {
		return
	}
	// Alpha such that about 90% of the kernel lies within the radius.
	sigma := float64(radius) * 0.57735 // 1/sqrt(3)
	alpha := int(float64(int(1)<<blurAlphaPrec) * (1 - math.Exp(-2.3/(sigma+1))))

	off := img.PixOffset(r.Min.X, r.Min.Y)
	pix := img.Pix[off:]
	w, h, stride := r.Dx(), r.Dy(), img.Stride

	blurRows(pix, w, h, stride, alpha)
	blurCols(pix, w, h, stride, alpha)
	blurRows(pix, w, h, stride, alpha)
	blurCols(pix, w, h, stride, alpha)
}

// blurCols runs the filter horizontally along every row.
func blurCols(pix []byte, w, h, stride, alpha int) {
	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+w]
		z := 0
		for x := 1; x < w; x++ {
			z += (alpha * ((int(row[x]) << blurZPrec) - z)) >> blurAlphaPrec
			row[x] = byte(z >> blurZPrec)
		}
		row[w-1] = 0
		z = 0
		for x := w - 2; x >= 0; x-- {
			z += (alpha * ((int(row[x]) << blurZPrec) - z)) >> blurAlphaPrec
			row[x] = byte(z >> blurZPrec)
		}
		row[0] = 0
	}
}

// blurRows runs the filter vertically along every column.
func blurRows(pix []byte, w, h, stride, alpha int) {
	for x := 0; x < w; x++ {
		z := 0
		for y := 1; y < h; y++ {
			i := y*stride + x
			z += (alpha * ((int(pix[i]) << blurZPrec) - z)) >> blurAlphaPrec
			pix[i] = byte(z >> blurZPrec)
		}
		pix[(h-1)*stride+x] = 0
		z = 0
		for y := h - 2; y >= 0; y-- {
			i := y*stride + x
			z += (alpha * ((int(pix[i]) << blurZPrec) - z)) >> blurAlphaPrec
			pix[i] = byte(z >> blurZPrec)
		}
		pix[x] = 0
	}
}

// dilate grows coverage in region r by a disc of the given radius. It is
// the stroke fallback for sources that cannot provide an outline.
func dilate(img *image.Alpha, r image.Rectangle, radius int) {
	if radius < 1 || r.Empty() {
		return
	}
	w, h := r.Dx(), r.Dy()
	src := make([]byte, w*h)
	for y := 0; y < h; y++ {
		off := img.PixOffset(r.Min.X, r.Min.Y+y)
		copy(src[y*w:(y+1)*w], img.Pix[off:off+w])
	}

	r2 := radius * radius
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var m byte
			for dy := -radius; dy <= radius && m < 0xff; dy++ {
				sy := y + dy
				if sy < 0 || sy >= h {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					sx := x + dx
					if sx < 0 || sx >= w || dx*dx+dy*dy > r2 {
						continue
					}
					if v := src[sy*w+sx]; v > m {
						m = v
					}
				}
			}
			img.Pix[img.PixOffset(r.Min.X+x, r.Min.Y+y)] = m
		}
	}
}
