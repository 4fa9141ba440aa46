// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlas

// Packer implements shelf-based rectangle packing inside a fixed canvas.
//
// Rectangles are placed left-to-right on horizontal shelves. Each shelf is
// as tall as the tallest rectangle placed on it so far. When a rectangle no
// longer fits beside the others, a new shelf is opened below the previous
// one. Nothing is ever moved or freed individually; Reset discards all
// placements at once.
type Packer struct {
	width   int
	height  int
	shelves []shelf

	usedArea int
}

// shelf represents a horizontal strip in the canvas.
type shelf struct {
	y      int // Y position of shelf top
	height int // Height of the shelf (tallest item so far)
	x      int // Current X position (next free slot)
}

// NewPacker creates a packer for a width×height canvas.
func NewPacker(width, height int) *Packer {
	return &Packer{
		width:   width,
		height:  height,
		shelves: make([]shelf, 0, 16),
	}
}

// TryAllocate finds space for a w×h rectangle.
// It returns the top-left corner and true, or false when the canvas is
// exhausted. Exhaustion is a signal for the caller to start a new canvas,
// not an error. Non-positive sizes are never allocated.
func (p *Packer) TryAllocate(w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 || w > p.width || h > p.height {
		return -1, -1, false
	}

	for i := range p.shelves {
		s := &p.shelves[i]
		if s.x+w > p.width {
			continue
		}
		if h <= s.height {
			x, y = s.x, s.y
			s.x += w
			p.usedArea += w * h
			return x, y, true
		}
		// Only the last shelf can grow, and only if there is room below.
		if i == len(p.shelves)-1 && s.y+h <= p.height {
			s.height = h
			x, y = s.x, s.y
			s.x += w
			p.usedArea += w * h
			return x, y, true
		}
	}

	newY := p.nextShelfY()
	if newY+h > p.height {
		return -1, -1, false
	}
	p.shelves = append(p.shelves, shelf{y: newY, height: h, x: w})
	p.usedArea += w * h
	return 0, newY, true
}

// CanFit reports whether TryAllocate(w, h) would succeed, without allocating.
func (p *Packer) CanFit(w, h int) bool {
	if w <= 0 || h <= 0 || w > p.width || h > p.height {
		return false
	}
	for i := range p.shelves {
		s := &p.shelves[i]
		if s.x+w > p.width {
			continue
		}
		if h <= s.height {
			return true
		}
		if i == len(p.shelves)-1 && s.y+h <= p.height {
			return true
		}
	}
	return p.nextShelfY()+h <= p.height
}

func (p *Packer) nextShelfY() int {
	if len(p.shelves) == 0 {
		return 0
	}
	last := p.shelves[len(p.shelves)-1]
	return last.y + last.height
}

// Reset discards all placements.
func (p *Packer) Reset() {
	p.shelves = p.shelves[:0]
	p.usedArea = 0
}

// Width returns the canvas width.
func (p *Packer) Width() int { return p.width }

// Height returns the canvas height.
func (p *Packer) Height() int { return p.height }

// Utilization returns the fraction of canvas area in use (0.0 to 1.0).
func (p *Packer) Utilization() float64 {
	if p.width <= 0 || p.height <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(p.width*p.height)
}

// ShelfCount returns the number of shelves currently in use.
func (p *Packer) ShelfCount() int {
	return len(p.shelves)
}
