// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlas

import (
	"fmt"
	"image"

	"github.com/gogpu/fontstash/internal/logging"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// textureDestroyer is the interface for destroying textures.
// This matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Format returns the pixel format of the GPU texture mirrored from the
// atlas. Coverage is expanded to premultiplied white RGBA.
func (a *Atlas) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Extent returns the texture size of the atlas.
func (a *Atlas) Extent() gputypes.Extent3D {
	return gputypes.NewExtent2D(uint32(a.width), uint32(a.height)) //nolint:gosec // sizes validated positive
}

// Texture returns the GPU texture of the atlas, or nil before the first Upload.
func (a *Atlas) Texture() gpucontext.Texture { return a.texture }

// Upload mirrors the coverage canvas to the GPU.
//
// The first call creates the texture through creator. Later calls upload
// only the dirty region when the texture implements
// gpucontext.TextureRegionUpdater, the full canvas when it implements
// gpucontext.TextureUpdater, and fail otherwise. Upload is a no-op when
// nothing changed.
func (a *Atlas) Upload(creator gpucontext.TextureCreator) (gpucontext.Texture, error) {
	if a.texture == nil {
		if creator == nil {
			return nil, nil
		}
		data := a.rgba(a.pix.Rect)
		tex, err := creator.NewTextureFromRGBA(a.width, a.height, data)
		if err != nil {
			return nil, fmt.Errorf("atlas: NewTextureFromRGBA failed: %w", err)
		}
		a.texture = tex
		a.dirty = image.Rectangle{}
		logging.Logger().Debug("atlas: texture created", "id", a.id, "width", a.width, "height", a.height)
		return tex, nil
	}

	if a.dirty.Empty() {
		return a.texture, nil
	}

	switch t := a.texture.(type) {
	case gpucontext.TextureRegionUpdater:
		d := a.dirty
		if err := t.UpdateRegion(d.Min.X, d.Min.Y, d.Dx(), d.Dy(), a.rgba(d)); err != nil {
			return nil, fmt.Errorf("atlas: UpdateRegion failed: %w", err)
		}
	case gpucontext.TextureUpdater:
		if err := t.UpdateData(a.rgba(a.pix.Rect)); err != nil {
			return nil, fmt.Errorf("atlas: UpdateData failed: %w", err)
		}
	default:
		return nil, ErrTextureNotUpdatable
	}
	a.dirty = image.Rectangle{}
	return a.texture, nil
}

// ReleaseTexture destroys the GPU texture if the implementation supports it.
// The next Upload re-creates it from the full canvas.
func (a *Atlas) ReleaseTexture() {
	if a.texture == nil {
		return
	}
	if d, ok := a.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	a.texture = nil
	a.dirty = a.pix.Rect
}

// rgba expands coverage in r to densely packed premultiplied RGBA rows.
// The returned slice aliases the staging buffer and is valid until the
// next call.
func (a *Atlas) rgba(r image.Rectangle) []byte {
	n := r.Dx() * r.Dy() * 4
	if cap(a.staging) < n {
		a.staging = make([]byte, n)
	}
	buf := a.staging[:n]
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := a.pix.PixOffset(r.Min.X, y)
		for _, c := range a.pix.Pix[off : off+r.Dx()] {
			buf[i+0] = c
			buf[i+1] = c
			buf[i+2] = c
			buf[i+3] = c
			i += 4
		}
	}
	return buf
}
