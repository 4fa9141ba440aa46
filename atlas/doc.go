// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package atlas packs glyph bitmaps into fixed-size coverage canvases.
//
// A [Packer] hands out rectangles on horizontal shelves and reports
// exhaustion instead of failing. An [Atlas] pairs a packer with an 8-bit
// coverage canvas, renders glyphs into reserved regions with optional blur
// or stroke, and mirrors the canvas to a GPU texture through the
// gpucontext interfaces.
package atlas
