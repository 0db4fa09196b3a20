// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package swrast ties the math kernel, resource store, scene model,
// worker pool, frustum clipper, and rasterizer+shader together behind a
// single Render entry point.
package swrast

// Image is the rendered output: an 8-bit RGB pixel grid, row-major,
// top row first.
type Image struct {
	Width, Height int
	Pixels        []uint8 // len Width*Height*3
}

// NewImage allocates a zeroed (black) image of the given dimensions.
func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pixels: make([]uint8, width*height*3)}
}

// RenderFlags controls which stages of the pipeline run.
type RenderFlags uint32

const (
	// DrawEdges outlines every triangle in fixed green.
	DrawEdges RenderFlags = 1 << iota
	// DrawFacets fills every triangle's covered pixels.
	DrawFacets
	// DisableBackfaceCulling draws both sides of every triangle.
	DisableBackfaceCulling
	// EnableLight sums Phong lighting contributions; ignored unless
	// DrawFacets is also set.
	EnableLight
)

// DefaultFlags matches the pipeline's default: filled facets, unlit,
// back-face culled.
const DefaultFlags = DrawFacets
