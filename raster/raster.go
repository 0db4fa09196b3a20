// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package raster implements the triangle drawer (projection, back-face
// aware clipped-triangle dispatch, bounding box tiling) and the
// rasterizer + shader (per-pixel barycentric fill, perspective-correct
// attribute recovery, Phong lighting, z-test) that turn one camera-space
// triangle into shaded, z-tested pixels.
package raster

import (
	"math"

	"swrast/math/lin"
	"swrast/pool"
	"swrast/resources"
	"swrast/scene"
)

// Flags mirrors the RenderFlags bitmask without importing the root
// package, avoiding an import cycle (the root package imports raster).
type Flags uint32

const (
	DrawEdges Flags = 1 << iota
	DrawFacets
	DisableBackfaceCulling
	EnableLight
)

// Target is the mutable per-render framebuffer state shared read/write
// across all of one render's triangles, but partitioned disjointly by
// row within a single triangle's tile tasks.
type Target struct {
	Width, Height int
	Pixels        []uint8    // row-major, top row first, 3 bytes/pixel.
	ZBuffer       []float64  // len Width*Height, +Inf where nothing drawn yet.
}

// NewTarget allocates a zeroed image and a z-buffer initialized to +Inf.
func NewTarget(width, height int) *Target {
	return NewTargetFrom(width, height, make([]uint8, width*height*3))
}

// NewTargetFrom wraps an existing, already-zeroed pixel buffer (len must
// be width*height*3) with a freshly initialized z-buffer, letting the
// caller's image be written in place rather than copied out afterward.
func NewTargetFrom(width, height int, pixels []uint8) *Target {
	z := make([]float64, width*height)
	for i := range z {
		z[i] = math.Inf(1)
	}
	return &Target{Width: width, Height: height, Pixels: pixels, ZBuffer: z}
}

// CameraLight is a Light with its direction/position already transformed
// into camera space, computed once per render rather than once per pixel.
type CameraLight struct {
	Kind      LightKind
	Strength  float64
	Color     lin.V3
	Direction lin.V3 // Directional, Spot: unit direction toward the scene.
	Position  lin.V3 // Point, Spot.
	Constant  float64
	Linear    float64
	Quadratic float64
	Exponent  float64
}

// LightKind distinguishes the four light variants once transformed.
type LightKind int

const (
	Ambient LightKind = iota
	Directional
	Point
	Spot
)

// Params bundles everything DrawTriangle needs that does not change
// within one render: the framebuffer, the resource store, the worker
// pool, the active flags, and the camera-space lights.
type Params struct {
	Target *Target
	Store  *resources.Store
	Pool   *pool.Pool
	Flags  Flags
	Lights []CameraLight
}

// drawVertex is one projected triangle corner: its screen-space xy, its
// NDC z (used for the depth test), its recorded inverse clip-w (used for
// perspective-correct interpolation), and its camera-space attributes.
type drawVertex struct {
	screenX, screenY float64
	ndcZ             float64
	invW             float64
	point            lin.V3
	normal           lin.V3
	uv               lin.V2
}

// DrawTriangle projects tri (camera space) through cameraToClip, then
// fills it (if DrawFacets is set) by dispatching one rasterization task
// per horizontal band of its screen-space bounding box, and/or outlines
// it (if DrawEdges is set). The texture/shading attributes come from
// the material DrawTriangle looks up once in p.Store via tri.MaterialID.
func DrawTriangle(p *Params, tri scene.Triangle, cameraToClip *lin.M4) {
	var dv [3]drawVertex
	for i, v := range tri.V {
		clip := &lin.V4{}
		clip.MultMv(cameraToClip, &lin.V4{X: v.Point.X, Y: v.Point.Y, Z: v.Point.Z, W: 1})
		if clip.W == 0 {
			return // degenerate geometry: skip the triangle.
		}
		invW := 1 / clip.W
		ndcX, ndcY, ndcZ := clip.X*invW, clip.Y*invW, clip.Z*invW

		dv[i] = drawVertex{
			screenX: ndcX*float64(p.Target.Width)*0.5 + float64(p.Target.Width)*0.5,
			screenY: float64(p.Target.Height)*0.5 - ndcY*float64(p.Target.Height)*0.5,
			ndcZ:    ndcZ,
			invW:    invW,
			point:   v.Point,
			normal:  v.Normal,
			uv:      v.UV,
		}
	}

	material := p.Store.AccessMaterial(tri.MaterialID)

	if p.Flags&DrawEdges != 0 {
		drawLine(p, dv[0], dv[1])
		drawLine(p, dv[1], dv[2])
		drawLine(p, dv[2], dv[0])
	}
	if p.Flags&DrawFacets == 0 {
		return
	}

	minX, minY, maxX, maxY := boundingBox(dv, p.Target.Width, p.Target.Height)
	if minX > maxX || minY > maxY {
		return
	}

	rows := maxY - minY + 1
	bands := p.Pool.Size()
	if bands > rows {
		bands = rows
	}
	if bands < 1 {
		bands = 1
	}
	rowsPerBand := (rows + bands - 1) / bands
	for b := 0; b < bands; b++ {
		y0 := minY + b*rowsPerBand
		y1 := y0 + rowsPerBand - 1
		if y1 > maxY {
			y1 = maxY
		}
		if y0 > y1 {
			continue
		}
		p.Pool.Enqueue(func() {
			rasterizeBand(p, dv, material, minX, maxX, y0, y1)
		})
	}
	p.Pool.WaitAll()
}

func boundingBox(dv [3]drawVertex, width, height int) (minX, minY, maxX, maxY int) {
	minXf := lin.Min3(dv[0].screenX, dv[1].screenX, dv[2].screenX)
	maxXf := lin.Max3(dv[0].screenX, dv[1].screenX, dv[2].screenX)
	minYf := lin.Min3(dv[0].screenY, dv[1].screenY, dv[2].screenY)
	maxYf := lin.Max3(dv[0].screenY, dv[1].screenY, dv[2].screenY)

	minX = clampInt(int(math.Floor(minXf)), 0, width-1)
	maxX = clampInt(int(math.Ceil(maxXf)), 0, width-1)
	minY = clampInt(int(math.Floor(minYf)), 0, height-1)
	maxY = clampInt(int(math.Ceil(maxYf)), 0, height-1)
	return
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rasterizeBand fills screen rows [y0,y1] of the triangle's bounding box.
// Each task operates on a disjoint row range, so no synchronization is
// needed with other bands of the same triangle.
func rasterizeBand(p *Params, dv [3]drawVertex, material resources.Material, minX, maxX, y0, y1 int) {
	w := p.Target.Width
	for y := y0; y <= y1; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			a, b, c, ok := barycentric(dv, px, py)
			if !ok {
				continue
			}
			zScreen := a*dv[0].ndcZ + b*dv[1].ndcZ + c*dv[2].ndcZ
			idx := y*w + x
			if zScreen >= p.Target.ZBuffer[idx] {
				continue
			}
			p.Target.ZBuffer[idx] = zScreen
			shadePixel(p, dv, material, a, b, c, idx)
		}
	}
}

// barycentric returns the 2D barycentric coordinates of screen point
// (px,py) relative to dv's screen-space vertices, and whether the point
// lies inside the triangle (loosely, to kill edge seams).
func barycentric(dv [3]drawVertex, px, py float64) (a, b, c float64, ok bool) {
	x0, y0 := dv[0].screenX, dv[0].screenY
	x1, y1 := dv[1].screenX, dv[1].screenY
	x2, y2 := dv[2].screenX, dv[2].screenY

	denom := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if denom == 0 {
		return 0, 0, 0, false
	}
	a = ((y1-y2)*(px-x2) + (x2-x1)*(py-y2)) / denom
	b = ((y2-y0)*(px-x2) + (x0-x2)*(py-y2)) / denom
	c = 1 - a - b

	const slack = -2 * lin.Epsilon
	if a < slack || b < slack || c < slack {
		return 0, 0, 0, false
	}
	return a, b, c, true
}

// shadePixel recovers perspective-correct attributes at the given
// barycentric coordinates, samples the texture, sums lighting
// contributions if enabled, and writes the final 8-bit color.
func shadePixel(p *Params, dv [3]drawVertex, material resources.Material, a, b, c float64, pixelIdx int) {
	wSum := a*dv[0].invW + b*dv[1].invW + c*dv[2].invW
	lambda := 1 / wSum
	ca, cb, cc := a*dv[0].invW*lambda, b*dv[1].invW*lambda, c*dv[2].invW*lambda

	var point, normal lin.V3
	point.X = ca*dv[0].point.X + cb*dv[1].point.X + cc*dv[2].point.X
	point.Y = ca*dv[0].point.Y + cb*dv[1].point.Y + cc*dv[2].point.Y
	point.Z = ca*dv[0].point.Z + cb*dv[1].point.Z + cc*dv[2].point.Z
	normal.X = ca*dv[0].normal.X + cb*dv[1].normal.X + cc*dv[2].normal.X
	normal.Y = ca*dv[0].normal.Y + cb*dv[1].normal.Y + cc*dv[2].normal.Y
	normal.Z = ca*dv[0].normal.Z + cb*dv[1].normal.Z + cc*dv[2].normal.Z
	normal.Unit()
	u := ca*dv[0].uv.X + cb*dv[1].uv.X + cc*dv[2].uv.X
	v := ca*dv[0].uv.Y + cb*dv[1].uv.Y + cc*dv[2].uv.Y

	r, g, bch := p.Store.PixelAtUV(material.TextureID, u, v)
	baseColor := lin.V3{X: r, Y: g, Z: bch}

	color := baseColor
	if p.Flags&EnableLight != 0 {
		sum := lightSum(p.Lights, material, &point, &normal)
		color.X *= sum.X
		color.Y *= sum.Y
		color.Z *= sum.Z
	}

	writePixel(p.Target, pixelIdx, color)
}

func writePixel(t *Target, idx int, color lin.V3) {
	i := idx * 3
	t.Pixels[i+0] = toByte(color.X)
	t.Pixels[i+1] = toByte(color.Y)
	t.Pixels[i+2] = toByte(color.Z)
}

func toByte(c float64) uint8 {
	c = lin.Clamp(c, 0, 1)
	return uint8(c*255 + 0.5)
}

// drawLine renders one NDC-cube-clipped wireframe edge in fixed green,
// biasing its z slightly nearer so edges win ties against filled facets.
func drawLine(p *Params, from, to drawVertex) {
	dx := to.screenX - from.screenX
	dy := to.screenY - from.screenY
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		steps = 1
	}
	const zBias = -10 * lin.Epsilon
	for i := 0; i <= int(steps); i++ {
		t := float64(i) / steps
		x := from.screenX + dx*t
		y := from.screenY + dy*t
		z := (from.ndcZ+(to.ndcZ-from.ndcZ)*t) + zBias
		if z < -1 || z > 1 {
			continue
		}
		sx, sy := int(x), int(y)
		if sx < 0 || sx >= p.Target.Width || sy < 0 || sy >= p.Target.Height {
			continue
		}
		idx := sy*p.Target.Width + sx
		if z >= p.Target.ZBuffer[idx] {
			continue
		}
		p.Target.ZBuffer[idx] = z
		writePixel(p.Target, idx, lin.V3{X: 0, Y: 1, Z: 0})
	}
}
