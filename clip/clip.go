// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package clip implements Sutherland-Hodgman polygon clipping of a single
// triangle against the five planes of a view frustum, fanning each
// resulting quad back into triangles so every downstream consumer still
// only ever sees triangles.
package clip

import (
	"math"

	"swrast/math/lin"
	"swrast/scene"
)

// Plane is the half-space normal*p + D >= 0.
type Plane struct {
	Normal lin.V3
	D      float64
}

// Frustum returns the five camera-space frustum planes (near, left,
// right, bottom, top) derived from a camera's focal length, horizontal
// field of view, and the image's aspect ratio (height/width). The side
// planes depend only on the field of view angle (they pass through the
// camera origin); the near plane alone is offset by focalLength.
func Frustum(focalLength, fovXDegrees, aspectRatio float64) [5]Plane {
	halfFovX := lin.Rad(fovXDegrees) * 0.5
	tanX := math.Tan(halfFovX)
	cx := 1 / math.Hypot(1, tanX)
	sx := tanX * cx

	tanY := aspectRatio * tanX
	cy := 1 / math.Hypot(1, tanY)
	sy := tanY * cy

	near := Plane{Normal: lin.V3{X: 0, Y: 0, Z: -1}, D: -focalLength}
	left := Plane{Normal: lin.V3{X: cx, Y: 0, Z: -sx}}
	right := Plane{Normal: lin.V3{X: -cx, Y: 0, Z: -sx}}
	bottom := Plane{Normal: lin.V3{X: 0, Y: cy, Z: -sy}}
	top := Plane{Normal: lin.V3{X: 0, Y: -cy, Z: -sy}}
	return [5]Plane{near, left, right, bottom, top}
}

// ClipTriangle clips tri against planes, writing the resulting triangles
// (all sharing tri's material) into scratch and returning how many were
// written. scratch must have capacity 63 (1+2+4+8+16+32, the maximum
// triangle count after doubling across 5 planes); ClipTriangle never
// allocates.
func ClipTriangle(tri scene.Triangle, planes [5]Plane, scratch *[63]scene.Triangle) int {
	var bufA, bufB [63]scene.Triangle
	bufA[0] = tri
	count := 1
	cur, next := &bufA, &bufB

	for _, p := range planes {
		out := 0
		for i := 0; i < count; i++ {
			out = clipOne(cur[i], p, next, out)
		}
		cur, next = next, cur
		count = out
		if count == 0 {
			break
		}
	}

	n := copy(scratch[:], cur[:count])
	return n
}

// clipOne clips a single triangle against plane p, appending 0, 1, 2, or
// 3 result triangles to out starting at index n, and returns the new n.
func clipOne(tri scene.Triangle, p Plane, out *[63]scene.Triangle, n int) int {
	var inside [3]bool
	insideCount := 0
	for i := 0; i < 3; i++ {
		inside[i] = side(tri.V[i], p) >= 0
		if inside[i] {
			insideCount++
		}
	}

	switch insideCount {
	case 0:
		return n
	case 3:
		out[n] = tri
		return n + 1
	case 1:
		// Find the lone inside vertex; emit one triangle with two new
		// vertices where the inside-to-outside edges cross the plane.
		i := soleIndex(inside, true)
		a, b := (i+1)%3, (i+2)%3
		v0 := tri.V[i]
		v1 := intersect(tri.V[i], tri.V[a], p)
		v2 := intersect(tri.V[i], tri.V[b], p)
		out[n] = scene.Triangle{V: [3]scene.Vertex{v0, v1, v2}, MaterialID: tri.MaterialID}
		return n + 1
	case 2:
		// Two inside vertices, one outside: fan-split the resulting quad
		// from inside[0].
		o := soleIndex(inside, false)
		i0, i1 := (o+1)%3, (o+2)%3
		v0 := tri.V[i0]
		v1 := tri.V[i1]
		vA := intersect(tri.V[i1], tri.V[o], p)
		vB := intersect(tri.V[i0], tri.V[o], p)
		out[n] = scene.Triangle{V: [3]scene.Vertex{v0, v1, vA}, MaterialID: tri.MaterialID}
		out[n+1] = scene.Triangle{V: [3]scene.Vertex{v0, vA, vB}, MaterialID: tri.MaterialID}
		return n + 2
	}
	return n
}

// side returns the signed distance of v's point from plane p: >=0 inside.
func side(v scene.Vertex, p Plane) float64 {
	return p.Normal.Dot(&v.Point) + p.D
}

// soleIndex returns the single index i in [0,3) where inside[i] == want,
// assuming exactly one such index exists.
func soleIndex(inside [3]bool, want bool) int {
	for i, v := range inside {
		if v == want {
			return i
		}
	}
	return 0
}

// intersect returns the vertex where the edge from vIn (inside) to vOut
// (outside) crosses plane p, linearly interpolating point, normal, and
// uv. No perspective correction is applied here -- it happens later
// during rasterization using the recorded inverse-w.
func intersect(vIn, vOut scene.Vertex, p Plane) scene.Vertex {
	denom := p.Normal.Dot(sub(&vOut.Point, &vIn.Point))
	t := -(side(vIn, p)) / denom

	var point, normal lin.V3
	point.Lerp(&vIn.Point, &vOut.Point, t)
	normal.Lerp(&vIn.Normal, &vOut.Normal, t)
	var uv lin.V2
	uv.Lerp(&vIn.UV, &vOut.UV, t)
	return scene.Vertex{Point: point, Normal: normal, UV: uv}
}

func sub(a, b *lin.V3) *lin.V3 {
	var v lin.V3
	v.Sub(a, b)
	return &v
}
