// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raster

import (
	"math"

	"swrast/math/lin"
	"swrast/resources"
)

// lightSum adds every light's contribution at camera-space point P with
// normal N, for a surface with the given material reflectance terms.
// The result multiplies the sampled base color; with no lights it is the
// zero vector, which is why EnableLight implies summing an AmbientLight
// at minimum for a visible result -- callers that want unlit rendering
// should simply omit EnableLight rather than rely on an empty light list.
func lightSum(lights []CameraLight, m resources.Material, point, normal *lin.V3) lin.V3 {
	view := lin.V3{}
	view.Scale(point, -1).Unit()

	sum := lin.V3{}
	for _, l := range lights {
		switch l.Kind {
		case Ambient:
			sum.X += l.Color.X * m.Ambient[0] * l.Strength
			sum.Y += l.Color.Y * m.Ambient[1] * l.Strength
			sum.Z += l.Color.Z * m.Ambient[2] * l.Strength
		case Directional:
			ld := lin.V3{}
			ld.Neg(&l.Direction).Unit()
			addDiffuseSpecular(&sum, m, &ld, &view, normal, l.Color, l.Strength, 1)
		case Point:
			delta := lin.V3{}
			delta.Sub(&l.Position, point)
			d := delta.Len()
			ld := lin.V3{}
			ld.Scale(&delta, 1/math.Max(d, lin.Epsilon))
			falloff := 1 / (l.Constant + l.Linear*d + l.Quadratic*d*d)
			addDiffuseSpecular(&sum, m, &ld, &view, normal, l.Color, l.Strength, falloff)
		case Spot:
			delta := lin.V3{}
			delta.Sub(&l.Position, point)
			d := delta.Len()
			ld := lin.V3{}
			ld.Scale(&delta, 1/math.Max(d, lin.Epsilon))
			falloff := 1 / (l.Constant + l.Linear*d + l.Quadratic*d*d)

			cosTheta := math.Max(-l.Direction.Dot(&ld), 0)
			beam := math.Pow(cosTheta, l.Exponent)
			addDiffuseSpecular(&sum, m, &ld, &view, normal, l.Color, l.Strength, falloff*beam)
		}
	}
	return sum
}

// addDiffuseSpecular accumulates the Blinn-Phong diffuse+specular term
// for one light of direction ld (pointing from the surface to the
// light), scaled by attenuation, into sum.
func addDiffuseSpecular(sum *lin.V3, m resources.Material, ld, view, normal *lin.V3, color lin.V3, strength, attenuation float64) {
	diff := math.Max(ld.Dot(normal), 0)
	half := lin.V3{}
	half.Add(view, ld).Unit()
	spec := math.Max(half.Dot(normal), 0)
	spec = math.Pow(spec, m.Shininess)

	scale := strength * attenuation
	sum.X += (m.Diffuse[0]*diff + m.Specular[0]*spec) * color.X * scale
	sum.Y += (m.Diffuse[1]*diff + m.Specular[1]*spec) * color.Y * scale
	sum.Z += (m.Diffuse[2]*diff + m.Specular[2]*spec) * color.Z * scale
}
