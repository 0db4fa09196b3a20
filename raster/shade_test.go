// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raster

import (
	"testing"

	"swrast/math/lin"
	"swrast/resources"
)

func whiteMaterial() resources.Material {
	return resources.Material{
		Ambient:   [3]float64{1, 1, 1},
		Diffuse:   [3]float64{1, 1, 1},
		Specular:  [3]float64{1, 1, 1},
		Shininess: 8,
	}
}

func TestLightSumNoLightsIsZero(t *testing.T) {
	point := lin.V3{X: 0, Y: 0, Z: -5}
	normal := lin.V3{X: 0, Y: 0, Z: 1}
	sum := lightSum(nil, whiteMaterial(), &point, &normal)
	if sum.X != 0 || sum.Y != 0 || sum.Z != 0 {
		t.Errorf("expected zero contribution with no lights, got %+v", sum)
	}
}

func TestLightSumAmbientScalesByStrength(t *testing.T) {
	point := lin.V3{X: 0, Y: 0, Z: -5}
	normal := lin.V3{X: 0, Y: 0, Z: 1}
	lights := []CameraLight{{Kind: Ambient, Strength: 0.5, Color: lin.V3{X: 1, Y: 1, Z: 1}}}
	sum := lightSum(lights, whiteMaterial(), &point, &normal)
	if !lin.Aeq(sum.X, 0.5) || !lin.Aeq(sum.Y, 0.5) || !lin.Aeq(sum.Z, 0.5) {
		t.Errorf("expected ambient*strength=0.5 per channel, got %+v", sum)
	}
}

// A directional light shining straight onto the surface, against its
// normal (travelling down -Z onto a +Z facing surface), contributes its
// full diffuse term.
func TestLightSumDirectionalFacingSurfaceIsBrighter(t *testing.T) {
	point := lin.V3{X: 0, Y: 0, Z: -5}
	normal := lin.V3{X: 0, Y: 0, Z: 1}

	facing := []CameraLight{{Kind: Directional, Strength: 1, Color: lin.V3{X: 1, Y: 1, Z: 1}, Direction: lin.V3{X: 0, Y: 0, Z: -1}}}
	grazing := []CameraLight{{Kind: Directional, Strength: 1, Color: lin.V3{X: 1, Y: 1, Z: 1}, Direction: lin.V3{X: 1, Y: 0, Z: 0}}}

	sumFacing := lightSum(facing, whiteMaterial(), &point, &normal)
	sumGrazing := lightSum(grazing, whiteMaterial(), &point, &normal)

	if sumFacing.X <= sumGrazing.X {
		t.Errorf("expected a light facing the surface to contribute more than a grazing one, got facing=%f grazing=%f", sumFacing.X, sumGrazing.X)
	}
}

// A spot light aimed straight at a point gives full beam contribution,
// while the same light aimed elsewhere (so the point falls outside its
// cone) contributes strictly less, even at the same distance.
func TestLightSumSpotWithinConeIsBrighterThanOutside(t *testing.T) {
	point := lin.V3{X: 0, Y: 0, Z: -5}
	normal := lin.V3{X: 0, Y: 0, Z: 1}

	// Aimed straight down -Z from directly above the point: full beam.
	withinCone := []CameraLight{{
		Kind: Spot, Strength: 1, Color: lin.V3{X: 1, Y: 1, Z: 1},
		Position: lin.V3{X: 0, Y: 0, Z: -4}, Direction: lin.V3{X: 0, Y: 0, Z: -1},
		Constant: 1, Linear: 0, Quadratic: 0, Exponent: 2,
	}}
	// Same aim direction, but positioned to the side of the point:
	// the point lies well outside the beam.
	outsideCone := []CameraLight{{
		Kind: Spot, Strength: 1, Color: lin.V3{X: 1, Y: 1, Z: 1},
		Position: lin.V3{X: 3, Y: 0, Z: -5}, Direction: lin.V3{X: 0, Y: 0, Z: -1},
		Constant: 1, Linear: 0, Quadratic: 0, Exponent: 2,
	}}

	sumWithin := lightSum(withinCone, whiteMaterial(), &point, &normal)
	sumOutside := lightSum(outsideCone, whiteMaterial(), &point, &normal)

	if sumWithin.X <= sumOutside.X {
		t.Errorf("expected within-cone spot contribution to exceed outside-cone, got within=%f outside=%f", sumWithin.X, sumOutside.X)
	}
}

// A point light attenuates with distance: the same light farther away
// contributes strictly less.
func TestLightSumPointLightAttenuatesWithDistance(t *testing.T) {
	point := lin.V3{X: 0, Y: 0, Z: -5}
	normal := lin.V3{X: 0, Y: 0, Z: 1}

	near := []CameraLight{{Kind: Point, Strength: 1, Color: lin.V3{X: 1, Y: 1, Z: 1}, Position: lin.V3{X: 0, Y: 0, Z: -4}, Constant: 1, Linear: 1, Quadratic: 0}}
	far := []CameraLight{{Kind: Point, Strength: 1, Color: lin.V3{X: 1, Y: 1, Z: 1}, Position: lin.V3{X: 0, Y: 0, Z: 5}, Constant: 1, Linear: 1, Quadratic: 0}}

	sumNear := lightSum(near, whiteMaterial(), &point, &normal)
	sumFar := lightSum(far, whiteMaterial(), &point, &normal)

	if sumNear.X <= sumFar.X {
		t.Errorf("expected the nearer point light to contribute more, got near=%f far=%f", sumNear.X, sumFar.X)
	}
}
