// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import "swrast/math/lin"

// Light is implemented by every light variant a scene can hold. It is a
// closed sum type: cameraSpaceLights in the root package's render.go
// type-switches over the four concrete structs
// below rather than calling methods on this interface, so the interface
// itself only needs to mark membership in the set.
type Light interface {
	light()
}

// LightBase holds the fields shared by every light variant.
type LightBase struct {
	Strength float64
	Color    lin.V3
}

// AmbientLight contributes a flat, direction-independent term to every
// shaded pixel.
type AmbientLight struct {
	LightBase
}

// DirectionalLight approximates a light source infinitely far away, such
// as the sun: every point in the scene sees the same incoming direction.
type DirectionalLight struct {
	LightBase
	Direction lin.V3 // points from the light toward the scene.
}

// PointLight radiates from Position in all directions with inverse
// attenuation by distance.
type PointLight struct {
	LightBase
	Position                   lin.V3
	Constant, Linear, Quadratic float64
}

// SpotLight is a PointLight narrowed to a cone around Direction.
type SpotLight struct {
	LightBase
	Position                    lin.V3
	Constant, Linear, Quadratic float64
	Direction                   lin.V3
	Exponent                    float64
}

func (AmbientLight) light()     {}
func (DirectionalLight) light() {}
func (PointLight) light()       {}
func (SpotLight) light()        {}
