// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"math"

	"swrast/math/lin"
)

// Camera is a pinhole camera: a scene-to-camera matrix plus the field of
// view and focal length used to build the projection and frustum planes.
type Camera struct {
	SceneToCamera lin.M4
	FovXDegrees   float64 // exclusive (0, 360)
	FocalLength   float64 // [0.1, 10]
}

// NewCameraAt builds a Camera looking from eye toward center, world-up
// (0,0,1), with the given field of view and focal length.
func NewCameraAt(eye, center *lin.V3, fovXDegrees, focalLength float64) Camera {
	up := &lin.V3{X: 0, Y: 0, Z: 1}
	m := lin.LookAt(eye, center, up)
	return Camera{SceneToCamera: *m, FovXDegrees: fovXDegrees, FocalLength: focalLength}
}

// ViewMatrix returns the camera's scene-to-camera matrix.
func (c *Camera) ViewMatrix() *lin.M4 { return &c.SceneToCamera }

// FovYRadians returns the vertical field of view, in radians, implied by
// the camera's horizontal field of view and the image aspect ratio
// (height/width), matching how the frustum planes are derived.
func (c *Camera) FovYRadians(aspect float64) float64 {
	halfFovX := lin.Rad(c.FovXDegrees) * 0.5
	halfWidth := c.FocalLength * math.Tan(halfFovX)
	halfHeight := halfWidth * aspect
	return 2 * math.Atan(halfHeight/c.FocalLength)
}
