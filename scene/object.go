// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import "swrast/math/lin"

// ObjectID identifies an immutable facet cluster pushed onto a Scene's
// flat facet storage. Its begin/size never change once pushed.
type ObjectID int

// SceneObjectID identifies a positioned instance of an ObjectID.
type SceneObjectID int

// object is the immutable facet cluster: a slice into Scene.facets.
type object struct {
	begin int
	size  int
}

// SceneObject is a positioned instance of an object: a slice reference
// plus a mutable pose (position, Euler angles in degrees, uniform scale).
// The object-to-scene matrix is derived from the pose on demand rather
// than stored, so mutating ZAngle never requires decomposing a matrix.
type SceneObject struct {
	SliceBegin int
	SliceSize  int

	Position lin.V3
	XAngle   float64 // degrees
	YAngle   float64 // degrees
	ZAngle   float64 // degrees
	Scale    float64
}

// newSceneObject returns a SceneObject referencing obj with an identity
// pose (origin, no rotation, unit scale).
func newSceneObject(obj object) SceneObject {
	return SceneObject{
		SliceBegin: obj.begin,
		SliceSize:  obj.size,
		Scale:      1,
	}
}

// Matrix computes object-to-scene = T(Position) * Rx * Ry * Rz * S(Scale).
func (o *SceneObject) Matrix() *lin.M4 {
	t := lin.Translate(o.Position.X, o.Position.Y, o.Position.Z)
	rx := lin.RotateX(lin.Rad(o.XAngle))
	ry := lin.RotateY(lin.Rad(o.YAngle))
	rz := lin.RotateZ(lin.Rad(o.ZAngle))
	s := lin.ScaleUniform(o.Scale)

	m := lin.NewM4()
	m.Mult(t, rx)
	m.Mult(m, ry)
	m.Mult(m, rz)
	m.Mult(m, s)
	return m
}
