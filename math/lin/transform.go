// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Transform builds M4 matrices under the column-vector convention:
// a point p is transformed by a matrix m as m*p (V4.MultMv), with the
// translation terms living in the last column (Xw, Yw, Zw) rather than
// the last row. Composing transforms is right-to-left application order,
// i.e. Mult(a, b) applied to p gives a*(b*p) -- b happens first.

import "math"

// Translate returns a matrix that shifts a point by (x, y, z).
// Direction vectors (w=0) pass through unaffected.
func Translate(x, y, z float64) *M4 {
	m := NewM4I()
	m.Xw, m.Yw, m.Zw = x, y, z
	return m
}

// Scale returns a matrix that scales each axis independently.
func Scale(x, y, z float64) *M4 {
	m := NewM4I()
	m.Xx, m.Yy, m.Zz = x, y, z
	return m
}

// ScaleUniform returns a matrix that scales all three axes equally.
func ScaleUniform(s float64) *M4 { return Scale(s, s, s) }

// RotateX returns a matrix rotating angle radians around the X axis.
func RotateX(angle float64) *M4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := NewM4I()
	m.Yy, m.Yz = c, -s
	m.Zy, m.Zz = s, c
	return m
}

// RotateY returns a matrix rotating angle radians around the Y axis.
func RotateY(angle float64) *M4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := NewM4I()
	m.Xx, m.Xz = c, s
	m.Zx, m.Zz = -s, c
	return m
}

// RotateZ returns a matrix rotating angle radians around the Z axis.
func RotateZ(angle float64) *M4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := NewM4I()
	m.Xx, m.Xy = c, -s
	m.Yx, m.Yy = s, c
	return m
}

// RotateAxis returns a matrix rotating angle radians around the given
// axis using Rodrigues' formula (via M3.SetAa) embedded in the upper
// left 3x3 of an otherwise identity M4.
func RotateAxis(ax, ay, az, angle float64) *M4 {
	r := NewM3().SetAa(ax, ay, az, angle)
	m := NewM4I()
	m.Xx, m.Xy, m.Xz = r.Xx, r.Xy, r.Xz
	m.Yx, m.Yy, m.Yz = r.Yx, r.Yy, r.Yz
	m.Zx, m.Zy, m.Zz = r.Zx, r.Zy, r.Zz
	return m
}

// LookAt builds a view matrix (world-to-camera) for a camera positioned
// at eye, looking toward center, with the given up direction. The
// resulting camera space looks down its own negative Z axis.
func LookAt(eye, center, up *V3) *M4 {
	var f, s, u V3
	f.Sub(center, eye).Unit()

	// A forward direction parallel (or anti-parallel) to up leaves the
	// side vector undefined -- looking straight up or down the up axis.
	// Substitute a reference axis not collinear with f to break the tie.
	s.Cross(&f, up)
	if s.AeqZ() {
		alt := &V3{X: 1, Y: 0, Z: 0}
		s.Cross(&f, alt)
		if s.AeqZ() {
			alt = &V3{X: 0, Y: 1, Z: 0}
			s.Cross(&f, alt)
		}
	}
	s.Unit()
	u.Cross(&s, &f)
	m := NewM4I()
	m.Xx, m.Xy, m.Xz = s.X, s.Y, s.Z
	m.Yx, m.Yy, m.Yz = u.X, u.Y, u.Z
	m.Zx, m.Zy, m.Zz = -f.X, -f.Y, -f.Z
	m.Xw = -s.Dot(eye)
	m.Yw = -u.Dot(eye)
	m.Zw = f.Dot(eye)
	return m
}

// Perspective builds a reverse-depth-free (infinite far plane) perspective
// projection matrix. fovY is the full vertical field of view in radians,
// aspect is width/height, and near is the distance to the near clip plane.
// A point on the near plane maps to NDC z=-1; the far plane maps to z=+1
// in the limit as distance goes to infinity.
func Perspective(fovY, aspect, near float64) *M4 {
	f := 1 / math.Tan(fovY*0.5)
	m := NewM4()
	m.Xx = f / aspect
	m.Yy = f
	m.Zz = -1
	m.Zw = -2 * near
	m.Wz = -1
	return m
}
