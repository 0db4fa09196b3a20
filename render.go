// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package swrast

import (
	"fmt"
	"log"

	"swrast/clip"
	"swrast/math/lin"
	"swrast/raster"
	"swrast/resources"
	"swrast/scene"
)

// Render draws scn's camera cameraID into img, using ctx's resource
// store and worker pool. It panics on any precondition violation
// (invalid camera id, zero-dimension image, fov out of range, nil
// scene) -- those are programming errors, not recoverable conditions.
// Degenerate per-triangle geometry and texture load failures are never
// fatal: a degenerate triangle is skipped without logging, and a
// texture that failed to load is drawn with the default resource.
func Render(ctx *Context, scn *scene.Scene, cameraID int, img *Image, flags RenderFlags) {
	if scn == nil {
		panic("swrast.Render: nil scene")
	}
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		panic("swrast.Render: image must have positive width and height")
	}
	if !scn.HasCamera(cameraID) {
		panic(fmt.Sprintf("swrast.Render: unknown camera id %d", cameraID))
	}
	cam := scn.Camera(cameraID)
	if cam.FovXDegrees <= 0 || cam.FovXDegrees >= 360 {
		panic(fmt.Sprintf("swrast.Render: fov_x %f out of range (0,360)", cam.FovXDegrees))
	}
	if cam.FocalLength < 0.1 || cam.FocalLength > 10 {
		panic(fmt.Sprintf("swrast.Render: focal_length %f out of range [0.1,10]", cam.FocalLength))
	}

	aspectHW := float64(img.Height) / float64(img.Width)
	aspectWH := float64(img.Width) / float64(img.Height)
	fovY := cam.FovYRadians(aspectHW)
	cameraToClip := lin.Perspective(fovY, aspectWH, cam.FocalLength)
	planes := clip.Frustum(cam.FocalLength, cam.FovXDegrees, aspectHW)

	target := raster.NewTargetFrom(img.Width, img.Height, img.Pixels)
	params := &raster.Params{
		Target: target,
		Store:  ctx.Store,
		Pool:   ctx.Pool,
		Flags:  raster.Flags(flags),
		Lights: cameraSpaceLights(scn, cam),
	}

	view := cam.ViewMatrix()
	var scratch [63]scene.Triangle
	for _, obj := range scn.Objects() {
		objToScene := obj.Matrix()
		objToCamera := lin.NewM4().Mult(view, objToScene)
		normalMatrix := lin.NewM3().Transpose(lin.NewM3().Inv(lin.NewM3().SetM4(objToCamera)))

		for _, tri := range scn.Facets(obj.SliceBegin, obj.SliceSize) {
			camTri := transformTriangle(tri, objToCamera, normalMatrix)

			material := ctx.Store.AccessMaterial(camTri.MaterialID)
			if culled(camTri, material, flags) {
				continue
			}

			n := clip.ClipTriangle(camTri, planes, &scratch)
			for i := 0; i < n; i++ {
				raster.DrawTriangle(params, scratch[i], cameraToClip)
			}
		}
	}
}

// transformTriangle moves tri's points and normals from object space to
// camera space, leaving its UVs and material untouched.
func transformTriangle(tri scene.Triangle, objToCamera *lin.M4, normalMatrix *lin.M3) scene.Triangle {
	var out scene.Triangle
	out.MaterialID = tri.MaterialID
	for i, v := range tri.V {
		p := &lin.V4{X: v.Point.X, Y: v.Point.Y, Z: v.Point.Z, W: 1}
		p.MultMv(objToCamera, p)
		n := &lin.V3{}
		n.MultMv(normalMatrix, &v.Normal)
		out.V[i] = scene.Vertex{
			Point:  lin.V3{X: p.X, Y: p.Y, Z: p.Z},
			Normal: *n,
			UV:     v.UV,
		}
	}
	return out
}

// culled reports whether tri should be skipped as a back face: its
// camera-space normal points away from the camera, the flag to disable
// culling is unset, and the material is not two-sided.
func culled(tri scene.Triangle, material resources.Material, flags RenderFlags) bool {
	if flags&DisableBackfaceCulling != 0 || material.TwoSided {
		return false
	}
	e1, e2 := &lin.V3{}, &lin.V3{}
	e1.Sub(&tri.V[1].Point, &tri.V[0].Point)
	e2.Sub(&tri.V[2].Point, &tri.V[0].Point)
	normal := &lin.V3{}
	normal.Cross(e1, e2)
	view := &lin.V3{}
	view.Scale(&tri.V[0].Point, -1)
	return normal.Dot(view) < 0
}

// cameraSpaceLights transforms every light in scn from scene space into
// cam's camera space once per render, rather than once per pixel.
func cameraSpaceLights(scn *scene.Scene, cam *scene.Camera) []raster.CameraLight {
	view := cam.ViewMatrix()
	normalMatrix := lin.NewM3().Transpose(lin.NewM3().Inv(lin.NewM3().SetM4(view)))

	lights := scn.Lights()
	out := make([]raster.CameraLight, 0, len(lights))
	for _, l := range lights {
		switch light := l.(type) {
		case scene.AmbientLight:
			out = append(out, raster.CameraLight{
				Kind: raster.Ambient, Strength: light.Strength, Color: light.Color,
			})
		case scene.DirectionalLight:
			dir := &lin.V3{}
			dir.MultMv(normalMatrix, &light.Direction).Unit()
			out = append(out, raster.CameraLight{
				Kind: raster.Directional, Strength: light.Strength, Color: light.Color, Direction: *dir,
			})
		case scene.PointLight:
			pos := transformPoint(view, &light.Position)
			out = append(out, raster.CameraLight{
				Kind: raster.Point, Strength: light.Strength, Color: light.Color, Position: *pos,
				Constant: light.Constant, Linear: light.Linear, Quadratic: light.Quadratic,
			})
		case scene.SpotLight:
			pos := transformPoint(view, &light.Position)
			dir := &lin.V3{}
			dir.MultMv(normalMatrix, &light.Direction).Unit()
			out = append(out, raster.CameraLight{
				Kind: raster.Spot, Strength: light.Strength, Color: light.Color, Position: *pos,
				Direction: *dir, Constant: light.Constant, Linear: light.Linear,
				Quadratic: light.Quadratic, Exponent: light.Exponent,
			})
		default:
			log.Printf("swrast.cameraSpaceLights: unknown light variant %T, skipping", l)
		}
	}
	return out
}

func transformPoint(m *lin.M4, p *lin.V3) *lin.V3 {
	v := &lin.V4{X: p.X, Y: p.Y, Z: p.Z, W: 1}
	v.MultMv(m, v)
	return &lin.V3{X: v.X, Y: v.Y, Z: v.Z}
}
