// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package loader reads Wavefront OBJ/MTL scene descriptions into a
// scene.Scene, registering materials and textures on a resources.Store
// as it goes.
package loader

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"

	"swrast/math/lin"
	"swrast/resources"
	"swrast/scene"
)

// Loader populates scn and store from some source.
type Loader interface {
	Load(ctx context.Context, store *resources.Store, scn *scene.Scene) error
}

// OBJLoader reads a single Wavefront .obj file (and its mtllib, if any)
// from Dir/File. Textures referenced by the material library are
// resolved relative to Dir.
type OBJLoader struct {
	Dir  string
	File string
}

// Load reads the OBJ file, parses its referenced MTL file (if any),
// decodes any textures the materials reference, and pushes one scene
// object (with one instance at the identity pose) containing every
// triangle found.
func (l OBJLoader) Load(ctx context.Context, store *resources.Store, scn *scene.Scene) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(l.Dir, l.File)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loader.OBJLoader.Load: open %s: %w", path, err)
	}
	defer f.Close()

	parsed, mtllib, err := parseOBJ(f)
	if err != nil {
		return fmt.Errorf("loader.OBJLoader.Load: parse %s: %w", path, err)
	}

	materialIDs := map[string]resources.MaterialID{"": 0} // "" (no usemtl seen) -> default material.
	if mtllib != "" {
		if err := ctx.Err(); err != nil {
			return err
		}
		ids, err := l.loadMaterials(store, mtllib)
		if err != nil {
			return fmt.Errorf("loader.OBJLoader.Load: %w", err)
		}
		for name, id := range ids {
			materialIDs[name] = id
		}
	}

	tris := make([]scene.Triangle, 0, len(parsed))
	for _, pf := range parsed {
		id, ok := materialIDs[pf.material]
		if !ok {
			id = 0
		}
		tris = append(tris, scene.Triangle{V: pf.v, MaterialID: id})
	}

	objID := scn.PushObject(tris)
	scn.Instantiate(objID)
	return nil
}

// loadMaterials reads name (joined with l.Dir) as an MTL file and
// returns the pushed MaterialID for every "newmtl" entry found.
func (l OBJLoader) loadMaterials(store *resources.Store, name string) (map[string]resources.MaterialID, error) {
	path := filepath.Join(l.Dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mtllib %s: %w", path, err)
	}
	defer f.Close()

	raw, err := parseMTL(f)
	if err != nil {
		return nil, fmt.Errorf("parse mtllib %s: %w", path, err)
	}

	ids := make(map[string]resources.MaterialID, len(raw))
	for _, m := range raw {
		mat := resources.Material{
			Ambient:   m.ka,
			Diffuse:   m.kd,
			Specular:  m.ks,
			Shininess: m.ns,
		}
		if m.mapKd != "" {
			texID, err := l.loadTexture(store, m.mapKd)
			if err != nil {
				// Texture-load failure falls back to the default (untextured)
				// look rather than aborting the whole material.
				texID = 0
			}
			mat.TextureID = texID
		}
		ids[m.name] = store.PushMaterial(mat)
	}
	return ids, nil
}

// loadTexture decodes name (joined with l.Dir) using the decoder
// selected by its file extension.
func (l OBJLoader) loadTexture(store *resources.Store, name string) (resources.TextureID, error) {
	path := filepath.Join(l.Dir, name)
	return store.PushTexture(path, decoderFor(name))
}

// decoderFor picks an image.Image decoder by file extension: the
// standard library's for PNG/JPEG, golang.org/x/image/bmp for
// everything else (notably BMP, which the standard library cannot
// decode at all).
func decoderFor(name string) func(io.Reader) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return png.Decode
	case ".jpg", ".jpeg":
		return jpeg.Decode
	default:
		return bmp.Decode
	}
}

// parsedFace is one triangle as read from the OBJ file, with its
// vertex/normal/uv data already resolved from the file's global point
// lists, but its material left as the literal usemtl name seen.
type parsedFace struct {
	v        [3]scene.Vertex
	material string
}

// parseOBJ reads r line by line, accumulating vertex/normal/uv points
// and resolving each face's indices as it goes (so indices relative
// to "the data seen so far", including OBJ's negative relative-index
// form, resolve correctly without a second pass).
func parseOBJ(r io.Reader) (faces []parsedFace, mtllib string, err error) {
	var points []lin.V3
	var normals []lin.V3
	var uvs []lin.V2
	material := ""

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseV3(fields[1:])
			if err != nil {
				return nil, "", fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			points = append(points, p)
		case "vn":
			n, err := parseV3(fields[1:])
			if err != nil {
				return nil, "", fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, n)
		case "vt":
			uv, err := parseV2(fields[1:])
			if err != nil {
				return nil, "", fmt.Errorf("line %d: texture coordinate: %w", lineNo, err)
			}
			uvs = append(uvs, uv)
		case "mtllib":
			if len(fields) >= 2 {
				mtllib = fields[1]
			}
		case "usemtl":
			if len(fields) >= 2 {
				material = fields[1]
			}
		case "f":
			if len(fields) != 4 {
				return nil, "", fmt.Errorf("line %d: only triangular faces are supported, got %d vertices", lineNo, len(fields)-1)
			}
			var tri [3]scene.Vertex
			for i, tok := range fields[1:] {
				vi, ti, ni, err := parseFaceIndex(tok)
				if err != nil {
					return nil, "", fmt.Errorf("line %d: %w", lineNo, err)
				}
				p, err := resolveIndex(points, vi)
				if err != nil {
					return nil, "", fmt.Errorf("line %d: vertex index: %w", lineNo, err)
				}
				var n lin.V3
				if ni != 0 {
					n, err = resolveIndex(normals, ni)
					if err != nil {
						return nil, "", fmt.Errorf("line %d: normal index: %w", lineNo, err)
					}
				}
				var uv lin.V2
				if ti != 0 {
					uv, err = resolveUV(uvs, ti)
					if err != nil {
						return nil, "", fmt.Errorf("line %d: texture index: %w", lineNo, err)
					}
				}
				tri[i] = scene.Vertex{Point: p, Normal: n, UV: uv}
			}
			faces = append(faces, parsedFace{v: tri, material: material})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, "", err
	}
	return faces, mtllib, nil
}

func parseV3(fields []string) (lin.V3, error) {
	if len(fields) < 3 {
		return lin.V3{}, fmt.Errorf("want 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return lin.V3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return lin.V3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return lin.V3{}, err
	}
	return lin.V3{X: x, Y: y, Z: z}, nil
}

func parseV2(fields []string) (lin.V2, error) {
	if len(fields) < 2 {
		return lin.V2{}, fmt.Errorf("want 2 components, got %d", len(fields))
	}
	u, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return lin.V2{}, err
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return lin.V2{}, err
	}
	return lin.V2{X: u, Y: 1 - v}, nil // OBJ's v=0 is the texture's bottom row.
}

// parseFaceIndex splits one face corner token ("v", "v/t", "v//n", or
// "v/t/n") into its 1-based (or negative, relative-to-end) indices.
// A missing texture or normal index is returned as 0.
func parseFaceIndex(tok string) (v, t, n int, err error) {
	parts := strings.Split(tok, "/")
	if v, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, fmt.Errorf("bad face vertex index %q: %w", tok, err)
	}
	if len(parts) >= 2 && parts[1] != "" {
		if t, err = strconv.Atoi(parts[1]); err != nil {
			return 0, 0, 0, fmt.Errorf("bad face texture index %q: %w", tok, err)
		}
	}
	if len(parts) >= 3 && parts[2] != "" {
		if n, err = strconv.Atoi(parts[2]); err != nil {
			return 0, 0, 0, fmt.Errorf("bad face normal index %q: %w", tok, err)
		}
	}
	return v, t, n, nil
}

// resolveIndex turns a 1-based or negative (relative to the end of
// pts) OBJ index into a value from pts.
func resolveIndex(pts []lin.V3, idx int) (lin.V3, error) {
	i, err := resolveOffset(len(pts), idx)
	if err != nil {
		return lin.V3{}, err
	}
	return pts[i], nil
}

func resolveUV(pts []lin.V2, idx int) (lin.V2, error) {
	i, err := resolveOffset(len(pts), idx)
	if err != nil {
		return lin.V2{}, err
	}
	return pts[i], nil
}

func resolveOffset(n, idx int) (int, error) {
	var i int
	switch {
	case idx > 0:
		i = idx - 1
	case idx < 0:
		i = n + idx
	default:
		return 0, fmt.Errorf("index 0 is not valid in OBJ (1-based)")
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %d out of range (have %d points)", idx, n)
	}
	return i, nil
}

// rawMaterial is one "newmtl" block as read from an MTL file.
type rawMaterial struct {
	name  string
	ka    [3]float64
	kd    [3]float64
	ks    [3]float64
	ns    float64
	mapKd string
}

// parseMTL reads r line by line, accumulating one rawMaterial per
// "newmtl" statement.
func parseMTL(r io.Reader) ([]rawMaterial, error) {
	var out []rawMaterial
	var cur *rawMaterial

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				continue
			}
			out = append(out, rawMaterial{name: fields[1], ns: 1})
			cur = &out[len(out)-1]
		case "Ka":
			if cur == nil {
				continue
			}
			v, err := parseV3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: ambient: %w", lineNo, err)
			}
			cur.ka = [3]float64{v.X, v.Y, v.Z}
		case "Kd":
			if cur == nil {
				continue
			}
			v, err := parseV3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: diffuse: %w", lineNo, err)
			}
			cur.kd = [3]float64{v.X, v.Y, v.Z}
		case "Ks":
			if cur == nil {
				continue
			}
			v, err := parseV3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: specular: %w", lineNo, err)
			}
			cur.ks = [3]float64{v.X, v.Y, v.Z}
		case "Ns":
			if cur == nil || len(fields) < 2 {
				continue
			}
			ns, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: shininess: %w", lineNo, err)
			}
			cur.ns = ns
		case "map_Kd":
			if cur == nil || len(fields) < 2 {
				continue
			}
			cur.mapKd = fields[len(fields)-1]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
