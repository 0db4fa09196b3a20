// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package resources is the process-wide-singleton-free registry of
// materials and textures consumed by the rasterizer. A single Store is
// created once per render Context and referenced by MaterialID/TextureID
// throughout a scene; it never needs to know which scene is using it.
package resources

import (
	"fmt"
	"image"
	"io"
	"log"
	"math"
	"os"
)

// MaterialID is a dense, zero-based index into a Store's materials.
// Id 0 is always the default material.
type MaterialID int

// TextureID is a dense, zero-based index into a Store's textures.
// Id 0 is always the default (1x1 white) texture.
type TextureID int

// Material colours and shades a triangle's surface.
type Material struct {
	Ambient   [3]float64 // 0-1 ambient reflectance per channel.
	Diffuse   [3]float64 // 0-1 diffuse reflectance per channel.
	Specular  [3]float64 // 0-1 specular reflectance per channel.
	Shininess float64    // Phong exponent.
	TwoSided  bool       // true disables back-face culling for this material.
	TextureID TextureID  // texture applied over the material colours.
}

// defaultMaterial is always id 0: opaque white, mildly shiny, untextured.
func defaultMaterial() Material {
	return Material{
		Ambient:   [3]float64{1, 1, 1},
		Diffuse:   [3]float64{1, 1, 1},
		Specular:  [3]float64{1, 1, 1},
		Shininess: 2,
		TextureID: 0,
	}
}

// Texture is a rectangular 8-bit RGB pixel grid, row-major, top row first.
type Texture struct {
	Path   string
	Pixels []uint8 // len == Width*Height*3
	Width  int
	Height int
}

// defaultTexture is always id 0: a single opaque white pixel.
func defaultTexture() Texture {
	return Texture{Pixels: []uint8{255, 255, 255}, Width: 1, Height: 1}
}

// Store owns every material and texture referenced by a scene.
// Not safe for concurrent PushMaterial/PushTexture calls; reads
// (AccessMaterial, PixelAtUV) are safe once loading has completed,
// which matches how the rasterizer uses it -- all pushes happen
// during scene construction, before Render starts.
type Store struct {
	materials []Material
	textures  []Texture
	byPath    map[string]TextureID // cache so repeated paths share an id.
}

// NewStore creates a Store with the default material and texture installed.
func NewStore() *Store {
	return &Store{
		materials: []Material{defaultMaterial()},
		textures:  []Texture{defaultTexture()},
		byPath:    make(map[string]TextureID),
	}
}

// PushMaterial appends m and returns its new id.
func (s *Store) PushMaterial(m Material) MaterialID {
	s.materials = append(s.materials, m)
	return MaterialID(len(s.materials) - 1)
}

// PushTexture opens path, decodes it with decode, and registers it.
// A path already loaded returns its existing id without re-opening or
// re-decoding. On open or decode failure the default texture id (0) is
// returned along with the error -- callers log and continue per the
// asset-load-failure policy, never abort a render because one texture
// is missing or corrupt.
func (s *Store) PushTexture(path string, decode func(io.Reader) (image.Image, error)) (TextureID, error) {
	if id, ok := s.byPath[path]; ok {
		return id, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("resources.Store.PushTexture: %s: %w", path, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		log.Printf("resources.Store.PushTexture: could not decode %s: %v", path, err)
		return 0, fmt.Errorf("resources.Store.PushTexture: %s: %w", path, err)
	}
	tex := fromImage(img)
	tex.Path = path
	s.textures = append(s.textures, tex)
	id := TextureID(len(s.textures) - 1)
	s.byPath[path] = id
	return id, nil
}

// fromImage copies an image.Image into a top-row-first RGB byte grid.
func fromImage(img image.Image) Texture {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]uint8, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*w + x) * 3
			pixels[i+0] = uint8(r >> 8)
			pixels[i+1] = uint8(g >> 8)
			pixels[i+2] = uint8(bl >> 8)
		}
	}
	return Texture{Pixels: pixels, Width: w, Height: h}
}

// AccessMaterial returns the material for id, or the default material
// if id is out of range -- lookups never panic since a bad id reaching
// this far is a degenerate-geometry condition, not a precondition check.
func (s *Store) AccessMaterial(id MaterialID) Material {
	if int(id) < 0 || int(id) >= len(s.materials) {
		return s.materials[0]
	}
	return s.materials[id]
}

// PixelAtUV samples texture id at (u, v), wrapping periodically in both
// axes, and returns each channel normalized to 0-1.
func (s *Store) PixelAtUV(id TextureID, u, v float64) (r, g, b float64) {
	tex := s.texture(id)
	x := wrapIndex(u, tex.Width)
	y := wrapIndex(v, tex.Height)
	i := (y*tex.Width + x) * 3
	return float64(tex.Pixels[i+0]) / 255, float64(tex.Pixels[i+1]) / 255, float64(tex.Pixels[i+2]) / 255
}

func (s *Store) texture(id TextureID) Texture {
	if int(id) < 0 || int(id) >= len(s.textures) {
		return s.textures[0]
	}
	return s.textures[id]
}

// wrapIndex maps a real-valued UV coordinate onto a periodic pixel
// index in [0, n), with a positive remainder for negative inputs.
func wrapIndex(coord float64, n int) int {
	if n <= 0 {
		return 0
	}
	idx := int(math.Floor(coord*float64(n))) % n
	if idx < 0 {
		idx += n
	}
	return idx
}
