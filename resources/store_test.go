// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package resources

import (
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// tempFile creates an empty file at dir/name and returns its path.
// fakeDecode2x2 ignores its reader's content, so an empty file is enough
// to exercise PushTexture's open/cache logic.
func tempFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultMaterialAndTexture(t *testing.T) {
	s := NewStore()
	m := s.AccessMaterial(0)
	if m.Shininess != 2 || m.TextureID != 0 {
		t.Errorf("expected default material shininess=2 textureID=0, got %+v", m)
	}
	r, g, b := s.PixelAtUV(0, 0.5, 0.5)
	if r != 1 || g != 1 || b != 1 {
		t.Errorf("expected default texture white, got (%f,%f,%f)", r, g, b)
	}
}

func TestPushMaterial(t *testing.T) {
	s := NewStore()
	id := s.PushMaterial(Material{Diffuse: [3]float64{0.5, 0, 0}, Shininess: 32})
	if id != 1 {
		t.Errorf("expected first pushed material id 1, got %d", id)
	}
	if s.AccessMaterial(id).Shininess != 32 {
		t.Errorf("expected pushed material to round trip")
	}
}

func TestPixelAtUVWrap(t *testing.T) {
	s := NewStore()
	id, err := s.PushTexture(tempFile(t, "checker.png"), fakeDecode2x2)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	r1, g1, b1 := s.PixelAtUV(id, 0.1, 0.1)
	r2, g2, b2 := s.PixelAtUV(id, 3.1, -1.9)
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Errorf("expected wrap invariance, got (%f,%f,%f) vs (%f,%f,%f)", r1, g1, b1, r2, g2, b2)
	}
}

func TestPushTextureDecodeFailureFallsBackToDefault(t *testing.T) {
	s := NewStore()
	id, err := s.PushTexture(tempFile(t, "broken.png"), func(r io.Reader) (image.Image, error) {
		return nil, errors.New("corrupt")
	})
	if err == nil {
		t.Fatal("expected decode error")
	}
	if id != 0 {
		t.Errorf("expected fallback to default texture id 0, got %d", id)
	}
}

func TestPushTextureMissingFileReturnsError(t *testing.T) {
	s := NewStore()
	_, err := s.PushTexture(filepath.Join(t.TempDir(), "missing.png"), fakeDecode2x2)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestPushTextureCachesByPath(t *testing.T) {
	s := NewStore()
	path := tempFile(t, "checker.png")
	id1, _ := s.PushTexture(path, fakeDecode2x2)
	id2, _ := s.PushTexture(path, fakeDecode2x2)
	if id1 != id2 {
		t.Errorf("expected same path to reuse id, got %d and %d", id1, id2)
	}
}

func fakeDecode2x2(r io.Reader) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, image.White)
	img.Set(1, 1, image.White)
	return img, nil
}
