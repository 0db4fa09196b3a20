// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package config

import (
	"os"
	"path/filepath"
	"testing"

	"swrast"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	if *cfg != want {
		t.Errorf("got %+v, want %+v", *cfg, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swrast.yaml")
	body := "pool_size: 4\ndefault_fov_x_degrees: 60\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PoolSize != 4 {
		t.Errorf("expected pool size 4, got %d", cfg.PoolSize)
	}
	if cfg.DefaultFovXDegrees != 60 {
		t.Errorf("expected fov 60, got %f", cfg.DefaultFovXDegrees)
	}
}

func TestOptionsOverrideConfig(t *testing.T) {
	cfg := Defaults()
	Apply(&cfg, PoolSize(8), Flags(swrast.DrawEdges), DefaultFov(45))
	if cfg.PoolSize != 8 || cfg.DefaultFlags != swrast.DrawEdges || cfg.DefaultFovXDegrees != 45 {
		t.Errorf("options did not apply, got %+v", cfg)
	}
}
