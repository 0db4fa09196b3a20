// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package config holds the render defaults an application can load once
// at startup, before any swrast.Context is constructed.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"swrast"
)

// Config holds the render defaults read from an optional YAML file and/or
// set by functional options.
type Config struct {
	PoolSize           int             // goroutines in the worker pool; <= 0 means runtime.NumCPU().
	DefaultFlags       swrast.RenderFlags
	DefaultFovXDegrees float64
}

// fileConfig mirrors Config's fields in their YAML spelling; kept
// separate from Config so Config itself never needs yaml struct tags.
type fileConfig struct {
	PoolSize           int    `yaml:"pool_size"`
	DefaultFlags       uint32 `yaml:"default_flags"`
	DefaultFovXDegrees float64 `yaml:"default_fov_x_degrees"`
}

// Defaults returns reasonable defaults so a render runs even if no
// configuration attributes are set: one goroutine per CPU, filled
// facets only, a 90 degree horizontal field of view.
func Defaults() Config {
	return Config{
		PoolSize:           0,
		DefaultFlags:       swrast.DefaultFlags,
		DefaultFovXDegrees: 90,
	}
}

// Load reads path as YAML, layered over Defaults(). A missing file is
// not an error -- Load returns the defaults unchanged, since a config
// file is an optional override, not a required input.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, err
	}

	fc := fileConfig{
		PoolSize:           cfg.PoolSize,
		DefaultFlags:       uint32(cfg.DefaultFlags),
		DefaultFovXDegrees: cfg.DefaultFovXDegrees,
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, err
	}
	cfg.PoolSize = fc.PoolSize
	cfg.DefaultFlags = swrast.RenderFlags(fc.DefaultFlags)
	cfg.DefaultFovXDegrees = fc.DefaultFovXDegrees
	return &cfg, nil
}

// Option overrides a single Config field, letting a caller layer flag
// values on top of file-sourced ones.
//
//	cfg, _ := config.Load(path)
//	config.PoolSize(4)(cfg)
type Option func(*Config)

// PoolSize overrides the worker pool size.
func PoolSize(n int) Option {
	return func(c *Config) { c.PoolSize = n }
}

// Flags overrides the default render flags.
func Flags(f swrast.RenderFlags) Option {
	return func(c *Config) { c.DefaultFlags = f }
}

// DefaultFov overrides the default horizontal field of view, in degrees.
func DefaultFov(deg float64) Option {
	return func(c *Config) { c.DefaultFovXDegrees = deg }
}

// Apply runs every option against cfg in order.
func Apply(cfg *Config, opts ...Option) {
	for _, opt := range opts {
		opt(cfg)
	}
}
