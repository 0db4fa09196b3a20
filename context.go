// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package swrast

import (
	"swrast/pool"
	"swrast/resources"
)

// Context owns the resource store and worker pool for one render
// lifetime. Unlike a process-wide singleton, a Context's pool size is
// fixed at construction and there is no hidden global ordering
// constraint around when it must be created.
type Context struct {
	Store *resources.Store
	Pool  *pool.Pool
}

// NewContext creates a Context with a fresh resource store (containing
// only the default material and texture) and a worker pool of poolSize
// goroutines (runtime.NumCPU() if poolSize <= 0).
func NewContext(poolSize int) *Context {
	return &Context{Store: resources.NewStore(), Pool: pool.New(poolSize)}
}

// Close stops the Context's worker pool. The Context must not be used
// to render afterward.
func (c *Context) Close() { c.Pool.Close() }
