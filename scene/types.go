// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package scene owns the flat facet storage, object instances, cameras,
// and lights that make up a renderable scene. Nothing in this package
// touches pixels -- it is the in-memory model the rasterizer walks.
package scene

import (
	"swrast/math/lin"
	"swrast/resources"
)

// Vertex is one corner of a Triangle: its camera/object-space position,
// its (not necessarily unit) normal, and its texture coordinate.
type Vertex struct {
	Point  lin.V3
	Normal lin.V3
	UV     lin.V2
}

// Triangle is three vertices sharing one material. A triangle's front
// face is the side from which its vertices wind counter-clockwise.
type Triangle struct {
	V          [3]Vertex
	MaterialID resources.MaterialID
}
