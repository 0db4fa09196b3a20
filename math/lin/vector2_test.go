// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "testing"

func TestV2SetAndAdd(t *testing.T) {
	a, b := &V2{1, 2}, &V2{3, 4}
	got := &V2{}
	got.Add(a, b)
	if got.X != 4 || got.Y != 6 {
		t.Errorf("expected (4,6), got (%f,%f)", got.X, got.Y)
	}
}

func TestV2Lerp(t *testing.T) {
	a, b := &V2{0, 0}, &V2{2, 4}
	got := &V2{}
	got.Lerp(a, b, 0.5)
	if got.X != 1 || got.Y != 2 {
		t.Errorf("expected (1,2), got (%f,%f)", got.X, got.Y)
	}
}
