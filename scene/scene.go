// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

// Scene owns the single flat facet storage, the positioned instances
// referencing it, the camera list, and the light list for one render.
// Pushing objects/cameras/lights never invalidates previously returned
// ids -- storage only ever grows by appending.
type Scene struct {
	facets  []Triangle
	objects []object
	scenes  []SceneObject
	cameras []Camera
	lights  []Light
}

// NewScene returns an empty scene.
func NewScene() *Scene { return &Scene{} }

// PushObject copies tris onto the tail of the facet storage and returns
// an id referencing that immutable slice.
func (s *Scene) PushObject(tris []Triangle) ObjectID {
	begin := len(s.facets)
	s.facets = append(s.facets, tris...)
	s.objects = append(s.objects, object{begin: begin, size: len(tris)})
	return ObjectID(len(s.objects) - 1)
}

// Instantiate creates a new positioned instance of the object identified
// by id, with an identity pose, and returns its instance id.
func (s *Scene) Instantiate(id ObjectID) SceneObjectID {
	s.scenes = append(s.scenes, newSceneObject(s.objects[id]))
	return SceneObjectID(len(s.scenes) - 1)
}

// Object returns a mutable handle to the pose of scene object id.
func (s *Scene) Object(id SceneObjectID) *SceneObject { return &s.scenes[id] }

// Objects returns every positioned instance in the scene.
func (s *Scene) Objects() []SceneObject { return s.scenes }

// Facets returns the triangle belonging to the slice
// [begin, begin+size) of the flat facet storage.
func (s *Scene) Facets(begin, size int) []Triangle { return s.facets[begin : begin+size] }

// PushCamera appends cam and returns its id.
func (s *Scene) PushCamera(cam Camera) int {
	s.cameras = append(s.cameras, cam)
	return len(s.cameras) - 1
}

// Camera returns the camera with the given id.
func (s *Scene) Camera(id int) *Camera { return &s.cameras[id] }

// PushLight appends l and returns its id.
func (s *Scene) PushLight(l Light) int {
	s.lights = append(s.lights, l)
	return len(s.lights) - 1
}

// Lights returns every light in the scene.
func (s *Scene) Lights() []Light { return s.lights }

// HasCamera reports whether id is a valid camera index.
func (s *Scene) HasCamera(id int) bool { return id >= 0 && id < len(s.cameras) }

// HasObject reports whether id is a valid scene object instance index.
func (s *Scene) HasObject(id SceneObjectID) bool { return int(id) >= 0 && int(id) < len(s.scenes) }

// HasLight reports whether id is a valid light index.
func (s *Scene) HasLight(id int) bool { return id >= 0 && id < len(s.lights) }
