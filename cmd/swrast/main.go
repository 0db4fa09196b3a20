// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command swrast renders a Wavefront OBJ scene to a BMP file. It exists
// to exercise the pipeline end to end; it is not part of the package's
// tested contract.
//
//	swrast -in model.obj -out model.bmp -w 640 -h 480
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"swrast"
	"swrast/config"
	"swrast/imagesink"
	"swrast/math/lin"
	"swrast/scene"
	"swrast/scene/loader"
)

func main() {
	in := flag.String("in", "", "input Wavefront .obj path")
	out := flag.String("out", "out.bmp", "output BMP path")
	width := flag.Int("w", 640, "image width in pixels")
	height := flag.Int("h", 480, "image height in pixels")
	cfgPath := flag.String("config", "", "optional YAML config path")
	eyeX := flag.Float64("eye-x", 0, "camera eye x")
	eyeY := flag.Float64("eye-y", 0, "camera eye y")
	eyeZ := flag.Float64("eye-z", 5, "camera eye z")
	fovX := flag.Float64("fov", 0, "horizontal field of view in degrees (0 uses the config default)")
	edges := flag.Bool("edges", false, "outline triangles")
	lit := flag.Bool("lit", true, "enable Phong lighting")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "swrast: -in is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("swrast: loading config: %v", err)
	}
	if *fovX > 0 {
		config.Apply(cfg, config.DefaultFov(*fovX))
	}

	ctx := swrast.NewContext(cfg.PoolSize)
	defer ctx.Close()

	scn := scene.NewScene()
	dir, file := filepath.Split(*in)
	objLoader := loader.OBJLoader{Dir: dir, File: file}
	if err := objLoader.Load(context.Background(), ctx.Store, scn); err != nil {
		log.Fatalf("swrast: loading %s: %v", *in, err)
	}

	eye := &lin.V3{X: *eyeX, Y: *eyeY, Z: *eyeZ}
	center := &lin.V3{}
	camID := scn.PushCamera(scene.NewCameraAt(eye, center, cfg.DefaultFovXDegrees, 1))

	flags := cfg.DefaultFlags
	if *edges {
		flags |= swrast.DrawEdges
	}
	if *lit {
		flags |= swrast.EnableLight
	}

	img := swrast.NewImage(*width, *height)
	swrast.Render(ctx, scn, camID, img, flags)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("swrast: creating %s: %v", *out, err)
	}
	defer f.Close()

	if err := (imagesink.BMPSink{}).Write(context.Background(), f, img); err != nil {
		log.Fatalf("swrast: writing %s: %v", *out, err)
	}
}
