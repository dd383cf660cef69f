package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/density"
	"voxel-terrain/internal/graphics"
	"voxel-terrain/internal/input"
	"voxel-terrain/internal/world"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = *loaded
	} else if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}

	window, err := setupWindow(cfg.Window)
	if err != nil {
		panic(err)
	}

	shader, err := graphics.NewTerrainShader()
	if err != nil {
		panic(err)
	}

	field := density.NewTerrainField(cfg.Noise)
	terrain, err := world.NewTerrain(cfg, field, shader, graphics.Uploader{})
	if err != nil {
		panic(err)
	}

	camera := graphics.NewCamera(cfg.Window, spawnPoint(cfg, field))
	im := input.NewInputManager()
	im.Attach(window)
	attachViewport(window, camera)

	// A signal stops the loop; GL teardown still happens on this thread.
	stop := make(chan struct{})
	finished := make(chan struct{})
	closer.Bind(func() {
		close(stop)
		<-finished
		log.Printf("terrain viewer stopped")
	})

	terrain.Start(camera.Position)
	log.Printf("streaming %s terrain, chunk size %d, radius %d", terrain.Kind(), cfg.Terrain.ChunkSize, cfg.Terrain.StreamRadius)

	NewLoop(window, &cfg, terrain, camera, im, stop).Run()

	terrain.Close()
	shader.Delete()
	window.Destroy()
	glfw.Terminate()
	close(finished)
	closer.Close()
}
