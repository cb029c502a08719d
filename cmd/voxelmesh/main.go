package main

import (
	"flag"
	"log"
	"time"

	"voxelmesh/internal/atlas"
	"voxelmesh/internal/config"
	"voxelmesh/internal/engine"
	"voxelmesh/internal/meshing"
	"voxelmesh/internal/profiling"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// statsSink stands in for the renderer: it counts uploads instead of
// touching a GPU.
type statsSink struct {
	uploads   int
	removals  int
	triangles int64
	current   map[world.ChunkCoord]int
}

func newStatsSink() *statsSink {
	return &statsSink{current: make(map[world.ChunkCoord]int)}
}

func (s *statsSink) UploadMesh(m *meshing.Mesh) {
	s.uploads++
	s.triangles += int64(m.TriangleCount())
	s.current[m.Coord] = m.TriangleCount()
}

func (s *statsSink) RemoveMesh(coord world.ChunkCoord) {
	s.removals++
	delete(s.current, coord)
}

func (s *statsSink) liveTriangles() int {
	total := 0
	for _, n := range s.current {
		total += n
	}
	return total
}

func main() {
	cfgPath := flag.String("config", "", "path to a YAML config file")
	frames := flag.Int("frames", 2000, "number of frames to simulate")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	reg, err := registry.New(registry.DefaultBlockTypes())
	if err != nil {
		log.Fatalf("build registry: %v", err)
	}
	at, err := atlas.New(cfg.AtlasWidth, cfg.AtlasHeight, cfg.TileSize)
	if err != nil {
		log.Fatalf("configure atlas: %v", err)
	}
	alg, err := meshing.ParseAlgorithm(cfg.Mesher)
	if err != nil {
		log.Fatalf("select mesher: %v", err)
	}
	gen := world.NewPerlinGenerator(cfg.Seed, world.SurfacePalette{
		Bedrock: registry.Bedrock,
		Stone:   registry.Stone,
		Dirt:    registry.Dirt,
		Grass:   registry.Grass,
		Sand:    registry.Sand,
	})

	sink := newStatsSink()
	eng := engine.New(reg, at, gen, sink, engine.Options{
		ViewDistance: cfg.ViewDistance,
		TickRate:     cfg.TickRate,
		Algorithm:    alg,
		SpawnCoord:   world.ChunkCoord{},
		Spawn: func(c *world.Chunk, coord world.ChunkCoord) {
			if pos, ok := world.FindSpawn(c, reg.IsSolid); ok {
				log.Printf("spawn at (%.1f, %.1f, %.1f) in chunk (%d,%d)", pos.X(), pos.Y(), pos.Z(), coord.X, coord.Z)
			}
		},
	})

	start := time.Now()
	eng.Prewarm(mgl32.Vec3{8, 80, 8}, cfg.PrewarmWorkers)
	log.Printf("prewarmed %d chunks (%d live triangles, %s mesher) in %v",
		eng.LoadedCount(), sink.liveTriangles(), alg, time.Since(start))

	// Walk the viewpoint east at a steady pace so the streaming machinery
	// loads ahead and unloads behind.
	pos := mgl32.Vec3{8, 80, 8}
	const walkSpeed = 4.0 // blocks per second
	last := time.Now()
	for frame := 0; frame < *frames; frame++ {
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		profiling.ResetFrame()
		frameStart := time.Now()
		pos = pos.Add(mgl32.Vec3{float32(walkSpeed * dt), 0, 0})
		eng.Step(dt, pos)
		if spent := time.Since(frameStart); spent > 16*time.Millisecond {
			log.Printf("slow frame %d: %v. Top tasks: %s", frame, spent, profiling.TopN(5))
		}
	}

	log.Printf("done: %d chunks loaded, %d pending ops, %d uploads, %d removals, %d live triangles",
		eng.LoadedCount(), eng.PendingOps(), sink.uploads, sink.removals, sink.liveTriangles())
}
