package engine

import (
	"log"
	"math"

	"voxelmesh/internal/atlas"
	"voxelmesh/internal/meshing"
	"voxelmesh/internal/profiling"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderSink consumes finished chunk meshes. Uploading a mesh replaces any
// geometry and collision shape previously shown for that coordinate;
// removing drops them.
type RenderSink interface {
	UploadMesh(m *meshing.Mesh)
	RemoveMesh(coord world.ChunkCoord)
}

// SpawnFunc is invoked exactly once, when the designated spawn chunk first
// loads.
type SpawnFunc func(c *world.Chunk, coord world.ChunkCoord)

// meshBuilder is what the scheduler needs from a mesher. *meshing.Builder
// satisfies it.
type meshBuilder interface {
	Build(c *world.Chunk, neighbors meshing.NeighborFunc) (*meshing.Mesh, error)
}

// Options configures a Scheduler.
type Options struct {
	// ViewDistance is the Chebyshev radius, in chunks, kept loaded around
	// the viewpoint.
	ViewDistance int
	// TickRate is the fixed logic rate in Hz driven by Step's accumulator.
	TickRate int
	// Algorithm selects the mesher.
	Algorithm meshing.Algorithm
	// SpawnCoord is the chunk whose first load triggers Spawn.
	SpawnCoord world.ChunkCoord
	// Spawn may be nil.
	Spawn SpawnFunc
}

// Scheduler owns the loaded chunk set and drives the chunk lifecycle:
// load/unload/remesh queues fed by viewpoint movement and block edits,
// drained one operation per frame so no single frame pays for more than one
// terrain fill or mesh build. All map and queue mutation happens on the
// goroutine calling Advance*/Step.
type Scheduler struct {
	reg  *registry.Registry
	at   atlas.Atlas
	alg  meshing.Algorithm
	gen  world.TerrainGenerator
	sink RenderSink

	builder meshBuilder

	viewDistance int
	spawnCoord   world.ChunkCoord
	spawnFn      SpawnFunc
	spawned      bool

	chunks  map[world.ChunkCoord]*world.Chunk
	handles map[world.ChunkCoord]struct{}

	loadQueue   *coordQueue
	unloadQueue *coordQueue
	remeshQueue *coordQueue

	viewCenter world.ChunkCoord
	hasView    bool

	tickInterval float64
	accumulator  float64
}

// New wires a scheduler from its collaborator services. The scheduler is
// the single owner of the registry and atlas references it hands to its
// builders.
func New(reg *registry.Registry, at atlas.Atlas, gen world.TerrainGenerator, sink RenderSink, opts Options) *Scheduler {
	if opts.ViewDistance < 1 {
		opts.ViewDistance = 1
	}
	if opts.TickRate < 1 {
		opts.TickRate = 20
	}
	s := &Scheduler{
		reg:          reg,
		at:           at,
		alg:          opts.Algorithm,
		gen:          gen,
		sink:         sink,
		viewDistance: opts.ViewDistance,
		spawnCoord:   opts.SpawnCoord,
		spawnFn:      opts.Spawn,
		chunks:       make(map[world.ChunkCoord]*world.Chunk),
		handles:      make(map[world.ChunkCoord]struct{}),
		loadQueue:    newCoordQueue(),
		unloadQueue:  newCoordQueue(),
		remeshQueue:  newCoordQueue(),
		tickInterval: 1 / float64(opts.TickRate),
	}
	s.builder = s.newBuilder()
	return s
}

func (s *Scheduler) newBuilder() *meshing.Builder {
	return meshing.NewBuilder(s.reg, s.at, s.alg)
}

// Lookup resolves the loaded chunk containing the given world-space block
// column. It is the neighbor source handed to mesh builds.
func (s *Scheduler) Lookup(worldX, worldZ int) *world.Chunk {
	return s.chunks[world.ChunkCoordAt(worldX, worldZ)]
}

// ChunkAt returns the loaded chunk at coord, or nil.
func (s *Scheduler) ChunkAt(coord world.ChunkCoord) *world.Chunk {
	return s.chunks[coord]
}

// LoadedCount returns the number of loaded chunks.
func (s *Scheduler) LoadedCount() int {
	return len(s.chunks)
}

// PendingOps returns the summed length of the three work queues.
func (s *Scheduler) PendingOps() int {
	return s.loadQueue.Len() + s.unloadQueue.Len() + s.remeshQueue.Len()
}

// Step advances the engine by elapsed wall-clock seconds: the accumulator
// runs as many fixed logic ticks as have come due (catching up after an
// overrun), then one frame drains at most one queued operation.
func (s *Scheduler) Step(elapsed float64, viewpoint mgl32.Vec3) {
	s.accumulator += elapsed
	for s.accumulator >= s.tickInterval {
		s.accumulator -= s.tickInterval
		s.AdvanceTick(viewpoint)
	}
	s.AdvanceFrame()
}

// AdvanceTick is the fixed-rate logic entry point: it re-evaluates the
// load/unload set when the viewpoint has crossed into a different chunk.
func (s *Scheduler) AdvanceTick(viewpoint mgl32.Vec3) {
	center := world.ChunkCoordAt(
		int(math.Floor(float64(viewpoint.X()))),
		int(math.Floor(float64(viewpoint.Z()))),
	)
	if s.hasView && center == s.viewCenter {
		return
	}
	s.viewCenter = center
	s.hasView = true
	s.reevaluate()
}

// reevaluate diffs the loaded set against the view-distance square around
// the view center.
func (s *Scheduler) reevaluate() {
	defer profiling.Track("engine.reevaluate")()

	for coord := range s.chunks {
		if !s.inView(coord) {
			s.unloadQueue.Enqueue(coord)
		}
	}
	for dx := -s.viewDistance; dx <= s.viewDistance; dx++ {
		for dz := -s.viewDistance; dz <= s.viewDistance; dz++ {
			coord := world.ChunkCoord{X: s.viewCenter.X + dx, Z: s.viewCenter.Z + dz}
			if _, loaded := s.chunks[coord]; !loaded {
				s.loadQueue.Enqueue(coord)
			}
		}
	}
}

// inView tests Chebyshev distance from the current view center.
func (s *Scheduler) inView(coord world.ChunkCoord) bool {
	dx := coord.X - s.viewCenter.X
	if dx < 0 {
		dx = -dx
	}
	dz := coord.Z - s.viewCenter.Z
	if dz < 0 {
		dz = -dz
	}
	return dx <= s.viewDistance && dz <= s.viewDistance
}

// AdvanceFrame executes at most one queued operation, prioritized
// load > unload > remesh, bounding per-frame latency.
func (s *Scheduler) AdvanceFrame() {
	defer profiling.Track("engine.AdvanceFrame")()

	if coord, ok := s.loadQueue.Dequeue(); ok {
		s.executeLoad(coord)
		return
	}
	if coord, ok := s.unloadQueue.Dequeue(); ok {
		s.executeUnload(coord)
		return
	}
	if coord, ok := s.remeshQueue.Dequeue(); ok {
		s.executeRemesh(coord)
		return
	}
}

func (s *Scheduler) executeLoad(coord world.ChunkCoord) {
	if _, ok := s.chunks[coord]; ok {
		return
	}
	c := world.NewChunk(coord)
	s.gen.Fill(c)
	s.chunks[coord] = c
	s.handles[coord] = struct{}{}
	s.buildAndUpload(coord, c)

	// Neighbors rendering an open edge against "unloaded = air" reseal
	// against the new data.
	for _, nb := range coord.Neighbors4() {
		s.remeshQueue.Enqueue(nb)
	}

	if !s.spawned && coord == s.spawnCoord && s.spawnFn != nil {
		s.spawned = true
		s.spawnFn(c, coord)
	}
}

func (s *Scheduler) executeUnload(coord world.ChunkCoord) {
	if _, ok := s.chunks[coord]; !ok {
		return
	}
	// The viewpoint may have moved back since this was queued.
	if s.hasView && s.inView(coord) {
		return
	}
	// Neighbors re-open their shared edge once this chunk's data disappears.
	for _, nb := range coord.Neighbors4() {
		s.remeshQueue.Enqueue(nb)
	}
	if _, ok := s.handles[coord]; ok {
		s.sink.RemoveMesh(coord)
		delete(s.handles, coord)
	}
	delete(s.chunks, coord)
}

func (s *Scheduler) executeRemesh(coord world.ChunkCoord) {
	c, ok := s.chunks[coord]
	if !ok {
		// Unloaded before its turn came up; not an error.
		return
	}
	s.buildAndUpload(coord, c)
}

func (s *Scheduler) buildAndUpload(coord world.ChunkCoord, c *world.Chunk) {
	m, err := s.builder.Build(c, s.Lookup)
	if err != nil {
		// The sink keeps whatever it showed before; retry instead of
		// leaving the chunk stale.
		log.Printf("engine: discarding mesh for chunk (%d,%d): %v", coord.X, coord.Z, err)
		s.remeshQueue.Enqueue(coord)
		return
	}
	s.sink.UploadMesh(m)
}

// SetBlock routes a world-space edit to the owning chunk. Edits to unloaded
// regions are discarded by design. The owning chunk, and every horizontal
// neighbor whose shared edge plane contains the edited column, are queued
// for remesh.
func (s *Scheduler) SetBlock(worldX, worldY, worldZ int, id world.BlockID) {
	if worldY < 0 || worldY >= world.ChunkSizeY {
		return
	}
	coord := world.ChunkCoordAt(worldX, worldZ)
	c, ok := s.chunks[coord]
	if !ok {
		return
	}
	lx := world.Mod(worldX, world.ChunkSizeX)
	lz := world.Mod(worldZ, world.ChunkSizeZ)
	c.Set(lx, worldY, lz, id)

	s.remeshQueue.Enqueue(coord)
	if lx == 0 {
		s.remeshQueue.Enqueue(world.ChunkCoord{X: coord.X - 1, Z: coord.Z})
	} else if lx == world.ChunkSizeX-1 {
		s.remeshQueue.Enqueue(world.ChunkCoord{X: coord.X + 1, Z: coord.Z})
	}
	if lz == 0 {
		s.remeshQueue.Enqueue(world.ChunkCoord{X: coord.X, Z: coord.Z - 1})
	} else if lz == world.ChunkSizeZ-1 {
		s.remeshQueue.Enqueue(world.ChunkCoord{X: coord.X, Z: coord.Z + 1})
	}
}

// GetBlock returns the block id at a world position, or air when the owning
// chunk is not loaded.
func (s *Scheduler) GetBlock(worldX, worldY, worldZ int) world.BlockID {
	if worldY < 0 || worldY >= world.ChunkSizeY {
		return world.BlockAir
	}
	c, ok := s.chunks[world.ChunkCoordAt(worldX, worldZ)]
	if !ok {
		return world.BlockAir
	}
	return c.Get(world.Mod(worldX, world.ChunkSizeX), worldY, world.Mod(worldZ, world.ChunkSizeZ))
}

// Prewarm synchronously loads the full view set around viewpoint and meshes
// it across a worker pool, so a session starts with sealed terrain instead
// of streaming it in over thousands of frames. Terrain fills and all map
// writes stay on the calling goroutine; workers only read chunk data. No
// edits may run concurrently.
func (s *Scheduler) Prewarm(viewpoint mgl32.Vec3, workers int) {
	defer profiling.Track("engine.Prewarm")()

	if workers < 1 {
		workers = 1
	}
	s.AdvanceTick(viewpoint)

	var loaded []*world.Chunk
	for {
		coord, ok := s.loadQueue.Dequeue()
		if !ok {
			break
		}
		if _, exists := s.chunks[coord]; exists {
			continue
		}
		c := world.NewChunk(coord)
		s.gen.Fill(c)
		s.chunks[coord] = c
		s.handles[coord] = struct{}{}
		loaded = append(loaded, c)
	}
	if len(loaded) == 0 {
		return
	}

	pool := meshing.NewWorkerPool(workers, len(loaded), s.newBuilder)
	defer pool.Shutdown()
	results := make(chan meshing.Result, len(loaded))
	for _, c := range loaded {
		pool.SubmitBlocking(meshing.Job{Chunk: c, Neighbors: s.Lookup, Result: results})
	}
	for range loaded {
		r := <-results
		if r.Err != nil {
			log.Printf("engine: discarding mesh for chunk (%d,%d): %v", r.Coord.X, r.Coord.Z, r.Err)
			s.remeshQueue.Enqueue(r.Coord)
			continue
		}
		s.sink.UploadMesh(r.Mesh)
	}

	if !s.spawned && s.spawnFn != nil {
		if c, ok := s.chunks[s.spawnCoord]; ok {
			s.spawned = true
			s.spawnFn(c, s.spawnCoord)
		}
	}
}
