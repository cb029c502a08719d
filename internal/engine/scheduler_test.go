package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelmesh/internal/atlas"
	"voxelmesh/internal/meshing"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// slabGen fills a flat solid slab, cheap enough for tight streaming tests.
type slabGen struct {
	height int
}

func (g slabGen) HeightSample(worldX, worldZ int) int { return g.height }

func (g slabGen) Fill(c *world.Chunk) {
	for lx := 0; lx < world.ChunkSizeX; lx++ {
		for lz := 0; lz < world.ChunkSizeZ; lz++ {
			c.Set(lx, 0, lz, registry.Bedrock)
			for ly := 1; ly <= g.height; ly++ {
				c.Set(lx, ly, lz, registry.Stone)
			}
		}
	}
}

type recordSink struct {
	uploads  []world.ChunkCoord
	removals []world.ChunkCoord
	meshes   map[world.ChunkCoord]*meshing.Mesh
}

func newRecordSink() *recordSink {
	return &recordSink{meshes: make(map[world.ChunkCoord]*meshing.Mesh)}
}

func (r *recordSink) UploadMesh(m *meshing.Mesh) {
	r.uploads = append(r.uploads, m.Coord)
	r.meshes[m.Coord] = m
}

func (r *recordSink) RemoveMesh(coord world.ChunkCoord) {
	r.removals = append(r.removals, coord)
	delete(r.meshes, coord)
}

func newTestScheduler(t *testing.T, sink RenderSink, opts Options) *Scheduler {
	t.Helper()
	reg, err := registry.New(registry.DefaultBlockTypes())
	require.NoError(t, err)
	at, err := atlas.New(256, 256, 16)
	require.NoError(t, err)
	return New(reg, at, slabGen{height: 4}, sink, opts)
}

// drain runs frames until every queue is empty.
func drain(t *testing.T, s *Scheduler) {
	t.Helper()
	for i := 0; s.PendingOps() > 0; i++ {
		if i > 10000 {
			t.Fatal("queues never drained")
		}
		s.AdvanceFrame()
	}
}

func TestViewDistanceStreaming(t *testing.T) {
	sink := newRecordSink()
	s := newTestScheduler(t, sink, Options{ViewDistance: 1})

	s.AdvanceTick(mgl32.Vec3{0, 80, 0})
	assert.Equal(t, 9, s.loadQueue.Len())

	// Standing still queues nothing new.
	s.AdvanceTick(mgl32.Vec3{3, 80, 3})
	assert.Equal(t, 9, s.loadQueue.Len())

	for i := 0; i < 9; i++ {
		s.AdvanceFrame()
	}
	assert.Equal(t, 9, s.LoadedCount())
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			coord := world.ChunkCoord{X: dx, Z: dz}
			assert.NotNil(t, s.ChunkAt(coord), "chunk %v not loaded", coord)
		}
	}

	drain(t, s)
	// Every loaded chunk got a mesh; each was uploaded at least once and
	// re-uploaded by neighbor reseal remeshes.
	assert.Len(t, sink.meshes, 9)
	assert.Equal(t, 9, s.LoadedCount())
}

func TestLoadEnqueuesNeighborRemesh(t *testing.T) {
	sink := newRecordSink()
	s := newTestScheduler(t, sink, Options{ViewDistance: 1})

	s.AdvanceTick(mgl32.Vec3{0, 80, 0})
	s.AdvanceFrame() // first load
	assert.Equal(t, 1, s.LoadedCount())
	assert.Equal(t, 4, s.remeshQueue.Len())
}

func TestUnloadWhenViewMoves(t *testing.T) {
	sink := newRecordSink()
	s := newTestScheduler(t, sink, Options{ViewDistance: 1})

	s.AdvanceTick(mgl32.Vec3{0, 80, 0})
	drain(t, s)
	require.Equal(t, 9, s.LoadedCount())

	// Far enough that the old and new squares are disjoint.
	s.AdvanceTick(mgl32.Vec3{160, 80, 160})
	drain(t, s)

	assert.Equal(t, 9, s.LoadedCount())
	assert.Len(t, sink.removals, 9)
	for coord := range s.chunks {
		assert.GreaterOrEqual(t, coord.X, 9, "stale chunk %v still loaded", coord)
		assert.GreaterOrEqual(t, coord.Z, 9, "stale chunk %v still loaded", coord)
	}
	for coord := range sink.meshes {
		assert.NotNil(t, s.ChunkAt(coord), "sink holds mesh for unloaded %v", coord)
	}
}

func TestUnloadSkippedWhenViewReturns(t *testing.T) {
	sink := newRecordSink()
	s := newTestScheduler(t, sink, Options{ViewDistance: 1})

	s.AdvanceTick(mgl32.Vec3{0, 80, 0})
	drain(t, s)

	// Queue the unloads, then move back before any frame executes them.
	s.AdvanceTick(mgl32.Vec3{160, 80, 160})
	require.Equal(t, 9, s.unloadQueue.Len())
	s.AdvanceTick(mgl32.Vec3{0, 80, 0})
	drain(t, s)

	assert.Empty(t, sink.removals)
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			assert.NotNil(t, s.ChunkAt(world.ChunkCoord{X: dx, Z: dz}))
		}
	}
}

func TestRemeshDroppedAfterUnload(t *testing.T) {
	sink := newRecordSink()
	s := newTestScheduler(t, sink, Options{ViewDistance: 1})

	s.remeshQueue.Enqueue(world.ChunkCoord{X: 40, Z: 40})
	s.AdvanceFrame()

	assert.Empty(t, sink.uploads)
	assert.Zero(t, s.PendingOps())
}

func TestSetBlockRemeshPropagation(t *testing.T) {
	sink := newRecordSink()
	s := newTestScheduler(t, sink, Options{ViewDistance: 2})

	// Center the view on chunk (1,1) and settle.
	s.AdvanceTick(mgl32.Vec3{24, 80, 24})
	drain(t, s)

	// Edit local (0, y, 8) of chunk (1,1): on the -X edge, interior in Z.
	s.SetBlock(16, 2, 24, registry.Air)
	assert.True(t, s.remeshQueue.Contains(world.ChunkCoord{X: 1, Z: 1}))
	assert.True(t, s.remeshQueue.Contains(world.ChunkCoord{X: 0, Z: 1}))
	assert.Equal(t, 2, s.remeshQueue.Len())

	drain(t, s)
	assert.Equal(t, world.BlockAir, s.GetBlock(16, 2, 24))
}

func TestSetBlockCornerTouchesBothNeighbors(t *testing.T) {
	sink := newRecordSink()
	s := newTestScheduler(t, sink, Options{ViewDistance: 2})

	s.AdvanceTick(mgl32.Vec3{24, 80, 24})
	drain(t, s)

	// Local (15, y, 15) of chunk (1,1) shares planes with (2,1) and (1,2).
	s.SetBlock(31, 2, 31, registry.Air)
	assert.True(t, s.remeshQueue.Contains(world.ChunkCoord{X: 1, Z: 1}))
	assert.True(t, s.remeshQueue.Contains(world.ChunkCoord{X: 2, Z: 1}))
	assert.True(t, s.remeshQueue.Contains(world.ChunkCoord{X: 1, Z: 2}))
	assert.Equal(t, 3, s.remeshQueue.Len())
}

func TestSetBlockUnloadedDiscarded(t *testing.T) {
	sink := newRecordSink()
	s := newTestScheduler(t, sink, Options{ViewDistance: 1})

	s.SetBlock(500, 2, 500, registry.Stone)
	assert.Zero(t, s.PendingOps())
	assert.Equal(t, world.BlockAir, s.GetBlock(500, 2, 500))

	// Out-of-range Y is ignored even on loaded chunks.
	s.AdvanceTick(mgl32.Vec3{0, 80, 0})
	drain(t, s)
	s.SetBlock(0, -1, 0, registry.Stone)
	s.SetBlock(0, world.ChunkSizeY, 0, registry.Stone)
	assert.Zero(t, s.PendingOps())
}

func TestSpawnFiresOnce(t *testing.T) {
	sink := newRecordSink()
	spawns := 0
	var spawnChunk *world.Chunk
	s := newTestScheduler(t, sink, Options{
		ViewDistance: 1,
		SpawnCoord:   world.ChunkCoord{X: 0, Z: 0},
		Spawn: func(c *world.Chunk, coord world.ChunkCoord) {
			spawns++
			spawnChunk = c
		},
	})

	s.AdvanceTick(mgl32.Vec3{0, 80, 0})
	drain(t, s)
	require.Equal(t, 1, spawns)
	require.NotNil(t, spawnChunk)

	// Leaving and returning reloads the chunk without re-spawning.
	s.AdvanceTick(mgl32.Vec3{160, 80, 160})
	drain(t, s)
	s.AdvanceTick(mgl32.Vec3{0, 80, 0})
	drain(t, s)
	assert.Equal(t, 1, spawns)
}

func TestStepAccumulatesTicks(t *testing.T) {
	sink := newRecordSink()
	s := newTestScheduler(t, sink, Options{ViewDistance: 1, TickRate: 20})

	// Less than one tick interval: no re-evaluation yet, but the frame
	// still runs (and has nothing to do).
	s.Step(0.01, mgl32.Vec3{0, 80, 0})
	assert.Zero(t, s.PendingOps())

	// A long stall catches up and queues the view set.
	s.Step(0.25, mgl32.Vec3{0, 80, 0})
	assert.Equal(t, 8, s.loadQueue.Len()) // one load already ran in this step's frame
	assert.Equal(t, 1, s.LoadedCount())
}

func TestPrewarmLoadsAndMeshesViewSet(t *testing.T) {
	sink := newRecordSink()
	spawns := 0
	s := newTestScheduler(t, sink, Options{
		ViewDistance: 2,
		Algorithm:    meshing.AlgorithmGreedy,
		SpawnCoord:   world.ChunkCoord{X: 0, Z: 0},
		Spawn:        func(c *world.Chunk, coord world.ChunkCoord) { spawns++ },
	})

	s.Prewarm(mgl32.Vec3{8, 80, 8}, 4)

	assert.Equal(t, 25, s.LoadedCount())
	assert.Len(t, sink.meshes, 25)
	assert.Equal(t, 1, spawns)
	assert.Zero(t, s.PendingOps())

	// All chunks were present before meshing, so interior shared edges are
	// sealed: an interior chunk of a flat slab shows only its top.
	m := sink.meshes[world.ChunkCoord{X: 0, Z: 0}]
	require.NotNil(t, m)
	assert.Equal(t, 2, m.TriangleCount())
}

// brokenBuilder fails every build with an invariant violation.
type brokenBuilder struct {
	builds int
}

func (b *brokenBuilder) Build(c *world.Chunk, neighbors meshing.NeighborFunc) (*meshing.Mesh, error) {
	b.builds++
	return nil, meshing.ErrInvariant
}

func TestInvalidBuildKeepsPreviousMeshAndRetries(t *testing.T) {
	sink := newRecordSink()
	s := newTestScheduler(t, sink, Options{ViewDistance: 1, Algorithm: meshing.AlgorithmGreedy})
	s.Prewarm(mgl32.Vec3{8, 80, 8}, 2)

	center := world.ChunkCoord{X: 0, Z: 0}
	require.NotNil(t, sink.meshes[center])
	uploadsBefore := len(sink.uploads)

	broken := &brokenBuilder{}
	s.builder = broken
	s.remeshQueue.Enqueue(center)
	s.AdvanceFrame()

	// The malformed mesh is discarded: the sink keeps what it showed
	// before and the chunk goes back on the remesh queue for a retry.
	assert.Equal(t, 1, broken.builds)
	assert.Len(t, sink.uploads, uploadsBefore)
	assert.NotNil(t, sink.meshes[center])
	assert.True(t, s.remeshQueue.Contains(center))

	s.builder = s.newBuilder()
	s.AdvanceFrame()
	assert.Len(t, sink.uploads, uploadsBefore+1)
	assert.False(t, s.remeshQueue.Contains(center))
}

func TestRemeshResealsAfterEdit(t *testing.T) {
	sink := newRecordSink()
	s := newTestScheduler(t, sink, Options{ViewDistance: 1, Algorithm: meshing.AlgorithmGreedy})
	s.Prewarm(mgl32.Vec3{8, 80, 8}, 2)

	center := world.ChunkCoord{X: 0, Z: 0}
	before := sink.meshes[center]
	require.NotNil(t, before)

	// Digging a hole in the slab surface adds faces.
	s.SetBlock(8, 4, 8, registry.Air)
	drain(t, s)
	after := sink.meshes[center]
	require.NotNil(t, after)
	assert.Greater(t, after.TriangleCount(), before.TriangleCount())
}
