package meshing

import (
	"testing"

	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"
)

func TestWorkerPoolMeshesChunks(t *testing.T) {
	reg := testRegistry(t)
	at := testAtlas(t)
	newB := func() *Builder { return NewBuilder(reg, at, AlgorithmGreedy) }

	const n = 8
	chunks := make(map[world.ChunkCoord]*world.Chunk, n)
	for i := 0; i < n; i++ {
		c := world.NewChunk(world.ChunkCoord{X: i, Z: 0})
		c.Set(4, 5, 4, registry.Stone)
		chunks[c.Coord] = c
	}
	lookup := func(wx, wz int) *world.Chunk {
		return chunks[world.ChunkCoordAt(wx, wz)]
	}

	pool := NewWorkerPool(3, n, newB)
	defer pool.Shutdown()

	results := make(chan Result, n)
	for _, c := range chunks {
		pool.SubmitBlocking(Job{Chunk: c, Neighbors: lookup, Result: results})
	}

	seen := make(map[world.ChunkCoord]bool, n)
	for i := 0; i < n; i++ {
		r := <-results
		if r.Err != nil {
			t.Fatalf("chunk %v: %v", r.Coord, r.Err)
		}
		if r.Mesh.Coord != r.Coord {
			t.Fatalf("result coord %v carries mesh for %v", r.Coord, r.Mesh.Coord)
		}
		if got, want := r.Mesh.TriangleCount(), 12; got != want {
			t.Fatalf("chunk %v: %d triangles, want %d", r.Coord, got, want)
		}
		if seen[r.Coord] {
			t.Fatalf("chunk %v meshed twice", r.Coord)
		}
		seen[r.Coord] = true
	}
}

func TestWorkerPoolSubmitFullQueue(t *testing.T) {
	// No workers: the queue fills and Submit reports backpressure.
	pool := NewWorkerPool(0, 1, func() *Builder { return nil })
	defer pool.Shutdown()

	c := world.NewChunk(world.ChunkCoord{})
	if !pool.Submit(Job{Chunk: c}) {
		t.Fatal("first submit should fit the queue")
	}
	if pool.Submit(Job{Chunk: c}) {
		t.Fatal("second submit should report a full queue")
	}
	if got := pool.QueueLen(); got != 1 {
		t.Fatalf("queue length %d, want 1", got)
	}
}
