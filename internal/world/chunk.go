package world

import (
	"log"
	"sync"
)

const (
	// Chunk dimensions
	ChunkSizeX = 16
	ChunkSizeY = 256
	ChunkSizeZ = 16

	chunkVolume = ChunkSizeX * ChunkSizeY * ChunkSizeZ
)

// Chunk owns a dense block-id array of fixed dimensions. Chunks are created
// empty (all air), filled once by a terrain generator, and mutated in place
// by block edits afterwards.
type Chunk struct {
	Coord ChunkCoord

	mu     sync.Mutex
	blocks [chunkVolume]BlockID

	boundsWarned bool
}

// NewChunk creates an empty chunk at the specified chunk coordinate.
func NewChunk(coord ChunkCoord) *Chunk {
	return &Chunk{Coord: coord}
}

// blockIndex converts local coordinates (x, y, z) to a flat array index.
func blockIndex(x, y, z int) int {
	return x*ChunkSizeY*ChunkSizeZ + y*ChunkSizeZ + z
}

// InBounds reports whether local coordinates fall inside the chunk. Callers
// sampling across a chunk edge must branch on this and route through
// neighbor lookup instead of Get/Set.
func (c *Chunk) InBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSizeX && y >= 0 && y < ChunkSizeY && z >= 0 && z < ChunkSizeZ
}

// Get returns the block id at the specified local coordinates. An
// out-of-range access is a caller bug: it is reported once per chunk and
// answered with air.
func (c *Chunk) Get(x, y, z int) BlockID {
	if !c.InBounds(x, y, z) {
		c.warnBounds(x, y, z)
		return BlockAir
	}
	return c.blocks[blockIndex(x, y, z)]
}

// Set sets the block id at the specified local coordinates. Out-of-range
// accesses are reported once per chunk and become no-ops. The write lock is
// held only for the store; mesh builds issued after an edit completes read
// without locking from the scheduling goroutine.
func (c *Chunk) Set(x, y, z int, id BlockID) {
	if !c.InBounds(x, y, z) {
		c.warnBounds(x, y, z)
		return
	}
	c.mu.Lock()
	c.blocks[blockIndex(x, y, z)] = id
	c.mu.Unlock()
}

// IsAir checks if the block at the specified local coordinates is air.
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.Get(x, y, z) == BlockAir
}

func (c *Chunk) warnBounds(x, y, z int) {
	if c.boundsWarned {
		return
	}
	c.boundsWarned = true
	log.Printf("world: out-of-range access (%d,%d,%d) on chunk (%d,%d)", x, y, z, c.Coord.X, c.Coord.Z)
}
