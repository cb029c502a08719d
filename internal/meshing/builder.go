package meshing

import (
	"log"

	"voxelmesh/internal/atlas"
	"voxelmesh/internal/profiling"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Builder turns chunks into meshes. It owns reusable scratch buffers that
// are cleared per build, so it is not safe for concurrent use; give each
// goroutine its own Builder. The returned meshes are independent snapshots.
type Builder struct {
	reg *registry.Registry
	at  atlas.Atlas
	alg Algorithm

	verts   []mgl32.Vec3
	indices []uint32
	uvs     []mgl32.Vec2
	mask    []maskCell

	warnedTiles map[tileWarnKey]struct{}
}

type tileWarnKey struct {
	id   world.BlockID
	face world.BlockFace
}

// NewBuilder creates a builder running the given algorithm.
func NewBuilder(reg *registry.Registry, at atlas.Atlas, alg Algorithm) *Builder {
	return &Builder{
		reg:         reg,
		at:          at,
		alg:         alg,
		verts:       make([]mgl32.Vec3, 0, 4096),
		indices:     make([]uint32, 0, 6144),
		uvs:         make([]mgl32.Vec2, 0, 4096),
		warnedTiles: make(map[tileWarnKey]struct{}),
	}
}

// Algorithm returns the algorithm this builder runs.
func (b *Builder) Algorithm() Algorithm {
	return b.alg
}

// Build meshes one chunk, sampling adjacent chunks through neighbors for
// blocks across the chunk edge. The output passes Validate before it is
// returned; an invariant failure yields a nil mesh and ErrInvariant.
func (b *Builder) Build(c *world.Chunk, neighbors NeighborFunc) (*Mesh, error) {
	defer profiling.Track("meshing.Build")()

	b.verts = b.verts[:0]
	b.indices = b.indices[:0]
	b.uvs = b.uvs[:0]

	switch b.alg {
	case AlgorithmNaive:
		b.buildNaive(c, neighbors)
	default:
		b.buildGreedy(c, neighbors)
	}

	m := &Mesh{
		Coord:    c.Coord,
		Vertices: append([]mgl32.Vec3(nil), b.verts...),
		Indices:  append([]uint32(nil), b.indices...),
		UVs:      append([]mgl32.Vec2(nil), b.uvs...),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// blockAt returns the block id at chunk-local coordinates, resolving x/z
// overflow through the neighbor lookup. Outside the vertical extent, and in
// missing neighbor chunks, the answer is air; the implicit world floor is
// the callers' concern.
func (b *Builder) blockAt(c *world.Chunk, neighbors NeighborFunc, x, y, z int) world.BlockID {
	if y < 0 || y >= world.ChunkSizeY {
		return world.BlockAir
	}
	if x >= 0 && x < world.ChunkSizeX && z >= 0 && z < world.ChunkSizeZ {
		return c.Get(x, y, z)
	}
	if neighbors == nil {
		return world.BlockAir
	}
	baseX, baseZ := c.Coord.Origin()
	wx, wz := baseX+x, baseZ+z
	nb := neighbors(wx, wz)
	if nb == nil {
		return world.BlockAir
	}
	return nb.Get(world.Mod(wx, world.ChunkSizeX), y, world.Mod(wz, world.ChunkSizeZ))
}

// solidAt reports whether the block at chunk-local coordinates is solid.
// Below the world floor counts as solid, above the ceiling as air.
func (b *Builder) solidAt(c *world.Chunk, neighbors NeighborFunc, x, y, z int) bool {
	if y < 0 {
		return true
	}
	if y >= world.ChunkSizeY {
		return false
	}
	return b.reg.ByID(b.blockAt(c, neighbors, x, y, z)).IsSolid
}

// faceUVs resolves the tile for one face of a block type and stretches it
// across repU x repV block repeats, reordered for the face's corner order.
// A missing tile or atlas misconfiguration skips the face (nil result),
// logged once per (block, face).
func (b *Builder) faceUVs(bt *registry.BlockType, face world.BlockFace, repU, repV float32, order [4]int) ([4]mgl32.Vec2, bool) {
	var out [4]mgl32.Vec2
	tc := bt.TileFor(face)
	if tc == nil {
		b.warnTile(bt, face, "no tile coordinate")
		return out, false
	}
	base, err := b.at.UVsFor(tc.U, tc.V)
	if err != nil {
		b.warnTile(bt, face, err.Error())
		return out, false
	}
	u0, v0 := base[0].X(), base[0].Y()
	du := base[3].X() - u0
	dv := base[1].Y() - v0
	stretched := [4]mgl32.Vec2{
		{u0, v0},
		{u0, v0 + dv*repV},
		{u0 + du*repU, v0 + dv*repV},
		{u0 + du*repU, v0},
	}
	for i, o := range order {
		out[i] = stretched[o]
	}
	return out, true
}

func (b *Builder) warnTile(bt *registry.BlockType, face world.BlockFace, reason string) {
	key := tileWarnKey{id: bt.ID, face: face}
	if _, ok := b.warnedTiles[key]; ok {
		return
	}
	b.warnedTiles[key] = struct{}{}
	log.Printf("meshing: skipping %s face of block %q: %s", face, bt.Name, reason)
}

// appendQuad pushes four corners as two triangles (0,1,2)(0,2,3).
func (b *Builder) appendQuad(corners [4]mgl32.Vec3, uvs [4]mgl32.Vec2) {
	base := uint32(len(b.verts))
	b.verts = append(b.verts, corners[0], corners[1], corners[2], corners[3])
	b.uvs = append(b.uvs, uvs[0], uvs[1], uvs[2], uvs[3])
	b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
}
