package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FindSpawn scans the chunk's center column from the top of the world
// downward for the first solid block and reports a safe standing position
// one block above it. The second return is false when the column holds no
// solid block.
func FindSpawn(c *Chunk, isSolid func(BlockID) bool) (mgl32.Vec3, bool) {
	const lx, lz = ChunkSizeX / 2, ChunkSizeZ / 2
	baseX, baseZ := c.Coord.Origin()
	for y := ChunkSizeY - 1; y >= 0; y-- {
		if !isSolid(c.Get(lx, y, lz)) {
			continue
		}
		return mgl32.Vec3{
			float32(baseX+lx) + 0.5,
			float32(y + 1),
			float32(baseZ+lz) + 0.5,
		}, true
	}
	return mgl32.Vec3{}, false
}
