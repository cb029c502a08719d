package meshing

import (
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// faceDef fixes, per face direction, the neighbor offset, the unit-cube
// corner offsets (counter-clockwise viewed from outside the solid block),
// and the mapping of quad corners onto the atlas corner order so texture
// "up" tracks world "up" on side faces.
type faceDef struct {
	face       world.BlockFace
	dx, dy, dz int
	corners    [4][3]int
	uvOrder    [4]int
}

var faceDefs = [6]faceDef{
	{world.FaceEast, 1, 0, 0, [4][3]int{{1, 0, 0}, {1, 0, 1}, {1, 1, 1}, {1, 1, 0}}, [4]int{0, 3, 2, 1}},
	{world.FaceWest, -1, 0, 0, [4][3]int{{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {0, 0, 1}}, [4]int{0, 1, 2, 3}},
	{world.FaceTop, 0, 1, 0, [4][3]int{{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1}}, [4]int{0, 3, 2, 1}},
	{world.FaceBottom, 0, -1, 0, [4][3]int{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {1, 0, 0}}, [4]int{0, 1, 2, 3}},
	{world.FaceNorth, 0, 0, 1, [4][3]int{{0, 0, 1}, {0, 1, 1}, {1, 1, 1}, {1, 0, 1}}, [4]int{0, 1, 2, 3}},
	{world.FaceSouth, 0, 0, -1, [4][3]int{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, [4]int{0, 3, 2, 1}},
}

// buildNaive walks every block and emits one quad per face whose neighbor
// is not solid. Neighbors across the chunk edge resolve through the
// neighbor lookup; below the world floor counts as solid, above the ceiling
// as air.
func (b *Builder) buildNaive(c *world.Chunk, neighbors NeighborFunc) {
	baseX, baseZ := c.Coord.Origin()
	for x := 0; x < world.ChunkSizeX; x++ {
		for y := 0; y < world.ChunkSizeY; y++ {
			for z := 0; z < world.ChunkSizeZ; z++ {
				id := c.Get(x, y, z)
				if id == world.BlockAir {
					continue
				}
				bt := b.reg.ByID(id)
				if !bt.IsSolid {
					continue
				}
				for i := range faceDefs {
					fd := &faceDefs[i]
					if b.solidAt(c, neighbors, x+fd.dx, y+fd.dy, z+fd.dz) {
						continue
					}
					uvs, ok := b.faceUVs(bt, fd.face, 1, 1, fd.uvOrder)
					if !ok {
						continue
					}
					var corners [4]mgl32.Vec3
					for j, co := range fd.corners {
						corners[j] = mgl32.Vec3{
							float32(baseX + x + co[0]),
							float32(y + co[1]),
							float32(baseZ + z + co[2]),
						}
					}
					b.appendQuad(corners, uvs)
				}
			}
		}
	}
}
