package meshing

import (
	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// maskCell is one cell of the 2D sweep-plane scratch mask. dir is +1 for a
// face pointing along the sweep axis (the near block is solid), -1 for one
// pointing against it, 0 for no face at this plane crossing. Cells merge
// only when id and dir both match.
type maskCell struct {
	id  world.BlockID
	dir int8
}

// buildGreedy sweeps a plane through the chunk along each principal axis,
// one position beyond each boundary included, masks the plane crossings
// where solidity flips, and merges the mask into maximal rectangles. It
// covers exactly the exposed-face set of the naive mesher with fewer, wider
// quads; the atlas tile is tiled across each quad's block extent.
func (b *Builder) buildGreedy(c *world.Chunk, neighbors NeighborFunc) {
	b.greedySweepX(c, neighbors)
	b.greedySweepY(c, neighbors)
	b.greedySweepZ(c, neighbors)
}

func (b *Builder) planeMask(n int) []maskCell {
	if cap(b.mask) < n {
		b.mask = make([]maskCell, n)
	}
	m := b.mask[:n]
	for i := range m {
		m[i] = maskCell{}
	}
	return m
}

// greedySweepX handles east/west faces. Mask plane is Y-Z: width runs along
// Z, height along Y, and the tile repeats accordingly (width -> Z repeats,
// height -> Y repeats).
func (b *Builder) greedySweepX(c *world.Chunk, neighbors NeighborFunc) {
	const sy, sz = world.ChunkSizeY, world.ChunkSizeZ
	baseX, baseZ := c.Coord.Origin()

	for x := 0; x <= world.ChunkSizeX; x++ {
		mask := b.planeMask(sy * sz)
		for y := 0; y < sy; y++ {
			for z := 0; z < sz; z++ {
				nearID := b.blockAt(c, neighbors, x-1, y, z)
				farID := b.blockAt(c, neighbors, x, y, z)
				nearSolid := b.reg.ByID(nearID).IsSolid
				farSolid := b.reg.ByID(farID).IsSolid
				if nearSolid == farSolid {
					continue
				}
				// A face is only recorded for the side that lies inside the
				// chunk being meshed; the neighbor chunk emits its own side.
				if nearSolid && x-1 >= 0 {
					mask[y*sz+z] = maskCell{id: nearID, dir: +1}
				} else if farSolid && x < world.ChunkSizeX {
					mask[y*sz+z] = maskCell{id: farID, dir: -1}
				}
			}
		}

		for i := 0; i < sy*sz; {
			cell := mask[i]
			if cell.dir == 0 {
				i++
				continue
			}
			y0 := i / sz
			z0 := i % sz
			w := 1
			for z1 := z0 + 1; z1 < sz && mask[y0*sz+z1] == cell; z1++ {
				w++
			}
			h := 1
		growYZ:
			for y1 := y0 + 1; y1 < sy; y1++ {
				for z1 := z0; z1 < z0+w; z1++ {
					if mask[y1*sz+z1] != cell {
						break growYZ
					}
				}
				h++
			}

			fx := float32(baseX + x)
			fy0, fy1 := float32(y0), float32(y0+h)
			fz0, fz1 := float32(baseZ+z0), float32(baseZ+z0+w)
			bt := b.reg.ByID(cell.id)
			if cell.dir > 0 {
				if uvs, ok := b.faceUVs(bt, world.FaceEast, float32(w), float32(h), [4]int{0, 3, 2, 1}); ok {
					b.appendQuad([4]mgl32.Vec3{
						{fx, fy0, fz0},
						{fx, fy0, fz1},
						{fx, fy1, fz1},
						{fx, fy1, fz0},
					}, uvs)
				}
			} else {
				if uvs, ok := b.faceUVs(bt, world.FaceWest, float32(w), float32(h), [4]int{0, 1, 2, 3}); ok {
					b.appendQuad([4]mgl32.Vec3{
						{fx, fy0, fz0},
						{fx, fy1, fz0},
						{fx, fy1, fz1},
						{fx, fy0, fz1},
					}, uvs)
				}
			}

			for yy := y0; yy < y0+h; yy++ {
				for zz := z0; zz < z0+w; zz++ {
					mask[yy*sz+zz] = maskCell{}
				}
			}
		}
	}
}

// greedySweepY handles top/bottom faces. Mask plane is X-Z: width runs
// along Z, height along X (width -> Z repeats, height -> X repeats). The
// plane below the world floor is treated as solid, above the ceiling as
// air.
func (b *Builder) greedySweepY(c *world.Chunk, neighbors NeighborFunc) {
	const sx, sz = world.ChunkSizeX, world.ChunkSizeZ
	baseX, baseZ := c.Coord.Origin()

	for y := 0; y <= world.ChunkSizeY; y++ {
		mask := b.planeMask(sx * sz)
		for x := 0; x < sx; x++ {
			for z := 0; z < sz; z++ {
				nearSolid := true // implicit floor
				var nearID world.BlockID
				if y-1 >= 0 {
					nearID = c.Get(x, y-1, z)
					nearSolid = b.reg.ByID(nearID).IsSolid
				}
				farSolid := false
				var farID world.BlockID
				if y < world.ChunkSizeY {
					farID = c.Get(x, y, z)
					farSolid = b.reg.ByID(farID).IsSolid
				}
				if nearSolid == farSolid {
					continue
				}
				if nearSolid && y-1 >= 0 {
					mask[x*sz+z] = maskCell{id: nearID, dir: +1}
				} else if farSolid {
					mask[x*sz+z] = maskCell{id: farID, dir: -1}
				}
			}
		}

		for i := 0; i < sx*sz; {
			cell := mask[i]
			if cell.dir == 0 {
				i++
				continue
			}
			x0 := i / sz
			z0 := i % sz
			w := 1
			for z1 := z0 + 1; z1 < sz && mask[x0*sz+z1] == cell; z1++ {
				w++
			}
			h := 1
		growXZ:
			for x1 := x0 + 1; x1 < sx; x1++ {
				for z1 := z0; z1 < z0+w; z1++ {
					if mask[x1*sz+z1] != cell {
						break growXZ
					}
				}
				h++
			}

			fy := float32(y)
			fx0, fx1 := float32(baseX+x0), float32(baseX+x0+h)
			fz0, fz1 := float32(baseZ+z0), float32(baseZ+z0+w)
			bt := b.reg.ByID(cell.id)
			if cell.dir > 0 {
				if uvs, ok := b.faceUVs(bt, world.FaceTop, float32(h), float32(w), [4]int{0, 3, 2, 1}); ok {
					b.appendQuad([4]mgl32.Vec3{
						{fx0, fy, fz0},
						{fx1, fy, fz0},
						{fx1, fy, fz1},
						{fx0, fy, fz1},
					}, uvs)
				}
			} else {
				if uvs, ok := b.faceUVs(bt, world.FaceBottom, float32(h), float32(w), [4]int{0, 1, 2, 3}); ok {
					b.appendQuad([4]mgl32.Vec3{
						{fx0, fy, fz0},
						{fx0, fy, fz1},
						{fx1, fy, fz1},
						{fx1, fy, fz0},
					}, uvs)
				}
			}

			for xx := x0; xx < x0+h; xx++ {
				for zz := z0; zz < z0+w; zz++ {
					mask[xx*sz+zz] = maskCell{}
				}
			}
		}
	}
}

// greedySweepZ handles north/south faces. Mask plane is X-Y: width runs
// along X, height along Y (width -> X repeats, height -> Y repeats).
func (b *Builder) greedySweepZ(c *world.Chunk, neighbors NeighborFunc) {
	const sx, sy = world.ChunkSizeX, world.ChunkSizeY
	baseX, baseZ := c.Coord.Origin()

	for z := 0; z <= world.ChunkSizeZ; z++ {
		mask := b.planeMask(sy * sx)
		for y := 0; y < sy; y++ {
			for x := 0; x < sx; x++ {
				nearID := b.blockAt(c, neighbors, x, y, z-1)
				farID := b.blockAt(c, neighbors, x, y, z)
				nearSolid := b.reg.ByID(nearID).IsSolid
				farSolid := b.reg.ByID(farID).IsSolid
				if nearSolid == farSolid {
					continue
				}
				if nearSolid && z-1 >= 0 {
					mask[y*sx+x] = maskCell{id: nearID, dir: +1}
				} else if farSolid && z < world.ChunkSizeZ {
					mask[y*sx+x] = maskCell{id: farID, dir: -1}
				}
			}
		}

		for i := 0; i < sy*sx; {
			cell := mask[i]
			if cell.dir == 0 {
				i++
				continue
			}
			y0 := i / sx
			x0 := i % sx
			w := 1
			for x1 := x0 + 1; x1 < sx && mask[y0*sx+x1] == cell; x1++ {
				w++
			}
			h := 1
		growXY:
			for y1 := y0 + 1; y1 < sy; y1++ {
				for x1 := x0; x1 < x0+w; x1++ {
					if mask[y1*sx+x1] != cell {
						break growXY
					}
				}
				h++
			}

			fz := float32(baseZ + z)
			fx0, fx1 := float32(baseX+x0), float32(baseX+x0+w)
			fy0, fy1 := float32(y0), float32(y0+h)
			bt := b.reg.ByID(cell.id)
			if cell.dir > 0 {
				if uvs, ok := b.faceUVs(bt, world.FaceNorth, float32(w), float32(h), [4]int{0, 1, 2, 3}); ok {
					b.appendQuad([4]mgl32.Vec3{
						{fx0, fy0, fz},
						{fx0, fy1, fz},
						{fx1, fy1, fz},
						{fx1, fy0, fz},
					}, uvs)
				}
			} else {
				if uvs, ok := b.faceUVs(bt, world.FaceSouth, float32(w), float32(h), [4]int{0, 3, 2, 1}); ok {
					b.appendQuad([4]mgl32.Vec3{
						{fx0, fy0, fz},
						{fx1, fy0, fz},
						{fx1, fy1, fz},
						{fx0, fy1, fz},
					}, uvs)
				}
			}

			for yy := y0; yy < y0+h; yy++ {
				for xx := x0; xx < x0+w; xx++ {
					mask[yy*sx+xx] = maskCell{}
				}
			}
		}
	}
}
