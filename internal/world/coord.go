package world

// ChunkCoord identifies a chunk column. The world is only chunked
// horizontally; Y is covered by the full chunk height.
type ChunkCoord struct {
	X, Z int
}

// Origin returns the world-space block coordinates of the chunk's
// (0, y, 0) corner.
func (c ChunkCoord) Origin() (worldX, worldZ int) {
	return c.X * ChunkSizeX, c.Z * ChunkSizeZ
}

// Neighbors4 returns the four horizontally adjacent chunk coordinates.
func (c ChunkCoord) Neighbors4() [4]ChunkCoord {
	return [4]ChunkCoord{
		{c.X + 1, c.Z},
		{c.X - 1, c.Z},
		{c.X, c.Z + 1},
		{c.X, c.Z - 1},
	}
}

// ChunkCoordAt returns the coordinate of the chunk containing the given
// world-space block column.
func ChunkCoordAt(worldX, worldZ int) ChunkCoord {
	return ChunkCoord{X: FloorDiv(worldX, ChunkSizeX), Z: FloorDiv(worldZ, ChunkSizeZ)}
}

// FloorDiv divides rounding toward negative infinity, so chunk coordinates
// stay consistent across the origin.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Mod returns the positive remainder of a/b, the local coordinate of a world
// coordinate within its chunk.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
