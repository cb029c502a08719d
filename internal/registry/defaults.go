package registry

import "voxelmesh/internal/world"

// Built-in block ids shared by the default type list and the terrain
// generator palette.
const (
	Air world.BlockID = iota
	Stone
	Dirt
	Grass
	Bedrock
	Sand
	Water
)

func tile(u, v int) *TileCoord {
	return &TileCoord{U: u, V: v}
}

// DefaultBlockTypes returns the fixed built-in block palette. Tile
// coordinates address the standard block sheet, origin top-left.
func DefaultBlockTypes() []BlockType {
	return []BlockType{
		{ID: Air, Name: "air", IsSolid: false, IsTransparent: true},
		{ID: Stone, Name: "stone", IsSolid: true, SideTile: tile(1, 0)},
		{ID: Dirt, Name: "dirt", IsSolid: true, SideTile: tile(2, 0)},
		{
			ID: Grass, Name: "grass", IsSolid: true,
			SideTile:   tile(3, 0),
			TopTile:    tile(0, 0),
			BottomTile: tile(2, 0),
		},
		{ID: Bedrock, Name: "bedrock", IsSolid: true, SideTile: tile(1, 1)},
		{ID: Sand, Name: "sand", IsSolid: true, SideTile: tile(2, 1)},
		{ID: Water, Name: "water", IsSolid: false, IsTransparent: true, SideTile: tile(13, 12)},
	}
}
