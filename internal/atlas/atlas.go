package atlas

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNotConfigured is returned when the atlas dimensions were never set.
	ErrNotConfigured = errors.New("atlas: dimensions not configured")
	// ErrTileOutOfRange is returned for tile coordinates outside the sheet.
	ErrTileOutOfRange = errors.New("atlas: tile coordinate out of range")
)

// Atlas maps integer tile coordinates on a shared texture sheet to
// normalized UV rectangles. It is a plain value with no shared mutable
// state; every call returns an independent corner set, so concurrent mesh
// builds can share one Atlas.
type Atlas struct {
	tilesX, tilesY int
	stepU, stepV   float32
}

// New derives the tile grid from the sheet's pixel dimensions and the fixed
// per-tile pixel size.
func New(sheetWidth, sheetHeight, tileSize int) (Atlas, error) {
	if sheetWidth <= 0 || sheetHeight <= 0 || tileSize <= 0 {
		return Atlas{}, fmt.Errorf("%w: %dx%d sheet, tile size %d", ErrNotConfigured, sheetWidth, sheetHeight, tileSize)
	}
	tilesX := sheetWidth / tileSize
	tilesY := sheetHeight / tileSize
	if tilesX == 0 || tilesY == 0 {
		return Atlas{}, fmt.Errorf("%w: tile size %d exceeds %dx%d sheet", ErrNotConfigured, tileSize, sheetWidth, sheetHeight)
	}
	return Atlas{
		tilesX: tilesX,
		tilesY: tilesY,
		stepU:  1 / float32(tilesX),
		stepV:  1 / float32(tilesY),
	}, nil
}

// TilesX returns the number of tile columns on the sheet.
func (a Atlas) TilesX() int { return a.tilesX }

// TilesY returns the number of tile rows on the sheet.
func (a Atlas) TilesY() int { return a.tilesY }

// UVsFor returns the four UV corners of one tile, ordered bottom-left,
// top-left, top-right, bottom-right. V is inverted: the sheet addresses
// tiles from the top-left while UV space grows from the bottom-left. A zero
// atlas or an out-of-range tile yields zeroed corners and an error.
func (a Atlas) UVsFor(tileX, tileY int) ([4]mgl32.Vec2, error) {
	var uv [4]mgl32.Vec2
	if a.tilesX == 0 || a.tilesY == 0 {
		return uv, ErrNotConfigured
	}
	if tileX < 0 || tileX >= a.tilesX || tileY < 0 || tileY >= a.tilesY {
		return uv, fmt.Errorf("%w: (%d,%d) on %dx%d sheet", ErrTileOutOfRange, tileX, tileY, a.tilesX, a.tilesY)
	}
	u0 := float32(tileX) * a.stepU
	u1 := u0 + a.stepU
	v0 := 1 - float32(tileY+1)*a.stepV
	v1 := v0 + a.stepV
	uv[0] = mgl32.Vec2{u0, v0}
	uv[1] = mgl32.Vec2{u0, v1}
	uv[2] = mgl32.Vec2{u1, v1}
	uv[3] = mgl32.Vec2{u1, v0}
	return uv, nil
}
