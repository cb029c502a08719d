package world

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// TerrainGenerator fills freshly allocated chunks with block ids. Fill must
// be deterministic given (seed, chunk coordinate) and write every column of
// the chunk.
type TerrainGenerator interface {
	Fill(c *Chunk)
	HeightSample(worldX, worldZ int) int
}

// SurfacePalette names the block ids a generator lays down. The generator
// treats ids as opaque keys; the registry gives them meaning.
type SurfacePalette struct {
	Bedrock BlockID
	Stone   BlockID
	Dirt    BlockID
	Grass   BlockID
	Sand    BlockID
}

// PerlinGenerator produces a layered heightmap terrain from octaved perlin
// noise: bedrock floor, stone body, dirt band, grass cap, sand near the
// shoreline.
type PerlinGenerator struct {
	noise      *perlin.Perlin
	scale      float64
	baseHeight int
	amp        float64
	seaLevel   int
	palette    SurfacePalette
}

// NewPerlinGenerator creates a generator for the given seed.
func NewPerlinGenerator(seed int64, palette SurfacePalette) *PerlinGenerator {
	const (
		alpha   = 2.0
		beta    = 2.0
		octaves = 3
	)
	return &PerlinGenerator{
		noise:      perlin.NewPerlin(alpha, beta, octaves, seed),
		scale:      1.0 / 64.0,
		baseHeight: 64,
		amp:        32,
		seaLevel:   60,
		palette:    palette,
	}
}

// HeightSample computes the surface height (block Y of the top solid block)
// at world X,Z.
func (g *PerlinGenerator) HeightSample(worldX, worldZ int) int {
	n := g.noise.Noise2D(float64(worldX)*g.scale, float64(worldZ)*g.scale)
	h := int(math.Floor(float64(g.baseHeight) + n*g.amp))
	if h < 1 {
		h = 1
	}
	if h > ChunkSizeY-1 {
		h = ChunkSizeY - 1
	}
	return h
}

// Fill populates every column of the chunk from the heightmap.
func (g *PerlinGenerator) Fill(c *Chunk) {
	baseX, baseZ := c.Coord.Origin()
	for lx := 0; lx < ChunkSizeX; lx++ {
		for lz := 0; lz < ChunkSizeZ; lz++ {
			height := g.HeightSample(baseX+lx, baseZ+lz)
			c.Set(lx, 0, lz, g.palette.Bedrock)
			for ly := 1; ly <= height; ly++ {
				switch {
				case ly <= height-4:
					c.Set(lx, ly, lz, g.palette.Stone)
				case ly < height:
					c.Set(lx, ly, lz, g.palette.Dirt)
				case height <= g.seaLevel:
					c.Set(lx, ly, lz, g.palette.Sand)
				default:
					c.Set(lx, ly, lz, g.palette.Grass)
				}
			}
		}
	}
}
