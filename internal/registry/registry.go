package registry

import (
	"errors"
	"log"
	"sync/atomic"

	"voxelmesh/internal/world"
)

// TileCoord addresses one tile of the shared texture sheet by integer
// column (U) and row (V), origin top-left.
type TileCoord struct {
	U, V int
}

// BlockType is the immutable static description of one block id. SideTile
// covers the four lateral faces; TopTile and BottomTile override it for the
// vertical faces when present. A nil tile means the face has no texture and
// is skipped by the mesher.
type BlockType struct {
	ID            world.BlockID
	Name          string
	IsSolid       bool
	IsTransparent bool
	SideTile      *TileCoord
	TopTile       *TileCoord
	BottomTile    *TileCoord
}

// TileFor returns the effective tile for a face: the override if present,
// else the side tile. Side faces always use the side tile.
func (bt *BlockType) TileFor(face world.BlockFace) *TileCoord {
	switch face {
	case world.FaceTop:
		if bt.TopTile != nil {
			return bt.TopTile
		}
	case world.FaceBottom:
		if bt.BottomTile != nil {
			return bt.BottomTile
		}
	}
	return bt.SideTile
}

// ErrNoAirType is returned when the type list registers nothing for id 0.
var ErrNoAirType = errors.New("registry: no block type registered for id 0")

// Registry maps block ids and names to their static types. It is built once
// before any meshing or generation begins and read-only afterwards.
type Registry struct {
	byID   [256]*BlockType
	byName map[string]*BlockType
	air    *BlockType

	warnedIDs [256]atomic.Bool
}

// New builds a registry from the given type list. A duplicate id or name is
// reported and skipped, first occurrence wins. The list must contain a type
// for id 0; it is remembered as the canonical air type and normalized to
// non-solid, transparent if declared otherwise.
func New(types []BlockType) (*Registry, error) {
	r := &Registry{byName: make(map[string]*BlockType, len(types))}
	for i := range types {
		bt := types[i]
		if r.byID[bt.ID] != nil {
			log.Printf("registry: duplicate block id %d (%q), keeping first", bt.ID, bt.Name)
			continue
		}
		if _, ok := r.byName[bt.Name]; ok {
			log.Printf("registry: duplicate block name %q (id %d), keeping first", bt.Name, bt.ID)
			continue
		}
		if bt.ID == world.BlockAir && (bt.IsSolid || !bt.IsTransparent) {
			log.Printf("registry: air type %q must be non-solid and transparent, normalizing", bt.Name)
			bt.IsSolid = false
			bt.IsTransparent = true
		}
		stored := &bt
		r.byID[bt.ID] = stored
		r.byName[bt.Name] = stored
	}
	if r.byID[world.BlockAir] == nil {
		return nil, ErrNoAirType
	}
	r.air = r.byID[world.BlockAir]
	return r, nil
}

// Air returns the canonical empty type.
func (r *Registry) Air() *BlockType {
	return r.air
}

// ByID returns the type registered for id. An unknown id resolves to air;
// the data-integrity warning is logged once per id.
func (r *Registry) ByID(id world.BlockID) *BlockType {
	if bt := r.byID[id]; bt != nil {
		return bt
	}
	if r.warnedIDs[id].CompareAndSwap(false, true) {
		log.Printf("registry: unknown block id %d, resolving to air", id)
	}
	return r.air
}

// ByName returns the type registered under name. An unknown name resolves
// to air and is logged.
func (r *Registry) ByName(name string) *BlockType {
	if bt, ok := r.byName[name]; ok {
		return bt
	}
	log.Printf("registry: unknown block name %q, resolving to air", name)
	return r.air
}

// IsSolid reports whether id resolves to a solid type.
func (r *Registry) IsSolid(id world.BlockID) bool {
	return r.ByID(id).IsSolid
}
