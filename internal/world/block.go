package world

// BlockID identifies a block type within a chunk. ID 0 is reserved for air
// and must always resolve to a non-solid, fully transparent type.
type BlockID uint8

// BlockAir is the reserved empty block id.
const BlockAir BlockID = 0

// BlockFace identifies a face of a block.
type BlockFace int

const (
	FaceNorth  BlockFace = iota // +Z
	FaceSouth                   // -Z
	FaceEast                    // +X
	FaceWest                    // -X
	FaceTop                     // +Y
	FaceBottom                  // -Y
)

func (f BlockFace) String() string {
	switch f {
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	case FaceEast:
		return "east"
	case FaceWest:
		return "west"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	default:
		return "unknown"
	}
}
