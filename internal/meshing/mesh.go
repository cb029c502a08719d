package meshing

import (
	"errors"
	"fmt"

	"voxelmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvariant marks a build whose output buffers are inconsistent. Such a
// mesh must be discarded, never handed to the render sink.
var ErrInvariant = errors.New("meshing: build invariant violated")

// Mesh is the renderable geometry produced by one chunk rebuild. It fully
// replaces any prior mesh for its chunk and carries no identity beyond the
// chunk coordinate it was built for.
type Mesh struct {
	Coord    world.ChunkCoord
	Vertices []mgl32.Vec3
	Indices  []uint32
	UVs      []mgl32.Vec2
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate enforces the output invariants: one UV per vertex, whole
// triangles, every index in range.
func (m *Mesh) Validate() error {
	if len(m.Vertices) != len(m.UVs) {
		return fmt.Errorf("%w: %d vertices, %d uvs", ErrInvariant, len(m.Vertices), len(m.UVs))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a whole number of triangles", ErrInvariant, len(m.Indices))
	}
	for _, idx := range m.Indices {
		if idx >= uint32(len(m.Vertices)) {
			return fmt.Errorf("%w: index %d out of range for %d vertices", ErrInvariant, idx, len(m.Vertices))
		}
	}
	return nil
}

// NeighborFunc resolves the loaded chunk containing the given world-space
// block column, or nil when that chunk is not loaded. A missing neighbor is
// meshed as if the space were entirely air.
type NeighborFunc func(worldX, worldZ int) *world.Chunk

// Algorithm selects which mesher a Builder runs.
type Algorithm int

const (
	// AlgorithmNaive emits one quad per exposed block face.
	AlgorithmNaive Algorithm = iota
	// AlgorithmGreedy merges coplanar same-type exposed faces into
	// rectangles. Same exposed surface, fewer triangles.
	AlgorithmGreedy
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNaive:
		return "naive"
	case AlgorithmGreedy:
		return "greedy"
	default:
		return "unknown"
	}
}

// ParseAlgorithm converts a config string into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "naive":
		return AlgorithmNaive, nil
	case "greedy", "":
		return AlgorithmGreedy, nil
	default:
		return AlgorithmGreedy, fmt.Errorf("meshing: unknown algorithm %q", s)
	}
}
