package maze

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// ErrEmptyRegistry is returned when a random member is requested from an empty
// registry. A seeded maze always carries its boundary, so this is a logic error.
var ErrEmptyRegistry = errors.New("wall registry is empty")

// Source is the random source used for every draw made while building a maze.
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// WallRegistry is a set of walls deduplicated by identity, bounded by the extent
// of the grid it was declared for.
type WallRegistry struct {
	width   int              // Declared number of columns
	height  int              // Declared number of rows
	members mapset.Set[Wall] // Membership by identity
	order   []Wall           // Insertion order, used for uniform selection
}

// NewWallRegistry creates an empty registry for a width x height grid.
func NewWallRegistry(width, height int) *WallRegistry {
	return &WallRegistry{
		width:   width,
		height:  height,
		members: mapset.New[Wall](),
	}
}

// Add inserts w if absent and reports whether it was newly added.
func (r *WallRegistry) Add(w Wall) bool {
	if r.members.Has(w) {
		return false
	}
	r.members.Put(w)
	r.order = append(r.order, w)
	return true
}

// Contains reports whether the wall (x, y, o) is in the registry.
func (r *WallRegistry) Contains(x, y int, o Orientation) bool {
	return r.members.Has(Wall{x: x, y: y, orientation: o})
}

// Has reports whether w is in the registry.
func (r *WallRegistry) Has(w Wall) bool {
	return r.members.Has(w)
}

// RandomMember returns a member chosen uniformly with src.
func (r *WallRegistry) RandomMember(src Source) (Wall, error) {
	if len(r.order) == 0 {
		return Wall{}, ErrEmptyRegistry
	}
	return r.order[src.Intn(len(r.order))], nil
}

// AddRun adds length consecutive unit walls starting at (x, y) along o and returns
// how many of them were new. The whole run is validated before anything is added.
func (r *WallRegistry) AddRun(x, y int, o Orientation, length int) (int, error) {
	start, err := NewWall(x, y, o)
	if err != nil {
		return 0, err
	}
	if length < 1 {
		return 0, fmt.Errorf("run %s of %d: %w", start, length, ErrInvalidRunLength)
	}

	exceeds := x+length > r.width || y > r.height
	if o == Vertical {
		exceeds = x > r.width || y+length > r.height
	}
	if exceeds {
		return 0, fmt.Errorf("run %s of %d in %dx%d: %w", start, length, r.width, r.height, ErrBoundaryViolation)
	}

	added := 0
	for i := 0; i < length; i++ {
		w := Wall{x: x + i, y: y, orientation: o}
		if o == Vertical {
			w = Wall{x: x, y: y + i, orientation: o}
		}
		if r.Add(w) {
			added++
		}
	}
	return added, nil
}

// Len returns the number of walls.
func (r *WallRegistry) Len() int {
	return len(r.order)
}

// Walls returns the walls in insertion order.
func (r *WallRegistry) Walls() []Wall {
	out := make([]Wall, len(r.order))
	copy(out, r.order)
	return out
}
