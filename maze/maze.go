/*
Package maze generates random perfect mazes on a rectangular grid.

Walls are unit segments between anchor points of a (width+1) x (height+1) lattice,
identified by their (x, y, orientation) triple. Generation starts from the four
boundary runs and repeatedly draws a random wall, maps it to a pivot anchor point and
connects one still-available neighbor with a new wall. The walls end up forming a
spanning tree over the lattice interior, so the rooms between them are connected by
exactly one path. An entrance and an exit are then cut into the top and bottom edges.

The package includes the wall registry, the generator, an immutable Maze snapshot with
ASCII rendering, validation, solving and simple analysis.
*/
package maze

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Maze is an immutable snapshot of a wall set over a width x height grid.
type Maze struct {
	width  int              // Number of columns
	height int              // Number of rows
	walls  []Wall           // Walls in insertion order
	index  mapset.Set[Wall] // Membership by identity
	stats  Stats            // Counters of the generation run, zero when rebuilt
}

func newMaze(width, height int, walls []Wall, stats Stats) *Maze {
	index := mapset.New[Wall]()
	for _, w := range walls {
		index.Put(w)
	}
	return &Maze{
		width:  width,
		height: height,
		walls:  walls,
		index:  index,
		stats:  stats,
	}
}

// FromWalls rebuilds a maze from a stored wall list. Duplicates are dropped and every
// wall must fit the grid.
func FromWalls(width, height int, walls []Wall) (*Maze, error) {
	if min(width, height) < 1 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidDimensions)
	}

	seen := mapset.New[Wall]()
	kept := make([]Wall, 0, len(walls))
	for _, w := range walls {
		if w.x < 0 || w.y < 0 {
			return nil, fmt.Errorf("wall %s: %w", w, ErrInvalidCoordinate)
		}
		if !w.inBounds(width, height) {
			return nil, fmt.Errorf("wall %s in %dx%d: %w", w, width, height, ErrBoundaryViolation)
		}
		if seen.Has(w) {
			continue
		}
		seen.Put(w)
		kept = append(kept, w)
	}
	return newMaze(width, height, kept, Stats{}), nil
}

// Width returns the number of columns.
func (m *Maze) Width() int { return m.width }

// Height returns the number of rows.
func (m *Maze) Height() int { return m.height }

// Stats returns the counters of the run that produced the maze.
func (m *Maze) Stats() Stats { return m.stats }

// Len returns the number of walls.
func (m *Maze) Len() int { return len(m.walls) }

// Walls returns a copy of the wall set.
func (m *Maze) Walls() []Wall {
	out := make([]Wall, len(m.walls))
	copy(out, m.walls)
	return out
}

// HasWall reports whether the wall (x, y, o) is present.
func (m *Maze) HasWall(x, y int, o Orientation) bool {
	return m.index.Has(Wall{x: x, y: y, orientation: o})
}

// Entrance returns the top boundary wall removed by OpenDoors.
func (m *Maze) Entrance() Wall {
	return Wall{x: 0, y: 0, orientation: Horizontal}
}

// Exit returns the bottom boundary wall removed by OpenDoors.
func (m *Maze) Exit() Wall {
	return Wall{x: m.width - 1, y: m.height, orientation: Horizontal}
}

// IsOpen reports whether both the entrance and the exit are cut.
func (m *Maze) IsOpen() bool {
	return !m.index.Has(m.Entrance()) && !m.index.Has(m.Exit())
}

// OpenDoors returns a new maze with the entrance and exit removed.
func (m *Maze) OpenDoors() *Maze {
	return m.Without(m.Entrance(), m.Exit())
}

// Without returns a new maze lacking the given walls. Every other wall is kept in
// its original order.
func (m *Maze) Without(walls ...Wall) *Maze {
	drop := mapset.New[Wall]()
	for _, w := range walls {
		drop.Put(w)
	}
	kept := make([]Wall, 0, len(m.walls))
	for _, w := range m.walls {
		if !drop.Has(w) {
			kept = append(kept, w)
		}
	}
	return newMaze(m.width, m.height, kept, m.stats)
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var sb strings.Builder

	for y := 0; y <= m.height; y++ {
		// Horizontal walls along this lattice row
		sb.WriteString("+")
		for x := 0; x < m.width; x++ {
			if m.HasWall(x, y, Horizontal) {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteString("\n")

		if y == m.height {
			break
		}

		// Vertical walls between the rooms of row y
		for x := 0; x <= m.width; x++ {
			if m.HasWall(x, y, Vertical) {
				sb.WriteString("|")
			} else {
				sb.WriteString(" ")
			}
			if x < m.width {
				sb.WriteString("   ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
