package maze

import (
	"github.com/zyedidia/generic/mapset"
)

// Cell identifies an anchor point of the wall lattice. A width x height maze has
// (width+1) x (height+1) anchor points.
type Cell struct {
	X int `json:"x"` // Horizontal offset
	Y int `json:"y"` // Vertical offset
}

// Room identifies a grid square. Room (x, y) is enclosed by horizontal walls (x, y)
// and (x, y+1) and vertical walls (x, y) and (x+1, y).
type Room struct {
	X int `json:"x"` // Column of the room
	Y int `json:"y"` // Row of the room
}

// Direction names a compass step on the lattice.
type Direction string

const (
	North Direction = "North"
	East  Direction = "East"
	South Direction = "South"
	West  Direction = "West"
)

// compass is checked in this order so draws are reproducible for a fixed source.
var compass = []Direction{North, East, South, West}

// step returns the neighbor of c in direction d together with the wall that would lie
// between them. The wall is only meaningful when ok is true.
func (c Cell) step(d Direction) (n Cell, between Wall, ok bool) {
	switch d {
	case North:
		n = Cell{X: c.X, Y: c.Y - 1}
		between = Wall{x: c.X, y: c.Y - 1, orientation: Vertical}
	case East:
		n = Cell{X: c.X + 1, Y: c.Y}
		between = Wall{x: c.X, y: c.Y, orientation: Horizontal}
	case South:
		n = Cell{X: c.X, Y: c.Y + 1}
		between = Wall{x: c.X, y: c.Y, orientation: Vertical}
	case West:
		n = Cell{X: c.X - 1, Y: c.Y}
		between = Wall{x: c.X - 1, y: c.Y, orientation: Horizontal}
	default:
		return Cell{}, Wall{}, false
	}
	return n, between, n.X >= 0 && n.Y >= 0
}

// wallBetween returns the unit wall joining two adjacent anchor points. A shared x
// gives a vertical wall at the lower y; a shared y a horizontal wall at the lower x.
func wallBetween(a, b Cell) Wall {
	if a.X == b.X {
		return Wall{x: a.X, y: min(a.Y, b.Y), orientation: Vertical}
	}
	return Wall{x: min(a.X, b.X), y: a.Y, orientation: Horizontal}
}

// cellList tracks the interior anchor points that are not yet part of the tree.
type cellList struct {
	width   int
	height  int
	members mapset.Set[Cell]
}

// newCellList seeds the list with every interior anchor point, 1 <= x < width and
// 1 <= y < height. The outer ring is walled from the start.
func newCellList(width, height int) *cellList {
	l := &cellList{
		width:   width,
		height:  height,
		members: mapset.New[Cell](),
	}
	for y := 1; y < height; y++ {
		for x := 1; x < width; x++ {
			l.members.Put(Cell{X: x, Y: y})
		}
	}
	return l
}

func (l *cellList) has(c Cell) bool {
	return l.members.Has(c)
}

// remove reports whether c was present.
func (l *cellList) remove(c Cell) bool {
	if !l.members.Has(c) {
		return false
	}
	l.members.Remove(c)
	return true
}

func (l *cellList) len() int {
	return l.members.Size()
}

// cells lists the members in row-major order.
func (l *cellList) cells() []Cell {
	out := make([]Cell, 0, l.members.Size())
	for y := 1; y < l.height; y++ {
		for x := 1; x < l.width; x++ {
			if c := (Cell{X: x, Y: y}); l.members.Has(c) {
				out = append(out, c)
			}
		}
	}
	return out
}
