package maze

import (
	"errors"
	"fmt"
)

// Wall-related errors.
var (
	ErrInvalidCoordinate = errors.New("negative coordinates not supported")
	ErrBoundaryViolation = errors.New("wall exceeds maze boundary")
	ErrInvalidRunLength  = errors.New("wall run length must be positive")
)

// Orientation tells which way a wall extends from its anchor point.
type Orientation uint8

const (
	Horizontal Orientation = iota // Extends to the right of the anchor.
	Vertical                      // Extends down from the anchor.
)

// String implements fmt.Stringer.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%d)", uint8(o))
	}
}

// Wall is a unit wall segment between two adjacent anchor points.
//
// A Wall is a comparable value: the (x, y, orientation) triple is its identity, so
// two walls built from the same triple are equal and hash identically when used as
// map or set keys.
type Wall struct {
	x, y        int
	orientation Orientation
}

// NewWall creates a wall anchored at (x, y).
func NewWall(x, y int, o Orientation) (Wall, error) {
	if x < 0 || y < 0 {
		return Wall{}, fmt.Errorf("wall (%d,%d,%s): %w", x, y, o, ErrInvalidCoordinate)
	}
	return Wall{x: x, y: y, orientation: o}, nil
}

// X returns the horizontal offset of the anchor.
func (w Wall) X() int { return w.x }

// Y returns the vertical offset of the anchor.
func (w Wall) Y() int { return w.y }

// Orientation returns the direction the wall extends in.
func (w Wall) Orientation() Orientation { return w.orientation }

// IsHorizontal reports whether the wall extends to the right of its anchor.
func (w Wall) IsHorizontal() bool { return w.orientation == Horizontal }

// End returns the anchor point the wall extends to.
func (w Wall) End() Cell {
	if w.orientation == Horizontal {
		return Cell{X: w.x + 1, Y: w.y}
	}
	return Cell{X: w.x, Y: w.y + 1}
}

// String implements fmt.Stringer.
func (w Wall) String() string {
	return fmt.Sprintf("(%d,%d,%s)", w.x, w.y, w.orientation)
}

// inBounds reports whether the wall fits a width x height grid.
func (w Wall) inBounds(width, height int) bool {
	end := w.End()
	return end.X <= width && end.Y <= height
}

// pivot maps a wall to the anchor point exploration continues from. Boundary walls
// anchored on the outer ring are shifted one step inward along the wall.
func (w Wall) pivot() Cell {
	if w.orientation == Horizontal {
		if w.x == 0 {
			return Cell{X: w.x + 1, Y: w.y}
		}
		return Cell{X: w.x, Y: w.y}
	}
	if w.y == 0 {
		return Cell{X: w.x, Y: w.y + 1}
	}
	return Cell{X: w.x, Y: w.y}
}
