package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// DefaultMaxDimension bounds width and height unless overridden with WithMaxDimension.
const DefaultMaxDimension = 200

// Generator errors.
var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrAlreadyBuilt      = errors.New("generator already built its maze")
)

// EventKind classifies construction events.
type EventKind string

const (
	EventBoundary  EventKind = "boundary"  // A boundary wall was added during initialization.
	EventWall      EventKind = "wall"      // A cell joined the tree through a new wall.
	EventPruned    EventKind = "pruned"    // A pivot cell with no eligible neighbor left the available list.
	EventRecovered EventKind = "recovered" // A stalled run restarted from a connected frontier cell.
	EventOpened    EventKind = "opened"    // A boundary wall was removed to form an entrance or exit.
)

// Event describes one step of maze construction.
type Event struct {
	Kind  EventKind // What happened
	Wall  Wall      // Wall added or removed, if any
	Pivot Cell      // Pivot cell of the step
	Cell  Cell      // Cell connected or pruned, if any
}

// Stats summarizes a generation run.
type Stats struct {
	Draws      int // Pivot walls drawn
	Misses     int // Draws whose pivot had no eligible neighbor
	Rescans    int // Forced picks after a streak of misses
	Recoveries int // Rescans that found no productive wall
	Remaining  int // Cells left in the available list
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource sets the random source used for every draw.
func WithSource(src Source) Option {
	return func(g *Generator) {
		g.src = src
	}
}

// WithSeed seeds a fresh math/rand source, making generation reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.src = rand.New(rand.NewSource(seed))
	}
}

// WithObserver registers fn to receive every construction event.
func WithObserver(fn func(Event)) Option {
	return func(g *Generator) {
		g.observer = fn
	}
}

// WithMaxDimension overrides DefaultMaxDimension.
func WithMaxDimension(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxDimension = n
		}
	}
}

// Generator builds a perfect maze by growing a spanning tree of walls over the
// anchor lattice, starting from the boundary. A Generator is single use and not
// safe for concurrent use.
type Generator struct {
	width        int           // Number of columns
	height       int           // Number of rows
	maxDimension int           // Upper bound for width and height
	src          Source        // Random source for all draws
	observer     func(Event)   // Optional construction hook
	walls        *WallRegistry // Current wall set
	available    *cellList     // Interior cells not yet connected
	stats        Stats         // Counters of the run
	built        bool          // Build already ran
}

// NewGenerator validates the dimensions, applies opts and walls in the grid.
func NewGenerator(width, height int, opts ...Option) (*Generator, error) {
	g := &Generator{
		width:        width,
		height:       height,
		maxDimension: DefaultMaxDimension,
	}
	for _, opt := range opts {
		opt(g)
	}

	if min(width, height) < 1 || max(width, height) > g.maxDimension {
		return nil, fmt.Errorf("%dx%d (max %d): %w", width, height, g.maxDimension, ErrInvalidDimensions)
	}
	if g.src == nil {
		g.src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g.walls = NewWallRegistry(width, height)
	g.available = newCellList(width, height)
	if err := g.enclose(); err != nil {
		return nil, err
	}
	return g, nil
}

// enclose adds the four boundary runs.
func (g *Generator) enclose() error {
	runs := []struct {
		x, y   int
		o      Orientation
		length int
	}{
		{0, 0, Horizontal, g.width},
		{0, g.height, Horizontal, g.width},
		{0, 0, Vertical, g.height},
		{g.width, 0, Vertical, g.height},
	}
	for _, run := range runs {
		if _, err := g.walls.AddRun(run.x, run.y, run.o, run.length); err != nil {
			return err
		}
	}
	if g.observer != nil {
		for _, w := range g.walls.Walls() {
			g.emit(Event{Kind: EventBoundary, Wall: w})
		}
	}
	return nil
}

// Width returns the number of columns.
func (g *Generator) Width() int { return g.width }

// Height returns the number of rows.
func (g *Generator) Height() int { return g.height }

// Stats returns the counters of the run so far.
func (g *Generator) Stats() Stats {
	s := g.stats
	s.Remaining = g.available.len()
	return s
}

// Remaining lists the cells still waiting to be connected, in row-major order.
func (g *Generator) Remaining() []Cell {
	return g.available.cells()
}

// Build runs the construction until every interior cell is connected and returns
// the closed maze, before any entrance or exit is opened.
func (g *Generator) Build() (*Maze, error) {
	if g.built {
		return nil, ErrAlreadyBuilt
	}
	g.built = true

	misses := 0
	for g.available.len() > 0 {
		var pivot Cell
		if misses >= g.walls.Len() {
			misses = 0
			p, err := g.rescan()
			if err != nil {
				return nil, err
			}
			pivot = p
		} else {
			pivotWall, err := g.walls.RandomMember(g.src)
			if err != nil {
				return nil, fmt.Errorf("drawing pivot wall: %w", err)
			}
			g.stats.Draws++
			pivot = pivotWall.pivot()
		}

		connected, err := g.extend(pivot)
		if err != nil {
			return nil, err
		}
		if connected {
			misses = 0
			continue
		}
		misses++
		g.stats.Misses++
	}

	return newMaze(g.width, g.height, g.walls.Walls(), g.Stats()), nil
}

// Generate builds the maze and opens its entrance and exit.
func (g *Generator) Generate() (*Maze, error) {
	m, err := g.Build()
	if err != nil {
		return nil, err
	}
	opened := m.OpenDoors()
	if g.observer != nil {
		g.emit(Event{Kind: EventOpened, Wall: opened.Entrance()})
		g.emit(Event{Kind: EventOpened, Wall: opened.Exit()})
	}
	return opened, nil
}

// extend tries to connect one eligible neighbor of pivot. When there is none the
// pivot itself is pruned from the available list.
func (g *Generator) extend(pivot Cell) (bool, error) {
	candidates := g.eligible(pivot)
	if len(candidates) == 0 {
		if g.available.remove(pivot) {
			g.emit(Event{Kind: EventPruned, Pivot: pivot, Cell: pivot})
		}
		return false, nil
	}

	next := candidates[g.src.Intn(len(candidates))]
	g.available.remove(next)

	w := wallBetween(pivot, next)
	if _, err := g.walls.AddRun(w.x, w.y, w.orientation, 1); err != nil {
		return false, fmt.Errorf("connecting %v to %v: %w", next, pivot, err)
	}
	g.emit(Event{Kind: EventWall, Wall: w, Pivot: pivot, Cell: next})
	return true, nil
}

// eligible lists the neighbors of c that are still available and not walled off.
func (g *Generator) eligible(c Cell) []Cell {
	var out []Cell
	for _, d := range compass {
		n, between, ok := c.step(d)
		if !ok || !g.available.has(n) {
			continue
		}
		if g.walls.Has(between) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// rescan runs after a streak of unproductive draws. It picks uniformly among the
// walls whose pivot can still grow the tree, and falls back to recover when there
// are none.
func (g *Generator) rescan() (Cell, error) {
	g.stats.Rescans++

	var pivots []Cell
	for _, w := range g.walls.order {
		if p := w.pivot(); len(g.eligible(p)) > 0 {
			pivots = append(pivots, p)
		}
	}
	if len(pivots) > 0 {
		return pivots[g.src.Intn(len(pivots))], nil
	}
	return g.recover()
}

// recover picks a connected anchor point that still has an eligible neighbor. It is
// needed when no wall maps to such a point, which the pivot mapping allows for cells
// whose connected neighbors only ever appear as the far end of a wall.
func (g *Generator) recover() (Cell, error) {
	var frontier []Cell
	for y := 0; y <= g.height; y++ {
		for x := 0; x <= g.width; x++ {
			c := Cell{X: x, Y: y}
			if g.available.has(c) {
				continue
			}
			if len(g.eligible(c)) > 0 {
				frontier = append(frontier, c)
			}
		}
	}
	if len(frontier) == 0 {
		return Cell{}, fmt.Errorf("%d cells unreachable from the tree", g.available.len())
	}

	pivot := frontier[g.src.Intn(len(frontier))]
	g.stats.Recoveries++
	g.emit(Event{Kind: EventRecovered, Pivot: pivot})
	return pivot, nil
}

func (g *Generator) emit(e Event) {
	if g.observer != nil {
		g.observer(e)
	}
}
