package maze

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Passage graph errors.
var (
	ErrNotPerfect = errors.New("maze is not a perfect maze")
	ErrNoPath     = errors.New("no path between entrance and exit")
)

// Analysis describes the shape of a maze.
type Analysis struct {
	Rooms          int // Number of rooms
	Passages       int // Open sides between adjacent rooms
	DeadEnds       int // Rooms with a single passage
	Junctions      int // Rooms with three or more passages
	SolutionLength int // Rooms on the path from entrance to exit
}

// roomID numbers rooms row by row.
func (m *Maze) roomID(r Room) int64 {
	return int64(r.Y*m.width + r.X)
}

func (m *Maze) roomOf(id int64) Room {
	return Room{X: int(id) % m.width, Y: int(id) / m.width}
}

// passages builds the graph whose nodes are rooms and whose edges are the gaps
// between adjacent rooms. Walls are the absence of edges.
func (m *Maze) passages() (*simple.UndirectedGraph, int) {
	g := simple.NewUndirectedGraph()
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			g.AddNode(simple.Node(m.roomID(Room{X: x, Y: y})))
		}
	}

	edges := 0
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			from := simple.Node(m.roomID(Room{X: x, Y: y}))
			if x+1 < m.width && !m.HasWall(x+1, y, Vertical) {
				g.SetEdge(simple.Edge{F: from, T: simple.Node(m.roomID(Room{X: x + 1, Y: y}))})
				edges++
			}
			if y+1 < m.height && !m.HasWall(x, y+1, Horizontal) {
				g.SetEdge(simple.Edge{F: from, T: simple.Node(m.roomID(Room{X: x, Y: y + 1}))})
				edges++
			}
		}
	}
	return g, edges
}

// Validate checks that the rooms form a tree: one connected component and exactly
// rooms-1 passages.
func (m *Maze) Validate() error {
	g, edges := m.passages()
	rooms := m.width * m.height

	if comps := topo.ConnectedComponents(g); len(comps) != 1 {
		return fmt.Errorf("%d disconnected regions: %w", len(comps), ErrNotPerfect)
	}
	if edges != rooms-1 {
		return fmt.Errorf("%d passages for %d rooms: %w", edges, rooms, ErrNotPerfect)
	}
	return nil
}

// Solve returns the rooms on the path from the entrance room (0, 0) to the exit
// room (width-1, height-1), both included.
func (m *Maze) Solve() ([]Room, error) {
	g, _ := m.passages()
	start := g.Node(m.roomID(Room{X: 0, Y: 0}))
	goal := m.roomID(Room{X: m.width - 1, Y: m.height - 1})

	shortest := path.DijkstraFrom(start, g)
	nodes, weight := shortest.To(goal)
	if len(nodes) == 0 || math.IsInf(weight, 1) {
		return nil, ErrNoPath
	}

	rooms := make([]Room, len(nodes))
	for i, n := range nodes {
		rooms[i] = m.roomOf(n.ID())
	}
	return rooms, nil
}

// Analyze counts dead ends and junctions and measures the solution.
func (m *Maze) Analyze() Analysis {
	g, edges := m.passages()
	a := Analysis{
		Rooms:    m.width * m.height,
		Passages: edges,
	}

	nodes := g.Nodes()
	for nodes.Next() {
		switch degree := g.From(nodes.Node().ID()).Len(); {
		case degree == 1:
			a.DeadEnds++
		case degree >= 3:
			a.Junctions++
		}
	}

	if solution, err := m.Solve(); err == nil {
		a.SolutionLength = len(solution)
	}
	return a
}
