package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeroSource always picks the first option.
type zeroSource struct{}

func (zeroSource) Intn(int) int { return 0 }

func expectedWalls(width, height int) int {
	return 2*width + 2*height + (width-1)*(height-1)
}

func TestNewGenerator(t *testing.T) {
	t.Run("Rejects invalid dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}, {DefaultMaxDimension + 1, 2}} {
			_, err := NewGenerator(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimensions, "dims %v", dims)
		}
	})

	t.Run("Max dimension can be lowered", func(t *testing.T) {
		_, err := NewGenerator(5, 5, WithMaxDimension(4))
		assert.ErrorIs(t, err, ErrInvalidDimensions)

		g, err := NewGenerator(4, 4, WithMaxDimension(4))
		require.NoError(t, err)
		assert.Equal(t, 4, g.Width())
		assert.Equal(t, 4, g.Height())
	})

	t.Run("Starts enclosed with every interior cell available", func(t *testing.T) {
		g, err := NewGenerator(3, 2, WithSeed(1))
		require.NoError(t, err)

		assert.Equal(t, 2*3+2*2, g.walls.Len())
		for x := 0; x < 3; x++ {
			assert.True(t, g.walls.Contains(x, 0, Horizontal))
			assert.True(t, g.walls.Contains(x, 2, Horizontal))
		}
		for y := 0; y < 2; y++ {
			assert.True(t, g.walls.Contains(0, y, Vertical))
			assert.True(t, g.walls.Contains(3, y, Vertical))
		}
		assert.Equal(t, []Cell{{X: 1, Y: 1}, {X: 2, Y: 1}}, g.Remaining())
		assert.Equal(t, 2, g.Stats().Remaining)
	})

	t.Run("Boundary events are reported", func(t *testing.T) {
		var boundary int
		_, err := NewGenerator(3, 4, WithObserver(func(e Event) {
			if e.Kind == EventBoundary {
				boundary++
			}
		}))
		require.NoError(t, err)
		assert.Equal(t, 2*3+2*4, boundary)
	})
}

func TestGeneratorBuild(t *testing.T) {
	t.Run("Two by two with a fixed source", func(t *testing.T) {
		var events []Event
		g, err := NewGenerator(2, 2, WithSource(zeroSource{}), WithObserver(func(e Event) {
			if e.Kind != EventBoundary {
				events = append(events, e)
			}
		}))
		require.NoError(t, err)
		assert.Equal(t, []Cell{{X: 1, Y: 1}}, g.Remaining())

		m, err := g.Build()
		require.NoError(t, err)

		assert.Equal(t, 9, m.Len())
		assert.True(t, m.HasWall(1, 0, Vertical))
		assert.Empty(t, g.Remaining())

		require.Len(t, events, 1)
		assert.Equal(t, EventWall, events[0].Kind)
		assert.Equal(t, Wall{x: 1, y: 0, orientation: Vertical}, events[0].Wall)
		assert.Equal(t, Cell{X: 1, Y: 0}, events[0].Pivot)
		assert.Equal(t, Cell{X: 1, Y: 1}, events[0].Cell)
	})

	t.Run("Produces a spanning tree for many shapes", func(t *testing.T) {
		shapes := [][2]int{{1, 1}, {1, 4}, {4, 1}, {2, 2}, {3, 3}, {7, 4}, {12, 12}, {25, 9}}
		for _, shape := range shapes {
			for seed := int64(0); seed < 5; seed++ {
				g, err := NewGenerator(shape[0], shape[1], WithSeed(seed))
				require.NoError(t, err)

				m, err := g.Build()
				require.NoError(t, err, "shape %v seed %d", shape, seed)

				assert.Equal(t, expectedWalls(shape[0], shape[1]), m.Len(), "shape %v seed %d", shape, seed)
				assert.NoError(t, m.Validate(), "shape %v seed %d", shape, seed)
				assert.Equal(t, 0, m.Stats().Remaining)
				assert.False(t, m.IsOpen())
			}
		}
	})

	t.Run("Terminates with a degenerate source", func(t *testing.T) {
		g, err := NewGenerator(9, 6, WithSource(zeroSource{}))
		require.NoError(t, err)

		m, err := g.Build()
		require.NoError(t, err)
		assert.NoError(t, m.Validate())
		assert.Equal(t, expectedWalls(9, 6), m.Len())
	})

	t.Run("Every interior cell joins exactly once", func(t *testing.T) {
		joined := map[Cell]int{}
		g, err := NewGenerator(6, 5, WithSeed(99), WithObserver(func(e Event) {
			if e.Kind == EventWall {
				joined[e.Cell]++
			}
		}))
		require.NoError(t, err)
		_, err = g.Build()
		require.NoError(t, err)

		assert.Len(t, joined, 5*4)
		for c, n := range joined {
			assert.Equal(t, 1, n, "cell %v", c)
			assert.True(t, c.X >= 1 && c.X < 6 && c.Y >= 1 && c.Y < 5, "cell %v", c)
		}
	})

	t.Run("Every interior anchor touches a wall", func(t *testing.T) {
		for seed := int64(0); seed < 5; seed++ {
			g, err := NewGenerator(7, 4, WithSeed(seed))
			require.NoError(t, err)
			m, err := g.Build()
			require.NoError(t, err)

			touched := map[Cell]bool{}
			for _, w := range m.Walls() {
				touched[Cell{X: w.X(), Y: w.Y()}] = true
				touched[w.End()] = true
			}
			for x := 1; x < 7; x++ {
				for y := 1; y < 4; y++ {
					assert.True(t, touched[Cell{X: x, Y: y}], "seed %d anchor (%d,%d)", seed, x, y)
				}
			}
		}
	})

	t.Run("Same seed gives the same maze", func(t *testing.T) {
		a, err := NewGenerator(15, 10, WithSeed(2024))
		require.NoError(t, err)
		b, err := NewGenerator(15, 10, WithSeed(2024))
		require.NoError(t, err)

		ma, err := a.Build()
		require.NoError(t, err)
		mb, err := b.Build()
		require.NoError(t, err)

		assert.Equal(t, ma.Walls(), mb.Walls())
		assert.Equal(t, ma.Stats(), mb.Stats())
	})

	t.Run("Single use", func(t *testing.T) {
		g, err := NewGenerator(3, 3, WithSeed(3))
		require.NoError(t, err)
		_, err = g.Build()
		require.NoError(t, err)

		_, err = g.Build()
		assert.ErrorIs(t, err, ErrAlreadyBuilt)
		_, err = g.Generate()
		assert.ErrorIs(t, err, ErrAlreadyBuilt)
	})
}

func TestGeneratorGenerate(t *testing.T) {
	var opened []Wall
	g, err := NewGenerator(5, 4, WithSeed(11), WithObserver(func(e Event) {
		if e.Kind == EventOpened {
			opened = append(opened, e.Wall)
		}
	}))
	require.NoError(t, err)

	m, err := g.Generate()
	require.NoError(t, err)

	assert.Equal(t, expectedWalls(5, 4)-2, m.Len())
	assert.True(t, m.IsOpen())
	assert.False(t, m.HasWall(0, 0, Horizontal))
	assert.False(t, m.HasWall(4, 4, Horizontal))
	assert.Equal(t, []Wall{m.Entrance(), m.Exit()}, opened)

	for x := 1; x < 5; x++ {
		assert.True(t, m.HasWall(x, 0, Horizontal))
	}
	for x := 0; x < 4; x++ {
		assert.True(t, m.HasWall(x, 4, Horizontal))
	}
	for y := 0; y < 4; y++ {
		assert.True(t, m.HasWall(0, y, Vertical))
		assert.True(t, m.HasWall(5, y, Vertical))
	}
	assert.NoError(t, m.Validate())
}
