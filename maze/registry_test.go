package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallRegistry(t *testing.T) {
	t.Run("Add suppresses duplicates", func(t *testing.T) {
		r := NewWallRegistry(3, 3)
		w, _ := NewWall(1, 1, Horizontal)
		same, _ := NewWall(1, 1, Horizontal)

		assert.True(t, r.Add(w))
		assert.False(t, r.Add(same))
		assert.Equal(t, 1, r.Len())
		assert.True(t, r.Contains(1, 1, Horizontal))
		assert.False(t, r.Contains(1, 1, Vertical))
		assert.False(t, r.Contains(-1, 1, Horizontal))
	})

	t.Run("Random member from empty registry", func(t *testing.T) {
		r := NewWallRegistry(3, 3)
		_, err := r.RandomMember(rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, err, ErrEmptyRegistry)
	})

	t.Run("Random member is uniform over members", func(t *testing.T) {
		r := NewWallRegistry(3, 3)
		_, err := r.AddRun(0, 0, Horizontal, 3)
		require.NoError(t, err)

		src := rand.New(rand.NewSource(7))
		counts := map[Wall]int{}
		for i := 0; i < 3000; i++ {
			w, err := r.RandomMember(src)
			require.NoError(t, err)
			counts[w]++
		}
		assert.Len(t, counts, 3)
		for w, n := range counts {
			assert.True(t, r.Has(w))
			assert.Greater(t, n, 800, "wall %s drawn %d times", w, n)
		}
	})

	t.Run("Walls keeps insertion order and is a copy", func(t *testing.T) {
		r := NewWallRegistry(3, 3)
		_, err := r.AddRun(0, 2, Vertical, 1)
		require.NoError(t, err)
		_, err = r.AddRun(0, 0, Horizontal, 1)
		require.NoError(t, err)

		walls := r.Walls()
		require.Len(t, walls, 2)
		assert.Equal(t, Wall{x: 0, y: 2, orientation: Vertical}, walls[0])
		assert.Equal(t, Wall{x: 0, y: 0, orientation: Horizontal}, walls[1])

		walls[0] = Wall{}
		assert.Equal(t, Wall{x: 0, y: 2, orientation: Vertical}, r.Walls()[0])
	})
}

func TestWallRegistryAddRun(t *testing.T) {
	t.Run("Runs inside the grid", func(t *testing.T) {
		r := NewWallRegistry(3, 2)

		added, err := r.AddRun(0, 0, Horizontal, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, added)

		added, err = r.AddRun(3, 0, Vertical, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, added)

		added, err = r.AddRun(1, 0, Horizontal, 2)
		require.NoError(t, err)
		assert.Equal(t, 0, added)

		assert.Equal(t, 5, r.Len())
		assert.True(t, r.Contains(2, 0, Horizontal))
		assert.True(t, r.Contains(3, 1, Vertical))
	})

	t.Run("Runs leaving the grid", func(t *testing.T) {
		r := NewWallRegistry(3, 2)

		_, err := r.AddRun(1, 0, Horizontal, 3)
		assert.ErrorIs(t, err, ErrBoundaryViolation)

		_, err = r.AddRun(0, 3, Horizontal, 1)
		assert.ErrorIs(t, err, ErrBoundaryViolation)

		_, err = r.AddRun(4, 0, Vertical, 1)
		assert.ErrorIs(t, err, ErrBoundaryViolation)

		_, err = r.AddRun(0, 1, Vertical, 2)
		assert.ErrorIs(t, err, ErrBoundaryViolation)

		assert.Equal(t, 0, r.Len())
	})

	t.Run("Invalid arguments", func(t *testing.T) {
		r := NewWallRegistry(3, 2)

		_, err := r.AddRun(-1, 0, Horizontal, 1)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)

		_, err = r.AddRun(0, 0, Vertical, 0)
		assert.ErrorIs(t, err, ErrInvalidRunLength)
	})
}
