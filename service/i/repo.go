package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// MazeRepo defines the interface for maze persistence operations.
type MazeRepo interface {
	// Save inserts or updates a maze in the repository.
	// If the maze already exists, it updates the record. Otherwise, it creates a new one.
	Save(ctx context.Context, record *dmn.MazeRecord) error

	// ByID retrieves a maze by its unique ID.
	// Returns dmn.ErrMazeNotFound if there is no such maze.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)

	// BySeed retrieves the maze generated for the given size and seed.
	// Returns dmn.ErrMazeNotFound if it was never stored.
	BySeed(ctx context.Context, width, height int, seed int64) (*dmn.MazeRecord, error)
}
