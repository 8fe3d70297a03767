package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// MazeService generates, stores and serves mazes.
type MazeService interface {
	// Generate returns the maze for req, reusing a stored one when the seed was seen before.
	Generate(ctx context.Context, req dmn.GenerateRequest) (*dmn.MazeRecord, error)

	// Stream generates like Generate while reporting every construction event to fn.
	Stream(ctx context.Context, req dmn.GenerateRequest, fn func(maze.Event)) (*dmn.MazeRecord, error)

	// ByID returns a stored maze.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)

	// Solution returns the rooms from entrance to exit of a stored maze.
	Solution(ctx context.Context, id uuid.UUID) ([]maze.Room, error)
}
