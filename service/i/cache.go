package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
)

// MazeCache keeps recently served mazes close at hand.
type MazeCache interface {
	// Get reports whether key is cached and returns the record when it is.
	Get(ctx context.Context, key string) (*dmn.MazeRecord, bool, error)

	// Set stores record under key for the cache lifetime.
	Set(ctx context.Context, key string, record *dmn.MazeRecord) error
}

// Locker serializes work on a key across service replicas.
type Locker interface {
	// Lock blocks until key is held and returns the function that releases it.
	Lock(ctx context.Context, key string) (unlock func() error, err error)
}

// MazeEncoder converts maze records to and from a binary form.
type MazeEncoder interface {
	ContentType() string
	MarshalMaze(*dmn.MazeRecord) ([]byte, error)
	UnmarshalMaze([]byte) (*dmn.MazeRecord, error)
}
