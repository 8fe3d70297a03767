// Package domain holds the records persisted and served by the maze service.
package domain

import (
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// WallDoc is the stored form of a maze.Wall.
type WallDoc struct {
	X          int  `bson:"x" json:"x" yaml:"x"`
	Y          int  `bson:"y" json:"y" yaml:"y"`
	Horizontal bool `bson:"horizontal" json:"horizontal" yaml:"horizontal"`
}

// MazeRecord is a generated maze together with the seed that reproduces it.
type MazeRecord struct {
	ID        uuid.UUID `bson:"_id" json:"id" yaml:"id"`
	Width     int       `bson:"width" json:"width" yaml:"width"`
	Height    int       `bson:"height" json:"height" yaml:"height"`
	Seed      int64     `bson:"seed" json:"seed" yaml:"seed"`
	Walls     []WallDoc `bson:"walls" json:"walls" yaml:"walls"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at" yaml:"created_at"`
}

// NewMazeRecord captures m under id.
func NewMazeRecord(id uuid.UUID, seed int64, m *maze.Maze) *MazeRecord {
	walls := m.Walls()
	docs := make([]WallDoc, len(walls))
	for i, w := range walls {
		docs[i] = WallDoc{X: w.X(), Y: w.Y(), Horizontal: w.IsHorizontal()}
	}

	return &MazeRecord{
		ID:        id,
		Width:     m.Width(),
		Height:    m.Height(),
		Seed:      seed,
		Walls:     docs,
		CreatedAt: time.Now().UTC(),
	}
}

// Maze rebuilds the wall set, rejecting walls that do not fit the stored size.
func (r *MazeRecord) Maze() (*maze.Maze, error) {
	walls := make([]maze.Wall, 0, len(r.Walls))
	for _, doc := range r.Walls {
		o := maze.Vertical
		if doc.Horizontal {
			o = maze.Horizontal
		}
		w, err := maze.NewWall(doc.X, doc.Y, o)
		if err != nil {
			return nil, fmt.Errorf("maze %s: %w", r.ID, err)
		}
		walls = append(walls, w)
	}
	return maze.FromWalls(r.Width, r.Height, walls)
}
