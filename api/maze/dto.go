// Package mazeapi serves generated mazes over REST and streams their construction
// over WebSocket.
package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
)

// CreateMazeRequest represents a request to generate a maze.
type CreateMazeRequest struct {
	Width  int    `json:"width" binding:"required,min=1"`
	Height int    `json:"height" binding:"required,min=1"`
	Seed   *int64 `json:"seed"`
}

// StreamMazeQuery holds the query parameters of a construction stream.
type StreamMazeQuery struct {
	Width  int    `form:"width" binding:"required,min=1"`
	Height int    `form:"height" binding:"required,min=1"`
	Seed   *int64 `form:"seed"`
}

// MazeResponse is the JSON form of a stored maze.
type MazeResponse struct {
	ID        string        `json:"id"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Seed      int64         `json:"seed"`
	Walls     []dmn.WallDoc `json:"walls"`
	CreatedAt time.Time     `json:"created_at"`
}

// SolutionResponse lists the rooms from the entrance to the exit.
type SolutionResponse struct {
	ID     string      `json:"id"`
	Length int         `json:"length"`
	Rooms  []maze.Room `json:"rooms"`
}

// EventMessage is sent for every construction step.
type EventMessage struct {
	Type  string       `json:"type"`
	Kind  string       `json:"kind"`
	Wall  *dmn.WallDoc `json:"wall,omitempty"`
	Pivot maze.Cell    `json:"pivot"`
	Cell  maze.Cell    `json:"cell"`
}

// DoneMessage closes a stream with the stored maze.
type DoneMessage struct {
	Type string       `json:"type"`
	Maze MazeResponse `json:"maze"`
}

// ErrorMessage closes a stream that failed.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Stream message types.
const (
	MessageEvent = "event"
	MessageMaze  = "maze"
	MessageError = "error"
)

func toMazeResponse(r *dmn.MazeRecord) MazeResponse {
	walls := r.Walls
	if walls == nil {
		walls = []dmn.WallDoc{}
	}
	return MazeResponse{
		ID:        r.ID.String(),
		Width:     r.Width,
		Height:    r.Height,
		Seed:      r.Seed,
		Walls:     walls,
		CreatedAt: r.CreatedAt,
	}
}

func toEventMessage(e maze.Event) EventMessage {
	msg := EventMessage{
		Type:  MessageEvent,
		Kind:  string(e.Kind),
		Pivot: e.Pivot,
		Cell:  e.Cell,
	}
	switch e.Kind {
	case maze.EventBoundary, maze.EventWall, maze.EventOpened:
		msg.Wall = &dmn.WallDoc{X: e.Wall.X(), Y: e.Wall.Y(), Horizontal: e.Wall.IsHorizontal()}
	}
	return msg
}
