package domain

import "errors"

// Errors shared by the service, its storage and the API.
var (
	ErrMazeNotFound   = errors.New("maze not found")
	ErrInvalidRequest = errors.New("invalid maze request")
)

// GenerateRequest asks for a width x height maze. A nil Seed lets the service pick one.
type GenerateRequest struct {
	Width  int
	Height int
	Seed   *int64
}
