package mazeapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Controller serves mazes.
type Controller struct {
	mazeService i.MazeService
	encoder     i.MazeEncoder
	logger      i.Logger
	upgrader    websocket.Upgrader
}

// NewController initializes a Controller.
func NewController(ms i.MazeService, enc i.MazeEncoder, logger i.Logger) (*Controller, error) {
	if ms == nil || enc == nil || logger == nil {
		return nil, errors.New("maze controller needs a service, an encoder and a logger")
	}
	return &Controller{
		mazeService: ms,
		encoder:     enc,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}, nil
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("/:ID", c.byID)
		mazes.GET("/:ID/solution", c.solution)
	}
}

// RegisterProtected registers protected routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/mazes", c.create)
	route.GET("/stream/mazes", c.stream)
}

// create handles maze generation requests.
func (c *Controller) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := c.mazeService.Generate(ctx.Request.Context(), dmn.GenerateRequest{
		Width:  request.Width,
		Height: request.Height,
		Seed:   request.Seed,
	})
	if err != nil {
		c.fail(ctx, err)
		return
	}

	if sub := identity.Subject(ctx); sub != "" {
		c.logger.Debug(fmt.Sprintf("Maze %s generated for %s", record.ID, sub))
	}
	ctx.JSON(http.StatusCreated, toMazeResponse(record))
}

// byID serves a stored maze as JSON, ASCII art or protobuf.
func (c *Controller) byID(ctx *gin.Context) {
	ID, ok := parseID(ctx)
	if !ok {
		return
	}

	record, err := c.mazeService.ByID(ctx.Request.Context(), ID)
	if err != nil {
		c.fail(ctx, err)
		return
	}

	switch {
	case ctx.Query("format") == "ascii":
		m, err := record.Maze()
		if err != nil {
			c.fail(ctx, err)
			return
		}
		ctx.String(http.StatusOK, m.String())
	case strings.Contains(ctx.GetHeader("Accept"), c.encoder.ContentType()):
		b, err := c.encoder.MarshalMaze(record)
		if err != nil {
			c.fail(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, c.encoder.ContentType(), b)
	default:
		ctx.JSON(http.StatusOK, toMazeResponse(record))
	}
}

// solution serves the path from the entrance to the exit of a stored maze.
func (c *Controller) solution(ctx *gin.Context) {
	ID, ok := parseID(ctx)
	if !ok {
		return
	}

	rooms, err := c.mazeService.Solution(ctx.Request.Context(), ID)
	if err != nil {
		c.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &SolutionResponse{
		ID:     ID.String(),
		Length: len(rooms),
		Rooms:  rooms,
	})
}

func parseID(ctx *gin.Context) (uuid.UUID, bool) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return uuid.Nil, false
	}
	return ID, true
}

// fail maps service errors to HTTP statuses.
func (c *Controller) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, dmn.ErrInvalidRequest):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dmn.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "maze not found"})
	default:
		c.logger.Error(fmt.Sprintf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while serving maze"})
	}
}
