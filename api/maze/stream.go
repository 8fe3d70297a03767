package mazeapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// stream upgrades to a WebSocket and sends one EventMessage per construction step,
// followed by a DoneMessage with the stored maze.
func (c *Controller) stream(ctx *gin.Context) {
	var query StreamMazeQuery
	if err := ctx.ShouldBind(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade already replied to the client.
		c.logger.Warning(fmt.Sprintf("Stream upgrade: %v", err))
		return
	}
	defer conn.Close()

	streamCtx, cancel := context.WithCancel(ctx.Request.Context())
	defer cancel()
	go discardReads(conn, cancel)

	var writeErr error
	send := func(v interface{}) {
		if writeErr != nil {
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if writeErr = conn.WriteJSON(v); writeErr != nil {
			cancel()
		}
	}

	req := dmn.GenerateRequest{Width: query.Width, Height: query.Height, Seed: query.Seed}
	record, err := c.mazeService.Stream(streamCtx, req, func(e maze.Event) {
		send(toEventMessage(e))
	})
	switch {
	case streamCtx.Err() != nil:
		c.logger.Debug(fmt.Sprintf("Stream of %dx%d maze abandoned by client", req.Width, req.Height))
		return
	case err != nil:
		send(ErrorMessage{Type: MessageError, Error: err.Error()})
	default:
		send(DoneMessage{Type: MessageMaze, Maze: toMazeResponse(record)})
	}

	if writeErr != nil {
		c.logger.Warning(fmt.Sprintf("Stream write: %v", writeErr))
		return
	}
	closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, closing, time.Now().Add(writeWait))
}

// discardReads processes control frames from the client and cancels the stream once
// the connection is closed or fails.
func discardReads(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}
