package ws_room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	usecase_session "github.com/planningpoko/core/internal/usecase/session"
)

var errInvalidPayload = errors.New("invalid payload")

// Controller upgrades connections and dispatches inbound commands to
// the session engine. Engine errors stay with the originating client
// as error events; everything that succeeds is broadcast by the engine
// through the hub.
type Controller struct {
	hub      *Hub
	engine   *usecase_session.Engine
	validate *validator.Validate
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewController(hub *Hub, engine *usecase_session.Engine) *Controller {
	return &Controller{
		hub:      hub,
		engine:   engine,
		validate: validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws", c.serve)
}

func (c *Controller) serve(ctx *gin.Context) {
	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := newClient(conn)
	c.hub.register <- client
	go client.writePump()
	c.readPump(client)
}

func (c *Controller) readPump(client *Client) {
	defer func() {
		// A dropped transport carries no identifiers; the engine
		// reverse-looks the participant up and runs leave cleanup.
		c.engine.Disconnect(context.Background(), client.id)
		c.hub.unregister <- client
		client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			return
		}
		c.dispatch(context.Background(), client, data)
	}
}

func (c *Controller) dispatch(ctx context.Context, client *Client, data []byte) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		c.sendError(client, "malformed command")
		return
	}

	var err error
	switch cmd.Type {
	case CommandJoinRoom:
		var p joinRoomPayload
		if err = c.bind(cmd.Payload, &p); err == nil {
			err = c.engine.Join(ctx, client.id, p.RoomID, p.UserID, p.RoomCode)
		}

	case CommandLeaveRoom:
		var p leaveRoomPayload
		if err = c.bind(cmd.Payload, &p); err == nil {
			err = c.engine.Leave(ctx, client.id, p.RoomID, p.UserID, p.RoomCode)
		}

	case CommandSubmitVote:
		var p submitVotePayload
		if err = c.bind(cmd.Payload, &p); err == nil {
			err = c.engine.SubmitVote(ctx, p.RoomID, p.RoundID, p.UserID, p.Value, p.RoomCode)
		}

	case CommandRevealCards:
		var p roundActionPayload
		if err = c.bind(cmd.Payload, &p); err == nil {
			err = c.engine.RevealCards(ctx, p.RoomID, p.RoundID, p.RoomCode)
		}

	case CommandHideCards:
		var p roundActionPayload
		if err = c.bind(cmd.Payload, &p); err == nil {
			err = c.engine.HideCards(ctx, p.RoomID, p.RoundID, p.RoomCode)
		}

	case CommandStartNewRound:
		var p startNewRoundPayload
		if err = c.bind(cmd.Payload, &p); err == nil {
			err = c.engine.StartNewRound(ctx, p.RoomID, p.RoomCode, p.Title, p.Subtitle)
		}

	case CommandSetFinalEstimate:
		var p setFinalEstimatePayload
		if err = c.bind(cmd.Payload, &p); err == nil {
			err = c.engine.SetFinalEstimate(ctx, p.RoomID, p.RoundID, p.Value, p.RoomCode)
		}

	case CommandDeleteRound:
		var p roundActionPayload
		if err = c.bind(cmd.Payload, &p); err == nil {
			err = c.engine.DeleteRound(ctx, p.RoomID, p.RoundID, p.RoomCode)
		}

	case CommandStartVoting:
		var p roundActionPayload
		if err = c.bind(cmd.Payload, &p); err == nil {
			err = c.engine.StartVoting(ctx, p.RoomID, p.RoundID, p.RoomCode)
		}

	case CommandEndVoting:
		var p endVotingPayload
		if err = c.bind(cmd.Payload, &p); err == nil {
			err = c.engine.EndVoting(ctx, p.RoomID, p.RoomCode)
		}

	default:
		c.sendError(client, "unknown command: "+cmd.Type)
		return
	}

	if err != nil {
		c.logger.Error("command failed",
			slog.String("command", cmd.Type),
			slog.String("session", client.id),
			slog.String("error", err.Error()))
		c.sendError(client, errorMessage(cmd.Type, err))
	}
}

// bind unmarshals and validates a command payload. Rejection happens
// here, before any repository call.
func (c *Controller) bind(payload json.RawMessage, out any) error {
	if len(payload) == 0 {
		return errInvalidPayload
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Join(errInvalidPayload, err)
	}
	if err := c.validate.Struct(out); err != nil {
		return errors.Join(errInvalidPayload, err)
	}
	return nil
}

// errorMessage keeps validation and not-found failures specific to the
// requester while unexpected repository failures stay generic.
func errorMessage(cmdType string, err error) string {
	switch {
	case errors.Is(err, errInvalidPayload):
		return fmt.Sprintf("invalid %s payload", cmdType)
	case errors.Is(err, usecase_session.ErrResourceNotFound):
		return fmt.Sprintf("%s: room or round not found", cmdType)
	default:
		return fmt.Sprintf("failed to handle %s", cmdType)
	}
}

func (c *Controller) sendError(client *Client, message string) {
	client.trySend(usecase_session.Event{
		Type:    usecase_session.EventError,
		Payload: usecase_session.ErrorPayload{Message: message},
	})
}
