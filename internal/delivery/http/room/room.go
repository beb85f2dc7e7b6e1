package http_room

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/planningpoko/core/internal/delivery/http/common"
	"github.com/planningpoko/core/internal/model"
	usecase_room "github.com/planningpoko/core/internal/usecase/room"
)

// Controller exposes the request-response side of the system: initial
// room creation and lookup. Everything after that happens over the
// websocket gateway.
type Controller struct {
	usecase *usecase_room.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_room.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	{
		rooms.POST("", c.create)
		rooms.GET("/:code", c.getByCode)
		rooms.POST("/:code/join", c.join)
	}
}

type CreateRoomRequestDTO struct {
	Name     string `json:"name" binding:"required"`
	UserName string `json:"userName" binding:"required"`
	Code     string `json:"code"`
}

type RoomWithUserResponseDTO struct {
	Room *model.Room `json:"room"`
	User *model.User `json:"user"`
}

func (c *Controller) create(ctx *gin.Context) {
	var req CreateRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "room name and user name are required",
		})
		return
	}

	room, user, joinedExisting, err := c.usecase.Create(ctx, req.Name, req.UserName, req.Code)
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_room.ErrRoomsUnavailable):
			ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
				Message: "unavailable",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	status := http.StatusCreated
	if joinedExisting {
		// The code already named a live room; the caller was added to
		// it instead.
		status = http.StatusOK
	}
	ctx.JSON(status, RoomWithUserResponseDTO{Room: room, User: user})
}

func (c *Controller) getByCode(ctx *gin.Context) {
	code := ctx.Param("code")

	room, err := c.usecase.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "room not found",
			})
			return
		}
		c.logger.Error("failed to get room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, room)
}

type JoinRoomRequestDTO struct {
	UserName string `json:"userName" binding:"required"`
}

func (c *Controller) join(ctx *gin.Context) {
	code := ctx.Param("code")

	var req JoinRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "user name is required",
		})
		return
	}

	room, user, err := c.usecase.Join(ctx, code, req.UserName)
	if err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "room not found",
			})
			return
		}
		c.logger.Error("failed to join room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, RoomWithUserResponseDTO{Room: room, User: user})
}
