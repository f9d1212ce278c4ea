package rooms

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinehall/internal/shared/store"
	"cinehall/internal/shared/utils/response"
)

type Controller interface {
	CreateRoom(c *gin.Context)
	GetRoom(c *gin.Context)
	ListRooms(c *gin.Context)
	UpdateRoom(c *gin.Context)
	DeleteRoom(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func statusForRoomError(err error) int {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRoomTitleTaken), errors.Is(err, ErrRoomInUse):
		return http.StatusConflict
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (ctrl *controller) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	room, err := ctrl.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", statusForRoomError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Room created successfully", room, nil)
}

func (ctrl *controller) GetRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid room ID", nil, err.Error())
		return
	}

	room, err := ctrl.service.GetRoomByID(c.Request.Context(), id)
	if err != nil {
		response.RespondJSON(c, "error", statusForRoomError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room retrieved successfully", room, nil)
}

func (ctrl *controller) ListRooms(c *gin.Context) {
	result, err := ctrl.service.ListRooms(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", statusForRoomError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Rooms retrieved successfully", result, nil)
}

func (ctrl *controller) UpdateRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid room ID", nil, err.Error())
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	room, err := ctrl.service.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		response.RespondJSON(c, "error", statusForRoomError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room updated successfully", room, nil)
}

func (ctrl *controller) DeleteRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid room ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteRoom(c.Request.Context(), id); err != nil {
		response.RespondJSON(c, "error", statusForRoomError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room deleted successfully", nil, nil)
}
