package movies

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinehall/internal/shared/store"
	"cinehall/internal/shared/utils/response"
)

type Controller interface {
	CreateMovie(c *gin.Context)
	GetMovie(c *gin.Context)
	ListMovies(c *gin.Context)
	UpdateMovie(c *gin.Context)
	DeleteMovie(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateMovie(c *gin.Context) {
	var req CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	movie, err := ctrl.service.CreateMovie(c.Request.Context(), req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, store.ErrUnavailable) {
			statusCode = http.StatusServiceUnavailable
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Movie created successfully", movie, nil)
}

func (ctrl *controller) GetMovie(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid movie ID", nil, err.Error())
		return
	}

	movie, err := ctrl.service.GetMovieByID(c.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrMovieNotFound) {
			statusCode = http.StatusNotFound
		} else if errors.Is(err, store.ErrUnavailable) {
			statusCode = http.StatusServiceUnavailable
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Movie retrieved successfully", movie, nil)
}

func (ctrl *controller) ListMovies(c *gin.Context) {
	result, err := ctrl.service.ListMovies(c.Request.Context())
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, store.ErrUnavailable) {
			statusCode = http.StatusServiceUnavailable
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Movies retrieved successfully", result, nil)
}

func (ctrl *controller) UpdateMovie(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid movie ID", nil, err.Error())
		return
	}

	var req UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	movie, err := ctrl.service.UpdateMovie(c.Request.Context(), id, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrMovieNotFound) {
			statusCode = http.StatusNotFound
		} else if errors.Is(err, store.ErrUnavailable) {
			statusCode = http.StatusServiceUnavailable
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Movie updated successfully", movie, nil)
}

func (ctrl *controller) DeleteMovie(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid movie ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteMovie(c.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrMovieNotFound) {
			statusCode = http.StatusNotFound
		} else if errors.Is(err, store.ErrUnavailable) {
			statusCode = http.StatusServiceUnavailable
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Movie deleted successfully", nil, nil)
}
