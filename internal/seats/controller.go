package seats

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinehall/internal/sessions"
	"cinehall/internal/shared/store"
	"cinehall/internal/shared/utils/response"
)

type Controller interface {
	GetSeatMap(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetSeatMap handles GET /sessions/:id/seats?date=YYYY-MM-DD.
func (ctrl *controller) GetSeatMap(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid or missing date, expected YYYY-MM-DD", nil, err.Error())
		return
	}

	seatMap, err := ctrl.service.GetSeatMap(c.Request.Context(), sessionID, date)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, sessions.ErrSessionNotFound) {
			statusCode = http.StatusNotFound
		} else if errors.Is(err, store.ErrUnavailable) {
			statusCode = http.StatusServiceUnavailable
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}
