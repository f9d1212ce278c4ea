package bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinehall/internal/seats"
	"cinehall/internal/sessions"
	"cinehall/internal/shared/store"
	"cinehall/internal/shared/utils/response"
)

type Controller interface {
	Purchase(c *gin.Context)
	GetMyTickets(c *gin.Context)
	GetSessionTickets(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func statusForBookingError(err error) int {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, seats.ErrSeatOutOfRange),
		errors.Is(err, ErrDateOutOfRange),
		errors.Is(err, ErrPurchaseWindow),
		errors.Is(err, ErrCutoffPassed):
		return http.StatusBadRequest
	case errors.Is(err, seats.ErrSeatsUnavailable), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (ctrl *controller) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sessionID, _ := uuid.Parse(req.SessionID)

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil, err.Error())
		return
	}

	result, err := ctrl.service.Purchase(c.Request.Context(), userID, sessionID, date, req.Seats)
	if err != nil {
		response.RespondJSON(c, "error", statusForBookingError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Tickets purchased successfully", result, nil)
}

func (ctrl *controller) GetMyTickets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tickets, err := ctrl.service.GetUserTickets(c.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(c, "error", statusForBookingError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Tickets retrieved successfully", tickets, nil)
}

// GetSessionTickets lists sold tickets for a session, optionally for a
// single day (?date=YYYY-MM-DD). Admin only.
func (ctrl *controller) GetSessionTickets(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil, err.Error())
			return
		}
		date = &parsed
	}

	tickets, err := ctrl.service.GetSessionTickets(c.Request.Context(), sessionID, date)
	if err != nil {
		response.RespondJSON(c, "error", statusForBookingError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Tickets retrieved successfully", tickets, nil)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}
	return userID, true
}
