package sessions

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinehall/internal/movies"
	"cinehall/internal/rooms"
	"cinehall/internal/schedule"
	"cinehall/internal/shared/clock"
	"cinehall/internal/shared/store"
	"cinehall/internal/shared/utils/response"
)

type Controller interface {
	CreateSession(c *gin.Context)
	UpdateSession(c *gin.Context)
	GetSession(c *gin.Context)
	DeleteSession(c *gin.Context)
	ListToday(c *gin.Context)
	ListTomorrow(c *gin.Context)
}

type controller struct {
	service Service
	clock   clock.Clock
}

func NewController(service Service, clk clock.Clock) Controller {
	return &controller{service: service, clock: clk}
}

func statusForSessionError(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, rooms.ErrRoomNotFound),
		errors.Is(err, movies.ErrMovieNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSessionLocked), errors.Is(err, ErrSessionOverlap):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidTimeWindow), errors.Is(err, ErrSessionTooShort):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (ctrl *controller) CreateSession(c *gin.Context) {
	req, ok := ctrl.bindScheduleRequest(c)
	if !ok {
		return
	}

	session, err := ctrl.service.CreateSession(c.Request.Context(), *req)
	if err != nil {
		response.RespondJSON(c, "error", statusForSessionError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Session scheduled successfully", session, nil)
}

func (ctrl *controller) UpdateSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}

	req, ok := ctrl.bindScheduleRequest(c)
	if !ok {
		return
	}

	session, err := ctrl.service.UpdateSession(c.Request.Context(), id, *req)
	if err != nil {
		response.RespondJSON(c, "error", statusForSessionError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Session updated successfully", session, nil)
}

// bindScheduleRequest parses the JSON payload and its date/time strings.
// Responds with 400 and returns false on any malformed field.
func (ctrl *controller) bindScheduleRequest(c *gin.Context) (*ScheduleRequest, bool) {
	var body CreateSessionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return nil, false
	}

	roomID, _ := uuid.Parse(body.RoomID)
	movieID, _ := uuid.Parse(body.MovieID)

	dateStart, err := time.Parse(dateLayout, body.DateStart)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid date_start, expected YYYY-MM-DD", nil, err.Error())
		return nil, false
	}

	req := ScheduleRequest{
		RoomID:    roomID,
		MovieID:   movieID,
		DateStart: dateStart,
		Price:     body.Price,
	}

	if body.DateFinish != "" {
		dateFinish, err := time.Parse(dateLayout, body.DateFinish)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid date_finish, expected YYYY-MM-DD", nil, err.Error())
			return nil, false
		}
		req.DateFinish = &dateFinish
	}

	timeStart, err := schedule.ParseTimeOfDay(body.TimeStart)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid time_start, expected HH:MM", nil, err.Error())
		return nil, false
	}
	req.TimeStart = timeStart

	if body.TimeFinish != "" {
		timeFinish, err := schedule.ParseTimeOfDay(body.TimeFinish)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid time_finish, expected HH:MM", nil, err.Error())
			return nil, false
		}
		req.TimeFinish = &timeFinish
	}

	return &req, true
}

func (ctrl *controller) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}

	session, err := ctrl.service.GetSessionByID(c.Request.Context(), id)
	if err != nil {
		response.RespondJSON(c, "error", statusForSessionError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Session retrieved successfully", session, nil)
}

func (ctrl *controller) DeleteSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteSession(c.Request.Context(), id); err != nil {
		response.RespondJSON(c, "error", statusForSessionError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Session deleted successfully", nil, nil)
}

// ListToday serves the screenings running today, optionally narrowed by
// ?min_time=18:00&max_time=22:00&room=<uuid>.
func (ctrl *controller) ListToday(c *gin.Context) {
	ctrl.listForDate(c, ctrl.clock.Now())
}

// ListTomorrow serves tomorrow's screenings with the same filters.
func (ctrl *controller) ListTomorrow(c *gin.Context) {
	ctrl.listForDate(c, ctrl.clock.Now().AddDate(0, 0, 1))
}

func (ctrl *controller) listForDate(c *gin.Context, date time.Time) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	filter := ListFilter{}
	if query.MinTime != "" {
		t, err := schedule.ParseTimeOfDay(query.MinTime)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid min_time, expected HH:MM", nil, err.Error())
			return
		}
		filter.MinTime = &t
	}
	if query.MaxTime != "" {
		t, err := schedule.ParseTimeOfDay(query.MaxTime)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid max_time, expected HH:MM", nil, err.Error())
			return
		}
		filter.MaxTime = &t
	}
	if query.RoomID != "" {
		roomID, err := uuid.Parse(query.RoomID)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid room ID", nil, err.Error())
			return
		}
		filter.RoomID = &roomID
	}

	result, err := ctrl.service.ListSessionsOn(c.Request.Context(), date, filter)
	if err != nil {
		response.RespondJSON(c, "error", statusForSessionError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Sessions retrieved successfully", result, nil)
}
