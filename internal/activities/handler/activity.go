package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"actman/internal/activities/service"
	apperrors "actman/pkg/errors"
	httputil "actman/pkg/http"
	"actman/pkg/logger"
	"actman/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ActivityHandler struct {
	service service.ActivityService
	log     *logger.Logger
}

func NewActivityHandler(service service.ActivityService, log *logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		log:     log,
	}
}

// UpdateSelectionRequest carries one wizard step's day/band selection.
type UpdateSelectionRequest struct {
	WeekNumber int                 `json:"weekNumber"`
	Selection  model.SlotSelection `json:"selection"`
}

// UpdateCustomTimesRequest carries a batch of session times keyed by the
// composite "DAY-BAND" session key.
type UpdateCustomTimesRequest struct {
	Times map[string]model.SessionTimes `json:"times"`
}

func (h *ActivityHandler) CreateJourney(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var journey model.Journey
	if err := json.NewDecoder(r.Body).Decode(&journey); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.CreateJourney(r.Context(), &journey); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, journey)
}

func (h *ActivityHandler) GetJourney(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	journey, err := h.service.GetJourney(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, journey)
}

func (h *ActivityHandler) UpdateSelection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req UpdateSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	journey, err := h.service.UpdateSelection(r.Context(), ps.ByName("id"), req.WeekNumber, req.Selection)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, journey)
}

func (h *ActivityHandler) UpdateCustomTimes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req UpdateCustomTimesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	journey, err := h.service.UpdateCustomTimes(r.Context(), ps.ByName("id"), req.Times)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, journey)
}

func (h *ActivityHandler) DeleteJourney(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteJourney(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

// SessionSlots assembles the session-times rows for one rotation week of
// a journey. The week defaults to 1 when the query omits it.
func (h *ActivityHandler) SessionSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	weekNumber := 1
	if weekStr := r.URL.Query().Get("week"); weekStr != "" {
		parsed, err := strconv.Atoi(weekStr)
		if err != nil {
			httputil.WriteError(w, apperrors.InvalidInput("Invalid week parameter: "+weekStr))
			return
		}
		weekNumber = parsed
	}

	slots, err := h.service.SessionSlots(r.Context(), ps.ByName("id"), weekNumber)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, slots)
}

func (h *ActivityHandler) SubmitSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slots, err := h.service.SubmitSlots(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, slots)
}

func (h *ActivityHandler) ApplyRegimeTimes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slots, err := h.service.ApplyRegimeTimes(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, slots)
}

func (h *ActivityHandler) GetScheduleSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	scheduleID, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid schedule ID: "+ps.ByName("id")))
		return
	}

	view, err := h.service.GetScheduleSlots(r.Context(), scheduleID, r.URL.Query().Get("view"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, view)
}

func (h *ActivityHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/journeys", h.CreateJourney)
	router.GET("/api/v1/journeys/:id", h.GetJourney)
	router.PATCH("/api/v1/journeys/:id/selection", h.UpdateSelection)
	router.PATCH("/api/v1/journeys/:id/times", h.UpdateCustomTimes)
	router.DELETE("/api/v1/journeys/:id", h.DeleteJourney)
	router.GET("/api/v1/journeys/:id/session-slots", h.SessionSlots)
	router.POST("/api/v1/journeys/:id/submit", h.SubmitSlots)
	router.POST("/api/v1/journeys/:id/apply-regime-times", h.ApplyRegimeTimes)
	router.GET("/api/v1/schedules/:id/slots", h.GetScheduleSlots)
}
