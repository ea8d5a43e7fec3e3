package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"actman/internal/allocations/service"
	apperrors "actman/pkg/errors"
	httputil "actman/pkg/http"
	"actman/pkg/logger"
	"actman/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AllocationHandler struct {
	service service.AllocationService
	log     *logger.Logger
}

func NewAllocationHandler(service service.AllocationService, log *logger.Logger) *AllocationHandler {
	return &AllocationHandler{
		service: service,
		log:     log,
	}
}

// UpdateExclusionsRequest carries the full replacement exclusion set.
type UpdateExclusionsRequest struct {
	Exclusions []model.Slot `json:"exclusions"`
}

// CurrentWeekResponse reports where a rotation stands today; null before
// the schedule starts.
type CurrentWeekResponse struct {
	CurrentWeek *int `json:"currentWeek"`
}

func (h *AllocationHandler) UpdateExclusions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	allocationID, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid allocation ID: "+ps.ByName("id")))
		return
	}

	var req UpdateExclusionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	result, err := h.service.UpdateExclusions(r.Context(), allocationID, req.Exclusions)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, result)
}

func (h *AllocationHandler) CurrentWeek(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	weeks := 1
	if weeksStr := query.Get("weeks"); weeksStr != "" {
		parsed, err := strconv.Atoi(weeksStr)
		if err != nil {
			httputil.WriteError(w, apperrors.InvalidInput("Invalid weeks parameter: "+weeksStr))
			return
		}
		weeks = parsed
	}

	currentWeek, err := h.service.CurrentWeek(query.Get("startDate"), weeks)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, CurrentWeekResponse{CurrentWeek: currentWeek})
}

func (h *AllocationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/allocations/:id/exclusions", h.UpdateExclusions)
	router.GET("/api/v1/schedules/current-week", h.CurrentWeek)
}
