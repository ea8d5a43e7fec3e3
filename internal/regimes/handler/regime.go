package handler

import (
	"encoding/json"
	"net/http"

	"actman/internal/regimes/service"
	httputil "actman/pkg/http"
	"actman/pkg/logger"
	"actman/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RegimeHandler struct {
	service service.RegimeService
	log     *logger.Logger
}

func NewRegimeHandler(service service.RegimeService, log *logger.Logger) *RegimeHandler {
	return &RegimeHandler{
		service: service,
		log:     log,
	}
}

// UpdateRegimeTimesRequest is the whole-week submission: session times
// keyed by the composite "DAY-BAND" session key.
type UpdateRegimeTimesRequest struct {
	Times map[string]model.SessionTimes `json:"times"`
}

func (h *RegimeHandler) GetRegime(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	prisonCode := ps.ByName("prisonCode")

	regime, err := h.service.GetRegime(r.Context(), prisonCode)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, regime)
}

func (h *RegimeHandler) UpdateRegime(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	prisonCode := ps.ByName("prisonCode")

	var req UpdateRegimeTimesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	regime, err := h.service.UpdateRegimeTimes(r.Context(), prisonCode, req.Times)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, regime)
}

func (h *RegimeHandler) ApplicableSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	prisonCode := ps.ByName("prisonCode")

	var sel model.SlotSelection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	slots, err := h.service.ApplicableSlots(r.Context(), prisonCode, sel)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, slots)
}

func (h *RegimeHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/prisons/:prisonCode/regime", h.GetRegime)
	router.PUT("/api/v1/prisons/:prisonCode/regime", h.UpdateRegime)
	router.POST("/api/v1/prisons/:prisonCode/regime/applicable-slots", h.ApplicableSlots)
}
