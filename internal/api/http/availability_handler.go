package http

import (
	"fmt"
	"net/http"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/service"

	"github.com/gorilla/mux"
)

// AvailabilityHandler serves the per-property availability calendar.
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

func (h *AvailabilityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.availabilitySvc.ListAvailability(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

type setAvailabilityRequest struct {
	Dates       []string `json:"dates"`
	IsAvailable bool     `json:"is_available"`
}

// HandleSet writes manual availability for the given dates.
func (h *AvailabilityHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	var req setAvailabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	dates := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			respondError(w, fmt.Errorf("%w: dates must be YYYY-MM-DD", domain.ErrValidation))
			return
		}
		dates = append(dates, d)
	}

	if err := h.availabilitySvc.SetAvailability(r.Context(), userFrom(r), mux.Vars(r)["id"], dates, req.IsAvailable); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
