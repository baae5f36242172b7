package http

import (
	"net/http"

	"homywork-server/internal/service"

	"github.com/gorilla/mux"
)

// CalendarSyncHandler manages external ICS feed links for a property.
type CalendarSyncHandler struct {
	syncSvc service.CalendarSyncService
}

func NewCalendarSyncHandler(syncSvc service.CalendarSyncService) *CalendarSyncHandler {
	return &CalendarSyncHandler{syncSvc: syncSvc}
}

type createSyncRequest struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

func (h *CalendarSyncHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createSyncRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	sync, err := h.syncSvc.CreateSync(r.Context(), userFrom(r), mux.Vars(r)["id"], req.Platform, req.URL)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sync)
}

func (h *CalendarSyncHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	syncs, err := h.syncSvc.ListSyncs(r.Context(), userFrom(r), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, syncs)
}

func (h *CalendarSyncHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.syncSvc.DeleteSync(r.Context(), userFrom(r), mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleSyncNow triggers an immediate refresh of one feed.
func (h *CalendarSyncHandler) HandleSyncNow(w http.ResponseWriter, r *http.Request) {
	result, err := h.syncSvc.SyncNow(r.Context(), userFrom(r), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
