package http

import (
	"net/http"

	"homywork-server/internal/domain"
	"homywork-server/internal/service"

	"github.com/gorilla/mux"
)

// AdminHandler serves the moderation surface. Every route behind it is
// wrapped in RequireRole(admin).
type AdminHandler struct {
	adminSvc  service.AdminService
	payoutSvc service.PayoutService
}

func NewAdminHandler(adminSvc service.AdminService, payoutSvc service.PayoutService) *AdminHandler {
	return &AdminHandler{
		adminSvc:  adminSvc,
		payoutSvc: payoutSvc,
	}
}

func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminSvc.ListUsers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

type setRoleRequest struct {
	Role string `json:"role"`
}

func (h *AdminHandler) HandleSetUserRole(w http.ResponseWriter, r *http.Request) {
	var req setRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.adminSvc.SetUserRole(r.Context(), mux.Vars(r)["id"], domain.UserRole(req.Role))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) HandleListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.adminSvc.ListProperties(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, properties)
}

type setPropertyStatusRequest struct {
	IsActive bool `json:"is_active"`
}

func (h *AdminHandler) HandleSetPropertyStatus(w http.ResponseWriter, r *http.Request) {
	var req setPropertyStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	property, err := h.adminSvc.SetPropertyStatus(r.Context(), mux.Vars(r)["id"], req.IsActive)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, property)
}

// HandleRunPayouts triggers a settlement run outside the schedule. Safe to
// race the cron job: each booking is claimed before its transfer.
func (h *AdminHandler) HandleRunPayouts(w http.ResponseWriter, r *http.Request) {
	summary, err := h.payoutSvc.ProcessScheduledPayouts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
