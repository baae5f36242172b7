package http

import (
	"net/http"

	"homywork-server/internal/service"
)

// UserHandler serves role self-service and payout onboarding.
type UserHandler struct {
	userSvc service.UserService
	baseURL string
}

func NewUserHandler(userSvc service.UserService, baseURL string) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
		baseURL: baseURL,
	}
}

// HandleBecomeHost promotes the caller from guest to host.
func (h *UserHandler) HandleBecomeHost(w http.ResponseWriter, r *http.Request) {
	user, err := h.userSvc.BecomeHost(r.Context(), userFrom(r).ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// HandleStripeOnboarding returns an onboarding link for the caller's
// connected account, creating the account on first call.
func (h *UserHandler) HandleStripeOnboarding(w http.ResponseWriter, r *http.Request) {
	refreshURL := h.baseURL + "/host/payouts?refresh=1"
	returnURL := h.baseURL + "/host/payouts?onboarded=1"

	link, err := h.userSvc.StartStripeOnboarding(r.Context(), userFrom(r).ID, refreshURL, returnURL)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": link})
}

// HandleStripeStatus re-reads the connected account and returns the user
// with the current onboarding flag.
func (h *UserHandler) HandleStripeStatus(w http.ResponseWriter, r *http.Request) {
	user, err := h.userSvc.RefreshStripeStatus(r.Context(), userFrom(r).ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
