package http

import (
	"fmt"
	"net/http"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/service"

	"github.com/gorilla/mux"
)

// BookingHandler serves the guest booking lifecycle and the host's booking
// views.
type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

const dateLayout = "2006-01-02"

type createBookingRequest struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int32  `json:"guests"`
}

func (h *BookingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		respondError(w, fmt.Errorf("%w: check_in must be YYYY-MM-DD", domain.ErrValidation))
		return
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		respondError(w, fmt.Errorf("%w: check_out must be YYYY-MM-DD", domain.ErrValidation))
		return
	}

	booking, err := h.bookingSvc.CreateBooking(r.Context(), userFrom(r).ID, service.CreateBookingInput{
		PropertyID: req.PropertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.Guests,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingSvc.ListGuestBookings(r.Context(), userFrom(r).ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) HandleListHost(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingSvc.ListHostBookings(r.Context(), userFrom(r).ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.GetBooking(r.Context(), userFrom(r), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) HandleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	pi, err := h.bookingSvc.CreatePaymentIntent(r.Context(), userFrom(r).ID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"payment_intent_id": pi.ID,
		"client_secret":     pi.ClientSecret,
	})
}

type confirmBookingRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

// HandleConfirm finalizes payment for a pending booking. A booking whose
// state moved since the client read it yields 409; re-reading and retrying
// is the client's job.
func (h *BookingHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	booking, err := h.bookingSvc.ConfirmBooking(r.Context(), userFrom(r).ID, mux.Vars(r)["id"], req.PaymentIntentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.CancelBooking(r.Context(), userFrom(r).ID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}
