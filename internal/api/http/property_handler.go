package http

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"homywork-server/internal/domain"
	"homywork-server/internal/service"

	"github.com/gorilla/mux"
)

// PropertyHandler serves the public catalog and the host's listing CRUD.
type PropertyHandler struct {
	propertySvc service.PropertyService
}

func NewPropertyHandler(propertySvc service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertySvc: propertySvc}
}

// propertyRequest is the host's create/update payload. Prices cross the API
// in euros and are stored as cents.
type propertyRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	City          string   `json:"city"`
	Address       string   `json:"address"`
	PricePerNight float64  `json:"price_per_night"`
	MaxGuests     int32    `json:"max_guests"`
	Bedrooms      int32    `json:"bedrooms"`
	Images        []string `json:"images"`
	Amenities     []string `json:"amenities"`
}

func (req *propertyRequest) toDomain() *domain.Property {
	return &domain.Property{
		Title:              req.Title,
		Description:        req.Description,
		City:               req.City,
		Address:            req.Address,
		PricePerNightCents: eurosToCents(req.PricePerNight),
		MaxGuests:          req.MaxGuests,
		Bedrooms:           req.Bedrooms,
		Images:             req.Images,
		Amenities:          req.Amenities,
	}
}

// HandleListPublic serves the public catalog. Optional filters: city and
// max_price (euros per night).
func (h *PropertyHandler) HandleListPublic(w http.ResponseWriter, r *http.Request) {
	filter := domain.PropertyFilter{
		City: r.URL.Query().Get("city"),
	}
	if raw := r.URL.Query().Get("max_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			respondError(w, fmt.Errorf("%w: max_price must be a non-negative number", domain.ErrValidation))
			return
		}
		filter.MaxPriceCents = eurosToCents(price)
	}

	properties, err := h.propertySvc.ListPublic(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, properties)
}

func (h *PropertyHandler) HandleGetPublic(w http.ResponseWriter, r *http.Request) {
	property, err := h.propertySvc.GetPublic(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, property)
}

func (h *PropertyHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	properties, err := h.propertySvc.ListByHost(r.Context(), userFrom(r).ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, properties)
}

func (h *PropertyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	property := req.toDomain()
	if err := h.propertySvc.Create(r.Context(), userFrom(r), property); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, property)
}

func (h *PropertyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	property := req.toDomain()
	property.ID = mux.Vars(r)["id"]
	updated, err := h.propertySvc.Update(r.Context(), userFrom(r), property)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *PropertyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.propertySvc.Delete(r.Context(), userFrom(r), mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// eurosToCents converts a euro amount to integer cents, rounding to the
// nearest cent.
func eurosToCents(euros float64) int64 {
	return int64(math.Round(euros * 100))
}
