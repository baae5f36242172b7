package http

import (
	"net/http"

	"homywork-server/internal/domain"
	"homywork-server/internal/service"

	"github.com/gorilla/mux"
)

// ReviewHandler serves guest reviews.
type ReviewHandler struct {
	reviewSvc service.ReviewService
}

func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

type createReviewRequest struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	review, err := h.reviewSvc.CreateReview(r.Context(), userFrom(r).ID, mux.Vars(r)["id"], req.Rating, req.Comment)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

type propertyReviewsResponse struct {
	Reviews       []domain.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
}

func (h *ReviewHandler) HandleListByProperty(w http.ResponseWriter, r *http.Request) {
	reviews, avg, err := h.reviewSvc.ListPropertyReviews(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, propertyReviewsResponse{
		Reviews:       reviews,
		AverageRating: avg,
	})
}
