package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopcore/storefront/internal/reviews/app"
	"github.com/shopcore/storefront/internal/reviews/domain"
	"github.com/shopcore/storefront/internal/reviews/ports"
)

// Handler exposes HTTP endpoints for review submission and moderation.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the review handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/reviews", h.handleReviews)
	mux.HandleFunc("/v1/reviews/", h.handleReviewByID)
}

type reviewRequest struct {
	UserID      string `json:"user_id"`
	ProductID   string `json:"product_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
}

func (h *Handler) handleReviews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listReviews(w, r)
	case http.MethodPost:
		h.createReview(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleReviewByID(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/reviews/"), "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "review not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getReview(w, r, id)
	case http.MethodDelete:
		h.deleteReview(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var payload reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	review, err := h.service.CreateReview(r.Context(), domain.Review{
		UserID:      payload.UserID,
		ProductID:   payload.ProductID,
		Title:       payload.Title,
		Description: payload.Description,
		Rating:      payload.Rating,
	})
	if err != nil {
		writeError(w, writeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"review": review})
}

func (h *Handler) getReview(w http.ResponseWriter, r *http.Request, id string) {
	review, err := h.service.GetReview(r.Context(), id)
	if err != nil {
		writeError(w, writeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"review": review})
}

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	filter := ports.ReviewFilter{}
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if productID := r.URL.Query().Get("product_id"); productID != "" {
		filter.ProductID = &productID
	}

	reviews, err := h.service.ListReviews(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteReview(r.Context(), id); err != nil {
		writeError(w, writeStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeStatus maps review errors onto HTTP status codes.
func writeStatus(err error) int {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUserRequired),
		errors.Is(err, domain.ErrDescriptionRequired),
		errors.Is(err, domain.ErrInvalidRating):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
