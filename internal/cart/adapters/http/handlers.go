package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopcore/storefront/internal/cart/app"
	"github.com/shopcore/storefront/internal/cart/domain"
	"github.com/shopcore/storefront/internal/cart/ports"
)

// Handler exposes HTTP endpoints for user and guest carts.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the cart handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/cart", h.handleCart)
	mux.HandleFunc("/v1/cart/items", h.handleItems)
	mux.HandleFunc("/v1/cart/items/", h.handleItemByID)
	mux.HandleFunc("/v1/cart/merge", h.handleMerge)
	mux.HandleFunc("/v1/guest-cart", h.handleGuestCart)
	mux.HandleFunc("/v1/guest-cart/items", h.handleGuestItems)
}

// userID resolves the acting user from the gateway-injected header, falling
// back to the query parameter for direct calls.
func userID(r *http.Request) string {
	if header := r.Header.Get("X-User-ID"); header != "" {
		return header
	}
	return r.URL.Query().Get("user_id")
}

func guestToken(r *http.Request) string {
	if header := r.Header.Get("X-Guest-Token"); header != "" {
		return header
	}
	return r.URL.Query().Get("token")
}

func (h *Handler) handleCart(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		writeError(w, http.StatusBadRequest, "user identification required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		cart, err := h.service.GetCart(r.Context(), user)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
	case http.MethodDelete:
		if err := h.service.ClearCart(r.Context(), user); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type itemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) handleItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	user := userID(r)
	if user == "" {
		writeError(w, http.StatusBadRequest, "user identification required")
		return
	}

	var payload itemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	added, err := h.service.AddItem(r.Context(), user, domain.Item{ProductID: payload.ProductID, Quantity: payload.Quantity})
	if err != nil {
		writeError(w, cartStatus(err), err.Error())
		return
	}
	if !added {
		writeJSON(w, http.StatusOK, map[string]any{"added": false, "message": "already in cart"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"added": true})
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) handleItemByID(w http.ResponseWriter, r *http.Request) {
	productID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/cart/items/"), "/")
	if productID == "" {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	user := userID(r)
	if user == "" {
		writeError(w, http.StatusBadRequest, "user identification required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var payload quantityRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		if err := h.service.UpdateItemQuantity(r.Context(), user, productID, payload.Quantity); err != nil {
			writeError(w, cartStatus(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"updated": true})
	case http.MethodDelete:
		if err := h.service.RemoveItem(r.Context(), user, productID); err != nil {
			writeError(w, cartStatus(err), err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type mergeRequest struct {
	Token string `json:"token"`
}

func (h *Handler) handleMerge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	user := userID(r)
	if user == "" {
		writeError(w, http.StatusBadRequest, "user identification required")
		return
	}

	var payload mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if payload.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.service.MergeGuestCart(r.Context(), payload.Token, user); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cart, err := h.service.GetCart(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

func (h *Handler) handleGuestCart(w http.ResponseWriter, r *http.Request) {
	token := guestToken(r)
	if token == "" {
		writeError(w, http.StatusBadRequest, "guest token required")
		return
	}

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cart, err := h.service.GetGuestCart(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

func (h *Handler) handleGuestItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	token := guestToken(r)
	if token == "" {
		writeError(w, http.StatusBadRequest, "guest token required")
		return
	}

	var payload itemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	added, err := h.service.AddGuestItem(r.Context(), token, domain.Item{ProductID: payload.ProductID, Quantity: payload.Quantity})
	if err != nil {
		writeError(w, cartStatus(err), err.Error())
		return
	}
	if !added {
		writeJSON(w, http.StatusOK, map[string]any{"added": false, "message": "already in cart"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"added": true})
}

func cartStatus(err error) int {
	switch {
	case errors.Is(err, ports.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProductIDRequired), errors.Is(err, domain.ErrInvalidQuantity):
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
