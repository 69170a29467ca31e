package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopcore/storefront/internal/orders/app"
	"github.com/shopcore/storefront/internal/orders/app/commands"
	"github.com/shopcore/storefront/internal/orders/app/queries"
	"github.com/shopcore/storefront/internal/orders/domain"
	"github.com/shopcore/storefront/internal/orders/ports"
)

// Handler exposes HTTP endpoints for order operations.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the order handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/orders", h.handleOrders)
	mux.HandleFunc("/v1/orders/", h.handleOrderByID)
}

func (h *Handler) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.placeOrder(w, r)
	case http.MethodGet:
		h.listOrders(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	trimmed := strings.TrimPrefix(r.URL.Path, "/v1/orders/")
	if trimmed == "" {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	if strings.HasSuffix(trimmed, "/status") {
		id := strings.TrimSuffix(trimmed, "/status")
		id = strings.TrimSuffix(id, "/")
		if id == "" {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		if r.Method != http.MethodPatch {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.updateStatus(w, r, id)
		return
	}

	id := strings.TrimSuffix(trimmed, "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.getOrder(w, r, id)
}

// placeOrderRequest is the wire payload for checkout. The total and status
// fields are advisory hints; the service recomputes both.
type placeOrderRequest struct {
	UserID            string           `json:"user_id"`
	Items             []placeOrderItem `json:"items"`
	ShippingAddressID string           `json:"shipping_address_id"`
	PaymentMethod     string           `json:"payment_method"`
	TransactionID     string           `json:"transaction_id"`
	TotalAmountCents  int64            `json:"total_amount_cents"`
	OrderStatus       string           `json:"order_status"`
}

type placeOrderItem struct {
	ProductID          string `json:"product_id"`
	Quantity           int    `json:"quantity"`
	PriceCents         int64  `json:"price_cents"`
	DiscountPriceCents *int64 `json:"discount_price_cents"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idemKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idemKey == "" {
		writeError(w, http.StatusBadRequest, "Idempotency-Key header required")
		return
	}

	if stored, err := h.service.GetIdempotentResponse(ctx, idemKey); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	} else if stored != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(stored.StatusCode)
		_, _ = w.Write(stored.Body)
		return
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var payload placeOrderRequest
	if err := decoder.Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	cmd := commands.PlaceOrderCommand{
		UserID:               payload.UserID,
		ShippingAddressID:    payload.ShippingAddressID,
		PaymentMethod:        domain.PaymentMethod(payload.PaymentMethod),
		TransactionID:        payload.TransactionID,
		TotalAmountCentsHint: payload.TotalAmountCents,
		StatusHint:           payload.OrderStatus,
	}
	for _, item := range payload.Items {
		cmd.Items = append(cmd.Items, commands.PlaceOrderItem{
			ProductID:          item.ProductID,
			Quantity:           item.Quantity,
			PriceCents:         item.PriceCents,
			DiscountPriceCents: item.DiscountPriceCents,
		})
	}

	order, err := h.service.PlaceOrder(ctx, cmd)
	if err != nil && order == nil {
		writeError(w, placementStatus(err), err.Error())
		return
	}

	response := map[string]any{"order": order}
	body, err := json.Marshal(response)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stored := ports.StoredResponse{
		StatusCode: http.StatusCreated,
		Body:       body,
		OrderID:    order.ID,
	}

	if err := h.service.SaveIdempotentResponse(ctx, idemKey, stored); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(body)
}

// placementStatus maps placement failures onto HTTP status codes. Every
// failure kind keeps its own human-readable message from the error itself.
func placementStatus(err error) int {
	switch {
	case errors.Is(err, commands.ErrAddressOwnership):
		return http.StatusForbidden
	case errors.Is(err, commands.ErrOrderPersistence):
		return http.StatusInternalServerError
	case errors.Is(err, commands.ErrInvalidUser),
		errors.Is(err, commands.ErrInvalidAddress),
		errors.Is(err, commands.ErrEmptyCart),
		errors.Is(err, commands.ErrNoFulfillableItems):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request, id string) {
	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	query := queries.ListOrdersQuery{}
	if userParam := r.URL.Query().Get("user_id"); userParam != "" {
		query.UserID = &userParam
	}
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := domain.OrderStatus(statusParam)
		query.Status = &status
	}

	if pageParam := r.URL.Query().Get("page"); pageParam != "" {
		if page, err := strconv.Atoi(pageParam); err == nil {
			query.Page = page
		}
	}

	if pageSizeParam := r.URL.Query().Get("page_size"); pageSizeParam != "" {
		if pageSize, err := strconv.Atoi(pageSizeParam); err == nil {
			query.PageSize = pageSize
		}
	}

	orders, err := h.service.ListOrders(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request, id string) {
	var payload updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), id, domain.OrderStatus(payload.Status))
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, commands.ErrInvalidTransition):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
