package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopcore/storefront/internal/catalog/app"
	"github.com/shopcore/storefront/internal/catalog/domain"
	"github.com/shopcore/storefront/internal/catalog/ports"
)

// Handler exposes HTTP endpoints for catalog browsing and admin writes.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the catalog handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/products", h.handleProducts)
	mux.HandleFunc("/v1/products/", h.handleProductByID)
	mux.HandleFunc("/v1/categories", h.handleCategories)
	mux.HandleFunc("/v1/categories/", h.handleCategoryByID)
}

type productRequest struct {
	Name               string `json:"name"`
	PathURL            string `json:"path_url"`
	Description        string `json:"description"`
	Thumbnail          string `json:"thumbnail"`
	PriceCents         int64  `json:"price_cents"`
	DiscountPriceCents *int64 `json:"discount_price_cents"`
	Stock              int    `json:"stock"`
	Brand              string `json:"brand"`
	CategoryID         string `json:"category_id"`
}

func (req productRequest) toDomain(id string) domain.Product {
	return domain.Product{
		ID:                 id,
		Name:               req.Name,
		PathURL:            req.PathURL,
		Description:        req.Description,
		Thumbnail:          req.Thumbnail,
		PriceCents:         req.PriceCents,
		DiscountPriceCents: req.DiscountPriceCents,
		Stock:              req.Stock,
		Brand:              req.Brand,
		CategoryID:         req.CategoryID,
	}
}

func (h *Handler) handleProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listProducts(w, r)
	case http.MethodPost:
		h.createProduct(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleProductByID(w http.ResponseWriter, r *http.Request) {
	trimmed := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/products/"), "/")
	if trimmed == "" {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	// Slug lookups live under /v1/products/path/{slug}.
	if slug, ok := strings.CutPrefix(trimmed, "path/"); ok {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.getProductByPath(w, r, slug)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getProduct(w, r, trimmed)
	case http.MethodPut:
		h.updateProduct(w, r, trimmed)
	case http.MethodDelete:
		h.deleteProduct(w, r, trimmed)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var payload productRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	product, err := h.service.CreateProduct(r.Context(), payload.toDomain(""))
	if err != nil {
		writeError(w, writeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"product": product})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request, id string) {
	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, writeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

func (h *Handler) getProductByPath(w http.ResponseWriter, r *http.Request, slug string) {
	product, err := h.service.GetProductByPath(r.Context(), slug)
	if err != nil {
		writeError(w, writeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	filter := ports.ProductFilter{}
	if category := r.URL.Query().Get("category_id"); category != "" {
		filter.CategoryID = &category
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	if pageParam := r.URL.Query().Get("page"); pageParam != "" {
		if page, err := strconv.Atoi(pageParam); err == nil {
			filter.Page = page
		}
	}
	if pageSizeParam := r.URL.Query().Get("page_size"); pageSizeParam != "" {
		if pageSize, err := strconv.Atoi(pageSizeParam); err == nil {
			filter.PageSize = pageSize
		}
	}

	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request, id string) {
	var payload productRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), payload.toDomain(id))
	if err != nil {
		writeError(w, writeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, writeStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type categoryRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listCategories(w, r)
	case http.MethodPost:
		h.createCategory(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleCategoryByID(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/categories/"), "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getCategory(w, r, id)
	case http.MethodPut:
		h.updateCategory(w, r, id)
	case http.MethodDelete:
		h.deleteCategory(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	category, err := h.service.CreateCategory(r.Context(), domain.Category{Name: payload.Name, Image: payload.Image})
	if err != nil {
		writeError(w, writeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"category": category})
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request, id string) {
	category, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		writeError(w, writeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": category})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request, id string) {
	var payload categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), domain.Category{ID: id, Name: payload.Name, Image: payload.Image})
	if err != nil {
		writeError(w, writeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": category})
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, writeStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeStatus maps catalog errors onto HTTP status codes.
func writeStatus(err error) int {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrPathRequired),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidDiscount),
		errors.Is(err, domain.ErrNegativeStock):
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
