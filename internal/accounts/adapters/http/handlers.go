package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopcore/storefront/internal/accounts/app"
	"github.com/shopcore/storefront/internal/accounts/domain"
	"github.com/shopcore/storefront/internal/accounts/ports"
)

// Handler exposes HTTP endpoints for users and their addresses.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the account handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/users", h.handleUsers)
	mux.HandleFunc("/v1/users/", h.handleUserByID)
	mux.HandleFunc("/v1/addresses", h.handleAddresses)
	mux.HandleFunc("/v1/addresses/", h.handleAddressByID)
}

type userRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createUser(w, r)
	case http.MethodGet:
		h.getUserByEmail(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleUserByID(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/users/"), "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, accountStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var payload userRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := h.service.CreateUser(r.Context(), domain.User{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Role:      domain.Role(payload.Role),
	})
	if err != nil {
		writeError(w, accountStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (h *Handler) getUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email query parameter required")
		return
	}

	user, err := h.service.GetUserByEmail(r.Context(), email)
	if err != nil {
		writeError(w, accountStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

type addressRequest struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	MobileNumber   string `json:"mobile_number"`
	PinCode        string `json:"pin_code"`
	Address        string `json:"address"`
	City           string `json:"city"`
	LandMark       string `json:"land_mark"`
	State          string `json:"state"`
	Country        string `json:"country"`
	AltPhoneNumber string `json:"alt_phone_number"`
}

func (req addressRequest) toDomain(id string) domain.Address {
	return domain.Address{
		ID:             id,
		UserID:         req.UserID,
		Name:           req.Name,
		MobileNumber:   req.MobileNumber,
		PinCode:        req.PinCode,
		Address:        req.Address,
		City:           req.City,
		LandMark:       req.LandMark,
		State:          req.State,
		Country:        req.Country,
		AltPhoneNumber: req.AltPhoneNumber,
	}
}

func (h *Handler) handleAddresses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createAddress(w, r)
	case http.MethodGet:
		h.listAddresses(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleAddressByID(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/addresses/"), "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "address not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getAddress(w, r, id)
	case http.MethodPut:
		h.updateAddress(w, r, id)
	case http.MethodDelete:
		h.deleteAddress(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) createAddress(w http.ResponseWriter, r *http.Request) {
	var payload addressRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	address, err := h.service.CreateAddress(r.Context(), payload.toDomain(""))
	if err != nil {
		writeError(w, accountStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"address": address})
}

func (h *Handler) getAddress(w http.ResponseWriter, r *http.Request, id string) {
	address, err := h.service.GetAddress(r.Context(), id)
	if err != nil {
		writeError(w, accountStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"address": address})
}

func (h *Handler) listAddresses(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id query parameter required")
		return
	}

	addresses, err := h.service.ListAddresses(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"addresses": addresses})
}

func (h *Handler) updateAddress(w http.ResponseWriter, r *http.Request, id string) {
	var payload addressRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	address, err := h.service.UpdateAddress(r.Context(), callerID(r, payload.UserID), payload.toDomain(id))
	if err != nil {
		writeError(w, accountStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"address": address})
}

func (h *Handler) deleteAddress(w http.ResponseWriter, r *http.Request, id string) {
	caller := callerID(r, r.URL.Query().Get("user_id"))
	if err := h.service.DeleteAddress(r.Context(), caller, id); err != nil {
		writeError(w, accountStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// callerID resolves the acting user. A gateway in front of this service
// injects X-User-ID; the body/query value is the fallback for direct calls.
func callerID(r *http.Request, fallback string) string {
	if header := r.Header.Get("X-User-ID"); header != "" {
		return header
	}
	return fallback
}

func accountStatus(err error) int {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, ports.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrFirstNameRequired),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrUserIDRequired),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrMobileRequired),
		errors.Is(err, domain.ErrPinCodeRequired),
		errors.Is(err, domain.ErrAddressRequired),
		errors.Is(err, domain.ErrCityRequired):
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
