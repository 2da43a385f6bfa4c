// Package handler contains the HTTP handlers of the POS administration API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/avolkov/pos-admin/internal/middleware"
	"github.com/avolkov/pos-admin/internal/model"
	"github.com/avolkov/pos-admin/internal/repository"
	"github.com/avolkov/pos-admin/internal/service"
)

// Service defines the business-logic contract used by the HTTP handlers.
type Service interface {
	AuthenticateAdmin(ctx context.Context, username, password string) (*model.Session, error)
	AuthenticateBusiness(ctx context.Context, username, password string) (*model.Session, error)
	Logout(ctx context.Context, token string) error

	RegisterBusiness(ctx context.Context, req service.RegisterBusinessRequest) (*model.Business, error)
	ListBusinesses(ctx context.Context, status *model.BusinessStatus) ([]model.Business, error)
	GetBusiness(ctx context.Context, businessID int64) (*model.Business, error)
	ApproveBusiness(ctx context.Context, businessID, adminID int64) (*model.Business, error)
	RejectBusiness(ctx context.Context, businessID, adminID int64) (*model.Business, error)
	DeleteBusiness(ctx context.Context, businessID int64) error
	AdminStats(ctx context.Context) (*model.AdminStats, error)

	ListCatalog(ctx context.Context, businessID int64, activeOnly bool) ([]model.Product, error)
	CreateProduct(ctx context.Context, businessID int64, in service.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, businessID, productID int64, in service.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, businessID, productID int64) error
	SetStock(ctx context.Context, businessID, productID int64, stock int) (*model.Product, error)

	Checkout(ctx context.Context, businessID int64, cart []model.CartItem, method model.PaymentMethod) (*model.Transaction, error)
	DailySales(ctx context.Context, businessID int64, date time.Time) (*model.DailySummary, error)
	RangeSales(ctx context.Context, businessID int64, start, end time.Time) ([]model.Transaction, error)

	UpdateCurrency(ctx context.Context, businessID int64, symbol string) error
	UpdateBusinessInfo(ctx context.Context, businessID int64, upd service.BusinessInfoUpdate) error
}

// Handler implements the HTTP handlers of the POS administration API.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler creates a new HTTP handler set.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

// writeError maps domain errors to HTTP statuses. Internal detail is logged,
// never sent to the client.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrEmptyOrder):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrNotApproved),
		errors.Is(err, service.ErrUnauthenticated):
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrUsernameTaken), errors.Is(err, repository.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidTransition):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrBusinessNotFound), errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrAdminNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("internal error", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin authenticates an administrator and opens a session.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "username and password are required"})
		return
	}

	sess, err := h.service.AuthenticateAdmin(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	middleware.SetSessionCookie(w, sess.Token, sess.ExpiresAt)
	w.WriteHeader(http.StatusNoContent)
}

// POSLogin authenticates an approved POS business and opens a session.
func (h *Handler) POSLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "username and password are required"})
		return
	}

	sess, err := h.service.AuthenticateBusiness(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	middleware.SetSessionCookie(w, sess.Token, sess.ExpiresAt)
	w.WriteHeader(http.StatusNoContent)
}

// Logout deletes the current session server-side.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			h.writeError(w, err)
			return
		}
	}

	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// CurrentPrincipal returns the identity attached to the session.
func (h *Handler) CurrentPrincipal(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	h.writeJSON(w, http.StatusOK, toPrincipalResponse(p))
}

type registerBusinessRequest struct {
	BusinessName string `json:"business_name"`
	ContactEmail string `json:"contact_email"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}

// RegisterBusiness accepts a POS account request; the business starts pending.
func (h *Handler) RegisterBusiness(w http.ResponseWriter, r *http.Request) {
	var req registerBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	b, err := h.service.RegisterBusiness(r.Context(), service.RegisterBusinessRequest{
		BusinessName: req.BusinessName,
		ContactEmail: req.ContactEmail,
		Username:     req.Username,
		Password:     req.Password,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toBusinessResponse(b))
}

// ListPublicBusinesses returns the approved businesses only.
func (h *Handler) ListPublicBusinesses(w http.ResponseWriter, r *http.Request) {
	approved := model.BusinessStatusApproved
	businesses, err := h.service.ListBusinesses(r.Context(), &approved)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]businessResponse, 0, len(businesses))
	for i := range businesses {
		resp = append(resp, toBusinessResponse(&businesses[i]))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// GetPublicBusiness returns one business; non-approved businesses are not
// exposed publicly.
func (h *Handler) GetPublicBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	b, err := h.service.GetBusiness(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if b.Status != model.BusinessStatusApproved {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: repository.ErrBusinessNotFound.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, toBusinessResponse(b))
}
