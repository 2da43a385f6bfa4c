package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/pos-admin/internal/middleware"
	"github.com/avolkov/pos-admin/internal/model"
	"github.com/avolkov/pos-admin/internal/service"
)

func businessFromContext(r *http.Request) (*model.Business, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok || p.Kind != model.PrincipalPOS || p.Business == nil {
		return nil, false
	}
	return p.Business, true
}

type productRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Stock    int             `json:"stock"`
	ImageURL string          `json:"image_url"`
	IsActive *bool           `json:"is_active"`
}

func (req *productRequest) toInput() service.ProductInput {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return service.ProductInput{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Stock:    req.Stock,
		ImageURL: req.ImageURL,
		IsActive: active,
	}
}

// ListCatalog returns the caller's catalog; ?all=true includes inactive entries.
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	b, ok := businessFromContext(r)
	if !ok {
		h.writeJSON(w, http.StatusForbidden, errorResponse{Error: "POS access required"})
		return
	}

	activeOnly := r.URL.Query().Get("all") != "true"

	products, err := h.service.ListCatalog(r.Context(), b.ID, activeOnly)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for i := range products {
		resp = append(resp, toProductResponse(&products[i]))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// CreateProduct adds a catalog entry to the caller's catalog.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	b, ok := businessFromContext(r)
	if !ok {
		h.writeJSON(w, http.StatusForbidden, errorResponse{Error: "POS access required"})
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.service.CreateProduct(r.Context(), b.ID, req.toInput())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toProductResponse(p))
}

// UpdateProduct rewrites one of the caller's catalog entries.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	b, ok := businessFromContext(r)
	if !ok {
		h.writeJSON(w, http.StatusForbidden, errorResponse{Error: "POS access required"})
		return
	}

	id, err := idParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.service.UpdateProduct(r.Context(), b.ID, id, req.toInput())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toProductResponse(p))
}

// DeleteProduct removes one of the caller's catalog entries.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	b, ok := businessFromContext(r)
	if !ok {
		h.writeJSON(w, http.StatusForbidden, errorResponse{Error: "POS access required"})
		return
	}

	id, err := idParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	if err := h.service.DeleteProduct(r.Context(), b.ID, id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type setStockRequest struct {
	Stock int `json:"stock"`
}

// SetStock overwrites a product's stock level (manual inventory correction).
func (h *Handler) SetStock(w http.ResponseWriter, r *http.Request) {
	b, ok := businessFromContext(r)
	if !ok {
		h.writeJSON(w, http.StatusForbidden, errorResponse{Error: "POS access required"})
		return
	}

	id, err := idParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	var req setStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.service.SetStock(r.Context(), b.ID, id, req.Stock)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toProductResponse(p))
}

type checkoutItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type checkoutRequest struct {
	Items         []checkoutItemRequest `json:"items"`
	PaymentMethod string                `json:"payment_method"`
}

// Checkout rings up a cart and returns the persisted transaction for receipt
// rendering. Client-side totals, if submitted, are ignored: the server
// recomputes everything from the catalog.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	b, ok := businessFromContext(r)
	if !ok {
		h.writeJSON(w, http.StatusForbidden, errorResponse{Error: "POS access required"})
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	cart := make([]model.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		cart = append(cart, model.CartItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	t, err := h.service.Checkout(r.Context(), b.ID, cart, model.PaymentMethod(req.PaymentMethod))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toTransactionResponse(t))
}

// DailySales returns the caller's transactions and totals for one calendar day
// (?date=YYYY-MM-DD, default today).
func (h *Handler) DailySales(w http.ResponseWriter, r *http.Request) {
	b, ok := businessFromContext(r)
	if !ok {
		h.writeJSON(w, http.StatusForbidden, errorResponse{Error: "POS access required"})
		return
	}

	date := time.Now()
	if q := r.URL.Query().Get("date"); q != "" {
		parsed, err := time.ParseInLocation("2006-01-02", q, time.Local)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	summary, err := h.service.DailySales(r.Context(), b.ID, date)
	if err != nil {
		h.writeError(w, err)
		return
	}

	transactions := make([]transactionResponse, 0, len(summary.Transactions))
	for i := range summary.Transactions {
		transactions = append(transactions, toTransactionResponse(&summary.Transactions[i]))
	}

	h.writeJSON(w, http.StatusOK, dailySummaryResponse{
		Transactions:          transactions,
		TotalSales:            summary.TotalSales.StringFixed(2),
		TotalTransactionCount: summary.TotalTransactionCount,
	})
}

// RangeSales returns the caller's transactions for an inclusive date range
// (?start=YYYY-MM-DD&end=YYYY-MM-DD).
func (h *Handler) RangeSales(w http.ResponseWriter, r *http.Request) {
	b, ok := businessFromContext(r)
	if !ok {
		h.writeJSON(w, http.StatusForbidden, errorResponse{Error: "POS access required"})
		return
	}

	start, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("start"), time.Local)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "start must be YYYY-MM-DD"})
		return
	}

	end, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("end"), time.Local)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "end must be YYYY-MM-DD"})
		return
	}

	transactions, err := h.service.RangeSales(r.Context(), b.ID, start, end)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := make([]transactionResponse, 0, len(transactions))
	for i := range transactions {
		resp = append(resp, toTransactionResponse(&transactions[i]))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

type updateCurrencyRequest struct {
	CurrencySymbol string `json:"currency_symbol"`
}

// UpdateCurrency changes the caller's currency symbol.
func (h *Handler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	b, ok := businessFromContext(r)
	if !ok {
		h.writeJSON(w, http.StatusForbidden, errorResponse{Error: "POS access required"})
		return
	}

	var req updateCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.service.UpdateCurrency(r.Context(), b.ID, req.CurrencySymbol); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateBusinessInfoRequest struct {
	BusinessName    string          `json:"business_name"`
	BusinessAddress string          `json:"business_address"`
	BusinessPhone   string          `json:"business_phone"`
	ReceiptFooter   string          `json:"receipt_footer"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
}

// UpdateBusinessInfo changes the caller's profile and tax rate.
func (h *Handler) UpdateBusinessInfo(w http.ResponseWriter, r *http.Request) {
	b, ok := businessFromContext(r)
	if !ok {
		h.writeJSON(w, http.StatusForbidden, errorResponse{Error: "POS access required"})
		return
	}

	var req updateBusinessInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	err := h.service.UpdateBusinessInfo(r.Context(), b.ID, service.BusinessInfoUpdate{
		BusinessName:    req.BusinessName,
		BusinessAddress: req.BusinessAddress,
		BusinessPhone:   req.BusinessPhone,
		ReceiptFooter:   req.ReceiptFooter,
		TaxRate:         req.TaxRatePercent,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
