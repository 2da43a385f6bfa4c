package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avolkov/pos-admin/internal/model"
)

func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// Money fields are serialized as decimal strings with two fraction digits to
// avoid binary floating-point round-trip loss.

type businessResponse struct {
	ID              int64   `json:"id"`
	BusinessName    string  `json:"business_name"`
	ContactEmail    string  `json:"contact_email"`
	Username        string  `json:"username"`
	Status          string  `json:"status"`
	CurrencySymbol  string  `json:"currency_symbol"`
	BusinessAddress string  `json:"business_address"`
	BusinessPhone   string  `json:"business_phone"`
	ReceiptFooter   string  `json:"receipt_footer"`
	TaxRatePercent  string  `json:"tax_rate_percent"`
	CreatedAt       string  `json:"created_at"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	ApprovedBy      *int64  `json:"approved_by,omitempty"`
}

func toBusinessResponse(b *model.Business) businessResponse {
	resp := businessResponse{
		ID:              b.ID,
		BusinessName:    b.BusinessName,
		ContactEmail:    b.ContactEmail,
		Username:        b.Username,
		Status:          string(b.Status),
		CurrencySymbol:  b.CurrencySymbol,
		BusinessAddress: b.BusinessAddress,
		BusinessPhone:   b.BusinessPhone,
		ReceiptFooter:   b.ReceiptFooter,
		TaxRatePercent:  b.TaxRate.StringFixed(2),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
	if b.ApprovedAt != nil {
		s := b.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &s
	}
	if b.ApprovedBy != nil {
		resp.ApprovedBy = b.ApprovedBy
	}
	return resp
}

type productResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
	ImageURL string `json:"image_url,omitempty"`
	IsActive bool   `json:"is_active"`
}

func toProductResponse(p *model.Product) productResponse {
	return productResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price.StringFixed(2),
		Category: p.Category,
		Stock:    p.Stock,
		ImageURL: p.ImageURL,
		IsActive: p.IsActive,
	}
}

type transactionItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type transactionResponse struct {
	ID            int64                     `json:"id"`
	ReceiptNumber string                    `json:"receipt_number"`
	Items         []transactionItemResponse `json:"items"`
	Subtotal      string                    `json:"subtotal"`
	Tax           string                    `json:"tax"`
	Total         string                    `json:"total"`
	PaymentMethod string                    `json:"payment_method"`
	CreatedAt     string                    `json:"created_at"`
}

func toTransactionResponse(t *model.Transaction) transactionResponse {
	items := make([]transactionItemResponse, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, transactionItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
		})
	}

	return transactionResponse{
		ID:            t.ID,
		ReceiptNumber: t.ReceiptNumber,
		Items:         items,
		Subtotal:      t.Subtotal.StringFixed(2),
		Tax:           t.Tax.StringFixed(2),
		Total:         t.Total.StringFixed(2),
		PaymentMethod: string(t.PaymentMethod),
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
}

type dailySummaryResponse struct {
	Transactions          []transactionResponse `json:"transactions"`
	TotalSales            string                `json:"total_sales"`
	TotalTransactionCount int                   `json:"total_transaction_count"`
}

type principalResponse struct {
	Role     string            `json:"role"`
	Admin    *adminResponse    `json:"admin,omitempty"`
	Business *businessResponse `json:"business,omitempty"`
}

type adminResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func toPrincipalResponse(p *model.Principal) principalResponse {
	resp := principalResponse{Role: string(p.Kind)}
	if p.Admin != nil {
		resp.Admin = &adminResponse{ID: p.Admin.ID, Username: p.Admin.Username}
	}
	if p.Business != nil {
		b := toBusinessResponse(p.Business)
		resp.Business = &b
	}
	return resp
}
