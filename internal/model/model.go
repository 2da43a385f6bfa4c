// Package model contains the domain entities of the POS administration service.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminUser represents a platform administrator.
type AdminUser struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// BusinessStatus describes the approval state of a POS business.
type BusinessStatus string

const (
	BusinessStatusPending  BusinessStatus = "pending"
	BusinessStatusApproved BusinessStatus = "approved"
	BusinessStatusRejected BusinessStatus = "rejected"
)

// Business represents a registered POS business (tenant).
type Business struct {
	ID              int64
	BusinessName    string
	ContactEmail    string
	Username        string
	PasswordHash    string
	Status          BusinessStatus
	CurrencySymbol  string
	BusinessAddress string
	BusinessPhone   string
	ReceiptFooter   string
	TaxRate         decimal.Decimal
	CreatedAt       time.Time
	ApprovedAt      *time.Time
	ApprovedBy      *int64
}

// Product is a catalog entry owned by exactly one business.
type Product struct {
	ID         int64
	BusinessID int64
	Name       string
	Price      decimal.Decimal
	Category   string
	Stock      int
	ImageURL   string
	IsActive   bool
}

// PaymentMethod is a label attached to a transaction; no gateway is involved.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

// TransactionItem is one line of a persisted transaction. Name and unit price
// are captured at checkout time so the receipt survives later catalog edits.
type TransactionItem struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Transaction is an immutable record of a completed checkout.
type Transaction struct {
	ID            int64
	BusinessID    int64
	ReceiptNumber string
	Items         []TransactionItem
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	CreatedAt     time.Time
}

// CartItem is a client-submitted line before server-side validation. Product id
// and quantity are the only payment-affecting inputs taken from the client.
type CartItem struct {
	ProductID int64
	Quantity  int
}

// PrincipalKind tags the two kinds of authenticated identity.
type PrincipalKind string

const (
	PrincipalAdmin PrincipalKind = "admin"
	PrincipalPOS   PrincipalKind = "pos"
)

// Principal is the identity attached to a session. Exactly one of Admin or
// Business is non-nil, matching Kind.
type Principal struct {
	Kind     PrincipalKind
	Admin    *AdminUser
	Business *Business
}

// Session is a server-side session record; the token is the opaque cookie value.
type Session struct {
	Token       string
	Kind        PrincipalKind
	PrincipalID int64
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// DailySummary aggregates one business day of transactions.
type DailySummary struct {
	Transactions          []Transaction
	TotalSales            decimal.Decimal
	TotalTransactionCount int
}

// AdminStats counts businesses by approval status.
type AdminStats struct {
	TotalPOS    int64 `json:"total_pos"`
	PendingPOS  int64 `json:"pending_pos"`
	ApprovedPOS int64 `json:"approved_pos"`
	RejectedPOS int64 `json:"rejected_pos"`
}
