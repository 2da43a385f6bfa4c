// Package service implements the business logic of the POS administration service.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/pos-admin/internal/model"
)

// ErrInvalidCredentials is returned when a login or password does not match.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotApproved is returned when a business authenticates correctly but is not approved.
	ErrNotApproved = errors.New("business is not approved")
	// ErrUnauthenticated is returned when a session token is missing, unknown or expired.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrEmptyOrder is returned when a checkout cart contains no items.
	ErrEmptyOrder = errors.New("empty order")
	// ErrValidation wraps malformed or out-of-range input.
	ErrValidation = errors.New("validation error")
	// ErrInvalidTransition is returned for a disallowed approval-state transition.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Repository describes the data-access contract used by the service.
type Repository interface {
	Close() error

	CreateAdmin(ctx context.Context, username, passwordHash string) (int64, error)
	GetAdminByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	GetAdminByID(ctx context.Context, id int64) (*model.AdminUser, error)

	CreateBusiness(ctx context.Context, b *model.Business) (int64, error)
	GetBusinessByUsername(ctx context.Context, username string) (*model.Business, error)
	GetBusinessByID(ctx context.Context, id int64) (*model.Business, error)
	ListBusinesses(ctx context.Context, status *model.BusinessStatus) ([]model.Business, error)
	SetBusinessStatus(ctx context.Context, id int64, status model.BusinessStatus, approvedAt *time.Time, approvedBy *int64) error
	UpdateBusinessCurrency(ctx context.Context, id int64, symbol string) error
	UpdateBusinessInfo(ctx context.Context, id int64, name, address, phone, footer string, taxRate decimal.Decimal) error
	DeleteBusiness(ctx context.Context, id int64) error
	CountBusinessesByStatus(ctx context.Context) (*model.AdminStats, error)

	CreateProduct(ctx context.Context, p *model.Product) (int64, error)
	GetProduct(ctx context.Context, id, businessID int64) (*model.Product, error)
	ListProducts(ctx context.Context, businessID int64, activeOnly bool) ([]model.Product, error)
	GetProductsByIDs(ctx context.Context, businessID int64, ids []int64) ([]model.Product, error)
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id, businessID int64) error
	SetStock(ctx context.Context, id, businessID int64, stock int) error

	CreateTransaction(ctx context.Context, t *model.Transaction) (*model.Transaction, error)
	GetTransactionsByRange(ctx context.Context, businessID int64, start, end time.Time) ([]model.Transaction, error)

	CreateSession(ctx context.Context, s *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// Service contains the business logic of the POS administration service.
type Service struct {
	repo       Repository
	sessionTTL time.Duration
}

// NewService creates a service over the given repository.
func NewService(repo Repository, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &Service{
		repo:       repo,
		sessionTTL: sessionTTL,
	}
}

// Close releases the service's resources.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}
