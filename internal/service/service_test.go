package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/pos-admin/internal/model"
	"github.com/avolkov/pos-admin/internal/password"
	"github.com/avolkov/pos-admin/internal/repository"
)

type stubRepo struct {
	admin    *model.AdminUser
	adminErr error

	business    *model.Business
	businessErr error

	businesses    []model.Business
	businessesErr error

	products []model.Product

	createdBusiness *model.Business
	createdProduct  *model.Product

	createdSession *model.Session
	session        *model.Session
	sessionErr     error
	deletedToken   string

	createdTransaction *model.Transaction
	transactionErr     error

	transactions []model.Transaction

	statusSet        *model.BusinessStatus
	statusApprovedAt *time.Time
	statusApprovedBy *int64

	deletedBusinessID int64

	stats *model.AdminStats
}

func (s *stubRepo) Close() error { return nil }

func (s *stubRepo) CreateAdmin(ctx context.Context, username, passwordHash string) (int64, error) {
	return 1, nil
}

func (s *stubRepo) GetAdminByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	if s.admin == nil || s.admin.Username != username {
		if s.adminErr != nil {
			return nil, s.adminErr
		}
		return nil, repository.ErrAdminNotFound
	}
	return s.admin, s.adminErr
}

func (s *stubRepo) GetAdminByID(ctx context.Context, id int64) (*model.AdminUser, error) {
	if s.admin == nil {
		return nil, repository.ErrAdminNotFound
	}
	return s.admin, nil
}

func (s *stubRepo) CreateBusiness(ctx context.Context, b *model.Business) (int64, error) {
	b.ID = 7
	s.createdBusiness = b
	s.business = b
	return b.ID, nil
}

func (s *stubRepo) GetBusinessByUsername(ctx context.Context, username string) (*model.Business, error) {
	if s.business == nil || s.business.Username != username {
		return nil, repository.ErrBusinessNotFound
	}
	return s.business, s.businessErr
}

func (s *stubRepo) GetBusinessByID(ctx context.Context, id int64) (*model.Business, error) {
	if s.business == nil {
		return nil, repository.ErrBusinessNotFound
	}
	return s.business, s.businessErr
}

func (s *stubRepo) ListBusinesses(ctx context.Context, status *model.BusinessStatus) ([]model.Business, error) {
	return s.businesses, s.businessesErr
}

func (s *stubRepo) SetBusinessStatus(ctx context.Context, id int64, status model.BusinessStatus, approvedAt *time.Time, approvedBy *int64) error {
	s.statusSet = &status
	s.statusApprovedAt = approvedAt
	s.statusApprovedBy = approvedBy
	if s.business != nil {
		s.business.Status = status
		s.business.ApprovedAt = approvedAt
		s.business.ApprovedBy = approvedBy
	}
	return nil
}

func (s *stubRepo) UpdateBusinessCurrency(ctx context.Context, id int64, symbol string) error {
	return nil
}

func (s *stubRepo) UpdateBusinessInfo(ctx context.Context, id int64, name, address, phone, footer string, taxRate decimal.Decimal) error {
	return nil
}

func (s *stubRepo) DeleteBusiness(ctx context.Context, id int64) error {
	s.deletedBusinessID = id
	return nil
}

func (s *stubRepo) CountBusinessesByStatus(ctx context.Context) (*model.AdminStats, error) {
	return s.stats, nil
}

func (s *stubRepo) CreateProduct(ctx context.Context, p *model.Product) (int64, error) {
	p.ID = 11
	s.createdProduct = p
	s.products = append(s.products, *p)
	return p.ID, nil
}

func (s *stubRepo) GetProduct(ctx context.Context, id, businessID int64) (*model.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id && s.products[i].BusinessID == businessID {
			return &s.products[i], nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (s *stubRepo) ListProducts(ctx context.Context, businessID int64, activeOnly bool) ([]model.Product, error) {
	return s.products, nil
}

func (s *stubRepo) GetProductsByIDs(ctx context.Context, businessID int64, ids []int64) ([]model.Product, error) {
	var res []model.Product
	for _, p := range s.products {
		if p.BusinessID != businessID || !p.IsActive {
			continue
		}
		for _, id := range ids {
			if p.ID == id {
				res = append(res, p)
			}
		}
	}
	return res, nil
}

func (s *stubRepo) UpdateProduct(ctx context.Context, p *model.Product) error { return nil }

func (s *stubRepo) DeleteProduct(ctx context.Context, id, businessID int64) error { return nil }

func (s *stubRepo) SetStock(ctx context.Context, id, businessID int64, stock int) error { return nil }

func (s *stubRepo) CreateTransaction(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	if s.transactionErr != nil {
		return nil, s.transactionErr
	}
	persisted := *t
	persisted.ID = 100
	persisted.CreatedAt = time.Now()
	s.createdTransaction = &persisted
	return &persisted, nil
}

func (s *stubRepo) GetTransactionsByRange(ctx context.Context, businessID int64, start, end time.Time) ([]model.Transaction, error) {
	return s.transactions, nil
}

func (s *stubRepo) CreateSession(ctx context.Context, sess *model.Session) error {
	s.createdSession = sess
	return nil
}

func (s *stubRepo) GetSession(ctx context.Context, token string) (*model.Session, error) {
	if s.session == nil {
		if s.sessionErr != nil {
			return nil, s.sessionErr
		}
		return nil, repository.ErrSessionNotFound
	}
	return s.session, s.sessionErr
}

func (s *stubRepo) DeleteSession(ctx context.Context, token string) error {
	s.deletedToken = token
	return nil
}

func mustHash(t *testing.T, pass string) string {
	t.Helper()
	h, err := password.Hash(pass)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return h
}

func approvedBusiness(t *testing.T, taxRate string) *model.Business {
	t.Helper()
	rate, err := decimal.NewFromString(taxRate)
	if err != nil {
		t.Fatalf("parse tax rate: %v", err)
	}
	return &model.Business{
		ID:           1,
		BusinessName: "Cafe A",
		Username:     "cafea",
		PasswordHash: mustHash(t, "secret"),
		Status:       model.BusinessStatusApproved,
		TaxRate:      rate,
	}
}

func TestCheckoutTotals(t *testing.T) {
	repo := &stubRepo{
		business: approvedBusiness(t, "8.5"),
		products: []model.Product{
			{ID: 10, BusinessID: 1, Name: "Latte", Price: decimal.RequireFromString("4.00"), Stock: 1, IsActive: true},
		},
	}
	svc := NewService(repo, time.Hour)

	tx, err := svc.Checkout(context.Background(), 1,
		[]model.CartItem{{ProductID: 10, Quantity: 1}}, model.PaymentMethodCash)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if got := tx.Subtotal.StringFixed(2); got != "4.00" {
		t.Errorf("subtotal = %s, want 4.00", got)
	}
	if got := tx.Tax.StringFixed(2); got != "0.34" {
		t.Errorf("tax = %s, want 0.34", got)
	}
	if got := tx.Total.StringFixed(2); got != "4.34" {
		t.Errorf("total = %s, want 4.34", got)
	}
	if !tx.Total.Equal(tx.Subtotal.Add(tx.Tax)) {
		t.Errorf("total must equal subtotal + tax")
	}
	if tx.ReceiptNumber == "" {
		t.Errorf("receipt number must be generated")
	}
	if len(tx.Items) != 1 || tx.Items[0].Name != "Latte" || tx.Items[0].UnitPrice.StringFixed(2) != "4.00" {
		t.Errorf("unexpected items: %+v", tx.Items)
	}
}

func TestCheckoutMultiItemTotals(t *testing.T) {
	repo := &stubRepo{
		business: approvedBusiness(t, "10"),
		products: []model.Product{
			{ID: 1, BusinessID: 1, Name: "Espresso", Price: decimal.RequireFromString("2.50"), Stock: 10, IsActive: true},
			{ID: 2, BusinessID: 1, Name: "Croissant", Price: decimal.RequireFromString("3.25"), Stock: 10, IsActive: true},
		},
	}
	svc := NewService(repo, time.Hour)

	tx, err := svc.Checkout(context.Background(), 1,
		[]model.CartItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 3},
		}, model.PaymentMethodCard)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	// 2*2.50 + 3*3.25 = 14.75; 10% tax = 1.48 (rounded); total 16.23
	if got := tx.Subtotal.StringFixed(2); got != "14.75" {
		t.Errorf("subtotal = %s, want 14.75", got)
	}
	if got := tx.Tax.StringFixed(2); got != "1.48" {
		t.Errorf("tax = %s, want 1.48", got)
	}
	if got := tx.Total.StringFixed(2); got != "16.23" {
		t.Errorf("total = %s, want 16.23", got)
	}
}

func TestCheckoutZeroTaxRate(t *testing.T) {
	repo := &stubRepo{
		business: approvedBusiness(t, "0"),
		products: []model.Product{
			{ID: 1, BusinessID: 1, Name: "Water", Price: decimal.RequireFromString("1.00"), Stock: 5, IsActive: true},
		},
	}
	svc := NewService(repo, time.Hour)

	tx, err := svc.Checkout(context.Background(), 1,
		[]model.CartItem{{ProductID: 1, Quantity: 1}}, model.PaymentMethodCash)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if got := tx.Tax.StringFixed(2); got != "0.00" {
		t.Errorf("tax = %s, want 0.00", got)
	}
	if !tx.Total.Equal(tx.Subtotal) {
		t.Errorf("total must equal subtotal when the tax rate is zero")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	repo := &stubRepo{business: approvedBusiness(t, "8.5")}
	svc := NewService(repo, time.Hour)

	_, err := svc.Checkout(context.Background(), 1, nil, model.PaymentMethodCash)
	if !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("err = %v, want ErrEmptyOrder", err)
	}
	if repo.createdTransaction != nil {
		t.Fatalf("no transaction must be created for an empty cart")
	}
}

func TestCheckoutUnknownProduct(t *testing.T) {
	repo := &stubRepo{
		business: approvedBusiness(t, "8.5"),
		products: []model.Product{
			{ID: 1, BusinessID: 1, Name: "Latte", Price: decimal.RequireFromString("4.00"), Stock: 1, IsActive: true},
		},
	}
	svc := NewService(repo, time.Hour)

	_, err := svc.Checkout(context.Background(), 1,
		[]model.CartItem{
			{ProductID: 1, Quantity: 1},
			{ProductID: 999, Quantity: 1},
		}, model.PaymentMethodCash)
	if !errors.Is(err, repository.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock for unknown product", err)
	}
	if repo.createdTransaction != nil {
		t.Fatalf("no transaction must be created when a product is unknown")
	}
}

func TestCheckoutInactiveProductRejected(t *testing.T) {
	repo := &stubRepo{
		business: approvedBusiness(t, "8.5"),
		products: []model.Product{
			{ID: 1, BusinessID: 1, Name: "Retired", Price: decimal.RequireFromString("4.00"), Stock: 5, IsActive: false},
		},
	}
	svc := NewService(repo, time.Hour)

	_, err := svc.Checkout(context.Background(), 1,
		[]model.CartItem{{ProductID: 1, Quantity: 1}}, model.PaymentMethodCash)
	if !errors.Is(err, repository.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock for inactive product", err)
	}
}

func TestCheckoutValidation(t *testing.T) {
	repo := &stubRepo{business: approvedBusiness(t, "8.5")}
	svc := NewService(repo, time.Hour)

	tests := []struct {
		name   string
		cart   []model.CartItem
		method model.PaymentMethod
	}{
		{
			name:   "zero quantity",
			cart:   []model.CartItem{{ProductID: 1, Quantity: 0}},
			method: model.PaymentMethodCash,
		},
		{
			name:   "negative quantity",
			cart:   []model.CartItem{{ProductID: 1, Quantity: -2}},
			method: model.PaymentMethodCash,
		},
		{
			name: "duplicate product",
			cart: []model.CartItem{
				{ProductID: 1, Quantity: 1},
				{ProductID: 1, Quantity: 2},
			},
			method: model.PaymentMethodCash,
		},
		{
			name:   "bad payment method",
			cart:   []model.CartItem{{ProductID: 1, Quantity: 1}},
			method: model.PaymentMethod("bitcoin"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Checkout(context.Background(), 1, tt.cart, tt.method)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCheckoutInsufficientStockPropagates(t *testing.T) {
	stockErr := errors.New("insufficient stock: Latte")
	repo := &stubRepo{
		business: approvedBusiness(t, "8.5"),
		products: []model.Product{
			{ID: 1, BusinessID: 1, Name: "Latte", Price: decimal.RequireFromString("4.00"), Stock: 0, IsActive: true},
		},
		transactionErr: stockErr,
	}
	svc := NewService(repo, time.Hour)

	_, err := svc.Checkout(context.Background(), 1,
		[]model.CartItem{{ProductID: 1, Quantity: 1}}, model.PaymentMethodCash)
	if !errors.Is(err, stockErr) {
		t.Fatalf("err = %v, want the store's insufficient-stock error", err)
	}
}

func TestAuthenticateAdmin(t *testing.T) {
	repo := &stubRepo{
		admin: &model.AdminUser{ID: 3, Username: "admin", PasswordHash: mustHash(t, "adminpass")},
	}
	svc := NewService(repo, time.Hour)

	sess, err := svc.AuthenticateAdmin(context.Background(), "admin", "adminpass")
	if err != nil {
		t.Fatalf("authenticate admin: %v", err)
	}
	if sess.Kind != model.PrincipalAdmin || sess.PrincipalID != 3 {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if repo.createdSession == nil {
		t.Fatalf("session must be persisted")
	}

	_, err = svc.AuthenticateAdmin(context.Background(), "admin", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.AuthenticateAdmin(context.Background(), "nobody", "adminpass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials for unknown admin", err)
	}
}

func TestAuthenticateBusinessRequiresApproval(t *testing.T) {
	tests := []struct {
		name    string
		status  model.BusinessStatus
		wantErr error
	}{
		{name: "pending", status: model.BusinessStatusPending, wantErr: ErrNotApproved},
		{name: "rejected", status: model.BusinessStatusRejected, wantErr: ErrNotApproved},
		{name: "approved", status: model.BusinessStatusApproved, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := approvedBusiness(t, "8.5")
			b.Status = tt.status
			repo := &stubRepo{business: b}
			svc := NewService(repo, time.Hour)

			sess, err := svc.AuthenticateBusiness(context.Background(), "cafea", "secret")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if repo.createdSession != nil {
					t.Fatalf("no session must be created for %s business", tt.status)
				}
				return
			}
			if err != nil {
				t.Fatalf("authenticate business: %v", err)
			}
			if sess.Kind != model.PrincipalPOS || sess.PrincipalID != b.ID {
				t.Fatalf("unexpected session: %+v", sess)
			}
		})
	}
}

func TestAuthenticateBusinessWrongPassword(t *testing.T) {
	repo := &stubRepo{business: approvedBusiness(t, "8.5")}
	svc := NewService(repo, time.Hour)

	_, err := svc.AuthenticateBusiness(context.Background(), "cafea", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestResolvePrincipalRevokedBusiness(t *testing.T) {
	b := approvedBusiness(t, "8.5")
	b.Status = model.BusinessStatusRejected

	token := "8f14e45f-ceea-467f-9a34-9a5bbf3a6a11"
	repo := &stubRepo{
		business: b,
		session: &model.Session{
			Token:       token,
			Kind:        model.PrincipalPOS,
			PrincipalID: b.ID,
			ExpiresAt:   time.Now().Add(time.Hour),
		},
	}
	svc := NewService(repo, time.Hour)

	_, err := svc.ResolvePrincipal(context.Background(), token)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated for revoked business", err)
	}
}

func TestResolvePrincipalExpiredSession(t *testing.T) {
	token := "8f14e45f-ceea-467f-9a34-9a5bbf3a6a11"
	repo := &stubRepo{
		admin: &model.AdminUser{ID: 3, Username: "admin"},
		session: &model.Session{
			Token:       token,
			Kind:        model.PrincipalAdmin,
			PrincipalID: 3,
			ExpiresAt:   time.Now().Add(-time.Minute),
		},
	}
	svc := NewService(repo, time.Hour)

	_, err := svc.ResolvePrincipal(context.Background(), token)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated for expired session", err)
	}
	if repo.deletedToken != token {
		t.Fatalf("expired session must be deleted")
	}
}

func TestResolvePrincipalMalformedToken(t *testing.T) {
	svc := NewService(&stubRepo{}, time.Hour)

	_, err := svc.ResolvePrincipal(context.Background(), "not-a-uuid")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated for malformed token", err)
	}
}

func TestRegisterBusinessDefaults(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, time.Hour)

	b, err := svc.RegisterBusiness(context.Background(), RegisterBusinessRequest{
		BusinessName: "Cafe A",
		ContactEmail: "owner@cafea.example",
		Username:     "cafea",
		Password:     "secret",
	})
	if err != nil {
		t.Fatalf("register business: %v", err)
	}

	if b.Status != model.BusinessStatusPending {
		t.Errorf("status = %s, want pending", b.Status)
	}
	if b.CurrencySymbol != "$" {
		t.Errorf("currency = %q, want $", b.CurrencySymbol)
	}
	if b.ReceiptFooter == "" {
		t.Errorf("receipt footer default must be applied")
	}
	if !b.TaxRate.IsZero() {
		t.Errorf("tax rate = %s, want 0", b.TaxRate)
	}
	if !password.Verify("secret", b.PasswordHash) {
		t.Errorf("stored password hash must verify")
	}
}

func TestRegisterBusinessValidation(t *testing.T) {
	svc := NewService(&stubRepo{}, time.Hour)

	_, err := svc.RegisterBusiness(context.Background(), RegisterBusinessRequest{
		BusinessName: "  ",
		ContactEmail: "a@b.c",
		Username:     "x",
		Password:     "y",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestApproveBusinessTransitions(t *testing.T) {
	tests := []struct {
		name    string
		status  model.BusinessStatus
		wantErr bool
	}{
		{name: "from pending", status: model.BusinessStatusPending},
		{name: "from rejected", status: model.BusinessStatusRejected},
		{name: "already approved", status: model.BusinessStatusApproved, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := approvedBusiness(t, "8.5")
			b.Status = tt.status
			repo := &stubRepo{business: b}
			svc := NewService(repo, time.Hour)

			got, err := svc.ApproveBusiness(context.Background(), b.ID, 42)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("err = %v, want ErrInvalidTransition", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("approve: %v", err)
			}
			if got.Status != model.BusinessStatusApproved {
				t.Errorf("status = %s, want approved", got.Status)
			}
			if repo.statusApprovedAt == nil {
				t.Errorf("approvedAt must be set")
			}
			if repo.statusApprovedBy == nil || *repo.statusApprovedBy != 42 {
				t.Errorf("approvedBy must record the admin id")
			}
		})
	}
}

func TestRejectBusinessTransitions(t *testing.T) {
	tests := []struct {
		name    string
		status  model.BusinessStatus
		wantErr bool
	}{
		{name: "from pending", status: model.BusinessStatusPending},
		{name: "revoke approved", status: model.BusinessStatusApproved},
		{name: "already rejected", status: model.BusinessStatusRejected, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := approvedBusiness(t, "8.5")
			b.Status = tt.status
			repo := &stubRepo{business: b}
			svc := NewService(repo, time.Hour)

			got, err := svc.RejectBusiness(context.Background(), b.ID, 42)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("err = %v, want ErrInvalidTransition", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("reject: %v", err)
			}
			if got.Status != model.BusinessStatusRejected {
				t.Errorf("status = %s, want rejected", got.Status)
			}
			if repo.statusApprovedAt != nil || repo.statusApprovedBy != nil {
				t.Errorf("approval metadata must be cleared on rejection")
			}
		})
	}
}

func TestDailySalesSumsTotals(t *testing.T) {
	repo := &stubRepo{
		transactions: []model.Transaction{
			{ID: 1, Total: decimal.RequireFromString("4.34")},
			{ID: 2, Total: decimal.RequireFromString("10.66")},
		},
	}
	svc := NewService(repo, time.Hour)

	summary, err := svc.DailySales(context.Background(), 1, time.Now())
	if err != nil {
		t.Fatalf("daily sales: %v", err)
	}

	if got := summary.TotalSales.StringFixed(2); got != "15.00" {
		t.Errorf("total sales = %s, want 15.00", got)
	}
	if summary.TotalTransactionCount != 2 {
		t.Errorf("count = %d, want 2", summary.TotalTransactionCount)
	}
}

func TestRangeSalesRejectsInvertedRange(t *testing.T) {
	svc := NewService(&stubRepo{}, time.Hour)

	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)

	_, err := svc.RangeSales(context.Background(), 1, start, end)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateBusinessInfoValidation(t *testing.T) {
	svc := NewService(&stubRepo{}, time.Hour)

	err := svc.UpdateBusinessInfo(context.Background(), 1, BusinessInfoUpdate{
		BusinessName: "Cafe A",
		TaxRate:      decimal.RequireFromString("150"),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for tax rate over 100", err)
	}

	err = svc.UpdateBusinessInfo(context.Background(), 1, BusinessInfoUpdate{
		BusinessName: "",
		TaxRate:      decimal.RequireFromString("8.5"),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for empty name", err)
	}
}

func TestCreateProductDefaults(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, time.Hour)

	p, err := svc.CreateProduct(context.Background(), 1, ProductInput{
		Name:     "Latte",
		Price:    decimal.RequireFromString("4.00"),
		Stock:    5,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if p.Category != "general" {
		t.Errorf("category = %q, want general default", p.Category)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(&stubRepo{}, time.Hour)

	tests := []struct {
		name string
		in   ProductInput
	}{
		{name: "empty name", in: ProductInput{Price: decimal.NewFromInt(1)}},
		{name: "negative price", in: ProductInput{Name: "x", Price: decimal.NewFromInt(-1)}},
		{name: "negative stock", in: ProductInput{Name: "x", Price: decimal.NewFromInt(1), Stock: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), 1, tt.in)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestSetStockRejectsNegative(t *testing.T) {
	svc := NewService(&stubRepo{}, time.Hour)

	_, err := svc.SetStock(context.Background(), 1, 1, -5)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}
