package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avolkov/pos-admin/internal/model"
	"github.com/avolkov/pos-admin/internal/password"
	"github.com/avolkov/pos-admin/internal/repository"
)

// Registration defaults applied to every new business; editable by the
// business itself once approved.
const (
	defaultCurrencySymbol = "$"
	defaultReceiptFooter  = "Thank you for your business!"
)

// EnsureAdmin creates the bootstrap admin user if it does not exist yet.
func (s *Service) EnsureAdmin(ctx context.Context, username, pass string) error {
	if username == "" || pass == "" {
		return fmt.Errorf("%w: admin username and password required", ErrValidation)
	}

	_, err := s.repo.GetAdminByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrAdminNotFound) {
		return err
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := s.repo.CreateAdmin(ctx, username, hash); err != nil {
		// Lost a startup race with another instance; the admin exists either way.
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil
		}
		return err
	}

	return nil
}

// AuthenticateAdmin checks admin credentials and opens a session.
func (s *Service) AuthenticateAdmin(ctx context.Context, username, pass string) (*model.Session, error) {
	admin, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(pass, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(ctx, model.PrincipalAdmin, admin.ID)
}

// AuthenticateBusiness checks POS credentials and opens a session. A business
// that is not approved cannot authenticate even with the correct password.
func (s *Service) AuthenticateBusiness(ctx context.Context, username, pass string) (*model.Session, error) {
	b, err := s.repo.GetBusinessByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(pass, b.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if b.Status != model.BusinessStatusApproved {
		return nil, ErrNotApproved
	}

	return s.createSession(ctx, model.PrincipalPOS, b.ID)
}

func (s *Service) createSession(ctx context.Context, kind model.PrincipalKind, principalID int64) (*model.Session, error) {
	now := time.Now()
	sess := &model.Session{
		Token:       uuid.NewString(),
		Kind:        kind,
		PrincipalID: principalID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.sessionTTL),
	}

	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// Logout deletes the session server-side. Unknown or malformed tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return nil
	}
	return s.repo.DeleteSession(ctx, token)
}

// ResolvePrincipal re-resolves the full principal record for a session token.
// The record is read from the store on every request, so a business revoked
// after login is deauthenticated on its very next request.
func (s *Service) ResolvePrincipal(ctx context.Context, token string) (*model.Principal, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrUnauthenticated
	}

	sess, err := s.repo.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if time.Now().After(sess.ExpiresAt) {
		_ = s.repo.DeleteSession(ctx, token)
		return nil, ErrUnauthenticated
	}

	switch sess.Kind {
	case model.PrincipalAdmin:
		admin, err := s.repo.GetAdminByID(ctx, sess.PrincipalID)
		if err != nil {
			if errors.Is(err, repository.ErrAdminNotFound) {
				return nil, ErrUnauthenticated
			}
			return nil, err
		}
		return &model.Principal{Kind: model.PrincipalAdmin, Admin: admin}, nil

	case model.PrincipalPOS:
		b, err := s.repo.GetBusinessByID(ctx, sess.PrincipalID)
		if err != nil {
			if errors.Is(err, repository.ErrBusinessNotFound) {
				return nil, ErrUnauthenticated
			}
			return nil, err
		}
		if b.Status != model.BusinessStatusApproved {
			return nil, ErrUnauthenticated
		}
		return &model.Principal{Kind: model.PrincipalPOS, Business: b}, nil

	default:
		return nil, ErrUnauthenticated
	}
}

// RegisterBusinessRequest carries the fields a business submits when asking
// for a POS account.
type RegisterBusinessRequest struct {
	BusinessName string
	ContactEmail string
	Username     string
	Password     string
}

// RegisterBusiness creates a new business in pending status with default
// configuration, regardless of any client-supplied status or settings.
func (s *Service) RegisterBusiness(ctx context.Context, req RegisterBusinessRequest) (*model.Business, error) {
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.ContactEmail = strings.TrimSpace(req.ContactEmail)
	req.Username = strings.TrimSpace(req.Username)

	if req.BusinessName == "" || req.ContactEmail == "" || req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: business name, contact email, username and password are required", ErrValidation)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	b := &model.Business{
		BusinessName:   req.BusinessName,
		ContactEmail:   req.ContactEmail,
		Username:       req.Username,
		PasswordHash:   hash,
		Status:         model.BusinessStatusPending,
		CurrencySymbol: defaultCurrencySymbol,
		ReceiptFooter:  defaultReceiptFooter,
		TaxRate:        decimal.Zero,
	}

	id, err := s.repo.CreateBusiness(ctx, b)
	if err != nil {
		return nil, err
	}

	return s.repo.GetBusinessByID(ctx, id)
}

// UpdateCurrency changes the currency symbol of the caller's own business.
func (s *Service) UpdateCurrency(ctx context.Context, businessID int64, symbol string) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return fmt.Errorf("%w: currency symbol is required", ErrValidation)
	}
	return s.repo.UpdateBusinessCurrency(ctx, businessID, symbol)
}

// BusinessInfoUpdate carries the profile fields a business may edit itself.
type BusinessInfoUpdate struct {
	BusinessName    string
	BusinessAddress string
	BusinessPhone   string
	ReceiptFooter   string
	TaxRate         decimal.Decimal
}

// UpdateBusinessInfo changes the caller's own business profile, including the
// tax rate applied to future checkouts.
func (s *Service) UpdateBusinessInfo(ctx context.Context, businessID int64, upd BusinessInfoUpdate) error {
	upd.BusinessName = strings.TrimSpace(upd.BusinessName)
	if upd.BusinessName == "" {
		return fmt.Errorf("%w: business name is required", ErrValidation)
	}
	if upd.TaxRate.IsNegative() || upd.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: tax rate must be between 0 and 100", ErrValidation)
	}
	return s.repo.UpdateBusinessInfo(ctx, businessID,
		upd.BusinessName, upd.BusinessAddress, upd.BusinessPhone, upd.ReceiptFooter, upd.TaxRate)
}
