package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avolkov/pos-admin/internal/model"
)

// ApproveBusiness moves a business to approved. Allowed from pending and
// rejected (re-approval); approving an already-approved business is invalid.
func (s *Service) ApproveBusiness(ctx context.Context, businessID, adminID int64) (*model.Business, error) {
	b, err := s.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if b.Status == model.BusinessStatusApproved {
		return nil, fmt.Errorf("%w: business is already approved", ErrInvalidTransition)
	}

	now := time.Now()
	if err := s.repo.SetBusinessStatus(ctx, businessID, model.BusinessStatusApproved, &now, &adminID); err != nil {
		return nil, err
	}

	return s.repo.GetBusinessByID(ctx, businessID)
}

// RejectBusiness moves a business to rejected. Allowed from pending and from
// approved (revocation); approval metadata is cleared.
func (s *Service) RejectBusiness(ctx context.Context, businessID, adminID int64) (*model.Business, error) {
	b, err := s.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if b.Status == model.BusinessStatusRejected {
		return nil, fmt.Errorf("%w: business is already rejected", ErrInvalidTransition)
	}

	if err := s.repo.SetBusinessStatus(ctx, businessID, model.BusinessStatusRejected, nil, nil); err != nil {
		return nil, err
	}

	return s.repo.GetBusinessByID(ctx, businessID)
}

// DeleteBusiness hard-deletes a business and everything it owns. Irreversible.
func (s *Service) DeleteBusiness(ctx context.Context, businessID int64) error {
	return s.repo.DeleteBusiness(ctx, businessID)
}

// ListBusinesses returns businesses, optionally filtered by status.
func (s *Service) ListBusinesses(ctx context.Context, status *model.BusinessStatus) ([]model.Business, error) {
	return s.repo.ListBusinesses(ctx, status)
}

// GetBusiness returns a single business by id.
func (s *Service) GetBusiness(ctx context.Context, businessID int64) (*model.Business, error) {
	return s.repo.GetBusinessByID(ctx, businessID)
}

// AdminStats returns platform-wide business counts by status.
func (s *Service) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	return s.repo.CountBusinessesByStatus(ctx)
}
