package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/pos-admin/internal/model"
)

// DailySales aggregates a business's transactions for one calendar day in the
// server's local time zone.
func (s *Service) DailySales(ctx context.Context, businessID int64, date time.Time) (*model.DailySummary, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	transactions, err := s.repo.GetTransactionsByRange(ctx, businessID, start, end)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Total)
	}

	return &model.DailySummary{
		Transactions:          transactions,
		TotalSales:            total,
		TotalTransactionCount: len(transactions),
	}, nil
}

// RangeSales returns a business's transactions with createdAt in the inclusive
// [start, end] range, newest first. Both bounds are calendar days in server
// local time; the end day is extended to its last instant.
func (s *Service) RangeSales(ctx context.Context, businessID int64, start, end time.Time) ([]model.Transaction, error) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.Local)
	to := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, 1).Add(-time.Nanosecond)

	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date before start date", ErrValidation)
	}

	return s.repo.GetTransactionsByRange(ctx, businessID, from, to)
}
