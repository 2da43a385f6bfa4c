package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avolkov/pos-admin/internal/model"
	"github.com/avolkov/pos-admin/internal/repository"
)

var hundred = decimal.NewFromInt(100)

// Checkout turns a submitted cart into a persisted transaction. Unit prices
// and totals are recomputed server-side from the catalog and the business's
// configured tax rate; any client-supplied totals are discarded. Stock is
// decremented through the store's atomic conditional update, all-or-nothing.
func (s *Service) Checkout(ctx context.Context, businessID int64, cart []model.CartItem, method model.PaymentMethod) (*model.Transaction, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyOrder
	}

	if method != model.PaymentMethodCash && method != model.PaymentMethodCard {
		return nil, fmt.Errorf("%w: payment method must be cash or card", ErrValidation)
	}

	seen := make(map[int64]bool, len(cart))
	ids := make([]int64, 0, len(cart))
	for _, item := range cart {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for product %d", ErrValidation, item.ProductID)
		}
		if seen[item.ProductID] {
			return nil, fmt.Errorf("%w: duplicate product %d in cart", ErrValidation, item.ProductID)
		}
		seen[item.ProductID] = true
		ids = append(ids, item.ProductID)
	}

	business, err := s.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.GetProductsByIDs(ctx, businessID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]model.TransactionItem, 0, len(cart))
	subtotal := decimal.Zero
	for _, ci := range cart {
		p, ok := byID[ci.ProductID]
		if !ok {
			// Unknown, foreign or inactive products reject the whole order,
			// same as running out of stock.
			return nil, fmt.Errorf("%w: product %d", repository.ErrInsufficientStock, ci.ProductID)
		}

		items = append(items, model.TransactionItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  ci.Quantity,
		})
		subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(ci.Quantity))))
	}

	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(business.TaxRate).Div(hundred).Round(2)
	total := subtotal.Add(tax)

	t := &model.Transaction{
		BusinessID:    businessID,
		ReceiptNumber: newReceiptNumber(),
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		PaymentMethod: method,
	}

	return s.repo.CreateTransaction(ctx, t)
}

func newReceiptNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "RCP-" + raw[:12]
}
