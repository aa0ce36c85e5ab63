package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/dinelink/dinelink/internal/calculator"
	"github.com/dinelink/dinelink/internal/models"
	"github.com/dinelink/dinelink/internal/storage"
)

// CalculateTotals derives service charge, tax and total from a subtotal.
// Nil rates use the configured defaults.
func (s *Service) CalculateTotals(subtotal decimal.Decimal, serviceChargeRate, taxRate *decimal.Decimal) (calculator.Totals, error) {
	if subtotal.IsNegative() {
		return calculator.Totals{}, invalidInput("subtotal must not be negative")
	}
	service := s.cfg.ServiceChargeRate
	if serviceChargeRate != nil {
		service = *serviceChargeRate
	}
	tax := s.cfg.TaxRate
	if taxRate != nil {
		tax = *taxRate
	}
	one := decimal.NewFromInt(1)
	if service.IsNegative() || service.GreaterThan(one) || tax.IsNegative() || tax.GreaterThan(one) {
		return calculator.Totals{}, invalidInput("rates must be between 0 and 1")
	}
	return calculator.CalculateTotals(subtotal, service, tax), nil
}

// AssignItemToUsers replaces every assignment of an item with shares.
// The delete and insert happen in one transaction.
func (s *Service) AssignItemToUsers(ctx context.Context, itemID, userID string, shares []calculator.Share) ([]models.ItemAssignment, error) {
	var created []*models.ItemAssignment
	err := s.inTx(ctx, "assign item", func(q storage.Queries) error {
		item, err := q.GetBillItem(ctx, itemID)
		if err != nil {
			return storageError("load item", err)
		}
		bill, err := q.GetBill(ctx, item.BillID)
		if err != nil {
			return storageError("load bill", err)
		}
		if err := authorizeMutate(ctx, q, bill, userID); err != nil {
			return err
		}
		if err := requireDraft(bill); err != nil {
			return err
		}
		if err := calculator.ValidateShares(shares, s.cfg.EnforcePortionSum); err != nil {
			return fmt.Errorf("%w: item %s: %w", ErrInvalidInput, itemID, err)
		}

		created, err = s.replaceAssignments(ctx, q, item, shares)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Item assigned", "item_id", itemID, "shares", len(created))
	return derefAssignments(created), nil
}

// AutoSplitBill re-splits every item on a bill. Shared items are divided
// equally between memberIDs; personal items go to owners[itemID] or, when
// the item has no owner, to the first member. The whole bill is re-split
// in one transaction.
func (s *Service) AutoSplitBill(ctx context.Context, billID, userID string, memberIDs []string, owners map[string]string) ([]models.ItemAssignment, error) {
	var created []*models.ItemAssignment
	err := s.inTx(ctx, "auto-split bill", func(q storage.Queries) error {
		bill, err := q.GetBill(ctx, billID)
		if err != nil {
			return storageError("load bill", err)
		}
		if err := authorizeMutate(ctx, q, bill, userID); err != nil {
			return err
		}
		if err := requireDraft(bill); err != nil {
			return err
		}

		items, err := q.ListBillItems(ctx, billID)
		if err != nil {
			return storageError("list items", err)
		}
		plan, err := calculator.PlanAutoSplit(items, memberIDs, owners)
		if errors.Is(err, calculator.ErrNoMembers) {
			return fmt.Errorf("%w: %w", ErrInvalidState, err)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		ids := make([]string, len(items))
		for i := range items {
			ids[i] = items[i].ID
			if err := calculator.ValidateShares(plan[items[i].ID], true); err != nil {
				return fmt.Errorf("%w: item %s: %w", ErrInvalidInput, items[i].ID, err)
			}
		}
		if err := q.DeleteAssignmentsForItems(ctx, ids); err != nil {
			return storageError("clear assignments", err)
		}

		now := s.now(ctx)
		for i := range items {
			batch := calculator.BuildAssignments(&items[i], plan[items[i].ID])
			for _, a := range batch {
				a.CreatedAt = now
			}
			if err := q.CreateAssignments(ctx, batch); err != nil {
				return storageError("insert assignments", err)
			}
			created = append(created, batch...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Bill auto-split", "bill_id", billID, "members", len(memberIDs), "assignments", len(created))
	return derefAssignments(created), nil
}

func (s *Service) replaceAssignments(ctx context.Context, q storage.Queries, item *models.BillItem, shares []calculator.Share) ([]*models.ItemAssignment, error) {
	if err := q.DeleteAssignmentsForItems(ctx, []string{item.ID}); err != nil {
		return nil, storageError("clear assignments", err)
	}
	batch := calculator.BuildAssignments(item, shares)
	now := s.now(ctx)
	for _, a := range batch {
		a.CreatedAt = now
	}
	if err := q.CreateAssignments(ctx, batch); err != nil {
		return nil, storageError("insert assignments", err)
	}
	return batch, nil
}

func derefAssignments(in []*models.ItemAssignment) []models.ItemAssignment {
	out := make([]models.ItemAssignment, len(in))
	for i, a := range in {
		out[i] = *a
	}
	return out
}
