package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dinelink/dinelink/internal/models"
)

// PortionTolerance is how far a set of portions may drift from 1 and still
// count as whole. Equal thirds stored at 16 digits sum to 0.9999999999999999.
var PortionTolerance = decimal.New(1, -6)

var (
	ErrNoShares       = errors.New("at least one share is required")
	ErrPortionRange   = errors.New("portion must be between 0 and 1")
	ErrDuplicateShare = errors.New("user appears more than once")
	ErrMissingUser    = errors.New("share has no user")
	ErrPortionSum     = errors.New("portions must add up to 1")
	ErrNoMembers      = errors.New("at least one member is required to split a bill")
)

// Share is one member's requested portion of an item.
type Share struct {
	UserID  string
	Portion decimal.Decimal
}

// ValidateShares checks a share set for one item. When requireWhole is set
// the portions must also sum to 1 within PortionTolerance.
func ValidateShares(shares []Share, requireWhole bool) error {
	if len(shares) == 0 {
		return ErrNoShares
	}
	seen := make(map[string]bool, len(shares))
	sum := decimal.Zero
	for _, s := range shares {
		if s.UserID == "" {
			return ErrMissingUser
		}
		if seen[s.UserID] {
			return fmt.Errorf("%w: %s", ErrDuplicateShare, s.UserID)
		}
		seen[s.UserID] = true
		if s.Portion.IsNegative() || s.Portion.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: %s has %s", ErrPortionRange, s.UserID, s.Portion)
		}
		sum = sum.Add(s.Portion)
	}
	if requireWhole && sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(PortionTolerance) {
		return fmt.Errorf("%w: got %s", ErrPortionSum, sum)
	}
	return nil
}

// EqualShares gives every member a 1/N portion.
func EqualShares(memberIDs []string) []Share {
	if len(memberIDs) == 0 {
		return nil
	}
	portion := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(len(memberIDs))))
	shares := make([]Share, len(memberIDs))
	for i, id := range memberIDs {
		shares[i] = Share{UserID: id, Portion: portion}
	}
	return shares
}

// AllocateAmounts converts portions of itemTotal into cent amounts.
//
// Each amount is itemTotal × portion rounded to cents. Rounding residue is
// then handed out a cent at a time, in input order, to shares with a
// non-zero portion so that the amounts add up to itemTotal × Σportion
// rounded to cents. With whole portions that is exactly itemTotal.
func AllocateAmounts(itemTotal decimal.Decimal, shares []Share) []decimal.Decimal {
	amounts := make([]decimal.Decimal, len(shares))
	allocated := decimal.Zero
	portionSum := decimal.Zero
	for i, s := range shares {
		amounts[i] = RoundMoney(itemTotal.Mul(s.Portion))
		allocated = allocated.Add(amounts[i])
		portionSum = portionSum.Add(s.Portion)
	}

	target := RoundMoney(itemTotal.Mul(portionSum))
	if portionSum.Sub(decimal.NewFromInt(1)).Abs().LessThanOrEqual(PortionTolerance) {
		target = RoundMoney(itemTotal)
	}

	residue := target.Sub(allocated)
	if residue.IsZero() {
		return amounts
	}
	step := cent
	if residue.IsNegative() {
		step = cent.Neg()
	}
	for steps := residue.Div(cent).Abs().IntPart(); steps > 0; {
		progressed := false
		for i, s := range shares {
			if steps == 0 {
				break
			}
			if s.Portion.IsZero() {
				continue
			}
			next := amounts[i].Add(step)
			if next.IsNegative() {
				continue
			}
			amounts[i] = next
			steps--
			progressed = true
		}
		if !progressed {
			break
		}
	}
	return amounts
}

// BuildAssignments turns shares for one item into assignment records with
// computed amounts. IDs and timestamps are left for the store to fill.
func BuildAssignments(item *models.BillItem, shares []Share) []*models.ItemAssignment {
	amounts := AllocateAmounts(item.TotalCost(), shares)
	assignments := make([]*models.ItemAssignment, len(shares))
	for i, s := range shares {
		assignments[i] = &models.ItemAssignment{
			BillItemID: item.ID,
			UserID:     s.UserID,
			Portion:    s.Portion,
			Amount:     amounts[i],
		}
	}
	return assignments
}

// PlanAutoSplit decides the shares for every item of a bill.
//
// Shared items are split equally across memberIDs. Personal items go wholly
// to owners[item.ID] when set, otherwise to the first member.
func PlanAutoSplit(items []models.BillItem, memberIDs []string, owners map[string]string) (map[string][]Share, error) {
	if len(memberIDs) == 0 {
		return nil, ErrNoMembers
	}
	equal := EqualShares(memberIDs)
	plan := make(map[string][]Share, len(items))
	for _, item := range items {
		if item.IsShared {
			plan[item.ID] = equal
			continue
		}
		owner := memberIDs[0]
		if o, ok := owners[item.ID]; ok && o != "" {
			owner = o
		}
		plan[item.ID] = []Share{{UserID: owner, Portion: decimal.NewFromInt(1)}}
	}
	return plan, nil
}
