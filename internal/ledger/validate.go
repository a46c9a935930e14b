package ledger

import (
	"math"
	"strings"
)

// MaxAmount bounds total_amount and every split amount on create. It is the
// largest integer a float64 JSON client holds exactly.
const MaxAmount int64 = 1<<53 - 1

// CheckParticipants is the structural check on a split list: it must be
// non-empty and name every participant at most once. It does not look at
// the total.
func CheckParticipants(splits []Split) error {
	if len(splits) == 0 {
		return ErrNoSplits
	}
	seen := make(map[int64]struct{}, len(splits))
	for _, s := range splits {
		if _, dup := seen[s.UserID]; dup {
			return &DuplicateParticipantError{UserID: s.UserID}
		}
		seen[s.UserID] = struct{}{}
	}
	return nil
}

// CheckTotal is the arithmetic check: split amounts must sum to total exactly.
// A sum outside the int64 range never matches.
func CheckTotal(total int64, splits []Split) error {
	var sum int64
	for _, s := range splits {
		next, ok := addAmount(sum, s.Amount)
		if !ok {
			return &MismatchError{Expected: total, Actual: sum, Overflow: true}
		}
		sum = next
	}
	if sum != total {
		return &MismatchError{Expected: total, Actual: sum}
	}
	return nil
}

// Validate checks the header fields of a create request. Split checks are
// left to CheckParticipants and CheckTotal.
func (r CreateRequest) Validate() error {
	if r.CategoryID <= 0 {
		return invalid("category_id must be positive")
	}
	if r.TotalAmount <= 0 {
		return invalid("total_amount must be positive")
	}
	if r.TotalAmount > MaxAmount {
		return invalid("total_amount must not exceed %d", MaxAmount)
	}
	if r.UsedDate.IsZero() {
		return invalid("used_date is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name must not be empty")
	}
	for i, s := range r.Splits {
		if s.Amount <= 0 {
			return invalid("splits[%d].amount must be positive", i)
		}
		if s.Amount > MaxAmount {
			return invalid("splits[%d].amount must not exceed %d", i, MaxAmount)
		}
	}
	return nil
}

// addAmount returns a+b, or false when the sum leaves the int64 range
func addAmount(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// clampAdd is addAmount saturating at the int64 bounds
func clampAdd(a, b int64) int64 {
	if sum, ok := addAmount(a, b); ok {
		return sum
	}
	if b > 0 {
		return math.MaxInt64
	}
	return math.MinInt64
}
