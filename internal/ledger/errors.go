package ledger

import (
	"errors" // Sentinel errors
	"fmt"    // Error formatting
)

var (
	ErrDuplicateParticipant = errors.New("duplicate participant in splits")
	ErrNoSplits             = errors.New("at least one split is required")
	ErrAmountMismatch       = errors.New("split amounts do not match total amount")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidWindow        = errors.New("invalid date window")
	ErrNotFound             = errors.New("transaction not found")
)

// DuplicateParticipantError names the participant listed twice
type DuplicateParticipantError struct {
	UserID int64
}

func (e *DuplicateParticipantError) Error() string {
	return fmt.Sprintf("user %d appears more than once in splits", e.UserID)
}

func (e *DuplicateParticipantError) Unwrap() error { return ErrDuplicateParticipant }

// MismatchError carries the stated total and the actual split sum. Overflow
// is set when the splits sum past the int64 range; Actual is then the
// partial sum reached.
type MismatchError struct {
	Expected int64
	Actual   int64
	Overflow bool
}

func (e *MismatchError) Error() string {
	if e.Overflow {
		return fmt.Sprintf("split amounts overflow, total_amount is %d", e.Expected)
	}
	return fmt.Sprintf("splits sum to %d but total_amount is %d", e.Actual, e.Expected)
}

func (e *MismatchError) Unwrap() error { return ErrAmountMismatch }

// invalid wraps ErrInvalidRequest with a field-level reason
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
