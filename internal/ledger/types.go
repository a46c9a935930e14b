package ledger

import (
	"encoding/json" // Split decoding
	"strings"       // String manipulation
	"time"    // Timestamps and calendar dates
)

// dateLayout is the wire and query format of a calendar date
const dateLayout = "2006-01-02"

// Date is a calendar date without time-of-day, always at UTC midnight
type Date struct {
	time.Time
}

// NewDate builds a Date from its parts
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return d.Format(dateLayout)
}

// Before reports whether d is strictly earlier than o
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

// After reports whether d is strictly later than o
func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted YYYY-MM-DD string
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Split is one participant's share of a transaction
type Split struct {
	UserID int64 `json:"user_id"`                        // Participant bearing the cost
	Amount int64 `json:"amount" binding:"required,gt=0"` // Share in the smallest currency unit
}

// UnmarshalJSON rejects a split without user_id. Zero is a valid participant
// id, so a missing key cannot be left to the zero value.
func (s *Split) UnmarshalJSON(b []byte) error {
	var raw struct {
		UserID *int64 `json:"user_id"`
		Amount int64  `json:"amount"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.UserID == nil {
		return invalid("splits: user_id is required")
	}
	*s = Split{UserID: *raw.UserID, Amount: raw.Amount}
	return nil
}

// Transaction is a stored transaction header
type Transaction struct {
	ID          int64     `json:"id"`           // Assigned by the store
	CategoryID  int64     `json:"category_id"`  // Category reference
	TotalAmount int64     `json:"total_amount"` // Total in the smallest currency unit
	UsedDate    Date      `json:"used_date"`    // Day the money was spent
	Name        string    `json:"name"`         // Label
	Memo        *string   `json:"memo"`         // Optional free text
	CreatedAt   time.Time `json:"created_at"`   // Set by the store on insert
	UpdatedAt   time.Time `json:"updated_at"`   // Set by the store on insert/update
}

// Category is the display projection of a category id
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Detail is the full view of a transaction: header, category and splits
type Detail struct {
	Transaction
	Category Category `json:"category"`
	Splits   []Split  `json:"splits"`
}

// CreateRequest is the input of the write path
type CreateRequest struct {
	CategoryID  int64   `json:"category_id" binding:"required,gt=0"`  // Category reference
	TotalAmount int64   `json:"total_amount" binding:"required,gt=0"` // Must equal the sum of splits
	UsedDate    Date    `json:"used_date"`                            // Calendar date
	Name        string  `json:"name" binding:"required"`              // Non-empty label
	Memo        *string `json:"memo"`                                 // Optional
	Splits      []Split `json:"splits" binding:"required,min=1,dive"` // Participant shares
}

// UserTotal is the amount borne by one participant
type UserTotal struct {
	UserID      int64 `json:"user_id"`
	TotalAmount int64 `json:"total_amount"`
}

// CategoryTotal is the amount spent in one category
type CategoryTotal struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	TotalAmount  int64  `json:"total_amount"`
}

// Summary is the whole-window breakdown
type Summary struct {
	TotalAmount int64           `json:"total_amount"`
	ByUser      []UserTotal     `json:"by_user"`
	ByCategory  []CategoryTotal `json:"by_category"`
}

// Window is an inclusive date range for aggregation
type Window struct {
	From Date
	To   Date
}
