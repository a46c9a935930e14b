package ledger

import "strings"

// Filter narrows the stored transaction set. Every non-nil predicate must
// hold; Keyword is ignored when empty.
type Filter struct {
	From       *Date  // Inclusive lower bound on used date
	To         *Date  // Inclusive upper bound on used date
	CategoryID *int64 // Exact category match
	UserID     *int64 // Any split belongs to this participant
	Keyword    string // Case-insensitive substring of name or memo
}

// StoreQuery returns the header-only predicates to push into the store
func (f Filter) StoreQuery() StoreQuery {
	return StoreQuery{From: f.From, To: f.To, CategoryID: f.CategoryID}
}

// MatchesHeader evaluates the predicates that depend only on the header
func (f Filter) MatchesHeader(t Transaction) bool {
	if f.From != nil && t.UsedDate.Before(*f.From) {
		return false
	}
	if f.To != nil && t.UsedDate.After(*f.To) {
		return false
	}
	if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
		return false
	}
	if f.Keyword != "" {
		kw := strings.ToLower(f.Keyword)
		inName := strings.Contains(strings.ToLower(t.Name), kw)
		inMemo := t.Memo != nil && strings.Contains(strings.ToLower(*t.Memo), kw)
		if !inName && !inMemo {
			return false
		}
	}
	return true
}

// MatchesSplits evaluates the participant predicate against a split set
func (f Filter) MatchesSplits(splits []Split) bool {
	if f.UserID == nil {
		return true
	}
	for _, s := range splits {
		if s.UserID == *f.UserID {
			return true
		}
	}
	return false
}

// Matches evaluates every predicate against a full transaction view
func (f Filter) Matches(d Detail) bool {
	return f.MatchesHeader(d.Transaction) && f.MatchesSplits(d.Splits)
}

// Apply returns the subset of details satisfying f, preserving order
func (f Filter) Apply(details []Detail) []Detail {
	out := make([]Detail, 0, len(details))
	for _, d := range details {
		if f.Matches(d) {
			out = append(out, d)
		}
	}
	return out
}
