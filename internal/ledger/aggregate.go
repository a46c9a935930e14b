package ledger

import "sort"

// Summarize computes the grand total, per-user split totals and
// per-category transaction totals of a pre-filtered set. By-user entries
// are ordered by user id, by-category entries by category id. Totals
// saturate at math.MaxInt64.
func Summarize(details []Detail) Summary {
	var total int64
	for _, d := range details {
		total = clampAdd(total, d.TotalAmount)
	}

	byUser := userTotals(details)
	sort.Slice(byUser, func(i, j int) bool { return byUser[i].UserID < byUser[j].UserID })

	return Summary{
		TotalAmount: total,
		ByUser:      byUser,
		ByCategory:  categoryTotals(details),
	}
}

// UserTotals sums split amounts per participant, largest total first.
// Equal totals are ordered by user id ascending.
func UserTotals(details []Detail) []UserTotal {
	out := userTotals(details)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalAmount != out[j].TotalAmount {
			return out[i].TotalAmount > out[j].TotalAmount
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// UserCategoryBreakdown sums only userID's own split amounts, grouped by the
// category of the transaction each split belongs to.
func UserCategoryBreakdown(details []Detail, userID int64) []CategoryTotal {
	acc := newCategoryAccumulator()
	for _, d := range details {
		for _, s := range d.Splits {
			if s.UserID != userID {
				continue
			}
			acc.add(d.Category, s.Amount)
		}
	}
	return acc.result()
}

func userTotals(details []Detail) []UserTotal {
	sums := make(map[int64]int64)
	order := make([]int64, 0)
	for _, d := range details {
		for _, s := range d.Splits {
			if _, ok := sums[s.UserID]; !ok {
				order = append(order, s.UserID)
			}
			sums[s.UserID] = clampAdd(sums[s.UserID], s.Amount)
		}
	}
	out := make([]UserTotal, 0, len(order))
	for _, id := range order {
		out = append(out, UserTotal{UserID: id, TotalAmount: sums[id]})
	}
	return out
}

func categoryTotals(details []Detail) []CategoryTotal {
	acc := newCategoryAccumulator()
	for _, d := range details {
		acc.add(d.Category, d.TotalAmount)
	}
	return acc.result()
}

// categoryAccumulator groups amounts by category id, keeping the first
// display name seen for each id
type categoryAccumulator struct {
	totals map[int64]*CategoryTotal
}

func newCategoryAccumulator() *categoryAccumulator {
	return &categoryAccumulator{totals: make(map[int64]*CategoryTotal)}
}

func (a *categoryAccumulator) add(c Category, amount int64) {
	ct, ok := a.totals[c.ID]
	if !ok {
		ct = &CategoryTotal{CategoryID: c.ID, CategoryName: c.Name}
		a.totals[c.ID] = ct
	}
	ct.TotalAmount = clampAdd(ct.TotalAmount, amount)
}

func (a *categoryAccumulator) result() []CategoryTotal {
	out := make([]CategoryTotal, 0, len(a.totals))
	for _, ct := range a.totals {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryID < out[j].CategoryID })
	return out
}
