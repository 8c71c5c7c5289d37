package core

import (
	"sort"
	"time"
)

const (
	TierGood     Tier = "GOOD"
	TierWarning  Tier = "WARNING"
	TierExceeded Tier = "EXCEEDED"
)

// Budget consumption thresholds, in percent.
const (
	warningThreshold  = 80
	exceededThreshold = 100
)

type (
	// Tier describes budget consumption severity.
	Tier string

	// Summary holds the three headline figures for a set of transactions.
	Summary struct {
		Income   float64
		Expenses float64
		Net      float64
	}

	// CategoryAmount is an amount aggregated under one category or source.
	CategoryAmount struct {
		Name   string
		Amount float64
	}

	// MonthTotals is the income/expense pair for one calendar month.
	MonthTotals struct {
		Year     int
		Month    time.Month
		Income   float64
		Expenses float64
	}

	// BudgetReport compares a monthly budget against actual spending.
	BudgetReport struct {
		Budget     float64
		Spent      float64
		Remaining  float64
		Percentage float64
		Tier       Tier
	}
)

// Totals sums raw signed amounts per type across all transactions.
// Negative entries reduce their type's total.
func Totals(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Type {
		case Income:
			s.Income += t.Amount
		case Expense:
			s.Expenses += t.Amount
		}
	}
	s.Net = s.Income - s.Expenses
	return s
}

// PeriodTotals restricts Totals to one calendar month of local
// wall-clock time, not a rolling window.
func PeriodTotals(txs []Transaction, year int, month time.Month) Summary {
	var inMonth []Transaction
	for _, t := range txs {
		if t.Date.In(year, month) {
			inMonth = append(inMonth, t)
		}
	}
	return Totals(inMonth)
}

// MonthlyExpensesByCategory sums expense amounts for an exact category
// in the given month. Budget checks call this with the current month.
func MonthlyExpensesByCategory(txs []Transaction, category string, year int, month time.Month) float64 {
	var sum float64
	for _, t := range txs {
		if t.Type == Expense && t.Category == category && t.Date.In(year, month) {
			sum += t.Amount
		}
	}
	return sum
}

// CategoryBreakdown groups transactions of one type by category,
// ordered by summed amount descending. Ties keep the insertion order of
// each category's first occurrence. The second return value is the
// overall total, for percentage computation by the caller.
func CategoryBreakdown(txs []Transaction, tt TransactionType) ([]CategoryAmount, float64) {
	return breakdown(txs, tt, func(t Transaction) string { return t.Category })
}

// SourceBreakdown groups income transactions by source. A transaction
// with an empty source lands in the "Unknown" bucket.
func SourceBreakdown(txs []Transaction) ([]CategoryAmount, float64) {
	return breakdown(txs, Income, func(t Transaction) string {
		if t.Source == "" {
			return "Unknown"
		}
		return t.Source
	})
}

func breakdown(txs []Transaction, tt TransactionType, key func(Transaction) string) ([]CategoryAmount, float64) {
	sums := make(map[string]float64)
	var order []string
	var total float64
	for _, t := range txs {
		if t.Type != tt {
			continue
		}
		k := key(t)
		if _, seen := sums[k]; !seen {
			order = append(order, k)
		}
		sums[k] += t.Amount
		total += t.Amount
	}
	out := make([]CategoryAmount, 0, len(order))
	for _, k := range order {
		out = append(out, CategoryAmount{Name: k, Amount: sums[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out, total
}

// MonthlyTrend groups all transactions by calendar month and returns
// the most recent limit months present in the data, ascending. Months
// with no activity are absent, not zero-filled.
func MonthlyTrend(txs []Transaction, limit int) []MonthTotals {
	type monthKey struct {
		year  int
		month time.Month
	}
	sums := make(map[monthKey]*MonthTotals)
	for _, t := range txs {
		k := monthKey{year: t.Date.Year(), month: t.Date.Month()}
		mt, ok := sums[k]
		if !ok {
			mt = &MonthTotals{Year: k.year, Month: k.month}
			sums[k] = mt
		}
		if t.Type == Income {
			mt.Income += t.Amount
		} else {
			mt.Expenses += t.Amount
		}
	}
	out := make([]MonthTotals, 0, len(sums))
	for _, mt := range sums {
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Balance is the month's income minus its expenses.
func (m MonthTotals) Balance() float64 {
	return m.Income - m.Expenses
}

// BudgetStatus is the single tiering policy shared by the add-expense
// alert, the budget summary, and the budget-vs-actual view. A zero
// budget yields a zero percentage rather than dividing by zero.
func BudgetStatus(budget, spent float64) BudgetReport {
	r := BudgetReport{
		Budget:    budget,
		Spent:     spent,
		Remaining: budget - spent,
	}
	if budget > 0 {
		r.Percentage = spent / budget * 100
	}
	switch {
	case r.Percentage >= exceededThreshold:
		r.Tier = TierExceeded
	case r.Percentage >= warningThreshold:
		r.Tier = TierWarning
	default:
		r.Tier = TierGood
	}
	return r
}

// SavingsRate is the share of monthly income left over as balance,
// in percent. Zero when there is no positive income.
func SavingsRate(s Summary) float64 {
	if s.Income <= 0 {
		return 0
	}
	return (s.Income - s.Expenses) / s.Income * 100
}
