package shell

import (
	"fmt"
	"sort"

	"fintrack/internal/core"
)

const (
	recentLimit = 10
	trendMonths = 6
)

func (s *Shell) viewHistory() error {
	if s.store.Empty() {
		fmt.Fprintln(s.out, "No transactions found.")
		return nil
	}

	fmt.Fprintln(s.out, "\nTRANSACTION HISTORY")
	fmt.Fprintln(s.out, "--------------------------------------------------")
	fmt.Fprintln(s.out, "Filter options:")
	fmt.Fprintln(s.out, "1. All transactions")
	fmt.Fprintln(s.out, "2. Income only")
	fmt.Fprintln(s.out, "3. Expenses only")
	fmt.Fprintln(s.out, "4. By category")
	fmt.Fprintln(s.out, "5. This month")
	fmt.Fprintln(s.out, "6. Last 30 days")

	choice, err := s.readLine("Select filter (1-6): ")
	if err != nil {
		return err
	}

	var filter core.Filter
	switch choice {
	case "2":
		filter.Type = core.Income
	case "3":
		filter.Type = core.Expense
	case "4":
		category, err := s.readLine("Enter category name: ")
		if err != nil {
			return err
		}
		filter.Category = category
	case "5":
		filter = core.MonthOf(s.now())
	case "6":
		filter = core.Last30Days(s.now())
	}

	matched := filter.Apply(s.store.Transactions())
	if len(matched) == 0 {
		fmt.Fprintln(s.out, "No transactions match your filter.")
		return nil
	}

	fmt.Fprintf(s.out, "\nShowing %d transaction(s):\n", len(matched))
	s.renderTransactions(core.SortByDateDesc(matched))
	return nil
}

func (s *Shell) viewSummary() {
	if s.store.Empty() {
		fmt.Fprintln(s.out, "No transactions found.")
		return
	}

	fmt.Fprintln(s.out, "\nFINANCIAL SUMMARY")
	fmt.Fprintln(s.out, "----------------------------------------")

	txs := s.store.Transactions()
	total := core.Totals(txs)
	now := s.now()
	monthly := core.PeriodTotals(txs, now.Year(), now.Month())

	fmt.Fprintf(s.out, "Total Income:   %s\n", money(total.Income))
	fmt.Fprintf(s.out, "Total Expenses: %s\n", money(total.Expenses))
	fmt.Fprintf(s.out, "Net Balance:    %s\n", money(total.Net))
	fmt.Fprintln(s.out, "\nThis Month:")
	fmt.Fprintf(s.out, "  Income:       %s\n", money(monthly.Income))
	fmt.Fprintf(s.out, "  Expenses:     %s\n", money(monthly.Expenses))
	fmt.Fprintf(s.out, "  Balance:      %s\n", money(monthly.Net))
	fmt.Fprintf(s.out, "  Savings Rate: %.1f%%\n", core.SavingsRate(monthly))

	budgets := s.store.Budgets()
	if len(budgets) > 0 {
		fmt.Fprintln(s.out, "\nBudget Summary:")
		for _, category := range sortedCategories(budgets) {
			s.renderBudgetLine(category, s.store.BudgetReport(category))
		}
	}
}

func (s *Shell) advancedAnalytics() {
	if s.store.Empty() {
		fmt.Fprintln(s.out, "No transactions found.")
		return
	}

	fmt.Fprintln(s.out, "\nADVANCED ANALYTICS")
	fmt.Fprintln(s.out, "----------------------------------------")
	txs := s.store.Transactions()

	fmt.Fprintln(s.out, "\nEXPENSE CATEGORY BREAKDOWN:")
	if groups, total := core.CategoryBreakdown(txs, core.Expense); len(groups) > 0 {
		s.renderBreakdown("Category", groups, total)
	} else {
		fmt.Fprintln(s.out, "No expenses recorded.")
	}

	fmt.Fprintln(s.out, "\nINCOME SOURCE ANALYSIS:")
	if groups, total := core.SourceBreakdown(txs); len(groups) > 0 {
		s.renderBreakdown("Source", groups, total)
	} else {
		fmt.Fprintln(s.out, "No income recorded.")
	}

	fmt.Fprintf(s.out, "\nMONTHLY TRENDS (last %d months):\n", trendMonths)
	s.renderTrend(core.MonthlyTrend(txs, trendMonths))
}

// sortedCategories gives budget views a deterministic order.
func sortedCategories(budgets map[string]float64) []string {
	out := make([]string, 0, len(budgets))
	for category := range budgets {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}
