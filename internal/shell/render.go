package shell

import (
	"fmt"

	"github.com/olekukonko/tablewriter"

	"fintrack/internal/core"
)

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// renderTransactions prints the standard history table.
func (s *Shell) renderTransactions(txs []core.Transaction) {
	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"ID", "Date", "Type", "Amount", "Category", "Description"})
	table.SetBorder(false)
	for _, t := range txs {
		table.Append([]string{
			fmt.Sprintf("%d", t.ID),
			t.Date.Display(),
			string(t.Type),
			money(t.Amount),
			t.Category,
			truncate(t.Description, 25),
		})
	}
	table.Render()
}

// renderTransactionDetail prints one transaction in full.
func (s *Shell) renderTransactionDetail(t core.Transaction) {
	fmt.Fprintf(s.out, "   ID: %d\n", t.ID)
	fmt.Fprintf(s.out, "   Date: %s\n", t.Date.Display())
	fmt.Fprintf(s.out, "   Type: %s\n", t.Type)
	fmt.Fprintf(s.out, "   Amount: %s\n", money(t.Amount))
	fmt.Fprintf(s.out, "   Category: %s\n", t.Category)
	if t.Source != "" {
		fmt.Fprintf(s.out, "   Source: %s\n", t.Source)
	}
	description := t.Description
	if description == "" {
		description = "N/A"
	}
	fmt.Fprintf(s.out, "   Description: %s\n", description)
}

// renderBreakdown prints grouped sums with their share of the total.
func (s *Shell) renderBreakdown(header string, groups []core.CategoryAmount, total float64) {
	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{header, "Amount", "Share"})
	table.SetBorder(false)
	for _, g := range groups {
		share := 0.0
		if total != 0 {
			share = g.Amount / total * 100
		}
		table.Append([]string{g.Name, money(g.Amount), fmt.Sprintf("%.1f%%", share)})
	}
	table.Render()
}

// renderTrend prints the month-by-month income/expense series.
func (s *Shell) renderTrend(trend []core.MonthTotals) {
	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"Month", "Income", "Expenses", "Balance"})
	table.SetBorder(false)
	for _, m := range trend {
		table.Append([]string{
			fmt.Sprintf("%d-%02d", m.Year, int(m.Month)),
			money(m.Income),
			money(m.Expenses),
			money(m.Balance()),
		})
	}
	table.Render()
}

// renderBudgetLine prints the compact spent/budget status used by the
// budget summary and list views.
func (s *Shell) renderBudgetLine(category string, r core.BudgetReport) {
	fmt.Fprintf(s.out, "   %s: %s/%s (%.1f%%) - %s\n",
		category, money(r.Spent), money(r.Budget), r.Percentage, r.Tier)
}
