package shell

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"fintrack/internal/core"
)

func (s *Shell) addIncome(ctx context.Context) error {
	fmt.Fprintln(s.out, "\nADD INCOME")
	fmt.Fprintln(s.out, "--------------------")

	amount, err := s.promptAmount("Enter amount: $", true)
	if err != nil {
		return err
	}
	source, err := s.readLine("Enter source: ")
	if err != nil {
		return err
	}
	if source == "" {
		source = "Unknown"
	}
	category, err := s.promptCategory(core.Income)
	if err != nil {
		return err
	}
	description, err := s.readLine("Enter description (optional): ")
	if err != nil {
		return err
	}

	t, err := s.store.AddIncome(ctx, amount, category, source, description)
	if err != nil {
		if t.ID != 0 {
			// Recorded in memory; only the flush failed.
			fmt.Fprintf(s.out, "Warning: could not save to disk (%v). The entry is kept for this session.\n", err)
		} else {
			return err
		}
	}

	if t.IsRefund() {
		fmt.Fprintf(s.out, "Refund/adjustment of %s from %s added successfully.\n", money(math.Abs(t.Amount)), source)
	} else {
		fmt.Fprintf(s.out, "Income of %s from %s added successfully.\n", money(t.Amount), source)
	}
	return nil
}

func (s *Shell) addExpense(ctx context.Context) error {
	fmt.Fprintln(s.out, "\nADD EXPENSE")
	fmt.Fprintln(s.out, "--------------------")

	amount, err := s.promptAmount("Enter amount: $", true)
	if err != nil {
		return err
	}
	category, err := s.promptCategory(core.Expense)
	if err != nil {
		return err
	}
	description, err := s.readLine("Enter description (optional): ")
	if err != nil {
		return err
	}

	t, err := s.store.AddExpense(ctx, amount, category, description)
	if err != nil {
		if t.ID != 0 {
			fmt.Fprintf(s.out, "Warning: could not save to disk (%v). The entry is kept for this session.\n", err)
		} else {
			return err
		}
	}

	if t.IsRefund() {
		fmt.Fprintf(s.out, "Refund/adjustment of %s in %s added successfully.\n", money(math.Abs(t.Amount)), category)
	} else {
		fmt.Fprintf(s.out, "Expense of %s in %s added successfully.\n", money(t.Amount), category)
	}

	s.checkBudgetAlert(category)
	return nil
}

// checkBudgetAlert warns after an expense when the category's budget
// passes the warning or exceeded threshold. Same policy as the budget
// views; only the rendering differs.
func (s *Shell) checkBudgetAlert(category string) {
	if _, ok := s.store.Budget(category); !ok {
		return
	}
	r := s.store.BudgetReport(category)
	switch r.Tier {
	case core.TierExceeded:
		fmt.Fprintf(s.out, "BUDGET ALERT: you've exceeded your %s budget!\n", category)
		fmt.Fprintf(s.out, "   Budget: %s\n", money(r.Budget))
		fmt.Fprintf(s.out, "   Spent:  %s\n", money(r.Spent))
		fmt.Fprintf(s.out, "   Over by: %s\n", money(r.Spent-r.Budget))
	case core.TierWarning:
		fmt.Fprintf(s.out, "BUDGET WARNING: you've used %.1f%% of your %s budget.\n", r.Percentage, category)
		fmt.Fprintf(s.out, "   Remaining: %s\n", money(r.Remaining))
	}
}

func (s *Shell) deleteTransaction(ctx context.Context) error {
	if s.store.Empty() {
		fmt.Fprintln(s.out, "No transactions to delete.")
		return nil
	}

	fmt.Fprintln(s.out, "\nDELETE TRANSACTION")
	fmt.Fprintln(s.out, "------------------------------")
	fmt.Fprintln(s.out, "Recent transactions:")
	s.renderTransactions(core.Recent(s.store.Transactions(), recentLimit))

	input, err := s.readLine("\nEnter transaction ID to delete: ")
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid transaction ID.")
		return nil
	}

	t, found := s.store.Find(id)
	if !found {
		fmt.Fprintln(s.out, "Transaction not found.")
		return nil
	}

	fmt.Fprintln(s.out, "\nTransaction to delete:")
	s.renderTransactionDetail(t)

	confirmed, err := s.promptYesNo("\nAre you sure you want to delete this transaction? (y/n): ")
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(s.out, "Deletion cancelled.")
		return nil
	}

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		fmt.Fprintf(s.out, "Warning: could not save to disk (%v).\n", err)
	}
	if removed {
		fmt.Fprintln(s.out, "Transaction deleted successfully.")
	} else {
		fmt.Fprintln(s.out, "Transaction not found.")
	}
	return nil
}
