package shell

import (
	"context"
	"fmt"
	"strconv"
)

func (s *Shell) budgetMenu(ctx context.Context) error {
	for {
		fmt.Fprintln(s.out, "\nBUDGET MANAGEMENT")
		fmt.Fprintln(s.out, "------------------------------")
		fmt.Fprintln(s.out, "1. Set budget")
		fmt.Fprintln(s.out, "2. View budgets")
		fmt.Fprintln(s.out, "3. Delete budget")
		fmt.Fprintln(s.out, "4. Budget vs Actual")
		fmt.Fprintln(s.out, "5. Back to main menu")

		choice, err := s.readLine("Select option (1-5): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			if err := s.setBudget(ctx); err != nil {
				return err
			}
		case "2":
			s.viewBudgets()
		case "3":
			if err := s.deleteBudget(ctx); err != nil {
				return err
			}
		case "4":
			s.budgetVsActual()
		case "5":
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please enter a number between 1 and 5.")
		}
	}
}

func (s *Shell) setBudget(ctx context.Context) error {
	category, err := s.readLine("Enter category name: ")
	if err != nil {
		return err
	}
	if category == "" {
		fmt.Fprintln(s.out, "Category name cannot be empty.")
		return nil
	}

	// Budgets are ceilings; negative or zero limits are rejected at entry.
	amount, err := s.promptAmount("Enter monthly budget amount: $", false)
	if err != nil {
		return err
	}

	if err := s.store.SetBudget(ctx, category, amount); err != nil {
		fmt.Fprintf(s.out, "Warning: could not save to disk (%v).\n", err)
	}
	fmt.Fprintf(s.out, "Budget set for %s: %s\n", category, money(amount))
	return nil
}

func (s *Shell) viewBudgets() {
	budgets := s.store.Budgets()
	if len(budgets) == 0 {
		fmt.Fprintln(s.out, "No budgets set.")
		return
	}
	fmt.Fprintf(s.out, "\nCURRENT BUDGETS (%d total):\n", len(budgets))
	for _, category := range sortedCategories(budgets) {
		s.renderBudgetLine(category, s.store.BudgetReport(category))
	}
}

func (s *Shell) deleteBudget(ctx context.Context) error {
	budgets := s.store.Budgets()
	if len(budgets) == 0 {
		fmt.Fprintln(s.out, "No budgets to delete.")
		return nil
	}

	categories := sortedCategories(budgets)
	fmt.Fprintln(s.out, "Current budgets:")
	for i, category := range categories {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, category)
	}

	input, err := s.readLine("Enter budget number to delete: ")
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(input)
	if err != nil || idx < 1 || idx > len(categories) {
		fmt.Fprintln(s.out, "Invalid selection.")
		return nil
	}
	category := categories[idx-1]

	confirmed, err := s.promptYesNo(fmt.Sprintf("Are you sure you want to delete the budget for %s? (y/n): ", category))
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(s.out, "Deletion cancelled.")
		return nil
	}

	removed, err := s.store.DeleteBudget(ctx, category)
	if err != nil {
		fmt.Fprintf(s.out, "Warning: could not save to disk (%v).\n", err)
	}
	if removed {
		fmt.Fprintf(s.out, "Budget for %s deleted.\n", category)
	} else {
		fmt.Fprintln(s.out, "Budget not found.")
	}
	return nil
}

func (s *Shell) budgetVsActual() {
	budgets := s.store.Budgets()
	if len(budgets) == 0 {
		fmt.Fprintln(s.out, "No budgets set.")
		return
	}

	fmt.Fprintln(s.out, "\nBUDGET VS ACTUAL ANALYSIS:")
	for _, category := range sortedCategories(budgets) {
		r := s.store.BudgetReport(category)
		fmt.Fprintf(s.out, "   %s:\n", category)
		fmt.Fprintf(s.out, "     Budget: %s\n", money(r.Budget))
		fmt.Fprintf(s.out, "     Spent:  %s\n", money(r.Spent))
		fmt.Fprintf(s.out, "     Remaining: %s\n", money(r.Remaining))
		fmt.Fprintf(s.out, "     Usage: %.1f%% %s\n\n", r.Percentage, r.Tier)
	}
}
