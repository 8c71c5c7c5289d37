package shell

import (
	"fmt"

	"fintrack/internal/core"
)

func (s *Shell) searchTransactions() error {
	if s.store.Empty() {
		fmt.Fprintln(s.out, "No transactions to search.")
		return nil
	}

	fmt.Fprintln(s.out, "\nSEARCH TRANSACTIONS")
	fmt.Fprintln(s.out, "------------------------------")
	fmt.Fprintln(s.out, "1. Search by amount range")
	fmt.Fprintln(s.out, "2. Search by date range")
	fmt.Fprintln(s.out, "3. Search by description")
	fmt.Fprintln(s.out, "4. Search by category")

	choice, err := s.readLine("Select search type (1-4): ")
	if err != nil {
		return err
	}

	var filter core.Filter
	switch choice {
	case "1":
		min, err := s.promptAmount("Enter minimum amount: $", true)
		if err != nil {
			return err
		}
		max, err := s.promptAmount("Enter maximum amount: $", true)
		if err != nil {
			return err
		}
		// The filter swaps reversed bounds itself.
		filter = core.AmountRange(min, max)
	case "2":
		startInput, err := s.readLine("Enter start date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		endInput, err := s.readLine("Enter end date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		start, perr := core.ParseDate(startInput)
		if perr == nil {
			var end core.Timestamp
			end, perr = core.ParseDate(endInput)
			if perr == nil {
				filter = core.DateRange(start, end)
			}
		}
		if perr != nil {
			// Unparseable endpoints abort the search instead of
			// silently matching nothing.
			fmt.Fprintln(s.out, "Invalid date format. Please use YYYY-MM-DD.")
			return nil
		}
	case "3":
		keyword, err := s.readLine("Enter search keyword: ")
		if err != nil {
			return err
		}
		if keyword == "" {
			fmt.Fprintln(s.out, "Search keyword cannot be empty.")
			return nil
		}
		filter = core.Filter{Keyword: keyword}
	case "4":
		category, err := s.readLine("Enter category name: ")
		if err != nil {
			return err
		}
		if category == "" {
			fmt.Fprintln(s.out, "Category name cannot be empty.")
			return nil
		}
		filter = core.Filter{Category: category}
	default:
		fmt.Fprintln(s.out, "Invalid choice.")
		return nil
	}

	results := filter.Apply(s.store.Transactions())
	if len(results) == 0 {
		fmt.Fprintln(s.out, "No transactions found.")
		return nil
	}

	fmt.Fprintf(s.out, "\nFound %d transaction(s):\n", len(results))
	s.renderTransactions(core.SortByDateDesc(results))
	return nil
}
