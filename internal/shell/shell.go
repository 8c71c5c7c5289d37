// Package shell implements the interactive menu loop. It is a thin
// front end: all ledger semantics live in the core, ledger, and export
// packages; this package only gathers input, validates it per the entry
// rules, and renders results.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
)

type Shell struct {
	in        *bufio.Scanner
	out       io.Writer
	store     *ledger.Store
	exportDir string
	logger    *log.Logger

	now func() time.Time
}

func New(in io.Reader, out io.Writer, store *ledger.Store, exportDir string, logger *log.Logger) *Shell {
	return &Shell{
		in:        bufio.NewScanner(in),
		out:       out,
		store:     store,
		exportDir: exportDir,
		logger:    logger.WithComponent(log.ComponentShell),
		now:       time.Now,
	}
}

// Run drives the menu loop until the user exits or input ends. Errors
// from individual actions are reported and the loop continues; only an
// input-stream error (EOF included) or an explicit exit ends the
// session.
func (s *Shell) Run(ctx context.Context) error {
	s.printWelcome()

	for {
		s.printMenu()
		choice, err := s.readLine("Enter your choice (1-10): ")
		if err != nil {
			fmt.Fprintln(s.out, "\nGoodbye! Your data has been saved.")
			return nil
		}

		if done := s.dispatch(ctx, choice); done {
			return nil
		}
	}
}

// dispatch runs one menu action, containing panics so an unexpected
// failure never kills the session. It reports whether the user exited.
func (s *Shell) dispatch(ctx context.Context, choice string) (done bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Unexpected failure in menu action", log.FieldError, fmt.Sprint(r))
			fmt.Fprintf(s.out, "An error occurred: %v\nPlease try again.\n", r)
		}
	}()

	var err error
	switch choice {
	case "1":
		err = s.addIncome(ctx)
	case "2":
		err = s.addExpense(ctx)
	case "3":
		err = s.viewHistory()
	case "4":
		s.viewSummary()
	case "5":
		s.advancedAnalytics()
	case "6":
		err = s.budgetMenu(ctx)
	case "7":
		err = s.exportMenu()
	case "8":
		err = s.searchTransactions()
	case "9":
		err = s.deleteTransaction(ctx)
	case "10", "exit", "q":
		fmt.Fprintln(s.out, "\nThank you for using fintrack!")
		fmt.Fprintln(s.out, "Your data has been saved automatically.")
		return true
	default:
		fmt.Fprintln(s.out, "Invalid choice. Please enter a number between 1 and 10.")
	}

	if err == io.EOF {
		// Input ended mid-prompt; the main loop notices on the next read.
		return false
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

func (s *Shell) printWelcome() {
	line := "============================================================"
	fmt.Fprintln(s.out, line)
	fmt.Fprintln(s.out, "FINTRACK - PERSONAL FINANCE LEDGER")
	fmt.Fprintln(s.out, line)
	fmt.Fprintln(s.out, "Track your income, expenses, and financial goals.")
	fmt.Fprintln(s.out, "Your data is saved automatically after every change.")
	fmt.Fprintln(s.out, "Tip: negative amounts record refunds/adjustments.")
	fmt.Fprintln(s.out)
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out, "\nMAIN MENU")
	fmt.Fprintln(s.out, "------------------------------")
	fmt.Fprintln(s.out, " 1. Add Income")
	fmt.Fprintln(s.out, " 2. Add Expense")
	fmt.Fprintln(s.out, " 3. View Transaction History")
	fmt.Fprintln(s.out, " 4. Financial Summary")
	fmt.Fprintln(s.out, " 5. Advanced Analytics")
	fmt.Fprintln(s.out, " 6. Budget Management")
	fmt.Fprintln(s.out, " 7. Export Data")
	fmt.Fprintln(s.out, " 8. Search Transactions")
	fmt.Fprintln(s.out, " 9. Delete Transaction")
	fmt.Fprintln(s.out, "10. Exit")
	fmt.Fprintln(s.out, "------------------------------")
}

func (s *Shell) exportMenu() error {
	fmt.Fprintln(s.out, "\nEXPORT DATA")
	fmt.Fprintln(s.out, "------------------------------")
	fmt.Fprintln(s.out, "1. CSV export")
	fmt.Fprintln(s.out, "2. Monthly trend chart (PNG)")

	choice, err := s.readLine("Select export (1-2): ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		path, err := export.CSV(s.exportDir, s.store.Transactions(), s.now())
		if err != nil {
			if err == export.ErrNoData {
				fmt.Fprintln(s.out, "No data to export.")
				return nil
			}
			return err
		}
		fmt.Fprintf(s.out, "Data exported to %s\n", path)
	case "2":
		trend := core.MonthlyTrend(s.store.Transactions(), trendMonths)
		path, err := export.TrendChart(s.exportDir, trend, s.now())
		if err != nil {
			if err == export.ErrNoData {
				fmt.Fprintln(s.out, "Not enough data to chart (need at least two months).")
				return nil
			}
			return err
		}
		fmt.Fprintf(s.out, "Trend chart written to %s\n", path)
	default:
		fmt.Fprintln(s.out, "Invalid choice.")
	}
	return nil
}
