package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

// readLine prints a prompt and reads one trimmed line. io.EOF means the
// input stream ended and the session should wind down.
func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// promptAmount re-prompts until a valid amount is entered. Validation
// errors never abort the action; only end of input does.
func (s *Shell) promptAmount(prompt string, allowNegative bool) (float64, error) {
	for {
		input, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		amount, err := core.ParseAmount(input, allowNegative)
		if err == nil {
			return amount, nil
		}
		switch {
		case errors.Is(err, core.ErrEmptyAmount):
			fmt.Fprintln(s.out, "Amount cannot be empty. Please try again.")
		case errors.Is(err, core.ErrZeroAmount):
			fmt.Fprintln(s.out, "Amount cannot be zero. Please enter a valid amount.")
		case errors.Is(err, core.ErrNegativeAmount):
			fmt.Fprintln(s.out, "Negative amounts are not allowed here.")
			fmt.Fprintln(s.out, "Tip: use the expense option for refunds/adjustments.")
		default:
			fmt.Fprintln(s.out, "Invalid amount. Please enter a valid number (e.g. 100.50 or -25.00).")
		}
	}
}

// promptCategory offers the type-specific suggested list plus a custom
// free-text option, re-prompting until a selection is made.
func (s *Shell) promptCategory(tt core.TransactionType) (string, error) {
	categories := core.SuggestedCategories(tt)
	fmt.Fprintf(s.out, "\nAvailable %s categories:\n", tt)
	for i, c := range categories {
		fmt.Fprintf(s.out, "  %d. %s\n", i+1, c)
	}
	fmt.Fprintf(s.out, "  %d. Custom category\n", len(categories)+1)

	for {
		input, err := s.readLine(fmt.Sprintf("Select category (1-%d): ", len(categories)+1))
		if err != nil {
			return "", err
		}
		choice, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a valid number.")
			continue
		}
		switch {
		case choice >= 1 && choice <= len(categories):
			return categories[choice-1], nil
		case choice == len(categories)+1:
			custom, err := s.readLine("Enter custom category: ")
			if err != nil {
				return "", err
			}
			if custom == "" {
				fmt.Fprintln(s.out, "Custom category cannot be empty.")
				continue
			}
			return custom, nil
		default:
			fmt.Fprintf(s.out, "Invalid choice. Please enter a number between 1 and %d.\n", len(categories)+1)
		}
	}
}

// promptYesNo returns true only for an explicit "y".
func (s *Shell) promptYesNo(prompt string) (bool, error) {
	input, err := s.readLine(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(input, "y"), nil
}
