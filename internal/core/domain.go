package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Timestamp layouts. Stored values are timezone-naive local wall-clock
// strings; parsing also accepts RFC3339 so hand-edited files keep working.
const (
	timestampLayout      = "2006-01-02T15:04:05.999999"
	timestampShortLayout = "2006-01-02T15:04:05"
	DisplayLayout        = "2006-01-02 15:04"
	DateOnlyLayout       = "2006-01-02"
)

type (
	TransactionType string

	// Timestamp wraps time.Time so the store file keeps the naive
	// ISO-8601 representation the ledger has always used.
	Timestamp struct {
		time.Time
	}

	// Transaction is a single recorded income or expense event.
	// Source is only meaningful for income transactions.
	Transaction struct {
		ID          int64           `json:"id"`
		Amount      float64         `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Source      string          `json:"source,omitempty"`
		Description string          `json:"description,omitempty"`
		Date        Timestamp       `json:"date"`
	}
)

var (
	ErrEmptyAmount    = errors.New("amount cannot be empty")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrZeroAmount     = errors.New("amount cannot be zero")
	ErrNegativeAmount = errors.New("negative amounts are not allowed here")
	ErrEmptyCategory  = errors.New("category cannot be empty")
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidBudget  = errors.New("budget amount must be positive")
	ErrEmptyKeyword   = errors.New("search keyword cannot be empty")
)

// Suggested categories offered per transaction type. Free-form custom
// categories are always accepted as well; nothing validates against
// these lists.
var suggestedCategories = map[TransactionType][]string{
	Income:  {"Salary", "Freelance", "Investment", "Gift", "Refund", "Other"},
	Expense: {"Food", "Transportation", "Entertainment", "Shopping", "Bills", "Healthcare", "Education", "Refund", "Other"},
}

func (tt TransactionType) IsValid() bool {
	return tt == Income || tt == Expense
}

// String implements fmt.Stringer
func (tt TransactionType) String() string {
	return string(tt)
}

// SuggestedCategories returns the predefined category list for a type.
// The returned slice is a copy and safe to mutate.
func SuggestedCategories(tt TransactionType) []string {
	return append([]string(nil), suggestedCategories[tt]...)
}

// Now returns the current local wall-clock time as a Timestamp.
func Now() Timestamp {
	return Timestamp{Time: time.Now()}
}

// NewTimestamp builds a Timestamp from explicit parts, mostly for tests.
func NewTimestamp(year, month, day, hour, min int) Timestamp {
	return Timestamp{Time: time.Date(year, time.Month(month), day, hour, min, 0, 0, time.Local)}
}

// ParseTimestamp accepts the naive layouts the store file uses plus
// RFC3339. All filter comparisons go through Timestamps produced here,
// never through repeated string parsing.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{timestampLayout, timestampShortLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseDate parses a calendar date (YYYY-MM-DD) at midnight local time.
func ParseDate(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(DateOnlyLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Timestamp{Time: t}, nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.Format(timestampLayout) + `"`), nil
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// In reports whether the timestamp falls in the given calendar month.
func (ts Timestamp) In(year int, month time.Month) bool {
	return ts.Year() == year && ts.Month() == month
}

// Display renders the timestamp the way history views and the CSV
// export show it.
func (ts Timestamp) Display() string {
	return ts.Format(DisplayLayout)
}

// StoreString renders the timestamp the way both persistence backends
// store it.
func (ts Timestamp) StoreString() string {
	return ts.Format(timestampLayout)
}

func (t Transaction) Validate() error {
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	if t.Amount == 0 {
		return ErrZeroAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// IsRefund reports whether the amount carries the correction sign:
// a clawback for income, a refund/adjustment for an expense.
func (t Transaction) IsRefund() bool {
	return t.Amount < 0
}

// ValidateBudgetAmount enforces the strictly-positive rule for budgets.
func ValidateBudgetAmount(amount float64) error {
	if amount <= 0 {
		return ErrInvalidBudget
	}
	return nil
}
