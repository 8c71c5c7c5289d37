// Package export writes on-demand artifacts derived from the ledger:
// a CSV table of all transactions and a PNG chart of the monthly trend.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
)

// ErrNoData signals there is nothing to export.
var ErrNoData = errors.New("no data to export")

const csvHeader = "ID,Date,Type,Amount,Category,Description,Source"

// CSV writes all transactions as a comma-separated table and returns
// the created filename. The filename carries a timestamp suffix to
// avoid collisions.
//
// Free-text fields are written as-is: commas or quotes inside a
// description will shift columns. That matches the historical export
// format and is deliberately not fixed here.
func CSV(dir string, txs []core.Transaction, now time.Time) (string, error) {
	if len(txs) == 0 {
		return "", ErrNoData
	}

	var b strings.Builder
	b.WriteString(csvHeader + "\n")
	for _, t := range txs {
		fmt.Fprintf(&b, "%d,%s,%s,%s,%s,%s,%s\n",
			t.ID,
			t.Date.Display(),
			t.Type,
			strconv.FormatFloat(t.Amount, 'f', -1, 64),
			t.Category,
			t.Description,
			t.Source)
	}

	path := filepath.Join(dir, fmt.Sprintf("finance_export_%s.csv", now.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}
