package export

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"fintrack/internal/core"
)

func exportTime() time.Time {
	return time.Date(2025, time.May, 20, 14, 30, 5, 0, time.Local)
}

func TestCSVExport(t *testing.T) {
	dir := t.TempDir()
	txs := []core.Transaction{
		{ID: 1, Amount: 2000, Type: core.Income, Category: "Salary", Source: "Acme", Description: "May salary", Date: core.NewTimestamp(2025, 5, 1, 9, 0)},
		{ID: 2, Amount: -20.5, Type: core.Expense, Category: "Food", Description: "refund", Date: core.NewTimestamp(2025, 5, 3, 10, 15)},
	}

	path, err := CSV(dir, txs, exportTime())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasSuffix(path, "finance_export_20250520_143005.csv") {
		t.Fatalf("unexpected filename: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "ID,Date,Type,Amount,Category,Description,Source" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if lines[1] != "1,2025-05-01 09:00,income,2000,Salary,May salary,Acme" {
		t.Fatalf("unexpected row: %s", lines[1])
	}
	if lines[2] != "2,2025-05-03 10:15,expense,-20.5,Food,refund," {
		t.Fatalf("unexpected row: %s", lines[2])
	}
}

// Free-text fields are not escaped; a comma in a description shifts
// columns. This is a known, accepted limitation of the format.
func TestCSVDoesNotEscapeFreeText(t *testing.T) {
	dir := t.TempDir()
	txs := []core.Transaction{
		{ID: 1, Amount: 10, Type: core.Expense, Category: "Food", Description: "bread, milk", Date: core.NewTimestamp(2025, 5, 1, 9, 0)},
	}

	path, err := CSV(dir, txs, exportTime())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "Food,bread, milk,") {
		t.Fatalf("expected raw unescaped description, got:\n%s", data)
	}
}

func TestCSVEmptyLedger(t *testing.T) {
	if _, err := CSV(t.TempDir(), nil, exportTime()); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestTrendChartNeedsTwoMonths(t *testing.T) {
	trend := []core.MonthTotals{{Year: 2025, Month: time.May, Income: 100, Expenses: 50}}
	if _, err := TrendChart(t.TempDir(), trend, exportTime()); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for a single month, got %v", err)
	}
}

func TestTrendChartWritesPNG(t *testing.T) {
	dir := t.TempDir()
	trend := []core.MonthTotals{
		{Year: 2025, Month: time.April, Income: 1800, Expenses: 1200},
		{Year: 2025, Month: time.May, Income: 2000, Expenses: 900},
	}
	path, err := TrendChart(dir, trend, exportTime())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected non-empty chart file")
	}
}
