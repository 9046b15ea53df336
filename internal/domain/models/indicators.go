package models

import "math"

// IndicatorRow is one provider row tagged with its instrument symbol.
// Column names follow the provider vocabulary (pct_chg, vol, amount,
// net_mf_vol, fin_bal, ...).
type IndicatorRow struct {
	Symbol string
	Values map[string]float64
}

// IndicatorTable is a row-per-(symbol, date) table with named numeric columns.
// Three instances exist per sector per run: daily OHLCV, money flow, margin.
type IndicatorTable struct {
	Rows []IndicatorRow
}

// Empty reports whether the table has no rows.
func (t IndicatorTable) Empty() bool { return len(t.Rows) == 0 }

// Append adds rows to the table, preserving insertion order.
func (t *IndicatorTable) Append(rows ...IndicatorRow) {
	t.Rows = append(t.Rows, rows...)
}

// Mean returns the arithmetic mean of a column over all rows that carry it.
// Missing cells and NaN values are treated as absent observations; a column
// with no observations contributes 0.0.
func (t IndicatorTable) Mean(column string) float64 {
	var sum float64
	var n int
	for _, r := range t.Rows {
		v, ok := r.Values[column]
		if !ok || math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0.0
	}
	return sum / float64(n)
}
