package report

import (
	// Go Internal Packages
	"fmt"

	// External Packages
	"github.com/shopspring/decimal"
)

const (
	TableSummary     = "summary"
	TableDifferences = "value_differences"
	TableLeftOnly    = "only_in_our_ledger"
	TableRightOnly   = "only_in_counterparty_ledger"
)

// Table is a sink-agnostic rendering of one sheet of the report.
type Table struct {
	Name   string     `json:"name"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Tables renders the bundle in sheet order with amounts as two-decimal strings.
func (b *Bundle) Tables() []Table {
	summary := Table{Name: TableSummary, Header: []string{"Metric", "Value"}}
	for _, m := range b.Summary {
		summary.Rows = append(summary.Rows, []string{m.Name, cell(m.Value)})
	}

	diffs := Table{
		Name:   TableDifferences,
		Header: []string{"Document", "Original Value", "Fees", "Paid Value", "Our Value", "Net Difference"},
	}
	for _, d := range b.Differences {
		diffs.Rows = append(diffs.Rows, []string{
			d.Key, money(d.OriginalAmount), money(d.Fees), money(d.PaidAmount), money(d.LeftAmount), money(d.NetDifference),
		})
	}

	left := Table{Name: TableLeftOnly, Header: []string{"Document", "Counterparty", "Value"}}
	for _, l := range b.LeftOnly {
		left.Rows = append(left.Rows, []string{l.Key, l.Label, money(l.Amount)})
	}

	right := Table{
		Name:   TableRightOnly,
		Header: []string{"Document", "Counterparty", "Original Value", "Fees", "Paid Value"},
	}
	for _, r := range b.RightOnly {
		right.Rows = append(right.Rows, []string{r.Key, r.Label, money(r.OriginalAmount), money(r.Fees), money(r.PaidAmount)})
	}

	return []Table{summary, diffs, left, right}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return money(t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
