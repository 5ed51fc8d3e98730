package report

import (
	// Local Packages
	models "ledger-recon/models"
	reconciler "ledger-recon/services/reconciler"

	// External Packages
	"github.com/shopspring/decimal"
)

// Metric is one line of the summary. A nil Value is a visual separator.
type Metric struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type DifferenceLine struct {
	Key            string          `json:"key"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	Fees           decimal.Decimal `json:"fees"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	LeftAmount     decimal.Decimal `json:"left_amount"`
	NetDifference  decimal.Decimal `json:"net_difference"`
}

type LeftOnlyLine struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type RightOnlyLine struct {
	Key            string          `json:"key"`
	Label          string          `json:"label"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	Fees           decimal.Decimal `json:"fees"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
}

// Bundle is everything the report sinks receive for one run.
type Bundle struct {
	RunID       string            `json:"run_id"`
	Summary     []Metric          `json:"summary"`
	Differences []DifferenceLine  `json:"differences"`
	LeftOnly    []LeftOnlyLine    `json:"left_only"`
	RightOnly   []RightOnlyLine   `json:"right_only"`
	Validation  models.Validation `json:"validation"`
}

const (
	MetricLeftDocuments  = "Unique documents (our ledger)"
	MetricLeftTotal      = "Total value (our ledger)"
	MetricRightDocuments = "Unique documents (counterparty)"
	MetricRightOriginal  = "Original value (counterparty)"
	MetricRightPaid      = "Paid value (counterparty)"
	MetricRightFees      = "Total interest/fees (counterparty)"
	MetricMatched        = "Matching documents"
	MetricDiscrepant     = "Documents with value difference"
	MetricNetDifference  = "Total net difference"
	MetricLeftOnly       = "Documents only in our ledger"
	MetricLeftOnlyTotal  = "Total value (only in our ledger)"
	MetricRightOnly      = "Documents only in counterparty ledger"
	MetricRightOnlyTotal = "Total value (only in counterparty ledger)"
	MetricValidation     = "FINAL VALIDATION"
	MetricActualDelta    = "Actual difference (counterparty paid - our total)"
	MetricComputedDelta  = "Computed difference (sum of discrepancies)"
)

// Assemble turns a reconciliation result into the summary and detail tables.
func Assemble(result *models.Result) *Bundle {
	b := &Bundle{Validation: result.Validation}

	leftTotal := decimal.Zero
	for _, l := range result.Left {
		leftTotal = leftTotal.Add(l.Amount)
	}
	rightOriginal, rightPaid, rightFees := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range result.Right {
		rightOriginal = rightOriginal.Add(r.Amount)
		rightPaid = rightPaid.Add(r.PaidAmount.Decimal)
		rightFees = rightFees.Add(r.Fees().Decimal)
	}

	matched := result.RowsWith(models.MatchedBoth)
	netTotal := decimal.Zero
	for _, row := range matched {
		netTotal = netTotal.Add(row.NetDifference.Decimal)
	}

	for _, row := range reconciler.Discrepancies(result) {
		b.Differences = append(b.Differences, DifferenceLine{
			Key:            row.Key,
			OriginalAmount: row.Right.Amount,
			Fees:           row.Fees.Decimal,
			PaidAmount:     row.Right.PaidAmount.Decimal,
			LeftAmount:     row.Left.Amount,
			NetDifference:  row.NetDifference.Decimal,
		})
	}

	leftOnlyTotal := decimal.Zero
	for _, row := range result.RowsWith(models.OnlyLeft) {
		leftOnlyTotal = leftOnlyTotal.Add(row.Left.Amount)
		b.LeftOnly = append(b.LeftOnly, LeftOnlyLine{Key: row.Key, Label: row.Left.Label, Amount: row.Left.Amount})
	}

	rightOnlyTotal := decimal.Zero
	for _, row := range result.RowsWith(models.OnlyRight) {
		rightOnlyTotal = rightOnlyTotal.Add(row.Right.PaidAmount.Decimal)
		b.RightOnly = append(b.RightOnly, RightOnlyLine{
			Key:            row.Key,
			Label:          row.Right.Label,
			OriginalAmount: row.Right.Amount,
			Fees:           row.Fees.Decimal,
			PaidAmount:     row.Right.PaidAmount.Decimal,
		})
	}

	v := result.Validation
	b.Summary = []Metric{
		{MetricLeftDocuments, len(result.Left)},
		{MetricLeftTotal, leftTotal},
		{},
		{MetricRightDocuments, len(result.Right)},
		{MetricRightOriginal, rightOriginal},
		{MetricRightPaid, rightPaid},
		{MetricRightFees, rightFees},
		{},
		{MetricMatched, len(matched)},
		{MetricDiscrepant, len(b.Differences)},
		{MetricNetDifference, netTotal},
		{},
		{MetricLeftOnly, len(b.LeftOnly)},
		{MetricLeftOnlyTotal, leftOnlyTotal},
		{},
		{MetricRightOnly, len(b.RightOnly)},
		{MetricRightOnlyTotal, rightOnlyTotal},
		{},
		{MetricValidation, string(v.Status)},
		{MetricActualDelta, v.ActualDelta},
		{MetricComputedDelta, v.ComputedDelta},
	}
	return b
}

// Metric looks a summary value up by name.
func (b *Bundle) Metric(name string) (any, bool) {
	for _, m := range b.Summary {
		if m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}
