package models

import (
	// External Packages
	"github.com/shopspring/decimal"
)

// AggregatedRecord holds every record of one side sharing a normalized key.
type AggregatedRecord struct {
	Key string `json:"key"`
	// Label is the counterparty of the first record in source order, skipping empty
	// cells on the right side. It is arbitrary when members disagree.
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	// PaidAmount is only valid on the right side.
	PaidAmount decimal.NullDecimal `json:"paid_amount"`
	Count      int                 `json:"count"`
}

// Fees is paid minus original amount; null on the left side.
func (a AggregatedRecord) Fees() decimal.NullDecimal {
	if !a.PaidAmount.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(a.PaidAmount.Decimal.Sub(a.Amount))
}

// Membership is the outer-join classification of a key.
type Membership string

const (
	MatchedBoth Membership = "both"
	OnlyLeft    Membership = "left_only"
	OnlyRight   Membership = "right_only"
)

// ComparisonRow is one key of the outer join. The absent side is nil.
type ComparisonRow struct {
	Key           string              `json:"key"`
	Status        Membership          `json:"status"`
	Left          *AggregatedRecord   `json:"left"`
	Right         *AggregatedRecord   `json:"right"`
	Fees          decimal.NullDecimal `json:"fees"`
	NetDifference decimal.NullDecimal `json:"net_difference"`
}

type ValidationStatus string

const (
	ValidationSuccess ValidationStatus = "SUCCESS"
	ValidationFailure ValidationStatus = "FAILURE"
)

// Validation compares the overall delta with the sum of the per-class discrepancies.
type Validation struct {
	Status        ValidationStatus `json:"status"`
	ActualDelta   decimal.Decimal  `json:"actual_delta"`
	ComputedDelta decimal.Decimal  `json:"computed_delta"`
}

// Result is the output of one reconciliation.
type Result struct {
	Left       []AggregatedRecord `json:"left"`
	Right      []AggregatedRecord `json:"right"`
	Rows       []ComparisonRow    `json:"rows"`
	Validation Validation         `json:"validation"`
}

// RowsWith returns the rows of the given membership, in key order.
func (r *Result) RowsWith(status Membership) []ComparisonRow {
	var rows []ComparisonRow
	for _, row := range r.Rows {
		if row.Status == status {
			rows = append(rows, row)
		}
	}
	return rows
}
