package models

import (
	// External Packages
	"github.com/shopspring/decimal"
)

// Side identifies which ledger a value came from.
type Side string

const (
	// SideLeft is our own semi-structured ledger.
	SideLeft Side = "left"
	// SideRight is the counterparty's structured ledger.
	SideRight Side = "right"
)

// TransactionRecord is one extracted ledger line. On the left side Amount is always
// valid and positive and PaidAmount is null. On the right side Amount carries the
// original (face) value and PaidAmount the settled value; either may be null.
type TransactionRecord struct {
	Identifier   string              `json:"identifier"`
	Counterparty string              `json:"counterparty"`
	Amount       decimal.NullDecimal `json:"amount"`
	PaidAmount   decimal.NullDecimal `json:"paid_amount"`
	SourceIndex  int                 `json:"source_index"`
}

// RejectedRow is an input row absorbed during parsing.
type RejectedRow struct {
	Side   Side     `json:"side"`
	Index  int      `json:"index"`
	Raw    []string `json:"raw"`
	Reason string   `json:"reason"`
}

const (
	RejectMalformed    = "malformed row"
	RejectNoIdentifier = "missing identifier"
	RejectUnparsable   = "unparsable amount"
	RejectNonPositive  = "non-positive amount"
)

// Progress is a discrete checkpoint of a reconciliation run.
type Progress struct {
	Percent int    `json:"percent"`
	Status  string `json:"status"`
}
