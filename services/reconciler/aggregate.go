package reconciler

import (
	// Go Internal Packages
	"sort"

	// Local Packages
	models "ledger-recon/models"
	parsers "ledger-recon/services/parsers"

	// External Packages
	"github.com/shopspring/decimal"
)

// KeyedRecord is a record with its join key attached.
type KeyedRecord struct {
	Key string
	models.TransactionRecord
}

// Normalize computes the join key of every record, keeping input order.
func Normalize(records []models.TransactionRecord) []KeyedRecord {
	keyed := make([]KeyedRecord, len(records))
	for i, r := range records {
		keyed[i] = KeyedRecord{Key: parsers.NormalizeIdentifier(r.Identifier), TransactionRecord: r}
	}
	return keyed
}

// Aggregate folds records sharing a key into one AggregatedRecord per key, sorted by
// key. Amounts are summed, null amounts contribute nothing. The label is the
// counterparty of the first record in input order. On the right side empty cells
// are missing values and are skipped until a record carries one. No attempt is made
// to pick a better label when members disagree. PaidAmount is only tracked for the
// right side, where it is always valid.
func Aggregate(side models.Side, records []KeyedRecord) []models.AggregatedRecord {
	positions := make(map[string]int)
	var out []models.AggregatedRecord

	for _, r := range records {
		i, ok := positions[r.Key]
		if !ok {
			i = len(out)
			positions[r.Key] = i
			agg := models.AggregatedRecord{Key: r.Key}
			if side == models.SideRight {
				agg.PaidAmount = decimal.NewNullDecimal(decimal.Zero)
			}
			out = append(out, agg)
		}

		agg := &out[i]
		agg.Count++
		switch {
		case agg.Count == 1:
			agg.Label = r.Counterparty
		case side == models.SideRight && agg.Label == "":
			agg.Label = r.Counterparty
		}
		if r.Amount.Valid {
			agg.Amount = agg.Amount.Add(r.Amount.Decimal)
		}
		if side == models.SideRight && r.PaidAmount.Valid {
			agg.PaidAmount.Decimal = agg.PaidAmount.Decimal.Add(r.PaidAmount.Decimal)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
