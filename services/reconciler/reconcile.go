package reconciler

import (
	// Go Internal Packages
	"sort"

	// Local Packages
	models "ledger-recon/models"

	// External Packages
	"github.com/shopspring/decimal"
)

// Tolerance is the absolute difference below which two amounts are considered equal.
var Tolerance = decimal.New(1, -2)

// Reconcile joins both aggregated sides on their key (full outer join), classifies
// every key and derives fees and net differences. Rows are sorted by key.
func Reconcile(left, right []models.AggregatedRecord) *models.Result {
	leftByKey := make(map[string]*models.AggregatedRecord, len(left))
	for i := range left {
		leftByKey[left[i].Key] = &left[i]
	}
	rightByKey := make(map[string]*models.AggregatedRecord, len(right))
	for i := range right {
		rightByKey[right[i].Key] = &right[i]
	}

	keys := make([]string, 0, len(left)+len(right))
	for k := range leftByKey {
		keys = append(keys, k)
	}
	for k := range rightByKey {
		if _, ok := leftByKey[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	rows := make([]models.ComparisonRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, compare(k, leftByKey[k], rightByKey[k]))
	}

	return &models.Result{
		Left:       left,
		Right:      right,
		Rows:       rows,
		Validation: Validate(left, right, rows),
	}
}

func compare(key string, l, r *models.AggregatedRecord) models.ComparisonRow {
	row := models.ComparisonRow{Key: key, Left: l, Right: r}

	switch {
	case l != nil && r != nil:
		row.Status = models.MatchedBoth
	case l != nil:
		row.Status = models.OnlyLeft
	default:
		row.Status = models.OnlyRight
	}

	if r != nil {
		row.Fees = r.Fees()
	}
	if row.Status == models.MatchedBoth {
		row.NetDifference = decimal.NewNullDecimal(paid(r).Sub(l.Amount))
	}
	return row
}

// Discrepancies returns the matched rows whose net difference exceeds Tolerance.
func Discrepancies(result *models.Result) []models.ComparisonRow {
	var out []models.ComparisonRow
	for _, row := range result.Rows {
		if row.Status == models.MatchedBoth && row.NetDifference.Decimal.Abs().GreaterThan(Tolerance) {
			out = append(out, row)
		}
	}
	return out
}

func paid(r *models.AggregatedRecord) decimal.Decimal {
	if r == nil || !r.PaidAmount.Valid {
		return decimal.Zero
	}
	return r.PaidAmount.Decimal
}
