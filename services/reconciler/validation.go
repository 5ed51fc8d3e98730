package reconciler

import (
	// Local Packages
	models "ledger-recon/models"

	// External Packages
	"github.com/shopspring/decimal"
)

// Validate recomputes the overall delta two ways. The actual delta is taken from the
// aggregated sides, the computed delta from the classified rows:
//
//	actual   = Σ right.paid − Σ left.amount
//	computed = Σ matched (right.paid − left.amount) + Σ right-only right.paid − Σ left-only left.amount
//
// Every key falls in exactly one class, so both are equal unless a row was lost,
// duplicated or misclassified.
func Validate(left, right []models.AggregatedRecord, rows []models.ComparisonRow) models.Validation {
	actual := decimal.Zero
	for i := range right {
		actual = actual.Add(paid(&right[i]))
	}
	for _, l := range left {
		actual = actual.Sub(l.Amount)
	}

	computed := decimal.Zero
	for _, row := range rows {
		switch row.Status {
		case models.MatchedBoth:
			computed = computed.Add(row.NetDifference.Decimal)
		case models.OnlyLeft:
			computed = computed.Sub(row.Left.Amount)
		case models.OnlyRight:
			computed = computed.Add(paid(row.Right))
		}
	}

	status := models.ValidationSuccess
	if actual.Sub(computed).Abs().GreaterThanOrEqual(Tolerance) {
		status = models.ValidationFailure
	}
	return models.Validation{Status: status, ActualDelta: actual, ComputedDelta: computed}
}
