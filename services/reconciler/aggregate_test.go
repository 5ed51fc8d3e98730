package reconciler

import (
	// Go Internal Packages
	"strings"
	"testing"
	"time"

	// Local Packages
	models "ledger-recon/models"
	parsers "ledger-recon/services/parsers"

	// External Packages
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func record(id, label, amount string, index int) models.TransactionRecord {
	return models.TransactionRecord{
		Identifier:   id,
		Counterparty: label,
		Amount:       decimal.NewNullDecimal(dec(amount)),
		SourceIndex:  index,
	}
}

func TestAggregateLeft(t *testing.T) {
	keyed := Normalize([]models.TransactionRecord{
		record("200/1", "Bia", "10.00", 0),
		record("100/01", "Alice", "1574.00", 1),
		record("100/001", "Alicia", "26.00", 2),
	})

	aggs := Aggregate(models.SideLeft, keyed)
	require.Len(t, aggs, 2)

	assert.Equal(t, "100/001", aggs[0].Key)
	assert.True(t, aggs[0].Amount.Equal(dec("1600")))
	assert.Equal(t, "Alice", aggs[0].Label, "first record in source order wins")
	assert.Equal(t, 2, aggs[0].Count)
	assert.False(t, aggs[0].PaidAmount.Valid)
	assert.False(t, aggs[0].Fees().Valid)

	assert.Equal(t, "200/001", aggs[1].Key)
}

func TestAggregateRight(t *testing.T) {
	keyed := Normalize([]models.TransactionRecord{
		{Identifier: "7/1", Counterparty: "", Amount: decimal.NewNullDecimal(dec("50")), PaidAmount: decimal.NewNullDecimal(dec("52"))},
		{Identifier: "7-01", Counterparty: "Caio", Amount: decimal.NullDecimal{}, PaidAmount: decimal.NewNullDecimal(dec("3"))},
		{Identifier: "8/1", Counterparty: "Duda", Amount: decimal.NewNullDecimal(dec("9")), PaidAmount: decimal.NullDecimal{}},
	})

	aggs := Aggregate(models.SideRight, keyed)
	require.Len(t, aggs, 2)

	assert.Equal(t, "7/001", aggs[0].Key)
	assert.Equal(t, "Caio", aggs[0].Label, "empty labels are skipped")
	assert.True(t, aggs[0].Amount.Equal(dec("50")))
	require.True(t, aggs[0].PaidAmount.Valid)
	assert.True(t, aggs[0].PaidAmount.Decimal.Equal(dec("55")))
	assert.True(t, aggs[0].Fees().Decimal.Equal(dec("5")))

	assert.Equal(t, "8/001", aggs[1].Key)
	require.True(t, aggs[1].PaidAmount.Valid)
	assert.True(t, aggs[1].PaidAmount.Decimal.IsZero())
}

func TestSpellingsOfOneDocumentAggregateTogether(t *testing.T) {
	p, err := parsers.NewParser(zap.NewNop(), parsers.DefaultOptions())
	require.NoError(t, err)

	input := "Recebimento cfe Dpl 100/01 - Alice;60,00\nRecebimento cfe Dpl 100/001 - Alice;40,00\n"
	res, err := p.ParseUnstructured(strings.NewReader(input))
	require.NoError(t, err)

	aggs := Aggregate(models.SideLeft, Normalize(res.Records))
	require.Len(t, aggs, 1)
	assert.Equal(t, "100/001", aggs[0].Key)
	assert.True(t, aggs[0].Amount.Equal(dec("100")))
}

func TestSyntheticKeysNeverCollide(t *testing.T) {
	p, err := parsers.NewParser(zap.NewNop(), parsers.DefaultOptions())
	require.NoError(t, err)

	input := "Reembolso Duplicata;10,00\nTarifa;1,00\nReembolso Duplicata;10,00\n"
	res, err := p.ParseUnstructured(strings.NewReader(input))
	require.NoError(t, err)

	aggs := Aggregate(models.SideLeft, Normalize(res.Records))
	require.Len(t, aggs, 3)

	var reimbursements []string
	for _, a := range aggs {
		if strings.HasPrefix(a.Key, parsers.PrefixReimbursementNoDoc) {
			reimbursements = append(reimbursements, a.Key)
		}
	}
	assert.Equal(t, []string{"REIMBURSEMENT_NO_DOC_0", "REIMBURSEMENT_NO_DOC_2"}, reimbursements)
}

func TestExponentAmountIsRejectedBeforeAggregation(t *testing.T) {
	p, err := parsers.NewParser(zap.NewNop(), parsers.DefaultOptions())
	require.NoError(t, err)

	input := "Recebimento cfe Dpl 1/1 - A;1e999999999\nRecebimento cfe Dpl 1/1 - A;10,00\n"
	res, err := p.ParseUnstructured(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, models.RejectUnparsable, res.Rejected[0].Reason)

	done := make(chan *models.Result, 1)
	go func() {
		left := Aggregate(models.SideLeft, Normalize(res.Records))
		done <- Reconcile(left, nil)
	}()
	select {
	case result := <-done:
		require.Len(t, result.Rows, 1)
		assert.True(t, result.Rows[0].Left.Amount.Equal(dec("10")))
	case <-time.After(5 * time.Second):
		t.Fatal("aggregation did not finish")
	}
}

func TestLeftLabelIsFirstRecordEvenWhenEmpty(t *testing.T) {
	p, err := parsers.NewParser(zap.NewNop(), parsers.DefaultOptions())
	require.NoError(t, err)

	input := "Recebimento cfe Dpl 100/01-;60,00\nRecebimento cfe Dpl 100/001 - Alice;40,00\n"
	res, err := p.ParseUnstructured(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, res.Records, 2)

	aggs := Aggregate(models.SideLeft, Normalize(res.Records))
	require.Len(t, aggs, 1)
	assert.Equal(t, "", aggs[0].Label)
	assert.Equal(t, 2, aggs[0].Count)
}
