package parsers

import (
	// Go Internal Packages
	"io"
	"strings"

	// Local Packages
	models "ledger-recon/models"

	// External Packages
	"go.uber.org/zap"
)

// ParseUnstructured extracts records from our own ledger export. Every row goes
// through the ranked rules; rows whose amount is missing, unparsable, zero or
// negative are dropped since the export mixes postings with informational lines.
// Rows wider than the first row are skipped as malformed.
func (p *Parser) ParseUnstructured(r io.Reader) (*ParseResult, error) {
	res := &ParseResult{}
	side := models.SideLeft
	width := 0

	onRow := func(index int, row []string) {
		if width == 0 {
			width = len(row)
		}
		if len(row) > width {
			p.Logger.Warn("skipping malformed row",
				zap.String("side", string(side)), zap.Int("index", index),
				zap.Int("expected_fields", width), zap.Int("fields", len(row)))
			res.reject(side, index, row, models.RejectMalformed)
			return
		}

		description := strings.TrimSpace(field(row, 0))
		ext, ruleName := classify(p.rules, description, index)
		if ext.identifier == "" {
			res.reject(side, index, row, models.RejectNoIdentifier)
			return
		}

		amount := ParseAmount(field(row, 1))
		switch {
		case !amount.Valid:
			p.Logger.Debug("dropping row", zap.Int("index", index), zap.String("reason", models.RejectUnparsable))
			res.reject(side, index, row, models.RejectUnparsable)
			return
		case !amount.Decimal.IsPositive():
			p.Logger.Debug("dropping row", zap.Int("index", index), zap.String("reason", models.RejectNonPositive))
			res.reject(side, index, row, models.RejectNonPositive)
			return
		}

		p.Logger.Debug("extracted record",
			zap.Int("index", index), zap.String("rule", ruleName), zap.String("identifier", ext.identifier))
		res.Records = append(res.Records, models.TransactionRecord{
			Identifier:   ext.identifier,
			Counterparty: ext.counterparty,
			Amount:       amount,
			SourceIndex:  index,
		})
	}

	onBad := func(index int, err error) {
		p.Logger.Warn("skipping malformed row", zap.String("side", string(side)), zap.Int("index", index), zap.Error(err))
		res.reject(side, index, nil, models.RejectMalformed)
	}

	opts := p.opts.Unstructured
	if err := readRows(r, p.unstructuredEnc, opts.Delimiter, onRow, onBad); err != nil {
		return nil, err
	}
	return res, nil
}
