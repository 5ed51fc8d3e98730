package parsers

import (
	// Go Internal Packages
	"io"
	"strings"

	// Local Packages
	errors "ledger-recon/errors"
	models "ledger-recon/models"

	// External Packages
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type columnIndex struct {
	document, counterparty, original, paid int
}

// ParseStructured maps the counterparty's export, which carries a header row, into
// records. Every row is kept; amounts that do not parse stay null.
func (p *Parser) ParseStructured(r io.Reader) (*ParseResult, error) {
	res := &ParseResult{}
	side := models.SideRight
	opts := p.opts.Structured

	var (
		header []string
		rows   [][]string
		starts []int
	)
	onRow := func(index int, row []string) {
		if header == nil {
			header = trimAll(row)
			if len(header) > 0 {
				header[0] = strings.TrimPrefix(header[0], "\ufeff")
			}
			return
		}
		if len(row) > len(header) {
			p.Logger.Warn("skipping malformed row",
				zap.String("side", string(side)), zap.Int("index", index),
				zap.Int("expected_fields", len(header)), zap.Int("fields", len(row)))
			res.reject(side, index, row, models.RejectMalformed)
			return
		}
		rows = append(rows, row)
		starts = append(starts, index)
	}
	onBad := func(index int, err error) {
		p.Logger.Warn("skipping malformed row", zap.String("side", string(side)), zap.Int("index", index), zap.Error(err))
		res.reject(side, index, nil, models.RejectMalformed)
	}

	if err := readRows(r, p.structuredEnc, opts.Delimiter, onRow, onBad); err != nil {
		return nil, err
	}
	if header == nil {
		return nil, errors.E(errors.Invalid, "structured source has no header row", nil)
	}

	cols, err := resolveColumns(header, opts.Columns)
	if err != nil {
		return nil, err
	}

	originalNumeric := isNumericColumn(rows, cols.original)
	paidNumeric := isNumericColumn(rows, cols.paid)

	res.Records = make([]models.TransactionRecord, 0, len(rows))
	for i, row := range rows {
		res.Records = append(res.Records, models.TransactionRecord{
			Identifier:   strings.TrimSpace(field(row, cols.document)),
			Counterparty: strings.TrimSpace(field(row, cols.counterparty)),
			Amount:       cellAmount(field(row, cols.original), originalNumeric),
			PaidAmount:   cellAmount(field(row, cols.paid), paidNumeric),
			SourceIndex:  starts[i],
		})
	}
	return res, nil
}

func resolveColumns(header []string, names Columns) (columnIndex, error) {
	find := func(aliases []string) (int, error) {
		for _, alias := range aliases {
			for i, h := range header {
				if h == alias {
					return i, nil
				}
			}
		}
		name := ""
		if len(aliases) > 0 {
			name = aliases[0]
		}
		return -1, errors.MissingColumnErr(name, header)
	}

	var (
		idx columnIndex
		err error
	)
	if idx.document, err = find(names.Document); err != nil {
		return idx, err
	}
	if idx.counterparty, err = find(names.Counterparty); err != nil {
		return idx, err
	}
	if idx.original, err = find(names.Original); err != nil {
		return idx, err
	}
	if idx.paid, err = find(names.Paid); err != nil {
		return idx, err
	}
	return idx, nil
}

// isNumericColumn reports whether every non-empty cell is a plain dot-decimal
// number. Such columns were exported as numbers, not as locale-formatted text,
// and must not have their '.' stripped.
func isNumericColumn(rows [][]string, col int) bool {
	seen := false
	for _, row := range rows {
		cell := strings.TrimSpace(field(row, col))
		if cell == "" {
			continue
		}
		if _, ok := parsePlain(cell); !ok {
			return false
		}
		seen = true
	}
	return seen
}

func cellAmount(cell string, numeric bool) decimal.NullDecimal {
	cell = strings.TrimSpace(cell)
	if numeric && cell != "" {
		d, ok := parsePlain(cell)
		if !ok {
			return decimal.NullDecimal{}
		}
		return ParseAmount(d)
	}
	return ParseAmount(cell)
}
