package parsers

import (
	// Go Internal Packages
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	// Local Packages
	errors "ledger-recon/errors"
	models "ledger-recon/models"

	// External Packages
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// UnstructuredOptions describes our own ledger export: no header, description in
// the first column and amount in the second.
type UnstructuredOptions struct {
	Delimiter     rune
	Encoding      string
	PaymentMarker string
}

// Columns lists the accepted header names of each structured field.
type Columns struct {
	Document     []string
	Counterparty []string
	Original     []string
	Paid         []string
}

type StructuredOptions struct {
	Delimiter rune
	Encoding  string
	Columns   Columns
}

type Options struct {
	Unstructured UnstructuredOptions
	Structured   StructuredOptions
}

// DefaultOptions matches the exports the tool was built for.
func DefaultOptions() Options {
	return Options{
		Unstructured: UnstructuredOptions{Delimiter: ';', Encoding: "ISO-8859-1", PaymentMarker: "DIAMANTE"},
		Structured: StructuredOptions{
			Delimiter: ',',
			Encoding:  "ISO-8859-1",
			Columns: Columns{
				Document:     []string{"Documento", "Document"},
				Counterparty: []string{"Sacado"},
				Original:     []string{"Valor"},
				Paid:         []string{"Valor Pago"},
			},
		},
	}
}

// ParseResult is what a ledger parser produced. Rejected rows are informational.
type ParseResult struct {
	Records  []models.TransactionRecord
	Rejected []models.RejectedRow
}

func (r *ParseResult) reject(side models.Side, index int, raw []string, reason string) {
	r.Rejected = append(r.Rejected, models.RejectedRow{Side: side, Index: index, Raw: raw, Reason: reason})
}

type Parser struct {
	Logger *zap.Logger

	opts            Options
	rules           []rule
	unstructuredEnc encoding.Encoding
	structuredEnc   encoding.Encoding
}

func NewParser(logger *zap.Logger, opts Options) (*Parser, error) {
	uEnc, err := lookupEncoding(opts.Unstructured.Encoding)
	if err != nil {
		return nil, errors.E(errors.Invalid, "unstructured encoding", err)
	}
	sEnc, err := lookupEncoding(opts.Structured.Encoding)
	if err != nil {
		return nil, errors.E(errors.Invalid, "structured encoding", err)
	}
	if opts.Unstructured.PaymentMarker == "" {
		return nil, errors.EmptyParamErr("payment marker")
	}

	return &Parser{
		Logger:          logger,
		opts:            opts,
		rules:           newRules(opts.Unstructured.PaymentMarker),
		unstructuredEnc: uEnc,
		structuredEnc:   sEnc,
	}, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return charmap.ISO8859_1, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc, nil
}

// readRows decodes r and calls fn for every record with its 0-based position.
// Records the csv reader cannot tokenize are passed to onBad instead. Only
// failures of the underlying reader are returned.
func readRows(r io.Reader, enc encoding.Encoding, delimiter rune, fn func(index int, row []string), onBad func(index int, err error)) error {
	reader := csv.NewReader(enc.NewDecoder().Reader(r))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	index := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if !stderrors.As(err, &pe) {
				return err
			}
			onBad(index, err)
			index++
			continue
		}

		fn(index, row)
		index++
	}
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
