package parsers

import (
	// Go Internal Packages
	"fmt"
	"regexp"
	"strings"
)

const (
	CounterpartyPayment            = "N/A (Payment)"
	CounterpartyReimbursement      = "N/A (Reimbursement)"
	CounterpartyReimbursementNoDoc = "N/A (Reimbursement without document)"
	CounterpartyDiscount           = "N/A (Discount Draft)"
	CounterpartyGeneric            = "N/A (Generic Entry)"
	CounterpartyEmpty              = "N/A"

	PrefixReimbursementNoDoc = "REIMBURSEMENT_NO_DOC_"
	PrefixDiscount           = "DISCOUNT_DRAFT_"
	PrefixEmptyLine          = "EMPTY_ENTRY_LINE_"
)

// docChars is a document token: letters, digits, '_', '/' and '-'.
const docChars = `[\p{L}\p{N}_/-]`

var (
	// The receipt description is written three different ways.
	receiptPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Recebimento cfe Dpl\s+(.*?)\s+-\s+(.*)`),
		regexp.MustCompile(`Recebimento cfe Dpl\s+(` + docChars + `+)-(.*)`),
		regexp.MustCompile(`Recebimento cfe Dpl\s+(` + docChars + `+(?:-[\p{L}\p{N}_]+)?)\s+([A-Za-z].*)`),
	}
	reimbursementWithDoc = regexp.MustCompile(`Reembolso Duplicata\s+(` + docChars + `+)`)
	reimbursementNoDoc   = regexp.MustCompile(`^Reembolso Duplicata$`)
	discountDraft        = regexp.MustCompile(`^DESCONTO DUPL CFE BORDERO$`)
)

type extraction struct {
	identifier   string
	counterparty string
}

// rule is one step of the ranked extraction. Rules are tried in order and the first
// that matches decides the record.
type rule struct {
	name    string
	extract func(description string, index int) (extraction, bool)
}

func newRules(paymentMarker string) []rule {
	payment := regexp.MustCompile(`Pagamento cfe dpl\.\s+(.*?)-` + regexp.QuoteMeta(paymentMarker) + `.*`)

	return []rule{
		{name: "receipt", extract: receipt},
		{name: "payment", extract: capture(payment, CounterpartyPayment)},
		{name: "reimbursement", extract: capture(reimbursementWithDoc, CounterpartyReimbursement)},
		{name: "reimbursement without document", extract: synthesize(reimbursementNoDoc, PrefixReimbursementNoDoc, CounterpartyReimbursementNoDoc)},
		{name: "discount", extract: synthesize(discountDraft, PrefixDiscount, CounterpartyDiscount)},
		{name: "generic", extract: generic},
	}
}

// classify runs the rules over a trimmed description. The last rule always matches.
func classify(rules []rule, description string, index int) (extraction, string) {
	for _, r := range rules {
		if ext, ok := r.extract(description, index); ok {
			return ext, r.name
		}
	}
	return extraction{}, ""
}

func receipt(description string, _ int) (extraction, bool) {
	for _, re := range receiptPatterns {
		if m := re.FindStringSubmatch(description); m != nil {
			return extraction{identifier: strings.TrimSpace(m[1]), counterparty: strings.TrimSpace(m[2])}, true
		}
	}
	return extraction{}, false
}

func capture(re *regexp.Regexp, counterparty string) func(string, int) (extraction, bool) {
	return func(description string, _ int) (extraction, bool) {
		m := re.FindStringSubmatch(description)
		if m == nil {
			return extraction{}, false
		}
		return extraction{identifier: strings.TrimSpace(m[1]), counterparty: counterparty}, true
	}
}

// synthesize keys a document-less line by its row index so that such lines never
// collapse into one aggregate.
func synthesize(re *regexp.Regexp, prefix, counterparty string) func(string, int) (extraction, bool) {
	return func(description string, index int) (extraction, bool) {
		if !re.MatchString(description) {
			return extraction{}, false
		}
		return extraction{identifier: fmt.Sprintf("%s%d", prefix, index), counterparty: counterparty}, true
	}
}

func generic(description string, index int) (extraction, bool) {
	if description == "" {
		return extraction{identifier: fmt.Sprintf("%s%d", PrefixEmptyLine, index), counterparty: CounterpartyEmpty}, true
	}
	return extraction{identifier: description, counterparty: CounterpartyGeneric}, true
}
