package parsers

import (
	// Go Internal Packages
	"regexp"
	"strings"

	// Local Packages
	utils "ledger-recon/utils"
)

const installmentWidth = 3

var documentPair = regexp.MustCompile(`\d+[/-]\d+`)

// NormalizeIdentifier reduces a document identifier to the key used for matching.
// The first "number/number" or "number-number" pair is extracted and the installment
// is zero-filled, so "58817/03-DME" and "58817-3" both become "58817/003".
// Identifiers without such a pair (synthetic keys, free text) are only trimmed.
func NormalizeIdentifier(s string) string {
	pair := documentPair.FindString(s)
	if pair == "" {
		return strings.TrimSpace(s)
	}

	parts := strings.Split(strings.ReplaceAll(pair, "-", "/"), "/")
	if len(parts) != 2 {
		return strings.TrimSpace(s)
	}

	number, installment := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	return number + "/" + utils.ZeroFill(installment, installmentWidth)
}
