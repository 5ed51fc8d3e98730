package utils

import (
	// Go Internal Packages
	"strings"
)

// ZeroFill left-pads s with '0' up to width. Longer strings are returned unchanged.
func ZeroFill(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
