// Package extract turns raw recognized text into structured receipt
// fields. Everything here is pure: no I/O, no state, and no error
// paths. A field the patterns cannot find is an empty string.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// FieldSet holds the fields recovered from one document's raw text.
// Amounts are kept as matched text; numeric conversion is the caller's
// concern (see ParseAmount).
type FieldSet struct {
	Provider      string
	InvoiceNumber string
	IssueDate     string
	TotalAmount   string
	TaxAmount     string // reserved, never populated by extraction
}

var (
	// DD/MM/YYYY or YYYY/MM/DD, with / or - as separator. Matched
	// verbatim with no calendar validation: garbage like 99/99/9999 is
	// kept as-is so the reviewer sees what the document says.
	dateRe = regexp.MustCompile(`(\d{2}[/-]\d{2}[/-]\d{4})|(\d{4}[/-]\d{2}[/-]\d{2})`)

	// Label vocabulary for "invoice number", then optional punctuation,
	// then an uppercase alphanumeric/hyphen run. Only the label is
	// case-insensitive. Compound labels like "Factura N°" are absorbed
	// whole so the capture starts at the actual number.
	invoiceRe = regexp.MustCompile(`(?i:(?:factura|invoice)\s*(?:no\.?|nro\.?|n[°º])?|no\.|nro\.?|n[°º])\s*[:#]?\s*([A-Z0-9-]+)`)

	// Label vocabulary for "total", then any text on the same line, then
	// a number with thousands/decimal separators in either convention.
	totalRe = regexp.MustCompile(`(?i:total|monto|importe|pagar|amount).*?(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2}))`)
)

// Extract applies the field patterns to raw recognized text. The rules
// are independent of each other and the first match in document order
// always wins. Extract never fails; empty or garbled input yields an
// empty FieldSet.
func Extract(rawText string) FieldSet {
	var fs FieldSet

	if m := dateRe.FindString(rawText); m != "" {
		fs.IssueDate = m
	}
	if m := invoiceRe.FindStringSubmatch(rawText); m != nil {
		fs.InvoiceNumber = m[1]
	}
	if m := totalRe.FindStringSubmatch(rawText); m != nil {
		fs.TotalAmount = m[1]
	}

	// Provider heuristic: the first non-blank line is assumed to be the
	// letterhead.
	for _, line := range strings.Split(rawText, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			fs.Provider = trimmed
			break
		}
	}

	return fs
}

// ParseAmount converts a matched amount text into a numeric value.
// Currency symbols and whitespace are stripped and both separator
// conventions are accepted: "1.250,00" and "1,250.00" both parse to
// 1250.00. Absent or unparsable input yields 0.
func ParseAmount(text string) float64 {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot == -1 && lastComma == -1:
		// plain integer
	case lastDot != -1 && lastComma != -1:
		// both present: the later one is the decimal separator
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma != -1:
		s = resolveSingleSeparator(s, ",", lastComma)
	default:
		s = resolveSingleSeparator(s, ".", lastDot)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// resolveSingleSeparator disambiguates a number containing only one
// separator kind: exactly three trailing digits means grouping
// ("1,250" -> 1250), anything else means a decimal point.
func resolveSingleSeparator(s, sep string, last int) string {
	if strings.Count(s, sep) == 1 && len(s)-last-1 != 3 {
		return strings.Replace(s, sep, ".", 1)
	}
	return strings.ReplaceAll(s, sep, "")
}
