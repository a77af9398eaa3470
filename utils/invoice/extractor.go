package invoice

import (
	"regexp"
	"strings"
)

// NotFound is reported for any field that could not be located.
const NotFound = "Not Found"

const (
	FieldVendor     = "Vendor"
	FieldClientName = "Client Name"
	FieldEmployeeID = "Employee Id"
	FieldDateIssued = "Date Issued"
	FieldInvoiceID  = "Invoice ID"
	FieldLocation   = "Location"
)

// FieldExtractor pulls one field out of the corpus.
type FieldExtractor interface {
	Field() string
	Extract(corpus string) string
}

// PatternExtractor returns the first capture group of the first match.
type PatternExtractor struct {
	field   string
	pattern *regexp.Regexp
	trim    bool
}

func NewPatternExtractor(field, pattern string, trim bool) *PatternExtractor {
	return &PatternExtractor{
		field:   field,
		pattern: regexp.MustCompile(pattern),
		trim:    trim,
	}
}

func (e *PatternExtractor) Field() string {
	return e.field
}

func (e *PatternExtractor) Extract(corpus string) string {
	match := e.pattern.FindStringSubmatch(corpus)
	if len(match) < 2 {
		return NotFound
	}
	value := match[1]
	if e.trim {
		value = strings.TrimSpace(value)
	}
	return value
}

// DefaultExtractors is the label-driven extractor set for the invoice layout
// we receive. "Employee ld" is spelled the way OCR renders the label.
func DefaultExtractors() []FieldExtractor {
	return []FieldExtractor{
		NewPatternExtractor(FieldVendor, `vendor\s*:\s*(.*)`, true),
		NewPatternExtractor(FieldClientName, `Issued to:\s*(.*)`, true),
		NewPatternExtractor(FieldEmployeeID, `Employee ld:\s*(\d+)`, false),
		NewPatternExtractor(FieldDateIssued, `Date Issued:\s*(\d{1,2}-\d{1,2}-\d{4})`, false),
		NewPatternExtractor(FieldInvoiceID, `(\d{6})`, false),
		NewPatternExtractor(FieldLocation, `Address:\s*(.*)`, true),
	}
}
