package invoice

import (
	"errors"
	"fmt"

	"github.com/Aashish23092/expense-insights/dto"
)

var ErrMalformedDocument = errors.New("malformed OCR document")

// Engine turns an OCR document into an InvoiceRecord. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	extractors []FieldExtractor
	categories CategoryTable
}

func NewEngine(categories CategoryTable, extractors ...FieldExtractor) *Engine {
	if len(categories) == 0 {
		categories = DefaultCategoryTable()
	}
	if len(extractors) == 0 {
		extractors = DefaultExtractors()
	}
	return &Engine{
		extractors: extractors,
		categories: categories,
	}
}

func (e *Engine) Categories() CategoryTable {
	return e.categories.clone()
}

// Extract repairs the document and assembles the record from it.
func (e *Engine) Extract(doc dto.OCRDocument) (dto.InvoiceRecord, error) {
	if err := doc.Validate(); err != nil {
		return dto.InvoiceRecord{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	repaired := RepairDocument(doc)
	corpus := Corpus(repaired)

	fields := make(map[string]string, len(e.extractors))
	for _, extractor := range e.extractors {
		fields[extractor.Field()] = extractor.Extract(corpus)
	}

	return dto.InvoiceRecord{
		Vendor:          valueOrNotFound(fields, FieldVendor),
		ClientName:      valueOrNotFound(fields, FieldClientName),
		EmployeeID:      valueOrNotFound(fields, FieldEmployeeID),
		DateIssued:      valueOrNotFound(fields, FieldDateIssued),
		InvoiceID:       valueOrNotFound(fields, FieldInvoiceID),
		TotalAmount:     ResolveTotal(repaired.TextBlocks),
		Location:        valueOrNotFound(fields, FieldLocation),
		ExpenseCategory: e.categories.Classify(repaired.TextBlocks),
	}, nil
}

func valueOrNotFound(fields map[string]string, field string) string {
	if v, ok := fields[field]; ok {
		return v
	}
	return NotFound
}
