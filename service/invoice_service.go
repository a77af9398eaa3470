package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/repository"
	"github.com/Aashish23092/expense-insights/utils"
	"github.com/Aashish23092/expense-insights/utils/invoice"
	"github.com/shopspring/decimal"
)

// InvoiceService exposes the extraction engines and the operations built on
// their output. engine serves recognition and summaries; expenseEngine
// serves the expense-shaped extraction and recording.
type InvoiceService struct {
	engine        *invoice.Engine
	expenseEngine *invoice.Engine
	classifier    *DocumentClassifier
	summaries     *SummaryStore
	qa            QuestionAnswerer
	history       repository.InvoiceRepository
}

// NewInvoiceService falls back to engine when expenseEngine is nil.
func NewInvoiceService(
	engine *invoice.Engine,
	expenseEngine *invoice.Engine,
	classifier *DocumentClassifier,
	summaries *SummaryStore,
	qa QuestionAnswerer,
	history repository.InvoiceRepository,
) *InvoiceService {
	if expenseEngine == nil {
		expenseEngine = engine
	}
	return &InvoiceService{
		engine:        engine,
		expenseEngine: expenseEngine,
		classifier:    classifier,
		summaries:     summaries,
		qa:            qa,
		history:       history,
	}
}

func (s *InvoiceService) ExtractDetails(doc dto.OCRDocument) (dto.InvoiceRecord, error) {
	return s.engine.Extract(doc)
}

// ExtractExpense returns the record in invoice history column names.
func (s *InvoiceService) ExtractExpense(doc dto.OCRDocument) (dto.ExpenseEntry, error) {
	record, err := s.expenseEngine.Extract(doc)
	if err != nil {
		return dto.ExpenseEntry{}, err
	}
	return record.ToExpenseEntry(), nil
}

// RenderSummary writes the record as a short paragraph.
func RenderSummary(r dto.InvoiceRecord) string {
	return fmt.Sprintf(
		"This invoice was issued by %s to %s (Employee ID: %s) on %s. "+
			"The invoice, identified by ID %s, is for a total amount of %s. "+
			"The transaction took place at %s and falls under the %s category.",
		r.Vendor, r.ClientName, r.EmployeeID, r.DateIssued,
		r.InvoiceID, r.TotalAmount,
		r.Location, r.ExpenseCategory,
	)
}

// Summarize extracts, renders and caches the summary for the session.
// An empty sessionID starts a new session.
func (s *InvoiceService) Summarize(doc dto.OCRDocument, sessionID string) (dto.SummaryResponse, error) {
	record, err := s.engine.Extract(doc)
	if err != nil {
		return dto.SummaryResponse{}, err
	}

	summary := RenderSummary(record)
	sessionID = s.summaries.Save(sessionID, summary)

	utils.LogInfo("Invoice summary generated", map[string]interface{}{"session_id": sessionID})
	return dto.SummaryResponse{Summary: summary, SessionID: sessionID}, nil
}

// Query answers a question against the session's cached summary.
func (s *InvoiceService) Query(ctx context.Context, req dto.QueryRequest) (dto.QueryResponse, error) {
	summary, ok := s.summaries.Get(req.SessionID)
	if !ok {
		return dto.QueryResponse{}, ErrSummaryNotFound
	}

	answer, err := s.qa.Answer(ctx, req.Question, summary)
	if err != nil {
		return dto.QueryResponse{}, err
	}
	return dto.QueryResponse{Answer: answer}, nil
}

func (s *InvoiceService) Classify(doc dto.OCRDocument) (dto.ClassificationResponse, error) {
	if doc.TextBlocks == nil {
		return dto.ClassificationResponse{}, ErrClassifyInput
	}

	label, scores := s.classifier.Classify(doc.Text())
	return dto.ClassificationResponse{DocumentType: label, Scores: scores}, nil
}

// RecordExpense extracts the invoice and appends it to the history. Records
// missing any of the history's key columns are rejected.
func (s *InvoiceService) RecordExpense(ctx context.Context, doc dto.OCRDocument) (dto.InvoiceRow, error) {
	record, err := s.expenseEngine.Extract(doc)
	if err != nil {
		return dto.InvoiceRow{}, err
	}

	row, err := ToInvoiceRow(record)
	if err != nil {
		return dto.InvoiceRow{}, err
	}
	if err := s.history.Add(ctx, row); err != nil {
		return dto.InvoiceRow{}, fmt.Errorf("failed to record expense: %w", err)
	}

	utils.LogInfo("Expense recorded", map[string]interface{}{
		"invoice_id":  row.InvoiceID,
		"employee_id": row.EmployeeID,
	})
	return row, nil
}

// ToInvoiceRow converts an extracted record into a history row.
func ToInvoiceRow(r dto.InvoiceRecord) (dto.InvoiceRow, error) {
	var missing []string
	for field, value := range map[string]string{
		invoice.FieldEmployeeID: r.EmployeeID,
		invoice.FieldDateIssued: r.DateIssued,
		invoice.FieldInvoiceID:  r.InvoiceID,
		"Total Amount":          r.TotalAmount,
	} {
		if value == invoice.NotFound || value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return dto.InvoiceRow{}, fmt.Errorf("%w: missing %s", ErrIncompleteRecord, strings.Join(missing, ", "))
	}

	employeeID, err := strconv.Atoi(r.EmployeeID)
	if err != nil {
		return dto.InvoiceRow{}, fmt.Errorf("%w: employee id %q", ErrIncompleteRecord, r.EmployeeID)
	}
	amount, err := decimal.NewFromString(strings.TrimPrefix(r.TotalAmount, "₹"))
	if err != nil {
		return dto.InvoiceRow{}, fmt.Errorf("%w: amount %q", ErrIncompleteRecord, r.TotalAmount)
	}
	date, err := time.Parse("2-1-2006", r.DateIssued)
	if err != nil {
		return dto.InvoiceRow{}, fmt.Errorf("%w: date %q", ErrIncompleteRecord, r.DateIssued)
	}

	location := r.Location
	if location == invoice.NotFound {
		location = ""
	}
	vendor := r.Vendor
	if vendor == invoice.NotFound {
		vendor = ""
	}

	return dto.InvoiceRow{
		InvoiceID:  r.InvoiceID,
		EmployeeID: employeeID,
		Amount:     amount,
		Date:       date,
		Location:   location,
		Type:       r.ExpenseCategory,
		Vendor:     vendor,
	}, nil
}
