package service

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/repository"
	"github.com/shopspring/decimal"
)

type memoryInvoices struct {
	rows []dto.InvoiceRow
	err  error
}

func (m *memoryInvoices) ListByEmployee(ctx context.Context, employeeID int) ([]dto.InvoiceRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []dto.InvoiceRow
	for _, r := range m.rows {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryInvoices) Add(ctx context.Context, row dto.InvoiceRow) error {
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, row)
	return nil
}

type memoryEmployees struct {
	employees map[int]dto.Employee
	updates   int
}

func (m *memoryEmployees) Get(ctx context.Context, employeeID int) (dto.Employee, error) {
	e, ok := m.employees[employeeID]
	if !ok {
		return dto.Employee{}, repository.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *memoryEmployees) UpdateDebt(ctx context.Context, employeeID int, debtBudget, monthlyEMI float64) error {
	e, ok := m.employees[employeeID]
	if !ok {
		return repository.ErrEmployeeNotFound
	}
	e.DebtBudget = debtBudget
	e.MonthlyEMI = monthlyEMI
	m.employees[employeeID] = e
	m.updates++
	return nil
}

type stubLLM struct {
	response    string
	err         error
	lastSystem  string
	lastMessage string
}

func (s *stubLLM) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	s.lastSystem = systemPrompt
	s.lastMessage = userMessage
	return s.response, s.err
}

func (s *stubLLM) GetProviderName() string {
	return "stub"
}

type stubOCR struct {
	doc   dto.OCRDocument
	conf  float64
	err   error
	calls int
}

func (s *stubOCR) ExtractDocument(img image.Image) (dto.OCRDocument, float64, error) {
	s.calls++
	return s.doc, s.conf, s.err
}

type stubPDF struct {
	rows    []string
	rowsErr error
	images  []image.Image
}

func (s *stubPDF) ExtractTextRows(pdfData []byte, password string) ([]string, error) {
	return s.rows, s.rowsErr
}

func (s *stubPDF) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	return s.images, nil
}

type stubArchiver struct {
	key         string
	contentType string
	err         error
}

func (s *stubArchiver) Archive(ctx context.Context, key, contentType string, data []byte) (string, error) {
	s.key = key
	s.contentType = contentType
	if s.err != nil {
		return "", s.err
	}
	return "https://files.example.com/" + key, nil
}

var errUpstream = errors.New("upstream unavailable")

func invoiceRow(id string, employeeID int, amount int64, date, location, kind, vendor string) dto.InvoiceRow {
	d, err := time.Parse(dto.HistoryDateLayout, date)
	if err != nil {
		panic(err)
	}
	return dto.InvoiceRow{
		InvoiceID:  id,
		EmployeeID: employeeID,
		Amount:     decimal.NewFromInt(amount),
		Date:       d,
		Location:   location,
		Type:       kind,
		Vendor:     vendor,
	}
}

func textBlocks(texts ...string) []dto.TextBlock {
	out := make([]dto.TextBlock, 0, len(texts))
	for _, t := range texts {
		out = append(out, dto.NewTextBlock(t))
	}
	return out
}
