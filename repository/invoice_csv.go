package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/utils"
	"github.com/shopspring/decimal"
)

var csvColumns = []string{"invoice_id", "amount", "date", "location", "type", "vendor", "employee_id"}

// day-first, one or two digit day and month
const csvDateLayout = "2-1-2006"

// CSVInvoiceRepository keeps invoice_database.csv in memory and appends new
// rows to the file.
type CSVInvoiceRepository struct {
	path string

	mu   sync.RWMutex
	rows []dto.InvoiceRow
}

// NewCSVInvoiceRepository loads path. A missing file yields an empty history
// that is created on the first Add.
func NewCSVInvoiceRepository(path string) (*CSVInvoiceRepository, error) {
	r := &CSVInvoiceRepository{path: path}
	if err := r.Reload(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			utils.LogWarn("Invoice history not found, starting empty", map[string]interface{}{"path": path})
			return r, nil
		}
		return nil, err
	}
	return r, nil
}

func (r *CSVInvoiceRepository) Reload() error {
	f, err := os.Open(r.path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := readInvoiceCSV(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", r.path, err)
	}

	r.mu.Lock()
	r.rows = rows
	r.mu.Unlock()

	utils.LogInfo("Invoice history loaded", map[string]interface{}{"path": r.path, "rows": len(rows)})
	return nil
}

func (r *CSVInvoiceRepository) ListByEmployee(ctx context.Context, employeeID int) ([]dto.InvoiceRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterByEmployee(r.rows, employeeID), nil
}

func (r *CSVInvoiceRepository) Add(ctx context.Context, row dto.InvoiceRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, statErr := os.Stat(r.path)
	writeHeader := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvColumns); err != nil {
			return err
		}
	}
	record := []string{
		row.InvoiceID,
		row.Amount.String(),
		row.Date.Format(dto.HistoryDateLayout),
		row.Location,
		row.Type,
		row.Vendor,
		strconv.Itoa(row.EmployeeID),
	}
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	r.rows = append(r.rows, row)
	return nil
}

func readInvoiceCSV(rd io.Reader) ([]dto.InvoiceRow, error) {
	reader := csv.NewReader(rd)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range csvColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []dto.InvoiceRow
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, err
		}

		row, err := parseInvoiceRecord(record, index)
		if err != nil {
			utils.LogWarn("Skipping invoice row", map[string]interface{}{"line": line, "error": err.Error()})
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseInvoiceRecord(record []string, index map[string]int) (dto.InvoiceRow, error) {
	get := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	amount, err := decimal.NewFromString(get("amount"))
	if err != nil {
		return dto.InvoiceRow{}, fmt.Errorf("%w: amount %q", ErrInvalidRow, get("amount"))
	}
	date, err := time.Parse(csvDateLayout, get("date"))
	if err != nil {
		return dto.InvoiceRow{}, fmt.Errorf("%w: date %q", ErrInvalidRow, get("date"))
	}
	employeeID, err := strconv.Atoi(get("employee_id"))
	if err != nil {
		return dto.InvoiceRow{}, fmt.Errorf("%w: employee_id %q", ErrInvalidRow, get("employee_id"))
	}

	return dto.InvoiceRow{
		InvoiceID:  get("invoice_id"),
		EmployeeID: employeeID,
		Amount:     amount,
		Date:       date,
		Location:   get("location"),
		Type:       get("type"),
		Vendor:     get("vendor"),
	}, nil
}
