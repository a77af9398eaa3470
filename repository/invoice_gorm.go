package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type invoiceModel struct {
	ID         uint            `gorm:"primaryKey"`
	InvoiceID  string          `gorm:"column:invoice_id;index"`
	EmployeeID int             `gorm:"column:employee_id;index"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric(14,2)"`
	Date       time.Time       `gorm:"column:date;type:date"`
	Location   string          `gorm:"column:location"`
	Type       string          `gorm:"column:type"`
	Vendor     string          `gorm:"column:vendor"`
	CreatedAt  time.Time
}

func (invoiceModel) TableName() string {
	return "invoices"
}

func (m invoiceModel) toRow() dto.InvoiceRow {
	return dto.InvoiceRow{
		InvoiceID:  m.InvoiceID,
		EmployeeID: m.EmployeeID,
		Amount:     m.Amount,
		Date:       m.Date,
		Location:   m.Location,
		Type:       m.Type,
		Vendor:     m.Vendor,
	}
}

// GormInvoiceRepository stores the invoice history in postgres.
type GormInvoiceRepository struct {
	db *gorm.DB
}

func NewGormInvoiceRepository(dsn string) (*GormInvoiceRepository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewGormInvoiceRepositoryFromDB(db)
}

func NewGormInvoiceRepositoryFromDB(db *gorm.DB) (*GormInvoiceRepository, error) {
	if err := db.AutoMigrate(&invoiceModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate invoices: %w", err)
	}
	return &GormInvoiceRepository{db: db}, nil
}

func (r *GormInvoiceRepository) ListByEmployee(ctx context.Context, employeeID int) ([]dto.InvoiceRow, error) {
	var models []invoiceModel
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toRows(models), nil
}

func (r *GormInvoiceRepository) Add(ctx context.Context, row dto.InvoiceRow) error {
	model := invoiceModel{
		InvoiceID:  row.InvoiceID,
		EmployeeID: row.EmployeeID,
		Amount:     row.Amount,
		Date:       row.Date,
		Location:   row.Location,
		Type:       row.Type,
		Vendor:     row.Vendor,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func toRows(models []invoiceModel) []dto.InvoiceRow {
	rows := make([]dto.InvoiceRow, len(models))
	for i, m := range models {
		rows[i] = m.toRow()
	}
	return rows
}
