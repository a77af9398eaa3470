package dto

// InvoiceRecord is the structured view of a single invoice. Every field is
// either the extracted value or "Not Found".
type InvoiceRecord struct {
	Vendor          string `json:"Vendor"`
	ClientName      string `json:"Client Name"`
	EmployeeID      string `json:"Employee Id"`
	DateIssued      string `json:"Date Issued"`
	InvoiceID       string `json:"Invoice ID"`
	TotalAmount     string `json:"Total Amount"`
	Location        string `json:"Location"`
	ExpenseCategory string `json:"Expense Category"`
}

// ExpenseEntry is the record reshaped into the invoice history columns.
type ExpenseEntry struct {
	EmployeeID string `json:"employee_id"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
	Location   string `json:"location"`
	InvoiceID  string `json:"invoice_id"`
	Vendor     string `json:"Vendor"`
	Type       string `json:"type"`
}

func (r InvoiceRecord) ToExpenseEntry() ExpenseEntry {
	return ExpenseEntry{
		EmployeeID: r.EmployeeID,
		Amount:     r.TotalAmount,
		Date:       r.DateIssued,
		Location:   r.Location,
		InvoiceID:  r.InvoiceID,
		Vendor:     r.Vendor,
		Type:       r.ExpenseCategory,
	}
}

type SummaryResponse struct {
	Summary   string `json:"summary"`
	SessionID string `json:"session_id"`
}

type ClassificationResponse struct {
	DocumentType string             `json:"document_type"`
	Scores       map[string]float64 `json:"scores,omitempty"`
}

type QueryRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

type QueryResponse struct {
	Answer string `json:"answer"`
}

// EInvoiceQR holds the fields of a signed GST e-invoice QR payload.
type EInvoiceQR struct {
	SellerGSTIN string  `json:"seller_gstin"`
	BuyerGSTIN  string  `json:"buyer_gstin"`
	DocNo       string  `json:"doc_no"`
	DocType     string  `json:"doc_type"`
	DocDate     string  `json:"doc_date"`
	TotalValue  float64 `json:"total_value"`
	ItemCount   int     `json:"item_count"`
	MainHSNCode string  `json:"main_hsn_code"`
	IRN         string  `json:"irn"`
	IRNDate     string  `json:"irn_date"`
}

type ScanResponse struct {
	Document      OCRDocument   `json:"document"`
	Record        InvoiceRecord `json:"record"`
	OCRConfidence float64       `json:"ocr_confidence"`
	Source        string        `json:"source"`
	EInvoice      *EInvoiceQR   `json:"e_invoice,omitempty"`
	ArchiveURL    string        `json:"archive_url,omitempty"`
	ProcessedAt   string        `json:"processed_at"`
}
