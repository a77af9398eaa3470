package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/service"
	"github.com/Aashish23092/expense-insights/utils"
	"github.com/gin-gonic/gin"
)

const sessionHeader = "X-Session-ID"

type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	scanService    *service.ScanService
	maxFileSize    int64
}

func NewInvoiceHandler(invoiceService *service.InvoiceService, scanService *service.ScanService, maxFileSize int64) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		scanService:    scanService,
		maxFileSize:    maxFileSize,
	}
}

func bindDocument(c *gin.Context) (dto.OCRDocument, bool) {
	var doc dto.OCRDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		badRequest(c, fmt.Errorf("invalid OCR document: %w", err))
		return doc, false
	}
	return doc, true
}

// EntityRecognition handles POST /invoice/entity-recognition
func (h *InvoiceHandler) EntityRecognition(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	record, err := h.invoiceService.ExtractDetails(doc)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Extract handles POST /invoice/extract
func (h *InvoiceHandler) Extract(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	entry, err := h.invoiceService.ExtractExpense(doc)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Summarize handles POST /invoice/summarize. The session is continued when
// the client sends X-Session-ID, otherwise a new one is started.
func (h *InvoiceHandler) Summarize(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	resp, err := h.invoiceService.Summarize(doc, c.GetHeader(sessionHeader))
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.Header(sessionHeader, resp.SessionID)
	c.JSON(http.StatusOK, resp)
}

func (h *InvoiceHandler) Classify(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	resp, err := h.invoiceService.Classify(doc)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Query handles POST /invoice/query
func (h *InvoiceHandler) Query(c *gin.Context) {
	var req dto.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.SessionID == "" {
		req.SessionID = c.GetHeader(sessionHeader)
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.invoiceService.Query(c.Request.Context(), req)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Record handles POST /expenses: the extracted invoice is appended to the
// expense history.
func (h *InvoiceHandler) Record(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	row, err := h.invoiceService.RecordExpense(c.Request.Context(), doc)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

// Scan handles POST /invoice/scan with a multipart "file" field holding an
// image or PDF, and an optional PDF "password".
func (h *InvoiceHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, fmt.Errorf("file is required: %w", err))
		return
	}
	if h.maxFileSize > 0 && req.File.Size > h.maxFileSize {
		sendError(c, http.StatusRequestEntityTooLarge, dto.ErrCodeInvalidRequest,
			fmt.Sprintf("file exceeds %d bytes", h.maxFileSize), nil)
		return
	}

	f, err := req.File.Open()
	if err != nil {
		badRequest(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		badRequest(c, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	utils.LogInfo("Received invoice scan", map[string]interface{}{
		"filename": req.File.Filename,
		"size":     len(data),
	})

	resp, err := h.scanService.Scan(c.Request.Context(), req.File.Filename, data, req.Password)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
