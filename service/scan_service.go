package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/utils"
	"github.com/Aashish23092/expense-insights/utils/einvoice"
	"github.com/Aashish23092/expense-insights/utils/invoice"
	"github.com/Aashish23092/expense-insights/utils/layout"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	SourcePDFText  = "pdf_text"
	SourcePDFOCR   = "pdf_ocr"
	SourceImageOCR = "image_ocr"

	// text layers thinner than this are treated as scans
	minTextBlocks = 3
)

// OCREngine recognises an image into the block and line layout.
type OCREngine interface {
	ExtractDocument(img image.Image) (dto.OCRDocument, float64, error)
}

// Archiver stores the original upload and returns where it can be fetched.
type Archiver interface {
	Archive(ctx context.Context, key, contentType string, data []byte) (string, error)
}

var imageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/bmp":  ".bmp",
}

type ScanService struct {
	engine   *invoice.Engine
	ocr      OCREngine
	pdf      PDFProcessor
	archiver Archiver
	now      func() time.Time
}

// NewScanService wires the pipeline. archiver may be nil.
func NewScanService(engine *invoice.Engine, ocr OCREngine, pdf PDFProcessor, archiver Archiver) *ScanService {
	return &ScanService{
		engine:   engine,
		ocr:      ocr,
		pdf:      pdf,
		archiver: archiver,
		now:      time.Now,
	}
}

// Scan turns an uploaded invoice image or PDF into an extracted record.
func (s *ScanService) Scan(ctx context.Context, filename string, data []byte, password string) (dto.ScanResponse, error) {
	contentType := http.DetectContentType(data)
	isPDF := contentType == "application/pdf" || strings.EqualFold(filepath.Ext(filename), ".pdf")

	var (
		doc        dto.OCRDocument
		confidence float64
		source     string
		images     []image.Image
		err        error
	)
	if isPDF {
		contentType = "application/pdf"
		doc, confidence, source, images, err = s.readPDF(data, password)
	} else {
		if _, ok := imageTypes[contentType]; !ok {
			return dto.ScanResponse{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, contentType)
		}
		var img image.Image
		img, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
		if err != nil {
			return dto.ScanResponse{}, fmt.Errorf("%w: %v", ErrUnsupportedFile, err)
		}
		images = []image.Image{img}
		source = SourceImageOCR
		doc, confidence, err = s.ocr.ExtractDocument(img)
	}
	if err != nil {
		return dto.ScanResponse{}, err
	}

	record, err := s.engine.Extract(doc)
	if err != nil {
		return dto.ScanResponse{}, err
	}

	processedAt := s.now().UTC()
	resp := dto.ScanResponse{
		Document:      doc,
		Record:        record,
		OCRConfidence: confidence,
		Source:        source,
		EInvoice:      scanQR(images),
		ProcessedAt:   processedAt.Format(time.RFC3339),
	}

	if s.archiver != nil {
		key := archiveKey(processedAt, contentType)
		url, err := s.archiver.Archive(ctx, key, contentType, data)
		if err != nil {
			// the extraction is still useful without the archived copy
			utils.LogError("Failed to archive invoice", err, map[string]interface{}{"key": key})
		} else {
			resp.ArchiveURL = url
		}
	}

	utils.LogInfo("Invoice scanned", map[string]interface{}{
		"source":     source,
		"blocks":     len(doc.TextBlocks),
		"confidence": confidence,
		"e_invoice":  resp.EInvoice != nil,
	})
	return resp, nil
}

// readPDF prefers the text layer and falls back to OCR of the embedded
// page images when the layer is missing or too thin.
func (s *ScanService) readPDF(data []byte, password string) (dto.OCRDocument, float64, string, []image.Image, error) {
	rows, err := s.pdf.ExtractTextRows(data, password)
	if err != nil {
		utils.LogWarn("PDF text extraction failed, falling back to OCR", map[string]interface{}{"error": err.Error()})
	}
	textDoc := layout.TextRowsToDocument(rows)
	if len(textDoc.TextBlocks) >= minTextBlocks {
		return textDoc, 100, SourcePDFText, nil, nil
	}

	images, err := s.pdf.ExtractImages(data, password)
	if err != nil {
		return dto.OCRDocument{}, 0, "", nil, fmt.Errorf("%w: %v", ErrUnsupportedFile, err)
	}
	if len(images) == 0 {
		return textDoc, 100, SourcePDFText, nil, nil
	}

	doc := textDoc
	var confidence float64
	for _, img := range images {
		pageDoc, conf, err := s.ocr.ExtractDocument(img)
		if err != nil {
			return dto.OCRDocument{}, 0, "", nil, err
		}
		doc = layout.Merge(doc, pageDoc)
		confidence += conf
	}
	return doc, confidence / float64(len(images)), SourcePDFOCR, images, nil
}

func scanQR(images []image.Image) *dto.EInvoiceQR {
	for _, img := range images {
		qr, err := einvoice.Scan(img)
		if err == nil {
			return qr
		}
	}
	return nil
}

func archiveKey(t time.Time, contentType string) string {
	ext, ok := imageTypes[contentType]
	if !ok {
		ext = ".pdf"
	}
	return fmt.Sprintf("invoices/%s/%s%s", t.Format("2006/01/02"), uuid.NewString(), ext)
}
