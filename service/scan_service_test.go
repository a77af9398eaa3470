package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/utils/invoice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blankPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 12, 10, 30, 0, 0, time.UTC)
}

func TestScanImage(t *testing.T) {
	ocr := &stubOCR{doc: fullInvoice(), conf: 87.5}
	archiver := &stubArchiver{}
	svc := NewScanService(invoice.NewEngine(nil), ocr, &stubPDF{}, archiver)
	svc.now = fixedNow

	resp, err := svc.Scan(context.Background(), "receipt.png", blankPNG(t), "")
	require.NoError(t, err)

	assert.Equal(t, SourceImageOCR, resp.Source)
	assert.Equal(t, 87.5, resp.OCRConfidence)
	assert.Equal(t, "₹450", resp.Record.TotalAmount)
	assert.Equal(t, "Acme Foods", resp.Record.Vendor)
	assert.Nil(t, resp.EInvoice)
	assert.Equal(t, "2024-03-12T10:30:00Z", resp.ProcessedAt)

	assert.True(t, strings.HasPrefix(archiver.key, "invoices/2024/03/12/"), archiver.key)
	assert.True(t, strings.HasSuffix(archiver.key, ".png"), archiver.key)
	assert.Equal(t, "image/png", archiver.contentType)
	assert.Equal(t, "https://files.example.com/"+archiver.key, resp.ArchiveURL)
}

func TestScanArchiveFailureKeepsResult(t *testing.T) {
	svc := NewScanService(invoice.NewEngine(nil), &stubOCR{doc: fullInvoice()}, &stubPDF{}, &stubArchiver{err: errUpstream})

	resp, err := svc.Scan(context.Background(), "receipt.png", blankPNG(t), "")
	require.NoError(t, err)
	assert.Empty(t, resp.ArchiveURL)
	assert.Equal(t, "123456", resp.Record.InvoiceID)
}

func TestScanUnsupportedFile(t *testing.T) {
	svc := NewScanService(invoice.NewEngine(nil), &stubOCR{}, &stubPDF{}, nil)

	_, err := svc.Scan(context.Background(), "notes.txt", []byte("just some text"), "")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestScanPDFTextLayer(t *testing.T) {
	ocr := &stubOCR{}
	pdf := &stubPDF{rows: []string{
		"vendor: Apollo Pharmacy",
		"Employee ld: 9",
		"",
		"Medicine strip",
		"GRAND TOTAL",
		"320",
	}}
	svc := NewScanService(invoice.NewEngine(nil), ocr, pdf, nil)

	resp, err := svc.Scan(context.Background(), "bill.pdf", []byte("%PDF-1.7\n"), "")
	require.NoError(t, err)

	assert.Equal(t, SourcePDFText, resp.Source)
	assert.Zero(t, ocr.calls)
	assert.Len(t, resp.Document.TextBlocks, 5)
	assert.Equal(t, "₹320", resp.Record.TotalAmount)
	assert.Equal(t, "Medicine", resp.Record.ExpenseCategory)
	assert.Empty(t, resp.ArchiveURL)
}

func TestScanPDFFallsBackToOCR(t *testing.T) {
	page := image.NewRGBA(image.Rect(0, 0, 8, 8))
	ocr := &stubOCR{doc: dto.OCRDocument{TextBlocks: textBlocks("GRAND TOTAL", "990")}, conf: 70}
	pdf := &stubPDF{rows: []string{"Scanned by CamScanner"}, images: []image.Image{page, page}}
	svc := NewScanService(invoice.NewEngine(nil), ocr, pdf, nil)

	resp, err := svc.Scan(context.Background(), "scan.pdf", []byte("%PDF-1.4\n"), "secret")
	require.NoError(t, err)

	assert.Equal(t, SourcePDFOCR, resp.Source)
	assert.Equal(t, 2, ocr.calls)
	assert.Len(t, resp.Document.TextBlocks, 5)
	assert.Equal(t, 70.0, resp.OCRConfidence)
	assert.Equal(t, "₹990", resp.Record.TotalAmount)
}
