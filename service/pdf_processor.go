package service

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aashish23092/expense-insights/utils"
	"github.com/disintegration/imaging"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type PDFProcessor interface {
	ExtractTextRows(pdfData []byte, password string) ([]string, error)
	ExtractImages(pdfData []byte, password string) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractTextRows returns the text layer of every page, one entry per
// visual row. Scanned PDFs have no text layer and yield no rows.
func (p *pdfProcessor) ExtractTextRows(pdfData []byte, password string) ([]string, error) {
	var (
		r   *pdf.Reader
		err error
	)
	if password != "" {
		tried := false
		r, err = pdf.NewReaderEncrypted(bytes.NewReader(pdfData), int64(len(pdfData)), func() string {
			// an empty return stops the reader retrying
			if tried {
				return ""
			}
			tried = true
			return password
		})
	} else {
		r, err = pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var rows []string
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageRows, err := page.GetTextByRow()
		if err != nil {
			utils.LogWarn("Failed to read pdf page text", map[string]interface{}{
				"page":  pageIndex,
				"error": err.Error(),
			})
			continue
		}
		for _, row := range pageRows {
			var line strings.Builder
			for _, word := range row.Content {
				line.WriteString(word.S)
			}
			rows = append(rows, line.String())
		}
	}
	return rows, nil
}

// ExtractImages pulls embedded images out of the PDF. pdfcpu works on
// files, so the document is staged in a temp dir.
func (p *pdfProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "invoice_pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	inFile := filepath.Join(tempDir, "invoice.pdf")
	if err := os.WriteFile(inFile, pdfData, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	outDir := filepath.Join(tempDir, "images")
	if err := os.Mkdir(outDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create image dir: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
	}
	if err := api.ExtractImagesFile(inFile, outDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	files, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image dir: %w", err)
	}

	var images []image.Image
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		img, err := imaging.Open(filepath.Join(outDir, file.Name()), imaging.AutoOrientation(true))
		if err != nil {
			utils.LogWarn("Skipping undecodable pdf image", map[string]interface{}{
				"file":  file.Name(),
				"error": err.Error(),
			})
			continue
		}
		images = append(images, img)
	}
	return images, nil
}
