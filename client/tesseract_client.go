package client

import (
	"bytes"
	"fmt"
	"image"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/utils"
	"github.com/Aashish23092/expense-insights/utils/layout"
	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

type TesseractClient struct {
	dataPath string
	language string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
		language: "eng",
	}
}

// Preprocess converts to grayscale and lifts contrast, which noticeably
// improves recognition of thermal-printer receipts.
func Preprocess(img image.Image) image.Image {
	out := imaging.Grayscale(img)
	out = imaging.AdjustContrast(out, 20)
	return imaging.Sharpen(out, 1.0)
}

// ExtractDocument runs Tesseract on img and rebuilds its block and line
// layout. The returned confidence is the mean line confidence.
func (tc *TesseractClient) ExtractDocument(img image.Image) (dto.OCRDocument, float64, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, Preprocess(img), imaging.PNG); err != nil {
		return dto.OCRDocument{}, 0, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}
	if err := client.SetLanguage(tc.language); err != nil {
		return dto.OCRDocument{}, 0, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return dto.OCRDocument{}, 0, fmt.Errorf("failed to set image: %w", err)
	}

	blockBoxes, err := client.GetBoundingBoxes(gosseract.RIL_BLOCK)
	if err != nil {
		return dto.OCRDocument{}, 0, fmt.Errorf("failed to read blocks: %w", err)
	}
	lineBoxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return dto.OCRDocument{}, 0, fmt.Errorf("failed to read lines: %w", err)
	}

	blocks := toLayoutBoxes(blockBoxes)
	lines := toLayoutBoxes(lineBoxes)
	doc := layout.BuildDocument(blocks, lines)

	utils.LogInfo("Tesseract extraction finished", map[string]interface{}{
		"blocks": len(doc.TextBlocks),
		"lines":  len(lines),
	})
	return doc, layout.MeanConfidence(lines), nil
}

func toLayoutBoxes(boxes []gosseract.BoundingBox) []layout.Box {
	out := make([]layout.Box, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, layout.Box{Rect: b.Box, Text: b.Word, Confidence: b.Confidence})
	}
	return out
}
