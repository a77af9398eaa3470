package dto

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingTextBlocks = errors.New("document has no textBlocks")
	ErrMissingLines      = errors.New("text block has no lines")
)

// OCRDocument is the layout an OCR engine hands us: ordered blocks, each
// carrying its joined text and the lines it was built from.
type OCRDocument struct {
	TextBlocks []TextBlock `json:"textBlocks"`
}

type TextBlock struct {
	BlockText string `json:"blockText"`
	Lines     []Line `json:"lines"`
}

type Line struct {
	LineText string `json:"lineText"`
}

// Validate reports structurally malformed documents. An empty block list is
// valid; an absent one is not.
func (d *OCRDocument) Validate() error {
	if d.TextBlocks == nil {
		return ErrMissingTextBlocks
	}
	for i, block := range d.TextBlocks {
		if block.Lines == nil {
			return fmt.Errorf("block %d: %w", i, ErrMissingLines)
		}
	}
	return nil
}

// Text joins block texts with a single space.
func (d *OCRDocument) Text() string {
	parts := make([]string, 0, len(d.TextBlocks))
	for _, block := range d.TextBlocks {
		parts = append(parts, block.BlockText)
	}
	return strings.Join(parts, " ")
}

// NewTextBlock builds a block whose text is its lines joined by a space.
func NewTextBlock(lines ...string) TextBlock {
	block := TextBlock{Lines: make([]Line, 0, len(lines))}
	for _, l := range lines {
		block.Lines = append(block.Lines, Line{LineText: l})
	}
	block.BlockText = strings.Join(lines, " ")
	return block
}
