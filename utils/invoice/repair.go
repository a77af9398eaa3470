package invoice

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/expense-insights/dto"
)

// A capital O touching a digit on either side is almost always a misread zero.
var misreadZeroPattern = regexp.MustCompile(`\d+O\d*|\d*O\d+`)

// RepairText replaces O with 0 inside every digit run that contains one.
// Text without such runs comes back unchanged, and repairing twice is the
// same as repairing once.
func RepairText(text string) string {
	return misreadZeroPattern.ReplaceAllStringFunc(text, func(run string) string {
		return strings.ReplaceAll(run, "O", "0")
	})
}

// RepairDocument returns a copy of doc with every block and line text
// repaired. doc itself is left untouched.
func RepairDocument(doc dto.OCRDocument) dto.OCRDocument {
	if doc.TextBlocks == nil {
		return dto.OCRDocument{}
	}

	repaired := dto.OCRDocument{TextBlocks: make([]dto.TextBlock, len(doc.TextBlocks))}
	for i, block := range doc.TextBlocks {
		out := dto.TextBlock{BlockText: RepairText(block.BlockText)}
		if block.Lines != nil {
			out.Lines = make([]dto.Line, len(block.Lines))
			for j, line := range block.Lines {
				out.Lines[j] = dto.Line{LineText: RepairText(line.LineText)}
			}
		}
		repaired.TextBlocks[i] = out
	}
	return repaired
}

// Corpus joins block texts with newlines, in block order.
func Corpus(doc dto.OCRDocument) string {
	texts := make([]string, len(doc.TextBlocks))
	for i, block := range doc.TextBlocks {
		texts[i] = block.BlockText
	}
	return strings.Join(texts, "\n")
}
