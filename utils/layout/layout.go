package layout

import (
	"image"
	"sort"
	"strings"

	"github.com/Aashish23092/expense-insights/dto"
)

// Box is a recognised region of a page.
type Box struct {
	Rect       image.Rectangle
	Text       string
	Confidence float64
}

// BuildDocument groups line boxes under the block box that contains their
// centre. Lines no block contains become single-line blocks of their own.
// Blocks are ordered top to bottom, then left to right.
func BuildDocument(blocks, lines []Box) dto.OCRDocument {
	type group struct {
		rect  image.Rectangle
		lines []Box
	}

	groups := make([]*group, 0, len(blocks))
	for _, b := range blocks {
		groups = append(groups, &group{rect: b.Rect})
	}

	for _, line := range lines {
		if strings.TrimSpace(line.Text) == "" {
			continue
		}
		centre := image.Pt((line.Rect.Min.X+line.Rect.Max.X)/2, (line.Rect.Min.Y+line.Rect.Max.Y)/2)
		placed := false
		for _, g := range groups {
			if centre.In(g.rect) {
				g.lines = append(g.lines, line)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, &group{rect: line.Rect, lines: []Box{line}})
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].rect.Min.Y != groups[j].rect.Min.Y {
			return groups[i].rect.Min.Y < groups[j].rect.Min.Y
		}
		return groups[i].rect.Min.X < groups[j].rect.Min.X
	})

	doc := dto.OCRDocument{TextBlocks: []dto.TextBlock{}}
	for _, g := range groups {
		if len(g.lines) == 0 {
			continue
		}
		sort.SliceStable(g.lines, func(i, j int) bool {
			return g.lines[i].Rect.Min.Y < g.lines[j].Rect.Min.Y
		})
		texts := make([]string, 0, len(g.lines))
		for _, l := range g.lines {
			texts = append(texts, strings.TrimSpace(l.Text))
		}
		doc.TextBlocks = append(doc.TextBlocks, dto.NewTextBlock(texts...))
	}
	return doc
}

// MeanConfidence averages box confidences, 0 for no boxes.
func MeanConfidence(boxes []Box) float64 {
	if len(boxes) == 0 {
		return 0
	}
	var total float64
	for _, b := range boxes {
		total += b.Confidence
	}
	return total / float64(len(boxes))
}

// TextRowsToDocument turns rows of extracted PDF text into one block per
// non-empty row.
func TextRowsToDocument(rows []string) dto.OCRDocument {
	doc := dto.OCRDocument{TextBlocks: []dto.TextBlock{}}
	for _, row := range rows {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}
		doc.TextBlocks = append(doc.TextBlocks, dto.NewTextBlock(row))
	}
	return doc
}

// Merge appends the blocks of others to doc.
func Merge(doc dto.OCRDocument, others ...dto.OCRDocument) dto.OCRDocument {
	out := dto.OCRDocument{TextBlocks: append([]dto.TextBlock{}, doc.TextBlocks...)}
	for _, o := range others {
		out.TextBlocks = append(out.TextBlocks, o.TextBlocks...)
	}
	return out
}
