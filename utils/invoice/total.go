package invoice

import (
	"strings"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/shopspring/decimal"
)

const (
	totalAnchor    = "GRAND TOTAL"
	currencyPrefix = "₹"
)

// ResolveTotal finds the first block mentioning GRAND TOTAL and returns the
// largest number formed by the digits of any block after it.
func ResolveTotal(blocks []dto.TextBlock) string {
	anchor := -1
	for i, block := range blocks {
		if strings.Contains(block.BlockText, totalAnchor) {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return NotFound
	}

	var (
		best  decimal.Decimal
		found bool
	)
	for _, block := range blocks[anchor+1:] {
		digits := digitsOnly(block.BlockText)
		if digits == "" {
			continue
		}
		candidate, err := decimal.NewFromString(digits)
		if err != nil {
			continue
		}
		if !found || candidate.GreaterThan(best) {
			best = candidate
			found = true
		}
	}
	if !found {
		return NotFound
	}
	return currencyPrefix + best.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
