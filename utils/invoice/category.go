package invoice

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Aashish23092/expense-insights/dto"
	"gopkg.in/yaml.v3"
)

const DefaultCategory = "Miscellaneous"

var ErrEmptyCategoryTable = errors.New("category table has no categories")

type Category struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// CategoryTable is ordered: earlier categories win inside a single block.
type CategoryTable []Category

var defaultTable = CategoryTable{
	{Name: "Food", Keywords: []string{"chole", "bhature", "pizza", "coffee", "restaurant", "meal", "food"}},
	{Name: "Transport", Keywords: []string{"taxi", "flight", "transportation", "bus", "train", "travel"}},
	{Name: "Medicine", Keywords: []string{"medical", "hospital", "clinic", "medicine", "doctor"}},
	{Name: "Electronics", Keywords: []string{"phone", "laptop", "electronics", "device", "gadget", "Macbook Air"}},
	{Name: "Miscellaneous", Keywords: []string{"service", "miscellaneous", "other", "misc"}},
}

// product names seen on the expense-logging invoices
var extendedKeywords = map[string][]string{
	"Food":        {"Panner Pizza", "Choco Lava"},
	"Medicine":    {"Betnovate-N", "Avomine"},
	"Electronics": {"Macbook Air M3", "Iphone 16"},
}

func DefaultCategoryTable() CategoryTable {
	return defaultTable.clone()
}

// ExtendedCategoryTable is the default table plus known product names.
func ExtendedCategoryTable() CategoryTable {
	table := defaultTable.clone()
	for i := range table {
		table[i].Keywords = append(table[i].Keywords, extendedKeywords[table[i].Name]...)
	}
	return table
}

func (t CategoryTable) clone() CategoryTable {
	out := make(CategoryTable, len(t))
	for i, c := range t {
		out[i] = Category{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

// LoadCategoryTable reads an ordered category table from a YAML file of the form
//
//	categories:
//	  - name: Food
//	    keywords: [pizza, coffee]
func LoadCategoryTable(path string) (CategoryTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category config: %w", err)
	}

	var file struct {
		Categories CategoryTable `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse category config: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, ErrEmptyCategoryTable
	}
	return file.Categories, nil
}

// Classify assigns a category per block and keeps the last block that matched.
func (t CategoryTable) Classify(blocks []dto.TextBlock) string {
	category := DefaultCategory
	for _, block := range blocks {
		if name, ok := t.match(block.BlockText); ok {
			category = name
		}
	}
	return category
}

func (t CategoryTable) match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, c := range t {
		for _, kw := range c.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return c.Name, true
			}
		}
	}
	return "", false
}
