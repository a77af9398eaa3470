package invoice

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	table := DefaultCategoryTable()

	tests := []struct {
		name  string
		texts []string
		want  string
	}{
		{"single match", []string{"Chole Bhature x2"}, "Food"},
		{"case insensitive", []string{"PIZZA HUT"}, "Food"},
		{"table order within block", []string{"pizza and taxi"}, "Food"},
		{"last matching block wins", []string{"chole bhature", "taxi fare"}, "Transport"},
		{"later unmatched block keeps earlier", []string{"laptop sleeve", "thank you"}, "Electronics"},
		{"default", []string{"nothing to see"}, DefaultCategory},
		{"multi-word keyword", []string{"Apple MACBOOK AIR"}, "Electronics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Classify(blocks(tt.texts...)))
		})
	}

	assert.Equal(t, DefaultCategory, table.Classify(nil))
}

func TestExtendedCategoryTable(t *testing.T) {
	assert.Equal(t, DefaultCategory, DefaultCategoryTable().Classify(blocks("Betnovate-N cream")))
	assert.Equal(t, "Medicine", ExtendedCategoryTable().Classify(blocks("Betnovate-N cream")))
	assert.Equal(t, "Food", ExtendedCategoryTable().Classify(blocks("Choco Lava cake")))

	// the extended table must not leak into the default one
	assert.NotContains(t, DefaultCategoryTable()[2].Keywords, "Avomine")
}

func TestLoadCategoryTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.yaml")
	content := `categories:
  - name: Travel
    keywords: [hotel, taxi]
  - name: Office
    keywords: [paper]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err := LoadCategoryTable(path)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, "Travel", table[0].Name)
	assert.Equal(t, "Office", table.Classify(blocks("Hotel stay", "A4 paper")))
}

func TestLoadCategoryTableErrors(t *testing.T) {
	_, err := LoadCategoryTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: []\n"), 0o600))
	_, err = LoadCategoryTable(path)
	assert.ErrorIs(t, err, ErrEmptyCategoryTable)
}
