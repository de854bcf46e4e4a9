package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_ColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title", "Status"},
		Rows: [][]string{
			{"vacuum", "Vacuum the house", "Done"},
			{"dishes", "Do the dishes after dinner", "Pending"},
		},
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 6, widths[0])  // "vacuum" and "dishes" tie
	assert.Equal(t, 26, widths[1]) // "Do the dishes after dinner"
	assert.Equal(t, 7, widths[2])  // "Pending" is longest
}

func TestTable_ColumnWidths_CountsRunesNotBytes(t *testing.T) {
	// Status symbols are multi-byte; widths must not inflate around them.
	table := &Table{
		Headers: []string{" "},
		Rows:    [][]string{{"◑"}, {"✓"}},
	}

	widths := table.ColumnWidths()
	assert.Equal(t, 1, widths[0])
}

func TestTable_ColumnWidths_MaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"ID", "Title"},
		Rows:     [][]string{{"a", "This is a very long title that should be truncated"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])  // "ID" is longest
	assert.Equal(t, 20, widths[1]) // Capped at MaxWidth
}

func TestTable_Render(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title"},
		Rows: [][]string{
			{"laundry", "Wash clothes"},
			{"dishes", "Do the dishes"},
		},
	}

	output := table.Render()

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Title")
	assert.Contains(t, output, "Wash clothes")
	assert.Contains(t, output, "dishes")
	// Should contain separator line
	assert.Contains(t, output, "─")
}

func TestTable_Render_Empty(t *testing.T) {
	table := &Table{
		Headers: []string{},
		Rows:    [][]string{},
	}

	output := table.Render()
	assert.Empty(t, output)
}

func TestTable_Render_Truncation(t *testing.T) {
	table := &Table{
		Headers:  []string{"Text"},
		Rows:     [][]string{{"This is way too long"}},
		MaxWidth: 10,
	}

	output := table.Render()

	// Should contain truncation indicator
	assert.Contains(t, output, "…")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"already short", 20, "already short"},
		{"needs a trim here", 8, "needs a…"},
		{"x", 1, "x"},
		{"xy", 1, "…"},
	}

	for _, tc := range tests {
		result := Truncate(tc.input, tc.maxLen)
		assert.Equal(t, tc.expected, result)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"abc", 5, "abc  "},
		{"hello", 5, "hello"},
		{"longer", 3, "longer"},
		{"", 3, "   "},
		{"◑", 2, "◑ "},
	}

	for _, tc := range tests {
		result := padRight(tc.input, tc.width)
		assert.Equal(t, tc.expected, result)
	}
}

func TestTable_Render_RowsHaveFewerColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title", "Status"},
		Rows: [][]string{
			{"dishes", "Do the dishes"}, // Missing Status column
		},
	}

	output := table.Render()

	// Should not panic and should render what's available
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Do the dishes")
	// Count lines - should have header, separator, and 1 data row
	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Equal(t, 3, len(lines))
}
