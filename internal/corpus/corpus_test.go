package corpus

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/SAP-F-2025/trust-service/internal/verifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCorpus_AddAndEntries(t *testing.T) {
	c := New()
	c.Add("Algorithms", verifier.CorpusEntry{QuizID: 1, Title: "Sorting", Text: "merge sort quick sort heap sort"})
	c.Add("algorithms ", verifier.CorpusEntry{QuizID: 2, Title: "Graphs", Text: "breadth first depth first"})
	c.Add("Biology", verifier.CorpusEntry{QuizID: 3, Title: "Cells", Text: "mitochondria ribosomes"})

	entries, err := c.Entries(context.Background(), "ALGORITHMS")
	require.NoError(t, err)
	assert.Len(t, entries, 2, "subject lookup is case and whitespace insensitive")
	assert.Equal(t, 3, c.Len())
}

func TestCorpus_EntriesCancelledContext(t *testing.T) {
	c := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Entries(ctx, "Algorithms")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestImportFromCSV(t *testing.T) {
	input := strings.Join([]string{
		"subject,title,text,quiz_id",
		`Algorithms,Sorting intro,"merge sort splits and merges",12`,
		`Algorithms,,missing title is fine,`,
		`,No subject,this row is skipped,`,
		`Biology,Cells,"organelles and membranes",bad-id`,
	}, "\n")

	c := New()
	result, err := c.ImportFromCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Errors, 2)

	entries, err := c.Entries(context.Background(), "Algorithms")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint(12), entries[0].QuizID)
}

func TestImportFromCSV_BadHeader(t *testing.T) {
	c := New()
	_, err := c.ImportFromCSV(strings.NewReader("title,subject,text\na,b,c"))
	assert.Error(t, err)
}

func TestImportFromExcel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"subject", "title", "text", "quiz_id"},
		{"Algorithms", "Sorting intro", "merge sort splits and merges", 12},
		{"Biology", "Cells", "organelles and membranes", nil},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	c := New()
	result, err := c.ImportFromExcel(&buf)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 2, c.Len())
}

func TestImportFromExcel_HeaderOnly(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"subject", "title", "text"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := New().ImportFromExcel(&buf)
	assert.Error(t, err)
}
