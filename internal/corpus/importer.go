package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/trust-service/internal/verifier"
	"github.com/xuri/excelize/v2"
)

// ImportResult summarizes a corpus file import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Expected columns: subject, title, text, optional quiz_id.
var expectedHeader = []string{"subject", "title", "text"}

// ImportFromExcel loads corpus entries from the first sheet of an Excel
// workbook. The first row must be a header.
func (c *Corpus) ImportFromExcel(reader io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("excel file must have a header row and at least one data row")
	}

	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, row := range rows[1:] {
		c.importRow(row, i+2, result)
	}
	return result, nil
}

// ImportFromCSV loads corpus entries from CSV with the same layout as the
// Excel import.
func (c *Corpus) ImportFromCSV(reader io.Reader) (*ImportResult, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		line++
		c.importRow(row, line, result)
	}
	return result, nil
}

func (c *Corpus) importRow(row []string, line int, result *ImportResult) {
	if len(row) < len(expectedHeader) {
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: expected at least %d columns", line, len(expectedHeader)))
		return
	}

	subject := strings.TrimSpace(row[0])
	title := strings.TrimSpace(row[1])
	text := strings.TrimSpace(row[2])
	if subject == "" || text == "" {
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: subject and text are required", line))
		return
	}

	entry := verifier.CorpusEntry{Title: title, Text: text}
	if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
		id, err := strconv.ParseUint(strings.TrimSpace(row[3]), 10, 64)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid quiz_id", line))
			return
		}
		entry.QuizID = uint(id)
	}

	c.Add(subject, entry)
	result.Imported++
}

func checkHeader(header []string) error {
	if len(header) < len(expectedHeader) {
		return fmt.Errorf("header must contain columns: %s", strings.Join(expectedHeader, ", "))
	}
	for i, want := range expectedHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("unexpected column %q, want %q", header[i], want)
		}
	}
	return nil
}
