package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CSVImporter handles .csv and .tsv files.
type CSVImporter struct{}

// CanHandle returns true for CSV/TSV file extensions.
func (c *CSVImporter) CanHandle(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".csv" || ext == ".tsv"
}

// Import parses a CSV seed file: the first row is a header, and each
// subsequent row contributes one message from the message column (a
// header named message, content, or text; the first column otherwise).
func (c *CSVImporter) Import(ctx context.Context, path string) ([]RawMessage, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if strings.ToLower(filepath.Ext(path)) == ".tsv" {
		reader.Comma = '\t'
	}
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV %s: %w", path, err)
	}
	if len(records) < 2 {
		// Need headers plus at least one row.
		return nil, nil
	}

	col := messageColumn(records[0])

	var messages []RawMessage
	for i, row := range records[1:] {
		if col >= len(row) {
			continue
		}
		content := strings.TrimSpace(row[col])
		if content == "" {
			continue
		}
		messages = append(messages, RawMessage{
			Content:       content,
			SourceFile:    absPath,
			SourceLine:    i + 2, // 1-indexed, after the header row
			SourceSection: fmt.Sprintf("row-%d", i+1),
		})
	}
	return messages, nil
}

// messageColumn finds the index of the message-bearing column, falling
// back to the first column.
func messageColumn(headers []string) int {
	for i, h := range headers {
		name := strings.ToLower(strings.TrimSpace(h))
		for _, key := range messageKeys {
			if name == key {
				return i
			}
		}
	}
	return 0
}
