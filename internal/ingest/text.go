package ingest

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
)

// PlainTextImporter handles .txt, .log, and extensionless files.
type PlainTextImporter struct{}

// CanHandle returns true for plain text extensions and extensionless
// files.
func (t *PlainTextImporter) CanHandle(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".log", "":
		return true
	default:
		return false
	}
}

// Import reads a plain text seed file: one message per non-blank line.
// Lines starting with '#' are comments and skipped.
func (t *PlainTextImporter) Import(ctx context.Context, path string) ([]RawMessage, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var messages []RawMessage
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		messages = append(messages, RawMessage{
			Content:    line,
			SourceFile: absPath,
			SourceLine: lineNum,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
