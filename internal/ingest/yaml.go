package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLImporter handles .yaml and .yml files.
type YAMLImporter struct{}

// CanHandle returns true for YAML file extensions.
func (y *YAMLImporter) CanHandle(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Import parses a YAML seed file. The accepted shapes match the JSON
// importer; multi-document files (--- separated) contribute messages
// per document, in document order.
func (y *YAMLImporter) Import(ctx context.Context, path string) ([]RawMessage, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	var messages []RawMessage
	docNum := 0

	for {
		var doc interface{}
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid YAML in %s (document %d): %w", path, docNum+1, err)
		}
		docNum++
		if doc == nil {
			continue
		}

		section := ""
		if docNum > 1 {
			section = fmt.Sprintf("document-%d", docNum)
		}
		for i, content := range messagesFromValue(doc) {
			msgSection := fmt.Sprintf("[%d]", i)
			if section != "" {
				msgSection = section + msgSection
			}
			messages = append(messages, RawMessage{
				Content:       content,
				SourceFile:    absPath,
				SourceLine:    1,
				SourceSection: msgSection,
			})
		}
	}
	return messages, nil
}
