package ingest

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// MarkdownImporter handles .md and .markdown files.
type MarkdownImporter struct{}

// CanHandle returns true for Markdown file extensions.
func (m *MarkdownImporter) CanHandle(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

var (
	// headerRE matches any markdown header level 1-6.
	headerRE = regexp.MustCompile(`^(#{1,6})\s+(.+)`)

	// bulletRE matches a top-level bullet list item.
	bulletRE = regexp.MustCompile(`^[-*+]\s+(.+)`)
)

// Import reads a Markdown seed file. Each bullet item and each plain
// paragraph line becomes one message; headers set the section recorded
// on subsequent messages and are not messages themselves. YAML front
// matter and fenced code blocks are skipped.
func (m *MarkdownImporter) Import(ctx context.Context, path string) ([]RawMessage, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	body, skipped := stripFrontMatter(string(data))

	var messages []RawMessage
	scanner := bufio.NewScanner(strings.NewReader(body))
	lineNum := skipped
	section := ""
	inCodeBlock := false

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock || line == "" {
			continue
		}

		if match := headerRE.FindStringSubmatch(line); match != nil {
			section = strings.TrimSpace(match[2])
			continue
		}

		content := line
		if match := bulletRE.FindStringSubmatch(line); match != nil {
			content = strings.TrimSpace(match[1])
		}
		if content == "" {
			continue
		}

		messages = append(messages, RawMessage{
			Content:       content,
			SourceFile:    absPath,
			SourceLine:    lineNum,
			SourceSection: section,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// stripFrontMatter removes a leading YAML front matter block (---
// delimited) and returns the remaining body plus the number of lines
// removed, so later line numbers stay accurate.
func stripFrontMatter(content string) (string, int) {
	if !strings.HasPrefix(content, "---") {
		return content, 0
	}
	rest := content[3:]
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return content, 0
	}

	fm := content[:3+idx+4]
	body := rest[idx+4:]
	// Drop the newline terminating the closing delimiter.
	if strings.HasPrefix(body, "\n") {
		body = body[1:]
		fm += "\n"
	}
	return body, strings.Count(fm, "\n")
}
