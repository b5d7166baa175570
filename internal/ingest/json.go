package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// JSONImporter handles .json files.
type JSONImporter struct{}

// CanHandle returns true for the JSON file extension.
func (j *JSONImporter) CanHandle(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}

// Import parses a JSON seed file. Accepted shapes:
//   - an array of message strings
//   - an array of objects carrying a "message", "content", or "text" key
//   - an object with a "messages" array of either shape
//   - a single string
func (j *JSONImporter) Import(ctx context.Context, path string) ([]RawMessage, error) {
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

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	var messages []RawMessage
	for i, content := range messagesFromValue(raw) {
		messages = append(messages, RawMessage{
			Content:       content,
			SourceFile:    absPath,
			SourceLine:    1,
			SourceSection: fmt.Sprintf("[%d]", i),
		})
	}
	return messages, nil
}

// messageKeys are the object keys checked, in order, for message text.
var messageKeys = []string{"message", "content", "text"}

// messagesFromValue coerces a decoded JSON or YAML value into message
// strings, dropping anything blank or unrecognized.
func messagesFromValue(v interface{}) []string {
	switch val := v.(type) {
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
	case []interface{}:
		var out []string
		for _, elem := range val {
			out = append(out, messagesFromValue(elem)...)
		}
		return out
	case map[string]interface{}:
		if list, ok := val["messages"]; ok {
			return messagesFromValue(list)
		}
		for _, key := range messageKeys {
			if s, ok := val[key].(string); ok && strings.TrimSpace(s) != "" {
				return []string{strings.TrimSpace(s)}
			}
		}
	}
	return nil
}
