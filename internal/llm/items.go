package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const itemsSystemPrompt = `You extract shopping/to-do items from a user message.
Return STRICT JSON only, matching: {"items": ["item", ...]}
Rules:
- Items are short noun phrases, lowercase.
- Do not include list words ("shopping list", "to-do") or filler.
- If the message adds nothing, return {"items": []}.`

// itemsResponse is the JSON shape the model is asked to return.
type itemsResponse struct {
	Items []string `json:"items"`
}

// ExtractItems asks the model for the structured items of a message.
// The answer is validated: items are trimmed, lowercased, de-duplicated,
// and capped at max (0 = no cap). A parse failure or an API failure is
// returned as an error so the caller can fall back to rule-based
// extraction; an empty item list is a valid answer, not an error.
func ExtractItems(ctx context.Context, p Provider, message string, max int) ([]string, error) {
	prompt := fmt.Sprintf("Extract items from this message:\n\n---\n%s\n---\n\nReturn JSON matching the schema.", message)

	raw, err := p.Complete(ctx, prompt, CompletionOpts{
		Temperature: 0.1,
		Format:      "json",
		System:      itemsSystemPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("model extraction: %w", err)
	}

	items, err := parseItemsResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("model answer unusable: %w", err)
	}
	if max > 0 && len(items) > max {
		items = items[:max]
	}
	return items, nil
}

// parseItemsResponse parses the model's JSON (with markdown stripping).
func parseItemsResponse(raw string) ([]string, error) {
	cleaned := strings.TrimSpace(raw)

	// Strip markdown code fences
	if strings.HasPrefix(cleaned, "```") {
		lines := strings.Split(cleaned, "\n")
		start, end := 0, len(lines)
		for i, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				if start == 0 {
					start = i + 1
				} else {
					end = i
					break
				}
			}
		}
		if start > 0 && end > start {
			cleaned = strings.Join(lines[start:end], "\n")
		}
	}
	cleaned = strings.TrimSpace(cleaned)

	var resp itemsResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	seen := make(map[string]bool)
	var items []string
	for _, item := range resp.Items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		items = append(items, item)
	}
	return items, nil
}
