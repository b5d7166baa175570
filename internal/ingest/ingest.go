// Package ingest replays seed files through the journal engine.
//
// Each supported format (plain text, Markdown, JSON, YAML, CSV) has an
// importer that recovers the ordered list of user messages a seed file
// contains. Replay feeds those messages through journal.Engine exactly
// as if the user had typed them, so intent classification and item
// extraction behave identically for seeded and live input.
//
// Importers preserve provenance: source file, line number, and section
// are tracked for every recovered message.
package ingest

import "context"

// RawMessage is one user message recovered from a seed file.
type RawMessage struct {
	Content       string // the message text
	SourceFile    string // absolute path to the seed file
	SourceLine    int    // starting line number (1-indexed; 1 for structured formats)
	SourceSection string // section header, key path, or row label
}

// Importer parses one seed-file format.
type Importer interface {
	// CanHandle reports whether this importer supports the given path.
	CanHandle(path string) bool

	// Import parses the file and returns its messages in file order.
	Import(ctx context.Context, path string) ([]RawMessage, error)
}

// Importers returns the format importers in detection order. Plain text
// is last: it also accepts extensionless files.
func Importers() []Importer {
	return []Importer{
		&MarkdownImporter{},
		&JSONImporter{},
		&YAMLImporter{},
		&CSVImporter{},
		&PlainTextImporter{},
	}
}

// ImporterFor picks the importer for a path, or nil when none accepts it.
func ImporterFor(path string) Importer {
	for _, imp := range Importers() {
		if imp.CanHandle(path) {
			return imp
		}
	}
	return nil
}
