package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hurttlocker/jot/internal/intent"
	"github.com/hurttlocker/jot/internal/journal"
)

// MaxFileSize bounds how large a single seed file may be (1MB).
const MaxFileSize = 1 << 20

// Result summarizes a replay run.
type Result struct {
	FilesScanned  int           `json:"files_scanned"`
	FilesReplayed int           `json:"files_replayed"`
	FilesSkipped  int           `json:"files_skipped"`
	Messages      int           `json:"messages"`
	Added         int           `json:"added"`
	Queried       int           `json:"queried"`
	Noted         int           `json:"noted"`
	Errors        []ReplayError `json:"errors,omitempty"`
}

// ReplayError records a non-fatal problem with one seed file.
type ReplayError struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// Replay feeds the messages of every seed file under the given paths
// through the engine, in file order. Directories are walked recursively
// with hidden entries skipped. Problems with individual files are
// recorded in the result, not fatal: Replay errors only when a named
// path cannot be resolved at all.
func Replay(ctx context.Context, engine *journal.Engine, paths []string, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	result := &Result{}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("resolving seed path: %w", err)
		}

		if !info.IsDir() {
			replayFile(ctx, engine, path, result, logger)
			continue
		}

		walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if strings.HasPrefix(d.Name(), ".") && p != path {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			replayFile(ctx, engine, p, result, logger)
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walking seed directory %s: %w", path, walkErr)
		}
	}
	return result, nil
}

func replayFile(ctx context.Context, engine *journal.Engine, path string, result *Result, logger *slog.Logger) {
	result.FilesScanned++

	if info, err := os.Stat(path); err == nil && info.Size() > MaxFileSize {
		result.FilesSkipped++
		result.Errors = append(result.Errors, ReplayError{File: path, Message: "file exceeds size limit"})
		logger.Warn("seed file too large", "file", path, "size", info.Size())
		return
	}

	imp := ImporterFor(path)
	if imp == nil {
		result.FilesSkipped++
		return
	}

	messages, err := imp.Import(ctx, path)
	if err != nil {
		result.FilesSkipped++
		result.Errors = append(result.Errors, ReplayError{File: path, Message: err.Error()})
		logger.Warn("seed file skipped", "file", path, "error", err)
		return
	}
	if len(messages) == 0 {
		result.FilesSkipped++
		return
	}

	for _, msg := range messages {
		reply := engine.HandleMessage(ctx, msg.Content)
		result.Messages++
		switch reply.Intent {
		case intent.Add:
			result.Added++
		case intent.Query:
			result.Queried++
		default:
			result.Noted++
		}
	}
	result.FilesReplayed++
	logger.Info("seed file replayed", "file", path, "messages", len(messages))
}
