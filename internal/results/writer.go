package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Writer serializes merged outcome collections to a single JSON file.
type Writer struct {
	logger *zap.Logger
}

// NewWriter returns a Writer logging through the supplied logger.
func NewWriter(logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{logger: logger}
}

// Write flattens the collections in the order given and replaces the file at
// dest with the serialized JSON array. Parent directories are created as
// needed. The payload lands in a temporary file first and is renamed into
// place, so readers never observe a partial write and a prior run's file is
// fully superseded.
func (w *Writer) Write(collections [][]Outcome, dest string) error {
	total := 0
	for _, c := range collections {
		total += len(c)
	}
	merged := make([]Outcome, 0, total)
	for _, c := range collections {
		merged = append(merged, c...)
	}

	payload, err := json.MarshalIndent(merged, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal outcomes: %w", err)
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(dest), uuid.NewString()))
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write results to %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("replace %s: %w", dest, err)
	}

	w.logger.Info("results written",
		zap.String("path", dest),
		zap.Int("outcomes", total),
	)
	return nil
}
