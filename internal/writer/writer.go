// Package writer serializes finalized documents to disk with
// collision-safe, per-label numbered base names.
package writer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/RobbStarkAustria/mensural-to-mei/internal/mei"
	"github.com/RobbStarkAustria/mensural-to-mei/internal/textutil"
)

const lockFileName = ".mensural2mei.lock"

// Result describes one written document pair.
type Result struct {
	Label    string
	BaseName string
	MEIPath  string
	MensPath string
	Elements int
}

// Writer owns the output directories for one conversion run. It holds a
// file lock on the MEI directory so concurrent runs cannot interleave
// their per-label counters.
type Writer struct {
	logger  *slog.Logger
	meiDir  string
	mensDir string

	lock     *flock.Flock
	counters map[string]int
	results  []Result
}

// New creates the output directories and acquires the run lock. mensDir
// may be empty when the flat encoding is disabled.
func New(logger *slog.Logger, meiDir, mensDir string) (*Writer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if meiDir == "" {
		return nil, errors.New("mei output directory required")
	}
	if err := os.MkdirAll(meiDir, 0o755); err != nil {
		return nil, fmt.Errorf("create mei directory: %w", err)
	}
	if mensDir != "" {
		if err := os.MkdirAll(mensDir, 0o755); err != nil {
			return nil, fmt.Errorf("create humdrum directory: %w", err)
		}
	}

	lock := flock.New(filepath.Join(meiDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, errors.New("output directory is in use by another conversion run")
	}

	return &Writer{
		logger:   logger.With("component", "writer"),
		meiDir:   meiDir,
		mensDir:  mensDir,
		lock:     lock,
		counters: make(map[string]int),
	}, nil
}

// Finalize serializes one document pair. The document is rendered fully
// before anything touches disk, so a serialization failure never leaves a
// partial file behind.
func (w *Writer) Finalize(ctx context.Context, label string, doc *mei.Document, flat []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	base := w.nextBaseName(label)
	content := doc.Bytes()

	meiPath := filepath.Join(w.meiDir, base+".mei")
	if err := os.WriteFile(meiPath, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", meiPath, err)
	}

	result := Result{
		Label:    label,
		BaseName: base,
		MEIPath:  meiPath,
		Elements: doc.ElementCount(),
	}

	if flat != nil {
		if w.mensDir == "" {
			return errors.New("flat encoding produced but no humdrum directory configured")
		}
		mensPath := filepath.Join(w.mensDir, base+".mens")
		data := strings.Join(flat, "\n") + "\n"
		if err := os.WriteFile(mensPath, []byte(data), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", mensPath, err)
		}
		result.MensPath = mensPath
	}

	w.results = append(w.results, result)
	w.logger.Debug("document written", "base", base, "elements", result.Elements)
	return nil
}

// nextBaseName derives <label>_<NN> with a per-label counter starting at
// 01 on first use.
func (w *Writer) nextBaseName(label string) string {
	sanitized := textutil.SanitizeFileName(label)
	if sanitized == "" {
		sanitized = "untitled"
	}
	w.counters[sanitized]++
	return fmt.Sprintf("%s_%02d", sanitized, w.counters[sanitized])
}

// Results lists the documents written so far, in write order.
func (w *Writer) Results() []Result {
	out := make([]Result, len(w.results))
	copy(out, w.results)
	return out
}

// Close releases the run lock.
func (w *Writer) Close() error {
	if w.lock == nil {
		return nil
	}
	if err := w.lock.Unlock(); err != nil {
		return fmt.Errorf("release output lock: %w", err)
	}
	w.lock = nil
	return nil
}
