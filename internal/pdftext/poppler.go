package pdftext

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gasdir-ar/gasdir/internal/common"
)

// PopplerExtractor shells out to pdftotext for documents the in-process
// reader cannot handle (odd encodings, broken xref tables). Every call is
// bounded by Timeout so a wedged process cannot stall a whole run.
type PopplerExtractor struct {
	Pdftotext string        // binary name or absolute path; if empty -> "pdftotext"
	Timeout   time.Duration // 0 = no cap

	runner Runner
	logger *slog.Logger
}

func NewPopplerExtractor(pdftotext string, timeout time.Duration, logger *slog.Logger) *PopplerExtractor {
	if pdftotext == "" {
		pdftotext = "pdftotext"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PopplerExtractor{Pdftotext: pdftotext, Timeout: timeout, runner: execRunner{}, logger: logger}
}

func (e *PopplerExtractor) Extract(ctx context.Context, doc []byte) (string, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	tmpDir, err := os.MkdirTemp("", "gasdir-pdf-*")
	if err != nil {
		return "", err
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			e.logger.Warn("pdftext.tmpdir.cleanup", "dir", tmpDir, "error", err)
		}
	}()

	path := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		return "", err
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", common.NewAppError("EXTRACTION_FAILED", strings.TrimSpace(string(errb)), err)
	}

	text := string(out)
	if strings.TrimSpace(strings.ReplaceAll(text, "\f", "")) == "" {
		return "", common.NewAppError("EXTRACTION_FAILED", "pdftotext produced no text", common.ErrNoTextLayer)
	}
	return text, nil
}

// Fallback chains extractors: the first one to produce text wins, and the
// last error is surfaced when none does.
type Fallback struct {
	Extractors []TextExtractor
	logger     *slog.Logger
}

func NewFallback(logger *slog.Logger, extractors ...TextExtractor) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{Extractors: extractors, logger: logger}
}

func (f *Fallback) Extract(ctx context.Context, doc []byte) (string, error) {
	var lastErr error = common.ErrNoTextLayer
	for i, ex := range f.Extractors {
		text, err := ex.Extract(ctx, doc)
		if err == nil {
			return text, nil
		}
		f.logger.Warn("pdftext.fallback.next", "stage", i, "error", err)
		lastErr = err
	}
	return "", lastErr
}
