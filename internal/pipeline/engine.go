// Package pipeline wires the extraction stages into one engine:
// text extraction, line normalization, format detection, segmentation,
// field extraction and import. Every collaborator is injected through the
// constructor; the engine holds no global state.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gasdir-ar/gasdir/constants"
	"github.com/gasdir-ar/gasdir/internal/gazetteer"
	"github.com/gasdir-ar/gasdir/internal/importer"
	"github.com/gasdir-ar/gasdir/internal/parse"
	"github.com/gasdir-ar/gasdir/internal/pdftext"
)

// Result is the outcome of one ingestion run. FormatConfident is false
// when no publisher signature matched and the engine fell back to the
// default format.
type Result struct {
	importer.Stats
	Format          constants.Format
	FormatConfident bool
	Records         []*parse.Record
}

type Engine struct {
	extractor pdftext.TextExtractor
	gaz       *gazetteer.Gazetteer
	importer  *importer.Importer
	logger    *slog.Logger
}

func NewEngine(extractor pdftext.TextExtractor, gaz *gazetteer.Gazetteer, imp *importer.Importer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{extractor: extractor, gaz: gaz, importer: imp, logger: logger}
}

// Ingest runs the full pipeline over one document. Only an extraction
// failure aborts the run; rejected blocks and per-record import failures
// are absorbed into the returned stats.
func (e *Engine) Ingest(ctx context.Context, doc []byte, hint constants.Publisher, provenance string) (*Result, error) {
	text, err := e.extractor.Extract(ctx, doc)
	if err != nil {
		e.logger.Error("engine.extract.failed", "error", err)
		return nil, err
	}
	if provenance == "" {
		provenance = "run:" + uuid.NewString()
	}

	result, rejected := e.ExtractRecords(text, hint)
	publisher := constants.PublisherFor(result.Format)

	stats := e.importer.Import(ctx, result.Records, publisher, provenance)
	stats.Errors += rejected
	stats.Total += rejected
	result.Stats = stats

	e.logger.Info("engine.ingest.done",
		"publisher", publisher,
		"format", result.Format,
		"format_confident", result.FormatConfident,
		"imported", stats.Imported,
		"updated", stats.Updated,
		"errors", stats.Errors,
		"total", stats.Total,
		"provenance", provenance,
	)
	return result, nil
}

// ExtractRecords runs the pure (storeless) part of the pipeline and is
// what parse-only tooling calls. Returns the result plus the count of
// blocks rejected for failing minimum-name validation.
func (e *Engine) ExtractRecords(text string, hint constants.Publisher) (*Result, int) {
	detection := parse.DetectFormat(text, hint)
	if !detection.Confident {
		e.logger.Warn("engine.detect.ambiguous", "default_format", detection.Format)
	}

	lines := parse.NormalizeLines(text)
	blocks := parse.Segment(lines, detection.Format)
	extractor := parse.ExtractorFor(detection.Format, e.gaz, e.logger)

	records := make([]*parse.Record, 0, len(blocks))
	rejected := 0
	for _, block := range blocks {
		rec := extractor.Extract(block)
		if rec == nil {
			rejected++
			continue
		}
		records = append(records, rec)
	}

	e.logger.Info("engine.segment.ok",
		"format", detection.Format,
		"lines", len(lines),
		"blocks", len(blocks),
		"records", len(records),
		"rejected", rejected,
	)
	return &Result{
		Format:          detection.Format,
		FormatConfident: detection.Confident,
		Records:         records,
	}, rejected
}
