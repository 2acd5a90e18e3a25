package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/gasdir-ar/gasdir/internal/common"
)

// Reader is the in-process extractor. It keeps row grouping so the
// downstream segmenter sees one listing row per text line.
type Reader struct {
	maxPages int
	logger   *slog.Logger
}

func NewReader(maxPages int, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{maxPages: maxPages, logger: logger}
}

func (r *Reader) Extract(ctx context.Context, doc []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return "", common.NewAppError("EXTRACTION_FAILED", "open pdf", err)
	}

	total := reader.NumPage()
	if r.maxPages > 0 && total > r.maxPages {
		total = r.maxPages
	}

	var b strings.Builder
	for pageNum := 1; pageNum <= total; pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := reader.Page(pageNum)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			r.logger.Warn("pdftext.page.failed", "page", pageNum, "error", err)
			continue
		}
		for _, row := range rows {
			for i, word := range row.Content {
				if i > 0 {
					b.WriteString(" ")
				}
				b.WriteString(word.S)
			}
			b.WriteString("\n")
		}
		b.WriteString("\f")
	}

	text := b.String()
	if strings.TrimSpace(strings.ReplaceAll(text, "\f", "")) == "" {
		return "", common.NewAppError("EXTRACTION_FAILED",
			fmt.Sprintf("no text recovered from %d page(s)", reader.NumPage()),
			common.ErrNoTextLayer)
	}
	return text, nil
}
