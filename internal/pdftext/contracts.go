package pdftext

import "context"

// TextExtractor turns raw document bytes into plain text. Implementations
// must return common.ErrNoTextLayer (wrapped or bare) when the document
// carries no extractable text at all.
type TextExtractor interface {
	Extract(ctx context.Context, doc []byte) (string, error)
}
