// runextract runs the parse-only half of the pipeline: PDF in, recovered
// records as JSON out. No store is touched; useful for eyeballing what a
// new listing would import.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gasdir-ar/gasdir/constants"
	"github.com/gasdir-ar/gasdir/internal/common"
	"github.com/gasdir-ar/gasdir/internal/gazetteer"
	"github.com/gasdir-ar/gasdir/internal/pdftext"
	"github.com/gasdir-ar/gasdir/internal/pipeline"
)

func main() {
	var (
		file      = flag.String("file", "", "listing PDF to parse (required)")
		publisher = flag.String("publisher", "auto", "publisher hint: a, b or auto")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		os.Exit(1)
	}
	hint, ok := constants.ParsePublisher(*publisher)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: --publisher must be a, b or auto")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg := common.LoadConfig()

	gaz, err := gazetteer.Load(cfg.Import.GazetteerPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load gazetteer: %v\n", err)
		os.Exit(1)
	}

	doc, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read file: %v\n", err)
		os.Exit(1)
	}

	extractor := pdftext.NewReader(cfg.Extractor.MaxPages, logger)
	text, err := extractor.Extract(context.Background(), doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: extract text: %v\n", err)
		os.Exit(1)
	}

	engine := pipeline.NewEngine(extractor, gaz, nil, logger)
	result, rejected := engine.ExtractRecords(text, hint)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, rec := range result.Records {
		if err := enc.Encode(rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error: encode record: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Fprintf(os.Stderr, "format=%s confident=%t records=%d rejected=%d\n",
		result.Format, result.FormatConfident, len(result.Records), rejected)
}
