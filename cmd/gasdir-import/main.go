package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gasdir-ar/gasdir/constants"
	"github.com/gasdir-ar/gasdir/internal/common"
	"github.com/gasdir-ar/gasdir/internal/export"
	"github.com/gasdir-ar/gasdir/internal/gazetteer"
	"github.com/gasdir-ar/gasdir/internal/importer"
	"github.com/gasdir-ar/gasdir/internal/pdftext"
	"github.com/gasdir-ar/gasdir/internal/pipeline"
	"github.com/gasdir-ar/gasdir/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		inmem     = flag.Bool("inmem", false, "use in-memory SQLite database")
		file      = flag.String("file", "", "listing PDF to import (required)")
		publisher = flag.String("publisher", "auto", "publisher hint: a, b or auto")
		source    = flag.String("source", "", "provenance string recorded on imported rows")
		out       = flag.String("out", "", "optional XLSX dump of the directory after import")
		poppler   = flag.Bool("poppler", false, "also try pdftotext when the in-process reader fails")
	)
	flag.Parse()

	if *file == "" {
		printError("Error: --file is required\n")
		os.Exit(1)
	}
	hint, ok := constants.ParsePublisher(*publisher)
	if !ok {
		printError("Error: --publisher must be a, b or auto\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	// Store: SQLite for local runs, Postgres when DB_URL is set.
	var (
		db   *sql.DB
		pool *pgxpool.Pool
		err  error
	)
	if *inmem {
		db, err = repository.OpenSQLite(":memory:")
	} else if cfg.Database.DSN != "" {
		db, pool, err = repository.OpenPostgres(ctx, cfg.Database, logger)
	} else {
		db, err = repository.OpenSQLite("gasdir.db")
	}
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, pool, logger)

	if err := repository.Migrate(ctx, db); err != nil {
		logger.Error("failed to migrate store", "error", err)
		os.Exit(1)
	}

	gaz, err := gazetteer.Load(cfg.Import.GazetteerPath)
	if err != nil {
		logger.Error("failed to load gazetteer", "error", err)
		os.Exit(1)
	}

	var extractor pdftext.TextExtractor = pdftext.NewReader(cfg.Extractor.MaxPages, logger)
	if *poppler {
		extractor = pdftext.NewFallback(logger,
			extractor,
			pdftext.NewPopplerExtractor(cfg.Extractor.Pdftotext, cfg.Extractor.Timeout, logger),
		)
	}

	profiles := repository.NewProfileRepository(db, logger)
	engine := pipeline.NewEngine(extractor, gaz, importer.NewImporter(profiles, logger), logger)

	doc, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("failed to read file", "file", *file, "error", err)
		os.Exit(1)
	}

	result, err := engine.Ingest(ctx, doc, hint, *source)
	if err != nil {
		logger.Error("ingestion failed", "file", *file, "error", err)
		os.Exit(1)
	}

	if *out != "" {
		svc := export.NewService(profiles, logger)
		xlsx, err := svc.ExportDirectoryXLSX(ctx, constants.PublisherFor(result.Format))
		if err != nil {
			logger.Error("failed to export directory", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, xlsx, 0o644); err != nil {
			logger.Error("failed to write output file", "error", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Import complete!\n")
	fmt.Printf("- Format: %s (confident=%t)\n", result.Format, result.FormatConfident)
	fmt.Printf("- Imported: %d\n", result.Imported)
	fmt.Printf("- Updated: %d\n", result.Updated)
	fmt.Printf("- Errors: %d\n", result.Errors)
	fmt.Printf("- Total: %d\n", result.Total)
	if *out != "" {
		fmt.Printf("- Output: %s\n", *out)
	}
}
