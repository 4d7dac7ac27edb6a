// Command paschalion prints the Easter dates of a range of years as CSV
// and optionally stores them in the SQLite database.
//
// Usage:
//
//	go run ./cmd/paschalion -from 2020 -to 2040
//	go run ./cmd/paschalion -from 1900 -to 2100 -db data/paschalion.db
//
// Columns: year, Orthodox Easter (Julian), Orthodox Easter (Gregorian),
// Catholic Easter (Gregorian).
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/zapponejosh/paschalion/internal/database"
	"github.com/zapponejosh/paschalion/internal/logger"
)

// maxYears bounds a single run.
const maxYears = 10000

type options struct {
	from    int
	to      int
	dbPath  string
	verbose bool
}

func main() {
	now := time.Now().Year()

	var opts options
	flag.IntVar(&opts.from, "from", now, "First year of the table")
	flag.IntVar(&opts.to, "to", now+10, "Last year of the table (inclusive)")
	flag.StringVar(&opts.dbPath, "db", "", "SQLite database to store the table in (empty: don't store)")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose output")
	flag.Parse()

	level := "info"
	if opts.verbose {
		level = "debug"
	}
	// stdout carries the CSV, so logs go to stderr.
	log := logger.New(os.Stderr, level, "text")

	if err := run(context.Background(), opts, os.Stdout, log); err != nil {
		log.Error("paschalion failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func (o options) validate() error {
	if o.to < o.from {
		return fmt.Errorf("-to (%d) is before -from (%d)", o.to, o.from)
	}
	if o.to-o.from+1 > maxYears {
		return fmt.Errorf("range cannot exceed %d years", maxYears)
	}
	return nil
}

func run(ctx context.Context, opts options, out io.Writer, log *slog.Logger) error {
	if err := opts.validate(); err != nil {
		return err
	}

	start := time.Now()
	entries := database.GeneratePaschalion(opts.from, opts.to, start)
	log.Debug("table generated",
		slog.Int("from", opts.from),
		slog.Int("to", opts.to),
		slog.Int("rows", len(entries)),
	)

	if err := writeCSV(out, entries); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	if opts.dbPath == "" {
		return nil
	}

	db, err := database.Open(database.DefaultConfig(opts.dbPath), log)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := db.SavePaschalion(ctx, entries); err != nil {
		return err
	}

	log.Info("table stored",
		slog.String("db", opts.dbPath),
		slog.Int("rows", len(entries)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func writeCSV(out io.Writer, entries []database.PaschalionEntry) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"year", "orthodox_julian", "orthodox_gregorian", "catholic_gregorian"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := w.Write([]string{
			strconv.Itoa(e.Year),
			e.OrthodoxJulian.String(),
			e.OrthodoxGregorian.String(),
			e.CatholicGregorian.String(),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
