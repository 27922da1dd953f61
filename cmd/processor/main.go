// Command processor runs the workbook pipeline once from the command
// line: it reads an Excel export, builds the canonical employee table,
// and writes it out as CSV.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"hrpulse/internal/config"
	"hrpulse/internal/dataprocessing"
	"hrpulse/internal/dataset"
	"hrpulse/internal/exporter"
	"hrpulse/internal/files"
	"hrpulse/internal/infrastructure"
	"hrpulse/internal/validation"
	"hrpulse/pkg/contracts/domain"
)

func main() {
	inPath := flag.String("in", "", "source .xlsx workbook, or a directory (the newest workbook is used)")
	outPath := flag.String("out", "", "path for the output CSV (defaults to <in>.csv)")
	noBOM := flag.Bool("no-bom", false, "omit the UTF-8 byte order mark from the CSV")
	month := flag.Int("month", 0, "also print a birthday/vacation report for this month (1-12)")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: processor -in workbook.xlsx [-out employees.csv] [-month 3] [-no-bom]")
		os.Exit(2)
	}
	if *month < 0 || *month > 12 {
		fmt.Fprintf(os.Stderr, "processor: -month must be between 1 and 12, got %d\n", *month)
		os.Exit(2)
	}
	if info, err := os.Stat(*inPath); err == nil && info.IsDir() {
		latest, err := files.LatestWorkbook(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "processor: %v\n", err)
			os.Exit(1)
		}
		*inPath = latest.Path
	}
	if *outPath == "" {
		base := (*inPath)[:len(*inPath)-len(filepath.Ext(*inPath))]
		*outPath = base + ".csv"
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{Level: "info", Output: "stdout"},
			Upload:  config.UploadConfig{MaxSizeMB: 32, Extensions: []string{".xlsx", ".xlsm"}},
		}
	}

	logger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if err := run(*inPath, *outPath, *month, !*noBOM, cfg, logger); err != nil {
		logger.Error("processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(inPath, outPath string, month int, bom bool, cfg *config.Config, logger *slog.Logger) error {
	start := time.Now()

	validator := validation.NewWorkbookValidator(cfg.Upload, logger)
	if err := validator.ValidateWorkbookFile(inPath); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(filepath.Dir(outPath)); err != nil {
		return err
	}

	file, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening workbook: %w", err)
	}
	defer file.Close()

	logger.Info("processing workbook",
		slog.String("input", inPath),
		slog.String("output", outPath))

	pipeline := dataprocessing.NewPipeline(logger)
	result, err := pipeline.Build(file)
	if err != nil {
		return fmt.Errorf("building employee table: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn("load warning",
			slog.String("code", string(warning.Code)),
			slog.String("message", warning.Message))
	}
	if result.TerminationJoin == domain.JoinKeyNone {
		logger.Warn("termination dates not joined, no viable key")
	}

	if err := exporter.WriteFile(outPath, result.Records, exporter.Options{BOMPrefix: bom}); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}

	if month >= 1 && month <= 12 {
		printMonthReport(result.Records, month)
	}

	logger.Info("processing complete",
		slog.Int("records", len(result.Records)),
		slog.Int("warnings", len(result.Warnings)),
		slog.String("duration", time.Since(start).String()),
		slog.String("output", outPath))
	return nil
}

func printMonthReport(records []domain.EmployeeRecord, month int) {
	fmt.Printf("\n%s\n", dataprocessing.MonthNames[month])

	fmt.Println("Birthdays:")
	birthdays := dataset.BirthdaysInMonth(records, month)
	if len(birthdays) == 0 {
		fmt.Println("  (none)")
	}
	for _, rec := range birthdays {
		fmt.Printf("  %s (%s)\n", rec.Name, rec.BirthDate.Format("02/01"))
	}

	fmt.Println("Vacation forecasts:")
	vacations := dataset.VacationsInMonth(records, month)
	if len(vacations) == 0 {
		fmt.Println("  (none)")
	}
	for _, rec := range vacations {
		deadline := ""
		if rec.VacationDeadline != nil {
			deadline = " (until " + rec.VacationDeadline.Format("2006-01-02") + ")"
		}
		fmt.Printf("  %s%s\n", rec.Name, deadline)
	}
}
