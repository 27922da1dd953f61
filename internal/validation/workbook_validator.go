// Package validation checks workbook files and upload metadata before
// they reach the processing pipeline.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"hrpulse/internal/config"
)

// WorkbookValidator validates workbook files on disk and uploaded
// file metadata against the configured upload policy.
type WorkbookValidator struct {
	logger     *slog.Logger
	extensions map[string]bool
	maxSize    int64
}

// NewWorkbookValidator creates a validator from the upload configuration.
func NewWorkbookValidator(cfg config.UploadConfig, logger *slog.Logger) *WorkbookValidator {
	if logger == nil {
		logger = slog.Default()
	}
	extensions := make(map[string]bool)
	for _, ext := range cfg.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" {
			extensions[ext] = true
		}
	}
	return &WorkbookValidator{
		logger:     logger,
		extensions: extensions,
		maxSize:    cfg.MaxSizeBytes(),
	}
}

// MaxSizeBytes returns the configured upload size limit.
func (v *WorkbookValidator) MaxSizeBytes() int64 {
	return v.maxSize
}

// ValidateUpload checks an uploaded file's name and declared size.
func (v *WorkbookValidator) ValidateUpload(filename string, size int64) error {
	base := filepath.Base(filename)
	if strings.HasPrefix(base, "~$") {
		return fmt.Errorf("file %s is a temporary Excel file", base)
	}

	ext := strings.ToLower(filepath.Ext(base))
	if !v.extensions[ext] {
		v.logger.Warn("rejected upload with unsupported extension",
			slog.String("file", base),
			slog.String("extension", ext))
		return fmt.Errorf("file %s has unsupported extension %q", base, ext)
	}

	if size > v.maxSize {
		v.logger.Warn("rejected oversized upload",
			slog.String("file", base),
			slog.Int64("size", size),
			slog.Int64("limit", v.maxSize))
		return fmt.Errorf("file %s exceeds the %d byte size limit", base, v.maxSize)
	}

	return nil
}

// ValidateWorkbookFile checks that a workbook path on disk exists, is
// readable, and passes the upload policy.
func (v *WorkbookValidator) ValidateWorkbookFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	return v.ValidateUpload(path, info.Size())
}

// ValidateOutputDirectory ensures the output directory exists or can
// be created, and is writable.
func (v *WorkbookValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	return nil
}
