package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DatasetExtensions lists the file types the dataset loader can read
var DatasetExtensions = []string{".csv", ".xlsx", ".xlsm"}

// PathValidator checks dataset inputs and export destinations before any work
// is done on them
type PathValidator struct {
	logger *slog.Logger
}

// NewPathValidator creates a new path validator
func NewPathValidator(logger *slog.Logger) *PathValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &PathValidator{logger: logger}
}

// ValidateDataset checks that path is a readable dataset file of a supported type
func (v *PathValidator) ValidateDataset(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Dataset file does not exist", slog.String("file", path))
		return fmt.Errorf("dataset %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat dataset %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a dataset file", path)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Refusing temporary Excel lock file", slog.String("file", path))
		return fmt.Errorf("%s is a temporary Excel file", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supported(ext) {
		return fmt.Errorf("dataset %s has unsupported extension %q (want one of %s)",
			path, ext, strings.Join(DatasetExtensions, ", "))
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("dataset %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("Dataset file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory creates dir when missing and checks it is writable
func (v *PathValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".write_test*")
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)

	return nil
}

// ValidateExportTarget checks an export destination. A path ending in .xlsx is
// a workbook file whose parent must be writable; anything else is a directory
// that will hold one CSV per view.
func (v *PathValidator) ValidateExportTarget(out string) error {
	if out == "" {
		return fmt.Errorf("export target is empty")
	}
	if strings.EqualFold(filepath.Ext(out), ".xlsx") {
		if info, err := os.Stat(out); err == nil && info.IsDir() {
			return fmt.Errorf("%s is a directory, not a workbook file", out)
		}
		return v.ValidateOutputDirectory(filepath.Dir(out))
	}
	if info, err := os.Stat(out); err == nil && !info.IsDir() {
		return fmt.Errorf("%s is a file, expected a directory or an .xlsx path", out)
	}
	return v.ValidateOutputDirectory(out)
}

func supported(ext string) bool {
	for _, e := range DatasetExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
