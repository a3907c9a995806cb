package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the directories relative paths are resolved against
type Paths struct {
	ExecutableDir string
	WorkingDir    string
}

// GetPaths returns the executable and working directories
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	return &Paths{
		ExecutableDir: filepath.Dir(exe),
		WorkingDir:    wd,
	}, nil
}

// Resolve returns an absolute path for p. Relative paths are looked up in the
// working directory first and then next to the executable. When neither
// exists the working directory candidate is returned so that the caller
// reports a meaningful "not found" path.
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	fromWD := filepath.Join(p.WorkingDir, path)
	if FileExists(fromWD) {
		return fromWD
	}

	fromExe := filepath.Join(p.ExecutableDir, path)
	if FileExists(fromExe) {
		return fromExe
	}

	return fromWD
}

// EnsureParentDir creates the directory holding path if it is missing
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LogPathResolution logs how configured paths were resolved
func (p *Paths) LogPathResolution(logger *slog.Logger, datasetPath string) {
	logger.Info("path resolution",
		slog.String("executable_dir", p.ExecutableDir),
		slog.String("working_dir", p.WorkingDir),
		slog.String("dataset", datasetPath),
	)
}

// DatasetPath returns the resolved dataset location. Resolution errors fall
// back to the configured value.
func (c *Config) DatasetPath() string {
	paths, err := GetPaths()
	if err != nil {
		return c.Dataset.Path
	}
	return paths.Resolve(c.Dataset.Path)
}
