package observability

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// LogDirEnv overrides the directory debug logs are written to.
const LogDirEnv = "FBCHARTS_LOG_DIR"

// LogDir returns the directory debug logs are written to.
func LogDir() (string, error) {
	if dir := os.Getenv(LogDirEnv); dir != "" {
		return dir, nil
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("observability: cache dir: %w", err)
	}
	return filepath.Join(cache, "fbcharts", "logs"), nil
}

// OpenLogFile creates dir if needed and opens a log file in it named after
// the current time, appending when it already exists.
func OpenLogFile(fs afero.Fs, dir string, now time.Time) (afero.File, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("observability: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("fbcharts-%s.log", now.Format("20060102-150405")))
	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("observability: open %s: %w", path, err)
	}
	return f, nil
}
