// Package datasets embeds a small sample of the NYC air-quality and UHF
// reference tables so the tool can be tried without downloading data.
package datasets

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

// Content holds air_quality.csv and uhf.csv
//
//go:embed *.csv
var Content embed.FS

// Files lists the embedded tables
var Files = []string{"air_quality.csv", "uhf.csv"}

// Seed writes every embedded table into dir. Existing files are left alone.
// It returns the paths that were written.
func Seed(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var written []string
	for _, name := range Files {
		target := filepath.Join(dir, name)

		// Check if target exists
		if _, err := os.Stat(target); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return written, err
		}

		data, err := fs.ReadFile(Content, name)
		if err != nil {
			return written, err
		}

		if err := os.WriteFile(target, data, 0644); err != nil {
			return written, err
		}
		written = append(written, target)
	}

	return written, nil
}
