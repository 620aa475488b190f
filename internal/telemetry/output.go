package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes the collector's frames to w with a header row.
func (c *Collector) WriteCSV(w io.Writer) error {
	if err := gocsv.Marshal(c.frames, w); err != nil {
		return fmt.Errorf("marshaling telemetry: %w", err)
	}
	return nil
}

// WriteFile writes the collector's frames to a CSV file, creating the
// parent directory when needed.
func (c *Collector) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating telemetry directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating telemetry file: %w", err)
	}
	defer f.Close()
	return c.WriteCSV(f)
}
