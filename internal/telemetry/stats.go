// Package telemetry collects per-frame lighting statistics and writes
// them out as CSV for offline analysis.
package telemetry

import (
	"time"

	"tilelight/internal/calendar"
	"tilelight/internal/light"
)

// FrameStats is one row of the telemetry log.
type FrameStats struct {
	Turn             int64   `csv:"turn"`
	MeanBrightness   float64 `csv:"mean_brightness"`
	MedianBrightness float64 `csv:"median_brightness"`
	P90Brightness    float64 `csv:"p90_brightness"`
	LitTiles         int     `csv:"lit_tiles"`
	DarkTiles        int     `csv:"dark_tiles"`
	Sources          int     `csv:"sources"`
	GenerateMicros   int64   `csv:"generate_us"`
}

// Collector accumulates frame rows in memory until flushed.
type Collector struct {
	frames []FrameStats
}

// NewCollector creates an empty collector.
func NewCollector() *Collector { return &Collector{} }

// Record appends one frame built from the light map's summary.
func (c *Collector) Record(now calendar.Turn, st light.Stats, generateTime time.Duration) {
	c.frames = append(c.frames, FrameStats{
		Turn:             int64(now),
		MeanBrightness:   st.Mean,
		MedianBrightness: st.Median,
		P90Brightness:    st.P90,
		LitTiles:         st.LitTiles,
		DarkTiles:        st.DarkTiles,
		Sources:          st.Sources,
		GenerateMicros:   generateTime.Microseconds(),
	})
}

// Len returns the number of recorded frames.
func (c *Collector) Len() int { return len(c.frames) }

// Frames returns the recorded rows.
func (c *Collector) Frames() []FrameStats { return c.frames }

// Reset drops all recorded frames.
func (c *Collector) Reset() { c.frames = c.frames[:0] }
