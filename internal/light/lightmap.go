// Package light implements the lighting and visibility core: a symmetric
// recursive shadowcasting engine, the per-window light map with its four
// directional quadrants, and the apparent-light classifier observers query.
package light

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"tilelight/internal/calendar"
	"tilelight/internal/gamemap"
)

// Source is one point light emitter: a carried torch, a headlamp, a flare
// on the ground. Field and terrain emitters are read off the grid itself.
type Source struct {
	X, Y      int
	Luminance float32
}

// Stats summarizes one generated frame. The mean feeds the observer's
// adaptation threshold; the rest is telemetry material.
type Stats struct {
	Mean      float64
	Median    float64
	P90       float64
	LitTiles  int
	DarkTiles int
	Sources   int
}

// Map is the light map for one level window. All scratch arrays are
// allocated once and reused every frame; none of this state is ever
// persisted.
type Map struct {
	width, height int
	params        Params
	log           *slog.Logger

	brightness   []float32
	directional  []FourQuadrants
	seen         []float32
	transparency []float32
	sourceAt     []bool
	lit          []bool // per-cast double-credit guard

	statScratch []float64
	stats       Stats
}

// NewMap creates a light map for a width×height window with stock tuning.
func NewMap(width, height int) *Map {
	return NewMapWithParams(width, height, DefaultParams())
}

// NewMapWithParams creates a light map with explicit tuning.
func NewMapWithParams(width, height int, p Params) *Map {
	n := width * height
	return &Map{
		width:        width,
		height:       height,
		params:       p,
		log:          slog.Default(),
		brightness:   make([]float32, n),
		directional:  make([]FourQuadrants, n),
		seen:         make([]float32, n),
		transparency: make([]float32, n),
		sourceAt:     make([]bool, n),
		lit:          make([]bool, n),
		statScratch:  make([]float64, n),
	}
}

// SetLogger replaces the map's diagnostic logger.
func (m *Map) SetLogger(l *slog.Logger) { m.log = l }

// Params returns the map's tuning.
func (m *Map) Params() Params { return m.params }

// InBounds reports whether (x, y) is inside the window.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

func (m *Map) index(x, y int) int { return y*m.width + x }

// Generate rebuilds the light map for one frame:
//
//  1. resolve the transparency window and clear every accumulator;
//  2. add the natural sky term to outside tiles, and re-cast it indoors
//     from each transparent tile that borders the outdoors (windows and
//     doorways);
//  3. cast every tile emitter (fields, terrain, furniture);
//  4. cast every carried emitter in sources;
//  5. cast the observer's seen mask and adapt its vision threshold to the
//     frame's mean brightness.
//
// Brightness is a sum, so source order never matters.
func (m *Map) Generate(lv *gamemap.Level, sources []Source, obs *Observer, now calendar.Turn) {
	if lv.Width != m.width || lv.Height != m.height {
		m.log.Error("light map window does not match level",
			"map_w", m.width, "map_h", m.height, "level_w", lv.Width, "level_h", lv.Height)
		return
	}
	m.transparency = lv.ResolveTransparency(m.transparency)
	for i := range m.brightness {
		m.brightness[i] = 0
		m.directional[i] = FourQuadrants{}
		m.seen[i] = 0
		m.sourceAt[i] = false
	}
	nSources := 0

	ambient := now.Sunlight()
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if lv.IsOutside(x, y) {
				idx := m.index(x, y)
				m.brightness[idx] += ambient
				m.directional[idx].add(0, 0, ambient)
			}
		}
	}

	if ambient > m.params.AmbientLow {
		for y := 0; y < m.height; y++ {
			for x := 0; x < m.width; x++ {
				if lv.IsOutside(x, y) || m.transparency[m.index(x, y)] == 0 {
					continue
				}
				if lv.IsOutside(x-1, y) || lv.IsOutside(x+1, y) ||
					lv.IsOutside(x, y-1) || lv.IsOutside(x, y+1) {
					m.ApplyLightSource(x, y, ambient)
					nSources++
				}
			}
		}
	}

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if lum := lv.At(x, y).Luminance(); lum > 0 {
				m.ApplyLightSource(x, y, lum)
				nSources++
			}
		}
	}

	for _, s := range sources {
		m.ApplyLightSource(s.X, s.Y, s.Luminance)
		nSources++
	}

	if obs != nil {
		if m.InBounds(obs.X, obs.Y) {
			obs.LocalTransparency = m.transparency[m.index(obs.X, obs.Y)]
		}
		m.applySeen(obs.X, obs.Y, obs.NaturalSightRange())
	}

	m.computeStats(nSources)
	if obs != nil {
		obs.Adapt(m.stats.Mean)
	}
}

// AmbientLightAt returns the raw accumulated brightness at (x, y).
func (m *Map) AmbientLightAt(x, y int) float32 {
	if !m.InBounds(x, y) {
		return 0
	}
	return m.brightness[m.index(x, y)]
}

// DirectionalAt returns the four-quadrant split at (x, y).
func (m *Map) DirectionalAt(x, y int) FourQuadrants {
	if !m.InBounds(x, y) {
		return FourQuadrants{}
	}
	return m.directional[m.index(x, y)]
}

// SeenAt returns the observer visibility weight at (x, y) from the last
// Generate: 1 for tiles in the seen mask, 0 otherwise.
func (m *Map) SeenAt(x, y int) float32 {
	if !m.InBounds(x, y) {
		return 0
	}
	return m.seen[m.index(x, y)]
}

// IsSource reports whether (x, y) hosted a light source in the last frame.
func (m *Map) IsSource(x, y int) bool {
	return m.InBounds(x, y) && m.sourceAt[m.index(x, y)]
}

// Stats returns the last generated frame's summary.
func (m *Map) Stats() Stats { return m.stats }

// computeStats derives the frame summary and enforces the non-negativity
// invariant: a negative cell is an engine bug, logged and clamped.
func (m *Map) computeStats(nSources int) {
	lit, dark := 0, 0
	for i, b := range m.brightness {
		if b < 0 {
			m.log.Error("negative brightness in light map", "index", i, "value", b)
			m.brightness[i] = 0
			b = 0
		}
		switch {
		case b >= m.params.AmbientLit:
			lit++
		case b < m.params.AmbientLow:
			dark++
		}
		m.statScratch[i] = float64(b)
	}
	sort.Float64s(m.statScratch)
	m.stats = Stats{
		Mean:      stat.Mean(m.statScratch, nil),
		Median:    stat.Quantile(0.5, stat.Empirical, m.statScratch, nil),
		P90:       stat.Quantile(0.9, stat.Empirical, m.statScratch, nil),
		LitTiles:  lit,
		DarkTiles: dark,
		Sources:   nSources,
	}
}
