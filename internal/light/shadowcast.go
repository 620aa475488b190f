package light

import "math"

// octant transform matrices.
// For each octant, a (dx, dy) sweep pair maps to a world offset via:
//
//	worldX = cx + dx*xx + dy*xy
//	worldY = cy + dx*yx + dy*yy
//
// where dy is the fixed row index (always negative, moving away from the
// source) and dx sweeps from the diagonal edge of the octant to the axis.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// castKind selects what a cast writes into the map.
type castKind uint8

const (
	castBrightness castKind = iota
	castSeen
)

// radiusFor returns how far a source of the given luminance can reach
// before dropping under the faint-light floor.
func (m *Map) radiusFor(luminance float32) int {
	if luminance <= 0 {
		return 0
	}
	r := int(math.Sqrt(float64(luminance/m.params.AmbientLow))) + 1
	if r > m.params.MaxRange {
		r = m.params.MaxRange
	}
	return r
}

// ApplyLightSource accumulates the brightness of a single source at
// (sx, sy) into the map: the source tile is credited directly, then each
// of the eight octants is walked with the symmetric recursion. A per-cast
// bitmap guarantees no tile is credited twice by one call.
func (m *Map) ApplyLightSource(sx, sy int, luminance float32) {
	if !m.InBounds(sx, sy) || luminance <= 0 {
		return
	}
	if luminance > m.params.MaxSourceLuminance {
		luminance = m.params.MaxSourceLuminance
	}
	m.clearLit()
	idx := m.index(sx, sy)
	m.lit[idx] = true
	m.sourceAt[idx] = true
	m.brightness[idx] += luminance
	m.directional[idx].add(0, 0, luminance)

	r := m.radiusFor(luminance)
	for _, o := range octants {
		m.castOctant(castBrightness, sx, sy, 1, 1.0, 0.0, r, o[0], o[1], o[2], o[3], luminance)
	}
}

// applySeen runs the same symmetric cast from the observer, writing the
// seen mask instead of brightness.
func (m *Map) applySeen(sx, sy, radius int) {
	if !m.InBounds(sx, sy) || radius <= 0 {
		return
	}
	if radius > m.params.MaxRange {
		radius = m.params.MaxRange
	}
	m.clearLit()
	idx := m.index(sx, sy)
	m.lit[idx] = true
	m.seen[idx] = 1
	for _, o := range octants {
		m.castOctant(castSeen, sx, sy, 1, 1.0, 0.0, radius, o[0], o[1], o[2], o[3], 0)
	}
}

// castOctant walks one octant of a symmetric recursive shadowcast.
//
// The recursion is bounded by the slope pair (start, end), start >= end.
// Cell edges sit at ±0.5 around the cell center; a transparent cell is
// credited only when its center slope lies inside the beam, which is what
// makes visibility mutual between any two tiles. Opaque cells are credited
// whenever the beam touches them so walls at the shadow edge stay visible.
func (m *Map) castOctant(kind castKind, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int, lum float32) {
	if start < end {
		return
	}
	radiusSq := radius * radius
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := cx + dx*xx + dy*xy
			wy := cy + dx*yx + dy*yy

			// Slopes of the cell's left and right edges. dy is negative,
			// so both denominators stay negative and the slopes run from
			// 1 at the diagonal down to 0 at the axis.
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			inBounds := m.InBounds(wx, wy)
			opaque := !inBounds || m.transparency[m.index(wx, wy)] == 0

			if inBounds && dx*dx+dy*dy <= radiusSq {
				center := float64(dx) / float64(dy)
				if opaque || (center <= start && center >= end) {
					m.credit(kind, wx, wy, cx, cy, lum, j)
				}
			}

			if blocked {
				if opaque {
					// Still inside a wall run: advance the shadow edge.
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < radius {
				// Hit a wall: scan the arc beyond it, then resume this
				// row past the wall's shadow.
				blocked = true
				m.castOctant(kind, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy, lum)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

// credit writes one cell's contribution, at most once per cast.
func (m *Map) credit(kind castKind, wx, wy, cx, cy int, lum float32, dist int) {
	idx := m.index(wx, wy)
	if m.lit[idx] {
		return
	}
	m.lit[idx] = true

	if kind == castSeen {
		m.seen[idx] = 1
		return
	}
	// Attenuate by the dominant-axis distance, matching the original
	// engine's falloff. Not physical, but behaviorally compatible.
	b := lum / float32(dist*dist)
	m.brightness[idx] += b
	m.directional[idx].add(wx-cx, wy-cy, b)
}

// clearLit resets the per-cast bitmap.
func (m *Map) clearLit() {
	for i := range m.lit {
		m.lit[i] = false
	}
}
