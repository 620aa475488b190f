// Package gamemap holds the tile grid substrate: terrain, furniture, traps
// and fields as flyweight tables, plus the transparency and move-cost
// resolvers the lighting engine and pathfinder consume.
package gamemap

import (
	"log/slog"
	"math/rand"
	"sort"

	"tilelight/internal/calendar"
)

// Transparency bounds. 0 is opaque and terminates a ray.
const (
	TransparencySolid float32 = 0
	TransparencyClear float32 = 1
)

// Point is an integer tile coordinate. Z selects the level.
type Point struct {
	X, Y, Z int
}

// Level is one z-slice of the grid: a fixed Width×Height tile window.
type Level struct {
	Width, Height int
	Z             int
	tiles         []Tile
}

// InBounds reports whether (x, y) is within the level window.
func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

func (l *Level) index(x, y int) int { return y*l.Width + x }

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (l *Level) At(x, y int) *Tile {
	return &l.tiles[l.index(x, y)]
}

// SetTerrain replaces the terrain at (x, y) and re-resolves move cost.
func (l *Level) SetTerrain(x, y int, id TerrainID) {
	t := l.At(x, y)
	t.Terrain = id
	t.resolveMoveCost()
}

// SetFurniture replaces the furniture at (x, y) and re-resolves move cost.
func (l *Level) SetFurniture(x, y int, id FurnitureID) {
	t := l.At(x, y)
	t.Furniture = id
	t.resolveMoveCost()
}

// SetTrap places a trap at (x, y).
func (l *Level) SetTrap(x, y int, id TrapID) { l.At(x, y).Trap = id }

// SetVehiclePart attaches a vehicle part to (x, y); nil clears it.
func (l *Level) SetVehiclePart(x, y int, part *VehiclePart) {
	t := l.At(x, y)
	t.Vehicle = part
	t.resolveMoveCost()
	if part != nil && part.Obstacle {
		t.MoveCost = 0
	}
}

// IsOutside reports whether the tile at (x, y) receives the sky term.
func (l *Level) IsOutside(x, y int) bool {
	if !l.InBounds(x, y) {
		return false
	}
	ter, _ := TerrainByID(l.At(x, y).Terrain)
	return ter.Has(FlagOutside)
}

// MoveCostAt returns the resolved move cost at (x, y); out-of-window tiles
// are impassable.
func (l *Level) MoveCostAt(x, y int) uint16 {
	if !l.InBounds(x, y) {
		return 0
	}
	return l.At(x, y).MoveCost
}

// TransparencyAt resolves the light transparency coefficient at (x, y):
// terrain base opacity multiplied by each field's transparency at its
// current intensity. Out-of-window tiles are opaque for bounds safety.
func (l *Level) TransparencyAt(x, y int) float32 {
	if !l.InBounds(x, y) {
		return TransparencySolid
	}
	t := l.At(x, y)
	if t.opaque() {
		return TransparencySolid
	}
	trans := TransparencyClear
	for _, e := range t.fields {
		ft, _ := FieldTypeByID(e.Type)
		trans *= ft.Transparency[e.Intensity-1]
		if trans == 0 {
			break
		}
	}
	return trans
}

// ResolveTransparency fills dst (allocating when too small) with the
// resolved coefficient for every tile of the window, row-major.
func (l *Level) ResolveTransparency(dst []float32) []float32 {
	n := l.Width * l.Height
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			dst[l.index(x, y)] = l.TransparencyAt(x, y)
		}
	}
	return dst
}

// Grid is a stack of levels plus the shared tables and bookkeeping.
type Grid struct {
	Width, Height, Depth int

	levels []*Level
	rng    *rand.Rand
	log    *slog.Logger

	unknownLogged map[FieldTypeID]bool
}

// New creates a grid of the given window size and depth, all void. The
// wander rng is deterministic until reseeded with SetSeed.
func New(width, height, depth int) *Grid {
	g := &Grid{
		Width:         width,
		Height:        height,
		Depth:         depth,
		rng:           rand.New(rand.NewSource(0)),
		log:           slog.Default(),
		unknownLogged: make(map[FieldTypeID]bool),
	}
	for z := 0; z < depth; z++ {
		g.levels = append(g.levels, &Level{
			Width:  width,
			Height: height,
			Z:      z,
			tiles:  make([]Tile, width*height),
		})
	}
	return g
}

// SetSeed reseeds the rng driving wandering field spawns.
func (g *Grid) SetSeed(seed int64) { g.rng = rand.New(rand.NewSource(seed)) }

// SetLogger replaces the grid's diagnostic logger.
func (g *Grid) SetLogger(l *slog.Logger) { g.log = l }

// Level returns the z-th level, or nil when z is out of range.
func (g *Grid) Level(z int) *Level {
	if z < 0 || z >= g.Depth {
		return nil
	}
	return g.levels[z]
}

// InBounds reports whether p is within the grid.
func (g *Grid) InBounds(p Point) bool {
	if p.Z < 0 || p.Z >= g.Depth {
		return false
	}
	return g.levels[p.Z].InBounds(p.X, p.Y)
}

// TransparencyAt resolves the transparency coefficient at p; out of bounds
// is opaque.
func (g *Grid) TransparencyAt(p Point) float32 {
	if !g.InBounds(p) {
		return TransparencySolid
	}
	return g.levels[p.Z].TransparencyAt(p.X, p.Y)
}

// MoveCostAt returns the move cost at p; out of bounds is impassable.
func (g *Grid) MoveCostAt(p Point) uint16 {
	if !g.InBounds(p) {
		return 0
	}
	return g.levels[p.Z].MoveCostAt(p.X, p.Y)
}

// AddField places a field of the given type and intensity at p. Adding a
// type already present raises its intensity and refreshes its age instead
// of stacking a duplicate entry.
func (g *Grid) AddField(p Point, id FieldTypeID, intensity int, now calendar.Turn) error {
	if !g.InBounds(p) {
		return ErrOutOfBounds
	}
	if int(id) >= len(fieldTypes) || id == FieldNull {
		if !g.unknownLogged[id] {
			g.unknownLogged[id] = true
			g.log.Debug("dropping field of unknown type", "type", int(id), "x", p.X, "y", p.Y, "z", p.Z)
		}
		return ErrUnknownType
	}
	if intensity < 1 {
		intensity = 1
	}
	if intensity > 3 {
		intensity = 3
	}

	t := g.levels[p.Z].At(p.X, p.Y)
	if i := t.fieldIndex(id); i >= 0 {
		e := &t.fields[i]
		if uint8(intensity) > e.Intensity {
			e.Intensity = uint8(intensity)
			e.initial = uint8(intensity)
		}
		e.Born = now
		return nil
	}
	if len(t.fields) >= MaxFieldsPerTile {
		return ErrFull
	}
	t.fields = append(t.fields, FieldEntry{
		Type:      id,
		Intensity: uint8(intensity),
		Born:      now,
		initial:   uint8(intensity),
	})
	// Keep the list ordered by type id so iteration order is stable.
	sort.Slice(t.fields, func(a, b int) bool { return t.fields[a].Type < t.fields[b].Type })
	return nil
}

// RemoveField deletes the field of the given type at p, if present.
func (g *Grid) RemoveField(p Point, id FieldTypeID) {
	if !g.InBounds(p) {
		return
	}
	t := g.levels[p.Z].At(p.X, p.Y)
	if i := t.fieldIndex(id); i >= 0 {
		t.fields = append(t.fields[:i], t.fields[i+1:]...)
	}
}

// FieldAt returns a read-only snapshot of the fields at p.
func (g *Grid) FieldAt(p Point) FieldView {
	if !g.InBounds(p) {
		return FieldView{}
	}
	t := g.levels[p.Z].At(p.X, p.Y)
	if len(t.fields) == 0 {
		return FieldView{}
	}
	entries := make([]FieldEntry, len(t.fields))
	copy(entries, t.fields)
	return FieldView{entries: entries}
}

// fieldMove records a cross-tile effect collected during a sweep.
type fieldMove struct {
	entry FieldEntry
	to    Point
}

// ProcessFields decays, converts, sinks and spreads every field on the
// grid. The sweep is idempotent for an unchanged now: decay derives from
// each entry's birth turn, conversions reset it, and wander spawns are
// guarded by a last-spawn stamp.
func (g *Grid) ProcessFields(now calendar.Turn) {
	var moves []fieldMove
	var spawns []fieldMove

	for z := 0; z < g.Depth; z++ {
		lv := g.levels[z]
		for y := 0; y < lv.Height; y++ {
			for x := 0; x < lv.Width; x++ {
				t := lv.At(x, y)
				if len(t.fields) == 0 {
					continue
				}
				kept := t.fields[:0]
				for _, e := range t.fields {
					ft, ok := FieldTypeByID(e.Type)
					if !ok {
						if !g.unknownLogged[e.Type] {
							g.unknownLogged[e.Type] = true
							g.log.Debug("dropping field of unknown type", "type", int(e.Type), "x", x, "y", y, "z", z)
						}
						continue
					}

					// In-place conversion keeps the tile slot.
					if ft.ConvertsTo != FieldNull && e.Age(now) >= ft.ConvertPeriod {
						e.Type = ft.ConvertsTo
						e.Born = now
						e.initial = e.Intensity
						kept = append(kept, e)
						continue
					}

					// Intensity steps down once per elapsed half-life.
					if ft.HalfLife > 0 {
						steps := int(e.Age(now) / ft.HalfLife)
						left := int(e.initial) - steps
						if left < 1 {
							continue
						}
						e.Intensity = uint8(left)
					}

					if !e.alive(now) {
						continue
					}

					// Acid and its kin fall when the tile below opens up.
					if ft.Sinks && z > 0 {
						below := g.levels[z-1]
						if below.At(x, y).MoveCost > 0 {
							moves = append(moves, fieldMove{entry: e, to: Point{X: x, Y: y, Z: z - 1}})
							continue
						}
					}

					// Wandering fields seed their child nearby.
					if ft.WanderChild != FieldNull && now-e.lastWander >= ft.WanderPeriod {
						e.lastWander = now
						dx := g.rng.Intn(2*ft.WanderRadius+1) - ft.WanderRadius
						dy := g.rng.Intn(2*ft.WanderRadius+1) - ft.WanderRadius
						to := Point{X: x + dx, Y: y + dy, Z: z}
						if g.InBounds(to) && g.TransparencyAt(to) > 0 {
							spawns = append(spawns, fieldMove{
								entry: FieldEntry{Type: ft.WanderChild, Intensity: 1, Born: now, initial: 1},
								to:    to,
							})
						}
					}

					kept = append(kept, e)
				}
				t.fields = kept
			}
		}
	}

	for _, m := range append(moves, spawns...) {
		g.placeEntry(m.to, m.entry)
	}
}

// placeEntry inserts a pre-built entry, merging with an existing entry of
// the same type and respecting the per-tile capacity.
func (g *Grid) placeEntry(p Point, e FieldEntry) {
	t := g.levels[p.Z].At(p.X, p.Y)
	if i := t.fieldIndex(e.Type); i >= 0 {
		if e.Intensity > t.fields[i].Intensity {
			t.fields[i] = e
		}
		return
	}
	if len(t.fields) >= MaxFieldsPerTile {
		return
	}
	t.fields = append(t.fields, e)
	sort.Slice(t.fields, func(a, b int) bool { return t.fields[a].Type < t.fields[b].Type })
}
