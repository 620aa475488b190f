package gamemap

import "tilelight/internal/calendar"

// FieldTypeID indexes the field flyweight table.
type FieldTypeID uint8

// FieldType carries the static attributes of one field kind. Luminance and
// transparency are explicit per-intensity tables; nothing is inferred from
// neighbouring entries.
type FieldType struct {
	Name string

	// Luminance emitted per intensity (index 0 = intensity 1).
	Luminance [3]float32
	// Transparency multiplier per intensity; 1 leaves sight untouched,
	// 0 is fully opaque.
	Transparency [3]float32
	// Lifetime per intensity; 0 means the field never ages out.
	Lifetime [3]calendar.Turn
	// HalfLife steps intensity down one level each elapsed interval;
	// 0 disables decay stepping.
	HalfLife calendar.Turn
	// Danger per intensity, picked up by pathfinder danger functions.
	Danger [3]int

	// Wandering fields periodically spawn a child field nearby.
	WanderChild  FieldTypeID
	WanderPeriod calendar.Turn
	WanderRadius int

	// ConvertsTo swaps the entry's type in place after ConvertPeriod,
	// keeping the same tile slot.
	ConvertsTo    FieldTypeID
	ConvertPeriod calendar.Turn

	// Sinks drops the field one z-level when the tile below is passable.
	Sinks bool
}

// Builtin field type ids.
const (
	FieldNull FieldTypeID = iota
	FieldFire
	FieldSmoke
	FieldElectricity
	FieldFireVent
	FieldFlameBurst
	FieldAcid
	FieldSmokeVent
	fieldTypeCount
)

var fieldTypes = [...]FieldType{
	FieldNull: {Name: "none", Transparency: [3]float32{1, 1, 1}},
	FieldFire: {
		Name:         "fire",
		Luminance:    [3]float32{5, 25, 50},
		Transparency: [3]float32{1, 1, 1},
		Lifetime:     [3]calendar.Turn{300, 600, 800},
		HalfLife:     200,
		Danger:       [3]int{200, 600, 1000},
	},
	FieldSmoke: {
		Name:         "smoke",
		Transparency: [3]float32{0.7, 0.4, 0.1},
		Lifetime:     [3]calendar.Turn{120, 240, 360},
		HalfLife:     90,
		Danger:       [3]int{0, 10, 30},
	},
	FieldElectricity: {
		Name:         "electricity",
		Luminance:    [3]float32{0, 1, 5},
		Transparency: [3]float32{1, 1, 1},
		Lifetime:     [3]calendar.Turn{10, 20, 30},
		Danger:       [3]int{100, 300, 600},
	},
	FieldFireVent: {
		Name:          "fire vent",
		Transparency:  [3]float32{1, 1, 1},
		Danger:        [3]int{50, 50, 50},
		ConvertsTo:    FieldFlameBurst,
		ConvertPeriod: 60,
	},
	FieldFlameBurst: {
		Name:          "flame burst",
		Luminance:     [3]float32{10, 10, 10},
		Transparency:  [3]float32{1, 1, 1},
		Danger:        [3]int{800, 800, 800},
		ConvertsTo:    FieldFireVent,
		ConvertPeriod: 15,
	},
	FieldAcid: {
		Name:         "acid",
		Transparency: [3]float32{1, 1, 1},
		Lifetime:     [3]calendar.Turn{200, 400, 600},
		HalfLife:     150,
		Danger:       [3]int{300, 600, 900},
		Sinks:        true,
	},
	FieldSmokeVent: {
		Name:         "smoke vent",
		Transparency: [3]float32{1, 1, 1},
		WanderChild:  FieldSmoke,
		WanderPeriod: 30,
		WanderRadius: 2,
	},
}

// FieldTypeByID resolves a field type id, falling back to FieldNull.
func FieldTypeByID(id FieldTypeID) (FieldType, bool) {
	if int(id) >= len(fieldTypes) {
		return fieldTypes[FieldNull], false
	}
	return fieldTypes[id], true
}

// FieldEntry is one live field on a tile.
type FieldEntry struct {
	Type      FieldTypeID
	Intensity uint8 // 1..3, current
	Born      calendar.Turn

	initial    uint8 // intensity at creation; decay derives from this
	lastWander calendar.Turn
}

// Age returns how long the entry has existed.
func (e FieldEntry) Age(now calendar.Turn) calendar.Turn { return now - e.Born }

// alive reports whether the entry has lifetime left at the given turn.
func (e FieldEntry) alive(now calendar.Turn) bool {
	ft, _ := FieldTypeByID(e.Type)
	life := ft.Lifetime[e.Intensity-1]
	return life == 0 || e.Age(now) < life
}

// FieldView is a read-only snapshot of one tile's fields.
type FieldView struct {
	entries []FieldEntry
}

// Count returns the number of live fields on the tile.
func (v FieldView) Count() int { return len(v.entries) }

// At returns the i-th entry.
func (v FieldView) At(i int) FieldEntry { return v.entries[i] }

// Find returns the entry of the given type, if present.
func (v FieldView) Find(id FieldTypeID) (FieldEntry, bool) {
	for _, e := range v.entries {
		if e.Type == id {
			return e, true
		}
	}
	return FieldEntry{}, false
}

// Luminance sums the light output of every field on the tile.
func (v FieldView) Luminance() float32 {
	var sum float32
	for _, e := range v.entries {
		ft, _ := FieldTypeByID(e.Type)
		sum += ft.Luminance[e.Intensity-1]
	}
	return sum
}

// Danger sums the danger cost of every field on the tile.
func (v FieldView) Danger() int {
	sum := 0
	for _, e := range v.entries {
		ft, _ := FieldTypeByID(e.Type)
		sum += ft.Danger[e.Intensity-1]
	}
	return sum
}
