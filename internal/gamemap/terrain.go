package gamemap

// TerrainID indexes the terrain flyweight table.
type TerrainID uint8

// FurnitureID indexes the furniture flyweight table.
type FurnitureID uint8

// TerrainFlag is a bit in a terrain's flag set.
type TerrainFlag uint16

const (
	// FlagOpaque blocks sight and terminates light rays.
	FlagOpaque TerrainFlag = 1 << iota
	// FlagOutside receives the ambient sky term.
	FlagOutside
	// FlagOpenable marks a door that can be opened by a pathing creature.
	FlagOpenable
	// FlagOpenCloseInside restricts opening to the interior side.
	FlagOpenCloseInside
	// FlagSwimmable marks deep water.
	FlagSwimmable
)

// Terrain is one flyweight entry: tiles store only the id.
type Terrain struct {
	Name      string
	Glyph     rune
	MoveCost  uint16 // 0 = impassable
	Flags     TerrainFlag
	Luminance float32 // intrinsic light output (utility lights)

	// Bash strength window: force below min cannot break the terrain,
	// force at or above max always does. Max 0 means unbashable.
	BashStrMin int
	BashStrMax int
}

// Has reports whether the terrain carries the flag.
func (t Terrain) Has(f TerrainFlag) bool { return t.Flags&f != 0 }

// BashRating grades how well the given force breaks this terrain:
// -1 unbashable, 1 desperate, up to 10 trivial.
func (t Terrain) BashRating(force int) int {
	if t.BashStrMax == 0 {
		return -1
	}
	if force <= 0 || force < t.BashStrMin {
		return 1
	}
	if force >= t.BashStrMax {
		return 10
	}
	return 2 + 8*(force-t.BashStrMin)/(t.BashStrMax-t.BashStrMin)
}

// Builtin terrain ids. TerNull doubles as the fallback for unknown ids.
const (
	TerNull TerrainID = iota
	TerDirt
	TerGrass
	TerTree
	TerWater
	TerFloor
	TerWall
	TerWindow
	TerDoorClosed
	TerDoorOpen
	TerDoorInside
	TerUtilityLight
	TerStairsDown
	TerStairsUp
	terrainCount
)

// terrains is the builtin flyweight table. A data-driven host would load
// this from content files; the core ships the handful of kinds its own
// tests and demos need.
var terrains = [...]Terrain{
	TerNull:         {Name: "void", Glyph: ' ', MoveCost: 0, Flags: FlagOpaque},
	TerDirt:         {Name: "dirt", Glyph: '.', MoveCost: 2, Flags: FlagOutside},
	TerGrass:        {Name: "grass", Glyph: ',', MoveCost: 2, Flags: FlagOutside},
	TerTree:         {Name: "tree", Glyph: 'T', MoveCost: 0, Flags: FlagOpaque | FlagOutside, BashStrMin: 40, BashStrMax: 120},
	TerWater:        {Name: "water", Glyph: '~', MoveCost: 0, Flags: FlagOutside | FlagSwimmable},
	TerFloor:        {Name: "floor", Glyph: '.', MoveCost: 2},
	TerWall:         {Name: "wall", Glyph: '#', MoveCost: 0, Flags: FlagOpaque, BashStrMin: 30, BashStrMax: 210},
	TerWindow:       {Name: "window", Glyph: '=', MoveCost: 0, BashStrMin: 4, BashStrMax: 12},
	TerDoorClosed:   {Name: "closed door", Glyph: '+', MoveCost: 0, Flags: FlagOpaque | FlagOpenable, BashStrMin: 8, BashStrMax: 40},
	TerDoorOpen:     {Name: "open door", Glyph: '\'', MoveCost: 2},
	TerDoorInside:   {Name: "inside door", Glyph: '+', MoveCost: 0, Flags: FlagOpaque | FlagOpenable | FlagOpenCloseInside, BashStrMin: 8, BashStrMax: 40},
	TerUtilityLight: {Name: "utility light", Glyph: 'o', MoveCost: 2, Luminance: 30},
	TerStairsDown:   {Name: "stairs down", Glyph: '>', MoveCost: 2},
	TerStairsUp:     {Name: "stairs up", Glyph: '<', MoveCost: 2},
}

// Furniture is one furniture flyweight entry.
type Furniture struct {
	Name        string
	Glyph       rune
	MoveCostMod int16 // added to terrain cost; -1 blocks entirely
	Opaque      bool
	Luminance   float32
}

// Builtin furniture ids.
const (
	FurnNull FurnitureID = iota
	FurnCrate
	FurnBookshelf
	FurnFloorLamp
	furnitureCount
)

var furnitures = [...]Furniture{
	FurnNull:      {Name: "nothing", Glyph: 0},
	FurnCrate:     {Name: "crate", Glyph: 'X', MoveCostMod: 3},
	FurnBookshelf: {Name: "bookshelf", Glyph: '|', MoveCostMod: -1, Opaque: true},
	FurnFloorLamp: {Name: "floor lamp", Glyph: 'o', MoveCostMod: 1, Luminance: 20},
}

// TerrainByID resolves a terrain id, falling back to TerNull for unknown
// values.
func TerrainByID(id TerrainID) (Terrain, bool) {
	if int(id) >= len(terrains) {
		return terrains[TerNull], false
	}
	return terrains[id], true
}

// FurnitureByID resolves a furniture id, falling back to FurnNull.
func FurnitureByID(id FurnitureID) (Furniture, bool) {
	if int(id) >= len(furnitures) {
		return furnitures[FurnNull], false
	}
	return furnitures[id], true
}
