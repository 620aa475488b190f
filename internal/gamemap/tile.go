package gamemap

// VehiclePart describes the one piece of vehicle state the core cares
// about: an obstacle the pathfinder may open or bash through.
type VehiclePart struct {
	Name            string
	HP              int
	Obstacle        bool // blocks movement while intact
	Openable        bool // a door or hatch
	OpenCloseInside bool // openable only from inside the vehicle
}

// Tile is one cell of the grid. Terrain, furniture and traps are stored as
// flyweight ids; fields as a small ordered list.
type Tile struct {
	Terrain   TerrainID
	Furniture FurnitureID
	Trap      TrapID
	MoveCost  uint16 // resolved from terrain and furniture; 0 = impassable
	Radiation uint8

	Vehicle *VehiclePart

	fields []FieldEntry // ordered by FieldTypeID, at most MaxFieldsPerTile
}

// MaxFieldsPerTile caps the per-tile field list; AddField returns ErrFull
// beyond it.
const MaxFieldsPerTile = 4

// resolveMoveCost recomputes the tile's cached move cost from its terrain
// and furniture.
func (t *Tile) resolveMoveCost() {
	ter, _ := TerrainByID(t.Terrain)
	if ter.MoveCost == 0 {
		t.MoveCost = 0
		return
	}
	furn, _ := FurnitureByID(t.Furniture)
	cost := int(ter.MoveCost) + int(furn.MoveCostMod)
	if furn.MoveCostMod < 0 || cost <= 0 {
		t.MoveCost = 0
		return
	}
	t.MoveCost = uint16(cost)
}

// opaque reports whether the tile blocks sight before fields are applied.
func (t *Tile) opaque() bool {
	ter, _ := TerrainByID(t.Terrain)
	if ter.Has(FlagOpaque) {
		return true
	}
	furn, _ := FurnitureByID(t.Furniture)
	return furn.Opaque
}

// Fields returns a copy of the tile's live field entries.
func (t *Tile) Fields() []FieldEntry {
	if len(t.fields) == 0 {
		return nil
	}
	out := make([]FieldEntry, len(t.fields))
	copy(out, t.fields)
	return out
}

// fieldIndex returns the position of the given field type, or -1.
func (t *Tile) fieldIndex(id FieldTypeID) int {
	for i := range t.fields {
		if t.fields[i].Type == id {
			return i
		}
	}
	return -1
}

// Luminance returns the tile's intrinsic light output: terrain, furniture
// and fields combined.
func (t *Tile) Luminance() float32 {
	ter, _ := TerrainByID(t.Terrain)
	furn, _ := FurnitureByID(t.Furniture)
	sum := ter.Luminance + furn.Luminance
	for _, e := range t.fields {
		ft, _ := FieldTypeByID(e.Type)
		sum += ft.Luminance[e.Intensity-1]
	}
	return sum
}
