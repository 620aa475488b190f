package gamemap

import (
	"errors"
	"testing"
)

// openGrid creates a single-level grid of all floor tiles.
func openGrid(width, height int) *Grid {
	g := New(width, height, 1)
	lv := g.Level(0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			lv.SetTerrain(x, y, TerFloor)
		}
	}
	return g
}

func TestNewGridIsVoid(t *testing.T) {
	g := New(5, 4, 2)
	if got := g.TransparencyAt(Point{X: 2, Y: 2}); got != TransparencySolid {
		t.Errorf("void tile transparency = %v, want solid", got)
	}
	if got := g.MoveCostAt(Point{X: 2, Y: 2}); got != 0 {
		t.Errorf("void tile move cost = %d, want 0", got)
	}
}

func TestOutOfBoundsIsOpaqueAndImpassable(t *testing.T) {
	g := openGrid(5, 5)
	for _, p := range []Point{{X: -1, Y: 0}, {X: 5, Y: 0}, {X: 0, Y: -3}, {X: 0, Y: 0, Z: 1}} {
		if got := g.TransparencyAt(p); got != TransparencySolid {
			t.Errorf("TransparencyAt(%v) = %v, want solid", p, got)
		}
		if got := g.MoveCostAt(p); got != 0 {
			t.Errorf("MoveCostAt(%v) = %d, want 0", p, got)
		}
	}
}

func TestTerrainResolvesMoveCostAndTransparency(t *testing.T) {
	g := openGrid(3, 3)
	lv := g.Level(0)
	lv.SetTerrain(1, 1, TerWall)

	if got := g.MoveCostAt(Point{X: 1, Y: 1}); got != 0 {
		t.Errorf("wall move cost = %d, want 0", got)
	}
	if got := g.TransparencyAt(Point{X: 1, Y: 1}); got != TransparencySolid {
		t.Errorf("wall transparency = %v, want solid", got)
	}
	if got := g.TransparencyAt(Point{X: 0, Y: 0}); got != TransparencyClear {
		t.Errorf("floor transparency = %v, want clear", got)
	}

	// A window blocks movement but not sight.
	lv.SetTerrain(2, 1, TerWindow)
	if got := g.MoveCostAt(Point{X: 2, Y: 1}); got != 0 {
		t.Errorf("window move cost = %d, want 0", got)
	}
	if got := g.TransparencyAt(Point{X: 2, Y: 1}); got != TransparencyClear {
		t.Errorf("window transparency = %v, want clear", got)
	}
}

func TestFurnitureModifiesMoveCost(t *testing.T) {
	g := openGrid(3, 3)
	lv := g.Level(0)

	lv.SetFurniture(0, 0, FurnCrate)
	if got := g.MoveCostAt(Point{}); got != 5 {
		t.Errorf("crate-on-floor move cost = %d, want 5", got)
	}

	lv.SetFurniture(1, 0, FurnBookshelf)
	if got := g.MoveCostAt(Point{X: 1}); got != 0 {
		t.Errorf("bookshelf move cost = %d, want 0 (blocking)", got)
	}
	if got := g.TransparencyAt(Point{X: 1}); got != TransparencySolid {
		t.Errorf("bookshelf transparency = %v, want solid (opaque furniture)", got)
	}
}

func TestResolveTransparencyWindow(t *testing.T) {
	g := openGrid(4, 2)
	g.Level(0).SetTerrain(2, 1, TerWall)

	grid := g.Level(0).ResolveTransparency(nil)
	if len(grid) != 8 {
		t.Fatalf("resolved grid length = %d, want 8", len(grid))
	}
	if grid[1*4+2] != TransparencySolid {
		t.Errorf("wall cell = %v, want solid", grid[1*4+2])
	}
	if grid[0] != TransparencyClear {
		t.Errorf("floor cell = %v, want clear", grid[0])
	}
}

func TestSmokeAttenuatesTransparency(t *testing.T) {
	g := openGrid(3, 3)
	p := Point{X: 1, Y: 1}
	if err := g.AddField(p, FieldSmoke, 2, 0); err != nil {
		t.Fatalf("AddField: %v", err)
	}
	got := g.TransparencyAt(p)
	want := TransparencyClear * 0.4
	if got != want {
		t.Errorf("smoke-2 transparency = %v, want %v", got, want)
	}
}

func TestAddFieldUnknownType(t *testing.T) {
	g := openGrid(3, 3)
	if err := g.AddField(Point{X: 1, Y: 1}, FieldTypeID(200), 1, 0); !errors.Is(err, ErrUnknownType) {
		t.Errorf("AddField(unknown) = %v, want ErrUnknownType", err)
	}
}

func TestAddFieldCapacity(t *testing.T) {
	g := openGrid(3, 3)
	p := Point{X: 0, Y: 0}
	for _, id := range []FieldTypeID{FieldFire, FieldSmoke, FieldElectricity, FieldAcid} {
		if err := g.AddField(p, id, 1, 0); err != nil {
			t.Fatalf("AddField(%d): %v", id, err)
		}
	}
	if err := g.AddField(p, FieldFireVent, 1, 0); !errors.Is(err, ErrFull) {
		t.Errorf("fifth field = %v, want ErrFull", err)
	}
}

func TestAddFieldMergesSameType(t *testing.T) {
	g := openGrid(3, 3)
	p := Point{X: 0, Y: 0}
	if err := g.AddField(p, FieldFire, 1, 0); err != nil {
		t.Fatalf("AddField: %v", err)
	}
	if err := g.AddField(p, FieldFire, 3, 10); err != nil {
		t.Fatalf("AddField again: %v", err)
	}
	v := g.FieldAt(p)
	if v.Count() != 1 {
		t.Fatalf("field count = %d, want 1 (merged)", v.Count())
	}
	if e := v.At(0); e.Intensity != 3 || e.Born != 10 {
		t.Errorf("merged entry = %+v, want intensity 3 born 10", e)
	}
}

func TestAddFieldOutOfBounds(t *testing.T) {
	g := openGrid(3, 3)
	if err := g.AddField(Point{X: 9, Y: 9}, FieldFire, 1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("AddField OOB = %v, want ErrOutOfBounds", err)
	}
}

func TestVehiclePartBlocksTile(t *testing.T) {
	g := openGrid(3, 3)
	g.Level(0).SetVehiclePart(1, 1, &VehiclePart{Name: "door", HP: 100, Obstacle: true, Openable: true})
	if got := g.MoveCostAt(Point{X: 1, Y: 1}); got != 0 {
		t.Errorf("vehicle obstacle move cost = %d, want 0", got)
	}
}

func TestBashRating(t *testing.T) {
	wall, _ := TerrainByID(TerWall)
	window, _ := TerrainByID(TerWindow)
	floor, _ := TerrainByID(TerFloor)

	if got := floor.BashRating(100); got != -1 {
		t.Errorf("floor rating = %d, want -1 (unbashable)", got)
	}
	if got := wall.BashRating(10); got != 1 {
		t.Errorf("weak-vs-wall rating = %d, want 1 (desperate)", got)
	}
	if got := wall.BashRating(500); got != 10 {
		t.Errorf("strong-vs-wall rating = %d, want 10", got)
	}
	if got := window.BashRating(8); got <= 1 || got >= 10 {
		t.Errorf("mid-force window rating = %d, want in (1, 10)", got)
	}
}
