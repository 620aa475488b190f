package generate

import (
	"math/rand"
	"testing"

	"tilelight/internal/gamemap"
)

func TestBuildingCarvesConnectedRooms(t *testing.T) {
	g := gamemap.New(40, 30, 1)
	lv := g.Level(0)
	Outdoors(lv, 1)

	region := Rect{X1: 5, Y1: 5, X2: 34, Y2: 24}
	rooms := Building(lv, region, rand.New(rand.NewSource(1)))
	if len(rooms) == 0 {
		t.Fatal("no rooms carved")
	}

	// Every room floor is walkable and inside the region.
	for _, r := range rooms {
		for y := r.Y1; y <= r.Y2; y++ {
			for x := r.X1; x <= r.X2; x++ {
				if !region.Contains(x, y) {
					t.Fatalf("room tile (%d,%d) escapes the region", x, y)
				}
				if lv.MoveCostAt(x, y) == 0 {
					t.Fatalf("room tile (%d,%d) is not walkable", x, y)
				}
			}
		}
	}

	// All room centers are mutually reachable through carved floor: flood
	// fill from the first.
	cx, cy := rooms[0].Center()
	reached := floodWalkable(lv, cx, cy)
	for i, r := range rooms {
		x, y := r.Center()
		if !reached[y*lv.Width+x] {
			t.Errorf("room %d center (%d,%d) unreachable from room 0", i, x, y)
		}
	}
}

func TestBuildingHasEntranceAndInteriorIsIndoors(t *testing.T) {
	g := gamemap.New(40, 30, 1)
	lv := g.Level(0)
	Outdoors(lv, 2)
	region := Rect{X1: 5, Y1: 5, X2: 34, Y2: 24}
	rooms := Building(lv, region, rand.New(rand.NewSource(2)))
	if len(rooms) == 0 {
		t.Fatal("no rooms carved")
	}

	// Interior floor tiles never carry the outside flag.
	for _, r := range rooms {
		for y := r.Y1; y <= r.Y2; y++ {
			for x := r.X1; x <= r.X2; x++ {
				if lv.IsOutside(x, y) {
					t.Fatalf("interior tile (%d,%d) is flagged outside", x, y)
				}
			}
		}
	}

	// The perimeter carries at least one door or window.
	openings := 0
	for x := region.X1; x <= region.X2; x++ {
		for _, y := range []int{region.Y1, region.Y2} {
			switch lv.At(x, y).Terrain {
			case gamemap.TerDoorClosed, gamemap.TerWindow:
				openings++
			}
		}
	}
	for y := region.Y1; y <= region.Y2; y++ {
		for _, x := range []int{region.X1, region.X2} {
			switch lv.At(x, y).Terrain {
			case gamemap.TerDoorClosed, gamemap.TerWindow:
				openings++
			}
		}
	}
	if openings == 0 {
		t.Error("building perimeter has neither door nor window")
	}
}

func TestOutdoorsIsAllOutside(t *testing.T) {
	g := gamemap.New(20, 20, 1)
	lv := g.Level(0)
	Outdoors(lv, 42)

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if !lv.IsOutside(x, y) {
				t.Fatalf("outdoor tile (%d,%d) lacks the outside flag", x, y)
			}
		}
	}
}

func TestOutdoorsDeterministicPerSeed(t *testing.T) {
	a := gamemap.New(20, 20, 1)
	b := gamemap.New(20, 20, 1)
	Outdoors(a.Level(0), 7)
	Outdoors(b.Level(0), 7)

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if a.Level(0).At(x, y).Terrain != b.Level(0).At(x, y).Terrain {
				t.Fatalf("same seed diverged at (%d,%d)", x, y)
			}
		}
	}
}

func TestTownPlacesBuildingInsideMap(t *testing.T) {
	g := gamemap.New(80, 40, 1)
	info := Town(g, 3)

	if info.Building.X1 < 0 || info.Building.X2 >= 80 || info.Building.Y1 < 0 || info.Building.Y2 >= 40 {
		t.Errorf("building %+v escapes the 80x40 map", info.Building)
	}
	if len(info.Rooms) == 0 {
		t.Error("town has no rooms")
	}
}

// floodWalkable flood-fills walkable tiles from (x, y).
func floodWalkable(lv *gamemap.Level, x, y int) []bool {
	reached := make([]bool, lv.Width*lv.Height)
	stack := [][2]int{{x, y}}
	reached[y*lv.Width+x] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := p[0]+d[0], p[1]+d[1]
			if !lv.InBounds(nx, ny) || lv.MoveCostAt(nx, ny) == 0 {
				continue
			}
			if i := ny*lv.Width + nx; !reached[i] {
				reached[i] = true
				stack = append(stack, [2]int{nx, ny})
			}
		}
	}
	return reached
}
