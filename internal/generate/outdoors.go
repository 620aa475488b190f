package generate

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"tilelight/internal/gamemap"
)

// terrain thresholds over the [0,1) noise value.
const (
	waterBelow = 0.18
	treeAbove  = 0.82
	noiseFreq  = 0.12
)

// Outdoors fills the whole level with noise-driven open terrain: ponds in
// the hollows, tree stands on the ridges, grass and dirt between.
func Outdoors(lv *gamemap.Level, seed int64) {
	noise := opensimplex.New(seed)
	rng := rand.New(rand.NewSource(seed))

	for y := 0; y < lv.Height; y++ {
		for x := 0; x < lv.Width; x++ {
			n := (noise.Eval2(float64(x)*noiseFreq, float64(y)*noiseFreq) + 1) * 0.5
			switch {
			case n < waterBelow:
				lv.SetTerrain(x, y, gamemap.TerWater)
			case n > treeAbove:
				lv.SetTerrain(x, y, gamemap.TerTree)
			case rng.Intn(5) == 0:
				lv.SetTerrain(x, y, gamemap.TerDirt)
			default:
				lv.SetTerrain(x, y, gamemap.TerGrass)
			}
		}
	}
}

// TownInfo locates the pieces of a generated town for demo setup.
type TownInfo struct {
	Building Rect
	Rooms    []Rect
}

// Town generates the demo world on level 0: an outdoor field with one
// BSP building in the middle.
func Town(g *gamemap.Grid, seed int64) TownInfo {
	lv := g.Level(0)
	Outdoors(lv, seed)

	bw := lv.Width / 2
	bh := lv.Height / 2
	if bw > 30 {
		bw = 30
	}
	if bh > 20 {
		bh = 20
	}
	building := Rect{
		X1: (lv.Width - bw) / 2,
		Y1: (lv.Height - bh) / 2,
	}
	building.X2 = building.X1 + bw - 1
	building.Y2 = building.Y1 + bh - 1

	rng := rand.New(rand.NewSource(seed))
	rooms := Building(lv, building, rng)
	return TownInfo{Building: building, Rooms: rooms}
}
