package light

import (
	"testing"

	"github.com/norendren/go-fov/fov"

	"tilelight/internal/gamemap"
)

// fovGrid adapts a gamemap level to the go-fov GridMap interface. The demo
// uses go-fov for cheap asymmetric creature sight; this test pins the
// adapter contract it relies on.
type fovGrid struct {
	lv *gamemap.Level
}

func (g fovGrid) Index(x, y int) (int, int) { return x, y }
func (g fovGrid) InBounds(x, y int) bool    { return g.lv.InBounds(x, y) }
func (g fovGrid) IsOpaque(x, y int) bool    { return g.lv.TransparencyAt(x, y) == 0 }

func TestFOVGridAdapter(t *testing.T) {
	g := gamemap.New(9, 9, 1)
	lv := g.Level(0)
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			lv.SetTerrain(x, y, gamemap.TerFloor)
		}
	}
	lv.SetTerrain(4, 4, gamemap.TerWall)

	grid := fovGrid{lv: lv}
	if grid.IsOpaque(3, 3) {
		t.Error("floor must not be opaque through the adapter")
	}
	if !grid.IsOpaque(4, 4) {
		t.Error("wall must be opaque through the adapter")
	}
	if !grid.IsOpaque(9, 4) {
		t.Error("out-of-window must read opaque, mirroring the grid contract")
	}

	view := fov.New()
	view.Compute(grid, 4, 6, 6)
	if !view.IsVisible(4, 6) {
		t.Error("the viewer's own tile must always be visible")
	}
}
