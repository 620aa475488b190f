package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"tilelight/internal/gamemap"
	"tilelight/internal/light"
	"tilelight/internal/tracker"
)

// hudRows is the number of screen rows reserved for the HUD.
const hudRows = 4

// Renderer draws one frame of the inspector.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, w, h-hudRows),
	}
}

// CenterOn recenters the viewport on world position (x, y).
func (r *Renderer) CenterOn(x, y int) {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = h - hudRows
	r.camera.Center(x, y)
}

// ScreenToWorld exposes the camera mapping for mouse picking.
func (r *Renderer) ScreenToWorld(sx, sy int) (int, int) {
	return r.camera.ScreenToWorld(sx, sy)
}

// Frame is everything one draw needs.
type Frame struct {
	Level    *gamemap.Level
	Light    *light.Map
	Observer *light.Observer
	Tracker  *tracker.Tracker
	Explored []bool // fog-of-war memory, indexed y*W+x

	Path     []gamemap.Point
	HUDLines []string
}

// Draw renders the frame and flushes the screen.
func (r *Renderer) Draw(f Frame) {
	r.screen.Clear()
	r.drawTiles(f)
	r.drawPath(f)
	r.drawCreatures(f)
	r.drawHUD(f.HUDLines)
	r.screen.Show()
}

func (r *Renderer) drawTiles(f Frame) {
	lv := f.Level
	for sy := 0; sy < r.camera.ViewHeight; sy++ {
		for sx := 0; sx < r.camera.ViewWidth; sx++ {
			wx, wy := r.camera.ScreenToWorld(sx, sy)
			if !lv.InBounds(wx, wy) {
				continue
			}

			tile := lv.At(wx, wy)
			glyph, color := tileGlyph(tile)
			lvl := f.Light.ApparentLightAt(wx, wy, f.Observer)

			if lvl == light.Dark {
				// Unseen: show remembered geometry only.
				if f.Explored != nil && f.Explored[wy*lv.Width+wx] {
					r.screen.SetContent(sx, sy, glyph, nil, memoryStyle)
				}
				continue
			}
			r.screen.SetContent(sx, sy, glyph, nil, styleFor(color, lvl))
		}
	}
}

// tileGlyph picks the glyph and color for a tile: the strongest field
// wins, then furniture, then terrain.
func tileGlyph(tile *gamemap.Tile) (rune, tcell.Color) {
	if f, ok := strongestField(tile); ok {
		if fg, ok := fieldGlyphs[f]; ok {
			return fg.glyph, fg.color
		}
	}
	if tile.Furniture != gamemap.FurnNull {
		furn, _ := gamemap.FurnitureByID(tile.Furniture)
		return furn.Glyph, tcell.ColorSilver
	}
	ter, _ := gamemap.TerrainByID(tile.Terrain)
	color, ok := terrainColors[tile.Terrain]
	if !ok {
		color = tcell.ColorWhite
	}
	return ter.Glyph, color
}

// strongestField returns the brightest field on the tile, falling back to
// list order for dark fields.
func strongestField(tile *gamemap.Tile) (gamemap.FieldTypeID, bool) {
	best := gamemap.FieldNull
	var bestLum float32 = -1
	for _, e := range tile.Fields() {
		ft, _ := gamemap.FieldTypeByID(e.Type)
		if lum := ft.Luminance[e.Intensity-1]; lum > bestLum {
			best = e.Type
			bestLum = lum
		}
	}
	return best, best != gamemap.FieldNull
}

func (r *Renderer) drawPath(f Frame) {
	st := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorAqua)
	for _, p := range f.Path {
		if sx, sy, ok := r.camera.WorldToScreen(p.X, p.Y); ok {
			r.screen.SetContent(sx, sy, '·', nil, st)
		}
	}
}

func (r *Renderer) drawCreatures(f Frame) {
	f.Tracker.Each(func(c *tracker.Creature) {
		if c.Pos.Z != f.Level.Z {
			return
		}
		if f.Light.SeenAt(c.Pos.X, c.Pos.Y) == 0 {
			return
		}
		sx, sy, ok := r.camera.WorldToScreen(c.Pos.X, c.Pos.Y)
		if !ok {
			return
		}
		glyph := 'z'
		color := tcell.ColorRed
		if c.Luminance > 0 {
			color = tcell.ColorYellow
		}
		if c.Name == "observer" {
			glyph = '@'
			color = tcell.ColorWhite
		}
		r.screen.SetContent(sx, sy, glyph, nil,
			tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(color).Bold(true))
	})
}

func (r *Renderer) drawHUD(lines []string) {
	w, h := r.screen.Size()
	st := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorSilver)
	for i := 0; i < hudRows && i < len(lines); i++ {
		text := runewidth.Truncate(lines[i], w, "…")
		col := 0
		for _, ru := range text {
			r.screen.SetContent(col, h-hudRows+i, ru, nil, st)
			col += runewidth.RuneWidth(ru)
		}
	}
}

// StatusLine formats the standard first HUD line.
func StatusLine(turnHour, turnMinute int, ambient float32, lvl light.LitLevel, sightRange int) string {
	return fmt.Sprintf("%02d:%02d  ambient %.1f  light %s  sight %d",
		turnHour, turnMinute, ambient, lvl, sightRange)
}
