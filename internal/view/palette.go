package view

import (
	"github.com/gdamore/tcell/v2"

	"tilelight/internal/gamemap"
	"tilelight/internal/light"
)

// terrainColors gives each terrain its daylight color.
var terrainColors = map[gamemap.TerrainID]tcell.Color{
	gamemap.TerDirt:         tcell.ColorSaddleBrown,
	gamemap.TerGrass:        tcell.ColorGreen,
	gamemap.TerTree:         tcell.ColorDarkGreen,
	gamemap.TerWater:        tcell.ColorBlue,
	gamemap.TerFloor:        tcell.ColorLightGray,
	gamemap.TerWall:         tcell.ColorGray,
	gamemap.TerWindow:       tcell.ColorLightCyan,
	gamemap.TerDoorClosed:   tcell.ColorPeru,
	gamemap.TerDoorOpen:     tcell.ColorPeru,
	gamemap.TerDoorInside:   tcell.ColorPeru,
	gamemap.TerUtilityLight: tcell.ColorYellow,
}

// fieldGlyphs overrides the terrain glyph when a field burns on the tile.
var fieldGlyphs = map[gamemap.FieldTypeID]struct {
	glyph rune
	color tcell.Color
}{
	gamemap.FieldFire:        {'*', tcell.ColorRed},
	gamemap.FieldSmoke:       {'%', tcell.ColorDarkGray},
	gamemap.FieldElectricity: {'!', tcell.ColorLightCyan},
	gamemap.FieldFireVent:    {'^', tcell.ColorOrange},
	gamemap.FieldFlameBurst:  {'*', tcell.ColorOrange},
	gamemap.FieldAcid:        {'~', tcell.ColorGreenYellow},
	gamemap.FieldSmokeVent:   {'^', tcell.ColorDarkGray},
}

// styleFor shades a tile's color by its apparent light level.
func styleFor(color tcell.Color, lvl light.LitLevel) tcell.Style {
	st := tcell.StyleDefault.Background(tcell.ColorBlack)
	switch lvl {
	case light.Bright:
		return st.Foreground(color).Bold(true)
	case light.Lit:
		return st.Foreground(color)
	case light.Low:
		return st.Foreground(tcell.ColorDarkGray)
	default:
		return st.Foreground(tcell.ColorBlack)
	}
}

// memoryStyle is the fog-of-war shade for explored-but-unseen tiles.
var memoryStyle = tcell.StyleDefault.
	Background(tcell.ColorBlack).
	Foreground(tcell.ColorDimGray).
	Dim(true)
