// Package generate builds demo worlds for the inspector binaries and
// integration tests: a noise-driven outdoor field with a BSP-partitioned
// building dropped into it.
package generate

import (
	"math/rand"

	"tilelight/internal/gamemap"
)

// Rect is an axis-aligned rectangle, inclusive on both edges.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Contains reports whether (x, y) falls inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// minLeafSize bounds BSP leaves; rooms get one tile of wall padding.
const (
	minLeafSize = 6
	minRoomSize = 3
)

// bspLeaf is a node in the binary space partition tree.
type bspLeaf struct {
	x, y, w, h  int
	left, right *bspLeaf
	room        *Rect
}

// split divides the leaf in two, returning false when it is too small.
func (l *bspLeaf) split(rng *rand.Rand) bool {
	if l.left != nil || l.right != nil {
		return false
	}
	splitH := rng.Intn(2) == 0
	if l.w > l.h && float64(l.w)/float64(l.h) >= 1.25 {
		splitH = false
	} else if l.h > l.w && float64(l.h)/float64(l.w) >= 1.25 {
		splitH = true
	}

	maxSize := l.h
	if !splitH {
		maxSize = l.w
	}
	if maxSize <= minLeafSize*2 {
		return false
	}
	cut := minLeafSize + rng.Intn(maxSize-minLeafSize*2+1)

	if splitH {
		l.left = &bspLeaf{x: l.x, y: l.y, w: l.w, h: cut}
		l.right = &bspLeaf{x: l.x, y: l.y + cut, w: l.w, h: l.h - cut}
	} else {
		l.left = &bspLeaf{x: l.x, y: l.y, w: cut, h: l.h}
		l.right = &bspLeaf{x: l.x + cut, y: l.y, w: l.w - cut, h: l.h}
	}
	return true
}

// createRoom carves a padded room into every leaf of the subtree.
func (l *bspLeaf) createRoom(lv *gamemap.Level, rng *rand.Rand, rooms *[]Rect) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.createRoom(lv, rng, rooms)
		}
		if l.right != nil {
			l.right.createRoom(lv, rng, rooms)
		}
		return
	}

	maxW := l.w - 2
	maxH := l.h - 2
	if maxW < minRoomSize || maxH < minRoomSize {
		return
	}
	w := minRoomSize + rng.Intn(maxW-minRoomSize+1)
	h := minRoomSize + rng.Intn(maxH-minRoomSize+1)
	x := l.x + 1 + rng.Intn(l.w-w-1)
	y := l.y + 1 + rng.Intn(l.h-h-1)

	room := Rect{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}
	for ry := room.Y1; ry <= room.Y2; ry++ {
		for rx := room.X1; rx <= room.X2; rx++ {
			lv.SetTerrain(rx, ry, gamemap.TerFloor)
		}
	}
	l.room = &room
	*rooms = append(*rooms, room)
}

// anyRoom returns a room from the subtree, preferring the left side.
func (l *bspLeaf) anyRoom() *Rect {
	if l.room != nil {
		return l.room
	}
	if l.left != nil {
		if r := l.left.anyRoom(); r != nil {
			return r
		}
	}
	if l.right != nil {
		return l.right.anyRoom()
	}
	return nil
}

// connect joins sibling subtrees with an L-shaped corridor.
func (l *bspLeaf) connect(lv *gamemap.Level, rng *rand.Rand) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connect(lv, rng)
	l.right.connect(lv, rng)

	a := l.left.anyRoom()
	b := l.right.anyRoom()
	if a == nil || b == nil {
		return
	}
	x1, y1 := a.Center()
	x2, y2 := b.Center()
	if rng.Intn(2) == 0 {
		carveH(lv, x1, x2, y1)
		carveV(lv, y1, y2, x2)
	} else {
		carveV(lv, y1, y2, x1)
		carveH(lv, x1, x2, y2)
	}
}

func carveH(lv *gamemap.Level, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if lv.InBounds(x, y) {
			lv.SetTerrain(x, y, gamemap.TerFloor)
		}
	}
}

func carveV(lv *gamemap.Level, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if lv.InBounds(x, y) {
			lv.SetTerrain(x, y, gamemap.TerFloor)
		}
	}
}

// Building fills region with walls, carves BSP rooms and corridors, cuts
// an entrance door and a few windows into the perimeter, and lights one
// room with a utility light. Returns the rooms carved.
func Building(lv *gamemap.Level, region Rect, rng *rand.Rand) []Rect {
	for y := region.Y1; y <= region.Y2; y++ {
		for x := region.X1; x <= region.X2; x++ {
			lv.SetTerrain(x, y, gamemap.TerWall)
		}
	}

	root := &bspLeaf{
		x: region.X1 + 1, y: region.Y1 + 1,
		w: region.X2 - region.X1 - 1, h: region.Y2 - region.Y1 - 1,
	}
	leaves := []*bspLeaf{root}
	for i := 0; i < len(leaves); i++ {
		if leaves[i].split(rng) {
			leaves = append(leaves, leaves[i].left, leaves[i].right)
		}
	}

	var rooms []Rect
	root.createRoom(lv, rng, &rooms)
	root.connect(lv, rng)
	if len(rooms) == 0 {
		return rooms
	}

	// Entrance: a hallway from the southernmost room straight out through
	// the south wall, ending in a door.
	south := rooms[0]
	for _, r := range rooms[1:] {
		if r.Y2 > south.Y2 {
			south = r
		}
	}
	ex, _ := south.Center()
	for y := south.Y2 + 1; y < region.Y2; y++ {
		lv.SetTerrain(ex, y, gamemap.TerFloor)
	}
	lv.SetTerrain(ex, region.Y2, gamemap.TerDoorClosed)

	// Windows on the north and east walls wherever interior floor sits at
	// most one tile behind the perimeter; carve the alcove tile when
	// needed. Roughly one candidate in four gets glass.
	for x := region.X1 + 1; x < region.X2; x++ {
		if rng.Intn(4) != 0 {
			continue
		}
		switch {
		case lv.At(x, region.Y1+1).MoveCost > 0:
			lv.SetTerrain(x, region.Y1, gamemap.TerWindow)
		case lv.At(x, region.Y1+2).MoveCost > 0:
			lv.SetTerrain(x, region.Y1+1, gamemap.TerFloor)
			lv.SetTerrain(x, region.Y1, gamemap.TerWindow)
		}
	}
	for y := region.Y1 + 1; y < region.Y2; y++ {
		if rng.Intn(4) != 0 {
			continue
		}
		switch {
		case lv.At(region.X2-1, y).MoveCost > 0:
			lv.SetTerrain(region.X2, y, gamemap.TerWindow)
		case lv.At(region.X2-2, y).MoveCost > 0:
			lv.SetTerrain(region.X2-1, y, gamemap.TerFloor)
			lv.SetTerrain(region.X2, y, gamemap.TerWindow)
		}
	}

	// One room keeps its lights on.
	cx, cy := rooms[rng.Intn(len(rooms))].Center()
	lv.SetTerrain(cx, cy, gamemap.TerUtilityLight)

	return rooms
}
