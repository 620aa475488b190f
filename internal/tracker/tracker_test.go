package tracker

import (
	"testing"

	"tilelight/internal/gamemap"
)

func at(x, y int) gamemap.Point { return gamemap.Point{X: x, Y: y} }

func TestAddFindAt(t *testing.T) {
	tr := New()
	id := tr.Add("zombie", at(3, 4))
	if id == NilCreature {
		t.Fatal("Add returned NilCreature")
	}

	c := tr.Find(id)
	if c == nil || c.Name != "zombie" || c.Pos != at(3, 4) {
		t.Fatalf("Find(%d) = %+v, want zombie at (3,4)", id, c)
	}
	if got, ok := tr.At(at(3, 4)); !ok || got != id {
		t.Errorf("At(3,4) = %d,%v, want %d,true", got, ok, id)
	}
}

func TestAddRefusesOccupiedTile(t *testing.T) {
	tr := New()
	tr.Add("first", at(1, 1))
	if id := tr.Add("second", at(1, 1)); id != NilCreature {
		t.Errorf("stacking Add = %d, want NilCreature", id)
	}
	if tr.Count() != 1 {
		t.Errorf("Count() = %d, want 1", tr.Count())
	}
}

func TestUpdatePosMaintainsLocationIndex(t *testing.T) {
	tr := New()
	id := tr.Add("zombie", at(1, 1))

	if !tr.UpdatePos(id, at(2, 2)) {
		t.Fatal("UpdatePos to a free tile failed")
	}
	if _, ok := tr.At(at(1, 1)); ok {
		t.Error("old position still occupied after move")
	}
	if got, ok := tr.At(at(2, 2)); !ok || got != id {
		t.Error("new position not indexed after move")
	}
}

func TestUpdatePosRefusesOccupiedTile(t *testing.T) {
	tr := New()
	a := tr.Add("a", at(1, 1))
	tr.Add("b", at(2, 2))

	if tr.UpdatePos(a, at(2, 2)) {
		t.Error("UpdatePos onto an occupied tile should fail")
	}
	if tr.Find(a).Pos != at(1, 1) {
		t.Error("failed move must leave the creature in place")
	}
}

func TestRemoveKeepsOtherIDsValid(t *testing.T) {
	tr := New()
	a := tr.Add("a", at(1, 1))
	b := tr.Add("b", at(2, 2))

	tr.Remove(a)
	if tr.Find(a) != nil {
		t.Error("removed creature still resolvable")
	}
	if c := tr.Find(b); c == nil || c.Name != "b" {
		t.Error("surviving creature id broke after Remove")
	}
	if _, ok := tr.At(at(1, 1)); ok {
		t.Error("removed creature still occupies its tile")
	}
}

func TestLightSourcesFiltersByLevelAndOutput(t *testing.T) {
	tr := New()
	torch := tr.Add("torchbearer", at(1, 1))
	tr.Find(torch).Luminance = 20
	tr.Add("lurker", at(2, 2)) // no light

	below := tr.Add("miner", gamemap.Point{X: 3, Y: 3, Z: 1})
	tr.Find(below).Luminance = 10

	srcs := tr.LightSources(0)
	if len(srcs) != 1 {
		t.Fatalf("LightSources(0) = %v, want exactly the torchbearer", srcs)
	}
	if srcs[0].X != 1 || srcs[0].Y != 1 || srcs[0].Luminance != 20 {
		t.Errorf("source = %+v, want (1,1) at 20", srcs[0])
	}
}
