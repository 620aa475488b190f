package demo

import (
	"github.com/norendren/go-fov/fov"

	"tilelight/internal/gamemap"
	"tilelight/internal/pathfind"
	"tilelight/internal/tracker"
)

// shamblerSight is how far a shambler notices the observer. Creature
// sight uses the cheap asymmetric go-fov pass; the symmetric engine is
// reserved for the observer's own visibility.
const shamblerSight = 12

// fovGrid adapts the level to the go-fov GridMap interface.
type fovGrid struct {
	lv *gamemap.Level
}

func (g fovGrid) Index(x, y int) (int, int) { return x, y }
func (g fovGrid) InBounds(x, y int) bool    { return g.lv.InBounds(x, y) }
func (g fovGrid) IsOpaque(x, y int) bool    { return g.lv.TransparencyAt(x, y) == 0 }

// moveMonsters gives each shambler one step: chase the observer when it
// is in sight, shuffle randomly otherwise. All chasers share one inverse
// expansion toward the observer.
func (s *Session) moveMonsters() {
	if len(s.monsters) == 0 {
		return
	}
	obsPos := s.observerPos()
	eyes := fov.New()
	pf := pathfind.New(pathfind.Settings{MaxDist: 200})

	chasing := make(map[tracker.CreatureID]bool, len(s.monsters))
	for _, id := range s.monsters {
		c := s.trk.Find(id)
		if c == nil {
			continue
		}
		eyes.Compute(fovGrid{lv: s.lv}, c.Pos.X, c.Pos.Y, shamblerSight)
		if eyes.IsVisible(obsPos.X, obsPos.Y) {
			pf.RequestPath(c.Pos, obsPos)
			chasing[id] = true
		}
	}
	if len(chasing) > 0 {
		pf.Compute(s.lv, pathfind.GridDanger(s.grid))
	}

	for _, id := range s.monsters {
		c := s.trk.Find(id)
		if c == nil {
			continue
		}
		var step gamemap.Point
		if chasing[id] {
			if path := pf.GetPath(c.Pos, obsPos); len(path) > 0 {
				step = path[0]
			} else {
				continue
			}
		} else {
			step = gamemap.Point{
				X: c.Pos.X + s.rng.Intn(3) - 1,
				Y: c.Pos.Y + s.rng.Intn(3) - 1,
			}
		}
		if s.lv.MoveCostAt(step.X, step.Y) == 0 {
			continue
		}
		if _, occupied := s.trk.At(step); occupied {
			continue
		}
		s.trk.UpdatePos(id, step)
	}
}
