// Package demo wires the engine together into an interactive terminal
// inspector: walk an observer through a generated town, drop fields,
// toggle a torch, advance time, and ask the pathfinder for routes.
package demo

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"tilelight/config"
	"tilelight/internal/calendar"
	"tilelight/internal/gamemap"
	"tilelight/internal/generate"
	"tilelight/internal/light"
	"tilelight/internal/pathfind"
	"tilelight/internal/telemetry"
	"tilelight/internal/tracker"
	"tilelight/internal/view"
)

// Session is one inspector world plus the cursor state of its player.
type Session struct {
	cfg  *config.Config
	grid *gamemap.Grid
	lv   *gamemap.Level
	lm   *light.Map
	obs  *light.Observer
	trk  *tracker.Tracker

	obsID    tracker.CreatureID
	monsters []tracker.CreatureID

	userPF    *pathfind.Pathfinder
	collector *telemetry.Collector
	explored  []bool
	path      []gamemap.Point
	hasGoal   bool
	goal      gamemap.Point

	rng   *rand.Rand
	now   calendar.Turn
	torch bool
}

// NewSession builds a fresh town world from the config.
func NewSession(cfg *config.Config, seed int64) *Session {
	g := gamemap.New(cfg.Map.Width, cfg.Map.Height, 1)
	g.SetSeed(seed)
	info := generate.Town(g, seed)
	lv := g.Level(0)

	s := &Session{
		cfg:       cfg,
		grid:      g,
		lv:        lv,
		lm:        light.NewMapWithParams(cfg.Map.Width, cfg.Map.Height, cfg.LightParams()),
		trk:       tracker.New(),
		userPF:    pathfind.New(cfg.PathSettings()),
		collector: telemetry.NewCollector(),
		explored:  make([]bool, cfg.Map.Width*cfg.Map.Height),
		rng:       rand.New(rand.NewSource(seed)),
		now:       calendar.At(0, 8), // start just after sunrise
	}

	// The observer wakes up in the first room of the building.
	ox, oy := cfg.Map.Width/2, cfg.Map.Height/2
	if len(info.Rooms) > 0 {
		ox, oy = info.Rooms[0].Center()
	}
	s.obs = light.NewObserverWithParams(ox, oy, cfg.LightParams())
	s.obsID = s.trk.Add("observer", gamemap.Point{X: ox, Y: oy})

	// A few shamblers outside the walls.
	for _, p := range []gamemap.Point{
		{X: 2, Y: 2},
		{X: cfg.Map.Width - 3, Y: cfg.Map.Height - 3},
		{X: cfg.Map.Width - 3, Y: 2},
	} {
		if lv.MoveCostAt(p.X, p.Y) == 0 {
			continue
		}
		if id := s.trk.Add("shambler", p); id != tracker.NilCreature {
			s.monsters = append(s.monsters, id)
		}
	}

	s.regenerate()
	return s
}

// Run drives the event loop until the player quits.
func (s *Session) Run(screen tcell.Screen) error {
	screen.EnableMouse()
	r := view.NewRenderer(screen)
	s.draw(r)

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 != 0 {
				wx, wy := r.ScreenToWorld(ev.Position())
				s.requestRoute(wx, wy)
			}
		case *tcell.EventKey:
			if s.handleKey(ev) {
				return s.finish()
			}
		case nil:
			return s.finish()
		default:
			continue
		}
		s.draw(r)
	}
}

// handleKey applies one key event; true means quit.
func (s *Session) handleKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
		return true
	case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
		s.moveObserver(0, -1)
	case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
		s.moveObserver(0, 1)
	case ev.Key() == tcell.KeyLeft || ev.Rune() == 'h':
		s.moveObserver(-1, 0)
	case ev.Key() == tcell.KeyRight || ev.Rune() == 'l':
		s.moveObserver(1, 0)
	case ev.Rune() == 'f':
		s.dropField(gamemap.FieldFire, 3)
	case ev.Rune() == 's':
		s.dropField(gamemap.FieldSmoke, 2)
	case ev.Rune() == 'g':
		s.toggleTorch()
		s.advance(1)
	case ev.Rune() == '.':
		s.advance(1)
	case ev.Rune() == '>':
		s.advance(calendar.TurnsPerHour)
	}
	return false
}

func (s *Session) observerPos() gamemap.Point {
	return s.trk.Find(s.obsID).Pos
}

func (s *Session) moveObserver(dx, dy int) {
	p := s.observerPos()
	n := gamemap.Point{X: p.X + dx, Y: p.Y + dy}
	if s.lv.MoveCostAt(n.X, n.Y) == 0 {
		return
	}
	if _, occupied := s.trk.At(n); occupied {
		return
	}
	s.trk.UpdatePos(s.obsID, n)
	s.obs.MoveTo(n.X, n.Y)
	s.advance(1)
}

func (s *Session) dropField(id gamemap.FieldTypeID, intensity int) {
	_ = s.grid.AddField(s.observerPos(), id, intensity, s.now)
	s.advance(1)
}

func (s *Session) toggleTorch() {
	s.torch = !s.torch
	c := s.trk.Find(s.obsID)
	if s.torch {
		c.Luminance = 20
		s.obs.HeldLuminance = 20
	} else {
		c.Luminance = 0
		s.obs.HeldLuminance = 0
	}
}

// requestRoute asks the pathfinder for a route from the observer to the
// clicked tile.
func (s *Session) requestRoute(x, y int) {
	if !s.lv.InBounds(x, y) {
		return
	}
	s.goal = gamemap.Point{X: x, Y: y}
	s.hasGoal = true
	s.recomputeRoute()
}

func (s *Session) recomputeRoute() {
	if !s.hasGoal {
		return
	}
	s.userPF.RequestPath(s.observerPos(), s.goal)
	s.userPF.Compute(s.lv, pathfind.GridDanger(s.grid))
	s.path = s.userPF.GetPath(s.observerPos(), s.goal)
}

// advance moves time forward and rebuilds the derived state.
func (s *Session) advance(turns calendar.Turn) {
	s.now += turns
	s.grid.ProcessFields(s.now)
	s.moveMonsters()
	s.regenerate()
	s.recomputeRoute()
}

// regenerate rebuilds the light map and the fog-of-war memory.
func (s *Session) regenerate() {
	start := time.Now()
	s.lm.Generate(s.lv, s.trk.LightSources(0), s.obs, s.now)
	s.collector.Record(s.now, s.lm.Stats(), time.Since(start))

	for y := 0; y < s.lv.Height; y++ {
		for x := 0; x < s.lv.Width; x++ {
			if s.lm.SeenAt(x, y) > 0 {
				s.explored[y*s.lv.Width+x] = true
			}
		}
	}
}

func (s *Session) draw(r *view.Renderer) {
	p := s.observerPos()
	r.CenterOn(p.X, p.Y)

	local := s.lm.AmbientLightAt(p.X, p.Y)
	lines := []string{
		view.StatusLine(s.now.Hour(), s.now.Minute(), local,
			s.lm.ApparentLightAt(p.X, p.Y, s.obs), s.obs.SightRange(local)),
		fmt.Sprintf("mean %.2f  sources %d  lit %d  dark %d  threshold %.2f",
			s.lm.Stats().Mean, s.lm.Stats().Sources, s.lm.Stats().LitTiles,
			s.lm.Stats().DarkTiles, s.obs.VisionThreshold()),
		"move hjkl/arrows  f fire  s smoke  g torch  . wait  > hour  click route",
		"q quit",
	}

	r.Draw(view.Frame{
		Level:    s.lv,
		Light:    s.lm,
		Observer: s.obs,
		Tracker:  s.trk,
		Explored: s.explored,
		Path:     s.path,
		HUDLines: lines,
	})
}

// finish flushes telemetry if configured.
func (s *Session) finish() error {
	if out := s.cfg.Telemetry.Output; out != "" {
		return s.collector.WriteFile(out)
	}
	return nil
}
