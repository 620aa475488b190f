// Package pathfind implements the multi-source, single-target pathfinder:
// an inverse Dijkstra expansion from the goal whose parent grid lets any
// requested start recover a minimum-cost route.
package pathfind

import (
	"container/heap"
	"log/slog"
	"math"

	"tilelight/internal/gamemap"
)

// Settings holds the per-requester pathing policy.
type Settings struct {
	// MaxDist abandons the expansion once the popped cost exceeds it.
	MaxDist int
	// BashForce enables smashing through weak obstacles when positive.
	BashForce int
	// OpenDoors allows paying the door-opening surcharge.
	OpenDoors bool
	// OpenVehicleDoors additionally allows openable vehicle parts.
	OpenVehicleDoors bool
}

// DefaultSettings returns a door-shy walker with no bashing.
func DefaultSettings() Settings {
	return Settings{MaxDist: 400}
}

// DangerFunc supplies a non-negative additive penalty per tile, biasing
// paths away from hazards without declaring them impassable. nil means no
// hazards.
type DangerFunc func(p gamemap.Point) int

// GridDanger derives a DangerFunc from the grid's own hazards: fields,
// non-benign traps, and ambient radiation.
func GridDanger(g *gamemap.Grid) DangerFunc {
	return func(p gamemap.Point) int {
		d := g.FieldAt(p).Danger()
		if lv := g.Level(p.Z); lv != nil && lv.InBounds(p.X, p.Y) {
			tile := lv.At(p.X, p.Y)
			if tr, _ := gamemap.TrapByID(tile.Trap); !tr.Benign {
				d += tr.AvoidCost
			}
			d += int(tile.Radiation) * 2
		}
		return d
	}
}

// tileState tracks a cell during one expansion.
type tileState uint8

const (
	stateOpen tileState = iota
	stateClosed
	// stateAvoid marks the requested start tiles: the expansion passes
	// through them at a heavy surcharge so routes only touch a start at
	// the terminus.
	stateAvoid
)

// neighbor offsets, cardinals first:
//
//	7 4 8
//	3 . 1
//	6 2 5
var (
	circleX = [8]int{1, 0, -1, 0, 1, -1, -1, 1}
	circleY = [8]int{0, 1, 0, -1, 1, 1, -1, -1}
)

// unreachable is the parent-grid sentinel.
var unreachable = gamemap.Point{X: -1, Y: -1}

// pathData is the finished product for one target: a parent grid plus the
// relaxed scores, both indexed y*W+x.
type pathData struct {
	parent []gamemap.Point
	score  []int
}

// item is one open-heap entry. Stale entries are skipped on pop rather
// than updated in place.
type item struct {
	cost int
	x, y int
}

type itemHeap []item

func (h itemHeap) Len() int           { return len(h) }
func (h itemHeap) Less(i, j int) bool { return h[i].cost < h[j].cost }
func (h itemHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x any)        { *h = append(*h, x.(item)) }
func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Pathfinder owns the scratch arrays for one level's expansions. A single
// instance serves one request at a time; the produced parent grids are
// safe for concurrent reads afterwards.
type Pathfinder struct {
	settings Settings
	log      *slog.Logger

	width, height int
	state         []tileState
	score         []int
	open          itemHeap

	seekers map[gamemap.Point]map[gamemap.Point]struct{}
	paths   map[gamemap.Point]*pathData
}

// New creates a pathfinder with the given policy.
func New(settings Settings) *Pathfinder {
	return &Pathfinder{
		settings: settings,
		log:      slog.Default(),
		seekers:  make(map[gamemap.Point]map[gamemap.Point]struct{}),
		paths:    make(map[gamemap.Point]*pathData),
	}
}

// SetLogger replaces the pathfinder's diagnostic logger.
func (pf *Pathfinder) SetLogger(l *slog.Logger) { pf.log = l }

// key collapses a point onto the level plane; the pathfinder works one
// level at a time.
func key(p gamemap.Point) gamemap.Point { return gamemap.Point{X: p.X, Y: p.Y} }

// RequestPath registers interest in a route from one start to a target.
// Requests accumulate until the next Compute; several starts may share a
// target and are served by a single expansion.
func (pf *Pathfinder) RequestPath(from, to gamemap.Point) {
	k := key(to)
	if pf.seekers[k] == nil {
		pf.seekers[k] = make(map[gamemap.Point]struct{})
	}
	pf.seekers[k][key(from)] = struct{}{}
}

// Compute runs one expansion per requested target against the level,
// replacing the parent grid of each requested target; grids for other
// targets are kept. The requests themselves are consumed.
func (pf *Pathfinder) Compute(lv *gamemap.Level, danger DangerFunc) {
	pf.width, pf.height = lv.Width, lv.Height
	n := pf.width * pf.height
	if cap(pf.state) < n {
		pf.state = make([]tileState, n)
		pf.score = make([]int, n)
	}
	pf.state = pf.state[:n]
	pf.score = pf.score[:n]

	for to, froms := range pf.seekers {
		pf.paths[to] = pf.generate(lv, froms, to, danger)
		delete(pf.seekers, to)
	}
}

func (pf *Pathfinder) idx(x, y int) int { return y*pf.width + x }

// rlDist is the square (Chebyshev) distance used for reachability
// estimates.
func rlDist(a, b gamemap.Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// generate runs the inverse Dijkstra from to, stopping once every
// reachable start has closed.
func (pf *Pathfinder) generate(lv *gamemap.Level, froms map[gamemap.Point]struct{}, to gamemap.Point, danger DangerFunc) *pathData {
	n := pf.width * pf.height
	pd := &pathData{
		parent: make([]gamemap.Point, n),
		score:  make([]int, n),
	}
	for i := range pd.parent {
		pd.parent[i] = unreachable
		pd.score[i] = math.MaxInt32
		pf.state[i] = stateOpen
		pf.score[i] = math.MaxInt32
	}

	if !lv.InBounds(to.X, to.Y) {
		pf.log.Error("pathfinding target out of bounds", "x", to.X, "y", to.Y)
		return pd
	}

	// Drop starts that are out of bounds (an error) or hopelessly far
	// (silently, matching the contract), and size the bulk-check horizon.
	unreached := make(map[gamemap.Point]struct{}, len(froms))
	minMaxDist := -1
	for p := range froms {
		switch d := rlDist(p, to); {
		case !lv.InBounds(p.X, p.Y):
			pf.log.Error("pathfinding start out of bounds", "x", p.X, "y", p.Y)
		case d > pf.settings.MaxDist:
			// Unreachable within budget; not worth an error.
		default:
			unreached[p] = struct{}{}
			if d > minMaxDist {
				minMaxDist = d
			}
			pf.state[pf.idx(p.X, p.Y)] = stateAvoid
		}
	}
	if len(unreached) == 0 {
		return pd
	}

	pf.open = pf.open[:0]
	heap.Push(&pf.open, item{cost: 0, x: to.X, y: to.Y})
	pf.score[pf.idx(to.X, to.Y)] = 0
	pd.parent[pf.idx(to.X, to.Y)] = key(to)

	// The all-starts-reached test is only worth running once the popped
	// cost passes the furthest start, and then only every |unreached|·3
	// pops: each pop closes at most one tile.
	nextCheck := 0

	for pf.open.Len() > 0 {
		cur := heap.Pop(&pf.open).(item)
		if cur.cost > pf.settings.MaxDist {
			return pd
		}
		ci := pf.idx(cur.x, cur.y)
		if pf.state[ci] == stateClosed {
			continue
		}
		pf.state[ci] = stateClosed
		pd.score[ci] = pf.score[ci]

		if cur.cost >= minMaxDist {
			if nextCheck > 0 {
				nextCheck--
			} else {
				for p := range unreached {
					if pf.state[pf.idx(p.X, p.Y)] == stateClosed {
						delete(unreached, p)
					}
				}
				if len(unreached) == 0 {
					return pd
				}
				nextCheck = len(unreached) * 3
			}
		}

		for i := 0; i < 8; i++ {
			nx := cur.x + circleX[i]
			ny := cur.y + circleY[i]
			if !lv.InBounds(nx, ny) {
				continue
			}
			ni := pf.idx(nx, ny)
			if pf.state[ni] == stateClosed {
				continue
			}

			tile := lv.At(nx, ny)
			ter, _ := gamemap.TerrainByID(tile.Terrain)
			cost := int(tile.MoveCost)

			rating := -1
			if pf.settings.BashForce > 0 && cost == 0 {
				rating = ter.BashRating(pf.settings.BashForce)
			}
			if cost == 0 && rating <= 0 && !ter.Has(gamemap.FlagOpenable) && tile.Vehicle == nil {
				// Permanently solid: close it so later expansions skip
				// the cost math.
				pf.state[ni] = stateClosed
				continue
			}

			newg := pf.score[ci] + cost
			if circleX[i] != 0 && circleY[i] != 0 {
				newg++
			}
			if pf.state[ni] == stateAvoid {
				newg += 100
			}

			if cost == 0 {
				switch {
				case pf.settings.OpenDoors && ter.Has(gamemap.FlagOpenable) &&
					(!ter.Has(gamemap.FlagOpenCloseInside) || !lv.IsOutside(cur.x, cur.y)):
					// One turn to open, then the move.
					newg += 4
				case tile.Vehicle != nil:
					part := tile.Vehicle
					switch {
					case pf.settings.OpenVehicleDoors && part.Openable &&
						(!part.OpenCloseInside || lv.At(cur.x, cur.y).Vehicle != nil):
						newg += 10
					case pf.settings.BashForce > 0:
						newg += part.HP/pf.settings.BashForce + 8 + 4
					default:
						newg = 10000
					}
				case rating > 1:
					// Expected bash turns, the move, and a penalty so we
					// don't trash everything just because we can.
					newg += 20/rating + 2 + 4
				case rating == 1:
					// Desperate measures.
					newg += 1000
				default:
					newg = 10000
				}
			}

			if danger != nil {
				newg += danger(gamemap.Point{X: nx, Y: ny, Z: lv.Z})
			}

			if newg < pf.score[ni] {
				pf.score[ni] = newg
				pd.parent[ni] = gamemap.Point{X: cur.x, Y: cur.y}
				heap.Push(&pf.open, item{cost: newg, x: nx, y: ny})
			}
		}
	}
	return pd
}

// GetPath walks the parent grid from a start back to its target. The
// returned route excludes the start tile and includes the target; an empty
// route means no path (or a diagnosed engine bug).
func (pf *Pathfinder) GetPath(from, to gamemap.Point) []gamemap.Point {
	if from.X == to.X && from.Y == to.Y {
		return nil
	}
	pd, ok := pf.paths[key(to)]
	if !ok {
		pf.log.Error("path to target was never requested", "x", to.X, "y", to.Y)
		return nil
	}
	if from.X < 0 || from.X >= pf.width || from.Y < 0 || from.Y >= pf.height {
		pf.log.Error("path start out of bounds", "x", from.X, "y", from.Y)
		return nil
	}

	cur := pd.parent[pf.idx(from.X, from.Y)]
	if cur == unreachable {
		return nil
	}

	path := make([]gamemap.Point, 0, rlDist(from, to)*3)
	guard := pf.width * pf.height
	for cur.X != to.X || cur.Y != to.Y {
		if guard == 0 {
			pf.log.Error("pathfinder produced a cyclic path", "x", to.X, "y", to.Y)
			return nil
		}
		guard--
		if cur == unreachable {
			pf.log.Error("pathfinder produced a broken parent chain", "x", to.X, "y", to.Y)
			return nil
		}
		path = append(path, cur)
		cur = pd.parent[pf.idx(cur.X, cur.Y)]
	}
	return append(path, key(to))
}

// ScoreAt returns the relaxed cost-to-target recorded for a tile by the
// last Compute, or -1 when the tile never closed. Costs along any parent
// chain are monotonically non-increasing toward the target.
func (pf *Pathfinder) ScoreAt(p, to gamemap.Point) int {
	pd, ok := pf.paths[key(to)]
	if !ok || p.X < 0 || p.X >= pf.width || p.Y < 0 || p.Y >= pf.height {
		return -1
	}
	s := pd.score[pf.idx(p.X, p.Y)]
	if s == math.MaxInt32 {
		return -1
	}
	return s
}
