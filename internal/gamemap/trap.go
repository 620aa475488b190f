package gamemap

// TrapID indexes the trap flyweight table.
type TrapID uint8

// Trap is one trap flyweight entry. The core only needs enough of a trap
// to feed visibility checks and the pathfinder's danger term; triggering
// is the host's business.
type Trap struct {
	Name string
	// Visibility is the difficulty of spotting the trap; 0 is always seen.
	Visibility int
	// Benign traps carry no danger cost (bubble wrap, a tripwire alarm).
	Benign bool
	// AvoidCost is the suggested danger surcharge for pathing onto the
	// trap when it is not benign.
	AvoidCost int
}

// Builtin trap ids.
const (
	TrapNull TrapID = iota
	TrapBubbleWrap
	TrapBearTrap
	TrapPit
	trapCount
)

var traps = [...]Trap{
	TrapNull:       {Name: "none"},
	TrapBubbleWrap: {Name: "bubble wrap", Benign: true},
	TrapBearTrap:   {Name: "bear trap", Visibility: 2, AvoidCost: 500},
	TrapPit:        {Name: "pit", AvoidCost: 300},
}

// TrapByID resolves a trap id, falling back to TrapNull for unknown values.
func TrapByID(id TrapID) (Trap, bool) {
	if int(id) >= len(traps) {
		return traps[TrapNull], false
	}
	return traps[id], true
}
