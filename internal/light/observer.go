package light

import "math"

// Impairment is a bit in an observer's vision-impairment set.
type Impairment uint16

const (
	// Blind zeroes sight entirely.
	Blind Impairment = 1 << iota
	// Boomered eyes are caked over; range drops to 2.
	Boomered
	// Nearsighted without corrective lenses caps range at 4.
	Nearsighted
	// CorrectiveLenses cancels Nearsighted and the Ursine daylight cap.
	CorrectiveLenses
	// Underwater without goggles caps range at 1.
	Underwater
	// SwimGoggles cancels the underwater cap.
	SwimGoggles
	// Ursine eyes are built for the dark: no penalty at low light, but
	// range caps at 12 under bright light unless lenses correct it.
	Ursine
)

// Has reports whether the flag is set.
func (i Impairment) Has(f Impairment) bool { return i&f != 0 }

// Observer is the per-frame vision state of one creature: position,
// impairments, the light it carries, and the adaptation threshold carried
// over from the previous frame.
type Observer struct {
	X, Y int

	// BaseRange is the unimpaired species sight range; clamped to the
	// params' MaxViewDistance.
	BaseRange int
	Impair    Impairment
	// HeldLuminance is the output of any active held or worn light.
	HeldLuminance float32
	// LocalTransparency is the medium on the observer's own tile,
	// refreshed by Map.Generate.
	LocalTransparency float32

	params    Params
	threshold float32
}

// NewObserver creates an observer at (x, y) with stock tuning, clear air
// and a fully dark-adapted eye.
func NewObserver(x, y int) *Observer {
	return NewObserverWithParams(x, y, DefaultParams())
}

// NewObserverWithParams creates an observer with explicit tuning.
func NewObserverWithParams(x, y int, p Params) *Observer {
	return &Observer{
		X:                 x,
		Y:                 y,
		BaseRange:         p.MaxViewDistance,
		LocalTransparency: 1,
		params:            p,
		threshold:         p.AdaptThresholdMin,
	}
}

// MoveTo repositions the observer.
func (o *Observer) MoveTo(x, y int) { o.X, o.Y = x, y }

// VisionThreshold returns the faintest light the observer currently
// registers.
func (o *Observer) VisionThreshold() float32 { return o.threshold }

// Adapt updates the vision threshold from the frame's mean brightness, so
// eyes sharpen in darkness and dull in glare.
func (o *Observer) Adapt(meanBrightness float64) {
	th := float32(meanBrightness) * o.params.AdaptFraction
	if th < o.params.AdaptThresholdMin {
		th = o.params.AdaptThresholdMin
	}
	if th > o.params.AdaptThresholdMax {
		th = o.params.AdaptThresholdMax
	}
	o.threshold = th
}

// NaturalSightRange returns the observer's range before light is taken
// into account: the species base capped by impairments, with an active
// held light guaranteeing at least its own radius.
func (o *Observer) NaturalSightRange() int {
	if o.Impair.Has(Blind) {
		return 0
	}
	r := o.BaseRange
	if r > o.params.MaxViewDistance {
		r = o.params.MaxViewDistance
	}
	if o.Impair.Has(Underwater) && !o.Impair.Has(SwimGoggles) {
		r = minInt(r, 1)
	}
	if o.Impair.Has(Boomered) {
		r = minInt(r, 2)
	}
	if o.Impair.Has(Nearsighted) && !o.Impair.Has(CorrectiveLenses) {
		r = minInt(r, 4)
	}
	if o.HeldLuminance > 0 {
		held := int(math.Sqrt(float64(o.HeldLuminance/o.params.AmbientLow))) + 1
		if held > o.BaseRange {
			held = o.BaseRange
		}
		if held > r {
			r = held
		}
	}
	return r
}

// SightRange returns how far the observer sees given the light level on
// its own tile: the unimpaired range bounded by the Beer-Lambert cutoff of
// the local medium. Ursine eyes are only capped when the tile is well lit.
func (o *Observer) SightRange(localLight float32) int {
	unimpaired := o.NaturalSightRange()
	if unimpaired <= 0 {
		return 0
	}

	cutoff := unimpaired
	switch {
	case localLight < o.threshold:
		// Too dark to resolve anything past the adjacent tile.
		cutoff = 1
	case o.LocalTransparency < 1:
		d := math.Log(float64(localLight/o.threshold)) /
			-math.Log(float64(o.LocalTransparency))
		cutoff = int(d)
		if cutoff < 1 {
			cutoff = 1
		}
	}

	r := minInt(unimpaired, cutoff)
	if o.Impair.Has(Ursine) && !o.Impair.Has(CorrectiveLenses) &&
		o.params.classify(localLight) >= Lit {
		r = minInt(r, 12)
	}
	return r
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
