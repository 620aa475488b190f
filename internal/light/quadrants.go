package light

// Quadrant indexes one of the four diagonal sectors of a tile's
// accumulated light.
type Quadrant uint8

const (
	QuadNE Quadrant = iota
	QuadSE
	QuadSW
	QuadNW
)

// FourQuadrants splits a tile's luminance by the diagonal direction it
// arrived from, so facing-dependent illumination can tell a character lit
// from behind apart from one lit head-on.
type FourQuadrants [4]float32

// Sum returns the total light across all quadrants.
func (q FourQuadrants) Sum() float32 { return q[0] + q[1] + q[2] + q[3] }

// Max returns the brightest single quadrant.
func (q FourQuadrants) Max() float32 {
	m := q[0]
	for _, v := range q[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// add distributes a contribution arriving from direction (dx, dy), source
// to tile. A diagonal arrival lands in one quadrant; an axis-aligned one
// splits between the two quadrants flanking the axis; light born on the
// tile itself spreads evenly.
func (q *FourQuadrants) add(dx, dy int, v float32) {
	switch {
	case dx == 0 && dy == 0:
		for i := range q {
			q[i] += v / 4
		}
	case dx == 0:
		if dy < 0 {
			q[QuadNE] += v / 2
			q[QuadNW] += v / 2
		} else {
			q[QuadSE] += v / 2
			q[QuadSW] += v / 2
		}
	case dy == 0:
		if dx > 0 {
			q[QuadNE] += v / 2
			q[QuadSE] += v / 2
		} else {
			q[QuadNW] += v / 2
			q[QuadSW] += v / 2
		}
	case dx > 0 && dy < 0:
		q[QuadNE] += v
	case dx > 0:
		q[QuadSE] += v
	case dy > 0:
		q[QuadSW] += v
	default:
		q[QuadNW] += v
	}
}
