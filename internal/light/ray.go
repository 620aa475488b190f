package light

// walkRay visits every cell of the Bresenham line from (x0, y0) to
// (x1, y1), excluding the start cell. The two dominant-axis branches of
// the classic walker are factored into one body by swapping the major and
// minor step vectors. visit returns false to stop the walk.
func walkRay(x0, y0, x1, y1 int, visit func(x, y int) bool) {
	ax := abs(x1-x0) * 2
	ay := abs(y1-y0) * 2
	sx := sign(x1 - x0)
	sy := sign(y1 - y0)

	majX, majY, minX, minY := sx, 0, 0, sy
	aMaj, aMin := ax, ay
	if ay > ax {
		majX, majY, minX, minY = 0, sy, sx, 0
		aMaj, aMin = ay, ax
	}

	x, y := x0, y0
	t := aMin - aMaj/2
	for x != x1 || y != y1 {
		if t >= 0 {
			x += minX
			y += minY
			t -= aMaj
		}
		x += majX
		y += majY
		t += aMin
		if !visit(x, y) {
			return
		}
	}
}

// TransparencyProduct multiplies the transparency coefficients of the
// cells strictly between (x0, y0) and (x1, y1). A clear corridor yields 1;
// any opaque cell collapses the product to 0.
func (m *Map) TransparencyProduct(x0, y0, x1, y1 int) float32 {
	prod := float32(1)
	walkRay(x0, y0, x1, y1, func(x, y int) bool {
		if x == x1 && y == y1 {
			return false
		}
		if !m.InBounds(x, y) {
			prod = 0
			return false
		}
		prod *= m.transparency[m.index(x, y)]
		return prod > 0
	})
	return prod
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
