package plot

// splineSample fits a natural cubic spline through the knots (xs, ys) and
// samples it at n evenly spaced positions across [xs[0], xs[last]].
// xs must be strictly increasing. Fewer than three knots fall back to the
// input unchanged.
func splineSample(xs, ys []float64, n int) ([]float64, []float64) {
	m := len(xs)
	if m < 3 || n < 2 {
		return xs, ys
	}

	// Second derivatives via the tridiagonal system of the natural spline
	// (zero curvature at both ends).
	y2 := make([]float64, m)
	u := make([]float64, m)
	for i := 1; i < m-1; i++ {
		sig := (xs[i] - xs[i-1]) / (xs[i+1] - xs[i-1])
		p := sig*y2[i-1] + 2
		y2[i] = (sig - 1) / p
		u[i] = (ys[i+1]-ys[i])/(xs[i+1]-xs[i]) - (ys[i]-ys[i-1])/(xs[i]-xs[i-1])
		u[i] = (6*u[i]/(xs[i+1]-xs[i-1]) - sig*u[i-1]) / p
	}
	for i := m - 2; i >= 0; i-- {
		y2[i] = y2[i]*y2[i+1] + u[i]
	}

	sx := make([]float64, n)
	sy := make([]float64, n)
	lo, hi := xs[0], xs[m-1]
	step := (hi - lo) / float64(n-1)
	seg := 0
	for i := 0; i < n; i++ {
		x := lo + float64(i)*step
		if i == n-1 {
			x = hi
		}
		for seg < m-2 && x > xs[seg+1] {
			seg++
		}
		h := xs[seg+1] - xs[seg]
		a := (xs[seg+1] - x) / h
		b := (x - xs[seg]) / h
		sx[i] = x
		sy[i] = a*ys[seg] + b*ys[seg+1] +
			((a*a*a-a)*y2[seg]+(b*b*b-b)*y2[seg+1])*(h*h)/6
	}
	return sx, sy
}
