package board

// zCounter hands out stacking order values. It only ever moves up, so
// a note raised to the front keeps its place until another raise
// happens, even across notes loaded from the daemon.
type zCounter struct {
	max int
}

func (z *zCounter) Observe(value int) {
	if value > z.max {
		z.max = value
	}
}

func (z *zCounter) Next() int {
	z.max++
	return z.max
}

func (z *zCounter) Max() int {
	return z.max
}
