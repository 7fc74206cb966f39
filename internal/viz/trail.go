package viz

import "gonum.org/v1/gonum/spatial/r3"

const (
	DefaultTrailInterval = 2
	DefaultTrailRetain   = 1000
)

// Trail keeps every Interval-th position and drops the oldest beyond Retain.
type Trail struct {
	Interval int
	Retain   int
	points   []r3.Vec
	seen     int
}

func NewTrail(interval, retain int) *Trail {
	if interval < 1 {
		interval = 1
	}
	if retain < 1 {
		retain = 1
	}
	return &Trail{Interval: interval, Retain: retain, points: make([]r3.Vec, 0, retain)}
}

func (t *Trail) Add(p r3.Vec) {
	if t.seen%t.Interval == 0 {
		if len(t.points) == t.Retain {
			copy(t.points, t.points[1:])
			t.points = t.points[:len(t.points)-1]
		}
		t.points = append(t.points, p)
	}
	t.seen++
}

// Points returns the retained positions, oldest first.
func (t *Trail) Points() []r3.Vec {
	return append([]r3.Vec(nil), t.points...)
}

func (t *Trail) Len() int { return len(t.points) }

func (t *Trail) Reset() {
	t.points = t.points[:0]
	t.seen = 0
}
