package sim

import "github.com/ryanmcf10/three-body-simulation/internal/dynamo"

// Recorder keeps every Interval-th snapshot in memory.
type Recorder struct {
	Interval int
	result   Result
	seen     int
}

func NewRecorder(interval int) *Recorder {
	if interval < 1 {
		interval = 1
	}
	return &Recorder{Interval: interval}
}

func (r *Recorder) OnStep(s Snapshot) {
	if r.seen == 0 {
		r.result.Masses = s.Masses()
		for i, b := range s.Bodies {
			r.result.Colors[i] = b.Color
		}
	}
	if r.seen%r.Interval == 0 {
		r.result.States = append(r.result.States, s.State())
		r.result.Times = append(r.result.Times, s.Time)
	}
	r.seen++
}

// Result returns the recording together with the run's metrics and
// terminal error.
func (r *Recorder) Result(s *Simulation) *Result {
	res := r.result
	res.States = append([]dynamo.State(nil), r.result.States...)
	res.Times = append([]float64(nil), r.result.Times...)
	res.Metrics = s.Metrics()
	res.Err = s.Err()
	return &res
}
