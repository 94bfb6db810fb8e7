package repository

import "time"

// QueryObserver receives query timings, labelled "<table>.<operation>".
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveDBQuery(string, time.Duration) {}

func observerOrNop(o QueryObserver) QueryObserver {
	if o == nil {
		return nopObserver{}
	}
	return o
}

// timed records the elapsed time of the calling operation: defer timed(r.observer, "students.list")().
func timed(o QueryObserver, label string) func() {
	start := time.Now()
	return func() {
		o.ObserveDBQuery(label, time.Since(start))
	}
}
