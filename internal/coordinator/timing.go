package coordinator

import (
	"log"
)

// Timing accumulates the two wall-clock totals spec.md §3 defines:
// computationTime (coordinator's own shading plus every worker's
// self-reported compute time) and communicationTime (the coordinator's
// own blocking time inside probe/recv/send during collection). Scoped to
// one run instead of a process-wide global, per spec.md §9's note that
// "global singletons... are scoped to a per-run coordinator object."
type Timing struct {
	ComputationTime   float64
	CommunicationTime float64
}

// AddComputation folds in a wall-clock duration already measured by the
// caller (either the coordinator's own shading, or a worker's
// self-reported trailing float).
func (t *Timing) AddComputation(seconds float64) {
	t.ComputationTime += seconds
}

// AddCommunication folds in a blocking-wait duration.
func (t *Timing) AddCommunication(seconds float64) {
	t.CommunicationTime += seconds
}

// Time brackets fn with two now() calls and adds the elapsed duration to
// CommunicationTime, returning fn's result. Every Transport call the
// coordinator makes during collection is wrapped this way (spec.md §4.4:
// "bracketed by now() calls that contribute to communicationTime").
func (t *Timing) Time(now func() float64, fn func() error) error {
	start := now()
	err := fn()
	t.CommunicationTime += now() - start
	return err
}

// Report emits the exact three-line summary spec.md §4.7 requires, in
// order, via the stdlib log package with flags stripped so timestamps
// can't corrupt the mandated text — matching the teacher's own bare
// log.Printf/std::cout usage rather than a structured-logging library
// (see DESIGN.md's "Ambient stack" entry).
func (t *Timing) Report(logger *log.Logger) {
	ratio := t.CommunicationTime / t.ComputationTime
	logger.Printf("Total Computation Time: %v seconds", t.ComputationTime)
	logger.Printf("Total Communication Time: %v seconds", t.CommunicationTime)
	logger.Printf("C-to-C Ratio: %v", ratio)
}

// NewReportLogger returns a logger with no prefix and no flags, so
// Report's output is exactly the three lines spec.md §4.7 names.
func NewReportLogger(w interface{ Write([]byte) (int, error) }) *log.Logger {
	return log.New(w, "", 0)
}
