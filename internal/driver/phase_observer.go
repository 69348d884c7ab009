package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a compilation phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// Phase names reported through PhaseObserver.
const (
	PhaseLoad     = "load"
	PhaseParse    = "parse"
	PhaseDeclare  = "declare"
	PhaseCheck    = "check"
	PhaseCodegen  = "codegen"
	PhaseOptimize = "optimize"
)

// PhaseEvent describes a timing phase boundary. File is empty for phases that
// cover the whole batch.
type PhaseEvent struct {
	Name    string
	File    string
	Status  PhaseStatus
	Elapsed time.Duration
	Failed  bool // только для PhaseEnd: файл получил ошибки
}

// PhaseObserver receives phase events emitted during Compile.
type PhaseObserver func(PhaseEvent)

func (o PhaseObserver) start(name, file string) time.Time {
	if o != nil {
		o(PhaseEvent{Name: name, File: file, Status: PhaseStart})
	}
	return time.Now()
}

func (o PhaseObserver) end(name, file string, began time.Time, failed bool) {
	if o != nil {
		o(PhaseEvent{Name: name, File: file, Status: PhaseEnd, Elapsed: time.Since(began), Failed: failed})
	}
}
