package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the accumulated duration of one named compiler phase.
// Per-file phases such as "parse" run many times and add up into one entry.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Runs  int
	Note  string
}

// Timer tracks the execution time of compiler phases in first-seen order.
type Timer struct {
	phases []Phase
	index  map[string]int
	first  time.Time
	last   time.Time
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), index: make(map[string]int, 8)}
}

// Begin starts a run of the phase name and returns its index.
func (t *Timer) Begin(name string) int {
	now := time.Now()
	if t.first.IsZero() {
		t.first = now
	}
	idx, ok := t.index[name]
	if !ok {
		t.phases = append(t.phases, Phase{Name: name})
		idx = len(t.phases) - 1
		t.index[name] = idx
	}
	t.phases[idx].Start = now
	return idx
}

// End finishes the current run of the phase at idx. A non-empty note
// replaces the previous one.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	now := time.Now()
	p := &t.phases[idx]
	p.Dur += now.Sub(p.Start)
	p.Runs++
	if note != "" {
		p.Note = note
	}
	if now.After(t.last) {
		t.last = now
	}
}

// Summary renders the phases as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-10s %8.2f ms  x%d", p.Name, p.DurationMS, p.Runs)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-10s %8.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport is the serializable form of one phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Runs       int     `json:"runs"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates a timer. TotalMS is wall time from the first Begin to the
// last End, so nested phases are not counted twice.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the timer.
func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	for i, phase := range t.phases {
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Runs:       phase.Runs,
			Note:       phase.Note,
		}
	}
	if !t.last.IsZero() {
		report.TotalMS = durationToMillis(t.last.Sub(t.first))
	}
	return report
}

// Phase returns the report entry for name.
func (r Report) Phase(name string) (PhaseReport, bool) {
	for _, p := range r.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return PhaseReport{}, false
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
