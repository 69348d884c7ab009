// Package optimize rewrites generated block graphs in place.
package optimize

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
)

// Pass is one block-graph rewrite. Run returns the number of rewrites it made.
// Running a pass twice in a row makes no rewrites the second time.
type Pass interface {
	Name() string
	Run(s *codegen.BinaryScript) int
}

// Pipeline runs its passes once, in order.
type Pipeline struct {
	Passes []Pass
}

// Stat is the rewrite count of one pass within a pipeline run.
type Stat struct {
	Pass     string
	Rewrites int
}

// Default returns the standard pass order. DeadBlock runs before NaturalFlow
// so a branch left adjacent to its target by block removal is still dropped
// in the same run.
func Default() Pipeline {
	return Pipeline{Passes: []Pass{
		ConstantFolding{},
		DeadBranch{},
		DeadBlock{},
		NaturalFlow{},
	}}
}

// Run applies every pass to s and returns the total number of rewrites.
func (p Pipeline) Run(s *codegen.BinaryScript) int {
	total := 0
	for _, st := range p.RunStats(s) {
		total += st.Rewrites
	}
	return total
}

// RunStats is Run with a per-pass breakdown, used by the driver trace.
func (p Pipeline) RunStats(s *codegen.BinaryScript) []Stat {
	if s == nil || s.Blocks == nil {
		return nil
	}
	stats := make([]Stat, 0, len(p.Passes))
	for _, pass := range p.Passes {
		stats = append(stats, Stat{Pass: pass.Name(), Rewrites: pass.Run(s)})
	}
	return stats
}

// Names lists the pass names in run order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p.Passes))
	for i, pass := range p.Passes {
		names[i] = pass.Name()
	}
	return names
}
