package codegen

import "strconv"

// Label names a block. ID is unique within one script; Name carries a
// per-prefix counter, such as if_true_2.
type Label struct {
	ID   int
	Name string
}

func (l Label) String() string { return l.Name }

// IsEntry reports whether l labels the entry block, the first label of
// every script.
func (l Label) IsEntry() bool { return l.ID == 0 }

type labelGenerator struct {
	next     int
	counters map[string]int
}

func newLabelGenerator() *labelGenerator {
	return &labelGenerator{counters: make(map[string]int)}
}

// Generate returns a fresh label named prefix_<n>, where n counts labels with
// the same prefix.
func (g *labelGenerator) Generate(prefix string) Label {
	n := g.counters[prefix]
	g.counters[prefix] = n + 1
	l := Label{ID: g.next, Name: prefix + "_" + strconv.Itoa(n)}
	g.next++
	return l
}
