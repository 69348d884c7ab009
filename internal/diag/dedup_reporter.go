package diag

import "github.com/waleedyaseen/RuneScript-sub000/internal/source"

type reportKey struct {
	code Code
	span source.Span
	msg  string
}

// DedupReporter forwards each (code, span, message) once; later repeats
// are counted and dropped.
type DedupReporter struct {
	next       Reporter
	seen       map[reportKey]struct{}
	suppressed int
}

// NewDedupReporter wraps next. Not safe for concurrent use: give every file
// its own.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[reportKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil || r.next == nil {
		return
	}
	key := reportKey{code: code, span: primary, msg: msg}
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes)
}

// Suppressed counts the reports dropped as repeats.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
