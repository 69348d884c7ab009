package sema

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
	"github.com/waleedyaseen/RuneScript-sub000/internal/trace"
)

// Environment is what the analyzer needs to know beyond the symbol table.
type Environment interface {
	// HookTrigger names the trigger whose scripts hooks may target.
	HookTrigger() (string, bool)
}

// Options configure both passes.
type Options struct {
	// AllowOverride lets a script replace an existing declaration with an
	// identical signature instead of reporting it as a duplicate.
	AllowOverride bool
	// TriggersChecked is set when the parser already reported unknown
	// triggers, so the declaration pass does not report them twice.
	TriggersChecked bool
}

// FileInput is one parsed file and the sink for its diagnostics.
type FileInput struct {
	File     ast.FileID
	Reporter diag.Reporter
}

// Batch is the unit both passes run over. Scripts of every file share Table,
// which is usually a sub-table of the predefined root.
type Batch struct {
	Builder *ast.Builder
	Files   []FileInput
	Tables  *symbols.Tables
	Table   symbols.TableID
	Env     Environment
	Options Options
	Tracer  trace.Tracer
}

func (b *Batch) tracer() trace.Tracer {
	if b.Tracer == nil {
		return trace.Nop
	}
	return b.Tracer
}

func (b *Batch) hookTrigger() (string, bool) {
	if b.Env != nil {
		if name, ok := b.Env.HookTrigger(); ok {
			return name, true
		}
	}
	if tr, ok := b.Tables.HookTrigger(b.Table); ok {
		return tr.Name, true
	}
	return "", false
}

// Analyze runs the declaration pass over the whole batch, then the checking
// pass.
func Analyze(b *Batch) *Result {
	res := Declare(b)
	Check(b, res)
	return res
}
