package ast

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

type Hints struct{ Files, Scripts, Stmts, Exprs uint }

// Builder owns every arena of one compilation batch.
type Builder struct {
	Files   *Files
	Scripts *Scripts
	Stmts   *Stmts
	Exprs   *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 4
	}
	if hints.Scripts == 0 {
		hints.Scripts = 1 << 6
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 9
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Scripts: NewScripts(hints.Scripts),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushScript(file FileID, script ScriptID) {
	f := b.Files.Get(file)
	f.Scripts = append(f.Scripts, script)
}
