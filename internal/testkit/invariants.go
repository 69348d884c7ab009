package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is non-empty and within file content bounds
// 2) every script span is non-empty and fully contained in file.Span
// 3) every statement and expression span lies inside its parent's span
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	for _, id := range f.Scripts {
		script := b.Scripts.Get(id)
		if script == nil {
			return fmt.Errorf("nil script for id=%d", id)
		}
		if err := within("script", script.Span, f.Span, sf.ID); err != nil {
			return err
		}
		for _, st := range script.Body {
			if err := checkStmt(b, st, script.Span, sf.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func within(what string, sp, parent source.Span, file source.FileID) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("empty %s span: %v", what, sp)
	}
	if sp.File != file {
		return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, file)
	}
	if !parent.Contains(sp) {
		return fmt.Errorf("%s span %v is outside parent span %v", what, sp, parent)
	}
	return nil
}

func checkStmt(b *ast.Builder, id ast.StmtID, parent source.Span, file source.FileID) error {
	st := b.Stmts.Get(id)
	if st == nil {
		return fmt.Errorf("nil stmt for id=%d", id)
	}
	if err := within("stmt "+st.Kind.String(), st.Span, parent, file); err != nil {
		return err
	}
	stmts, exprs := b.StmtChildren(id)
	for _, child := range stmts {
		if err := checkStmt(b, child, st.Span, file); err != nil {
			return err
		}
	}
	for _, child := range exprs {
		if err := checkExpr(b, child, st.Span, file); err != nil {
			return err
		}
	}
	return nil
}

func checkExpr(b *ast.Builder, id ast.ExprID, parent source.Span, file source.FileID) error {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return fmt.Errorf("nil expr for id=%d", id)
	}
	if err := within("expr "+expr.Kind.String(), expr.Span, parent, file); err != nil {
		return err
	}
	for _, child := range b.ExprChildren(id) {
		if err := checkExpr(b, child, expr.Span, file); err != nil {
			return err
		}
	}
	return nil
}
