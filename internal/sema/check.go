package sema

import (
	"fmt"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
	"github.com/waleedyaseen/RuneScript-sub000/internal/trace"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// Check is the second pass. It walks every script depth-first, types every
// expression, resolves names and fills the side tables of res. It never stops
// early: failed expressions type as Undefined and later checks skip them.
func Check(b *Batch, res *Result) {
	pass := trace.Begin(b.tracer(), trace.ScopePass, "check", 0)
	defer pass.End("")

	for _, in := range b.Files {
		file := b.Builder.Files.Get(in.File)
		if file == nil {
			continue
		}
		fspan := trace.Begin(b.tracer(), trace.ScopeFile, fmt.Sprintf("file#%d", in.File), pass.ID())
		for _, sid := range file.Scripts {
			tc := typeChecker{
				batch:    b,
				builder:  b.Builder,
				tables:   b.Tables,
				table:    b.Table,
				reporter: in.Reporter,
				result:   res,
			}
			tc.checkScript(sid, fspan.ID())
		}
		fspan.End(fmt.Sprintf("%d scripts", len(file.Scripts)))
	}
}

type typeChecker struct {
	batch    *Batch
	builder  *ast.Builder
	tables   *symbols.Tables
	table    symbols.TableID
	reporter diag.Reporter
	result   *Result

	info      *ScriptInfo
	scopes    *symbols.Scopes
	scope     symbols.ScopeID
	loopDepth int
	calcDepth int
}

func reportf(r diag.Reporter, code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportError(r, code, sp, fmt.Sprintf(format, args...)).Emit()
}

func (tc *typeChecker) report(code diag.Code, sp source.Span, format string, args ...any) {
	reportf(tc.reporter, code, sp, format, args...)
}

// mismatch reports "cannot convert" unless got already carries an error.
func (tc *typeChecker) mismatch(sp source.Span, want, got types.Type) {
	if types.HasUndefined(got) || types.HasUndefined(want) {
		return
	}
	tc.report(diag.SemaTypeMismatch, sp, "Type mismatch: cannot convert from %s to %s", got, want)
}

// expect checks that got may be stored where want is expected.
func (tc *typeChecker) expect(sp source.Span, want, got types.Type) bool {
	if types.Assignable(want, got) {
		return true
	}
	tc.mismatch(sp, want, got)
	return false
}

func (tc *typeChecker) exprSpan(id ast.ExprID) source.Span {
	if e := tc.builder.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}

func (tc *typeChecker) checkScript(sid ast.ScriptID, parent uint64) {
	script := tc.builder.Scripts.Get(sid)
	if script == nil {
		return
	}
	info := tc.result.Scripts[sid]
	if info == nil {
		// скрипт не прошёл через Declare: проверяем по его собственному заголовку
		info = &ScriptInfo{
			Params:  tc.builder.Scripts.ParamTypes(sid),
			Returns: tc.builder.Scripts.ReturnType(sid),
		}
		tc.result.Scripts[sid] = info
	}
	tc.info = info
	info.Locals = info.Locals[:0]
	info.Arrays = info.Arrays[:0]

	span := trace.Begin(tc.batch.tracer(), trace.ScopeScript, "script:"+symbols.ScriptKey(script.Trigger.Text, script.Name.Text), parent)
	defer span.End("")

	tc.scopes = symbols.NewScopes()
	tc.scope = tc.scopes.New(symbols.NoScopeID)
	tc.declareParams(script)
	for _, st := range script.Body {
		tc.walkStmt(st)
	}
}

// declareParams seeds the root scope. Array parameters take array slots in
// declaration order.
func (tc *typeChecker) declareParams(script *ast.Script) {
	for _, pid := range script.Params {
		param := tc.builder.Scripts.Param(pid)
		if param == nil {
			continue
		}
		if param.Array {
			arr, err := tc.scopes.DeclareArray(tc.scope, symbols.LocalArray{
				Name: param.Name.Text, Type: param.Type, Param: true, Span: param.Span,
			})
			if err != nil {
				tc.report(diag.SemaDuplicateArray, param.Name.Span, "Duplicate array %s", param.Name.Text)
				continue
			}
			tc.info.Arrays = append(tc.info.Arrays, arr)
			continue
		}
		v, err := tc.scopes.DeclareVar(tc.scope, symbols.LocalVar{
			Name: param.Name.Text, Type: param.Type, Param: true, Span: param.Span,
		})
		if err != nil {
			tc.report(diag.SemaDuplicateLocal, param.Name.Span, "Duplicate local variable %s", param.Name.Text)
			continue
		}
		tc.info.Locals = append(tc.info.Locals, v)
	}
}

func (tc *typeChecker) pushScope() func() {
	prev := tc.scope
	tc.scope = tc.scopes.New(prev)
	return func() { tc.scope = prev }
}
