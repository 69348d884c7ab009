package sema

import (
	"errors"

	"golang.org/x/text/cases"

	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
	"github.com/waleedyaseen/RuneScript-sub000/internal/trace"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

const idAnnotation = "id"

// Declare is the first pass: it registers the signature of every script in
// file order, then script order, and validates it against its trigger.
// Errors are reported to the file's reporter; the first declaration of a key
// always wins.
func Declare(b *Batch) *Result {
	res := newResult()
	pass := trace.Begin(b.tracer(), trace.ScopePass, "declare", 0)
	defer pass.End("")

	d := declarer{batch: b, res: res, fold: cases.Fold()}
	for _, in := range b.Files {
		file := b.Builder.Files.Get(in.File)
		if file == nil {
			continue
		}
		d.reporter = in.Reporter
		for _, sid := range file.Scripts {
			d.declare(sid)
		}
	}
	return res
}

type declarer struct {
	batch    *Batch
	res      *Result
	reporter diag.Reporter
	fold     cases.Caser
}

func (d *declarer) report(code diag.Code, sp source.Span, format string, args ...any) {
	reportf(d.reporter, code, sp, format, args...)
}

func (d *declarer) declare(sid ast.ScriptID) {
	scripts := d.batch.Builder.Scripts
	script := scripts.Get(sid)
	if script == nil {
		return
	}
	info := &ScriptInfo{
		Params:  scripts.ParamTypes(sid),
		Returns: scripts.ReturnType(sid),
	}
	d.res.Scripts[sid] = info

	annotations := d.annotations(script)
	sym := &symbols.Script{
		Trigger:     script.Trigger.Text,
		Name:        script.Name.Text,
		Params:      info.Params,
		Returns:     info.Returns,
		ID:          -1,
		Annotations: annotations,
	}
	if id, ok := annotations[idAnnotation]; ok {
		sym.ID = id
	}
	info.Symbol = sym

	trigger, ok := d.batch.Tables.LookupTrigger(d.batch.Table, script.Trigger.Text)
	if !ok {
		if !d.batch.Options.TriggersChecked {
			d.report(diag.SemaUnknownTrigger, script.Trigger.Span, "%s cannot be resolved to a trigger", script.Trigger.Text)
		}
		return
	}
	info.Trigger = trigger
	d.checkContract(script, trigger, info)

	nameSpan := script.Name.Span
	if script.Name.Empty() {
		nameSpan = script.Trigger.Span
	}
	existing, exists := d.batch.Tables.LookupScript(d.batch.Table, sym.Trigger, sym.Name)
	switch {
	case exists && !d.batch.Options.AllowOverride:
		d.report(diag.SemaScriptAlreadyDefined, nameSpan, "The script '%s' is already defined", sym.Key())
	case exists:
		if sp, ok := d.annotationSpan(script, idAnnotation); ok {
			d.report(diag.SemaOverrideWithID, sp, "The id annotation cannot be used when overriding a script")
		}
		if !types.EqualLists(existing.FlatParams(), sym.FlatParams()) || !types.Equal(existing.Returns, sym.Returns) {
			d.report(diag.SemaOverrideMismatch, nameSpan, "The script '%s' signature does not match the overridden script", sym.Key())
			return
		}
		info.Symbol = existing
	default:
		if err := d.batch.Tables.DefineScript(d.batch.Table, sym); err != nil && errors.Is(err, symbols.ErrAlreadyDefined) {
			d.report(diag.SemaScriptAlreadyDefined, nameSpan, "The script '%s' is already defined", sym.Key())
		}
	}
}

// annotations collects the annotation values by folded name. Repeats keep
// the first value.
func (d *declarer) annotations(script *ast.Script) map[string]int32 {
	out := make(map[string]int32, len(script.Annotations))
	for _, ann := range script.Annotations {
		name := d.fold.String(ann.Name.Text)
		if _, dup := out[name]; dup {
			d.report(diag.SemaDuplicateAnnotation, ann.Span, "The annotation %s is already defined for this script", ann.Name.Text)
			continue
		}
		out[name] = ann.Value
	}
	return out
}

func (d *declarer) annotationSpan(script *ast.Script, name string) (source.Span, bool) {
	for _, ann := range script.Annotations {
		if d.fold.String(ann.Name.Text) == name {
			return ann.Span, true
		}
	}
	return source.Span{}, false
}

// checkContract сверяет заголовок скрипта с ограничениями триггера.
func (d *declarer) checkContract(script *ast.Script, trigger symbols.Trigger, info *ScriptInfo) {
	span := script.HeaderSpan
	if len(info.Params) > 0 {
		switch {
		case !trigger.SupportArguments:
			d.report(diag.SemaTriggerNoArguments, span, "The trigger type '%s' does not allow arguments", trigger.Name)
		case trigger.Arguments != nil && !types.EqualLists(trigger.Arguments, info.Params):
			d.report(diag.SemaTriggerArgMismatch, span, "The trigger type '%s' requires arguments of type (%s)",
				trigger.Name, types.Join(types.FlattenAll(trigger.Arguments)))
		}
	} else if trigger.SupportArguments && len(types.FlattenAll(trigger.Arguments)) > 0 {
		d.report(diag.SemaTriggerArgMismatch, span, "The trigger type '%s' requires arguments of type (%s)",
			trigger.Name, types.Join(types.FlattenAll(trigger.Arguments)))
	}

	returns := types.Flatten(info.Returns)
	want := types.FlattenAll(trigger.Returns)
	switch {
	case len(returns) > 0 && !trigger.SupportReturns:
		d.report(diag.SemaTriggerNoReturns, span, "The trigger type '%s' does not allow return values", trigger.Name)
	case trigger.SupportReturns && trigger.Returns != nil && !types.EqualLists(want, returns):
		d.report(diag.SemaTriggerReturnMismatch, span, "The trigger type '%s' requires a return type of (%s)",
			trigger.Name, types.Join(want))
	}
}
