package sema

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// checkArgs types every argument. want, when known, lets string literals
// retype to graphics positionally.
func (tc *typeChecker) checkArgs(args []ast.ExprID, want []types.Type, cmd *symbols.Command) []types.Type {
	flatWant := types.FlattenAll(want)
	got := make([]types.Type, len(args))
	for i, arg := range args {
		if expr := tc.builder.Exprs.Get(arg); expr != nil && expr.Kind == ast.ExprHook {
			tc.checkHook(arg, cmd)
			got[i] = tc.record(arg, types.Hook)
			continue
		}
		got[i] = tc.checkExpr(arg)
		if len(args) == len(flatWant) {
			got[i] = tc.coerce(flatWant[i], arg, got[i])
		}
	}
	return got
}

// applicable compares the flattened argument tuple against the expected one.
// Arguments that already failed suppress the comparison.
func applicable(want, got []types.Type) bool {
	for _, g := range got {
		if types.HasUndefined(g) {
			return true
		}
	}
	return types.AssignableLists(types.FlattenAll(want), types.FlattenAll(got))
}

func (tc *typeChecker) checkCommand(id ast.ExprID) types.Type {
	data, _ := tc.builder.Exprs.Command(id)
	cmd, ok := tc.tables.LookupCommand(tc.table, data.Name.Text)
	if !ok {
		tc.checkArgs(data.Args, nil, nil)
		tc.report(diag.SemaUnresolvedCommand, data.Name.Span, "%s cannot be resolved to a command", data.Name.Text)
		return types.Undefined
	}
	tc.bind(id, Binding{Kind: BindCommand, Command: cmd})
	got := tc.checkArgs(data.Args, cmd.Args, &cmd)
	if data.Alternative && !cmd.Alternative {
		tc.report(diag.SemaNoAlternative, data.Name.Span, "The command %s does not support alternative calls", data.Name.Text)
	}
	if !applicable(cmd.Args, got) {
		tc.report(diag.SemaCommandNotApplicable, tc.exprSpan(id), "The command %s(%s) is not applicable for the arguments (%s)",
			data.Name.Text, types.Join(types.FlattenAll(cmd.Args)), types.Join(types.FlattenAll(got)))
	}
	return commandType(cmd.Type)
}

func (tc *typeChecker) checkCall(id ast.ExprID) types.Type {
	data, _ := tc.builder.Exprs.Call(id)
	script, ok := tc.tables.LookupScript(tc.table, data.Trigger, data.Name.Text)
	if !ok {
		tc.checkArgs(data.Args, nil, nil)
		tc.report(diag.SemaUnresolvedScript, data.Name.Span, "%s cannot be resolved to a script", data.Name.Text)
		return types.Undefined
	}
	trigger, _ := tc.tables.LookupTrigger(tc.table, data.Trigger)
	tc.bind(id, Binding{Kind: BindScript, Script: script, Trigger: trigger})
	got := tc.checkArgs(data.Args, script.Params, nil)
	if !applicable(script.Params, got) {
		tc.report(diag.SemaScriptNotApplicable, tc.exprSpan(id), "The script %s(%s) is not applicable for the arguments (%s)",
			data.Name.Text, types.Join(script.FlatParams()), types.Join(types.FlattenAll(got)))
	}
	if script.Returns == nil {
		return types.Void
	}
	return script.Returns
}

// checkHook validates a hook argument of cmd. A nil cmd skips the transmit
// rules.
func (tc *typeChecker) checkHook(id ast.ExprID, cmd *symbols.Command) {
	data, _ := tc.builder.Exprs.Hook(id)
	if data.Empty() {
		return
	}
	span := tc.exprSpan(id)

	var script *symbols.Script
	if trigger, ok := tc.batch.hookTrigger(); ok {
		script, _ = tc.tables.LookupScript(tc.table, trigger, data.Name.Text)
	}
	var want []types.Type
	if script == nil {
		tc.report(diag.SemaUnresolvedHook, data.Name.Span, "%s cannot be resolved to a hook script", data.Name.Text)
	} else {
		tr, _ := tc.tables.LookupTrigger(tc.table, script.Trigger)
		tc.bind(id, Binding{Kind: BindHook, Script: script, Trigger: tr})
		want = script.Params
	}
	got := tc.checkArgs(data.Args, want, nil)
	if script != nil && !applicable(script.Params, got) {
		tc.report(diag.SemaScriptNotApplicable, data.Name.Span, "The script %s(%s) is not applicable for the arguments (%s)",
			data.Name.Text, types.Join(script.FlatParams()), types.Join(types.FlattenAll(got)))
	}

	if cmd == nil {
		for _, tr := range data.Transmits {
			tc.checkExpr(tr)
		}
		return
	}
	switch {
	case cmd.HasHookType() && !data.HasTransmits:
		tc.report(diag.SemaHookTransmitRequired, span, "The hook requires a transmit list of type %s", cmd.HookType)
	case !cmd.HasHookType() && len(data.Transmits) > 0:
		tc.report(diag.SemaHookTransmitForbidden, span, "The hook does not allow transmit lists")
	}
	for _, tr := range data.Transmits {
		got := tc.checkExpr(tr)
		if !cmd.HasHookType() || types.HasUndefined(got) {
			continue
		}
		if !tc.transmits(tr, cmd.HookType, got) {
			tc.mismatch(tc.exprSpan(tr), cmd.HookType, got)
		}
	}
}

// transmits reports whether a transmit entry fits a list of type want: a
// global whose storage matches the var type, or a config of that type.
func (tc *typeChecker) transmits(id ast.ExprID, want types.Primitive, got types.Type) bool {
	if b, ok := tc.result.Bindings[id]; ok && b.Kind == BindGlobal {
		return domainType(b.Variable.Domain) == want
	}
	return types.Assignable(want, got)
}

func domainType(d symbols.Domain) types.Primitive {
	switch d {
	case symbols.DomainPlayer:
		return types.Varp
	case symbols.DomainPlayerBit:
		return types.Varbit
	case symbols.DomainClientInt, symbols.DomainClientString:
		return types.Varc
	}
	return types.Undefined
}
