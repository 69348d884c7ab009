package testkit

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// Well-known ids of the fixture table.
const (
	CoinsID     = 995
	IconID      = 7
	BankTitleID = 12<<16 | 3
	GoldVarID   = 1
	ClientVarID = 2
	MaxConst    = 100
)

// StandardTables builds a small predefined root table with the triggers,
// commands and configs the package tests compile against.
func StandardTables() *symbols.Tables {
	t := symbols.NewTables()
	root := t.Root()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	for _, tr := range []symbols.Trigger{
		{Name: "proc", Operator: "~", Opcode: "gosub_with_params", SupportArguments: true, SupportReturns: true},
		{Name: "label", Operator: "@", Opcode: "jump_with_params", SupportArguments: true},
		{Name: "clientscript", SupportArguments: true, Hook: true},
		{Name: "myscript", SupportArguments: true, SupportReturns: true},
		{Name: "opnpc1"},
		{Name: "logout", SupportReturns: true, Returns: []types.Type{types.Boolean}},
	} {
		must(t.DefineTrigger(root, tr))
	}

	for _, c := range []symbols.Command{
		{Name: "mes", Opcode: 3100, Type: types.Void, Args: []types.Type{types.String}},
		{Name: "tostring", Opcode: 4106, Type: types.String, Args: []types.Type{types.Int}},
		{Name: "getqueue", Opcode: 5000, Type: types.Int},
		{Name: "if_settext", Opcode: 2113, Type: types.Void, Args: []types.Type{types.Component, types.String}, Alternative: true},
		{Name: "cc_settext", Opcode: 1113, Type: types.Void, Args: []types.Type{types.String}, Alternative: true},
		{Name: "if_setgraphic", Opcode: 2105, Type: types.Void, Args: []types.Type{types.Graphic}},
		{Name: "inv_total", Opcode: 3400, Type: types.Int, Args: []types.Type{types.Inv, types.Obj}},
		{Name: "cc_setonclick", Opcode: 1400, Type: types.Void, Args: []types.Type{types.Hook}, Hook: true, HookType: types.Undefined},
		{Name: "cc_setonvartransmit", Opcode: 1408, Type: types.Void, Args: []types.Type{types.Hook}, Hook: true, HookType: types.Varp},
		{Name: "cc_setoninvtransmit", Opcode: 1409, Type: types.Void, Args: []types.Type{types.Hook}, Hook: true, HookType: types.Inv},
	} {
		must(t.DefineCommand(root, c))
	}

	must(t.DefineConfig(root, symbols.Config{Name: "coins", Type: types.Obj, ID: CoinsID}))
	must(t.DefineConfig(root, symbols.Config{Name: "bank_inv", Type: types.Inv, ID: 95}))
	must(t.DefineGraphic(root, symbols.Config{Name: "icon", Type: types.Graphic, ID: IconID}))
	must(t.DefineInterface(root, symbols.Config{Name: "bank:title", Type: types.Component, ID: BankTitleID}))
	must(t.DefineConstant(root, symbols.Constant{Name: "max", Type: types.Int, Value: types.IntValue(MaxConst)}))
	must(t.DefineConstant(root, symbols.Constant{Name: "greeting", Type: types.String, Value: types.StringValue("hi")}))
	must(t.DefineRuntimeConstant(root, symbols.Constant{Name: "build", Type: types.Int, Value: types.IntValue(1000)}))
	must(t.DefineVariable(root, symbols.Variable{Name: "gold", Domain: symbols.DomainPlayer, Type: types.Int, ID: GoldVarID}))
	must(t.DefineVariable(root, symbols.Variable{Name: "clientflag", Domain: symbols.DomainClientInt, Type: types.Int, ID: ClientVarID}))
	return t
}

// Env answers both parser and analyzer questions from a table.
type Env struct {
	Tables *symbols.Tables
	Table  symbols.TableID
}

func (e Env) IsTrigger(name string) bool {
	_, ok := e.Tables.LookupTrigger(e.Table, name)
	return ok
}

func (e Env) TriggerByOperator(op string) (string, bool) {
	tr, ok := e.Tables.LookupTriggerByOperator(e.Table, op)
	return tr.Name, ok
}

func (e Env) IsHookArgument(command string, index int) bool {
	cmd, ok := e.Tables.LookupCommand(e.Table, command)
	if !ok || !cmd.Hook {
		return false
	}
	args := types.FlattenAll(cmd.Args)
	return index < len(args) && types.IsPrimitive(args[index], types.Hook)
}

func (e Env) HookTrigger() (string, bool) {
	tr, ok := e.Tables.HookTrigger(e.Table)
	return tr.Name, ok
}
