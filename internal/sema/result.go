package sema

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// BindingKind says what a name resolved to.
type BindingKind uint8

const (
	BindNone BindingKind = iota
	BindLocal
	BindArray
	BindGlobal
	BindConstant
	BindConfig
	BindGraphic
	BindCommand
	BindScript
	BindHook
)

var bindingKindNames = [...]string{
	BindNone:     "none",
	BindLocal:    "local",
	BindArray:    "array",
	BindGlobal:   "global",
	BindConstant: "constant",
	BindConfig:   "config",
	BindGraphic:  "graphic",
	BindCommand:  "command",
	BindScript:   "script",
	BindHook:     "hook",
}

func (k BindingKind) String() string {
	if int(k) < len(bindingKindNames) {
		return bindingKindNames[k]
	}
	return "binding(?)"
}

// Binding records the symbol an expression or declaration resolved to. Only
// the field matching Kind is set.
type Binding struct {
	Kind     BindingKind
	Local    symbols.LocalVar
	Array    symbols.LocalArray
	Variable symbols.Variable
	Constant symbols.Constant
	Runtime  bool // константа из таблицы runtime-констант
	Config   symbols.Config
	Command  symbols.Command
	Script   *symbols.Script
	Trigger  symbols.Trigger // триггер вызываемого скрипта
}

// ScriptInfo is what the checker learned about one script.
type ScriptInfo struct {
	// Symbol is the table entry the script compiles into: its own
	// declaration, or the overridden one.
	Symbol  *symbols.Script
	Trigger symbols.Trigger
	Params  []types.Type
	Returns types.Type
	// Locals lists every scalar local in ID order, parameters first.
	Locals []symbols.LocalVar
	// Arrays lists every array in slot order, array parameters first.
	Arrays []symbols.LocalArray
}

// Result holds the side tables both passes fill in.
type Result struct {
	ExprTypes   map[ast.ExprID]types.Type
	Bindings    map[ast.ExprID]Binding
	Decls       map[ast.StmtID]Binding
	SwitchTypes map[ast.StmtID]types.Primitive
	SwitchKeys  map[ast.ExprID]int32
	Scripts     map[ast.ScriptID]*ScriptInfo
}

func newResult() *Result {
	return &Result{
		ExprTypes:   make(map[ast.ExprID]types.Type),
		Bindings:    make(map[ast.ExprID]Binding),
		Decls:       make(map[ast.StmtID]Binding),
		SwitchTypes: make(map[ast.StmtID]types.Primitive),
		SwitchKeys:  make(map[ast.ExprID]int32),
		Scripts:     make(map[ast.ScriptID]*ScriptInfo),
	}
}

// TypeOf returns the checked type of id, Undefined if it was never checked.
func (r *Result) TypeOf(id ast.ExprID) types.Type {
	if t, ok := r.ExprTypes[id]; ok && t != nil {
		return t
	}
	return types.Undefined
}
