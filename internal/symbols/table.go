package symbols

import (
	"errors"
	"fmt"
)

// ErrAlreadyDefined is returned by every Define* when the name is already
// visible through the table chain.
var ErrAlreadyDefined = errors.New("already defined")

// Table is one level of the symbol chain.
type Table struct {
	parent           TableID
	triggers         map[string]Trigger
	triggerOrder     []string
	commands         map[string]Command
	configs          map[string]Config
	graphics         map[string]Config
	constants        map[string]Constant
	runtimeConstants map[string]Constant
	variables        map[string]Variable
	interfaces       map[string]Config
	scripts          map[string]*Script
	scriptOrder      []*Script
}

func newTable(parent TableID) Table {
	return Table{
		parent:           parent,
		triggers:         make(map[string]Trigger),
		commands:         make(map[string]Command),
		configs:          make(map[string]Config),
		graphics:         make(map[string]Config),
		constants:        make(map[string]Constant),
		runtimeConstants: make(map[string]Constant),
		variables:        make(map[string]Variable),
		interfaces:       make(map[string]Config),
		scripts:          make(map[string]*Script),
	}
}

// Tables is the arena of tables of one batch. Index 0 is reserved.
type Tables struct {
	data []Table
	root TableID
}

// NewTables creates an arena holding a single empty root table.
func NewTables() *Tables {
	t := &Tables{data: make([]Table, 1, 4)}
	t.root = t.alloc(NoTableID)
	return t
}

func (t *Tables) alloc(parent TableID) TableID {
	t.data = append(t.data, newTable(parent))
	return TableID(len(t.data) - 1)
}

// Root returns the predefined table.
func (t *Tables) Root() TableID { return t.root }

// Sub creates a child of parent. Lookups through the child fall back to
// the parent chain.
func (t *Tables) Sub(parent TableID) TableID {
	if t.get(parent) == nil {
		panic(fmt.Sprintf("symbols: sub-table of unknown table %d", parent))
	}
	return t.alloc(parent)
}

// Parent returns the parent of id, NoTableID for the root.
func (t *Tables) Parent(id TableID) TableID {
	if tbl := t.get(id); tbl != nil {
		return tbl.parent
	}
	return NoTableID
}

func (t *Tables) get(id TableID) *Table {
	if !id.IsValid() || int(id) >= len(t.data) {
		return nil
	}
	return &t.data[id]
}

// lookup walks from id up the parent chain.
func lookup[V any](t *Tables, id TableID, pick func(*Table) map[string]V, name string) (V, bool) {
	for tbl := t.get(id); tbl != nil; tbl = t.get(tbl.parent) {
		if v, ok := pick(tbl)[name]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

func define[V any](t *Tables, id TableID, pick func(*Table) map[string]V, kind, name string, v V) error {
	tbl := t.get(id)
	if tbl == nil {
		panic(fmt.Sprintf("symbols: define in unknown table %d", id))
	}
	if _, ok := lookup(t, id, pick, name); ok {
		return fmt.Errorf("%s %q: %w", kind, name, ErrAlreadyDefined)
	}
	pick(tbl)[name] = v
	return nil
}

func triggersOf(tbl *Table) map[string]Trigger          { return tbl.triggers }
func commandsOf(tbl *Table) map[string]Command          { return tbl.commands }
func configsOf(tbl *Table) map[string]Config            { return tbl.configs }
func graphicsOf(tbl *Table) map[string]Config           { return tbl.graphics }
func constantsOf(tbl *Table) map[string]Constant        { return tbl.constants }
func runtimeConstantsOf(tbl *Table) map[string]Constant { return tbl.runtimeConstants }
func variablesOf(tbl *Table) map[string]Variable        { return tbl.variables }
func interfacesOf(tbl *Table) map[string]Config         { return tbl.interfaces }
func scriptsOf(tbl *Table) map[string]*Script           { return tbl.scripts }

func (t *Tables) DefineTrigger(id TableID, tr Trigger) error {
	if err := define(t, id, triggersOf, "trigger", tr.Name, tr); err != nil {
		return err
	}
	tbl := t.get(id)
	tbl.triggerOrder = append(tbl.triggerOrder, tr.Name)
	return nil
}

// findTrigger returns the first trigger, nearest table first and in
// definition order, that satisfies match.
func (t *Tables) findTrigger(id TableID, match func(Trigger) bool) (Trigger, bool) {
	for tbl := t.get(id); tbl != nil; tbl = t.get(tbl.parent) {
		for _, name := range tbl.triggerOrder {
			if tr := tbl.triggers[name]; match(tr) {
				return tr, true
			}
		}
	}
	return Trigger{}, false
}

func (t *Tables) LookupTrigger(id TableID, name string) (Trigger, bool) {
	return lookup(t, id, triggersOf, name)
}

// LookupTriggerByOperator finds the trigger whose call operator is op.
func (t *Tables) LookupTriggerByOperator(id TableID, op string) (Trigger, bool) {
	if op == "" {
		return Trigger{}, false
	}
	return t.findTrigger(id, func(tr Trigger) bool { return tr.Operator == op })
}

// HookTrigger returns the trigger whose scripts are hook targets.
func (t *Tables) HookTrigger(id TableID) (Trigger, bool) {
	return t.findTrigger(id, func(tr Trigger) bool { return tr.Hook })
}

func (t *Tables) DefineCommand(id TableID, c Command) error {
	return define(t, id, commandsOf, "command", c.Name, c)
}

func (t *Tables) LookupCommand(id TableID, name string) (Command, bool) {
	return lookup(t, id, commandsOf, name)
}

func (t *Tables) DefineConfig(id TableID, c Config) error {
	return define(t, id, configsOf, "config", c.Name, c)
}

func (t *Tables) LookupConfig(id TableID, name string) (Config, bool) {
	return lookup(t, id, configsOf, name)
}

func (t *Tables) DefineGraphic(id TableID, c Config) error {
	return define(t, id, graphicsOf, "graphic", c.Name, c)
}

func (t *Tables) LookupGraphic(id TableID, name string) (Config, bool) {
	return lookup(t, id, graphicsOf, name)
}

func (t *Tables) DefineConstant(id TableID, c Constant) error {
	return define(t, id, constantsOf, "constant", c.Name, c)
}

func (t *Tables) LookupConstant(id TableID, name string) (Constant, bool) {
	return lookup(t, id, constantsOf, name)
}

func (t *Tables) DefineRuntimeConstant(id TableID, c Constant) error {
	return define(t, id, runtimeConstantsOf, "runtime constant", c.Name, c)
}

func (t *Tables) LookupRuntimeConstant(id TableID, name string) (Constant, bool) {
	return lookup(t, id, runtimeConstantsOf, name)
}

func (t *Tables) DefineVariable(id TableID, v Variable) error {
	return define(t, id, variablesOf, "variable", v.Name, v)
}

func (t *Tables) LookupVariable(id TableID, name string) (Variable, bool) {
	return lookup(t, id, variablesOf, name)
}

func (t *Tables) DefineInterface(id TableID, c Config) error {
	return define(t, id, interfacesOf, "interface", c.Name, c)
}

func (t *Tables) LookupInterface(id TableID, name string) (Config, bool) {
	return lookup(t, id, interfacesOf, name)
}

// DefineScript stores s under its "[trigger,name]" key.
func (t *Tables) DefineScript(id TableID, s *Script) error {
	if err := define(t, id, scriptsOf, "script", s.Key(), s); err != nil {
		return err
	}
	tbl := t.get(id)
	tbl.scriptOrder = append(tbl.scriptOrder, s)
	return nil
}

func (t *Tables) LookupScript(id TableID, trigger, name string) (*Script, bool) {
	return lookup(t, id, scriptsOf, ScriptKey(trigger, name))
}

// Scripts lists the scripts defined directly in id, in definition order.
func (t *Tables) Scripts(id TableID) []*Script {
	if tbl := t.get(id); tbl != nil {
		return tbl.scriptOrder
	}
	return nil
}
