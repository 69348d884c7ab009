package codegen

import (
	"github.com/waleedyaseen/RuneScript-sub000/internal/ast"
	"github.com/waleedyaseen/RuneScript-sub000/internal/sema"
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// DefaultExtension is used when no environment names one.
const DefaultExtension = "cs2"

// Environment supplies what the generator cannot learn from the analysis.
type Environment interface {
	// Extension returns the output extension for scripts of trigger.
	Extension(trigger string) string
}

type loopCtx struct {
	breakTarget    Label
	continueTarget Label
}

type generator struct {
	builder  *ast.Builder
	res      *sema.Result
	labels   *labelGenerator
	blocks   *BlockList
	locals   *localMap
	switches switchMap
	loops    []loopCtx
	current  *Block
}

// Generate lowers one analyzed script. The script must have passed analysis
// without errors; anything the analyzer should have rejected panics with an
// *InvariantError.
func Generate(b *ast.Builder, id ast.ScriptID, res *sema.Result, env Environment) *BinaryScript {
	script := b.Scripts.Get(id)
	if script == nil {
		panic(Invariantf("script #%d does not exist", id))
	}
	info := res.Scripts[id]
	if info == nil {
		panic(Invariantf("script %s was not analyzed", symbols.ScriptKey(script.Trigger.Text, script.Name.Text)))
	}

	g := &generator{
		builder: b,
		res:     res,
		labels:  newLabelGenerator(),
		blocks:  NewBlockList(),
		locals:  newLocalMap(),
	}
	g.bind(g.labels.Generate("entry"))
	for _, l := range info.Locals {
		if l.Param {
			g.locals.register(l.ID, l.Name, l.Type, true)
		}
	}
	for _, st := range script.Body {
		g.stmt(st)
	}
	g.defaultReturn(info.Returns)

	out := &BinaryScript{
		Extension: DefaultExtension,
		Name:      symbols.ScriptKey(script.Trigger.Text, script.Name.Text),
		Blocks:    g.blocks,
		Locals:    g.locals.locals,
		Switches:  g.switches.tables,
		Arrays:    len(info.Arrays),
	}
	if env != nil {
		if ext := env.Extension(script.Trigger.Text); ext != "" {
			out.Extension = ext
		}
	}
	if info.Symbol != nil {
		out.Info = *info.Symbol
	} else {
		out.Info = symbols.Script{
			Trigger: script.Trigger.Text,
			Name:    script.Name.Text,
			Params:  info.Params,
			Returns: info.Returns,
			ID:      -1,
		}
	}
	return out
}

// bind creates the block for l and makes it the emission target.
func (g *generator) bind(l Label) *Block {
	g.current = g.blocks.Generate(l)
	return g.current
}

func (g *generator) emit(op Opcode, operand Operand) *Instruction {
	in := &Instruction{Op: op, Operand: operand}
	g.current.Add(in)
	return in
}

func (g *generator) branch(target Label) {
	g.emit(OpBranch, target)
}

func (g *generator) pushValue(v types.Value) {
	var operand Operand
	switch v.Stack {
	case types.StackInt:
		operand = IntOperand(v.Int)
	case types.StackString:
		operand = StringOperand(v.Str)
	case types.StackLong:
		operand = LongOperand(v.Long)
	default:
		panic(Invariantf("constant %s has no stack type", v))
	}
	g.emit(constantOpcodes[v.Stack], operand)
}

func (g *generator) pushDefault(t types.Type) {
	p, ok := t.(types.Primitive)
	if !ok {
		panic(Invariantf("type %s has no default value", t))
	}
	v, ok := p.Default()
	if !ok {
		panic(Invariantf("type %s has no default value", p))
	}
	g.pushValue(v)
}

// defaultReturn closes a script whose last block can still fall off the end.
func (g *generator) defaultReturn(returns types.Type) {
	if g.current.Last().Is(OpReturn) {
		return
	}
	if returns != nil {
		for _, t := range types.Flatten(returns) {
			if types.IsPrimitive(t, types.Void) {
				continue
			}
			g.pushDefault(t)
		}
	}
	g.emit(OpReturn, nil)
}

func (g *generator) binding(id ast.ExprID) sema.Binding {
	b, ok := g.res.Bindings[id]
	if !ok || b.Kind == sema.BindNone {
		panic(Invariantf("expression #%d has no binding", id))
	}
	return b
}

func (g *generator) typeOf(id ast.ExprID) types.Type {
	t := g.res.TypeOf(id)
	if types.HasUndefined(t) {
		panic(Invariantf("expression #%d has an undefined type", id))
	}
	return t
}
