package driver

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
	"github.com/waleedyaseen/RuneScript-sub000/internal/project"
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// Current schema version - increment when the Object layout changes
const objectSchemaVersion uint16 = 1

// ErrObjectSchema is returned by DecodeObject for images written by another
// schema version.
var ErrObjectSchema = errors.New("unsupported object schema")

// OperandKind tags the operand of an ObjectInstruction.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	OperandInt
	OperandLong
	OperandString
	OperandLocal
	OperandLabel
	OperandSwitch
	OperandScript
	OperandCommand
)

// Object is the msgpack hand-off image of one generated script. It is
// self-describing: opcodes are stored both by name and by the number the
// instruction table assigns them.
type Object struct {
	Schema    uint16         `msgpack:"schema"`
	Name      string         `msgpack:"name"`
	Extension string         `msgpack:"ext"`
	Trigger   string         `msgpack:"trigger"`
	Script    string         `msgpack:"script"`
	ID        int32          `msgpack:"id"`
	Params    []string       `msgpack:"params,omitempty"`
	Returns   []string       `msgpack:"returns,omitempty"`
	Locals    []ObjectLocal  `msgpack:"locals,omitempty"`
	Arrays    int            `msgpack:"arrays,omitempty"`
	Switches  []ObjectSwitch `msgpack:"switches,omitempty"`
	Blocks    []ObjectBlock  `msgpack:"blocks"`
}

// ObjectLocal is one local slot. Index counts within Stack, parameters first.
type ObjectLocal struct {
	Name  string `msgpack:"name"`
	Type  string `msgpack:"type"`
	Stack uint8  `msgpack:"stack"`
	Index int    `msgpack:"index"`
	Param bool   `msgpack:"param,omitempty"`
}

type ObjectSwitch struct {
	ID    int          `msgpack:"id"`
	Cases []ObjectCase `msgpack:"cases"`
}

type ObjectCase struct {
	Keys  []int32 `msgpack:"keys"`
	Label string  `msgpack:"label"`
}

type ObjectBlock struct {
	Label        string              `msgpack:"label"`
	Instructions []ObjectInstruction `msgpack:"code"`
}

// ObjectInstruction is one encoded instruction. Which operand fields are set
// depends on Kind:
//
//	int, long     Int
//	string        Text
//	local         Stack, Int (slot index), Text (name)
//	label         Text
//	switch        Int (table id)
//	script        Trigger, Text, Int (script id)
//	command       Text, Int (command opcode), Alt
type ObjectInstruction struct {
	Op      string      `msgpack:"op"`
	Code    int         `msgpack:"code"`
	Large   bool        `msgpack:"large,omitempty"`
	Kind    OperandKind `msgpack:"kind,omitempty"`
	Int     int64       `msgpack:"i,omitempty"`
	Text    string      `msgpack:"s,omitempty"`
	Trigger string      `msgpack:"t,omitempty"`
	Stack   uint8       `msgpack:"st,omitempty"`
	Alt     bool        `msgpack:"alt,omitempty"`
}

// NewObject builds the image of s. codes numbers the core opcodes; commands
// keep their own opcode.
func NewObject(s *codegen.BinaryScript, codes project.InstructionMap) *Object {
	o := &Object{
		Schema:    objectSchemaVersion,
		Name:      s.Name,
		Extension: s.Extension,
		Trigger:   s.Info.Trigger,
		Script:    s.Info.Name,
		ID:        s.Info.ID,
		Arrays:    s.Arrays,
	}
	for _, p := range s.Info.Params {
		o.Params = append(o.Params, p.String())
	}
	if s.Info.Returns != nil {
		for _, r := range types.Flatten(s.Info.Returns) {
			o.Returns = append(o.Returns, r.String())
		}
	}
	for _, st := range types.StackTypes {
		for _, l := range s.Locals.Params[st] {
			o.Locals = append(o.Locals, objectLocal(l))
		}
		for _, l := range s.Locals.Vars[st] {
			o.Locals = append(o.Locals, objectLocal(l))
		}
	}
	for _, t := range s.Switches {
		sw := ObjectSwitch{ID: t.ID, Cases: make([]ObjectCase, len(t.Cases))}
		for i, c := range t.Cases {
			sw.Cases[i] = ObjectCase{Keys: c.Keys, Label: c.Label.Name}
		}
		o.Switches = append(o.Switches, sw)
	}
	for _, b := range s.Blocks.Blocks() {
		ob := ObjectBlock{Label: b.Label.Name, Instructions: make([]ObjectInstruction, len(b.Instructions))}
		for i, in := range b.Instructions {
			ob.Instructions[i] = objectInstruction(in, codes)
		}
		o.Blocks = append(o.Blocks, ob)
	}
	return o
}

func objectLocal(l *codegen.Local) ObjectLocal {
	return ObjectLocal{Name: l.Name, Type: l.Type.String(), Stack: uint8(l.Stack()), Index: l.Index, Param: l.Param}
}

func objectInstruction(in *codegen.Instruction, codes project.InstructionMap) ObjectInstruction {
	enc, _ := codes.Lookup(in.Op)
	out := ObjectInstruction{Op: in.Op.String(), Code: enc.Code, Large: enc.Large}
	switch v := in.Operand.(type) {
	case nil:
	case codegen.IntOperand:
		out.Kind, out.Int = OperandInt, int64(v)
	case codegen.LongOperand:
		out.Kind, out.Int = OperandLong, int64(v)
	case codegen.StringOperand:
		out.Kind, out.Text = OperandString, string(v)
	case *codegen.Local:
		out.Kind, out.Stack, out.Int, out.Text = OperandLocal, uint8(v.Stack()), int64(v.Index), v.Name
	case codegen.Label:
		out.Kind, out.Text = OperandLabel, v.Name
	case *codegen.SwitchTable:
		out.Kind, out.Int = OperandSwitch, int64(v.ID)
	case codegen.ScriptRef:
		out.Kind, out.Trigger, out.Text, out.Int = OperandScript, v.Trigger, v.Name, int64(v.ID)
	case codegen.CommandRef:
		out.Kind, out.Text, out.Int, out.Alt = OperandCommand, v.Name, int64(v.Opcode), v.Alternative
		out.Code = v.Opcode
	}
	return out
}

// EncodeObject writes the msgpack image of s to w.
func EncodeObject(w io.Writer, s *codegen.BinaryScript, codes project.InstructionMap) error {
	if s == nil {
		return errors.New("encode object: nil script")
	}
	return NewObject(s, codes).Encode(w)
}

// Encode writes the msgpack image to w.
func (o *Object) Encode(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(o)
}

// FileName is the object's path below an output directory:
// <trigger>/<name>.<extension>.
func (o *Object) FileName() string {
	return filepath.Join(o.Trigger, o.Script+"."+o.Extension)
}

// DecodeObject reads one image written by EncodeObject.
func DecodeObject(r io.Reader) (*Object, error) {
	var o Object
	if err := msgpack.NewDecoder(r).Decode(&o); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	if o.Schema != objectSchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrObjectSchema, o.Schema)
	}
	return &o, nil
}

// BinaryScript rebuilds the generated form of the image, for listings. Label
// ids are renumbered in block order; names are kept.
func (o *Object) BinaryScript() (*codegen.BinaryScript, error) {
	s := &codegen.BinaryScript{
		Extension: o.Extension,
		Name:      o.Name,
		Blocks:    codegen.NewBlockList(),
		Locals: codegen.Locals{
			Params: make(map[types.StackType][]*codegen.Local),
			Vars:   make(map[types.StackType][]*codegen.Local),
		},
		Arrays: o.Arrays,
		Info:   symbols.Script{Trigger: o.Trigger, Name: o.Script, ID: o.ID},
	}

	type slot struct {
		stack types.StackType
		index int
	}
	locals := make(map[slot]*codegen.Local, len(o.Locals))
	for _, ol := range o.Locals {
		t, ok := types.LookupLiteral(ol.Type)
		if !ok {
			return nil, fmt.Errorf("local $%s: unknown type %q", ol.Name, ol.Type)
		}
		l := &codegen.Local{Name: ol.Name, Type: t, Index: ol.Index, Param: ol.Param}
		st := types.StackType(ol.Stack)
		if ol.Param {
			s.Locals.Params[st] = append(s.Locals.Params[st], l)
		} else {
			s.Locals.Vars[st] = append(s.Locals.Vars[st], l)
		}
		locals[slot{st, ol.Index}] = l
	}

	labels := make(map[string]codegen.Label, len(o.Blocks))
	for i, ob := range o.Blocks {
		if _, dup := labels[ob.Label]; dup {
			return nil, fmt.Errorf("duplicate block %s", ob.Label)
		}
		labels[ob.Label] = codegen.Label{ID: i, Name: ob.Label}
	}
	label := func(name string) (codegen.Label, error) {
		l, ok := labels[name]
		if !ok {
			return codegen.Label{}, fmt.Errorf("reference to missing block %s", name)
		}
		return l, nil
	}

	tables := make(map[int]*codegen.SwitchTable, len(o.Switches))
	for _, sw := range o.Switches {
		t := &codegen.SwitchTable{ID: sw.ID, Cases: make([]codegen.SwitchCase, len(sw.Cases))}
		for i, c := range sw.Cases {
			l, err := label(c.Label)
			if err != nil {
				return nil, fmt.Errorf("switch table %d: %w", sw.ID, err)
			}
			t.Cases[i] = codegen.SwitchCase{Keys: c.Keys, Label: l}
		}
		tables[sw.ID] = t
		s.Switches = append(s.Switches, t)
	}

	for _, ob := range o.Blocks {
		b := s.Blocks.Generate(labels[ob.Label])
		for _, oi := range ob.Instructions {
			op, ok := codegen.LookupOpcode(oi.Op)
			if !ok {
				return nil, fmt.Errorf("block %s: unknown opcode %q", ob.Label, oi.Op)
			}
			in := &codegen.Instruction{Op: op}
			switch oi.Kind {
			case OperandNone:
			case OperandInt:
				v, err := safecast.Conv[int32](oi.Int)
				if err != nil {
					return nil, fmt.Errorf("block %s: int operand %d: %w", ob.Label, oi.Int, err)
				}
				in.Operand = codegen.IntOperand(v)
			case OperandLong:
				in.Operand = codegen.LongOperand(oi.Int)
			case OperandString:
				in.Operand = codegen.StringOperand(oi.Text)
			case OperandLocal:
				l, ok := locals[slot{types.StackType(oi.Stack), int(oi.Int)}]
				if !ok {
					return nil, fmt.Errorf("block %s: unknown local $%s", ob.Label, oi.Text)
				}
				in.Operand = l
			case OperandLabel:
				l, err := label(oi.Text)
				if err != nil {
					return nil, fmt.Errorf("block %s: %w", ob.Label, err)
				}
				in.Operand = l
			case OperandSwitch:
				t, ok := tables[int(oi.Int)]
				if !ok {
					return nil, fmt.Errorf("block %s: unknown switch table %d", ob.Label, oi.Int)
				}
				in.Operand = t
			case OperandScript:
				id, err := safecast.Conv[int32](oi.Int)
				if err != nil {
					return nil, fmt.Errorf("block %s: script id %d: %w", ob.Label, oi.Int, err)
				}
				in.Operand = codegen.ScriptRef{Trigger: oi.Trigger, Name: oi.Text, ID: id}
			case OperandCommand:
				in.Operand = codegen.CommandRef{Name: oi.Text, Opcode: int(oi.Int), Alternative: oi.Alt}
			default:
				return nil, fmt.Errorf("block %s: unknown operand kind %d", ob.Label, oi.Kind)
			}
			b.Add(in)
		}
	}
	return s, nil
}
