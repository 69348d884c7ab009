package types

// Primitive is a leaf type.
type Primitive uint8

const (
	Undefined Primitive = iota
	Hook
	Void
	Constant
	TypeLit
	Null
	Param
	Varp
	Varbit
	Varc
	Int
	String
	Long
	Boolean
	Coordgrid
	Char
	Graphic
	FontMetrics
	Enum
	NPC
	Obj
	NamedObj
	Loc
	Inv
	Stat
	Seq
	SpotAnim
	Model
	Interface
	Component
	Struct
	Category
	Colour
	IDKit
	Synth
	MapArea
	MapElement
	Texture
	DBRow
	LocShape
	ChatPhrase
	BAS
	NPCUID
	TopLevelInterface
	OverlayInterface
	ClientInterface

	primitiveCount
)

type primitiveInfo struct {
	repr   string // пусто для NULL: у него нет записи в исходнике
	code   rune
	stack  StackType
	def    *Value
	config bool
}

var (
	zeroInt    = IntValue(0)
	minusOne   = IntValue(-1)
	zeroLong   = LongValue(0)
	emptyStr   = StringValue("")
	falseValue = IntValue(0)
)

var primitives = [primitiveCount]primitiveInfo{
	Undefined:         {repr: "undefined", code: '\ufff0'},
	Hook:              {repr: "hook", code: '\ufff1'},
	Void:              {repr: "void", code: '\ufff2'},
	Constant:          {repr: "constant", code: '\ufff3'},
	TypeLit:           {repr: "type", code: '\ufff6'},
	Null:              {code: '\uffd7'},
	Param:             {repr: "param", code: '\uffd0', config: true},
	Varp:              {repr: "varp", code: '\uffd3', config: true},
	Varbit:            {repr: "varbit", code: '\uffd4', config: true},
	Varc:              {repr: "varc", code: '\uffd6', config: true},
	Int:               {repr: "int", code: 'i', stack: StackInt, def: &zeroInt},
	String:            {repr: "string", code: 's', stack: StackString, def: &emptyStr},
	Long:              {repr: "long", code: '\u00cf', stack: StackLong, def: &zeroLong},
	Boolean:           {repr: "boolean", code: '1', stack: StackInt, def: &falseValue},
	Coordgrid:         {repr: "coord", code: 'c', stack: StackInt, def: &minusOne},
	Char:              {repr: "char", code: 'z', stack: StackInt, def: &minusOne},
	Graphic:           {repr: "graphic", code: 'd', stack: StackInt, def: &minusOne},
	FontMetrics:       {repr: "fontmetrics", code: 'f', stack: StackInt, def: &minusOne},
	Enum:              {repr: "enum", code: 'g', stack: StackInt, def: &minusOne, config: true},
	NPC:               {repr: "npc", code: 'n', stack: StackInt, def: &minusOne, config: true},
	Obj:               {repr: "obj", code: 'o', stack: StackInt, def: &minusOne, config: true},
	NamedObj:          {repr: "namedobj", code: 'O', stack: StackInt, def: &minusOne, config: true},
	Loc:               {repr: "loc", code: 'l', stack: StackInt, def: &minusOne, config: true},
	Inv:               {repr: "inv", code: 'v', stack: StackInt, def: &minusOne, config: true},
	Stat:              {repr: "stat", code: 'S', stack: StackInt, def: &minusOne, config: true},
	Seq:               {repr: "seq", code: 'A', stack: StackInt, def: &minusOne, config: true},
	SpotAnim:          {repr: "spotanim", code: 't', stack: StackInt, def: &minusOne, config: true},
	Model:             {repr: "model", code: 'm', stack: StackInt, def: &minusOne},
	Interface:         {repr: "interface", code: 'a', stack: StackInt, def: &minusOne},
	Component:         {repr: "component", code: 'I', stack: StackInt, def: &minusOne},
	Struct:            {repr: "struct", code: 'J', stack: StackInt, def: &minusOne, config: true},
	Category:          {repr: "category", code: 'y', stack: StackInt, def: &minusOne, config: true},
	Colour:            {repr: "colour", code: 'C', stack: StackInt, def: &minusOne},
	IDKit:             {repr: "idkit", code: 'K', stack: StackInt, def: &minusOne},
	Synth:             {repr: "synth", code: 'P', stack: StackInt, def: &minusOne},
	MapArea:           {repr: "wma", code: '`', stack: StackInt, def: &minusOne, config: true},
	MapElement:        {repr: "mapelement", code: '\u00b5', stack: StackInt, def: &minusOne, config: true},
	Texture:           {repr: "texture", code: 'x', stack: StackInt, def: &minusOne},
	DBRow:             {repr: "dbrow", code: '\u00d0', stack: StackInt, def: &minusOne},
	LocShape:          {repr: "locshape", code: 'H', stack: StackInt, def: &minusOne},
	ChatPhrase:        {repr: "chatphrase", code: 'e', stack: StackInt, def: &minusOne},
	BAS:               {repr: "bas", code: '\u20ac', stack: StackInt, def: &minusOne},
	NPCUID:            {repr: "npc_uid", code: 'u', stack: StackInt, def: &minusOne},
	TopLevelInterface: {repr: "toplevelinterface", code: 'F', stack: StackInt, def: &minusOne},
	OverlayInterface:  {repr: "overlayinterface", code: 'L', stack: StackInt, def: &minusOne},
	ClientInterface:   {repr: "clientinterface", code: '\u00a9', stack: StackInt, def: &minusOne},
}

var (
	byRepresentation = map[string]Primitive{}
	byLiteral        = map[string]Primitive{}
)

func init() {
	for p := Primitive(0); p < primitiveCount; p++ {
		info := primitives[p]
		if info.repr == "" {
			continue
		}
		byLiteral[info.repr] = p
		if p.IsReferencable() {
			byRepresentation[info.repr] = p
		}
	}
}

// Lookup finds a referencable primitive by its source spelling.
func Lookup(name string) (Primitive, bool) {
	p, ok := byRepresentation[name]
	return p, ok
}

// LookupLiteral finds any primitive that has a spelling, including meta types.
func LookupLiteral(name string) (Primitive, bool) {
	p, ok := byLiteral[name]
	return p, ok
}

func (p Primitive) isType() {}

func (p Primitive) String() string {
	if p == Null {
		return "null"
	}
	if p < primitiveCount {
		return primitives[p].repr
	}
	return "Primitive(?)"
}

// Representation returns the source spelling, empty for NULL.
func (p Primitive) Representation() string { return primitives[p].repr }

// Code is the single-character descriptor used in hook signatures.
func (p Primitive) Code() rune { return primitives[p].code }

func (p Primitive) StackType() StackType { return primitives[p].stack }

// Default returns the value an undeclared local of this type starts with.
func (p Primitive) Default() (Value, bool) {
	if d := primitives[p].def; d != nil {
		return *d, true
	}
	return Value{}, false
}

func (p Primitive) IsDeclarable() bool { return primitives[p].stack != StackNone }

func (p Primitive) IsReferencable() bool {
	return p != TypeLit && primitives[p].repr != ""
}

func (p Primitive) IsArrayable() bool {
	return p != Boolean && primitives[p].stack == StackInt
}

func (p Primitive) IsNullable() bool {
	if primitives[p].stack != StackInt {
		return false
	}
	return p != Null && p != Param
}

func (p Primitive) IsConfig() bool { return primitives[p].config }
