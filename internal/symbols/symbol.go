package symbols

import (
	"fmt"
	"strings"

	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// Trigger describes one script trigger type such as proc or clientscript.
type Trigger struct {
	Name     string
	Operator string // оператор вызова, например "~"; пусто если вызывать нельзя
	Opcode   string // имя инструкции вызова, например "gosub_with_params"
	// SupportArguments and SupportReturns gate headers entirely. When set,
	// a non-nil Arguments/Returns list must match exactly.
	SupportArguments bool
	Arguments        []types.Type
	SupportReturns   bool
	Returns          []types.Type
	Hook             bool // скрипты этого триггера служат целями хуков
}

// Command is a built-in instruction callable by name.
type Command struct {
	Name        string
	Opcode      int
	Type        types.Type // тип результата
	Args        []types.Type
	Hook        bool
	HookType    types.Primitive // тип элементов transmit-списка, Undefined если его нет
	Alternative bool
}

// HasHookType reports whether hooks passed to this command take a transmit list.
func (c Command) HasHookType() bool { return c.HookType != types.Undefined }

// Config is a named entry of a client config type: obj, enum, graphic and so on.
type Config struct {
	Name        string
	Type        types.Primitive
	ID          int32
	ContentType types.Primitive // для параметров и enum; Undefined если не задан
}

// Constant is a named compile-time value referenced as ^name.
type Constant struct {
	Name  string
	Type  types.Primitive
	Value types.Value
}

// Domain is the storage of a global variable.
type Domain uint8

const (
	DomainPlayer Domain = iota
	DomainPlayerBit
	DomainClientInt
	DomainClientString
)

var domainNames = [...]string{
	DomainPlayer:       "player",
	DomainPlayerBit:    "player_bit",
	DomainClientInt:    "client_int",
	DomainClientString: "client_string",
}

func (d Domain) String() string {
	if int(d) < len(domainNames) {
		return domainNames[d]
	}
	return "domain(?)"
}

func ParseDomain(s string) (Domain, error) {
	for i, name := range domainNames {
		if strings.EqualFold(name, s) {
			return Domain(i), nil
		}
	}
	return 0, fmt.Errorf("unknown variable domain %q", s)
}

// Variable is a global referenced as %name.
type Variable struct {
	Name   string
	Domain Domain
	Type   types.Primitive
	ID     int32
}

// Script is the declared signature of a script.
type Script struct {
	Trigger     string
	Name        string
	Params      []types.Type
	Returns     types.Type
	ID          int32 // -1 пока не назначен
	Annotations map[string]int32
	Predefined  bool
}

// FlatParams returns the parameter types with tuples expanded.
func (s *Script) FlatParams() []types.Type { return types.FlattenAll(s.Params) }

// Key formats the table key "[trigger,name]".
func (s *Script) Key() string { return ScriptKey(s.Trigger, s.Name) }

func (s *Script) String() string { return s.Key() }

func ScriptKey(trigger, name string) string {
	return "[" + trigger + "," + name + "]"
}
