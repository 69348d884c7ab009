package project

import (
	"fmt"
	"maps"
	"slices"

	"fortio.org/safecast"

	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
	"github.com/waleedyaseen/RuneScript-sub000/internal/symbols"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

type instructionEntry struct {
	Opcode int  `toml:"opcode"`
	Large  bool `toml:"large"`
}

type triggerEntry struct {
	Operator         string `toml:"operator"`
	Opcode           string `toml:"opcode"`
	SupportArguments bool   `toml:"support_arguments"`
	Arguments        any    `toml:"arguments"`
	SupportReturns   bool   `toml:"support_returns"`
	Returns          any    `toml:"returns"`
	Hook             bool   `toml:"hook"`
	Extension        string `toml:"extension"`
}

type commandEntry struct {
	Opcode      int    `toml:"opcode"`
	Type        any    `toml:"type"`
	Arguments   any    `toml:"arguments"`
	Alternative bool   `toml:"alternative"`
	Hook        bool   `toml:"hook"`
	HookType    string `toml:"hooktype"`
}

type configEntry struct {
	ID          int32  `toml:"id"`
	Name        string `toml:"name"`
	ContentType string `toml:"type"`
}

type variableEntry struct {
	ID     int32  `toml:"id"`
	Domain string `toml:"domain"`
	Type   string `toml:"type"`
}

type constantEntry struct {
	Type  string `toml:"type"`
	Value any    `toml:"value"`
}

type scriptEntry struct {
	ID        int32  `toml:"id"`
	Name      string `toml:"name"`
	Trigger   string `toml:"trigger"`
	Type      any    `toml:"type"`
	Arguments any    `toml:"arguments"`
}

// sorted keeps definition order stable across runs.
func sorted[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

func (l *loader) instructions(path string) error {
	var entries map[string]instructionEntry
	if err := l.decode("instructions", path, &entries); err != nil {
		return err
	}
	for _, name := range sorted(entries) {
		op, ok := codegen.LookupOpcode(name)
		if !ok {
			l.warn(path, name, "unknown core opcode")
			continue
		}
		e := entries[name]
		l.env.Instructions.set(op, Instruction{Code: e.Opcode, Large: e.Large})
	}
	return nil
}

func (l *loader) triggers(path string) error {
	var entries map[string]triggerEntry
	if err := l.decode("triggers", path, &entries); err != nil {
		return err
	}
	hook := ""
	for _, name := range sorted(entries) {
		e := entries[name]
		if e.Opcode != "" {
			if _, ok := codegen.LookupOpcode(e.Opcode); !ok {
				return fmt.Errorf("%s: trigger %s: unknown opcode %q", path, name, e.Opcode)
			}
		}
		if e.Hook {
			if hook != "" {
				l.warn(path, name, "multiple hook triggers, keeping "+hook)
				e.Hook = false
			} else {
				hook = name
			}
		}
		args, err := parseTypes(e.Arguments)
		if err != nil {
			return fmt.Errorf("%s: trigger %s arguments: %w", path, name, err)
		}
		returns, err := parseTypes(e.Returns)
		if err != nil {
			return fmt.Errorf("%s: trigger %s returns: %w", path, name, err)
		}
		tr := symbols.Trigger{
			Name:             name,
			Operator:         e.Operator,
			Opcode:           e.Opcode,
			SupportArguments: e.SupportArguments,
			Arguments:        args,
			SupportReturns:   e.SupportReturns,
			Returns:          returns,
			Hook:             e.Hook,
		}
		if err := l.env.Tables.DefineTrigger(l.root, tr); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if e.Extension != "" {
			l.env.extensions[name] = e.Extension
		}
	}
	return nil
}

func (l *loader) commands(path string) error {
	var entries map[string]commandEntry
	if err := l.decode("commands", path, &entries); err != nil {
		return err
	}
	for _, name := range sorted(entries) {
		e := entries[name]
		result, err := parseTypes(e.Type)
		if err != nil {
			return fmt.Errorf("%s: command %s type: %w", path, name, err)
		}
		args, err := parseTypes(e.Arguments)
		if err != nil {
			return fmt.Errorf("%s: command %s arguments: %w", path, name, err)
		}
		hookType, err := parseOptionalType(e.HookType)
		if err != nil {
			return fmt.Errorf("%s: command %s hooktype: %w", path, name, err)
		}
		cmd := symbols.Command{
			Name:        name,
			Opcode:      e.Opcode,
			Type:        types.NewTuple(result...),
			Args:        args,
			Hook:        e.Hook,
			HookType:    hookType,
			Alternative: e.Alternative,
		}
		if err := l.env.Tables.DefineCommand(l.root, cmd); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// configs loads one config_<type> file. Graphics go to their own namespace,
// interface entries are also registered for component references.
func (l *loader) configs(kind types.Primitive, path string) error {
	var entries map[string]configEntry
	if err := l.decode("config_"+kind.String(), path, &entries); err != nil {
		return err
	}
	for _, key := range sorted(entries) {
		e := entries[key]
		content, err := parseOptionalType(e.ContentType)
		if err != nil {
			return fmt.Errorf("%s: config %s: %w", path, key, err)
		}
		c := symbols.Config{Name: key, Type: kind, ID: e.ID, ContentType: content}
		if e.Name != "" {
			c.Name = e.Name
		}
		switch kind {
		case types.Graphic:
			err = l.env.Tables.DefineGraphic(l.root, c)
		case types.Component:
			err = l.env.Tables.DefineInterface(l.root, c)
		default:
			err = l.env.Tables.DefineConfig(l.root, c)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func (l *loader) variables(path string) error {
	var entries map[string]variableEntry
	if err := l.decode("variables", path, &entries); err != nil {
		return err
	}
	for _, name := range sorted(entries) {
		e := entries[name]
		domain, err := symbols.ParseDomain(e.Domain)
		if err != nil {
			return fmt.Errorf("%s: variable %s: %w", path, name, err)
		}
		t, err := parseType(e.Type)
		if err != nil {
			return fmt.Errorf("%s: variable %s: %w", path, name, err)
		}
		v := symbols.Variable{Name: name, Domain: domain, Type: t, ID: e.ID}
		if err := l.env.Tables.DefineVariable(l.root, v); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func (l *loader) constants(path string, runtime bool) error {
	kind := "constants"
	if runtime {
		kind = "runtime_constants"
	}
	var entries map[string]constantEntry
	if err := l.decode(kind, path, &entries); err != nil {
		return err
	}
	for _, name := range sorted(entries) {
		e := entries[name]
		t, err := parseType(e.Type)
		if err != nil {
			return fmt.Errorf("%s: constant %s: %w", path, name, err)
		}
		v, err := constantValue(t, e.Value)
		if err != nil {
			return fmt.Errorf("%s: constant %s: %w", path, name, err)
		}
		c := symbols.Constant{Name: name, Type: t, Value: v}
		if runtime {
			err = l.env.Tables.DefineRuntimeConstant(l.root, c)
		} else {
			err = l.env.Tables.DefineConstant(l.root, c)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func constantValue(t types.Primitive, raw any) (types.Value, error) {
	switch t.StackType() {
	case types.StackInt:
		switch v := raw.(type) {
		case int64:
			n, err := safecast.Conv[int32](v)
			if err != nil {
				return types.Value{}, fmt.Errorf("value %d out of int range: %w", v, err)
			}
			return types.IntValue(n), nil
		case bool:
			if v {
				return types.IntValue(1), nil
			}
			return types.IntValue(0), nil
		}
	case types.StackString:
		if v, ok := raw.(string); ok {
			return types.StringValue(v), nil
		}
	case types.StackLong:
		if v, ok := raw.(int64); ok {
			return types.LongValue(v), nil
		}
	}
	return types.Value{}, fmt.Errorf("value %v (%T) does not fit type %s", raw, raw, t)
}

func (l *loader) scripts(path string) error {
	var entries map[string]scriptEntry
	if err := l.decode("scripts", path, &entries); err != nil {
		return err
	}
	for _, key := range sorted(entries) {
		e := entries[key]
		if _, ok := l.env.Tables.LookupTrigger(l.root, e.Trigger); !ok {
			return fmt.Errorf("%s: script %s: unknown trigger %q", path, key, e.Trigger)
		}
		name := e.Name
		if name == "" {
			name = key
		}
		params, err := parseTypes(e.Arguments)
		if err != nil {
			return fmt.Errorf("%s: script %s arguments: %w", path, key, err)
		}
		returns, err := parseTypes(e.Type)
		if err != nil {
			return fmt.Errorf("%s: script %s type: %w", path, key, err)
		}
		s := &symbols.Script{
			Trigger:    e.Trigger,
			Name:       name,
			Params:     params,
			Returns:    types.NewTuple(returns...),
			ID:         e.ID,
			Predefined: true,
		}
		if err := l.env.Tables.DefineScript(l.root, s); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
