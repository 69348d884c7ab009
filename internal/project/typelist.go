package project

import (
	"fmt"
	"strings"

	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// parseTypes reads a type field that holds either one name or an array of
// them. A missing field gives nil.
func parseTypes(v any) ([]types.Type, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		t, err := parseType(v)
		if err != nil {
			return nil, err
		}
		return []types.Type{t}, nil
	case []any:
		out := make([]types.Type, 0, len(v))
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("type name must be a string, got %T", item)
			}
			t, err := parseType(name)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a type name or a list of them, got %T", v)
}

// parseOptionalType maps an empty name to Undefined.
func parseOptionalType(name string) (types.Primitive, error) {
	if name == "" {
		return types.Undefined, nil
	}
	return parseType(name)
}

// parseType accepts source spellings and their upper-case enum forms.
func parseType(name string) (types.Primitive, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "coordgrid" {
		return types.Coordgrid, nil
	}
	if p, ok := types.LookupLiteral(n); ok {
		return p, nil
	}
	return types.Undefined, fmt.Errorf("unknown type %q", name)
}
