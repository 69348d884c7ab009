package codegen

import (
	"strconv"
	"strings"
)

// SwitchCase maps a set of keys to the block that handles them.
type SwitchCase struct {
	Keys  []int32
	Label Label
}

// SwitchTable is the jump table referenced by one SWITCH instruction.
type SwitchTable struct {
	ID    int
	Cases []SwitchCase
}

func (t *SwitchTable) String() string {
	var sb strings.Builder
	sb.WriteString("table#")
	sb.WriteString(strconv.Itoa(t.ID))
	sb.WriteString(" {")
	for i, c := range t.Cases {
		if i > 0 {
			sb.WriteString(", ")
		}
		for j, k := range c.Keys {
			if j > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(strconv.FormatInt(int64(k), 10))
		}
		sb.WriteString(": ")
		sb.WriteString(c.Label.Name)
	}
	sb.WriteByte('}')
	return sb.String()
}

type switchMap struct {
	tables []*SwitchTable
}

func (m *switchMap) generate(cases []SwitchCase) *SwitchTable {
	t := &SwitchTable{ID: len(m.tables), Cases: cases}
	m.tables = append(m.tables, t)
	return t
}
