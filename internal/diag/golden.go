package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics one per line in a stable order:
//
//	ERROR SEM3010 main.cs2:3:9 Duplicate local variable x
//
// Tests compare against this form; `rsc check --format short` prints it.
func FormatShort(diags []Diagnostic, fs *source.FileSet) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		if int(d.Primary.File) >= fs.Len() {
			continue
		}
		start, _ := fs.Resolve(d.Primary)
		rendered = append(rendered, shortDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Path:     fs.Get(d.Primary.File).Path,
			Line:     start.Line,
			Column:   start.Col,
			Message:  d.Message,
		})
	}
	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		return di.Code < dj.Code
	})

	var b strings.Builder
	for i, d := range rendered {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
	}
	return b.String()
}
