package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(f, fs, opts.PathMode), start.Line, start.Col,
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.bold.Sprint(d.Code.ID()),
		p.bold.Sprint(d.Message))

	if len(f.Content) > 0 {
		snippet(w, f, start, end, opts, p)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
			formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}
}

// snippet печатает строку span с контекстом и подчёркиванием.
// Многострочные span подчёркиваются до конца первой строки.
func snippet(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts, p palette) {
	ctx := uint32(max(opts.Context, 0))
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := min(start.Line+ctx, uint32(len(f.LineIdx))+1)
	gutterWidth := len(fmt.Sprint(last))

	for line := first; line <= last; line++ {
		text := clip(expandTabs(f.GetLine(line)), opts.Width)
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, line), text)
		if line != start.Line {
			continue
		}
		raw := f.GetLine(line)
		from := min(int(start.Col-1), len(raw))
		to := len(raw)
		if end.Line == start.Line {
			to = min(int(end.Col-1), len(raw))
		}
		pad := runewidth.StringWidth(expandTabs(raw[:from]))
		width := max(runewidth.StringWidth(expandTabs(raw[from:to])), 1)
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""),
			strings.Repeat(" ", pad), p.caret.Sprint(marker))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
