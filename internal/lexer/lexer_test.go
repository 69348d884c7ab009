package lexer_test

import (
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/lexer"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
	"github.com/waleedyaseen/RuneScript-sub000/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes,
	})
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter, *source.File) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs2", []byte(input))
	file := fs.Get(fileID)
	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter, file
}

func kindsOf(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, rep, _ := makeTestLexer(input)
	toks := lx.All()
	got := kindsOf(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got kinds %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("%q: unexpected diagnostics: %+v", input, rep.diagnostics)
	}
	return toks
}

func TestScriptHeader(t *testing.T) {
	expectKinds(t, "[proc,foo](int $a, objarray $b)(string)",
		token.LBracket, token.Ident, token.Comma, token.Ident, token.RBracket,
		token.LParen, token.TypeName, token.Dollar, token.Ident, token.Comma,
		token.ArrayTypeName, token.Dollar, token.Ident, token.RParen,
		token.LParen, token.TypeName, token.RParen)
}

func TestWordClassification(t *testing.T) {
	tests := []struct {
		in   string
		kind token.Kind
	}{
		{"if", token.KwIf},
		{"calc", token.KwCalc},
		{"def_int", token.Define},
		{"def_coord", token.Define},
		{"def_hook", token.Ident},
		{"switch_obj", token.Switch},
		{"namedobj", token.TypeName},
		{"intarray", token.ArrayTypeName},
		{"stringarray", token.Ident},
		{"my_script", token.Ident},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			toks := expectKinds(t, tt.in, tt.kind)
			if toks[0].Text != tt.in {
				t.Fatalf("text = %q", toks[0].Text)
			}
		})
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		in   string
		kind token.Kind
		text string
	}{
		{"123", token.IntLit, "123"},
		{"-5", token.IntLit, "-5"},
		{"0x1F", token.IntLit, "0x1F"},
		{"10L", token.LongLit, "10"},
		{"-0x10L", token.LongLit, "-0x10"},
		{"0_50_50_10_20", token.CoordLit, "0_50_50_10_20"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			toks := expectKinds(t, tt.in, tt.kind)
			if toks[0].Text != tt.text {
				t.Fatalf("text = %q, want %q", toks[0].Text, tt.text)
			}
		})
	}
}

func TestMinusAfterOperand(t *testing.T) {
	expectKinds(t, "$a-1", token.Dollar, token.Ident, token.Minus, token.IntLit)
	expectKinds(t, "(1)-2", token.LParen, token.IntLit, token.RParen, token.Minus, token.IntLit)
	expectKinds(t, "= -2", token.Equal, token.IntLit)
	expectKinds(t, "3 -2", token.IntLit, token.Minus, token.IntLit)
}

func TestOperators(t *testing.T) {
	expectKinds(t, "<= >= && || < > = ! & | ~ @ ^ % .",
		token.LtEq, token.GtEq, token.AndAnd, token.OrOr, token.Lt, token.Gt,
		token.Equal, token.Bang, token.Amp, token.Pipe, token.Tilde, token.At,
		token.Caret, token.Percent, token.Dot)
}

func TestComments(t *testing.T) {
	expectKinds(t, "a // line\n/* block\n * more */ b", token.Ident, token.Ident)
}

func TestStringEscapes(t *testing.T) {
	toks := expectKinds(t, `"a\"b\\c\<d\>"`, token.StringLit)
	if toks[0].Text != `a"b\c<d>` {
		t.Fatalf("text = %q", toks[0].Text)
	}
	if toks[0].Span.Start != 0 || int(toks[0].Span.End) != len(`"a\"b\\c\<d\>"`) {
		t.Fatalf("string span must include quotes, got %v", toks[0].Span)
	}
}

func TestInterpolation(t *testing.T) {
	toks := expectKinds(t, `"Hi <$name>!"`,
		token.ConcatBegin, token.StringLit, token.Dollar, token.Ident,
		token.StringLit, token.ConcatEnd)
	if toks[1].Text != "Hi " || toks[4].Text != "!" {
		t.Fatalf("segments = %q, %q", toks[1].Text, toks[4].Text)
	}
}

func TestInterpolationEmptySegments(t *testing.T) {
	expectKinds(t, `"<$a><$b>"`,
		token.ConcatBegin, token.Dollar, token.Ident, token.Dollar, token.Ident, token.ConcatEnd)
}

func TestNestedInterpolation(t *testing.T) {
	expectKinds(t, `"a<tostring("b<$x>")>"`,
		token.ConcatBegin, token.StringLit, token.Ident, token.LParen,
		token.ConcatBegin, token.StringLit, token.Dollar, token.Ident, token.ConcatEnd,
		token.RParen, token.ConcatEnd)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		in   string
		code diag.Code
	}{
		{`"abc`, diag.LexUnterminatedString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{"`", diag.LexUnknownChar},
		{`"\q"`, diag.LexBadEscape},
		{"0x", diag.LexBadNumber},
		{`"a<$b`, diag.LexUnterminatedInterpolation},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lx, rep, _ := makeTestLexer(tt.in)
			lx.All()
			if len(rep.diagnostics) == 0 {
				t.Fatalf("no diagnostics for %q", tt.in)
			}
			if rep.diagnostics[0].Code != tt.code {
				t.Fatalf("code = %v, want %v", rep.diagnostics[0].Code, tt.code)
			}
		})
	}
}

func TestSubLexerKeepsFileOffsets(t *testing.T) {
	src := `cc_sethook("myhook($a){%v}")`
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("hook.cs2", []byte(src)))
	start := uint32(12)
	end := uint32(len(src) - 2)
	lx := lexer.NewSub(file, start, end, lexer.Options{})
	toks := lx.All()
	want := []token.Kind{
		token.Ident, token.LParen, token.Dollar, token.Ident, token.RParen,
		token.LBrace, token.Percent, token.Ident, token.RBrace, token.EOF,
	}
	got := kindsOf(toks)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if toks[0].Span.Start != start || toks[0].Text != "myhook" {
		t.Fatalf("first token = %+v", toks[0])
	}
	if toks[len(toks)-1].Span.Start != end {
		t.Fatalf("EOF must sit at the range end, got %v", toks[len(toks)-1].Span)
	}
}

func TestStreamPeek(t *testing.T) {
	lx, _, _ := makeTestLexer("a b c")
	s := lexer.NewStream(lx)
	if s.Peek(2).Text != "c" || s.Peek(0).Text != "a" {
		t.Fatalf("peek mismatch")
	}
	if s.Next().Text != "a" || s.Next().Text != "b" || s.Next().Text != "c" {
		t.Fatal("next mismatch")
	}
	if s.Next().Kind != token.EOF || s.Next().Kind != token.EOF || s.Peek(5).Kind != token.EOF {
		t.Fatal("EOF must repeat")
	}
}
