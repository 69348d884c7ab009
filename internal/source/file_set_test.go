package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.cs2", []byte("[proc,a]"), 0)
	id2 := fs.Add("test.cs2", []byte("[proc,b]"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("test.cs2")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "[proc,a]" {
		t.Errorf("old version content = %q", got)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cs2", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{2, 1, 3}, // сам '\n' принадлежит первой строке
		{3, 2, 1},
		{6, 3, 1},
		{7, 4, 1},
		{8, 4, 2},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start.Line != tt.line || start.Col != tt.col {
			t.Errorf("offset %d: got %d:%d, want %d:%d", tt.off, start.Line, start.Col, tt.line, tt.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.cs2", []byte("first\nsecond\nthird")))
	for i, want := range []string{"", "first", "second", "third", ""} {
		if got := f.GetLine(uint32(i)); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestAddSourceNormalizes(t *testing.T) {
	fs := NewFileSet()
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\r\n")...)
	id, err := fs.AddSource("x.cs2", raw, EncodingUTF8)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
}

func TestLoadWindows1252(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin.cs2")
	// 0xA3 в cp1252 это знак фунта
	if err := os.WriteFile(path, []byte{'"', 0xA3, '5', '"'}, 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.LoadWith(path, EncodingWindows1252)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if string(f.Content) != "\"£5\"" {
		t.Errorf("decoded content = %q", f.Content)
	}
	if f.Flags&FileDecoded == 0 {
		t.Error("expected FileDecoded flag")
	}
}

func TestParseEncoding(t *testing.T) {
	for in, want := range map[string]Encoding{"": EncodingUTF8, "UTF-8": EncodingUTF8, "cp1252": EncodingWindows1252} {
		got, err := ParseEncoding(in)
		if err != nil || got != want {
			t.Errorf("ParseEncoding(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseEncoding("ebcdic"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got.Start != 2 || got.End != 8 {
		t.Errorf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Errorf("cross-file Cover changed span: %v", got)
	}
	if !a.Cover(b).Contains(b) {
		t.Error("cover must contain its operand")
	}
}
