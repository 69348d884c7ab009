package driver

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
)

func TestObjectImage(t *testing.T) {
	env := defaultEnv(t)
	res := compileOK(t, env, Options{Optimize: true}, inputs("t.cs2",
		`[proc,pick](int $a, string $s)(int) def_int $n = 0; switch_int ($a) { case 1, 2: $n = 1; case default: mes($s); } return($n);`,
	))
	s := res.Scripts()[0]

	var buf bytes.Buffer
	if err := EncodeObject(&buf, s, env.Instructions); err != nil {
		t.Fatalf("EncodeObject: %v", err)
	}
	o, err := DecodeObject(&buf)
	if err != nil {
		t.Fatalf("DecodeObject: %v", err)
	}
	if o.Name != "[proc,pick]" || o.Trigger != "proc" || o.Script != "pick" {
		t.Fatalf("header = %q %q %q", o.Name, o.Trigger, o.Script)
	}
	if !slices.Equal(o.Params, []string{"int", "string"}) || !slices.Equal(o.Returns, []string{"int"}) {
		t.Fatalf("signature = %v -> %v", o.Params, o.Returns)
	}
	if len(o.Switches) != 1 || len(o.Locals) != 3 {
		t.Fatalf("switches=%d locals=%d", len(o.Switches), len(o.Locals))
	}
	for _, b := range o.Blocks {
		for _, in := range b.Instructions {
			if in.Op == "return" && in.Code != env.Instructions.Code(codegen.OpReturn) {
				t.Fatalf("return encoded as %d", in.Code)
			}
			if in.Op == "command" && in.Text == "mes" && in.Kind != OperandCommand {
				t.Fatalf("mes operand kind %d", in.Kind)
			}
		}
	}

	back, err := o.BinaryScript()
	if err != nil {
		t.Fatalf("BinaryScript: %v", err)
	}
	if got, want := listing(t, back), listing(t, s); got != want {
		t.Fatalf("listing differs after decode:\n%s\nwant:\n%s", got, want)
	}
}

func TestDecodeObjectRejects(t *testing.T) {
	data, err := msgpack.Marshal(&Object{Schema: 99, Name: "[proc,x]"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeObject(bytes.NewReader(data)); !errors.Is(err, ErrObjectSchema) {
		t.Fatalf("schema: %v", err)
	}
	if _, err := DecodeObject(bytes.NewReader([]byte{0xc1})); err == nil {
		t.Fatal("garbage decoded")
	}

	broken := &Object{
		Schema: objectSchemaVersion,
		Blocks: []ObjectBlock{{Label: "entry_0", Instructions: []ObjectInstruction{
			{Op: "branch", Kind: OperandLabel, Text: "gone_0"},
		}}},
	}
	if _, err := broken.BinaryScript(); err == nil {
		t.Fatal("dangling label accepted")
	}
}

func TestEncodeObjectNil(t *testing.T) {
	if err := EncodeObject(&bytes.Buffer{}, nil, defaultEnv(t).Instructions); err == nil {
		t.Fatal("nil script encoded")
	}
}
