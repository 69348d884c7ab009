package token_test

import (
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/token"
)

func TestKindStrings(t *testing.T) {
	for k := token.Invalid; k <= token.OrOr; k++ {
		if k.String() == "Kind(?)" {
			t.Errorf("kind %d has no name", k)
		}
	}
}

func TestKindByText(t *testing.T) {
	tests := map[string]token.Kind{"~": token.Tilde, "@": token.At, "&&": token.AndAnd, "(": token.LParen}
	for text, want := range tests {
		got, ok := token.KindByText(text)
		if !ok || got != want {
			t.Errorf("KindByText(%q) = %v,%v; want %v", text, got, ok, want)
		}
	}
	if _, ok := token.KindByText("if"); ok {
		t.Error("keywords are not operators")
	}
}

func TestClassifiers(t *testing.T) {
	if !(token.Token{Kind: token.KwCalc}).IsKeyword() {
		t.Error("calc is a keyword")
	}
	if (token.Token{Kind: token.TypeName}).IsKeyword() {
		t.Error("type words are not keywords")
	}
	if !(token.Token{Kind: token.TypeName}).IsName() {
		t.Error("type words are usable as names")
	}
	if !(token.Token{Kind: token.RParen}).EndsOperand() || (token.Token{Kind: token.Plus}).EndsOperand() {
		t.Error("EndsOperand misclassifies punctuation")
	}
	if kw, ok := token.LookupKeyword("while"); !ok || kw != token.KwWhile {
		t.Error("while must be a keyword")
	}
}
