package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident is a name: script, command, config or variable name after a sigil.
	Ident
	IntLit
	LongLit
	CoordLit
	StringLit
	// ConcatBegin opens an interpolated string, ConcatEnd closes it.
	ConcatBegin
	ConcatEnd

	KwTrue
	KwFalse
	KwNull
	KwIf
	KwElse
	KwWhile
	KwDo
	KwReturn
	KwBreak
	KwContinue
	KwCase
	KwDefault
	KwCalc

	// TypeName is a primitive type word such as int or obj.
	TypeName
	// ArrayTypeName is a type word with the array suffix, e.g. intarray.
	ArrayTypeName
	// Define is def_<type>.
	Define
	// Switch is switch_<type>.
	Switch

	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Semicolon // ;
	Colon     // :
	Dollar    // $
	Percent   // % (global variable sigil or modulo)
	Caret     // ^
	Dot       // .
	Tilde     // ~
	At        // @
	Hash      // #

	Equal  // =
	Bang   // ! (not equals)
	Lt     // <
	Gt     // >
	LtEq   // <=
	GtEq   // >=
	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
	Amp    // &
	Pipe   // |
	AndAnd // &&
	OrOr   // ||
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	IntLit:        "IntLit",
	LongLit:       "LongLit",
	CoordLit:      "CoordLit",
	StringLit:     "StringLit",
	ConcatBegin:   "ConcatBegin",
	ConcatEnd:     "ConcatEnd",
	KwTrue:        "true",
	KwFalse:       "false",
	KwNull:        "null",
	KwIf:          "if",
	KwElse:        "else",
	KwWhile:       "while",
	KwDo:          "do",
	KwReturn:      "return",
	KwBreak:       "break",
	KwContinue:    "continue",
	KwCase:        "case",
	KwDefault:     "default",
	KwCalc:        "calc",
	TypeName:      "TypeName",
	ArrayTypeName: "ArrayTypeName",
	Define:        "Define",
	Switch:        "Switch",
	LParen:        "(",
	RParen:        ")",
	LBracket:      "[",
	RBracket:      "]",
	LBrace:        "{",
	RBrace:        "}",
	Comma:         ",",
	Semicolon:     ";",
	Colon:         ":",
	Dollar:        "$",
	Percent:       "%",
	Caret:         "^",
	Dot:           ".",
	Tilde:         "~",
	At:            "@",
	Hash:          "#",
	Equal:         "=",
	Bang:          "!",
	Lt:            "<",
	Gt:            ">",
	LtEq:          "<=",
	GtEq:          ">=",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Amp:           "&",
	Pipe:          "|",
	AndAnd:        "&&",
	OrOr:          "||",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// KindByText looks up a punctuation or operator kind by its spelling.
// Trigger tables name call operators this way ("~", "@").
func KindByText(text string) (Kind, bool) {
	for k := LParen; k <= OrOr; k++ {
		if kindNames[k] == text {
			return k, true
		}
	}
	return Invalid, false
}
