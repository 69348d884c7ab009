package token

var keywords = map[string]Kind{
	"true":     KwTrue,
	"false":    KwFalse,
	"null":     KwNull,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"do":       KwDo,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"case":     KwCase,
	"default":  KwDefault,
	"calc":     KwCalc,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
