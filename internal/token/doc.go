// Package token defines lexical token kinds for rsc.
// Invariants:
//   - Token.Span covers the lexeme in the original file, delimiters included.
//   - Token.Text is the decoded value: escapes resolved for strings, the 'L'
//     suffix dropped for longs, the sigil-free word for identifiers.
//   - Type words (int, obj, coord, ...) and the def_/switch_ prefixed words are
//     classified by the lexer against the type table, so the parser sees
//     TypeName, ArrayTypeName, Define and Switch directly.
//   - Comments never reach the token stream.
package token
