// Package fuzztests houses Go fuzz harnesses for the RuneScript front end
// (source -> lexer -> parser -> analyzer). They guard against panics and
// hangs on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
