package main

import (
	"errors"
	"strconv"
)

// exitCode ends the process with a code after the command already reported
// everything it had to say.
type exitCode int

func (c exitCode) Error() string { return "exit status " + strconv.Itoa(int(c)) }

const (
	exitOK          exitCode = 0
	exitDiagnostics exitCode = 1
	exitUsage       exitCode = 2
)

// codeOf maps a command error to the process exit status. Anything that is
// not a diagnostics failure is a usage or configuration problem.
func codeOf(err error) int {
	if err == nil {
		return int(exitOK)
	}
	var code exitCode
	if errors.As(err, &code) {
		return int(code)
	}
	return int(exitUsage)
}
