package ir

// This file provides the main entry points for the IR system: reading
// textual IR into a Module and printing it back.

import (
	"localopts/grammar"
	"localopts/internal/errors"
)

// ParseModule parses and builds IR text. Syntax errors stop at the first
// offending token; semantic diagnostics are collected for the whole file.
func ParseModule(filename, source string) (*Module, []errors.CompilerError) {
	src, err := grammar.ParseString(filename, source)
	if err != nil {
		return nil, []errors.CompilerError{grammar.Diagnostic(err)}
	}
	return Build(filename, src)
}

// PrintModule returns the textual form of m
func PrintModule(m *Module) string {
	return Print(m)
}
