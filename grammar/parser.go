package grammar

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"

	"localopts/internal/errors"
)

var parser = participle.MustBuild[Module](
	participle.Lexer(IRLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3),
)

// ParseString parses IR text. On failure the returned error is a
// participle.Error carrying the position of the offending token.
func ParseString(filename, source string) (*Module, error) {
	return parser.ParseString(filename, source)
}

// ParseFile reads and parses an IR file from disk.
func ParseFile(path string) (*Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseString(path, string(source))
}

// Diagnostic converts a parse failure into a CompilerError that the
// error reporter can render with a caret under the offending token.
func Diagnostic(err error) errors.CompilerError {
	pe, ok := err.(participle.Error)
	if !ok {
		return errors.SyntaxError(err.Error(), errors.Position{})
	}

	pos := pe.Position()
	return errors.SyntaxError(strings.TrimSpace(pe.Message()), errors.Position{
		Filename: pos.Filename,
		Line:     pos.Line,
		Column:   pos.Column,
	})
}
