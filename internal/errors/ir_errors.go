package errors

import (
	"fmt"
	"strings"
)

// DiagnosticBuilder provides a fluent interface for creating IR diagnostics with suggestions
type DiagnosticBuilder struct {
	err CompilerError
}

// NewDiagnostic creates a new error builder
func NewDiagnostic(code, message string, pos Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewWarning creates a new warning builder
func NewWarning(code, message string, pos Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *DiagnosticBuilder) WithReplacement(message, replacement string, pos Position, length int) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

// withDidYouMean appends a "did you mean" suggestion when candidates exist
func (b *DiagnosticBuilder) withDidYouMean(prefix string, similar []string) *DiagnosticBuilder {
	switch len(similar) {
	case 0:
		return b
	case 1:
		return b.WithSuggestion(fmt.Sprintf("did you mean '%s%s'?", prefix, similar[0]))
	default:
		quoted := make([]string, len(similar))
		for i, s := range similar {
			quoted[i] = prefix + s
		}
		return b.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(quoted, "', '")))
	}
}

// SyntaxError wraps a grammar failure reported by the parser
func SyntaxError(message string, pos Position) CompilerError {
	return NewDiagnostic(ErrorSyntax, message, pos).
		WithHelp("see `localopt --help` for the accepted IR subset").
		Build()
}

// UndefinedValue creates an error for a %local that has no definition
func UndefinedValue(name string, pos Position, known []string) CompilerError {
	b := NewDiagnostic(ErrorUndefinedValue, fmt.Sprintf("use of undefined value '%%%s'", name), pos).
		WithLength(len(name) + 1).
		withDidYouMean("%", FindSimilarNames(name, known))
	if len(b.err.Suggestions) == 0 {
		b = b.WithNote("values must be defined by an instruction or a function parameter")
	}
	return b.Build()
}

// UndefinedLabel creates an error for a branch to an unknown block
func UndefinedLabel(name string, pos Position, labels []string) CompilerError {
	return NewDiagnostic(ErrorUndefinedLabel, fmt.Sprintf("use of undefined label '%%%s'", name), pos).
		WithLength(len(name) + 1).
		withDidYouMean("%", FindSimilarNames(name, labels)).
		Build()
}

// UndefinedFunction creates an error for calls to unknown functions
func UndefinedFunction(name string, pos Position, functions []string) CompilerError {
	return NewDiagnostic(ErrorUndefinedFunction, fmt.Sprintf("function '@%s' is neither defined nor declared", name), pos).
		WithLength(len(name) + 1).
		withDidYouMean("@", FindSimilarNames(name, functions)).
		WithHelp(fmt.Sprintf("add 'declare <type> @%s(...)' to reference an external function", name)).
		Build()
}

// DuplicateDefinition creates an error for a redefined value, block or function
func DuplicateDefinition(kind, name string, pos Position) CompilerError {
	return NewDiagnostic(ErrorDuplicateDefinition, fmt.Sprintf("redefinition of %s '%s'", kind, name), pos).
		WithLength(len(name)).
		WithSuggestion(fmt.Sprintf("rename the duplicate '%s' to a unique name", name)).
		WithNote("names must be unique within their scope").
		Build()
}

// UseBeforeDefinition creates an error for an operand defined by the using
// instruction itself or by a later instruction of the same block
func UseBeforeDefinition(name string, pos Position) CompilerError {
	return NewDiagnostic(ErrorUseBeforeDefinition, fmt.Sprintf("value '%%%s' is used before it is defined", name), pos).
		WithLength(len(name) + 1).
		WithNote("an instruction can only use values defined earlier in its block or in another block").
		Build()
}

// UnknownType creates an error for unsupported type names
func UnknownType(name string, pos Position, known []string) CompilerError {
	return NewDiagnostic(ErrorUnknownType, fmt.Sprintf("unknown type '%s'", name), pos).
		WithLength(len(name)).
		withDidYouMean("", FindSimilarNames(name, known)).
		WithNote("supported types are iN, half, float, double, void and ptr").
		Build()
}

// UnknownOpcode creates an error for unsupported instructions
func UnknownOpcode(name string, pos Position, known []string) CompilerError {
	return NewDiagnostic(ErrorUnknownOpcode, fmt.Sprintf("unknown instruction '%s'", name), pos).
		WithLength(len(name)).
		withDidYouMean("", FindSimilarNames(name, known)).
		Build()
}

// TypeMismatch creates an error for an operand of the wrong type
func TypeMismatch(expected, actual string, pos Position) CompilerError {
	b := NewDiagnostic(ErrorTypeMismatch, fmt.Sprintf("type mismatch: expected %s, found %s", expected, actual), pos)
	if isIntegerType(expected) != isIntegerType(actual) {
		b = b.WithNote("integer and floating point values cannot be mixed in one instruction")
	}
	return b.Build()
}

// InvalidLiteral creates an error for a constant that does not fit its type
func InvalidLiteral(literal, typeName string, pos Position) CompilerError {
	return NewDiagnostic(ErrorInvalidLiteral, fmt.Sprintf("invalid %s literal '%s'", typeName, literal), pos).
		WithLength(len(literal)).
		Build()
}

// InvalidOperands creates an error for malformed operand lists
func InvalidOperands(message string, pos Position) CompilerError {
	return NewDiagnostic(ErrorInvalidOperands, message, pos).Build()
}

// UnknownPass creates an error for a pass name that is not registered
func UnknownPass(name string, registered []string) CompilerError {
	return NewDiagnostic(ErrorUnknownPass, fmt.Sprintf("unknown pass '%s'", name), Position{}).
		withDidYouMean("", FindSimilarNames(name, registered)).
		WithNote(fmt.Sprintf("registered passes: %s", strings.Join(registered, ", "))).
		Build()
}

// DuplicatePass creates an error for registering the same pass name twice
func DuplicatePass(name string) CompilerError {
	return NewDiagnostic(ErrorDuplicatePass, fmt.Sprintf("pass '%s' is already registered", name), Position{}).Build()
}

// EmptyFunction warns about a definition with no blocks
func EmptyFunction(name string, pos Position) CompilerError {
	return NewWarning(WarningEmptyFunction, fmt.Sprintf("function '@%s' is defined with an empty body", name), pos).
		WithSuggestion(fmt.Sprintf("use 'declare' for @%s if it has no body", name)).
		Build()
}

func isIntegerType(name string) bool {
	return len(name) > 1 && name[0] == 'i'
}

// FindSimilarNames returns the candidates within edit distance 2 of target
func FindSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate != target && levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
