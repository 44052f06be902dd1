package errors

// Error codes for the localopts toolchain
// These codes are used in error messages and documentation
// to provide consistent error identification across the reader, the
// pass registry and the CLI.
//
// Error code ranges:
// E0100-E0199: IR syntax errors
// E0200-E0299: IR definition and reference errors
// E0300-E0399: IR type errors
// E0400-E0499: Pass and pipeline errors
// E0800-E0899: Warning codes

const (
	// E0100: Text could not be tokenized or does not match the IR grammar
	ErrorSyntax = "E0100"

	// E0101: Literal cannot be represented in the expected type
	ErrorInvalidLiteral = "E0101"

	// E0102: Opcode is not known to the reader
	ErrorUnknownOpcode = "E0102"

	// E0200: Local value used but never defined
	ErrorUndefinedValue = "E0200"

	// E0201: Branch target does not name a block of the function
	ErrorUndefinedLabel = "E0201"

	// E0202: Call or reference to a function that is neither defined nor declared
	ErrorUndefinedFunction = "E0202"

	// E0203: A name is defined twice in the same scope
	ErrorDuplicateDefinition = "E0203"

	// E0204: Instruction has the wrong number or shape of operands
	ErrorInvalidOperands = "E0204"

	// E0205: Value used by an instruction at or before its definition in the same block
	ErrorUseBeforeDefinition = "E0205"

	// E0300: Type name is not known
	ErrorUnknownType = "E0300"

	// E0301: Operand type does not match the expected type
	ErrorTypeMismatch = "E0301"

	// E0400: Pass name not present in the registry
	ErrorUnknownPass = "E0400"

	// E0401: Pass registered twice under the same name
	ErrorDuplicatePass = "E0401"

	// W0001: Function declares no blocks but is marked as a definition
	WarningEmptyFunction = "W0001"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorSyntax:
		return "Input does not match the IR grammar"
	case ErrorInvalidLiteral:
		return "Literal cannot be represented in the expected type"
	case ErrorUnknownOpcode:
		return "Instruction opcode is not supported"
	case ErrorUndefinedValue:
		return "Value is used but not defined in the function"
	case ErrorUndefinedLabel:
		return "Branch target is not a block of the function"
	case ErrorUndefinedFunction:
		return "Function is referenced but neither defined nor declared"
	case ErrorDuplicateDefinition:
		return "Name is defined more than once"
	case ErrorInvalidOperands:
		return "Instruction has an invalid operand list"
	case ErrorUseBeforeDefinition:
		return "Value is used before its definition in the same block"
	case ErrorUnknownType:
		return "Type name is not supported"
	case ErrorTypeMismatch:
		return "Operand type does not match the expected type"
	case ErrorUnknownPass:
		return "Pass is not registered"
	case ErrorDuplicatePass:
		return "Pass name is already registered"
	case WarningEmptyFunction:
		return "Function definition has no basic blocks"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code >= "E0800" && code < "E0900" || len(code) > 0 && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0200":
		return "Syntax"
	case code >= "E0200" && code < "E0300":
		return "Definition"
	case code >= "E0300" && code < "E0400":
		return "Type System"
	case code >= "E0400" && code < "E0500":
		return "Pipeline"
	case IsWarning(code):
		return "Warning"
	default:
		return "Unknown"
	}
}
