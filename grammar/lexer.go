package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var IRLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `;[^\n]*`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},

		// Named values: @global and %local
		{"Global", `@[-a-zA-Z$._0-9]+`, nil},
		{"Local", `%[-a-zA-Z$._0-9]+`, nil},

		{"Ellipsis", `\.\.\.`, nil},

		// Float literals (must come before integers)
		{"Float", `[-+]?[0-9]+\.[0-9]*([eE][-+]?[0-9]+)?|[-+]?[0-9]+[eE][-+]?[0-9]+`, nil},

		// Integer literals, decimal or hex
		{"Int", `[-+]?(0x[0-9a-fA-F]+|[0-9]+)`, nil},

		// Keywords, opcodes, types and labels
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_.]*`, nil},

		// Punctuation
		{"Punctuation", `[{}(),=:]`, nil},
	},
})
