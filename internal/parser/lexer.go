package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// MLTLLexer tokenizes both surface syntaxes this package accepts: plain
// MLTL (`*.mltl`) and the richer structured syntax (`*.c2po`) share one
// token set and one grammar.
var MLTLLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Float", `[0-9]+\.[0-9]+`, nil},
		{"Integer", `0x[0-9a-fA-F]+|[0-9]+`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Operator", `(<->|->|==|!=|<=|>=|&&|\|\||<<|>>|[!&|^~<>+\-*/%=])`, nil},
		{"Punctuation", `[\[\],:;(){}.]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
