package calc

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Statement is one line of input: an expression, optionally bound to a name.
//
//nolint:govet // participle grammar tags are not standard struct tags
type Statement struct {
	Pos  lexer.Position
	Let  *string `( "let" @Ident "=" )?`
	Expr *Expr   `@@`
}

// Expr is a sum of terms.
//
//nolint:govet // participle grammar tags are not standard struct tags
type Expr struct {
	Pos  lexer.Position
	Left *Term     `@@`
	Rest []*OpTerm `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type OpTerm struct {
	Pos   lexer.Position
	Op    string `@("+" | "-")`
	Right *Term  `@@`
}

// Term is a product of unary operands.
//
//nolint:govet // participle grammar tags are not standard struct tags
type Term struct {
	Pos  lexer.Position
	Left *Unary     `@@`
	Rest []*OpUnary `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type OpUnary struct {
	Pos   lexer.Position
	Op    string `@("*" | "/" | "%")`
	Right *Unary `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type Unary struct {
	Pos     lexer.Position
	Op      string   `  ( @("-" | "+")`
	Operand *Unary   `    @@ )`
	Primary *Primary `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type Primary struct {
	Pos    lexer.Position
	Call   *Call   `  @@`
	Number *string `| @(Radix | Number)`
	Ident  *string `| @Ident`
	Sub    *Expr   `| "(" @@ ")"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type Call struct {
	Pos  lexer.Position
	Name string  `@Ident "("`
	Args []*Expr `( @@ ( "," @@ )* )? ")"`
}

// calcLexer tokenizes expressions. Numbers are matched loosely so that
// malformed numerals such as 12A reach the numeral parser and are reported
// with its error rather than as a syntax error.
var calcLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Radix", Pattern: `[0-9]+#[0-9A-Za-z_]+`},
	{Name: "Number", Pattern: `[0-9][0-9A-Za-z_]*`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[-+*/%(),=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var calcParser = participle.MustBuild[Statement](
	participle.Lexer(calcLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
