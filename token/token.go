// Package token defines the lexical tokens produced by the scanner and
// consumed by the compiler.
package token

import "fmt"

// Kind classifies a Token.
type Kind int

const (
	// single-character punctuation
	LeftParen Kind = iota
	RightParen
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// one or two character operators
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// literals
	Identifier
	String
	Number

	// keywords
	And
	Class
	Else
	End
	False
	Fn
	If
	Nil
	Or
	Print
	Return
	Self
	Super
	True
	Let
	While
	Do

	Error
	EOF
)

var names = map[Kind]string{
	LeftParen: "(", RightParen: ")", Comma: ",", Dot: ".",
	Minus: "-", Plus: "+", Semicolon: ";", Slash: "/", Star: "*",
	Bang: "!", BangEqual: "!=", Equal: "=", EqualEqual: "==",
	Greater: ">", GreaterEqual: ">=", Less: "<", LessEqual: "<=",
	Identifier: "IDENTIFIER", String: "STRING", Number: "NUMBER",
	And: "and", Class: "class", Else: "else", End: "end",
	False: "false", Fn: "fn", If: "if", Nil: "nil", Or: "or",
	Print: "print", Return: "return", Self: "self", Super: "super",
	True: "true", Let: "let", While: "while", Do: "do",
	Error: "ERROR", EOF: "EOF",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps every reserved word in MTI's grammar to its Kind.
// Words not present here are scanned as Identifier.
var Keywords = map[string]Kind{
	"and": And, "class": Class, "else": Else, "end": End,
	"false": False, "fn": Fn, "if": If, "let": Let, "nil": Nil,
	"or": Or, "print": Print, "return": Return, "self": Self,
	"super": Super, "true": True, "while": While, "do": Do,
}

// Token is a lexical token. Lexeme borrows from the scanner's source
// buffer via Go's string slicing, which shares the backing array
// rather than copying it — the same zero-allocation borrow a
// start/length pair buys in a C-style scanner, without needing raw
// pointers into the buffer.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%s %q line %d}", t.Kind, t.Lexeme, t.Line)
}
