package annotations

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes Java source. The host parser and the marker grammar share it,
// so token offsets line up between the two.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*([^*]|\*+[^*/])*\*+/`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "TextBlock", Pattern: `(?s)""".*?"""`},
	{Name: "String", Pattern: `"(\\.|[^"\\\n])*"`},
	{Name: "Char", Pattern: `'(\\.|[^'\\\n])+'`},
	{Name: "Number", Pattern: `[0-9][0-9a-zA-Z_]*(\.[0-9a-zA-Z_]*)?`},
	{Name: "Ident", Pattern: `[\p{L}_$][\p{L}\p{N}_$]*`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Punct", Pattern: `[@(){}\[\];,.<>?=!~:+\-*/&|^%]`},
})

// Token type identifiers of Lexer
var (
	CommentToken    = Lexer.Symbols()["Comment"]
	WhitespaceToken = Lexer.Symbols()["Whitespace"]
	TextBlockToken  = Lexer.Symbols()["TextBlock"]
	StringToken     = Lexer.Symbols()["String"]
	CharToken       = Lexer.Symbols()["Char"]
	NumberToken     = Lexer.Symbols()["Number"]
	IdentToken      = Lexer.Symbols()["Ident"]
	EllipsisToken   = Lexer.Symbols()["Ellipsis"]
	PunctToken      = Lexer.Symbols()["Punct"]
)

// IsTrivia reports whether the token carries no syntax
func IsTrivia(tok lexer.Token) bool {
	return tok.Type == CommentToken || tok.Type == WhitespaceToken
}
