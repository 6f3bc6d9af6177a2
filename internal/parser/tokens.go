package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/dualgen/internal/annotations"
	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/models"
)

// tokenStream is a cursor over the significant tokens of one source file
type tokenStream struct {
	file   string
	source string
	tokens []lexer.Token
	pos    int
}

func newTokenStream(file, source string) (*tokenStream, error) {
	lex, err := annotations.Lexer.LexString(file, source)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to tokenize %s", file)
	}
	all, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to tokenize %s", file)
	}

	tokens := make([]lexer.Token, 0, len(all))
	for _, tok := range all {
		if annotations.IsTrivia(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 || !tokens[len(tokens)-1].EOF() {
		tokens = append(tokens, lexer.EOFToken(lexer.Position{Filename: file, Offset: len(source)}))
	}

	return &tokenStream{file: file, source: source, tokens: tokens}, nil
}

func (s *tokenStream) peek() lexer.Token {
	return s.peekN(0)
}

func (s *tokenStream) peekN(n int) lexer.Token {
	if s.pos+n >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[s.pos+n]
}

func (s *tokenStream) next() lexer.Token {
	tok := s.peek()
	if !tok.EOF() {
		s.pos++
	}
	return tok
}

// previous returns the last consumed token
func (s *tokenStream) previous() lexer.Token {
	if s.pos == 0 {
		return s.tokens[0]
	}
	return s.tokens[s.pos-1]
}

func (s *tokenStream) atEOF() bool {
	return s.peek().EOF()
}

// isSyntax reports whether tok is punctuation or a word with the given text.
// Literals never match, so a string containing "{" is not a brace.
func isSyntax(tok lexer.Token, value string) bool {
	if tok.Value != value {
		return false
	}
	return tok.Type == annotations.PunctToken || tok.Type == annotations.IdentToken || tok.Type == annotations.EllipsisToken
}

func (s *tokenStream) is(value string) bool {
	return isSyntax(s.peek(), value)
}

func (s *tokenStream) isAt(n int, value string) bool {
	return isSyntax(s.peekN(n), value)
}

func (s *tokenStream) isIdent() bool {
	return s.peek().Type == annotations.IdentToken
}

func (s *tokenStream) accept(value string) bool {
	if s.is(value) {
		s.next()
		return true
	}
	return false
}

func (s *tokenStream) expect(value string) (lexer.Token, error) {
	if !s.is(value) {
		return s.peek(), s.unexpected(s.peek(), "\""+value+"\"")
	}
	return s.next(), nil
}

func (s *tokenStream) expectIdent() (lexer.Token, error) {
	if !s.isIdent() {
		return s.peek(), s.unexpected(s.peek(), "identifier")
	}
	return s.next(), nil
}

// skipBalanced consumes a bracketed run starting at the current opening
// bracket, nested brackets of every kind included
func (s *tokenStream) skipBalanced() error {
	open := s.peek()
	depth := 0
	for {
		tok := s.next()
		if tok.EOF() {
			return s.unexpected(tok, "matching bracket for \""+open.Value+"\"")
		}
		switch {
		case isSyntax(tok, "("), isSyntax(tok, "{"), isSyntax(tok, "["):
			depth++
		case isSyntax(tok, ")"), isSyntax(tok, "}"), isSyntax(tok, "]"):
			depth--
		}
		if depth == 0 {
			return nil
		}
	}
}

// skipUntil consumes tokens until one of stops is found at bracket depth zero.
// The stop token is not consumed.
func (s *tokenStream) skipUntil(stops ...string) error {
	for {
		tok := s.peek()
		if tok.EOF() {
			return s.unexpected(tok, "one of "+quoteAll(stops))
		}
		for _, stop := range stops {
			if isSyntax(tok, stop) {
				return nil
			}
		}
		if isSyntax(tok, "(") || isSyntax(tok, "{") || isSyntax(tok, "[") {
			if err := s.skipBalanced(); err != nil {
				return err
			}
			continue
		}
		s.next()
	}
}

// text returns the verbatim source between the start of from and the end of to
func (s *tokenStream) text(from, to lexer.Token) string {
	start := from.Pos.Offset
	end := to.Pos.Offset + len(to.Value)
	if start < 0 || end > len(s.source) || start > end {
		return ""
	}
	return s.source[start:end]
}

func (s *tokenStream) location(tok lexer.Token) models.SourceLocation {
	return models.SourceLocation{File: s.file, Line: tok.Pos.Line, Column: tok.Pos.Column}
}

func (s *tokenStream) unexpected(tok lexer.Token, want string) error {
	found := "\"" + tok.Value + "\""
	if tok.EOF() {
		found = "end of file"
	}
	return newSyntaxError(s.location(tok), "expected %s, found %s", want, found)
}

func quoteAll(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += "\"" + v + "\""
	}
	return out
}
