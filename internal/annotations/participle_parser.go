package annotations

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/models"
)

// markerAST is the root of a marker, e.g. @GetExchange(value = "/users/{id}")
type markerAST struct {
	Pos  lexer.Position
	Name []string `parser:"'@' @Ident ( '.' @Ident )*"`
	Args *argsAST `parser:"( '(' @@? ')' )?"`
}

// argsAST is either a list of name = value pairs or one unnamed value
type argsAST struct {
	Pairs []*pairAST `parser:"  @@ ( ',' @@ )*"`
	Value *valueAST  `parser:"| @@"`
}

type pairAST struct {
	Name  string    `parser:"@Ident '='"`
	Value *valueAST `parser:"@@"`
}

type valueAST struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Marker *markerAST `parser:"  @@"`
	Array  *arrayAST  `parser:"| @@"`
	Expr   *exprAST   `parser:"| @@"`
}

type arrayAST struct {
	Open   bool        `parser:"@'{'"`
	Values []*valueAST `parser:"( @@ ( ',' @@ )* ','? )? '}'"`
}

type exprAST struct {
	Parts []*exprPartAST `parser:"@@+"`
}

type exprPartAST struct {
	Group *exprAST `parser:"  '(' @@ ')'"`
	Token string   `parser:"| @(TextBlock | String | Char | Number | Ident | '.' | '+' | '-' | '*' | '/' | '!' | '~' | '?' | ':' | '<' | '>' | '&' | '|' | '^' | '%' | '[' | ']')"`
}

// ParticipleParser parses marker source text into models.Marker
type ParticipleParser struct {
	parser *participle.Parser[markerAST]
}

// NewParticipleParser creates a marker parser
func NewParticipleParser() *ParticipleParser {
	parser := participle.MustBuild[markerAST](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(4),
	)

	return &ParticipleParser{parser: parser}
}

var defaultParser = NewParticipleParser()

// ParseMarker parses marker text with the shared parser
func ParseMarker(text string, location models.SourceLocation) (models.Marker, error) {
	return defaultParser.ParseMarker(text, location)
}

// ParseMarker parses one marker. Attribute values are kept verbatim; a lone
// unnamed value is stored as attribute "value". QualifiedName is left for the
// caller to resolve.
func (p *ParticipleParser) ParseMarker(text string, location models.SourceLocation) (models.Marker, error) {
	ast, err := p.parser.ParseString(location.File, text)
	if err != nil {
		return models.Marker{}, errors.Wrapf(err, "invalid annotation %q", strings.TrimSpace(text))
	}

	marker := models.Marker{
		Name:     strings.Join(ast.Name, "."),
		Raw:      strings.TrimSpace(text),
		Location: location,
	}

	if ast.Args != nil {
		switch {
		case ast.Args.Value != nil:
			marker.Attributes = append(marker.Attributes, models.Attribute{
				Name:  "value",
				Value: sliceValue(text, ast.Args.Value),
			})
		default:
			for _, pair := range ast.Args.Pairs {
				marker.Attributes = append(marker.Attributes, models.Attribute{
					Name:  pair.Name,
					Value: sliceValue(text, pair.Value),
				})
			}
		}
	}

	return marker, nil
}

func sliceValue(text string, value *valueAST) string {
	start, end := value.Pos.Offset, value.EndPos.Offset
	if start < 0 || end > len(text) || start > end {
		return ""
	}
	return strings.TrimSpace(text[start:end])
}

// HasNonEmptyAttribute reports whether any of the named attributes is present
// with a value other than the empty string literal. Absent attributes count
// as empty, which is what the Java annotation defaults are.
func HasNonEmptyAttribute(marker models.Marker, names ...string) bool {
	for _, name := range names {
		value, ok := marker.Attribute(name)
		if !ok {
			continue
		}
		if !IsEmptyLiteral(value) {
			return true
		}
	}
	return false
}

// IsEmptyLiteral reports whether a verbatim value is an empty string literal
func IsEmptyLiteral(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || value == `""` || value == `""""""`
}
