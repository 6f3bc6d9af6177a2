package parser

import (
	"fmt"
	"strings"

	"github.com/toyz/dualgen/internal/models"
)

// SyntaxError reports Java source the parser could not read, with context and
// suggestions for the user
type SyntaxError struct {
	Location    models.SourceLocation
	Message     string
	Suggestions []string
}

func newSyntaxError(loc models.SourceLocation, format string, args ...interface{}) *SyntaxError {
	message := fmt.Sprintf(format, args...)
	return &SyntaxError{
		Location:    loc,
		Message:     message,
		Suggestions: suggestionsFor(message),
	}
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: syntax error: %s", e.Location, e.Message)
	for _, suggestion := range e.Suggestions {
		b.WriteString("\n  - ")
		b.WriteString(suggestion)
	}
	return b.String()
}

// suggestionsFor picks hints based on what the parser expected
func suggestionsFor(message string) []string {
	switch {
	case strings.Contains(message, "end of file"):
		return []string{
			"Check for an unterminated block, string literal or comment",
		}
	case strings.Contains(message, "matching bracket"):
		return []string{
			"Check that every '(', '{' and '[' has a matching closing bracket",
		}
	case strings.Contains(message, "expected identifier"):
		return []string{
			"Ensure declarations and members are named",
			"Only Java declarations are supported; generated sources must compile",
		}
	case strings.Contains(message, "expected type declaration"):
		return []string{
			"Top level declarations must be class, interface, enum, record or @interface",
		}
	default:
		return nil
	}
}
