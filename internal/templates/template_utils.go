package templates

import (
	"regexp"
	"strings"
)

// IndentUnit is the indentation of one nesting level in generated sources
const IndentUnit = "  "

// Indent prefixes every non-empty line of s with one indentation unit
func Indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = IndentUnit + line
		}
	}
	return strings.Join(lines, "\n")
}

// JavaString renders s as a double-quoted string literal
func JavaString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// generatedBlock matches the metadata block written by FileTemplate
func generatedBlock(annotation string) *regexp.Regexp {
	return regexp.MustCompile(`(?ms)^@` + regexp.QuoteMeta(annotation) + `\(\n.*?^\)\n`)
}

// StripGenerated removes the generation metadata block so two renderings
// of the same declaration can be compared
func StripGenerated(src, annotation string) string {
	return generatedBlock(annotation).ReplaceAllString(src, "")
}

// IsGeneratedBy reports whether src carries a metadata block whose value
// names the generator
func IsGeneratedBy(src, annotation, generator string) bool {
	block := generatedBlock(annotation).FindString(src)
	if block == "" {
		return false
	}
	return strings.Contains(block, `value = "`+generator)
}
