// Package templates renders generated Java compilation units with text/template.
package templates

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/models"
)

// GeneratedData holds the attributes of the generation metadata block
type GeneratedData struct {
	Annotation string // qualified marker name
	Value      string
	Date       string
	Comments   string
}

// FileData represents the data of one generated compilation unit
type FileData struct {
	Package    string
	Imports    []string
	Generated  GeneratedData
	Markers    []string // verbatim
	Modifiers  string
	Name       string
	TypeParams string
	Extends    []string
	Members    []string // rendered, unindented
}

// MethodData represents one abstract method
type MethodData struct {
	Markers    []string
	Modifiers  string
	TypeParams string
	Return     string
	Name       string
	Params     []string // verbatim parameter declarations
	Throws     []string
	Default    string
}

// Renderer renders declarations using the configured container types
type Renderer struct {
	types    config.TypeConfig
	registry *TemplateRegistry
}

// NewRenderer creates a renderer for the given container types
func NewRenderer(types config.TypeConfig) *Renderer {
	return &Renderer{
		types:    types,
		registry: NewTemplateRegistry(),
	}
}

// RenderType renders a type descriptor as Java source. Container types use
// their simple names, so the caller imports them.
func (r *Renderer) RenderType(t models.TypeDescriptor) string {
	switch t.Kind {
	case models.TypePrimitive:
		return t.Primitive.Keyword()
	case models.TypeBoxed:
		return t.Primitive.BoxedSimpleName()
	case models.TypeVoid:
		return "void"
	case models.TypePlain:
		return t.Name + r.renderArgs(t.Args)
	case models.TypeList:
		return config.SimpleName(r.types.List) + r.renderArgs(t.Args)
	case models.TypeAsyncSingle:
		return config.SimpleName(r.types.AsyncSingle) + r.renderArgs(t.Args)
	case models.TypeAsyncMulti:
		return config.SimpleName(r.types.AsyncMulti) + r.renderArgs(t.Args)
	default:
		return t.String()
	}
}

func (r *Renderer) renderArgs(args []models.TypeDescriptor) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = r.RenderType(arg)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// RenderMethod renders one method declaration without indentation
func (r *Renderer) RenderMethod(data MethodData) (string, error) {
	return executeTemplate(MethodTemplate, r.registry.MustGet(MethodTemplate), data)
}

// RenderFile renders a complete compilation unit
func (r *Renderer) RenderFile(data FileData) (string, error) {
	return executeTemplate(FileTemplate, r.registry.MustGet(FileTemplate), data)
}

// executeTemplate executes a Go template with the given data
func executeTemplate(name, templateStr string, data interface{}) (string, error) {
	funcMap := template.FuncMap{
		"indent":     Indent,
		"javaString": JavaString,
		"join":       strings.Join,
	}

	tmpl, err := template.New(name).Funcs(funcMap).Parse(templateStr)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse template %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute template %s", name)
	}

	return buf.String(), nil
}
