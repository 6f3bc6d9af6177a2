package templates

// Template names known to the registry
const (
	FileTemplate   = "java-file"
	MethodTemplate = "java-method"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerFileTemplates()
	registry.registerMemberTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// registerFileTemplates registers the compilation unit template. Members
// arrive already rendered and indented.
func (tr *TemplateRegistry) registerFileTemplates() {
	tr.templates[FileTemplate] = `{{if .Package}}package {{.Package}};

{{end}}{{range .Imports}}import {{.}};
{{end}}{{if .Imports}}
{{end}}@{{.Generated.Annotation}}(
    value = {{javaString .Generated.Value}},
    date = {{javaString .Generated.Date}},
    comments = {{javaString .Generated.Comments}}
)
{{range .Markers}}{{.}}
{{end}}{{with .Modifiers}}{{.}} {{end}}interface {{.Name}}{{.TypeParams}}{{with .Extends}} extends {{join . ", "}}{{end}} {
{{range $i, $member := .Members}}{{if $i}}
{{end}}{{indent $member}}
{{end}}}
`
}

// registerMemberTemplates registers the templates of single members
func (tr *TemplateRegistry) registerMemberTemplates() {
	tr.templates[MethodTemplate] = `{{range .Markers}}{{.}}
{{end}}{{with .Modifiers}}{{.}} {{end}}{{with .TypeParams}}{{.}} {{end}}{{.Return}} {{.Name}}({{join .Params ", "}}){{with .Throws}} throws {{join . ", "}}{{end}}{{with .Default}} default {{.}}{{end}};`
}
