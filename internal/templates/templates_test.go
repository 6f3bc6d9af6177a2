package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/models"
)

const generatedAnnotation = "javax.annotation.processing.Generated"

func newTestRenderer() *Renderer {
	return NewRenderer(config.Default().Types)
}

func TestRenderType(t *testing.T) {
	r := newTestRenderer()
	user := models.PlainOf("UserDto")

	tests := []struct {
		name string
		in   models.TypeDescriptor
		want string
	}{
		{"primitive", models.PrimitiveOf(models.IntKind), "int"},
		{"boolean", models.PrimitiveOf(models.BooleanKind), "boolean"},
		{"boxed", models.BoxedOf(models.CharKind), "Character"},
		{"boxed void", models.BoxedOf(models.VoidKind), "Void"},
		{"void", models.VoidType(), "void"},
		{"plain", user, "UserDto"},
		{"generic plain", models.PlainOf("Map", models.PlainOf("String"), models.ListOf(user)), "Map<String, List<UserDto>>"},
		{"list", models.ListOf(user), "List<UserDto>"},
		{"single", models.AsyncSingleOf(models.BoxedOf(models.LongKind)), "Mono<Long>"},
		{"multi", models.AsyncMultiOf(user), "Flux<UserDto>"},
		{"raw single", models.AsyncSingleOf(), "Mono"},
		{"verbatim plain", models.PlainOf("byte[]"), "byte[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.RenderType(tt.in))
		})
	}
}

func TestRenderType_CustomContainers(t *testing.T) {
	r := NewRenderer(config.TypeConfig{
		List:        "java.util.List",
		AsyncSingle: "io.smallrye.mutiny.Uni",
		AsyncMulti:  "io.smallrye.mutiny.Multi",
	})

	assert.Equal(t, "Uni<Integer>", r.RenderType(models.AsyncSingleOf(models.BoxedOf(models.IntKind))))
	assert.Equal(t, "Multi<String>", r.RenderType(models.AsyncMultiOf(models.PlainOf("String"))))
}

func TestRenderMethod(t *testing.T) {
	r := newTestRenderer()

	tests := []struct {
		name string
		data MethodData
		want string
	}{
		{
			name: "marker and parameters",
			data: MethodData{
				Markers: []string{`@GetExchange("/{id}")`},
				Return:  "Mono<User>",
				Name:    "get",
				Params:  []string{`@PathVariable("id") long id`, `@RequestParam("q") String q`},
			},
			want: "@GetExchange(\"/{id}\")\nMono<User> get(@PathVariable(\"id\") long id, @RequestParam(\"q\") String q);",
		},
		{
			name: "everything",
			data: MethodData{
				Modifiers:  "public abstract",
				TypeParams: "<T>",
				Return:     "List<T>",
				Name:       "all",
				Throws:     []string{"IOException", "TimeoutException"},
			},
			want: "public abstract <T> List<T> all() throws IOException, TimeoutException;",
		},
		{
			name: "default value",
			data: MethodData{Return: "int", Name: "retries", Default: "3"},
			want: "int retries() default 3;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderMethod(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func sampleFile() FileData {
	return FileData{
		Package: "com.example",
		Imports: []string{"java.util.List", "reactor.core.publisher.Mono"},
		Generated: GeneratedData{
			Annotation: generatedAnnotation,
			Value:      "dualgen v0.1.0",
			Date:       "2026-01-02T03:04:05Z",
			Comments:   "source: com.example.UserBlockingClient",
		},
		Markers:   []string{`@HttpExchange("/users")`},
		Modifiers: "public",
		Name:      "UserAsynchronousClient",
		Members: []string{
			"@GetExchange(\"/{id}\")\nMono<User> get(@PathVariable(\"id\") long id);",
			`String HEADER = "x";`,
		},
	}
}

const sampleSource = `package com.example;

import java.util.List;
import reactor.core.publisher.Mono;

@javax.annotation.processing.Generated(
    value = "dualgen v0.1.0",
    date = "2026-01-02T03:04:05Z",
    comments = "source: com.example.UserBlockingClient"
)
@HttpExchange("/users")
public interface UserAsynchronousClient {
  @GetExchange("/{id}")
  Mono<User> get(@PathVariable("id") long id);

  String HEADER = "x";
}
`

func TestRenderFile(t *testing.T) {
	got, err := newTestRenderer().RenderFile(sampleFile())
	require.NoError(t, err)
	assert.Equal(t, sampleSource, got)
}

func TestRenderFile_Variants(t *testing.T) {
	data := sampleFile()
	data.Package = ""
	data.Imports = nil
	data.Modifiers = ""
	data.TypeParams = "<T extends Base>"
	data.Extends = []string{"Closeable", "Named<T>"}
	data.Members = data.Members[:1]

	got, err := newTestRenderer().RenderFile(data)
	require.NoError(t, err)

	assert.True(t, len(got) > 0 && got[0] == '@', "default package starts with the metadata block")
	assert.NotContains(t, got, "import ")
	assert.Contains(t, got, ")\n@HttpExchange(\"/users\")\ninterface UserAsynchronousClient<T extends Base> extends Closeable, Named<T> {\n")
	assert.Contains(t, got, "long id);\n}\n")
}

func TestRenderFile_EscapesMetadata(t *testing.T) {
	data := sampleFile()
	data.Generated.Comments = `source: "quoted" \ path`

	got, err := newTestRenderer().RenderFile(data)
	require.NoError(t, err)
	assert.Contains(t, got, `comments = "source: \"quoted\" \\ path"`)
}

func TestStripGenerated(t *testing.T) {
	stripped := StripGenerated(sampleSource, generatedAnnotation)

	assert.NotContains(t, stripped, "Generated")
	assert.NotContains(t, stripped, "2026-01-02")
	assert.Contains(t, stripped, "import reactor.core.publisher.Mono;\n\n@HttpExchange")

	other := sampleFile()
	other.Generated.Date = "2030-12-31T00:00:00Z"
	other.Generated.Comments = "source: com.example.UserBlockingClient, run: 42"
	rendered, err := newTestRenderer().RenderFile(other)
	require.NoError(t, err)

	assert.Equal(t, stripped, StripGenerated(rendered, generatedAnnotation))
}

func TestStripGenerated_NoBlock(t *testing.T) {
	src := "package a;\n\npublic interface A {}\n"
	assert.Equal(t, src, StripGenerated(src, generatedAnnotation))
}

func TestIsGeneratedBy(t *testing.T) {
	assert.True(t, IsGeneratedBy(sampleSource, generatedAnnotation, "dualgen"))
	assert.False(t, IsGeneratedBy(sampleSource, generatedAnnotation, "other"))
	assert.False(t, IsGeneratedBy(sampleSource, "jakarta.annotation.Generated", "dualgen"))
	assert.False(t, IsGeneratedBy("public interface A {}\n", generatedAnnotation, "dualgen"))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", Indent("a\n\nb"))
	assert.Equal(t, "", Indent(""))
}

func TestJavaString(t *testing.T) {
	assert.Equal(t, `"plain"`, JavaString("plain"))
	assert.Equal(t, `"a\"b\\c\nd"`, JavaString("a\"b\\c\nd"))
}

func TestTemplateRegistry(t *testing.T) {
	registry := NewTemplateRegistry()

	_, ok := registry.Get(FileTemplate)
	assert.True(t, ok)
	_, ok = registry.Get("missing")
	assert.False(t, ok)
	assert.Panics(t, func() { registry.MustGet("missing") })
}

func TestExecuteTemplate_ParseError(t *testing.T) {
	_, err := executeTemplate("broken", "{{.Name", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template broken")
}
