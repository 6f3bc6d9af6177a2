package generator

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/filer"
	"github.com/toyz/dualgen/internal/models"
	"github.com/toyz/dualgen/internal/parser"
)

const (
	exchangePkg = "org.springframework.web.service.annotation."
	bindPkg     = "org.springframework.web.bind.annotation."
	triggerName = "com.example.annotation.annotation.ClientInterface"
	testRunID   = "test-run"
)

var testTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func fixedClock() time.Time {
	return testTime
}

func marker(qualified, raw string, attrs ...models.Attribute) models.Marker {
	return models.Marker{
		Name:          qualified[strings.LastIndex(qualified, ".")+1:],
		QualifiedName: qualified,
		Attributes:    attrs,
		Raw:           raw,
	}
}

func getMethod(name string, ret models.TypeDescriptor, params ...models.Parameter) models.Member {
	return models.Member{Kind: models.MemberMethod, Method: &models.MethodSignature{
		Name:      name,
		Params:    params,
		Return:    ret,
		Modifiers: models.Modifiers{models.ModPublic, models.ModAbstract},
		Markers:   []models.Marker{marker(exchangePkg+"GetExchange", `@GetExchange("/`+name+`")`)},
	}}
}

func field(raw string, names ...string) models.Member {
	return models.Member{Kind: models.MemberField, Field: &models.Field{Names: names, Raw: raw}}
}

// clientDecl returns an eligible client interface with the given members
func clientDecl(name string, members ...models.Member) *models.InterfaceDeclaration {
	return &models.InterfaceDeclaration{
		Name:      name,
		Kind:      models.DeclInterface,
		Namespace: "com.example.client",
		Modifiers: models.Modifiers{models.ModPublic},
		Members:   members,
		Markers: []models.Marker{
			marker(triggerName, "@ClientInterface"),
			marker(exchangePkg+"HttpExchange", `@HttpExchange("/api")`),
		},
		Unit: &models.CompilationUnit{
			File:    "src/com/example/client/" + name + ".java",
			Package: "com.example.client",
			Imports: []models.Import{
				{Path: triggerName},
				{Path: exchangePkg + "GetExchange"},
				{Path: exchangePkg + "HttpExchange"},
			},
		},
		Location: models.SourceLocation{File: "src/com/example/client/" + name + ".java", Line: 7, Column: 8},
	}
}

func newTestRun(f filer.Filer, sink errors.Sink) *Run {
	return NewRun(config.Default(), f, sink, WithClock(fixedClock), WithRunID(testRunID))
}

// failingFiler fails every write with err
type failingFiler struct {
	err error
}

func (f failingFiler) CreateSource(ctx context.Context, file filer.SourceFile) (string, error) {
	return "", f.err
}

// roundTrip holds the parsed inputs and expected outputs of a txtar fixture
type roundTrip struct {
	decls  []*models.InterfaceDeclaration
	output map[string]string
}

func loadRoundTrip(t *testing.T, name string) roundTrip {
	t.Helper()
	archive, err := txtar.ParseFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	p := parser.NewParser(config.Default())
	rt := roundTrip{output: make(map[string]string)}
	for _, f := range archive.Files {
		switch {
		case strings.HasPrefix(f.Name, "input/"):
			file, err := p.ParseSource(strings.TrimPrefix(f.Name, "input/"), string(f.Data))
			require.NoError(t, err, f.Name)
			rt.decls = append(rt.decls, file.Annotated(triggerName)...)
		case strings.HasPrefix(f.Name, "output/"):
			rt.output[strings.TrimPrefix(f.Name, "output/")] = string(f.Data)
		}
	}
	return rt
}
