package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/models"
)

var user = models.PlainOf("UserDto")

func TestTransform_DirectToAsync(t *testing.T) {
	tr := New()

	tests := []struct {
		name string
		in   models.TypeDescriptor
		want models.TypeDescriptor
	}{
		{"plain", user, models.AsyncSingleOf(user)},
		{"generic plain", models.PlainOf("Map", models.PlainOf("String"), user), models.AsyncSingleOf(models.PlainOf("Map", models.PlainOf("String"), user))},
		{"list", models.ListOf(user), models.AsyncMultiOf(user)},
		{"list of boxed", models.ListOf(models.BoxedOf(models.IntKind)), models.AsyncMultiOf(models.BoxedOf(models.IntKind))},
		{"void", models.VoidType(), models.AsyncSingleOf(models.BoxedOf(models.VoidKind))},
		{"boxed stays boxed", models.BoxedOf(models.LongKind), models.AsyncSingleOf(models.BoxedOf(models.LongKind))},
		{"array is plain", models.PlainOf("byte[]"), models.AsyncSingleOf(models.PlainOf("byte[]"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.Transform(models.StyleDirect, tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestTransform_PrimitivesAreBoxed(t *testing.T) {
	tr := New()

	for _, kind := range models.AllPrimitiveKinds() {
		if kind == models.VoidKind {
			continue
		}
		t.Run(kind.String(), func(t *testing.T) {
			got, err := tr.Transform(models.StyleDirect, models.PrimitiveOf(kind))
			require.NoError(t, err)
			assert.Equal(t, models.AsyncSingleOf(models.BoxedOf(kind)), got)
		})
	}
}

func TestTransform_AsyncToDirect(t *testing.T) {
	tr := New()

	tests := []struct {
		name string
		in   models.TypeDescriptor
		want models.TypeDescriptor
	}{
		{"single", models.AsyncSingleOf(user), user},
		{"multi", models.AsyncMultiOf(user), models.ListOf(user)},
		{"single void", models.AsyncSingleOf(models.BoxedOf(models.VoidKind)), models.VoidType()},
		{"single boxed int", models.AsyncSingleOf(models.BoxedOf(models.IntKind)), models.PrimitiveOf(models.IntKind)},
		{"single boolean", models.AsyncSingleOf(models.BoxedOf(models.BooleanKind)), models.PrimitiveOf(models.BooleanKind)},
		{"multi keeps boxed", models.AsyncMultiOf(models.BoxedOf(models.IntKind)), models.ListOf(models.BoxedOf(models.IntKind))},
		{"single of list", models.AsyncSingleOf(models.ListOf(user)), models.ListOf(user)},
		{"single of generic", models.AsyncSingleOf(models.PlainOf("Page", user)), models.PlainOf("Page", user)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.Transform(models.StyleAsync, tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestTransform_NotParametrized(t *testing.T) {
	tr := New()

	tests := []struct {
		name string
		in   models.TypeDescriptor
	}{
		{"raw single", models.AsyncSingleOf()},
		{"raw multi", models.AsyncMultiOf()},
		{"two arguments", models.AsyncSingleOf(user, user)},
		{"plain", user},
		{"void", models.VoidType()},
		{"list", models.ListOf(user)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.Transform(models.StyleAsync, tt.in)
			assert.ErrorIs(t, err, ErrNotParametrized)
		})
	}
}

func TestTransform_UnknownStyle(t *testing.T) {
	_, err := New().Transform(models.StyleUnknown, user)
	require.Error(t, err)
}

func TestTransform_RoundTrip(t *testing.T) {
	tr := New()

	// Boxed direct returns come back as primitives, so they are not part of
	// the round trip
	inputs := []models.TypeDescriptor{
		user,
		models.VoidType(),
		models.ListOf(user),
		models.ListOf(models.BoxedOf(models.CharKind)),
		models.PlainOf("Map", models.PlainOf("String"), models.ListOf(user)),
	}
	for _, kind := range models.AllPrimitiveKinds() {
		if kind != models.VoidKind {
			inputs = append(inputs, models.PrimitiveOf(kind))
		}
	}

	for _, in := range inputs {
		t.Run("direct "+in.String(), func(t *testing.T) {
			async, err := tr.Transform(models.StyleDirect, in)
			require.NoError(t, err)
			back, err := tr.Transform(models.StyleAsync, async)
			require.NoError(t, err)
			assert.True(t, in.Equal(back), "want %s, got %s", in, back)
		})
	}

	asyncInputs := []models.TypeDescriptor{
		models.AsyncSingleOf(user),
		models.AsyncMultiOf(user),
		models.AsyncSingleOf(models.BoxedOf(models.VoidKind)),
		models.AsyncSingleOf(models.BoxedOf(models.DoubleKind)),
		models.AsyncMultiOf(models.BoxedOf(models.ShortKind)),
	}
	for _, in := range asyncInputs {
		t.Run("async "+in.String(), func(t *testing.T) {
			direct, err := tr.Transform(models.StyleAsync, in)
			require.NoError(t, err)
			back, err := tr.Transform(models.StyleDirect, direct)
			require.NoError(t, err)
			assert.True(t, in.Equal(back), "want %s, got %s", in, back)
		})
	}
}

func TestTransform_BoxedDirectNormalizes(t *testing.T) {
	tr := New()

	async, err := tr.Transform(models.StyleDirect, models.BoxedOf(models.IntKind))
	require.NoError(t, err)
	back, err := tr.Transform(models.StyleAsync, async)
	require.NoError(t, err)
	assert.Equal(t, models.PrimitiveOf(models.IntKind), back)
}

func TestTransform_DoesNotMutateInput(t *testing.T) {
	in := models.ListOf(models.PlainOf("Page", user))
	snapshot := models.ListOf(models.PlainOf("Page", user))

	_, err := New().Transform(models.StyleDirect, in)
	require.NoError(t, err)
	assert.True(t, snapshot.Equal(in))
}

func TestTransformAll(t *testing.T) {
	decl := &models.InterfaceDeclaration{
		Name:      "UserReactiveClient",
		Namespace: "com.example",
		Kind:      models.DeclInterface,
		Members: []models.Member{
			{Kind: models.MemberMethod, Method: &models.MethodSignature{Name: "get", Return: models.AsyncSingleOf(user)}},
			{Kind: models.MemberField, Field: &models.Field{Names: []string{"X"}}},
			{Kind: models.MemberMethod, Method: &models.MethodSignature{Name: "raw", Return: models.AsyncSingleOf(), Location: models.SourceLocation{File: "U.java", Line: 9}}},
			{Kind: models.MemberMethod, Method: &models.MethodSignature{Name: "all", Return: models.AsyncMultiOf(user)}},
			{Kind: models.MemberMethod, Method: &models.MethodSignature{Name: "pair", Return: models.AsyncMultiOf(user, user)}},
		},
	}

	results, diagnostics := New().TransformAll(decl, models.StyleAsync)

	require.Len(t, results, 2)
	assert.Equal(t, "get", results[0].Method.Name)
	assert.Equal(t, user, results[0].Return)
	assert.Equal(t, "all", results[1].Method.Name)
	assert.Equal(t, models.ListOf(user), results[1].Return)

	require.Len(t, diagnostics, 2)
	assert.Equal(t, errors.ReturnTypeNotParametrized, diagnostics[0].Kind)
	assert.Equal(t, "raw", diagnostics[0].Member)
	assert.Equal(t, 9, diagnostics[0].Loc.Line)
	assert.ErrorIs(t, diagnostics[0], ErrNotParametrized)
	assert.Equal(t, "pair", diagnostics[1].Member)
}
