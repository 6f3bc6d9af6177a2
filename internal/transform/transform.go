// Package transform maps method return types between the direct and the
// asynchronous calling style.
package transform

import (
	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/models"
)

// Transformer converts return types using a boxing table. It holds no other
// state and is safe for concurrent use.
type Transformer struct {
	Boxing models.BoxingTable
}

// New returns a transformer using the default boxing table
func New() *Transformer {
	return &Transformer{Boxing: models.DefaultBoxing}
}

// ErrNotParametrized is returned for asynchronous sources that do not have
// exactly one type argument, or are not asynchronous at all
var ErrNotParametrized = errors.New("return type is not a parametrized asynchronous type")

// Transform returns the return type t takes in the style opposite to source:
//
//	direct -> async:  List<T> -> Multi<T>, primitive or void -> Single<Boxed>, T -> Single<T>
//	async -> direct:  Multi<T> -> List<T>, Single<Boxed> -> primitive or void, Single<T> -> T
func (tr *Transformer) Transform(source models.Style, t models.TypeDescriptor) (models.TypeDescriptor, error) {
	switch source {
	case models.StyleDirect:
		return tr.toAsync(t), nil
	case models.StyleAsync:
		return tr.toDirect(t)
	default:
		return models.TypeDescriptor{}, errors.Newf("cannot transform from %s style", source)
	}
}

func (tr *Transformer) toAsync(t models.TypeDescriptor) models.TypeDescriptor {
	if t.Kind == models.TypeList {
		if elem, ok := t.Elem(); ok {
			return models.AsyncMultiOf(elem)
		}
	}
	if boxed, ok := tr.Boxing.Box(t); ok {
		return models.AsyncSingleOf(boxed)
	}
	return models.AsyncSingleOf(t)
}

func (tr *Transformer) toDirect(t models.TypeDescriptor) (models.TypeDescriptor, error) {
	if !t.Kind.IsAsync() {
		return models.TypeDescriptor{}, ErrNotParametrized
	}
	elem, ok := t.Elem()
	if !ok {
		return models.TypeDescriptor{}, ErrNotParametrized
	}

	if t.Kind == models.TypeAsyncMulti {
		return models.ListOf(elem), nil
	}
	if unboxed, ok := tr.Boxing.Unbox(elem); ok {
		return unboxed, nil
	}
	return elem, nil
}

// Result pairs a method with its transformed return type
type Result struct {
	Method *models.MethodSignature
	Return models.TypeDescriptor
}

// TransformAll transforms the return type of every method of decl. Methods
// that cannot be transformed each produce one ReturnTypeNotParametrized
// diagnostic; results are only complete when no diagnostics are returned.
func (tr *Transformer) TransformAll(decl *models.InterfaceDeclaration, source models.Style) ([]Result, []*errors.Diagnostic) {
	var results []Result
	var diagnostics []*errors.Diagnostic

	for _, method := range decl.Methods() {
		ret, err := tr.Transform(source, method.Return)
		if err != nil {
			diagnostics = append(diagnostics,
				errors.NewDiagnostic(errors.ReturnTypeNotParametrized, method.Name, method.Return).
					ForDeclaration(decl).
					ForMember(method.Name, method.Location).
					WithCause(err))
			continue
		}
		results = append(results, Result{Method: method, Return: ret})
	}

	return results, diagnostics
}
