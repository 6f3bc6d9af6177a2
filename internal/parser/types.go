package parser

import (
	"strings"

	"github.com/toyz/dualgen/internal/annotations"
	"github.com/toyz/dualgen/internal/models"
)

// typeNode is a parsed type reference
type typeNode struct {
	name       string // dotted name as written, without type arguments
	args       []*typeNode
	primitive  bool
	wildcard   bool
	nestedArgs bool // type arguments on an enclosing segment, e.g. Outer<A>.Inner
	dims       int
	text       string // verbatim source
}

func (p *fileParser) parseType() (*typeNode, error) {
	start := p.peek()
	node := &typeNode{}

	for p.is("@") && !p.isAt(1, "interface") {
		if err := p.skipMarker(); err != nil {
			return nil, err
		}
	}

	if p.accept("?") {
		node.wildcard = true
		if p.accept("extends") || p.accept("super") {
			if _, err := p.parseType(); err != nil {
				return nil, err
			}
		}
		node.text = p.text(start, p.previous())
		return node, nil
	}

	tok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	node.name = tok.Value

	if _, ok := models.DefaultBoxing.KindForKeyword(tok.Value); ok {
		node.primitive = true
	} else {
		for {
			if p.is("<") {
				if node.args, err = p.parseTypeArgs(); err != nil {
					return nil, err
				}
			}
			if p.is(".") && p.peekN(1).Type == annotations.IdentToken {
				if len(node.args) > 0 {
					node.nestedArgs = true
				}
				p.next()
				node.name += "." + p.next().Value
				continue
			}
			break
		}
	}

	for p.is("[") && p.isAt(1, "]") {
		p.next()
		p.next()
		node.dims++
	}

	node.text = p.text(start, p.previous())
	return node, nil
}

func (p *fileParser) parseTypeArgs() ([]*typeNode, error) {
	if _, err := p.expect("<"); err != nil {
		return nil, err
	}
	args := make([]*typeNode, 0)
	if p.accept(">") {
		return args, nil
	}
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.accept(",") {
			continue
		}
		if _, err := p.expect(">"); err != nil {
			return nil, err
		}
		return args, nil
	}
}

// descriptor maps a parsed type to the type descriptor model. Container types
// are matched by qualified name after import resolution.
func (p *fileParser) descriptor(node *typeNode) models.TypeDescriptor {
	switch {
	case node.wildcard, node.nestedArgs, node.dims > 0:
		return models.PlainOf(node.text)
	case node.primitive:
		kind, _ := models.DefaultBoxing.KindForKeyword(node.name)
		if kind == models.VoidKind {
			return models.VoidType()
		}
		return models.PrimitiveOf(kind)
	}

	args := make([]models.TypeDescriptor, len(node.args))
	for i, arg := range node.args {
		args[i] = p.descriptor(arg)
	}

	qualified := p.resolver.resolve(node.name)
	switch qualified {
	case p.config.Types.List:
		if len(args) == 1 {
			return models.ListOf(args[0])
		}
	case p.config.Types.AsyncSingle:
		return models.AsyncSingleOf(args...)
	case p.config.Types.AsyncMulti:
		return models.AsyncMultiOf(args...)
	}

	if strings.HasPrefix(qualified, ImplicitPackage+".") && len(args) == 0 {
		if kind, ok := models.DefaultBoxing.KindForBoxed(qualified); ok {
			return models.BoxedOf(kind)
		}
	}
	return models.PlainOf(node.name, args...)
}
