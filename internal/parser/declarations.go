package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/dualgen/internal/annotations"
	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/models"
)

// fileParser parses one compilation unit
type fileParser struct {
	*tokenStream
	config   *config.Config
	markers  *annotations.ParticipleParser
	known    []string
	unit     *models.CompilationUnit
	resolver *resolver
	decls    []*models.InterfaceDeclaration
}

func (p *fileParser) parseCompilationUnit() error {
	// Package annotations only live in package-info files and are not kept
	start := p.pos
	for p.is("@") && !p.isAt(1, "interface") {
		if err := p.skipMarker(); err != nil {
			return err
		}
	}
	if p.accept("package") {
		name, err := p.parseQualifiedName()
		if err != nil {
			return err
		}
		if _, err := p.expect(";"); err != nil {
			return err
		}
		p.unit.Package = name
	} else {
		p.pos = start
	}

	for {
		if p.accept(";") {
			continue
		}
		if !p.accept("import") {
			break
		}
		imp := models.Import{Static: p.accept("static")}
		name, err := p.parseQualifiedName()
		if err != nil {
			return err
		}
		if p.is(".") && p.isAt(1, "*") {
			p.next()
			p.next()
			imp.Wildcard = true
		}
		imp.Path = name
		if _, err := p.expect(";"); err != nil {
			return err
		}
		p.unit.Imports = append(p.unit.Imports, imp)
	}

	p.resolver = newResolver(p.unit, p.known)

	for !p.atEOF() {
		if p.accept(";") {
			continue
		}
		markers, mods, err := p.parseModifiers()
		if err != nil {
			return err
		}
		if _, err := p.parseTypeDeclaration(markers, mods, nil); err != nil {
			return err
		}
	}
	return nil
}

func (p *fileParser) parseQualifiedName() (string, error) {
	tok, err := p.expectIdent()
	if err != nil {
		return "", err
	}
	parts := []string{tok.Value}
	for p.is(".") && p.peekN(1).Type == annotations.IdentToken {
		p.next()
		parts = append(parts, p.next().Value)
	}
	return strings.Join(parts, "."), nil
}

// parseModifiers reads markers and modifier keywords in any order
func (p *fileParser) parseModifiers() ([]models.Marker, models.Modifiers, error) {
	var markers []models.Marker
	var mods models.Modifiers

	for {
		switch {
		case p.is("@") && !p.isAt(1, "interface"):
			marker, err := p.parseMarker()
			if err != nil {
				return nil, nil, err
			}
			markers = append(markers, marker)
		case p.is("non") && p.isAt(1, "-") && p.isAt(2, "sealed"):
			p.next()
			p.next()
			p.next()
			mods = append(mods, models.ModNonSealed)
		case p.isIdent() && isModifierWord(p.peek().Value):
			mods = append(mods, modifierKeywords[p.next().Value])
		default:
			return markers, mods, nil
		}
	}
}

func isModifierWord(word string) bool {
	_, ok := modifierKeywords[word]
	return ok
}

func (p *fileParser) parseMarker() (models.Marker, error) {
	start := p.peek()
	if err := p.skipMarker(); err != nil {
		return models.Marker{}, err
	}
	raw := p.text(start, p.previous())

	marker, err := p.markers.ParseMarker(raw, p.location(start))
	if err != nil {
		return models.Marker{}, err
	}
	marker.QualifiedName = p.resolver.resolve(marker.Name)
	return marker, nil
}

func (p *fileParser) skipMarker() error {
	if _, err := p.expect("@"); err != nil {
		return err
	}
	if _, err := p.parseQualifiedName(); err != nil {
		return err
	}
	if p.is("(") {
		return p.skipBalanced()
	}
	return nil
}

func (p *fileParser) isTypeDeclarationStart() bool {
	switch {
	case p.is("class"), p.is("interface"), p.is("enum"):
		return true
	case p.is("@") && p.isAt(1, "interface"):
		return true
	case p.is("record") && p.peekN(1).Type == annotations.IdentToken:
		return p.isAt(2, "(") || p.isAt(2, "<")
	default:
		return false
	}
}

// parseTypeDeclaration parses a type declaration after its markers and
// modifiers. The declaration and every nested one are recorded in source order.
func (p *fileParser) parseTypeDeclaration(markers []models.Marker, mods models.Modifiers, enclosing *models.InterfaceDeclaration) (*models.InterfaceDeclaration, error) {
	var kind models.DeclarationKind
	switch {
	case p.is("@") && p.isAt(1, "interface"):
		p.next()
		p.next()
		kind = models.DeclAnnotation
	case p.isTypeDeclarationStart():
		kind = declarationKeywords[p.next().Value]
	default:
		return nil, p.unexpected(p.peek(), "type declaration")
	}

	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	decl := &models.InterfaceDeclaration{
		Name:      nameTok.Value,
		Kind:      kind,
		Namespace: p.unit.Package,
		Modifiers: mods,
		Markers:   markers,
		Unit:      p.unit,
		Location:  p.location(nameTok),
	}
	if enclosing != nil {
		decl.Enclosing = enclosing.Name
		if enclosing.Enclosing != "" {
			decl.Enclosing = enclosing.Enclosing + "." + enclosing.Name
		}
	}
	p.decls = append(p.decls, decl)

	if p.is("<") {
		if decl.TypeParams, err = p.parseTypeParamsText(); err != nil {
			return nil, err
		}
	}
	if kind == models.DeclRecord && p.is("(") {
		if err := p.skipBalanced(); err != nil {
			return nil, err
		}
	}

	for {
		switch {
		case p.accept("extends"):
			types, err := p.parseTypeList()
			if err != nil {
				return nil, err
			}
			if kind == models.DeclInterface {
				decl.Superinterfaces = append(decl.Superinterfaces, types...)
			}
			continue
		case p.accept("implements"):
			types, err := p.parseTypeList()
			if err != nil {
				return nil, err
			}
			decl.Superinterfaces = append(decl.Superinterfaces, types...)
			continue
		case p.accept("permits"):
			if _, err := p.parseTypeList(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if err := p.parseBody(decl); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *fileParser) parseTypeList() ([]string, error) {
	var types []string
	for {
		node, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, node.text)
		if !p.accept(",") {
			return types, nil
		}
	}
}

// parseTypeParamsText returns the verbatim <...> type parameter section
func (p *fileParser) parseTypeParamsText() (string, error) {
	start := p.peek()
	depth := 0
	for {
		tok := p.next()
		switch {
		case tok.EOF():
			return "", p.unexpected(tok, "\">\"")
		case isSyntax(tok, "<"):
			depth++
		case isSyntax(tok, ">"):
			depth--
		}
		if depth == 0 {
			return p.text(start, tok), nil
		}
	}
}

func (p *fileParser) parseBody(decl *models.InterfaceDeclaration) error {
	if _, err := p.expect("{"); err != nil {
		return err
	}

	if decl.Kind == models.DeclEnum {
		if err := p.skipUntil(";", "}"); err != nil {
			return err
		}
		p.accept(";")
	}

	for !p.is("}") {
		if p.atEOF() {
			return p.unexpected(p.peek(), "\"}\"")
		}
		if p.accept(";") {
			continue
		}
		if err := p.parseMember(decl); err != nil {
			return err
		}
	}
	p.next()
	return nil
}

func (p *fileParser) addOther(decl *models.InterfaceDeclaration, kind, name string, tok lexer.Token) {
	decl.Members = append(decl.Members, models.Member{
		Kind:  models.MemberOther,
		Other: &models.OtherMember{Kind: kind, Name: name, Location: p.location(tok)},
	})
}

func (p *fileParser) parseMember(decl *models.InterfaceDeclaration) error {
	start := p.peek()

	// Initializer blocks
	if p.is("{") || (p.is("static") && p.isAt(1, "{")) {
		p.accept("static")
		if err := p.skipBalanced(); err != nil {
			return err
		}
		p.addOther(decl, "initializer", "<init>", start)
		return nil
	}

	markers, mods, err := p.parseModifiers()
	if err != nil {
		return err
	}

	if p.isTypeDeclarationStart() {
		nested, err := p.parseTypeDeclaration(markers, mods, decl)
		if err != nil {
			return err
		}
		decl.Members = append(decl.Members, models.Member{
			Kind: models.MemberOther,
			Other: &models.OtherMember{
				Kind:     memberKindWords[nested.Kind],
				Name:     nested.Name,
				Location: nested.Location,
			},
		})
		return nil
	}

	var typeParams string
	if p.is("<") {
		if typeParams, err = p.parseTypeParamsText(); err != nil {
			return err
		}
	}

	// Constructors, compact record constructors included
	if p.isIdent() && p.peek().Value == decl.Name && (p.isAt(1, "(") || (decl.Kind == models.DeclRecord && p.isAt(1, "{"))) {
		nameTok := p.next()
		if err := p.skipUntil("{"); err != nil {
			return err
		}
		if err := p.skipBalanced(); err != nil {
			return err
		}
		p.addOther(decl, "constructor", nameTok.Value, nameTok)
		return nil
	}

	typ, err := p.parseType()
	if err != nil {
		return err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return err
	}

	if p.is("(") {
		method, err := p.parseMethod(decl, nameTok, typ, typeParams, markers, mods)
		if err != nil {
			return err
		}
		decl.Members = append(decl.Members, models.Member{Kind: models.MemberMethod, Method: method})
		return nil
	}

	field, err := p.parseField(start, nameTok)
	if err != nil {
		return err
	}
	decl.Members = append(decl.Members, models.Member{Kind: models.MemberField, Field: field})
	return nil
}

func (p *fileParser) parseMethod(decl *models.InterfaceDeclaration, nameTok lexer.Token, ret *typeNode, typeParams string, markers []models.Marker, mods models.Modifiers) (*models.MethodSignature, error) {
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	for p.is("[") && p.isAt(1, "]") {
		p.next()
		p.next()
	}

	method := &models.MethodSignature{
		Name:       nameTok.Value,
		TypeParams: typeParams,
		Params:     params,
		Return:     p.descriptor(ret),
		Declared:   mods,
		Markers:    markers,
		Location:   p.location(nameTok),
	}

	if p.accept("throws") {
		if method.Thrown, err = p.parseTypeList(); err != nil {
			return nil, err
		}
	}

	if p.accept("default") {
		valueStart := p.peek()
		if err := p.skipUntil(";"); err != nil {
			return nil, err
		}
		method.DefaultValue = p.text(valueStart, p.previous())
	}

	if p.is("{") {
		if err := p.skipBalanced(); err != nil {
			return nil, err
		}
		method.HasBody = true
	} else if _, err := p.expect(";"); err != nil {
		return nil, err
	}

	method.Modifiers = effectiveModifiers(decl.Kind, mods, method.HasBody)
	return method, nil
}

// effectiveModifiers adds the modifiers Java implies for interface members:
// public unless private, abstract unless the method has a body or is
// default, static or private
func effectiveModifiers(kind models.DeclarationKind, declared models.Modifiers, hasBody bool) models.Modifiers {
	effective := append(models.Modifiers(nil), declared...)
	if kind != models.DeclInterface && kind != models.DeclAnnotation {
		return effective
	}
	if !declared.Has(models.ModPrivate) {
		effective = effective.With(models.ModPublic)
	}
	if !hasBody && !declared.Has(models.ModDefault) && !declared.Has(models.ModStatic) && !declared.Has(models.ModPrivate) {
		effective = effective.With(models.ModAbstract)
	}
	return effective
}

func (p *fileParser) parseParameters() ([]models.Parameter, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	if p.accept(")") {
		return nil, nil
	}

	var params []models.Parameter
	for {
		start := p.peek()
		markers, _, err := p.parseModifiers()
		if err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}

		varargs := false
		for p.is("@") && !p.isAt(1, "interface") {
			if err := p.skipMarker(); err != nil {
				return nil, err
			}
		}
		if p.accept("...") {
			varargs = true
		}

		// Receiver parameters are written as Type this or Type Outer.this
		nameTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		for p.is(".") && p.isAt(1, "this") {
			p.next()
			nameTok = p.next()
		}
		for p.is("[") && p.isAt(1, "]") {
			p.next()
			p.next()
		}

		params = append(params, models.Parameter{
			Name:     nameTok.Value,
			Type:     typ.text,
			Markers:  markers,
			Varargs:  varargs,
			Raw:      p.text(start, p.previous()),
			Location: p.location(nameTok),
		})

		if p.accept(",") {
			continue
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return params, nil
	}
}

func (p *fileParser) parseField(start, nameTok lexer.Token) (*models.Field, error) {
	field := &models.Field{
		Names:    []string{nameTok.Value},
		Location: p.location(nameTok),
	}

	for {
		for p.is("[") && p.isAt(1, "]") {
			p.next()
			p.next()
		}
		// Initializers may hold generic commas, so they run to the semicolon
		if p.accept("=") {
			if err := p.skipUntil(";"); err != nil {
				return nil, err
			}
			break
		}
		if !p.accept(",") {
			break
		}
		next, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		field.Names = append(field.Names, next.Value)
	}

	end, err := p.expect(";")
	if err != nil {
		return nil, err
	}
	field.Raw = p.text(start, end)
	return field, nil
}
