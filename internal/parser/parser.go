// Package parser implements a recursive-descent, Pratt-parsed parser that
// turns a Mana token stream into an *ast.Module.
//
// Declarations and statements are parsed top-down, grammar rule by grammar
// rule. Expressions use Pratt parsing (precedence climbing): each operator
// carries a precedence (precedence.go) and parsing climbs until an operator
// of insufficient precedence is seen.
//
// Errors are accumulated rather than fatal to the first failure, so a
// caller can report every syntax problem in a file in one pass. A bad
// declaration is skipped by synchronizing to the next token that can start
// a new top-level declaration.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hassan/mana/internal/ast"
	"github.com/hassan/mana/internal/lexer"
)

// Parser converts a token stream into an *ast.Module.
type Parser struct {
	lex       *lexer.Lexer
	current   lexer.Token
	previous  lexer.Token
	errors    []error
	panicking bool
	buffered  *lexer.Token
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{lex: l}
	p.advance()
	return p
}

// ParseModule parses a complete source file into a named module.
func (p *Parser) ParseModule(name, filename string) (*ast.Module, []error) {
	mod := &ast.Module{Name: name, Filename: filename}

	for !p.isAtEnd() {
		// `///` comments are left to parseTopLevelDecl, which turns them into
		// the following declaration's doc string.
		if p.check(lexer.TokenComment) && !strings.HasPrefix(p.current.Lexeme, "///") {
			mod.Comments = append(mod.Comments, p.consumeComment())
			continue
		}
		decl := p.parseTopLevelDecl(&mod.Comments)
		if decl != nil {
			mod.Decls = append(mod.Decls, decl)
		}
	}

	return mod, p.errors
}

// --- comments & doc comments ---

func (p *Parser) consumeComment() ast.Comment {
	tok := p.current
	p.advance()
	return ast.Comment{
		Position: tok.Position,
		Text:     tok.Lexeme,
		IsBlock:  strings.HasPrefix(tok.Lexeme, "/*"),
	}
}

// captureDocComment consumes any run of leading comments, recording each in
// pending and joining the text of consecutive `///` lines into a single doc
// string for the declaration that follows.
func (p *Parser) captureDocComment(pending *[]ast.Comment) string {
	var doc []string
	for p.check(lexer.TokenComment) {
		tok := p.current
		if strings.HasPrefix(tok.Lexeme, "///") {
			doc = append(doc, strings.TrimSpace(strings.TrimPrefix(tok.Lexeme, "///")))
		}
		*pending = append(*pending, p.consumeComment())
	}
	return strings.Join(doc, "\n")
}

// --- top-level declarations ---

func (p *Parser) parseTopLevelDecl(pending *[]ast.Comment) (decl ast.Decl) {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
		}
	}()

	doc := p.captureDocComment(pending)
	if p.isAtEnd() {
		return nil
	}

	isPub := p.match(lexer.TokenPub)

	switch {
	case p.match(lexer.TokenFn):
		return p.parseFuncDecl(doc, isPub, "")
	case p.match(lexer.TokenStruct):
		return p.parseStructDecl(doc, isPub)
	case p.match(lexer.TokenEnum):
		return p.parseEnumDecl(doc, isPub, false)
	case p.match(lexer.TokenVariant):
		return p.parseEnumDecl(doc, isPub, true)
	case p.match(lexer.TokenTrait):
		return p.parseTraitDecl(doc, isPub)
	case p.match(lexer.TokenImpl):
		return p.parseImplDecl(doc)
	case p.match(lexer.TokenTypeKeyword):
		return p.parseTypeAliasDecl(doc, isPub)
	case p.match(lexer.TokenImport):
		return p.parseImportDecl(doc)
	case p.match(lexer.TokenUse):
		return p.parseUseDecl(doc, isPub)
	case p.match(lexer.TokenVar), p.match(lexer.TokenConst):
		return p.parseGlobalVarDecl(doc, isPub)
	default:
		p.errorf("expected declaration, got %s", p.current.Type)
		panic("invalid declaration")
	}
}

func (p *Parser) parseImportDecl(doc string) *ast.ImportDecl {
	pos := p.previous.Position
	decl := &ast.ImportDecl{}
	decl.Position = pos
	decl.DocComment = doc

	if p.check(lexer.TokenString) {
		decl.IsFileImport = true
		decl.Path = unquoteString(p.current.Lexeme)
		p.advance()
	} else {
		decl.Name = p.parseModulePathString()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after import")
	return decl
}

func (p *Parser) parseUseDecl(doc string, isPub bool) *ast.UseDecl {
	pos := p.previous.Position
	decl := &ast.UseDecl{IsPubReexport: isPub}
	decl.Position = pos
	decl.DocComment = doc

	decl.ModulePath = p.parseModulePathString()

	switch {
	case p.match(lexer.TokenColonColon):
		if p.match(lexer.TokenStar) {
			decl.IsGlob = true
		} else if p.match(lexer.TokenLeftBrace) {
			for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
				if p.check(lexer.TokenIdentifier) {
					decl.ImportedNames = append(decl.ImportedNames, p.current.Lexeme)
					p.advance()
				}
				if !p.match(lexer.TokenComma) {
					break
				}
			}
			p.consume(lexer.TokenRightBrace, "expected '}' after selective import list")
		}
	case p.match(lexer.TokenAs):
		if p.check(lexer.TokenIdentifier) {
			decl.Alias = p.current.Lexeme
			p.advance()
		}
	}

	p.consume(lexer.TokenSemicolon, "expected ';' after use declaration")
	return decl
}

// parseModulePathString reads `ident ( "::" ident )*` and returns it
// rejoined with "::", stopping before a trailing "::*" or "::{ ... }" used
// by use-declarations.
func (p *Parser) parseModulePathString() string {
	var segments []string
	if !p.check(lexer.TokenIdentifier) {
		p.errorf("expected module path segment, got %s", p.current.Type)
		return ""
	}
	segments = append(segments, p.current.Lexeme)
	p.advance()

	for p.check(lexer.TokenColonColon) && p.peek().Type == lexer.TokenIdentifier {
		p.advance() // consume "::"
		segments = append(segments, p.current.Lexeme)
		p.advance() // consume the segment identifier
	}
	return strings.Join(segments, "::")
}

// peek returns the token after current without consuming current, buffering
// it so the next advance() returns it instead of reading the lexer again.
// Used where a single token of lookahead disambiguates the grammar, e.g.
// telling a continuing module-path segment ("::ident") apart from a
// trailing use-declaration marker ("::*", "::{").
func (p *Parser) peek() lexer.Token {
	if p.buffered == nil {
		tok, err := p.lex.NextToken()
		if err != nil {
			tok = lexer.Token{Type: lexer.TokenInvalid}
		}
		p.buffered = &tok
	}
	return *p.buffered
}

func (p *Parser) parseGlobalVarDecl(doc string, isPub bool) *ast.GlobalVarDecl {
	isConst := p.previous.Type == lexer.TokenConst
	varStmt := p.parseVarDeclBody(isConst, isPub)
	decl := &ast.GlobalVarDecl{Var: varStmt}
	decl.Position = varStmt.Position
	decl.DocComment = doc
	return decl
}

func (p *Parser) parseFuncDecl(doc string, isPub bool, receiverType string) *ast.FuncDecl {
	pos := p.previous.Position
	isAsync := false
	isStatic := false
	isExtern := false
	isTest := false
	_ = isAsync
	_ = isStatic
	_ = isExtern
	_ = isTest

	if !p.check(lexer.TokenIdentifier) {
		p.errorf("expected function name, got %s", p.current.Type)
		panic("invalid function declaration")
	}
	name := p.current.Lexeme
	p.advance()

	typeParams, constraints := p.parseGenericParamsAndWhere()

	p.consume(lexer.TokenLeftParen, "expected '(' after function name")
	params, hasSelf := p.parseParams()
	p.consume(lexer.TokenRightParen, "expected ')' after parameters")

	returnType := ""
	if p.match(lexer.TokenArrow) {
		returnType = p.parseTypeName()
	}

	// A where clause may also follow the signature: `-> T where T: Ord {`.
	if p.check(lexer.TokenWhere) {
		_, more := p.parseGenericParamsAndWhere()
		constraints = append(constraints, more...)
	}

	var body *ast.BlockStmt
	if p.check(lexer.TokenLeftBrace) {
		body = p.parseBlockStmt()
	} else {
		p.consume(lexer.TokenSemicolon, "expected ';' after extern function signature")
	}

	decl := &ast.FuncDecl{
		Name:         name,
		ReceiverType: receiverType,
		TypeParams:   typeParams,
		Constraints:  constraints,
		Params:       params,
		ReturnType:   returnType,
		Body:         body,
		IsPub:        isPub,
		HasSelf:      hasSelf,
	}
	decl.Position = pos
	decl.DocComment = doc
	return decl
}

// parseGenericParamsAndWhere parses an optional `<T, U>` parameter list and
// an optional trailing `where T: Trait1 + Trait2, ...` clause.
func (p *Parser) parseGenericParamsAndWhere() ([]string, []ast.TypeConstraint) {
	var typeParams []string
	if p.match(lexer.TokenLess) {
		for !p.check(lexer.TokenGreater) && !p.isAtEnd() {
			if p.check(lexer.TokenIdentifier) {
				typeParams = append(typeParams, p.current.Lexeme)
				p.advance()
			}
			if !p.match(lexer.TokenComma) {
				break
			}
		}
		p.consume(lexer.TokenGreater, "expected '>' after generic parameters")
	}

	var constraints []ast.TypeConstraint
	if p.match(lexer.TokenWhere) {
		for {
			pos := p.current.Position
			if !p.check(lexer.TokenIdentifier) {
				break
			}
			typeParam := p.current.Lexeme
			p.advance()
			p.consume(lexer.TokenColon, "expected ':' in where clause")
			var traits []string
			traits = append(traits, p.parseTypeName())
			for p.match(lexer.TokenPlus) {
				traits = append(traits, p.parseTypeName())
			}
			constraints = append(constraints, ast.TypeConstraint{
				TypeParam: typeParam,
				Traits:    traits,
				Position:  pos,
			})
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	return typeParams, constraints
}

// parseParams parses a comma-separated parameter list, recognizing a
// leading bare `self` as the method receiver marker.
func (p *Parser) parseParams() ([]ast.Param, bool) {
	var params []ast.Param
	hasSelf := false

	if p.check(lexer.TokenRightParen) {
		return params, hasSelf
	}

	if p.check(lexer.TokenSelf) {
		hasSelf = true
		p.advance()
		if !p.match(lexer.TokenComma) {
			return params, hasSelf
		}
	}

	for {
		if !p.check(lexer.TokenIdentifier) {
			p.errorf("expected parameter name, got %s", p.current.Type)
			break
		}
		pos := p.current.Position
		name := p.current.Lexeme
		p.advance()
		p.consume(lexer.TokenColon, "expected ':' after parameter name")
		typeName := p.parseTypeName()

		var def ast.Expr
		if p.match(lexer.TokenAssign) {
			def = p.parseExpression()
		}

		params = append(params, ast.Param{
			Name:         name,
			TypeName:     typeName,
			DefaultValue: def,
			Position:     pos,
		})

		if !p.match(lexer.TokenComma) {
			break
		}
	}
	return params, hasSelf
}

// parseTypeName reconstructs a type expression's surface text: an optional
// leading "[]" for slice/array types, a "::"-separated name, optional
// generic arguments, and an optional trailing "?" for optional types. The AST stores
// only this string (spec §3); no separate Type node exists.
func (p *Parser) parseTypeName() string {
	var sb strings.Builder

	if p.check(lexer.TokenLeftBracket) {
		p.advance()
		p.consume(lexer.TokenRightBracket, "expected ']' in array type")
		sb.WriteString("[]")
	}

	if !p.check(lexer.TokenIdentifier) && !p.check(lexer.TokenSelf) {
		p.errorf("expected type name, got %s", p.current.Type)
		return sb.String()
	}
	sb.WriteString(p.current.Lexeme)
	p.advance()

	for p.match(lexer.TokenColonColon) {
		sb.WriteString("::")
		if p.check(lexer.TokenIdentifier) {
			sb.WriteString(p.current.Lexeme)
			p.advance()
		}
	}

	if p.match(lexer.TokenLess) {
		sb.WriteString("<")
		first := true
		for !p.check(lexer.TokenGreater) && !p.isAtEnd() {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString(p.parseTypeName())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
		p.consume(lexer.TokenGreater, "expected '>' after generic arguments")
		sb.WriteString(">")
	}

	if p.match(lexer.TokenQuestion) {
		sb.WriteString("?")
	}

	return sb.String()
}

func (p *Parser) parseStructDecl(doc string, isPub bool) *ast.StructDecl {
	pos := p.previous.Position
	if !p.check(lexer.TokenIdentifier) {
		p.errorf("expected struct name, got %s", p.current.Type)
		panic("invalid struct declaration")
	}
	name := p.current.Lexeme
	p.advance()

	typeParams, _ := p.parseGenericParamsAndWhere()

	p.consume(lexer.TokenLeftBrace, "expected '{' before struct body")
	var fields []ast.StructField
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		if p.check(lexer.TokenComment) {
			p.advance()
			continue
		}
		fpos := p.current.Position
		if !p.check(lexer.TokenIdentifier) {
			p.errorf("expected field name, got %s", p.current.Type)
			break
		}
		fname := p.current.Lexeme
		p.advance()
		p.consume(lexer.TokenColon, "expected ':' after field name")
		ftype := p.parseTypeName()
		var def ast.Expr
		if p.match(lexer.TokenAssign) {
			def = p.parseExpression()
		}
		fields = append(fields, ast.StructField{Name: fname, TypeName: ftype, DefaultValue: def, Position: fpos})
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	p.consume(lexer.TokenRightBrace, "expected '}' after struct body")

	decl := &ast.StructDecl{Name: name, TypeParams: typeParams, Fields: fields, IsPub: isPub}
	decl.Position = pos
	decl.DocComment = doc
	return decl
}

func (p *Parser) parseEnumDecl(doc string, isPub bool, declaredAsVariant bool) *ast.EnumDecl {
	pos := p.previous.Position
	if !p.check(lexer.TokenIdentifier) {
		p.errorf("expected enum name, got %s", p.current.Type)
		panic("invalid enum declaration")
	}
	name := p.current.Lexeme
	p.advance()

	p.consume(lexer.TokenLeftBrace, "expected '{' before enum body")
	var variants []ast.EnumVariant
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		if p.check(lexer.TokenComment) {
			p.advance()
			continue
		}
		variants = append(variants, p.parseEnumVariant())
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	p.consume(lexer.TokenRightBrace, "expected '}' after enum body")

	decl := &ast.EnumDecl{Name: name, Variants: variants, IsPub: isPub, DeclaredAsVariant: declaredAsVariant}
	decl.Position = pos
	decl.DocComment = doc
	return decl
}

func (p *Parser) parseEnumVariant() ast.EnumVariant {
	pos := p.current.Position
	if !p.check(lexer.TokenIdentifier) {
		p.errorf("expected variant name, got %s", p.current.Type)
		p.advance()
		return ast.EnumVariant{Position: pos}
	}
	v := ast.EnumVariant{Name: p.current.Lexeme, Position: pos}
	p.advance()

	switch {
	case p.match(lexer.TokenLeftParen):
		for !p.check(lexer.TokenRightParen) && !p.isAtEnd() {
			v.TupleTypes = append(v.TupleTypes, p.parseTypeName())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
		p.consume(lexer.TokenRightParen, "expected ')' after tuple variant types")

	case p.match(lexer.TokenLeftBrace):
		for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
			fpos := p.current.Position
			fname := p.current.Lexeme
			p.consume(lexer.TokenIdentifier, "expected field name")
			p.consume(lexer.TokenColon, "expected ':' after field name")
			ftype := p.parseTypeName()
			v.StructFields = append(v.StructFields, ast.StructField{Name: fname, TypeName: ftype, Position: fpos})
			if !p.match(lexer.TokenComma) {
				break
			}
		}
		p.consume(lexer.TokenRightBrace, "expected '}' after struct variant fields")

	case p.match(lexer.TokenAssign):
		tok := p.current
		p.consume(lexer.TokenNumber, "expected integer discriminant")
		n, err := strconv.ParseInt(tok.Lexeme, 0, 64)
		if err != nil {
			p.errorf("invalid variant discriminant: %s", tok.Lexeme)
		}
		v.HasValue = true
		v.Value = n
	}

	return v
}

func (p *Parser) parseTraitDecl(doc string, isPub bool) *ast.TraitDecl {
	pos := p.previous.Position
	if !p.check(lexer.TokenIdentifier) {
		p.errorf("expected trait name, got %s", p.current.Type)
		panic("invalid trait declaration")
	}
	name := p.current.Lexeme
	p.advance()

	p.consume(lexer.TokenLeftBrace, "expected '{' before trait body")
	decl := &ast.TraitDecl{Name: name, IsPub: isPub}
	decl.Position = pos
	decl.DocComment = doc

	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		if p.check(lexer.TokenComment) {
			p.advance()
			continue
		}
		if p.match(lexer.TokenTypeKeyword) {
			apos := p.current.Position
			aname := p.current.Lexeme
			p.consume(lexer.TokenIdentifier, "expected associated type name")
			p.consume(lexer.TokenSemicolon, "expected ';' after associated type")
			decl.AssociatedTypes = append(decl.AssociatedTypes, ast.AssociatedType{Name: aname, Position: apos})
			continue
		}
		if p.match(lexer.TokenFn) {
			decl.Methods = append(decl.Methods, p.parseTraitMethod())
			continue
		}
		p.errorf("expected trait member, got %s", p.current.Type)
		p.advance()
	}
	p.consume(lexer.TokenRightBrace, "expected '}' after trait body")
	return decl
}

func (p *Parser) parseTraitMethod() ast.TraitMethod {
	pos := p.previous.Position
	name := p.current.Lexeme
	p.consume(lexer.TokenIdentifier, "expected method name")

	p.consume(lexer.TokenLeftParen, "expected '(' after method name")
	params, hasSelf := p.parseParams()
	p.consume(lexer.TokenRightParen, "expected ')' after parameters")

	returnType := ""
	if p.match(lexer.TokenArrow) {
		returnType = p.parseTypeName()
	}

	var body *ast.BlockStmt
	if p.check(lexer.TokenLeftBrace) {
		body = p.parseBlockStmt()
	} else {
		p.consume(lexer.TokenSemicolon, "expected ';' after trait method signature")
	}

	return ast.TraitMethod{Name: name, Params: params, ReturnType: returnType, Body: body, TakesSelf: hasSelf, Position: pos}
}

func (p *Parser) parseImplDecl(doc string) *ast.ImplDecl {
	pos := p.previous.Position
	first := p.parseTypeName()

	decl := &ast.ImplDecl{}
	decl.Position = pos
	decl.DocComment = doc

	if p.match(lexer.TokenFor) {
		decl.TraitName = first
		decl.TypeName = p.parseTypeName()
	} else {
		decl.TypeName = first
	}

	p.consume(lexer.TokenLeftBrace, "expected '{' before impl body")
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		var pending []ast.Comment
		memberDoc := p.captureDocComment(&pending)
		if p.check(lexer.TokenRightBrace) {
			break
		}
		switch {
		case p.match(lexer.TokenTypeKeyword):
			tpos := p.current.Position
			tname := p.current.Lexeme
			p.consume(lexer.TokenIdentifier, "expected associated type name")
			p.consume(lexer.TokenAssign, "expected '=' in associated type assignment")
			target := p.parseTypeName()
			p.consume(lexer.TokenSemicolon, "expected ';' after associated type assignment")
			decl.TypeAssignments = append(decl.TypeAssignments, ast.TypeAssignment{Name: tname, TargetType: target, Position: tpos})

		case p.match(lexer.TokenConst):
			cpos := p.current.Position
			cname := p.current.Lexeme
			p.consume(lexer.TokenIdentifier, "expected const name")
			p.consume(lexer.TokenColon, "expected ':' after const name")
			ctype := p.parseTypeName()
			p.consume(lexer.TokenAssign, "expected '=' in const declaration")
			init := p.parseExpression()
			p.consume(lexer.TokenSemicolon, "expected ';' after const declaration")
			decl.Constants = append(decl.Constants, ast.ImplConst{Name: cname, TypeName: ctype, Init: init, Position: cpos})

		case p.match(lexer.TokenPub):
			p.consume(lexer.TokenFn, "expected 'fn' after 'pub' in impl body")
			m := p.parseFuncDecl(memberDoc, true, decl.TypeName)
			decl.Methods = append(decl.Methods, m)

		case p.match(lexer.TokenFn):
			m := p.parseFuncDecl(memberDoc, false, decl.TypeName)
			decl.Methods = append(decl.Methods, m)

		default:
			p.errorf("expected impl member, got %s", p.current.Type)
			p.advance()
		}
	}
	p.consume(lexer.TokenRightBrace, "expected '}' after impl body")
	return decl
}

func (p *Parser) parseTypeAliasDecl(doc string, isPub bool) *ast.TypeAliasDecl {
	pos := p.previous.Position
	if !p.check(lexer.TokenIdentifier) {
		p.errorf("expected type alias name, got %s", p.current.Type)
		panic("invalid type alias")
	}
	name := p.current.Lexeme
	p.advance()
	p.consume(lexer.TokenAssign, "expected '=' in type alias declaration")
	target := p.parseTypeName()
	p.consume(lexer.TokenSemicolon, "expected ';' after type alias declaration")

	decl := &ast.TypeAliasDecl{AliasName: name, TargetType: target, IsPub: isPub}
	decl.Position = pos
	decl.DocComment = doc
	return decl
}

// --- statements ---

func (p *Parser) parseStmt() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
		}
	}()

	switch {
	case p.check(lexer.TokenLeftBrace):
		return p.parseBlockStmt()
	case p.match(lexer.TokenIf):
		return p.parseIfStmt()
	case p.match(lexer.TokenWhile):
		return p.parseWhileStmt()
	case p.match(lexer.TokenFor):
		return p.parseForOrForInStmt()
	case p.match(lexer.TokenLoop):
		return p.parseLoopStmt()
	case p.match(lexer.TokenReturn):
		return p.parseReturnStmt()
	case p.match(lexer.TokenBreak):
		p.consume(lexer.TokenSemicolon, "expected ';' after 'break'")
		return &ast.BreakStmt{}
	case p.match(lexer.TokenContinue):
		p.consume(lexer.TokenSemicolon, "expected ';' after 'continue'")
		return &ast.ContinueStmt{}
	case p.match(lexer.TokenDefer):
		call := p.parseExpression()
		p.consume(lexer.TokenSemicolon, "expected ';' after 'defer'")
		return &ast.DeferStmt{Call: call}
	case p.match(lexer.TokenVar):
		return p.parseVarDeclBody(false, false)
	case p.match(lexer.TokenConst):
		return p.parseVarDeclBody(true, false)
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	pos := p.current.Position
	p.consume(lexer.TokenLeftBrace, "expected '{'")
	block := &ast.BlockStmt{}
	block.Position = pos
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		if p.check(lexer.TokenComment) {
			p.advance()
			continue
		}
		block.Stmts = append(block.Stmts, p.parseStmt())
	}
	p.consume(lexer.TokenRightBrace, "expected '}'")
	return block
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	pos := p.previous.Position
	cond := p.parseExpression()
	then := p.parseBlockStmt()

	stmt := &ast.IfStmt{Cond: cond, Then: then}
	stmt.Position = pos

	if p.match(lexer.TokenElse) {
		if p.match(lexer.TokenIf) {
			stmt.Else = p.parseIfStmt()
		} else {
			stmt.Else = p.parseBlockStmt()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	pos := p.previous.Position
	cond := p.parseExpression()
	body := p.parseBlockStmt()
	stmt := &ast.WhileStmt{Cond: cond, Body: body}
	stmt.Position = pos
	return stmt
}

func (p *Parser) parseLoopStmt() *ast.LoopStmt {
	pos := p.previous.Position
	body := p.parseBlockStmt()
	stmt := &ast.LoopStmt{Body: body}
	stmt.Position = pos
	return stmt
}

// parseForOrForInStmt disambiguates `for ident in expr { }` from the
// classic C-style `for init; cond; post { }` by probing for `in` after a
// single leading identifier.
func (p *Parser) parseForOrForInStmt() ast.Stmt {
	pos := p.previous.Position

	if p.check(lexer.TokenIdentifier) {
		name := p.current.Lexeme
		save := p.current
		p.advance()
		if p.match(lexer.TokenIn) {
			iterable := p.parseExpression()
			body := p.parseBlockStmt()
			stmt := &ast.ForInStmt{Binding: name, Iterable: iterable, Body: body}
			stmt.Position = pos
			return stmt
		}
		// Not a for-in: synthesize the consumed identifier back into an
		// expression statement/init clause of a classic for loop.
		identExpr := &ast.IdentifierExpr{Name: save.Lexeme}
		identExpr.Position = save.Position
		return p.parseClassicForStmt(pos, identExpr)
	}

	return p.parseClassicForStmt(pos, nil)
}

func (p *Parser) parseClassicForStmt(pos lexer.Position, leadingExpr ast.Expr) *ast.ForStmt {
	var init ast.Stmt
	switch {
	case leadingExpr != nil:
		init = p.finishExprOrAssignStmt(leadingExpr)
	case p.match(lexer.TokenVar):
		init = p.parseVarDeclBody(false, false)
	case p.match(lexer.TokenConst):
		init = p.parseVarDeclBody(true, false)
	case !p.check(lexer.TokenSemicolon):
		init = p.parseExprOrAssignStmt()
	default:
		p.consume(lexer.TokenSemicolon, "expected ';' in for loop init")
	}

	var cond ast.Expr
	if !p.check(lexer.TokenSemicolon) {
		cond = p.parseExpression()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after for loop condition")

	// The post clause has no ';' of its own: the loop body follows it.
	var post ast.Stmt
	if !p.check(lexer.TokenLeftBrace) {
		postExpr := p.parseExpression()
		if isAssignOp(p.current.Type) {
			op := p.current.Type
			p.advance()
			assign := &ast.AssignStmt{Target: postExpr, Operator: op, Value: p.parseExpression()}
			assign.Position = postExpr.Pos()
			post = assign
		} else {
			exprStmt := &ast.ExprStmt{Expr: postExpr}
			exprStmt.Position = postExpr.Pos()
			post = exprStmt
		}
	}

	body := p.parseBlockStmt()
	stmt := &ast.ForStmt{Init: init, Cond: cond, Post: post, Body: body}
	stmt.Position = pos
	return stmt
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	pos := p.previous.Position
	var value ast.Expr
	if !p.check(lexer.TokenSemicolon) {
		value = p.parseExpression()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after return statement")
	stmt := &ast.ReturnStmt{Value: value}
	stmt.Position = pos
	return stmt
}

func (p *Parser) parseVarDeclBody(isConst, isPub bool) *ast.VarDeclStmt {
	pos := p.previous.Position
	if !p.check(lexer.TokenIdentifier) {
		p.errorf("expected variable name, got %s", p.current.Type)
		panic("invalid variable declaration")
	}
	name := p.current.Lexeme
	p.advance()

	typeName := ""
	if p.match(lexer.TokenColon) {
		typeName = p.parseTypeName()
	}

	var init ast.Expr
	if p.match(lexer.TokenAssign) {
		init = p.parseExpression()
	}

	p.consume(lexer.TokenSemicolon, "expected ';' after variable declaration")

	stmt := &ast.VarDeclStmt{Name: name, TypeName: typeName, Init: init, IsConst: isConst, IsPub: isPub}
	stmt.Position = pos
	return stmt
}

// parseExprOrAssignStmt parses an expression statement, promoting it to an
// AssignStmt when followed by an assignment operator.
func (p *Parser) parseExprOrAssignStmt() ast.Stmt {
	expr := p.parseExpression()
	return p.finishExprOrAssignStmt(expr)
}

func (p *Parser) finishExprOrAssignStmt(expr ast.Expr) ast.Stmt {
	if isAssignOp(p.current.Type) {
		op := p.current.Type
		p.advance()
		value := p.parseExpression()
		p.consume(lexer.TokenSemicolon, "expected ';' after assignment")
		stmt := &ast.AssignStmt{Target: expr, Operator: op, Value: value}
		stmt.Position = expr.Pos()
		return stmt
	}
	// A block's final expression may omit its ';': `{ 0 }`.
	if !p.check(lexer.TokenRightBrace) {
		p.consume(lexer.TokenSemicolon, "expected ';' after expression")
	}
	stmt := &ast.ExprStmt{Expr: expr}
	stmt.Position = expr.Pos()
	return stmt
}

func isAssignOp(t lexer.TokenType) bool {
	switch t {
	case lexer.TokenAssign, lexer.TokenPlusEq, lexer.TokenMinusEq, lexer.TokenStarEq,
		lexer.TokenSlashEq, lexer.TokenPercentEq, lexer.TokenAndEq, lexer.TokenOrEq,
		lexer.TokenXorEq, lexer.TokenShlEq, lexer.TokenShrEq:
		return true
	default:
		return false
	}
}

// --- expressions (Pratt parsing) ---

func (p *Parser) parseExpression() ast.Expr {
	return p.parsePrecedence(PrecAssignment + 1)
}

func (p *Parser) parsePrecedence(min Precedence) ast.Expr {
	left := p.parsePrefix()
	if left == nil {
		p.errorf("expected expression, got %s", p.current.Type)
		return nil
	}

	for min <= getPrecedence(p.current.Type) {
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expr {
	switch p.current.Type {
	case lexer.TokenNumber:
		return p.parseNumberLiteral()
	case lexer.TokenString:
		return p.parseStringLiteral()
	case lexer.TokenFString:
		return p.parseFStringLiteral()
	case lexer.TokenChar:
		return p.parseCharLiteral()
	case lexer.TokenTrue, lexer.TokenFalse:
		return p.parseBoolLiteral()
	case lexer.TokenNone:
		e := &ast.NoneExpr{}
		e.Position = p.current.Position
		p.advance()
		return e
	case lexer.TokenSelf:
		e := &ast.SelfExpr{}
		e.Position = p.current.Position
		p.advance()
		return e
	case lexer.TokenIdentifier:
		return p.parseIdentifierOrStructLiteral()
	case lexer.TokenLeftParen:
		return p.parseParenOrTuple()
	case lexer.TokenLeftBracket:
		return p.parseArrayLiteral()
	case lexer.TokenMatch:
		return p.parseMatchExpr()
	case lexer.TokenIf:
		return p.parseIfExpr()
	case lexer.TokenFn:
		return p.parseClosureExpr()
	case lexer.TokenAwait:
		return p.parseAwaitExpr()
	case lexer.TokenMinus, lexer.TokenNot, lexer.TokenBitNot,
		lexer.TokenPlusPlus, lexer.TokenMinusMinus:
		return p.parseUnary()
	case lexer.TokenDotDot, lexer.TokenDotDotEq:
		return p.parseRangeExpr(nil)
	default:
		return nil
	}
}

func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	switch p.current.Type {
	case lexer.TokenPlus, lexer.TokenMinus, lexer.TokenStar, lexer.TokenSlash,
		lexer.TokenPercent, lexer.TokenStarStar,
		lexer.TokenEqual, lexer.TokenNotEqual,
		lexer.TokenLess, lexer.TokenLessEqual, lexer.TokenGreater, lexer.TokenGreaterEqual,
		lexer.TokenBitAnd, lexer.TokenBitOr, lexer.TokenBitXor,
		lexer.TokenShl, lexer.TokenShr:
		return p.parseBinary(left)

	case lexer.TokenAnd, lexer.TokenOr:
		return p.parseBinary(left)

	case lexer.TokenQuestionQuestion:
		op := p.current
		p.advance()
		right := p.parsePrecedence(PrecNullCoalesce + 1)
		e := &ast.NullCoalesceExpr{Left: left, Right: right}
		e.Position = op.Position
		return e

	case lexer.TokenDotDot, lexer.TokenDotDotEq:
		return p.parseRangeExpr(left)

	case lexer.TokenAs:
		p.advance()
		target := p.parseTypeName()
		e := &ast.CastExpr{Operand: left, TargetType: target}
		e.Position = left.Pos()
		return e

	case lexer.TokenDot:
		return p.parseMemberOrMethodOrTupleIndex(left)

	case lexer.TokenQuestionDot:
		p.advance()
		name := p.current.Lexeme
		p.consume(lexer.TokenIdentifier, "expected member name after '?.'")
		e := &ast.OptionalChainExpr{Object: left, Member: name}
		e.Position = left.Pos()
		return e

	case lexer.TokenQuestion:
		p.advance()
		e := &ast.TryExpr{Operand: left}
		e.Position = left.Pos()
		return e

	case lexer.TokenColonColon:
		p.advance()
		name := p.current.Lexeme
		p.consume(lexer.TokenIdentifier, "expected name after '::'")
		e := &ast.ScopeAccessExpr{Scope: left, Name: name}
		e.Position = left.Pos()
		return e

	case lexer.TokenLeftParen:
		return p.parseCall(left)

	case lexer.TokenLeftBracket:
		return p.parseIndexOrSlice(left)

	case lexer.TokenPlusPlus, lexer.TokenMinusMinus:
		op := p.current
		p.advance()
		e := &ast.UnaryExpr{Operator: op.Type, Operand: left, IsPostfix: true}
		e.Position = left.Pos()
		return e

	default:
		return left
	}
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	op := p.current
	prec := getPrecedence(op.Type)
	p.advance()
	if isRightAssociative(op.Type) {
		prec--
	}
	right := p.parsePrecedence(prec + 1)
	e := &ast.BinaryExpr{Left: left, Operator: op.Type, Right: right}
	e.Position = left.Pos()
	return e
}

func (p *Parser) parseUnary() ast.Expr {
	op := p.current
	p.advance()
	operand := p.parsePrecedence(PrecUnary)
	e := &ast.UnaryExpr{Operator: op.Type, Operand: operand, IsPostfix: false}
	e.Position = op.Position
	return e
}

func (p *Parser) parseAwaitExpr() ast.Expr {
	pos := p.current.Position
	p.advance()
	operand := p.parsePrecedence(PrecUnary)
	e := &ast.AwaitExpr{Operand: operand}
	e.Position = pos
	return e
}

func (p *Parser) parseRangeExpr(start ast.Expr) ast.Expr {
	pos := p.current.Position
	if start != nil {
		pos = start.Pos()
	}
	inclusive := p.current.Type == lexer.TokenDotDotEq
	p.advance()

	var end ast.Expr
	if getPrecedence(p.current.Type) >= PrecRange || p.canStartExpr() {
		end = p.parsePrecedence(PrecRange + 1)
	}
	e := &ast.RangeExpr{Start: start, End: end, Inclusive: inclusive}
	e.Position = pos
	return e
}

// canStartExpr reports whether the current token can begin a prefix
// expression, used to decide whether a range has an explicit end operand.
func (p *Parser) canStartExpr() bool {
	switch p.current.Type {
	case lexer.TokenRightBracket, lexer.TokenRightParen, lexer.TokenRightBrace,
		lexer.TokenComma, lexer.TokenSemicolon, lexer.TokenEOF:
		return false
	default:
		return true
	}
}

func (p *Parser) parseNumberLiteral() ast.Expr {
	tok := p.current
	p.advance()
	e := &ast.LiteralExpr{}
	e.Position = tok.Position

	if !strings.ContainsAny(tok.Lexeme, ".eE") {
		if n, err := strconv.ParseInt(tok.Lexeme, 10, 64); err == nil {
			e.LitKind = ast.LiteralInt
			e.Value = n
			return e
		}
	}
	f, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		p.errorf("invalid number literal: %s", tok.Lexeme)
	}
	e.LitKind = ast.LiteralFloat
	e.Value = f
	return e
}

func (p *Parser) parseStringLiteral() ast.Expr {
	tok := p.current
	p.advance()
	e := &ast.LiteralExpr{LitKind: ast.LiteralString, Value: unquoteString(tok.Lexeme)}
	e.Position = tok.Position
	return e
}

func (p *Parser) parseCharLiteral() ast.Expr {
	tok := p.current
	p.advance()
	s := tok.Lexeme
	if len(s) < 3 {
		p.errorf("invalid character literal: %s", s)
		e := &ast.LiteralExpr{LitKind: ast.LiteralChar, Value: rune(0)}
		e.Position = tok.Position
		return e
	}
	body := s[1 : len(s)-1]
	var r rune
	if strings.HasPrefix(body, "\\") && len(body) >= 2 {
		r = unescapeChar(body[1])
	} else {
		for _, ch := range body {
			r = ch
			break
		}
	}
	e := &ast.LiteralExpr{LitKind: ast.LiteralChar, Value: r}
	e.Position = tok.Position
	return e
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	tok := p.current
	p.advance()
	e := &ast.LiteralExpr{LitKind: ast.LiteralBool, Value: tok.Type == lexer.TokenTrue}
	e.Position = tok.Position
	return e
}

// parseFStringLiteral splits the raw `f"...{expr}..."` lexeme into literal
// and interpolation parts, reparsing each `{...}` span as a full
// sub-expression with its own lexer/parser instance.
func (p *Parser) parseFStringLiteral() ast.Expr {
	tok := p.current
	p.advance()

	body := tok.Lexeme
	if len(body) >= 2 {
		body = body[2 : len(body)-1] // strip leading f" and trailing "
	}

	e := &ast.FStringExpr{}
	e.Position = tok.Position

	var literal strings.Builder
	depth := 0
	var exprSrc strings.Builder
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case ch == '{' && depth == 0:
			if literal.Len() > 0 {
				e.Parts = append(e.Parts, ast.FStringPart{Literal: literal.String()})
				literal.Reset()
			}
			depth = 1
		case ch == '{' && depth > 0:
			depth++
			exprSrc.WriteByte(ch)
		case ch == '}' && depth == 1:
			depth = 0
			sub := parseSubExpression(exprSrc.String(), tok.Position.Filename)
			e.Parts = append(e.Parts, ast.FStringPart{Expr: sub})
			exprSrc.Reset()
		case ch == '}' && depth > 1:
			depth--
			exprSrc.WriteByte(ch)
		case depth > 0:
			exprSrc.WriteByte(ch)
		default:
			literal.WriteByte(ch)
		}
	}
	if literal.Len() > 0 {
		e.Parts = append(e.Parts, ast.FStringPart{Literal: literal.String()})
	}
	return e
}

// parseSubExpression parses a standalone expression fragment, used for
// f-string interpolations. Errors are swallowed into an IdentifierExpr
// placeholder; the outer parser's own error list already reflects the
// file's health from its own grammar rules.
func parseSubExpression(src, filename string) ast.Expr {
	sub := New(lexer.New(src, filename))
	expr := sub.parseExpression()
	if expr == nil {
		e := &ast.IdentifierExpr{Name: src}
		return e
	}
	return expr
}

func (p *Parser) parseIdentifierOrStructLiteral() ast.Expr {
	tok := p.current
	p.advance()

	if p.check(lexer.TokenLeftBrace) && p.looksLikeStructLiteral() {
		return p.parseStructLiteralBody(tok.Lexeme, tok.Position)
	}

	e := &ast.IdentifierExpr{Name: tok.Lexeme}
	e.Position = tok.Position
	return e
}

// looksLikeStructLiteral exists because `{` also opens if/while/for/match
// bodies, whose head expressions are parsed through parsePrefix too. With
// the current token on `{`, it reports a struct literal when the braces are
// empty or open with `field:`; anything else is taken as a block.
func (p *Parser) looksLikeStructLiteral() bool {
	next := p.peek()
	if next.Type == lexer.TokenRightBrace {
		return true
	}
	if next.Type != lexer.TokenIdentifier {
		return false
	}
	probe := *p.lex // copy, so the lookahead leaves the real lexer untouched
	after, err := probe.NextToken()
	return err == nil && after.Type == lexer.TokenColon
}

func (p *Parser) parseStructLiteralBody(typeName string, pos lexer.Position) ast.Expr {
	p.consume(lexer.TokenLeftBrace, "expected '{'")
	e := &ast.StructLiteralExpr{TypeName: typeName}
	e.Position = pos

	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		fpos := p.current.Position
		fname := p.current.Lexeme
		p.consume(lexer.TokenIdentifier, "expected field name")
		p.consume(lexer.TokenColon, "expected ':' after field name")
		value := p.parseExpression()
		e.Fields = append(e.Fields, ast.FieldInit{Name: fname, Value: value, Position: fpos})
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	p.consume(lexer.TokenRightBrace, "expected '}' after struct literal fields")
	return e
}

func (p *Parser) parseParenOrTuple() ast.Expr {
	pos := p.current.Position
	p.advance()

	if p.match(lexer.TokenRightParen) {
		e := &ast.TupleExpr{}
		e.Position = pos
		return e
	}

	first := p.parseExpression()
	if p.check(lexer.TokenComma) {
		elems := []ast.Expr{first}
		for p.match(lexer.TokenComma) {
			if p.check(lexer.TokenRightParen) {
				break
			}
			elems = append(elems, p.parseExpression())
		}
		p.consume(lexer.TokenRightParen, "expected ')' after tuple elements")
		e := &ast.TupleExpr{Elements: elems}
		e.Position = pos
		return e
	}

	p.consume(lexer.TokenRightParen, "expected ')' after expression")
	return first
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	pos := p.current.Position
	p.advance()
	e := &ast.ArrayLiteralExpr{}
	e.Position = pos

	if !p.check(lexer.TokenRightBracket) {
		for {
			e.Elements = append(e.Elements, p.parseExpression())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightBracket, "expected ']' after array elements")
	return e
}

func (p *Parser) parseMemberOrMethodOrTupleIndex(left ast.Expr) ast.Expr {
	p.advance() // consume '.'

	if p.check(lexer.TokenNumber) {
		idx, err := strconv.Atoi(p.current.Lexeme)
		if err != nil {
			p.errorf("invalid tuple index: %s", p.current.Lexeme)
		}
		p.advance()
		e := &ast.TupleIndexExpr{Object: left, Index: idx}
		e.Position = left.Pos()
		return e
	}

	if p.check(lexer.TokenAwait) {
		p.advance()
		e := &ast.AwaitExpr{Operand: left}
		e.Position = left.Pos()
		return e
	}

	name := p.current.Lexeme
	p.consume(lexer.TokenIdentifier, "expected member name after '.'")

	if p.check(lexer.TokenLeftParen) {
		p.advance()
		var args []ast.Expr
		if !p.check(lexer.TokenRightParen) {
			for {
				args = append(args, p.parseExpression())
				if !p.match(lexer.TokenComma) {
					break
				}
			}
		}
		p.consume(lexer.TokenRightParen, "expected ')' after method arguments")
		e := &ast.MethodCallExpr{Receiver: left, Method: name, Args: args}
		e.Position = left.Pos()
		return e
	}

	e := &ast.MemberAccessExpr{Object: left, Member: name}
	e.Position = left.Pos()
	return e
}

func (p *Parser) parseCall(left ast.Expr) ast.Expr {
	p.advance()
	var args []ast.Expr
	if !p.check(lexer.TokenRightParen) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' after arguments")
	e := &ast.CallExpr{Callee: left, Args: args}
	e.Position = left.Pos()
	return e
}

func (p *Parser) parseIndexOrSlice(left ast.Expr) ast.Expr {
	p.advance()

	if p.check(lexer.TokenDotDot) || p.check(lexer.TokenDotDotEq) {
		rangeExpr := p.parseRangeExpr(nil).(*ast.RangeExpr)
		p.consume(lexer.TokenRightBracket, "expected ']' after slice range")
		e := &ast.SliceExpr{Object: left, Start: rangeExpr.Start, End: rangeExpr.End}
		e.Position = left.Pos()
		return e
	}

	first := p.parseExpression()
	if p.check(lexer.TokenDotDot) || p.check(lexer.TokenDotDotEq) {
		rangeExpr := p.parseRangeExpr(first).(*ast.RangeExpr)
		p.consume(lexer.TokenRightBracket, "expected ']' after slice range")
		e := &ast.SliceExpr{Object: left, Start: rangeExpr.Start, End: rangeExpr.End}
		e.Position = left.Pos()
		return e
	}

	p.consume(lexer.TokenRightBracket, "expected ']' after index")
	e := &ast.IndexExpr{Object: left, Index: first}
	e.Position = left.Pos()
	return e
}

func (p *Parser) parseIfExpr() ast.Expr {
	pos := p.current.Position
	p.advance()
	cond := p.parseExpression()
	p.consume(lexer.TokenLeftBrace, "expected '{' after if condition")
	then := p.parseExpression()
	p.consume(lexer.TokenRightBrace, "expected '}' after if-expression then branch")
	p.consume(lexer.TokenElse, "expected 'else' in if-expression")
	p.consume(lexer.TokenLeftBrace, "expected '{' after 'else'")
	elseExpr := p.parseExpression()
	p.consume(lexer.TokenRightBrace, "expected '}' after if-expression else branch")

	e := &ast.IfExpr{Cond: cond, Then: then, Else: elseExpr}
	e.Position = pos
	return e
}

func (p *Parser) parseClosureExpr() ast.Expr {
	pos := p.current.Position
	p.advance()
	p.consume(lexer.TokenLeftParen, "expected '(' after 'fn' in closure")
	params, _ := p.parseParams()
	p.consume(lexer.TokenRightParen, "expected ')' after closure parameters")
	if p.match(lexer.TokenArrow) {
		p.parseTypeName()
	}
	body := p.parseBlockStmt()
	e := &ast.ClosureExpr{Params: params, Body: body}
	e.Position = pos
	return e
}

func (p *Parser) parseMatchExpr() ast.Expr {
	pos := p.current.Position
	p.advance()
	subject := p.parseExpression()
	p.consume(lexer.TokenLeftBrace, "expected '{' after match subject")

	e := &ast.MatchExpr{Subject: subject}
	e.Position = pos

	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		arm := p.parseMatchArm()
		e.Arms = append(e.Arms, arm)
		p.match(lexer.TokenComma)
	}
	p.consume(lexer.TokenRightBrace, "expected '}' after match arms")
	return e
}

func (p *Parser) parseMatchArm() ast.MatchArm {
	pos := p.current.Position
	pattern := p.parseMatchPattern()

	var guard ast.Expr
	if p.match(lexer.TokenIf) {
		guard = p.parseExpression()
	}
	p.consume(lexer.TokenFatArrow, "expected '=>' after match pattern")
	body := p.parseExpression()

	return ast.MatchArm{Pattern: pattern, Guard: guard, Body: body, Position: pos}
}

// parseMatchPattern recognizes Some/None/Ok/Err option patterns,
// Enum::Variant destructures, literals, and a bare identifier catch-all.
func (p *Parser) parseMatchPattern() ast.Expr {
	pos := p.current.Position

	if p.check(lexer.TokenIdentifier) {
		name := p.current.Lexeme
		switch name {
		case "Some", "Ok", "Err":
			p.advance()
			p.consume(lexer.TokenLeftParen, "expected '(' after option pattern constructor")
			binding := ""
			if p.check(lexer.TokenIdentifier) {
				binding = p.current.Lexeme
				p.advance()
			}
			p.consume(lexer.TokenRightParen, "expected ')' after option pattern binding")
			pat := &ast.OptionPattern{Constructor: name, Binding: binding}
			pat.Position = pos
			return pat
		case "None":
			p.advance()
			pat := &ast.OptionPattern{Constructor: "None"}
			pat.Position = pos
			return pat
		}

		p.advance()
		if p.match(lexer.TokenColonColon) {
			variant := p.current.Lexeme
			p.consume(lexer.TokenIdentifier, "expected variant name after '::'")
			pat := &ast.EnumPattern{EnumName: name, VariantName: variant}
			pat.Position = pos

			switch {
			case p.match(lexer.TokenLeftParen):
				for !p.check(lexer.TokenRightParen) && !p.isAtEnd() {
					if p.check(lexer.TokenIdentifier) {
						pat.TupleBinds = append(pat.TupleBinds, p.current.Lexeme)
						p.advance()
					}
					if !p.match(lexer.TokenComma) {
						break
					}
				}
				p.consume(lexer.TokenRightParen, "expected ')' after tuple pattern binds")

			case p.match(lexer.TokenLeftBrace):
				pat.FieldBinds = map[string]string{}
				for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
					field := p.current.Lexeme
					p.consume(lexer.TokenIdentifier, "expected field name in pattern")
					bound := field
					if p.match(lexer.TokenColon) {
						bound = p.current.Lexeme
						p.consume(lexer.TokenIdentifier, "expected bound name after ':'")
					}
					pat.FieldBinds[field] = bound
					if !p.match(lexer.TokenComma) {
						break
					}
				}
				p.consume(lexer.TokenRightBrace, "expected '}' after struct pattern binds")
			}
			return pat
		}

		e := &ast.IdentifierExpr{Name: name}
		e.Position = pos
		return e
	}

	return p.parsePrecedence(PrecOr)
}

// --- token-stream helpers ---

func (p *Parser) advance() {
	p.previous = p.current
	if p.buffered != nil {
		p.current = *p.buffered
		p.buffered = nil
		return
	}
	tok, err := p.lex.NextToken()
	if err != nil {
		p.errorf("%s", err)
		p.current = lexer.Token{Type: lexer.TokenInvalid}
		return
	}
	p.current = tok
}

func (p *Parser) check(t lexer.TokenType) bool { return p.current.Type == t }

func (p *Parser) match(t lexer.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(t lexer.TokenType, message string) {
	if p.check(t) {
		p.advance()
		return
	}
	p.errorf("%s", message)
	panic(message)
}

func (p *Parser) isAtEnd() bool { return p.current.Type == lexer.TokenEOF }

func (p *Parser) errorf(format string, args ...interface{}) {
	if p.panicking {
		return
	}
	p.panicking = true
	p.errors = append(p.errors, fmt.Errorf("%s: %s", p.current.Position.String(), fmt.Sprintf(format, args...)))
}

// synchronize skips tokens until the start of a top-level declaration so
// one bad declaration does not prevent parsing the rest of the file.
func (p *Parser) synchronize() {
	p.panicking = false
	for !p.isAtEnd() {
		if p.previous.Type == lexer.TokenSemicolon || p.previous.Type == lexer.TokenRightBrace {
			return
		}
		switch p.current.Type {
		case lexer.TokenFn, lexer.TokenStruct, lexer.TokenEnum, lexer.TokenVariant,
			lexer.TokenTrait, lexer.TokenImpl, lexer.TokenTypeKeyword, lexer.TokenImport,
			lexer.TokenUse, lexer.TokenVar, lexer.TokenConst, lexer.TokenPub:
			return
		}
		p.advance()
	}
}

func unquoteString(lexeme string) string {
	if len(lexeme) < 2 {
		return ""
	}
	s := lexeme[1 : len(lexeme)-1]
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			sb.WriteRune(unescapeChar(s[i+1]))
			i++
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func unescapeChar(c byte) rune {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '\\':
		return '\\'
	case '"':
		return '"'
	case '\'':
		return '\''
	default:
		return rune(c)
	}
}
