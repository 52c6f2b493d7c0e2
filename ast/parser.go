package ast

import (
	"fmt"
	"strconv"
	"strings"

	cerr "github.com/toycpp/toycpp/error"
	"github.com/toycpp/toycpp/lexer"
)

// Parse consumes the whole token stream and builds the program: a sequence
// of function definitions, each a basic return type, a name, an empty
// parameter list, and a braced statement body.
func Parse(lex *lexer.Lexer) (*Program, error) {
	prog := &Program{}

	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.Eof {
			break
		}
		if tok.Kind != lexer.BasicType {
			return nil, unexpected(tok, "a function definition")
		}

		fn, err := parseFunction(lex, tok)
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
	}

	return prog, nil
}

func parseFunction(lex *lexer.Lexer, returnType lexer.Token) (*Function, error) {
	name, err := lex.Expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if err := lex.Eat(lexer.LParen); err != nil {
		return nil, err
	}
	if err := lex.Eat(lexer.RParen); err != nil {
		return nil, err
	}
	if err := lex.Eat(lexer.LBracket); err != nil {
		return nil, err
	}

	fn := &Function{
		ReturnType: TypeFromToken(returnType),
		Name:       name.Lexeme,
	}

	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}

		var stmt Stmt
		switch tok.Kind {
		case lexer.RBracket:
			return fn, nil
		case lexer.Eof:
			return nil, unexpected(tok, "a statement or '}'")
		case lexer.BasicType:
			stmt, err = parseVarDecl(lex, tok)
		case lexer.Identifier:
			if tok.Lexeme == "asm" {
				stmt, err = parseInlineAsm(lex)
			} else {
				stmt, err = parseCallOrAssign(lex, tok)
			}
		case lexer.Keyword:
			if tok.Lexeme != "return" {
				return nil, unexpected(tok, "a statement")
			}
			stmt, err = parseReturn(lex)
		default:
			return nil, unexpected(tok, "a statement")
		}
		if err != nil {
			return nil, err
		}
		fn.Body = append(fn.Body, stmt)
	}
}

// parseVarDecl parses 'type name (, name)* ;'.
func parseVarDecl(lex *lexer.Lexer, typeTok lexer.Token) (Stmt, error) {
	decl := &VarDecl{Type: TypeFromToken(typeTok)}

	for {
		name, err := lex.Expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		decl.Names = append(decl.Names, name.Lexeme)

		sep, err := lex.Next()
		if err != nil {
			return nil, err
		}
		switch sep.Kind {
		case lexer.Comma:
			continue
		case lexer.Semicolon:
			return decl, nil
		default:
			return nil, unexpected(sep, "',' or ';'")
		}
	}
}

// parseInlineAsm parses 'asm ( StringLiteral* ) ;'. Consecutive string
// literals concatenate; escape sequences for newline, carriage return, and
// backslash are interpreted, and any other escaped character stands for
// itself (the backslash is dropped).
func parseInlineAsm(lex *lexer.Lexer) (Stmt, error) {
	if err := lex.Eat(lexer.LParen); err != nil {
		return nil, err
	}

	var text strings.Builder
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.RParen {
			break
		}
		if tok.Kind != lexer.StringLiteral {
			return nil, unexpected(tok, "a string literal or ')'")
		}
		text.WriteString(unescape(tok.Lexeme))
	}

	if err := lex.Eat(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &InlineAsm{Text: text.String()}, nil
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			default:
				c = s[i]
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// parseCallOrAssign disambiguates 'name();' from 'name = expression;'.
func parseCallOrAssign(lex *lexer.Lexer, name lexer.Token) (Stmt, error) {
	tok, err := lex.Next()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case lexer.LParen:
		if err := lex.Eat(lexer.RParen); err != nil {
			return nil, err
		}
		if err := lex.Eat(lexer.Semicolon); err != nil {
			return nil, err
		}
		return &CallStmt{Callee: name.Lexeme}, nil
	case lexer.Equal:
		value, err := parseExpression(lex)
		if err != nil {
			return nil, err
		}
		if err := lex.Eat(lexer.Semicolon); err != nil {
			return nil, err
		}
		return &Assign{Name: name.Lexeme, Value: value}, nil
	}
	return nil, unexpected(tok, "'(' or '='")
}

func parseReturn(lex *lexer.Lexer) (Stmt, error) {
	ret := &Return{}

	tok, err := lex.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != lexer.Semicolon {
		ret.Value, err = parseExpression(lex)
		if err != nil {
			return nil, err
		}
	}

	if err := lex.Eat(lexer.Semicolon); err != nil {
		return nil, err
	}
	return ret, nil
}

// parseExpression parses a primary, optionally followed by '+' and another
// expression. Addition chains therefore nest to the right.
func parseExpression(lex *lexer.Lexer) (Expr, error) {
	tok, err := lex.Next()
	if err != nil {
		return nil, err
	}

	var lhs Expr
	switch tok.Kind {
	case lexer.NumberLiteral:
		value, err := strconv.Atoi(tok.Lexeme)
		if err != nil {
			return nil, unexpected(tok, "an integer literal")
		}
		lhs = &IntLit{Value: value}
	case lexer.StringLiteral:
		lhs = &StrLit{Value: tok.Lexeme}
	case lexer.Identifier:
		lhs = &VarRef{Name: tok.Lexeme}
	default:
		return nil, unexpected(tok, "an expression")
	}

	next, err := lex.Peek()
	if err != nil {
		return nil, err
	}
	if next.Kind == lexer.Plus {
		if err := lex.Eat(lexer.Plus); err != nil {
			return nil, err
		}
		rhs, err := parseExpression(lex)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: BinAdd, LHS: lhs, RHS: rhs}, nil
	}
	return lhs, nil
}

func unexpected(tok lexer.Token, expected string) error {
	return &cerr.CompileError{
		Cause:      fmt.Errorf("unexpected token %v; expected %s", tok, expected),
		File:       tok.Loc.File,
		StartLine:  tok.Loc.StartLine,
		StartCol:   tok.Loc.StartCol,
		EndLine:    tok.Loc.EndLine,
		EndCol:     tok.Loc.EndCol,
		SourceLine: tok.Loc.Line,
		Code:       cerr.ExitFailure,
	}
}
