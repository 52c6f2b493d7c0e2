// Package ast holds the typed syntax tree the code generator consumes, and a
// hand-written parser that builds it straight from the token stream.
package ast

import (
	"fmt"
	"strconv"

	"github.com/toycpp/toycpp/lexer"
)

type TypeKind int

const (
	Void TypeKind = iota
	Char
	Int
	Float
	Double
	Bool
	Auto
	Class
)

// Type is a variable or return type. Kind is derived from the name; any
// basic-type name that is not built in counts as a class type.
type Type struct {
	Kind TypeKind
	Name string
}

func TypeFromToken(t lexer.Token) Type {
	kind := Class
	switch t.Lexeme {
	case "void":
		kind = Void
	case "char":
		kind = Char
	case "int":
		kind = Int
	case "float":
		kind = Float
	case "double":
		kind = Double
	case "bool":
		kind = Bool
	case "auto":
		kind = Auto
	}
	return Type{Kind: kind, Name: t.Lexeme}
}

type UnaryOpKind int

const (
	UnaryNot UnaryOpKind = iota
	UnaryNegate
	UnaryAddress
	UnaryDeref
)

func (op UnaryOpKind) String() string {
	switch op {
	case UnaryNot:
		return "!"
	case UnaryNegate:
		return "-"
	case UnaryAddress:
		return "&"
	case UnaryDeref:
		return "*"
	}
	return "?"
}

type BinaryOpKind int

const (
	BinAdd BinaryOpKind = iota
	BinSub
	BinDiv
	BinMul
	BinMod
	BinEqual
	BinNotEqual
	BinLessThan
	BinGreaterThan
	BinLessThanOrEqual
	BinGreaterThanOrEqual
)

func (op BinaryOpKind) String() string {
	switch op {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinDiv:
		return "/"
	case BinMul:
		return "*"
	case BinMod:
		return "%"
	case BinEqual:
		return "=="
	case BinNotEqual:
		return "!="
	case BinLessThan:
		return "<"
	case BinGreaterThan:
		return ">"
	case BinLessThanOrEqual:
		return "<="
	case BinGreaterThanOrEqual:
		return ">="
	}
	return "?"
}

// Expr is an expression node.
type Expr interface {
	fmt.Stringer
	exprNode()
}

type IntLit struct {
	Value int
}

type StrLit struct {
	Value string
}

type VarRef struct {
	Name string
}

type UnaryExpr struct {
	Op      UnaryOpKind
	Operand Expr
}

type BinaryExpr struct {
	Op  BinaryOpKind
	LHS Expr
	RHS Expr
}

func (*IntLit) exprNode()     {}
func (*StrLit) exprNode()     {}
func (*VarRef) exprNode()     {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}

func (e *IntLit) String() string { return strconv.Itoa(e.Value) }

func (e *StrLit) String() string { return strconv.Quote(e.Value) }

func (e *VarRef) String() string { return e.Name }

func (e *UnaryExpr) String() string { return e.Op.String() + e.Operand.String() }

func (e *BinaryExpr) String() string {
	return e.LHS.String() + " " + e.Op.String() + " " + e.RHS.String()
}

// Stmt is a statement inside a function body.
type Stmt interface {
	stmtNode()
}

// VarDecl defines one or more variables of a shared type.
type VarDecl struct {
	Type  Type
	Names []string
}

// Assign stores the value of an expression into a named variable.
type Assign struct {
	Name  string
	Value Expr
}

// CallStmt calls a function by name, discarding any result.
type CallStmt struct {
	Callee string
}

// InlineAsm passes assembly text through to the output verbatim.
type InlineAsm struct {
	Text string
}

// Return leaves the enclosing function; Value is nil for a bare return.
type Return struct {
	Value Expr
}

func (*VarDecl) stmtNode()   {}
func (*Assign) stmtNode()    {}
func (*CallStmt) stmtNode()  {}
func (*InlineAsm) stmtNode() {}
func (*Return) stmtNode()    {}

type Param struct {
	Type Type
	Name string
}

type Function struct {
	ReturnType Type
	Name       string
	Params     []Param
	Body       []Stmt
}

type Program struct {
	Functions []*Function
}
