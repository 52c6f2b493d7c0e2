package ast

import (
	"testing"

	"github.com/toycpp/toycpp/lexer"
)

func parseSource(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(lexer.New("test.cpp", src))
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestParseFunction(t *testing.T) {
	prog := parseSource(t, `int main() { return 0; }`)

	if len(prog.Functions) != 1 {
		t.Fatalf("want 1 function, got %v", len(prog.Functions))
	}
	fn := prog.Functions[0]
	if fn.Name != "main" || fn.ReturnType.Kind != Int {
		t.Fatalf("unexpected function: %+v", fn)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("want 1 statement, got %v", len(fn.Body))
	}
	ret, ok := fn.Body[0].(*Return)
	if !ok {
		t.Fatalf("want a return statement, got %T", fn.Body[0])
	}
	lit, ok := ret.Value.(*IntLit)
	if !ok || lit.Value != 0 {
		t.Fatalf("want the constant 0, got %v", ret.Value)
	}
}

func TestParseStatements(t *testing.T) {
	prog := parseSource(t, `
void helper() {
}

int main() {
    int a, b;
    a = 1;
    b = a + 2;
    helper();
    asm("mov rax, 1\n" "syscall");
    return b;
}
`)

	if len(prog.Functions) != 2 {
		t.Fatalf("want 2 functions, got %v", len(prog.Functions))
	}
	main := prog.Functions[1]
	if len(main.Body) != 6 {
		t.Fatalf("want 6 statements, got %v", len(main.Body))
	}

	decl := main.Body[0].(*VarDecl)
	if decl.Type.Kind != Int || len(decl.Names) != 2 || decl.Names[0] != "a" || decl.Names[1] != "b" {
		t.Fatalf("unexpected definition: %+v", decl)
	}

	assign := main.Body[1].(*Assign)
	if assign.Name != "a" {
		t.Fatalf("unexpected assignment: %+v", assign)
	}
	if lit, ok := assign.Value.(*IntLit); !ok || lit.Value != 1 {
		t.Fatalf("want the constant 1, got %v", assign.Value)
	}

	sum := main.Body[2].(*Assign).Value.(*BinaryExpr)
	if sum.Op != BinAdd {
		t.Fatalf("want an addition, got %v", sum.Op)
	}
	if ref, ok := sum.LHS.(*VarRef); !ok || ref.Name != "a" {
		t.Fatalf("unexpected left operand: %v", sum.LHS)
	}
	if lit, ok := sum.RHS.(*IntLit); !ok || lit.Value != 2 {
		t.Fatalf("unexpected right operand: %v", sum.RHS)
	}

	call := main.Body[3].(*CallStmt)
	if call.Callee != "helper" {
		t.Fatalf("unexpected call: %+v", call)
	}

	asm := main.Body[4].(*InlineAsm)
	if asm.Text != "mov rax, 1\nsyscall" {
		t.Fatalf("unexpected inline assembly: %q", asm.Text)
	}

	ret := main.Body[5].(*Return)
	if ref, ok := ret.Value.(*VarRef); !ok || ref.Name != "b" {
		t.Fatalf("unexpected return value: %v", ret.Value)
	}
}

func TestParseBareReturn(t *testing.T) {
	prog := parseSource(t, `void f() { return; }`)
	ret := prog.Functions[0].Body[0].(*Return)
	if ret.Value != nil {
		t.Fatalf("want a bare return, got %v", ret.Value)
	}
}

func TestAdditionNestsRight(t *testing.T) {
	prog := parseSource(t, `int f() { x = a + b + c; }`)
	sum := prog.Functions[0].Body[0].(*Assign).Value.(*BinaryExpr)
	if _, ok := sum.LHS.(*VarRef); !ok {
		t.Fatalf("want a variable on the left, got %T", sum.LHS)
	}
	inner, ok := sum.RHS.(*BinaryExpr)
	if !ok {
		t.Fatalf("want the chain nested to the right, got %T", sum.RHS)
	}
	if inner.String() != "b + c" {
		t.Fatalf("unexpected inner expression: %v", inner)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
	}{
		{caption: "a top-level statement is not a function", src: `x = 1;`},
		{caption: "a function needs its braces", src: `int main( { }`},
		{caption: "a statement must end in a semicolon", src: `int main() { a = 1 }`},
		{caption: "inline assembly takes string literals only", src: `int main() { asm(42); }`},
		{caption: "an unexpected keyword is fatal", src: `int main() { while; }`},
		{caption: "a truncated body is fatal", src: `int main() { a = 1;`},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if _, err := Parse(lexer.New("test.cpp", tt.src)); err == nil {
				t.Fatal("want a parse error")
			}
		})
	}
}
