// Package codegen lowers a program to flat-assembler (FASM) source targeting
// the ELF64 executable format. Variables live in 4-byte stack slots below
// the frame base; expressions accumulate through eax.
package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/toycpp/toycpp/ast"
)

// tracer traces with key 'toycpp.codegen'.
func tracer() tracing.Trace {
	return tracing.Select("toycpp.codegen")
}

// ErrNotImplemented marks a construct the lowering does not handle yet.
var ErrNotImplemented = errors.New("not implemented")

// variableInfo places one variable in the frame: its running offset and its
// slot size. The slot lives at [rsp - (stackPos + size)].
type variableInfo struct {
	stackPos int
	size     int
}

func (v variableInfo) addr() string {
	return fmt.Sprintf("[rsp-%d]", v.stackPos+v.size)
}

// frame tracks the variables of the function being lowered.
type frame struct {
	vars     map[string]variableInfo
	stackPos int
}

func newFrame() *frame {
	return &frame{vars: map[string]variableInfo{}}
}

func (f *frame) define(name string) variableInfo {
	info := variableInfo{stackPos: f.stackPos, size: 4}
	f.vars[name] = info
	f.stackPos += info.size
	return info
}

func (f *frame) lookup(name string) (variableInfo, error) {
	info, ok := f.vars[name]
	if !ok {
		return variableInfo{}, fmt.Errorf("unknown variable %q", name)
	}
	return info, nil
}

// Compile emits the whole program as one assembly listing, starting with the
// format header and a _start that calls main and exits with its result.
func Compile(prog *ast.Program) (string, error) {
	if len(prog.Functions) == 0 {
		return "", fmt.Errorf("the program defines no functions")
	}

	var b strings.Builder

	b.WriteString("format ELF64 executable\n\n")
	b.WriteString("_start:\n")
	b.WriteString("  ;; Initialize globals\n")
	b.WriteString("  ;; ...\n\n")
	b.WriteString("  ;; Call main\n")
	b.WriteString("  call main\n\n")
	b.WriteString("  ;; Exit with status code = result from main.\n")
	b.WriteString("  mov rdi, rax                ; return code: whatever main returned\n")
	b.WriteString("  mov rax, 60                 ; sys_exit(status)\n")
	b.WriteString("  syscall\n\n")

	for _, fn := range prog.Functions {
		if err := compileFunction(&b, fn); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

func compileFunction(b *strings.Builder, fn *ast.Function) error {
	tracer().Debugf("compiling function %s", fn.Name)

	fmt.Fprintf(b, "%s:\n", fn.Name)
	b.WriteString("  push rbp\n")
	b.WriteString("  mov rbp, rsp\n\n")

	f := newFrame()
	for _, stmt := range fn.Body {
		if err := compileStatement(b, f, fn, stmt); err != nil {
			return fmt.Errorf("in function %s: %w", fn.Name, err)
		}
	}

	fmt.Fprintf(b, "%s__return:\n", fn.Name)
	fmt.Fprintf(b, "  add rsp, %d\n", f.stackPos)
	b.WriteString("  pop rbp\n")
	b.WriteString("  ret\n\n")
	return nil
}

func compileStatement(b *strings.Builder, f *frame, fn *ast.Function, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return compileVarDecl(b, f, s)
	case *ast.Assign:
		return compileAssign(b, f, s)
	case *ast.CallStmt:
		fmt.Fprintf(b, "  call %s\n", s.Callee)
		return nil
	case *ast.InlineAsm:
		b.WriteString(s.Text)
		b.WriteString("\n")
		return nil
	case *ast.Return:
		return compileReturn(b, f, fn, s)
	}
	return fmt.Errorf("%w: statement %T", ErrNotImplemented, stmt)
}

func compileVarDecl(b *strings.Builder, f *frame, decl *ast.VarDecl) error {
	if decl.Type.Kind == ast.Void {
		return fmt.Errorf("cannot define a variable of type void")
	}

	total := 0
	for _, name := range decl.Names {
		info := f.define(name)
		total += info.size
	}

	fmt.Fprintf(b, "  sub rsp, %d   ; %s\n", total, strings.Join(decl.Names, ", "))
	return nil
}

func compileAssign(b *strings.Builder, f *frame, assign *ast.Assign) error {
	dest, err := f.lookup(assign.Name)
	if err != nil {
		return err
	}

	fmt.Fprintf(b, "  ;; %s = %s;\n", assign.Name, assign.Value)

	switch e := assign.Value.(type) {
	case *ast.IntLit:
		fmt.Fprintf(b, "  mov dword %s, %d\n\n", dest.addr(), e.Value)
		return nil
	case *ast.VarRef:
		src, err := f.lookup(e.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "  mov eax, %s\n", src.addr())
		fmt.Fprintf(b, "  mov dword %s, eax\n\n", dest.addr())
		return nil
	case *ast.BinaryExpr:
		if e.Op != ast.BinAdd {
			return fmt.Errorf("%w: binary operator %v", ErrNotImplemented, e.Op)
		}
		if err := loadOperand(b, f, "mov", e.LHS); err != nil {
			return err
		}
		if err := loadOperand(b, f, "add", e.RHS); err != nil {
			return err
		}
		fmt.Fprintf(b, "  mov dword %s, eax\n\n", dest.addr())
		return nil
	}
	return fmt.Errorf("%w: expression %T", ErrNotImplemented, assign.Value)
}

// loadOperand emits one instruction applying an operand to eax; op is "mov"
// for the first operand and "add" for accumulation.
func loadOperand(b *strings.Builder, f *frame, op string, e ast.Expr) error {
	switch e := e.(type) {
	case *ast.IntLit:
		fmt.Fprintf(b, "  %s eax, %d\n", op, e.Value)
		return nil
	case *ast.VarRef:
		info, err := f.lookup(e.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "  %s eax, %s\n", op, info.addr())
		return nil
	}
	return fmt.Errorf("%w: operand %T", ErrNotImplemented, e)
}

func compileReturn(b *strings.Builder, f *frame, fn *ast.Function, ret *ast.Return) error {
	if ret.Value != nil {
		switch e := ret.Value.(type) {
		case *ast.IntLit:
			fmt.Fprintf(b, "  mov rax, %d\n", e.Value)
		case *ast.VarRef:
			info, err := f.lookup(e.Name)
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "  ;; return %s;\n", e.Name)
			fmt.Fprintf(b, "  mov rax, %s\n", info.addr())
		default:
			return fmt.Errorf("%w: return of %T", ErrNotImplemented, ret.Value)
		}
	}
	fmt.Fprintf(b, "  jmp %s__return\n", fn.Name)
	return nil
}
