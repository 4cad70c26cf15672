package compiler

import (
	"fmt"

	"github.com/chazu/infix/vm"
)

// ---------------------------------------------------------------------------
// Codegen: expression tree → postfix program
// ---------------------------------------------------------------------------

// Compile parses an arithmetic expression and lowers it to a machine
// program. This is the whole front end in one call.
func Compile(src string) (vm.Program, error) {
	root, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Generate(root)
}

// Generate lowers an expression tree to a Program by post-order traversal:
// for every binary node, the left subtree's code, then the right subtree's,
// then the node's own opcode. That ordering is what guarantees the machine
// sees operands pushed left-before-right for every subexpression, matching
// the calculator's pop-order contract.
func Generate(root Expr) (vm.Program, error) {
	var prog vm.Program
	if err := emit(&prog, root); err != nil {
		return nil, err
	}
	return prog, nil
}

func emit(prog *vm.Program, node Expr) error {
	switch n := node.(type) {
	case *IntLit:
		*prog = append(*prog, vm.Push(vm.IntValue(n.Value)))
		return nil

	case *FloatLit:
		*prog = append(*prog, vm.Push(vm.FloatValue(n.Value)))
		return nil

	case *BinaryExpr:
		if err := emit(prog, n.Left); err != nil {
			return err
		}
		if err := emit(prog, n.Right); err != nil {
			return err
		}
		op, err := opcodeFor(n.Op)
		if err != nil {
			return err
		}
		*prog = append(*prog, vm.Instruction{Op: op})
		return nil

	default:
		return fmt.Errorf("compiler: unhandled expression node %T", node)
	}
}

// opcodeFor maps each operator kind to its own distinct opcode.
func opcodeFor(k OpKind) (vm.Opcode, error) {
	switch k {
	case OpKindAdd:
		return vm.OpAdd, nil
	case OpKindSub:
		return vm.OpSub, nil
	case OpKindMul:
		return vm.OpMul, nil
	case OpKindDiv:
		return vm.OpDiv, nil
	default:
		return 0, fmt.Errorf("compiler: unhandled operator kind %s", k)
	}
}
