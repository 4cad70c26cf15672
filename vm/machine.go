package vm

import (
	"fmt"
	"io"
	"os"
)

// Machine executes programs against an internal Calculator. Dispatch is an
// explicit switch over the closed opcode set; there is no name-based
// lookup. Execution halts at the first failing instruction; the stack is
// left in whatever partial state existed at that point (batch interpreter,
// no rollback).
type Machine struct {
	calc *Calculator

	// Trace, when set, writes one line per executed instruction to
	// TraceOut (stdout when nil).
	Trace    bool
	TraceOut io.Writer
}

// NewMachine creates a machine over a numeric-checked mutable stack.
func NewMachine() *Machine {
	return NewMachineWithStack(nil)
}

// NewMachineWithStack creates a machine whose calculator uses the given
// stack. A nil stack defaults to a checked SliceStack.
func NewMachineWithStack(stack Stack) *Machine {
	if stack == nil {
		stack = NewCheckedStack(NewSliceStack())
	}
	return &Machine{calc: NewCalculator(stack)}
}

// Run executes the program left to right and returns the final result.
// On success exactly one value must remain on the stack; finishing with
// zero or several residual values fails with ErrMalformedProgram. Any
// instruction failure is returned as a *MachineError carrying the
// instruction index and opcode.
func (m *Machine) Run(p Program) (Value, error) {
	for i, in := range p {
		if m.Trace {
			m.tracef("[%04d] %-12s depth=%d\n", i, in, m.calc.Len())
		}

		var err error
		switch in.Op {
		case OpPush:
			err = m.calc.Push(in.Operand)
		case OpAdd:
			err = m.calc.Add()
		case OpSub:
			err = m.calc.Sub()
		case OpMul:
			err = m.calc.Mul()
		case OpDiv:
			err = m.calc.Div()
		default:
			err = fmt.Errorf("%w: 0x%02x", ErrUnknownOpcode, byte(in.Op))
		}
		if err != nil {
			return Value{}, &MachineError{Index: i, Op: in.Op, Err: err}
		}
	}

	if depth := m.calc.Len(); depth != 1 {
		return Value{}, fmt.Errorf("%w: %d values left on stack after run", ErrMalformedProgram, depth)
	}
	return m.calc.Pop()
}

// Reset drains any residual values, typically after a failed run, so the
// machine can be reused.
func (m *Machine) Reset() {
	for m.calc.Len() > 0 {
		_, _ = m.calc.Pop()
	}
}

func (m *Machine) tracef(format string, args ...any) {
	out := m.TraceOut
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format, args...)
}
