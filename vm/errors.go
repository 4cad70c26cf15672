package vm

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes of the stack, calculator and
// machine. All are immediately fatal to the call that raised them; callers
// match with errors.Is through whatever wrapping added context.
var (
	// ErrEmptyStack is returned by Stack.Pop on a stack of length 0.
	ErrEmptyStack = errors.New("pop on empty stack")

	// ErrStackUnderflow is returned by Calculator operators when fewer
	// than two operands are available. It wraps the stack's ErrEmptyStack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrInvalidOperand is returned by CheckedStack.Push for non-numeric
	// values.
	ErrInvalidOperand = errors.New("invalid operand")

	// ErrDivisionByZero is returned by Calculator.Div when the right
	// operand is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrUnknownOpcode is returned by the machine for an opcode outside
	// the defined set. Unreachable for programs built by the compiler, but
	// wire-decoded programs make the guard load-bearing.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrMalformedProgram is returned when a program runs to completion
	// without leaving exactly one value on the stack.
	ErrMalformedProgram = errors.New("malformed program")
)

// MachineError wraps an execution failure with the offending instruction's
// index and opcode so callers can report precisely where a run halted.
type MachineError struct {
	Index int
	Op    Opcode
	Err   error
}

func (e *MachineError) Error() string {
	return fmt.Sprintf("instruction %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *MachineError) Unwrap() error {
	return e.Err
}
