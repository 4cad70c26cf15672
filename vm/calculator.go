package vm

import "fmt"

// Calculator is a four-function arithmetic engine over a single injected
// Stack. It holds no state besides the stack reference: every operator pops
// its two operands and pushes exactly one result.
//
// Operands are pushed left then right, so the first pop yields the right
// operand and the second the left.
type Calculator struct {
	stack Stack
}

// NewCalculator creates a calculator over the given stack. A nil stack
// defaults to a fresh SliceStack; there is no shared default instance.
func NewCalculator(stack Stack) *Calculator {
	if stack == nil {
		stack = NewSliceStack()
	}
	return &Calculator{stack: stack}
}

// Push delegates to the underlying stack.
func (c *Calculator) Push(v Value) error {
	return c.stack.Push(v)
}

// Pop delegates to the underlying stack.
func (c *Calculator) Pop() (Value, error) {
	return c.stack.Pop()
}

// Len reports the number of values currently on the stack.
func (c *Calculator) Len() int {
	return c.stack.Len()
}

// popOperands removes the two topmost values, returning them in left/right
// order. An empty pop surfaces as ErrStackUnderflow wrapping the stack's
// ErrEmptyStack.
func (c *Calculator) popOperands() (left, right Value, err error) {
	right, err = c.stack.Pop()
	if err != nil {
		return Value{}, Value{}, fmt.Errorf("%w: need two operands, have 0: %w", ErrStackUnderflow, err)
	}
	left, err = c.stack.Pop()
	if err != nil {
		return Value{}, Value{}, fmt.Errorf("%w: need two operands, have 1: %w", ErrStackUnderflow, err)
	}
	return left, right, nil
}

// Add pops right then left and pushes left + right.
func (c *Calculator) Add() error {
	left, right, err := c.popOperands()
	if err != nil {
		return err
	}
	return c.stack.Push(addValues(left, right))
}

// Sub pops right then left and pushes left - right.
func (c *Calculator) Sub() error {
	left, right, err := c.popOperands()
	if err != nil {
		return err
	}
	return c.stack.Push(subValues(left, right))
}

// Mul pops right then left and pushes left * right.
func (c *Calculator) Mul() error {
	left, right, err := c.popOperands()
	if err != nil {
		return err
	}
	return c.stack.Push(mulValues(left, right))
}

// Div pops right then left and pushes left / right. Division is always
// true (float) division, even for two integer operands. A zero right
// operand fails with ErrDivisionByZero and consumes both operands.
func (c *Calculator) Div() error {
	left, right, err := c.popOperands()
	if err != nil {
		return err
	}
	if right.Float64() == 0 {
		return fmt.Errorf("%w: %s / %s", ErrDivisionByZero, left, right)
	}
	return c.stack.Push(divValues(left, right))
}
