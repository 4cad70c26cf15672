// Package vm implements the arithmetic stack machine: operand values,
// the stack contract and its variants, the four-function calculator,
// the opcode set, and the machine that executes compiled programs.
//
// The execution pipeline is deliberately small. A Program is an ordered
// sequence of instructions in postfix order; the Machine feeds each
// instruction to a Calculator, which works against whatever Stack
// implementation it was constructed with. Stacks are interchangeable
// behind the Stack interface: a mutable slice-backed stack, a persistent
// linked stack with structural sharing, and a type-checking decorator
// that composes with either.
package vm
