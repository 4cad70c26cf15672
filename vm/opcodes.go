package vm

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Opcode definitions
// ---------------------------------------------------------------------------

// Opcode identifies a single machine instruction kind. The set is closed:
// the machine dispatches over exactly these five and guards everything
// else with ErrUnknownOpcode.
type Opcode byte

const (
	OpPush Opcode = iota // push the instruction's operand
	OpAdd                // pop right, pop left, push left + right
	OpSub                // pop right, pop left, push left - right
	OpMul                // pop right, pop left, push left * right
	OpDiv                // pop right, pop left, push left / right (true division)
)

// OpcodeInfo holds metadata about an opcode.
type OpcodeInfo struct {
	Name        string // human-readable name
	HasOperand  bool   // whether instructions carry an operand
	StackEffect int    // net effect on stack depth
}

// opcodeTable maps opcodes to their metadata.
var opcodeTable = map[Opcode]OpcodeInfo{
	OpPush: {"PUSH", true, 1},
	OpAdd:  {"ADD", false, -1},
	OpSub:  {"SUB", false, -1},
	OpMul:  {"MUL", false, -1},
	OpDiv:  {"DIV", false, -1},
}

// Info returns the metadata for an opcode.
func (op Opcode) Info() OpcodeInfo {
	if info, ok := opcodeTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN_%02X", byte(op))}
}

// Valid reports whether op is in the defined set.
func (op Opcode) Valid() bool {
	_, ok := opcodeTable[op]
	return ok
}

func (op Opcode) String() string {
	return op.Info().Name
}

// ---------------------------------------------------------------------------
// Instructions and programs
// ---------------------------------------------------------------------------

// Instruction is one opcode plus, for OpPush only, its operand.
type Instruction struct {
	Op      Opcode
	Operand Value
}

// Push creates a push instruction for the given operand.
func Push(v Value) Instruction {
	return Instruction{Op: OpPush, Operand: v}
}

func (in Instruction) String() string {
	if in.Op.Info().HasOperand {
		return fmt.Sprintf("%s %s", in.Op, in.Operand)
	}
	return in.Op.String()
}

// Program is an ordered instruction sequence in postfix order, produced
// once by the compiler and treated as immutable from then on.
type Program []Instruction

// NetStackEffect sums the per-opcode stack effects. A program the machine
// accepts as well formed nets to exactly 1.
func (p Program) NetStackEffect() int {
	net := 0
	for _, in := range p {
		net += in.Op.Info().StackEffect
	}
	return net
}

// Disassemble returns a listing of the program, one instruction per line.
func Disassemble(p Program) string {
	var b strings.Builder
	for i, in := range p {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%04d  %s", i, in)
	}
	return b.String()
}
