package vm

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ---------------------------------------------------------------------------
// Program wire format
// ---------------------------------------------------------------------------

// Programs serialize to canonical CBOR so the encoded bytes are
// deterministic: the same program always produces the same blob. This is
// the boundary format between compiler and machine outside a single
// process; the store persists it.

const wireVersion = 1

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type wireInstruction struct {
	Op    byte    `cbor:"1,keyasint"`
	Kind  byte    `cbor:"2,keyasint,omitempty"`
	Int   int64   `cbor:"3,keyasint,omitempty"`
	Float float64 `cbor:"4,keyasint,omitempty"`
	Str   string  `cbor:"5,keyasint,omitempty"`
}

type wireProgram struct {
	Version      uint8             `cbor:"1,keyasint"`
	Instructions []wireInstruction `cbor:"2,keyasint"`
}

// MarshalProgram serializes a Program to canonical CBOR bytes.
func MarshalProgram(p Program) ([]byte, error) {
	wp := wireProgram{
		Version:      wireVersion,
		Instructions: make([]wireInstruction, 0, len(p)),
	}
	for i, in := range p {
		if !in.Op.Valid() {
			return nil, fmt.Errorf("vm: marshal program: instruction %d: %w: 0x%02x", i, ErrUnknownOpcode, byte(in.Op))
		}
		wi := wireInstruction{Op: byte(in.Op)}
		if in.Op.Info().HasOperand {
			wi.Kind = byte(in.Operand.Kind())
			switch in.Operand.Kind() {
			case KindInt:
				wi.Int = in.Operand.Int()
			case KindFloat:
				wi.Float = in.Operand.Float64()
			case KindString:
				wi.Str = in.Operand.Str()
			}
		}
		wp.Instructions = append(wp.Instructions, wi)
	}
	return cborEncMode.Marshal(wp)
}

// UnmarshalProgram deserializes a Program from CBOR bytes, rejecting
// unknown versions, opcodes and operand kinds.
func UnmarshalProgram(data []byte) (Program, error) {
	var wp wireProgram
	if err := cbor.Unmarshal(data, &wp); err != nil {
		return nil, fmt.Errorf("vm: unmarshal program: %w", err)
	}
	if wp.Version != wireVersion {
		return nil, fmt.Errorf("vm: unmarshal program: unsupported wire version %d", wp.Version)
	}

	p := make(Program, 0, len(wp.Instructions))
	for i, wi := range wp.Instructions {
		op := Opcode(wi.Op)
		if !op.Valid() {
			return nil, fmt.Errorf("vm: unmarshal program: instruction %d: %w: 0x%02x", i, ErrUnknownOpcode, wi.Op)
		}
		in := Instruction{Op: op}
		if op.Info().HasOperand {
			switch Kind(wi.Kind) {
			case KindInt:
				in.Operand = IntValue(wi.Int)
			case KindFloat:
				in.Operand = FloatValue(wi.Float)
			case KindString:
				in.Operand = StringValue(wi.Str)
			default:
				return nil, fmt.Errorf("vm: unmarshal program: instruction %d: unknown operand kind %d", i, wi.Kind)
			}
		}
		p = append(p, in)
	}
	return p, nil
}
