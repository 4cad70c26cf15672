package vm

import (
	"errors"
	"testing"
)

// The calculator is written against the Stack contract, so every variant
// must work interchangeably underneath it.
func TestCalculatorAcrossStackVariants(t *testing.T) {
	for name, newStack := range stackVariants() {
		t.Run(name, func(t *testing.T) {
			calc := NewCalculator(newStack())

			mustPush(t, calc, IntValue(23))
			mustPush(t, calc, IntValue(45))
			if err := calc.Add(); err != nil {
				t.Fatalf("Add(): %v", err)
			}
			if v := mustPop(t, calc); v.Int() != 68 {
				t.Errorf("23 + 45 = %s, want 68", v)
			}

			mustPush(t, calc, IntValue(2))
			mustPush(t, calc, IntValue(3))
			mustPush(t, calc, IntValue(4))
			if err := calc.Add(); err != nil {
				t.Fatalf("Add(): %v", err)
			}
			if err := calc.Mul(); err != nil {
				t.Fatalf("Mul(): %v", err)
			}
			if v := mustPop(t, calc); v.Int() != 14 {
				t.Errorf("2 * (3 + 4) = %s, want 14", v)
			}

			mustPush(t, calc, IntValue(10))
			mustPush(t, calc, IntValue(3))
			if err := calc.Sub(); err != nil {
				t.Fatalf("Sub(): %v", err)
			}
			if v := mustPop(t, calc); v.Int() != 7 {
				t.Errorf("10 - 3 = %s, want 7", v)
			}
		})
	}
}

func TestCalculatorDivIsTrueDivision(t *testing.T) {
	calc := NewCalculator(nil)

	mustPush(t, calc, IntValue(10))
	mustPush(t, calc, IntValue(5))
	if err := calc.Div(); err != nil {
		t.Fatalf("Div(): %v", err)
	}

	v := mustPop(t, calc)
	if v.Kind() != KindFloat {
		t.Errorf("10 / 5 kind = %s, want Float", v.Kind())
	}
	if v.Float64() != 2.0 {
		t.Errorf("10 / 5 = %s, want 2.0", v)
	}
}

func TestCalculatorDivByZero(t *testing.T) {
	calc := NewCalculator(nil)

	mustPush(t, calc, IntValue(1))
	mustPush(t, calc, IntValue(0))
	if err := calc.Div(); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Div() by zero = %v, want ErrDivisionByZero", err)
	}
}

func TestCalculatorUnderflow(t *testing.T) {
	ops := map[string]func(*Calculator) error{
		"Add": (*Calculator).Add,
		"Sub": (*Calculator).Sub,
		"Mul": (*Calculator).Mul,
		"Div": (*Calculator).Div,
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			// Zero operands.
			calc := NewCalculator(nil)
			err := op(calc)
			if !errors.Is(err, ErrStackUnderflow) {
				t.Errorf("%s() on empty = %v, want ErrStackUnderflow", name, err)
			}
			if !errors.Is(err, ErrEmptyStack) {
				t.Errorf("%s() underflow should wrap ErrEmptyStack, got %v", name, err)
			}

			// One operand.
			calc = NewCalculator(nil)
			mustPush(t, calc, IntValue(1))
			if err := op(calc); !errors.Is(err, ErrStackUnderflow) {
				t.Errorf("%s() with one operand = %v, want ErrStackUnderflow", name, err)
			}
		})
	}
}

func TestCalculatorIntFloatWidening(t *testing.T) {
	tests := []struct {
		name     string
		left     Value
		right    Value
		op       func(*Calculator) error
		wantKind Kind
		want     float64
	}{
		{"int+int stays int", IntValue(2), IntValue(3), (*Calculator).Add, KindInt, 5},
		{"float+int widens", FloatValue(2.5), IntValue(3), (*Calculator).Add, KindFloat, 5.5},
		{"int*float widens", IntValue(4), FloatValue(0.5), (*Calculator).Mul, KindFloat, 2},
		{"int-int stays int", IntValue(2), IntValue(5), (*Calculator).Sub, KindInt, -3},
		{"int/int is float", IntValue(7), IntValue(2), (*Calculator).Div, KindFloat, 3.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calc := NewCalculator(nil)
			mustPush(t, calc, tc.left)
			mustPush(t, calc, tc.right)
			if err := tc.op(calc); err != nil {
				t.Fatalf("op: %v", err)
			}
			v := mustPop(t, calc)
			if v.Kind() != tc.wantKind {
				t.Errorf("kind = %s, want %s", v.Kind(), tc.wantKind)
			}
			if v.Float64() != tc.want {
				t.Errorf("value = %s, want %v", v, tc.want)
			}
		})
	}
}

func TestCalculatorDefaultsStack(t *testing.T) {
	calc := NewCalculator(nil)
	mustPush(t, calc, IntValue(1))
	if calc.Len() != 1 {
		t.Errorf("Len() = %d, want 1", calc.Len())
	}

	// Two calculators never share a default stack.
	other := NewCalculator(nil)
	if other.Len() != 0 {
		t.Errorf("fresh calculator Len() = %d, want 0", other.Len())
	}
}

func mustPush(t *testing.T, c *Calculator, v Value) {
	t.Helper()
	if err := c.Push(v); err != nil {
		t.Fatalf("Push(%s): %v", v, err)
	}
}

func mustPop(t *testing.T, c *Calculator) Value {
	t.Helper()
	v, err := c.Pop()
	if err != nil {
		t.Fatalf("Pop(): %v", err)
	}
	return v
}
