package store

import (
	"path/filepath"
	"testing"

	"github.com/chazu/infix/vm"
)

func openTestStore(t *testing.T) *ProgramStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "programs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleProgram() vm.Program {
	return vm.Program{
		vm.Push(vm.IntValue(2)),
		vm.Push(vm.IntValue(3)),
		vm.Push(vm.IntValue(4)),
		{Op: vm.OpAdd},
		{Op: vm.OpMul},
	}
}

func TestStorePutGet(t *testing.T) {
	s := openTestStore(t)
	source := "2*(3+4)"

	if err := s.Put(source, sampleProgram()); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, hit, err := s.Get(source)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("Get: want a hit")
	}

	want := sampleProgram()
	if len(got) != len(want) {
		t.Fatalf("program length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Op != want[i].Op || !got[i].Operand.Equal(want[i].Operand) {
			t.Errorf("instruction %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestStoreMiss(t *testing.T) {
	s := openTestStore(t)

	prog, hit, err := s.Get("never stored")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("Get on empty store should miss")
	}
	if prog != nil {
		t.Errorf("missed Get returned program %v", prog)
	}
}

func TestStoreReplace(t *testing.T) {
	s := openTestStore(t)
	source := "1+1"

	if err := s.Put(source, vm.Program{vm.Push(vm.IntValue(1))}); err != nil {
		t.Fatal(err)
	}
	replacement := vm.Program{vm.Push(vm.IntValue(2))}
	if err := s.Put(source, replacement); err != nil {
		t.Fatal(err)
	}

	got, hit, err := s.Get(source)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if len(got) != 1 || got[0].Operand.Int() != 2 {
		t.Errorf("replaced program = %v, want PUSH 2", got)
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestStoreDistinctSources(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put("1+2", vm.Program{vm.Push(vm.IntValue(3))}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put("2+1", vm.Program{vm.Push(vm.IntValue(3))}); err != nil {
		t.Fatal(err)
	}

	n, err := s.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Count() = %d, want 2 (distinct sources, distinct hashes)", n)
	}
}

func TestSourceHash(t *testing.T) {
	a := SourceHash("2*(3+4)")
	b := SourceHash("2*(3+4)")
	c := SourceHash("2 * (3+4)")

	if a != b {
		t.Error("identical sources should hash identically")
	}
	if a == c {
		t.Error("different sources should hash differently")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestStoreRoundTripExecutes(t *testing.T) {
	s := openTestStore(t)
	source := "cached"

	if err := s.Put(source, sampleProgram()); err != nil {
		t.Fatal(err)
	}
	prog, hit, err := s.Get(source)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}

	got, err := vm.NewMachine().Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Int() != 14 {
		t.Errorf("cached program result = %s, want 14", got)
	}
}
