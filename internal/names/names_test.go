package names

import (
	"errors"
	"testing"
)

func TestFreshCounterIsGlobal(t *testing.T) {
	gen := NewGen()
	want := []struct {
		prefix string
		name   string
	}{
		{"expr", "expr_0"},
		{"expr", "expr_1"},
		{"stmt", "stmt_2"},
		{"expr", "expr_3"},
	}
	for _, w := range want {
		got, err := gen.Fresh(w.prefix)
		if err != nil {
			t.Fatalf("Fresh(%q): %v", w.prefix, err)
		}
		if got != w.name {
			t.Fatalf("Fresh(%q) = %q, want %q", w.prefix, got, w.name)
		}
	}
}

func TestFreshCollidesWithReserved(t *testing.T) {
	gen := NewGen()
	gen.Reserve("expr_0", "expr_1")

	if _, err := gen.Fresh("expr"); !errors.Is(err, ErrCollision) {
		t.Fatalf("err = %v, want ErrCollision", err)
	}
	// counter advanced past the collision, so the run that ignores the
	// error would still see unique names
	if _, err := gen.Fresh("expr"); !errors.Is(err, ErrCollision) {
		t.Fatalf("err = %v, want ErrCollision for expr_1", err)
	}
	name, err := gen.Fresh("expr")
	if err != nil {
		t.Fatalf("Fresh: %v", err)
	}
	if name != "expr_2" {
		t.Fatalf("Fresh = %q, want expr_2", name)
	}
}

func TestReserveAfterFreshDoesNotRewriteHistory(t *testing.T) {
	gen := NewGen()
	name, err := gen.Fresh("a")
	if err != nil {
		t.Fatalf("Fresh: %v", err)
	}
	gen.Reserve("a_1")
	if name != "a_0" {
		t.Fatalf("Fresh = %q, want a_0", name)
	}
	if _, err := gen.Fresh("a"); !errors.Is(err, ErrCollision) {
		t.Fatalf("expected collision against late reservation")
	}
}
