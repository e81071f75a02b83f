package clipboard

import (
	"fmt"
	"testing"
)

func TestRegistry_Add(t *testing.T) {
	r := NewRegistry()

	f, err := r.Add("text/unicode")
	if err != nil {
		t.Fatal(err)
	}
	if f < firstAtom {
		t.Errorf("atom %#x below %#x", f, firstAtom)
	}

	again, err := r.Add("TEXT/Unicode")
	if err != nil {
		t.Fatal(err)
	}
	if again != f {
		t.Errorf("second Add = %#x, want %#x", again, f)
	}
	if r.Refs(f) != 2 {
		t.Errorf("Refs = %d, want 2", r.Refs(f))
	}

	name, ok := r.Name(f)
	if !ok || name != "text/unicode" {
		t.Errorf("Name = %q, %v", name, ok)
	}
	if found, ok := r.Find("text/unicode"); !ok || found != f {
		t.Errorf("Find = %#x, %v", found, ok)
	}
}

func TestRegistry_InvalidNames(t *testing.T) {
	r := NewRegistry()
	long := make([]byte, maxAtomName+1)
	for i := range long {
		long[i] = 'a'
	}
	for _, name := range []string{"", string(long)} {
		if _, err := r.Add(name); err == nil {
			t.Errorf("Add(%d chars) succeeded", len(name))
		}
	}
}

func TestRegistry_Delete(t *testing.T) {
	r := NewRegistry()
	f, _ := r.Add("text/unicode")
	r.Add("text/unicode")

	if err := r.Delete(f); err != nil {
		t.Fatal(err)
	}
	if !r.Valid(f) {
		t.Fatal("atom freed while still referenced")
	}
	if err := r.Delete(f); err != nil {
		t.Fatal(err)
	}
	if r.Valid(f) {
		t.Error("atom still valid after last Delete")
	}
	if _, ok := r.Find("text/unicode"); ok {
		t.Error("name still registered")
	}
	if err := r.Delete(f); err == nil {
		t.Error("Delete of freed atom succeeded")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d", r.Len())
	}
}

func TestRegistry_ReusesFreedAtoms(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Add("a")
	b, _ := r.Add("b")
	r.Delete(a)

	c, _ := r.Add("c")
	if c != a {
		t.Errorf("freed atom not reused: got %#x, want %#x", c, a)
	}
	if name, _ := r.Name(b); name != "b" {
		t.Errorf("Name(b) = %q", name)
	}
}

func TestRegistry_TextFormat(t *testing.T) {
	r := NewRegistry()
	if !r.Valid(FormatText) {
		t.Error("FormatText should always be valid")
	}
	if name, ok := r.Name(FormatText); !ok || name != "CF_TEXT" {
		t.Errorf("Name(FormatText) = %q, %v", name, ok)
	}
	for _, f := range []Format{0, 2, firstAtom, lastAtom} {
		if r.Valid(f) {
			t.Errorf("Valid(%#x) on empty registry", f)
		}
	}
}

func TestRegistry_Many(t *testing.T) {
	r := NewRegistry()
	seen := make(map[Format]bool)
	for i := 0; i < 100; i++ {
		f, err := r.Add(fmt.Sprintf("format/%d", i))
		if err != nil {
			t.Fatal(err)
		}
		if seen[f] {
			t.Fatalf("duplicate atom %#x", f)
		}
		seen[f] = true
	}
	if r.Len() != 100 {
		t.Errorf("Len = %d", r.Len())
	}
}
