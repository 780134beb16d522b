package swatch

import "testing"

func TestRegistry_LoadsEmbeddedCatalog(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	if len(r.Names()) == 0 {
		t.Fatal("expected at least one swatch")
	}
	if !r.Valid(r.Default()) {
		t.Errorf("default swatch %q must be in the catalog", r.Default())
	}
}

func TestRegistry_Valid(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	if !r.Valid("blue") {
		t.Error("expected blue to be a known swatch")
	}
	if r.Valid("chartreuse-ish") {
		t.Error("expected unknown color to be rejected")
	}

	s, ok := r.Get("blue")
	if !ok || s.Hex == "" {
		t.Errorf("expected blue to carry a hex value, got %+v", s)
	}
}
