package async

import "testing"

func TestValue_ZeroValueIsIdle(t *testing.T) {
	var v Value[int]
	if !v.IsIdle() {
		t.Errorf("expected zero value to be idle, got %s", v.State())
	}
	if v.Data() != 0 {
		t.Errorf("expected zero data, got %d", v.Data())
	}
}

func TestValue_LoadingPreservesData(t *testing.T) {
	v := Loaded(42)
	v = v.ToLoading()

	if !v.IsLoading() {
		t.Fatalf("expected loading state, got %s", v.State())
	}
	if v.Data() != 42 {
		t.Errorf("expected previous data 42 to survive loading transition, got %d", v.Data())
	}
}

func TestValue_ErrorRetainsData(t *testing.T) {
	v := Loaded("tree")
	v = v.ToLoading()
	v = v.ToError("network down")

	if !v.IsError() {
		t.Fatalf("expected error state, got %s", v.State())
	}
	if v.Data() != "tree" {
		t.Errorf("expected last good data to survive error transition, got %q", v.Data())
	}
	if v.Err() != "network down" {
		t.Errorf("expected error message, got %q", v.Err())
	}
}

func TestValue_UnwrapIsUnconditional(t *testing.T) {
	// Data must be readable in every state, including after errors.
	for _, state := range []State{StateIdle, StateLoading, StateLoaded, StateError} {
		v := Wrap("x", state, "")
		if v.Data() != "x" {
			t.Errorf("state %s: expected data %q, got %q", state, "x", v.Data())
		}
	}
}

func TestValue_RetryAfterError(t *testing.T) {
	v := Loaded(1)
	v = v.ToError("boom")
	v = v.ToLoading()

	if !v.IsLoading() {
		t.Fatalf("expected loading after retry, got %s", v.State())
	}
	if v.Data() != 1 {
		t.Errorf("expected data to survive retry, got %d", v.Data())
	}
	if v.Err() != "" {
		t.Errorf("expected error cleared on retry, got %q", v.Err())
	}

	v = v.ToLoaded(2)
	if !v.IsLoaded() || v.Data() != 2 {
		t.Errorf("expected fresh value after reload, got state=%s data=%d", v.State(), v.Data())
	}
}

func TestValue_StatesAreExclusive(t *testing.T) {
	v := Loaded(5).ToError("x")
	flags := 0
	for _, b := range []bool{v.IsIdle(), v.IsLoading(), v.IsLoaded(), v.IsError()} {
		if b {
			flags++
		}
	}
	if flags != 1 {
		t.Errorf("expected exactly one state flag set, got %d", flags)
	}
}
