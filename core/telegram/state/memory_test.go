package state

import "testing"

func TestMemoryManagerStateLifecycle(t *testing.T) {
	m := NewMemoryManager()
	const user int64 = 42

	if m.InProgress(user) {
		t.Fatal("fresh user must be idle")
	}
	if got := m.GetState(user); got != StateIdle {
		t.Fatalf("GetState = %q, want idle", got)
	}

	m.SetState(user, State("build_compiler"))
	if !m.InProgress(user) {
		t.Fatal("expected in-progress after SetState")
	}
	if got := m.GetState(user); got != State("build_compiler") {
		t.Fatalf("GetState = %q", got)
	}

	m.ClearState(user)
	if m.InProgress(user) {
		t.Fatal("expected idle after ClearState")
	}
}

func TestMemoryManagerTempData(t *testing.T) {
	m := NewMemoryManager()
	const user int64 = 7

	if _, ok := m.GetTemp(user, "cfg"); ok {
		t.Fatal("unexpected temp value for fresh user")
	}

	m.SetTemp(user, "cfg", "value")
	v, ok := m.GetTemp(user, "cfg")
	if !ok || v.(string) != "value" {
		t.Fatalf("GetTemp = %v, %v", v, ok)
	}

	// ClearTemp drops just the one key; ClearState keeps temp data.
	m.SetState(user, State("build_notes"))
	m.ClearState(user)
	if _, ok := m.GetTemp(user, "cfg"); !ok {
		t.Fatal("ClearState must not drop temp data")
	}

	m.ClearTemp(user, "cfg")
	if _, ok := m.GetTemp(user, "cfg"); ok {
		t.Fatal("expected temp value removed")
	}

	m.SetTemp(user, "cfg", "value")
	m.Clear(user)
	if _, ok := m.GetTemp(user, "cfg"); ok {
		t.Fatal("Clear must drop the whole session")
	}
}

func TestMemoryManagerUsersIsolated(t *testing.T) {
	m := NewMemoryManager()
	m.SetState(1, State("build_compiler"))
	m.SetState(2, State("build_notes"))

	if got := m.GetState(1); got != State("build_compiler") {
		t.Fatalf("user 1 state = %q", got)
	}
	if got := m.GetState(2); got != State("build_notes") {
		t.Fatalf("user 2 state = %q", got)
	}

	m.Clear(1)
	if m.InProgress(1) {
		t.Fatal("user 1 should be idle after Clear")
	}
	if !m.InProgress(2) {
		t.Fatal("user 2 must be unaffected")
	}
}
