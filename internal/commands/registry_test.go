package commands

import (
	"testing"
)

func TestRegistry_FindByAlias(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&RmCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmd, ok := r.Find("delete")
	if !ok {
		t.Fatal("expected alias to resolve")
	}
	if cmd.Name() != "rm" {
		t.Errorf("expected rm, got %s", cmd.Name())
	}
}

func TestRegistry_DuplicateAlias(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&ToggleCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "toggle" is taken by name, so a second ToggleCmd must be rejected
	err := r.Register(&ToggleCmd{})
	if err == nil || err.Error() != "command already registered: toggle" {
		t.Errorf("expected duplicate error, got %v", err)
	}
}

func TestRegistry_AllSortedAndUnique(t *testing.T) {
	r := NewRegistry()
	for _, c := range []Command{&ShowCmd{}, &AddCmd{}, &RmCmd{}} {
		if err := r.Register(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	all := r.All()
	var names []string
	for _, c := range all {
		names = append(names, c.Name())
	}
	want := []string{"add", "rm", "show"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
		}
	}
}

func TestDefaultRegistry_HasBuiltins(t *testing.T) {
	for _, name := range []string{"list", "ls", "add", "create", "toggle", "done", "rm", "delete", "show", "watch", "help", "version"} {
		if _, ok := DefaultRegistry.Find(name); !ok {
			t.Errorf("expected %q to be registered", name)
		}
	}
}
