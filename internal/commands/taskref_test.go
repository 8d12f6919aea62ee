package commands

import (
	"context"
	"testing"

	"tasktrack/internal/logging"
	"tasktrack/internal/service"
	"tasktrack/internal/store"
	"tasktrack/internal/testutil"
)

func TestParseTaskRef_Number(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 5 || ref.ID != "" {
		t.Errorf("expected Num 5, got %+v", ref)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, err := ParseTaskRef([]string{"64f1c2ab"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "64f1c2ab" || ref.Num != 0 {
		t.Errorf("expected ID 64f1c2ab, got %+v", ref)
	}
}

func TestParseTaskRef_ForcedNumericID(t *testing.T) {
	ref, err := ParseTaskRef([]string{"42"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "42" || ref.Num != 0 {
		t.Errorf("expected ID 42, got %+v", ref)
	}
}

func TestParseTaskRef_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "no args", args: nil, want: "task reference required"},
		{name: "blank", args: []string{"  "}, want: "task reference required"},
		{name: "zero", args: []string{"0"}, want: "task number out of range: 0"},
		{name: "extra arg", args: []string{"1", "2"}, want: "unexpected argument: 2"},
		{name: "overflow", args: []string{"99999999999999999999"}, want: "invalid task reference: 99999999999999999999"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTaskRef(tc.args, false)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tc.want {
				t.Errorf("expected %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestParseTaskRef_RequiredIsSentinel(t *testing.T) {
	_, err := ParseTaskRef(nil, false)
	if err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestIsAllDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"123", true},
		{"0", true},
		{"", false},
		{"12a", false},
		{"-1", false},
		{"١٢", false},
	}

	for _, tt := range tests {
		if got := isAllDigits(tt.input); got != tt.expected {
			t.Errorf("isAllDigits(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestResolveTaskRef(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(service.Task{ID: "a", Title: "first"})
	svc.AddTask(service.Task{ID: "b", Title: "second"})
	st := store.New(svc, nil, logging.Discard())
	if err := st.Fetch(context.Background(), ""); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	task, err := ResolveTaskRef(st, TaskRef{Num: 2})
	if err != nil || task.ID != "b" {
		t.Errorf("expected task b, got %+v (err %v)", task, err)
	}

	task, err = ResolveTaskRef(st, TaskRef{ID: "a"})
	if err != nil || task.Title != "first" {
		t.Errorf("expected task a, got %+v (err %v)", task, err)
	}

	if _, err := ResolveTaskRef(st, TaskRef{Num: 3}); err == nil {
		t.Error("expected out of range error")
	}
	if _, err := ResolveTaskRef(st, TaskRef{ID: "zz"}); err == nil {
		t.Error("expected not found error")
	}
}
