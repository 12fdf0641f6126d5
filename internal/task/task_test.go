package task

import (
	"strings"
	"testing"
)

func TestValidate_OK(t *testing.T) {
	tk := Task{Name: "TaskA", Duration: 5, DependsOn: []string{"TaskB"}}
	if err := tk.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ZeroDuration(t *testing.T) {
	tk := Task{Name: "TaskA", Duration: 0}
	if err := tk.Validate(); err != nil {
		t.Fatalf("zero duration should be valid, got: %v", err)
	}
}

func TestValidate_EmptyName(t *testing.T) {
	tk := Task{Name: "", Duration: 1}
	if err := tk.Validate(); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestValidate_NegativeDuration(t *testing.T) {
	tk := Task{Name: "TaskA", Duration: -1}
	if err := tk.Validate(); err == nil {
		t.Fatal("expected error for negative duration")
	}
}

func TestValidate_EmptyDependencyName(t *testing.T) {
	tk := Task{Name: "TaskA", Duration: 1, DependsOn: []string{""}}
	if err := tk.Validate(); err == nil {
		t.Fatal("expected error for empty dependency name")
	}
}

func TestString(t *testing.T) {
	tk := Task{Name: "TaskB", Duration: 3, DependsOn: []string{"TaskA"}}
	s := tk.String()
	if !strings.Contains(s, "TaskB") || !strings.Contains(s, "TaskA") {
		t.Errorf("unexpected string: %s", s)
	}

	solo := Task{Name: "TaskA", Duration: 5}
	if !strings.Contains(solo.String(), "none") {
		t.Errorf("expected 'none' for no dependencies, got: %s", solo.String())
	}
}
