package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	statuses := []string{"pending", "approved", "rejected"}
	if !IsInSlice("approved", statuses) {
		t.Errorf("IsInSlice(approved) = false, want true")
	}
	if IsInSlice("draft", statuses) {
		t.Errorf("IsInSlice(draft) = true, want false")
	}
	if IsInSlice("pending", nil) {
		t.Errorf("IsInSlice on nil slice = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "period_month", Message: "must be between 1 and 12"},
		{Field: "employee_id", Message: "is required"},
	}

	msg := errs.Error()
	if msg != "period_month: must be between 1 and 12; employee_id: is required" {
		t.Errorf("unexpected error string: %q", msg)
	}

	m := errs.ToMap()
	if len(m) != 2 || m["employee_id"] != "is required" {
		t.Errorf("unexpected map: %v", m)
	}
}
