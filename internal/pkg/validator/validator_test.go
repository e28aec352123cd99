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

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-03-10"); !ok {
		t.Error("IsValidDate(\"2025-03-10\") = false, want true")
	}
	invalid := []string{"2025-13-01", "10-03-2025", "2025-03-10T09:00:00Z", "", "abc"}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00"}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	if _, ok := IsValidDateTime("2024-01-15 10:30:00"); ok {
		t.Error("IsValidDateTime without timezone designator should fail")
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"paid", "sick", "special"}
	if !IsInSlice("sick", slice) {
		t.Error("IsInSlice(\"sick\") = false, want true")
	}
	if IsInSlice("unpaid", slice) {
		t.Error("IsInSlice(\"unpaid\") = true, want false")
	}
}
