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
		{"\t\n", true},
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

func TestIsValidLastFour(t *testing.T) {
	valid := []string{"1234", "0000"}
	invalid := []string{"", "123", "12345", "12a4", " 123"}
	for _, s := range valid {
		if !IsValidLastFour(s) {
			t.Errorf("IsValidLastFour(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidLastFour(s) {
			t.Errorf("IsValidLastFour(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-08-18"); !ok {
		t.Error("IsValidDate(2025-08-18) = false, want true")
	}
	for _, s := range []string{"", "08/18/2025", "2025-13-01", "2025-02-30"} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	methods := []string{"Direct Deposit", "Check"}
	if !IsInSlice("Check", methods) {
		t.Error("IsInSlice(Check) = false, want true")
	}
	if IsInSlice("check", methods) {
		t.Error("IsInSlice(check) = true, want false")
	}
}

type nested struct {
	Name string `json:"name" validate:"required"`
}

type sample struct {
	Keys   []string `json:"keys" validate:"min=1,dive,required"`
	Format string   `json:"format" validate:"omitempty,oneof=pdf csv"`
	Payee  nested   `json:"paid_to"`
	Secret string   `json:"-" validate:"required"`
}

func TestStruct(t *testing.T) {
	err := Struct(sample{Keys: []string{"a"}, Format: "pdf", Payee: nested{Name: "Dora"}, Secret: "x"})
	if err != nil {
		t.Fatalf("Struct(valid) = %v, want nil", err)
	}

	err = Struct(sample{Format: "doc", Secret: "x"})
	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Struct(invalid) returned %T, want ValidationErrors", err)
	}
	got := errs.ToMap()
	want := map[string]string{
		"keys":         "must contain at least 1 item(s)",
		"format":       "must be one of: pdf, csv",
		"paid_to.name": "is required",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("field %q = %q, want %q", field, got[field], msg)
		}
	}
}
