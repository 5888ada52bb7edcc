package model

import (
	"reflect"
	"testing"
)

func TestVariableSetKeys(t *testing.T) {
	vs := VariableSet{
		"ZED":    "3",
		"ALPHA":  "1",
		"MIDDLE": "2",
	}

	want := []string{"ALPHA", "MIDDLE", "ZED"}
	if got := vs.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestVariableSetVariables(t *testing.T) {
	vs := VariableSet{
		"B": "two",
		"A": "one",
	}

	vars := vs.Variables()
	if len(vars) != 2 {
		t.Fatalf("expected 2 variables, got %d", len(vars))
	}
	if vars[0].Key != "A" || vars[0].Value != "one" {
		t.Errorf("first variable = %+v, want {A one}", vars[0])
	}
	if vars[1].Key != "B" || vars[1].Value != "two" {
		t.Errorf("second variable = %+v, want {B two}", vars[1])
	}
}

func TestVariableSetFilter(t *testing.T) {
	vs := VariableSet{
		"EDITOR": "vim",
		"PAGER":  "less",
		"SHELL":  "zsh",
	}

	filtered := vs.Filter([]string{"EDITOR", "SHELL", "MISSING"})
	if len(filtered) != 2 {
		t.Fatalf("expected 2 filtered variables, got %d", len(filtered))
	}
	if filtered["EDITOR"] != "vim" {
		t.Errorf("EDITOR = %q, want vim", filtered["EDITOR"])
	}
	if _, ok := filtered["PAGER"]; ok {
		t.Error("PAGER should have been filtered out")
	}
}

func TestConflictReport(t *testing.T) {
	cr := ConflictReport{}

	if !cr.Empty() {
		t.Error("new report should be empty")
	}

	cr.Add("PATH")
	cr.Add("EDITOR")

	if cr.Empty() {
		t.Error("report with entries should not be empty")
	}
	if !cr.Has("PATH") {
		t.Error("Has(PATH) should be true")
	}
	if cr.Has("MISSING") {
		t.Error("Has(MISSING) should be false")
	}

	want := []string{"EDITOR", "PATH"}
	if got := cr.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}
