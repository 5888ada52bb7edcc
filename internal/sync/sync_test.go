package sync

import (
	"errors"
	"testing"

	"github.com/klauern/envsync/internal/model"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Scope != model.ScopeUser {
		t.Errorf("default scope = %s, want user", opts.Scope)
	}
	if !opts.Selection.All {
		t.Error("default selection should overwrite all")
	}
	if opts.DryRun {
		t.Error("DryRun should default to false")
	}
}

func TestOrchestrator_Apply_CreatesNewVariables(t *testing.T) {
	st := newFakeStore(nil)
	orch := NewOrchestrator(st)

	vars := model.VariableSet{"EDITOR": "vim", "PAGER": "less"}
	result, err := orch.Apply(vars, DefaultOptions())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if len(result.Created()) != 2 {
		t.Errorf("expected 2 created, got %d", len(result.Created()))
	}
	if len(st.deletes) != 0 {
		t.Error("new variables must not trigger deletes")
	}
	if st.vars["EDITOR"] != "vim" {
		t.Errorf("EDITOR = %q, want vim", st.vars["EDITOR"])
	}
}

func TestOrchestrator_Apply_OverwriteDeletesFirst(t *testing.T) {
	st := newFakeStore(map[string]string{"EDITOR": "nano"})
	orch := NewOrchestrator(st)

	vars := model.VariableSet{"EDITOR": "vim"}
	result, err := orch.Apply(vars, DefaultOptions())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if len(result.Updated()) != 1 {
		t.Fatalf("expected 1 updated, got %d", len(result.Updated()))
	}
	if len(st.deletes) != 1 || st.deletes[0] != "EDITOR" {
		t.Errorf("expected prior entry removed before set, deletes = %v", st.deletes)
	}
	if st.vars["EDITOR"] != "vim" {
		t.Errorf("EDITOR = %q, want vim", st.vars["EDITOR"])
	}
}

func TestOrchestrator_Apply_ExplicitSelection(t *testing.T) {
	st := newFakeStore(map[string]string{"A": "old-a", "B": "old-b"})
	orch := NewOrchestrator(st)

	vars := model.VariableSet{"A": "1", "B": "2", "C": "3"}
	result, err := orch.Apply(vars, Options{
		Scope:     model.ScopeUser,
		Selection: SelectKeys([]string{"A"}),
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if len(result.Updated()) != 1 || result.Updated()[0].Key != "A" {
		t.Errorf("Updated = %v, want [A]", result.Updated())
	}
	if len(result.Skipped()) != 1 || result.Skipped()[0].Key != "B" {
		t.Errorf("Skipped = %v, want [B]", result.Skipped())
	}
	if len(result.Created()) != 1 || result.Created()[0].Key != "C" {
		t.Errorf("Created = %v, want [C]", result.Created())
	}
	if st.vars["B"] != "old-b" {
		t.Error("unselected conflicting key must be left untouched")
	}
}

func TestOrchestrator_Apply_EmptySelectionCancels(t *testing.T) {
	st := newFakeStore(map[string]string{"A": "old"})
	orch := NewOrchestrator(st)

	vars := model.VariableSet{"A": "1", "B": "2"}
	_, err := orch.Apply(vars, Options{
		Scope:     model.ScopeUser,
		Selection: Selection{},
	})
	if !errors.Is(err, ErrNothingToDo) {
		t.Fatalf("expected ErrNothingToDo, got %v", err)
	}
	if len(st.sets) != 0 || len(st.deletes) != 0 {
		t.Error("cancelled apply must not touch the store")
	}
}

func TestOrchestrator_Apply_EmptyVars(t *testing.T) {
	orch := NewOrchestrator(newFakeStore(nil))

	_, err := orch.Apply(model.VariableSet{}, DefaultOptions())
	if !errors.Is(err, ErrNothingToDo) {
		t.Fatalf("expected ErrNothingToDo, got %v", err)
	}
}

func TestOrchestrator_Apply_DryRun(t *testing.T) {
	st := newFakeStore(map[string]string{"A": "old"})
	orch := NewOrchestrator(st)

	vars := model.VariableSet{"A": "1", "B": "2"}
	result, err := orch.Apply(vars, Options{
		Scope:     model.ScopeUser,
		Selection: SelectAll(),
		DryRun:    true,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !result.DryRun {
		t.Error("result should record dry run")
	}
	if result.TotalChanged() != 2 {
		t.Errorf("dry run should still plan changes, got %d", result.TotalChanged())
	}
	if len(st.sets) != 0 || len(st.deletes) != 0 {
		t.Error("dry run must not touch the store")
	}
	if st.vars["A"] != "old" {
		t.Error("dry run must not change values")
	}
}

func TestOrchestrator_Apply_OnVariableCallback(t *testing.T) {
	st := newFakeStore(map[string]string{"A": "old-a", "B": "old-b"})
	orch := NewOrchestrator(st)

	var seen []string
	vars := model.VariableSet{"A": "1", "B": "2", "C": "3"}
	_, err := orch.Apply(vars, Options{
		Scope:     model.ScopeUser,
		Selection: SelectKeys([]string{"A"}),
		OnVariable: func(vr VariableResult) {
			seen = append(seen, vr.Key)
		},
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(seen) != 3 {
		t.Errorf("callback fired %d times, want 3 (skips included): %v", len(seen), seen)
	}
}

func TestOrchestrator_Apply_SetFailureRecorded(t *testing.T) {
	st := newFakeStore(nil)
	st.setErr = map[string]error{"BAD": errors.New("disk full")}
	orch := NewOrchestrator(st)

	vars := model.VariableSet{"BAD": "x", "GOOD": "y"}
	result, err := orch.Apply(vars, DefaultOptions())
	if err != nil {
		t.Fatalf("per-key failures must not abort the batch: %v", err)
	}

	if result.Success() {
		t.Error("result should report failure")
	}
	failed := result.Failed()
	if len(failed) != 1 || failed[0].Key != "BAD" {
		t.Fatalf("Failed = %v, want [BAD]", failed)
	}
	if failed[0].Err == nil {
		t.Error("failed result should carry the error")
	}
	if st.vars["GOOD"] != "y" {
		t.Error("remaining keys should still be applied after a failure")
	}
}

func TestOrchestrator_Apply_DeleteFailureStillSets(t *testing.T) {
	st := newFakeStore(map[string]string{"A": "old"})
	st.deleteErr = map[string]error{"A": errors.New("locked")}
	orch := NewOrchestrator(st)

	result, err := orch.Apply(model.VariableSet{"A": "new"}, DefaultOptions())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	updated := result.Updated()
	if len(updated) != 1 {
		t.Fatalf("expected 1 updated, got %d", len(updated))
	}
	if updated[0].Message != "prior entry could not be removed" {
		t.Errorf("unexpected message %q", updated[0].Message)
	}
	if st.vars["A"] != "new" {
		t.Error("the set must still run when the prior delete fails")
	}
}

func TestOrchestrator_Export(t *testing.T) {
	st := newFakeStore(map[string]string{"EDITOR": "vim", "PAGER": "less"})
	orch := NewOrchestrator(st)

	vars, err := orch.Export([]string{"EDITOR"}, model.ScopeUser)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(vars) != 1 || vars["EDITOR"] != "vim" {
		t.Errorf("Export = %v, want {EDITOR: vim}", vars)
	}
}

func TestOrchestrator_Export_Empty(t *testing.T) {
	orch := NewOrchestrator(newFakeStore(nil))

	_, err := orch.Export(nil, model.ScopeUser)
	if !errors.Is(err, ErrNothingToDo) {
		t.Fatalf("expected ErrNothingToDo, got %v", err)
	}
}

func TestOrchestrator_Export_ReadFailureTreatedAsEmpty(t *testing.T) {
	st := newFakeStore(nil)
	st.exportErr = errors.New("permission denied")
	orch := NewOrchestrator(st)

	_, err := orch.Export(nil, model.ScopeUser)
	if !errors.Is(err, ErrNothingToDo) {
		t.Fatalf("expected ErrNothingToDo, got %v", err)
	}
}
