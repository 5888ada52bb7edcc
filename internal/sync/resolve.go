package sync

import (
	"errors"

	"github.com/klauern/envsync/internal/model"
)

// ErrNothingToDo reports that resolution selected no keys to apply, or that
// an export matched no variables. It is a no-op outcome, not a failure:
// callers report it and exit cleanly without touching the store.
var ErrNothingToDo = errors.New("nothing to do")

// Selection captures the caller's overwrite policy for conflicting keys.
// The zero value declines every overwrite, which cancels the apply when
// conflicts exist.
type Selection struct {
	// All overwrites every conflicting key.
	All bool

	// Keys names the conflicting keys to overwrite. Conflicting keys not
	// listed here are skipped entirely rather than guessed.
	Keys []string
}

// SelectAll returns a selection that overwrites every conflicting key.
func SelectAll() Selection {
	return Selection{All: true}
}

// SelectKeys returns a selection that overwrites only the named keys.
// The literal token "all" is handled by the caller, not here.
func SelectKeys(keys []string) Selection {
	return Selection{Keys: keys}
}

// Plan is the per-key outcome of conflict resolution.
type Plan struct {
	// Overwrite holds keys with a prior entry; each is deleted before
	// being re-set.
	Overwrite []string

	// Create holds keys with no prior entry, applied directly.
	Create []string

	// Skip holds keys left untouched because they conflicted and were not
	// selected for overwrite.
	Skip []string
}

// Empty reports whether the plan mutates nothing.
func (p Plan) Empty() bool {
	return len(p.Overwrite) == 0 && len(p.Create) == 0
}

// Resolve decides the action for every key in vars given the conflicts the
// prober found.
//
// With no conflicts, every key is created directly. With conflicts, the
// selection names the keys to overwrite; unselected conflicting keys are
// skipped while non-conflicting keys still proceed (the conservative
// reading: an explicit selection limits overwrites, it does not veto new
// variables). An empty selection against a non-empty conflict set aborts
// with ErrNothingToDo, as does any plan that would mutate nothing.
func Resolve(vars model.VariableSet, conflicts model.ConflictReport, sel Selection) (Plan, error) {
	var plan Plan

	// The operator declined overwrite-all and named nothing: cancel before
	// any mutation rather than guess.
	if !conflicts.Empty() && !sel.All && len(sel.Keys) == 0 {
		return plan, ErrNothingToDo
	}

	selected := make(map[string]struct{}, len(sel.Keys))
	for _, k := range sel.Keys {
		selected[k] = struct{}{}
	}

	for _, key := range vars.Keys() {
		switch {
		case !conflicts.Has(key):
			plan.Create = append(plan.Create, key)
		case sel.All:
			plan.Overwrite = append(plan.Overwrite, key)
		default:
			if _, ok := selected[key]; ok {
				plan.Overwrite = append(plan.Overwrite, key)
			} else {
				plan.Skip = append(plan.Skip, key)
			}
		}
	}

	if plan.Empty() {
		return plan, ErrNothingToDo
	}
	return plan, nil
}
