package sync

import (
	"fmt"
	"strings"

	"github.com/klauern/envsync/internal/model"
)

// Action represents the action taken on a variable during apply.
type Action string

const (
	// ActionCreated indicates a new variable was persisted.
	ActionCreated Action = "created"

	// ActionUpdated indicates an existing variable was replaced.
	ActionUpdated Action = "updated"

	// ActionSkipped indicates a conflicting variable was left untouched.
	ActionSkipped Action = "skipped"

	// ActionFailed indicates an error occurred persisting the variable.
	ActionFailed Action = "failed"
)

// VariableResult is the outcome of applying a single variable.
type VariableResult struct {
	// Key is the variable that was processed.
	Key string

	// Action is the action that was taken.
	Action Action

	// Message provides additional context about the action.
	Message string

	// Err contains any error that occurred during processing.
	Err error
}

// Success returns true if the variable was processed without failure.
func (vr *VariableResult) Success() bool {
	return vr.Action != ActionFailed
}

// Result contains the complete outcome of an apply operation.
type Result struct {
	// Scope is the store scope the operation targeted.
	Scope model.Scope

	// DryRun indicates the plan was previewed without mutating the store.
	DryRun bool

	// Variables contains the result for each processed variable.
	Variables []VariableResult
}

// Created returns variables that were newly persisted.
func (r *Result) Created() []VariableResult {
	return r.filterByAction(ActionCreated)
}

// Updated returns variables that replaced an existing entry.
func (r *Result) Updated() []VariableResult {
	return r.filterByAction(ActionUpdated)
}

// Skipped returns variables that were left untouched.
func (r *Result) Skipped() []VariableResult {
	return r.filterByAction(ActionSkipped)
}

// Failed returns variables that could not be persisted.
func (r *Result) Failed() []VariableResult {
	return r.filterByAction(ActionFailed)
}

// filterByAction returns results with the given action.
func (r *Result) filterByAction(action Action) []VariableResult {
	var filtered []VariableResult
	for _, vr := range r.Variables {
		if vr.Action == action {
			filtered = append(filtered, vr)
		}
	}
	return filtered
}

// Success returns true if every variable was processed without failure.
func (r *Result) Success() bool {
	return len(r.Failed()) == 0
}

// TotalChanged returns the number of variables created or updated.
func (r *Result) TotalChanged() int {
	return len(r.Created()) + len(r.Updated())
}

// Summary returns a human-readable summary of the apply result.
func (r *Result) Summary() string {
	var sb strings.Builder

	if r.DryRun {
		sb.WriteString("Dry run - no changes made\n")
	}

	sb.WriteString(fmt.Sprintf("Applied %d variable(s) to the %s scope\n",
		r.TotalChanged(), r.Scope))

	sb.WriteString(fmt.Sprintf("  Created: %d\n", len(r.Created())))
	sb.WriteString(fmt.Sprintf("  Updated: %d\n", len(r.Updated())))
	sb.WriteString(fmt.Sprintf("  Skipped: %d\n", len(r.Skipped())))
	sb.WriteString(fmt.Sprintf("  Failed:  %d\n", len(r.Failed())))

	if skipped := r.Skipped(); len(skipped) > 0 {
		sb.WriteString("\nSkipped (existing, not selected for overwrite):\n")
		for _, vr := range skipped {
			sb.WriteString(fmt.Sprintf("  - %s\n", vr.Key))
		}
	}

	if !r.Success() {
		sb.WriteString("\nErrors:\n")
		for _, vr := range r.Failed() {
			sb.WriteString(fmt.Sprintf("  - %s: %v\n", vr.Key, vr.Err))
		}
	}

	return sb.String()
}
