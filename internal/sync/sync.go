// Package sync orchestrates applying and exporting environment variables
// against a backend store: probe for conflicts, resolve the overwrite
// policy into a plan, then mutate the store one key at a time.
package sync

import (
	"log/slog"

	"github.com/klauern/envsync/internal/logging"
	"github.com/klauern/envsync/internal/model"
	"github.com/klauern/envsync/internal/store"
)

// Options configures an apply operation.
type Options struct {
	// Scope selects the store scope. Defaults to user; system is only
	// meaningful for the Windows registry backend.
	Scope model.Scope

	// Selection is the overwrite policy applied when conflicts exist.
	Selection Selection

	// DryRun previews the plan without mutating the store.
	DryRun bool

	// OnVariable, when set, is invoked after each variable is processed.
	// The CLI uses it to drive a progress bar.
	OnVariable func(VariableResult)
}

// DefaultOptions returns the default apply options: user scope,
// overwrite-all.
func DefaultOptions() Options {
	return Options{
		Scope:     model.ScopeUser,
		Selection: SelectAll(),
	}
}

// Orchestrator composes the prober, the conflict resolver, and a backend
// store into full apply and export cycles. It holds the one store selected
// at construction and never branches on platform again.
type Orchestrator struct {
	store  store.Store
	prober *Prober
}

// NewOrchestrator creates an orchestrator over the given store.
func NewOrchestrator(st store.Store) *Orchestrator {
	return &Orchestrator{
		store:  st,
		prober: NewProber(st),
	}
}

// Probe exposes conflict detection so callers can collect an overwrite
// selection from the operator before Apply.
func (o *Orchestrator) Probe(vars model.VariableSet, scope model.Scope) model.ConflictReport {
	if scope == "" {
		scope = model.ScopeUser
	}
	return o.prober.Probe(vars.Keys(), scope)
}

// Apply persists vars according to the resolved plan: conflicting selected
// keys are deleted then re-set, new keys are set directly, unselected
// conflicting keys are skipped. Per-key failures are recorded on the Result
// and never abort the batch; only an empty resolution (ErrNothingToDo)
// stops the flow, and it stops it before any mutation.
func (o *Orchestrator) Apply(vars model.VariableSet, opts Options) (*Result, error) {
	defer logging.Timer("apply")()

	if opts.Scope == "" {
		opts.Scope = model.ScopeUser
	}
	result := &Result{Scope: opts.Scope, DryRun: opts.DryRun}

	if len(vars) == 0 {
		return result, ErrNothingToDo
	}

	conflicts := o.prober.Probe(vars.Keys(), opts.Scope)
	plan, err := Resolve(vars, conflicts, opts.Selection)
	if err != nil {
		return result, err
	}

	logging.Debug("plan resolved",
		logging.Operation("apply"),
		logging.Scope(string(opts.Scope)),
		slog.Int("overwrite", len(plan.Overwrite)),
		slog.Int("create", len(plan.Create)),
		slog.Int("skip", len(plan.Skip)),
		slog.Bool("dry_run", opts.DryRun),
	)

	record := func(vr VariableResult) {
		result.Variables = append(result.Variables, vr)
		if opts.OnVariable != nil {
			opts.OnVariable(vr)
		}
	}

	for _, key := range plan.Skip {
		record(VariableResult{
			Key:     key,
			Action:  ActionSkipped,
			Message: "existing variable not selected for overwrite",
		})
	}
	for _, key := range plan.Overwrite {
		record(o.applyVariable(key, vars[key], opts, true))
	}
	for _, key := range plan.Create {
		record(o.applyVariable(key, vars[key], opts, false))
	}

	logging.Debug("apply completed",
		logging.Operation("apply"),
		logging.Count(result.TotalChanged()),
		slog.Int("failed", len(result.Failed())),
	)
	return result, nil
}

// applyVariable performs the delete-then-set cycle for one key.
func (o *Orchestrator) applyVariable(key, value string, opts Options, existed bool) VariableResult {
	vr := VariableResult{Key: key, Action: ActionCreated, Message: "new variable"}
	if existed {
		vr.Action = ActionUpdated
		vr.Message = "replaced existing entry"
	}

	if opts.DryRun {
		return vr
	}

	if existed {
		if err := o.store.Delete(key, opts.Scope); err != nil {
			// Reported, never fatal: the set below still runs, at worst
			// leaving a duplicate entry in a shell profile.
			logging.Warn("failed to remove prior entry",
				logging.Key(key),
				logging.Err(err),
			)
			vr.Message = "prior entry could not be removed"
		}
	}

	if err := o.store.Set(key, value, opts.Scope); err != nil {
		logging.Error("failed to persist variable",
			logging.Key(key),
			logging.Scope(string(opts.Scope)),
			logging.Err(err),
		)
		vr.Action = ActionFailed
		vr.Err = err
		return vr
	}

	return vr
}

// Export returns the persisted variables matching filter (nil means all).
// A store read failure is downgraded to an empty result, and an empty
// result aborts with ErrNothingToDo so callers write no file.
func (o *Orchestrator) Export(filter []string, scope model.Scope) (model.VariableSet, error) {
	defer logging.Timer("export")()

	if scope == "" {
		scope = model.ScopeUser
	}

	vars, err := o.store.Export(filter, scope)
	if err != nil {
		logging.Warn("store export failed, treating store as empty",
			logging.Scope(string(scope)),
			logging.Err(err),
		)
		vars = model.VariableSet{}
	}

	if len(vars) == 0 {
		return vars, ErrNothingToDo
	}

	logging.Debug("export completed",
		logging.Operation("export"),
		logging.Scope(string(scope)),
		logging.Count(len(vars)),
	)
	return vars, nil
}
