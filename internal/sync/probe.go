package sync

import (
	"github.com/klauern/envsync/internal/logging"
	"github.com/klauern/envsync/internal/model"
	"github.com/klauern/envsync/internal/store"
)

// Prober checks which candidate keys already exist in a backend store.
type Prober struct {
	store store.Store
}

// NewProber creates a prober over the given store.
func NewProber(st store.Store) *Prober {
	return &Prober{store: st}
}

// Probe reports which of the candidate keys are already persisted in the
// given scope. It never mutates the store. Read failures are downgraded to
// "not found" with a warning: conflict detection is best-effort against a
// store that may not exist yet.
func (p *Prober) Probe(keys []string, scope model.Scope) model.ConflictReport {
	report := model.ConflictReport{}

	for _, key := range keys {
		exists, err := p.store.Exists(key, scope)
		if err != nil {
			logging.Warn("existence check failed, treating key as absent",
				logging.Key(key),
				logging.Scope(string(scope)),
				logging.Err(err),
			)
			continue
		}
		if exists {
			report.Add(key)
		}
	}

	logging.Debug("probe completed",
		logging.Operation("probe"),
		logging.Scope(string(scope)),
		logging.Count(len(report)),
	)
	return report
}
