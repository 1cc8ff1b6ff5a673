package record

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/classforge/classforge/core"
)

// Mutator applies validated partial updates to single records.
// Callers hand it a canonical patch that already passed the schema for its
// kind; the mutator stamps updatedAt, converts to persisted form, submits the
// update scoped by id and hands back the refreshed canonical record.
type Mutator struct {
	store Store
	log   core.Logger
	now   func() time.Time // mockable
}

func NewMutator(store Store, logger core.Logger) *Mutator {
	return &Mutator{
		store: store,
		log:   logger,
		now:   time.Now,
	}
}

func (m *Mutator) Update(ctx context.Context, kind Kind, id string, patch Record) (Record, error) {
	if id == "" {
		return nil, core.NewNotFoundError(kind.Table(), id)
	}

	patch = patch.Copy()
	patch["updatedAt"] = m.now().UTC()

	persisted, flagged := ToPersisted(patch)
	m.logFlagged(kind, flagged)

	row, err := m.store.UpdateByID(ctx, kind.Table(), id, persisted)
	if err != nil {
		if !core.IsNotFound(err) {
			err = errors.Wrapf(err, "updating %s %s", kind, id)
		}
		m.log.Error(fmt.Sprintf("record update failed: %s %s", kind, id), err)
		return nil, err
	}

	canonical, flagged := ToCanonical(row)
	m.logFlagged(kind, flagged)

	m.log.Debug(fmt.Sprintf("record updated: %s %s", kind, id))
	return canonical, nil
}

// Fetch reads one record by id and returns it in canonical form.
func (m *Mutator) Fetch(ctx context.Context, kind Kind, id string) (Record, error) {
	row, err := m.store.GetByID(ctx, kind.Table(), id)
	if err != nil {
		if !core.IsNotFound(err) {
			err = errors.Wrapf(err, "fetching %s %s", kind, id)
		}
		return nil, err
	}
	canonical, flagged := ToCanonical(row)
	m.logFlagged(kind, flagged)
	return canonical, nil
}

func (m *Mutator) logFlagged(kind Kind, flagged []string) {
	if len(flagged) > 0 {
		m.log.Warn(fmt.Sprintf("malformed record keys passed through: %s %v", kind, flagged))
	}
}
