package submission

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/record"
)

var (
	// errors
	ErrEmptyUpload = errors.New("a submission batch requires at least one file")
)

// Service owns the in-memory batch sets, one per assignment. Batches cross the
// service boundary by value; the owned set is only replaced at a single commit
// point per refresh cycle.
type Service struct {
	store      record.Store
	log        core.Logger
	validate   *validator.Validate
	translator ut.Translator
	now        func() time.Time // mockable

	mu      sync.RWMutex
	batches map[string][]Batch // keyed by assignment id
}

func NewService(store record.Store, logger core.Logger, validate *validator.Validate, translator ut.Translator) *Service {
	return &Service{
		store:      store,
		log:        logger,
		validate:   validate,
		translator: translator,
		now:        time.Now,
		batches:    make(map[string][]Batch),
	}
}

// CreateBatch inserts a new batch in state "grading". When no display name is
// supplied, one is synthesized from the identifier the store assigned.
// A batch with no files is rejected with ErrEmptyUpload.
func (svc *Service) CreateBatch(ctx context.Context, nb NewBatch) (Batch, error) {
	if err := nb.Validate(svc.validate, svc.translator); err != nil {
		svc.log.Warn(fmt.Sprintf("batch creation rejected: %s", nb.AssignmentID), err)
		return Batch{}, err
	}
	if nb.FileCount == 0 {
		svc.log.Warn(fmt.Sprintf("batch creation rejected: %s", nb.AssignmentID), ErrEmptyUpload)
		return Batch{}, ErrEmptyUpload
	}

	rec := record.Record{
		"assignmentId": nb.AssignmentID,
		"batchName":    nb.Name,
		"fileCount":    nb.FileCount,
		"status":       string(StatusGrading),
		"createdAt":    svc.now().UTC(),
	}
	persisted, flagged := record.ToPersisted(rec)
	svc.logFlagged(flagged)

	row, err := svc.store.Insert(ctx, record.KindSubmission.Table(), persisted)
	if err != nil {
		err = pkgerrors.Wrap(err, "inserting batch")
		svc.log.Error(fmt.Sprintf("batch creation failed: %s", nb.AssignmentID), err)
		return Batch{}, err
	}

	canonical, flagged := record.ToCanonical(row)
	svc.logFlagged(flagged)
	batch := FromRecord(canonical)

	// the store assigns identifiers; the display name is the one thing
	// synthesized locally, derived from the assigned id
	if batch.Name == "" {
		name := synthesizeName(batch.ID)
		patch, _ := record.ToPersisted(record.Record{"batchName": name})
		row, err = svc.store.UpdateByID(ctx, record.KindSubmission.Table(), batch.ID, patch)
		if err != nil {
			err = pkgerrors.Wrap(err, "naming batch")
			svc.log.Error(fmt.Sprintf("batch creation failed: %s", nb.AssignmentID), err)
			return Batch{}, err
		}
		canonical, flagged = record.ToCanonical(row)
		svc.logFlagged(flagged)
		batch = FromRecord(canonical)
	}

	svc.mu.Lock()
	set := append(svc.batches[batch.AssignmentID], batch)
	sortBatches(set)
	svc.batches[batch.AssignmentID] = set
	svc.mu.Unlock()

	svc.log.Info(fmt.Sprintf("batch created: %s (%d files) for assignment %s", batch.ID, batch.FileCount, batch.AssignmentID))
	return batch, nil
}

// ListBatches returns the owned batch set for the assignment, newest first,
// ties broken by identifier. The returned slice is a copy.
func (svc *Service) ListBatches(assignmentID string) []Batch {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	set := svc.batches[assignmentID]
	out := make([]Batch, len(set))
	copy(out, set)
	return out
}

// Refresh re-reads the full batch list from the record store and atomically
// replaces the owned set. On failure the previous set is retained. Whatever
// status the store reports is reflected as-is; a terminal status is never
// transitioned out of by this core.
func (svc *Service) Refresh(ctx context.Context, assignmentID string) ([]Batch, error) {
	rows, err := svc.store.SelectWhere(ctx, record.KindSubmission.Table(), "assignment_id", assignmentID,
		core.DBOrdering{Field: "created_at"}, core.DBOrdering{Field: "id"})
	if err != nil {
		err = pkgerrors.Wrap(err, "refreshing batches")
		svc.log.Error(fmt.Sprintf("batch refresh failed: %s", assignmentID), err)
		return nil, err
	}

	set := make([]Batch, 0, len(rows))
	for _, row := range rows {
		canonical, flagged := record.ToCanonical(row)
		svc.logFlagged(flagged)
		set = append(set, FromRecord(canonical))
	}
	sortBatches(set)

	svc.mu.Lock()
	svc.batches[assignmentID] = set
	svc.mu.Unlock()

	svc.log.Debug(fmt.Sprintf("batches refreshed: %s (%d)", assignmentID, len(set)))
	return svc.ListBatches(assignmentID), nil
}

func (svc *Service) logFlagged(flagged []string) {
	if len(flagged) > 0 {
		svc.log.Warn(fmt.Sprintf("malformed record keys passed through: submission %v", flagged))
	}
}

// sortBatches orders newest first, ties by creation time broken by identifier.
func sortBatches(set []Batch) {
	sort.SliceStable(set, func(i, j int) bool {
		if set[i].CreatedAt.Equal(set[j].CreatedAt) {
			return set[i].ID > set[j].ID
		}
		return set[i].CreatedAt.After(set[j].CreatedAt)
	})
}

func synthesizeName(id string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return "Batch " + short
}
