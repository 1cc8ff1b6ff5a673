package assignment

import (
	"context"
	"fmt"
	"sync"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/submission"
)

// BatchSource supplies the batch list composed into the view.
type BatchSource interface {
	Refresh(ctx context.Context, assignmentID string) ([]submission.Batch, error)
}

// Snapshot is one committed composition of an assignment with its batches.
// Snapshots cross the view boundary by value.
type Snapshot struct {
	Assignment Assignment         `json:"assignment"`
	Batches    []submission.Batch `json:"batches"`
}

// View composes one assignment with its submission batches. Refresh fetches
// both concurrently and commits the composed snapshot only once both fetches
// succeed; a half-updated view is never observable. A superseded refresh has
// its result discarded once a newer refresh has committed (last-commit-wins).
type View struct {
	assignmentID string
	assignments  *Service
	batches      BatchSource
	log          core.Logger

	mu        sync.Mutex
	seq       uint64 // last issued refresh
	committed uint64 // last committed refresh
	current   Snapshot
	hasView   bool
	subs      []chan Snapshot
}

func NewView(assignmentID string, assignments *Service, batches BatchSource, logger core.Logger) *View {
	return &View{
		assignmentID: assignmentID,
		assignments:  assignments,
		batches:      batches,
		log:          logger,
	}
}

// Current returns the last committed snapshot.
func (v *View) Current() (Snapshot, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotCopy(), v.hasView
}

// Subscribe returns a channel receiving a snapshot copy on every commit.
// A slow subscriber only ever misses intermediate snapshots, never the latest.
func (v *View) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	v.mu.Lock()
	v.subs = append(v.subs, ch)
	v.mu.Unlock()
	return ch
}

// Refresh re-fetches the assignment record and the batch list concurrently.
// If either fetch fails, the previously committed view is retained and the
// failure is returned.
func (v *View) Refresh(ctx context.Context) (Snapshot, error) {
	v.mu.Lock()
	v.seq++
	seq := v.seq
	v.mu.Unlock()

	var (
		wg      sync.WaitGroup
		asg     Assignment
		batches []submission.Batch
		asgErr  error
		batErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		asg, asgErr = v.assignments.GetByID(ctx, v.assignmentID)
	}()
	go func() {
		defer wg.Done()
		batches, batErr = v.batches.Refresh(ctx, v.assignmentID)
	}()
	wg.Wait()

	if asgErr != nil {
		return v.retained(), asgErr
	}
	if batErr != nil {
		return v.retained(), batErr
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq <= v.committed {
		// a newer refresh has already committed; discard this result
		v.log.Debug(fmt.Sprintf("stale view refresh discarded: %s", v.assignmentID))
		return v.snapshotCopy(), nil
	}
	v.committed = seq
	v.current = Snapshot{Assignment: asg, Batches: batches}
	v.hasView = true
	v.publish()
	return v.snapshotCopy(), nil
}

func (v *View) retained() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotCopy()
}

// snapshotCopy must be called with the mutex held.
func (v *View) snapshotCopy() Snapshot {
	cp := Snapshot{Assignment: v.current.Assignment}
	if v.current.Batches != nil {
		cp.Batches = make([]submission.Batch, len(v.current.Batches))
		copy(cp.Batches, v.current.Batches)
	}
	return cp
}

// publish must be called with the mutex held.
func (v *View) publish() {
	for _, ch := range v.subs {
		snap := v.snapshotCopy()
		select {
		case ch <- snap:
		default:
			// replace the pending snapshot with the latest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
