package submission

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/record"
)

// Status is the lifecycle state of a submission batch.
// Batches are created in StatusGrading; an external grading process moves them
// to StatusCompleted or StatusFailed, which this core only observes on re-fetch.
type Status string

const (
	StatusGrading   Status = "grading"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether no further transition is accepted from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Batch is a named group of uploaded submission files tracked as one gradable
// unit. A batch belongs exclusively to one assignment.
type Batch struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignmentId"`
	Name         string    `json:"batchName"`
	FileCount    int       `json:"fileCount"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromRecord builds a Batch from a canonical record.
func FromRecord(rec record.Record) Batch {
	return Batch{
		ID:           rec.String("id"),
		AssignmentID: rec.String("assignmentId"),
		Name:         rec.String("batchName"),
		FileCount:    rec.Int("fileCount"),
		Status:       Status(rec.String("status")),
		CreatedAt:    rec.Time("createdAt"),
	}
}

// NewBatch contains information needed to create a new Batch.
type NewBatch struct {
	AssignmentID string `json:"assignmentId" validate:"required"`
	Name         string `json:"batchName" validate:"omitempty,max=120"`
	FileCount    int    `json:"fileCount" validate:"gte=0"`
}

func (nb *NewBatch) Validate(validate *validator.Validate, translator ut.Translator) error {
	nb.AssignmentID = core.CleanString(nb.AssignmentID)
	nb.Name = core.CleanString(nb.Name)

	if err := validate.Struct(nb); err != nil {
		return core.TranslateErrors(err, translator)
	}
	return nil
}
