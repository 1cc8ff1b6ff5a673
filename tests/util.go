package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/class"
	"github.com/classforge/classforge/core/record"
)

// NewValidator returns a validator and translator with all app validators registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	class.InitValidators(validate, translator)
	return validate, translator
}

// CreateClass inserts a class row in persisted form and returns its record.
func CreateClass(t *testing.T, store record.Store, title, code string) record.Record {
	t.Helper()

	now := time.Now().UTC()
	rec, err := store.Insert(context.Background(), "classes", record.Record{
		"title":      title,
		"department": string(class.DepartmentComputerScience),
		"code":       code,
		"status":     "active",
		"created_at": now,
		"updated_at": now,
	})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return rec
}

// CreateAssignment inserts an assignment row in persisted form and returns its record.
func CreateAssignment(t *testing.T, store record.Store, title, typ string, points int) record.Record {
	t.Helper()

	now := time.Now().UTC()
	rec, err := store.Insert(context.Background(), "assignments", record.Record{
		"title":            title,
		"type":             typ,
		"points":           points,
		"grading_criteria": "",
		"created_at":       now,
		"updated_at":       now,
	})
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return rec
}

// CreateBatch inserts a submission batch row in persisted form and returns its record.
func CreateBatch(
	t *testing.T,
	store record.Store,
	assignmentID, name string,
	fileCount int,
	status string,
	createdAt ...time.Time,
) record.Record {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	rec, err := store.Insert(context.Background(), "submissions", record.Record{
		"assignment_id": assignmentID,
		"batch_name":    name,
		"file_count":    fileCount,
		"status":        status,
		"created_at":    tstamp,
	})
	if err != nil {
		t.Fatalf("CreateBatch() failed: %v", err)
	}
	return rec
}

// AssertRecordsEqual fails the test when the two records are not byte-for-byte
// equal once serialized, printing a unified diff of the difference.
func AssertRecordsEqual(t *testing.T, want, got record.Record) {
	t.Helper()

	wantJSON := marshalRecord(t, want)
	gotJSON := marshalRecord(t, got)
	if wantJSON == gotJSON {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(wantJSON),
		B:        difflib.SplitLines(gotJSON),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("AssertRecordsEqual() diff failed: %v", err)
	}
	t.Errorf("records differ:\n%s", diff)
}

func marshalRecord(t *testing.T, rec record.Record) string {
	t.Helper()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		t.Fatalf("marshalRecord() failed: %v", err)
	}
	return string(data)
}
