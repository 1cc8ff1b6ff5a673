package class_test

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/class"
	logsvc "github.com/classforge/classforge/services/logger"
	inmemdb "github.com/classforge/classforge/storage/database/inmem"
	testutil "github.com/classforge/classforge/tests"
)

func setup(t *testing.T) (*class.Service, *inmemdb.DB) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	logger := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))
	validate, translator := testutil.NewValidator()
	return class.NewService(db, logger, validate, translator), db
}

func Test_Service_Update(t *testing.T) {
	svc, db := setup(t)
	cls := testutil.CreateClass(t, db, "Intro to Algorithms", "CS101")
	id := cls.String("id")

	got, err := svc.Update(context.Background(), id, class.UpdateClass{
		Title:      "  Advanced Algorithms  ",
		Department: class.DepartmentMathematics,
		Status:     class.StatusInactive,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Advanced Algorithms", got.Title, "strings are trimmed")
	assert.Equal(t, class.DepartmentMathematics, got.Department)
	assert.Equal(t, class.StatusInactive, got.Status)
	assert.Equal(t, "CS101", got.Code, "unpatched fields are untouched")
	assert.False(t, got.UpdatedAt.IsZero())
}

func Test_Service_Update_codeUppercased(t *testing.T) {
	svc, db := setup(t)
	cls := testutil.CreateClass(t, db, "Intro to Algorithms", "TMP")
	id := cls.String("id")

	got, err := svc.Update(context.Background(), id, class.UpdateClass{Code: "cs101"})
	assert.NoError(t, err)
	assert.Equal(t, "CS101", got.Code)

	// re-read observes the upper-cased code too
	reread, err := svc.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, "CS101", reread.Code)
}

func Test_Service_Update_validationFailure(t *testing.T) {
	svc, db := setup(t)
	cls := testutil.CreateClass(t, db, "Intro to Algorithms", "CS101")
	id := cls.String("id")

	before, err := db.GetByID(context.Background(), "classes", id)
	assert.NoError(t, err)

	tests := []struct {
		name  string
		data  class.UpdateClass
		field string
	}{
		{name: "title too short", data: class.UpdateClass{Title: "ab"}, field: "title"},
		{name: "code not alphanumeric", data: class.UpdateClass{Code: "cs-101"}, field: "code"},
		{name: "term not alphanumeric", data: class.UpdateClass{Term: "fall-2024!"}, field: "term"},
		{name: "department outside enumeration", data: class.UpdateClass{Department: "Alchemy"}, field: "department"},
		{name: "status outside enumeration", data: class.UpdateClass{Status: "archived"}, field: "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), id, tt.data)
			assert.Error(t, err)

			vErr, ok := err.(*core.ValidationError)
			if assert.True(t, ok, "want *core.ValidationError, got %T", err) {
				assert.Equal(t, tt.field, vErr.Fields[0].Field)
			}
		})
	}

	// the persisted record is byte-for-byte unchanged
	after, err := db.GetByID(context.Background(), "classes", id)
	assert.NoError(t, err)
	testutil.AssertRecordsEqual(t, before, after)
}
