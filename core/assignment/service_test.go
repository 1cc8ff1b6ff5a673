package assignment_test

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/assignment"
	logsvc "github.com/classforge/classforge/services/logger"
	inmemdb "github.com/classforge/classforge/storage/database/inmem"
	testutil "github.com/classforge/classforge/tests"
)

func setupSvc(t *testing.T) (*assignment.Service, *inmemdb.DB) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setupSvc() failed: %v", err)
	}
	logger := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))
	validate, translator := testutil.NewValidator()
	return assignment.NewService(db, logger, validate, translator), db
}

func Test_Service_Update_assignment(t *testing.T) {
	svc, db := setupSvc(t)
	asg := testutil.CreateAssignment(t, db, "Essay 1", "document", 100)
	id := asg.String("id")

	points := 40
	got, err := svc.Update(context.Background(), id, assignment.UpdateAssignment{
		Title:  "Essay 1 (revised)",
		Points: &points,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Essay 1 (revised)", got.Title)
	assert.Equal(t, 40, got.Points)
	assert.Equal(t, assignment.TypeDocument, got.Type)
}

func Test_Service_Update_pointsMustBePositive(t *testing.T) {
	svc, db := setupSvc(t)
	asg := testutil.CreateAssignment(t, db, "Essay 1", "document", 100)

	points := 0
	_, err := svc.Update(context.Background(), asg.String("id"), assignment.UpdateAssignment{Points: &points})
	assert.Error(t, err)

	vErr, ok := err.(*core.ValidationError)
	if assert.True(t, ok) {
		assert.Equal(t, "points", vErr.Fields[0].Field)
	}
}

func Test_Service_UpdateCriteria(t *testing.T) {
	svc, db := setupSvc(t)
	asg := testutil.CreateAssignment(t, db, "Essay 1", "document", 100)
	id := asg.String("id")

	got, err := svc.UpdateCriteria(context.Background(), id, assignment.UpdateCriteria{
		GradingCriteria: "argument structure, sources, style",
	})
	assert.NoError(t, err)
	assert.Equal(t, "argument structure, sources, style", got.GradingCriteria)

	// the general edit path cannot reach grading criteria
	got, err = svc.Update(context.Background(), id, assignment.UpdateAssignment{Title: "Essay 1b"})
	assert.NoError(t, err)
	assert.Equal(t, "argument structure, sources, style", got.GradingCriteria)

	_, err = svc.UpdateCriteria(context.Background(), id, assignment.UpdateCriteria{GradingCriteria: "  "})
	assert.Error(t, err, "criteria are required on the dedicated path")
}

func Test_Assignment_Accepts(t *testing.T) {
	voice := assignment.Assignment{Type: assignment.TypeVoice}
	doc := assignment.Assignment{Type: assignment.TypeDocument}

	assert.True(t, voice.Accepts("audio/mpeg"))
	assert.True(t, voice.Accepts("audio/wav"))
	assert.False(t, voice.Accepts("application/pdf"))
	assert.False(t, voice.Accepts("video/mp4"))

	assert.True(t, doc.Accepts("application/pdf"))
	assert.False(t, doc.Accepts("audio/mpeg"))
	assert.False(t, doc.Accepts("text/plain"))
}
