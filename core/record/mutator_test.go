package record_test

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/record"
	logsvc "github.com/classforge/classforge/services/logger"
	inmemdb "github.com/classforge/classforge/storage/database/inmem"
	testutil "github.com/classforge/classforge/tests"
)

func setup(t *testing.T) (*record.Mutator, *inmemdb.DB) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	logger := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))
	return record.NewMutator(db, logger), db
}

func Test_Mutator_Update(t *testing.T) {
	mut, db := setup(t)
	cls := testutil.CreateClass(t, db, "Algorithms", "CS101")
	id := cls.String("id")

	got, err := mut.Update(context.Background(), record.KindClass, id, record.Record{
		"title": "Advanced Algorithms",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Advanced Algorithms", got.String("title"))
	assert.Equal(t, "CS101", got.String("code"), "unpatched fields are untouched")

	// updatedAt is refreshed as part of the same update
	assert.False(t, got.Time("updatedAt").IsZero())
	assert.True(t, got.Time("updatedAt").After(cls.Time("updated_at")) || got.Time("updatedAt").Equal(cls.Time("updated_at")))

	// the persisted row speaks snake_case
	row, err := db.GetByID(context.Background(), "classes", id)
	assert.NoError(t, err)
	assert.Equal(t, "Advanced Algorithms", row.String("title"))
	assert.Contains(t, row, "updated_at")
	assert.NotContains(t, row, "updatedAt")
}

func Test_Mutator_Update_notFound(t *testing.T) {
	mut, _ := setup(t)

	_, err := mut.Update(context.Background(), record.KindClass, "nope", record.Record{"title": "X"})
	assert.Error(t, err)
	assert.True(t, core.IsNotFound(err))

	_, err = mut.Update(context.Background(), record.KindClass, "", record.Record{"title": "X"})
	assert.True(t, core.IsNotFound(err))
}

func Test_Mutator_Fetch(t *testing.T) {
	mut, db := setup(t)
	cls := testutil.CreateClass(t, db, "Algorithms", "CS101")

	got, err := mut.Fetch(context.Background(), record.KindClass, cls.String("id"))
	assert.NoError(t, err)
	assert.Equal(t, "Algorithms", got.String("title"))
	assert.Contains(t, got, "createdAt")
	assert.NotContains(t, got, "created_at")

	_, err = mut.Fetch(context.Background(), record.KindClass, "missing")
	assert.True(t, core.IsNotFound(err))
}
