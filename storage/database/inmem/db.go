package inmemdb

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/record"
)

// DB is an in-memory record.Store used as a test double.
// It assigns identifiers on insert like the real store does.
type DB struct {
	mu     sync.RWMutex
	tables map[string]map[string]record.Record
}

var _ record.Store = (*DB)(nil) // interface compliance check

func Open() (*DB, error) {
	return &DB{tables: make(map[string]map[string]record.Record)}, nil
}

// table must be called with the write lock held; it creates missing tables.
func (db *DB) table(name string) map[string]record.Record {
	t, ok := db.tables[name]
	if !ok {
		t = make(map[string]record.Record)
		db.tables[name] = t
	}
	return t
}

func (db *DB) GetByID(_ context.Context, table, id string) (record.Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if rec, ok := db.tables[table][id]; ok {
		return rec.Copy(), nil
	}
	return nil, core.NewNotFoundError(table, id)
}

func (db *DB) SelectWhere(_ context.Context, table, field string, value interface{}, ordering ...core.DBOrdering) ([]record.Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var recs []record.Record
	for _, rec := range db.tables[table] {
		if rec[field] == value {
			recs = append(recs, rec.Copy())
		}
	}
	sortRecords(recs, ordering)
	return recs, nil
}

func (db *DB) Insert(_ context.Context, table string, rec record.Record) (record.Record, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rec = rec.Copy()
	rec["id"] = uuid.New().String()
	if rec.Time("created_at").IsZero() {
		rec["created_at"] = time.Now().UTC()
	}
	db.table(table)[rec.String("id")] = rec
	return rec.Copy(), nil
}

func (db *DB) UpdateByID(_ context.Context, table, id string, patch record.Record) (record.Record, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rec, ok := db.table(table)[id]
	if !ok {
		return nil, core.NewNotFoundError(table, id)
	}
	for k, v := range patch {
		rec[k] = v
	}
	return rec.Copy(), nil
}

// Seed places a row directly in a table, bypassing Insert's id assignment.
func (db *DB) Seed(table string, rec record.Record) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.table(table)[rec.String("id")] = rec.Copy()
}

func sortRecords(recs []record.Record, ordering []core.DBOrdering) {
	if len(ordering) == 0 {
		return
	}
	sort.SliceStable(recs, func(i, j int) bool {
		for _, ord := range ordering {
			c := compareValues(recs[i][ord.Field], recs[j][ord.Field])
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1
			case av.After(bv):
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case int:
		if bv, ok := b.(int); ok {
			return av - bv
		}
	}
	return 0
}
