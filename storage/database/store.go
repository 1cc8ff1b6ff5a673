package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/record"
)

// recordStore is the postgres implementation of record.Store.
// Rows are scanned into maps; the core handles canonicalization.
type recordStore struct {
	db *sqlx.DB
}

var _ record.Store = (*recordStore)(nil) // interface compliance check

func NewStore(db *sql.DB) *recordStore {
	return &recordStore{db: sqlx.NewDb(db, "postgres")}
}

func (s recordStore) GetByID(ctx context.Context, table, id string) (record.Record, error) {
	q := fmt.Sprintf(`SELECT * FROM %s WHERE id = $1`, pq.QuoteIdentifier(table))
	row := s.db.QueryRowxContext(ctx, q, id)

	rec := make(record.Record)
	if err := row.MapScan(rec); err != nil {
		return nil, s.trapNoRowsErr(err, "get", table, id)
	}
	return scanRow(rec), nil
}

func (s recordStore) SelectWhere(ctx context.Context, table, field string, value interface{}, ordering ...core.DBOrdering) ([]record.Record, error) {
	q := fmt.Sprintf(`SELECT * FROM %s WHERE %s = $1`, pq.QuoteIdentifier(table), pq.QuoteIdentifier(field))
	if len(ordering) > 0 {
		ords := make([]string, 0, len(ordering))
		for _, ord := range ordering {
			ords = append(ords, ord.String())
		}
		q += " ORDER BY " + strings.Join(ords, ", ")
	}

	rows, err := s.db.QueryxContext(ctx, q, value)
	if err != nil {
		return nil, core.NewPersistenceError("select", table, err)
	}
	defer func() { _ = rows.Close() }()

	var recs []record.Record
	for rows.Next() {
		rec := make(record.Record)
		if err = rows.MapScan(rec); err != nil {
			return nil, core.NewPersistenceError("select", table, err)
		}
		recs = append(recs, scanRow(rec))
	}
	if err = rows.Err(); err != nil {
		return nil, core.NewPersistenceError("select", table, err)
	}
	return recs, nil
}

func (s recordStore) Insert(ctx context.Context, table string, rec record.Record) (record.Record, error) {
	cols := sortedColumns(rec)
	quoted := make([]string, 0, len(cols))
	params := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for i, col := range cols {
		quoted = append(quoted, pq.QuoteIdentifier(col))
		params = append(params, fmt.Sprintf("$%d", i+1))
		args = append(args, bindValue(rec[col]))
	}

	q := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING *`,
		pq.QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(params, ", "))

	row := s.db.QueryRowxContext(ctx, q, args...)
	out := make(record.Record)
	if err := row.MapScan(out); err != nil {
		return nil, core.NewPersistenceError("insert", table, err)
	}
	return scanRow(out), nil
}

func (s recordStore) UpdateByID(ctx context.Context, table, id string, patch record.Record) (record.Record, error) {
	cols := sortedColumns(patch)
	sets := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(col), i+1))
		args = append(args, bindValue(patch[col]))
	}
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d RETURNING *`,
		pq.QuoteIdentifier(table), strings.Join(sets, ", "), len(args))

	row := s.db.QueryRowxContext(ctx, q, args...)
	out := make(record.Record)
	if err := row.MapScan(out); err != nil {
		return nil, s.trapNoRowsErr(err, "update", table, id)
	}
	return scanRow(out), nil
}

// trapNoRowsErr maps psql "no rows" to a not-found PersistenceError.
func (s recordStore) trapNoRowsErr(err error, op, table, id string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return core.NewNotFoundError(table, id)
	}
	return core.NewPersistenceError(op, table, err)
}

// bindValue converts empty values to SQL NULLs the way the schema expects.
func bindValue(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return null.NewString(val, val != "")
	case time.Time:
		return null.NewTime(val.UTC(), !val.IsZero())
	}
	return v
}

// scanRow normalizes driver values: text columns scan as []byte.
func scanRow(rec record.Record) record.Record {
	for k, v := range rec {
		if b, ok := v.([]byte); ok {
			rec[k] = string(b)
		}
	}
	return rec
}

func sortedColumns(rec record.Record) []string {
	cols := make([]string, 0, len(rec))
	for col := range rec {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}
