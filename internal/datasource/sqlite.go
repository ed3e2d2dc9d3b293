package datasource

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the pure-Go "sqlite" driver.
	_ "modernc.org/sqlite"

	"github.com/rshade/tablekit/internal/pagination"
)

const createRecordsTable = `CREATE TABLE IF NOT EXISTS records (
	id     INTEGER PRIMARY KEY,
	name   TEXT NOT NULL,
	owner  TEXT NOT NULL,
	amount REAL NOT NULL,
	status TEXT NOT NULL
)`

// sqliteColumns maps sortable fields to SQL columns.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var sqliteColumns = map[string]string{
	FieldID:     "id",
	FieldName:   "name",
	FieldOwner:  "owner",
	FieldAmount: "amount",
}

// SQLiteSource serves records from a SQLite database.
type SQLiteSource struct {
	db      *sql.DB
	orderBy string
}

// OpenSQLite opens the database at dsn (":memory:" for a private in-memory
// database), creates the records table and seeds it with total generated
// records when it is empty.
func OpenSQLite(ctx context.Context, dsn string, total int, field, order string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %q: %w", dsn, err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	s := &SQLiteSource{db: db, orderBy: orderClause(field, order)}
	if err = s.init(ctx, total); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func orderClause(field, order string) string {
	col, ok := sqliteColumns[field]
	if !ok {
		col = "id"
	}
	dir := "ASC"
	if order == pagination.SortOrderDesc {
		dir = "DESC"
	}
	if col == "id" {
		return "id " + dir
	}
	return col + " " + dir + ", id " + dir
}

func (s *SQLiteSource) init(ctx context.Context, total int) error {
	if _, err := s.db.ExecContext(ctx, createRecordsTable); err != nil {
		return fmt.Errorf("creating records table: %w", err)
	}

	existing, err := s.Total(ctx)
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO records (id, name, owner, amount, status) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing seed insert: %w", err)
	}
	defer stmt.Close()

	for id := 1; id <= total; id++ {
		r := Generate(id)
		if _, err = stmt.ExecContext(ctx, r.ID, r.Name, r.Owner, r.Amount, r.Status); err != nil {
			return fmt.Errorf("seeding record %d: %w", id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	return nil
}

// Fetch implements Source.
func (s *SQLiteSource) Fetch(ctx context.Context, offset, limit int) ([]Record, error) {
	if err := validateBatch(offset, limit); err != nil {
		return nil, err
	}

	//nolint:gosec // orderBy is built from a fixed column whitelist.
	query := "SELECT id, name, owner, amount, status FROM records ORDER BY " + s.orderBy + " LIMIT ? OFFSET ?"
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		if err = rows.Scan(&r.ID, &r.Name, &r.Owner, &r.Amount, &r.Status); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return out, nil
}

// Total implements Source.
func (s *SQLiteSource) Total(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}
