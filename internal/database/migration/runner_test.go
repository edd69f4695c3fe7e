package migration

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
)

// recorder collects what the fake driver saw across every connection the
// pool opened.
type recorder struct {
	mu           sync.Mutex
	nextConnID   int
	lockConnID   int
	unlockConnID int
	applied      []appliedRow
}

type appliedRow struct {
	version  int64
	checksum string
}

type fakeConnector struct {
	rec *recorder
}

func (c *fakeConnector) Connect(context.Context) (driver.Conn, error) {
	c.rec.mu.Lock()
	defer c.rec.mu.Unlock()
	c.rec.nextConnID++
	return &fakeConn{id: c.rec.nextConnID, rec: c.rec}, nil
}

func (c *fakeConnector) Driver() driver.Driver { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) { return nil, errors.New("use the connector") }

type fakeConn struct {
	id  int
	rec *recorder
}

func (c *fakeConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (c *fakeConn) Close() error                        { return nil }
func (c *fakeConn) Begin() (driver.Tx, error)           { return fakeDriverTx{}, nil }

func (c *fakeConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return fakeDriverTx{}, nil
}

func (c *fakeConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.rec.mu.Lock()
	defer c.rec.mu.Unlock()
	switch {
	case strings.Contains(query, "pg_advisory_lock"):
		c.rec.lockConnID = c.id
	case strings.Contains(query, "pg_advisory_unlock"):
		c.rec.unlockConnID = c.id
	case strings.Contains(query, "INSERT INTO schema_migrations"):
		c.rec.applied = append(c.rec.applied, appliedRow{
			version:  args[0].Value.(int64),
			checksum: args[2].Value.(string),
		})
	}
	return driver.RowsAffected(1), nil
}

func (c *fakeConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.rec.mu.Lock()
	defer c.rec.mu.Unlock()
	if strings.Contains(query, "FROM schema_migrations") {
		rows := make([]appliedRow, len(c.rec.applied))
		copy(rows, c.rec.applied)
		return &appliedResult{rows: rows}, nil
	}
	return &appliedResult{}, nil
}

type fakeDriverTx struct{}

func (fakeDriverTx) Commit() error   { return nil }
func (fakeDriverTx) Rollback() error { return nil }

type appliedResult struct {
	rows []appliedRow
	i    int
}

func (r *appliedResult) Columns() []string { return []string{"version", "checksum"} }
func (r *appliedResult) Close() error      { return nil }

func (r *appliedResult) Next(dest []driver.Value) error {
	if r.i >= len(r.rows) {
		return io.EOF
	}
	dest[0] = r.rows[r.i].version
	dest[1] = r.rows[r.i].checksum
	r.i++
	return nil
}

func newMigrationTestDB(rec *recorder) *sql.DB {
	db := sql.OpenDB(&fakeConnector{rec: rec})
	// No idle reuse, so each pooled statement lands on a fresh session and
	// the lock-pinning assertion below actually means something.
	db.SetMaxIdleConns(0)
	return db
}

func migrationFiles() fstest.MapFS {
	return fstest.MapFS{
		"V1__init.sql":      {Data: []byte("CREATE TABLE a (id INT);")},
		"V2__add_index.sql": {Data: []byte("CREATE INDEX a_id ON a (id);")},
	}
}

func TestRunner_AppliesPendingInOrder(t *testing.T) {
	rec := &recorder{}
	db := newMigrationTestDB(rec)
	defer db.Close()

	if err := (Runner{FS: migrationFiles()}).Run(context.Background(), db); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rec.applied) != 2 {
		t.Fatalf("expected 2 applied migrations, got %d", len(rec.applied))
	}
	if rec.applied[0].version != 1 || rec.applied[1].version != 2 {
		t.Fatalf("applied out of order: %+v", rec.applied)
	}
}

func TestRunner_SkipsAlreadyApplied(t *testing.T) {
	rec := &recorder{}
	db := newMigrationTestDB(rec)
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := (Runner{FS: migrationFiles()}).Run(context.Background(), db); err != nil {
			t.Fatalf("run %d: unexpected err: %v", i+1, err)
		}
	}
	if len(rec.applied) != 2 {
		t.Fatalf("expected second run to apply nothing, got %d total", len(rec.applied))
	}
}

func TestRunner_ChecksumMismatchFails(t *testing.T) {
	rec := &recorder{}
	db := newMigrationTestDB(rec)
	defer db.Close()

	fsys := fstest.MapFS{"V1__init.sql": {Data: []byte("CREATE TABLE a (id INT);")}}
	if err := (Runner{FS: fsys}).Run(context.Background(), db); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	fsys["V1__init.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE a (id BIGINT);")}
	err := (Runner{FS: fsys}).Run(context.Background(), db)
	if err == nil || !strings.Contains(err.Error(), "checksum mismatch") {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestRunner_AdvisoryLockPairSharesOneSession(t *testing.T) {
	rec := &recorder{}
	db := newMigrationTestDB(rec)
	defer db.Close()

	if err := (Runner{FS: migrationFiles()}).Run(context.Background(), db); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.lockConnID == 0 || rec.unlockConnID == 0 {
		t.Fatalf("advisory lock pair not executed: lock=%d unlock=%d", rec.lockConnID, rec.unlockConnID)
	}
	if rec.lockConnID != rec.unlockConnID {
		t.Fatalf("advisory unlock ran on a different session: lock=%d unlock=%d", rec.lockConnID, rec.unlockConnID)
	}
	if rec.nextConnID < 2 {
		t.Fatalf("expected the pool to open multiple connections, got %d", rec.nextConnID)
	}
}
