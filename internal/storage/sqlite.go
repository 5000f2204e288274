package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	logx "recur/pkg/logx"
)

//go:embed migrations.sql
var migrationsFS embed.FS

const defaultBusyTimeout = 5 * time.Second

// sqliteStore keeps last-run entries in a table and appends one row per
// execution attempt to the runs history.
//
// Timestamps are stored bit-cast to int64 so every uint64 round-trips.
type sqliteStore struct {
	db  *sql.DB
	log logx.Logger

	migrateOnce sync.Once
	migrateErr  error
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = defaultBusyTimeout
	}
	_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", busy.Milliseconds()))
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	return &sqliteStore{db: db, log: log.With(logx.String("path", path))}, nil
}

// migrate runs once; a file that is not a database surfaces here.
// The result is cached, so it must not depend on the caller's cancellation.
func (s *sqliteStore) migrate(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	s.migrateOnce.Do(func() {
		b, err := migrationsFS.ReadFile("migrations.sql")
		if err != nil {
			s.migrateErr = err
			return
		}
		_, s.migrateErr = s.db.ExecContext(ctx, string(b))
	})
	return s.migrateErr
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) Load(ctx context.Context) State {
	if s == nil || s.db == nil {
		return Empty()
	}
	if err := s.migrate(ctx); err != nil {
		s.log.Warn("state database unusable; starting fresh", logx.Err(err))
		return Empty()
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name, at FROM last_run`)
	if err != nil {
		s.log.Warn("state query failed; starting fresh", logx.Err(err))
		return Empty()
	}
	defer rows.Close()

	st := Empty()
	for rows.Next() {
		var (
			name string
			at   int64
		)
		if err := rows.Scan(&name, &at); err != nil {
			s.log.Warn("state row invalid; starting fresh", logx.Err(err))
			return Empty()
		}
		st.LastRun[name] = uint64(at)
	}
	if err := rows.Err(); err != nil {
		s.log.Warn("state query failed; starting fresh", logx.Err(err))
		return Empty()
	}
	s.log.Debug("state loaded", logx.Int("entries", len(st.LastRun)))
	return st
}

func (s *sqliteStore) Save(ctx context.Context, st State) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	if err := s.migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM last_run`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO last_run(name, at) VALUES(?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for name, at := range st.LastRun {
		if _, err := stmt.ExecContext(ctx, name, int64(at)); err != nil {
			return fmt.Errorf("save %q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Debug("state saved", logx.Int("entries", len(st.LastRun)))
	return nil
}

func (s *sqliteStore) Record(ctx context.Context, r RunRecord) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	if err := s.migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(run_id, task, at, ok, exit_code, err, took_ms) VALUES(?,?,?,?,?,?,?)`,
		r.RunID, r.Task, int64(r.At), r.OK, r.ExitCode, nullStr(r.Error), r.Took.Milliseconds(),
	)
	return err
}

func nullStr(v string) any {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return v
}
