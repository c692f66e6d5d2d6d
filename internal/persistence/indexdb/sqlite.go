// Package indexdb keeps a SQLite index of runs: per-tick digests and
// snapshot locations. It is a secondary index for tooling; the JSONL tick
// logs and .snap.zst files remain the source of truth.
package indexdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"unlimitedworlds.ai/internal/persistence/snapshot"
	"unlimitedworlds.ai/internal/sim/world"
)

type SQLiteIndex struct {
	db  *sql.DB
	run string

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type reqKind int

const (
	reqTick reqKind = iota + 1
	reqSnapshot
	reqSync
)

type req struct {
	kind reqKind

	tick     world.TickLogEntry
	snapshot snapshotRow
	done     chan struct{}
}

type snapshotRow struct {
	Tick   uint64
	Path   string
	Seed   int64
	Agents int
	Digest string
}

// Open creates or opens the index database and starts the writer goroutine.
// run names the simulation run all subsequent writes belong to.
func Open(path, run string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db:  db,
		run: run,
		ch:  make(chan req, 4096),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL suits the append-style write pattern.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ticks (
			run TEXT NOT NULL,
			tick INTEGER NOT NULL,
			digest TEXT NOT NULL,
			events INTEGER NOT NULL,
			raw_json TEXT NOT NULL,
			PRIMARY KEY (run, tick)
		);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			run TEXT NOT NULL,
			tick INTEGER NOT NULL,
			path TEXT NOT NULL,
			seed INTEGER NOT NULL,
			agents INTEGER NOT NULL,
			digest TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			PRIMARY KEY (run, tick)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// WriteTick implements world.TickLogger.
func (s *SQLiteIndex) WriteTick(entry world.TickLogEntry) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- req{kind: reqTick, tick: entry}:
	default:
		// Drop if the indexer falls behind; the JSONL log keeps everything.
	}
	return nil
}

// RecordSnapshot indexes a written snapshot file.
func (s *SQLiteIndex) RecordSnapshot(path string, snap snapshot.SnapshotV1) {
	if s == nil || s.closed.Load() {
		return
	}
	r := snapshotRow{
		Tick:   snap.Header.Tick,
		Path:   path,
		Seed:   snap.Seed,
		Agents: len(snap.Agents),
		Digest: snap.Digest,
	}
	select {
	case s.ch <- req{kind: reqSnapshot, snapshot: r}:
	default:
	}
}

func (s *SQLiteIndex) loop() {
	for r := range s.ch {
		switch r.kind {
		case reqTick:
			s.insertTick(r.tick)
		case reqSnapshot:
			s.insertSnapshot(r.snapshot)
		case reqSync:
			close(r.done)
		}
	}
}

func (s *SQLiteIndex) insertTick(entry world.TickLogEntry) {
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = s.db.Exec(
		`INSERT OR REPLACE INTO ticks (run, tick, digest, events, raw_json) VALUES (?, ?, ?, ?, ?)`,
		s.run, entry.Tick, entry.Digest, len(entry.Events), string(raw),
	)
}

func (s *SQLiteIndex) insertSnapshot(r snapshotRow) {
	_, _ = s.db.Exec(
		`INSERT OR REPLACE INTO snapshots (run, tick, path, seed, agents, digest, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.run, r.Tick, r.Path, r.Seed, r.Agents, r.Digest,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
}

// Flush blocks until every write queued before the call has been applied.
func (s *SQLiteIndex) Flush() {
	if s == nil || s.closed.Load() {
		return
	}
	done := make(chan struct{})
	s.ch <- req{kind: reqSync, done: done}
	<-done
}

// TickDigest returns the recorded digest for one tick of this run.
func (s *SQLiteIndex) TickDigest(tick uint64) (string, error) {
	var digest string
	err := s.db.QueryRow(
		`SELECT digest FROM ticks WHERE run = ? AND tick = ?`, s.run, tick,
	).Scan(&digest)
	return digest, err
}

// LatestSnapshot returns the most recent snapshot row for this run.
func (s *SQLiteIndex) LatestSnapshot() (tick uint64, path string, err error) {
	err = s.db.QueryRow(
		`SELECT tick, path FROM snapshots WHERE run = ? ORDER BY tick DESC LIMIT 1`, s.run,
	).Scan(&tick, &path)
	return tick, path, err
}

// TickCount returns how many ticks of this run are indexed.
func (s *SQLiteIndex) TickCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM ticks WHERE run = ?`, s.run).Scan(&n)
	return n, err
}
