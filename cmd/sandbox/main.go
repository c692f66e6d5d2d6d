package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"unlimitedworlds.ai/internal/persistence/indexdb"
	persistlog "unlimitedworlds.ai/internal/persistence/log"
	"unlimitedworlds.ai/internal/persistence/snapshot"
	"unlimitedworlds.ai/internal/sim/script"
	"unlimitedworlds.ai/internal/sim/tuning"
	"unlimitedworlds.ai/internal/sim/world"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "path to scenario .yaml")
		tuningPath   = flag.String("tuning", "", "path to tuning .yaml (optional)")
		runName      = flag.String("run", "", "run name (default: scenario name)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[sandbox] ", log.LstdFlags|log.Lmicroseconds)

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "missing -scenario")
		os.Exit(2)
	}

	tune := tuning.Default()
	if *tuningPath != "" {
		var err error
		tune, err = tuning.Load(*tuningPath)
		if err != nil {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	sc, err := script.Load(*scenarioPath)
	if err != nil {
		logger.Fatalf("load scenario: %v", err)
	}

	run := *runName
	if run == "" {
		run = sc.Name
	}
	runDir := filepath.Join(tune.OutDir, run)

	w, agents, err := sc.NewWorld()
	if err != nil {
		logger.Fatalf("build world: %v", err)
	}

	tickLog := persistlog.NewTickLogWriter(filepath.Join(runDir, "ticks.jsonl.zst"))
	defer tickLog.Close()

	var index *indexdb.SQLiteIndex
	dbPath := tune.IndexDBPath
	if dbPath == "" {
		dbPath = filepath.Join(runDir, "index.db")
	}
	index, err = indexdb.Open(dbPath, run)
	if err != nil {
		logger.Fatalf("open index db: %v", err)
	}
	defer index.Close()

	w.SetTickLogger(multiTickLogger{tickLog, index})

	logger.Printf("run %s: scenario=%s seed=%d agents=%d ticks=%d",
		run, sc.Name, sc.Seed, len(agents), sc.Ticks)

	var lastDigest string
	for i := uint64(1); i <= sc.Ticks; i++ {
		if err := sc.QueueActs(i, agents); err != nil {
			logger.Fatalf("queue actions: %v", err)
		}
		out := w.Tick()
		lastDigest = w.StateDigest()

		if i%uint64(tune.SnapshotEveryTicks) == 0 || i == sc.Ticks {
			snap := snapshot.Capture(w, run)
			path := filepath.Join(runDir, fmt.Sprintf("tick-%08d.snap.zst", i))
			if err := snapshot.Write(path, snap); err != nil {
				logger.Printf("write snapshot: %v", err)
			} else {
				index.RecordSnapshot(path, snap)
			}
		}

		if n := len(out.EventsNamed("collision")); n > 0 {
			logger.Printf("tick %d: %d collision(s)", i, n)
		}
	}

	index.Flush()
	logger.Printf("done: tick=%d digest=%s", w.TickCount(), lastDigest)
}

// multiTickLogger fans one tick entry out to the JSONL log and the index.
type multiTickLogger struct {
	log   world.TickLogger
	index world.TickLogger
}

func (m multiTickLogger) WriteTick(entry world.TickLogEntry) error {
	if err := m.log.WriteTick(entry); err != nil {
		return err
	}
	return m.index.WriteTick(entry)
}
