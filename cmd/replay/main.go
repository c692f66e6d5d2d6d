package main

import (
	"flag"
	"fmt"
	"os"

	persistlog "unlimitedworlds.ai/internal/persistence/log"
	"unlimitedworlds.ai/internal/persistence/snapshot"
	"unlimitedworlds.ai/internal/sim/script"
)

// replay re-runs a scenario and checks every digest recorded in a tick log.
// Uids are allocated process-wide, so the log must come from a process that
// ran this scenario from a fresh start (which is what cmd/sandbox does).
func main() {
	var (
		snapPath     = flag.String("snapshot", "", "path to .snap.zst (summary only)")
		scenarioPath = flag.String("scenario", "", "path to scenario .yaml")
		logPath      = flag.String("log", "", "path to ticks.jsonl.zst")
	)
	flag.Parse()

	if *snapPath != "" {
		snap, err := snapshot.Read(*snapPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read snapshot:", err)
			os.Exit(1)
		}
		fmt.Printf("snapshot v%d run=%s tick=%d seed=%d grid=%dx%d walls=%d agents=%d digest=%s\n",
			snap.Header.Version, snap.Header.Name, snap.Header.Tick, snap.Seed,
			snap.Width, snap.Height, len(snap.Walls), len(snap.Agents), snap.Digest)
	}

	if *scenarioPath == "" || *logPath == "" {
		if *snapPath == "" {
			fmt.Fprintln(os.Stderr, "nothing to do: pass -snapshot and/or -scenario with -log")
			os.Exit(2)
		}
		return
	}

	sc, err := script.Load(*scenarioPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load scenario:", err)
		os.Exit(1)
	}
	entries, err := persistlog.ReadTickLog(*logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read tick log:", err)
		os.Exit(1)
	}

	w, agents, err := sc.NewWorld()
	if err != nil {
		fmt.Fprintln(os.Stderr, "build world:", err)
		os.Exit(1)
	}

	verified := 0
	for _, entry := range entries {
		for w.TickCount() < entry.Tick {
			if err := sc.QueueActs(w.TickCount()+1, agents); err != nil {
				fmt.Fprintln(os.Stderr, "queue actions:", err)
				os.Exit(1)
			}
			w.Tick()
		}
		got := w.StateDigest()
		if got != entry.Digest {
			fmt.Fprintf(os.Stderr, "digest mismatch at tick %d: log=%s replay=%s\n",
				entry.Tick, entry.Digest, got)
			os.Exit(1)
		}
		verified++
	}

	fmt.Printf("verified %d tick digest(s) up to tick %d\n", verified, w.TickCount())
}
