package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/milk9111/polybody/common"
	"github.com/milk9111/polybody/prefabs"
)

func main() {
	prefab := flag.String("prefab", prefabs.DefaultPolygonsFile, "polygon prefab file name (looked up in -dir, then embedded)")
	dir := flag.String("dir", prefabs.Dir, "directory searched for prefab files before the embedded copies")
	frames := flag.Int("frames", 120, "number of simulation steps per run")
	dt := flag.Float64("dt", 1.0/60.0, "seconds per step")
	every := flag.Int("every", 30, "log body positions every N steps")
	ratio := flag.Float64("ratio", common.DefaultRatio, "design units per physics unit")
	sleep := flag.Float64("sleep", 0, "idle seconds before bodies sleep (0 disables sleeping)")
	watch := flag.Bool("watch", false, "rebuild and rerun when the on-disk prefab under -dir changes")
	flag.Parse()

	common.SetRatio(*ratio)
	prefabs.Dir = *dir

	cfg := simConfig{
		prefab: *prefab,
		frames: *frames,
		dt:     *dt,
		every:  *every,
		sleep:  *sleep,
		logger: log.Default(),
	}

	if err := runOnce(cfg); err != nil {
		log.Printf("polysim: %v", err)
		if !*watch {
			os.Exit(1)
		}
	}
	if !*watch {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := watchLoop(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

// watchLoop reruns the simulation whenever the on-disk prefab is modified.
// Embedded-only prefabs have nothing to watch, so the loop returns at once.
func watchLoop(ctx context.Context, cfg simConfig) error {
	diskDir := filepath.Dir(prefabs.DiskPath(cfg.prefab))
	if _, err := os.Stat(diskDir); err != nil {
		cfg.logger.Printf("polysim: not watching %s: %v", diskDir, err)
		return nil
	}
	w, err := prefabs.NewWatcher([]string{diskDir}, cfg.prefab)
	if err != nil {
		return err
	}
	defer w.Close()

	gate := newReloadGate(cfg.prefab)
	cfg.logger.Printf("polysim: watching %s", prefabs.DiskPath(cfg.prefab))
	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !gate.changed() {
				continue
			}
			cfg.logger.Printf("polysim: %s changed, rebuilding", name)
			if err := runOnce(cfg); err != nil {
				cfg.logger.Printf("polysim: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			cfg.logger.Printf("polysim: watcher: %v", err)
		}
	}
}

// reloadGate skips reruns for events that left the prefab's modification
// time unchanged.
type reloadGate struct {
	name string
	last time.Time
}

func newReloadGate(name string) *reloadGate {
	g := &reloadGate{name: name}
	g.last, _ = prefabs.ModTime(name)
	return g
}

func (g *reloadGate) changed() bool {
	mod, ok := prefabs.ModTime(g.name)
	if !ok || !mod.After(g.last) {
		return false
	}
	g.last = mod
	return true
}
