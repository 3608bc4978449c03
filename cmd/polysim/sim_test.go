package main

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/polybody/physics"
	"github.com/milk9111/polybody/prefabs"
	"github.com/milk9111/polybody/shape"
)

func TestSimulateEmbeddedPrefab(t *testing.T) {
	var buf bytes.Buffer
	cfg := simConfig{
		prefab: prefabs.DefaultPolygonsFile,
		frames: 60,
		dt:     1.0 / 60.0,
		every:  30,
		logger: log.New(&buf, "", 0),
	}
	res, err := simulate(cfg)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.frames != 60 {
		t.Fatalf("expected 60 frames, got %d", res.frames)
	}
	if res.space.BodyCount() != len(res.polys) {
		t.Fatalf("expected %d bodies, got %d", len(res.polys), res.space.BodyCount())
	}

	var crate *shape.Polygon
	for i, name := range res.names {
		if name == "crate" {
			crate = res.polys[i]
		}
	}
	if crate == nil {
		t.Fatalf("expected a crate polygon")
	}
	if start := 100.0 / 30.0; crate.Position().Y <= start {
		t.Fatalf("expected the crate to fall below %v, got %v", start, crate.Position())
	}
	if crate.BodyState().Type != physics.DynamicBody {
		t.Fatalf("expected dynamic crate")
	}

	if n := strings.Count(buf.String(), "frame 30 "); n != len(res.polys) {
		t.Fatalf("expected one frame 30 line per body, got %d", n)
	}
	if !strings.Contains(buf.String(), "crate pos=(300.0, ") {
		t.Fatalf("expected the crate reported in design units at x=300, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "default is used") {
		t.Fatalf("expected the default box diagnostic for the crate")
	}

	if err := res.destroy(); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if res.space.BodyCount() != 0 {
		t.Fatalf("expected empty space after destroy")
	}
}

func TestRunOnceMissingPrefab(t *testing.T) {
	cfg := simConfig{prefab: "nope.yaml", frames: 1, dt: 1, logger: log.New(&bytes.Buffer{}, "", 0)}
	if err := runOnce(cfg); err == nil {
		t.Fatalf("expected error for missing prefab")
	}
}

func TestWatchLoopWithoutDiskCopy(t *testing.T) {
	old := prefabs.Dir
	prefabs.Dir = filepath.Join(t.TempDir(), "missing")
	defer func() { prefabs.Dir = old }()

	var buf bytes.Buffer
	cfg := simConfig{prefab: prefabs.DefaultPolygonsFile, logger: log.New(&buf, "", 0)}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := watchLoop(ctx, cfg); err != nil {
		t.Fatalf("watchLoop: %v", err)
	}
	if !strings.Contains(buf.String(), "not watching") {
		t.Fatalf("expected a skip message, got %q", buf.String())
	}
}

func TestReloadGate(t *testing.T) {
	old := prefabs.Dir
	prefabs.Dir = t.TempDir()
	defer func() { prefabs.Dir = old }()

	path := filepath.Join(prefabs.Dir, "polygons.yaml")
	if err := os.WriteFile(path, []byte("polygons: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	gate := newReloadGate("polygons.yaml")
	if gate.changed() {
		t.Fatalf("expected no change before the file is touched")
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if !gate.changed() {
		t.Fatalf("expected a change after the mod time moved")
	}
	if gate.changed() {
		t.Fatalf("expected the same mod time to be reported once")
	}

	missing := newReloadGate("missing.yaml")
	if missing.changed() {
		t.Fatalf("expected no change for a prefab without a disk copy")
	}
}
