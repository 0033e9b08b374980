package catalog_test

import (
	"context"
	"errors"
	"testing"

	"scenedup/internal/catalog"
	"scenedup/internal/scene"
	"scenedup/internal/testsupport"
)

func TestRegisterAndFetchFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	entry, err := store.RegisterFile(ctx, "clip-a")
	if err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("expected file id to be assigned")
	}
	if entry.Status != catalog.StatusNotAnalyzed {
		t.Fatalf("status = %s, want %s", entry.Status, catalog.StatusNotAnalyzed)
	}

	fetched, err := store.FileByName(ctx, "clip-a")
	if err != nil {
		t.Fatalf("FileByName: %v", err)
	}
	if fetched.ID != entry.ID || fetched.Name != "clip-a" {
		t.Fatalf("unexpected entry: %+v", fetched)
	}

	name, err := store.FileName(ctx, entry.ID)
	if err != nil {
		t.Fatalf("FileName: %v", err)
	}
	if name != "clip-a" {
		t.Fatalf("name = %q, want clip-a", name)
	}
}

func TestFileByNameNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.FileByName(context.Background(), "missing")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegisterFileRejectsDuplicateName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := store.RegisterFile(ctx, "clip-a"); err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	if _, err := store.RegisterFile(ctx, "clip-a"); err == nil {
		t.Fatal("expected unique constraint error")
	}
}

func TestMarkAnalyzed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	entry, err := store.RegisterFile(ctx, "clip-a")
	if err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	if err := store.MarkAnalyzed(ctx, entry.ID); err != nil {
		t.Fatalf("MarkAnalyzed: %v", err)
	}

	fetched, err := store.FileByName(ctx, "clip-a")
	if err != nil {
		t.Fatalf("FileByName: %v", err)
	}
	if fetched.Status != catalog.StatusAnalyzed {
		t.Fatalf("status = %s, want %s", fetched.Status, catalog.StatusAnalyzed)
	}

	if err := store.MarkAnalyzed(ctx, entry.ID+999); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestScenesByFilePreservesInsertionOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	entry, err := store.RegisterFile(ctx, "clip-a")
	if err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}

	ids := []scene.ID{
		{Hash: 0xC0FFEE, DurationMs: 400},
		{Hash: 0x000001, DurationMs: 100},
		{Hash: 0xB0BACA, DurationMs: 900},
	}
	for _, id := range ids {
		if err := store.AppendScene(ctx, scene.Scene{ID: id, FileID: entry.ID}); err != nil {
			t.Fatalf("AppendScene: %v", err)
		}
	}

	scenes, err := store.ScenesByFile(ctx, entry.ID)
	if err != nil {
		t.Fatalf("ScenesByFile: %v", err)
	}
	if len(scenes) != len(ids) {
		t.Fatalf("got %d scenes, want %d", len(scenes), len(ids))
	}
	for i, sc := range scenes {
		if sc.ID != ids[i] {
			t.Fatalf("scene %d = %+v, want %+v", i, sc.ID, ids[i])
		}
	}
}

func TestDeleteFileCascadesScenes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	entry, err := store.RegisterFile(ctx, "clip-a")
	if err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	if err := store.AppendScene(ctx, scene.Scene{ID: scene.ID{Hash: 1, DurationMs: 100}, FileID: entry.ID}); err != nil {
		t.Fatalf("AppendScene: %v", err)
	}

	if err := store.DeleteFile(ctx, entry.ID); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}

	scenes, err := store.ScenesByFile(ctx, entry.ID)
	if err != nil {
		t.Fatalf("ScenesByFile: %v", err)
	}
	if len(scenes) != 0 {
		t.Fatalf("expected cascade to remove scenes, got %d", len(scenes))
	}

	if _, err := store.FileByName(ctx, "clip-a"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFilesSharingSceneDeduplicates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	a, err := store.RegisterFile(ctx, "clip-a")
	if err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	b, err := store.RegisterFile(ctx, "clip-b")
	if err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}

	shared := scene.ID{Hash: 0xAB, DurationMs: 700}
	for i := 0; i < 2; i++ {
		if err := store.AppendScene(ctx, scene.Scene{ID: shared, FileID: a.ID}); err != nil {
			t.Fatalf("AppendScene: %v", err)
		}
	}
	if err := store.AppendScene(ctx, scene.Scene{ID: shared, FileID: b.ID}); err != nil {
		t.Fatalf("AppendScene: %v", err)
	}
	// Same hash with a different duration is a different identity.
	if err := store.AppendScene(ctx, scene.Scene{ID: scene.ID{Hash: 0xAB, DurationMs: 50}, FileID: b.ID}); err != nil {
		t.Fatalf("AppendScene: %v", err)
	}

	fileIDs, err := store.FilesSharingScene(ctx, shared)
	if err != nil {
		t.Fatalf("FilesSharingScene: %v", err)
	}
	if len(fileIDs) != 2 {
		t.Fatalf("got %d file ids, want 2 (distinct)", len(fileIDs))
	}
	if fileIDs[0] != a.ID || fileIDs[1] != b.ID {
		t.Fatalf("unexpected file ids: %v", fileIDs)
	}
}

func TestTopRepeatedScenesOrdersByDuration(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	a, err := store.RegisterFile(ctx, "clip-a")
	if err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	b, err := store.RegisterFile(ctx, "clip-b")
	if err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}

	short := scene.ID{Hash: 0x1, DurationMs: 500}
	long := scene.ID{Hash: 0x2, DurationMs: 4000}
	lonely := scene.ID{Hash: 0x3, DurationMs: 9000}
	for _, sc := range []scene.Scene{
		{ID: short, FileID: a.ID},
		{ID: short, FileID: b.ID},
		{ID: long, FileID: a.ID},
		{ID: long, FileID: b.ID},
		{ID: lonely, FileID: a.ID},
	} {
		if err := store.AppendScene(ctx, sc); err != nil {
			t.Fatalf("AppendScene: %v", err)
		}
	}

	counts, err := store.TopRepeatedScenes(ctx, 10)
	if err != nil {
		t.Fatalf("TopRepeatedScenes: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("got %d entries, want 2 (singleton excluded)", len(counts))
	}
	if counts[0].ID != long || counts[0].Count != 2 {
		t.Fatalf("first entry = %+v, want long scene with count 2", counts[0])
	}
	if counts[1].ID != short {
		t.Fatalf("second entry = %+v, want short scene", counts[1])
	}

	limited, err := store.TopRepeatedScenes(ctx, 1)
	if err != nil {
		t.Fatalf("TopRepeatedScenes: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != long {
		t.Fatalf("limited = %+v, want only the long scene", limited)
	}
}
