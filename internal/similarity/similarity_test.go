package similarity_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"scenedup/internal/scene"
	"scenedup/internal/similarity"
)

// fakeSource serves scene facts from a slice, mirroring the catalog's query
// semantics (distinct sharing files, repeated identities ordered by duration).
type fakeSource struct {
	scenes []scene.Scene
	names  map[int64]string
}

func (f *fakeSource) ScenesByFile(_ context.Context, fileID int64) ([]scene.Scene, error) {
	var out []scene.Scene
	for _, sc := range f.scenes {
		if sc.FileID == fileID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (f *fakeSource) FilesSharingScene(_ context.Context, id scene.ID) ([]int64, error) {
	seen := make(map[int64]struct{})
	var out []int64
	for _, sc := range f.scenes {
		if sc.ID != id {
			continue
		}
		if _, ok := seen[sc.FileID]; ok {
			continue
		}
		seen[sc.FileID] = struct{}{}
		out = append(out, sc.FileID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (f *fakeSource) TopRepeatedScenes(_ context.Context, limit int) ([]scene.HashCount, error) {
	counts := make(map[scene.ID]int)
	for _, sc := range f.scenes {
		counts[sc.ID]++
	}
	var out []scene.HashCount
	for id, count := range counts {
		if count > 1 {
			out = append(out, scene.HashCount{ID: id, Count: count})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.DurationMs > out[j].ID.DurationMs })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSource) FileName(_ context.Context, fileID int64) (string, error) {
	name, ok := f.names[fileID]
	if !ok {
		return "", fmt.Errorf("unknown file id %d", fileID)
	}
	return name, nil
}

func id(hash uint32, durationMs uint32) scene.ID {
	return scene.ID{Hash: hash, DurationMs: durationMs}
}

func TestFindDuplicatesRanksBySharedScenes(t *testing.T) {
	src := &fakeSource{
		names: map[int64]string{1: "target", 2: "twin", 3: "partial"},
		scenes: []scene.Scene{
			{ID: id(0xA, 100), FileID: 1},
			{ID: id(0xB, 200), FileID: 1},
			{ID: id(0xC, 300), FileID: 1},
			{ID: id(0xA, 100), FileID: 2},
			{ID: id(0xB, 200), FileID: 2},
			{ID: id(0xC, 300), FileID: 2},
			{ID: id(0xB, 200), FileID: 3},
		},
	}

	matches, err := similarity.FindDuplicates(context.Background(), src, 1, 10)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Name != "twin" || matches[0].SharedScenes != 3 {
		t.Fatalf("first match = %+v, want twin with 3 shared scenes", matches[0])
	}
	if matches[1].Name != "partial" || matches[1].SharedScenes != 1 {
		t.Fatalf("second match = %+v, want partial with 1 shared scene", matches[1])
	}
}

func TestFindDuplicatesNeverReportsSelf(t *testing.T) {
	src := &fakeSource{
		names: map[int64]string{1: "only"},
		scenes: []scene.Scene{
			{ID: id(0xA, 100), FileID: 1},
			{ID: id(0xA, 100), FileID: 1},
		},
	}

	matches, err := similarity.FindDuplicates(context.Background(), src, 1, 10)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %+v", matches)
	}
}

func TestFindDuplicatesDistinguishesDuration(t *testing.T) {
	// Same hash, different duration: not the same scene identity.
	src := &fakeSource{
		names: map[int64]string{1: "a", 2: "b"},
		scenes: []scene.Scene{
			{ID: id(0xA, 100), FileID: 1},
			{ID: id(0xA, 999), FileID: 2},
		},
	}

	matches, err := similarity.FindDuplicates(context.Background(), src, 1, 10)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %+v", matches)
	}
}

func TestFindDuplicatesHonorsLimitAndTieBreak(t *testing.T) {
	src := &fakeSource{
		names: map[int64]string{1: "target", 2: "b", 3: "c", 4: "d"},
		scenes: []scene.Scene{
			{ID: id(0xA, 100), FileID: 1},
			{ID: id(0xA, 100), FileID: 2},
			{ID: id(0xA, 100), FileID: 3},
			{ID: id(0xA, 100), FileID: 4},
		},
	}

	matches, err := similarity.FindDuplicates(context.Background(), src, 1, 2)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	// Equal counts fall back to ascending file id.
	if matches[0].FileID != 2 || matches[1].FileID != 3 {
		t.Fatalf("tie-break order wrong: %+v", matches)
	}
}

func TestTopRelationsReportsEachPairOnce(t *testing.T) {
	// X and Y share H1 (2000ms); Y and Z share H2 (3000ms); X and Z share
	// nothing.
	src := &fakeSource{
		names: map[int64]string{1: "X", 2: "Y", 3: "Z"},
		scenes: []scene.Scene{
			{ID: id(0x11, 2000), FileID: 1},
			{ID: id(0x11, 2000), FileID: 2},
			{ID: id(0x22, 3000), FileID: 2},
			{ID: id(0x22, 3000), FileID: 3},
		},
	}

	relations, err := similarity.TopRelations(context.Background(), src, 10)
	if err != nil {
		t.Fatalf("TopRelations: %v", err)
	}
	if len(relations) != 2 {
		t.Fatalf("got %d relations, want 2", len(relations))
	}
	if relations[0].NameA != "Y" || relations[0].NameB != "Z" || relations[0].SharedMs != 3000 {
		t.Fatalf("first relation = %+v, want (Y, Z, 3000)", relations[0])
	}
	if relations[1].NameA != "X" || relations[1].NameB != "Y" || relations[1].SharedMs != 2000 {
		t.Fatalf("second relation = %+v, want (X, Y, 2000)", relations[1])
	}
	for _, rel := range relations {
		if rel.FileA == rel.FileB {
			t.Fatalf("self relation reported: %+v", rel)
		}
	}
}

func TestTopRelationsAccumulatesAcrossScenes(t *testing.T) {
	src := &fakeSource{
		names: map[int64]string{1: "a", 2: "b"},
		scenes: []scene.Scene{
			{ID: id(0x11, 1000), FileID: 1},
			{ID: id(0x11, 1000), FileID: 2},
			{ID: id(0x22, 500), FileID: 1},
			{ID: id(0x22, 500), FileID: 2},
		},
	}

	relations, err := similarity.TopRelations(context.Background(), src, 10)
	if err != nil {
		t.Fatalf("TopRelations: %v", err)
	}
	if len(relations) != 1 {
		t.Fatalf("got %d relations, want 1", len(relations))
	}
	if relations[0].SharedMs != 1500 {
		t.Fatalf("shared duration = %d, want 1500", relations[0].SharedMs)
	}
}

func TestTopRelationsEmptyWhenNothingRepeats(t *testing.T) {
	src := &fakeSource{
		names: map[int64]string{1: "a", 2: "b"},
		scenes: []scene.Scene{
			{ID: id(0x11, 1000), FileID: 1},
			{ID: id(0x22, 1000), FileID: 2},
		},
	}

	relations, err := similarity.TopRelations(context.Background(), src, 10)
	if err != nil {
		t.Fatalf("TopRelations: %v", err)
	}
	if len(relations) != 0 {
		t.Fatalf("expected no relations, got %+v", relations)
	}
}
