package similarity

import (
	"context"
	"sort"

	"scenedup/internal/scene"
)

// TopRelations builds the relation graph seeded by the limit most
// duration-significant repeated scene identities and reports every file pair
// sharing any of them, ranked by total shared duration descending. Equal
// durations order by ascending file id pair.
func TopRelations(ctx context.Context, src SceneSource, limit int) ([]Relation, error) {
	hashCounts, err := src.TopRepeatedScenes(ctx, limit)
	if err != nil {
		return nil, err
	}

	// Pool every (identity, file) pair touching a seeded identity, indexed
	// both by file and by identity.
	var (
		fileScenes = make(map[int64][]scene.Scene)
		idScenes   = make(map[scene.ID][]scene.Scene)
		remaining  = make(map[int64]struct{})
	)
	for _, hc := range hashCounts {
		sharing, err := src.FilesSharingScene(ctx, hc.ID)
		if err != nil {
			return nil, err
		}
		for _, fileID := range sharing {
			sc := scene.Scene{ID: hc.ID, FileID: fileID}
			fileScenes[fileID] = append(fileScenes[fileID], sc)
			idScenes[hc.ID] = append(idScenes[hc.ID], sc)
			remaining[fileID] = struct{}{}
		}
	}

	order := make([]int64, 0, len(remaining))
	for fileID := range remaining {
		order = append(order, fileID)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	// Extract files one at a time. A pair's total accrues entirely while its
	// lower-ordered member is being processed; once a file leaves the
	// remaining set, later files skip it, so no unordered pair is ever
	// accumulated from both directions.
	var relations []Relation
	for _, fileID := range order {
		delete(remaining, fileID)

		totals := make(map[int64]uint32)
		for _, fs := range fileScenes[fileID] {
			for _, other := range idScenes[fs.ID] {
				if _, ok := remaining[other.FileID]; !ok {
					continue
				}
				totals[other.FileID] += fs.ID.DurationMs
			}
		}

		for otherID, shared := range totals {
			relations = append(relations, Relation{FileA: fileID, FileB: otherID, SharedMs: shared})
		}
	}

	sort.Slice(relations, func(i, j int) bool {
		if relations[i].SharedMs != relations[j].SharedMs {
			return relations[i].SharedMs > relations[j].SharedMs
		}
		if relations[i].FileA != relations[j].FileA {
			return relations[i].FileA < relations[j].FileA
		}
		return relations[i].FileB < relations[j].FileB
	})

	for i := range relations {
		nameA, err := src.FileName(ctx, relations[i].FileA)
		if err != nil {
			return nil, err
		}
		nameB, err := src.FileName(ctx, relations[i].FileB)
		if err != nil {
			return nil, err
		}
		relations[i].NameA = nameA
		relations[i].NameB = nameB
	}
	return relations, nil
}
