package similarity

import (
	"context"
	"sort"
)

// FindDuplicates ranks other files by how many of fileID's scene identities
// they share, descending, truncated to limit. The queried file never counts
// as a duplicate of itself; each of its scenes contributes one count per
// other file containing the same identity, so a file repeating a shared
// scene is weighted accordingly. Equal counts order by ascending file id.
func FindDuplicates(ctx context.Context, src SceneSource, fileID int64, limit int) ([]Match, error) {
	scenes, err := src.ScenesByFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int)
	for _, sc := range scenes {
		sharing, err := src.FilesSharingScene(ctx, sc.ID)
		if err != nil {
			return nil, err
		}
		for _, other := range sharing {
			if other == fileID {
				continue
			}
			counts[other]++
		}
	}

	matches := make([]Match, 0, len(counts))
	for other, count := range counts {
		matches = append(matches, Match{FileID: other, SharedScenes: count})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].SharedScenes != matches[j].SharedScenes {
			return matches[i].SharedScenes > matches[j].SharedScenes
		}
		return matches[i].FileID < matches[j].FileID
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	for i := range matches {
		name, err := src.FileName(ctx, matches[i].FileID)
		if err != nil {
			return nil, err
		}
		matches[i].Name = name
	}
	return matches, nil
}
