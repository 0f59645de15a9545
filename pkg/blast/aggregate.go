package blast

import (
	"sort"

	"github.com/metanextviro/contigtax/internal/util"
	"github.com/metanextviro/contigtax/logger"
	"go.uber.org/zap"
)

// Aggregate merges every readable result table into one candidate set and
// keeps the single best hit per query. Sources that are missing or empty
// are skipped with a warning; when everything is skipped the mapping is
// empty and every contig downstream counts as unclassified.
func Aggregate(paths []string) map[string]Hit {
	var rows []Hit

	for _, path := range paths {
		if !util.FileExistsNonEmpty(path) {
			logger.Warn("Skipping missing or empty result table",
				zap.String("path", path))
			continue
		}
		hits, err := ReadTable(path)
		if err != nil {
			logger.Warn("Skipping unreadable result table",
				zap.String("path", path), zap.Error(err))
			continue
		}
		if len(hits) == 0 {
			logger.Warn("Result table has no rows", zap.String("path", path))
			continue
		}
		rows = append(rows, hits...)
	}

	return SelectBest(rows)
}

// SelectBest picks one hit per query id. Tie-break order: longer alignment
// wins; among equal lengths the higher bit score wins; remaining ties keep
// whichever row came first in concatenation order (the sort is stable), so
// selection is deterministic for a given input row order.
func SelectBest(rows []Hit) map[string]Hit {
	sorted := make([]Hit, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.QueryID != b.QueryID {
			return a.QueryID < b.QueryID
		}
		if a.AlignmentLength != b.AlignmentLength {
			return a.AlignmentLength > b.AlignmentLength
		}
		return a.BitScore > b.BitScore
	})

	best := make(map[string]Hit)
	for _, h := range sorted {
		if _, ok := best[h.QueryID]; !ok {
			best[h.QueryID] = h
		}
	}
	return best
}

// SortForOutput orders best hits for the processed table: alignment length
// descending, query id ascending as the final deterministic key.
func SortForOutput(best map[string]Hit) []Hit {
	hits := make([]Hit, 0, len(best))
	for _, h := range best {
		hits = append(hits, h)
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].AlignmentLength != hits[j].AlignmentLength {
			return hits[i].AlignmentLength > hits[j].AlignmentLength
		}
		return hits[i].QueryID < hits[j].QueryID
	})
	return hits
}
