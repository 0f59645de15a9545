// Lineage model and the resolver that merges lineages from one or more
// taxonomic identifiers.

package taxonomy

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/metanextviro/contigtax/logger"
	"go.uber.org/zap"
)

// Rank is one level of the fixed taxonomic hierarchy used throughout.
type Rank string

const (
	RankSuperkingdom Rank = "superkingdom"
	RankKingdom      Rank = "kingdom"
	RankPhylum       Rank = "phylum"
	RankClass        Rank = "class"
	RankOrder        Rank = "order"
	RankFamily       Rank = "family"
	RankGenus        Rank = "genus"
	RankSpecies      Rank = "species"
)

// Ranks is the closed rank set, broad to specific.
var Ranks = []Rank{
	RankSuperkingdom,
	RankKingdom,
	RankPhylum,
	RankClass,
	RankOrder,
	RankFamily,
	RankGenus,
	RankSpecies,
}

// Lineage maps ranks to names. A rank that could not be resolved is simply
// absent; callers apply their own fallback literal at the point of use.
type Lineage map[Rank]string

// ValueOr returns the name at rank r, or fallback when unset or missing.
func (l Lineage) ValueOr(r Rank, fallback string) string {
	v, ok := l[r]
	if !ok || IsMissing(v) {
		return fallback
	}
	return v
}

// Complete reports whether every rank of the closed set has a name.
func (l Lineage) Complete() bool {
	for _, r := range Ranks {
		if _, ok := l[r]; !ok {
			return false
		}
	}
	return true
}

// Node is one ancestor in a lineage chain returned by a lookup service.
type Node struct {
	TaxID int
	Rank  string
	Name  string
}

// ErrTaxIDNotFound is returned by a LineageLookup for unknown identifiers.
var ErrTaxIDNotFound = errors.New("tax id not found")

// LineageLookup resolves a single taxonomic identifier to its full ancestor
// chain. Implementations are injected so the resolver stays testable.
type LineageLookup interface {
	Lineage(ctx context.Context, taxID int) ([]Node, error)
}

// Resolver merges lineages from ordered lists of taxonomic identifiers.
type Resolver struct {
	lookup LineageLookup
}

func NewResolver(lookup LineageLookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve looks up every identifier in order and fills each rank from the
// first identifier whose chain names it. A malformed or unknown identifier
// contributes nothing; the call as a whole never fails. Resolution stops
// early once every rank is set.
func (rs *Resolver) Resolve(ctx context.Context, ids []string) Lineage {
	merged := Lineage{}

	for _, raw := range ids {
		taxID, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || taxID <= 0 {
			logger.Warn("Invalid tax ID", zap.String("tax_id", raw))
			continue
		}

		chain, err := rs.lookup.Lineage(ctx, taxID)
		if err != nil {
			if errors.Is(err, ErrTaxIDNotFound) {
				logger.Warn("Taxonomic ID not found", zap.Int("tax_id", taxID))
			} else {
				logger.Warn("Lineage lookup failed",
					zap.Int("tax_id", taxID), zap.Error(err))
			}
			continue
		}

		for _, node := range chain {
			r := Rank(node.Rank)
			if !validRank(r) || node.Name == "" {
				continue
			}
			if _, ok := merged[r]; !ok {
				merged[r] = node.Name
			}
		}

		if merged.Complete() {
			break
		}
	}

	return merged
}

func validRank(r Rank) bool {
	for _, known := range Ranks {
		if r == known {
			return true
		}
	}
	return false
}

// SplitTaxIDs parses the multi-valued tax_id field ("123;456") into an
// ordered identifier list. Splitting happens once, here at the boundary.
func SplitTaxIDs(field string) []string {
	var ids []string
	for _, part := range strings.Split(field, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ids = append(ids, part)
	}
	return ids
}

// IsMissing is the single predicate for "this raw field carries no value".
// It covers the empty string plus the stringified missing-value artifacts
// that upstream tabular tooling produces.
func IsMissing(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "none", "na", "n/a":
		return true
	}
	return false
}
