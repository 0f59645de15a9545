package organize

import (
	"sort"

	"github.com/metanextviro/contigtax/pkg/taxonomy"
)

// familyStats accumulates per-family observations while contigs are filed.
type familyStats struct {
	count   int
	genera  map[string]struct{}
	species map[string]struct{}
}

// State is the run-scoped accumulator for summary statistics. It is owned
// and mutated exclusively by one Organize call and read only at
// summary-rendering time.
type State struct {
	families     map[taxonomy.OrganismType]map[string]*familyStats
	unclassified int
	noHits       bool
}

func NewState() *State {
	return &State{
		families: map[taxonomy.OrganismType]map[string]*familyStats{
			taxonomy.OrganismViruses:  {},
			taxonomy.OrganismBacteria: {},
		},
	}
}

// AddContig records one classified contig under its family.
func (s *State) AddContig(otype taxonomy.OrganismType, family, genus, species string) {
	stats, ok := s.families[otype][family]
	if !ok {
		stats = &familyStats{
			genera:  map[string]struct{}{},
			species: map[string]struct{}{},
		}
		s.families[otype][family] = stats
	}
	stats.count++
	stats.genera[genus] = struct{}{}
	stats.species[species] = struct{}{}
}

// AddUnclassified counts one contig with no classification at all.
func (s *State) AddUnclassified() {
	s.unclassified++
}

func (s *State) UnclassifiedCount() int {
	return s.unclassified
}

// MarkNoHits flags the all-sources-empty path for summary rendering.
func (s *State) MarkNoHits() {
	s.noHits = true
}

// FamilyNames returns the observed families for one organism type in
// ascending lexical order.
func (s *State) FamilyNames(otype taxonomy.OrganismType) []string {
	names := make([]string, 0, len(s.families[otype]))
	for name := range s.families[otype] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FamilySummary returns the contig count and the sorted genus and species
// sets observed for one family.
func (s *State) FamilySummary(otype taxonomy.OrganismType, family string) (count int, genera, species []string) {
	stats, ok := s.families[otype][family]
	if !ok {
		return 0, nil, nil
	}
	genera = sortedKeys(stats.genera)
	species = sortedKeys(stats.species)
	return stats.count, genera, species
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
