package taxonomy

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLookup serves canned lineage chains so the resolver can be tested
// without a taxonomy database.
type stubLookup struct {
	chains map[int][]Node
	calls  []int
}

func (s *stubLookup) Lineage(_ context.Context, taxID int) ([]Node, error) {
	s.calls = append(s.calls, taxID)
	chain, ok := s.chains[taxID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrTaxIDNotFound, taxID)
	}
	return chain, nil
}

func TestResolveSingleID(t *testing.T) {
	lookup := &stubLookup{chains: map[int][]Node{
		10239: {
			{TaxID: 10239, Rank: "superkingdom", Name: "Viruses"},
			{TaxID: 10699, Rank: "family", Name: "Siphoviridae"},
			{TaxID: 186765, Rank: "genus", Name: "Lambdavirus"},
		},
	}}

	lin := NewResolver(lookup).Resolve(context.Background(), []string{"10239"})

	assert.Equal(t, "Viruses", lin[RankSuperkingdom])
	assert.Equal(t, "Siphoviridae", lin[RankFamily])
	assert.Equal(t, "Lambdavirus", lin[RankGenus])
	_, ok := lin[RankSpecies]
	assert.False(t, ok, "species was never provided and must stay unset")
}

func TestResolveFirstIdentifierWinsPerRank(t *testing.T) {
	lookup := &stubLookup{chains: map[int][]Node{
		1: {
			{Rank: "superkingdom", Name: "Bacteria"},
			{Rank: "family", Name: "Enterobacteriaceae"},
		},
		2: {
			{Rank: "superkingdom", Name: "Viruses"}, // must not overwrite
			{Rank: "genus", Name: "Escherichia"},
		},
	}}

	lin := NewResolver(lookup).Resolve(context.Background(), []string{"1", "2"})

	assert.Equal(t, "Bacteria", lin[RankSuperkingdom])
	assert.Equal(t, "Enterobacteriaceae", lin[RankFamily])
	assert.Equal(t, "Escherichia", lin[RankGenus])
}

func TestResolveSkipsMalformedAndUnknownIDs(t *testing.T) {
	lookup := &stubLookup{chains: map[int][]Node{
		562: {
			{Rank: "superkingdom", Name: "Bacteria"},
			{Rank: "species", Name: "Escherichia coli"},
		},
	}}

	// "abc" is not an integer, 999 is unknown; neither may abort the batch.
	lin := NewResolver(lookup).Resolve(context.Background(), []string{"abc", "999", "562"})

	assert.Equal(t, "Bacteria", lin[RankSuperkingdom])
	assert.Equal(t, "Escherichia coli", lin[RankSpecies])
	assert.Equal(t, []int{999, 562}, lookup.calls, "non-integer ids are skipped before lookup")
}

func TestResolveShortCircuitsWhenComplete(t *testing.T) {
	full := make([]Node, 0, len(Ranks))
	for _, r := range Ranks {
		full = append(full, Node{Rank: string(r), Name: "x"})
	}
	lookup := &stubLookup{chains: map[int][]Node{7: full, 8: full}}

	lin := NewResolver(lookup).Resolve(context.Background(), []string{"7", "8"})

	require.True(t, lin.Complete())
	assert.Equal(t, []int{7}, lookup.calls, "no lookup after all ranks are set")
}

func TestResolveAllUnknownYieldsEmptyLineage(t *testing.T) {
	lookup := &stubLookup{chains: map[int][]Node{}}

	lin := NewResolver(lookup).Resolve(context.Background(), []string{"1", "2"})

	assert.Empty(t, lin)
}

func TestSplitTaxIDs(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  []string
	}{
		{"single", "562", []string{"562"}},
		{"multiple", "562;10239", []string{"562", "10239"}},
		{"whitespace", " 562 ; 10239 ", []string{"562", "10239"}},
		{"empty parts dropped", "562;;", []string{"562"}},
		{"empty field", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTaxIDs(tt.field))
		})
	}
}

func TestIsMissing(t *testing.T) {
	for _, v := range []string{"", " ", "nan", "NaN", "None", "NA", "n/a"} {
		assert.True(t, IsMissing(v), "%q should count as missing", v)
	}
	for _, v := range []string{"Siphoviridae", "0", "unknown bacterium"} {
		assert.False(t, IsMissing(v), "%q should not count as missing", v)
	}
}

func TestLineageValueOr(t *testing.T) {
	lin := Lineage{RankFamily: "Siphoviridae", RankGenus: "nan"}

	assert.Equal(t, "Siphoviridae", lin.ValueOr(RankFamily, "Unknown"))
	assert.Equal(t, "Unknown", lin.ValueOr(RankGenus, "Unknown"), "nan is missing")
	assert.Equal(t, "Unknown", lin.ValueOr(RankSpecies, "Unknown"))
}
