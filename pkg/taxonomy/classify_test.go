package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyViral(t *testing.T) {
	lin := Lineage{
		RankSuperkingdom: "Viruses",
		RankFamily:       "Siphoviridae",
		RankGenus:        "Lambdavirus",
		RankSpecies:      "Escherichia virus Lambda",
	}

	rec, ok := Classify("Q1", lin, "Enterobacteria phage lambda")

	require.True(t, ok)
	assert.Equal(t, "Q1", rec.QueryID)
	assert.Equal(t, OrganismViruses, rec.Type)
	assert.Equal(t, "siphoviridae", rec.FamilyKey, "directory key is lowercased")
	assert.Equal(t, "Siphoviridae", rec.Lineage[RankFamily], "header keeps raw casing")
	assert.Equal(t, "Unknown", rec.Lineage[RankPhylum])
	assert.Equal(t, "Enterobacteria phage lambda", rec.SubjectTitle)
}

func TestClassifySkipsOtherSuperkingdoms(t *testing.T) {
	for _, super := range []string{"Eukaryota", "Archaea", "", "nan"} {
		_, ok := Classify("Q1", Lineage{RankSuperkingdom: super}, "t")
		assert.False(t, ok, "superkingdom %q must be skipped", super)
	}
}

func TestClassifySuperkingdomCaseInsensitive(t *testing.T) {
	rec, ok := Classify("Q1", Lineage{RankSuperkingdom: "BACTERIA"}, "t")

	require.True(t, ok)
	assert.Equal(t, OrganismBacteria, rec.Type)
	assert.Equal(t, "bacteria", rec.Lineage[RankSuperkingdom])
}

func TestClassifyMissingFamily(t *testing.T) {
	tests := []struct {
		name   string
		family string
	}{
		{"absent", ""},
		{"nan artifact", "nan"},
		{"whitespace", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lin := Lineage{RankSuperkingdom: "Viruses"}
			if tt.family != "" {
				lin[RankFamily] = tt.family
			}

			rec, ok := Classify("Q1", lin, "t")

			require.True(t, ok)
			assert.Equal(t, UnclassifiedFamily, rec.FamilyKey)
			assert.Equal(t, UnclassifiedFamily, rec.Lineage[RankFamily],
				"family fallback is lowercase unclassified, not Unknown")
			assert.Equal(t, "Unknown", rec.Lineage[RankGenus])
		})
	}
}

func TestNormalizeFamily(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Siphoviridae", "siphoviridae"},
		{"  Myoviridae  ", "myoviridae"},
		{"Candidatus Pelagibacteraceae", "candidatus_pelagibacteraceae"},
		{"nan", "unclassified"},
		{"", "unclassified"},
	}

	for _, tt := range tests {
		got := NormalizeFamily(tt.raw)
		assert.Equal(t, tt.want, got)
		assert.NotEqual(t, "nan", got)
		assert.NotEmpty(t, got)
	}
}
