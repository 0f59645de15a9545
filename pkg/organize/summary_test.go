package organize

import (
	"strings"
	"testing"

	"github.com/metanextviro/contigtax/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSummaryOrdering(t *testing.T) {
	state := NewState()
	state.AddContig(taxonomy.OrganismViruses, "siphoviridae", "Lambdavirus", "Escherichia virus Lambda")
	state.AddContig(taxonomy.OrganismViruses, "siphoviridae", "Lambdavirus", "Shigella virus Sf6")
	state.AddContig(taxonomy.OrganismViruses, "myoviridae", "Tequatrovirus", "Escherichia virus T4")
	state.AddContig(taxonomy.OrganismBacteria, "enterobacteriaceae", "Escherichia", "Escherichia coli")
	state.AddUnclassified()
	state.AddUnclassified()

	text := RenderSummary(state, "S1")

	assert.True(t, strings.HasPrefix(text, "Classification Summary for S1\n"))

	// Viral families in ascending lexical order.
	myo := strings.Index(text, "Family: myoviridae")
	sipho := strings.Index(text, "Family: siphoviridae")
	bact := strings.Index(text, "Family: enterobacteriaceae")
	require.True(t, myo >= 0 && sipho >= 0 && bact >= 0)
	assert.Less(t, myo, sipho)
	assert.Less(t, sipho, bact, "viral section precedes bacterial section")

	assert.Contains(t, text, "  Contig Count: 2\n")
	assert.Contains(t, text, "  Species: Escherichia virus Lambda, Shigella virus Sf6\n",
		"species sets are sorted and comma-joined")
	assert.Contains(t, text, "Unclassified Contigs: 2\n")
	assert.Contains(t, text, "FASTA HEADER FORMAT:")
	assert.Contains(t, text, ">contig_id|sample=sample_id|superkingdom=")
	assert.NotContains(t, text, NoHitsMessage)
}

func TestRenderSummaryEmptySections(t *testing.T) {
	state := NewState()
	state.AddUnclassified()

	text := RenderSummary(state, "S1")

	assert.Contains(t, text, "No viral contigs found.")
	assert.Contains(t, text, "No bacterial contigs found.")
	assert.Contains(t, text, "Unclassified Contigs: 1\n")
}

func TestRenderSummaryNoHits(t *testing.T) {
	state := NewState()
	state.MarkNoHits()
	state.AddUnclassified()

	text := RenderSummary(state, "S1")

	assert.Contains(t, text, NoHitsMessage)
}

func TestRenderSummaryDeterministic(t *testing.T) {
	build := func() string {
		state := NewState()
		state.AddContig(taxonomy.OrganismViruses, "siphoviridae", "B", "b")
		state.AddContig(taxonomy.OrganismViruses, "siphoviridae", "A", "a")
		return RenderSummary(state, "S1")
	}

	assert.Equal(t, build(), build())
}
