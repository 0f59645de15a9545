package organize

import (
	"fmt"
	"strings"

	"github.com/metanextviro/contigtax/pkg/taxonomy"
)

// NoHitsMessage is emitted when every alignment-result source was missing
// or empty and no contig could be classified.
const NoHitsMessage = "No BLAST hits found. All contigs are unclassified."

// RenderSummary produces the deterministic classification summary text:
// viral families in ascending order, then bacterial, then the unclassified
// count and the header-format legend.
func RenderSummary(state *State, sampleID string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Classification Summary for %s\n", sampleID)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	if state.noHits {
		b.WriteString(NoHitsMessage + "\n\n")
	}

	b.WriteString("VIRAL CONTIGS:\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	writeFamilySection(&b, state, taxonomy.OrganismViruses, "No viral contigs found.\n")

	b.WriteString("\n\nBACTERIAL CONTIGS:\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	writeFamilySection(&b, state, taxonomy.OrganismBacteria, "No bacterial contigs found.\n")

	fmt.Fprintf(&b, "\n\nUnclassified Contigs: %d\n", state.UnclassifiedCount())

	b.WriteString("\n\nFASTA HEADER FORMAT:\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	b.WriteString(">contig_id|sample=sample_id|superkingdom=...|phylum=...|class=...|order=...|family=...|genus=...|species=...|subject=subject_title\n")

	return b.String()
}

func writeFamilySection(b *strings.Builder, state *State, otype taxonomy.OrganismType, emptyMsg string) {
	families := state.FamilyNames(otype)
	if len(families) == 0 {
		b.WriteString(emptyMsg)
		return
	}
	for _, family := range families {
		count, genera, species := state.FamilySummary(otype, family)
		fmt.Fprintf(b, "\nFamily: %s\n", family)
		fmt.Fprintf(b, "  Contig Count: %d\n", count)
		fmt.Fprintf(b, "  Genera: %s\n", strings.Join(genera, ", "))
		fmt.Fprintf(b, "  Species: %s\n", strings.Join(species, ", "))
	}
}
