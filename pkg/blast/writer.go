package blast

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/metanextviro/contigtax/pkg/taxonomy"
)

// bestHitColumns is the column order of the processed best-hits table that
// downstream steps (contig organization, report rendering) consume.
var bestHitColumns = []string{
	"query_id", "subject_id", "percent_identity", "alignment_length",
	"mismatches", "gap_opens", "query_start", "query_end",
	"subject_start", "subject_end", "query_coverage", "evalue",
	"bit_score", "query_length", "subject_length", "subject_title",
	"tax_id", "subject_strand", "sequence_length",
	"superkingdom", "kingdom", "phylum", "class", "order", "family",
	"genus", "species", "sequence",
}

// WriteBestHits serializes hits as a tab-separated table with a header
// row. Unset lineage ranks are written as empty cells.
func WriteBestHits(w io.Writer, hits []Hit) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(bestHitColumns, "\t") + "\n"); err != nil {
		return fmt.Errorf("write best hits header: %w", err)
	}

	for _, h := range hits {
		row := []string{
			h.QueryID,
			h.SubjectID,
			ftoa(h.PercentIdentity),
			strconv.Itoa(h.AlignmentLength),
			strconv.Itoa(h.Mismatches),
			strconv.Itoa(h.GapOpens),
			strconv.Itoa(h.QueryStart),
			strconv.Itoa(h.QueryEnd),
			strconv.Itoa(h.SubjectStart),
			strconv.Itoa(h.SubjectEnd),
			ftoa(h.QueryCoverage),
			ftoa(h.EValue),
			ftoa(h.BitScore),
			strconv.Itoa(h.QueryLength),
			strconv.Itoa(h.SubjectLength),
			h.SubjectTitle,
			h.TaxID,
			h.SubjectStrand,
			strconv.Itoa(h.SequenceLength),
		}
		for _, r := range taxonomy.Ranks {
			row = append(row, h.Lineage[r])
		}
		row = append(row, h.Sequence)

		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return fmt.Errorf("write best hits row: %w", err)
		}
	}

	return bw.Flush()
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
