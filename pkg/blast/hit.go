// Container and lenient field parsing for BLAST outfmt-6 style rows.

package blast

import (
	"strconv"
	"strings"

	"github.com/metanextviro/contigtax/logger"
	"github.com/metanextviro/contigtax/pkg/taxonomy"
	"go.uber.org/zap"
)

// Hit is one row of a tabular alignment result.
type Hit struct {
	QueryID         string
	SubjectID       string
	PercentIdentity float64
	AlignmentLength int
	Mismatches      int
	GapOpens        int
	QueryStart      int
	QueryEnd        int
	SubjectStart    int
	SubjectEnd      int
	QueryCoverage   float64
	EValue          float64
	BitScore        float64
	QueryLength     int
	SubjectLength   int
	SubjectTitle    string
	TaxID           string
	SubjectStrand   string

	// Filled in after best-hit selection.
	SequenceLength int
	Sequence       string
	Lineage        taxonomy.Lineage
}

// Columns is the canonical column order of a raw result table without a
// header row.
var Columns = []string{
	"query_id", "subject_id", "percent_identity", "alignment_length",
	"mismatches", "gap_opens", "query_start", "query_end",
	"subject_start", "subject_end", "query_coverage", "evalue",
	"bit_score", "query_length", "subject_length", "subject_title",
	"tax_id", "subject_strand",
}

// atoi parses an integer field leniently: malformed values become 0 with a
// warning instead of failing the run. Float-formatted integers ("100.0",
// a tabular-tooling artifact) are accepted.
func atoi(s string) int {
	s = strings.TrimSpace(s)
	if taxonomy.IsMissing(s) || s == "*" {
		return 0
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	logger.Warn("Malformed integer field, using 0", zap.String("value", s))
	return 0
}

// atof parses a float field leniently, defaulting to 0 on malformation.
func atof(s string) float64 {
	s = strings.TrimSpace(s)
	if taxonomy.IsMissing(s) || s == "*" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		logger.Warn("Malformed float field, using 0", zap.String("value", s))
		return 0
	}
	return f
}
