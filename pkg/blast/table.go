package blast

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/metanextviro/contigtax/pkg/taxonomy"
)

// normalizeColumn makes column names from different tool invocations
// comparable: case-folded, trimmed, internal whitespace joined with
// underscores.
func normalizeColumn(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, "_")
}

// ReadTable loads one tab-separated result table fully into memory.
// A header row is detected by the presence of a query_id column after
// normalization; headerless tables are read with the canonical column
// order. Rows with an empty query_id are dropped.
func ReadTable(path string) ([]Hit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open result table: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var hits []Hit
	var index map[string]int
	first := true

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")

		if first {
			first = false
			if header := headerIndex(fields); header != nil {
				index = header
				continue
			}
			index = defaultIndex()
		}

		h := parseRow(fields, index)
		if h.QueryID == "" {
			continue
		}
		hits = append(hits, h)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan result table: %w", err)
	}

	return hits, nil
}

// headerIndex returns a column index when the first row looks like a
// header, nil otherwise.
func headerIndex(fields []string) map[string]int {
	index := make(map[string]int, len(fields))
	for i, name := range fields {
		index[normalizeColumn(name)] = i
	}
	if _, ok := index["query_id"]; !ok {
		return nil
	}
	return index
}

func defaultIndex() map[string]int {
	index := make(map[string]int, len(Columns))
	for i, name := range Columns {
		index[name] = i
	}
	return index
}

func parseRow(fields []string, index map[string]int) Hit {
	get := func(column string) string {
		i, ok := index[column]
		if !ok || i >= len(fields) {
			return ""
		}
		return fields[i]
	}

	h := Hit{
		QueryID:         strings.TrimSpace(get("query_id")),
		SubjectID:       strings.TrimSpace(get("subject_id")),
		PercentIdentity: atof(get("percent_identity")),
		AlignmentLength: atoi(get("alignment_length")),
		Mismatches:      atoi(get("mismatches")),
		GapOpens:        atoi(get("gap_opens")),
		QueryStart:      atoi(get("query_start")),
		QueryEnd:        atoi(get("query_end")),
		SubjectStart:    atoi(get("subject_start")),
		SubjectEnd:      atoi(get("subject_end")),
		QueryCoverage:   atof(get("query_coverage")),
		EValue:          atof(get("evalue")),
		BitScore:        atof(get("bit_score")),
		QueryLength:     atoi(get("query_length")),
		SubjectLength:   atoi(get("subject_length")),
		SubjectTitle:    strings.TrimSpace(get("subject_title")),
		TaxID:           strings.TrimSpace(get("tax_id")),
		SubjectStrand:   strings.TrimSpace(get("subject_strand")),
		SequenceLength:  atoi(get("sequence_length")),
	}

	lin := taxonomy.Lineage{}
	for _, r := range taxonomy.Ranks {
		if v := strings.TrimSpace(get(string(r))); !taxonomy.IsMissing(v) {
			lin[r] = v
		}
	}
	if len(lin) > 0 {
		h.Lineage = lin
	}

	return h
}
