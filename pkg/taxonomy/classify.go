package taxonomy

import "strings"

// OrganismType is the kingdom bucket a classified contig is filed under.
// Anything that is not viral or bacterial stays outside classification.
type OrganismType string

const (
	OrganismViruses  OrganismType = "viruses"
	OrganismBacteria OrganismType = "bacteria"
)

// UnclassifiedFamily is the family sentinel. It is deliberately lowercase
// and filesystem-safe, unlike the "Unknown" used for the other ranks.
const UnclassifiedFamily = "unclassified"

// UnknownRank is the fallback literal for missing non-family rank values.
const UnknownRank = "Unknown"

// Record is the canonical per-contig classification. Built once per
// classified query and never mutated afterwards.
type Record struct {
	QueryID string
	Type    OrganismType

	// FamilyKey is the normalized family used for directory placement:
	// trimmed, spaces replaced with underscores, lowercased, or the
	// literal "unclassified" when the annotation carries no family.
	FamilyKey string

	// Lineage holds the raw annotation values with "Unknown" substituted
	// for missing ranks. Header enrichment reads these, so the original
	// casing survives even though FamilyKey does not keep it.
	Lineage Lineage

	SubjectTitle string
}

// Classify derives a Record from a best hit's lineage annotation. The
// second return is false when the superkingdom is neither viral nor
// bacterial; such queries are skipped entirely and fall through to
// sequence-level unclassified handling.
func Classify(queryID string, lin Lineage, subjectTitle string) (Record, bool) {
	super := strings.ToLower(strings.TrimSpace(lin[RankSuperkingdom]))

	var otype OrganismType
	switch super {
	case string(OrganismViruses):
		otype = OrganismViruses
	case string(OrganismBacteria):
		otype = OrganismBacteria
	default:
		return Record{}, false
	}

	filled := Lineage{}
	for _, r := range Ranks {
		filled[r] = lin.ValueOr(r, UnknownRank)
	}
	filled[RankSuperkingdom] = string(otype)
	// Family's missing-value sentinel differs from the other ranks: it
	// doubles as a directory key, so it stays lowercase and unambiguous.
	filled[RankFamily] = lin.ValueOr(RankFamily, UnclassifiedFamily)

	title := strings.TrimSpace(subjectTitle)
	if IsMissing(title) {
		title = UnknownRank
	}

	return Record{
		QueryID:      queryID,
		Type:         otype,
		FamilyKey:    NormalizeFamily(lin[RankFamily]),
		Lineage:      filled,
		SubjectTitle: title,
	}, true
}

// NormalizeFamily turns a raw family annotation into the directory key:
// trimmed, internal whitespace joined with underscores, lowercased.
// Missing values become the "unclassified" sentinel.
func NormalizeFamily(raw string) string {
	if IsMissing(raw) {
		return UnclassifiedFamily
	}
	fields := strings.Fields(strings.TrimSpace(raw))
	return strings.ToLower(strings.Join(fields, "_"))
}
