package fasta

import "fmt"

// Rename returns renamed copies of records with assembler-tagged
// identifiers of the form MetaNextViro_{software}_contigs_{n}_{length},
// numbered from 1 in input order. Descriptions are cleared so downstream
// tools see one consistent naming scheme.
func Rename(records []Record, software string) []Record {
	renamed := make([]Record, 0, len(records))
	for i, rec := range records {
		renamed = append(renamed, Record{
			ID: fmt.Sprintf("MetaNextViro_%s_contigs_%d_%d",
				software, i+1, len(rec.Seq)),
			Seq: rec.Seq,
		})
	}
	return renamed
}
