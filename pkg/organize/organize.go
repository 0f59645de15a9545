// Taxonomy-keyed placement of contig sequences on the filesystem.

package organize

import (
	"fmt"
	"path/filepath"

	"github.com/metanextviro/contigtax/internal/util"
	"github.com/metanextviro/contigtax/logger"
	"github.com/metanextviro/contigtax/pkg/fasta"
	"github.com/metanextviro/contigtax/pkg/taxonomy"
	"go.uber.org/zap"
)

// Organize files every sequence under {outputRoot}/{sampleID}/ according
// to its classification record:
//
//   - classified with a real family: {type}/{family}/ with an enriched
//     header, counted into the family statistics
//   - classified but family unresolved: {type}/unclassified/ with an
//     enriched header, no family statistics
//   - no record at all: top-level unclassified/, original header kept
//
// Directory creation is idempotent and files are named by sequence id, so
// rerunning with identical inputs reproduces an identical tree.
func Organize(seqs []fasta.Record, records map[string]taxonomy.Record, outputRoot, sampleID string) (*State, error) {

	baseDir := filepath.Join(outputRoot, sampleID)
	for _, otype := range []taxonomy.OrganismType{taxonomy.OrganismViruses, taxonomy.OrganismBacteria} {
		dir := filepath.Join(baseDir, string(otype), taxonomy.UnclassifiedFamily)
		if err := util.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("create output tree: %w", err)
		}
	}

	state := NewState()
	if len(records) == 0 {
		state.MarkNoHits()
	}

	var unmatched []fasta.Record

	for _, seq := range seqs {
		rec, ok := records[seq.ID]
		if !ok {
			unmatched = append(unmatched, seq)
			continue
		}

		dir := filepath.Join(baseDir, string(rec.Type), rec.FamilyKey)
		if rec.FamilyKey != taxonomy.UnclassifiedFamily {
			if err := util.EnsureDir(dir); err != nil {
				return nil, fmt.Errorf("create family directory: %w", err)
			}
			state.AddContig(rec.Type, rec.FamilyKey,
				rec.Lineage[taxonomy.RankGenus], rec.Lineage[taxonomy.RankSpecies])
		}

		enriched := fasta.Record{
			ID:          enrichedID(seq.ID, sampleID, rec),
			Description: seq.Description,
			Seq:         seq.Seq,
		}
		path := filepath.Join(dir, seq.ID+".fasta")
		if err := fasta.WriteFile(path, enriched); err != nil {
			return nil, fmt.Errorf("write classified contig %s: %w", seq.ID, err)
		}
	}

	if len(unmatched) > 0 {
		dir := filepath.Join(baseDir, taxonomy.UnclassifiedFamily)
		if err := util.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("create unclassified directory: %w", err)
		}
		for _, seq := range unmatched {
			path := filepath.Join(dir, seq.ID+".fasta")
			if err := fasta.WriteFile(path, seq); err != nil {
				return nil, fmt.Errorf("write unclassified contig %s: %w", seq.ID, err)
			}
			state.AddUnclassified()
		}
	}

	logger.Info("Organized contigs",
		zap.String("sample_id", sampleID),
		zap.Int("total", len(seqs)),
		zap.Int("unclassified", len(unmatched)))

	return state, nil
}

// enrichedID builds the pipe-delimited header identifier that encodes the
// sample and the full lineage. Rank values keep their original annotation
// casing; only the directory key is normalized.
func enrichedID(seqID, sampleID string, rec taxonomy.Record) string {
	l := rec.Lineage
	return fmt.Sprintf("%s|sample=%s|superkingdom=%s|phylum=%s|class=%s|order=%s|family=%s|genus=%s|species=%s|subject=%s",
		seqID, sampleID,
		l[taxonomy.RankSuperkingdom],
		l[taxonomy.RankPhylum],
		l[taxonomy.RankClass],
		l[taxonomy.RankOrder],
		l[taxonomy.RankFamily],
		l[taxonomy.RankGenus],
		l[taxonomy.RankSpecies],
		rec.SubjectTitle)
}
