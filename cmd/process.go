package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/metanextviro/contigtax/logger"
	"github.com/metanextviro/contigtax/pkg/blast"
	"github.com/metanextviro/contigtax/pkg/fasta"
	"github.com/metanextviro/contigtax/pkg/taxdb"
	"github.com/metanextviro/contigtax/pkg/taxonomy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Sequences above this length are replaced with a placeholder message in
// the best-hits table so spreadsheet viewers stay usable.
const maxSequenceLength = 30000

const longSequenceMessage = "Sequence length > 30000 bp. Please check contig file."

var (
	processBlastFiles []string
	processFastaFile  string
	processPrefix     string
	processSuffix     string
	processTaxDB      string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Merge BLAST result tables and resolve best-hit lineages",
	Long: `Merge one or more tabular BLAST result files, select the single best
hit per query (longest alignment, then highest bit score), resolve each
best hit's taxonomic lineage, and write the processed best-hits table.

Missing or empty result files are skipped with a warning; when every
source is skipped an empty output file is still written so downstream
steps have a stable artifact to depend on.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringArrayVarP(&processBlastFiles, "blast", "b", nil, "BLAST result file (repeatable)")
	processCmd.Flags().StringVarP(&processFastaFile, "fasta", "f", "", "Contig FASTA file")
	processCmd.Flags().StringVarP(&processPrefix, "prefix", "p", "", "Prefix for the output file name")
	processCmd.Flags().StringVarP(&processSuffix, "suffix", "s", "", "Suffix for the output file name")
	processCmd.Flags().StringVar(&processTaxDB, "taxdb", os.Getenv("CONTIGTAX_TAXDB"), "Path to the sqlite taxonomy database")
	_ = processCmd.MarkFlagRequired("blast")
	_ = processCmd.MarkFlagRequired("fasta")
	_ = processCmd.MarkFlagRequired("prefix")
	_ = processCmd.MarkFlagRequired("suffix")
}

func runProcess(cmd *cobra.Command, args []string) error {

	seqs, err := fasta.ReadFile(processFastaFile)
	if err != nil {
		return fmt.Errorf("contig file is required: %w", err)
	}

	sequences := make(map[string]string, len(seqs))
	for _, rec := range seqs {
		if len(rec.Seq) > maxSequenceLength {
			logger.Warn("Sequence longer than 30000 bp, replacing with a message",
				zap.String("query_id", rec.ID), zap.Int("length", len(rec.Seq)))
			sequences[rec.ID] = longSequenceMessage
			continue
		}
		sequences[rec.ID] = rec.Seq
	}

	outPath := fmt.Sprintf("%s_best_hits_%s.xls", processPrefix, processSuffix)

	best := blast.Aggregate(processBlastFiles)
	if len(best) == 0 {
		logger.Warn("BLAST results are empty, writing empty best-hits file",
			zap.String("path", outPath))
		return os.WriteFile(outPath, nil, 0o644)
	}

	hits := blast.SortForOutput(best)
	if err := resolveLineages(cmd.Context(), hits); err != nil {
		return err
	}

	for i := range hits {
		seq, ok := sequences[hits[i].QueryID]
		if !ok {
			continue
		}
		hits[i].Sequence = seq
		if seq != longSequenceMessage {
			hits[i].SequenceLength = len(seq)
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create best-hits file: %w", err)
	}
	defer out.Close()

	if err := blast.WriteBestHits(out, hits); err != nil {
		return err
	}

	logger.Info("Saved best hits", zap.String("path", outPath), zap.Int("rows", len(hits)))
	return nil
}

// resolveLineages fills missing lineages from the taxonomy database. Hits
// whose source table already carried lineage columns are left untouched.
func resolveLineages(ctx context.Context, hits []blast.Hit) error {
	if ctx == nil {
		ctx = context.Background()
	}

	needed := false
	for i := range hits {
		if hits[i].Lineage == nil {
			needed = true
			break
		}
	}
	if !needed {
		return nil
	}

	db, err := taxdb.Open(processTaxDB)
	if err != nil {
		return fmt.Errorf("lineage resolution requires a taxonomy database: %w", err)
	}
	defer db.Close()

	resolver := taxonomy.NewResolver(db)
	for i := range hits {
		if hits[i].Lineage != nil {
			continue
		}
		ids := taxonomy.SplitTaxIDs(hits[i].TaxID)
		hits[i].Lineage = resolver.Resolve(ctx, ids)
	}
	return nil
}
