package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/metanextviro/contigtax/internal/util"
	"github.com/metanextviro/contigtax/logger"
	"github.com/metanextviro/contigtax/pkg/blast"
	"github.com/metanextviro/contigtax/pkg/fasta"
	"github.com/metanextviro/contigtax/pkg/organize"
	"github.com/metanextviro/contigtax/pkg/taxonomy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	organizeBlastFile string
	organizeFastaFile string
	organizeOutDir    string
	organizeSampleID  string
)

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "File contigs into a taxonomy-keyed directory tree",
	Long: `Read a processed best-hits table and the contig FASTA file, classify
each contig by its best hit's lineage, and write every sequence into
{outdir}/{sample}/{viruses|bacteria}/{family}/ with an enriched header.
Contigs without a qualifying hit end up under {outdir}/{sample}/unclassified/
with their original headers. A classification_summary.txt is written next
to the tree.`,
	RunE: runOrganize,
}

func init() {
	organizeCmd.Flags().StringVarP(&organizeBlastFile, "blast-results", "b", "", "Processed best-hits table")
	organizeCmd.Flags().StringVarP(&organizeFastaFile, "fasta", "f", "", "Contig FASTA file")
	organizeCmd.Flags().StringVarP(&organizeOutDir, "outdir", "o", os.Getenv("CONTIGTAX_OUTDIR"), "Output directory root")
	organizeCmd.Flags().StringVarP(&organizeSampleID, "sample", "s", "", "Sample identifier")
	_ = organizeCmd.MarkFlagRequired("blast-results")
	_ = organizeCmd.MarkFlagRequired("fasta")
	_ = organizeCmd.MarkFlagRequired("sample")
}

func runOrganize(cmd *cobra.Command, args []string) error {

	if organizeOutDir == "" {
		logger.Warn("No output directory given (CONTIGTAX_OUTDIR unset), using ./organized")
		organizeOutDir = "./organized"
	}

	seqs, err := fasta.ReadFile(organizeFastaFile)
	if err != nil {
		return fmt.Errorf("contig file is required: %w", err)
	}

	var hits []blast.Hit
	if util.FileExistsNonEmpty(organizeBlastFile) {
		hits, err = blast.ReadTable(organizeBlastFile)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("Best-hits table missing or empty, all contigs will be unclassified",
			zap.String("path", organizeBlastFile))
	}

	records := make(map[string]taxonomy.Record, len(hits))
	for _, h := range hits {
		if _, exists := records[h.QueryID]; exists {
			continue
		}
		rec, ok := taxonomy.Classify(h.QueryID, h.Lineage, h.SubjectTitle)
		if ok {
			records[h.QueryID] = rec
		}
	}

	state, err := organize.Organize(seqs, records, organizeOutDir, organizeSampleID)
	if err != nil {
		return err
	}

	summary := organize.RenderSummary(state, organizeSampleID)
	summaryPath := filepath.Join(organizeOutDir, organizeSampleID, "classification_summary.txt")
	if err := os.WriteFile(summaryPath, []byte(summary), 0o644); err != nil {
		return fmt.Errorf("write classification summary: %w", err)
	}

	logger.Info("Wrote classification summary", zap.String("path", summaryPath))
	return nil
}
