package cmd

import (
	"fmt"
	"os"

	"github.com/metanextviro/contigtax/logger"
	"github.com/metanextviro/contigtax/pkg/fasta"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	renameInput    string
	renameOutput   string
	renameSoftware string
)

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename contig headers to a consistent scheme",
	Long: `Rewrite every header of a contig FASTA file to
MetaNextViro_{software}_contigs_{n}_{length} so contigs from different
assemblers share one naming scheme.`,
	RunE: runRename,
}

func init() {
	renameCmd.Flags().StringVarP(&renameInput, "input", "i", "", "Input FASTA file")
	renameCmd.Flags().StringVarP(&renameOutput, "output", "o", "", "Output FASTA file")
	renameCmd.Flags().StringVarP(&renameSoftware, "software", "s", "", "Assembler that produced the contigs")
	_ = renameCmd.MarkFlagRequired("input")
	_ = renameCmd.MarkFlagRequired("output")
	_ = renameCmd.MarkFlagRequired("software")
}

func runRename(cmd *cobra.Command, args []string) error {

	records, err := fasta.ReadFile(renameInput)
	if err != nil {
		return fmt.Errorf("input file is required: %w", err)
	}

	out, err := os.Create(renameOutput)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	if err := fasta.WriteAll(out, fasta.Rename(records, renameSoftware)); err != nil {
		return err
	}

	logger.Info("Renamed headers",
		zap.String("output", renameOutput), zap.Int("records", len(records)))
	return nil
}
