package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd is the contigtax entrypoint; all work happens in subcommands.
var rootCmd = &cobra.Command{
	Use:   "contigtax",
	Short: "Taxonomic classification and organization of assembled contigs",
	Long: `contigtax resolves a best-supported taxonomic classification for each
assembled contig from BLAST-style result tables, organizes the contig
sequences into a taxonomy-keyed directory tree with enriched headers, and
renders classification summaries.

Available subcommands:
  process  - Merge result tables, pick best hits, resolve lineages
  organize - File contigs into a taxonomy-keyed directory tree
  rename   - Rename contig headers to a consistent scheme
  report   - Render the final HTML pipeline report`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(organizeCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(reportCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
