package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/metanextviro/contigtax/logger"
	"github.com/metanextviro/contigtax/pkg/fasta"
	"github.com/metanextviro/contigtax/pkg/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportSampleID   string
	reportFastaFile  string
	reportOutput     string
	reportKraken2    []string
	reportFastQC     []string
	reportCoverage   []string
	reportCheckV     []string
	reportVirFull    []string
	reportVirFilter  []string
	reportBlast      []string
	reportAssemblies []string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the final HTML pipeline report",
	Long: `Collect the artifact files produced by the pipeline steps and render
them into a single HTML report, with contig length statistics when the
assembly FASTA is given.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportSampleID, "sample", "s", "", "Sample identifier")
	reportCmd.Flags().StringVarP(&reportFastaFile, "fasta", "f", "", "Assembly FASTA for length statistics")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "final_report.html", "Output HTML file")
	reportCmd.Flags().StringSliceVar(&reportKraken2, "kraken2-reports", nil, "Kraken2 report files or directories")
	reportCmd.Flags().StringSliceVar(&reportFastQC, "fastqc-reports", nil, "FastQC report files or directories")
	reportCmd.Flags().StringSliceVar(&reportCoverage, "coverage-stats", nil, "Coverage statistics files or directories")
	reportCmd.Flags().StringSliceVar(&reportCheckV, "checkv-results", nil, "CheckV result files or directories")
	reportCmd.Flags().StringSliceVar(&reportVirFull, "virfinder-full", nil, "VirFinder full result files or directories")
	reportCmd.Flags().StringSliceVar(&reportVirFilter, "virfinder-filtered", nil, "VirFinder filtered result files or directories")
	reportCmd.Flags().StringSliceVar(&reportBlast, "blast-results", nil, "BLAST result files or directories")
	reportCmd.Flags().StringSliceVar(&reportAssemblies, "assembly-results", nil, "Assembly result files or directories")
}

func runReport(cmd *cobra.Command, args []string) error {

	data := render.ReportData{
		SampleID:  reportSampleID,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		Sections: []render.Section{
			{Title: "Quality Control (FastQC)", Files: collectFiles(reportFastQC)},
			{Title: "Taxonomic Classification (Kraken2)", Files: collectFiles(reportKraken2)},
			{Title: "BLAST Annotation", Files: collectFiles(reportBlast)},
			{Title: "Assembly Results", Files: collectFiles(reportAssemblies)},
			{Title: "Viral Analysis - CheckV", Files: collectFiles(reportCheckV)},
			{Title: "Viral Analysis - VirFinder (Full)", Files: collectFiles(reportVirFull)},
			{Title: "Viral Analysis - VirFinder (Filtered)", Files: collectFiles(reportVirFilter)},
			{Title: "Coverage Analysis", Files: collectFiles(reportCoverage)},
		},
	}

	if reportFastaFile != "" {
		records, err := fasta.ReadFile(reportFastaFile)
		if err != nil {
			return fmt.Errorf("assembly file: %w", err)
		}
		lengths := make([]int, 0, len(records))
		for _, rec := range records {
			lengths = append(lengths, len(rec.Seq))
		}
		stats := render.ComputeLengthStats(lengths)
		data.Lengths = &stats
	}

	out, err := os.Create(reportOutput)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer out.Close()

	if err := render.RenderReport(out, data); err != nil {
		return err
	}

	logger.Info("Report generated", zap.String("path", reportOutput))
	return nil
}

// collectFiles expands files and directories into a sorted, deduplicated
// list of file base names. Unreadable paths are skipped with a warning.
func collectFiles(paths []string) []string {
	seen := map[string]struct{}{}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("Skipping unreadable report input", zap.String("path", path))
			continue
		}
		if !info.IsDir() {
			seen[filepath.Base(path)] = struct{}{}
			continue
		}
		_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			seen[d.Name()] = struct{}{}
			return nil
		})
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
