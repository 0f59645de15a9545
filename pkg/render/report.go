package render

import (
	"html/template"
	"io"
	"sort"

	"github.com/metanextviro/contigtax/logger"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

var report_template *template.Template

// Section is one artifact group of the pipeline report.
type Section struct {
	Title string
	Files []string
}

// LengthStats summarizes the contig length distribution of a sample.
type LengthStats struct {
	Count int
	Mean  float64
	Min   int
	Max   int
	N50   int
}

// ReportData describes one rendered pipeline report. The timestamp is
// injected by the caller so rendering stays deterministic under test.
type ReportData struct {
	SampleID  string
	Timestamp string
	Sections  []Section
	Lengths   *LengthStats
}

// init initializes the template used for rendering the HTML report.
func init() {
	mainTmpl := `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>MetaNextViro Final Report</title>
	<style>
		body { font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; background-color: #f4f7f9; color: #333; margin: 0; padding: 20px; }
		.container { max-width: 1200px; margin: 0 auto; background: #fff; padding: 30px; border-radius: 8px; }
		h1 { color: #2c3e50; border-bottom: 4px solid #3498db; padding-bottom: 15px; }
		h2 { color: #34495e; border-bottom: 2px solid #ecf0f1; padding-bottom: 10px; }
		.card { background: #f8f9fa; border: 1px solid #e9ecef; border-radius: 5px; padding: 20px; margin-bottom: 20px; }
		.file-list { list-style-type: none; padding: 0; }
		.file-list li { padding: 12px; border-bottom: 1px solid #ecf0f1; }
		.timestamp { text-align: right; color: #7f8c8d; font-style: italic; margin-top: 30px; }
	</style>
</head>
<body>
	<div class="container">
		<h1>MetaNextViro Analysis Report</h1>
		<p><strong>Sample:</strong> {{ .SampleID }}</p>
		<p><strong>Report generated:</strong> {{ .Timestamp }}</p>
		{{ if .Lengths }}
		<div class="card">
			<h2>Contig Length Statistics</h2>
			<p>Contigs: {{ .Lengths.Count }}</p>
			<p>Mean length: {{ printf "%.1f" .Lengths.Mean }} bp</p>
			<p>Min / Max: {{ .Lengths.Min }} / {{ .Lengths.Max }} bp</p>
			<p>N50: {{ .Lengths.N50 }} bp</p>
		</div>
		{{ end }}
		{{ range .Sections }}
		<div class="card">
			<h2>{{ .Title }}</h2>
			{{ if .Files }}
			<ul class="file-list">
				{{ range .Files }}<li>{{ . }}</li>
				{{ end }}
			</ul>
			{{ else }}
			<p>No {{ .Title }} files available.</p>
			{{ end }}
		</div>
		{{ end }}
		<div class="timestamp">Report generated by the MetaNextViro pipeline on {{ .Timestamp }}</div>
	</div>
</body>
</html>
`
	report_template = template.Must(template.New("report_page").Parse(mainTmpl))
}

// RenderReport renders the HTML report for the given data.
func RenderReport(w io.Writer, data ReportData) error {
	logger.Info("Rendering pipeline report", zap.String("sample_id", data.SampleID))
	return report_template.Execute(w, data)
}

// ComputeLengthStats derives the length distribution summary. The N50 is
// the length at which half the total assembly is contained in contigs of
// that length or longer.
func ComputeLengthStats(lengths []int) LengthStats {
	if len(lengths) == 0 {
		return LengthStats{}
	}

	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	asFloat := make([]float64, len(sorted))
	total := 0
	for i, l := range sorted {
		asFloat[i] = float64(l)
		total += l
	}

	n50 := 0
	running := 0
	for _, l := range sorted {
		running += l
		if running*2 >= total {
			n50 = l
			break
		}
	}

	return LengthStats{
		Count: len(sorted),
		Mean:  stat.Mean(asFloat, nil),
		Min:   sorted[len(sorted)-1],
		Max:   sorted[0],
		N50:   n50,
	}
}
