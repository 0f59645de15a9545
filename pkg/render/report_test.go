package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLengthStats(t *testing.T) {
	// Total 1000; N50 is the length where the running sum crosses 500.
	stats := ComputeLengthStats([]int{500, 300, 100, 100})

	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, 250.0, stats.Mean)
	assert.Equal(t, 100, stats.Min)
	assert.Equal(t, 500, stats.Max)
	assert.Equal(t, 500, stats.N50)
}

func TestComputeLengthStatsN50MidAssembly(t *testing.T) {
	stats := ComputeLengthStats([]int{400, 300, 200, 100})

	assert.Equal(t, 300, stats.N50)
}

func TestComputeLengthStatsEmpty(t *testing.T) {
	stats := ComputeLengthStats(nil)

	assert.Equal(t, LengthStats{}, stats)
}

func TestRenderReport(t *testing.T) {
	data := ReportData{
		SampleID:  "S1",
		Timestamp: "2026-01-01 00:00:00",
		Sections: []Section{
			{Title: "BLAST Annotation", Files: []string{"S1_best_hits.xls"}},
			{Title: "Coverage Analysis"},
		},
		Lengths: &LengthStats{Count: 2, Mean: 150.5, Min: 100, Max: 201, N50: 201},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, data))
	html := buf.String()

	assert.Contains(t, html, "<strong>Sample:</strong> S1")
	assert.Contains(t, html, "2026-01-01 00:00:00")
	assert.Contains(t, html, "S1_best_hits.xls")
	assert.Contains(t, html, "No Coverage Analysis files available.")
	assert.Contains(t, html, "N50: 201 bp")
	assert.Contains(t, html, "Mean length: 150.5 bp")
}

func TestRenderReportEscapesContent(t *testing.T) {
	data := ReportData{
		SampleID:  "<script>alert(1)</script>",
		Timestamp: "now",
	}

	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, data))

	assert.False(t, strings.Contains(buf.String(), "<script>alert(1)</script>"))
}
