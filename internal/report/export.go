package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"medsimplify/pkg"
)

var csvHeader = []string{"ID", "Timestamp", "Method", "Target Group", "Readability", "Term Density", "Length Ratio"}

// WriteCSV writes one row per entry in the order given.
func WriteCSV(w io.Writer, entries []pkg.HistoryEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.ID.String(),
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.Strategy.Label(),
			e.Audience.Label(),
			fmt.Sprintf("%.1f", e.Metrics.ReadabilityScore),
			fmt.Sprintf("%.1f%%", e.Metrics.TermDensity),
			fmt.Sprintf("%.2f", e.Metrics.LengthRatio),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// WriteSummaryTable renders per-strategy averages.
func WriteSummaryTable(w io.Writer, summaries []pkg.MethodSummary) {
	table := newTable(w, []string{"Method", "Count", "Avg. Readability", "Avg. Term Density", "Avg. Processing Time"})
	for _, s := range summaries {
		table.Append([]string{
			s.Strategy.Label(),
			strconv.Itoa(s.Count),
			fmt.Sprintf("%.2f", s.AvgReadability),
			fmt.Sprintf("%.2f%%", s.AvgTermDensity),
			fmt.Sprintf("%.2fs", s.AvgProcessingTime),
		})
	}
	table.Render()
}

// WriteMetricsTable renders the scores of one outcome next to the original's.
func WriteMetricsTable(w io.Writer, m pkg.Metrics) {
	table := newTable(w, []string{"Metric", "Original", "Simplified", "Change"})
	table.Append([]string{
		"Readability (0-100)",
		fmt.Sprintf("%.1f", m.OriginalReadability),
		fmt.Sprintf("%.1f", m.ReadabilityScore),
		fmt.Sprintf("%+.1f", m.ReadabilityDelta()),
	})
	table.Append([]string{
		"Medical Term Density",
		fmt.Sprintf("%.1f%%", m.OriginalTermDensity),
		fmt.Sprintf("%.1f%%", m.TermDensity),
		fmt.Sprintf("%+.1f%%", -m.TermDensityReduction()),
	})
	table.Append([]string{
		"Words",
		strconv.Itoa(m.OriginalWordCount),
		strconv.Itoa(m.SimplifiedWordCount),
		fmt.Sprintf("ratio %.2f", m.LengthRatio),
	})
	table.Append([]string{"Processing Time", "", fmt.Sprintf("%.2fs", m.ProcessingTime), ""})
	table.Render()
}
