package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/sdejongh/photopuller/pkg/models"
)

// maxListedErrors bounds the error list printed under the summary
const maxListedErrors = 20

// renderSummary writes the scan table, the copy table when a copy ran, and
// the error list
func renderSummary(w io.Writer, result *Result, colorize bool) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, scanTable(result))

	if len(result.Exclusions) > 0 {
		fmt.Fprintln(w, "Excluded folders:")
		for _, exclusion := range result.Exclusions {
			fmt.Fprintf(w, "  %s\n", exclusion)
		}
	}

	report := result.Copy
	if report == nil {
		return
	}

	fmt.Fprintln(w)
	if report.DryRun {
		fmt.Fprintln(w, "Dry run: nothing was written")
	}
	fmt.Fprintln(w, copyTable(report))
	fmt.Fprintf(w, "Status: %s\n", statusColor(report.Status, colorize).Sprint(report.Status))

	errs := report.Errors()
	if len(errs) == 0 {
		return
	}
	fmt.Fprintln(w, "\nErrors:")
	for i, res := range errs {
		if i == maxListedErrors {
			fmt.Fprintf(w, "  ... and %d more\n", len(errs)-maxListedErrors)
			break
		}
		fmt.Fprintf(w, "  %s: %s\n", res.Source, res.Reason)
	}
}

func scanTable(result *Result) string {
	s := result.Summary
	rows := [][]string{
		{"Files scanned", strconv.Itoa(result.Walk.Scanned)},
		{"Photos", strconv.Itoa(s.Photos)},
		{"Videos", strconv.Itoa(s.Videos)},
		{"PDFs", strconv.Itoa(s.PDFs)},
		{"Selected files", strconv.Itoa(s.TotalFiles)},
		{"Total size", fmt.Sprintf("%s (%.2f GB)", humanize.IBytes(uint64(s.TotalSizeBytes)), s.TotalSizeGB)},
		{"Hidden by exclusions", strconv.Itoa(s.ExcludedCount)},
		{"Skipped by filters", strconv.Itoa(result.Walk.Excluded)},
	}
	return renderTable("Scan", rows)
}

func copyTable(report *models.CopyReport) string {
	st := report.Stats
	var rows [][]string
	if report.DryRun {
		rows = append(rows, []string{"Would copy", strconv.Itoa(st.WouldCopy)})
	} else {
		rows = append(rows,
			[]string{"Copied", strconv.Itoa(st.Copied)},
			[]string{"Skipped", strconv.Itoa(st.Skipped)},
			[]string{"Duplicates", strconv.Itoa(st.Duplicates)},
			[]string{"Errors", strconv.Itoa(st.Errors)},
			[]string{"Data", humanize.IBytes(uint64(st.BytesCopied))},
		)
		if secs := report.Duration.Seconds(); secs > 0 && st.BytesCopied > 0 {
			rows = append(rows, []string{"Average speed", humanize.IBytes(uint64(float64(st.BytesCopied)/secs)) + "/s"})
		}
	}
	rows = append(rows,
		[]string{"Destination", report.Destination},
		[]string{"Organized by", string(report.Mode)},
		[]string{"Duration", report.Duration.Round(time.Millisecond).String()},
	)
	return renderTable("Copy", rows)
}

func renderTable(title string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(title)

	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
	})

	return tw.Render()
}

// statusColor picks the color for a copy status or a per-file result
func statusColor(status interface{}, colorize bool) *color.Color {
	c := color.New(color.Reset)
	switch status {
	case models.StatusSuccess, models.StatusCopied:
		c = color.New(color.FgGreen)
	case models.StatusPartial, models.StatusSkipped, models.StatusDuplicate, models.StatusWouldCopy:
		c = color.New(color.FgYellow)
	case models.StatusFailed, models.StatusError:
		c = color.New(color.FgRed)
	case models.StatusCancelled:
		c = color.New(color.FgCyan)
	}
	if colorize {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
