package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteBreakdown renders the per-signal breakdown table shown on the debug
// stream in verbose runs.
func WriteBreakdown(w io.Writer, r Result) {
	fmt.Fprintf(w, "signal breakdown for %s -> %s\n", r.Report.BaseRef, r.Report.TargetRef)

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)

	table.Header([]string{"Signal", "Value"})

	cli := r.Report.Cli
	files := r.Report.Files
	sec := r.Report.Security
	kw := r.Report.Keywords

	rows := [][]string{
		{"cli_changes", strconv.FormatBool(cli.CliChanges)},
		{"breaking_cli_changes", strconv.FormatBool(cli.BreakingCliChanges)},
		{"api_breaking", strconv.FormatBool(cli.ApiBreaking)},
		{"manual_cli_changes", strconv.FormatBool(cli.ManualCliChanges)},
		{"removed_short_count", strconv.Itoa(cli.RemovedShortCount)},
		{"removed_long_count", strconv.Itoa(cli.RemovedLongCount)},
		{"added_long_count", strconv.Itoa(cli.AddedLongCount)},
		{"manual_added_long_count", strconv.Itoa(cli.ManualAddedLongCount)},
		{"manual_removed_long_count", strconv.Itoa(cli.ManualRemovedLongCount)},
		{"added_files", strconv.Itoa(files.AddedFiles)},
		{"modified_files", strconv.Itoa(files.ModifiedFiles)},
		{"deleted_files", strconv.Itoa(files.DeletedFiles)},
		{"new_source_files", strconv.Itoa(files.NewSourceFiles)},
		{"new_test_files", strconv.Itoa(files.NewTestFiles)},
		{"new_doc_files", strconv.Itoa(files.NewDocFiles)},
		{"line_delta", strconv.Itoa(files.LineDelta())},
		{"security_keywords_commits", strconv.Itoa(sec.SecurityKeywordsCommits)},
		{"security_patterns_diff", strconv.Itoa(sec.SecurityPatternsDiff)},
		{"cve_patterns", strconv.Itoa(sec.CvePatterns)},
		{"memory_safety_issues", strconv.Itoa(sec.MemorySafetyIssues)},
		{"crash_fixes", strconv.Itoa(sec.CrashFixes)},
		{"security_risk", sec.Risk()},
		{"keyword_total_security", strconv.Itoa(kw.TotalSecurity)},
		{"removed_options_keywords", strconv.Itoa(kw.RemovedOptionsKeywords)},
		{"total_bonus", strconv.Itoa(r.TotalBonus)},
	}
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}
