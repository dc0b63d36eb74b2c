// Package output renders analysis results in the supported output modes.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	toon "github.com/toon-format/toon-go"

	"github.com/releasekit/nextver/internal/analyzer"
	"github.com/releasekit/nextver/internal/scoring"
	"github.com/releasekit/nextver/internal/version"
	"github.com/releasekit/nextver/pkg/config"
)

// Mode selects the rendering strategy.
type Mode int

const (
	Human Mode = iota
	Machine
	JSON
	SuggestOnly
	Toon
)

// Result carries everything the renderers need.
type Result struct {
	Report         analyzer.Report
	Suggestion     scoring.Suggestion
	CurrentVersion string
	NextVersion    string // empty when the suggestion is none
	TotalBonus     int
	Config         config.Values
}

// jsonReport fixes the key order of the machine-readable object.
type jsonReport struct {
	Suggestion             string   `json:"suggestion" toon:"suggestion"`
	CurrentVersion         string   `json:"current_version" toon:"current_version"`
	NextVersion            string   `json:"next_version,omitempty" toon:"next_version,omitempty"`
	TotalBonus             int      `json:"total_bonus" toon:"total_bonus"`
	ManualCliChanges       bool     `json:"manual_cli_changes" toon:"manual_cli_changes"`
	ManualAddedLongCount   int      `json:"manual_added_long_count" toon:"manual_added_long_count"`
	ManualRemovedLongCount int      `json:"manual_removed_long_count" toon:"manual_removed_long_count"`
	BaseRef                string   `json:"base_ref" toon:"base_ref"`
	TargetRef              string   `json:"target_ref" toon:"target_ref"`
	LocDelta               locDelta `json:"loc_delta" toon:"loc_delta"`
}

type locDelta struct {
	PatchDelta int `json:"patch_delta" toon:"patch_delta"`
	MinorDelta int `json:"minor_delta" toon:"minor_delta"`
	MajorDelta int `json:"major_delta" toon:"major_delta"`
}

func (r Result) jsonPayload() jsonReport {
	loc := r.Report.Files.LineDelta()
	return jsonReport{
		Suggestion:             string(r.Suggestion),
		CurrentVersion:         r.CurrentVersion,
		NextVersion:            r.NextVersion,
		TotalBonus:             r.TotalBonus,
		ManualCliChanges:       r.Report.Cli.ManualCliChanges,
		ManualAddedLongCount:   r.Report.Cli.ManualAddedLongCount,
		ManualRemovedLongCount: r.Report.Cli.ManualRemovedLongCount,
		BaseRef:                r.Report.BaseRef,
		TargetRef:              r.Report.TargetRef,
		LocDelta: locDelta{
			PatchDelta: version.Delta(scoring.Patch, loc, r.TotalBonus, r.Config),
			MinorDelta: version.Delta(scoring.Minor, loc, r.TotalBonus, r.Config),
			MajorDelta: version.Delta(scoring.Major, loc, r.TotalBonus, r.Config),
		},
	}
}

// Render writes the result to w in the requested mode.
func Render(w io.Writer, mode Mode, r Result) error {
	switch mode {
	case SuggestOnly:
		_, err := fmt.Fprintf(w, "%s\n", r.Suggestion)
		return err
	case Machine:
		_, err := fmt.Fprintf(w, "SUGGESTION=%s\n", r.Suggestion)
		return err
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.jsonPayload())
	case Toon:
		out, err := toon.Marshal(r.jsonPayload(), toon.WithIndent(2))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	default:
		return renderHuman(w, r)
	}
}

// renderHuman writes the fixed report layout. The suggestion value is the
// only colored element; color escapes are elided automatically when the
// destination is not a terminal.
func renderHuman(w io.Writer, r Result) error {
	fmt.Fprintln(w, "=== Semantic Version Analysis v2 ===")
	fmt.Fprintf(w, "Analyzing changes: %s -> %s\n", r.Report.BaseRef, r.Report.TargetRef)
	fmt.Fprintf(w, "\nCurrent version: %s\n", r.CurrentVersion)
	fmt.Fprintf(w, "Total bonus points: %d\n", r.TotalBonus)
	fmt.Fprintf(w, "\nSuggested bump: %s\n", suggestionColor(r.Suggestion))
	if r.NextVersion != "" {
		fmt.Fprintf(w, "Next version: %s\n", r.NextVersion)
	}
	_, err := fmt.Fprintf(w, "\nSUGGESTION=%s\n", r.Suggestion)
	return err
}

func suggestionColor(s scoring.Suggestion) string {
	upper := strings.ToUpper(string(s))
	switch s {
	case scoring.Major:
		return color.RedString(upper)
	case scoring.Minor:
		return color.YellowString(upper)
	case scoring.Patch:
		return color.GreenString(upper)
	default:
		return upper
	}
}
