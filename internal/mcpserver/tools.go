package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/releasekit/nextver/internal/analyzer"
	"github.com/releasekit/nextver/internal/scoring"
	"github.com/releasekit/nextver/internal/vcs"
	"github.com/releasekit/nextver/internal/version"
	"github.com/releasekit/nextver/pkg/config"
	"github.com/releasekit/nextver/pkg/semver"
)

// SuggestInput mirrors the CLI flag surface.
type SuggestInput struct {
	RepoRoot         string `json:"repo_root,omitempty" jsonschema:"Repository root to analyze. Defaults to the current directory."`
	Base             string `json:"base,omitempty" jsonschema:"Base reference for the comparison. Auto-detected when empty."`
	Target           string `json:"target,omitempty" jsonschema:"Target reference for the comparison. Defaults to HEAD."`
	SinceTag         string `json:"since_tag,omitempty" jsonschema:"Analyze changes since this tag."`
	SinceCommit      string `json:"since_commit,omitempty" jsonschema:"Analyze changes since this commit."`
	SinceDate        string `json:"since_date,omitempty" jsonschema:"Analyze changes since this date (YYYY-MM-DD)."`
	TagMatch         string `json:"tag_match,omitempty" jsonschema:"Glob for the default last-tag lookup."`
	OnlyPaths        string `json:"only_paths,omitempty" jsonschema:"Comma-separated path globs restricting the analysis."`
	IgnoreWhitespace bool   `json:"ignore_whitespace,omitempty" jsonschema:"Ignore whitespace-only changes."`
	FirstParent      bool   `json:"first_parent,omitempty" jsonschema:"Count commits following first parents only."`
	NoMergeBase      bool   `json:"no_merge_base,omitempty" jsonschema:"Disable merge-base reconciliation for disjoint branches."`
}

// SuggestOutput is the structured analysis result.
type SuggestOutput struct {
	Suggestion     string `json:"suggestion" toon:"suggestion"`
	CurrentVersion string `json:"current_version" toon:"current_version"`
	NextVersion    string `json:"next_version,omitempty" toon:"next_version,omitempty"`
	TotalBonus     int    `json:"total_bonus" toon:"total_bonus"`
	BaseRef        string `json:"base_ref" toon:"base_ref"`
	TargetRef      string `json:"target_ref" toon:"target_ref"`
	CommitCount    int    `json:"commit_count" toon:"commit_count"`
	LineDelta      int    `json:"line_delta" toon:"line_delta"`
	SecurityRisk   string `json:"security_risk" toon:"security_risk"`
}

type ValidateInput struct {
	Version string `json:"version" jsonschema:"The version string to validate."`
	Strict  bool   `json:"strict,omitempty" jsonschema:"Accept only a bare X.Y.Z core."`
}

type ValidateOutput struct {
	Valid      bool `json:"valid" toon:"valid"`
	Core       bool `json:"core" toon:"core"`
	Prerelease bool `json:"prerelease" toon:"prerelease"`
}

type CompareInput struct {
	A string `json:"a" jsonschema:"Left-hand version."`
	B string `json:"b" jsonschema:"Right-hand version."`
}

type CompareOutput struct {
	Result int `json:"result" toon:"result"`
}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(out)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func handleSuggestVersion(ctx context.Context, req *mcp.CallToolRequest, input SuggestInput) (*mcp.CallToolResult, any, error) {
	runner := vcs.NewGitRunner(input.RepoRoot)
	report := analyzer.Run(runner, analyzer.Options{
		RepoRoot: input.RepoRoot,
		Refs: vcs.RefOptions{
			Base:        input.Base,
			Target:      input.Target,
			SinceCommit: input.SinceCommit,
			SinceTag:    input.SinceTag,
			SinceDate:   input.SinceDate,
			TagMatch:    input.TagMatch,
			NoMergeBase: input.NoMergeBase,
			FirstParent: input.FirstParent,
		},
		OnlyPaths:        input.OnlyPaths,
		IgnoreWhitespace: input.IgnoreWhitespace,
	})

	cfg := config.Load(input.RepoRoot)
	bonus := scoring.TotalBonus(report, cfg)
	suggestion := scoring.Suggest(bonus, cfg)
	current := version.ReadCurrent(input.RepoRoot)

	out := SuggestOutput{
		Suggestion:     string(suggestion),
		CurrentVersion: current,
		TotalBonus:     bonus,
		BaseRef:        report.BaseRef,
		TargetRef:      report.TargetRef,
		CommitCount:    report.Resolution.CommitCount,
		LineDelta:      report.Files.LineDelta(),
		SecurityRisk:   report.Security.Risk(),
	}
	if suggestion != scoring.None {
		out.NextVersion = version.Bump(current, suggestion, report.Files.LineDelta(), bonus, cfg)
	}
	return toolResult(out)
}

func handleValidateSemver(ctx context.Context, req *mcp.CallToolRequest, input ValidateInput) (*mcp.CallToolResult, any, error) {
	if input.Version == "" {
		return toolError("version is required")
	}
	valid := semver.IsValid(input.Version)
	if input.Strict {
		valid = semver.IsCore(input.Version)
	}
	return toolResult(ValidateOutput{
		Valid:      valid,
		Core:       semver.IsCore(input.Version),
		Prerelease: semver.IsPrerelease(input.Version),
	})
}

func handleCompareSemver(ctx context.Context, req *mcp.CallToolRequest, input CompareInput) (*mcp.CallToolResult, any, error) {
	if input.A == "" || input.B == "" {
		return toolError("both versions are required")
	}
	return toolResult(CompareOutput{Result: semver.Compare(input.A, input.B)})
}
