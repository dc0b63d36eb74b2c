package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/releasekit/nextver/internal/analyzer"
	"github.com/releasekit/nextver/internal/gitops"
	"github.com/releasekit/nextver/internal/mcpserver"
	"github.com/releasekit/nextver/internal/output"
	"github.com/releasekit/nextver/internal/progress"
	"github.com/releasekit/nextver/internal/scoring"
	"github.com/releasekit/nextver/internal/vcs"
	"github.com/releasekit/nextver/internal/version"
	"github.com/releasekit/nextver/pkg/config"
	"github.com/releasekit/nextver/pkg/semver"
)

var (
	appVersion = "dev"
	commit     = "none"    //nolint:unused // set via ldflags at build time
	date       = "unknown" //nolint:unused // set via ldflags at build time
)

// Exit codes for the suggestion taxonomy.
const (
	exitMajor = 10
	exitMinor = 11
	exitPatch = 12
	exitNone  = 20
)

func main() {
	app := &cli.App{
		Name:    "nextver",
		Usage:   "Suggest the next semantic version from repository changes",
		Version: appVersion,
		Description: `nextver mines the diff and commit log between two references for
breaking-change, security and churn signals, scores them, and proposes the
next version using churn-sensitive bump arithmetic.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "since",
				Aliases: []string{"since-tag"},
				Usage:   "Analyze changes since a specific `tag` (default: last tag)",
			},
			&cli.StringFlag{
				Name:  "since-commit",
				Usage: "Analyze changes since a specific commit `hash`",
			},
			&cli.StringFlag{
				Name:  "since-date",
				Usage: "Analyze changes since a specific `date` (YYYY-MM-DD)",
			},
			&cli.StringFlag{
				Name:  "base",
				Usage: "Base `ref` for the comparison (default: auto-detected)",
			},
			&cli.StringFlag{
				Name:  "target",
				Usage: "Target `ref` for the comparison (default: HEAD)",
			},
			&cli.StringFlag{
				Name:  "repo-root",
				Usage: "Repository root `path` for the analysis",
			},
			&cli.StringFlag{
				Name:  "tag-match",
				Usage: "Glob `pattern` for the default last-tag lookup",
			},
			&cli.BoolFlag{
				Name:  "first-parent",
				Usage: "Count commits following first parents only",
			},
			&cli.BoolFlag{
				Name:  "no-merge-base",
				Usage: "Disable merge-base reconciliation for disjoint branches",
			},
			&cli.StringFlag{
				Name:  "only-paths",
				Usage: "Comma-separated path `globs` restricting the analysis",
			},
			&cli.BoolFlag{
				Name:  "ignore-whitespace",
				Usage: "Ignore whitespace-only changes in the diff",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Show progress and the signal breakdown on stderr",
			},
			&cli.BoolFlag{
				Name:  "machine",
				Usage: "Output machine-readable key=value",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output machine-readable JSON",
			},
			&cli.BoolFlag{
				Name:  "toon",
				Usage: "Output token-oriented object notation",
			},
			&cli.BoolFlag{
				Name:  "suggest-only",
				Usage: "Output only the suggestion (major/minor/patch/none)",
			},
			&cli.BoolFlag{
				Name:  "strict-status",
				Usage: "Use taxonomy exit codes even with --suggest-only",
			},
			// Git mutations
			&cli.BoolFlag{
				Name:  "commit",
				Usage: "Create a commit with the VERSION update (skipped for prerelease)",
			},
			&cli.BoolFlag{
				Name:  "tag",
				Usage: "Create a git tag (a prerelease version is refused with exit code 5)",
			},
			&cli.BoolFlag{
				Name:  "push",
				Usage: "Push the current branch to the remote",
			},
			&cli.BoolFlag{
				Name:  "push-tags",
				Usage: "Push all tags to the remote",
			},
			&cli.BoolFlag{
				Name:  "allow-dirty",
				Usage: "Allow a dirty working tree when committing",
			},
			&cli.BoolFlag{
				Name:  "sign-commit",
				Usage: "Sign the commit (-S)",
			},
			&cli.BoolFlag{
				Name:  "lightweight-tag",
				Usage: "Create a lightweight tag instead of an annotated one",
			},
			&cli.BoolFlag{
				Name:  "signed-tag",
				Usage: "Create a signed tag",
			},
			&cli.BoolFlag{
				Name:  "no-verify",
				Usage: "Skip git hooks on commit",
			},
			&cli.StringFlag{
				Name:  "remote",
				Value: "origin",
				Usage: "Remote `name`",
			},
			&cli.StringFlag{
				Name:  "tag-prefix",
				Value: "v",
				Usage: "Tag `prefix`",
			},
			&cli.StringFlag{
				Name:  "message",
				Usage: "Extra commit message paragraph",
			},
		},
		Action: runAnalyze,
		Commands: []*cli.Command{
			semverCommand(),
			{
				Name:  "mcp",
				Usage: "Run as an MCP server over stdio",
				Action: func(c *cli.Context) error {
					return mcpserver.NewServer(appVersion).Run(c.Context)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func runAnalyze(c *cli.Context) error {
	repoRoot := c.String("repo-root")
	mode := outputMode(c)
	verbose := c.Bool("verbose")

	var spinner *progress.Spinner
	if verbose && mode == output.Human {
		spinner = progress.NewSpinner("Analyzing changes...")
	}

	runner := vcs.NewGitRunner(repoRoot)
	report := analyzer.Run(runner, analyzer.Options{
		RepoRoot: repoRoot,
		Refs: vcs.RefOptions{
			Base:        c.String("base"),
			Target:      c.String("target"),
			SinceCommit: c.String("since-commit"),
			SinceTag:    c.String("since"),
			SinceDate:   c.String("since-date"),
			TagMatch:    c.String("tag-match"),
			NoMergeBase: c.Bool("no-merge-base"),
			FirstParent: c.Bool("first-parent"),
		},
		OnlyPaths:        c.String("only-paths"),
		IgnoreWhitespace: c.Bool("ignore-whitespace"),
	})
	spinner.Finish()

	cfg := config.Load(repoRoot)
	if verbose {
		warnOddDivisors(cfg)
	}

	totalBonus := scoring.TotalBonus(report, cfg)
	suggestion := scoring.Suggest(totalBonus, cfg)
	currentVersion := version.ReadCurrent(repoRoot)

	nextVersion := ""
	if suggestion != scoring.None {
		nextVersion = version.Bump(currentVersion, suggestion, report.Files.LineDelta(), totalBonus, cfg)
	}

	if c.Bool("commit") || c.Bool("tag") || c.Bool("push") || c.Bool("push-tags") {
		effective := nextVersion
		if effective == "" {
			effective = currentVersion
		}
		commitCurrent := currentVersion
		if commitCurrent == "" {
			commitCurrent = "none"
		}
		root := repoRoot
		if root == "" {
			root = "."
		}
		code := gitops.Apply(gitops.Options{
			Commit:       c.Bool("commit"),
			Tag:          c.Bool("tag"),
			Push:         c.Bool("push"),
			PushTags:     c.Bool("push-tags"),
			AllowDirty:   c.Bool("allow-dirty"),
			SignCommit:   c.Bool("sign-commit"),
			AnnotatedTag: !c.Bool("lightweight-tag"),
			SignedTag:    c.Bool("signed-tag"),
			NoVerify:     c.Bool("no-verify"),
			Remote:       c.String("remote"),
			TagPrefix:    c.String("tag-prefix"),
			Message:      c.String("message"),
		}, runner, root, effective, commitCurrent, os.Stderr)
		if code != 0 {
			return cli.Exit("", code)
		}
	}

	result := output.Result{
		Report:         report,
		Suggestion:     suggestion,
		CurrentVersion: currentVersion,
		NextVersion:    nextVersion,
		TotalBonus:     totalBonus,
		Config:         cfg,
	}
	if verbose {
		output.WriteBreakdown(os.Stderr, result)
	}
	if err := output.Render(os.Stdout, mode, result); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if code := exitCode(c, mode, suggestion); code != 0 {
		return cli.Exit("", code)
	}
	return nil
}

// outputMode picks the rendering strategy; suggest-only wins, then the
// machine-readable encodings, then the human report.
func outputMode(c *cli.Context) output.Mode {
	switch {
	case c.Bool("suggest-only"):
		return output.SuggestOnly
	case c.Bool("json"):
		return output.JSON
	case c.Bool("toon"):
		return output.Toon
	case c.Bool("machine"):
		return output.Machine
	}
	return output.Human
}

// exitCode maps the suggestion to the taxonomy codes. Suggest-only without
// strict-status and the structured encodings always succeed.
func exitCode(c *cli.Context, mode output.Mode, suggestion scoring.Suggestion) int {
	if mode == output.SuggestOnly && !c.Bool("strict-status") {
		return 0
	}
	if mode == output.JSON || mode == output.Toon {
		return 0
	}
	switch suggestion {
	case scoring.Major:
		return exitMajor
	case scoring.Minor:
		return exitMinor
	case scoring.Patch:
		return exitPatch
	case scoring.None:
		return exitNone
	}
	return 0
}

// warnOddDivisors flags configured divisors whose effective minor/major
// slope diverges from the configured ratio.
func warnOddDivisors(cfg config.Values) {
	if cfg.LocDivisorMinor%5 != 0 {
		fmt.Fprintf(os.Stderr, "warning: loc_divisors.minor=%d is not divisible by 5; effective slope is %d\n",
			cfg.LocDivisorMinor, max(1, cfg.LocDivisorMinor/5))
	}
	if cfg.LocDivisorMajor%10 != 0 {
		fmt.Fprintf(os.Stderr, "warning: loc_divisors.major=%d is not divisible by 10; effective slope is %d\n",
			cfg.LocDivisorMajor, max(1, cfg.LocDivisorMajor/10))
	}
}

func semverCommand() *cli.Command {
	return &cli.Command{
		Name:  "semver",
		Usage: "Validate and compare semantic versions",
		Subcommands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate a version string",
				ArgsUsage: "<version>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Accept only a bare X.Y.Z core",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("Error: validate requires exactly one version", 1)
					}
					v := c.Args().First()
					valid := semver.IsValid(v)
					if c.Bool("strict") {
						valid = semver.IsCore(v)
					}
					if !valid {
						fmt.Println("invalid")
						return cli.Exit("", 1)
					}
					fmt.Println("valid")
					return nil
				},
			},
			{
				Name:      "compare",
				Usage:     "Compare two versions by precedence",
				ArgsUsage: "<a> <b>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return cli.Exit("Error: compare requires exactly two versions", 1)
					}
					fmt.Println(semver.Compare(c.Args().Get(0), c.Args().Get(1)))
					return nil
				},
			},
		},
	}
}
