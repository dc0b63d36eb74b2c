package analyzer

import "regexp"

// KeywordResults captures explicit breaking-change and security markers left
// by developers in hunks and commit messages.
type KeywordResults struct {
	HasCliBreaking     bool `json:"has_cli_breaking"`
	HasApiBreaking     bool `json:"has_api_breaking"`
	HasGeneralBreaking bool `json:"has_general_breaking"`

	TotalSecurity          int `json:"total_security"`
	RemovedOptionsKeywords int `json:"removed_options_keywords"`
}

var (
	cliBreakingCodeRe   = regexp.MustCompile(`(?i)CLI[- ]?BREAKING`)
	cliBreakingCommitRe = regexp.MustCompile(`(?i)BREAKING[^A-Za-z0-9]+.*CLI`)
	apiBreakingCodeRe   = regexp.MustCompile(`(?i)API[- ]?BREAKING`)
	apiBreakingCommitRe = regexp.MustCompile(`(?i)BREAKING[^A-Za-z0-9]+.*API`)
	generalBreakingRe   = regexp.MustCompile(`(?i)BREAKING\s+CHANGE|BREAKING[^A-Za-z0-9]+.*(CHANGE|MAJOR)`)

	// A comment line introducing the SECURITY token, in any of the comment
	// styles the classifier's source extensions cover.
	securityCommentRe = regexp.MustCompile(`(?im)(^|\s)[+-]?\s*(//|/\*|#|--)\s*SECURITY`)
	securityCommitRe  = regexp.MustCompile(`(?i)SECURITY|VULNERABILIT(Y|IES)|CVE[- ]?\d{4}-\d+`)

	removedOptionsRe = regexp.MustCompile(`(?i)REMOVED\s+OPTION(S)?`)
)

// AnalyzeKeywords counts marker patterns over the diff and the commit log
// and derives the breaking-change flags from non-zero counts.
func AnalyzeKeywords(diff, log string) KeywordResults {
	var res KeywordResults

	cliBreaking := len(cliBreakingCodeRe.FindAllString(diff, -1)) +
		len(cliBreakingCodeRe.FindAllString(log, -1)) +
		len(cliBreakingCommitRe.FindAllString(log, -1))
	apiBreaking := len(apiBreakingCodeRe.FindAllString(diff, -1)) +
		len(apiBreakingCodeRe.FindAllString(log, -1)) +
		len(apiBreakingCommitRe.FindAllString(log, -1))

	res.HasCliBreaking = cliBreaking > 0
	res.HasApiBreaking = apiBreaking > 0
	res.HasGeneralBreaking = len(generalBreakingRe.FindAllString(log, -1)) > 0

	res.TotalSecurity = len(securityCommentRe.FindAllString(diff, -1)) +
		len(securityCommitRe.FindAllString(log, -1))
	res.RemovedOptionsKeywords = len(removedOptionsRe.FindAllString(diff, -1))

	return res
}
