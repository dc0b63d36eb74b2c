package analyzer

import "regexp"

// SecurityResults holds the raw pattern counters mined from the diff and the
// commit log.
type SecurityResults struct {
	SecurityKeywordsCommits int `json:"security_keywords_commits"`
	SecurityPatternsDiff    int `json:"security_patterns_diff"`
	CvePatterns             int `json:"cve_patterns"`
	MemorySafetyIssues      int `json:"memory_safety_issues"`
	CrashFixes              int `json:"crash_fixes"`
}

// Per-counter weights for the aggregate score.
const (
	weightCommits = 1
	weightDiff    = 1
	weightCve     = 3
	weightMemory  = 2
	weightCrash   = 1
)

var (
	securityVocabRe = regexp.MustCompile(`(?i)\b(security|vuln|exploit|breach|attack|threat|malware|virus|trojan|backdoor|rootkit|phishing|ddos|overflow|injection|xss|csrf|sqli|rce|ssrf|xxe|privilege|escalation|bypass|mitigation|hardening|sandbox|auth|encryption|decryption|tls|ssl|certificate|secret|token|leak|expos|traversal)\b`)

	cveRe = regexp.MustCompile(`(?i)\bCVE-[0-9]{4}-[0-9]{4,7}\b`)

	memorySafetyRe = regexp.MustCompile(`(?i)\b(buffer[- _]?overflow|stack[- _]?overflow|heap[- _]?overflow|use[- _]?after[- _]?free|double[- _]?free|null[- _]?pointer|dangling[- _]?pointer|out[- _]?of[- _]?bounds|oob|memory[- _]?leak|format[- _]?string|integer[- _]?overflow|signedness|race[- _]?condition|data[- _]?race|deadlock)\b`)

	crashRe = regexp.MustCompile(`(?i)\b(segfault|segmentation\s+fault|crash|abort|assert|panic|fatal\s+error|core\s+dump|stack\s+trace)\b`)
)

// AnalyzeSecurity counts security-relevant vocabulary over the commit log
// and the diff, plus CVE identifiers, memory-safety phrases and crash
// phrases over the diff.
func AnalyzeSecurity(diff, log string) SecurityResults {
	return SecurityResults{
		SecurityKeywordsCommits: len(securityVocabRe.FindAllString(log, -1)),
		SecurityPatternsDiff:    len(securityVocabRe.FindAllString(diff, -1)),
		CvePatterns:             len(cveRe.FindAllString(diff, -1)),
		MemorySafetyIssues:      len(memorySafetyRe.FindAllString(diff, -1)),
		CrashFixes:              len(crashRe.FindAllString(diff, -1)),
	}
}

// WeightedTotal folds the five counters into one score.
func (s SecurityResults) WeightedTotal() int {
	return weightCommits*s.SecurityKeywordsCommits +
		weightDiff*s.SecurityPatternsDiff +
		weightCve*s.CvePatterns +
		weightMemory*s.MemorySafetyIssues +
		weightCrash*s.CrashFixes
}

// Risk buckets the weighted total into none/low/medium/high.
func (s SecurityResults) Risk() string {
	total := s.WeightedTotal()
	switch {
	case total >= 15:
		return "high"
	case total >= 5:
		return "medium"
	case total >= 1:
		return "low"
	}
	return "none"
}
