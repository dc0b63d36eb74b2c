package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeKeywordsBreakingFlags(t *testing.T) {
	tests := []struct {
		name string
		diff string
		log  string
		want KeywordResults
	}{
		{
			name: "cli breaking marker in code",
			diff: "+// CLI-BREAKING: drop --legacy\n",
			want: KeywordResults{HasCliBreaking: true},
		},
		{
			name: "cli breaking phrase in commit",
			log:  "feat: BREAKING change to the CLI surface\n",
			want: KeywordResults{HasCliBreaking: true, HasGeneralBreaking: true},
		},
		{
			name: "api breaking marker",
			diff: "+/* API BREAKING */\n",
			want: KeywordResults{HasApiBreaking: true},
		},
		{
			name: "general breaking change footer",
			log:  "refactor: split parser\n\nBREAKING CHANGE: renamed exports\n",
			want: KeywordResults{HasGeneralBreaking: true},
		},
		{
			name: "breaking major phrase",
			log:  "chore: BREAKING - this is a MAJOR rework\n",
			want: KeywordResults{HasGeneralBreaking: true},
		},
		{
			name: "plain log",
			log:  "fix: off-by-one in pager\n",
			want: KeywordResults{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalyzeKeywords(tt.diff, tt.log))
		})
	}
}

func TestAnalyzeKeywordsSecurityComment(t *testing.T) {
	diff := "+// SECURITY: validate length before copy\n" +
		"+# security hardening for the installer\n" +
		"+-- SECURITY fix for the SQL layer\n" +
		"+int securityLevel = 2;\n" // identifier, not a comment marker
	res := AnalyzeKeywords(diff, "")
	assert.Equal(t, 3, res.TotalSecurity)
}

func TestAnalyzeKeywordsSecurityCommits(t *testing.T) {
	log := "fix: patch CVE-2024-12345 in parser\nsecurity: rotate tokens\nVULNERABILITIES addressed\n"
	res := AnalyzeKeywords("", log)
	// CVE id + "security" + "VULNERABILITIES"
	assert.Equal(t, 3, res.TotalSecurity)
}

func TestAnalyzeKeywordsRemovedOptions(t *testing.T) {
	diff := "+Removed option: --frobnicate\n+REMOVED OPTIONS: -x, -y\n"
	res := AnalyzeKeywords(diff, "")
	assert.Equal(t, 2, res.RemovedOptionsKeywords)
}
