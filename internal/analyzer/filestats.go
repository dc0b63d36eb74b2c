package analyzer

import (
	"github.com/releasekit/nextver/internal/classify"
	"github.com/releasekit/nextver/internal/vcs"
)

// FileChangeStats aggregates per-file change records for the range.
type FileChangeStats struct {
	AddedFiles    int `json:"added_files"`
	ModifiedFiles int `json:"modified_files"`
	DeletedFiles  int `json:"deleted_files"`

	NewSourceFiles int `json:"new_source_files"`
	NewTestFiles   int `json:"new_test_files"`
	NewDocFiles    int `json:"new_doc_files"`

	Insertions int `json:"insertions"`
	Deletions  int `json:"deletions"`
}

// LineDelta is the churn of the range: insertions plus deletions.
func (s FileChangeStats) LineDelta() int {
	return s.Insertions + s.Deletions
}

// AnalyzeFileChanges counts added/modified/deleted files, classifies newly
// added ones, and sums line churn. An identical range yields all zeros.
func AnalyzeFileChanges(p *vcs.Probe, o vcs.DiffOptions) FileChangeStats {
	var stats FileChangeStats

	if p.IsUnchanged(o) {
		return stats
	}

	for _, e := range p.NameStatus(o) {
		switch e.Status {
		case 'A':
			stats.AddedFiles++
			switch classify.Path(e.Path) {
			case classify.Source:
				stats.NewSourceFiles++
			case classify.Test:
				stats.NewTestFiles++
			case classify.Doc:
				stats.NewDocFiles++
			}
		case 'D':
			stats.DeletedFiles++
		default:
			stats.ModifiedFiles++
		}
	}

	stats.Insertions, stats.Deletions = p.Numstat(o)
	return stats
}
