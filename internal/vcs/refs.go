package vcs

// RefOptions select the endpoints of the analysed range.
type RefOptions struct {
	Base        string
	Target      string
	SinceCommit string
	SinceTag    string
	SinceDate   string // YYYY-MM-DD
	TagMatch    string // glob for the default last-tag lookup
	NoMergeBase bool
	FirstParent bool
}

// Resolution is the outcome of reference resolution.
type Resolution struct {
	BaseRef          string
	TargetRef        string
	RequestedBaseSHA string
	EffectiveBaseSHA string
	CommitCount      int
	EmptyRepo        bool
	SingleCommitRepo bool
	HasCommits       bool
}

// ResolveRefs picks base and target for the analysis range. It fails softly:
// a repository without commits yields the empty-repo sentinel and every
// unresolvable intermediate falls through to the next rule.
func ResolveRefs(p *Probe, opts RefOptions) Resolution {
	res := Resolution{TargetRef: opts.Target}
	if res.TargetRef == "" {
		res.TargetRef = "HEAD"
	}

	res.HasCommits = p.HasCommits()
	if !res.HasCommits {
		res.EmptyRepo = true
		res.TargetRef = "HEAD"
		return res
	}

	// First matching rule wins.
	switch {
	case opts.Base != "":
		res.BaseRef = opts.Base
	case opts.SinceCommit != "":
		res.BaseRef = opts.SinceCommit
	case opts.SinceTag != "":
		res.BaseRef = opts.SinceTag
	case opts.SinceDate != "":
		if ref := p.CommitBeforeDate(opts.SinceDate); ref != "" {
			res.BaseRef = ref
		} else if first := p.FirstCommit(); first != "" {
			res.BaseRef = first
		} else {
			res.EmptyRepo = true
			return res
		}
	default:
		if tag := p.LastTag(opts.TagMatch); tag != "" {
			res.BaseRef = tag
		} else if parent := p.ParentOfHead(); parent != "" {
			res.BaseRef = parent
		} else if first := p.FirstCommit(); first != "" {
			res.BaseRef = first
			res.SingleCommitRepo = true
		} else {
			res.EmptyRepo = true
			return res
		}
	}

	res.RequestedBaseSHA = p.ResolveCommit(res.BaseRef)
	targetSHA := p.ResolveCommit(res.TargetRef)

	// Replace the requested base with the merge base when the two diverge;
	// this neutralises disjoint-branch artefacts in the diff.
	if !opts.NoMergeBase && res.RequestedBaseSHA != "" && targetSHA != "" {
		res.EffectiveBaseSHA = p.MergeBase(res.RequestedBaseSHA, targetSHA)
		if res.EffectiveBaseSHA != "" && res.EffectiveBaseSHA != res.RequestedBaseSHA {
			res.BaseRef = res.EffectiveBaseSHA
		}
	}

	if res.BaseRef != "" && targetSHA != "" {
		res.CommitCount = p.CountCommits(res.BaseRef, targetSHA, opts.FirstParent)
	}
	return res
}
