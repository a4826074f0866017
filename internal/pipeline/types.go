// Package pipeline holds the data model shared by every stage of the commit
// message synthesis pipeline: diff parsing, budgeting, analysis, scoring,
// and candidate generation. Values are produced by one stage and consumed by
// the next; nothing here is mutated after construction.
package pipeline

// Operation classifies how a file changed in a diff.
type Operation int

const (
	Modified Operation = iota
	Added
	Deleted
	Renamed
	Binary
)

func (o Operation) String() string {
	switch o {
	case Added:
		return "Added"
	case Deleted:
		return "Deleted"
	case Renamed:
		return "Renamed"
	case Binary:
		return "Binary"
	default:
		return "Modified"
	}
}

// Category classifies a file's role for scoring and summarization purposes.
type Category int

const (
	Source Category = iota
	Test
	Config
	Docs
	Build
	CategoryBinary
)

func (c Category) String() string {
	switch c {
	case Test:
		return "Test"
	case Config:
		return "Config"
	case Docs:
		return "Docs"
	case Build:
		return "Build"
	case CategoryBinary:
		return "Binary"
	default:
		return "Source"
	}
}

// FileChange is one entry per file in a parsed diff. Created by the diff
// parser, immutable thereafter, dropped at hook exit.
type FileChange struct {
	Path         string
	Operation    Operation
	HunkText     string // empty for Binary
	LinesAdded   int
	LinesRemoved int
}

// TotalLines returns the combined added+removed line count, used for
// priority sorting and scoring.
func (f FileChange) TotalLines() int {
	return f.LinesAdded + f.LinesRemoved
}

// FileAnalysis is produced by the analyzer (API or local fallback) for a
// single FileChange, in the same order as the input. Operation is carried
// over from the source FileChange so the Scorer can remain a pure function
// of a single FileAnalysis value, per its contract.
type FileAnalysis struct {
	Path         string
	Operation    Operation
	Category     Category
	Summary      string
	LinesAdded   int
	LinesRemoved int
}

// ScoredFile pairs a FileAnalysis with its deterministic impact score.
type ScoredFile struct {
	FileAnalysis
	ImpactScore float32
}

// Style identifies the rhetorical angle of a candidate commit message.
type Style int

const (
	StyleAction Style = iota
	StyleComponent
	StyleImpact
)

func (s Style) String() string {
	switch s {
	case StyleComponent:
		return "Component"
	case StyleImpact:
		return "Impact"
	default:
		return "Action"
	}
}

// Candidate is one synthesized commit message option.
type Candidate struct {
	Style Style
	Text  string
}

// CandidateSet is the ordered output of the Candidate Generator. Invariants:
// each Text is non-empty, and 2 <= len(CandidateSet) <= 5.
type CandidateSet []Candidate

// Budget is the token allotment produced by the Budget Engine. Invariant:
// TemplateCost + sum(PerFile) <= GlobalMax.
type Budget struct {
	GlobalMax    int
	TemplateCost int
	PerFile      map[string]int // keyed by FileChange.Path
}

// Remaining returns the tokens left after reserving the template cost.
func (b Budget) Remaining() int {
	r := b.GlobalMax - b.TemplateCost
	if r < 0 {
		return 0
	}
	return r
}

// Exhausted reports whether the global budget could not even cover the
// prompt template, per spec: Budget Engine must return an empty PerFile map
// in this case and the orchestrator falls back to summary-only mode.
func (b Budget) Exhausted() bool {
	return b.GlobalMax <= b.TemplateCost
}
