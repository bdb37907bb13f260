package fix

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"seq/internal/diag"
	"seq/internal/source"
)

// ErrNoFixes is returned when nothing could be applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode selects which of the offered fixes are applied.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first always-safe fix, or the first fix at all.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every always-safe fix that does not conflict.
	ApplyModeAll
	// ApplyModeID applies the fix named by ApplyOptions.TargetID.
	ApplyModeID
)

type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes the new contents without writing files.
	DryRun bool
}

// AppliedFix describes a fix that made it into the output.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

// SkippedFix is a fix left out, with the reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange is the new content of one file.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

func (r *ApplyResult) skip(f diag.Fix, reason string) {
	r.Skipped = append(r.Skipped, SkippedFix{ID: f.ID, Title: f.Title, Reason: reason})
}

type candidate struct {
	diag diag.Diagnostic
	fix  diag.Fix
}

// Apply gathers the fixes offered by diagnostics, picks some according to
// opts and rewrites the affected files. Fixes are tried in source order;
// one that overlaps an already accepted fix, targets a virtual file or no
// longer matches the file content is skipped as a whole.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	res := &ApplyResult{}
	if fs == nil {
		return res, errors.New("fix: FileSet is nil")
	}
	cands := gatherCandidates(diagnostics, res)
	slices.SortStableFunc(cands, func(a, b candidate) int {
		x, y := a.diag.Primary, b.diag.Primary
		return cmp.Or(cmp.Compare(x.File, y.File), cmp.Compare(x.Start, y.Start), cmp.Compare(x.End, y.End))
	})

	plan := newPlan(fs)
	for _, c := range selectCandidates(cands, opts, res) {
		if reason := plan.accept(c.fix); reason != "" {
			res.skip(c.fix, reason)
			continue
		}
		res.Applied = append(res.Applied, AppliedFix{
			ID:            c.fix.ID,
			Title:         c.fix.Title,
			Code:          c.diag.Code,
			Message:       c.diag.Message,
			Applicability: c.fix.Applicability,
			PrimaryPath:   plan.path(c.diag.Primary.File, source.PathAuto),
			EditCount:     len(c.fix.Edits),
		})
	}
	if len(res.Applied) == 0 {
		return res, ErrNoFixes
	}
	changes, err := plan.commit(opts.DryRun)
	res.FileChanges = changes
	return res, err
}

// gatherCandidates flattens the fixes of diagnostics and gives each an ID.
// Fixes without edits and repeated IDs are skipped.
func gatherCandidates(diagnostics []diag.Diagnostic, res *ApplyResult) []candidate {
	var cands []candidate
	seen := make(map[string]bool)
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			f.ID = ID(d, idx)
			switch {
			case len(f.Edits) == 0:
				res.skip(f, "fix has no edits")
			case seen[f.ID]:
				res.skip(f, "duplicate fix id")
			default:
				seen[f.ID] = true
				cands = append(cands, candidate{diag: d, fix: f})
			}
		}
	}
	return cands
}

// ID returns the identifier of the idx-th fix of d: its own ID, or one
// derived from the code and the primary position, which stays the same
// between runs over the same input.
func ID(d diag.Diagnostic, idx int) string {
	if id := d.Fixes[idx].ID; id != "" {
		return id
	}
	return fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
}

func isSafe(c candidate) bool {
	return c.fix.Applicability == diag.FixApplicabilityAlwaysSafe
}

func selectCandidates(cands []candidate, opts ApplyOptions, res *ApplyResult) []candidate {
	switch opts.Mode {
	case ApplyModeID:
		if i := slices.IndexFunc(cands, func(c candidate) bool { return c.fix.ID == opts.TargetID }); i >= 0 {
			return cands[i : i+1]
		}
		res.Skipped = append(res.Skipped, SkippedFix{ID: opts.TargetID, Reason: "fix id not found"})
		return nil
	case ApplyModeAll:
		var out []candidate
		for _, c := range cands {
			if isSafe(c) {
				out = append(out, c)
			} else {
				res.skip(c.fix, "applicability is "+c.fix.Applicability.String())
			}
		}
		return out
	case ApplyModeOnce:
		if len(cands) == 0 {
			return nil
		}
		if i := slices.IndexFunc(cands, isSafe); i >= 0 {
			return cands[i : i+1]
		}
		return cands[:1]
	}
	return nil
}

// plan collects accepted edits per file, in original file coordinates.
// Accepted edits never overlap, so they can all be applied to the original
// content in one pass at commit time.
type plan struct {
	fs    *source.FileSet
	edits map[source.FileID][]diag.FixEdit
}

func newPlan(fs *source.FileSet) *plan {
	return &plan{fs: fs, edits: make(map[source.FileID][]diag.FixEdit)}
}

func (p *plan) path(id source.FileID, style source.PathStyle) string {
	if f := p.fs.Get(id); f != nil {
		return f.FormatPath(style, p.fs.BaseDir())
	}
	return ""
}

// accept validates every edit of f and records them. The returned reason
// is empty on success; on failure nothing is recorded.
func (p *plan) accept(f diag.Fix) string {
	for i, e := range f.Edits {
		file := p.fs.Get(e.Span.File)
		switch {
		case file == nil:
			return "target file is unknown"
		case file.Flags&source.FileVirtual != 0:
			return "target file is virtual"
		case e.Span.Start > e.Span.End || e.Span.End > file.Len():
			return "edit span out of range"
		case e.OldText != "" && file.Text(e.Span) != e.OldText:
			return "existing text does not match expected content"
		}
		for _, prev := range p.edits[e.Span.File] {
			if prev.Span.Overlaps(e.Span) {
				return "conflicts with previously applied edits in " + p.path(e.Span.File, source.PathAuto)
			}
		}
		for _, other := range f.Edits[:i] {
			if other.Span.Overlaps(e.Span) {
				return "fix edits overlap each other"
			}
		}
	}
	for _, e := range f.Edits {
		p.edits[e.Span.File] = append(p.edits[e.Span.File], e)
	}
	return ""
}

// commit renders every touched file, ordered by FileID, and writes it
// unless dryRun is set.
func (p *plan) commit(dryRun bool) ([]FileChange, error) {
	var changes []FileChange
	for _, id := range slices.Sorted(maps.Keys(p.edits)) {
		file := p.fs.Get(id)
		content := render(file.Content, p.edits[id])
		if !dryRun {
			if err := writeInPlace(file.Path, content); err != nil {
				return changes, fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		changes = append(changes, FileChange{
			Path:      p.path(id, source.PathRelative),
			EditCount: len(p.edits[id]),
			Content:   content,
		})
	}
	return changes, nil
}

// render applies non-overlapping edits to content. Insertions at the same
// offset keep the order they were accepted in.
func render(content []byte, edits []diag.FixEdit) []byte {
	edits = slices.Clone(edits)
	slices.SortStableFunc(edits, func(a, b diag.FixEdit) int {
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})
	out := make([]byte, 0, len(content))
	var at uint32
	for _, e := range edits {
		out = append(out, content[at:e.Span.Start]...)
		out = append(out, e.NewText...)
		at = e.Span.End
	}
	return append(out, content[at:]...)
}

// writeInPlace replaces the content of path, keeping its permissions.
func writeInPlace(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, content, mode)
}
