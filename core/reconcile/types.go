package reconcile

import (
	"time"

	"go.uber.org/zap"

	"github.com/darrenhoch/DualogOutlook/core/store"
)

// Classification is the outcome of aligning one folder pair. It is a
// pure function of the two item counts and the presence of each side;
// it never depends on enumeration order.
type Classification string

const (
	// ClassMatched means the folder exists on both sides with equal item counts.
	ClassMatched Classification = "matched"
	// ClassCountDiffers means the folder exists on both sides with unequal counts.
	ClassCountDiffers Classification = "count-differs"
	// ClassAbsentInTarget means only the source side has this folder.
	ClassAbsentInTarget Classification = "absent-in-target"
	// ClassAbsentInSource means only the target side has this folder.
	ClassAbsentInSource Classification = "absent-in-source"
	// ClassError stands in for a pair that could not be accessed.
	ClassError Classification = "error"
	// ClassDepthLimited marks a subtree left unvisited at the recursion bound.
	ClassDepthLimited Classification = "depth-limited"
)

// Node is the ephemeral comparison result for one folder pair. The tree
// of Nodes is rendered into the report artifact and then discarded.
type Node struct {
	// Name is the folder name shared by the pair (or present on one side).
	Name string
	// Path is the folder path from the top level down, Name included.
	Path []string
	// Class is the pair classification.
	Class Classification
	// SourceCount is the source-side item count (0 when absent or unreadable).
	SourceCount int
	// TargetCount is the target-side item count (0 when absent or unreadable).
	TargetCount int
	// Message carries detail for error and depth-limited nodes.
	Message string
	// Children are the aligned child pairs: source-ordered pairs first,
	// then remaining target-only folders in target order.
	Children []*Node
}

// Counters are the per-run accumulators. They are reset at run start,
// mutated only by the aligner and restore engine, and read once at
// report time.
type Counters struct {
	// Matched counts folder pairs with equal item counts.
	Matched int
	// CountDiffers counts folder pairs with unequal item counts.
	CountDiffers int
	// AbsentInTarget counts source folders missing on the target side.
	AbsentInTarget int
	// AbsentInTargetItems totals the items of those missing folders.
	AbsentInTargetItems int
	// AbsentInSource counts target folders missing on the source side.
	AbsentInSource int
	// AbsentInSourceItems totals the items of those missing folders.
	AbsentInSourceItems int
	// Errors counts folders skipped over an access or copy failure.
	Errors int

	// FoldersRestored counts whole folders copied by the restore engine.
	FoldersRestored int
	// ItemsRestored counts individual items copied (bulk copies included).
	ItemsRestored int
	// DuplicatesSkipped counts reference items resolved as already present.
	DuplicatesSkipped int
}

// RecordKind tags one restore log entry.
type RecordKind string

const (
	// RecordRestoredFolder logs a whole folder copied to the target.
	RecordRestoredFolder RecordKind = "restored-folder"
	// RecordRestoredItems logs individual items copied into an existing folder.
	RecordRestoredItems RecordKind = "restored-items"
	// RecordChecked logs a folder pair that needed no action.
	RecordChecked RecordKind = "checked-no-action"
	// RecordError logs a failed copy, indexing or access attempt.
	RecordError RecordKind = "error"
	// RecordDepthLimited logs a subtree left unvisited at the recursion bound.
	RecordDepthLimited RecordKind = "depth-limited"
)

// Record is one line of the restore log: a single folder or item action
// with its outcome.
type Record struct {
	// Kind is the action outcome.
	Kind RecordKind
	// Path is the folder path the action applied to.
	Path string
	// Items is the number of items copied by this action.
	Items int
	// Skipped is the number of items resolved as duplicates.
	Skipped int
	// Message carries error detail for RecordError entries.
	Message string
}

// Options tune a single run.
type Options struct {
	// MaxDepth bounds folder recursion; pairs past the bound produce a
	// depth-limited node instead of descending.
	MaxDepth int
	// DryRun plans and logs restore actions without copying anything.
	DryRun bool
	// Retry is the copy retry policy handed to the store facade.
	Retry store.RetryPolicy
	// Signature overrides the item matching strategy. Nil selects
	// MetadataSignature.
	Signature Signature
	// Progress, when set, is invoked once per folder pair visited by the
	// restore engine, with the source folder path.
	Progress func(path string)
}

// Run is the explicit context threaded through one comparison or
// restore invocation. It owns the counters and the restore log; nothing
// in this package keeps process-wide state.
type Run struct {
	// Counters are the run accumulators.
	Counters Counters
	// Records is the restore log, one entry per action taken.
	Records []Record
	// Started is the run start time, stamped into the report.
	Started time.Time

	opts Options
	sig  Signature
	log  *zap.Logger
}

// NewRun builds a fresh run context. A nil logger is replaced with a
// no-op logger.
func NewRun(log *zap.Logger, opts Options) *Run {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 64
	}
	sig := opts.Signature
	if sig == nil {
		sig = MetadataSignature{}
	}
	return &Run{
		Started: time.Now(),
		opts:    opts,
		sig:     sig,
		log:     log,
	}
}

// record appends one restore log entry.
func (r *Run) record(rec Record) {
	r.Records = append(r.Records, rec)
}

func (r *Run) progress(path string) {
	if r.opts.Progress != nil {
		r.opts.Progress(path)
	}
}
