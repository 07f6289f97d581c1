package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/darrenhoch/DualogOutlook/core/reconcile"
)

// Identity names the run in the report header.
type Identity struct {
	// RunID is the unique run identifier.
	RunID string
	// Mode is "compare" or "restore".
	Mode string
	// Source and Target describe the two stores, e.g. "Mailbox (imap.example.com:993)".
	Source string
	// Target is the destination-side store description.
	Target string
	// Started is the run start time.
	Started time.Time
	// DryRun marks a restore that planned without copying.
	DryRun bool
}

// Section headers and count labels are stable; downstream tooling greps
// for them.
const (
	compareTitle = "== MAIL STORE COMPARISON =="
	restoreTitle = "== MAIL STORE RESTORE =="
	treeHeader   = "== FOLDER TREE =="
	logHeader    = "== RESTORE LOG =="
	sumHeader    = "== SUMMARY =="
	legendHeader = "== LEGEND =="
)

// RenderCompare renders the comparison artifact for one run.
func RenderCompare(id Identity, root *reconcile.Node, c reconcile.Counters) string {
	var b strings.Builder
	writeHeader(&b, compareTitle, id)

	b.WriteString(treeHeader + "\n")
	writeNode(&b, root, "", true, true)
	b.WriteString("\n")

	b.WriteString(sumHeader + "\n")
	fmt.Fprintf(&b, "matched folders:     %d\n", c.Matched)
	fmt.Fprintf(&b, "count mismatches:    %d\n", c.CountDiffers)
	fmt.Fprintf(&b, "absent in target:    %d (items: %d)\n", c.AbsentInTarget, c.AbsentInTargetItems)
	fmt.Fprintf(&b, "absent in source:    %d (items: %d)\n", c.AbsentInSource, c.AbsentInSourceItems)
	fmt.Fprintf(&b, "errors:              %d\n", c.Errors)
	b.WriteString("\n")

	b.WriteString(legendHeader + "\n")
	b.WriteString("matched           folder present on both sides with equal item counts\n")
	b.WriteString("count-differs     folder present on both sides with differing item counts\n")
	b.WriteString("absent-in-target  folder present only on the source side\n")
	b.WriteString("absent-in-source  folder present only on the target side\n")
	b.WriteString("error             folder skipped after an access failure\n")
	b.WriteString("depth-limited     subtree not visited at the recursion bound\n")
	return b.String()
}

// RenderRestore renders the flat action log artifact for one run.
func RenderRestore(id Identity, records []reconcile.Record, c reconcile.Counters) string {
	var b strings.Builder
	writeHeader(&b, restoreTitle, id)

	b.WriteString(logHeader + "\n")
	for _, rec := range records {
		writeRecord(&b, rec)
	}
	b.WriteString("\n")

	b.WriteString(sumHeader + "\n")
	fmt.Fprintf(&b, "folders restored:    %d\n", c.FoldersRestored)
	fmt.Fprintf(&b, "items restored:      %d\n", c.ItemsRestored)
	fmt.Fprintf(&b, "duplicates skipped:  %d\n", c.DuplicatesSkipped)
	fmt.Fprintf(&b, "errors:              %d\n", c.Errors)
	b.WriteString("\n")

	b.WriteString(legendHeader + "\n")
	b.WriteString("restored-folder    whole folder copied to the target\n")
	b.WriteString("restored-items     individual items copied into an existing folder\n")
	b.WriteString("checked-no-action  folder pair needed nothing\n")
	b.WriteString("error              action failed and was skipped\n")
	b.WriteString("depth-limited      subtree not visited at the recursion bound\n")
	return b.String()
}

func writeHeader(b *strings.Builder, title string, id Identity) {
	b.WriteString(title + "\n")
	fmt.Fprintf(b, "run:     %s\n", id.RunID)
	fmt.Fprintf(b, "started: %s\n", id.Started.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(b, "source:  %s\n", id.Source)
	fmt.Fprintf(b, "target:  %s\n", id.Target)
	if id.DryRun {
		b.WriteString("mode:    dry-run\n")
	}
	b.WriteString("\n")
}

// writeNode renders one node and its children with branch glyphs.
func writeNode(b *strings.Builder, n *reconcile.Node, prefix string, isLast, isRoot bool) {
	name := n.Name
	if name == "" {
		name = "/"
	}

	line := name + " " + nodeCounts(n) + " " + string(n.Class)
	if n.Message != "" {
		line += " (" + n.Message + ")"
	}

	if isRoot {
		b.WriteString(line + "\n")
	} else {
		glyph := "├── "
		if isLast {
			glyph = "└── "
		}
		b.WriteString(prefix + glyph + line + "\n")
	}

	childPrefix := prefix
	if !isRoot {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}
	for i, child := range n.Children {
		writeNode(b, child, childPrefix, i == len(n.Children)-1, false)
	}
}

func nodeCounts(n *reconcile.Node) string {
	switch n.Class {
	case reconcile.ClassAbsentInTarget:
		return fmt.Sprintf("[src=%d]", n.SourceCount)
	case reconcile.ClassAbsentInSource:
		return fmt.Sprintf("[dst=%d]", n.TargetCount)
	case reconcile.ClassError, reconcile.ClassDepthLimited:
		return "[-]"
	default:
		return fmt.Sprintf("[src=%d dst=%d]", n.SourceCount, n.TargetCount)
	}
}

func writeRecord(b *strings.Builder, rec reconcile.Record) {
	switch rec.Kind {
	case reconcile.RecordRestoredFolder:
		fmt.Fprintf(b, "%-18s %s (items=%d)\n", rec.Kind, rec.Path, rec.Items)
	case reconcile.RecordRestoredItems:
		fmt.Fprintf(b, "%-18s %s (items=%d, skipped=%d)\n", rec.Kind, rec.Path, rec.Items, rec.Skipped)
	case reconcile.RecordError:
		fmt.Fprintf(b, "%-18s %s: %s\n", rec.Kind, rec.Path, rec.Message)
	default:
		fmt.Fprintf(b, "%-18s %s\n", rec.Kind, rec.Path)
	}
}
