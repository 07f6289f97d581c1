package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/darrenhoch/DualogOutlook/core/reconcile"
	"github.com/darrenhoch/DualogOutlook/core/report"
	"github.com/darrenhoch/DualogOutlook/feature/catalog"
)

var (
	compareMaxDepth int
	compareOutput   string
)

// compareCmd aligns two store trees and writes the comparison report.
var compareCmd = &cobra.Command{
	Use:   "compare <source-index> <target-index>",
	Short: "Compare two mail stores and report structural differences",
	Long: `Compare walks the source and target folder trees in lock-step by
name, classifies every folder pair, and writes a tree-shaped report.

Examples:
  # Compare the mailbox (0) against the archive (1)
  dualog-outlook compare 0 1

  # Compare in the other direction with a custom report directory
  dualog-outlook compare 1 0 --output /var/log/mail-reports`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().IntVar(&compareMaxDepth, "max-depth", 0, "Override the folder recursion bound")
	compareCmd.Flags().StringVar(&compareOutput, "output", "", "Override the report output directory")
	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, l, err := initRun()
	if err != nil {
		return err
	}
	defer l.Sync()

	if compareOutput != "" {
		cfg.Report.OutputDir = compareOutput
	}

	cat := catalog.New(cfg, l)
	srcDesc, dstDesc, err := selectStores(ctx, cat, args)
	if err != nil {
		return err
	}

	src, err := cat.Open(ctx, srcDesc.Index)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := cat.Open(ctx, dstDesc.Index)
	if err != nil {
		return err
	}
	defer dst.Close()

	srcRoot, err := src.Root(ctx)
	if err != nil {
		return fmt.Errorf("read source root: %w", err)
	}
	dstRoot, err := dst.Root(ctx)
	if err != nil {
		return fmt.Errorf("read target root: %w", err)
	}

	opts := cfg.Reconcile.Options()
	if compareMaxDepth > 0 {
		opts.MaxDepth = compareMaxDepth
	}
	run := reconcile.NewRun(l, opts)

	l.Info("comparing stores",
		zap.String("source", srcDesc.Name),
		zap.String("target", dstDesc.Name))
	root := reconcile.Compare(ctx, run, src, srcRoot, dst, dstRoot)

	id := report.Identity{
		RunID:   uuid.NewString(),
		Mode:    "compare",
		Source:  describe(srcDesc),
		Target:  describe(dstDesc),
		Started: run.Started,
	}
	content := report.RenderCompare(id, root, run.Counters)

	writer := newReportWriter(ctx, cfg, l)
	path, err := writer.Write(ctx, report.Filename("compare", run.Started, id.RunID), content)
	if err != nil {
		return err
	}

	c := run.Counters
	l.Info("comparison finished",
		zap.Int("matched", c.Matched),
		zap.Int("count_mismatches", c.CountDiffers),
		zap.Int("absent_in_target", c.AbsentInTarget),
		zap.Int("absent_in_source", c.AbsentInSource),
		zap.Int("errors", c.Errors),
		zap.String("report", path))

	fmt.Println(path)
	return nil
}
