package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	pb "github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/darrenhoch/DualogOutlook/core/reconcile"
	"github.com/darrenhoch/DualogOutlook/core/report"
	"github.com/darrenhoch/DualogOutlook/feature/catalog"
)

var (
	restoreDryRun   bool
	restoreYes      bool
	restoreMaxDepth int
	restoreOutput   string
)

// restoreCmd copies missing folders and items from source into target.
var restoreCmd = &cobra.Command{
	Use:   "restore <source-index> <target-index>",
	Short: "Restore missing folders and messages from source into target",
	Long: `Restore copies folders missing entirely on the target in one bulk
operation, and copies individual messages into folders that undercount,
skipping messages the target already holds. Re-running a restore against
an already-restored pair copies nothing.

Examples:
  # See what a restore from archive (1) into the mailbox (0) would do
  dualog-outlook restore 1 0 --dry-run

  # Restore with interactive confirmation
  dualog-outlook restore 1 0

  # Restore non-interactively (scheduled runs)
  dualog-outlook restore 1 0 --yes`,
	Args: cobra.ExactArgs(2),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().BoolVar(&restoreDryRun, "dry-run", false, "Plan and log actions without copying anything")
	restoreCmd.Flags().BoolVar(&restoreYes, "yes", false, "Auto-confirm the restore (non-interactive)")
	restoreCmd.Flags().IntVar(&restoreMaxDepth, "max-depth", 0, "Override the folder recursion bound")
	restoreCmd.Flags().StringVar(&restoreOutput, "output", "", "Override the report output directory")
	RootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, l, err := initRun()
	if err != nil {
		return err
	}
	defer l.Sync()

	if restoreOutput != "" {
		cfg.Report.OutputDir = restoreOutput
	}

	cat := catalog.New(cfg, l)
	srcDesc, dstDesc, err := selectStores(ctx, cat, args)
	if err != nil {
		return err
	}

	if !restoreDryRun && !confirmRestore(srcDesc.Name, dstDesc.Name) {
		l.Warn("restore cancelled, no changes were made")
		return nil
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
	opts.DryRun = restoreDryRun
	if restoreMaxDepth > 0 {
		opts.MaxDepth = restoreMaxDepth
	}

	bar := pb.NewOptions(-1,
		pb.OptionSetDescription("restoring"),
		pb.OptionSpinnerType(14),
		pb.OptionSetWriter(os.Stderr),
	)
	opts.Progress = func(path string) {
		_ = bar.Add(1)
	}

	run := reconcile.NewRun(l, opts)

	l.Info("restoring stores",
		zap.String("source", srcDesc.Name),
		zap.String("target", dstDesc.Name),
		zap.Bool("dry_run", restoreDryRun))
	reconcile.Restore(ctx, run, src, srcRoot, dst, dstRoot)
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	id := report.Identity{
		RunID:   uuid.NewString(),
		Mode:    "restore",
		Source:  describe(srcDesc),
		Target:  describe(dstDesc),
		Started: run.Started,
		DryRun:  restoreDryRun,
	}
	content := report.RenderRestore(id, run.Records, run.Counters)

	writer := newReportWriter(ctx, cfg, l)
	path, err := writer.Write(ctx, report.Filename("restore", run.Started, id.RunID), content)
	if err != nil {
		return err
	}

	c := run.Counters
	l.Info("restore finished",
		zap.Int("folders_restored", c.FoldersRestored),
		zap.Int("items_restored", c.ItemsRestored),
		zap.Int("duplicates_skipped", c.DuplicatesSkipped),
		zap.Int("errors", c.Errors),
		zap.Bool("dry_run", restoreDryRun),
		zap.String("report", path))

	fmt.Println(path)
	return nil
}

// confirmRestore prompts the user before a mutating restore, honoring --yes.
func confirmRestore(source, target string) bool {
	if restoreYes {
		fmt.Printf("Auto-confirmed restore from %s into %s via --yes\n", source, target)
		return true
	}

	fmt.Printf("Restore will copy content from %s into %s. Type 'yes' to continue: ", source, target)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
