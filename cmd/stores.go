package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darrenhoch/DualogOutlook/feature/catalog"
)

// storesCmd lists the stores available for comparison and restore.
var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "List the configured mail stores and their selection indices",
	RunE:  runStores,
}

func init() {
	RootCmd.AddCommand(storesCmd)
}

func runStores(cmd *cobra.Command, args []string) error {
	cfg, l, err := initRun()
	if err != nil {
		return err
	}
	defer l.Sync()

	cat := catalog.New(cfg, l)
	descriptors, err := cat.List(cmd.Context())
	if err != nil {
		return err
	}

	for _, d := range descriptors {
		fmt.Printf("[%d] %-8s %s (%s)\n", d.Index, d.Kind, d.Name, d.Location)
	}
	return nil
}
