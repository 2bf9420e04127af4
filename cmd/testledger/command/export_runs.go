package command

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/labnet/testledger/export"
	"github.com/labnet/testledger/store"
)

var exportRunsParams = struct {
	Limit int
}{}

var exportRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent export runs",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(listExportRuns) },
}

func listExportRuns(repository export.Repository) error {
	page := store.DefaultPagination().WithLimit(exportRunsParams.Limit)
	runs, err := repository.List(context.TODO(), page)
	if err != nil {
		return err
	}

	for _, run := range runs {
		fmt.Printf("%s %s %s rows=%d watermark=%s\n", run.Id.Hex(), run.StartedTime.Format(time.RFC3339), run.Status, run.RecordsProcessed, run.Watermark())
	}
	fmt.Printf("Found %v runs\n", len(runs))

	return nil
}

func init() {
	exportRunsCmd.Flags().IntVar(&exportRunsParams.Limit, "limit", 20, "Number of runs to list")
	exportCmd.AddCommand(exportRunsCmd)
}
