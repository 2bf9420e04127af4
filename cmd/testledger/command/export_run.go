package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labnet/testledger/export"
)

var exportRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the registry export once",
	Long:  "The run command exports the results created since the last successful run. It respects the cross-instance lock.",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(runExport) },
}

func runExport(job *export.Job) error {
	for _, problem := range job.ConfigurationProblems() {
		fmt.Printf("configuration problem: %s\n", problem)
	}

	outcome := job.Run(context.TODO())
	fmt.Printf("export %s\n", outcome)

	switch outcome {
	case export.OutcomeSucceeded, export.OutcomeDisabled, export.OutcomeLockUnavailable:
		return nil
	default:
		return fmt.Errorf("export did not complete: %s", outcome)
	}
}

func init() {
	exportCmd.AddCommand(exportRunCmd)
}
