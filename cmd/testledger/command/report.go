package command

import (
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate reports",
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
