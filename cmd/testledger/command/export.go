package command

import (
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Manage the registry export",
	Long:  "The export command is used to run the registry export and manage its watermark",
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
