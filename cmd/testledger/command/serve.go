package command

import (
	"github.com/spf13/cobra"

	"github.com/labnet/testledger/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the export scheduler",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("log-level") {
			logLevel = "info"
		}
		return rootCmd.PersistentPreRunE(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		api.MainLoop()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
