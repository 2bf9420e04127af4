package command

import (
	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Manage test orders",
	Long:  "The orders command is used to manage the test order queue",
}

func init() {
	rootCmd.AddCommand(ordersCmd)
}
