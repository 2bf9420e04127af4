package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/organizations"
)

var ordersCancelAllParams = struct {
	OrganizationId string
}{}

var ordersCancelAllCmd = &cobra.Command{
	Use:   "cancel-all {organizationId}",
	Args:  cobra.ExactArgs(1),
	Short: "Cancel every pending order of an organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		ordersCancelAllParams.OrganizationId = args[0]
		return Run(cancelAllOrders)
	},
}

func cancelAllOrders(organizationsService organizations.Service, ordersService orders.Service) error {
	organization, err := organizationsService.Get(context.TODO(), ordersCancelAllParams.OrganizationId)
	if err != nil {
		return err
	}

	count, err := ordersService.CancelAll(context.TODO(), organization.Id.Hex())
	if err != nil {
		return err
	}

	fmt.Printf("%v pending orders of %s were canceled\n", count, organization.Name)
	return nil
}

func init() {
	ordersCmd.AddCommand(ordersCancelAllCmd)
}
