package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labnet/testledger/facilities"
	"github.com/labnet/testledger/reports"
	"github.com/labnet/testledger/scoping"
)

var reportResultsParams = struct {
	FacilityId string
	Output     string
}{}

var reportResultsCmd = &cobra.Command{
	Use:   "results {facilityId}",
	Args:  cobra.ExactArgs(1),
	Short: "Write the facility results report to an xlsx file",
	RunE: func(cmd *cobra.Command, args []string) error {
		reportResultsParams.FacilityId = args[0]
		return Run(generateResultsReport)
	},
}

func generateResultsReport(facilitiesService facilities.Service, generator *reports.Generator) error {
	facility, err := facilitiesService.Get(context.TODO(), reportResultsParams.FacilityId)
	if err != nil {
		return err
	}

	ctx := scoping.WithScope(context.TODO(), scoping.Scope{OrganizationId: facility.OrganizationId.Hex()})
	report, err := generator.GenerateFacilityResults(ctx, reportResultsParams.FacilityId)
	if err != nil {
		return err
	}

	output := reportResultsParams.Output
	if output == "" {
		output = fmt.Sprintf("results-%s.xlsx", reportResultsParams.FacilityId)
	}
	if err := report.Save(output); err != nil {
		return err
	}

	fmt.Printf("Report for %s written to %s\n", facility.Name, output)
	return nil
}

func init() {
	reportResultsCmd.Flags().StringVarP(&reportResultsParams.Output, "output", "o", "", "Path of the xlsx file")
	reportCmd.AddCommand(reportResultsCmd)
}
