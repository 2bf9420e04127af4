package command

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/labnet/testledger/export"
)

var exportSeedWatermarkParams = struct {
	At string
}{}

var exportSeedWatermarkCmd = &cobra.Command{
	Use:   "seed-watermark",
	Short: "Establish the first export watermark",
	Long:  "The seed-watermark command records a successful run without rows. The next export starts after the given time.",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(seedWatermark) },
}

func seedWatermark(job *export.Job, logger *zap.SugaredLogger) error {
	at := time.Now()
	if exportSeedWatermarkParams.At != "" {
		parsed, err := time.Parse(time.RFC3339, exportSeedWatermarkParams.At)
		if err != nil {
			return fmt.Errorf("invalid --at value: %w", err)
		}
		at = parsed
	}

	run, err := job.SeedWatermark(context.TODO(), at)
	if err != nil {
		return err
	}

	logger.Infow("seeded export watermark", "runId", run.Id.Hex(), "watermark", run.Watermark().String())
	fmt.Printf("Export watermark set to %s\n", run.Watermark())
	return nil
}

func init() {
	exportSeedWatermarkCmd.Flags().StringVar(&exportSeedWatermarkParams.At, "at", "", "RFC3339 time of the watermark (defaults to now)")
	exportCmd.AddCommand(exportSeedWatermarkCmd)
}
