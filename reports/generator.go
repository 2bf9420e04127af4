package reports

import (
	"context"

	"github.com/tealeg/xlsx/v3"
	"go.uber.org/zap"

	"github.com/labnet/testledger/results"
	"github.com/labnet/testledger/scoping"
	"github.com/labnet/testledger/store"
)

// Generator builds reports for the facilities of the current organization
type Generator struct {
	gate    scoping.Gate
	results results.Service
	logger  *zap.SugaredLogger
}

func NewGenerator(gate scoping.Gate, results results.Service, logger *zap.SugaredLogger) *Generator {
	return &Generator{
		gate:    gate,
		results: results,
		logger:  logger,
	}
}

func (g *Generator) GenerateFacilityResults(ctx context.Context, facilityId string) (*xlsx.File, error) {
	facility, err := g.gate.FacilityInCurrentOrg(ctx, facilityId)
	if err != nil {
		return nil, err
	}

	var events []*results.TestEvent
	page := store.DefaultPagination().WithLimit(store.MaximumLimit)
	for {
		batch, err := g.results.ListForFacility(ctx, facilityId, page)
		if err != nil {
			return nil, err
		}
		events = append(events, batch...)
		if len(batch) < page.Limit {
			break
		}
		page = page.WithOffset(page.Offset + page.Limit)
	}

	g.logger.Infow("generating facility results report", "facilityId", facilityId, "events", len(events))
	return NewFacilityResultsReport(facility, events, store.Now()).Generate()
}
