package api

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/reports"
	"github.com/labnet/testledger/results"
	"github.com/labnet/testledger/selfservice"
	"github.com/labnet/testledger/store"
	"github.com/labnet/testledger/summary"
)

type Handler struct {
	logger      *zap.SugaredLogger
	orders      orders.Service
	reports     *reports.Generator
	results     results.Service
	selfService selfservice.Service
	summary     summary.Service
}

type Params struct {
	fx.In

	Logger      *zap.SugaredLogger
	Orders      orders.Service
	Reports     *reports.Generator
	Results     results.Service
	SelfService selfservice.Service
	Summary     summary.Service
}

func NewHandler(p Params) *Handler {
	return &Handler{
		logger:      p.Logger,
		orders:      p.Orders,
		reports:     p.Reports,
		results:     p.Results,
		selfService: p.SelfService,
		summary:     p.Summary,
	}
}

func pagination(ec echo.Context) (store.Pagination, error) {
	page := store.DefaultPagination()
	err := echo.QueryParamsBinder(ec).
		Int("offset", &page.Offset).
		Int("limit", &page.Limit).
		BindError()
	if err != nil {
		return page, fmt.Errorf("%w: invalid pagination", errors.BadRequest)
	}
	return page.Normalize(), nil
}

func bind(ec echo.Context, dto interface{}) error {
	if err := ec.Bind(dto); err != nil {
		return fmt.Errorf("%w: malformed request body", errors.BadRequest)
	}
	return nil
}
