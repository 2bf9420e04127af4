package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) Summarize(ec echo.Context) error {
	ctx := ec.Request().Context()
	dto := SummaryRequest{}
	if err := bind(ec, &dto); err != nil {
		return err
	}

	summaries, err := h.summary.Summarize(ctx, ec.Param("facilityId"), dto.Filters, dto.Since)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, NewSummaryDtos(summaries))
}

func (h *Handler) DemographicValues(ec echo.Context) error {
	ctx := ec.Request().Context()
	values, err := h.summary.DemographicValues(ctx, ec.Param("facilityId"))
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, values)
}
