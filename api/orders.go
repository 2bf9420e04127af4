package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/labnet/testledger/orders"
)

func (h *Handler) Enqueue(ec echo.Context) error {
	ctx := ec.Request().Context()
	dto := EnqueueRequest{}
	if err := bind(ec, &dto); err != nil {
		return err
	}

	order, err := h.orders.Enqueue(ctx, ec.Param("facilityId"), dto.PatientId, dto.Survey)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, order)
}

func (h *Handler) ListQueue(ec echo.Context) error {
	ctx := ec.Request().Context()
	list, err := h.orders.Queue(ctx, ec.Param("facilityId"))
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, list)
}

func (h *Handler) CancelOrder(ec echo.Context) error {
	ctx := ec.Request().Context()
	order, err := h.orders.Cancel(ctx, ec.Param("patientId"))
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateSurvey(ec echo.Context) error {
	ctx := ec.Request().Context()
	survey := orders.Survey{}
	if err := bind(ec, &survey); err != nil {
		return err
	}

	order, err := h.orders.UpdateSurvey(ctx, ec.Param("patientId"), survey)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, order)
}

func (h *Handler) CancelAllOrders(ec echo.Context) error {
	ctx := ec.Request().Context()
	organizationId := ec.Param("organizationId")
	count, err := h.orders.CancelAll(ctx, organizationId)
	if err != nil {
		return err
	}

	h.logger.Infow("site admin canceled pending orders", "organizationId", organizationId, "count", count)
	return ec.JSON(http.StatusOK, CancelAllResponse{Canceled: count})
}
