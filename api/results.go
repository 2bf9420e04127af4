package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/labnet/testledger/results"
)

func (h *Handler) SubmitResult(ec echo.Context) error {
	ctx := ec.Request().Context()
	dto := SubmitResultRequest{}
	if err := bind(ec, &dto); err != nil {
		return err
	}

	event, err := h.results.SubmitResult(ctx, results.Submission{
		FacilityId: ec.Param("facilityId"),
		PatientId:  dto.PatientId,
		DeviceType: dto.DeviceType,
		Result:     dto.Result,
		DateTested: dto.DateTested,
	})
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, event)
}

func (h *Handler) ListResults(ec echo.Context) error {
	ctx := ec.Request().Context()
	page, err := pagination(ec)
	if err != nil {
		return err
	}

	list, err := h.results.ListForFacility(ctx, ec.Param("facilityId"), page)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, list)
}

func (h *Handler) CountResults(ec echo.Context) error {
	ctx := ec.Request().Context()
	count, err := h.results.CountForFacility(ctx, ec.Param("facilityId"))
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, CountResponse{Count: count})
}

func (h *Handler) LatestResult(ec echo.Context) error {
	ctx := ec.Request().Context()
	event, err := h.results.LatestForPatient(ctx, ec.Param("patientId"))
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, event)
}

func (h *Handler) CorrectResult(ec echo.Context) error {
	ctx := ec.Request().Context()
	dto := CorrectionRequest{}
	if err := bind(ec, &dto); err != nil {
		return err
	}

	event, err := h.results.Correct(ctx, ec.Param("eventId"), strings.TrimSpace(dto.Reason))
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, event)
}
