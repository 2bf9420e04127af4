package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/labnet/testledger/selfservice"
)

func (h *Handler) VerifyPatientLink(ec echo.Context) error {
	ctx := ec.Request().Context()
	dto := VerifyLinkRequest{}
	if err := bind(ec, &dto); err != nil {
		return err
	}

	verification, err := h.selfService.VerifyLink(ctx, dto.LinkId, dto.BirthDate)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, verification)
}

func (h *Handler) SubmitPatientSurvey(ec echo.Context) error {
	ctx := ec.Request().Context()
	dto := SubmitSurveyRequest{}
	if err := bind(ec, &dto); err != nil {
		return err
	}

	verification, err := h.selfService.SubmitSurvey(ctx, selfservice.SurveySubmission{
		LinkId:             dto.LinkId,
		BirthDate:          dto.BirthDate,
		Survey:             dto.Survey,
		DeliveryPreference: dto.DeliveryPreference,
	})
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, verification)
}
