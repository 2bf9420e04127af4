package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) FacilityResultsReport(ec echo.Context) error {
	ctx := ec.Request().Context()
	facilityId := ec.Param("facilityId")
	report, err := h.reports.GenerateFacilityResults(ctx, facilityId)
	if err != nil {
		return err
	}

	res := ec.Response()
	res.Header().Set(echo.HeaderContentType, xlsxContentType)
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "results-"+facilityId+".xlsx"))
	res.WriteHeader(http.StatusOK)
	return report.Write(res)
}
