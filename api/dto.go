package api

import (
	"time"

	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/persons"
	"github.com/labnet/testledger/summary"
)

type EnqueueRequest struct {
	PatientId string        `json:"patientId"`
	Survey    orders.Survey `json:"survey"`
}

type SubmitResultRequest struct {
	PatientId  string        `json:"patientId"`
	DeviceType string        `json:"deviceType"`
	Result     orders.Result `json:"result"`
	DateTested *time.Time    `json:"dateTested,omitempty"`
}

type CorrectionRequest struct {
	Reason string `json:"reason"`
}

type SummaryRequest struct {
	Filters []*persons.Demographic `json:"filters"`
	Since   *time.Time             `json:"since,omitempty"`
}

type SummaryDto struct {
	*summary.Summary
	Error *string `json:"error,omitempty"`
}

type VerifyLinkRequest struct {
	LinkId    string `json:"linkId"`
	BirthDate string `json:"birthDate"`
}

type SubmitSurveyRequest struct {
	LinkId             string                      `json:"linkId"`
	BirthDate          string                      `json:"birthDate"`
	Survey             orders.Survey               `json:"survey"`
	DeliveryPreference *persons.DeliveryPreference `json:"testResultDelivery,omitempty"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type CancelAllResponse struct {
	Canceled int64 `json:"canceled"`
}

func NewSummaryDtos(summaries []*summary.Summary) []SummaryDto {
	dtos := make([]SummaryDto, 0, len(summaries))
	for _, s := range summaries {
		dto := SummaryDto{Summary: s}
		if s.Err != nil {
			message := s.Err.Error()
			dto.Error = &message
		}
		dtos = append(dtos, dto)
	}
	return dtos
}
