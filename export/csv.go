package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/persons"
	"github.com/labnet/testledger/pointer"
	"github.com/labnet/testledger/results"
)

const (
	dateLayout = "20060102"
	timeLayout = "20060102150405-0700"
)

type column struct {
	name  string
	value func(e *results.TestEvent) string
}

var columns = []column{
	{"Patient_last_name", func(e *results.TestEvent) string { return e.Patient.Name.Last }},
	{"Patient_first_name", func(e *results.TestEvent) string { return e.Patient.Name.First }},
	{"Patient_middle_name", func(e *results.TestEvent) string { return e.Patient.Name.Middle }},
	{"Patient_suffix", func(e *results.TestEvent) string { return e.Patient.Name.Suffix }},
	{"Patient_ID", patientId},
	{"Patient_DOB", func(e *results.TestEvent) string { return compactDate(e.Patient.BirthDate) }},
	{"Patient_street", func(e *results.TestEvent) string { return strings.Join(e.Patient.Address.Street, ", ") }},
	{"Patient_city", func(e *results.TestEvent) string { return e.Patient.Address.City }},
	{"Patient_county", func(e *results.TestEvent) string { return e.Patient.Address.County }},
	{"Patient_state", func(e *results.TestEvent) string { return e.Patient.Address.State }},
	{"Patient_zip_code", func(e *results.TestEvent) string { return e.Patient.Address.PostalCode }},
	{"Patient_phone_number", func(e *results.TestEvent) string { return e.Patient.PrimaryPhone() }},
	{"Patient_email", func(e *results.TestEvent) string { return e.Patient.PrimaryEmail() }},
	{"Patient_race", func(e *results.TestEvent) string { return e.Patient.Race }},
	{"Patient_ethnicity", func(e *results.TestEvent) string { return e.Patient.Ethnicity }},
	{"Patient_tribal_affiliation", func(e *results.TestEvent) string { return e.Patient.TribalAffiliation }},
	{"Patient_gender", func(e *results.TestEvent) string { return e.Patient.GenderAssignedAtBirth }},
	{"Patient_gender_identity", func(e *results.TestEvent) string { return strings.Join(e.Patient.GenderIdentity, ";") }},
	{"Patient_sexual_orientation", func(e *results.TestEvent) string { return strings.Join(e.Patient.SexualOrientation, ";") }},
	{"Patient_role", func(e *results.TestEvent) string { return string(e.Patient.Role) }},
	{"Patient_preferred_language", func(e *results.TestEvent) string { return e.Patient.PreferredLanguage }},
	{"Employed_in_healthcare", func(e *results.TestEvent) string { return yesNo(e.Patient.EmployedInHealthcare) }},
	{"Resident_congregate_setting", func(e *results.TestEvent) string { return yesNo(e.Patient.ResidentCongregateSetting) }},
	{"First_test", func(e *results.TestEvent) string { return yesNo(e.Survey.FirstTest) }},
	{"Symptomatic_for_disease", symptomatic},
	{"Illness_onset_date", func(e *results.TestEvent) string { return compactDate(pointer.ToString(e.Survey.SymptomOnsetDate)) }},
	{"Pregnant", func(e *results.TestEvent) string { return pointer.ToString(e.Survey.Pregnancy) }},
	{"Test_result_code", func(e *results.TestEvent) string { return string(e.Result) }},
	{"Test_result_status", resultStatus},
	{"Corrected_result_reason", func(e *results.TestEvent) string { return pointer.ToString(e.ReasonForCorrection) }},
	{"Device_type", func(e *results.TestEvent) string { return e.DeviceType }},
	{"Specimen_collection_date_time", func(e *results.TestEvent) string { return formatTime(e.EffectiveTestDate()) }},
	{"Date_result_released", func(e *results.TestEvent) string { return formatTime(e.CreatedTime) }},
	{"Ordering_facility_name", func(e *results.TestEvent) string { return e.Facility.Name }},
	{"Ordering_facility_clia", func(e *results.TestEvent) string { return e.Facility.CliaNumber }},
	{"Ordering_facility_street", func(e *results.TestEvent) string { return strings.Join(e.Facility.Address.Street, ", ") }},
	{"Ordering_facility_city", func(e *results.TestEvent) string { return e.Facility.Address.City }},
	{"Ordering_facility_state", func(e *results.TestEvent) string { return e.Facility.Address.State }},
	{"Ordering_facility_zip_code", func(e *results.TestEvent) string { return e.Facility.Address.PostalCode }},
	{"Ordering_facility_phone_number", func(e *results.TestEvent) string { return e.Facility.Phone }},
	{"Ordering_provider_first_name", func(e *results.TestEvent) string { return e.Facility.OrderingProvider.FirstName }},
	{"Ordering_provider_last_name", func(e *results.TestEvent) string { return e.Facility.OrderingProvider.LastName }},
	{"Ordering_provider_ID", func(e *results.TestEvent) string { return e.Facility.OrderingProvider.NPI }},
	{"Testing_lab_specimen_ID", func(e *results.TestEvent) string { return e.TestOrderId.Hex() }},
	{"Test_event_ID", testEventId},
	{"Prior_test_event_ID", priorTestEventId},
	{"Sequence", func(e *results.TestEvent) string { return strconv.FormatInt(e.Sequence, 10) }},
}

// Header returns the column names of the export file
func Header() []string {
	header := make([]string, 0, len(columns))
	for _, c := range columns {
		header = append(header, c.name)
	}
	return header
}

// WriteCSV serializes the events with a header row, one row per event
func WriteCSV(events []*results.TestEvent) ([]byte, error) {
	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)

	if err := writer.Write(Header()); err != nil {
		return nil, err
	}

	row := make([]string, len(columns))
	for _, event := range events {
		for i, c := range columns {
			row[i] = c.value(event)
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func patientId(e *results.TestEvent) string {
	if e.Patient.LookupId != nil && *e.Patient.LookupId != "" {
		return *e.Patient.LookupId
	}
	return e.PatientId.Hex()
}

func testEventId(e *results.TestEvent) string {
	if e.Id == nil {
		return ""
	}
	return e.Id.Hex()
}

func priorTestEventId(e *results.TestEvent) string {
	if e.PriorCorrectedTestEventId == nil {
		return ""
	}
	return e.PriorCorrectedTestEventId.Hex()
}

func symptomatic(e *results.TestEvent) string {
	if e.Survey.HasSymptoms() {
		return "Y"
	}
	if e.Survey.NoSymptoms != nil && *e.Survey.NoSymptoms {
		return "N"
	}
	return "UNK"
}

// resultStatus maps the correction status to HL7 result status codes
func resultStatus(e *results.TestEvent) string {
	switch e.CorrectionStatus {
	case orders.CorrectionStatusCorrected:
		return "C"
	case orders.CorrectionStatusRemoved:
		return "W"
	default:
		return "F"
	}
}

func yesNo(b *bool) string {
	if b == nil {
		return "UNK"
	}
	if *b {
		return "Y"
	}
	return "N"
}

func compactDate(date string) string {
	t, err := time.Parse(persons.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(dateLayout)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
