package reports

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/labnet/testledger/facilities"
	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/pointer"
	"github.com/labnet/testledger/results"
)

const (
	ReportSheetNameSummary = "Summary"
	ReportSheetNameResults = "Results"

	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04"
)

var ResultsHeader = []string{
	"Patient",
	"Birth Date",
	"Date Tested",
	"Device Type",
	"Result",
	"Correction Status",
	"Reason For Correction",
	"Test Event Id",
}

// FacilityResultsReport renders the latest event of every order at a facility
type FacilityResultsReport struct {
	facility      *facilities.Facility
	events        []*results.TestEvent
	generatedTime time.Time
}

func NewFacilityResultsReport(facility *facilities.Facility, events []*results.TestEvent, generatedTime time.Time) FacilityResultsReport {
	return FacilityResultsReport{
		facility:      facility,
		events:        events,
		generatedTime: generatedTime,
	}
}

func (r FacilityResultsReport) Generate() (*xlsx.File, error) {
	report := xlsx.NewFile()

	components := []func(report *xlsx.File) error{
		r.addSummarySheet,
		r.addResultsSheet,
	}
	for _, fn := range components {
		if err := fn(report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (r FacilityResultsReport) addSummarySheet(report *xlsx.File) error {
	sh, err := report.AddSheet(ReportSheetNameSummary)
	if err != nil {
		return err
	}

	sh.AddRow().AddCell().SetValue("Test Results")
	sh.AddRow()

	var currentRow *xlsx.Row
	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Facility")
	currentRow.AddCell().SetValue(r.facility.Name)
	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("CLIA Number")
	currentRow.AddCell().SetValue(r.facility.CliaNumber)
	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Report Generated")
	currentRow.AddCell().SetValue(r.generatedTime.Format(time.RFC3339))
	sh.AddRow()

	counts := r.countByResult()
	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Tests")
	currentRow.AddCell().SetValue(strconv.Itoa(len(r.events)))
	for _, result := range []orders.Result{orders.ResultPositive, orders.ResultNegative, orders.ResultUndetermined} {
		currentRow = sh.AddRow()
		currentRow.AddCell().SetValue(fmt.Sprintf("%s ---", result))
		currentRow.AddCell().SetValue(strconv.Itoa(counts[result]))
	}
	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Removed")
	currentRow.AddCell().SetValue(strconv.Itoa(r.countRemoved()))

	return nil
}

func (r FacilityResultsReport) addResultsSheet(report *xlsx.File) error {
	sh, err := report.AddSheet(ReportSheetNameResults)
	if err != nil {
		return err
	}

	header := sh.AddRow()
	for _, name := range ResultsHeader {
		header.AddCell().SetValue(name)
	}

	for _, event := range r.events {
		currentRow := sh.AddRow()
		currentRow.AddCell().SetValue(event.Patient.Name.String())
		currentRow.AddCell().SetValue(event.Patient.BirthDate)
		currentRow.AddCell().SetValue(event.EffectiveTestDate().Format(DateTimeFormat))
		currentRow.AddCell().SetValue(event.DeviceType)
		currentRow.AddCell().SetValue(string(event.Result))
		currentRow.AddCell().SetValue(string(event.CorrectionStatus))
		currentRow.AddCell().SetValue(pointer.ToString(event.ReasonForCorrection))
		currentRow.AddCell().SetValue(event.Id.Hex())
	}

	return nil
}

func (r FacilityResultsReport) countByResult() map[orders.Result]int {
	counts := make(map[orders.Result]int)
	for _, event := range r.events {
		if event.CorrectionStatus == orders.CorrectionStatusRemoved {
			continue
		}
		counts[event.Result]++
	}
	return counts
}

func (r FacilityResultsReport) countRemoved() int {
	count := 0
	for _, event := range r.events {
		if event.CorrectionStatus == orders.CorrectionStatusRemoved {
			count++
		}
	}
	return count
}
