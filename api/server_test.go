package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/labnet/testledger/api"
	"github.com/labnet/testledger/config"
	"github.com/labnet/testledger/errors"
	facilitiesTest "github.com/labnet/testledger/facilities/test"
	"github.com/labnet/testledger/orders"
	ordersTest "github.com/labnet/testledger/orders/test"
	"github.com/labnet/testledger/patientlinks"
	"github.com/labnet/testledger/persons"
	personsTest "github.com/labnet/testledger/persons/test"
	"github.com/labnet/testledger/reports"
	"github.com/labnet/testledger/results"
	resultsTest "github.com/labnet/testledger/results/test"
	"github.com/labnet/testledger/scoping"
	scopingTest "github.com/labnet/testledger/scoping/test"
	"github.com/labnet/testledger/selfservice"
	selfserviceTest "github.com/labnet/testledger/selfservice/test"
	"github.com/labnet/testledger/store"
	"github.com/labnet/testledger/summary"
	summaryTest "github.com/labnet/testledger/summary/test"
	"github.com/labnet/testledger/test"
)

const siteAdminEmail = "admin@labnet.test"

var _ = Describe("Server", func() {
	var ctrl *gomock.Controller
	var ordersService *ordersTest.MockService
	var resultsService *resultsTest.MockService
	var summaryService *summaryTest.MockService
	var selfService *selfserviceTest.MockService
	var gate *scopingTest.MockGate
	var healthCheck *api.HealthCheck
	var server *echo.Echo

	var organizationId string
	var facilityId string

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		ordersService = ordersTest.NewMockService(ctrl)
		resultsService = resultsTest.NewMockService(ctrl)
		summaryService = summaryTest.NewMockService(ctrl)
		selfService = selfserviceTest.NewMockService(ctrl)
		gate = scopingTest.NewMockGate(ctrl)
		logger := zap.NewNop()

		handler := api.NewHandler(api.Params{
			Logger:      logger.Sugar(),
			Orders:      ordersService,
			Reports:     reports.NewGenerator(gate, resultsService, logger.Sugar()),
			Results:     resultsService,
			SelfService: selfService,
			Summary:     summaryService,
		})
		cfg := &config.Config{SiteAdminEmails: []string{siteAdminEmail}}
		healthCheck = api.NewHealthCheck()
		server = api.NewServer(handler, healthCheck, cfg, prometheus.NewRegistry(), logger)

		organizationId = primitive.NewObjectID().Hex()
		facilityId = primitive.NewObjectID().Hex()
	})

	serve := func(req *http.Request) *http.Response {
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		return rec.Result()
	}

	scoped := func(req *http.Request) *http.Request {
		req.Header.Set(api.OrganizationIdHeaderKey, organizationId)
		return req
	}

	decode := func(res *http.Response, v interface{}) {
		body, err := io.ReadAll(res.Body)
		Expect(err).ToNot(HaveOccurred())
		Expect(json.Unmarshal(body, v)).To(Succeed())
	}

	inScope := test.Match(func(ctx context.Context) bool {
		scope, ok := scoping.ScopeFromContext(ctx)
		return ok && scope.OrganizationId == organizationId
	})

	Describe("Readiness", func() {
		It("is unavailable until the database is ready", func() {
			Expect(serve(prepareRequest(http.MethodGet, "/ready", "")).StatusCode).To(Equal(http.StatusServiceUnavailable))
			healthCheck.SetReady(true)
			Expect(serve(prepareRequest(http.MethodGet, "/ready", "")).StatusCode).To(Equal(http.StatusOK))
		})

		It("exposes metrics without a scope", func() {
			Expect(serve(prepareRequest(http.MethodGet, "/metrics", "")).StatusCode).To(Equal(http.StatusOK))
		})
	})

	Describe("Scope", func() {
		It("rejects requests without an organization", func() {
			res := serve(prepareRequest(http.MethodGet, fmt.Sprintf("/v1/facilities/%s/queue", facilityId), ""))
			Expect(res.StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("rejects a malformed organization id", func() {
			req := prepareRequest(http.MethodGet, fmt.Sprintf("/v1/facilities/%s/queue", facilityId), "")
			req.Header.Set(api.OrganizationIdHeaderKey, "not-an-id")
			Expect(serve(req).StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("binds the facilities asserted by the gateway", func() {
			other := primitive.NewObjectID().Hex()
			req := scoped(prepareRequest(http.MethodGet, fmt.Sprintf("/v1/facilities/%s/queue", facilityId), ""))
			req.Header.Set(api.FacilityIdsHeaderKey, facilityId+", "+other)

			ordersService.EXPECT().
				Queue(test.Match(func(ctx context.Context) bool {
					scope, ok := scoping.ScopeFromContext(ctx)
					return ok && len(scope.FacilityIds) == 2 && scope.FacilityIds[1] == other
				}), facilityId).
				Return([]*orders.Order{}, nil)

			Expect(serve(req).StatusCode).To(Equal(http.StatusOK))
		})
	})

	Describe("Queue", func() {
		It("enqueues an order for the patient", func() {
			patientId := primitive.NewObjectID()
			order := ordersTest.RandomPendingOrder(primitive.NewObjectID(), primitive.NewObjectID(), patientId)
			body := fmt.Sprintf(`{"patientId":%q,"survey":{"noSymptoms":true}}`, patientId.Hex())

			ordersService.EXPECT().
				Enqueue(inScope, facilityId, patientId.Hex(), test.Match(func(s orders.Survey) bool {
					return s.NoSymptoms != nil && *s.NoSymptoms
				})).
				Return(order, nil)

			res := serve(scoped(prepareRequestWithBody(http.MethodPost, fmt.Sprintf("/v1/facilities/%s/queue", facilityId), body)))
			Expect(res.StatusCode).To(Equal(http.StatusOK))

			var created orders.Order
			decode(res, &created)
			Expect(created.Id).To(Equal(order.Id))
			Expect(created.OrderStatus).To(Equal(orders.OrderStatusPending))
		})

		It("responds with conflict when the patient is already queued", func() {
			patientId := primitive.NewObjectID().Hex()
			ordersService.EXPECT().
				Enqueue(gomock.Any(), facilityId, patientId, gomock.Any()).
				Return(nil, orders.DuplicateOrderError{PatientId: patientId})

			body := fmt.Sprintf(`{"patientId":%q}`, patientId)
			res := serve(scoped(prepareRequestWithBody(http.MethodPost, fmt.Sprintf("/v1/facilities/%s/queue", facilityId), body)))
			Expect(res.StatusCode).To(Equal(http.StatusConflict))
		})

		It("rejects a malformed body", func() {
			res := serve(scoped(prepareRequestWithBody(http.MethodPost, fmt.Sprintf("/v1/facilities/%s/queue", facilityId), "{")))
			Expect(res.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("responds with not found when canceling without a pending order", func() {
			patientId := primitive.NewObjectID().Hex()
			ordersService.EXPECT().Cancel(inScope, patientId).Return(nil, orders.NoActiveOrderError{PatientId: patientId})

			res := serve(scoped(prepareRequest(http.MethodDelete, fmt.Sprintf("/v1/patients/%s/queue", patientId), "")))
			Expect(res.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("updates the survey of the pending order", func() {
			patientId := primitive.NewObjectID()
			order := ordersTest.RandomPendingOrder(primitive.NewObjectID(), primitive.NewObjectID(), patientId)
			ordersService.EXPECT().
				UpdateSurvey(inScope, patientId.Hex(), test.Match(func(s orders.Survey) bool {
					return s.Pregnancy != nil && *s.Pregnancy == "no"
				})).
				Return(order, nil)

			res := serve(scoped(prepareRequestWithBody(http.MethodPut, fmt.Sprintf("/v1/patients/%s/queue/survey", patientId.Hex()), `{"pregnancy":"no"}`)))
			Expect(res.StatusCode).To(Equal(http.StatusOK))
		})
	})

	Describe("Cancel all", func() {
		endpoint := func() string {
			return fmt.Sprintf("/v1/organizations/%s/queue/cancel", organizationId)
		}

		It("is forbidden for users who are not site admins", func() {
			req := scoped(prepareRequest(http.MethodPost, endpoint(), ""))
			req.Header.Set(api.UserEmailHeaderKey, "someone@labnet.test")
			Expect(serve(req).StatusCode).To(Equal(http.StatusForbidden))
		})

		It("cancels every pending order for site admins", func() {
			ordersService.EXPECT().CancelAll(gomock.Any(), organizationId).Return(int64(3), nil)

			req := scoped(prepareRequest(http.MethodPost, endpoint(), ""))
			req.Header.Set(api.UserEmailHeaderKey, strings.ToUpper(siteAdminEmail))
			res := serve(req)
			Expect(res.StatusCode).To(Equal(http.StatusOK))

			var response api.CancelAllResponse
			decode(res, &response)
			Expect(response.Canceled).To(Equal(int64(3)))
		})
	})

	Describe("Results", func() {
		It("submits a result for the patient's pending order", func() {
			patientId := primitive.NewObjectID().Hex()
			event := resultsTest.RandomStoredTestEvent(1, time.Now())
			resultsService.EXPECT().
				SubmitResult(inScope, results.Submission{
					FacilityId: facilityId,
					PatientId:  patientId,
					DeviceType: "rapid-antigen",
					Result:     orders.ResultNegative,
				}).
				Return(event, nil)

			body := fmt.Sprintf(`{"patientId":%q,"deviceType":"rapid-antigen","result":"NEGATIVE"}`, patientId)
			res := serve(scoped(prepareRequestWithBody(http.MethodPost, fmt.Sprintf("/v1/facilities/%s/results", facilityId), body)))
			Expect(res.StatusCode).To(Equal(http.StatusOK))

			var created results.TestEvent
			decode(res, &created)
			Expect(created.Id).To(Equal(event.Id))
		})

		It("passes the requested page", func() {
			resultsService.EXPECT().
				ListForFacility(inScope, facilityId, store.Pagination{Offset: 20, Limit: 5}).
				Return([]*results.TestEvent{}, nil)

			res := serve(scoped(prepareRequest(http.MethodGet, fmt.Sprintf("/v1/facilities/%s/results?offset=20&limit=5", facilityId), "")))
			Expect(res.StatusCode).To(Equal(http.StatusOK))
		})

		It("rejects an invalid page", func() {
			res := serve(scoped(prepareRequest(http.MethodGet, fmt.Sprintf("/v1/facilities/%s/results?limit=many", facilityId), "")))
			Expect(res.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("counts the results of the facility", func() {
			resultsService.EXPECT().CountForFacility(inScope, facilityId).Return(int64(7), nil)

			res := serve(scoped(prepareRequest(http.MethodGet, fmt.Sprintf("/v1/facilities/%s/results/count", facilityId), "")))
			Expect(res.StatusCode).To(Equal(http.StatusOK))

			var response api.CountResponse
			decode(res, &response)
			Expect(response.Count).To(Equal(int64(7)))
		})

		It("returns the patient's latest result", func() {
			event := resultsTest.RandomStoredTestEvent(4, time.Now())
			resultsService.EXPECT().LatestForPatient(inScope, event.PatientId.Hex()).Return(event, nil)

			res := serve(scoped(prepareRequest(http.MethodGet, fmt.Sprintf("/v1/patients/%s/results/latest", event.PatientId.Hex()), "")))
			Expect(res.StatusCode).To(Equal(http.StatusOK))
		})

		It("corrects a result with the trimmed reason", func() {
			event := resultsTest.RandomStoredTestEvent(5, time.Now())
			resultsService.EXPECT().Correct(inScope, "event-id", "wrong patient").Return(event, nil)

			res := serve(scoped(prepareRequestWithBody(http.MethodPost, "/v1/results/event-id/corrections", `{"reason":"  wrong patient "}`)))
			Expect(res.StatusCode).To(Equal(http.StatusOK))
		})

		It("responds with conflict when the result was already removed", func() {
			resultsService.EXPECT().Correct(gomock.Any(), "event-id", "again").Return(nil, results.AlreadyRemovedError{TestEventId: "event-id"})

			res := serve(scoped(prepareRequestWithBody(http.MethodPost, "/v1/results/event-id/corrections", `{"reason":"again"}`)))
			Expect(res.StatusCode).To(Equal(http.StatusConflict))
		})

		It("downloads the facility results report", func() {
			facility := facilitiesTest.RandomFacility(primitive.NewObjectID())
			gate.EXPECT().FacilityInCurrentOrg(inScope, facilityId).Return(facility, nil)
			resultsService.EXPECT().ListForFacility(gomock.Any(), facilityId, gomock.Any()).Return([]*results.TestEvent{}, nil)

			res := serve(scoped(prepareRequest(http.MethodGet, fmt.Sprintf("/v1/facilities/%s/results/report.xlsx", facilityId), "")))
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(res.Header.Get(echo.HeaderContentType)).To(Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
			Expect(res.Header.Get(echo.HeaderContentDisposition)).To(ContainSubstring(".xlsx"))
		})
	})

	Describe("Summary", func() {
		It("reports a failed filter alongside the others", func() {
			race := "asian"
			since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			summaryService.EXPECT().
				Summarize(inScope, facilityId, gomock.Len(2), test.Match(func(s *time.Time) bool {
					return s != nil && s.Equal(since)
				})).
				Return([]*summary.Summary{
					{Description: "all patients", TotalTests: 10, PositiveTests: 3, PercentPositive: 30},
					{Filter: &persons.Demographic{Race: &race}, Description: "race is asian", Err: fmt.Errorf("lookup failed")},
				}, nil)

			body := `{"filters":[{},{"race":"asian"}],"since":"2024-01-01T00:00:00Z"}`
			res := serve(scoped(prepareRequestWithBody(http.MethodPost, fmt.Sprintf("/v1/facilities/%s/summary", facilityId), body)))
			Expect(res.StatusCode).To(Equal(http.StatusOK))

			var response []map[string]interface{}
			decode(res, &response)
			Expect(response).To(HaveLen(2))
			Expect(response[0]["percentPositive"]).To(BeNumerically("==", 30))
			Expect(response[0]).ToNot(HaveKey("error"))
			Expect(response[1]["error"]).To(Equal("lookup failed"))
		})

		It("returns the demographic values in use", func() {
			summaryService.EXPECT().DemographicValues(inScope, facilityId).Return(&summary.DemographicValues{
				Races: []summary.ValueCount{{Value: "white", Count: 2}},
			}, nil)

			res := serve(scoped(prepareRequest(http.MethodGet, fmt.Sprintf("/v1/facilities/%s/demographics", facilityId), "")))
			Expect(res.StatusCode).To(Equal(http.StatusOK))
		})
	})

	Describe("Self-service", func() {
		It("verifies a link without a scope", func() {
			person := personsTest.RandomPerson(primitive.NewObjectID())
			selfService.EXPECT().VerifyLink(gomock.Any(), "link", person.BirthDate).Return(&selfservice.Verification{
				Person:      person,
				OrderStatus: orders.OrderStatusPending,
			}, nil)

			body := fmt.Sprintf(`{"linkId":"link","birthDate":%q}`, person.BirthDate)
			res := serve(prepareRequestWithBody(http.MethodPut, "/v1/pxp/link/verify", body))
			Expect(res.StatusCode).To(Equal(http.StatusOK))

			var verification selfservice.Verification
			decode(res, &verification)
			Expect(verification.OrderStatus).To(Equal(orders.OrderStatusPending))
		})

		It("responds with gone for an expired link", func() {
			selfService.EXPECT().VerifyLink(gomock.Any(), "link", "2000-01-01").Return(nil, patientlinks.ExpiredLinkError{LinkId: "link"})

			res := serve(prepareRequestWithBody(http.MethodPut, "/v1/pxp/link/verify", `{"linkId":"link","birthDate":"2000-01-01"}`))
			Expect(res.StatusCode).To(Equal(http.StatusGone))
		})

		It("responds with unauthorized for a wrong birth date", func() {
			selfService.EXPECT().VerifyLink(gomock.Any(), "link", "2000-01-01").Return(nil, selfservice.ErrBirthDateMismatch)

			res := serve(prepareRequestWithBody(http.MethodPut, "/v1/pxp/link/verify", `{"linkId":"link","birthDate":"2000-01-01"}`))
			Expect(res.StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("submits the survey with the delivery preference", func() {
			selfService.EXPECT().
				SubmitSurvey(gomock.Any(), test.Match(func(s selfservice.SurveySubmission) bool {
					return s.LinkId == "link" && s.DeliveryPreference != nil && *s.DeliveryPreference == persons.DeliveryPreferenceEmail
				})).
				Return(&selfservice.Verification{OrderStatus: orders.OrderStatusPending}, nil)

			body := `{"linkId":"link","birthDate":"2000-01-01","survey":{"noSymptoms":true},"testResultDelivery":"EMAIL"}`
			res := serve(prepareRequestWithBody(http.MethodPut, "/v1/pxp/questions", body))
			Expect(res.StatusCode).To(Equal(http.StatusOK))
		})
	})

	It("hides internal errors", func() {
		ordersService.EXPECT().Queue(gomock.Any(), facilityId).Return(nil, fmt.Errorf("socket closed"))

		res := serve(scoped(prepareRequest(http.MethodGet, fmt.Sprintf("/v1/facilities/%s/queue", facilityId), "")))
		Expect(res.StatusCode).To(Equal(http.StatusInternalServerError))
		body, _ := io.ReadAll(res.Body)
		Expect(string(body)).To(ContainSubstring(errors.InternalServerError.Error()))
		Expect(string(body)).ToNot(ContainSubstring("socket"))
	})
})
