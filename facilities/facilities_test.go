package facilities_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gstruct"
	"go.mongodb.org/mongo-driver/bson/primitive"

	errs "github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/facilities"
	facilitiesTest "github.com/labnet/testledger/facilities/test"
)

var _ = Describe("Facility", func() {
	var facility *facilities.Facility

	BeforeEach(func() {
		facility = facilitiesTest.RandomFacility(primitive.NewObjectID())
	})

	It("matches device types case insensitively", func() {
		Expect(facility.HasDeviceType(strings.ToUpper(facility.DeviceTypes[0]))).To(BeTrue())
		Expect(facility.HasDeviceType("Unknown Device")).To(BeFalse())
	})

	It("does not add a device type twice", func() {
		facility.AddDeviceType(strings.ToLower(facility.DeviceTypes[1]))
		Expect(facility.DeviceTypes).To(HaveLen(2))
	})

	It("ignores empty device types", func() {
		facility.AddDeviceType("")
		Expect(facility.DeviceTypes).To(HaveLen(2))
	})

	It("clears the default when the default device type is removed", func() {
		facility.RemoveDeviceType(*facility.DefaultDeviceType)
		Expect(facility.DeviceTypes).To(HaveLen(1))
		Expect(facility.DefaultDeviceType).To(BeNil())
	})

	It("keeps the default when another device type is removed", func() {
		defaultDeviceType := *facility.DefaultDeviceType
		facility.RemoveDeviceType(facility.DeviceTypes[1])
		Expect(facility.DeviceTypes).To(ConsistOf(defaultDeviceType))
		Expect(facility.DefaultDeviceType).To(PointTo(Equal(defaultDeviceType)))
	})

	It("adds a new default device type to the configured set", func() {
		deviceType := "Acme Rapid"
		facility.SetDefaultDeviceType(&deviceType)
		Expect(facility.DeviceTypes).To(HaveLen(3))
		Expect(facility.HasDeviceType(deviceType)).To(BeTrue())
		Expect(facility.DefaultDeviceType).To(PointTo(Equal(deviceType)))
	})

	It("clears the default when an empty default is set", func() {
		empty := ""
		facility.SetDefaultDeviceType(&empty)
		Expect(facility.DefaultDeviceType).To(BeNil())
		Expect(facility.DeviceTypes).To(HaveLen(2))
	})

	Describe("Validate", func() {
		It("accepts a valid facility", func() {
			Expect(facility.Validate()).To(Succeed())
		})

		It("requires a name", func() {
			facility.Name = "  "
			Expect(facility.Validate()).To(MatchError(errs.BadRequest))
		})

		It("requires an organization", func() {
			facility.OrganizationId = primitive.NilObjectID
			Expect(facility.Validate()).To(MatchError(errs.BadRequest))
		})

		It("rejects a default outside of the configured set", func() {
			deviceType := "Acme Rapid"
			facility.DefaultDeviceType = &deviceType
			Expect(facility.Validate()).To(MatchError(errs.ConstraintViolation))
		})

		It("limits the number of device types", func() {
			for i := 0; i <= facilities.MaxDeviceTypesPerFacility; i++ {
				facility.DeviceTypes = append(facility.DeviceTypes, primitive.NewObjectID().Hex())
			}
			Expect(facility.Validate()).To(MatchError(facilities.ErrTooManyDeviceTypes))
		})
	})
})
