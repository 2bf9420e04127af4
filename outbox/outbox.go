package outbox

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CollectionName = "outbox"

// EventType identifies the kind of event
type EventType string

const (
	EventTypeSendTestResult EventType = "sendTestResult"
)

// Event is the common envelope for all outbox events. Events are written in
// the same transaction as the state change that produced them and are
// consumed by the external delivery dispatcher.
type Event struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty"`
	EventType   EventType           `bson:"eventType"`
	CreatedTime time.Time           `bson:"createdTime"`
	Payload     bson.Raw            `bson:"payload"`
}

// SendTestResultPayload is the payload for sendTestResult events. It carries
// contact details and a link id only, never result data.
type SendTestResultPayload struct {
	OrganizationId     string `bson:"organizationId"`
	FacilityName       string `bson:"facilityName"`
	PatientId          string `bson:"patientId"`
	TestEventId        string `bson:"testEventId"`
	PatientLinkId      string `bson:"patientLinkId"`
	DeliveryPreference string `bson:"deliveryPreference"`
	Phone              string `bson:"phone,omitempty"`
	Email              string `bson:"email,omitempty"`
}

//go:generate mockgen --build_flags=--mod=mod -source=./outbox.go -destination=./test/mock_outbox.go -package test

type Repository interface {
	Create(ctx context.Context, event Event) error
	Initialize(ctx context.Context) error
}

// NewEvent creates an Event from a typed payload
func NewEvent(eventType EventType, payload interface{}) (Event, error) {
	raw, err := bson.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("error marshaling outbox event payload: %w", err)
	}

	return Event{
		EventType:   eventType,
		CreatedTime: time.Now(),
		Payload:     bson.Raw(raw),
	}, nil
}

// DecodePayload unmarshals the event payload into v
func (e Event) DecodePayload(v interface{}) error {
	if err := bson.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("error unmarshaling outbox event payload: %w", err)
	}
	return nil
}
