package export

import (
	"context"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/results"
	"github.com/labnet/testledger/store"
)

const CollectionName = "sync_runs"

var ErrNoWatermark = fmt.Errorf("successful export run %w", errors.NotFound)

type Config struct {
	Enabled        bool          `envconfig:"TESTLEDGER_EXPORT_ENABLED" default:"false"`
	Interval       time.Duration `envconfig:"TESTLEDGER_EXPORT_INTERVAL" default:"15m"`
	MaxBatchSize   int           `envconfig:"TESTLEDGER_EXPORT_MAX_BATCH_SIZE" default:"999"`
	TrailingBuffer time.Duration `envconfig:"TESTLEDGER_EXPORT_TRAILING_BUFFER" default:"1m"`
	LockName       string        `envconfig:"TESTLEDGER_EXPORT_LOCK_NAME" default:"export"`
	LockTTL        time.Duration `envconfig:"TESTLEDGER_EXPORT_LOCK_TTL" default:"10m"`
	ArchiveTimeout time.Duration `envconfig:"TESTLEDGER_EXPORT_ARCHIVE_TIMEOUT" default:"1m"`
}

func NewConfig() (Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	return cfg, err
}

//go:generate mockgen --build_flags=--mod=mod -source=./export.go -destination=./test/mock_export.go -package test

type Repository interface {
	// LatestSuccess returns the most recent successful run or ErrNoWatermark
	LatestSuccess(ctx context.Context) (*Run, error)
	Start(ctx context.Context, startedTime time.Time, watermark Watermark) (*Run, error)
	MarkRowCount(ctx context.Context, id primitive.ObjectID, count int, latest Watermark) error
	Finish(ctx context.Context, id primitive.ObjectID, completion Completion) (*Run, error)
	Seed(ctx context.Context, at time.Time) (*Run, error)
	List(ctx context.Context, pagination store.Pagination) ([]*Run, error)
}

// EventSource lists ledger events in creation order
type EventSource interface {
	ListWindow(ctx context.Context, window results.Window) ([]*results.TestEvent, error)
}

type RunStatus string

const (
	RunStatusRunning RunStatus = "RUNNING"
	RunStatusSuccess RunStatus = "SUCCESS"
	RunStatusFailed  RunStatus = "FAILED"
)

type RunOutcome string

const (
	OutcomeDisabled        RunOutcome = "disabled"
	OutcomeMisconfigured   RunOutcome = "misconfigured"
	OutcomeLockUnavailable RunOutcome = "lock_unavailable"
	OutcomeNoWatermark     RunOutcome = "no_watermark"
	OutcomeSucceeded       RunOutcome = "succeeded"
	OutcomeFailed          RunOutcome = "failed"
)

// Watermark is the position of the last exported event. Sequence breaks ties
// between events created in the same millisecond.
type Watermark struct {
	Time     time.Time
	Sequence int64
}

func (w Watermark) String() string {
	return fmt.Sprintf("%s#%d", w.Time.UTC().Format(time.RFC3339Nano), w.Sequence)
}

type Run struct {
	Id                       *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StartedTime              time.Time           `bson:"startedTime" json:"startedTime"`
	EarliestRecordedTime     time.Time           `bson:"earliestRecordedTime" json:"earliestRecordedTime"`
	EarliestRecordedSequence int64               `bson:"earliestRecordedSequence" json:"earliestRecordedSequence"`
	LatestRecordedTime       *time.Time          `bson:"latestRecordedTime,omitempty" json:"latestRecordedTime,omitempty"`
	LatestRecordedSequence   int64               `bson:"latestRecordedSequence" json:"latestRecordedSequence"`
	RecordsProcessed         int                 `bson:"recordsProcessed" json:"recordsProcessed"`
	Status                   RunStatus           `bson:"status" json:"status"`
	ResponseData             string              `bson:"responseData,omitempty" json:"responseData,omitempty"`
	ErrorMessage             string              `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	Warning                  string              `bson:"warning,omitempty" json:"warning,omitempty"`
	ArchiveKey               string              `bson:"archiveKey,omitempty" json:"archiveKey,omitempty"`
	FinishedTime             *time.Time          `bson:"finishedTime,omitempty" json:"finishedTime,omitempty"`
}

// Watermark is the position the next run starts after
func (r *Run) Watermark() Watermark {
	if r.LatestRecordedTime == nil {
		return Watermark{Time: r.EarliestRecordedTime, Sequence: r.EarliestRecordedSequence}
	}
	return Watermark{Time: *r.LatestRecordedTime, Sequence: r.LatestRecordedSequence}
}

// Completion is the terminal state of a run
type Completion struct {
	Status           RunStatus
	Latest           Watermark
	RecordsProcessed int
	ResponseData     string
	ErrorMessage     string
	Warning          string
	ArchiveKey       string
	FinishedTime     time.Time
}
