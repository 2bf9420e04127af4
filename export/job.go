package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/labnet/testledger/export/archive"
	"github.com/labnet/testledger/export/lock"
	"github.com/labnet/testledger/export/registry"
	"github.com/labnet/testledger/notifications"
	"github.com/labnet/testledger/results"
	"github.com/labnet/testledger/store"
)

const fullBatchWarning = "More rows were found than can be uploaded in a single batch."

type Params struct {
	fx.In

	Archiver   archive.Archiver
	Config     Config
	Events     results.Repository
	Locker     lock.Locker
	Logger     *zap.SugaredLogger
	Metrics    *Metrics
	Notifier   notifications.Notifier
	Repository Repository
	Uploader   registry.Uploader
}

// Job delivers new ledger events to the registry in batches. Every run starts
// after the watermark of the last successful run.
type Job struct {
	archiver archive.Archiver
	config   Config
	events   EventSource
	locker   lock.Locker
	logger   *zap.SugaredLogger
	metrics  *Metrics
	notifier notifications.Notifier
	repo     Repository
	uploader registry.Uploader

	now func() time.Time
}

func NewJob(p Params) *Job {
	return &Job{
		archiver: p.Archiver,
		config:   p.Config,
		events:   p.Events,
		locker:   p.Locker,
		logger:   p.Logger,
		metrics:  p.Metrics,
		notifier: p.Notifier,
		repo:     p.Repository,
		uploader: p.Uploader,
		now:      store.Now,
	}
}

// Run performs a single export run. Failures are recorded on the run and
// reported through the notifier.
func (j *Job) Run(ctx context.Context) RunOutcome {
	outcome := j.run(ctx)
	j.metrics.Runs.WithLabelValues(string(outcome)).Inc()
	return outcome
}

// ConfigurationProblems returns every problem that prevents the job from exporting
func (j *Job) ConfigurationProblems() []string {
	return j.uploader.Validate()
}

func (j *Job) run(ctx context.Context) RunOutcome {
	if !j.config.Enabled {
		j.logger.Warnw("export not running because it is disabled")
		return OutcomeDisabled
	}

	if problems := j.ConfigurationProblems(); len(problems) > 0 {
		j.notify(ctx, notifications.Message{Title: "Export not run", Lines: problems, Alert: true})
		return OutcomeMisconfigured
	}

	lease, acquired, err := j.locker.TryLock(ctx, j.config.LockName, j.config.LockTTL)
	if err != nil {
		j.logger.Errorw("unable to acquire export lock", "error", err)
		return OutcomeLockUnavailable
	}
	if !acquired {
		j.logger.Infow("export locked out by another instance")
		return OutcomeLockUnavailable
	}
	defer func() {
		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			j.logger.Warnw("unable to release export lock", "error", err)
		}
	}()
	j.logger.Infow("export lock obtained, commencing export", "owner", lease.Owner())

	// No work may continue once the lease can be taken over by another instance
	ctx, cancel := context.WithTimeout(ctx, j.config.LockTTL)
	defer cancel()

	latest, err := j.repo.LatestSuccess(ctx)
	if errors.Is(err, ErrNoWatermark) {
		j.logger.Errorw("no successful export run found, seed a watermark before exporting")
		j.notify(ctx, notifications.Message{
			Title: "Export not run",
			Lines: []string{"No successful export run found. Seed a watermark to start exporting."},
			Alert: true,
		})
		return OutcomeNoWatermark
	} else if err != nil {
		j.logger.Errorw("unable to fetch export watermark", "error", err)
		return OutcomeFailed
	}

	watermark := latest.Watermark()
	run, err := j.repo.Start(ctx, j.now(), watermark)
	if err != nil {
		j.logger.Errorw("unable to start export run", "error", err)
		return OutcomeFailed
	}

	return j.export(ctx, run, watermark)
}

func (j *Job) export(ctx context.Context, run *Run, watermark Watermark) RunOutcome {
	logger := j.logger.With("runId", run.Id.Hex(), "watermark", watermark.String())

	events, err := j.events.ListWindow(ctx, results.Window{
		After:         watermark.Time,
		AfterSequence: watermark.Sequence,
		Until:         run.StartedTime.Add(-j.config.TrailingBuffer),
		Limit:         j.config.MaxBatchSize,
	})
	if err != nil {
		return j.fail(ctx, logger, run, Completion{Latest: watermark}, err)
	}

	if len(events) == 0 {
		logger.Infow("no new test events since the previous successful export")
		if _, err := j.finish(ctx, run, Completion{Status: RunStatusSuccess, Latest: watermark}); err != nil {
			logger.Errorw("unable to finish export run", "error", err)
			return OutcomeFailed
		}
		return OutcomeSucceeded
	}

	completion := Completion{
		Latest:           watermarkOf(events[len(events)-1]),
		RecordsProcessed: len(events),
	}
	if len(events) >= j.config.MaxBatchSize {
		completion.Warning = fullBatchWarning
		logger.Warnw(fullBatchWarning, "maxBatchSize", j.config.MaxBatchSize)
	}

	if err := j.repo.MarkRowCount(ctx, *run.Id, completion.RecordsProcessed, completion.Latest); err != nil {
		return j.fail(ctx, logger, run, completion, err)
	}

	data, err := WriteCSV(events)
	if err != nil {
		return j.fail(ctx, logger, run, completion, fmt.Errorf("unable to serialize export: %w", err))
	}

	if key, err := j.archive(ctx, run, data); err != nil {
		logger.Warnw("unable to archive export file", "error", err)
	} else {
		completion.ArchiveKey = key
	}

	timer := prometheus.NewTimer(j.metrics.UploadDuration)
	response, err := j.uploader.Upload(ctx, data)
	timer.ObserveDuration()
	if response != nil {
		completion.ResponseData = response.Raw
	}
	if err != nil {
		return j.fail(ctx, logger, run, completion, err)
	}

	completion.Status = RunStatusSuccess
	finished, err := j.finish(ctx, run, completion)
	if err != nil {
		// The registry has the rows but the watermark did not move. The next run resends them.
		logger.Errorw("unable to finish export run after upload", "error", err)
		return OutcomeFailed
	}

	j.metrics.Rows.Add(float64(completion.RecordsProcessed))
	j.metrics.Watermark.Set(float64(completion.Latest.Time.UnixMilli()) / 1000)
	logger.Infow("export succeeded", "records", completion.RecordsProcessed, "latest", completion.Latest.String())

	j.notify(ctx, resultMessage(finished))
	return OutcomeSucceeded
}

func (j *Job) archive(ctx context.Context, run *Run, data []byte) (string, error) {
	if j.config.ArchiveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.config.ArchiveTimeout)
		defer cancel()
	}
	return j.archiver.Archive(ctx, run.Id.Hex(), run.StartedTime, data)
}

func (j *Job) fail(ctx context.Context, logger *zap.SugaredLogger, run *Run, completion Completion, cause error) RunOutcome {
	logger.Errorw("export failed", "error", cause)

	completion.Status = RunStatusFailed
	completion.ErrorMessage = cause.Error()
	finished, err := j.finish(ctx, run, completion)
	if err != nil {
		logger.Errorw("unable to record failed export run", "error", err)
		finished = run
		finished.Status = RunStatusFailed
		finished.ErrorMessage = completion.ErrorMessage
	}

	j.notify(ctx, resultMessage(finished))
	return OutcomeFailed
}

func (j *Job) finish(ctx context.Context, run *Run, completion Completion) (*Run, error) {
	completion.FinishedTime = j.now()
	return j.repo.Finish(context.WithoutCancel(ctx), *run.Id, completion)
}

func (j *Job) notify(ctx context.Context, message notifications.Message) {
	if err := j.notifier.Notify(context.WithoutCancel(ctx), message); err != nil {
		j.logger.Warnw("unable to send export notification", "title", message.Title, "error", err)
	}
}

// SeedWatermark records a successful empty run so the next run exports
// events created at or after the given time
func (j *Job) SeedWatermark(ctx context.Context, at time.Time) (*Run, error) {
	run, err := j.repo.Seed(ctx, at)
	if err != nil {
		return nil, err
	}
	j.logger.Infow("seeded export watermark", "runId", run.Id.Hex(), "watermark", run.Watermark().String())
	return run, nil
}

func watermarkOf(event *results.TestEvent) Watermark {
	return Watermark{Time: event.CreatedTime, Sequence: event.Sequence}
}

func resultMessage(run *Run) notifications.Message {
	lines := []string{
		fmt.Sprintf("Result: `%s`", run.Status),
		fmt.Sprintf("RecordsProcessed: %d", run.RecordsProcessed),
		fmt.Sprintf("EarliestTimestamp: %s", formatTimestamp(&run.EarliestRecordedTime)),
		fmt.Sprintf("LatestTimestamp: %s", formatTimestamp(run.LatestRecordedTime)),
	}
	if run.ErrorMessage != "" {
		lines = append(lines, fmt.Sprintf("ErrorMessage: %s", run.ErrorMessage))
	}
	if run.Warning != "" {
		lines = append(lines, fmt.Sprintf("Warning: %s", run.Warning))
	}
	if run.ResponseData != "" {
		lines = append(lines, fmt.Sprintf("ResponseData: ```%s```", run.ResponseData))
	}

	return notifications.Message{
		Title: "Export result",
		Lines: lines,
		Alert: run.Status != RunStatusSuccess,
	}
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return "none"
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
