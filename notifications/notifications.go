package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	colorAlert = "#FF0000"
	colorInfo  = "#36A64F"
)

//go:generate mockgen --build_flags=--mod=mod -source=./notifications.go -destination=./test/mock_notifications.go -package test

// Notifier delivers operational messages to the team channel
type Notifier interface {
	Notify(ctx context.Context, message Message) error
}

type Message struct {
	Title string
	Lines []string
	Alert bool
}

func (m Message) Text() string {
	return strings.Join(m.Lines, "\n")
}

type Config struct {
	SlackWebhookUrl string        `envconfig:"TESTLEDGER_SLACK_WEBHOOK_URL"`
	SlackChannel    string        `envconfig:"TESTLEDGER_SLACK_CHANNEL"`
	Timeout         time.Duration `envconfig:"TESTLEDGER_SLACK_TIMEOUT" default:"10s"`
}

func NewConfig() (Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	return cfg, err
}

func NewNotifier(cfg Config, logger *zap.SugaredLogger) Notifier {
	if !strings.HasPrefix(cfg.SlackWebhookUrl, "https://") {
		logger.Warnw("slack webhook url is not configured, notifications will only be logged")
		return NewLogNotifier(logger)
	}
	return NewSlackNotifier(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

type SlackNotifier struct {
	webhookUrl string
	channel    string
	client     *http.Client
	logger     *zap.SugaredLogger
}

func NewSlackNotifier(cfg Config, client *http.Client, logger *zap.SugaredLogger) *SlackNotifier {
	return &SlackNotifier{
		webhookUrl: cfg.SlackWebhookUrl,
		channel:    cfg.SlackChannel,
		client:     client,
		logger:     logger,
	}
}

func (s *SlackNotifier) Notify(ctx context.Context, message Message) error {
	color := colorInfo
	if message.Alert {
		color = colorAlert
	}

	payload := map[string]interface{}{
		"attachments": []map[string]interface{}{
			{
				"color":  color,
				"title":  message.Title,
				"text":   message.Text(),
				"footer": "testledger",
			},
		},
	}
	if s.channel != "" {
		payload["channel"] = s.channel
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookUrl, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to send slack notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("slack returned status %d", resp.StatusCode)
	}

	s.logger.Debugw("sent slack notification", "title", message.Title)
	return nil
}

type LogNotifier struct {
	logger *zap.SugaredLogger
}

func NewLogNotifier(logger *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(_ context.Context, message Message) error {
	if message.Alert {
		l.logger.Warnw(message.Title, "message", message.Text())
	} else {
		l.logger.Infow(message.Title, "message", message.Text())
	}
	return nil
}

var Module = fx.Provide(
	NewConfig,
	NewNotifier,
)
