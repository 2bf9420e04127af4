package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	maxResponseBytes = 1 << 20
	missingPrefix    = "MISSING"
)

//go:generate mockgen --build_flags=--mod=mod -source=./registry.go -destination=./test/mock_registry.go -package test

// Uploader delivers an export file to the public health registry
type Uploader interface {
	// Validate returns a description of every configuration problem that would prevent an upload
	Validate() []string
	Upload(ctx context.Context, data []byte) (*Response, error)
}

type Config struct {
	Url        string        `envconfig:"TESTLEDGER_REGISTRY_URL"`
	ApiKey     string        `envconfig:"TESTLEDGER_REGISTRY_API_KEY" default:"MISSING"`
	ApiVersion string        `envconfig:"TESTLEDGER_REGISTRY_API_VERSION" default:"2021-01-01"`
	ClientName string        `envconfig:"TESTLEDGER_REGISTRY_CLIENT_NAME" default:"testledger"`
	Timeout    time.Duration `envconfig:"TESTLEDGER_REGISTRY_TIMEOUT" default:"60s"`

	ClientId     string `envconfig:"TESTLEDGER_REGISTRY_CLIENT_ID"`
	ClientSecret string `envconfig:"TESTLEDGER_REGISTRY_CLIENT_SECRET"`
	TokenUrl     string `envconfig:"TESTLEDGER_REGISTRY_TOKEN_URL"`
}

func NewConfig() (Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	return cfg, err
}

func (c Config) OAuthEnabled() bool {
	return c.ClientId != "" && c.ClientSecret != "" && c.TokenUrl != ""
}

// Response is the registry's reply to an upload. Raw is kept verbatim on the run record.
type Response struct {
	Raw     string
	Summary Summary
}

type Summary struct {
	ReportId        string        `mapstructure:"id"`
	Timestamp       string        `mapstructure:"timestamp"`
	ReportItemCount int           `mapstructure:"reportItemCount"`
	Errors          []interface{} `mapstructure:"errors"`
	Warnings        []interface{} `mapstructure:"warnings"`
}

type Client struct {
	config     Config
	httpClient *http.Client
	auth       *authenticator
	logger     *zap.SugaredLogger
}

func NewClient(cfg Config, logger *zap.SugaredLogger) *Client {
	return NewClientWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

func NewClientWithHTTPClient(cfg Config, httpClient *http.Client, logger *zap.SugaredLogger) *Client {
	client := &Client{
		config:     cfg,
		httpClient: httpClient,
		logger:     logger,
	}
	if cfg.OAuthEnabled() {
		client.auth = newAuthenticator(cfg)
	}
	return client
}

func (c *Client) Validate() []string {
	var problems []string
	if c.config.ApiKey == "" || strings.HasPrefix(c.config.ApiKey, missingPrefix) {
		problems = append(problems, "Registry API key is not configured.")
	}
	if !strings.HasPrefix(c.config.Url, "https://") {
		problems = append(problems, "Registry upload URL is not configured.")
	}
	return problems
}

func (c *Client) Upload(ctx context.Context, data []byte) (*Response, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set("x-functions-key", c.config.ApiKey)
	req.Header.Set("client", c.config.ClientName)
	req.Header.Set("x-api-version", c.config.ApiVersion)

	if c.auth != nil {
		token, err := c.auth.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("unable to obtain registry token: %w", err)
		}
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", token.AccessToken))
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry upload failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("unable to read registry response: %w", err)
	}

	response := &Response{Raw: string(body)}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return response, &UploadError{StatusCode: res.StatusCode, Body: response.Raw}
	}

	summary, err := decodeSummary(body)
	if err != nil {
		c.logger.Warnw("unable to decode registry response", "error", err)
	} else {
		response.Summary = summary
	}

	return response, nil
}

func decodeSummary(body []byte) (Summary, error) {
	summary := Summary{}
	if len(bytes.TrimSpace(body)) == 0 {
		return summary, nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return summary, err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &summary,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return summary, err
	}

	err = decoder.Decode(raw)
	return summary, err
}

type UploadError struct {
	StatusCode int
	Body       string
}

func (u *UploadError) Error() string {
	return fmt.Sprintf("registry responded with status %d", u.StatusCode)
}

var _ Uploader = &Client{}

var Module = fx.Options(
	fx.Provide(NewConfig),
	fx.Provide(fx.Annotate(NewClient, fx.As(new(Uploader)))),
)
