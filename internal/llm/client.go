// Package llm is the response-orchestration layer between typed domain
// requests and the generative chat-completions endpoint. It builds prompts,
// invokes the endpoint through a resilient transport pipeline, recovers JSON
// from free-form completions, and validates the result against per-operation
// schemas before anything reaches a caller.
//
// Data flows strictly one way: typed request, prompt parts, transport call,
// raw completion, recovered JSON, validated domain object. Every entity is
// created and discarded within a single orchestration call; there is no
// cache, no persistence, and no shared state between calls.
package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/astroforge/astroforge/internal/domain"
	llmerrors "github.com/astroforge/astroforge/internal/llm/errors"
	"github.com/astroforge/astroforge/internal/llm/retry"
	"github.com/astroforge/astroforge/internal/llm/transport"
)

// Defaults applied by NewClient for zero-value config fields.
const (
	DefaultEndpoint    = "https://api.openai.com/v1/chat/completions"
	DefaultModel       = "gpt-4o-mini"
	DefaultVisionModel = "gpt-4o-mini"

	// Wall-clock budgets per call. Vision calls carry larger payloads and
	// get the longer budget.
	DefaultTextTimeout   = 90 * time.Second
	DefaultVisionTimeout = 150 * time.Second
)

// Sampling parameters per operation kind, matching the product's tuning.
const (
	insightsTemperature = 0.7
	insightsMaxTokens   = 2000

	astrologyTemperature = 0.7
	astrologyMaxTokens   = 2000

	palmTemperature = 0.7
	palmMaxTokens   = 1000

	analysisTemperature = 0.78
	analysisMaxTokens   = 4096
)

// Config carries everything a Client needs, passed explicitly at
// construction. Nothing is read from the process environment at import time,
// so independently-configured clients can coexist in one process.
type Config struct {
	// Endpoint is the chat-completions URL of the generative service.
	Endpoint string

	// APIKey is the bearer credential. An empty key makes every orchestration
	// fail fast with a configuration error before any network I/O.
	APIKey string

	// Model handles text-only operations.
	Model string

	// VisionModel handles multi-modal operations. When unset, a known
	// vision-capable default is substituted (logged, never silent).
	VisionModel string

	TextTimeout   time.Duration
	VisionTimeout time.Duration

	// Retry is the explicit retry policy; the default is a single attempt.
	Retry retry.Config

	// HTTPClient overrides the transport's HTTP client, mainly for tests.
	HTTPClient *http.Client

	// Logger receives the per-call log lines. Defaults to slog.Default().
	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.TextTimeout <= 0 {
		c.TextTimeout = DefaultTextTimeout
	}
	if c.VisionTimeout <= 0 {
		c.VisionTimeout = DefaultVisionTimeout
	}
	if c.Retry == (retry.Config{}) {
		c.Retry = retry.DefaultConfig()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Client orchestrates generative operations. It is stateless per call and
// safe for unbounded concurrent use; concurrency is limited only by the
// caller and the endpoint's own rate limits.
type Client struct {
	cfg     Config
	handler transport.Handler
	logger  *slog.Logger
}

// NewClient builds an orchestrator from explicit configuration.
func NewClient(cfg Config) (*Client, error) {
	cfg.applyDefaults()

	retryMW, err := retry.NewMiddleware(cfg.Retry)
	if err != nil {
		return nil, err
	}

	core := transport.NewHTTPHandler(cfg.HTTPClient, cfg.Endpoint, cfg.APIKey)
	handler := transport.Chain(core, retryMW, NewLoggingMiddleware(cfg.Logger))

	return &Client{
		cfg:     cfg,
		handler: handler,
		logger:  cfg.Logger.With("component", "orchestrator"),
	}, nil
}

// GenerateInsights produces the validated growth-strategy document for one
// creator, plus the locally-derived feasibility score when the request
// carries a target and timeline.
func (c *Client) GenerateInsights(ctx context.Context, req *domain.InsightsRequest) (*domain.InsightsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	obj, err := c.run(ctx, domain.OpInsights, buildInsightsPrompt(req),
		c.cfg.Model, insightsTemperature, insightsMaxTokens, c.cfg.TextTimeout)
	if err != nil {
		return nil, err
	}

	var resp domain.InsightsResponse
	if err := decode(obj, &resp); err != nil {
		return nil, err
	}

	if req.TargetFollowers > 0 && req.TimelineMonths > 0 && req.Followers > 0 {
		score := feasibilityScore(req.Followers, req.TargetFollowers, req.TimelineMonths)
		resp.FeasibilityScore = &score
	}
	return &resp, nil
}

// GenerateAstrology produces the validated zodiac reading. The sun sign in
// the response always echoes the requested sign.
func (c *Client) GenerateAstrology(ctx context.Context, req *domain.AstrologyRequest) (*domain.AstrologyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	obj, err := c.run(ctx, domain.OpAstrology, buildAstrologyPrompt(req),
		c.cfg.Model, astrologyTemperature, astrologyMaxTokens, c.cfg.TextTimeout)
	if err != nil {
		return nil, err
	}

	var resp domain.AstrologyResponse
	if err := decode(obj, &resp); err != nil {
		return nil, err
	}
	resp.SunSign = string(req.Zodiac)
	return &resp, nil
}

// AnalyzePalm produces the validated standalone palm reading from an
// uploaded palm image. Attachment bounds are enforced locally before any
// network call.
func (c *Client) AnalyzePalm(ctx context.Context, image []byte) (*domain.PalmResponse, error) {
	if err := checkAttachment(image); err != nil {
		return nil, err
	}

	obj, err := c.run(ctx, domain.OpPalm, buildPalmPrompt(imageDataURL(image)),
		c.visionModel(), palmTemperature, palmMaxTokens, c.cfg.VisionTimeout)
	if err != nil {
		return nil, err
	}

	var resp domain.PalmResponse
	if err := decode(obj, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AnalyzeCreator produces the combined astrology + palm + strategy reading
// from a palm image and the full creator profile.
func (c *Client) AnalyzeCreator(ctx context.Context, req *domain.CreatorAnalysisRequest, image []byte) (*domain.CreatorAnalysisResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := checkAttachment(image); err != nil {
		return nil, err
	}

	obj, err := c.run(ctx, domain.OpCreatorAnalysis, buildCreatorAnalysisPrompt(req, imageDataURL(image)),
		c.visionModel(), analysisTemperature, analysisMaxTokens, c.cfg.VisionTimeout)
	if err != nil {
		return nil, err
	}

	var resp domain.CreatorAnalysisResponse
	if err := decode(obj, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// run chains prompt transport, extraction, and validation for one operation.
// The first failure short-circuits and surfaces unchanged, keeping the
// original taxonomy kind visible to the caller.
func (c *Client) run(ctx context.Context, kind domain.OperationKind, parts []transport.Part,
	model string, temperature float64, maxTokens int, timeout time.Duration,
) (map[string]any, error) {
	if c.cfg.APIKey == "" {
		return nil, llmerrors.New(llmerrors.KindConfigurationMissing,
			"no API credential configured for the generative endpoint")
	}

	completion, err := c.handler.Handle(ctx, &transport.Request{
		Operation:    kind.String(),
		Model:        model,
		Parts:        parts,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
		JSONResponse: true,
		Timeout:      timeout,
	})
	if err != nil {
		return nil, err
	}

	obj, err := extractJSON(completion.Content)
	if err != nil {
		return nil, err
	}

	return validateResult(kind, obj)
}

// visionModel resolves the model for multi-modal operations from explicit
// configuration. An unset vision model substitutes the known-capable default
// rather than failing; the substitution is visible in the log.
func (c *Client) visionModel() string {
	if c.cfg.VisionModel != "" {
		return c.cfg.VisionModel
	}
	c.logger.Info("vision model not configured, substituting default",
		"model", DefaultVisionModel)
	return DefaultVisionModel
}

// decode converts a validated result map into its typed domain response.
func decode(obj map[string]any, out any) error {
	raw, err := json.Marshal(obj)
	if err != nil {
		return llmerrors.Wrap(llmerrors.KindMalformedResponse, err, "re-encoding validated result: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return llmerrors.Wrap(llmerrors.KindMalformedResponse, err,
			"validated result does not fit the response shape: %v", err)
	}
	return nil
}
