package analysis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"selene/internal/cache"
	"selene/internal/config"
	"selene/internal/fingerprint"
	"selene/internal/imaging"
	"selene/internal/models"
	"selene/internal/ollama"
)

// minResponseChars is the shortest trimmed response accepted from the model.
// Responses at or below this length count as failed attempts.
const minResponseChars = 10

// Gateway is the model transport used by the engine. It performs no retries.
type Gateway interface {
	CheckConnection(ctx context.Context) bool
	Generate(ctx context.Context, prompt string, images []string, opts ollama.Options) (string, error)
	Model() string
}

// Engine drives the analysis pipeline: validate inputs, build context, invoke
// the gateway with retry, and parse the raw response into a structured result.
type Engine struct {
	gateway Gateway
	builder *ContextBuilder
	loader  *imaging.Loader
	results *cache.ResultCache
	cfg     *config.AnalysisConfig
	logger  *zap.Logger
}

// NewEngine creates an engine. results may be nil to disable caching.
func NewEngine(
	gateway Gateway,
	builder *ContextBuilder,
	loader *imaging.Loader,
	results *cache.ResultCache,
	cfg *config.AnalysisConfig,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		gateway: gateway,
		builder: builder,
		loader:  loader,
		results: results,
		cfg:     cfg,
		logger:  logger,
	}
}

// Analyze runs the full pipeline for req. It never returns an error: any
// failure inside the pipeline is converted into a well-formed result whose
// metadata carries the error flag and message, so callers always have
// renderable content.
func (e *Engine) Analyze(ctx context.Context, req *models.AnalysisRequest) *models.AnalysisResult {
	start := time.Now()
	e.logger.Info("starting analysis",
		zap.String("type", req.AnalysisType),
		zap.String("schematic", req.SchematicPath),
	)

	var key string
	if e.results != nil {
		key = fingerprint.Compute(req.SchematicPath, req.AnalysisType, req.Datasheet)
		if cached, ok := e.results.Get(key); ok {
			e.logger.Info("analysis served from cache", zap.String("type", req.AnalysisType))
			return cached
		}
	}

	result, err := e.analyze(ctx, req)
	if err != nil {
		e.logger.Error("analysis failed", zap.Error(err))
		return e.errorResult(err, req, start)
	}

	result.Metadata.AnalysisTime = time.Since(start)
	result.Metadata.Timestamp = time.Now()
	e.logger.Info("analysis completed",
		zap.String("type", req.AnalysisType),
		zap.Duration("elapsed", result.Metadata.AnalysisTime),
		zap.String("confidence", result.Metadata.Confidence),
	)

	if e.results != nil {
		e.results.Put(key, result)
	}
	return result
}

// analyze runs the pipeline stages and returns typed errors; Analyze converts
// them at the recovery boundary.
func (e *Engine) analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResult, error) {
	if err := e.validate(ctx, req); err != nil {
		return nil, err
	}

	img := e.loader.LoadPackage(req.SchematicPath)
	if !img.Ready {
		return nil, &ContextBuildError{Err: errors.New(img.Error)}
	}

	actx, err := e.builder.Build(img, req.Datasheet, req.AnalysisType, req.CustomQuery)
	if err != nil {
		return nil, &ContextBuildError{Err: err}
	}

	raw, err := e.invoke(ctx, actx)
	if err != nil {
		return nil, err
	}

	return e.processResponse(raw, actx), nil
}

// validate fails fast, before any model call, on a missing schematic file, an
// unrecognized category, or an unreachable gateway.
func (e *Engine) validate(ctx context.Context, req *models.AnalysisRequest) error {
	if _, err := os.Stat(req.SchematicPath); err != nil {
		return &ValidationError{Reason: fmt.Sprintf("schematic file not found: %s", req.SchematicPath)}
	}
	if err := req.Validate(); err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	if !e.gateway.CheckConnection(ctx) {
		return &ValidationError{Reason: "model endpoint is not reachable"}
	}
	return nil
}

// invoke calls the gateway with the configured retry budget. A response of 10
// or fewer trimmed characters counts as a failed attempt. The context is
// checked before each call and before each retry sleep so a caller-initiated
// abort takes effect promptly.
func (e *Engine) invoke(ctx context.Context, actx *Context) (string, error) {
	opts := ollama.Options{
		Temperature: e.cfg.Temperature,
		TopP:        e.cfg.TopP,
		TopK:        e.cfg.TopK,
		NumPredict:  e.cfg.NumPredict,
	}

	var lastErr error
	for attempt := 1; attempt <= e.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", &GenerationFailure{Attempts: attempt - 1, Err: err}
		}

		e.logger.Info("model invocation",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", e.cfg.MaxRetries),
		)
		raw, err := e.gateway.Generate(ctx, actx.Prompt, []string{actx.Image.Encoded}, opts)
		if err == nil {
			if len(strings.TrimSpace(raw)) > minResponseChars {
				return raw, nil
			}
			err = errors.New("empty or too short response from model")
		}
		lastErr = err
		e.logger.Warn("model invocation attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt < e.cfg.MaxRetries {
			select {
			case <-ctx.Done():
				return "", &GenerationFailure{Attempts: attempt, Err: ctx.Err()}
			case <-time.After(e.cfg.RetryDelay()):
			}
		}
	}
	return "", &GenerationFailure{Attempts: e.cfg.MaxRetries, Err: lastErr}
}

// processResponse parses the raw model text into a structured result. Parsing
// never fails: the response is untrusted free text and extraction degrades to
// empty lists.
func (e *Engine) processResponse(raw string, actx *Context) *models.AnalysisResult {
	findings := ExtractFindings(raw)
	recommendations := ExtractRecommendations(raw)
	issues := IdentifyIssues(raw)

	confidence := ConfidenceScore(raw, actx.HasDatasheet)
	quality := QualityScore(raw)

	return &models.AnalysisResult{
		AnalysisType:    actx.Category,
		Summary:         Summarize(findings, issues),
		Content:         FormatContent(raw, findings, recommendations),
		Findings:        findings,
		Recommendations: recommendations,
		Issues:          issues,
		RawResponse:     raw,
		Metadata: models.Metadata{
			ID:                 uuid.NewString(),
			SchematicFile:      actx.Image.Filename,
			HasDatasheet:       actx.HasDatasheet,
			DatasheetComponent: actx.DatasheetComponent,
			Confidence:         ConfidenceLabel(confidence),
			Quality:            QualityLabel(quality),
		},
	}
}

// errorResult converts a pipeline error into a normal-shaped result so the
// caller always has renderable content, even on total failure.
func (e *Engine) errorResult(err error, req *models.AnalysisRequest, start time.Time) *models.AnalysisResult {
	msg := err.Error()
	content := fmt.Sprintf(
		"Analysis Error\n\n%s\n\nPlease check:\n"+
			"- The model service is running and accessible\n"+
			"- The schematic image is valid\n"+
			"- Network connectivity is stable\n\n"+
			"Try running the analysis again.",
		msg,
	)

	return &models.AnalysisResult{
		AnalysisType: req.AnalysisType,
		Summary:      "Analysis failed: " + msg,
		Content:      content,
		Findings:     []models.Finding{},
		Recommendations: []string{
			"Retry the analysis",
			"Check system requirements",
			"Verify file formats",
		},
		Issues: []models.Issue{{
			Description: "Analysis failed: " + msg,
			Severity:    models.SeverityCritical,
			Component:   "System",
			Category:    models.IssueError,
		}},
		RawResponse: "Error: " + msg,
		Metadata: models.Metadata{
			ID:                 uuid.NewString(),
			SchematicFile:      filepath.Base(req.SchematicPath),
			HasDatasheet:       false,
			DatasheetComponent: models.UnknownComponent,
			Confidence:         "N/A",
			Quality:            "Error",
			AnalysisTime:       time.Since(start),
			Timestamp:          time.Now(),
			Error:              true,
			ErrorMessage:       msg,
		},
	}
}
