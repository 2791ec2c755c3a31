package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/astroforge/astroforge/internal/domain"
	"github.com/astroforge/astroforge/internal/goals"
	"github.com/astroforge/astroforge/internal/llm"
	llmerrors "github.com/astroforge/astroforge/internal/llm/errors"
	"github.com/astroforge/astroforge/internal/profile"
	"github.com/astroforge/astroforge/internal/report"
)

const (
	appName    = "AstroForge AI"
	appVersion = "3.0.0"
)

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"app":     appName,
		"status":  "running",
		"version": appVersion,
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	model := s.cfg.LLM.Model
	if model == "" {
		model = llm.DefaultModel
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":         "ok",
		"openai_key_set": strings.TrimSpace(s.cfg.LLM.APIKey) != "",
		"openai_model":   model,
	})
}

type profileRequest struct {
	SocialURL string `json:"social_url"`
}

func (s *Server) handleAnalyzeProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(strings.TrimSpace(req.SocialURL)) < 3 {
		return echo.NewHTTPError(http.StatusBadRequest, "social_url is required")
	}

	prof, err := s.profiles.Fetch(c.Request().Context(), req.SocialURL)
	if err != nil {
		if errors.Is(err, profile.ErrExtractionFailed) {
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
		return analysisError(err)
	}
	return c.JSON(http.StatusOK, prof)
}

func (s *Server) handleInsights(c echo.Context) error {
	var req domain.InsightsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := s.analyzer.GenerateInsights(c.Request().Context(), &req)
	if err != nil {
		return analysisError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

type astrologyRequest struct {
	DateOfBirth string `json:"dob"`
	TimeOfBirth string `json:"time_of_birth"`
	Zodiac      string `json:"zodiac"`
}

func (s *Server) handleAstrology(c echo.Context) error {
	var req astrologyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	zodiac, ok := domain.ParseZodiac(req.Zodiac)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, domain.ErrZodiacInvalid.Error())
	}
	dreq := domain.AstrologyRequest{
		DateOfBirth: req.DateOfBirth,
		TimeOfBirth: req.TimeOfBirth,
		Zodiac:      zodiac,
	}
	if err := dreq.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := s.analyzer.GenerateAstrology(c.Request().Context(), &dreq)
	if err != nil {
		return analysisError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePalmAnalysis(c echo.Context) error {
	image, err := readImageUpload(c, "image")
	if err != nil {
		return err
	}

	resp, err := s.analyzer.AnalyzePalm(c.Request().Context(), image)
	if err != nil {
		return analysisError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreatorAnalysis(c echo.Context) error {
	image, err := readImageUpload(c, "palm_image")
	if err != nil {
		return err
	}

	zodiac, ok := domain.ParseZodiac(c.FormValue("zodiac"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, domain.ErrZodiacInvalid.Error())
	}
	req := domain.CreatorAnalysisRequest{
		Name:        c.FormValue("name"),
		Platform:    domain.Platform(strings.ToLower(c.FormValue("platform"))),
		Goal:        c.FormValue("goal"),
		Zodiac:      zodiac,
		DateOfBirth: c.FormValue("dob"),
		Stats:       formStats(c, "followers", "posts", "subscribers", "videos", "views"),
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	slog.Info("creator analysis requested",
		"name", req.Name,
		"platform", req.Platform,
		"image_bytes", len(image),
	)

	resp, err := s.analyzer.AnalyzeCreator(c.Request().Context(), &req, image)
	if err != nil {
		return analysisError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGoals(c echo.Context) error {
	var req domain.GoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, goals.Calculate(&req))
}

func (s *Server) handleReport(c echo.Context) error {
	var req report.Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	doc, err := report.Render(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "report rendering failed")
	}

	username := req.Username
	if username == "" {
		username = "creator"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s_report.html"`, username))
	return c.Blob(http.StatusOK, echo.MIMETextHTMLCharsetUTF8, doc)
}

// readImageUpload pulls a multipart image out of the request, enforcing the
// image content type and size ceiling before any bytes reach the analyzer.
func readImageUpload(c echo.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("%s file is required", field))
	}
	if ct := fh.Header.Get(echo.HeaderContentType); !strings.HasPrefix(ct, "image/") {
		return nil, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("%s must be an image, got %q", field, ct))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read upload")
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	// Read one byte past the ceiling so oversized uploads are detected
	// without buffering the whole payload.
	image, err := io.ReadAll(io.LimitReader(f, llm.MaxImageBytes+1))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read upload")
	}
	if len(image) > llm.MaxImageBytes {
		return nil, echo.NewHTTPError(http.StatusBadRequest, llm.ErrAttachmentTooLarge.Error())
	}
	if len(image) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, llm.ErrAttachmentEmpty.Error())
	}
	return image, nil
}

// formStats collects the optional numeric form fields into the stats map,
// skipping fields that are absent or non-numeric.
func formStats(c echo.Context, fields ...string) map[string]int64 {
	stats := make(map[string]int64, len(fields))
	for _, field := range fields {
		raw := strings.TrimSpace(c.FormValue(field))
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		stats[field] = n
	}
	if len(stats) == 0 {
		return nil
	}
	return stats
}

// analysisError maps analyzer failures onto distinct HTTP statuses so the
// dashboard can tell a throttled call from a broken one.
func analysisError(err error) error {
	if errors.Is(err, llm.ErrAttachmentEmpty) || errors.Is(err, llm.ErrAttachmentTooLarge) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	kind, ok := llmerrors.KindOf(err)
	if !ok {
		slog.Error("analysis failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "analysis failed")
	}

	slog.Error("analysis failed", "error_kind", kind, "error", err)

	switch kind {
	case llmerrors.KindConfigurationMissing:
		return echo.NewHTTPError(http.StatusServiceUnavailable,
			"analysis service is not configured")
	case llmerrors.KindTimeout:
		return echo.NewHTTPError(http.StatusGatewayTimeout,
			"the analysis took too long, try again")
	case llmerrors.KindAuthRejected:
		return echo.NewHTTPError(http.StatusUnauthorized,
			"analysis credential was rejected")
	case llmerrors.KindRateLimited:
		return echo.NewHTTPError(http.StatusTooManyRequests,
			"analysis service is rate limited, try again shortly")
	case llmerrors.KindQuotaExceeded:
		return echo.NewHTTPError(http.StatusPaymentRequired,
			"analysis quota is exhausted")
	default:
		// Transport failures, upstream errors, and unusable responses all
		// surface as a bad gateway; the kind is in the log line above.
		return echo.NewHTTPError(http.StatusBadGateway,
			"analysis service returned an unusable result, try again")
	}
}
