package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/claude/nightring/internal/analysis"
	"github.com/claude/nightring/internal/models"
	"github.com/claude/nightring/internal/report"
	"github.com/claude/nightring/internal/ultrahuman"
	"github.com/mark3labs/mcp-go/mcp"
)

// resolveArgs applies the tool argument defaults: the configured account
// email and yesterday's date (the most recent complete night).
func (h *handlers) resolveArgs(req mcp.CallToolRequest) (email, date string, err error) {
	email = req.GetString("email", "")
	if email == "" {
		email = h.defaultEmail
	}
	if email == "" {
		return "", "", errors.New("no email provided and no default configured")
	}

	date = req.GetString("date", "")
	if date == "" {
		date = yesterday()
	} else if _, perr := time.Parse("2006-01-02", date); perr != nil {
		return "", "", errors.New("invalid date, expected YYYY-MM-DD")
	}
	return email, date, nil
}

func yesterday() string {
	return time.Now().AddDate(0, 0, -1).Format("2006-01-02")
}

// fetchAndRun executes the shared fetch + analyze pipeline for a tool call.
// Fetch errors and terminal no-data conditions come back as errors; the
// caller decides how to phrase them.
func (h *handlers) fetchAndRun(ctx context.Context, email, date string) (*models.AnalysisResult, error) {
	doc, err := h.fetcher.FetchMetrics(ctx, email, date)
	if err != nil {
		return nil, err
	}
	return analysis.Run(doc)
}

// --- Tool definitions ---

var toolAnalyzeNight = mcp.NewTool("analyze_night",
	mcp.WithDescription("Fetch one night of ring data and return a human-readable nocturnal report: sleep window and stages, lowest heart rate, heart-rate and temperature drop events, and average HRV."),
	mcp.WithString("email", mcp.Description("Ultrahuman account email. Uses the configured default if omitted.")),
	mcp.WithString("date", mcp.Description("Night to analyze (YYYY-MM-DD). Defaults to yesterday.")),
)

var toolGetNightAnalysis = mcp.NewTool("get_night_analysis",
	mcp.WithDescription("Fetch one night of ring data and return the structured analysis result as JSON, including per-section status (ok/empty/failed)."),
	mcp.WithString("email", mcp.Description("Ultrahuman account email. Uses the configured default if omitted.")),
	mcp.WithString("date", mcp.Description("Night to analyze (YYYY-MM-DD). Defaults to yesterday.")),
)

var toolGetSleepSummary = mcp.NewTool("get_sleep_summary",
	mcp.WithDescription("Fetch one night of ring data and return only the sleep window, duration, and stage percentages as JSON."),
	mcp.WithString("email", mcp.Description("Ultrahuman account email. Uses the configured default if omitted.")),
	mcp.WithString("date", mcp.Description("Night to analyze (YYYY-MM-DD). Defaults to yesterday.")),
)

// --- Tool handlers ---

func (h *handlers) analyzeNight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, date, err := h.resolveArgs(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := h.fetchAndRun(ctx, email, date)
	if err != nil {
		return h.pipelineError("analyze_night", date, err), nil
	}

	return mcp.NewToolResultText(report.Render(email, date, res)), nil
}

func (h *handlers) getNightAnalysis(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, date, err := h.resolveArgs(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := h.fetchAndRun(ctx, email, date)
	if err != nil {
		return h.pipelineError("get_night_analysis", date, err), nil
	}

	result, err := mcp.NewToolResultJSON(res)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSleepSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, date, err := h.resolveArgs(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := h.fetchAndRun(ctx, email, date)
	if err != nil {
		return h.pipelineError("get_sleep_summary", date, err), nil
	}

	result, err := mcp.NewToolResultJSON(res.Sleep)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// pipelineError phrases fetch errors and terminal no-data conditions.
// Structural absence is a valid answer, not a tool failure.
func (h *handlers) pipelineError(tool, date string, err error) *mcp.CallToolResult {
	var fe *ultrahuman.FetchError
	if errors.As(err, &fe) {
		h.log.Error("mcp "+tool+" fetch failed", "kind", fe.Kind, "error", err)
		return mcp.NewToolResultError(err.Error())
	}

	switch {
	case errors.Is(err, analysis.ErrNoUsableData),
		errors.Is(err, analysis.ErrNoHeartRate),
		errors.Is(err, analysis.ErrNoSleepData):
		return mcp.NewToolResultText("No analysis for " + date + ": " + err.Error() + ".")
	default:
		h.log.Error("mcp "+tool, "error", err)
		return mcp.NewToolResultError(err.Error())
	}
}

// --- Resource handlers ---

func (h *handlers) metricCatalog(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	catalog := []map[string]any{
		{"type": "hr", "description": "heart rate samples (BPM)", "drop_threshold": 10.0, "drop_max_gap_minutes": 30},
		{"type": "temp", "description": "skin temperature samples (deg C)", "drop_threshold": 1.0},
		{"type": "hrv", "description": "heart rate variability samples (ms)"},
		{"type": "Sleep", "description": "sleep window, stage percentages, precomputed avg HRV"},
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
