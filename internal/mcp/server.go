package mcp

import (
	"context"
	"log/slog"

	"github.com/claude/nightring/internal/ultrahuman"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Fetcher abstracts the upstream metrics fetch so tool handlers can be
// tested against canned documents. *ultrahuman.Client satisfies it.
type Fetcher interface {
	FetchMetrics(ctx context.Context, email, date string) (*ultrahuman.Document, error)
}

// Compile-time check: *ultrahuman.Client satisfies Fetcher.
var _ Fetcher = (*ultrahuman.Client)(nil)

// New creates an MCP server with all tools and resources registered.
func New(fetcher Fetcher, defaultEmail, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("nightring", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Nightring nocturnal analysis server. Analyzes one night of Ultrahuman ring data: sleep window, heart rate drops, skin temperature profile, and HRV."),
	)

	h := &handlers{fetcher: fetcher, defaultEmail: defaultEmail, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolAnalyzeNight, Handler: h.analyzeNight},
		server.ServerTool{Tool: toolGetNightAnalysis, Handler: h.getNightAnalysis},
		server.ServerTool{Tool: toolGetSleepSummary, Handler: h.getSleepSummary},
	)

	s.AddResources(
		server.ServerResource{Resource: resMetricCatalog, Handler: h.metricCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	fetcher      Fetcher
	defaultEmail string
	log          *slog.Logger
}

// --- Resource definitions ---

var resMetricCatalog = mcp.NewResource(
	"nightring://metric_catalog",
	"Metric Catalog",
	mcp.WithResourceDescription("Metric streams the analyzer consumes, with their drop-detection thresholds"),
	mcp.WithMIMEType("application/json"),
)
