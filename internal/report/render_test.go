package report

import (
	"strings"
	"testing"

	"github.com/claude/nightring/internal/models"
)

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

func okResult() *models.AnalysisResult {
	start := int64(1700000000) // 22:13 UTC
	return &models.AnalysisResult{
		Sleep: models.SleepSection{
			Status:          models.StatusOK,
			Window:          &models.SleepWindow{Start: start, End: start + 450*60},
			Duration:        "7h 30m",
			DurationMinutes: 450,
			StagePercent: map[string]float64{
				models.StageDeep:  20,
				models.StageLight: 52,
				models.StageREM:   23,
				models.StageAwake: 5,
			},
		},
		HeartRate: models.HeartRateSection{
			Status: models.StatusOK,
			Lowest: &models.Sample{Timestamp: start + 3600, Value: 52},
			Drops: []models.DropEvent{
				{Timestamp: start + 300, From: 70, To: 55, Magnitude: 15, ElapsedMinutes: 5},
			},
		},
		Temperature: models.TemperatureSection{
			Status: models.StatusOK,
			Profile: &models.TemperatureProfile{
				Min: 35.2, Max: 36.9, Mean: 36.21, Variation: 1.7,
				MinAt: start + 3600, MaxAt: start + 7200,
				EarlyMean: f64(36.2), LateMean: f64(35.8),
			},
		},
		HRV: models.HRVSection{
			Status:  models.StatusOK,
			Average: intp(45),
			Source:  "precomputed",
		},
	}
}

// TestRenderFull verifies the headline lines of a complete report.
func TestRenderFull(t *testing.T) {
	out := Render("a@b.test", "2026-08-22", okResult())

	for _, want := range []string{
		"# Nocturnal Report for a@b.test on 2026-08-22",
		"Duration: 7h 30m",
		"deep 20.0%",
		"Lowest: 52 bpm",
		"70 to 55 bpm over 5 min",
		"Range: 35.20 to 36.90 C (variation 1.70), mean 36.21",
		"First 30 min mean 36.20, last 30 min mean 35.80",
		"Nightly average: 45 ms (precomputed)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

// TestRenderEmptySections verifies non-OK sections render a note instead of
// values, without dropping the section heading.
func TestRenderEmptySections(t *testing.T) {
	res := &models.AnalysisResult{
		Sleep:       models.SleepSection{Status: models.StatusEmpty, Reason: "no sleep window"},
		HeartRate:   models.HeartRateSection{Status: models.StatusEmpty},
		Temperature: models.TemperatureSection{Status: models.StatusFailed, Reason: "analyzer panic: index out of range"},
		HRV:         models.HRVSection{Status: models.StatusEmpty},
	}
	out := Render("a@b.test", "2026-08-22", res)

	for _, want := range []string{
		"## Sleep",
		"No data: no sleep window",
		"## Heart Rate",
		"## Skin Temperature",
		"Analysis failed: analyzer panic: index out of range",
		"## HRV",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

// TestRenderNoDrops verifies the no-drops phrasing for a quiet night.
func TestRenderNoDrops(t *testing.T) {
	res := okResult()
	res.HeartRate.Drops = nil
	res.Temperature.Profile.Drops = nil

	out := Render("a@b.test", "2026-08-22", res)
	if n := strings.Count(out, "No significant drops detected"); n != 2 {
		t.Errorf("got %d no-drop lines, want 2\n%s", n, out)
	}
}

// TestRenderOmitsPartialSubWindows verifies the early/late line is skipped
// when either sub-window mean is undefined.
func TestRenderOmitsPartialSubWindows(t *testing.T) {
	res := okResult()
	res.Temperature.Profile.LateMean = nil

	out := Render("a@b.test", "2026-08-22", res)
	if strings.Contains(out, "First 30 min") {
		t.Errorf("report shows sub-window means despite undefined late mean\n%s", out)
	}
}
