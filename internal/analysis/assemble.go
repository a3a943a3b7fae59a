package analysis

import (
	"errors"
	"fmt"

	"github.com/claude/nightring/internal/models"
	"github.com/claude/nightring/internal/ultrahuman"
)

// Terminal short-circuit conditions. These abort the whole run, unlike
// per-section failures which degrade to that section's empty/failed state.
var (
	ErrNoUsableData = errors.New("document has no usable metric data")
	ErrNoHeartRate  = errors.New("no heart rate data")
	ErrNoSleepData  = errors.New("no sleep data")
)

// Run executes the full single-night pipeline over a fetched document and
// assembles the analyzer outputs into one AnalysisResult. Each analyzer runs
// behind a recover guard: an unexpected failure in one section becomes that
// section's failed status and does not prevent the others from reporting.
func Run(doc *ultrahuman.Document) (*models.AnalysisResult, error) {
	if !doc.HasMetricData() {
		return nil, ErrNoUsableData
	}

	hrSamples := doc.Samples(ultrahuman.KindHeartRate)
	if len(hrSamples) == 0 {
		return nil, ErrNoHeartRate
	}

	sd := doc.Sleep()
	window := ResolveWindow(sd)
	if window == nil {
		return nil, ErrNoSleepData
	}

	res := &models.AnalysisResult{}

	if reason, ok := guard(func() {
		res.Sleep = sleepSection(sd, window)
	}); !ok {
		res.Sleep = models.SleepSection{Status: models.StatusFailed, Reason: reason}
	}

	if reason, ok := guard(func() {
		res.HeartRate = AnalyzeHeartRate(hrSamples, window)
	}); !ok {
		res.HeartRate = models.HeartRateSection{Status: models.StatusFailed, Reason: reason}
	}

	if reason, ok := guard(func() {
		res.Temperature = AnalyzeTemperature(doc.Samples(ultrahuman.KindTemperature), window)
	}); !ok {
		res.Temperature = models.TemperatureSection{Status: models.StatusFailed, Reason: reason}
	}

	if reason, ok := guard(func() {
		res.HRV = AggregateHRV(sd, doc.Samples(ultrahuman.KindHRV), window)
	}); !ok {
		res.HRV = models.HRVSection{Status: models.StatusFailed, Reason: reason}
	}

	return res, nil
}

// guard runs fn and converts a panic into a failure reason. ok is false only
// when fn panicked.
func guard(fn func()) (reason string, ok bool) {
	ok = true
	defer func() {
		if r := recover(); r != nil {
			reason = fmt.Sprintf("analyzer panic: %v", r)
			ok = false
		}
	}()
	fn()
	return
}
