package analysis

import (
	"github.com/claude/nightring/internal/models"
	"github.com/claude/nightring/internal/ultrahuman"
)

// AggregateHRV resolves the nightly average HRV. The provider's precomputed
// avg_hrv field always wins when present, even if recomputing from samples
// would differ. Otherwise the in-window sample mean is used, truncated to an
// integer. With neither, the average is undefined (not zero).
func AggregateHRV(sd *ultrahuman.SleepData, samples []models.Sample, w *models.SleepWindow) models.HRVSection {
	if sd != nil && sd.AvgHRV != nil {
		avg := int(*sd.AvgHRV)
		return models.HRVSection{Status: models.StatusOK, Average: &avg, Source: "precomputed"}
	}

	if w == nil {
		return models.HRVSection{Status: models.StatusEmpty, Reason: "no sleep window"}
	}

	in := FilterWindow(samples, w)
	if len(in) == 0 {
		return models.HRVSection{Status: models.StatusEmpty, Reason: "no hrv samples in sleep window"}
	}

	avg := int(mean(in))
	return models.HRVSection{Status: models.StatusOK, Average: &avg, Source: "samples"}
}
