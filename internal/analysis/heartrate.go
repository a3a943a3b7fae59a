package analysis

import (
	"time"

	"github.com/claude/nightring/internal/models"
)

// Heart-rate drop thresholds: a decrease of 10 BPM or more between
// consecutive samples no further than 30 minutes apart.
const (
	hrDropDelta  = 10.0
	hrDropMaxGap = 30 * time.Minute
)

// AnalyzeHeartRate filters heart-rate samples to the sleep window, locates
// the nocturnal minimum, and detects transient drop events. The lowest-value
// lookup runs over the filtered set in input order; drop detection runs over
// the time-sorted set.
func AnalyzeHeartRate(samples []models.Sample, w *models.SleepWindow) models.HeartRateSection {
	if w == nil {
		return models.HeartRateSection{Status: models.StatusEmpty, Reason: "no sleep window"}
	}

	in := FilterWindow(samples, w)
	if len(in) == 0 {
		return models.HeartRateSection{Status: models.StatusEmpty, Reason: "no heart rate samples in sleep window"}
	}

	return models.HeartRateSection{
		Status: models.StatusOK,
		Lowest: Lowest(in),
		Drops:  DetectDrops(SortByTime(in), hrDropDelta, hrDropMaxGap),
	}
}
