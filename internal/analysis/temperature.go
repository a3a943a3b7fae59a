package analysis

import (
	"github.com/claude/nightring/internal/models"
)

// Temperature drop threshold: a decrease of 1.0 degree C or more between
// consecutive samples. Unlike heart rate there is no elapsed-time ceiling;
// slow multi-hour declines still qualify.
const tempDropDelta = 1.0

// earlyLateSpan bounds the early and late sub-windows to the first and last
// 30 minutes of sleep.
const earlyLateSpan = 1800

// AnalyzeTemperature filters temperature samples to the sleep window and
// computes the aggregated profile: min/max/mean/variation (rounded to two
// decimal places), the first timestamps at which min and max occurred,
// early/late sub-window means, and drop events.
func AnalyzeTemperature(samples []models.Sample, w *models.SleepWindow) models.TemperatureSection {
	if w == nil {
		return models.TemperatureSection{Status: models.StatusEmpty, Reason: "no sleep window"}
	}

	in := FilterWindow(samples, w)
	if len(in) == 0 {
		return models.TemperatureSection{Status: models.StatusEmpty, Reason: "no temperature samples in sleep window"}
	}

	sorted := SortByTime(in)

	// Strict comparisons over the time-sorted set: the earliest occurrence
	// wins a tie for either extreme.
	minS, maxS := sorted[0], sorted[0]
	for _, s := range sorted[1:] {
		if s.Value < minS.Value {
			minS = s
		}
		if s.Value > maxS.Value {
			maxS = s
		}
	}

	profile := &models.TemperatureProfile{
		Min:       round2(minS.Value),
		Max:       round2(maxS.Value),
		Mean:      round2(mean(in)),
		Variation: round2(maxS.Value - minS.Value),
		MinAt:     minS.Timestamp,
		MaxAt:     maxS.Timestamp,
		Drops:     DetectDrops(sorted, tempDropDelta, 0),
	}

	var early, late []models.Sample
	for _, s := range in {
		if s.Timestamp-w.Start <= earlyLateSpan {
			early = append(early, s)
		}
		if w.End-s.Timestamp <= earlyLateSpan {
			late = append(late, s)
		}
	}
	// An empty sub-window has an undefined mean, not a zero one.
	if len(early) > 0 {
		m := round2(mean(early))
		profile.EarlyMean = &m
	}
	if len(late) > 0 {
		m := round2(mean(late))
		profile.LateMean = &m
	}

	return models.TemperatureSection{Status: models.StatusOK, Profile: profile}
}
