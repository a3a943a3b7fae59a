package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/claude/nightring/internal/models"
)

// FilterWindow returns the samples with start <= timestamp <= end, inclusive
// on both boundaries. Input order is preserved so tie-break rules downstream
// stay deterministic. A nil window yields no samples.
func FilterWindow(samples []models.Sample, w *models.SleepWindow) []models.Sample {
	if w == nil {
		return nil
	}
	var out []models.Sample
	for _, s := range samples {
		if s.Timestamp >= w.Start && s.Timestamp <= w.End {
			out = append(out, s)
		}
	}
	return out
}

// SortByTime returns a copy sorted by timestamp ascending. The sort is stable
// so samples with equal timestamps keep their input order.
func SortByTime(samples []models.Sample) []models.Sample {
	out := make([]models.Sample, len(samples))
	copy(out, samples)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// Lowest returns the sample with the minimum value. Ties go to the first
// sample encountered in input order. Nil for an empty set.
func Lowest(samples []models.Sample) *models.Sample {
	if len(samples) == 0 {
		return nil
	}
	low := samples[0]
	for _, s := range samples[1:] {
		if s.Value < low.Value {
			low = s
		}
	}
	return &low
}

// DetectDrops walks consecutive pairs of time-sorted samples and emits one
// event for every pair whose value decreases by at least minDelta. A non-zero
// maxGap additionally requires the pair to be no further apart than that;
// zero means no ceiling. Events key to the later sample's timestamp and are
// never merged: a monotonic multi-step decline reports each qualifying pair.
func DetectDrops(sorted []models.Sample, minDelta float64, maxGap time.Duration) []models.DropEvent {
	var events []models.DropEvent
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.Value-prev.Value > -minDelta {
			continue
		}
		elapsed := time.Duration(cur.Timestamp-prev.Timestamp) * time.Second
		if maxGap > 0 && elapsed > maxGap {
			continue
		}
		events = append(events, models.DropEvent{
			Timestamp:      cur.Timestamp,
			From:           prev.Value,
			To:             cur.Value,
			Magnitude:      round2(prev.Value - cur.Value),
			ElapsedMinutes: round2(elapsed.Minutes()),
		})
	}
	return events
}

// mean returns the arithmetic mean. Callers guard against empty input.
func mean(samples []models.Sample) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += s.Value
	}
	return sum / float64(len(samples))
}

// round2 rounds to two decimal places for reported stats.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
