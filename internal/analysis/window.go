package analysis

import (
	"fmt"

	"github.com/claude/nightring/internal/models"
	"github.com/claude/nightring/internal/ultrahuman"
)

// ResolveWindow derives the sleep interval from the decoded sleep payload.
// Nil when either bedtime is missing: downstream analyses must treat that as
// "no sleep data", not as a zero-duration night.
func ResolveWindow(sd *ultrahuman.SleepData) *models.SleepWindow {
	if sd == nil || sd.BedtimeStart == nil || sd.BedtimeEnd == nil {
		return nil
	}
	return &models.SleepWindow{Start: *sd.BedtimeStart, End: *sd.BedtimeEnd}
}

// StagePercentages maps each canonical stage to its reported percentage,
// defaulting absent stages to 0. Provider tag variants are normalized; when a
// stage appears more than once the first entry wins.
func StagePercentages(sd *ultrahuman.SleepData) map[string]float64 {
	out := make(map[string]float64, len(models.CanonicalStages))
	for _, stage := range models.CanonicalStages {
		out[stage] = 0
	}
	if sd == nil {
		return out
	}

	seen := make(map[string]bool, len(models.CanonicalStages))
	for _, st := range sd.Stages {
		tag, ok := models.NormalizeStageTag(st.Stage)
		if !ok || st.Percentage == nil || seen[tag] {
			continue
		}
		out[tag] = *st.Percentage
		seen[tag] = true
	}
	return out
}

// FormatDuration renders whole minutes as "{hours}h {minutes}m" using
// floor-hour, remainder-minute decomposition.
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// sleepSection builds the sleep summary for a resolved window.
func sleepSection(sd *ultrahuman.SleepData, w *models.SleepWindow) models.SleepSection {
	minutes := w.Minutes()
	return models.SleepSection{
		Status:          models.StatusOK,
		Window:          w,
		Duration:        FormatDuration(minutes),
		DurationMinutes: minutes,
		StagePercent:    StagePercentages(sd),
	}
}
