package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/claude/nightring/internal/models"
)

// Render turns an AnalysisResult into the human-readable nocturnal report.
// Layout only: every value comes straight from the result, with no extra
// filtering or aggregation.
func Render(email, date string, res *models.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Nocturnal Report for %s on %s\n\n", email, date)

	writeSleep(&b, res.Sleep)
	writeHeartRate(&b, res.HeartRate)
	writeTemperature(&b, res.Temperature)
	writeHRV(&b, res.HRV)

	return b.String()
}

func writeSleep(b *strings.Builder, s models.SleepSection) {
	b.WriteString("## Sleep\n")
	if s.Status != models.StatusOK {
		fmt.Fprintf(b, "- %s\n\n", sectionNote(s.Status, s.Reason))
		return
	}
	fmt.Fprintf(b, "- Duration: %s (%s to %s)\n", s.Duration, clock(s.Window.Start), clock(s.Window.End))
	fmt.Fprintf(b, "- Stages: deep %.1f%%, light %.1f%%, REM %.1f%%, awake %.1f%%\n\n",
		s.StagePercent[models.StageDeep],
		s.StagePercent[models.StageLight],
		s.StagePercent[models.StageREM],
		s.StagePercent[models.StageAwake],
	)
}

func writeHeartRate(b *strings.Builder, hr models.HeartRateSection) {
	b.WriteString("## Heart Rate\n")
	if hr.Status != models.StatusOK {
		fmt.Fprintf(b, "- %s\n\n", sectionNote(hr.Status, hr.Reason))
		return
	}
	fmt.Fprintf(b, "- Lowest: %.0f bpm at %s\n", hr.Lowest.Value, clock(hr.Lowest.Timestamp))
	if len(hr.Drops) == 0 {
		b.WriteString("- No significant drops detected\n\n")
		return
	}
	fmt.Fprintf(b, "- Significant drops (%d):\n", len(hr.Drops))
	for _, d := range hr.Drops {
		fmt.Fprintf(b, "  - %.0f to %.0f bpm over %.0f min, ending %s\n",
			d.From, d.To, d.ElapsedMinutes, clock(d.Timestamp))
	}
	b.WriteString("\n")
}

func writeTemperature(b *strings.Builder, t models.TemperatureSection) {
	b.WriteString("## Skin Temperature\n")
	if t.Status != models.StatusOK {
		fmt.Fprintf(b, "- %s\n\n", sectionNote(t.Status, t.Reason))
		return
	}
	p := t.Profile
	fmt.Fprintf(b, "- Range: %.2f to %.2f C (variation %.2f), mean %.2f\n", p.Min, p.Max, p.Variation, p.Mean)
	fmt.Fprintf(b, "- Low at %s, high at %s\n", clock(p.MinAt), clock(p.MaxAt))
	if p.EarlyMean != nil && p.LateMean != nil {
		fmt.Fprintf(b, "- First 30 min mean %.2f, last 30 min mean %.2f\n", *p.EarlyMean, *p.LateMean)
	}
	if len(p.Drops) == 0 {
		b.WriteString("- No significant drops detected\n\n")
		return
	}
	fmt.Fprintf(b, "- Significant drops (%d):\n", len(p.Drops))
	for _, d := range p.Drops {
		fmt.Fprintf(b, "  - %.2f to %.2f C over %.0f min, ending %s\n",
			d.From, d.To, d.ElapsedMinutes, clock(d.Timestamp))
	}
	b.WriteString("\n")
}

func writeHRV(b *strings.Builder, h models.HRVSection) {
	b.WriteString("## HRV\n")
	if h.Status != models.StatusOK || h.Average == nil {
		fmt.Fprintf(b, "- %s\n", sectionNote(h.Status, h.Reason))
		return
	}
	fmt.Fprintf(b, "- Nightly average: %d ms (%s)\n", *h.Average, h.Source)
}

// sectionNote phrases a non-OK section for the report.
func sectionNote(status models.SectionStatus, reason string) string {
	switch status {
	case models.StatusFailed:
		return "Analysis failed: " + reason
	default:
		if reason != "" {
			return "No data: " + reason
		}
		return "No data"
	}
}

// clock formats an epoch-second timestamp as a UTC wall-clock time.
func clock(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("15:04")
}
