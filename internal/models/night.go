package models

// Sample is one timestamped metric reading. Timestamps are epoch seconds;
// input ordering is not guaranteed, consumers sort before windowed analysis.
type Sample struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// SleepWindow is the [Start, End] epoch-second interval within which all
// nocturnal analyses are scoped. Start <= End always holds for a resolved
// window; an unresolvable window is represented as a nil *SleepWindow.
type SleepWindow struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Minutes returns the window duration in whole minutes.
func (w SleepWindow) Minutes() int {
	return int((w.End - w.Start) / 60)
}

// DropEvent is a detected decrease between two consecutive-in-time samples.
// The event is keyed to the later sample's timestamp.
type DropEvent struct {
	Timestamp      int64   `json:"timestamp"`
	From           float64 `json:"from_value"`
	To             float64 `json:"to_value"`
	Magnitude      float64 `json:"magnitude"`
	ElapsedMinutes float64 `json:"elapsed_minutes"`
}

// TemperatureProfile aggregates skin temperature over the sleep window.
// Reported stats are rounded to two decimal places. EarlyMean and LateMean
// are nil when their 30-minute sub-window holds no samples; a nil mean is
// "undefined", not zero.
type TemperatureProfile struct {
	Min       float64     `json:"min"`
	Max       float64     `json:"max"`
	Mean      float64     `json:"mean"`
	Variation float64     `json:"variation"`
	MinAt     int64       `json:"min_at"`
	MaxAt     int64       `json:"max_at"`
	EarlyMean *float64    `json:"early_mean,omitempty"`
	LateMean  *float64    `json:"late_mean,omitempty"`
	Drops     []DropEvent `json:"drops"`
}

// SectionStatus tells "nothing measured" apart from "measurement logic broke".
type SectionStatus string

const (
	// StatusOK means the section carries measured data.
	StatusOK SectionStatus = "ok"
	// StatusEmpty means the inputs were resolvable but held no qualifying data.
	StatusEmpty SectionStatus = "empty"
	// StatusFailed means the analyzer itself failed; Reason carries the cause.
	StatusFailed SectionStatus = "failed"
)

// SleepSection summarizes the resolved sleep window and stage breakdown.
type SleepSection struct {
	Status          SectionStatus      `json:"status"`
	Reason          string             `json:"reason,omitempty"`
	Window          *SleepWindow       `json:"window,omitempty"`
	Duration        string             `json:"duration,omitempty"`
	DurationMinutes int                `json:"duration_minutes,omitempty"`
	StagePercent    map[string]float64 `json:"stage_percentages,omitempty"`
}

// HeartRateSection carries the nocturnal minimum and detected drop events.
type HeartRateSection struct {
	Status SectionStatus `json:"status"`
	Reason string        `json:"reason,omitempty"`
	Lowest *Sample       `json:"lowest,omitempty"`
	Drops  []DropEvent   `json:"drops,omitempty"`
}

// TemperatureSection carries the aggregated temperature profile.
type TemperatureSection struct {
	Status  SectionStatus       `json:"status"`
	Reason  string              `json:"reason,omitempty"`
	Profile *TemperatureProfile `json:"profile,omitempty"`
}

// HRVSection carries the nightly average HRV. Average is nil when HRV was
// never resolvable; Source records whether the value came from the provider's
// precomputed field or from averaging raw samples.
type HRVSection struct {
	Status  SectionStatus `json:"status"`
	Reason  string        `json:"reason,omitempty"`
	Average *int          `json:"average,omitempty"`
	Source  string        `json:"source,omitempty"`
}

// AnalysisResult is the assembled output of one single-night analysis run.
// It is built fresh per invocation and carries no cross-invocation state.
type AnalysisResult struct {
	Sleep       SleepSection       `json:"sleep"`
	HeartRate   HeartRateSection   `json:"heart_rate"`
	Temperature TemperatureSection `json:"temperature"`
	HRV         HRVSection         `json:"hrv"`
}
