package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/claude/nightring/internal/models"
	"github.com/claude/nightring/internal/ultrahuman"
)

// nightDocument is a full single-night fixture: 7.5 hours of sleep with one
// heart-rate drop, one slow temperature drop, and a precomputed HRV.
const nightDocument = `{
  "data": {
    "metric_data": [
      {"type": "hr", "object": {"values": [
        {"timestamp": 1700000000, "value": 70},
        {"timestamp": 1700000300, "value": 55},
        {"timestamp": 1700010000, "value": 62}
      ]}},
      {"type": "Sleep", "object": {
        "bedtime_start": 1700000000,
        "bedtime_end": 1700027000,
        "avg_hrv": 45,
        "sleep_stages": [
          {"stage": "deep_sleep", "percentage": 20},
          {"stage": "light_sleep", "percentage": 52},
          {"stage": "rem_sleep", "percentage": 23},
          {"stage": "awake", "percentage": 5}
        ]
      }},
      {"type": "temp", "object": {"values": [
        {"timestamp": 1700000600, "value": 36.5},
        {"timestamp": 1700007800, "value": 35.2}
      ]}},
      {"type": "hrv", "object": {"values": [
        {"timestamp": 1700000600, "value": 80}
      ]}}
    ]
  }
}`

func parseDoc(t *testing.T, body string) *ultrahuman.Document {
	t.Helper()
	doc, err := ultrahuman.ParseDocument([]byte(body))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

// TestRunFullNight verifies that a complete document produces all four
// sections in the ok state with the expected headline values.
func TestRunFullNight(t *testing.T) {
	res, err := Run(parseDoc(t, nightDocument))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Sleep.Status != models.StatusOK || res.Sleep.Duration != "7h 30m" {
		t.Errorf("sleep = %+v, want ok 7h 30m", res.Sleep)
	}
	if res.HeartRate.Status != models.StatusOK {
		t.Fatalf("heart rate status = %q", res.HeartRate.Status)
	}
	if res.HeartRate.Lowest == nil || res.HeartRate.Lowest.Value != 55 {
		t.Errorf("lowest = %+v, want 55", res.HeartRate.Lowest)
	}
	if len(res.HeartRate.Drops) != 1 {
		t.Errorf("hr drops = %d, want 1", len(res.HeartRate.Drops))
	}
	if res.Temperature.Status != models.StatusOK || len(res.Temperature.Profile.Drops) != 1 {
		t.Errorf("temperature = %+v, want ok with 1 drop", res.Temperature)
	}
	if res.HRV.Average == nil || *res.HRV.Average != 45 {
		t.Errorf("hrv = %+v, want precomputed 45", res.HRV)
	}
	if res.HRV.Source != "precomputed" {
		t.Errorf("hrv source = %q, want precomputed over the raw samples", res.HRV.Source)
	}
}

// TestRunIdempotent verifies that re-running on an identical document yields
// a byte-identical serialized result.
func TestRunIdempotent(t *testing.T) {
	first, err := Run(parseDoc(t, nightDocument))
	if err != nil {
		t.Fatal(err)
	}
	second, err := Run(parseDoc(t, nightDocument))
	if err != nil {
		t.Fatal(err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("results differ:\n%s\n%s", a, b)
	}
}

// TestRunNoUsableData verifies the terminal condition for a document missing
// the data or metric_data keys, distinct from a fetch error.
func TestRunNoUsableData(t *testing.T) {
	for _, body := range []string{`{}`, `{"data": {}}`} {
		_, err := Run(parseDoc(t, body))
		if !errors.Is(err, ErrNoUsableData) {
			t.Errorf("Run(%s) error = %v, want ErrNoUsableData", body, err)
		}
	}
}

// TestRunNoHeartRate verifies that an empty metric_data list with a present
// data key is "no heart-rate data", not an error about structure.
func TestRunNoHeartRate(t *testing.T) {
	_, err := Run(parseDoc(t, `{"data": {"metric_data": []}}`))
	if !errors.Is(err, ErrNoHeartRate) {
		t.Errorf("error = %v, want ErrNoHeartRate", err)
	}
}

// TestRunNoSleepWindow verifies that a missing bedtime_start makes the whole
// night unanalyzable: no zero-length-but-valid results.
func TestRunNoSleepWindow(t *testing.T) {
	body := `{
	  "data": {"metric_data": [
	    {"type": "hr", "object": {"values": [{"timestamp": 100, "value": 60}]}},
	    {"type": "Sleep", "object": {"bedtime_end": 27000}}
	  ]}
	}`
	_, err := Run(parseDoc(t, body))
	if !errors.Is(err, ErrNoSleepData) {
		t.Errorf("error = %v, want ErrNoSleepData", err)
	}
}

// TestRunDegradedSections verifies that missing temperature and HRV streams
// degrade to empty sections while heart rate and sleep still report.
func TestRunDegradedSections(t *testing.T) {
	body := `{
	  "data": {"metric_data": [
	    {"type": "hr", "object": {"values": [{"timestamp": 1500, "value": 60}]}},
	    {"type": "Sleep", "object": {"bedtime_start": 1000, "bedtime_end": 28000}}
	  ]}
	}`
	res, err := Run(parseDoc(t, body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HeartRate.Status != models.StatusOK {
		t.Errorf("heart rate status = %q, want ok", res.HeartRate.Status)
	}
	if res.Temperature.Status != models.StatusEmpty {
		t.Errorf("temperature status = %q, want empty", res.Temperature.Status)
	}
	if res.HRV.Status != models.StatusEmpty {
		t.Errorf("hrv status = %q, want empty", res.HRV.Status)
	}
}

// TestGuard verifies panic conversion at the analyzer boundary.
func TestGuard(t *testing.T) {
	reason, ok := guard(func() { panic("bad index") })
	if ok {
		t.Fatal("guard reported ok for a panicking analyzer")
	}
	if reason == "" {
		t.Error("guard returned no reason")
	}

	if reason, ok := guard(func() {}); !ok || reason != "" {
		t.Errorf("guard(%q, %v) for a clean analyzer", reason, ok)
	}
}
