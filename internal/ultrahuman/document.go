package ultrahuman

import (
	"encoding/json"

	"github.com/claude/nightring/internal/models"
)

// MetricKind enumerates the metric stream type tags in a partner API document.
// Tags match the provider's wire values, including the capitalized Sleep.
type MetricKind string

const (
	KindHeartRate   MetricKind = "hr"
	KindSleep       MetricKind = "Sleep"
	KindHRV         MetricKind = "hrv"
	KindTemperature MetricKind = "temp"
)

// Document is one raw metrics payload:
// {"data": {"metric_data": [{"type": ..., "object": ...}, ...]}}.
// Structural absence at any level collapses to "no data", never an error.
type Document struct {
	Data *documentData `json:"data"`
}

type documentData struct {
	MetricData []MetricEntry `json:"metric_data"`
}

// MetricEntry is one typed stream in the metric_data list. Object is kept raw
// until a consumer asks for it with a concrete shape.
type MetricEntry struct {
	Type   string          `json:"type"`
	Object json.RawMessage `json:"object"`
}

// ParseDocument decodes a raw response body into a Document.
func ParseDocument(body []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// HasMetricData reports whether the document carries a metric_data list at
// all. A missing data or metric_data key is a "no usable data" condition,
// distinct from a fetch error.
func (d *Document) HasMetricData() bool {
	return d != nil && d.Data != nil && d.Data.MetricData != nil
}

// Stream returns the payload of the first metric entry matching kind.
// Duplicate streams for a kind can appear upstream; the first match is
// authoritative.
func (d *Document) Stream(kind MetricKind) (json.RawMessage, bool) {
	if d == nil || d.Data == nil {
		return nil, false
	}
	for _, e := range d.Data.MetricData {
		if e.Type == string(kind) {
			return e.Object, true
		}
	}
	return nil, false
}

// rawSample mirrors one wire sample with optional fields so partial entries
// can be skipped instead of defaulting to zero values.
type rawSample struct {
	Timestamp *int64   `json:"timestamp"`
	Value     *float64 `json:"value"`
}

// Samples decodes the sample sequence for kind. The payload may be a bare
// array or wrapped in {"values": [...]}; entries missing either field are
// dropped. Absent or malformed payloads yield an empty slice.
func (d *Document) Samples(kind MetricKind) []models.Sample {
	raw, ok := d.Stream(kind)
	if !ok {
		return nil
	}
	return decodeSamples(raw)
}

func decodeSamples(raw json.RawMessage) []models.Sample {
	var entries []rawSample
	if err := json.Unmarshal(raw, &entries); err != nil {
		// Probe the wrapped shape before giving up.
		var wrapped struct {
			Values []rawSample `json:"values"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil
		}
		entries = wrapped.Values
	}

	out := make([]models.Sample, 0, len(entries))
	for _, e := range entries {
		if e.Timestamp == nil || e.Value == nil {
			continue
		}
		out = append(out, models.Sample{Timestamp: *e.Timestamp, Value: *e.Value})
	}
	return out
}

// SleepData is the structured sleep payload. Bedtimes and avg_hrv are decoded
// as pointers: a present zero must stay distinguishable from an absent field.
type SleepData struct {
	BedtimeStart *int64       `json:"bedtime_start"`
	BedtimeEnd   *int64       `json:"bedtime_end"`
	AvgHRV       *float64     `json:"avg_hrv"`
	Stages       []SleepStage `json:"sleep_stages"`
}

// SleepStage is one entry in the sleep_stages list.
type SleepStage struct {
	Stage      string   `json:"stage"`
	Percentage *float64 `json:"percentage"`
}

// Sleep decodes the sleep payload, or nil when it is absent or malformed.
func (d *Document) Sleep() *SleepData {
	raw, ok := d.Stream(KindSleep)
	if !ok {
		return nil
	}
	var sd SleepData
	if err := json.Unmarshal(raw, &sd); err != nil {
		return nil
	}
	return &sd
}
