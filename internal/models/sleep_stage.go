package models

import "strings"

// Canonical sleep stage tags as reported in the nocturnal summary.
const (
	StageDeep  = "deep_sleep"
	StageLight = "light_sleep"
	StageREM   = "rem_sleep"
	StageAwake = "awake"
)

// CanonicalStages lists every stage the sleep summary reports. Absent stages
// default to a 0 percentage.
var CanonicalStages = []string{StageDeep, StageLight, StageREM, StageAwake}

// stageTagMap maps lowercased provider stage tags to their canonical form.
// Ring firmware revisions have shipped several spellings for the same stage.
var stageTagMap = map[string]string{
	"deep_sleep":  StageDeep,
	"deep":        StageDeep,
	"light_sleep": StageLight,
	"light":       StageLight,
	"rem_sleep":   StageREM,
	"rem":         StageREM,
	"awake":       StageAwake,
	"wake":        StageAwake,
	"awake_time":  StageAwake,
}

// NormalizeStageTag maps a provider sleep-stage tag to its canonical form.
// Returns the canonical tag and true if recognized, or the original string
// and false if unknown.
func NormalizeStageTag(raw string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := stageTagMap[lower]; ok {
		return canonical, true
	}
	return raw, false
}
