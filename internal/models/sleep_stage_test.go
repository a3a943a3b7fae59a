package models

import "testing"

// TestNormalizeStageTag_Canonical verifies that canonical tags pass through
// unchanged, confirming the map covers every reported stage.
func TestNormalizeStageTag_Canonical(t *testing.T) {
	for _, tag := range CanonicalStages {
		got, known := NormalizeStageTag(tag)
		if !known {
			t.Errorf("NormalizeStageTag(%q): expected known=true", tag)
		}
		if got != tag {
			t.Errorf("NormalizeStageTag(%q) = %q, want %q", tag, got, tag)
		}
	}
}

// TestNormalizeStageTag_Variants verifies that shortened and legacy provider
// spellings resolve to their canonical tags.
func TestNormalizeStageTag_Variants(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"deep", StageDeep},
		{"light", StageLight},
		{"rem", StageREM},
		{"wake", StageAwake},
		{"awake_time", StageAwake},
		{"DEEP_SLEEP", StageDeep},
		{"  rem  ", StageREM},
	}
	for _, tc := range cases {
		got, known := NormalizeStageTag(tc.input)
		if !known {
			t.Errorf("NormalizeStageTag(%q): expected known=true", tc.input)
		}
		if got != tc.want {
			t.Errorf("NormalizeStageTag(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// TestNormalizeStageTag_Unknown verifies that unrecognized tags are returned
// as-is with known=false, so callers can skip them.
func TestNormalizeStageTag_Unknown(t *testing.T) {
	got, known := NormalizeStageTag("hypnagogia")
	if known {
		t.Error("NormalizeStageTag(unknown): expected known=false")
	}
	if got != "hypnagogia" {
		t.Errorf("NormalizeStageTag(unknown) = %q, want original", got)
	}
}
