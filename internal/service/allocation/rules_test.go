package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicboard/allotment-api/internal/model"
)

func TestCandidatesFor_StageOrder(t *testing.T) {
	rule := model.RoleRule{
		Default: []string{"DEF1", "DEF2"},
		TimeOverrides: []model.TimeOverride{
			{Hour: 14, Names: []string{"LATE"}},
			{Hour: 9, Names: []string{"EARLY"}},
		},
		ByDoctor: map[string][]string{
			model.DoctorKey("Dr. Rao"): {"DOC1"},
		},
		WhenFirstIs: map[string][]string{
			model.CanonKey("Maya"): {"PAIRED"},
		},
	}

	// SECOND at 15:00 with Maya as FIRST: conditional, doctor, both
	// matching time overrides latest-first, then default.
	got := CandidatesFor(model.RoleSecond, rule, "Dr. Rao", 15.0, "Maya")
	assert.Equal(t, []string{"PAIRED", "DOC1", "LATE", "EARLY", "DEF1", "DEF2"}, got)

	// FIRST never consults the conditional list.
	got = CandidatesFor(model.RoleFirst, rule, "Dr. Rao", 15.0, "Maya")
	assert.Equal(t, []string{"DOC1", "LATE", "EARLY", "DEF1", "DEF2"}, got)

	// At 10:30 only the 9-o'clock override has fired.
	got = CandidatesFor(model.RoleFirst, rule, "Dr. Rao", 10.5, "")
	assert.Equal(t, []string{"DOC1", "EARLY", "DEF1", "DEF2"}, got)

	// Threshold is inclusive: a 14.0 start fires the 14 override.
	got = CandidatesFor(model.RoleFirst, rule, "unknown doc", 14.0, "")
	assert.Equal(t, []string{"LATE", "EARLY", "DEF1", "DEF2"}, got)
}

func TestCandidatesFor_DedupKeepsFirstOccurrence(t *testing.T) {
	rule := model.RoleRule{
		Default: []string{"maya", "Ravi"},
		ByDoctor: map[string][]string{
			model.DoctorKey("Dr. Rao"): {"MAYA", "Leela"},
		},
	}
	got := CandidatesFor(model.RoleFirst, rule, "Dr. Rao", 10, "")
	// "maya" from the default stage collapses into the earlier "MAYA",
	// which keeps its configured casing.
	assert.Equal(t, []string{"MAYA", "Leela", "Ravi"}, got)
}

func TestCandidatesFor_EmptyRule(t *testing.T) {
	got := CandidatesFor(model.RoleThird, model.RoleRule{}, "Dr. Rao", 10, "")
	assert.Empty(t, got)
}
