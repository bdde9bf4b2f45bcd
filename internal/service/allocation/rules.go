package allocation

import (
	"github.com/clinicboard/allotment-api/internal/model"
)

// CandidatesFor builds the ordered candidate list for one role slot. The
// stages append in precedence order and de-duplication keeps the first
// occurrence:
//
//  1. SECOND only: the rule's first-assignee-conditional list;
//  2. the doctor-override list;
//  3. every time override whose hour threshold is at or before the
//     appointment's start hour, walked from the latest threshold down;
//     all matching lists are concatenated, not just the best one;
//  4. the default list.
//
// Comparison uses canonical keys; returned names keep their configured
// casing.
func CandidatesFor(role model.Role, rule model.RoleRule, doctor string, startHour float64, firstAssignee string) []string {
	var out []string

	if role == model.RoleSecond && firstAssignee != "" {
		out = append(out, rule.WhenFirstIs[model.CanonKey(firstAssignee)]...)
	}

	out = append(out, rule.ByDoctor[model.DoctorKey(doctor)]...)

	// TimeOverrides is pre-sorted by descending hour at config parse.
	for _, override := range rule.TimeOverrides {
		if override.Hour <= startHour {
			out = append(out, override.Names...)
		}
	}

	out = append(out, rule.Default...)

	return model.UniqueKeys(out)
}
