package allocation

import (
	"github.com/clinicboard/allotment-api/internal/model"
)

// Workload counts role-slot occupancy per assistant across the schedule,
// keyed by canonical name. Terminal rows and the excluded row are
// skipped. Used for load-balancing tie-breaks only; with the toggle off
// rule order decides ties.
func Workload(schedule []*model.Appointment, excludeRowID string) map[string]int {
	loads := map[string]int{}
	for _, appt := range schedule {
		if excludeRowID != "" && appt.RowID == excludeRowID {
			continue
		}
		if appt.Status.IsTerminal() {
			continue
		}
		for _, role := range model.Roles() {
			if key := model.CanonKey(appt.RoleValue(role)); key != "" {
				loads[key]++
			}
		}
	}
	return loads
}

// WorkloadRow is one line of the per-assistant workload summary.
type WorkloadRow struct {
	Assistant string `json:"assistant"`
	Total     int    `json:"total"`
	AsFirst   int    `json:"as_first"`
	AsSecond  int    `json:"as_second"`
	AsThird   int    `json:"as_third"`
}

// WorkloadSummary breaks occupancy down by role for reporting.
func WorkloadSummary(schedule []*model.Appointment, assistants []string) []WorkloadRow {
	out := make([]WorkloadRow, 0, len(assistants))
	for _, name := range assistants {
		key := model.CanonKey(name)
		row := WorkloadRow{Assistant: name}
		for _, appt := range schedule {
			if appt.Status.IsTerminal() {
				continue
			}
			switch {
			case model.CanonKey(appt.First) == key:
				row.Total++
				row.AsFirst++
			case model.CanonKey(appt.Second) == key:
				row.Total++
				row.AsSecond++
			case model.CanonKey(appt.Third) == key:
				row.Total++
				row.AsThird++
			}
		}
		out = append(out, row)
	}
	return out
}
