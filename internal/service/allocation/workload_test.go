package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicboard/allotment-api/internal/model"
)

func TestWorkload(t *testing.T) {
	schedule := []*model.Appointment{
		{RowID: "r1", First: "Maya", Second: "Ravi", Status: model.StatusPending},
		{RowID: "r2", First: "maya ", Third: "Leela", Status: model.StatusWaiting},
		{RowID: "r3", First: "Maya", Status: model.StatusCancelled},
		{RowID: "r4", First: "Maya", Status: model.StatusPending},
	}

	loads := Workload(schedule, "r4")
	assert.Equal(t, 2, loads[model.CanonKey("Maya")], "terminal and excluded rows do not count")
	assert.Equal(t, 1, loads[model.CanonKey("Ravi")])
	assert.Equal(t, 1, loads[model.CanonKey("Leela")])
}

func TestWorkloadSummary(t *testing.T) {
	schedule := []*model.Appointment{
		{RowID: "r1", First: "Maya", Second: "Ravi", Status: model.StatusPending},
		{RowID: "r2", Second: "Maya", Status: model.StatusPending},
		{RowID: "r3", First: "Maya", Status: model.StatusDone},
	}

	rows := WorkloadSummary(schedule, []string{"Maya", "Ravi", "Noor"})
	assert.Equal(t, []WorkloadRow{
		{Assistant: "Maya", Total: 2, AsFirst: 1, AsSecond: 1},
		{Assistant: "Ravi", Total: 1, AsSecond: 1},
		{Assistant: "Noor"},
	}, rows)
}
