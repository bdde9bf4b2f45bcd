// Package allocation chooses, per role slot on an appointment, the best
// available assistant under the department's layered rule set. The
// allocator is greedy and total: it never errors, it degrades to blank
// slots, and it sits beneath manual editing rather than replacing it.
package allocation

import (
	"sort"
	"strings"

	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/service/availability"
	"github.com/clinicboard/allotment-api/internal/timeutil"
)

// Outcome says how a role slot ended up the way it did. The public
// contract is the role map alone; outcomes exist for tests and metrics.
type Outcome string

const (
	OutcomeFilled       Outcome = "filled"
	OutcomeKeptExisting Outcome = "kept_existing"
	OutcomeNoCandidate  Outcome = "no_candidate"
	OutcomeNoDoctor     Outcome = "no_doctor"
	OutcomeBadWindow    Outcome = "bad_window"
)

// RoleResult is the per-slot detail behind the role map.
type RoleResult struct {
	Assistant       string
	Outcome         Outcome
	CrossDepartment bool
}

// Result is a completed allocation pass.
type Result struct {
	Roles   model.RoleAssignment
	Details map[model.Role]RoleResult
}

// Input is everything one allocation pass reads. The caller resolves the
// department and builds the pools; Allocate itself performs no lookups.
type Input struct {
	Doctor        string
	Department    string
	Start, End    string
	ExcludeRowID  string
	Current       model.RoleAssignment
	OnlyFillEmpty bool
	Config        model.AllocationConfig
	DeptPool      []string
	FullPool      []string
	// Prefs maps canonical assistant keys to per-role flags; nil means
	// flags are unknown and the preference filter passes everyone.
	Prefs map[string]map[model.Role]model.RolePreference
	Snap  *availability.Snapshot
}

// pool is an availability-ordered candidate universe: keys in pool order
// plus a key-to-display-name map.
type pool struct {
	order   []string
	display map[string]string
}

// Allocate fills FIRST, SECOND and THIRD in that fixed order, carrying
// the claimed-name set and FIRST's resolved value forward. It is a total
// function; every failure mode lands in a blank slot with an outcome.
func Allocate(in Input) Result {
	res := Result{
		Roles:   model.RoleAssignment{},
		Details: map[model.Role]RoleResult{},
	}
	for _, role := range model.Roles() {
		res.Roles[role] = strings.TrimSpace(in.Current[role])
		if res.Roles[role] != "" {
			res.Details[role] = RoleResult{Assistant: res.Roles[role], Outcome: OutcomeKeptExisting}
		}
	}

	fail := func(outcome Outcome) Result {
		for _, role := range model.Roles() {
			if res.Roles[role] == "" {
				res.Details[role] = RoleResult{Outcome: outcome}
			}
		}
		return res
	}

	if strings.TrimSpace(in.Doctor) == "" {
		return fail(OutcomeNoDoctor)
	}
	window, ok := timeutil.ParseWindow(in.Start, in.End)
	if !ok {
		return fail(OutcomeBadWindow)
	}
	startHour := timeutil.FractionalHour(window.Start)

	deptRules, _ := in.Config.Department(in.Department)

	deptPool := buildPool(in.Snap, in.DeptPool, in.Start, in.End, in.ExcludeRowID)
	fullPool := deptPool
	if in.Config.Global.CrossDepartmentFallback {
		fullPool = buildPool(in.Snap, in.FullPool, in.Start, in.End, in.ExcludeRowID)
	}

	var loads map[string]int
	if in.Config.Global.LoadBalance {
		loads = Workload(in.Snap.Schedule, in.ExcludeRowID)
	}

	claimed := map[string]bool{}
	for _, role := range model.Roles() {
		if key := model.CanonKey(res.Roles[role]); key != "" {
			claimed[key] = true
		}
	}

	for _, role := range model.Roles() {
		if in.OnlyFillEmpty && res.Roles[role] != "" {
			continue
		}
		candidates := CandidatesFor(role, deptRules.Rule(role), in.Doctor, startHour, res.Roles[model.RoleFirst])

		chosen := in.pick(role, candidates, deptPool, claimed, loads)
		if chosen == "" {
			// Generic fallback: any available department assistant.
			chosen = in.pick(role, deptPool.displayOrder(), deptPool, claimed, loads)
		}
		cross := false
		if chosen == "" && in.Config.Global.CrossDepartmentFallback {
			chosen = in.pick(role, candidates, fullPool, claimed, loads)
			if chosen == "" {
				chosen = in.pick(role, fullPool.displayOrder(), fullPool, claimed, loads)
			}
			cross = chosen != ""
		}

		if chosen == "" {
			res.Details[role] = RoleResult{Outcome: OutcomeNoCandidate}
			continue
		}
		res.Roles[role] = chosen
		res.Details[role] = RoleResult{Assistant: chosen, Outcome: OutcomeFilled, CrossDepartment: cross}
		claimed[model.CanonKey(chosen)] = true
	}

	return res
}

// buildPool runs the coarse busy-now pre-filter and the window-specific
// resolver over a pool, preserving pool order.
func buildPool(snap *availability.Snapshot, names []string, start, end, excludeRowID string) pool {
	p := pool{display: map[string]string{}}
	for _, name := range names {
		key := model.CanonKey(name)
		if key == "" || p.display[key] != "" {
			continue
		}
		if snap.BusyWithAppointment(name) {
			continue
		}
		if verdict := snap.IsAvailable(name, start, end, excludeRowID); !verdict.Available {
			continue
		}
		p.order = append(p.order, key)
		p.display[key] = name
	}
	return p
}

func (p pool) displayOrder() []string {
	out := make([]string, 0, len(p.order))
	for _, key := range p.order {
		out = append(out, p.display[key])
	}
	return out
}

// pick selects the first qualifying candidate: available in the pool, not
// already claimed by another role on this appointment, and not explicitly
// denied for the role when preference flags are in force. With load
// balancing on, the qualifying set is ordered by current workload first,
// candidate order breaking ties.
func (in Input) pick(role model.Role, candidates []string, p pool, claimed map[string]bool, loads map[string]int) string {
	var qualifying []string
	for _, name := range candidates {
		key := model.CanonKey(name)
		if key == "" || claimed[key] {
			continue
		}
		if _, ok := p.display[key]; !ok {
			continue
		}
		if in.Config.Global.UsePreferenceFlags && in.Prefs != nil {
			if flags, ok := in.Prefs[key]; ok && flags[role] == model.PreferenceDeny {
				continue
			}
		}
		qualifying = append(qualifying, key)
	}
	if len(qualifying) == 0 {
		return ""
	}
	if in.Config.Global.LoadBalance {
		sort.SliceStable(qualifying, func(i, j int) bool {
			return loads[qualifying[i]] < loads[qualifying[j]]
		})
	}
	return p.display[qualifying[0]]
}
