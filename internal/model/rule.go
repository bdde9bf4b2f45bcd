package model

import "sort"

// TimeOverride swaps in a candidate list once an appointment starts at or
// after the hour threshold (fractional hours, e.g. 13.5 = 13:30).
type TimeOverride struct {
	Hour  float64  `json:"start_hour"`
	Names []string `json:"names"`
}

// RoleRule is the allocation rule for one (department, role) pair. It is
// parsed once at config load into this fixed shape; the loosely-typed
// source shapes never leave the loader.
type RoleRule struct {
	// Default is the ordered fallback candidate list.
	Default []string
	// TimeOverrides is kept sorted by descending hour threshold so
	// later-in-day overrides take precedence during candidate building.
	TimeOverrides []TimeOverride
	// ByDoctor maps canonical doctor keys to candidate lists.
	ByDoctor map[string][]string
	// WhenFirstIs maps the canonical FIRST assignee to SECOND candidates.
	// Only meaningful on the SECOND role rule.
	WhenFirstIs map[string][]string
}

// DepartmentRules groups a department's configured staff and per-role rules.
type DepartmentRules struct {
	Name       string
	Doctors    []string
	Assistants []string
	Roles      map[Role]RoleRule
}

// Rule returns the role's rule, zero-valued when unconfigured.
func (d DepartmentRules) Rule(r Role) RoleRule {
	if d.Roles == nil {
		return RoleRule{}
	}
	return d.Roles[r]
}

// AllocationSettings are the three global allocator toggles.
type AllocationSettings struct {
	CrossDepartmentFallback bool
	UsePreferenceFlags      bool
	LoadBalance             bool
}

// AllocationConfig is the parsed rule configuration, immutable within an
// allocation call. A missing or malformed source file yields the zero
// value: no candidates, all toggles off.
type AllocationConfig struct {
	Global      AllocationSettings
	Departments map[string]DepartmentRules // keyed by canonical department
}

// Department looks up a department's rules by display name.
func (c AllocationConfig) Department(name string) (DepartmentRules, bool) {
	d, ok := c.Departments[CanonKey(name)]
	return d, ok
}

// DepartmentNames lists configured departments in stable order.
func (c AllocationConfig) DepartmentNames() []string {
	out := make([]string, 0, len(c.Departments))
	for _, d := range c.Departments {
		out = append(out, d.Name)
	}
	sort.Strings(out)
	return out
}
