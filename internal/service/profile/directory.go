// Package profile holds the ProfileDirectory: every staff lookup the
// engine performs goes through this one object instead of ambient shared
// state, so a cache bust is explicit and unit tests stay deterministic.
package profile

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/repository"
)

// SharedDepartment is the placeholder department for staff whose
// department cannot be resolved.
const SharedDepartment = "SHARED"

const snapshotKey = "profiles"

// RulesProvider supplies the current allocation config; department
// membership configured there backfills profiles that carry no department.
type RulesProvider interface {
	Config(ctx context.Context) model.AllocationConfig
}

// Directory caches profile-derived lookup maps with a coarse TTL.
// Readers re-read on every call; staleness within the TTL is acceptable
// because allocation is advisory.
type Directory struct {
	repo  repository.ProfileRepository
	rules RulesProvider
	cache *gocache.Cache
	ttl   time.Duration
	log   zerolog.Logger
}

func NewDirectory(repo repository.ProfileRepository, rules RulesProvider, ttl time.Duration, log zerolog.Logger) *Directory {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Directory{
		repo:  repo,
		rules: rules,
		cache: gocache.New(ttl, 10*time.Minute),
		ttl:   ttl,
		log:   log.With().Str("component", "profile_directory").Logger(),
	}
}

// Invalidate drops the cached snapshot so the next lookup rebuilds it.
// Called after profile edits.
func (d *Directory) Invalidate() {
	d.cache.Delete(snapshotKey)
}

// view is one immutable build of the lookup maps.
type view struct {
	assistants    []string
	doctors       []string
	assistantDept map[string]string
	doctorDept    map[string]string
	prefs         map[string]*model.Assistant
	byDept        map[string][]string
	weeklyOff     map[time.Weekday][]string
	departments   []string
}

func (d *Directory) snapshot(ctx context.Context) *view {
	if cached, ok := d.cache.Get(snapshotKey); ok {
		return cached.(*view)
	}
	v := d.build(ctx)
	d.cache.SetDefault(snapshotKey, v)
	return v
}

// build assembles the maps from the profile store plus department
// membership in the allocation config. Lookup misses degrade to empty
// results; a repository failure yields an empty view, never an error.
func (d *Directory) build(ctx context.Context) *view {
	v := &view{
		assistantDept: map[string]string{},
		doctorDept:    map[string]string{},
		prefs:         map[string]*model.Assistant{},
		byDept:        map[string][]string{},
		weeklyOff:     map[time.Weekday][]string{},
	}

	cfg := model.AllocationConfig{}
	if d.rules != nil {
		cfg = d.rules.Config(ctx)
	}
	cfgAssistantDept := map[string]string{}
	cfgDoctorDept := map[string]string{}
	for _, dept := range cfg.Departments {
		deptName := strings.ToUpper(dept.Name)
		v.departments = append(v.departments, deptName)
		for _, name := range dept.Doctors {
			if key := model.DoctorKey(name); key != "" {
				if _, ok := cfgDoctorDept[key]; !ok {
					cfgDoctorDept[key] = deptName
				}
			}
		}
		for _, name := range dept.Assistants {
			if key := model.CanonKey(name); key != "" {
				if _, ok := cfgAssistantDept[key]; !ok {
					cfgAssistantDept[key] = deptName
				}
			}
		}
	}

	assistants, err := d.repo.ListAssistants(ctx)
	if err != nil {
		d.log.Error().Err(err).Msg("failed to load assistants, serving empty directory")
		return v
	}
	for _, a := range assistants {
		if !a.Active {
			continue
		}
		name := strings.ToUpper(strings.TrimSpace(a.Name))
		if name == "" {
			continue
		}
		key := model.CanonKey(name)
		dept := strings.ToUpper(strings.TrimSpace(a.Department))
		if dept == "" {
			dept = cfgAssistantDept[key]
		}
		if dept == "" {
			dept = SharedDepartment
		}
		v.assistants = append(v.assistants, name)
		v.assistantDept[key] = dept
		v.prefs[key] = a
		deptKey := model.CanonKey(dept)
		v.byDept[deptKey] = append(v.byDept[deptKey], name)
		for _, day := range a.WeeklyOffDays() {
			v.weeklyOff[day] = append(v.weeklyOff[day], name)
		}
	}

	doctors, err := d.repo.ListDoctors(ctx)
	if err != nil {
		d.log.Error().Err(err).Msg("failed to load doctors, serving assistants only")
		return v
	}
	for _, doc := range doctors {
		if !doc.Active {
			continue
		}
		name := strings.ToUpper(strings.TrimSpace(doc.Name))
		if name == "" {
			continue
		}
		key := model.DoctorKey(name)
		dept := strings.ToUpper(strings.TrimSpace(doc.Department))
		if dept == "" {
			dept = cfgDoctorDept[key]
		}
		v.doctors = append(v.doctors, name)
		v.doctorDept[key] = dept
	}

	return v
}

// AllAssistants lists active assistant names.
func (d *Directory) AllAssistants(ctx context.Context) []string {
	return d.snapshot(ctx).assistants
}

// AllDoctors lists active doctor names.
func (d *Directory) AllDoctors(ctx context.Context) []string {
	return d.snapshot(ctx).doctors
}

// Departments lists department names known to profiles or config.
func (d *Directory) Departments(ctx context.Context) []string {
	return d.snapshot(ctx).departments
}

// DepartmentForAssistant resolves an assistant's department, falling back
// to the shared placeholder.
func (d *Directory) DepartmentForAssistant(ctx context.Context, name string) string {
	if dept, ok := d.snapshot(ctx).assistantDept[model.CanonKey(name)]; ok && dept != "" {
		return dept
	}
	return SharedDepartment
}

// DepartmentForDoctor resolves a doctor's department. An exact profile
// match wins; otherwise a normalized suffix/prefix match against known
// doctor names is tried. The fuzzy fallback can conflate two doctors
// sharing a name suffix; it is kept for legacy rows that abbreviate
// doctor names.
func (d *Directory) DepartmentForDoctor(ctx context.Context, name string) string {
	v := d.snapshot(ctx)
	key := model.DoctorKey(name)
	if key == "" {
		return ""
	}
	if dept, ok := v.doctorDept[key]; ok {
		return dept
	}
	for known, dept := range v.doctorDept {
		if known == "" {
			continue
		}
		if strings.HasSuffix(known, key) || strings.HasSuffix(key, known) ||
			strings.HasPrefix(known, key) || strings.HasPrefix(key, known) {
			return dept
		}
	}
	return ""
}

// AssistantsInDepartment returns the department's assistant pool. When
// profiles yield nothing it falls back to the config's membership list,
// then to the full roster, mirroring how the clinic's sheets are often
// half-filled.
func (d *Directory) AssistantsInDepartment(ctx context.Context, dept string) []string {
	v := d.snapshot(ctx)
	if pool := v.byDept[model.CanonKey(dept)]; len(pool) > 0 {
		return pool
	}
	if d.rules != nil {
		if cfgDept, ok := d.rules.Config(ctx).Department(dept); ok && len(cfgDept.Assistants) > 0 {
			return model.UniqueKeys(cfgDept.Assistants)
		}
	}
	return v.assistants
}

// DoctorsInDepartment lists doctors whose resolved department matches.
func (d *Directory) DoctorsInDepartment(ctx context.Context, dept string) []string {
	v := d.snapshot(ctx)
	deptUpper := strings.ToUpper(strings.TrimSpace(dept))
	var out []string
	for _, name := range v.doctors {
		if v.doctorDept[model.DoctorKey(name)] == deptUpper {
			out = append(out, name)
		}
	}
	return out
}

// WeeklyOff returns the canonical keys of assistants off on the weekday.
func (d *Directory) WeeklyOff(ctx context.Context, day time.Weekday) map[string]bool {
	out := map[string]bool{}
	for _, name := range d.snapshot(ctx).weeklyOff[day] {
		out[model.CanonKey(name)] = true
	}
	return out
}

// PreferenceFlags returns the assistant's per-role flags, all unspecified
// when the assistant is unknown.
func (d *Directory) PreferenceFlags(ctx context.Context, assistant string) map[model.Role]model.RolePreference {
	flags := map[model.Role]model.RolePreference{
		model.RoleFirst:  model.PreferenceUnspecified,
		model.RoleSecond: model.PreferenceUnspecified,
		model.RoleThird:  model.PreferenceUnspecified,
	}
	if a, ok := d.snapshot(ctx).prefs[model.CanonKey(assistant)]; ok {
		for _, role := range model.Roles() {
			flags[role] = a.Preference(role)
		}
	}
	return flags
}
