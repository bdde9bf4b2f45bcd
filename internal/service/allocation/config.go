package allocation

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicboard/allotment-api/internal/model"
)

// Store loads the allocation rules file and hot-reloads it on a coarse
// mtime check. A missing or malformed file serves the empty config: no
// candidates, all toggles off, never an error.
type Store struct {
	path string
	ttl  time.Duration
	log  zerolog.Logger

	mu        sync.Mutex
	cached    model.AllocationConfig
	checkedAt time.Time
	mtime     time.Time
}

func NewStore(path string, ttl time.Duration, log zerolog.Logger) *Store {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Store{
		path: path,
		ttl:  ttl,
		log:  log.With().Str("component", "allocation_config").Logger(),
	}
}

// Config returns the current rule configuration. Within the TTL the
// cached copy is served; past it the file's mtime decides whether to
// re-parse. Each caller treats the returned value as immutable.
func (s *Store) Config(_ context.Context) model.AllocationConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if !s.checkedAt.IsZero() && now.Sub(s.checkedAt) < s.ttl {
		return s.cached
	}
	s.checkedAt = now

	info, err := os.Stat(s.path)
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("allocation rules unavailable, serving empty config")
		s.cached = model.AllocationConfig{}
		s.mtime = time.Time{}
		return s.cached
	}
	if info.ModTime().Equal(s.mtime) {
		return s.cached
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read allocation rules, serving empty config")
		s.cached = model.AllocationConfig{}
		return s.cached
	}

	s.cached = ParseConfig(raw, s.log)
	s.mtime = info.ModTime()
	s.log.Info().Str("path", s.path).Int("departments", len(s.cached.Departments)).Msg("allocation rules loaded")
	return s.cached
}

// looseRule is the on-disk shape of one role rule. time_override appears
// both as a list of objects and as an hour-to-names map in legacy files;
// both are folded into the typed model here and the loose shape never
// leaves this file.
type looseRule struct {
	Default      []string            `json:"default"`
	TimeOverride json.RawMessage     `json:"time_override"`
	WhenDoctorIs map[string][]string `json:"when_doctor_is"`
	WhenFirstIs  map[string][]string `json:"when_first_is"`
}

type looseDepartment struct {
	Doctors         []string             `json:"doctors"`
	Assistants      []string             `json:"assistants"`
	AllocationRules map[string]looseRule `json:"allocation_rules"`
}

type looseConfig struct {
	Global      map[string]any             `json:"global"`
	Departments map[string]looseDepartment `json:"departments"`
}

// ParseConfig turns the raw rules JSON into the typed config. Unreadable
// fragments are dropped individually; the result is always usable.
func ParseConfig(raw []byte, log zerolog.Logger) model.AllocationConfig {
	var loose looseConfig
	if err := json.Unmarshal(raw, &loose); err != nil {
		log.Warn().Err(err).Msg("malformed allocation rules, serving empty config")
		return model.AllocationConfig{}
	}

	cfg := model.AllocationConfig{
		Global: model.AllocationSettings{
			CrossDepartmentFallback: truthy(loose.Global["cross_department_fallback"]),
			UsePreferenceFlags:      truthy(loose.Global["use_profile_role_flags"]),
			LoadBalance:             truthy(loose.Global["load_balance"]),
		},
		Departments: map[string]model.DepartmentRules{},
	}

	for name, dept := range loose.Departments {
		deptName := strings.ToUpper(strings.TrimSpace(name))
		if deptName == "" {
			continue
		}
		rules := model.DepartmentRules{
			Name:       deptName,
			Doctors:    cleanNames(dept.Doctors),
			Assistants: cleanNames(dept.Assistants),
			Roles:      map[model.Role]model.RoleRule{},
		}
		for roleName, rule := range dept.AllocationRules {
			role, ok := parseRole(roleName)
			if !ok {
				log.Warn().Str("department", deptName).Str("role", roleName).Msg("unknown role in allocation rules, skipped")
				continue
			}
			rules.Roles[role] = parseRule(rule)
		}
		cfg.Departments[model.CanonKey(deptName)] = rules
	}
	return cfg
}

func parseRule(loose looseRule) model.RoleRule {
	rule := model.RoleRule{
		Default:       cleanNames(loose.Default),
		TimeOverrides: parseTimeOverrides(loose.TimeOverride),
		ByDoctor:      map[string][]string{},
		WhenFirstIs:   map[string][]string{},
	}
	for doctor, names := range loose.WhenDoctorIs {
		if key := model.DoctorKey(doctor); key != "" {
			rule.ByDoctor[key] = cleanNames(names)
		}
	}
	for first, names := range loose.WhenFirstIs {
		if key := model.CanonKey(first); key != "" {
			rule.WhenFirstIs[key] = cleanNames(names)
		}
	}
	return rule
}

// parseTimeOverrides accepts either shape:
//
//	[{"start_hour": 14, "names": ["NIGHT"]}, ...]
//	{"14": ["NIGHT"], "9.5": ["DAY"]}
//
// and returns overrides sorted by descending hour threshold so the
// candidate builder can walk them in precedence order.
func parseTimeOverrides(raw json.RawMessage) []model.TimeOverride {
	if len(raw) == 0 {
		return nil
	}
	var out []model.TimeOverride

	var asList []struct {
		StartHour json.Number `json:"start_hour"`
		Names     []string    `json:"names"`
	}
	if err := json.Unmarshal(raw, &asList); err == nil {
		for _, entry := range asList {
			hour, err := entry.StartHour.Float64()
			if err != nil {
				continue
			}
			if names := cleanNames(entry.Names); len(names) > 0 {
				out = append(out, model.TimeOverride{Hour: hour, Names: names})
			}
		}
	} else {
		var asMap map[string][]string
		if err := json.Unmarshal(raw, &asMap); err != nil {
			return nil
		}
		for hourText, names := range asMap {
			hour, err := strconv.ParseFloat(strings.TrimSpace(hourText), 64)
			if err != nil {
				continue
			}
			if cleaned := cleanNames(names); len(cleaned) > 0 {
				out = append(out, model.TimeOverride{Hour: hour, Names: cleaned})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Hour > out[j].Hour })
	return out
}

func cleanNames(names []string) []string {
	var out []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func parseRole(name string) (model.Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "FIRST":
		return model.RoleFirst, true
	case "SECOND":
		return model.RoleSecond, true
	case "THIRD":
		return model.RoleThird, true
	}
	return "", false
}

// truthy reads the loose boolean vocabulary legacy config files use.
func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "true", "yes", "on":
			return true
		}
	}
	return false
}
