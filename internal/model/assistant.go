package model

import (
	"strconv"
	"strings"
	"time"
)

// RolePreference is a per-assistant, per-role allow/deny signal.
type RolePreference string

const (
	PreferenceUnspecified RolePreference = ""
	PreferenceAllow       RolePreference = "allow"
	PreferenceDeny        RolePreference = "deny"
)

// ParseRolePreference maps the loose spreadsheet vocabulary onto the
// three-valued preference. Anything unrecognized is unspecified.
func ParseRolePreference(s string) RolePreference {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Y", "YES", "ALLOW", "TRUE", "1":
		return PreferenceAllow
	case "N", "NO", "DENY", "FALSE", "0":
		return PreferenceDeny
	}
	return PreferenceUnspecified
}

// Assistant is a clinical assistant profile. The engine only reads these.
type Assistant struct {
	Base
	Name       string         `json:"name" db:"name"`
	Department string         `json:"department" db:"department"`
	Phone      string         `json:"phone" db:"phone"`
	Email      string         `json:"email" db:"email"`
	WeeklyOff  string         `json:"weekly_off" db:"weekly_off"`
	PrefFirst  RolePreference `json:"pref_first" db:"pref_first"`
	PrefSecond RolePreference `json:"pref_second" db:"pref_second"`
	PrefThird  RolePreference `json:"pref_third" db:"pref_third"`
	Active     bool           `json:"active" db:"active"`
}

// Preference returns the assistant's flag for a role slot.
func (a *Assistant) Preference(r Role) RolePreference {
	switch r {
	case RoleFirst:
		return a.PrefFirst
	case RoleSecond:
		return a.PrefSecond
	case RoleThird:
		return a.PrefThird
	}
	return PreferenceUnspecified
}

// WeeklyOffDays parses the stored weekly-off field into weekdays.
func (a *Assistant) WeeklyOffDays() []time.Weekday {
	return ParseWeeklyOff(a.WeeklyOff)
}

var weekdayNames = map[string]time.Weekday{
	"MON": time.Monday, "MONDAY": time.Monday,
	"TUE": time.Tuesday, "TUESDAY": time.Tuesday,
	"WED": time.Wednesday, "WEDNESDAY": time.Wednesday,
	"THU": time.Thursday, "THURSDAY": time.Thursday,
	"FRI": time.Friday, "FRIDAY": time.Friday,
	"SAT": time.Saturday, "SATURDAY": time.Saturday,
	"SUN": time.Sunday, "SUNDAY": time.Sunday,
}

// ParseWeeklyOff reads a comma-separated weekly-off value such as
// "MON,THU". Bare integers are accepted as legacy Monday-based indexes
// (0 = Monday). Unrecognized parts are skipped.
func ParseWeeklyOff(value string) []time.Weekday {
	var out []time.Weekday
	for _, part := range strings.Split(value, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if day, ok := weekdayNames[part]; ok {
			out = append(out, day)
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil && idx >= 0 && idx <= 6 {
			out = append(out, time.Weekday((idx+1)%7))
		}
	}
	return out
}

// CreateAssistantRequest is the admin profile-entry payload.
type CreateAssistantRequest struct {
	Name       string `json:"name" binding:"required"`
	Department string `json:"department" binding:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
	WeeklyOff  string `json:"weekly_off"`
	PrefFirst  string `json:"pref_first"`
	PrefSecond string `json:"pref_second"`
	PrefThird  string `json:"pref_third"`
}

// UpdateAssistantRequest carries partial profile edits.
type UpdateAssistantRequest struct {
	Department *string `json:"department"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email" binding:"omitempty,email"`
	WeeklyOff  *string `json:"weekly_off"`
	PrefFirst  *string `json:"pref_first"`
	PrefSecond *string `json:"pref_second"`
	PrefThird  *string `json:"pref_third"`
	Active     *bool   `json:"active"`
}
