package model

import "strings"

// CanonKey reduces a staff or department name to its comparison key:
// uppercase with every non-alphanumeric character removed. Display names
// keep their original casing; keys are for lookups only.
func CanonKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DoctorKey canonicalizes a doctor name, dropping the honorific prefix so
// "Dr. Mehta" and "MEHTA" resolve to the same key.
func DoctorKey(name string) string {
	s := strings.TrimSpace(strings.ToUpper(name))
	for _, prefix := range []string{"DR.", "DR "} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			break
		}
	}
	return CanonKey(s)
}

// UniqueKeys de-duplicates names by canonical key, preserving first-seen
// order and original spelling.
func UniqueKeys(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := CanonKey(n)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}
