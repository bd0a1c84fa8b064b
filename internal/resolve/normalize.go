package resolve

import "strings"

// Normalize standardizes a firm name for matching: trimmed and
// lower-cased. Empty names and the pandas null artifacts "nan"/"none"
// normalize to "". Normalize is idempotent.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "nan", "none":
		return ""
	}
	return name
}

// SameFirm reports whether two firm names refer to the same firm: equal
// after normalization, or one a non-empty substring of the other.
//
// Containment can false-positive when one firm name is a short substring
// of another (e.g. "Ward" vs "4WARD Ventures"). Callers mitigate by
// always trying exact normalized matches before containment scans.
func SameFirm(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}
