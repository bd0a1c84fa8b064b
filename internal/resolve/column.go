// Package resolve identifies which column of a heterogeneous table plays
// a given role (firm name, notes) and normalizes firm names for matching
// across independently authored spreadsheets.
package resolve

import "strings"

// ColumnRule matches a column name. A rule matches when the name contains
// any Contains substring or equals any Equals name, and contains none of
// the Excludes substrings. All comparisons are case-insensitive.
type ColumnRule struct {
	Equals   []string
	Contains []string
	Excludes []string
}

func (r ColumnRule) matches(col string) bool {
	lower := strings.ToLower(strings.TrimSpace(col))
	for _, ex := range r.Excludes {
		if strings.Contains(lower, ex) {
			return false
		}
	}
	for _, eq := range r.Equals {
		if lower == eq {
			return true
		}
	}
	for _, sub := range r.Contains {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

// RoleSpec is an ordered list of column rules for one table role.
// Rules are tried in order; within a rule, columns are scanned in table
// order and the first match wins. FallbackFirst falls back to the
// table's first column when no rule matches.
type RoleSpec struct {
	Name          string
	Rules         []ColumnRule
	FallbackFirst bool
}

// FirmColumn resolves the firm/company identifier column.
// "Account Name" variants win over bare "Name" and generic firm/company/
// organization columns; a notes column never qualifies.
var FirmColumn = RoleSpec{
	Name: "firm",
	Rules: []ColumnRule{
		// One tier: "Account Name" variants or a bare "Name" column.
		// An exact "Name" can never be a notes column, so no exclusion
		// is needed here.
		{Contains: []string{"account name"}, Equals: []string{"name"}},
		{Contains: []string{"firm", "company", "organization"}},
	},
	FallbackFirst: true,
}

// NotesColumn resolves the free-text notes column.
var NotesColumn = RoleSpec{
	Name:  "notes",
	Rules: []ColumnRule{{Contains: []string{"note"}}},
}

// Column selects the column for a role from the table's header, trying
// each rule in priority order. Returns "" and false when no column
// qualifies and the role has no fallback.
func Column(columns []string, role RoleSpec) (string, bool) {
	for _, rule := range role.Rules {
		for _, col := range columns {
			if rule.matches(col) {
				return col, true
			}
		}
	}
	if role.FallbackFirst && len(columns) > 0 {
		return columns[0], true
	}
	return "", false
}
