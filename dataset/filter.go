// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"strings"

	"github.com/mgirard/annuaire/utils/textutils"
)

// Criteria is one interaction's worth of filter selections. It is built
// fresh from the request, never persisted, and treated as immutable by the
// filter engine. Empty fields mean "no restriction", never "no rows".
type Criteria struct {
	Name       string
	FirstName  string
	Gender     string
	City       string
	PostalCode string
	Specialty  string

	// Departments is the geography multiselect; a row matches when its
	// department cell equals any of the selected values.
	Departments []string

	// SearchTerm matches by case- and accent-insensitive substring over
	// the shape's searchable columns.
	SearchTerm string
}

// IsZero reports whether no constraint is active.
func (c Criteria) IsZero() bool {
	return c.Name == "" && c.FirstName == "" && c.Gender == "" &&
		c.City == "" && c.PostalCode == "" && c.Specialty == "" &&
		len(c.Departments) == 0 && c.SearchTerm == ""
}

// equality is one active equality constraint bound to a concrete column.
type equality struct {
	column string
	value  string
}

// activeEqualities collects the constraints that can run: non-empty value
// and column present in the table. Anything else is skipped, which keeps
// the "no restriction" semantics for sparse schemas.
func (c Criteria) activeEqualities(t *Table, shape Shape) []equality {
	candidates := []equality{
		{shape.NameColumn, c.Name},
		{shape.FirstNameColumn, c.FirstName},
		{shape.GenderColumn, c.Gender},
		{shape.CityColumn, c.City},
		{shape.PostalColumn, c.PostalCode},
		{shape.SpecialtyColumn, c.Specialty},
	}

	ret := make([]equality, 0, len(candidates))

	for _, e := range candidates {
		// "Tous" is the UI's all-genders option, same as unset
		if e.column == shape.GenderColumn && e.value == "Tous" {
			continue
		}

		if e.value != "" && e.column != "" && t.HasColumn(e.column) {
			ret = append(ret, e)
		}
	}

	return ret
}

// Filter returns the subsequence of rows satisfying all active constraints.
// The input table is never mutated; rows are shared, not copied.
func Filter(t *Table, shape Shape, c Criteria) *Table {
	ret := NewTable(t.Columns...)

	equalities := c.activeEqualities(t, shape)

	departments := c.Departments
	if shape.DepartmentColumn == "" || !t.HasColumn(shape.DepartmentColumn) {
		departments = nil
	}

	term := textutils.LowerASCIIFolding(c.SearchTerm)
	searchColumns := shape.SearchColumns
	if len(searchColumns) == 0 {
		// No searchable columns at all: the term has no effect
		term = ""
	}

	for _, row := range t.Rows {
		if !matchesEqualities(row, equalities) {
			continue
		}

		if len(departments) > 0 && !matchesAny(row.Get(shape.DepartmentColumn), departments) {
			continue
		}

		if term != "" && !matchesSearch(row, searchColumns, term) {
			continue
		}

		ret.Append(row)
	}

	return ret
}

func matchesEqualities(row Row, equalities []equality) bool {
	for _, e := range equalities {
		if row.Get(e.column) != e.value {
			return false
		}
	}

	return true
}

func matchesAny(value string, wanted []string) bool {
	for _, w := range wanted {
		if value == w {
			return true
		}
	}

	return false
}

// A row matches the search when any searchable column contains the folded
// term.
func matchesSearch(row Row, columns []string, foldedTerm string) bool {
	for _, col := range columns {
		if strings.Contains(textutils.LowerASCIIFolding(row.Get(col)), foldedTerm) {
			return true
		}
	}

	return false
}
