// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataset handles the tabular open-data directories: loading,
// shape detection, and filtering.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
)

// Row maps a column name to its cell value. A missing column reads as the
// empty string.
type Row map[string]string

// Get returns the cell value for the column, empty string when absent.
func (r Row) Get(column string) string {
	return r[column]
}

// Table is an ordered sequence of rows sharing a column set. Columns are
// not fixed in advance; consumers probe for presence instead of assuming
// a rigid schema.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the column is part of the table.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}

	return false
}

// AddColumn appends a column to the ordering if it is not already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Append adds a row to the table.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Distinct returns the sorted set of non-empty values in the column.
func (t *Table) Distinct(column string) []string {
	seen := make(map[string]struct{})

	for _, row := range t.Rows {
		if v := row.Get(column); v != "" {
			seen[v] = struct{}{}
		}
	}

	ret := make([]string, 0, len(seen))
	for v := range seen {
		ret = append(ret, v)
	}

	sort.Strings(ret)

	return ret
}

// ValueCount is a (value, occurrences) pair produced by ValueCounts.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ValueCounts returns non-empty values of the column ordered by descending
// count, ties broken alphabetically. limit <= 0 means no limit.
func (t *Table) ValueCounts(column string, limit int) []ValueCount {
	counts := make(map[string]int)

	for _, row := range t.Rows {
		if v := row.Get(column); v != "" {
			counts[v]++
		}
	}

	ret := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		ret = append(ret, ValueCount{Value: v, Count: n})
	}

	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Count != ret[j].Count {
			return ret[i].Count > ret[j].Count
		}

		return ret[i].Value < ret[j].Value
	})

	if limit > 0 && len(ret) > limit {
		ret = ret[:limit]
	}

	return ret
}

// WriteCSV serializes the table as comma-separated UTF-8 with a header row.
// This is the export format, independent of the `;`-separated ingest format.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	record := make([]string, len(t.Columns))

	for _, row := range t.Rows {
		for i, c := range t.Columns {
			record[i] = row.Get(c)
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}
