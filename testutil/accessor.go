// Package testutil provides a deterministic in-memory implementation of the
// table accessor contracts, used by the test suites and by embedding callers
// that want to exercise resolution without a real tables stream.
package testutil

import (
	"github.com/chuacw/dnlib/tables"
)

// MemAccessor is an in-memory tables.TableAccessor plus tables.StringLookup.
// Populate it with AddRow/Intern, then hand it to the resolver. It is not
// safe for mutation after sharing, matching the load-then-read-only contract
// of real metadata.
type MemAccessor struct {
	rows        map[tables.Table][][]uint32
	sorted      map[tables.Table]bool
	corrupt     map[tables.Table]map[uint32]bool
	strs        map[uint32]string
	nextStr     uint32
	deletedRows bool
}

// NewMemAccessor creates an empty accessor: every table has zero rows, no
// table is sorted, and no tombstones are declared.
func NewMemAccessor() *MemAccessor {
	return &MemAccessor{
		rows:    make(map[tables.Table][][]uint32),
		sorted:  make(map[tables.Table]bool),
		corrupt: make(map[tables.Table]map[uint32]bool),
		strs:    make(map[uint32]string),
		nextStr: 1,
	}
}

// AddRow appends a row with the given column values to t and returns its rid.
func (a *MemAccessor) AddRow(t tables.Table, cols ...uint32) uint32 {
	a.rows[t] = append(a.rows[t], cols)
	return uint32(len(a.rows[t]))
}

// SetSorted sets the declared-sorted flag of t.
func (a *MemAccessor) SetSorted(t tables.Table, sorted bool) {
	a.sorted[t] = sorted
}

// SetHasDeletedRows sets the global tombstone declaration.
func (a *MemAccessor) SetHasDeletedRows(b bool) {
	a.deletedRows = b
}

// Corrupt marks one row of t so that every read of it fails, simulating a
// row the byte-level reader cannot decode.
func (a *MemAccessor) Corrupt(t tables.Table, rid uint32) {
	if a.corrupt[t] == nil {
		a.corrupt[t] = make(map[uint32]bool)
	}
	a.corrupt[t][rid] = true
}

// Intern stores s in the fake #Strings heap and returns its offset.
// The empty string is always offset 0.
func (a *MemAccessor) Intern(s string) uint32 {
	if s == "" {
		return 0
	}
	off := a.nextStr
	a.nextStr += uint32(len(s)) + 1
	a.strs[off] = s
	return off
}

// RowCount implements tables.TableAccessor.
func (a *MemAccessor) RowCount(t tables.Table) uint32 {
	return uint32(len(a.rows[t]))
}

// ReadColumn implements tables.TableAccessor.
func (a *MemAccessor) ReadColumn(t tables.Table, rid uint32, column int) (uint32, error) {
	if rid == 0 || rid > uint32(len(a.rows[t])) || a.corrupt[t][rid] {
		return 0, &tables.ErrRowOutOfRange{Table: t, Rid: rid}
	}
	row := a.rows[t][rid-1]
	if column < 0 || column >= len(row) {
		return 0, &tables.ErrColumnOutOfRange{Table: t, Column: column}
	}
	return row[column], nil
}

// IsSorted implements tables.TableAccessor.
func (a *MemAccessor) IsSorted(t tables.Table) bool {
	return a.sorted[t]
}

// HasDeletedRows implements tables.TableAccessor.
func (a *MemAccessor) HasDeletedRows() bool {
	return a.deletedRows
}

// Name implements tables.StringLookup.
func (a *MemAccessor) Name(offset uint32) string {
	return a.strs[offset]
}
