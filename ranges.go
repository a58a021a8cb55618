package dnlib

import "github.com/chuacw/dnlib/tables"

// childRange computes the contiguous logical range of child rows owned by
// parentRid: the parent row's list column gives the start, the next parent
// row's list column (or the end of the child table) gives the end.
//
// The two list columns are untrusted integers. Everything is clamped so
// the result never underflows, never exceeds the child table's bounds and
// never faults, whatever the metadata contains.
func (r *Resolver) childRange(parent tables.Table, parentRid uint32, listColumn int, child tables.Table) tables.RidList {
	start, err := r.tables.ReadColumn(parent, parentRid, listColumn)
	if err != nil {
		r.skippedRow(parent, parentRid, err)
		return tables.RidList{}
	}
	lastRid := r.tables.RowCount(child) + 1
	if start == 0 || start >= lastRid {
		return tables.RidList{}
	}

	// A failed read here is expected: parentRid may be the last row.
	end := lastRid
	if next, err := r.tables.ReadColumn(parent, parentRid+1, listColumn); err == nil && next != 0 {
		end = next
	}
	if end < start {
		end = start
	}
	if end > lastRid {
		end = lastRid
	}
	return tables.FromRange(start, end-start)
}
