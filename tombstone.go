package dnlib

import (
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/chuacw/dnlib/tables"
)

// deletedNamePrefix marks rows logically deleted by an edit-and-continue
// session. The prefix alone is not enough; the row's RTSpecialName flags
// bit must be set too.
const deletedNamePrefix = "_Deleted"

// rtSpecialNameBits gives, per tombstone-capable table, the RTSpecialName
// bit of the row's flags column. Param rows are deliberately absent: the
// format supports pointer indirection for Param but no deletion marker.
var rtSpecialNameBits = map[tables.Table]uint32{
	tables.TypeDef:  0x0800,
	tables.Field:    0x0400,
	tables.Method:   0x1000,
	tables.Event:    0x0400,
	tables.Property: 0x0400,
}

// tombstoneSet is the lazily built set of tombstoned rids of one table.
// Built at most once per loaded metadata and immutable afterwards.
type tombstoneSet struct {
	once sync.Once
	bm   *roaring.Bitmap
}

// isDeleted reports whether rid of t is a tombstone. Only meaningful when
// the metadata declares deleted rows exist; callers check that first.
func (r *Resolver) isDeleted(t tables.Table, rid uint32) bool {
	ts := r.tombs[t]
	if ts == nil {
		return false
	}
	ts.once.Do(func() {
		ts.bm = r.scanTombstones(t)
		r.logger.LogTombstoneScan(t, ts.bm.GetCardinality())
	})
	return ts.bm.Contains(rid)
}

func (r *Resolver) scanTombstones(t tables.Table) *roaring.Bitmap {
	bm := roaring.New()
	bit := rtSpecialNameBits[t]
	n := r.tables.RowCount(t)
	for rid := uint32(1); rid <= n; rid++ {
		if r.rowIsTombstone(t, rid, bit) {
			bm.Add(rid)
		}
	}
	return bm
}

// rowIsTombstone applies the deletion predicate to one row. An unreadable
// row is treated as not deleted; it gets dropped by bounds checks instead
// of being misclassified here.
func (r *Resolver) rowIsTombstone(t tables.Table, rid uint32, bit uint32) bool {
	row, err := tables.ReadRow(r.tables, t, rid)
	if err != nil {
		return false
	}
	if row.Flags&bit == 0 {
		return false
	}
	return strings.HasPrefix(r.strings.Name(row.Name), deletedNamePrefix)
}
