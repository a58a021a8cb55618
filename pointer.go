package dnlib

import "github.com/chuacw/dnlib/tables"

// toPhysical converts a logical 1-based index into a physical rid by
// consulting ptr, one of the five indirection tables. When ptr is absent
// from this metadata the mapping is the identity; this is the common case
// and is decided once at construction, not per call. A failed read of the
// pointer row yields 0 so the caller can drop just that entry.
func (r *Resolver) toPhysical(ptr tables.Table, logical uint32) uint32 {
	if !r.ptrPresent[ptr] {
		return logical
	}
	rid, err := r.tables.ReadColumn(ptr, logical, 0)
	if err != nil {
		r.skippedRow(ptr, logical, err)
		return 0
	}
	return rid
}
