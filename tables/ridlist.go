package tables

import "iter"

// RidList is an ordered, read-only sequence of rids answering a relationship
// or key query. It is backed either by a contiguous [start, start+count)
// range (the common case) or by an explicit slice, needed whenever pointer
// indirection or tombstone filtering applies. Two lists are equal when they
// yield the same sequence, regardless of representation.
//
// The zero value is the empty list.
type RidList struct {
	start uint32
	count uint32
	rids  []uint32
}

// FromRange returns a RidList over the contiguous range
// [start, start+count).
func FromRange(start, count uint32) RidList {
	return RidList{start: start, count: count}
}

// FromRids returns a RidList backed by rids. The slice is retained; callers
// must not mutate it afterwards.
func FromRids(rids []uint32) RidList {
	return RidList{rids: rids, count: uint32(len(rids))}
}

// Count returns the number of rids in the list.
func (l RidList) Count() uint32 {
	return l.count
}

// IsEmpty reports whether the list has no rids.
func (l RidList) IsEmpty() bool {
	return l.count == 0
}

// Get returns the i'th rid (0-based), or 0 if i is out of range.
func (l RidList) Get(i uint32) uint32 {
	if i >= l.count {
		return 0
	}
	if l.rids != nil {
		return l.rids[i]
	}
	return l.start + i
}

// All iterates the rids in order.
func (l RidList) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for i := uint32(0); i < l.count; i++ {
			if !yield(l.Get(i)) {
				return
			}
		}
	}
}

// Slice materializes the list into a fresh slice.
func (l RidList) Slice() []uint32 {
	out := make([]uint32, 0, l.count)
	for rid := range l.All() {
		out = append(out, rid)
	}
	return out
}

// Equal reports whether l and o yield the same rid sequence.
func (l RidList) Equal(o RidList) bool {
	if l.count != o.count {
		return false
	}
	for i := uint32(0); i < l.count; i++ {
		if l.Get(i) != o.Get(i) {
			return false
		}
	}
	return true
}
