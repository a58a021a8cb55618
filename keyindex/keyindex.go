// Package keyindex answers "find row(s) whose key column equals K" over
// metadata tables.
//
// For tables whose sorted declaration holds, the search primitives in this
// package binary search the live table directly. For tables that are not
// sorted but are queried repeatedly, Cache lazily builds an immutable sorted
// projection of (key, rid) pairs per (table, column) and binary searches
// that instead, so repeated lookups stay sub-linear.
package keyindex

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/chuacw/dnlib/tables"
)

// Source is the slice of the table accessor the lookup index needs.
type Source interface {
	RowCount(t tables.Table) uint32
	ReadColumn(t tables.Table, rid uint32, column int) (uint32, error)
}

// Find binary searches a declared-sorted table for the unique row whose key
// column equals key. Returns the rid, or 0 when no row matches. A failed
// read of a probed row aborts the search: a sorted table is either fully
// readable or corrupt enough that continuing is unsafe.
func Find(src Source, t tables.Table, column int, key uint32) uint32 {
	lo, hi := uint32(1), src.RowCount(t)
	for lo <= hi {
		mid := lo + (hi-lo)/2
		v, err := src.ReadColumn(t, mid, column)
		if err != nil {
			return 0
		}
		switch {
		case key < v:
			hi = mid - 1
		case key > v:
			lo = mid + 1
		default:
			return mid
		}
	}
	return 0
}

// FindLinear scans every row in order and returns the first whose key column
// equals key, or 0. Unreadable rows are skipped. It exists for the one table
// kind whose sorted declaration is known to lie; see Resolver.
func FindLinear(src Source, t tables.Table, column int, key uint32) uint32 {
	n := src.RowCount(t)
	for rid := uint32(1); rid <= n; rid++ {
		v, err := src.ReadColumn(t, rid, column)
		if err != nil {
			continue
		}
		if v == key {
			return rid
		}
	}
	return 0
}

// FindRange locates the contiguous run of rows whose key column equals key
// in a declared-sorted table. Returns the inclusive [lo, hi] rid bounds, or
// (0, 0) when no row matches. Expansion around the first hit stops at the
// first unreadable row.
func FindRange(src Source, t tables.Table, column int, key uint32) (lo, hi uint32) {
	mid := Find(src, t, column, key)
	if mid == 0 {
		return 0, 0
	}
	lo, hi = mid, mid
	for lo > 1 {
		v, err := src.ReadColumn(t, lo-1, column)
		if err != nil || v != key {
			break
		}
		lo--
	}
	n := src.RowCount(t)
	for hi < n {
		v, err := src.ReadColumn(t, hi+1, column)
		if err != nil || v != key {
			break
		}
		hi++
	}
	return lo, hi
}

// Projection is an immutable sorted view of one key column of one table:
// (key, rid) pairs ordered ascending by key, rows with equal keys kept in
// original row order. Once published by a Cache it is never mutated, so
// reads need no synchronization.
type Projection struct {
	keys []uint32
	rids []uint32
}

// Len returns the number of rows in the projection.
func (p *Projection) Len() int {
	return len(p.keys)
}

// FindAll returns the rids of every row whose key equals key, in original
// row order. The returned slice is freshly allocated.
func (p *Projection) FindAll(key uint32) []uint32 {
	i := sort.Search(len(p.keys), func(i int) bool { return p.keys[i] >= key })
	var out []uint32
	for ; i < len(p.keys) && p.keys[i] == key; i++ {
		out = append(out, p.rids[i])
	}
	return out
}

// Cache holds the lazily built projections, one per (table, column) pair
// ever queried. Entries move absent -> building -> built; a built entry is
// shared by all subsequent queries and never invalidated for the lifetime
// of the loaded metadata.
//
// Concurrent callers racing on a missing entry are collapsed into a single
// build; the sort work happens outside the insert lock so readers of other
// entries are never serialized behind a builder.
type Cache struct {
	src Source

	mu      sync.RWMutex
	entries map[entryKey]*Projection
	group   singleflight.Group

	// OnBuild, if set, is invoked after each projection build. Set it
	// before the first query; it is not synchronized.
	OnBuild func(t tables.Table, column int, rows int, elapsed time.Duration)
}

type entryKey struct {
	table  tables.Table
	column int
}

func (k entryKey) String() string {
	return strconv.Itoa(int(k.table)) + ":" + strconv.Itoa(k.column)
}

// NewCache creates an empty projection cache over src.
func NewCache(src Source) *Cache {
	return &Cache{
		src:     src,
		entries: make(map[entryKey]*Projection),
	}
}

// Projection returns the built projection for (t, column), building it
// first if needed.
func (c *Cache) Projection(t tables.Table, column int) *Projection {
	ck := entryKey{table: t, column: column}

	c.mu.RLock()
	p := c.entries[ck]
	c.mu.RUnlock()
	if p != nil {
		return p
	}

	v, _, _ := c.group.Do(ck.String(), func() (any, error) {
		c.mu.RLock()
		p := c.entries[ck]
		c.mu.RUnlock()
		if p != nil {
			return p, nil
		}

		p = c.build(t, column)

		c.mu.Lock()
		if prev, ok := c.entries[ck]; ok {
			p = prev
		} else {
			c.entries[ck] = p
		}
		c.mu.Unlock()
		return p, nil
	})
	return v.(*Projection)
}

// FindAll answers a multi-match key query through the cached projection.
func (c *Cache) FindAll(t tables.Table, column int, key uint32) []uint32 {
	return c.Projection(t, column).FindAll(key)
}

func (c *Cache) build(t tables.Table, column int) *Projection {
	type pair struct {
		key uint32
		rid uint32
	}

	start := time.Now()
	n := c.src.RowCount(t)
	pairs := make([]pair, 0, n)
	for rid := uint32(1); rid <= n; rid++ {
		k, err := c.src.ReadColumn(t, rid, column)
		if err != nil {
			continue
		}
		pairs = append(pairs, pair{key: k, rid: rid})
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	p := &Projection{
		keys: make([]uint32, len(pairs)),
		rids: make([]uint32, len(pairs)),
	}
	for i, pr := range pairs {
		p.keys[i] = pr.key
		p.rids[i] = pr.rid
	}
	if c.OnBuild != nil {
		c.OnBuild(t, column, p.Len(), time.Since(start))
	}
	return p
}
