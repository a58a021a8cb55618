package dnlib

import (
	"time"

	"github.com/chuacw/dnlib/keyindex"
	"github.com/chuacw/dnlib/tables"
)

// Relation names one of the parent/child list relationships of the tables
// stream.
type Relation uint8

const (
	// TypeDefFields is the TypeDef -> Field relation.
	TypeDefFields Relation = iota
	// TypeDefMethods is the TypeDef -> Method relation.
	TypeDefMethods
	// MethodParams is the Method -> Param relation.
	MethodParams
	// EventMapEvents is the EventMap -> Event relation.
	EventMapEvents
	// PropertyMapProperties is the PropertyMap -> Property relation.
	PropertyMapProperties

	numRelations
)

// relationSpec is the configuration of one child-list relation: where the
// list column lives, which table the rids land in, which pointer table may
// redirect them, and whether the child kind can be tombstoned.
type relationSpec struct {
	parent     tables.Table
	listColumn int
	child      tables.Table
	pointer    tables.Table
	tombstones bool
}

var relationSpecs = [numRelations]relationSpec{
	TypeDefFields: {
		parent:     tables.TypeDef,
		listColumn: tables.TypeDefFieldListCol,
		child:      tables.Field,
		pointer:    tables.FieldPtr,
		tombstones: true,
	},
	TypeDefMethods: {
		parent:     tables.TypeDef,
		listColumn: tables.TypeDefMethodListCol,
		child:      tables.Method,
		pointer:    tables.MethodPtr,
		tombstones: true,
	},
	MethodParams: {
		parent:     tables.Method,
		listColumn: tables.MethodParamListCol,
		child:      tables.Param,
		pointer:    tables.ParamPtr,
		tombstones: false,
	},
	EventMapEvents: {
		parent:     tables.EventMap,
		listColumn: tables.EventMapEventListCol,
		child:      tables.Event,
		pointer:    tables.EventPtr,
		tombstones: true,
	},
	PropertyMapProperties: {
		parent:     tables.PropertyMap,
		listColumn: tables.PropertyMapPropertyListCol,
		child:      tables.Property,
		pointer:    tables.PropertyPtr,
		tombstones: true,
	},
}

// Resolver answers row queries over one loaded tables stream: child lists
// with pointer indirection and tombstone filtering applied, top-level row
// enumeration, and keyed lookups.
//
// A Resolver is safe for concurrent use. All table data is read-only; the
// only internal mutation is the lazy, build-once population of the sorted
// projection cache and the per-table tombstone sets.
type Resolver struct {
	tables  tables.TableAccessor
	strings tables.StringLookup
	logger  *Logger
	metrics MetricsCollector

	keys *keyindex.Cache

	// Decided once at construction.
	hasDeleted     bool
	ptrPresent     map[tables.Table]bool
	linearFallback map[tables.Table]bool

	tombs map[tables.Table]*tombstoneSet
}

// New creates a Resolver over ta and sl.
func New(ta tables.TableAccessor, sl tables.StringLookup, optFns ...Option) (*Resolver, error) {
	if ta == nil {
		return nil, ErrNilAccessor
	}
	if sl == nil {
		return nil, ErrNilStrings
	}
	o := applyOptions(optFns)

	r := &Resolver{
		tables:         ta,
		strings:        sl,
		logger:         o.logger,
		metrics:        o.metrics,
		hasDeleted:     ta.HasDeletedRows(),
		ptrPresent:     make(map[tables.Table]bool, 5),
		linearFallback: make(map[tables.Table]bool, len(o.linearFallback)),
		tombs:          make(map[tables.Table]*tombstoneSet, len(rtSpecialNameBits)),
	}
	for _, ptr := range []tables.Table{
		tables.FieldPtr, tables.MethodPtr, tables.ParamPtr,
		tables.EventPtr, tables.PropertyPtr,
	} {
		r.ptrPresent[ptr] = ta.RowCount(ptr) > 0
	}
	for _, t := range o.linearFallback {
		r.linearFallback[t] = true
	}
	if r.hasDeleted {
		for t := range rtSpecialNameBits {
			r.tombs[t] = &tombstoneSet{}
		}
	}

	r.keys = keyindex.NewCache(ta)
	r.keys.OnBuild = func(t tables.Table, column, rows int, elapsed time.Duration) {
		r.logger.LogProjectionBuild(t, column, rows, elapsed)
		r.metrics.RecordProjectionBuild(rows, elapsed)
	}
	return r, nil
}

// FieldsOf returns the physical Field rids owned by the TypeDef row.
func (r *Resolver) FieldsOf(typeRid uint32) tables.RidList {
	return r.ChildrenOf(TypeDefFields, typeRid)
}

// MethodsOf returns the physical Method rids owned by the TypeDef row.
func (r *Resolver) MethodsOf(typeRid uint32) tables.RidList {
	return r.ChildrenOf(TypeDefMethods, typeRid)
}

// ParamsOf returns the physical Param rids owned by the Method row.
func (r *Resolver) ParamsOf(methodRid uint32) tables.RidList {
	return r.ChildrenOf(MethodParams, methodRid)
}

// EventsOf returns the physical Event rids owned by the EventMap row.
func (r *Resolver) EventsOf(eventMapRid uint32) tables.RidList {
	return r.ChildrenOf(EventMapEvents, eventMapRid)
}

// PropertiesOf returns the physical Property rids owned by the PropertyMap row.
func (r *Resolver) PropertiesOf(propertyMapRid uint32) tables.RidList {
	return r.ChildrenOf(PropertyMapProperties, propertyMapRid)
}

// ChildrenOf returns the physical child rids owned by parentRid under rel,
// in logical order, with pointer indirection applied and tombstones
// filtered out.
//
// On corrupt metadata the result shrinks rather than fails: an unreadable
// parent row yields an empty list, an unresolvable child entry is dropped
// without affecting its siblings.
func (r *Resolver) ChildrenOf(rel Relation, parentRid uint32) tables.RidList {
	if rel >= numRelations {
		return tables.RidList{}
	}
	start := time.Now()
	spec := relationSpecs[rel]

	list := r.childRange(spec.parent, parentRid, spec.listColumn, spec.child)

	indirect := r.ptrPresent[spec.pointer]
	filter := spec.tombstones && r.hasDeleted
	if list.IsEmpty() || (!indirect && !filter) {
		// Fast path: the logical range is the physical answer.
		r.metrics.RecordChildren(time.Since(start), int(list.Count()))
		return list
	}

	childRows := r.tables.RowCount(spec.child)
	out := make([]uint32, 0, list.Count())
	for logical := range list.All() {
		rid := r.toPhysical(spec.pointer, logical)
		if rid == 0 || rid > childRows {
			continue
		}
		if filter && r.isDeleted(spec.child, rid) {
			continue
		}
		out = append(out, rid)
	}
	r.metrics.RecordChildren(time.Since(start), len(out))
	return tables.FromRids(out)
}

// TopLevelRids enumerates every live row of t: the full [1, rowCount] range,
// minus tombstones for the table kinds that support the deletion marker.
func (r *Resolver) TopLevelRids(t tables.Table) tables.RidList {
	n := r.tables.RowCount(t)
	if !r.hasDeleted || r.tombs[t] == nil {
		return tables.FromRange(1, n)
	}
	out := make([]uint32, 0, n)
	for rid := uint32(1); rid <= n; rid++ {
		if r.isDeleted(t, rid) {
			continue
		}
		out = append(out, rid)
	}
	return tables.FromRids(out)
}

// FindByKey binary searches t for the unique row whose key column equals
// key, returning its rid or 0. The table is expected to be declared sorted
// by that column.
//
// One historical quirk is honored: for GenericParam (and any table added
// via WithLinearFallback) whose sorted flag is false for this load, the
// search degrades to a linear scan instead of trusting a broken order.
func (r *Resolver) FindByKey(t tables.Table, column int, key uint32) uint32 {
	start := time.Now()
	var rid uint32
	if r.linearFallback[t] && !r.tables.IsSorted(t) {
		rid = keyindex.FindLinear(r.tables, t, column, key)
	} else {
		rid = keyindex.Find(r.tables, t, column, key)
	}
	r.metrics.RecordLookup(time.Since(start), rid != 0)
	return rid
}

// FindAllByKey returns every row of t whose key column equals key. For a
// declared-sorted table the matches are a contiguous run located by binary
// search. Otherwise the query is served from a lazily built, cached sorted
// projection of (key, rid) pairs, so repeated lookups against a table an
// editor emitted unsorted stay sub-linear.
func (r *Resolver) FindAllByKey(t tables.Table, column int, key uint32) tables.RidList {
	start := time.Now()
	var list tables.RidList
	if r.tables.IsSorted(t) {
		lo, hi := keyindex.FindRange(r.tables, t, column, key)
		if lo != 0 {
			list = tables.FromRange(lo, hi-lo+1)
		}
	} else {
		list = tables.FromRids(r.keys.FindAll(t, column, key))
	}
	r.metrics.RecordLookup(time.Since(start), !list.IsEmpty())
	return list
}

// InterfacesOf returns the InterfaceImpl rids whose class column equals
// typeRid.
func (r *Resolver) InterfacesOf(typeRid uint32) tables.RidList {
	return r.FindAllByKey(tables.InterfaceImpl, tables.InterfaceImplClassCol, typeRid)
}

// GenericParamsOf returns the GenericParam rids owned by the coded owner
// token.
func (r *Resolver) GenericParamsOf(owner uint32) tables.RidList {
	return r.FindAllByKey(tables.GenericParam, tables.GenericParamOwnerCol, owner)
}

func (r *Resolver) skippedRow(t tables.Table, rid uint32, err error) {
	r.logger.LogSkippedRow(t, rid, err)
	r.metrics.RecordSkippedRow()
}
