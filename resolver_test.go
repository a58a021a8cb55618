package dnlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chuacw/dnlib/tables"
	"github.com/chuacw/dnlib/testutil"
)

func newResolver(t *testing.T, a *testutil.MemAccessor, optFns ...Option) *Resolver {
	t.Helper()
	r, err := New(a, a, optFns...)
	require.NoError(t, err)
	return r
}

// addTypeDef appends a TypeDef row owning the given field/method list starts.
func addTypeDef(a *testutil.MemAccessor, fieldList, methodList uint32) uint32 {
	return a.AddRow(tables.TypeDef, 0, 0, 0, 0, fieldList, methodList)
}

func addField(a *testutil.MemAccessor, flags, name uint32) uint32 {
	return a.AddRow(tables.Field, flags, name, 0)
}

func addMethod(a *testutil.MemAccessor, flags, name, paramList uint32) uint32 {
	return a.AddRow(tables.Method, 0, 0, flags, name, 0, paramList)
}

func TestNewValidatesCollaborators(t *testing.T) {
	a := testutil.NewMemAccessor()

	_, err := New(nil, a)
	assert.ErrorIs(t, err, ErrNilAccessor)

	_, err = New(a, nil)
	assert.ErrorIs(t, err, ErrNilStrings)
}

func TestFieldsOfContiguousRanges(t *testing.T) {
	a := testutil.NewMemAccessor()
	addTypeDef(a, 1, 0)
	addTypeDef(a, 4, 0)
	addTypeDef(a, 4, 0)
	for i := 0; i < 5; i++ {
		addField(a, 0, 0)
	}
	r := newResolver(t, a)

	assert.Equal(t, []uint32{1, 2, 3}, r.FieldsOf(1).Slice())
	assert.Empty(t, r.FieldsOf(2).Slice())
	assert.Equal(t, []uint32{4, 5}, r.FieldsOf(3).Slice())
}

func TestChildrenOfBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		fieldLists []uint32 // one TypeDef row per entry
		fieldRows  int
		parentRid  uint32
		want       []uint32
	}{
		{
			name:       "start zero means no children",
			fieldLists: []uint32{0, 1},
			fieldRows:  2,
			parentRid:  1,
			want:       nil,
		},
		{
			name:       "start beyond child table",
			fieldLists: []uint32{5},
			fieldRows:  3,
			parentRid:  1,
			want:       nil,
		},
		{
			name:       "start at lastRid",
			fieldLists: []uint32{4},
			fieldRows:  3,
			parentRid:  1,
			want:       nil,
		},
		{
			name:       "last parent row runs to end of child table",
			fieldLists: []uint32{1, 3},
			fieldRows:  5,
			parentRid:  2,
			want:       []uint32{3, 4, 5},
		},
		{
			name:       "next start below start clamps to empty",
			fieldLists: []uint32{3, 1},
			fieldRows:  5,
			parentRid:  1,
			want:       nil,
		},
		{
			name:       "next start beyond child table clamps to end",
			fieldLists: []uint32{2, 400},
			fieldRows:  4,
			parentRid:  1,
			want:       []uint32{2, 3, 4},
		},
		{
			name:       "next start zero treated as absent",
			fieldLists: []uint32{2, 0},
			fieldRows:  3,
			parentRid:  1,
			want:       []uint32{2, 3},
		},
		{
			name:       "parent rid zero",
			fieldLists: []uint32{1},
			fieldRows:  2,
			parentRid:  0,
			want:       nil,
		},
		{
			name:       "parent rid out of range",
			fieldLists: []uint32{1},
			fieldRows:  2,
			parentRid:  9,
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testutil.NewMemAccessor()
			for _, fl := range tt.fieldLists {
				addTypeDef(a, fl, 0)
			}
			for i := 0; i < tt.fieldRows; i++ {
				addField(a, 0, 0)
			}
			r := newResolver(t, a)

			got := r.FieldsOf(tt.parentRid).Slice()
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestChildrenOfMatchesReferenceScan(t *testing.T) {
	// Every TypeDef's field list must equal the range [start, nextStart).
	a := testutil.NewMemAccessor()
	starts := []uint32{1, 1, 3, 6, 6}
	for _, s := range starts {
		addTypeDef(a, s, 0)
	}
	for i := 0; i < 8; i++ {
		addField(a, 0, 0)
	}
	r := newResolver(t, a)

	for rid := uint32(1); rid <= uint32(len(starts)); rid++ {
		start := starts[rid-1]
		end := uint32(9)
		if rid < uint32(len(starts)) {
			end = starts[rid]
		}
		want := tables.FromRange(start, end-start)
		assert.True(t, r.FieldsOf(rid).Equal(want), "rid %d", rid)
	}
}

func TestFieldsOfPointerIndirection(t *testing.T) {
	a := testutil.NewMemAccessor()
	addTypeDef(a, 1, 0)
	for i := 0; i < 3; i++ {
		addField(a, 0, 0)
	}
	for _, phys := range []uint32{3, 1, 2} {
		a.AddRow(tables.FieldPtr, phys)
	}
	r := newResolver(t, a)

	got := r.FieldsOf(1)
	assert.Equal(t, []uint32{3, 1, 2}, got.Slice())
	// Logical field 1 of the type resolves to physical rid 3.
	assert.Equal(t, uint32(3), got.Get(0))
}

func TestFieldsOfPointerIndirectionDropsBadEntries(t *testing.T) {
	a := testutil.NewMemAccessor()
	addTypeDef(a, 1, 0)
	for i := 0; i < 4; i++ {
		addField(a, 0, 0)
	}
	a.AddRow(tables.FieldPtr, 2)
	a.AddRow(tables.FieldPtr, 0)  // invalid physical rid
	a.AddRow(tables.FieldPtr, 99) // beyond the Field table
	a.AddRow(tables.FieldPtr, 4)
	r := newResolver(t, a)

	assert.Equal(t, []uint32{2, 4}, r.FieldsOf(1).Slice())
}

func TestFieldsOfPointerTableShorterThanRange(t *testing.T) {
	// The logical range runs past the pointer table; unreadable pointer
	// rows drop those entries without failing the query.
	a := testutil.NewMemAccessor()
	addTypeDef(a, 1, 0)
	for i := 0; i < 3; i++ {
		addField(a, 0, 0)
	}
	a.AddRow(tables.FieldPtr, 3)
	r := newResolver(t, a)

	assert.Equal(t, []uint32{3}, r.FieldsOf(1).Slice())
}

func TestMethodsOfFiltersTombstones(t *testing.T) {
	a := testutil.NewMemAccessor()
	addTypeDef(a, 0, 1)
	deleted := a.Intern("_DeletedM1")
	plain := a.Intern("Frob")
	addMethod(a, 0, plain, 0)
	addMethod(a, 0x1000, deleted, 0) // bit + prefix: tombstone
	addMethod(a, 0x1000, plain, 0)   // bit only: live
	addMethod(a, 0, deleted, 0)      // prefix only: live
	a.SetHasDeletedRows(true)
	r := newResolver(t, a)

	assert.Equal(t, []uint32{1, 3, 4}, r.MethodsOf(1).Slice())
	assert.Equal(t, []uint32{1, 3, 4}, r.TopLevelRids(tables.Method).Slice())
}

func TestTombstoneFilterSkippedWithoutGlobalFlag(t *testing.T) {
	// Same marked row, but the metadata declares no deleted rows anywhere.
	a := testutil.NewMemAccessor()
	addTypeDef(a, 0, 1)
	addMethod(a, 0x1000, a.Intern("_DeletedM1"), 0)
	r := newResolver(t, a)

	assert.Equal(t, []uint32{1}, r.MethodsOf(1).Slice())
	assert.Equal(t, []uint32{1}, r.TopLevelRids(tables.Method).Slice())
}

func TestParamsAreNeverTombstoned(t *testing.T) {
	a := testutil.NewMemAccessor()
	addMethod(a, 0, 0, 1)
	// Param rows carrying the special-name bit and the reserved prefix
	// anyway; Param does not support the deletion marker.
	name := a.Intern("_DeletedP")
	a.AddRow(tables.Param, 0x1000, 0, name)
	a.AddRow(tables.Param, 0x1000, 1, name)
	a.SetHasDeletedRows(true)
	r := newResolver(t, a)

	assert.Equal(t, []uint32{1, 2}, r.ParamsOf(1).Slice())
}

func TestEventsAndPropertiesOf(t *testing.T) {
	a := testutil.NewMemAccessor()
	a.AddRow(tables.EventMap, 1, 1)
	a.AddRow(tables.EventMap, 2, 3)
	a.AddRow(tables.Event, 0, 0, 0)
	a.AddRow(tables.Event, 0, 0, 0)
	a.AddRow(tables.Event, 0, 0, 0)
	a.AddRow(tables.PropertyMap, 1, 1)
	a.AddRow(tables.Property, 0, 0, 0)
	r := newResolver(t, a)

	assert.Equal(t, []uint32{1, 2}, r.EventsOf(1).Slice())
	assert.Equal(t, []uint32{3}, r.EventsOf(2).Slice())
	assert.Equal(t, []uint32{1}, r.PropertiesOf(1).Slice())
}

func TestChildrenOfUnknownRelation(t *testing.T) {
	a := testutil.NewMemAccessor()
	r := newResolver(t, a)

	assert.True(t, r.ChildrenOf(Relation(200), 1).IsEmpty())
}

func TestTopLevelRidsFullRangeWithoutTombstones(t *testing.T) {
	a := testutil.NewMemAccessor()
	for i := 0; i < 4; i++ {
		addField(a, 0, 0)
	}
	r := newResolver(t, a)

	assert.Equal(t, []uint32{1, 2, 3, 4}, r.TopLevelRids(tables.Field).Slice())
	assert.Empty(t, r.TopLevelRids(tables.Event).Slice())
}

func TestTopLevelRidsFiltersDeletedTypes(t *testing.T) {
	a := testutil.NewMemAccessor()
	a.AddRow(tables.TypeDef, 0, a.Intern("Visible"), 0, 0, 0, 0)
	a.AddRow(tables.TypeDef, 0x0800, a.Intern("_DeletedT"), 0, 0, 0, 0)
	a.SetHasDeletedRows(true)
	r := newResolver(t, a)

	assert.Equal(t, []uint32{1}, r.TopLevelRids(tables.TypeDef).Slice())
}

func TestFindByKeySortedTable(t *testing.T) {
	a := testutil.NewMemAccessor()
	for _, parent := range []uint32{3, 8, 15, 21} {
		a.AddRow(tables.Constant, 0, parent, 0)
	}
	a.SetSorted(tables.Constant, true)
	r := newResolver(t, a)

	assert.Equal(t, uint32(3), r.FindByKey(tables.Constant, 1, 15))
	assert.Equal(t, uint32(0), r.FindByKey(tables.Constant, 1, 16))
}

func TestFindByKeyGenericParamUnsortedFallsBackToLinear(t *testing.T) {
	// Owners deliberately out of order: a binary search would go the
	// wrong way at the first probe.
	a := testutil.NewMemAccessor()
	for _, owner := range []uint32{30, 4, 18, 2} {
		a.AddRow(tables.GenericParam, 0, 0, owner, 0)
	}
	a.SetSorted(tables.GenericParam, false)
	r := newResolver(t, a)

	assert.Equal(t, uint32(4), r.FindByKey(tables.GenericParam, tables.GenericParamOwnerCol, 2))
	assert.Equal(t, uint32(1), r.FindByKey(tables.GenericParam, tables.GenericParamOwnerCol, 30))
	assert.Equal(t, uint32(0), r.FindByKey(tables.GenericParam, tables.GenericParamOwnerCol, 5))
}

func TestWithLinearFallbackExtendsTheExceptionList(t *testing.T) {
	build := func() *testutil.MemAccessor {
		a := testutil.NewMemAccessor()
		for _, class := range []uint32{9, 2, 5} {
			a.AddRow(tables.InterfaceImpl, class, 0)
		}
		a.SetSorted(tables.InterfaceImpl, false)
		return a
	}

	// Default policy: the broken order stays with binary search and the
	// probe walks away from the match.
	r := newResolver(t, build())
	assert.Equal(t, uint32(0), r.FindByKey(tables.InterfaceImpl, tables.InterfaceImplClassCol, 9))

	r = newResolver(t, build(), WithLinearFallback(tables.InterfaceImpl))
	assert.Equal(t, uint32(1), r.FindByKey(tables.InterfaceImpl, tables.InterfaceImplClassCol, 9))
}

func TestFindAllByKeySortedRun(t *testing.T) {
	a := testutil.NewMemAccessor()
	for _, class := range []uint32{1, 4, 4, 4, 9} {
		a.AddRow(tables.InterfaceImpl, class, 0)
	}
	a.SetSorted(tables.InterfaceImpl, true)
	r := newResolver(t, a)

	assert.Equal(t, []uint32{2, 3, 4}, r.InterfacesOf(4).Slice())
	assert.Equal(t, []uint32{1}, r.InterfacesOf(1).Slice())
	assert.Empty(t, r.InterfacesOf(7).Slice())
}

func TestFindAllByKeyUnsortedUsesProjection(t *testing.T) {
	a := testutil.NewMemAccessor()
	owners := []uint32{6, 2, 6, 6, 1}
	for _, owner := range owners {
		a.AddRow(tables.GenericParam, 0, 0, owner, 0)
	}
	a.SetSorted(tables.GenericParam, false)
	r := newResolver(t, a)

	for probe := uint32(0); probe <= 7; probe++ {
		var want []uint32
		for rid, owner := range owners {
			if owner == probe {
				want = append(want, uint32(rid+1))
			}
		}
		got := r.GenericParamsOf(probe).Slice()
		if want == nil {
			assert.Empty(t, got, "probe %d", probe)
		} else {
			assert.Equal(t, want, got, "probe %d", probe)
		}
	}
}

func TestCorruptRowOnlyDropsItself(t *testing.T) {
	a := testutil.NewMemAccessor()
	addTypeDef(a, 1, 0)
	for i := 0; i < 3; i++ {
		addField(a, 0, 0)
	}
	for _, phys := range []uint32{1, 2, 3} {
		a.AddRow(tables.FieldPtr, phys)
	}
	a.Corrupt(tables.FieldPtr, 2)
	r := newResolver(t, a)

	assert.Equal(t, []uint32{1, 3}, r.FieldsOf(1).Slice())
}

func TestMetricsCollection(t *testing.T) {
	a := testutil.NewMemAccessor()
	addTypeDef(a, 1, 0)
	addField(a, 0, 0)
	for _, owner := range []uint32{5, 3} {
		a.AddRow(tables.GenericParam, 0, 0, owner, 0)
	}

	mc := &BasicMetricsCollector{}
	r := newResolver(t, a, WithMetricsCollector(mc))

	r.FieldsOf(1)
	r.GenericParamsOf(3)
	r.GenericParamsOf(99)

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.ChildrenCount)
	assert.Equal(t, int64(1), stats.ChildrenRids)
	assert.Equal(t, int64(2), stats.LookupCount)
	assert.Equal(t, int64(1), stats.LookupMisses)
	assert.Equal(t, int64(1), stats.ProjectionBuilds)
	assert.Equal(t, int64(2), stats.ProjectionRows)
}
