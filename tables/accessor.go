package tables

// TableAccessor is the read-only view of a loaded tables stream. It is the
// only way this module touches table data; how the rows are laid out in bytes
// (column widths, heap index sizes) is the loader's business.
//
// Implementations must be safe for concurrent readers once loaded. A request
// for a table that is absent from the stream behaves like a table with zero
// rows.
type TableAccessor interface {
	// RowCount returns the number of rows in t, 0 if t is absent.
	RowCount(t Table) uint32

	// ReadColumn returns the raw integer value of one column of one row.
	// rid is 1-based. It fails for a rid of 0, a rid beyond RowCount, or a
	// column index the table does not have.
	ReadColumn(t Table, rid uint32, column int) (uint32, error)

	// IsSorted reports whether the stream header declares t sorted by its
	// key column. The declaration is not always trustworthy; see Resolver.
	IsSorted(t Table) bool

	// HasDeletedRows reports whether the loaded metadata can contain
	// tombstoned rows at all. Computed once at load; when false, every row
	// is live and deletion checks are skipped.
	HasDeletedRows() bool
}

// StringLookup resolves #Strings heap offsets. Offset 0 yields the empty
// string; implementations never fail for offsets handed out by the loader.
type StringLookup interface {
	Name(offset uint32) string
}

// Row is the flags/name prefix shared by the rows this module inspects for
// tombstone marks (TypeDef, Field, Method, Event, Property).
type Row struct {
	Flags uint32
	Name  uint32
}

// ReadRow reads the flags and name columns of one row using the column
// layout of t. It fails if t has no flags/name pair or the rid is out of
// range.
func ReadRow(a TableAccessor, t Table, rid uint32) (Row, error) {
	flagsCol, nameCol, ok := flagsNameColumns(t)
	if !ok {
		return Row{}, &ErrColumnOutOfRange{Table: t, Column: 0}
	}
	flags, err := a.ReadColumn(t, rid, flagsCol)
	if err != nil {
		return Row{}, err
	}
	name, err := a.ReadColumn(t, rid, nameCol)
	if err != nil {
		return Row{}, err
	}
	return Row{Flags: flags, Name: name}, nil
}

func flagsNameColumns(t Table) (flagsCol, nameCol int, ok bool) {
	switch t {
	case TypeDef:
		return TypeDefFlagsCol, TypeDefNameCol, true
	case Field:
		return FieldFlagsCol, FieldNameCol, true
	case Method:
		return MethodFlagsCol, MethodNameCol, true
	case Event:
		return EventFlagsCol, EventNameCol, true
	case Property:
		return PropertyFlagsCol, PropertyNameCol, true
	default:
		return 0, 0, false
	}
}
