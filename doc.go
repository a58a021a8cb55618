// Package dnlib resolves logical row references inside the tables stream of
// .NET metadata into physical row identifiers, and answers range and key
// queries over those tables.
//
// It sits between the byte-level stream reader and the object model: the
// reader hands it a read-only tables.TableAccessor plus a tables.StringLookup,
// and the object model asks it questions like "which Field rows belong to
// this TypeDef".
//
// # Quick Start
//
//	r, _ := dnlib.New(accessor, strs)
//	for rid := range r.FieldsOf(typeRid).All() {
//	    // rid is a physical Field row id
//	}
//	owner := r.FindByKey(tables.GenericParam, tables.GenericParamOwnerCol, coded)
//
// # What It Tolerates
//
// The same code paths serve both whole metadata and incrementally-edited
// metadata: pointer tables (FieldPtr, MethodPtr, ...) are applied when
// present, rows tombstoned by an edit-and-continue session are filtered out,
// and tables whose "sorted" declaration does not actually hold are served
// through a lazily built, cached sorted projection instead of a broken
// binary search.
//
// Metadata is untrusted input. Malformed list columns, out-of-range rids and
// unreadable rows degrade to smaller (possibly empty) results, never to a
// panic or an error: callers inspecting obfuscated or corrupted modules get
// whatever rows are still resolvable.
package dnlib
