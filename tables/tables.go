package tables

// Table identifies one of the metadata tables defined by ECMA-335 §II.22.
// The numeric values match the table numbers in the tables stream header.
type Table uint8

const (
	// Module is the Module table (0x00).
	Module Table = 0x00
	// TypeRef is the TypeRef table (0x01).
	TypeRef Table = 0x01
	// TypeDef is the TypeDef table (0x02).
	TypeDef Table = 0x02
	// FieldPtr is the FieldPtr indirection table (0x03), present only in
	// incrementally-edited metadata.
	FieldPtr Table = 0x03
	// Field is the Field table (0x04).
	Field Table = 0x04
	// MethodPtr is the MethodPtr indirection table (0x05).
	MethodPtr Table = 0x05
	// Method is the Method table (0x06).
	Method Table = 0x06
	// ParamPtr is the ParamPtr indirection table (0x07).
	ParamPtr Table = 0x07
	// Param is the Param table (0x08).
	Param Table = 0x08
	// InterfaceImpl is the InterfaceImpl table (0x09).
	InterfaceImpl Table = 0x09
	// MemberRef is the MemberRef table (0x0A).
	MemberRef Table = 0x0A
	// Constant is the Constant table (0x0B).
	Constant Table = 0x0B
	// CustomAttribute is the CustomAttribute table (0x0C).
	CustomAttribute Table = 0x0C
	// FieldMarshal is the FieldMarshal table (0x0D).
	FieldMarshal Table = 0x0D
	// DeclSecurity is the DeclSecurity table (0x0E).
	DeclSecurity Table = 0x0E
	// ClassLayout is the ClassLayout table (0x0F).
	ClassLayout Table = 0x0F
	// FieldLayout is the FieldLayout table (0x10).
	FieldLayout Table = 0x10
	// StandAloneSig is the StandAloneSig table (0x11).
	StandAloneSig Table = 0x11
	// EventMap is the EventMap table (0x12).
	EventMap Table = 0x12
	// EventPtr is the EventPtr indirection table (0x13).
	EventPtr Table = 0x13
	// Event is the Event table (0x14).
	Event Table = 0x14
	// PropertyMap is the PropertyMap table (0x15).
	PropertyMap Table = 0x15
	// PropertyPtr is the PropertyPtr indirection table (0x16).
	PropertyPtr Table = 0x16
	// Property is the Property table (0x17).
	Property Table = 0x17
	// MethodSemantics is the MethodSemantics table (0x18).
	MethodSemantics Table = 0x18
	// MethodImpl is the MethodImpl table (0x19).
	MethodImpl Table = 0x19
	// ModuleRef is the ModuleRef table (0x1A).
	ModuleRef Table = 0x1A
	// TypeSpec is the TypeSpec table (0x1B).
	TypeSpec Table = 0x1B
	// ImplMap is the ImplMap table (0x1C).
	ImplMap Table = 0x1C
	// FieldRVA is the FieldRVA table (0x1D).
	FieldRVA Table = 0x1D
	// ENCLog is the edit-and-continue log table (0x1E).
	ENCLog Table = 0x1E
	// ENCMap is the edit-and-continue map table (0x1F).
	ENCMap Table = 0x1F
	// Assembly is the Assembly table (0x20).
	Assembly Table = 0x20
	// AssemblyProcessor is the AssemblyProcessor table (0x21).
	AssemblyProcessor Table = 0x21
	// AssemblyOS is the AssemblyOS table (0x22).
	AssemblyOS Table = 0x22
	// AssemblyRef is the AssemblyRef table (0x23).
	AssemblyRef Table = 0x23
	// AssemblyRefProcessor is the AssemblyRefProcessor table (0x24).
	AssemblyRefProcessor Table = 0x24
	// AssemblyRefOS is the AssemblyRefOS table (0x25).
	AssemblyRefOS Table = 0x25
	// File is the File table (0x26).
	File Table = 0x26
	// ExportedType is the ExportedType table (0x27).
	ExportedType Table = 0x27
	// ManifestResource is the ManifestResource table (0x28).
	ManifestResource Table = 0x28
	// NestedClass is the NestedClass table (0x29).
	NestedClass Table = 0x29
	// GenericParam is the GenericParam table (0x2A).
	GenericParam Table = 0x2A
	// MethodSpec is the MethodSpec table (0x2B).
	MethodSpec Table = 0x2B
	// GenericParamConstraint is the GenericParamConstraint table (0x2C).
	GenericParamConstraint Table = 0x2C
)

// NumTables is the number of table kinds this package knows about.
const NumTables = int(GenericParamConstraint) + 1

var tableNames = [NumTables]string{
	"Module", "TypeRef", "TypeDef", "FieldPtr", "Field", "MethodPtr",
	"Method", "ParamPtr", "Param", "InterfaceImpl", "MemberRef", "Constant",
	"CustomAttribute", "FieldMarshal", "DeclSecurity", "ClassLayout",
	"FieldLayout", "StandAloneSig", "EventMap", "EventPtr", "Event",
	"PropertyMap", "PropertyPtr", "Property", "MethodSemantics", "MethodImpl",
	"ModuleRef", "TypeSpec", "ImplMap", "FieldRVA", "ENCLog", "ENCMap",
	"Assembly", "AssemblyProcessor", "AssemblyOS", "AssemblyRef",
	"AssemblyRefProcessor", "AssemblyRefOS", "File", "ExportedType",
	"ManifestResource", "NestedClass", "GenericParam", "MethodSpec",
	"GenericParamConstraint",
}

// String returns the ECMA-335 name of the table.
func (t Table) String() string {
	if int(t) < len(tableNames) {
		return tableNames[t]
	}
	return "Unknown"
}

// IsPointer reports whether t is one of the five indirection tables used by
// incrementally-edited metadata.
func (t Table) IsPointer() bool {
	switch t {
	case FieldPtr, MethodPtr, ParamPtr, EventPtr, PropertyPtr:
		return true
	default:
		return false
	}
}

// Column indices for the columns this module reads. Only the columns needed
// for list resolution, tombstone detection and keyed lookup are named here;
// everything else is reachable through ReadColumn with a raw index.
const (
	// TypeDefFlagsCol is the Flags column of the TypeDef table.
	TypeDefFlagsCol = 0
	// TypeDefNameCol is the Name column of the TypeDef table.
	TypeDefNameCol = 1
	// TypeDefFieldListCol is the FieldList column of the TypeDef table.
	TypeDefFieldListCol = 4
	// TypeDefMethodListCol is the MethodList column of the TypeDef table.
	TypeDefMethodListCol = 5

	// FieldFlagsCol is the Flags column of the Field table.
	FieldFlagsCol = 0
	// FieldNameCol is the Name column of the Field table.
	FieldNameCol = 1

	// MethodFlagsCol is the Flags column of the Method table.
	MethodFlagsCol = 2
	// MethodNameCol is the Name column of the Method table.
	MethodNameCol = 3
	// MethodParamListCol is the ParamList column of the Method table.
	MethodParamListCol = 5

	// InterfaceImplClassCol is the Class column of the InterfaceImpl table.
	InterfaceImplClassCol = 0

	// EventMapEventListCol is the EventList column of the EventMap table.
	EventMapEventListCol = 1
	// EventFlagsCol is the EventFlags column of the Event table.
	EventFlagsCol = 0
	// EventNameCol is the Name column of the Event table.
	EventNameCol = 1

	// PropertyMapPropertyListCol is the PropertyList column of the PropertyMap table.
	PropertyMapPropertyListCol = 1
	// PropertyFlagsCol is the Flags column of the Property table.
	PropertyFlagsCol = 0
	// PropertyNameCol is the Name column of the Property table.
	PropertyNameCol = 1

	// GenericParamOwnerCol is the Owner column of the GenericParam table.
	GenericParamOwnerCol = 2
)
