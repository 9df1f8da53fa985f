package models

// AccessMode is the access specifier in effect for a declaration
type AccessMode int

const (
	AccessUnspecified AccessMode = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

// String returns the string representation of the access mode
func (a AccessMode) String() string {
	switch a {
	case AccessPublic:
		return "Public"
	case AccessProtected:
		return "Protected"
	case AccessPrivate:
		return "Private"
	default:
		return "Unspecified"
	}
}

// FieldFlags suppress generated behaviour for a field
type FieldFlags uint32

const (
	FieldNoSetter FieldFlags = 1 << iota
	FieldNoGetter
	FieldNoEdit
	FieldNoScript
	FieldNoSave
	FieldNoLoad
	FieldNoDebug
)

var fieldFlagNames = []flagName[FieldFlags]{
	{FieldNoSetter, "NoSetter"},
	{FieldNoGetter, "NoGetter"},
	{FieldNoEdit, "NoEdit"},
	{FieldNoScript, "NoScript"},
	{FieldNoSave, "NoSave"},
	{FieldNoLoad, "NoLoad"},
	{FieldNoDebug, "NoDebug"},
}

func (f FieldFlags) Has(flag FieldFlags) bool { return f&flag == flag }
func (f *FieldFlags) Set(flags FieldFlags)    { *f |= flags }
func (f *FieldFlags) Clear(flags FieldFlags)  { *f &^= flags }

// Names returns the names of the set flags in declaration order.
func (f FieldFlags) Names() []string { return namesOf(f, fieldFlagNames) }

// MethodFlags describe qualifiers and provenance of a method
type MethodFlags uint32

const (
	MethodInline MethodFlags = 1 << iota
	MethodVirtual
	MethodStatic
	MethodConst
	MethodNoexcept
	MethodFinal
	MethodExplicit
	MethodAbstract
	MethodArtificial
	MethodHasBody
	MethodNoCallable
)

var methodFlagNames = []flagName[MethodFlags]{
	{MethodInline, "Inline"},
	{MethodVirtual, "Virtual"},
	{MethodStatic, "Static"},
	{MethodConst, "Const"},
	{MethodNoexcept, "Noexcept"},
	{MethodFinal, "Final"},
	{MethodExplicit, "Explicit"},
	{MethodAbstract, "Abstract"},
	{MethodArtificial, "Artificial"},
	{MethodHasBody, "HasBody"},
	{MethodNoCallable, "NoCallable"},
}

func (f MethodFlags) Has(flag MethodFlags) bool { return f&flag == flag }
func (f *MethodFlags) Set(flags MethodFlags)    { *f |= flags }
func (f *MethodFlags) Clear(flags MethodFlags)  { *f &^= flags }
func (f MethodFlags) Names() []string           { return namesOf(f, methodFlagNames) }

// ClassFlags describe how a class was declared
type ClassFlags uint32

const (
	// ClassStruct marks a class without a parent
	ClassStruct ClassFlags = 1 << iota
	// ClassDeclaredStruct marks a class declared with the struct keyword
	ClassDeclaredStruct
	ClassNoConstructors
)

var classFlagNames = []flagName[ClassFlags]{
	{ClassStruct, "Struct"},
	{ClassDeclaredStruct, "DeclaredStruct"},
	{ClassNoConstructors, "NoConstructors"},
}

func (f ClassFlags) Has(flag ClassFlags) bool { return f&flag == flag }
func (f *ClassFlags) Set(flags ClassFlags)    { *f |= flags }
func (f ClassFlags) Names() []string          { return namesOf(f, classFlagNames) }

type flagName[T ~uint32] struct {
	flag T
	name string
}

func namesOf[T ~uint32](set T, table []flagName[T]) []string {
	var names []string
	for _, fn := range table {
		if set&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return names
}
