package types

import (
	"fmt"
	"strings"
)

// Type represents a type in the analysis lattice.
type Type interface {
	String() string
	// IsType is a marker method to ensure type safety.
	IsType()
}

// ElementaryKind names an elementary IEC type.
type ElementaryKind string

const (
	KindBool ElementaryKind = "BOOL"

	KindSInt ElementaryKind = "SINT"
	KindInt  ElementaryKind = "INT"
	KindDInt ElementaryKind = "DINT"
	KindLInt ElementaryKind = "LINT"

	KindUSInt ElementaryKind = "USINT"
	KindUInt  ElementaryKind = "UINT"
	KindUDInt ElementaryKind = "UDINT"
	KindULInt ElementaryKind = "ULINT"

	KindByte  ElementaryKind = "BYTE"
	KindWord  ElementaryKind = "WORD"
	KindDWord ElementaryKind = "DWORD"
	KindLWord ElementaryKind = "LWORD"

	KindReal  ElementaryKind = "REAL"
	KindLReal ElementaryKind = "LREAL"

	KindTime      ElementaryKind = "TIME"
	KindDate      ElementaryKind = "DATE"
	KindTimeOfDay ElementaryKind = "TOD"
	KindDateTime  ElementaryKind = "DT"

	KindChar  ElementaryKind = "CHAR"
	KindWChar ElementaryKind = "WCHAR"

	KindVoid ElementaryKind = "VOID"
	KindAny  ElementaryKind = "ANY"

	// KindUnknown propagates through error recovery without producing
	// follow-on diagnostics.
	KindUnknown ElementaryKind = "UNKNOWN"
)

// Elementary is an elementary type.
type Elementary struct {
	Kind ElementaryKind
}

func (e *Elementary) String() string { return string(e.Kind) }
func (e *Elementary) IsType()        {}

// Shared elementary instances.
var (
	TypeBool = &Elementary{Kind: KindBool}

	TypeSInt = &Elementary{Kind: KindSInt}
	TypeInt  = &Elementary{Kind: KindInt}
	TypeDInt = &Elementary{Kind: KindDInt}
	TypeLInt = &Elementary{Kind: KindLInt}

	TypeUSInt = &Elementary{Kind: KindUSInt}
	TypeUInt  = &Elementary{Kind: KindUInt}
	TypeUDInt = &Elementary{Kind: KindUDInt}
	TypeULInt = &Elementary{Kind: KindULInt}

	TypeByte  = &Elementary{Kind: KindByte}
	TypeWord  = &Elementary{Kind: KindWord}
	TypeDWord = &Elementary{Kind: KindDWord}
	TypeLWord = &Elementary{Kind: KindLWord}

	TypeReal  = &Elementary{Kind: KindReal}
	TypeLReal = &Elementary{Kind: KindLReal}

	TypeTime      = &Elementary{Kind: KindTime}
	TypeDate      = &Elementary{Kind: KindDate}
	TypeTimeOfDay = &Elementary{Kind: KindTimeOfDay}
	TypeDateTime  = &Elementary{Kind: KindDateTime}

	TypeChar  = &Elementary{Kind: KindChar}
	TypeWChar = &Elementary{Kind: KindWChar}

	TypeVoid    = &Elementary{Kind: KindVoid}
	TypeAny     = &Elementary{Kind: KindAny}
	TypeUnknown = &Elementary{Kind: KindUnknown}
)

// String is a character string, wide or narrow, with an optional
// declared length (0 means the dialect default).
type String struct {
	Wide   bool
	Length int
}

func (s *String) String() string {
	name := "STRING"
	if s.Wide {
		name = "WSTRING"
	}
	if s.Length > 0 {
		return fmt.Sprintf("%s[%d]", name, s.Length)
	}
	return name
}
func (s *String) IsType() {}

// TypeString and TypeWString are the default-length string instances.
var (
	TypeString  = &String{}
	TypeWString = &String{Wide: true}
)

// Dimension is one inclusive array dimension.
type Dimension struct {
	Low  int64
	High int64
}

// Array is an array type with one or more dimensions.
type Array struct {
	Dims []Dimension
	Elem Type
}

func (a *Array) String() string {
	parts := make([]string, len(a.Dims))
	for i, d := range a.Dims {
		parts[i] = fmt.Sprintf("%d..%d", d.Low, d.High)
	}
	return "ARRAY[" + strings.Join(parts, ", ") + "] OF " + a.Elem.String()
}
func (a *Array) IsType() {}

// Field is one named member of a struct or function block.
type Field struct {
	Name string
	Type Type
}

// Struct is a structured type with ordered fields.
type Struct struct {
	Name   string
	Fields []Field
}

func (s *Struct) String() string {
	if s.Name != "" {
		return s.Name
	}
	return "STRUCT"
}
func (s *Struct) IsType() {}

// Field returns the named field, case-insensitively, or nil.
func (s *Struct) Field(name string) *Field {
	for i := range s.Fields {
		if strings.EqualFold(s.Fields[i].Name, name) {
			return &s.Fields[i]
		}
	}
	return nil
}

// Enum is an enumerated type with named tags.
type Enum struct {
	Name string
	Tags []string
}

func (e *Enum) String() string { return e.Name }
func (e *Enum) IsType()        {}

// HasTag reports whether the enum defines the tag, case-insensitively.
func (e *Enum) HasTag(name string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}

// Subrange constrains a base integer type to an inclusive range.
type Subrange struct {
	Base Type
	Low  int64
	High int64
}

func (s *Subrange) String() string {
	return fmt.Sprintf("%s (%d..%d)", s.Base, s.Low, s.High)
}
func (s *Subrange) IsType() {}

// FunctionBlock is the type of a function block instance. Fields cover
// the declared inputs and outputs visible through member access.
type FunctionBlock struct {
	Name   string
	Fields []Field
}

func (f *FunctionBlock) String() string { return f.Name }
func (f *FunctionBlock) IsType()        {}

func (f *FunctionBlock) Field(name string) *Field {
	for i := range f.Fields {
		if strings.EqualFold(f.Fields[i].Name, name) {
			return &f.Fields[i]
		}
	}
	return nil
}

// Function is a callable with a fixed parameter list.
type Function struct {
	Name   string
	Params []Field
	Return Type
}

func (f *Function) String() string { return f.Name }
func (f *Function) IsType()        {}

// Ref is a reference (REF_TO) type.
type Ref struct {
	To Type
}

func (r *Ref) String() string { return "REF_TO " + r.To.String() }
func (r *Ref) IsType()        {}

// Named is an unresolved reference to a user-defined type. Member access
// through it yields Unknown rather than an error, which keeps vendor
// function-block types from flooding the diagnostics.
type Named struct {
	Name string
}

func (n *Named) String() string { return n.Name }
func (n *Named) IsType()        {}

var elementaryNames = map[string]*Elementary{
	"BOOL":  TypeBool,
	"SINT":  TypeSInt,
	"INT":   TypeInt,
	"DINT":  TypeDInt,
	"LINT":  TypeLInt,
	"USINT": TypeUSInt,
	"UINT":  TypeUInt,
	"UDINT": TypeUDInt,
	"ULINT": TypeULInt,
	"BYTE":  TypeByte,
	"WORD":  TypeWord,
	"DWORD": TypeDWord,
	"LWORD": TypeLWord,
	"REAL":  TypeReal,
	"LREAL": TypeLReal,

	"TIME":  TypeTime,
	"LTIME": TypeTime,
	"DATE":  TypeDate,
	"LDATE": TypeDate,

	"TOD":            TypeTimeOfDay,
	"TIME_OF_DAY":    TypeTimeOfDay,
	"LTOD":           TypeTimeOfDay,
	"LTIME_OF_DAY":   TypeTimeOfDay,
	"DT":             TypeDateTime,
	"DATE_AND_TIME":  TypeDateTime,
	"LDT":            TypeDateTime,
	"LDATE_AND_TIME": TypeDateTime,
	"CHAR":           TypeChar,
	"WCHAR":          TypeWChar,
	"ANY":            TypeAny,
	"ANY_INT":        TypeAny,
	"ANY_NUM":        TypeAny,
	"ANY_ELEMENTARY": TypeAny,
	"VOID":           TypeVoid,
}

// FromName resolves an elementary type name, case-insensitively. STRING
// and WSTRING resolve to the default-length string types. Returns nil
// for names that are not elementary.
func FromName(name string) Type {
	upper := strings.ToUpper(name)
	if t, ok := elementaryNames[upper]; ok {
		return t
	}
	switch upper {
	case "STRING":
		return TypeString
	case "WSTRING":
		return TypeWString
	}
	return nil
}

// IsUnknown reports whether t is the error-recovery type.
func IsUnknown(t Type) bool {
	e, ok := t.(*Elementary)
	return ok && e.Kind == KindUnknown
}

// IsAny reports whether t accepts every type.
func IsAny(t Type) bool {
	e, ok := t.(*Elementary)
	return ok && e.Kind == KindAny
}

// IsInteger reports whether t is a signed/unsigned integer or a
// bit-string type. Subranges count as their base.
func IsInteger(t Type) bool {
	switch t := t.(type) {
	case *Elementary:
		switch t.Kind {
		case KindSInt, KindInt, KindDInt, KindLInt,
			KindUSInt, KindUInt, KindUDInt, KindULInt,
			KindByte, KindWord, KindDWord, KindLWord:
			return true
		}
	case *Subrange:
		return IsInteger(t.Base)
	}
	return false
}

// IsReal reports whether t is a floating-point type.
func IsReal(t Type) bool {
	e, ok := t.(*Elementary)
	return ok && (e.Kind == KindReal || e.Kind == KindLReal)
}

// IsNumeric reports whether t participates in arithmetic.
func IsNumeric(t Type) bool {
	return IsInteger(t) || IsReal(t)
}

// IsBool reports whether t is BOOL.
func IsBool(t Type) bool {
	e, ok := t.(*Elementary)
	return ok && e.Kind == KindBool
}

// IsString reports whether t is a character string type.
func IsString(t Type) bool {
	_, ok := t.(*String)
	return ok
}

// IsTemporal reports whether t is a time or date type.
func IsTemporal(t Type) bool {
	e, ok := t.(*Elementary)
	if !ok {
		return false
	}
	switch e.Kind {
	case KindTime, KindDate, KindTimeOfDay, KindDateTime:
		return true
	}
	return false
}

// AssignableFrom reports whether a value of type src may be assigned to
// a slot of type dst. Unknown and Any accept everything in both
// directions so one earlier error does not cascade.
func AssignableFrom(dst, src Type) bool {
	if dst == nil || src == nil {
		return true
	}
	if IsUnknown(dst) || IsUnknown(src) || IsAny(dst) || IsAny(src) {
		return true
	}

	if sub, ok := dst.(*Subrange); ok {
		return AssignableFrom(sub.Base, src)
	}
	if sub, ok := src.(*Subrange); ok {
		return AssignableFrom(dst, sub.Base)
	}

	switch dst := dst.(type) {
	case *Elementary:
		e, ok := src.(*Elementary)
		if !ok {
			return false
		}
		if dst.Kind == e.Kind {
			return true
		}
		// Integer widths convert freely; integers widen to reals.
		if IsInteger(dst) && IsInteger(src) {
			return true
		}
		if IsReal(dst) && IsNumeric(src) {
			return true
		}
		return false
	case *String:
		s, ok := src.(*String)
		if !ok {
			return false
		}
		// Length-widening: a shorter (or default-length) string fits.
		return s.Wide == dst.Wide
	case *Array:
		s, ok := src.(*Array)
		return ok && len(s.Dims) == len(dst.Dims) && AssignableFrom(dst.Elem, s.Elem)
	case *Struct:
		s, ok := src.(*Struct)
		return ok && (dst == s || strings.EqualFold(dst.Name, s.Name))
	case *Enum:
		s, ok := src.(*Enum)
		return ok && (dst == s || strings.EqualFold(dst.Name, s.Name))
	case *FunctionBlock:
		s, ok := src.(*FunctionBlock)
		return ok && strings.EqualFold(dst.Name, s.Name)
	case *Ref:
		s, ok := src.(*Ref)
		return ok && AssignableFrom(dst.To, s.To)
	case *Named:
		s, ok := src.(*Named)
		return ok && strings.EqualFold(dst.Name, s.Name)
	}
	return false
}

// Comparable reports whether two values may be compared with the
// relational operators.
func Comparable(a, b Type) bool {
	if a == nil || b == nil || IsUnknown(a) || IsUnknown(b) || IsAny(a) || IsAny(b) {
		return true
	}
	if IsNumeric(a) && IsNumeric(b) {
		return true
	}
	if IsString(a) && IsString(b) {
		return true
	}
	if IsBool(a) && IsBool(b) {
		return true
	}
	if ea, ok := a.(*Elementary); ok {
		if eb, ok := b.(*Elementary); ok && ea.Kind == eb.Kind {
			return true
		}
	}
	if ea, ok := a.(*Enum); ok {
		if eb, ok := b.(*Enum); ok {
			return strings.EqualFold(ea.Name, eb.Name)
		}
	}
	return false
}
