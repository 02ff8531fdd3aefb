package types

import "strings"

func field(name string, t Type) Field { return Field{Name: name, Type: t} }

// builtinFunctions covers the IEC standard functions the checker can
// type without a declaration. Numeric functions are typed against LREAL
// with Any-accepting assignability doing the narrowing.
var builtinFunctions = map[string]*Function{
	"ABS":   {Name: "ABS", Params: []Field{field("IN", TypeAny)}, Return: TypeLReal},
	"SQRT":  {Name: "SQRT", Params: []Field{field("IN", TypeLReal)}, Return: TypeLReal},
	"LN":    {Name: "LN", Params: []Field{field("IN", TypeLReal)}, Return: TypeLReal},
	"LOG":   {Name: "LOG", Params: []Field{field("IN", TypeLReal)}, Return: TypeLReal},
	"EXP":   {Name: "EXP", Params: []Field{field("IN", TypeLReal)}, Return: TypeLReal},
	"EXPT":  {Name: "EXPT", Params: []Field{field("IN1", TypeLReal), field("IN2", TypeLReal)}, Return: TypeLReal},
	"SIN":   {Name: "SIN", Params: []Field{field("IN", TypeLReal)}, Return: TypeLReal},
	"COS":   {Name: "COS", Params: []Field{field("IN", TypeLReal)}, Return: TypeLReal},
	"TAN":   {Name: "TAN", Params: []Field{field("IN", TypeLReal)}, Return: TypeLReal},
	"ASIN":  {Name: "ASIN", Params: []Field{field("IN", TypeLReal)}, Return: TypeLReal},
	"ACOS":  {Name: "ACOS", Params: []Field{field("IN", TypeLReal)}, Return: TypeLReal},
	"ATAN":  {Name: "ATAN", Params: []Field{field("IN", TypeLReal)}, Return: TypeLReal},
	"TRUNC": {Name: "TRUNC", Params: []Field{field("IN", TypeLReal)}, Return: TypeDInt},

	"MIN":   {Name: "MIN", Params: []Field{field("IN1", TypeAny), field("IN2", TypeAny)}, Return: TypeAny},
	"MAX":   {Name: "MAX", Params: []Field{field("IN1", TypeAny), field("IN2", TypeAny)}, Return: TypeAny},
	"LIMIT": {Name: "LIMIT", Params: []Field{field("MN", TypeAny), field("IN", TypeAny), field("MX", TypeAny)}, Return: TypeAny},
	"SEL":   {Name: "SEL", Params: []Field{field("G", TypeBool), field("IN0", TypeAny), field("IN1", TypeAny)}, Return: TypeAny},
	"MUX":   {Name: "MUX", Params: []Field{field("K", TypeDInt), field("IN0", TypeAny), field("IN1", TypeAny)}, Return: TypeAny},

	"SHL": {Name: "SHL", Params: []Field{field("IN", TypeDWord), field("N", TypeDInt)}, Return: TypeDWord},
	"SHR": {Name: "SHR", Params: []Field{field("IN", TypeDWord), field("N", TypeDInt)}, Return: TypeDWord},
	"ROL": {Name: "ROL", Params: []Field{field("IN", TypeDWord), field("N", TypeDInt)}, Return: TypeDWord},
	"ROR": {Name: "ROR", Params: []Field{field("IN", TypeDWord), field("N", TypeDInt)}, Return: TypeDWord},

	"LEN":     {Name: "LEN", Params: []Field{field("IN", TypeString)}, Return: TypeDInt},
	"CONCAT":  {Name: "CONCAT", Params: []Field{field("IN1", TypeString), field("IN2", TypeString)}, Return: TypeString},
	"LEFT":    {Name: "LEFT", Params: []Field{field("IN", TypeString), field("L", TypeDInt)}, Return: TypeString},
	"RIGHT":   {Name: "RIGHT", Params: []Field{field("IN", TypeString), field("L", TypeDInt)}, Return: TypeString},
	"MID":     {Name: "MID", Params: []Field{field("IN", TypeString), field("L", TypeDInt), field("P", TypeDInt)}, Return: TypeString},
	"INSERT":  {Name: "INSERT", Params: []Field{field("IN1", TypeString), field("IN2", TypeString), field("P", TypeDInt)}, Return: TypeString},
	"DELETE":  {Name: "DELETE", Params: []Field{field("IN", TypeString), field("L", TypeDInt), field("P", TypeDInt)}, Return: TypeString},
	"REPLACE": {Name: "REPLACE", Params: []Field{field("IN1", TypeString), field("IN2", TypeString), field("L", TypeDInt), field("P", TypeDInt)}, Return: TypeString},
	"FIND":    {Name: "FIND", Params: []Field{field("IN1", TypeString), field("IN2", TypeString)}, Return: TypeDInt},
}

// builtinFunctionBlocks covers the standard timer, counter, edge, and
// bistable blocks; their fields type member access on instances.
var builtinFunctionBlocks = map[string]*FunctionBlock{
	"TON": {Name: "TON", Fields: []Field{
		field("IN", TypeBool), field("PT", TypeTime),
		field("Q", TypeBool), field("ET", TypeTime),
	}},
	"TOF": {Name: "TOF", Fields: []Field{
		field("IN", TypeBool), field("PT", TypeTime),
		field("Q", TypeBool), field("ET", TypeTime),
	}},
	"TP": {Name: "TP", Fields: []Field{
		field("IN", TypeBool), field("PT", TypeTime),
		field("Q", TypeBool), field("ET", TypeTime),
	}},
	"CTU": {Name: "CTU", Fields: []Field{
		field("CU", TypeBool), field("R", TypeBool), field("PV", TypeDInt),
		field("Q", TypeBool), field("CV", TypeDInt),
	}},
	"CTD": {Name: "CTD", Fields: []Field{
		field("CD", TypeBool), field("LD", TypeBool), field("PV", TypeDInt),
		field("Q", TypeBool), field("CV", TypeDInt),
	}},
	"CTUD": {Name: "CTUD", Fields: []Field{
		field("CU", TypeBool), field("CD", TypeBool), field("R", TypeBool),
		field("LD", TypeBool), field("PV", TypeDInt),
		field("QU", TypeBool), field("QD", TypeBool), field("CV", TypeDInt),
	}},
	"R_TRIG": {Name: "R_TRIG", Fields: []Field{
		field("CLK", TypeBool), field("Q", TypeBool),
	}},
	"F_TRIG": {Name: "F_TRIG", Fields: []Field{
		field("CLK", TypeBool), field("Q", TypeBool),
	}},
	"SR": {Name: "SR", Fields: []Field{
		field("S1", TypeBool), field("R", TypeBool), field("Q1", TypeBool),
	}},
	"RS": {Name: "RS", Fields: []Field{
		field("S", TypeBool), field("R1", TypeBool), field("Q1", TypeBool),
	}},
}

// LookupBuiltinFunction resolves a standard function, including the
// X_TO_Y conversion family, case-insensitively.
func LookupBuiltinFunction(name string) *Function {
	upper := strings.ToUpper(name)
	if fn, ok := builtinFunctions[upper]; ok {
		return fn
	}

	// Conversions: SOURCE_TO_TARGET where both sides are elementary.
	if i := strings.Index(upper, "_TO_"); i > 0 {
		src := FromName(upper[:i])
		dst := FromName(upper[i+len("_TO_"):])
		if src != nil && dst != nil {
			return &Function{
				Name:   upper,
				Params: []Field{field("IN", src)},
				Return: dst,
			}
		}
	}

	return nil
}

// LookupBuiltinFunctionBlock resolves a standard function block type by
// name, case-insensitively.
func LookupBuiltinFunctionBlock(name string) *FunctionBlock {
	return builtinFunctionBlocks[strings.ToUpper(name)]
}
