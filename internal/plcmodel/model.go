// Package plcmodel defines the vendor-neutral program model: projects,
// POUs, interfaces, and bodies, plus cross-reference and statistics
// over them. Dialect ASTs convert into this shape; everything
// project-wide consumes it.
package plcmodel

import "strings"

// PouKind is the neutral POU classification.
type PouKind int

const (
	KindProgram PouKind = iota
	KindFunction
	KindFunctionBlock
)

func (k PouKind) String() string {
	switch k {
	case KindProgram:
		return "Program"
	case KindFunction:
		return "Function"
	default:
		return "FunctionBlock"
	}
}

// VariableClass is where a variable lives in a POU interface.
type VariableClass int

const (
	ClassInput VariableClass = iota
	ClassOutput
	ClassInOut
	ClassLocal
	ClassTemp
	ClassExternal
	ClassGlobal
	ClassConfig
	ClassAccess
)

func (c VariableClass) String() string {
	switch c {
	case ClassInput:
		return "Input"
	case ClassOutput:
		return "Output"
	case ClassInOut:
		return "InOut"
	case ClassLocal:
		return "Local"
	case ClassTemp:
		return "Temp"
	case ClassExternal:
		return "External"
	case ClassGlobal:
		return "Global"
	case ClassConfig:
		return "Config"
	default:
		return "Access"
	}
}

// Variable is one declared name. DataType is the declared type's
// textual name; Dimensions is set for arrays; Initial keeps the
// initializer's source form when one was given.
type Variable struct {
	Name       string
	DataType   string
	Class      VariableClass
	Dimensions []int
	Initial    string
	Constant   bool
	Address    string
}

// Interface groups a POU's variables by class.
type Interface struct {
	Inputs  []Variable
	Outputs []Variable
	InOuts  []Variable
	Locals  []Variable
	Temps   []Variable
}

// All returns every interface variable in declaration-class order.
func (i *Interface) All() []Variable {
	out := make([]Variable, 0,
		len(i.Inputs)+len(i.Outputs)+len(i.InOuts)+len(i.Locals)+len(i.Temps))
	out = append(out, i.Inputs...)
	out = append(out, i.Outputs...)
	out = append(out, i.InOuts...)
	out = append(out, i.Locals...)
	out = append(out, i.Temps...)
	return out
}

// Body is the implementation of a POU in one of the IEC languages.
type Body interface {
	bodyNode()
	Language() string
}

// StBody is structured text source.
type StBody struct {
	Text string
}

func (*StBody) bodyNode()        {}
func (*StBody) Language() string { return "ST" }

// IlBody is instruction list source.
type IlBody struct {
	Text string
}

func (*IlBody) bodyNode()        {}
func (*IlBody) Language() string { return "IL" }

// LdBody is ladder logic as one text rung per entry.
type LdBody struct {
	Rungs []string
}

func (*LdBody) bodyNode()        {}
func (*LdBody) Language() string { return "LD" }

// FbdBody is function block diagram networks in text form.
type FbdBody struct {
	Networks []string
}

func (*FbdBody) bodyNode()        {}
func (*FbdBody) Language() string { return "FBD" }

// SfcBody is a sequential function chart: step names and transition
// condition texts.
type SfcBody struct {
	Steps       []string
	Transitions []string
}

func (*SfcBody) bodyNode()        {}
func (*SfcBody) Language() string { return "SFC" }

// RawBody carries content the model does not natively understand,
// tagged with its source language.
type RawBody struct {
	Lang    string
	Content string
}

func (*RawBody) bodyNode()          {}
func (r *RawBody) Language() string { return r.Lang }

// Pou is one neutral program organization unit. Body is nil for
// declarations without an implementation (interfaces, externals).
type Pou struct {
	Name       string
	Kind       PouKind
	ReturnType string
	Interface  Interface
	Body       Body
}

// Task is a scheduled execution unit from a vendor project.
type Task struct {
	Name     string
	Kind     string // continuous, periodic, event
	Programs []string
}

// Project is the root of the neutral model.
type Project struct {
	Name      string
	Pous      []*Pou
	Globals   []Variable
	DataTypes []string
	Tasks     []Task
}

// Pou returns the named POU, case-insensitively, or nil.
func (p *Project) Pou(name string) *Pou {
	for _, pou := range p.Pous {
		if strings.EqualFold(pou.Name, name) {
			return pou
		}
	}
	return nil
}
