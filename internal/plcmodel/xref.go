package plcmodel

import (
	"sort"
	"strings"
)

// Reference is one use of a tag: where it appeared and in what
// instruction context.
type Reference struct {
	Tag         string
	Pou         string
	Routine     string
	Rung        int // -1 outside ladder bodies
	Instruction string
	Operand     string
}

// CrossReference indexes tag, POU, and type usage across a project.
type CrossReference struct {
	definedTags map[string]string
	usedTags    map[string]string
	usedPous    map[string]string
	usedTypes   map[string]string
	refs        map[string][]Reference

	pous []*Pou
}

// BuildCrossReference walks every POU body and interface in the
// project and builds the usage indices. Text bodies go through a
// minimal dialect-tolerant tokenizer, not the full parsers.
func BuildCrossReference(p *Project) *CrossReference {
	x := &CrossReference{
		definedTags: map[string]string{},
		usedTags:    map[string]string{},
		usedPous:    map[string]string{},
		usedTypes:   map[string]string{},
		refs:        map[string][]Reference{},
		pous:        p.Pous,
	}

	for _, g := range p.Globals {
		x.define(g.Name)
		x.useType(g.DataType)
	}
	for _, pou := range p.Pous {
		for _, v := range pou.Interface.All() {
			x.define(v.Name)
			x.useType(v.DataType)
		}
		x.scanBody(pou)
	}

	return x
}

func (x *CrossReference) define(name string) {
	key := strings.ToUpper(name)
	if _, ok := x.definedTags[key]; !ok {
		x.definedTags[key] = name
	}
}

func (x *CrossReference) useType(dataType string) {
	name := strings.TrimPrefix(dataType, "ARRAY OF ")
	name = strings.TrimPrefix(name, "REF_TO ")
	if name == "" {
		return
	}
	key := strings.ToUpper(name)
	if _, ok := x.usedTypes[key]; !ok {
		x.usedTypes[key] = name
	}
}

func (x *CrossReference) usePou(name string) {
	key := strings.ToUpper(name)
	if _, ok := x.usedPous[key]; !ok {
		x.usedPous[key] = name
	}
}

func (x *CrossReference) useTag(base string, ref Reference) {
	key := strings.ToUpper(base)
	if _, ok := x.usedTags[key]; !ok {
		x.usedTags[key] = base
	}
	ref.Tag = base
	x.refs[key] = append(x.refs[key], ref)
}

func (x *CrossReference) scanBody(pou *Pou) {
	switch body := pou.Body.(type) {
	case *StBody:
		x.scanExpressionText(body.Text, pou.Name, "", -1)
	case *IlBody:
		x.scanExpressionText(body.Text, pou.Name, "", -1)
	case *LdBody:
		for i, rung := range body.Rungs {
			x.scanLadderText(rung, pou.Name, "", i)
		}
	case *FbdBody:
		for _, network := range body.Networks {
			x.scanExpressionText(network, pou.Name, "", -1)
		}
	case *SfcBody:
		for _, transition := range body.Transitions {
			x.scanExpressionText(transition, pou.Name, "", -1)
		}
	case *RawBody:
		if isLadderLanguage(body.Lang) {
			for i, rung := range strings.Split(body.Content, ";") {
				if strings.TrimSpace(rung) == "" {
					continue
				}
				x.scanLadderText(rung, pou.Name, "", i)
			}
		} else {
			x.scanExpressionText(body.Content, pou.Name, "", -1)
		}
	}
}

func isLadderLanguage(lang string) bool {
	switch strings.ToUpper(lang) {
	case "RLL", "LD", "LADDER":
		return true
	}
	return false
}

// scanLadderText walks one rung of instruction-style text, collecting
// MNEMONIC(operand, ...) groups. Branch brackets and stray separators
// fall through the scan.
func (x *CrossReference) scanLadderText(text, pou, routine string, rung int) {
	s := newScanner(text)
	for !s.done() {
		s.skipNoise()
		if s.done() {
			break
		}
		if !isIdentStart(s.peek()) {
			s.next()
			continue
		}
		mnemonic := s.ident()
		if s.peek() != '(' {
			continue
		}
		operands := s.callOperands()
		x.usePou(mnemonic)
		for _, op := range operands {
			x.ladderOperand(op, Reference{
				Pou:         pou,
				Routine:     routine,
				Rung:        rung,
				Instruction: mnemonic,
				Operand:     op,
			})
		}
	}
}

// ladderOperand records one operand's base tag; expression-valued
// operands (CMP/CPT style) are re-scanned for every identifier.
func (x *CrossReference) ladderOperand(op string, ref Reference) {
	op = strings.TrimSpace(op)
	if op == "" || op == "?" {
		return
	}
	if isExpressionOperand(op) {
		s := newScanner(op)
		for !s.done() {
			s.skipNoise()
			if s.done() {
				break
			}
			if !isIdentStart(s.peek()) {
				s.next()
				continue
			}
			chain := s.operandChain()
			if base := BaseTag(chain); base != "" && !stKeywords[strings.ToUpper(base)] {
				r := ref
				r.Operand = chain
				x.useTag(base, r)
			}
		}
		return
	}
	if base := BaseTag(op); base != "" {
		x.useTag(base, ref)
	}
}

func isExpressionOperand(op string) bool {
	return strings.ContainsAny(op, " +-*/<>=&")
}

// scanExpressionText walks expression-style text (ST, IL, FBD
// networks), collecting identifier chains as tag uses and call targets
// as POU uses.
func (x *CrossReference) scanExpressionText(text, pou, routine string, rung int) {
	s := newScanner(text)
	depth := 0
	for !s.done() {
		s.skipNoise()
		if s.done() {
			break
		}
		c := s.peek()
		switch {
		case c == '%':
			s.address()
		case isDigit(c):
			s.number()
		case isIdentStart(c):
			chain := s.operandChain()
			if s.peek() == '#' {
				// Typed or time literal prefix: T#5s, DT#....
				s.literalTail()
				continue
			}
			upper := strings.ToUpper(chain)
			if stKeywords[upper] {
				continue
			}
			if s.peek() == '(' {
				x.usePou(chain)
				continue
			}
			if depth > 0 && s.peekAssignArrow() {
				// Named call parameter, not a tag. Assignment targets
				// outside calls still count as uses.
				continue
			}
			if base := BaseTag(chain); base != "" {
				x.useTag(base, Reference{
					Pou:     pou,
					Routine: routine,
					Rung:    rung,
					Operand: chain,
				})
			}
		default:
			switch c {
			case '(':
				depth++
			case ')':
				if depth > 0 {
					depth--
				}
			}
			s.next()
		}
	}
}

// BaseTag extracts the base tag name of an operand: the text up to the
// first '.', '[', or module-address ':'. A leading '%' is a direct
// address and a leading digit is a literal; neither names a tag.
func BaseTag(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	if s[0] == '%' || isDigit(s[0]) {
		return ""
	}
	if i := strings.IndexAny(s, ".[:"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	if s == "" || !isIdentStart(s[0]) {
		return ""
	}
	return s
}

// ReferencesTo returns every recorded reference to the tag,
// case-insensitively.
func (x *CrossReference) ReferencesTo(name string) []Reference {
	return x.refs[strings.ToUpper(name)]
}

// IsTagUsed reports whether the tag is referenced anywhere.
func (x *CrossReference) IsTagUsed(name string) bool {
	_, ok := x.usedTags[strings.ToUpper(name)]
	return ok
}

// IsPouUsed reports whether the POU or instruction is invoked anywhere.
func (x *CrossReference) IsPouUsed(name string) bool {
	_, ok := x.usedPous[strings.ToUpper(name)]
	return ok
}

// IsTypeUsed reports whether any variable declares the type.
func (x *CrossReference) IsTypeUsed(name string) bool {
	_, ok := x.usedTypes[strings.ToUpper(name)]
	return ok
}

// UsedTags returns the distinct referenced tag names, sorted.
func (x *CrossReference) UsedTags() []string {
	return sortedValues(x.usedTags)
}

// DefinedTags returns the declared tag names, sorted.
func (x *CrossReference) DefinedTags() []string {
	return sortedValues(x.definedTags)
}

// UsedPous returns the invoked POU and instruction names, sorted.
func (x *CrossReference) UsedPous() []string {
	return sortedValues(x.usedPous)
}

// UnusedTags returns tags that are declared but never referenced.
func (x *CrossReference) UnusedTags() []string {
	var out []string
	for key, name := range x.definedTags {
		if _, ok := x.usedTags[key]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// UndefinedTags returns tags that are referenced but never declared.
func (x *CrossReference) UndefinedTags() []string {
	var out []string
	for key, name := range x.usedTags {
		if _, ok := x.definedTags[key]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// UnusedPous returns project POUs that nothing invokes.
func (x *CrossReference) UnusedPous() []string {
	var out []string
	for _, pou := range x.pous {
		if _, ok := x.usedPous[strings.ToUpper(pou.Name)]; !ok {
			out = append(out, pou.Name)
		}
	}
	sort.Strings(out)
	return out
}

func sortedValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

var stKeywords = map[string]bool{
	"IF": true, "THEN": true, "ELSE": true, "ELSIF": true, "END_IF": true,
	"CASE": true, "OF": true, "END_CASE": true,
	"FOR": true, "TO": true, "BY": true, "DO": true, "END_FOR": true,
	"WHILE": true, "END_WHILE": true,
	"REPEAT": true, "UNTIL": true, "END_REPEAT": true,
	"EXIT": true, "CONTINUE": true, "RETURN": true,
	"AND": true, "OR": true, "XOR": true, "NOT": true, "MOD": true,
	"TRUE": true, "FALSE": true, "NULL": true,
	"GOTO": true, "LABEL": true, "REGION": true, "END_REGION": true,
}
