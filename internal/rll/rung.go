// Package rll parses Rockwell relay ladder logic in its compact text
// form: a rung is a series of INSTR(operand,...) calls with optional
// parallel-branch brackets, terminated by a semicolon.
//
//	XIC(Start)[OTE(Motor),OTE(Light)];
package rll

import "strings"

// Rung is one parsed rung. Elements is nil when parsing failed; the
// original text is kept either way.
type Rung struct {
	Raw      string
	Elements []Element
	Err      *Error
}

// Parsed reports whether the rung text parsed cleanly.
func (r *Rung) Parsed() bool {
	return r.Err == nil
}

// TagReferences extracts every tag referenced by the rung's operands,
// in instruction order. A failed rung yields none.
func (r *Rung) TagReferences() []TagReference {
	var refs []TagReference
	for _, el := range r.Elements {
		el.collectTags(&refs)
	}
	return refs
}

// Element is one step in a rung: a single instruction or a group of
// parallel branches.
type Element interface {
	element()
	collectTags(refs *[]TagReference)
}

// Instruction is one instruction call, XIC(tag) or MOV(src,dest).
type Instruction struct {
	Mnemonic string
	Operands []Operand
}

func (*Instruction) element() {}

func (in *Instruction) collectTags(refs *[]TagReference) {
	for i, op := range in.Operands {
		if op.Inferred {
			continue
		}
		for _, tag := range ParseOperand(op.Value).AllTags() {
			*refs = append(*refs, TagReference{
				Name:         tag,
				FullOperand:  op.Value,
				Instruction:  in.Mnemonic,
				OperandIndex: i,
			})
		}
	}
}

// Parallel is a bracketed group of branches that execute in parallel.
type Parallel struct {
	Branches []Branch
}

func (*Parallel) element() {}

func (p *Parallel) collectTags(refs *[]TagReference) {
	for _, br := range p.Branches {
		for _, el := range br.Elements {
			el.collectTags(refs)
		}
	}
}

// Branch is one leg of a parallel group.
type Branch struct {
	Elements []Element
}

// Operand is one instruction argument. Inferred marks the '?'
// placeholder Logix writes for arguments it fills in itself.
type Operand struct {
	Inferred bool
	Value    string
}

// TagReference is one tag use found in a rung.
type TagReference struct {
	Name         string // base tag, Timer1 from Timer1.PRE
	FullOperand  string // operand as written
	Instruction  string
	OperandIndex int
}

// ParseRung parses rung text permissively: on failure the returned
// rung keeps the original text and carries the error instead of
// elements. Empty or whitespace-only text is an empty rung.
func ParseRung(text string) *Rung {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &Rung{Raw: text}
	}
	elements, err := ParseRungStrict(trimmed)
	if err != nil {
		return &Rung{Raw: text, Err: err}
	}
	return &Rung{Raw: text, Elements: elements}
}

// ParseRungStrict parses rung text and fails on any malformation.
func ParseRungStrict(text string) ([]Element, *Error) {
	p := &rungParser{src: text}
	elements, err := p.rung()
	if err != nil {
		return nil, classify(text, err)
	}
	return elements, nil
}

// classify upgrades a low-level failure to the most telling error the
// text supports: a missing terminator or an unbalanced pair beats a
// generic unexpected-character report.
func classify(text string, err *Error) *Error {
	if !strings.Contains(text, ";") {
		return &Error{Kind: ErrMissingTerminator, Pos: -1}
	}
	if strings.Count(text, "[") != strings.Count(text, "]") {
		return &Error{Kind: ErrUnclosedBracket, Pos: max(0, strings.IndexByte(text, '['))}
	}
	if strings.Count(text, "(") != strings.Count(text, ")") {
		return &Error{Kind: ErrUnclosedParen, Pos: max(0, strings.IndexByte(text, '('))}
	}
	return err
}

// rungParser is a recursive-descent byte cursor over one rung.
type rungParser struct {
	src string
	pos int
}

func (p *rungParser) done() bool {
	return p.pos >= len(p.src)
}

func (p *rungParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.src[p.pos]
}

func (p *rungParser) skipSpace() {
	for !p.done() {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

// rung parses element* ';'.
func (p *rungParser) rung() ([]Element, *Error) {
	elements := []Element{}
	for {
		p.skipSpace()
		if p.done() {
			return nil, &Error{Kind: ErrMissingTerminator, Pos: -1}
		}
		if p.peek() == ';' {
			p.pos++
			p.skipSpace()
			if !p.done() {
				return nil, &Error{Kind: ErrUnexpectedChar, Pos: p.pos, Ch: p.peek()}
			}
			return elements, nil
		}
		el, err := p.element()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
}

// element parses a parallel group or an instruction.
func (p *rungParser) element() (Element, *Error) {
	if p.peek() == '[' {
		return p.parallel()
	}
	if isMnemonicStart(p.peek()) {
		return p.instruction()
	}
	return nil, &Error{Kind: ErrUnexpectedChar, Pos: p.pos, Ch: p.peek()}
}

// parallel parses '[' branch (',' branch)* ']'.
func (p *rungParser) parallel() (Element, *Error) {
	open := p.pos
	p.pos++ // '['

	var branches []Branch
	for {
		br, err := p.branch()
		if err != nil {
			return nil, err
		}
		branches = append(branches, br)
		p.skipSpace()
		switch {
		case p.done():
			return nil, &Error{Kind: ErrUnclosedBracket, Pos: open}
		case p.peek() == ',':
			p.pos++
		case p.peek() == ']':
			p.pos++
			return &Parallel{Branches: branches}, nil
		default:
			return nil, &Error{Kind: ErrUnexpectedChar, Pos: p.pos, Ch: p.peek()}
		}
	}
}

// branch parses element+ within a parallel group, stopping before ','
// or ']'.
func (p *rungParser) branch() (Branch, *Error) {
	var elements []Element
	for {
		p.skipSpace()
		if p.done() || p.peek() == ',' || p.peek() == ']' {
			if len(elements) == 0 {
				return Branch{}, &Error{Kind: ErrInvalidInstruction, Pos: p.pos}
			}
			return Branch{Elements: elements}, nil
		}
		el, err := p.element()
		if err != nil {
			return Branch{}, err
		}
		elements = append(elements, el)
	}
}

// instruction parses MNEMONIC '(' operands? ')'.
func (p *rungParser) instruction() (Element, *Error) {
	mnemonic := p.mnemonic()
	p.skipSpace()
	if p.peek() != '(' {
		return nil, &Error{Kind: ErrExpected, Pos: p.pos, Want: "'('"}
	}
	open := p.pos
	p.pos++

	var operands []Operand
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return &Instruction{Mnemonic: mnemonic}, nil
	}
	for {
		op, err := p.operand(open)
		if err != nil {
			return nil, err
		}
		operands = append(operands, op)
		p.skipSpace()
		switch {
		case p.done():
			return nil, &Error{Kind: ErrUnclosedParen, Pos: open}
		case p.peek() == ',':
			p.pos++
		case p.peek() == ')':
			p.pos++
			return &Instruction{Mnemonic: mnemonic, Operands: operands}, nil
		default:
			return nil, &Error{Kind: ErrUnexpectedChar, Pos: p.pos, Ch: p.peek()}
		}
	}
}

func (p *rungParser) mnemonic() string {
	start := p.pos
	for !p.done() && isMnemonicPart(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// operand parses '?' or a value string with balanced parens and
// brackets; a top-level ',' ')' or ']' ends it.
func (p *rungParser) operand(open int) (Operand, *Error) {
	p.skipSpace()
	if p.peek() == '?' {
		p.pos++
		return Operand{Inferred: true}, nil
	}

	start := p.pos
	parens, brackets := 0, 0
scan:
	for !p.done() {
		switch p.src[p.pos] {
		case '(':
			parens++
		case ')':
			if parens == 0 {
				break scan
			}
			parens--
		case '[':
			brackets++
		case ']':
			if brackets == 0 {
				break scan
			}
			brackets--
		case ',':
			if parens == 0 && brackets == 0 {
				break scan
			}
		}
		p.pos++
	}
	if parens > 0 || p.done() {
		return Operand{}, &Error{Kind: ErrUnclosedParen, Pos: open}
	}
	value := strings.TrimSpace(p.src[start:p.pos])
	if value == "" {
		return Operand{}, &Error{Kind: ErrExpected, Pos: start, Want: "operand"}
	}
	return Operand{Value: value}, nil
}

func isMnemonicStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isMnemonicPart(c byte) bool {
	return isMnemonicStart(c) || (c >= '0' && c <= '9')
}
