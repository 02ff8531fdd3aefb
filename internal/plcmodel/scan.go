package plcmodel

import "strings"

// scanner is the minimal tokenizer behind the cross-reference: it
// knows just enough lexical structure (comments, string literals,
// identifier chains, call groups) to walk any of the text body forms
// without a full dialect parser.
type scanner struct {
	src string
	pos int
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

func (s *scanner) done() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.done() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) next() byte {
	c := s.peek()
	if !s.done() {
		s.pos++
	}
	return c
}

// skipNoise consumes whitespace, comments, and string literals.
func (s *scanner) skipNoise() {
	for !s.done() {
		switch c := s.peek(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.pos++
		case c == '\'' || c == '"':
			s.stringLiteral(c)
		case c == '/' && s.lookahead(1) == '/':
			s.lineComment()
		case c == '/' && s.lookahead(1) == '*':
			s.blockComment("/*", "*/", false)
		case c == '(' && s.lookahead(1) == '*':
			s.blockComment("(*", "*)", true)
		default:
			return
		}
	}
}

func (s *scanner) lookahead(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}
	return s.src[s.pos+n]
}

func (s *scanner) stringLiteral(quote byte) {
	s.pos++ // opening quote
	for !s.done() {
		c := s.next()
		if c == '$' {
			// $-escape consumes the next character.
			s.next()
			continue
		}
		if c == quote {
			if s.peek() == quote {
				s.pos++ // doubled quote escape
				continue
			}
			return
		}
	}
}

func (s *scanner) lineComment() {
	for !s.done() && s.peek() != '\n' {
		s.pos++
	}
}

func (s *scanner) blockComment(open, close string, nested bool) {
	s.pos += len(open)
	depth := 1
	for !s.done() && depth > 0 {
		switch {
		case strings.HasPrefix(s.src[s.pos:], close):
			depth--
			s.pos += len(close)
		case nested && strings.HasPrefix(s.src[s.pos:], open):
			depth++
			s.pos += len(open)
		default:
			s.pos++
		}
	}
}

// ident consumes one identifier. The caller has checked isIdentStart.
func (s *scanner) ident() string {
	start := s.pos
	for !s.done() && isIdentPart(s.peek()) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// operandChain consumes a dotted identifier chain: Motor.Axis.Speed.
// Brackets and indirect segments stop the chain so index expressions
// get scanned on their own.
func (s *scanner) operandChain() string {
	start := s.pos
	s.ident()
	for s.peek() == '.' && isIdentStart(s.lookahead(1)) {
		s.pos++ // '.'
		s.ident()
	}
	return s.src[start:s.pos]
}

// callOperands consumes a parenthesized argument list, splitting on
// top-level commas. The caller has checked peek() == '('.
func (s *scanner) callOperands() []string {
	s.pos++ // '('
	var operands []string
	depth := 1
	start := s.pos
	for !s.done() && depth > 0 {
		switch c := s.peek(); c {
		case '\'', '"':
			s.stringLiteral(c)
			continue
		case '(', '[':
			depth++
		case ']':
			depth--
		case ')':
			depth--
			if depth == 0 {
				operands = append(operands, s.src[start:s.pos])
				s.pos++
				return operands
			}
		case ',':
			if depth == 1 {
				operands = append(operands, s.src[start:s.pos])
				start = s.pos + 1
			}
		}
		s.pos++
	}
	if start < s.pos {
		operands = append(operands, s.src[start:s.pos])
	}
	return operands
}

// address consumes a direct address: %IX0.0, %QW4.
func (s *scanner) address() {
	s.pos++ // '%'
	for !s.done() {
		c := s.peek()
		if isIdentPart(c) || c == '.' {
			s.pos++
			continue
		}
		return
	}
}

// number consumes a numeric literal including based (16#FF) and real
// forms, stopping before a range operator.
func (s *scanner) number() {
	for !s.done() {
		c := s.peek()
		switch {
		case c == '.' && s.lookahead(1) == '.':
			return
		case isIdentPart(c) || c == '.' || c == '#':
			s.pos++
		default:
			return
		}
	}
}

// literalTail consumes the rest of a typed or time literal after its
// '#': the 5s of T#5s, the date digits of DT#....
func (s *scanner) literalTail() {
	s.pos++ // '#'
	for !s.done() {
		c := s.peek()
		if isIdentPart(c) || c == '.' || c == ':' || c == '-' || c == '+' {
			s.pos++
			continue
		}
		return
	}
}

// peekAssignArrow reports whether the next non-space characters are a
// named-parameter marker (:= or =>), without consuming them.
func (s *scanner) peekAssignArrow() bool {
	i := s.pos
	for i < len(s.src) && (s.src[i] == ' ' || s.src[i] == '\t') {
		i++
	}
	if i+1 >= len(s.src) {
		return false
	}
	pair := s.src[i : i+2]
	return pair == ":=" || pair == "=>"
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
