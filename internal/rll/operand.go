package rll

import "strings"

// OperandValue is a parsed operand: a tag path, a literal, or an
// expression over both.
type OperandValue interface {
	operandValue()
	// AllTags returns every base tag the value references, including
	// tags used as array indices.
	AllTags() []string
}

// TagPath is a tag reference: simple, structured (Timer1.DN), array
// (Data[0]), module I/O (Local:1:I.Data), or indirect (Tag.[Other]).
type TagPath struct {
	Base     string
	FullPath string
	Indices  []OperandValue
}

func (*TagPath) operandValue() {}

func (t *TagPath) AllTags() []string {
	tags := []string{t.Base}
	for _, idx := range t.Indices {
		tags = append(tags, idx.AllTags()...)
	}
	return tags
}

// Literal is a numeric constant operand.
type Literal struct {
	Text string
}

func (*Literal) operandValue() {}

func (*Literal) AllTags() []string { return nil }

// Expression is an operand containing operators, as CMP and CPT take.
type Expression struct {
	Text  string
	Terms []OperandValue
}

func (*Expression) operandValue() {}

func (e *Expression) AllTags() []string {
	var tags []string
	for _, term := range e.Terms {
		tags = append(tags, term.AllTags()...)
	}
	return tags
}

// ParseOperand parses one operand string. It never fails: text that
// fits no better shape comes back as a tag path.
func ParseOperand(text string) OperandValue {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &Literal{}
	}
	if isNumericLiteral(trimmed) {
		return &Literal{Text: trimmed}
	}
	if looksLikeExpression(trimmed) {
		return parseExpression(trimmed)
	}
	return parseTagPath(trimmed)
}

// isNumericLiteral accepts decimal, signed, scientific, and radix
// (16#FF) forms.
func isNumericLiteral(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "16#") || strings.HasPrefix(s, "8#") || strings.HasPrefix(s, "2#") {
		return true
	}
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "+")
	if s == "" || !isDigit(s[0]) {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case isDigit(c):
		case c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isTagStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// looksLikeExpression reports whether the text has an operator at
// bracket depth zero. A leading '-' is a sign, not subtraction.
func looksLikeExpression(s string) bool {
	parens, brackets := 0, 0
	seenTerm := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '(':
			parens++
		case ')':
			parens--
		case '[':
			brackets++
		case ']':
			brackets--
		case '+', '*', '/', '>', '<', '=':
			if parens == 0 && brackets == 0 {
				return true
			}
		case '-':
			if parens == 0 && brackets == 0 && seenTerm {
				return true
			}
		case ' ', '\t', '\n':
		default:
			if parens == 0 && brackets == 0 {
				seenTerm = true
			}
		}
	}
	return false
}

// parseTagPath splits a tag operand into base name and index values.
// For module I/O like FlexIO:3:I.Data the base is the module name;
// indirect addressing Tag.[Other] records the inner tag as an index.
func parseTagPath(input string) OperandValue {
	pos := 0
	for pos < len(input) {
		c := input[pos]
		if c == '.' || c == '[' || c == ':' {
			break
		}
		pos++
	}
	base := input[:pos]

	// Skip the :slot:type portion of a module address.
	for pos < len(input) && input[pos] == ':' {
		pos++
		for pos < len(input) {
			c := input[pos]
			if c == ':' || c == '.' || c == '[' {
				break
			}
			pos++
		}
	}

	var indices []OperandValue
	for pos < len(input) {
		switch input[pos] {
		case '[':
			idx, next := balancedIndex(input, pos)
			pos = next
			trimmed := strings.TrimSpace(idx)
			if trimmed != "" && isTagStart(trimmed[0]) {
				indices = append(indices, ParseOperand(trimmed))
			}
		case '.':
			pos++
			if pos < len(input) && input[pos] == '[' {
				idx, next := balancedIndex(input, pos)
				pos = next
				indices = append(indices, ParseOperand(idx))
			}
		default:
			pos = len(input)
		}
	}

	return &TagPath{Base: base, FullPath: input, Indices: indices}
}

// balancedIndex reads the bracketed index starting at input[open]
// and returns its inner text and the offset past the closing bracket.
func balancedIndex(input string, open int) (string, int) {
	depth := 0
	for i := open; i < len(input); i++ {
		switch input[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return input[open+1 : i], i + 1
			}
		}
	}
	return input[open+1:], len(input)
}

func parseExpression(input string) OperandValue {
	var terms []OperandValue
	expressionTerms(input, &terms)
	return &Expression{Text: input, Terms: terms}
}

// expressionTerms splits on top-level operators and collects the tag
// terms; literals are dropped.
func expressionTerms(input string, terms *[]OperandValue) {
	var current strings.Builder
	parens, brackets := 0, 0

	flush := func() {
		processTerm(current.String(), terms)
		current.Reset()
	}

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch c {
		case '(':
			parens++
			current.WriteByte(c)
		case ')':
			parens--
			current.WriteByte(c)
		case '[':
			brackets++
			current.WriteByte(c)
		case ']':
			brackets--
			current.WriteByte(c)
		case '+', '*', '/', '>', '<', '=':
			if parens == 0 && brackets == 0 {
				flush()
			} else {
				current.WriteByte(c)
			}
		case '-':
			if parens == 0 && brackets == 0 && strings.TrimSpace(current.String()) != "" {
				flush()
			} else {
				current.WriteByte(c)
			}
		case ' ':
			if parens != 0 || brackets != 0 {
				current.WriteByte(c)
			}
		default:
			current.WriteByte(c)
		}
	}
	flush()
}

// processTerm handles one split-out term: known function calls yield
// the tags in their arguments, parenthesized terms recurse, and plain
// terms parse as single values.
func processTerm(term string, terms *[]OperandValue) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return
	}

	if open := strings.IndexByte(trimmed, '('); open > 0 && strings.HasSuffix(trimmed, ")") {
		if isKnownFunction(trimmed[:open]) {
			args := trimmed[open+1 : len(trimmed)-1]
			for _, arg := range splitArgs(args) {
				arg = strings.TrimSpace(arg)
				if arg == "" {
					continue
				}
				appendTagTerms(ParseOperand(arg), terms)
			}
			return
		}
	}

	stripped := stripOuterParens(trimmed)
	if looksLikeExpression(stripped) {
		expressionTerms(stripped, terms)
		return
	}
	appendTagTerms(ParseOperand(stripped), terms)
}

func appendTagTerms(v OperandValue, terms *[]OperandValue) {
	switch v := v.(type) {
	case *TagPath:
		*terms = append(*terms, v)
	case *Expression:
		*terms = append(*terms, v.Terms...)
	}
}

// isKnownFunction matches the expression functions CMP and CPT accept.
func isKnownFunction(name string) bool {
	switch strings.ToUpper(name) {
	case "ABS", "SQRT", "LN", "LOG", "EXP",
		"SIN", "COS", "TAN", "ASN", "ACS", "ATN",
		"DEG", "RAD", "TRUNC", "NOT", "AND", "OR", "XOR",
		"MOD", "FRD", "TOD":
		return true
	}
	return false
}

// splitArgs splits on top-level commas only.
func splitArgs(args string) []string {
	var out []string
	start, parens, brackets := 0, 0, 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case '(':
			parens++
		case ')':
			parens--
		case '[':
			brackets++
		case ']':
			brackets--
		case ',':
			if parens == 0 && brackets == 0 {
				out = append(out, args[start:i])
				start = i + 1
			}
		}
	}
	if start < len(args) {
		out = append(out, args[start:])
	}
	return out
}

// stripOuterParens removes balanced enclosing parentheses, repeatedly.
func stripOuterParens(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "(") || !strings.HasSuffix(trimmed, ")") {
		return trimmed
	}
	inner := trimmed[1 : len(trimmed)-1]
	depth := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return trimmed
			}
		}
	}
	if depth != 0 {
		return trimmed
	}
	return stripOuterParens(inner)
}
