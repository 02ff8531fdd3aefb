package lsp

import (
	"encoding/json"
	"log"
	"sort"
	"strings"

	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/types"
)

// CompletionItem kinds from the LSP specification.
const (
	completionKindFunction = 3
	completionKindField    = 5
	completionKindVariable = 6
	completionKindClass    = 7
	completionKindKeyword  = 14
	completionKindConstant = 21
)

// CompletionItem represents one completion candidate.
type CompletionItem struct {
	Label  string `json:"label"`
	Kind   int    `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// CompletionList represents a completion response.
type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

// Statement and declaration keywords offered in every context.
var stKeywords = []string{
	"IF", "THEN", "ELSIF", "ELSE", "END_IF",
	"CASE", "OF", "END_CASE",
	"FOR", "TO", "BY", "DO", "END_FOR",
	"WHILE", "END_WHILE",
	"REPEAT", "UNTIL", "END_REPEAT",
	"RETURN", "EXIT", "CONTINUE",
	"VAR", "VAR_INPUT", "VAR_OUTPUT", "VAR_IN_OUT", "VAR_TEMP", "END_VAR",
	"TRUE", "FALSE",
	"AND", "OR", "XOR", "NOT", "MOD",
}

func (s *Server) handleCompletion(msg *jsonrpcMessage) *jsonrpcMessage {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		log.Printf("Failed to parse completion params: %v", err)
		return nullResponse(msg)
	}

	s.mu.RLock()
	doc, ok := s.Documents[params.TextDocument.URI]
	s.mu.RUnlock()
	if !ok {
		return nullResponse(msg)
	}

	offset := offsetAt(doc.Content, params.Position)

	var items []CompletionItem
	if base := memberBase(doc.Content, offset); base != "" {
		items = s.memberCompletions(doc, offset, base)
	} else {
		items = s.scopeCompletions(doc, offset)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })

	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Result:  CompletionList{Items: items},
	}
}

// scopeCompletions offers the enclosing POU's variables, every POU
// name in the unit, and the statement keywords.
func (s *Server) scopeCompletions(doc *Document, offset int) []CompletionItem {
	var items []CompletionItem
	seen := make(map[string]bool)

	if pa := pouAt(doc, offset); pa != nil {
		for _, block := range pa.Pou.VarBlocks {
			kind := completionKindVariable
			if block.Constant {
				kind = completionKindConstant
			}
			for _, decl := range block.Decls {
				for _, name := range decl.Names {
					if seen[strings.ToUpper(name.Name)] {
						continue
					}
					seen[strings.ToUpper(name.Name)] = true

					detail := ""
					if sym := pa.Table.Lookup(name.Name); sym != nil {
						detail = typeName(sym.Type)
					}
					items = append(items, CompletionItem{
						Label:  name.Name,
						Kind:   kind,
						Detail: detail,
					})
				}
			}
		}
	}

	if doc.Unit != nil {
		for _, pou := range doc.Unit.Pous() {
			if seen[strings.ToUpper(pou.Name.Name)] {
				continue
			}
			seen[strings.ToUpper(pou.Name.Name)] = true

			kind := completionKindClass
			if pou.Kind == ast.PouFunction {
				kind = completionKindFunction
			}
			items = append(items, CompletionItem{
				Label:  pou.Name.Name,
				Kind:   kind,
				Detail: pou.Kind.String(),
			})
		}
	}

	for _, kw := range stKeywords {
		items = append(items, CompletionItem{Label: kw, Kind: completionKindKeyword})
	}
	return items
}

// memberCompletions offers the fields of the struct or function block
// variable named before the dot.
func (s *Server) memberCompletions(doc *Document, offset int, base string) []CompletionItem {
	sym := s.resolveSymbol(doc, offset, base)
	if sym == nil {
		return nil
	}

	var fields []types.Field
	switch t := sym.Type.(type) {
	case *types.Struct:
		fields = t.Fields
	case *types.FunctionBlock:
		fields = t.Fields
	default:
		return nil
	}

	items := make([]CompletionItem, 0, len(fields))
	for _, f := range fields {
		items = append(items, CompletionItem{
			Label:  f.Name,
			Kind:   completionKindField,
			Detail: typeName(f.Type),
		})
	}
	return items
}

// memberBase returns the identifier before a trailing "Name." or
// "Name.pre" at the byte offset, or "" when the cursor is not behind
// a dot.
func memberBase(content string, offset int) string {
	if offset > len(content) {
		offset = len(content)
	}

	i := offset
	for i > 0 && isIdentByte(content[i-1]) {
		i--
	}
	if i == 0 || content[i-1] != '.' {
		return ""
	}
	return wordAt(content, i-2)
}
