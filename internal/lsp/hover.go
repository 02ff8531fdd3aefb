package lsp

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/plclens/plclens/internal/analysis"
	"github.com/plclens/plclens/internal/types"
)

// TextDocumentPositionParams is shared by hover, definition and completion.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// Hover represents a hover response.
type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func (s *Server) handleHover(msg *jsonrpcMessage) *jsonrpcMessage {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		log.Printf("Failed to parse hover params: %v", err)
		return nullResponse(msg)
	}

	s.mu.RLock()
	doc, ok := s.Documents[params.TextDocument.URI]
	s.mu.RUnlock()
	if !ok {
		return nullResponse(msg)
	}

	offset := offsetAt(doc.Content, params.Position)
	word := wordAt(doc.Content, offset)
	if word == "" {
		return nullResponse(msg)
	}

	sym := s.resolveSymbol(doc, offset, word)
	if sym == nil {
		return nullResponse(msg)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "```\n%s : %s\n```\n", sym.Name, typeName(sym.Type))
	fmt.Fprintf(&b, "%s", sym.Kind)

	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Result: Hover{
			Contents: MarkupContent{Kind: "markdown", Value: b.String()},
		},
	}
}

func typeName(t types.Type) string {
	if t == nil {
		return "UNKNOWN"
	}
	return t.String()
}

// resolveSymbol looks up a name in the symbol table of the POU that
// encloses the offset, falling back to every other POU's table so
// globals and cross-POU names still resolve.
func (s *Server) resolveSymbol(doc *Document, offset int, name string) *types.Symbol {
	if pa := pouAt(doc, offset); pa != nil {
		if sym := pa.Table.Lookup(name); sym != nil {
			return sym
		}
	}
	for _, pa := range doc.Pous {
		if sym := pa.Table.Lookup(name); sym != nil {
			return sym
		}
	}
	return nil
}

// pouAt returns the analysis of the POU whose span contains the offset.
func pouAt(doc *Document, offset int) *analysis.PouAnalysis {
	for _, pa := range doc.Pous {
		span := pa.Pou.Span()
		if offset >= span.Start && offset < span.End {
			return pa
		}
	}
	return nil
}

// offsetAt converts a 0-based line/character position to a byte
// offset, matching the span convention.
func offsetAt(content string, pos Position) int {
	line, col := 0, 0
	for i, r := range content {
		if line == pos.Line && col == pos.Character {
			return i
		}
		if r == '\n' {
			if line == pos.Line {
				return i
			}
			line++
			col = 0
		} else {
			col++
		}
	}
	return len(content)
}

// wordAt returns the identifier covering the byte offset, or "".
func wordAt(content string, offset int) string {
	if offset < 0 || offset >= len(content) {
		return ""
	}

	start := offset
	for start > 0 && isIdentByte(content[start-1]) {
		start--
	}
	end := offset
	for end < len(content) && isIdentByte(content[end]) {
		end++
	}
	if start == end {
		return ""
	}
	return content[start:end]
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func nullResponse(msg *jsonrpcMessage) *jsonrpcMessage {
	return &jsonrpcMessage{JSONRPC: "2.0", ID: msg.ID, Result: nil}
}
