package lsp

import (
	"encoding/json"
	"log"
)

// Location represents an LSP location.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

func (s *Server) handleDefinition(msg *jsonrpcMessage) *jsonrpcMessage {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		log.Printf("Failed to parse definition params: %v", err)
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
	if sym == nil || !sym.Span.IsValid() {
		return nullResponse(msg)
	}

	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Result: Location{
			URI:   doc.URI,
			Range: spanToRange(sym.Span),
		},
	}
}
