package extract

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"porteo/internal/port"
)

// TextExtractor is the fallback port.DocumentExtractor for plain-text
// uploads (pasted email bodies, OCR output). Structured formats belong to
// the external extraction collaborator.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract implements port.DocumentExtractor for text content. Only the
// identifier fields are populated; fiscal fields require the structured
// extractor.
func (e *TextExtractor) Extract(ctx context.Context, content []byte, contentType string) (*port.ExtractedDocument, error) {
	if !isText(contentType) {
		return nil, fmt.Errorf("extract.TextExtractor: unsupported content type %q", contentType)
	}
	res := FromText(string(content))
	return &port.ExtractedDocument{
		ExtractedBL:        res.ExtractedBL,
		ExtractedContainer: res.ExtractedContainer,
	}, nil
}

func isText(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mt, "text/") || mt == "application/octet-stream"
}
