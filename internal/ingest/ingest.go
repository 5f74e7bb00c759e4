// Package ingest extracts plain text from uploaded resume documents so the
// extraction pipeline only ever sees text.
package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resumeforge/internal/errors"
)

// SupportedExtensions lists the document types ingestion accepts.
var SupportedExtensions = []string{".pdf", ".docx", ".txt", ".md"}

// ExtractFile reads path and returns its plain-text content. The document
// type is decided by file extension.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable, "cannot read document", err).
			WithContext("path", path)
	}
	return Extract(filepath.Ext(path), data)
}

// Extract returns the plain-text content of a document given its extension
// and raw bytes.
func Extract(ext string, data []byte) (string, error) {
	switch strings.ToLower(ext) {
	case ".txt", ".md":
		return string(data), nil
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFile, "unsupported document type", nil).
			WithContext("extension", ext)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeInvalidFormat, "cannot parse pdf", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		b.WriteString(text)
	}
	return b.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeInvalidFormat, "cannot parse docx", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
