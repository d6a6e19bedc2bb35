package node

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"docbridge/internal/domain"
)

// ResolveInput locates and decodes the file payload a record carries,
// honoring the node's source parameters. The content type is taken from the
// mimeType override first, then the attachment's own metadata, then sniffed
// from the decoded bytes.
func ResolveInput(rec domain.Record, p Params) (*domain.InputFile, error) {
	source := p.String("source", "binary")

	var (
		encoded  string
		mimeType string
		fileName string
	)
	switch source {
	case "binary":
		prop := p.String("binaryProperty", "data")
		entry, ok := rec.Binary[prop]
		if !ok || entry.Data == "" {
			return nil, fmt.Errorf("%w: binary property %q", domain.ErrMissingInput, prop)
		}
		encoded = entry.Data
		mimeType = entry.MimeType
		fileName = entry.FileName
	case "base64":
		field := p.String("base64Field", "data")
		value, ok := rec.JSON[field].(string)
		if !ok || value == "" {
			return nil, fmt.Errorf("%w: field %q", domain.ErrMissingInput, field)
		}
		encoded = value
	default:
		return nil, fmt.Errorf("%w: unknown input source %q", domain.ErrInvalidParameters, source)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding input payload: %w", err)
	}

	if override := p.String("mimeType", ""); override != "" {
		mimeType = override
	}
	if mimeType == "" {
		mimeType = sniffContentType(data)
	}

	return &domain.InputFile{
		Bytes:    data,
		MimeType: mimeType,
		FileName: fileName,
	}, nil
}

// sniffContentType detects the content type from magic bytes, checking at
// most the first 512 bytes.
func sniffContentType(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return http.DetectContentType(head)
}
