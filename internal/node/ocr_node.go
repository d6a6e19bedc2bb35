package node

import (
	"context"
	"time"

	"docbridge/internal/config"
	"docbridge/internal/domain"
	"docbridge/internal/ocr"
)

func init() {
	Register("ocr", func(deps Deps) Node {
		return NewOCRNode(deps.Engine, deps.OCR)
	})
}

var ocrParamsSchema = mustCompileSchema(map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"source":         map[string]any{"type": "string", "enum": []any{"binary", "base64"}},
		"binaryProperty": map[string]any{"type": "string"},
		"base64Field":    map[string]any{"type": "string"},
		"mimeType":       map[string]any{"type": "string"},
		"bucket":         map[string]any{"type": "string"},
		"keyPrefix":      map[string]any{"type": "string"},
		"timeoutSeconds": map[string]any{"type": "integer", "minimum": 1},
	},
	"additionalProperties": false,
})

type ocrNode struct {
	engine ocr.Engine
	cfg    config.OCRConfig
}

// NewOCRNode creates the text-extraction node. Images run through one
// synchronous detection call; PDFs run through an asynchronous job against
// the working bucket.
func NewOCRNode(engine ocr.Engine, cfg config.OCRConfig) Node {
	return &ocrNode{engine: engine, cfg: cfg}
}

func (n *ocrNode) Name() string {
	return "ocr"
}

func (n *ocrNode) Run(ctx context.Context, exec Execution) ([]domain.OutputRecord, error) {
	if err := validateParams(ocrParamsSchema, exec.Params); err != nil {
		return nil, err
	}

	opts := ocr.ExtractOptions{
		Bucket:       exec.Params.String("bucket", n.cfg.Bucket),
		KeyPrefix:    exec.Params.String("keyPrefix", n.cfg.KeyPrefix),
		PollInterval: time.Duration(n.cfg.PollIntervalSecs) * time.Second,
		Timeout:      time.Duration(exec.Params.Int("timeoutSeconds", n.cfg.TimeoutSecs)) * time.Second,
	}

	return runBatch(ctx, n.Name(), exec, func(ctx context.Context, rec domain.Record) (domain.OutputRecord, []string, error) {
		file, err := ResolveInput(rec, exec.Params)
		if err != nil {
			return domain.OutputRecord{}, nil, err
		}
		text, warnings, err := n.engine.Extract(ctx, *file, opts)
		if err != nil {
			return domain.OutputRecord{}, warnings, err
		}
		return domain.OutputRecord{JSON: map[string]any{"text": text}}, warnings, nil
	})
}
