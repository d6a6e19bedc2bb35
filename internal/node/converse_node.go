package node

import (
	"context"

	"docbridge/internal/config"
	"docbridge/internal/domain"
	"docbridge/internal/port"
)

func init() {
	Register("converse", func(deps Deps) Node {
		return NewConverseNode(deps.Invoker, deps.Converse)
	})
}

// topP is fixed for every invocation; only maxTokens and temperature are
// caller-tunable.
const topP = 0.9

var converseParamsSchema = mustCompileSchema(map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"modelId":        map[string]any{"type": "string"},
		"instruction":    map[string]any{"type": "string"},
		"source":         map[string]any{"type": "string", "enum": []any{"binary", "base64"}},
		"binaryProperty": map[string]any{"type": "string"},
		"base64Field":    map[string]any{"type": "string"},
		"mimeType":       map[string]any{"type": "string"},
		"maxTokens":      map[string]any{"type": "integer", "minimum": 1},
		"temperature":    map[string]any{"type": "number", "minimum": 0, "maximum": 1},
	},
	"additionalProperties": false,
})

type converseNode struct {
	invoker port.ModelInvoker
	cfg     config.ConverseConfig
}

// NewConverseNode creates the model-invocation node. Each record's file is
// sent with the instruction as a single-turn message.
func NewConverseNode(invoker port.ModelInvoker, cfg config.ConverseConfig) Node {
	return &converseNode{invoker: invoker, cfg: cfg}
}

func (n *converseNode) Name() string {
	return "converse"
}

func (n *converseNode) Run(ctx context.Context, exec Execution) ([]domain.OutputRecord, error) {
	if err := validateParams(converseParamsSchema, exec.Params); err != nil {
		return nil, err
	}

	modelID := exec.Params.String("modelId", n.cfg.ModelID)
	if modelID == "" {
		return nil, domain.ErrModelMissing
	}
	instruction := exec.Params.String("instruction", "")
	if instruction == "" {
		return nil, domain.ErrInstructionMissing
	}
	maxTokens := int32(exec.Params.Int("maxTokens", n.cfg.MaxTokens))
	temperature := float32(exec.Params.Float("temperature", n.cfg.Temperature))

	return runBatch(ctx, n.Name(), exec, func(ctx context.Context, rec domain.Record) (domain.OutputRecord, []string, error) {
		file, err := ResolveInput(rec, exec.Params)
		if err != nil {
			return domain.OutputRecord{}, nil, err
		}
		result, err := n.invoker.Converse(ctx, port.ConverseInput{
			ModelID:     modelID,
			FileBytes:   file.Bytes,
			ContentType: file.MimeType,
			FileName:    file.FileName,
			Instruction: instruction,
			MaxTokens:   maxTokens,
			Temperature: temperature,
			TopP:        topP,
		})
		if err != nil {
			return domain.OutputRecord{}, nil, err
		}
		return domain.OutputRecord{JSON: map[string]any{
			"response":   result.Text,
			"stopReason": result.StopReason,
			"usage":      result.Usage,
		}}, nil, nil
	})
}
