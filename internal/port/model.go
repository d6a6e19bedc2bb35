package port

import (
	"context"

	"docbridge/internal/domain"
)

// ConverseInput carries one single-turn model invocation: a file, an
// instruction, and the inference settings.
type ConverseInput struct {
	ModelID     string
	FileBytes   []byte
	ContentType string
	FileName    string
	Instruction string
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

// ConverseOutput contains the model's reply.
type ConverseOutput struct {
	Text       string
	StopReason string
	Usage      domain.TokenUsage
}

// ModelInvoker abstracts the hosted model inference service.
type ModelInvoker interface {
	Converse(ctx context.Context, input ConverseInput) (*ConverseOutput, error)
}
