package node_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docbridge/internal/config"
	"docbridge/internal/domain"
	"docbridge/internal/node"
	"docbridge/internal/port"
	"docbridge/mocks"
)

func testConverseConfig() config.ConverseConfig {
	return config.ConverseConfig{
		ModelID:     "anthropic.claude-3-5-sonnet-20241022-v2:0",
		MaxTokens:   1024,
		Temperature: 0.5,
	}
}

func converseOutput() *port.ConverseOutput {
	return &port.ConverseOutput{
		Text:       "A red circle",
		StopReason: "end_turn",
		Usage:      domain.TokenUsage{InputTokens: 12, OutputTokens: 8, TotalTokens: 20},
	}
}

func TestConverseNode_Run_Success(t *testing.T) {
	invoker := new(mocks.MockModelInvoker)
	n := node.NewConverseNode(invoker, testConverseConfig())

	var captured port.ConverseInput
	invoker.On("Converse", mock.Anything, mock.AnythingOfType("port.ConverseInput")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(port.ConverseInput)
		}).
		Return(converseOutput(), nil).Once()

	out, err := n.Run(context.Background(), node.Execution{
		Params:  node.Params{"instruction": "describe this image"},
		Records: []domain.Record{binaryRecord("data", pngBytes(), "image/png")},
	})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "A red circle", out[0].JSON["response"])
	assert.Equal(t, "end_turn", out[0].JSON["stopReason"])
	assert.Equal(t, domain.TokenUsage{InputTokens: 12, OutputTokens: 8, TotalTokens: 20}, out[0].JSON["usage"])

	assert.Equal(t, "anthropic.claude-3-5-sonnet-20241022-v2:0", captured.ModelID)
	assert.Equal(t, "describe this image", captured.Instruction)
	assert.Equal(t, "image/png", captured.ContentType)
	assert.Equal(t, int32(1024), captured.MaxTokens)
	assert.InDelta(t, 0.5, float64(captured.Temperature), 1e-6)
	assert.InDelta(t, 0.9, float64(captured.TopP), 1e-6)
	invoker.AssertExpectations(t)
}

func TestConverseNode_Run_ParameterOverrides(t *testing.T) {
	invoker := new(mocks.MockModelInvoker)
	n := node.NewConverseNode(invoker, testConverseConfig())

	var captured port.ConverseInput
	invoker.On("Converse", mock.Anything, mock.AnythingOfType("port.ConverseInput")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(port.ConverseInput)
		}).
		Return(converseOutput(), nil).Once()

	// Numeric parameters arrive as float64 when decoded from JSON.
	_, err := n.Run(context.Background(), node.Execution{
		Params: node.Params{
			"instruction": "summarize",
			"modelId":     "amazon.nova-pro-v1:0",
			"maxTokens":   float64(2048),
			"temperature": float64(0.9),
		},
		Records: []domain.Record{binaryRecord("data", []byte("%PDF-1.4 doc"), "application/pdf")},
	})

	require.NoError(t, err)
	assert.Equal(t, "amazon.nova-pro-v1:0", captured.ModelID)
	assert.Equal(t, int32(2048), captured.MaxTokens)
	assert.InDelta(t, 0.9, float64(captured.Temperature), 1e-6)
	assert.Equal(t, "application/pdf", captured.ContentType)
}

func TestConverseNode_Run_MissingModel(t *testing.T) {
	invoker := new(mocks.MockModelInvoker)
	n := node.NewConverseNode(invoker, config.ConverseConfig{MaxTokens: 1024, Temperature: 0.5})

	_, err := n.Run(context.Background(), node.Execution{
		Params:  node.Params{"instruction": "describe"},
		Records: []domain.Record{binaryRecord("data", pngBytes(), "image/png")},
	})

	assert.ErrorIs(t, err, domain.ErrModelMissing)
	invoker.AssertNotCalled(t, "Converse", mock.Anything, mock.Anything)
}

func TestConverseNode_Run_MissingInstruction(t *testing.T) {
	invoker := new(mocks.MockModelInvoker)
	n := node.NewConverseNode(invoker, testConverseConfig())

	_, err := n.Run(context.Background(), node.Execution{
		Params:  node.Params{},
		Records: []domain.Record{binaryRecord("data", pngBytes(), "image/png")},
	})

	assert.ErrorIs(t, err, domain.ErrInstructionMissing)
	invoker.AssertNotCalled(t, "Converse", mock.Anything, mock.Anything)
}

func TestConverseNode_Run_InvalidParameters(t *testing.T) {
	invoker := new(mocks.MockModelInvoker)
	n := node.NewConverseNode(invoker, testConverseConfig())

	_, err := n.Run(context.Background(), node.Execution{
		Params:  node.Params{"instruction": "describe", "temperature": 3},
		Records: []domain.Record{binaryRecord("data", pngBytes(), "image/png")},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidParameters)
	invoker.AssertNotCalled(t, "Converse", mock.Anything, mock.Anything)
}

func TestConverseNode_Run_TolerantBatch(t *testing.T) {
	invoker := new(mocks.MockModelInvoker)
	n := node.NewConverseNode(invoker, testConverseConfig())

	invoker.On("Converse", mock.Anything, mock.AnythingOfType("port.ConverseInput")).
		Return(converseOutput(), nil).Once()

	records := []domain.Record{
		{JSON: map[string]any{}},
		binaryRecord("data", pngBytes(), "image/png"),
	}
	out, err := n.Run(context.Background(), node.Execution{
		Params:         node.Params{"instruction": "describe"},
		Records:        records,
		ContinueOnFail: true,
	})

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Contains(t, out[0].JSON["error"], "record has no input payload")
	assert.Equal(t, "A red circle", out[1].JSON["response"])
	invoker.AssertExpectations(t)
}

func TestConverseNode_Run_StrictAbort(t *testing.T) {
	invoker := new(mocks.MockModelInvoker)
	n := node.NewConverseNode(invoker, testConverseConfig())

	invoker.On("Converse", mock.Anything, mock.AnythingOfType("port.ConverseInput")).
		Return(nil, errors.New("model unavailable")).Once()

	records := []domain.Record{
		binaryRecord("data", pngBytes(), "image/png"),
		binaryRecord("data", pngBytes(), "image/png"),
	}
	out, err := n.Run(context.Background(), node.Execution{
		Params:  node.Params{"instruction": "describe"},
		Records: records,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
	assert.Empty(t, out)
	invoker.AssertNumberOfCalls(t, "Converse", 1)
}
