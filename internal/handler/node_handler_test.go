package handler_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docbridge/internal/config"
	"docbridge/internal/domain"
	"docbridge/internal/handler"
	"docbridge/internal/node"
	"docbridge/internal/ocr"
	"docbridge/internal/port"
	"docbridge/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newNodeHandler() (*handler.NodeHandler, *mocks.MockEngine, *mocks.MockModelInvoker) {
	engine := new(mocks.MockEngine)
	invoker := new(mocks.MockModelInvoker)
	h := handler.NewNodeHandler(node.Deps{
		Engine:  engine,
		Invoker: invoker,
		OCR: config.OCRConfig{
			Bucket:           "default-bucket",
			KeyPrefix:        "ocr/",
			PollIntervalSecs: 1,
			TimeoutSecs:      30,
		},
		Converse: config.ConverseConfig{
			ModelID:     "anthropic.claude-3-5-sonnet-20240620-v1:0",
			MaxTokens:   1024,
			Temperature: 0.5,
		},
	})
	return h, engine, invoker
}

func imageRecord() domain.Record {
	return domain.Record{
		JSON: map[string]any{"id": 1},
		Binary: map[string]domain.BinaryData{
			"data": {
				Data:     base64.StdEncoding.EncodeToString([]byte("fake-image")),
				MimeType: "image/png",
				FileName: "scan.png",
			},
		},
	}
}

func performExecute(handle gin.HandlerFunc, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handle(c)
	return w
}

func marshalRequest(t *testing.T, req handler.ExecuteRequest) []byte {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return body
}

func dataRecords(t *testing.T, resp handler.APIResponse) []map[string]any {
	t.Helper()
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data is not an object")
	raw, ok := data["records"].([]any)
	require.True(t, ok, "data.records is not an array")

	records := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		rec, ok := r.(map[string]any)
		require.True(t, ok)
		fields, ok := rec["json"].(map[string]any)
		require.True(t, ok)
		records = append(records, fields)
	}
	return records
}

func TestNodeHandler_ExecuteOCR_Success(t *testing.T) {
	h, engine, _ := newNodeHandler()

	engine.On("Extract", mock.Anything, mock.AnythingOfType("domain.InputFile"), mock.AnythingOfType("ocr.ExtractOptions")).
		Return("Hello\nWorld", nil, nil).Once()

	body := marshalRequest(t, handler.ExecuteRequest{
		Records: []domain.Record{imageRecord()},
	})
	w := performExecute(h.ExecuteOCR, "/api/v1/nodes/ocr", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Records)

	records := dataRecords(t, resp)
	require.Len(t, records, 1)
	assert.Equal(t, "Hello\nWorld", records[0]["text"])
	engine.AssertExpectations(t)
}

func TestNodeHandler_ExecuteOCR_InvalidBody(t *testing.T) {
	h, engine, _ := newNodeHandler()

	w := performExecute(h.ExecuteOCR, "/api/v1/nodes/ocr", []byte("not json"))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_BODY", resp.Error.Code)
	engine.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
}

func TestNodeHandler_ExecuteOCR_InvalidParameters(t *testing.T) {
	h, engine, _ := newNodeHandler()

	body := marshalRequest(t, handler.ExecuteRequest{
		Parameters: node.Params{"bukcet": "typo"},
		Records:    []domain.Record{imageRecord()},
	})
	w := performExecute(h.ExecuteOCR, "/api/v1/nodes/ocr", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETERS", resp.Error.Code)
	engine.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
}

func TestNodeHandler_ExecuteOCR_StrictAbortTimeout(t *testing.T) {
	h, engine, _ := newNodeHandler()

	engine.On("Extract", mock.Anything, mock.AnythingOfType("domain.InputFile"), mock.AnythingOfType("ocr.ExtractOptions")).
		Return("", nil, &ocr.JobIncompleteError{
			JobID:    "job-9",
			Status:   port.JobStatusInProgress,
			TimedOut: true,
		}).Once()

	body := marshalRequest(t, handler.ExecuteRequest{
		Records: []domain.Record{imageRecord()},
	})
	w := performExecute(h.ExecuteOCR, "/api/v1/nodes/ocr", body)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "JOB_TIMEOUT", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "job-9")
	assert.Contains(t, resp.Error.Message, "record 0")
}

func TestNodeHandler_ExecuteOCR_TolerantFailure(t *testing.T) {
	h, engine, _ := newNodeHandler()

	engine.On("Extract", mock.Anything, mock.AnythingOfType("domain.InputFile"), mock.AnythingOfType("ocr.ExtractOptions")).
		Return("", nil, &ocr.JobStartError{Key: "ocr/x.pdf"}).Once()

	body := marshalRequest(t, handler.ExecuteRequest{
		ContinueOnFail: true,
		Records:        []domain.Record{imageRecord()},
	})
	w := performExecute(h.ExecuteOCR, "/api/v1/nodes/ocr", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	records := dataRecords(t, resp)
	require.Len(t, records, 1)
	assert.Contains(t, records[0]["error"], "ocr/x.pdf")
}

func TestNodeHandler_ExecuteConverse_Success(t *testing.T) {
	h, _, invoker := newNodeHandler()

	invoker.On("Converse", mock.Anything, mock.AnythingOfType("port.ConverseInput")).
		Return(&port.ConverseOutput{
			Text:       "A red circle on white background.",
			StopReason: "end_turn",
			Usage:      domain.TokenUsage{InputTokens: 12, OutputTokens: 8, TotalTokens: 20},
		}, nil).Once()

	body := marshalRequest(t, handler.ExecuteRequest{
		Parameters: node.Params{"instruction": "Describe this image."},
		Records:    []domain.Record{imageRecord()},
	})
	w := performExecute(h.ExecuteConverse, "/api/v1/nodes/converse", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	records := dataRecords(t, resp)
	require.Len(t, records, 1)
	assert.Equal(t, "A red circle on white background.", records[0]["response"])
	assert.Equal(t, "end_turn", records[0]["stopReason"])

	usage, ok := records[0]["usage"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(20), usage["totalTokens"])
	invoker.AssertExpectations(t)
}

func TestNodeHandler_ExecuteConverse_MissingInstruction(t *testing.T) {
	h, _, invoker := newNodeHandler()

	body := marshalRequest(t, handler.ExecuteRequest{
		Records: []domain.Record{imageRecord()},
	})
	w := performExecute(h.ExecuteConverse, "/api/v1/nodes/converse", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INSTRUCTION_REQUIRED", resp.Error.Code)
	invoker.AssertNotCalled(t, "Converse", mock.Anything, mock.Anything)
}

func TestNodeHandler_List(t *testing.T) {
	h, _, _ := newNodeHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/nodes", http.NoBody)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"ocr", "converse"}, data["nodes"])
}
