package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"docbridge/internal/domain"
	"docbridge/internal/ocr"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *BatchMeta  `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchMeta holds batch execution metadata.
type BatchMeta struct {
	Records int `json:"records"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondRecords sends a 200 success response carrying an output batch.
func RespondRecords(c *gin.Context, records []domain.OutputRecord) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    ExecutionResult{Records: records},
		Meta:    &BatchMeta{Records: len(records)},
	})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error
// codes. Known kinds keep their own message, which carries the record index
// and vendor detail for aborted batches; anything unrecognized is masked.
func MapDomainError(err error) (status int, code, msg string) {
	var startErr *ocr.JobStartError
	var jobErr *ocr.JobIncompleteError

	switch {
	case errors.Is(err, domain.ErrUnknownNode):
		return http.StatusNotFound, "UNKNOWN_NODE", err.Error()
	case errors.Is(err, domain.ErrInvalidParameters):
		return http.StatusBadRequest, "INVALID_PARAMETERS", err.Error()
	case errors.Is(err, domain.ErrMissingInput):
		return http.StatusBadRequest, "MISSING_INPUT", err.Error()
	case errors.Is(err, domain.ErrUnsupportedInput):
		return http.StatusBadRequest, "UNSUPPORTED_INPUT", err.Error()
	case errors.Is(err, domain.ErrBucketMissing):
		return http.StatusBadRequest, "BUCKET_NOT_CONFIGURED", err.Error()
	case errors.Is(err, domain.ErrModelMissing):
		return http.StatusBadRequest, "MODEL_NOT_CONFIGURED", err.Error()
	case errors.Is(err, domain.ErrInstructionMissing):
		return http.StatusBadRequest, "INSTRUCTION_REQUIRED", err.Error()
	case errors.Is(err, domain.ErrEmptyModelReply):
		return http.StatusBadGateway, "EMPTY_MODEL_REPLY", err.Error()
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusBadGateway, "UPLOAD_FAILED", err.Error()
	case errors.As(err, &startErr):
		return http.StatusBadGateway, "JOB_START_FAILED", err.Error()
	case errors.As(err, &jobErr):
		if jobErr.TimedOut {
			return http.StatusGatewayTimeout, "JOB_TIMEOUT", err.Error()
		}
		return http.StatusBadGateway, "JOB_FAILED", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] %s: %v", requestID, code, err)
	}
	RespondError(c, status, code, msg)
}
