package handler

import (
	"docbridge/internal/domain"
	"docbridge/internal/node"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// ExecuteRequest represents a node execution request body.
type ExecuteRequest struct {
	Parameters     node.Params     `json:"parameters"`
	ContinueOnFail bool            `json:"continueOnFail" example:"false"`
	Records        []domain.Record `json:"records"`
}

// --- Response Types ---

// ExecutionResult carries the output batch of one node run.
type ExecutionResult struct {
	Records []domain.OutputRecord `json:"records"`
}

// NodesList lists the registered node names.
type NodesList struct {
	Nodes []string `json:"nodes" example:"converse,ocr"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string   `json:"status" example:"ok"`
	Nodes  []string `json:"nodes,omitempty" example:"converse,ocr"`
	Error  string   `json:"error,omitempty" example:"no nodes registered"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *BatchMeta  `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
