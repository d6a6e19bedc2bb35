package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docbridge/internal/node"
)

// NodeHandler executes workflow node batches.
type NodeHandler struct {
	deps node.Deps
}

// NewNodeHandler creates a new NodeHandler.
func NewNodeHandler(deps node.Deps) *NodeHandler {
	return &NodeHandler{deps: deps}
}

// List handles GET /api/v1/nodes
// @Summary List available nodes
// @Description List the names of all registered workflow nodes
// @Tags nodes
// @Produce json
// @Success 200 {object} Response{data=NodesList} "Registered node names"
// @Security BearerAuth
// @Router /nodes [get]
func (h *NodeHandler) List(c *gin.Context) {
	RespondOK(c, NodesList{Nodes: node.Names()})
}

// ExecuteOCR handles POST /api/v1/nodes/ocr
// @Summary Run the OCR node
// @Description Extract plain text from image and PDF records. Images run through synchronous detection; PDFs are staged in object storage and run through an asynchronous detection job.
// @Tags nodes
// @Accept json
// @Produce json
// @Param request body ExecuteRequest true "Node parameters and input records"
// @Success 200 {object} Response{data=ExecutionResult,meta=BatchMeta} "One output record per input, plus trailing warnings in tolerant mode"
// @Failure 400 {object} ErrorResponseBody "Invalid parameters or unusable input"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 502 {object} ErrorResponseBody "Text detection job failed"
// @Failure 504 {object} ErrorResponseBody "Text detection job timed out"
// @Security BearerAuth
// @Router /nodes/ocr [post]
func (h *NodeHandler) ExecuteOCR(c *gin.Context) {
	h.execute(c, "ocr")
}

// ExecuteConverse handles POST /api/v1/nodes/converse
// @Summary Run the converse node
// @Description Send each record's file and an instruction to the configured hosted model and collect the reply text
// @Tags nodes
// @Accept json
// @Produce json
// @Param request body ExecuteRequest true "Node parameters and input records"
// @Success 200 {object} Response{data=ExecutionResult,meta=BatchMeta} "One output record per input"
// @Failure 400 {object} ErrorResponseBody "Invalid parameters, missing instruction, or unusable input"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 502 {object} ErrorResponseBody "Model invocation failed"
// @Security BearerAuth
// @Router /nodes/converse [post]
func (h *NodeHandler) ExecuteConverse(c *gin.Context) {
	h.execute(c, "converse")
}

func (h *NodeHandler) execute(c *gin.Context, name string) {
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be a valid execution payload")
		return
	}

	n, err := node.New(name, h.deps)
	if err != nil {
		HandleError(c, err)
		return
	}

	records, err := n.Run(c.Request.Context(), node.Execution{
		Params:         req.Parameters,
		Records:        req.Records,
		ContinueOnFail: req.ContinueOnFail,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondRecords(c, records)
}
