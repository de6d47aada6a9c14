// Package handler contains HTTP handlers for the API.
// Handlers are responsible for:
// - Parsing and validating HTTP requests
// - Calling use case methods
// - Converting results to HTTP responses
package handler

import (
	"github.com/gin-gonic/gin"

	"pgbridge/src/app/http/dto"
	"pgbridge/src/app/http/response"
	"pgbridge/src/app/middleware"
	"pgbridge/src/core/usecase"
)

// QueryHandler handles the SQL pass-through endpoints.
type QueryHandler struct {
	queryService *usecase.QueryService
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(queryService *usecase.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

// Query runs one statement and returns its rows.
// POST /v1/query
func (h *QueryHandler) Query(c *gin.Context) {
	var req dto.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	rows, err := h.queryService.Run(c.Request.Context(), middleware.GetRequestID(c), req.Statement, req.Args)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	response.OK(c, dto.QueryResponse{Rows: rows, RowCount: len(rows)})
}

// Insert runs one insert and returns the generated identifier.
// POST /v1/insert
func (h *QueryHandler) Insert(c *gin.Context) {
	var req dto.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	id, err := h.queryService.RunInsert(c.Request.Context(), middleware.GetRequestID(c), req.Statement, req.Args)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	response.Created(c, dto.InsertResponse{ID: id})
}

// Batch runs several statements in one transaction.
// POST /v1/batch
func (h *QueryHandler) Batch(c *gin.Context) {
	var req dto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	results, err := h.queryService.RunBatch(c.Request.Context(), middleware.GetRequestID(c), req.ToDomain())
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	out := dto.BatchResponse{Results: make([]dto.QueryResponse, 0, len(results))}
	for _, res := range results {
		out.Results = append(out.Results, dto.QueryResponse{Rows: res.Rows, RowCount: len(res.Rows)})
	}
	response.OK(c, out)
}
