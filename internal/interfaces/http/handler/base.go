package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/eyedist/backend/internal/interfaces/http/dto"
	"github.com/eyedist/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDKey)
}

// actor returns the authenticated caller
func actor(c *gin.Context) application.Actor {
	return application.NewActor(middleware.GetJWTUserID(c), middleware.GetJWTRole(c))
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, q application.ListQuery) {
	f := q.Filter()
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, f.Page, f.PageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		getRequestID(c),
		details,
	))
}

// HandleError converts service errors to HTTP responses. Errors that carry
// no domain code are logged and reported as internal errors.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if domainErr, ok := shared.AsDomainError(err); ok {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}
	if refErr, ok := shared.AsReferenceError(err); ok {
		h.referenceError(c, refErr)
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// referenceError answers a foreign key the write could not recover from
func (h *BaseHandler) referenceError(c *gin.Context, refErr *shared.ReferenceError) {
	resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidReference,
		"A referenced record does not exist", getRequestID(c))
	if refErr.Field != "" {
		resp.Error.Details = []dto.ValidationDetail{{
			Field:   refErr.Field,
			Message: "references a record that does not exist",
		}}
	}
	c.JSON(http.StatusUnprocessableEntity, resp)
}

// bindJSON decodes the body into req and writes the error response when it
// fails. An empty body is treated as an empty object.
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if errors.Is(err, io.EOF) {
		if err = binding.Validator.ValidateStruct(req); err == nil {
			return true
		}
	}
	h.bindError(c, err)
	return false
}

// bindQuery decodes query parameters into req
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		h.bindError(c, err)
		return false
	}
	return true
}

func (h *BaseHandler) bindError(c *gin.Context, err error) {
	if details := middleware.ValidationDetails(err); len(details) > 0 {
		h.ValidationError(c, details)
		return
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
		return
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, err.Error())
}

// pathID parses the :id path parameter
func (h *BaseHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	return h.uuidParam(c, "id")
}

func (h *BaseHandler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil || id == uuid.Nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidID, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
