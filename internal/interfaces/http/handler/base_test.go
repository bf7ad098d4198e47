package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/interfaces/http/dto"
	"github.com/eyedist/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// asUser simulates the JWT middleware for handler tests
func asUser(userID uuid.UUID, role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID)
		c.Set(middleware.JWTRoleKey, role)
		c.Next()
	}
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// decodeData unmarshals the data field of the envelope into out
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func listQuery(page, pageSize int) application.ListQuery {
	return application.ListQuery{Page: page, PageSize: pageSize}
}

func TestGetRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, getRequestID(c))

	c.Request.Header.Set(middleware.RequestIDKey, "header-id")
	assert.Equal(t, "header-id", getRequestID(c))

	c.Set(middleware.RequestIDKey, "ctx-id")
	assert.Equal(t, "ctx-id", getRequestID(c))
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"wrapped not found", fmt.Errorf("load party: %w", shared.ErrNotFound), http.StatusNotFound, dto.ErrCodeNotFound},
		{"forbidden", shared.NewDomainError("FORBIDDEN", "nope"), http.StatusForbidden, dto.ErrCodeForbidden},
		{"invalid status", shared.NewDomainError("INVALID_EXPENSE_STATUS", "bad"), http.StatusBadRequest, "ERR_INVALID_EXPENSE_STATUS"},
		{"business rule", shared.NewDomainError("LAST_ADMIN", "keep one"), http.StatusUnprocessableEntity, dto.ErrCodeLastAdmin},
		{"file too large", shared.NewDomainError("FILE_TOO_LARGE", "big"), http.StatusRequestEntityTooLarge, dto.ErrCodeTooLarge},
		{"plain error", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			h := &BaseHandler{}
			engine.GET("/", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := doJSON(t, engine, http.MethodGet, "/", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestBaseHandlerHandleErrorReference(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
	}{
		{"named column", &shared.ReferenceError{Field: "user_id"}, "user_id"},
		{"wrapped", fmt.Errorf("create party: %w", &shared.ReferenceError{Field: "state_id"}), "state_id"},
		{"unnamed column", &shared.ReferenceError{Cause: errors.New("FOREIGN KEY constraint failed")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			h := &BaseHandler{}
			engine.GET("/", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := doJSON(t, engine, http.MethodGet, "/", nil)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, dto.ErrCodeInvalidReference, resp.Error.Code)
			assert.NotContains(t, w.Body.String(), "FOREIGN KEY")
			if tt.wantField == "" {
				assert.Empty(t, resp.Error.Details)
				return
			}
			require.Len(t, resp.Error.Details, 1)
			assert.Equal(t, tt.wantField, resp.Error.Details[0].Field)
		})
	}
}

func TestBaseHandlerHandleErrorHidesInternalMessage(t *testing.T) {
	engine := gin.New()
	h := &BaseHandler{}
	engine.GET("/", func(c *gin.Context) { h.HandleError(c, errors.New("pq: password authentication failed")) })

	w := doJSON(t, engine, http.MethodGet, "/", nil)

	assert.NotContains(t, w.Body.String(), "password authentication")
}

type bindTarget struct {
	Name  string `json:"name" binding:"required,max=5"`
	Count int    `json:"count" binding:"min=0"`
}

type optionalTarget struct {
	Note string `json:"note" binding:"max=10"`
}

func TestBaseHandlerBindJSON(t *testing.T) {
	h := &BaseHandler{}
	engine := gin.New()
	engine.POST("/required", func(c *gin.Context) {
		var req bindTarget
		if h.bindJSON(c, &req) {
			h.Success(c, req)
		}
	})
	engine.POST("/optional", func(c *gin.Context) {
		var req optionalTarget
		if h.bindJSON(c, &req) {
			h.Success(c, req)
		}
	})

	t.Run("valid body", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/required", `{"name":"abc","count":2}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/required", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, decodeResponse(t, w).Error.Code)
	})

	t.Run("wrong type", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/required", `{"name":"abc","count":"two"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, decodeResponse(t, w).Error.Code)
	})

	t.Run("validation details use json names", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/required", `{"name":"toolongname","count":-1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		fields := make([]string, 0, len(resp.Error.Details))
		for _, d := range resp.Error.Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"name", "count"}, fields)
	})

	t.Run("empty body with required field", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/required", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
	})

	t.Run("empty body without required fields", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/optional", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestBaseHandlerPathID(t *testing.T) {
	h := &BaseHandler{}
	engine := gin.New()
	engine.GET("/items/:id", func(c *gin.Context) {
		if id, ok := h.pathID(c); ok {
			h.Success(c, id)
		}
	})

	w := doJSON(t, engine, http.MethodGet, "/items/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, bad := range []string{"not-a-uuid", uuid.Nil.String()} {
		w = doJSON(t, engine, http.MethodGet, "/items/"+bad, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
		assert.Equal(t, dto.ErrCodeInvalidID, decodeResponse(t, w).Error.Code)
	}
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	engine := gin.New()
	engine.GET("/", func(c *gin.Context) {
		var q struct {
			Page     int `form:"page"`
			PageSize int `form:"page_size"`
		}
		_ = c.ShouldBindQuery(&q)
		h.SuccessWithMeta(c, []int{1, 2}, 45, listQuery(q.Page, q.PageSize))
	})

	w := doJSON(t, engine, http.MethodGet, "/?page=2&page_size=20", nil)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 20, resp.Meta.PageSize)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestActorFromContext(t *testing.T) {
	userID := uuid.New()
	engine := gin.New()
	engine.GET("/", asUser(userID, identity.RoleSalesman), func(c *gin.Context) {
		a := actor(c)
		assert.Equal(t, userID, a.UserID)
		assert.Equal(t, identity.RoleSalesman, a.Role)
		assert.False(t, a.SeesAll())
		c.Status(http.StatusNoContent)
	})

	w := doJSON(t, engine, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
