package handler

import (
	"strconv"

	catalogapp "github.com/eyedist/backend/internal/application/catalog"
	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/gin-gonic/gin"
)

// AttributeHandler serves the product lookup tables (brands, shapes and
// the other attribute kinds)
type AttributeHandler struct {
	BaseHandler
	attributeService *catalogapp.AttributeService
}

// NewAttributeHandler creates a new AttributeHandler
func NewAttributeHandler(attributeService *catalogapp.AttributeService) *AttributeHandler {
	return &AttributeHandler{attributeService: attributeService}
}

func (h *AttributeHandler) kind(c *gin.Context) (catalog.AttributeKind, bool) {
	kind, err := catalog.ParseAttributeKind(c.Param("kind"))
	if err != nil {
		h.HandleError(c, err)
		return "", false
	}
	return kind, true
}

// activeOnly reads ?active=true; anything unparsable means all rows
func activeOnly(c *gin.Context) bool {
	v, err := strconv.ParseBool(c.DefaultQuery("active", "false"))
	return err == nil && v
}

// ListAll godoc
// @Summary      List all attributes
// @Description  Every lookup kind with its values, for product form dropdowns
// @Tags         attributes
// @Produce      json
// @Param        active query bool false "Only active values"
// @Success      200 {object} dto.Response{data=map[string][]catalogapp.AttributeResponse}
// @Security     BearerAuth
// @Router       /attributes [get]
func (h *AttributeHandler) ListAll(c *gin.Context) {
	groups, err := h.attributeService.ListAll(c.Request.Context(), activeOnly(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, groups)
}

// Create godoc
// @Summary      Create attribute
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        kind    path string true "Attribute kind" Enums(brand,collection,gender,shape,color_code,lens_color,frame_color,lens_material,frame_material,frame_type)
// @Param        request body catalogapp.CreateAttributeRequest true "Attribute"
// @Success      201 {object} dto.Response{data=catalogapp.AttributeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attributes/{kind} [post]
func (h *AttributeHandler) Create(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	var req catalogapp.CreateAttributeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	attr, err := h.attributeService.Create(c.Request.Context(), kind, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, attr)
}

// List godoc
// @Summary      List attributes of a kind
// @Tags         attributes
// @Produce      json
// @Param        kind   path  string true  "Attribute kind"
// @Param        active query bool   false "Only active values"
// @Success      200 {object} dto.Response{data=[]catalogapp.AttributeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attributes/{kind} [get]
func (h *AttributeHandler) List(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	attrs, err := h.attributeService.List(c.Request.Context(), kind, activeOnly(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, attrs)
}

// GetByID godoc
// @Summary      Get attribute
// @Tags         attributes
// @Produce      json
// @Param        kind path string true "Attribute kind"
// @Param        id   path string true "Attribute ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.AttributeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attributes/{kind}/{id} [get]
func (h *AttributeHandler) GetByID(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	attr, err := h.attributeService.GetByID(c.Request.Context(), kind, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, attr)
}

// Update godoc
// @Summary      Update attribute
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        kind    path string true "Attribute kind"
// @Param        id      path string true "Attribute ID" format(uuid)
// @Param        request body catalogapp.UpdateAttributeRequest true "Changes"
// @Success      200 {object} dto.Response{data=catalogapp.AttributeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attributes/{kind}/{id} [put]
func (h *AttributeHandler) Update(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req catalogapp.UpdateAttributeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	attr, err := h.attributeService.Update(c.Request.Context(), kind, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, attr)
}

// Delete godoc
// @Summary      Delete attribute
// @Description  Values still used by a product cannot be deleted; deactivate them instead
// @Tags         attributes
// @Param        kind path string true "Attribute kind"
// @Param        id   path string true "Attribute ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attributes/{kind}/{id} [delete]
func (h *AttributeHandler) Delete(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.attributeService.Delete(c.Request.Context(), kind, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
