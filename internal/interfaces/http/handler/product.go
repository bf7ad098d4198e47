package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/eyedist/backend/internal/application"
	catalogapp "github.com/eyedist/backend/internal/application/catalog"
	"github.com/eyedist/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
// @Summary      Create product
// @Description  Attribute ids must reference a value of the matching kind
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product"
// @Success      201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetByID godoc
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Param        search    query string false "Model number or name"
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "asc or desc"
// @Param        active    query bool   false "Active"
// @Param        brand_id  query string false "Brand" format(uuid)
// @Param        shape_id  query string false "Shape" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.ListQuery)
}

// Search godoc
// @Summary      Search products
// @Description  Full-text search over model number, name, description and brand
// @Tags         products
// @Produce      json
// @Param        q         query string true  "Query"
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/search [get]
func (h *ProductHandler) Search(c *gin.Context) {
	var query catalogapp.ProductSearchQuery
	if !h.bindQuery(c, &query) {
		return
	}
	products, total, err := h.productService.Search(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, application.ListQuery{Page: query.Page, PageSize: query.PageSize})
}

// Update godoc
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path string true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateProductRequest true "Changes"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req catalogapp.UpdateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @Summary      Delete product
// @Tags         products
// @Param        id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadImage godoc
// @Summary      Upload product image
// @Description  Replaces the product image. JPEG, PNG and WebP are accepted.
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path     string true "Product ID" format(uuid)
// @Param        image formData file   true "Image"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/image [post]
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	file, size, ok := h.formFile(c, "image")
	if !ok {
		return
	}
	defer file.Close()

	product, err := h.productService.UploadImage(c.Request.Context(), id, file, size)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// formFile opens the named multipart file
func (h *BaseHandler) formFile(c *gin.Context, field string) (multipart.File, int64, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidFile, "Missing file field "+field)
		return nil, 0, false
	}
	file, err := header.Open()
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidFile, "Uploaded file cannot be read")
		return nil, 0, false
	}
	return file, header.Size, true
}
