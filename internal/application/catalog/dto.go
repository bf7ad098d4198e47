package catalog

import (
	"time"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Attributes
// =============================================================================

// CreateAttributeRequest creates a lookup value of the kind in the URL
type CreateAttributeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Code string `json:"code" binding:"max=50"`
}

// UpdateAttributeRequest updates a lookup value; nil fields are kept
type UpdateAttributeRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=100"`
	Code   *string `json:"code" binding:"omitempty,max=50"`
	Active *bool   `json:"active"`
}

// AttributeResponse represents a lookup value in API responses
type AttributeResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Code      string    `json:"code,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

func ToAttributeResponse(a *catalog.Attribute) AttributeResponse {
	return AttributeResponse{
		ID:        a.ID,
		Kind:      string(a.Kind),
		Name:      a.Name,
		Code:      a.Code,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Version:   a.Version,
	}
}

// =============================================================================
// Products
// =============================================================================

// ProductAttributesInput assigns lookup values on create
type ProductAttributesInput struct {
	BrandID         *uuid.UUID `json:"brand_id"`
	CollectionID    *uuid.UUID `json:"collection_id"`
	GenderID        *uuid.UUID `json:"gender_id"`
	ShapeID         *uuid.UUID `json:"shape_id"`
	ColorCodeID     *uuid.UUID `json:"color_code_id"`
	LensColorID     *uuid.UUID `json:"lens_color_id"`
	FrameColorID    *uuid.UUID `json:"frame_color_id"`
	LensMaterialID  *uuid.UUID `json:"lens_material_id"`
	FrameMaterialID *uuid.UUID `json:"frame_material_id"`
	FrameTypeID     *uuid.UUID `json:"frame_type_id"`
}

func (in ProductAttributesInput) byKind() map[catalog.AttributeKind]*uuid.UUID {
	return map[catalog.AttributeKind]*uuid.UUID{
		catalog.KindBrand:         in.BrandID,
		catalog.KindCollection:    in.CollectionID,
		catalog.KindGender:        in.GenderID,
		catalog.KindShape:         in.ShapeID,
		catalog.KindColorCode:     in.ColorCodeID,
		catalog.KindLensColor:     in.LensColorID,
		catalog.KindFrameColor:    in.FrameColorID,
		catalog.KindLensMaterial:  in.LensMaterialID,
		catalog.KindFrameMaterial: in.FrameMaterialID,
		catalog.KindFrameType:     in.FrameTypeID,
	}
}

// ProductAttributesUpdate changes lookup values; absent keys are kept,
// null clears
type ProductAttributesUpdate struct {
	BrandID         application.OptionalID `json:"brand_id" swaggertype:"string" format:"uuid"`
	CollectionID    application.OptionalID `json:"collection_id" swaggertype:"string" format:"uuid"`
	GenderID        application.OptionalID `json:"gender_id" swaggertype:"string" format:"uuid"`
	ShapeID         application.OptionalID `json:"shape_id" swaggertype:"string" format:"uuid"`
	ColorCodeID     application.OptionalID `json:"color_code_id" swaggertype:"string" format:"uuid"`
	LensColorID     application.OptionalID `json:"lens_color_id" swaggertype:"string" format:"uuid"`
	FrameColorID    application.OptionalID `json:"frame_color_id" swaggertype:"string" format:"uuid"`
	LensMaterialID  application.OptionalID `json:"lens_material_id" swaggertype:"string" format:"uuid"`
	FrameMaterialID application.OptionalID `json:"frame_material_id" swaggertype:"string" format:"uuid"`
	FrameTypeID     application.OptionalID `json:"frame_type_id" swaggertype:"string" format:"uuid"`
}

func (in ProductAttributesUpdate) byKind() map[catalog.AttributeKind]application.OptionalID {
	return map[catalog.AttributeKind]application.OptionalID{
		catalog.KindBrand:         in.BrandID,
		catalog.KindCollection:    in.CollectionID,
		catalog.KindGender:        in.GenderID,
		catalog.KindShape:         in.ShapeID,
		catalog.KindColorCode:     in.ColorCodeID,
		catalog.KindLensColor:     in.LensColorID,
		catalog.KindFrameColor:    in.FrameColorID,
		catalog.KindLensMaterial:  in.LensMaterialID,
		catalog.KindFrameMaterial: in.FrameMaterialID,
		catalog.KindFrameType:     in.FrameTypeID,
	}
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	ModelNumber string          `json:"model_number" binding:"required,min=1,max=50"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" binding:"min=0"`
	ProductAttributesInput
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	ModelNumber *string          `json:"model_number" binding:"omitempty,min=1,max=50"`
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" binding:"omitempty,min=0"`
	Active      *bool            `json:"active"`
	ProductAttributesUpdate
}

// ProductListFilter holds the query parameters of the product list.
// Attribute filters use the <kind>_id names, e.g. brand_id.
type ProductListFilter struct {
	application.ListQuery
	Active          *bool  `form:"active"`
	BrandID         string `form:"brand_id" binding:"omitempty,uuid"`
	CollectionID    string `form:"collection_id" binding:"omitempty,uuid"`
	GenderID        string `form:"gender_id" binding:"omitempty,uuid"`
	ShapeID         string `form:"shape_id" binding:"omitempty,uuid"`
	ColorCodeID     string `form:"color_code_id" binding:"omitempty,uuid"`
	LensColorID     string `form:"lens_color_id" binding:"omitempty,uuid"`
	FrameColorID    string `form:"frame_color_id" binding:"omitempty,uuid"`
	LensMaterialID  string `form:"lens_material_id" binding:"omitempty,uuid"`
	FrameMaterialID string `form:"frame_material_id" binding:"omitempty,uuid"`
	FrameTypeID     string `form:"frame_type_id" binding:"omitempty,uuid"`
}

func (f ProductListFilter) attributeFilters() map[catalog.AttributeKind]string {
	return map[catalog.AttributeKind]string{
		catalog.KindBrand:         f.BrandID,
		catalog.KindCollection:    f.CollectionID,
		catalog.KindGender:        f.GenderID,
		catalog.KindShape:         f.ShapeID,
		catalog.KindColorCode:     f.ColorCodeID,
		catalog.KindLensColor:     f.LensColorID,
		catalog.KindFrameColor:    f.FrameColorID,
		catalog.KindLensMaterial:  f.LensMaterialID,
		catalog.KindFrameMaterial: f.FrameMaterialID,
		catalog.KindFrameType:     f.FrameTypeID,
	}
}

// ProductSearchQuery holds the parameters of the full-text search
type ProductSearchQuery struct {
	Q        string `form:"q" binding:"required,min=1,max=100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	ModelNumber     string          `json:"model_number"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	BrandID         *uuid.UUID      `json:"brand_id"`
	CollectionID    *uuid.UUID      `json:"collection_id"`
	GenderID        *uuid.UUID      `json:"gender_id"`
	ShapeID         *uuid.UUID      `json:"shape_id"`
	ColorCodeID     *uuid.UUID      `json:"color_code_id"`
	LensColorID     *uuid.UUID      `json:"lens_color_id"`
	FrameColorID    *uuid.UUID      `json:"frame_color_id"`
	LensMaterialID  *uuid.UUID      `json:"lens_material_id"`
	FrameMaterialID *uuid.UUID      `json:"frame_material_id"`
	FrameTypeID     *uuid.UUID      `json:"frame_type_id"`
	ImagePath       string          `json:"image_path,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		ModelNumber:     p.ModelNumber,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Stock:           p.Stock,
		BrandID:         p.Attribute(catalog.KindBrand),
		CollectionID:    p.Attribute(catalog.KindCollection),
		GenderID:        p.Attribute(catalog.KindGender),
		ShapeID:         p.Attribute(catalog.KindShape),
		ColorCodeID:     p.Attribute(catalog.KindColorCode),
		LensColorID:     p.Attribute(catalog.KindLensColor),
		FrameColorID:    p.Attribute(catalog.KindFrameColor),
		LensMaterialID:  p.Attribute(catalog.KindLensMaterial),
		FrameMaterialID: p.Attribute(catalog.KindFrameMaterial),
		FrameTypeID:     p.Attribute(catalog.KindFrameType),
		ImagePath:       p.ImagePath,
		Active:          p.Active,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Version:         p.Version,
	}
}
