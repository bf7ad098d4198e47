package models

import (
	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AttributeModel backs every product lookup kind in one table
type AttributeModel struct {
	AggregateModel
	Kind   catalog.AttributeKind `gorm:"type:varchar(30);not null;index"`
	Name   string                `gorm:"type:varchar(100);not null"`
	Code   string                `gorm:"type:varchar(30)"`
	Active bool                  `gorm:"not null;default:true"`
}

func (AttributeModel) TableName() string { return "attributes" }

func (m *AttributeModel) ToDomain() *catalog.Attribute {
	return &catalog.Attribute{
		BaseAggregateRoot: m.toAggregate(),
		Kind:              m.Kind,
		Name:              m.Name,
		Code:              m.Code,
		Active:            m.Active,
	}
}

func AttributeModelFromDomain(a *catalog.Attribute) *AttributeModel {
	m := &AttributeModel{Kind: a.Kind, Name: a.Name, Code: a.Code, Active: a.Active}
	m.fromAggregate(a.BaseAggregateRoot)
	return m
}

// ProductModel is the persistence model for catalog.Product
type ProductModel struct {
	AggregateModel
	ModelNumber     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Stock           int             `gorm:"not null;default:0"`
	BrandID         *uuid.UUID      `gorm:"type:char(36);index"`
	CollectionID    *uuid.UUID      `gorm:"type:char(36)"`
	GenderID        *uuid.UUID      `gorm:"type:char(36)"`
	ShapeID         *uuid.UUID      `gorm:"type:char(36)"`
	ColorCodeID     *uuid.UUID      `gorm:"type:char(36)"`
	LensColorID     *uuid.UUID      `gorm:"type:char(36)"`
	FrameColorID    *uuid.UUID      `gorm:"type:char(36)"`
	LensMaterialID  *uuid.UUID      `gorm:"type:char(36)"`
	FrameMaterialID *uuid.UUID      `gorm:"type:char(36)"`
	FrameTypeID     *uuid.UUID      `gorm:"type:char(36)"`
	ImagePath       string          `gorm:"type:varchar(255)"`
	Active          bool            `gorm:"not null;default:true"`
}

func (ProductModel) TableName() string { return "products" }

func (m *ProductModel) attributeSlots() map[catalog.AttributeKind]**uuid.UUID {
	return map[catalog.AttributeKind]**uuid.UUID{
		catalog.KindBrand:         &m.BrandID,
		catalog.KindCollection:    &m.CollectionID,
		catalog.KindGender:        &m.GenderID,
		catalog.KindShape:         &m.ShapeID,
		catalog.KindColorCode:     &m.ColorCodeID,
		catalog.KindLensColor:     &m.LensColorID,
		catalog.KindFrameColor:    &m.FrameColorID,
		catalog.KindLensMaterial:  &m.LensMaterialID,
		catalog.KindFrameMaterial: &m.FrameMaterialID,
		catalog.KindFrameType:     &m.FrameTypeID,
	}
}

func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.toAggregate(),
		ModelNumber:       m.ModelNumber,
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		Stock:             m.Stock,
		Attributes:        make(map[catalog.AttributeKind]uuid.UUID),
		ImagePath:         m.ImagePath,
		Active:            m.Active,
	}
	for kind, slot := range m.attributeSlots() {
		if *slot != nil {
			p.Attributes[kind] = **slot
		}
	}
	return p
}

func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		ModelNumber: p.ModelNumber,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImagePath:   p.ImagePath,
		Active:      p.Active,
	}
	m.fromAggregate(p.BaseAggregateRoot)
	for kind, slot := range m.attributeSlots() {
		if id, ok := p.Attributes[kind]; ok {
			v := id
			*slot = &v
		}
	}
	return m
}
