package catalog

import (
	"strings"

	"github.com/eyedist/backend/internal/domain/shared"
)

// AttributeKind names one of the product lookup tables
type AttributeKind string

const (
	KindBrand         AttributeKind = "brand"
	KindCollection    AttributeKind = "collection"
	KindGender        AttributeKind = "gender"
	KindShape         AttributeKind = "shape"
	KindColorCode     AttributeKind = "color_code"
	KindLensColor     AttributeKind = "lens_color"
	KindFrameColor    AttributeKind = "frame_color"
	KindLensMaterial  AttributeKind = "lens_material"
	KindFrameMaterial AttributeKind = "frame_material"
	KindFrameType     AttributeKind = "frame_type"
)

// AttributeKinds lists every lookup kind in display order
var AttributeKinds = []AttributeKind{
	KindBrand, KindCollection, KindGender, KindShape, KindColorCode,
	KindLensColor, KindFrameColor, KindLensMaterial, KindFrameMaterial, KindFrameType,
}

// ParseAttributeKind accepts "frame-type", "Frame_Type" and "frame_type"
func ParseAttributeKind(s string) (AttributeKind, error) {
	k := AttributeKind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !k.IsValid() {
		return "", shared.NewDomainError("INVALID_ATTRIBUTE_KIND", "Unknown attribute kind: "+s)
	}
	return k, nil
}

func (k AttributeKind) IsValid() bool {
	for _, kind := range AttributeKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Field is the product column that references this kind
func (k AttributeKind) Field() string {
	return string(k) + "_id"
}

// Attribute is a single lookup value such as a brand or a frame material
type Attribute struct {
	shared.BaseAggregateRoot
	Kind   AttributeKind
	Name   string
	Code   string
	Active bool
}

// NewAttribute creates an active lookup value
func NewAttribute(kind AttributeKind, name, code string) (*Attribute, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTE_KIND", "Unknown attribute kind")
	}
	a := &Attribute{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Active:            true,
	}
	if err := a.Update(name, code); err != nil {
		return nil, err
	}
	return a, nil
}

// Update sets name and code; code is upper-cased
func (a *Attribute) Update(name, code string) error {
	name, err := shared.RequireText("INVALID_NAME", "Name", name, 100)
	if err != nil {
		return err
	}
	code, err = shared.OptionalText("INVALID_CODE", "Code", strings.ToUpper(code), 50)
	if err != nil {
		return err
	}
	a.Name = name
	a.Code = code
	a.Touch()
	return nil
}

func (a *Attribute) SetActive(active bool) {
	a.Active = active
	a.Touch()
}
