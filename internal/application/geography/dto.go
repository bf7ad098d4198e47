package geography

import (
	"time"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/google/uuid"
)

// CreateRegionRequest creates a country, state, city or zone. ParentID is
// required below country level.
type CreateRegionRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
	Name     string     `json:"name" binding:"required,min=1,max=100"`
	Code     string     `json:"code" binding:"max=10"`
}

// UpdateRegionRequest renames a region; nil fields are kept
type UpdateRegionRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
	Code *string `json:"code" binding:"omitempty,max=10"`
}

// RegionListFilter holds the query parameters of a level's list
type RegionListFilter struct {
	application.ListQuery
	ParentID string `form:"parent_id" binding:"omitempty,uuid"`
}

// RegionResponse represents a region in API responses
type RegionResponse struct {
	ID        uuid.UUID  `json:"id"`
	Level     string     `json:"level"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Name      string     `json:"name"`
	Code      string     `json:"code,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Version   int        `json:"version"`
}

func ToRegionResponse(r *geography.Region) RegionResponse {
	return RegionResponse{
		ID:        r.ID,
		Level:     string(r.Level),
		ParentID:  r.ParentID,
		Name:      r.Name,
		Code:      r.Code,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Version:   r.Version,
	}
}

func toRegionResponses(regions []*geography.Region) []RegionResponse {
	out := make([]RegionResponse, len(regions))
	for i, r := range regions {
		out[i] = ToRegionResponse(r)
	}
	return out
}
