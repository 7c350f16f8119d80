package session

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
)

// AssignCatalogRequest carries the session signals for catalog
// resolution
type AssignCatalogRequest struct {
	Country  string   `json:"country" binding:"omitempty,len=2"`
	UserType string   `json:"user_type" binding:"required,min=1,max=50"`
	Roles    []string `json:"roles" binding:"omitempty,dive,min=1,max=50"`
	Tier     string   `json:"tier" binding:"omitempty,max=50"`
}

// AssignmentResponse represents a catalog assignment in API responses
type AssignmentResponse struct {
	CatalogID        uuid.UUID `json:"catalog_id"`
	CatalogCode      string    `json:"catalog_code"`
	LocaleCode       string    `json:"locale_code"`
	RegionCode       string    `json:"region_code"`
	CurrencyCode     string    `json:"currency_code"`
	AssignmentMethod string    `json:"assignment_method"`
}

// SessionContextResponse is the combined bootstrap payload for session
// initialization
type SessionContextResponse struct {
	LocaleCode      string             `json:"locale_code"`
	DetectedCountry string             `json:"detected_country,omitempty"`
	Assignment      AssignmentResponse `json:"assignment"`
}

// ToAssignmentResponse converts a domain assignment to a response DTO
func ToAssignmentResponse(a *catalog.CatalogAssignment) AssignmentResponse {
	return AssignmentResponse{
		CatalogID:        a.CatalogID,
		CatalogCode:      a.CatalogCode,
		LocaleCode:       a.LocaleCode,
		RegionCode:       a.RegionCode,
		CurrencyCode:     a.CurrencyCode,
		AssignmentMethod: string(a.AssignmentMethod),
	}
}
