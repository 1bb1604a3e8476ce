package handler

import (
	"time"

	partnerapp "github.com/bizdesk/backend/internal/application/partner"
)

// CreateSupplierRequest represents a request to create a new supplier
// @Description Request body for creating a new supplier
type CreateSupplierRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50" example:"SUP-001"`
	Name        string `json:"name" binding:"required,min=1,max=200" example:"Globex Ltd"`
	ContactName string `json:"contact_name" binding:"max=100" example:"Sam Smith"`
	Phone       string `json:"phone" binding:"max=50" example:"13700137000"`
	Email       string `json:"email" binding:"omitempty,email,max=200" example:"sales@globex.com"`
	Address     string `json:"address" binding:"max=500" example:"789 Pine Rd"`
	Notes       string `json:"notes"`
}

// UpdateSupplierRequest represents a request to update a supplier
// @Description Request body for updating a supplier
type UpdateSupplierRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	Notes       *string `json:"notes"`
}

// SupplierResponse represents a supplier in API responses
// @Description Supplier details returned by the API
type SupplierResponse struct {
	ID          string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Code        string    `json:"code" example:"SUP-001"`
	Name        string    `json:"name" example:"Globex Ltd"`
	ContactName string    `json:"contact_name" example:"Sam Smith"`
	Phone       string    `json:"phone" example:"13700137000"`
	Email       string    `json:"email" example:"sales@globex.com"`
	Address     string    `json:"address" example:"789 Pine Rd"`
	Status      string    `json:"status" example:"ACTIVE" enums:"ACTIVE,INACTIVE"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func supplierResponseFrom(r *partnerapp.SupplierResult) SupplierResponse {
	return SupplierResponse{
		ID:          r.ID.String(),
		Code:        r.Code,
		Name:        r.Name,
		ContactName: r.ContactName,
		Phone:       r.Phone,
		Email:       r.Email,
		Address:     r.Address,
		Status:      string(r.Status),
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func supplierResponsesFrom(results []partnerapp.SupplierResult) []SupplierResponse {
	responses := make([]SupplierResponse, len(results))
	for i := range results {
		responses[i] = supplierResponseFrom(&results[i])
	}
	return responses
}
