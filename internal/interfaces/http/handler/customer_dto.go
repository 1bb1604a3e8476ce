package handler

import (
	"time"

	partnerapp "github.com/bizdesk/backend/internal/application/partner"
)

// CreateCustomerRequest represents a request to create a new customer
// @Description Request body for creating a new customer
type CreateCustomerRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50" example:"CUST-001"`
	Name        string `json:"name" binding:"required,min=1,max=200" example:"Acme Corp"`
	ContactName string `json:"contact_name" binding:"max=100" example:"John Doe"`
	Phone       string `json:"phone" binding:"max=50" example:"13800138000"`
	Email       string `json:"email" binding:"omitempty,email,max=200" example:"contact@acme.com"`
	Address     string `json:"address" binding:"max=500" example:"123 Main St"`
	Notes       string `json:"notes" example:"Key account"`
}

// UpdateCustomerRequest represents a request to update a customer
// @Description Request body for updating a customer
type UpdateCustomerRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200" example:"Acme Corporation"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=100" example:"Jane Doe"`
	Phone       *string `json:"phone" binding:"omitempty,max=50" example:"13900139000"`
	Email       *string `json:"email" binding:"omitempty,email,max=200" example:"info@acme.com"`
	Address     *string `json:"address" binding:"omitempty,max=500" example:"456 Oak Ave"`
	Notes       *string `json:"notes" example:"Updated notes"`
}

// CustomerResponse represents a customer in API responses
// @Description Customer details returned by the API
type CustomerResponse struct {
	ID           string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Code         string    `json:"code" example:"CUST-001"`
	Name         string    `json:"name" example:"Acme Corp"`
	ContactName  string    `json:"contact_name" example:"John Doe"`
	Phone        string    `json:"phone" example:"13800138000"`
	Email        string    `json:"email" example:"contact@acme.com"`
	Address      string    `json:"address" example:"123 Main St"`
	Status       string    `json:"status" example:"ACTIVE" enums:"ACTIVE,INACTIVE"`
	RegisteredAt time.Time `json:"registered_at"`
	Notes        string    `json:"notes" example:"Key account"`
	OrderCount   int64     `json:"order_count" example:"12"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func customerResponseFrom(r *partnerapp.CustomerResult) CustomerResponse {
	return CustomerResponse{
		ID:           r.ID.String(),
		Code:         r.Code,
		Name:         r.Name,
		ContactName:  r.ContactName,
		Phone:        r.Phone,
		Email:        r.Email,
		Address:      r.Address,
		Status:       string(r.Status),
		RegisteredAt: r.RegisteredAt,
		Notes:        r.Notes,
		OrderCount:   r.OrderCount,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func customerResponsesFrom(results []partnerapp.CustomerResult) []CustomerResponse {
	responses := make([]CustomerResponse, len(results))
	for i := range results {
		responses[i] = customerResponseFrom(&results[i])
	}
	return responses
}
