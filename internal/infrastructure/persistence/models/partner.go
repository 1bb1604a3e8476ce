package models

import (
	"time"

	"github.com/bizdesk/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer aggregate root.
type CustomerModel struct {
	AggregateModel
	Code         string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string                 `gorm:"type:varchar(200);not null"`
	ContactName  string                 `gorm:"type:varchar(100)"`
	Phone        string                 `gorm:"type:varchar(50);index"`
	Email        string                 `gorm:"type:varchar(200);index"`
	Address      string                 `gorm:"type:text"`
	Status       partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	RegisteredAt time.Time              `gorm:"not null"`
	Notes        string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	c := &partner.Customer{
		Code:         m.Code,
		Name:         m.Name,
		ContactName:  m.ContactName,
		Phone:        m.Phone,
		Email:        m.Email,
		Address:      m.Address,
		Status:       m.Status,
		RegisteredAt: m.RegisteredAt,
		Notes:        m.Notes,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.ContactName = c.ContactName
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.Status = c.Status
	m.RegisteredAt = c.RegisteredAt
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// SupplierModel is the persistence model for the Supplier aggregate root.
type SupplierModel struct {
	AggregateModel
	Code        string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string                 `gorm:"type:varchar(200);not null"`
	ContactName string                 `gorm:"type:varchar(100)"`
	Phone       string                 `gorm:"type:varchar(50)"`
	Email       string                 `gorm:"type:varchar(200)"`
	Address     string                 `gorm:"type:text"`
	Status      partner.SupplierStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes       string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() *partner.Supplier {
	s := &partner.Supplier{
		Code:        m.Code,
		Name:        m.Name,
		ContactName: m.ContactName,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		Status:      m.Status,
		Notes:       m.Notes,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)
	return s
}

// FromDomain populates the persistence model from a domain Supplier entity.
func (m *SupplierModel) FromDomain(s *partner.Supplier) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Code = s.Code
	m.Name = s.Name
	m.ContactName = s.ContactName
	m.Phone = s.Phone
	m.Email = s.Email
	m.Address = s.Address
	m.Status = s.Status
	m.Notes = s.Notes
}

// SupplierModelFromDomain creates a new persistence model from a domain Supplier entity.
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{}
	m.FromDomain(s)
	return m
}
