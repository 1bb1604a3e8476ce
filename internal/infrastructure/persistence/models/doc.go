// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities so the domain layer stays free of
// ORM concerns.
//
// Mappers convert between domain entities and persistence models; repositories use
// persistence models for database operations.
package models

// AllModels returns every persistence model for schema migration.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&CustomerModel{},
		&SupplierModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&InvoiceModel{},
	}
}
