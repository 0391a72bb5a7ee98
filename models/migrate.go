package models

import "gorm.io/gorm"

// Migrate creates or updates the catalog tables, join tables included.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&Option{},
		&OptionValue{},
		&Property{},
		&CustomizableProduct{},
		&Variant{},
		&ProductProperty{},
	)
}
