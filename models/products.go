package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItem is implemented by everything the catalog can sell.
// Availability may be owned by the item itself or delegated to one of its parts.
type CatalogItem interface {
	IsAvailable() (bool, error)
	GetAvailableOn() (time.Time, error)
	SetAvailableOn(availableOn time.Time) error
}

// Product represents a product in the catalog.
// It includes a unique code, price and category. Richer products embed it.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Code        string          `gorm:"uniqueIndex;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID  uint            `gorm:"not null"`
	Category    Category        `gorm:"foreignKey:CategoryID"`
	AvailableOn time.Time       `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) TableName() string {
	return "products"
}

func (p *Product) IsAvailable() (bool, error) {
	return !time.Now().Before(p.AvailableOn), nil
}

func (p *Product) GetAvailableOn() (time.Time, error) {
	return p.AvailableOn, nil
}

func (p *Product) SetAvailableOn(availableOn time.Time) error {
	p.AvailableOn = availableOn
	return nil
}

// ref returns the back-reference key children store for this product.
func (p *Product) ref() *uint {
	if p == nil {
		return nil
	}
	id := p.ID
	return &id
}
