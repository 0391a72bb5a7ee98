package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant is a concrete, purchasable configuration of a customizable product.
// Exactly one variant per product is the master; it carries the product's own
// availability and default attributes.
type Variant struct {
	ID           uint            `gorm:"primaryKey"`
	ProductID    *uint           `gorm:"index"`
	Master       bool            `gorm:"not null;default:false"`
	Name         string          `gorm:"not null"`
	SKU          string          `gorm:"uniqueIndex;not null"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2)"`
	AvailableOn  time.Time       `gorm:"not null"`
	OptionValues []*OptionValue  `gorm:"many2many:variant_option_values;joinForeignKey:VariantID;joinReferences:OptionValueID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (v *Variant) TableName() string {
	return "variants"
}

// NewVariant returns a detached, regular variant available from now on.
func NewVariant(name, sku string, price decimal.Decimal) *Variant {
	return &Variant{
		Name:        name,
		SKU:         sku,
		Price:       price,
		AvailableOn: time.Now(),
	}
}

func (v *Variant) IsMaster() bool {
	return v.Master
}

func (v *Variant) SetMaster(master bool) {
	v.Master = master
}

func (v *Variant) IsAvailable() bool {
	return v.IsAvailableAt(time.Now())
}

// IsAvailableAt reports whether the variant can be sold at the given instant.
func (v *Variant) IsAvailableAt(now time.Time) bool {
	return !now.Before(v.AvailableOn)
}

func (v *Variant) GetAvailableOn() time.Time {
	return v.AvailableOn
}

func (v *Variant) SetAvailableOn(availableOn time.Time) {
	v.AvailableOn = availableOn
}

// SetProduct points the variant at its owner; nil detaches it.
func (v *Variant) SetProduct(product *Product) {
	v.ProductID = product.ref()
}

// EffectivePrice falls back to the product price when the variant has none.
func (v *Variant) EffectivePrice(productPrice decimal.Decimal) decimal.Decimal {
	if v.Price.IsZero() {
		return productPrice
	}
	return v.Price
}

func (v *Variant) same(other *Variant) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v == other || (v.ID != 0 && v.ID == other.ID)
}
