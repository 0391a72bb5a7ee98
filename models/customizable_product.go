package models

import (
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// ErrMissingMasterVariant is returned by availability accessors of a product
// that has no master variant yet.
var ErrMissingMasterVariant = errors.New("no master variant configured")

// CustomizableProduct is a product sold through variants. It owns its
// variants and property assignments, and references shared options.
//
// Variants, Options and Properties are the persisted state and must only be
// changed through the methods below, which keep back-references and the
// single master variant consistent. The type is not safe for concurrent use.
type CustomizableProduct struct {
	Product
	Variants   []*Variant         `gorm:"foreignKey:ProductID"`
	Options    []*Option          `gorm:"many2many:product_options;joinForeignKey:ProductID;joinReferences:OptionID"`
	Properties []*ProductProperty `gorm:"foreignKey:ProductID"`
}

func (p *CustomizableProduct) TableName() string {
	return "products"
}

func NewCustomizableProduct(code string, price decimal.Decimal) *CustomizableProduct {
	return &CustomizableProduct{
		Product:    Product{Code: code, Price: price},
		Variants:   []*Variant{},
		Options:    []*Option{},
		Properties: []*ProductProperty{},
	}
}

var _ CatalogItem = (*CustomizableProduct)(nil)

func (p *CustomizableProduct) IsAvailable() (bool, error) {
	master := p.GetMasterVariant()
	if master == nil {
		return false, ErrMissingMasterVariant
	}
	return master.IsAvailable(), nil
}

func (p *CustomizableProduct) GetAvailableOn() (time.Time, error) {
	master := p.GetMasterVariant()
	if master == nil {
		return time.Time{}, ErrMissingMasterVariant
	}
	return master.GetAvailableOn(), nil
}

func (p *CustomizableProduct) SetAvailableOn(availableOn time.Time) error {
	master := p.GetMasterVariant()
	if master == nil {
		return ErrMissingMasterVariant
	}
	master.SetAvailableOn(availableOn)
	return nil
}

// GetMasterVariant returns the master variant, or nil if none was set.
func (p *CustomizableProduct) GetMasterVariant() *Variant {
	for _, v := range p.Variants {
		if v.IsMaster() {
			return v
		}
	}
	return nil
}

// SetMasterVariant attaches variant as the master. A variant that already
// belongs to the product is left untouched. A previous master is demoted to
// a regular variant.
func (p *CustomizableProduct) SetMasterVariant(variant *Variant) {
	if p.HasVariant(variant) {
		return
	}
	if previous := p.GetMasterVariant(); previous != nil {
		previous.SetMaster(false)
	}

	variant.SetProduct(&p.Product)
	variant.SetMaster(true)
	p.Variants = append(p.Variants, variant)
}

func (p *CustomizableProduct) HasVariants() bool {
	return slices.ContainsFunc(p.Variants, func(v *Variant) bool { return !v.IsMaster() })
}

// GetVariants returns the regular variants in insertion order.
func (p *CustomizableProduct) GetVariants() []*Variant {
	return p.filterVariants(func(v *Variant) bool { return !v.IsMaster() })
}

// GetAvailableVariants returns the regular variants that can be sold now.
func (p *CustomizableProduct) GetAvailableVariants() []*Variant {
	return p.filterVariants(func(v *Variant) bool { return !v.IsMaster() && v.IsAvailable() })
}

// SetVariants resets all variants, the master included, to the given list.
// The master has to be set again with SetMasterVariant unless it is part of
// variants.
func (p *CustomizableProduct) SetVariants(variants []*Variant) {
	for _, v := range p.Variants {
		v.SetProduct(nil)
	}
	p.Variants = []*Variant{}

	for _, v := range variants {
		p.AddVariant(v)
	}
}

// AddVariant attaches variant. A variant flagged as master joins as a
// regular one when the product already has a master.
func (p *CustomizableProduct) AddVariant(variant *Variant) {
	if p.HasVariant(variant) {
		return
	}
	if variant.IsMaster() && p.GetMasterVariant() != nil {
		variant.SetMaster(false)
	}
	variant.SetProduct(&p.Product)
	p.Variants = append(p.Variants, variant)
}

func (p *CustomizableProduct) RemoveVariant(variant *Variant) {
	i := slices.IndexFunc(p.Variants, variant.same)
	if i < 0 {
		return
	}
	p.Variants[i].SetProduct(nil)
	variant.SetProduct(nil)
	p.Variants = slices.Delete(p.Variants, i, i+1)
}

func (p *CustomizableProduct) HasVariant(variant *Variant) bool {
	return slices.ContainsFunc(p.Variants, variant.same)
}

func (p *CustomizableProduct) filterVariants(keep func(*Variant) bool) []*Variant {
	out := make([]*Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (p *CustomizableProduct) HasOptions() bool {
	return len(p.Options) > 0
}

func (p *CustomizableProduct) GetOptions() []*Option {
	return slices.Clone(p.Options)
}

// SetOptions replaces the options with the given list as is.
func (p *CustomizableProduct) SetOptions(options []*Option) {
	p.Options = append([]*Option{}, options...)
}

func (p *CustomizableProduct) AddOption(option *Option) {
	if !p.HasOption(option) {
		p.Options = append(p.Options, option)
	}
}

func (p *CustomizableProduct) RemoveOption(option *Option) {
	if i := slices.IndexFunc(p.Options, option.same); i >= 0 {
		p.Options = slices.Delete(p.Options, i, i+1)
	}
}

func (p *CustomizableProduct) HasOption(option *Option) bool {
	return slices.ContainsFunc(p.Options, option.same)
}

func (p *CustomizableProduct) GetProperties() []*ProductProperty {
	return slices.Clone(p.Properties)
}

// SetProperties adds every given property. Unlike SetOptions and SetVariants
// it never drops what the product already has.
func (p *CustomizableProduct) SetProperties(properties []*ProductProperty) {
	for _, pp := range properties {
		p.AddProperty(pp)
	}
}

func (p *CustomizableProduct) AddProperty(property *ProductProperty) {
	if p.HasProperty(property) {
		return
	}
	property.SetProduct(&p.Product)
	p.Properties = append(p.Properties, property)
}

func (p *CustomizableProduct) RemoveProperty(property *ProductProperty) {
	i := slices.IndexFunc(p.Properties, property.same)
	if i < 0 {
		return
	}
	p.Properties[i].SetProduct(nil)
	property.SetProduct(nil)
	p.Properties = slices.Delete(p.Properties, i, i+1)
}

func (p *CustomizableProduct) HasProperty(property *ProductProperty) bool {
	return slices.ContainsFunc(p.Properties, property.same)
}
