package models

// Property is a named attribute products can carry, e.g. "material".
type Property struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"uniqueIndex;not null"`
	Presentation string `gorm:"not null"`
}

func (p *Property) TableName() string {
	return "properties"
}

// ProductProperty assigns a value of a property to a single product.
type ProductProperty struct {
	ID         uint      `gorm:"primaryKey"`
	ProductID  *uint     `gorm:"index"`
	PropertyID uint      `gorm:"not null"`
	Property   *Property `gorm:"foreignKey:PropertyID"`
	Value      string    `gorm:"not null"`
}

func (pp *ProductProperty) TableName() string {
	return "product_properties"
}

func NewProductProperty(property *Property, value string) *ProductProperty {
	pp := &ProductProperty{Property: property, Value: value}
	if property != nil {
		pp.PropertyID = property.ID
	}
	return pp
}

// SetProduct points the assignment at its owner; nil detaches it.
func (pp *ProductProperty) SetProduct(product *Product) {
	pp.ProductID = product.ref()
}

func (pp *ProductProperty) same(other *ProductProperty) bool {
	if pp == nil || other == nil {
		return pp == other
	}
	return pp == other || (pp.ID != 0 && pp.ID == other.ID)
}
