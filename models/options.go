package models

// Option is a configurable axis (size, color, ...) shared between products.
type Option struct {
	ID           uint           `gorm:"primaryKey"`
	Name         string         `gorm:"uniqueIndex;not null"`
	Presentation string         `gorm:"not null"`
	Values       []*OptionValue `gorm:"foreignKey:OptionID"`
}

func (o *Option) TableName() string {
	return "options"
}

func (o *Option) same(other *Option) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o == other || (o.ID != 0 && o.ID == other.ID)
}

// OptionValue is one point on an option axis, e.g. "XL" for size.
type OptionValue struct {
	ID       uint    `gorm:"primaryKey"`
	OptionID uint    `gorm:"index;not null"`
	Option   *Option `gorm:"foreignKey:OptionID"`
	Value    string  `gorm:"not null"`
}

func (v *OptionValue) TableName() string {
	return "option_values"
}
