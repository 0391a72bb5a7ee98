package models

import (
	"fmt"

	"gorm.io/gorm"
)

// OptionsRepository reads the shared option and property dictionaries
// products pick from.
type OptionsRepository struct {
	db *gorm.DB
}

func NewOptionsRepository(db *gorm.DB) *OptionsRepository {
	return &OptionsRepository{db: db}
}

func (r *OptionsRepository) GetAllOptions() ([]*Option, error) {
	var options []*Option
	if err := r.db.
		Preload("Values", func(db *gorm.DB) *gorm.DB { return db.Order("option_values.id") }).
		Order("id").
		Find(&options).Error; err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	return options, nil
}

// GetOptionsByIDs returns the options found for ids, in ids order. Unknown
// ids are skipped; callers compare lengths to detect them.
func (r *OptionsRepository) GetOptionsByIDs(ids []uint) ([]*Option, error) {
	if len(ids) == 0 {
		return []*Option{}, nil
	}
	var found []*Option
	if err := r.db.Preload("Values").Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to find options: %w", err)
	}
	byID := make(map[uint]*Option, len(found))
	for _, o := range found {
		byID[o.ID] = o
	}
	return inIDOrder(ids, byID), nil
}

func (r *OptionsRepository) GetAllProperties() ([]*Property, error) {
	var properties []*Property
	if err := r.db.Order("id").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// GetPropertiesByIDs behaves like GetOptionsByIDs for properties.
func (r *OptionsRepository) GetPropertiesByIDs(ids []uint) ([]*Property, error) {
	if len(ids) == 0 {
		return []*Property{}, nil
	}
	var found []*Property
	if err := r.db.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to find properties: %w", err)
	}
	byID := make(map[uint]*Property, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	return inIDOrder(ids, byID), nil
}

func inIDOrder[T any](ids []uint, byID map[uint]*T) []*T {
	out := make([]*T, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok && !seen[id] {
			out = append(out, item)
			seen[id] = true
		}
	}
	return out
}
