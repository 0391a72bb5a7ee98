package models

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type ProductFilters struct {
	CategoryCode  string
	PriceLessThan *float64
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetFilteredProducts(offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.Model(&Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id")

	if filters.CategoryCode != "" {
		query = query.Where("categories.code = ?", filters.CategoryCode)
	}
	if filters.PriceLessThan != nil {
		query = query.Where("products.price < ?", *filters.PriceLessThan)
	}
	query = query.Session(&gorm.Session{})

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	if err := query.Preload("Category").Order("products.id").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

// GetByCode loads the whole aggregate: variants in insertion order with their
// option values, options with their values and property assignments.
func (r *ProductsRepository) GetByCode(code string) (*CustomizableProduct, error) {
	var product CustomizableProduct
	if err := r.db.
		Preload("Category").
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("variants.id") }).
		Preload("Variants.OptionValues.Option").
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("options.id") }).
		Preload("Options.Values").
		Preload("Properties", func(db *gorm.DB) *gorm.DB { return db.Order("product_properties.id") }).
		Preload("Properties.Property").
		Where("code = ?", code).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// Save writes the aggregate and cascades to its variants, options and
// property assignments. Variants and properties that left the aggregate are
// detached, not deleted.
func (r *ProductsRepository) Save(product *CustomizableProduct) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if master := product.GetMasterVariant(); master != nil {
			product.Product.AvailableOn = master.GetAvailableOn()
		}

		if err := tx.Omit(clause.Associations).Save(&product.Product).Error; err != nil {
			return fmt.Errorf("failed to save product: %w", err)
		}

		variantIDs := make([]uint, 0, len(product.Variants))
		for _, v := range product.Variants {
			v.SetProduct(&product.Product)
			if err := tx.Omit(clause.Associations).Save(v).Error; err != nil {
				return fmt.Errorf("failed to save variant %q: %w", v.SKU, err)
			}
			if err := replaceAssociation(tx.Model(v).Association("OptionValues"), v.OptionValues); err != nil {
				return fmt.Errorf("failed to save option values of variant %q: %w", v.SKU, err)
			}
			variantIDs = append(variantIDs, v.ID)
		}
		if err := detach(tx, &Variant{}, product.ID, variantIDs); err != nil {
			return fmt.Errorf("failed to detach variants: %w", err)
		}

		propertyIDs := make([]uint, 0, len(product.Properties))
		for _, pp := range product.Properties {
			pp.SetProduct(&product.Product)
			if pp.Property != nil && pp.PropertyID == 0 {
				pp.PropertyID = pp.Property.ID
			}
			if err := tx.Omit(clause.Associations).Save(pp).Error; err != nil {
				return fmt.Errorf("failed to save product property: %w", err)
			}
			propertyIDs = append(propertyIDs, pp.ID)
		}
		if err := detach(tx, &ProductProperty{}, product.ID, propertyIDs); err != nil {
			return fmt.Errorf("failed to detach product properties: %w", err)
		}

		if err := replaceAssociation(tx.Model(product).Association("Options"), product.Options); err != nil {
			return fmt.Errorf("failed to save product options: %w", err)
		}
		return nil
	})
}

// SKUExists reports whether any variant row uses sku. Rows detached from
// their product keep their SKU.
func (r *ProductsRepository) SKUExists(sku string) (bool, error) {
	var count int64
	if err := r.db.Model(&Variant{}).Where("sku = ?", sku).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check sku: %w", err)
	}
	return count > 0, nil
}

func replaceAssociation[T any](assoc *gorm.Association, values []*T) error {
	if len(values) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(values)
}

// detach clears the back-reference of rows owned by productID that are not in keep.
func detach(tx *gorm.DB, model any, productID uint, keep []uint) error {
	query := tx.Model(model).Where("product_id = ?", productID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Update("product_id", nil).Error
}
