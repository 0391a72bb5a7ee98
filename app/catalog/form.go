package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mytheresa/go-assortment/models"
	"github.com/shopspring/decimal"
)

// FormError is a client error in a submitted form. Handlers answer it with 400.
type FormError struct {
	msg string
}

func (e *FormError) Error() string {
	return e.msg
}

func formErrorf(format string, args ...any) *FormError {
	return &FormError{msg: fmt.Sprintf(format, args...)}
}

// VariantForm binds one variant. An omitted price is zero, which inherits the
// product price.
type VariantForm struct {
	Name        string          `json:"name" validate:"required,max=255"`
	SKU         string          `json:"sku" validate:"required,max=64"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	AvailableOn *time.Time      `json:"available_on"`
}

type PropertyForm struct {
	PropertyID uint   `json:"property_id" validate:"required"`
	Value      string `json:"value" validate:"required,max=255"`
}

// ProductForm binds a customizable product. Options replace the current
// selection; properties are edited by position and extra rows are added.
type ProductForm struct {
	Code          string           `json:"code" validate:"required,max=32"`
	Price         *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Category      string           `json:"category" validate:"required"`
	AvailableOn   *time.Time       `json:"available_on"`
	MasterVariant *VariantForm     `json:"master_variant" validate:"required"`
	Options       []uint           `json:"options" validate:"omitempty,dive,required"`
	Properties    []PropertyForm   `json:"properties" validate:"omitempty,dive"`
}

// formRefs holds the records a form points at by code or id.
type formRefs struct {
	category   *models.Category
	options    []*models.Option
	properties map[uint]*models.Property
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// validateForm turns validator failures into a single FormError such as
// "master_variant.sku: required".
func validateForm(v *validator.Validate, form any) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		msgs = append(msgs, field+": "+fe.Tag())
	}
	return &FormError{msg: "invalid form: " + strings.Join(msgs, "; ")}
}

func (f *VariantForm) applyTo(v *models.Variant) {
	v.Name = f.Name
	v.SKU = f.SKU
	v.Price = f.Price
	if f.AvailableOn != nil {
		v.SetAvailableOn(*f.AvailableOn)
	}
}

func (f *VariantForm) newVariant() *models.Variant {
	v := models.NewVariant(f.Name, f.SKU, f.Price)
	f.applyTo(v)
	return v
}

func (f *ProductForm) applyTo(p *models.CustomizableProduct, refs formRefs) {
	p.Code = f.Code
	p.Price = *f.Price
	p.CategoryID = refs.category.ID
	p.Category = *refs.category

	if master := p.GetMasterVariant(); master != nil {
		f.MasterVariant.applyTo(master)
	} else {
		p.SetMasterVariant(f.MasterVariant.newVariant())
	}

	if f.AvailableOn != nil {
		// cannot fail: the master was set above
		_ = p.SetAvailableOn(*f.AvailableOn)
	}

	p.SetOptions(refs.options)

	existing := p.GetProperties()
	submitted := make([]*models.ProductProperty, 0, len(f.Properties))
	for i, pf := range f.Properties {
		property := refs.properties[pf.PropertyID]
		if i < len(existing) {
			pp := existing[i]
			pp.Property = property
			pp.PropertyID = property.ID
			pp.Value = pf.Value
			submitted = append(submitted, pp)
			continue
		}
		submitted = append(submitted, models.NewProductProperty(property, pf.Value))
	}
	p.SetProperties(submitted)
}

// resolve loads the category, options and properties a form refers to.
// References to unknown records come back as a FormError.
func (h *CatalogHandler) resolve(f *ProductForm) (formRefs, error) {
	var refs formRefs

	category, err := h.categories.GetByCode(f.Category)
	switch {
	case errors.Is(err, models.ErrCategoryNotFound):
		return refs, formErrorf("unknown category %q", f.Category)
	case err != nil:
		return refs, fmt.Errorf("failed to load category: %w", err)
	}
	refs.category = category

	refs.options = []*models.Option{}
	if len(f.Options) > 0 {
		options, err := h.dictionary.GetOptionsByIDs(f.Options)
		if err != nil {
			return refs, fmt.Errorf("failed to load options: %w", err)
		}
		if missing := missingIDs(f.Options, options, func(o *models.Option) uint { return o.ID }); len(missing) > 0 {
			return refs, formErrorf("unknown options %v", missing)
		}
		refs.options = options
	}

	refs.properties = make(map[uint]*models.Property, len(f.Properties))
	if len(f.Properties) > 0 {
		ids := make([]uint, len(f.Properties))
		for i, pf := range f.Properties {
			ids[i] = pf.PropertyID
		}
		properties, err := h.dictionary.GetPropertiesByIDs(ids)
		if err != nil {
			return refs, fmt.Errorf("failed to load properties: %w", err)
		}
		if missing := missingIDs(ids, properties, func(p *models.Property) uint { return p.ID }); len(missing) > 0 {
			return refs, formErrorf("unknown properties %v", missing)
		}
		for _, p := range properties {
			refs.properties[p.ID] = p
		}
	}

	return refs, nil
}

func missingIDs[T any](want []uint, found []*T, id func(*T) uint) []uint {
	seen := make(map[uint]bool, len(found))
	for _, f := range found {
		seen[id(f)] = true
	}
	var missing []uint
	for _, w := range want {
		if !seen[w] {
			missing = append(missing, w)
			seen[w] = true
		}
	}
	return missing
}
