package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mytheresa/go-assortment/app/api"
	"github.com/mytheresa/go-assortment/models"
	"go.uber.org/zap"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Category struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Product struct {
	Code     string   `json:"code"`
	Price    float64  `json:"price"`
	Category Category `json:"category"`
}

type Variant struct {
	Name         string   `json:"name"`
	SKU          string   `json:"sku"`
	Price        float64  `json:"price"`
	Available    bool     `json:"available"`
	OptionValues []string `json:"option_values,omitempty"`
}

type Option struct {
	Name         string   `json:"name"`
	Presentation string   `json:"presentation"`
	Values       []string `json:"values"`
}

type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductDetail is the full view of a customizable product. Availability is
// omitted when the product has no master variant.
type ProductDetail struct {
	Code          string     `json:"code"`
	Price         float64    `json:"price"`
	Category      Category   `json:"category"`
	Available     *bool      `json:"available,omitempty"`
	AvailableOn   *time.Time `json:"available_on,omitempty"`
	MasterVariant *Variant   `json:"master_variant,omitempty"`
	Variants      []Variant  `json:"variants"`
	Options       []Option   `json:"options"`
	Properties    []Property `json:"properties"`
}

type ProductProvider interface {
	GetFilteredProducts(offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByCode(code string) (*models.CustomizableProduct, error)
	Save(product *models.CustomizableProduct) error
	SKUExists(sku string) (bool, error)
}

type CategoryFinder interface {
	GetByCode(code string) (*models.Category, error)
}

// DictionaryProvider resolves the shared options and properties a product
// form refers to by id.
type DictionaryProvider interface {
	GetOptionsByIDs(ids []uint) ([]*models.Option, error)
	GetPropertiesByIDs(ids []uint) ([]*models.Property, error)
}

type CatalogHandler struct {
	repo       ProductProvider
	categories CategoryFinder
	dictionary DictionaryProvider
	validate   *validator.Validate
	log        *zap.Logger
}

func NewCatalogHandler(r ProductProvider, c CategoryFinder, d DictionaryProvider, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo:       r,
		categories: c,
		dictionary: d,
		validate:   newValidator(),
		log:        log,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			limit = min(max(l, 1), 100)
		}
	}

	var priceFilter *float64
	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := strconv.ParseFloat(priceStr, 64); err == nil {
			priceFilter = &val
		}
	}

	filters := models.ProductFilters{
		CategoryCode:  r.URL.Query().Get("category"),
		PriceLessThan: priceFilter,
	}

	res, total, err := h.repo.GetFilteredProducts(offset, limit, filters)
	if err != nil {
		h.log.Error("failed to get products", zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to get products")
		return
	}

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = Product{
			Code:     p.Code,
			Price:    p.Price.InexactFloat64(),
			Category: toCategory(p.Category),
		}
	}

	api.OKResponse(w, http.StatusOK, Response{
		Total:    int(total),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	product, ok := h.loadProduct(w, code)
	if !ok {
		return
	}

	api.OKResponse(w, http.StatusOK, h.toProductDetail(product))
}

// loadProduct writes the error response itself when it returns false.
func (h *CatalogHandler) loadProduct(w http.ResponseWriter, code string) (*models.CustomizableProduct, bool) {
	product, err := h.repo.GetByCode(code)
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		api.ErrorResponse(w, http.StatusNotFound, "Product not found")
		return nil, false
	case err != nil:
		h.log.Error("failed to retrieve product", zap.String("code", code), zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve product")
		return nil, false
	}
	return product, true
}

func (h *CatalogHandler) toProductDetail(p *models.CustomizableProduct) ProductDetail {
	detail := ProductDetail{
		Code:       p.Code,
		Price:      p.Price.InexactFloat64(),
		Category:   toCategory(p.Category),
		Variants:   make([]Variant, 0, len(p.Variants)),
		Options:    make([]Option, 0, len(p.Options)),
		Properties: make([]Property, 0, len(p.Properties)),
	}

	if available, err := p.IsAvailable(); err == nil {
		availableOn, _ := p.GetAvailableOn()
		detail.Available = &available
		detail.AvailableOn = &availableOn
		master := toVariant(p.GetMasterVariant(), p)
		detail.MasterVariant = &master
	} else {
		h.log.Warn("product has no master variant", zap.String("code", p.Code))
	}

	for _, v := range p.GetVariants() {
		detail.Variants = append(detail.Variants, toVariant(v, p))
	}

	for _, o := range p.GetOptions() {
		values := make([]string, 0, len(o.Values))
		for _, v := range o.Values {
			values = append(values, v.Value)
		}
		detail.Options = append(detail.Options, Option{
			Name:         o.Name,
			Presentation: o.Presentation,
			Values:       values,
		})
	}

	for _, pp := range p.GetProperties() {
		property := Property{Value: pp.Value}
		if pp.Property != nil {
			property.Name = pp.Property.Name
		}
		detail.Properties = append(detail.Properties, property)
	}

	return detail
}

func toCategory(c models.Category) Category {
	return Category{
		Code: c.Code,
		Name: c.Name,
	}
}

func toVariant(v *models.Variant, p *models.CustomizableProduct) Variant {
	out := Variant{
		Name:      v.Name,
		SKU:       v.SKU,
		Price:     v.EffectivePrice(p.Price).InexactFloat64(),
		Available: v.IsAvailable(),
	}
	for _, ov := range v.OptionValues {
		if ov.Option != nil {
			out.OptionValues = append(out.OptionValues, ov.Option.Name+": "+ov.Value)
		} else {
			out.OptionValues = append(out.OptionValues, ov.Value)
		}
	}
	return out
}
