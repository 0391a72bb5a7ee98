package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mytheresa/go-assortment/app/api"
	"github.com/mytheresa/go-assortment/models"
	"go.uber.org/zap"
)

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var form ProductForm
	if !h.bind(w, r, &form) {
		return
	}

	refs, ok := h.resolveOrFail(w, &form)
	if !ok {
		return
	}

	if _, err := h.repo.GetByCode(form.Code); err == nil {
		api.ErrorResponse(w, http.StatusConflict, "Product already exists")
		return
	} else if !errors.Is(err, models.ErrProductNotFound) {
		h.log.Error("failed to check product code", zap.String("code", form.Code), zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	if !h.ensureSKUFree(w, form.MasterVariant.SKU, "SKU already in use", "Failed to create product") {
		return
	}

	product := models.NewCustomizableProduct(form.Code, *form.Price)
	form.applyTo(product, refs)

	if err := h.repo.Save(product); err != nil {
		h.log.Error("failed to create product", zap.String("code", form.Code), zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	h.log.Info("product created", zap.String("code", product.Code), zap.Uint("id", product.ID))
	api.OKResponse(w, http.StatusCreated, h.toProductDetail(product))
}

func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	var form ProductForm
	if !h.bind(w, r, &form) {
		return
	}

	product, ok := h.loadProduct(w, code)
	if !ok {
		return
	}

	refs, ok := h.resolveOrFail(w, &form)
	if !ok {
		return
	}

	if form.Code != code {
		if _, err := h.repo.GetByCode(form.Code); err == nil {
			api.ErrorResponse(w, http.StatusConflict, "Product already exists")
			return
		} else if !errors.Is(err, models.ErrProductNotFound) {
			h.log.Error("failed to check product code", zap.String("code", form.Code), zap.Error(err))
			api.ErrorResponse(w, http.StatusInternalServerError, "Failed to update product")
			return
		}
	}

	if master := product.GetMasterVariant(); master == nil || master.SKU != form.MasterVariant.SKU {
		if !h.ensureSKUFree(w, form.MasterVariant.SKU, "SKU already in use", "Failed to update product") {
			return
		}
	}

	form.applyTo(product, refs)

	if err := h.repo.Save(product); err != nil {
		h.log.Error("failed to update product", zap.String("code", code), zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	api.OKResponse(w, http.StatusOK, h.toProductDetail(product))
}

func (h *CatalogHandler) HandleAddVariant(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	var form VariantForm
	if !h.bind(w, r, &form) {
		return
	}

	product, ok := h.loadProduct(w, code)
	if !ok {
		return
	}

	if findVariant(product, form.SKU) != nil {
		api.ErrorResponse(w, http.StatusConflict, "Variant already exists")
		return
	}
	if !h.ensureSKUFree(w, form.SKU, "Variant already exists", "Failed to add variant") {
		return
	}

	variant := form.newVariant()
	product.AddVariant(variant)

	if err := h.repo.Save(product); err != nil {
		h.log.Error("failed to add variant", zap.String("code", code), zap.String("sku", form.SKU), zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to add variant")
		return
	}

	api.OKResponse(w, http.StatusCreated, toVariant(variant, product))
}

func (h *CatalogHandler) HandleRemoveVariant(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	sku := r.PathValue("sku")

	product, ok := h.loadProduct(w, code)
	if !ok {
		return
	}

	variant := findVariant(product, sku)
	switch {
	case variant == nil:
		api.ErrorResponse(w, http.StatusNotFound, "Variant not found")
		return
	case variant.IsMaster():
		api.ErrorResponse(w, http.StatusConflict, "Master variant cannot be removed")
		return
	}

	product.RemoveVariant(variant)

	if err := h.repo.Save(product); err != nil {
		h.log.Error("failed to remove variant", zap.String("code", code), zap.String("sku", sku), zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove variant")
		return
	}

	api.OKResponse(w, http.StatusNoContent, nil)
}

// bind decodes and validates the request body into form. It writes the 400
// response itself when it returns false.
func (h *CatalogHandler) bind(w http.ResponseWriter, r *http.Request, form any) bool {
	if err := json.NewDecoder(r.Body).Decode(form); err != nil {
		h.log.Debug("undecodable form", zap.Error(err))
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	if err := validateForm(h.validate, form); err != nil {
		h.log.Debug("rejected form", zap.Error(err))
		api.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (h *CatalogHandler) resolveOrFail(w http.ResponseWriter, form *ProductForm) (formRefs, bool) {
	refs, err := h.resolve(form)
	if err == nil {
		return refs, true
	}

	var ferr *FormError
	if errors.As(err, &ferr) {
		api.ErrorResponse(w, http.StatusBadRequest, ferr.Error())
		return refs, false
	}

	h.log.Error("failed to resolve form references", zap.String("code", form.Code), zap.Error(err))
	api.ErrorResponse(w, http.StatusInternalServerError, "Failed to resolve product references")
	return refs, false
}

// ensureSKUFree answers 409 with conflictMsg when any variant row, detached
// ones included, already uses sku. It writes the response itself when it
// returns false.
func (h *CatalogHandler) ensureSKUFree(w http.ResponseWriter, sku, conflictMsg, failMsg string) bool {
	exists, err := h.repo.SKUExists(sku)
	switch {
	case err != nil:
		h.log.Error("failed to check sku", zap.String("sku", sku), zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, failMsg)
		return false
	case exists:
		api.ErrorResponse(w, http.StatusConflict, conflictMsg)
		return false
	}
	return true
}

// findVariant looks up any variant of p, the master included, by SKU.
func findVariant(p *models.CustomizableProduct, sku string) *models.Variant {
	if master := p.GetMasterVariant(); master != nil && master.SKU == sku {
		return master
	}
	for _, v := range p.GetVariants() {
		if v.SKU == sku {
			return v
		}
	}
	return nil
}
