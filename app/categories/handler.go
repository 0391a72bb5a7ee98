package categories

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mytheresa/go-assortment/app/api"
	"github.com/mytheresa/go-assortment/models"
	"go.uber.org/zap"
)

type CategoryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type CategoryProvider interface {
	GetAllCategories() ([]models.Category, error)
	GetByCode(code string) (*models.Category, error)
	CreateCategory(category *models.Category) error
}

type CategoryHandler struct {
	repo CategoryProvider
	log  *zap.Logger
}

func NewCategoryHandler(r CategoryProvider, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{repo: r, log: log}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories()
	if err != nil {
		h.log.Error("failed to fetch categories", zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			Code: c.Code,
			Name: c.Name,
		}
	}

	api.OKResponse(w, http.StatusOK, response)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	input.Code = strings.TrimSpace(input.Code)
	input.Name = strings.TrimSpace(input.Name)
	if input.Code == "" || input.Name == "" {
		api.ErrorResponse(w, http.StatusBadRequest, "Missing code or name")
		return
	}

	if _, err := h.repo.GetByCode(input.Code); err == nil {
		api.ErrorResponse(w, http.StatusConflict, "Category already exists")
		return
	} else if !errors.Is(err, models.ErrCategoryNotFound) {
		h.log.Error("failed to check category code", zap.String("code", input.Code), zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	category := &models.Category{
		Code: input.Code,
		Name: input.Name,
	}

	if err := h.repo.CreateCategory(category); err != nil {
		h.log.Error("failed to create category", zap.String("code", input.Code), zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	api.OKResponse(w, http.StatusCreated, map[string]string{
		"message": "Category created successfully",
	})
}
