package options

import (
	"net/http"

	"github.com/mytheresa/go-assortment/app/api"
	"github.com/mytheresa/go-assortment/models"
	"go.uber.org/zap"
)

type ValueResponse struct {
	ID    uint   `json:"id"`
	Value string `json:"value"`
}

type OptionResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Presentation string          `json:"presentation"`
	Values       []ValueResponse `json:"values"`
}

type PropertyResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Presentation string `json:"presentation"`
}

// DictionaryProvider lists what product forms can pick options and
// properties from.
type DictionaryProvider interface {
	GetAllOptions() ([]*models.Option, error)
	GetAllProperties() ([]*models.Property, error)
}

type OptionHandler struct {
	repo DictionaryProvider
	log  *zap.Logger
}

func NewOptionHandler(r DictionaryProvider, log *zap.Logger) *OptionHandler {
	return &OptionHandler{repo: r, log: log}
}

func (h *OptionHandler) HandleGetOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.repo.GetAllOptions()
	if err != nil {
		h.log.Error("failed to fetch options", zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to fetch options")
		return
	}

	response := make([]OptionResponse, len(options))
	for i, o := range options {
		values := make([]ValueResponse, len(o.Values))
		for j, v := range o.Values {
			values[j] = ValueResponse{ID: v.ID, Value: v.Value}
		}
		response[i] = OptionResponse{
			ID:           o.ID,
			Name:         o.Name,
			Presentation: o.Presentation,
			Values:       values,
		}
	}

	api.OKResponse(w, http.StatusOK, response)
}

func (h *OptionHandler) HandleGetProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.repo.GetAllProperties()
	if err != nil {
		h.log.Error("failed to fetch properties", zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to fetch properties")
		return
	}

	response := make([]PropertyResponse, len(properties))
	for i, p := range properties {
		response[i] = PropertyResponse{
			ID:           p.ID,
			Name:         p.Name,
			Presentation: p.Presentation,
		}
	}

	api.OKResponse(w, http.StatusOK, response)
}
