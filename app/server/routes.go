package server

import (
	"net/http"

	"github.com/mytheresa/go-assortment/app/api"
	"github.com/mytheresa/go-assortment/app/catalog"
	"github.com/mytheresa/go-assortment/app/categories"
	"github.com/mytheresa/go-assortment/app/options"
	"github.com/mytheresa/go-assortment/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewRouter wires the repositories on db into the HTTP handlers.
func NewRouter(db *gorm.DB, log *zap.Logger) http.Handler {
	prodRepo := models.NewProductsRepository(db)
	catRepo := models.NewCategoriesRepository(db)
	optRepo := models.NewOptionsRepository(db)

	cat := catalog.NewCatalogHandler(prodRepo, catRepo, optRepo, log.Named("catalog"))
	categoryHandler := categories.NewCategoryHandler(catRepo, log.Named("categories"))
	optionHandler := options.NewOptionHandler(optRepo, log.Named("options"))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /catalog", cat.HandleGet)
	mux.HandleFunc("POST /catalog", cat.HandleCreate)
	mux.HandleFunc("GET /catalog/{code}", cat.HandleGetProduct)
	mux.HandleFunc("PUT /catalog/{code}", cat.HandleUpdate)
	mux.HandleFunc("POST /catalog/{code}/variants", cat.HandleAddVariant)
	mux.HandleFunc("DELETE /catalog/{code}/variants/{sku}", cat.HandleRemoveVariant)

	mux.HandleFunc("GET /categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("POST /categories", categoryHandler.HandleCreate)

	mux.HandleFunc("GET /options", optionHandler.HandleGetOptions)
	mux.HandleFunc("GET /properties", optionHandler.HandleGetProperties)

	return api.RequestLogger(log.Named("http"), mux)
}
