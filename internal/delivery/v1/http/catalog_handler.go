package http

import (
	"net/http"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// listCategories
//
//	@Summary	Список категорий
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{array}		CategoryResponse
//	@Failure	503	{object}	ErrorResponse
//	@Router		/categories [get]
func (c *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalogUsecase.ListCategories(r.Context())
	if err != nil {
		c.logger.Errorf(err, "list categories")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryResponses(categories))
}

// listProducts
//
//	@Summary		Каталог товаров
//	@Description	Только доступные товары. Поиск по названию без учёта регистра.
//	@Tags			catalog
//	@Produce		json
//	@Param			category_id	query		string	false	"Категория"
//	@Param			search		query		string	false	"Подстрока названия"
//	@Param			sort		query		string	false	"newest | price_low | price_high | name"
//	@Success		200			{array}		ProductResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/products [get]
func (c *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	categoryID, err := optionalUUIDQuery(r, "category_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	q := r.URL.Query()
	products, err := c.catalogUsecase.ListProducts(r.Context(), domain.ProductFilter{
		CategoryID: categoryID,
		Search:     strings.TrimSpace(q.Get("search")),
		Sort:       domain.ProductSort(q.Get("sort")),
	})
	if err != nil {
		c.logger.Warnf("list products: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponses(products))
}

// getProduct
//
//	@Summary	Карточка товара с размерами
//	@Tags		catalog
//	@Produce	json
//	@Param		id	path		string	true	"ID товара"
//	@Success	200	{object}	ProductDetailsResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (c *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	details, err := c.catalogUsecase.GetProduct(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductDetailsResponse(details))
}
