package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

// getCart
//
//	@Summary	Корзина текущей сессии
//	@Tags		cart
//	@Produce	json
//	@Param		X-Session-ID	header		string	true	"Сессия"
//	@Success	200				{object}	CartResponse
//	@Failure	401				{object}	ErrorResponse
//	@Router		/cart [get]
func (c *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := c.cartUsecase.GetCart(r.Context(), sessionID(r))
	c.respond(w, view, err)
}

// clearCart
//
//	@Summary	Очистить корзину
//	@Tags		cart
//	@Produce	json
//	@Param		X-Session-ID	header		string	true	"Сессия"
//	@Success	200				{object}	CartResponse
//	@Router		/cart [delete]
func (c *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	view, err := c.cartUsecase.ClearCart(r.Context(), sessionID(r))
	c.respond(w, view, err)
}

// addItem
//
//	@Summary		Добавить товар в корзину
//	@Description	Повторное добавление той же пары товар/размер увеличивает количество.
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string				true	"Сессия"
//	@Param			body			body		AddCartItemRequest	true	"Позиция"
//	@Success		200				{object}	CartResponse
//	@Failure		400				{object}	ErrorResponse
//	@Router			/cart/items [post]
func (c *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	req := AddCartItemRequest{Quantity: 1}
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	view, err := c.cartUsecase.AddItem(r.Context(), &usecase.AddCartItemReq{
		SessionID: sessionID(r),
		ProductID: req.ProductID,
		SizeID:    req.SizeID,
		Quantity:  req.Quantity,
	})
	c.respond(w, view, err)
}

// updateItem
//
//	@Summary		Изменить количество
//	@Description	Количество 0 или меньше удаляет позицию.
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string					true	"Сессия"
//	@Param			productID		path		string					true	"ID товара"
//	@Param			size_id			query		string					false	"ID размера"
//	@Param			body			body		UpdateCartItemRequest	true	"Количество"
//	@Success		200				{object}	CartResponse
//	@Router			/cart/items/{productID} [patch]
func (c *CartHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	sizeID, err := optionalUUIDQuery(r, "size_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req UpdateCartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	view, err := c.cartUsecase.UpdateQuantity(r.Context(), &usecase.UpdateCartItemReq{
		SessionID: sessionID(r),
		ProductID: productID,
		SizeID:    sizeID,
		Quantity:  req.Quantity,
	})
	c.respond(w, view, err)
}

// removeItem
//
//	@Summary	Удалить позицию
//	@Tags		cart
//	@Produce	json
//	@Param		X-Session-ID	header		string	true	"Сессия"
//	@Param		productID		path		string	true	"ID товара"
//	@Param		size_id			query		string	false	"ID размера"
//	@Success	200				{object}	CartResponse
//	@Router		/cart/items/{productID} [delete]
func (c *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	sizeID, err := optionalUUIDQuery(r, "size_id")
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := c.cartUsecase.RemoveItem(r.Context(), &usecase.RemoveCartItemReq{
		SessionID: sessionID(r),
		ProductID: productID,
		SizeID:    sizeID,
	})
	c.respond(w, view, err)
}

func (c *CartHandler) respond(w http.ResponseWriter, view *usecase.CartView, err error) {
	if err != nil {
		c.logger.Warnf("cart: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(view))
}
