package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

// checkout
//
//	@Summary		Оформить заказ
//	@Description	Оформляет корзину сессии. Оплата при получении.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string			true	"Сессия"
//	@Param			X-Customer-ID	header		string			true	"Покупатель"
//	@Param			body			body		CheckoutRequest	true	"Доставка"
//	@Success		201				{object}	OrderResponse
//	@Failure		400				{object}	ErrorResponse	"Оформление невозможно"
//	@Failure		503				{object}	ErrorResponse	"Ошибка хранилища, корзина не изменена"
//	@Router			/orders [post]
func (o *OrderHandler) checkout(w http.ResponseWriter, r *http.Request) {
	customer, err := customerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req CheckoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	view, err := o.orderUsecase.Checkout(r.Context(), &usecase.CheckoutReq{
		SessionID:  sessionID(r),
		CustomerID: customer,
		Shipping:   req.toShipping(),
	})
	if err != nil {
		o.logger.Warnf("checkout: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toOrderResponse(view.Header, view.Items))
}

// listOrders
//
//	@Summary	Заказы покупателя, новые первыми
//	@Tags		orders
//	@Produce	json
//	@Param		X-Customer-ID	header	string	true	"Покупатель"
//	@Success	200				{array}	OrderResponse
//	@Router		/orders [get]
func (o *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	customer, err := customerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	views, err := o.orderUsecase.ListOrders(r.Context(), customer)
	if err != nil {
		o.logger.Errorf(err, "list orders")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponses(views))
}

// getOrder
//
//	@Summary	Заказ с позициями и статусом
//	@Tags		orders
//	@Produce	json
//	@Param		X-Customer-ID	header		string	true	"Покупатель"
//	@Param		id				path		string	true	"ID заказа"
//	@Success	200				{object}	OrderResponse
//	@Failure	404				{object}	ErrorResponse
//	@Router		/orders/{id} [get]
func (o *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	customer, err := customerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	orderID, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := o.orderUsecase.GetOrder(r.Context(), customer, orderID)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(view.Header, view.Items))
}

// updateStatus
//
//	@Summary		Сменить статус заказа
//	@Description	pending → processing → shipped → delivered, cancelled из любого незавершённого статуса.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			X-Admin-Token	header		string				true	"Токен администратора"
//	@Param			id				path		string				true	"ID заказа"
//	@Param			body			body		UpdateStatusRequest	true	"Новый статус"
//	@Success		200				{object}	OrderResponse
//	@Failure		409				{object}	ErrorResponse	"Недопустимый переход"
//	@Router			/admin/orders/{id}/status [patch]
func (o *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req UpdateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	header, err := o.orderUsecase.UpdateStatus(r.Context(), &usecase.UpdateStatusReq{
		OrderID: orderID,
		Status:  req.Status,
	})
	if err != nil {
		o.logger.Warnf("update status: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(*header, nil))
}
