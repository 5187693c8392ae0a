package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/brewthree/brewpos-backend/api/middleware"
	"github.com/brewthree/brewpos-backend/api/responses"
	"github.com/brewthree/brewpos-backend/internal/checkout"
	"github.com/brewthree/brewpos-backend/internal/orders"
	apperrors "github.com/brewthree/brewpos-backend/pkg/errors"
)

// Orders serves checkout and order lifecycle endpoints.
type Orders struct {
	checkout checkout.Service
	orders   orders.Service
}

func NewOrders(checkoutSvc checkout.Service, ordersSvc orders.Service) *Orders {
	return &Orders{checkout: checkoutSvc, orders: ordersSvc}
}

// Commit turns the caller's cart into a persisted order. The body is
// optional; an empty body means an eat-in order.
func (c *Orders) Commit(w http.ResponseWriter, r *http.Request) {
	var opts checkout.CommitOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		responses.Error(w, apperrors.Wrap(apperrors.CodeValidation, err, "decoding commit options"))
		return
	}

	order, err := c.checkout.Commit(r.Context(), middleware.UserIDFrom(r.Context()), opts)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusCreated, order)
}

func (c *Orders) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := c.orders.ListByUser(r.Context(), middleware.UserIDFrom(r.Context()))
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, result)
}

func (c *Orders) ListAll(w http.ResponseWriter, r *http.Request) {
	result, err := c.orders.ListAll(r.Context())
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, result)
}

func (c *Orders) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderID")
	if err != nil {
		responses.Error(w, err)
		return
	}

	order, err := c.orders.Get(r.Context(), id)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, order)
}

// Close removes a picked-up order.
func (c *Orders) Close(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderID")
	if err != nil {
		responses.Error(w, err)
		return
	}

	if err := c.orders.Close(r.Context(), id); err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, map[string]any{"id": id, "closed": true})
}
