package controllers

import (
	"net/http"

	"github.com/brewthree/brewpos-backend/api/middleware"
	"github.com/brewthree/brewpos-backend/api/responses"
	"github.com/brewthree/brewpos-backend/api/validators"
	"github.com/brewthree/brewpos-backend/internal/cart"
	"github.com/brewthree/brewpos-backend/internal/catalog"
)

// Cart serves the per-user cart endpoints.
type Cart struct {
	sessions *cart.Sessions
	catalog  catalog.Service
}

func NewCart(sessions *cart.Sessions, catalogSvc catalog.Service) *Cart {
	return &Cart{sessions: sessions, catalog: catalogSvc}
}

type cartView struct {
	Lines []cart.Line `json:"lines"`
	Total string      `json:"total"`
}

func (c *Cart) view(userID int64) cartView {
	userCart := c.sessions.For(userID)
	return cartView{
		Lines: userCart.Lines(),
		Total: userCart.Total().String(),
	}
}

func (c *Cart) Get(w http.ResponseWriter, r *http.Request) {
	responses.JSON(w, http.StatusOK, c.view(middleware.UserIDFrom(r.Context())))
}

func (c *Cart) AddItem(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductID int64 `json:"product_id" validate:"required,gt=0"`
		Quantity  int   `json:"quantity" validate:"required,gt=0"`
	}
	if err := validators.DecodeAndValidate(r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	product, err := c.catalog.Get(r.Context(), input.ProductID)
	if err != nil {
		responses.Error(w, err)
		return
	}

	userID := middleware.UserIDFrom(r.Context())
	if err := c.sessions.For(userID).Add(*product, input.Quantity); err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, c.view(userID))
}

func (c *Cart) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		responses.Error(w, err)
		return
	}

	var input struct {
		Quantity *int `json:"quantity" validate:"required,gte=0"`
	}
	if err := validators.DecodeAndValidate(r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	userID := middleware.UserIDFrom(r.Context())
	c.sessions.For(userID).SetQuantity(productID, *input.Quantity)
	responses.JSON(w, http.StatusOK, c.view(userID))
}

func (c *Cart) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		responses.Error(w, err)
		return
	}

	userID := middleware.UserIDFrom(r.Context())
	c.sessions.For(userID).Remove(productID)
	responses.JSON(w, http.StatusOK, c.view(userID))
}

func (c *Cart) Clear(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFrom(r.Context())
	c.sessions.For(userID).Clear()
	responses.JSON(w, http.StatusOK, c.view(userID))
}
