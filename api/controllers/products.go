package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/brewthree/brewpos-backend/api/responses"
	"github.com/brewthree/brewpos-backend/api/validators"
	"github.com/brewthree/brewpos-backend/internal/catalog"
	"github.com/brewthree/brewpos-backend/pkg/enums"
	"github.com/brewthree/brewpos-backend/pkg/errors"
)

// Products serves the catalog endpoints.
type Products struct {
	svc catalog.Service
}

func NewProducts(svc catalog.Service) *Products {
	return &Products{svc: svc}
}

func (c *Products) List(w http.ResponseWriter, r *http.Request) {
	filter := catalog.ListFilter{
		OnlyAvailable: r.URL.Query().Get("available") == "true",
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			responses.Error(w, errors.New(errors.CodeValidation, "invalid category"))
			return
		}
		filter.Category = &category
	}

	products, err := c.svc.List(r.Context(), filter)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, products)
}

func (c *Products) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "productID")
	if err != nil {
		responses.Error(w, err)
		return
	}

	product, err := c.svc.Get(r.Context(), id)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, product)
}

func (c *Products) Create(w http.ResponseWriter, r *http.Request) {
	var input catalog.CreateInput
	if err := validators.DecodeAndValidate(r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	product, err := c.svc.Create(r.Context(), input)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusCreated, product)
}

func (c *Products) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "productID")
	if err != nil {
		responses.Error(w, err)
		return
	}

	var input catalog.UpdateInput
	if err := validators.DecodeAndValidate(r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	product, err := c.svc.Update(r.Context(), id, input)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, product)
}

func (c *Products) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "productID")
	if err != nil {
		responses.Error(w, err)
		return
	}

	var input struct {
		Available *bool `json:"available" validate:"required"`
	}
	if err := validators.DecodeAndValidate(r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	if err := c.svc.SetAvailability(r.Context(), id, *input.Available); err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, map[string]any{"id": id, "available": *input.Available})
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(errors.CodeValidation, "invalid id in path")
	}
	return id, nil
}
