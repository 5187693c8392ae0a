package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewthree/brewpos-backend/api/middleware"
	"github.com/brewthree/brewpos-backend/internal/cart"
	"github.com/brewthree/brewpos-backend/internal/catalog"
	"github.com/brewthree/brewpos-backend/pkg/db/models"
	"github.com/brewthree/brewpos-backend/pkg/errors"
)

type fakeCatalog struct {
	catalog.Service

	products map[int64]models.Product
}

func (f *fakeCatalog) Get(_ context.Context, id int64) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, errors.New(errors.CodeNotFound, "product not found")
}

func newCartRouter(sessions *cart.Sessions) http.Handler {
	catalogSvc := &fakeCatalog{products: map[int64]models.Product{
		1: {ID: 1, Name: "Latte", Price: decimal.RequireFromString("4.50"), IsAvailable: true},
	}}
	c := NewCart(sessions, catalogSvc)

	r := chi.NewRouter()
	r.Use(middleware.UserIdentity)
	r.Get("/cart", c.Get)
	r.Post("/cart/items", c.AddItem)
	r.Put("/cart/items/{productID}", c.UpdateItem)
	r.Delete("/cart/items/{productID}", c.RemoveItem)
	r.Delete("/cart", c.Clear)
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCartRequiresIdentity(t *testing.T) {
	handler := newCartRouter(cart.NewSessions())

	rec := doRequest(t, handler, http.MethodGet, "/cart", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/cart", "not-a-number", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartAddAndGet(t *testing.T) {
	handler := newCartRouter(cart.NewSessions())

	rec := doRequest(t, handler, http.MethodPost, "/cart/items", "7", `{"product_id":1,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Lines []cart.Line `json:"lines"`
			Total string      `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	require.Len(t, envelope.Data.Lines, 1)
	assert.Equal(t, 2, envelope.Data.Lines[0].Quantity)
	total, err := decimal.NewFromString(envelope.Data.Total)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("9.00")), "got %s", total)
}

func TestCartAddUnknownProduct(t *testing.T) {
	handler := newCartRouter(cart.NewSessions())

	rec := doRequest(t, handler, http.MethodPost, "/cart/items", "7", `{"product_id":99,"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartIsolationBetweenUsers(t *testing.T) {
	sessions := cart.NewSessions()
	handler := newCartRouter(sessions)

	rec := doRequest(t, handler, http.MethodPost, "/cart/items", "1", `{"product_id":1,"quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/cart", "2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			Lines []cart.Line `json:"lines"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Lines)
}

func TestCartUpdateAndClear(t *testing.T) {
	sessions := cart.NewSessions()
	handler := newCartRouter(sessions)

	rec := doRequest(t, handler, http.MethodPost, "/cart/items", "7", `{"product_id":1,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodPut, "/cart/items/1", "7", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, sessions.For(7).Lines()[0].Quantity)

	rec = doRequest(t, handler, http.MethodDelete, "/cart", "7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, sessions.For(7).Len())
}

func TestCartUpdateAbsentProductIsNoOp(t *testing.T) {
	sessions := cart.NewSessions()
	handler := newCartRouter(sessions)

	rec := doRequest(t, handler, http.MethodPost, "/cart/items", "7", `{"product_id":1,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodPut, "/cart/items/42", "7", `{"quantity":9}`)
	require.Equal(t, http.StatusOK, rec.Code)

	lines := sessions.For(7).Lines()
	require.Len(t, lines, 1)
	assert.EqualValues(t, 1, lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
}
