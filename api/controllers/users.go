package controllers

import (
	"net/http"

	"github.com/brewthree/brewpos-backend/api/responses"
	"github.com/brewthree/brewpos-backend/api/validators"
	"github.com/brewthree/brewpos-backend/internal/users"
)

// Users serves account registration and login.
type Users struct {
	svc users.Service
}

func NewUsers(svc users.Service) *Users {
	return &Users{svc: svc}
}

func (c *Users) Register(w http.ResponseWriter, r *http.Request) {
	var input users.RegisterInput
	if err := validators.DecodeAndValidate(r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	user, err := c.svc.Register(r.Context(), input)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusCreated, user)
}

func (c *Users) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := validators.DecodeAndValidate(r, &input); err != nil {
		responses.Error(w, err)
		return
	}

	user, err := c.svc.Authenticate(r.Context(), input.Username, input.Password)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, user)
}
