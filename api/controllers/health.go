package controllers

import (
	"context"
	"net/http"

	"github.com/brewthree/brewpos-backend/api/responses"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Health reports liveness and database reachability.
type Health struct {
	db pinger
}

func NewHealth(db pinger) *Health {
	return &Health{db: db}
}

func (h *Health) Live(w http.ResponseWriter, _ *http.Request) {
	responses.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Health) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
