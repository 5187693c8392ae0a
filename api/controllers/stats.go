package controllers

import (
	"net/http"

	"github.com/brewthree/brewpos-backend/api/responses"
	"github.com/brewthree/brewpos-backend/internal/reports"
	"github.com/brewthree/brewpos-backend/pkg/enums"
	"github.com/brewthree/brewpos-backend/pkg/errors"
)

// Stats serves sales reports.
type Stats struct {
	svc reports.Service
}

func NewStats(svc reports.Service) *Stats {
	return &Stats{svc: svc}
}

func (c *Stats) Report(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		raw = string(enums.ReportPeriodToday)
	}
	period, err := enums.ParseReportPeriod(raw)
	if err != nil {
		responses.Error(w, errors.New(errors.CodeValidation, "invalid report period").
			WithDetails(map[string]any{"period": raw}))
		return
	}

	report, err := c.svc.BuildReport(r.Context(), period)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, report)
}
