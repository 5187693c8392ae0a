package enums

import (
	"fmt"
	"time"
)

// ReportPeriod selects the time window sales statistics are computed over.
type ReportPeriod string

const (
	ReportPeriodToday   ReportPeriod = "TODAY"
	ReportPeriodWeek    ReportPeriod = "WEEK"
	ReportPeriodMonth   ReportPeriod = "MONTH"
	ReportPeriodAllTime ReportPeriod = "ALL_TIME"
)

func (p ReportPeriod) String() string {
	return string(p)
}

func (p ReportPeriod) IsValid() bool {
	switch p {
	case ReportPeriodToday, ReportPeriodWeek, ReportPeriodMonth, ReportPeriodAllTime:
		return true
	}
	return false
}

// Start returns the inclusive lower bound of the window anchored at now.
// ALL_TIME returns the zero time so every order qualifies.
func (p ReportPeriod) Start(now time.Time) time.Time {
	switch p {
	case ReportPeriodToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case ReportPeriodWeek:
		return now.AddDate(0, 0, -7)
	case ReportPeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	return time.Time{}
}

func ParseReportPeriod(value string) (ReportPeriod, error) {
	period := ReportPeriod(value)
	if !period.IsValid() {
		return "", fmt.Errorf("invalid report period %q", value)
	}
	return period, nil
}
