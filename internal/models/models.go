package models

import (
	"fmt"
	"strings"
)

// Unit is the measurement system requested from the provider. Temperatures
// are converted server-side, so changing it requires a refetch.
type Unit string

const (
	UnitMetric   Unit = "metric"
	UnitImperial Unit = "imperial"
)

// ParseUnit accepts exactly "metric" or "imperial" (case-insensitive).
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(s))) {
	case UnitMetric:
		return UnitMetric, nil
	case UnitImperial:
		return UnitImperial, nil
	}
	return "", fmt.Errorf("unknown unit %q", s)
}

func (u Unit) Valid() bool {
	return u == UnitMetric || u == UnitImperial
}

// Symbol returns the temperature suffix shown next to a reading.
func (u Unit) Symbol() string {
	if u == UnitImperial {
		return "F"
	}
	return "C"
}

type CurrentConditions struct {
	CityName    string  `json:"city_name"`
	ObservedAt  int64   `json:"observed_at"`
	UTCOffset   int64   `json:"utc_offset"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	IconID      string  `json:"icon_id"`
}

type ForecastSample struct {
	At          int64   `json:"at"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	IconID      string  `json:"icon_id"`
}

// DailySummary is derived from a day's forecast samples and never stored.
type DailySummary struct {
	DayKey      string `json:"day_key"`
	At          int64  `json:"at"`
	MaxTemp     int    `json:"max_temp"`
	Description string `json:"description"`
	IconID      string `json:"icon_id"`
}

// FetchRun is one audited provider call made on behalf of the session.
type FetchRun struct {
	ID         int64  `json:"id"`
	RequestID  string `json:"request_id"`
	Endpoint   string `json:"endpoint"` // "current", "forecast"
	City       string `json:"city"`
	Unit       Unit   `json:"unit"`
	Manual     bool   `json:"manual"`
	Silent     bool   `json:"silent"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}
