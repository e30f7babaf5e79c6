package api

import (
	"time"

	"github.com/lox/weatherdash/internal/forecast"
	"github.com/lox/weatherdash/internal/models"
	"github.com/lox/weatherdash/internal/session"
)

// DashboardData contains everything the dashboard page and partial render.
type DashboardData struct {
	City       string
	Unit       models.Unit
	UnitSymbol string
	Loading    bool
	Error      string
	Ready      bool
	Current    *CurrentView
	Days       []DayView
	Palette    forecast.Palette
	UpdatedAt  time.Time
}

// CurrentView is the current conditions card, pre-formatted for the city's
// own clock.
type CurrentView struct {
	CityName    string
	Temperature int
	Description string
	IconURL     string
	LocalTime   string
	Date        string
}

// DayView is one entry in the forecast strip.
type DayView struct {
	Label       string
	MaxTemp     int
	Description string
	IconURL     string
}

// StateResponse is the JSON form of the session with derived daily summaries.
type StateResponse struct {
	session.State
	Daily []models.DailySummary `json:"daily"`
}

func (s *Server) dashboardData(st session.State) DashboardData {
	data := DashboardData{
		City:       st.TrackedCity,
		Unit:       st.Unit,
		UnitSymbol: st.Unit.Symbol(),
		Loading:    st.Loading,
		Error:      st.Err,
		Ready:      st.Ready,
		Palette:    forecast.DefaultPalette,
		UpdatedAt:  st.UpdatedAt,
	}

	if cc := st.Current; cc != nil {
		cityZone := time.FixedZone("", int(cc.UTCOffset))
		data.Current = &CurrentView{
			CityName:    cc.CityName,
			Temperature: forecast.RoundTemp(cc.Temperature),
			Description: cc.Description,
			IconURL:     forecast.IconURL(cc.IconID, "4x"),
			LocalTime:   forecast.FormatLocalClockTime(cc.ObservedAt, cc.UTCOffset),
			Date:        forecast.FormatLongDate(cc.ObservedAt, cityZone),
		}
		data.Palette = forecast.PaletteForIcon(cc.IconID)
	}

	for i, day := range forecast.BucketByDay(st.Forecast, s.loc) {
		label := forecast.FormatShortWeekday(day.At, s.loc)
		if i == 0 {
			label = "Today"
		}
		data.Days = append(data.Days, DayView{
			Label:       label,
			MaxTemp:     day.MaxTemp,
			Description: day.Description,
			IconURL:     forecast.IconURL(day.IconID, "2x"),
		})
	}
	return data
}

func (s *Server) stateResponse(st session.State) StateResponse {
	return StateResponse{
		State: st,
		Daily: forecast.BucketByDay(st.Forecast, s.loc),
	}
}
