package forecast

import (
	"math"
	"time"

	"github.com/lox/weatherdash/internal/models"
)

const (
	// MaxDays is the number of daily summaries shown in the forecast strip.
	MaxDays = 5

	middayStartHour = 12
	middayEndHour   = 18

	dayKeyLayout = "Mon, Jan 2"
)

type dayBucket struct {
	key    string
	first  models.ForecastSample
	midday *models.ForecastSample
	max    float64
}

// BucketByDay groups 3-hourly samples into calendar days in loc and returns one
// summary per day, in first-seen order, capped at MaxDays. The day's
// description and icon come from its first midday sample (12:00-18:00 local),
// falling back to the day's first sample.
func BucketByDay(samples []models.ForecastSample, loc *time.Location) []models.DailySummary {
	if loc == nil {
		loc = time.UTC
	}
	days := make([]models.DailySummary, 0, MaxDays)
	if len(samples) == 0 {
		return days
	}

	var order []*dayBucket
	byKey := make(map[string]*dayBucket)

	for i := range samples {
		s := samples[i]
		t := time.Unix(s.At, 0).In(loc)
		key := t.Format(dayKeyLayout)

		b, ok := byKey[key]
		if !ok {
			b = &dayBucket{key: key, first: s, max: s.Temperature}
			byKey[key] = b
			order = append(order, b)
		}
		if s.Temperature > b.max {
			b.max = s.Temperature
		}
		if b.midday == nil && t.Hour() >= middayStartHour && t.Hour() < middayEndHour {
			b.midday = &samples[i]
		}
	}

	for _, b := range order {
		if len(days) == MaxDays {
			break
		}
		rep := b.first
		if b.midday != nil {
			rep = *b.midday
		}
		desc := rep.Description
		if desc == "" {
			desc = b.first.Description
		}
		icon := rep.IconID
		if icon == "" {
			icon = b.first.IconID
		}
		days = append(days, models.DailySummary{
			DayKey:      b.key,
			At:          b.first.At,
			MaxTemp:     RoundTemp(b.max),
			Description: TitleCase(desc),
			IconID:      icon,
		})
	}
	return days
}

// RoundTemp rounds half up, so -2.5 becomes -2 and 2.5 becomes 3.
func RoundTemp(v float64) int {
	return int(math.Floor(v + 0.5))
}
