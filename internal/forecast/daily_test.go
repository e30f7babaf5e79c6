package forecast

import (
	"testing"
	"time"

	"github.com/lox/weatherdash/internal/models"
)

// threeHourly builds samples every 3h starting at start, with temps and an
// optional description per slot.
func threeHourly(start time.Time, temps []float64, desc func(i int) (string, string)) []models.ForecastSample {
	samples := make([]models.ForecastSample, len(temps))
	for i, temp := range temps {
		d, icon := "clear sky", "01d"
		if desc != nil {
			d, icon = desc(i)
		}
		samples[i] = models.ForecastSample{
			At:          start.Add(time.Duration(i) * 3 * time.Hour).Unix(),
			Temperature: temp,
			Description: d,
			IconID:      icon,
		}
	}
	return samples
}

func TestBucketByDay_Empty(t *testing.T) {
	if got := BucketByDay(nil, time.UTC); got == nil || len(got) != 0 {
		t.Errorf("BucketByDay(nil) = %#v, want empty non-nil slice", got)
	}
	if got := BucketByDay([]models.ForecastSample{}, nil); len(got) != 0 {
		t.Errorf("BucketByDay([]) len = %d, want 0", len(got))
	}
}

func TestBucketByDay_GroupsAndTruncates(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	temps := make([]float64, 8*7) // seven full days
	for i := range temps {
		temps[i] = float64(i % 8)
	}
	temps[5] = 21.6 // day one peak at 15:00

	days := BucketByDay(threeHourly(start, temps, nil), time.UTC)

	if len(days) != MaxDays {
		t.Fatalf("len(days) = %d, want %d", len(days), MaxDays)
	}
	wantKeys := []string{"Sun, Mar 1", "Mon, Mar 2", "Tue, Mar 3", "Wed, Mar 4", "Thu, Mar 5"}
	for i, want := range wantKeys {
		if days[i].DayKey != want {
			t.Errorf("days[%d].DayKey = %q, want %q", i, days[i].DayKey, want)
		}
	}
	if days[0].MaxTemp != 22 {
		t.Errorf("days[0].MaxTemp = %d, want 22", days[0].MaxTemp)
	}
	if days[1].MaxTemp != 7 {
		t.Errorf("days[1].MaxTemp = %d, want 7", days[1].MaxTemp)
	}
	if days[0].At != start.Unix() {
		t.Errorf("days[0].At = %d, want first sample %d", days[0].At, start.Unix())
	}
}

func TestBucketByDay_MiddayRepresentative(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// slots: 00,03,06,09,12,15,18,21
	desc := func(i int) (string, string) {
		switch i {
		case 4:
			return "light rain", "10d"
		case 5:
			return "overcast clouds", "04d"
		}
		return "clear sky", "01n"
	}
	days := BucketByDay(threeHourly(start, make([]float64, 8), desc), time.UTC)

	if len(days) != 1 {
		t.Fatalf("len(days) = %d, want 1", len(days))
	}
	if days[0].Description != "Light Rain" {
		t.Errorf("Description = %q, want %q", days[0].Description, "Light Rain")
	}
	if days[0].IconID != "10d" {
		t.Errorf("IconID = %q, want 10d", days[0].IconID)
	}
}

func TestBucketByDay_FallsBackToFirstSample(t *testing.T) {
	// Only evening samples: 18:00 and 21:00.
	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	desc := func(i int) (string, string) {
		if i == 0 {
			return "few clouds", "02n"
		}
		return "mist", "50n"
	}
	days := BucketByDay(threeHourly(start, []float64{3, 4}, desc), time.UTC)

	if len(days) != 1 {
		t.Fatalf("len(days) = %d, want 1", len(days))
	}
	if days[0].Description != "Few Clouds" || days[0].IconID != "02n" {
		t.Errorf("got %q/%q, want Few Clouds/02n", days[0].Description, days[0].IconID)
	}
	if days[0].MaxTemp != 4 {
		t.Errorf("MaxTemp = %d, want 4", days[0].MaxTemp)
	}
}

func TestBucketByDay_FirstSeenOrder(t *testing.T) {
	a := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC).Unix()
	b := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC).Unix()
	samples := []models.ForecastSample{
		{At: a, Temperature: 10},
		{At: b, Temperature: 5},
		{At: a + 3600, Temperature: 12},
	}
	days := BucketByDay(samples, time.UTC)
	if len(days) != 2 {
		t.Fatalf("len(days) = %d, want 2", len(days))
	}
	if days[0].DayKey != "Mon, Mar 2" || days[1].DayKey != "Sun, Mar 1" {
		t.Errorf("order = %q, %q; want Mon, Mar 2 then Sun, Mar 1", days[0].DayKey, days[1].DayKey)
	}
	if days[0].MaxTemp != 12 {
		t.Errorf("days[0].MaxTemp = %d, want 12", days[0].MaxTemp)
	}
}

func TestBucketByDay_ReferenceZone(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 20:00 UTC on Mar 1 is 06:00 on Mar 2 at UTC+10.
	samples := []models.ForecastSample{
		{At: time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC).Unix(), Temperature: 1},
	}
	days := BucketByDay(samples, loc)
	if len(days) != 1 || days[0].DayKey != "Mon, Mar 2" {
		t.Errorf("days = %+v, want one day keyed Mon, Mar 2", days)
	}
}

func TestRoundTemp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{21.4, 21},
		{21.5, 22},
		{-2.5, -2},
		{-2.6, -3},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RoundTemp(tt.in); got != tt.want {
			t.Errorf("RoundTemp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
