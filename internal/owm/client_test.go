package owm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lox/weatherdash/internal/models"
)

func newTestClient(t *testing.T, apiKey string, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(apiKey, srv.URL, srv.Client())
}

func TestCurrentConditions(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(t, "k123", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/weather" {
			t.Errorf("path = %q, want /data/2.5/weather", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{"q": q.Get("q"), "appid": q.Get("appid"), "units": q.Get("units")}
		w.Write([]byte(`{"name":"São Paulo","dt":1772323200,"timezone":-10800,"main":{"temp":27.4},"weather":[{"description":"scattered clouds","icon":"03d"}]}`))
	})

	cc, err := c.CurrentConditions(context.Background(), "  São Paulo ", models.UnitImperial)
	if err != nil {
		t.Fatalf("CurrentConditions: %v", err)
	}
	if gotQuery["q"] != "São Paulo" || gotQuery["appid"] != "k123" || gotQuery["units"] != "imperial" {
		t.Errorf("query = %v", gotQuery)
	}
	want := models.CurrentConditions{
		CityName:    "São Paulo",
		ObservedAt:  1772323200,
		UTCOffset:   -10800,
		Temperature: 27.4,
		Description: "scattered clouds",
		IconID:      "03d",
	}
	if *cc != want {
		t.Errorf("got %+v, want %+v", *cc, want)
	}
}

func TestForecast(t *testing.T) {
	c := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/forecast" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"list":[
			{"dt":100,"main":{"temp":1.5},"weather":[{"description":"snow","icon":"13n"}]},
			{"dt":200,"main":{"temp":2.5},"weather":[]}
		]}`))
	})

	samples, err := c.Forecast(context.Background(), "Oslo", models.UnitMetric)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("len(samples) = %d, want 2", len(samples))
	}
	if samples[0] != (models.ForecastSample{At: 100, Temperature: 1.5, Description: "snow", IconID: "13n"}) {
		t.Errorf("samples[0] = %+v", samples[0])
	}
	if samples[1].Description != "" || samples[1].At != 200 {
		t.Errorf("samples[1] = %+v", samples[1])
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		is      error
		message string
	}{
		{"not found", 404, `{"cod":"404","message":"city not found"}`, ErrNotFound, "city not found"},
		{"unauthorized", 401, `{"cod":401,"message":"Invalid API key."}`, ErrUnauthorized, "Invalid API key."},
		{"provider message", 429, `{"cod":429,"message":"quota exceeded"}`, nil, "quota exceeded"},
		{"no body", 500, `oops`, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := c.CurrentConditions(context.Background(), "x", models.UnitMetric)
			var perr *ProviderError
			if !errors.As(err, &perr) {
				t.Fatalf("err = %v, want *ProviderError", err)
			}
			if perr.Status != tt.status || perr.Message != tt.message {
				t.Errorf("got status %d message %q", perr.Status, perr.Message)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.is)
			}
			if tt.is == nil && (errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized)) {
				t.Errorf("unexpected sentinel match for %v", err)
			}
		})
	}
}

func TestMissingAPIKey(t *testing.T) {
	called := false
	c := newTestClient(t, "  ", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	if _, err := c.CurrentConditions(context.Background(), "Paris", models.UnitMetric); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
	if called {
		t.Error("request sent without API key")
	}
}

func TestNetworkErrorHidesAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New("secret-key", srv.URL, nil)
	_, err := c.Forecast(context.Background(), "Paris", models.UnitMetric)
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("err = %v, want *NetworkError", err)
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Errorf("error leaks API key: %v", err)
	}
}
