package owm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lox/weatherdash/internal/httputil"
	"github.com/lox/weatherdash/internal/metrics"
	"github.com/lox/weatherdash/internal/models"
)

const DefaultBaseURL = "https://api.openweathermap.org"

const (
	EndpointCurrent  = "current"
	EndpointForecast = "forecast"
)

// Client talks to the OpenWeatherMap 2.5 current weather and 5 day / 3 hour
// forecast endpoints.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns a client. An empty baseURL uses DefaultBaseURL and a nil
// httpClient uses httputil.NewClient.
func New(apiKey, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = httputil.NewClient(0)
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

type weatherEntry struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type currentResponse struct {
	Name     string `json:"name"`
	Dt       int64  `json:"dt"`
	Timezone int64  `json:"timezone"`
	Main     struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []weatherEntry `json:"weather"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []weatherEntry `json:"weather"`
	} `json:"list"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// CurrentConditions fetches the current weather for a city in the given unit.
func (c *Client) CurrentConditions(ctx context.Context, city string, unit models.Unit) (*models.CurrentConditions, error) {
	var data currentResponse
	if err := c.get(ctx, EndpointCurrent, "/data/2.5/weather", city, unit, &data); err != nil {
		return nil, err
	}

	cc := &models.CurrentConditions{
		CityName:    data.Name,
		ObservedAt:  data.Dt,
		UTCOffset:   data.Timezone,
		Temperature: data.Main.Temp,
	}
	if len(data.Weather) > 0 {
		cc.Description = data.Weather[0].Description
		cc.IconID = data.Weather[0].Icon
	}
	return cc, nil
}

// Forecast fetches the 3-hourly forecast list for a city in the given unit.
func (c *Client) Forecast(ctx context.Context, city string, unit models.Unit) ([]models.ForecastSample, error) {
	var data forecastResponse
	if err := c.get(ctx, EndpointForecast, "/data/2.5/forecast", city, unit, &data); err != nil {
		return nil, err
	}

	samples := make([]models.ForecastSample, 0, len(data.List))
	for _, item := range data.List {
		s := models.ForecastSample{
			At:          item.Dt,
			Temperature: item.Main.Temp,
		}
		if len(item.Weather) > 0 {
			s.Description = item.Weather[0].Description
			s.IconID = item.Weather[0].Icon
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func (c *Client) get(ctx context.Context, endpoint, path, city string, unit models.Unit, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("q", strings.TrimSpace(city))
	q.Set("appid", c.apiKey)
	q.Set("units", string(unit))
	reqURL := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", endpoint, err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.ProviderLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderCallsTotal.WithLabelValues(endpoint, "error").Inc()
		return newNetworkError(endpoint, err)
	}
	defer resp.Body.Close()

	metrics.ProviderCallsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newNetworkError(endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		perr := &ProviderError{Endpoint: endpoint, Status: resp.StatusCode}
		var e errorResponse
		if json.Unmarshal(body, &e) == nil {
			perr.Message = e.Message
		}
		return perr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: unmarshal: %w", endpoint, err)
	}
	return nil
}
