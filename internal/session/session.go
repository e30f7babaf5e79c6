// Package session owns the dashboard's weather state: the tracked city, the
// latest current conditions and forecast payloads, loading and error flags,
// the active unit, and the background refresh timer.
//
// All mutation goes through Session methods. Network calls are made without
// holding the lock, so fetches can overlap; by default whichever response
// resolves last wins. Options.DiscardStale drops responses that were
// superseded by a newer request instead.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lox/weatherdash/internal/metrics"
	"github.com/lox/weatherdash/internal/models"
	"github.com/lox/weatherdash/internal/owm"
)

const DefaultRefreshInterval = 30 * time.Second

// Preference keys persisted across restarts.
const (
	PrefUnit             = "weatherUnit"
	PrefLastSearchedCity = "lastSearchedCity"
)

var ErrInvalidUnit = errors.New("invalid unit")

// Provider fetches weather from the upstream API.
type Provider interface {
	CurrentConditions(ctx context.Context, city string, unit models.Unit) (*models.CurrentConditions, error)
	Forecast(ctx context.Context, city string, unit models.Unit) ([]models.ForecastSample, error)
}

// Preferences is the persisted key/value state read at startup.
type Preferences interface {
	GetPreference(key string) (string, bool, error)
	SetPreference(key, value string) error
}

// FetchRecorder receives one record per provider call.
type FetchRecorder interface {
	RecordFetchRun(run models.FetchRun) error
}

type Options struct {
	RefreshInterval time.Duration
	NoRefresh       bool // disables the background refresh timer
	DiscardStale    bool
	Audit           FetchRecorder
}

type FetchOptions struct {
	Manual bool
	Silent bool
}

// State is a point-in-time copy of the session for renderers.
type State struct {
	TrackedCity string                    `json:"tracked_city"`
	Unit        models.Unit               `json:"unit"`
	Loading     bool                      `json:"loading"`
	Err         string                    `json:"error,omitempty"`
	Ready       bool                      `json:"ready"`
	Current     *models.CurrentConditions `json:"current"`
	Forecast    []models.ForecastSample   `json:"forecast"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

type Session struct {
	provider Provider
	prefs    Preferences
	opts     Options

	life       context.Context
	lifeCancel context.CancelFunc
	wg         sync.WaitGroup

	mu            sync.Mutex
	trackedCity   string
	unit          models.Unit
	loading       bool
	manualFlight  int
	err           string
	started       bool
	ready         bool
	closed        bool
	current       *models.CurrentConditions
	forecast      []models.ForecastSample
	updatedAt     time.Time
	epoch         uint64
	forecastEpoch uint64
	refresh       refreshTimer
}

// New creates a session using the persisted unit, defaulting to metric.
// Call Start to load the last searched city and begin refreshing.
func New(provider Provider, prefs Preferences, opts Options) *Session {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	life, cancel := context.WithCancel(context.Background())
	s := &Session{
		provider:   provider,
		prefs:      prefs,
		opts:       opts,
		life:       life,
		lifeCancel: cancel,
		unit:       models.UnitMetric,
	}

	if v, ok, err := prefs.GetPreference(PrefUnit); err != nil {
		log.Printf("session: read unit preference: %v", err)
	} else if ok {
		if u, err := models.ParseUnit(v); err == nil {
			s.unit = u
		} else {
			log.Printf("session: ignoring stored unit %q", v)
		}
	}
	return s
}

// Start restores the last searched city and, if there is one, fetches it
// silently. The session becomes Ready once that attempt resolves, whatever
// its outcome. Start only runs once.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.closed {
		s.mu.Unlock()
		return
	}
	s.started = true
	city, ok, err := s.prefs.GetPreference(PrefLastSearchedCity)
	if err != nil {
		log.Printf("session: read last city: %v", err)
	}
	city = strings.TrimSpace(city)
	if ok && city != "" {
		s.trackedCity = city
	}
	s.mu.Unlock()

	if city != "" {
		s.fetchCurrent(ctx, city, FetchOptions{Silent: true}, true)
	}

	s.mu.Lock()
	s.ready = true
	s.rearmLocked()
	unit := s.unit
	s.mu.Unlock()
	log.Printf("session: ready (city=%q unit=%s)", city, unit)
}

// Close stops the refresh timer and waits for its goroutine to exit. Results
// arriving after Close are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.rearmLocked()
	s.mu.Unlock()
	s.lifeCancel()
	s.wg.Wait()
}

// Search is a manual lookup from the user.
func (s *Session) Search(ctx context.Context, city string) {
	s.FetchCurrentConditions(ctx, city, FetchOptions{Manual: true})
}

// FetchCurrentConditions fetches current weather for city in the active unit
// and, when the returned city matches the tracked one, its forecast. Only
// manual requests change the tracked city once the session is ready.
func (s *Session) FetchCurrentConditions(ctx context.Context, city string, opts FetchOptions) {
	s.fetchCurrent(ctx, city, opts, false)
}

func (s *Session) fetchCurrent(ctx context.Context, city string, opts FetchOptions, initial bool) {
	city = strings.TrimSpace(city)
	if city == "" {
		return
	}
	showLoading := opts.Manual && !opts.Silent
	ctx, cancel := s.detach(ctx)
	defer cancel()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if showLoading {
		s.manualFlight++
		s.loading = true
	}
	s.err = ""
	s.epoch++
	epoch := s.epoch
	unit := s.unit
	s.rearmLocked()
	s.mu.Unlock()

	requestID := uuid.NewString()
	start := time.Now()
	cc, err := s.provider.CurrentConditions(ctx, city, unit)
	s.record(requestID, owm.EndpointCurrent, city, unit, opts, start, err)

	s.mu.Lock()
	if showLoading {
		s.manualFlight--
		s.loading = s.manualFlight > 0
	}
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.opts.DiscardStale && epoch != s.epoch {
		metrics.StaleResponsesDropped.WithLabelValues(owm.EndpointCurrent).Inc()
		log.Printf("session: dropping stale response for %q", city)
		s.rearmLocked()
		s.mu.Unlock()
		return
	}

	var forecastCity string
	if err != nil {
		log.Printf("session: fetch current %q: %v", city, err)
		metrics.SessionFetchesTotal.WithLabelValues(owm.EndpointCurrent, trigger(opts), "error").Inc()
		s.err = errorMessage(err)
		s.current = nil
		s.forecast = nil
	} else {
		metrics.SessionFetchesTotal.WithLabelValues(owm.EndpointCurrent, trigger(opts), "success").Inc()
		s.current = cc
		if opts.Manual || initial {
			s.setTrackedCityLocked(city)
		}
		if s.trackedCity != "" && strings.EqualFold(cc.CityName, s.trackedCity) {
			forecastCity = s.trackedCity
		}
	}
	s.updatedAt = time.Now()
	s.rearmLocked()
	s.mu.Unlock()

	if forecastCity != "" {
		s.fetchForecast(ctx, requestID, epoch, forecastCity, opts)
	}
}

// fetchForecast replaces the forecast list. Failures clear it but are never
// surfaced as the session error. A result is dropped if the current
// conditions are gone by the time it lands, or, with DiscardStale, if a newer
// current-conditions fetch than currentEpoch has been issued.
func (s *Session) fetchForecast(ctx context.Context, requestID string, currentEpoch uint64, city string, opts FetchOptions) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.forecastEpoch++
	epoch := s.forecastEpoch
	unit := s.unit
	s.mu.Unlock()

	start := time.Now()
	samples, err := s.provider.Forecast(ctx, city, unit)
	s.record(requestID, owm.EndpointForecast, city, unit, opts, start, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.opts.DiscardStale && (epoch != s.forecastEpoch || currentEpoch != s.epoch) {
		metrics.StaleResponsesDropped.WithLabelValues(owm.EndpointForecast).Inc()
		return
	}
	if s.current == nil || s.err != "" {
		return
	}
	if err != nil {
		log.Printf("session: fetch forecast %q: %v", city, err)
		metrics.SessionFetchesTotal.WithLabelValues(owm.EndpointForecast, trigger(opts), "error").Inc()
		s.forecast = nil
		return
	}
	metrics.SessionFetchesTotal.WithLabelValues(owm.EndpointForecast, trigger(opts), "success").Inc()
	s.forecast = samples
	s.updatedAt = time.Now()
}

// SetUnit switches the measurement system, persists it, and silently
// refetches the tracked city since the provider converts values server-side.
// Selecting the active unit is a no-op.
func (s *Session) SetUnit(ctx context.Context, unit models.Unit) error {
	if !unit.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}

	s.mu.Lock()
	if s.closed || s.unit == unit {
		s.mu.Unlock()
		return nil
	}
	s.unit = unit
	if err := s.prefs.SetPreference(PrefUnit, string(unit)); err != nil {
		log.Printf("session: persist unit: %v", err)
	}
	city := s.trackedCity
	s.rearmLocked()
	s.mu.Unlock()

	if city != "" {
		s.fetchCurrent(ctx, city, FetchOptions{Silent: true}, false)
	}
	return nil
}

// State returns a copy of the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		TrackedCity: s.trackedCity,
		Unit:        s.unit,
		Loading:     s.loading,
		Err:         s.err,
		Ready:       s.ready,
		UpdatedAt:   s.updatedAt,
	}
	if s.current != nil {
		cc := *s.current
		st.Current = &cc
	}
	if s.forecast != nil {
		st.Forecast = append([]models.ForecastSample(nil), s.forecast...)
	}
	return st
}

// detach ties a fetch to the session lifetime instead of the caller's
// cancellation, keeping the caller's values. The returned cancel must be
// called.
func (s *Session) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(s.life, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (s *Session) setTrackedCityLocked(city string) {
	if city == s.trackedCity {
		return
	}
	s.trackedCity = city
	if err := s.prefs.SetPreference(PrefLastSearchedCity, city); err != nil {
		log.Printf("session: persist last city: %v", err)
	}
}

func (s *Session) record(requestID, endpoint, city string, unit models.Unit, opts FetchOptions, start time.Time, err error) {
	if s.opts.Audit == nil {
		return
	}
	run := models.FetchRun{
		RequestID:  requestID,
		Endpoint:   endpoint,
		City:       city,
		Unit:       unit,
		Manual:     opts.Manual,
		Silent:     opts.Silent,
		Success:    err == nil,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		run.Error = err.Error()
	}
	if rerr := s.opts.Audit.RecordFetchRun(run); rerr != nil {
		log.Printf("session: record fetch run: %v", rerr)
	}
}

func trigger(opts FetchOptions) string {
	if opts.Manual {
		return "manual"
	}
	return "auto"
}
